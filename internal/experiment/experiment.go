// Package experiment assembles a run from a config: particles, force
// evaluator, integrator and simulator.
package experiment

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/san-kum/ljcell/internal/cell"
	"github.com/san-kum/ljcell/internal/config"
	"github.com/san-kum/ljcell/internal/force"
	"github.com/san-kum/ljcell/internal/integrators"
	"github.com/san-kum/ljcell/internal/metrics"
	"github.com/san-kum/ljcell/internal/sim"
	"github.com/san-kum/ljcell/internal/system"
)

// latticeJitter is the uniform displacement applied to cubic lattice sites,
// in units of sigma.
const latticeJitter = 0.05

type Experiment struct {
	cfg        config.Config
	randSource *rand.Rand
	sys        *system.System
	evaluator  *force.Evaluator
	integrator *integrators.VelocityVerlet
	simulator  *sim.Simulator
}

func New(cfg *config.Config) *Experiment {
	return &Experiment{
		cfg:        *cfg,
		randSource: rand.New(rand.NewSource(cfg.Seed)),
	}
}

// Setup validates the config and builds the initial state.
func (e *Experiment) Setup() error {
	if err := e.cfg.Validate(); err != nil {
		return err
	}
	initPositions, err := Positioner(e.cfg.Lattice)
	if err != nil {
		return err
	}

	p := e.cfg.Params()
	if _, err := cell.NewGrid(p.Box, p.Cutoff, e.cfg.AllPairsFallback); err != nil {
		return err
	}
	ev, err := force.NewEvaluator(p, e.cfg.Options())
	if err != nil {
		return err
	}

	e.sys = system.New(e.cfg.Particles, p.Box, e.cfg.Mass)
	initPositions(e.sys, e.randSource)
	e.sys.InitVelocities(e.cfg.Temperature, e.randSource)

	e.evaluator = ev
	e.integrator = integrators.NewVelocityVerlet(ev, e.cfg.Dt).WithLocalitySort(e.cfg.Sort)
	e.simulator = sim.New(e.integrator)
	for _, m := range metrics.Standard() {
		e.simulator.AddMetric(m)
	}
	return nil
}

func (e *Experiment) Run(ctx context.Context, observers ...sim.Observer) (*sim.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	for _, o := range observers {
		e.simulator.AddObserver(o)
	}

	simCfg := sim.Config{
		Dt:          e.cfg.Dt,
		Steps:       e.cfg.Steps,
		SampleEvery: e.cfg.SampleEvery,
	}
	return e.simulator.Run(ctx, e.sys, simCfg)
}

func (e *Experiment) Config() config.Config        { return e.cfg }
func (e *Experiment) System() *system.System       { return e.sys }
func (e *Experiment) Evaluator() *force.Evaluator  { return e.evaluator }
func (e *Experiment) GetSimulator() *sim.Simulator { return e.simulator }
