package sim

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/san-kum/ljcell/internal/integrators"
	"github.com/san-kum/ljcell/internal/system"
	"gonum.org/v1/gonum/spatial/r3"
)

type Simulator struct {
	integrator Integrator
	metrics    []Metric
	observers  []Observer
}

func New(integrator Integrator) *Simulator {
	return &Simulator{
		integrator: integrator,
		metrics:    make([]Metric, 0),
		observers:  make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run integrates sys for cfg.Steps steps. On cancellation or failure the
// partial result is returned together with the error.
func (s *Simulator) Run(ctx context.Context, sys *system.System, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	start := time.Now()
	result := &Result{
		Samples: make([]Sample, 0, cfg.Steps/cfg.SampleEvery+2),
		Metrics: make(map[string]float64),
	}
	defer func() {
		result.Elapsed = time.Since(start)
		for _, m := range s.metrics {
			result.Metrics[m.Name()] = m.Value()
		}
	}()

	for _, m := range s.metrics {
		m.Reset()
	}

	sr, err := s.integrator.Prime(sys)
	if err != nil {
		return result, &SimError{Step: 0, Err: err}
	}
	first := sample(sys, 0, 0, sr)
	if !first.IsValid() {
		return result, &SimError{Step: 0, Err: ErrUnstable}
	}
	s.record(result, first, sys)
	result.Interactions = sr.Result.Interactions

	last := first
	for i := 1; i <= cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		t := float64(i) * cfg.Dt
		sr, err := s.integrator.Step(sys)
		if err != nil {
			return result, &SimError{Step: i, Time: t, Err: err}
		}
		result.StepsTaken++
		result.Interactions = sr.Result.Interactions

		if math.IsNaN(sr.Potential+sr.Kinetic) || math.IsInf(sr.Potential+sr.Kinetic, 0) {
			return result, &SimError{Step: i, Time: t, Err: ErrUnstable}
		}

		if i%cfg.SampleEvery == 0 || i == cfg.Steps {
			last = sample(sys, i, t, sr)
			s.record(result, last, sys)
		}
	}

	if first.Total != 0 {
		result.EnergyDrift = math.Abs(last.Total-first.Total) / math.Abs(first.Total)
	}
	return result, nil
}

func (s *Simulator) record(r *Result, smp Sample, sys *system.System) {
	r.Samples = append(r.Samples, smp)
	for _, m := range s.metrics {
		m.Observe(smp)
	}
	for _, obs := range s.observers {
		if fo, ok := obs.(FrameObserver); ok {
			fo.OnFrame(smp, sys)
			continue
		}
		obs.OnSample(smp)
	}
}

func sample(sys *system.System, step int, t float64, sr integrators.StepResult) Sample {
	return Sample{
		Step:        step,
		Time:        t,
		Kinetic:     sr.Kinetic,
		Potential:   sr.Potential,
		Total:       sr.Kinetic + sr.Potential,
		Temperature: sys.Temperature(),
		Momentum:    r3.Norm(sys.Momentum()),
	}
}

func validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d", cfg.Steps)
	}
	if cfg.SampleEvery < 1 {
		return fmt.Errorf("sample_every must be at least 1, got %d", cfg.SampleEvery)
	}
	return nil
}
