package sim

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/san-kum/ljcell/internal/integrators"
	"github.com/san-kum/ljcell/internal/system"
)

var ErrUnstable = errors.New("sim: non-finite energy")

type Integrator interface {
	Prime(s *system.System) (integrators.StepResult, error)
	Step(s *system.System) (integrators.StepResult, error)
}

type Metric interface {
	Name() string
	Observe(s Sample)
	Value() float64
	Reset()
}

type Observer interface {
	OnSample(s Sample)
}

// FrameObserver is an Observer that also wants the particle state. OnFrame
// runs on the simulation goroutine; sys must not be retained.
type FrameObserver interface {
	OnFrame(s Sample, sys *system.System)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Sample)

func (f ObserverFunc) OnSample(s Sample) { f(s) }

type Config struct {
	Dt          float64
	Steps       int
	SampleEvery int
}

// Sample is a snapshot of the thermodynamic observables after Step steps.
type Sample struct {
	Step        int     `json:"step"`
	Time        float64 `json:"time"`
	Kinetic     float64 `json:"kinetic"`
	Potential   float64 `json:"potential"`
	Total       float64 `json:"total"`
	Temperature float64 `json:"temperature"`
	Momentum    float64 `json:"momentum"`
}

func (s Sample) IsValid() bool {
	for _, v := range [...]float64{s.Kinetic, s.Potential, s.Total} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

type Result struct {
	Samples      []Sample
	Metrics      map[string]float64
	EnergyDrift  float64
	StepsTaken   int
	Interactions int
	Elapsed      time.Duration
}

// SimError reports the step at which a run failed.
type SimError struct {
	Step int
	Time float64
	Err  error
}

func (e *SimError) Error() string {
	return fmt.Sprintf("sim: step %d (t=%.4f): %v", e.Step, e.Time, e.Err)
}

func (e *SimError) Unwrap() error { return e.Err }
