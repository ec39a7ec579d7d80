package metrics

import (
	"math"

	"github.com/san-kum/ljcell/internal/sim"
)

// Energy is the mean total energy over all samples.
type Energy struct {
	name    string
	sum     float64
	samples int
}

func NewEnergy() *Energy {
	return &Energy{name: "mean_energy"}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(s sim.Sample) {
	e.sum += s.Total
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.sum / float64(e.samples)
}

func (e *Energy) Reset() {
	e.sum = 0
	e.samples = 0
}

// EnergyDrift is the largest |E - E0| / |E0| seen, with E0 the first sample.
type EnergyDrift struct {
	name          string
	initialEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{name: "energy_drift"}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(s sim.Sample) {
	if e.samples == 0 {
		e.initialEnergy = s.Total
	}
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(s.Total-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}
