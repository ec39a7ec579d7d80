package metrics

import (
	"github.com/san-kum/ljcell/internal/sim"
	"gonum.org/v1/gonum/stat"
)

type MeanTemperature struct {
	name  string
	temps []float64
}

func NewMeanTemperature() *MeanTemperature {
	return &MeanTemperature{name: "mean_temperature"}
}

func (m *MeanTemperature) Name() string {
	return m.name
}

func (m *MeanTemperature) Observe(s sim.Sample) {
	m.temps = append(m.temps, s.Temperature)
}

func (m *MeanTemperature) Value() float64 {
	if len(m.temps) == 0 {
		return 0
	}
	return stat.Mean(m.temps, nil)
}

// StdDev is the sample standard deviation of the observed temperatures.
func (m *MeanTemperature) StdDev() float64 {
	if len(m.temps) < 2 {
		return 0
	}
	return stat.StdDev(m.temps, nil)
}

func (m *MeanTemperature) Reset() {
	m.temps = m.temps[:0]
}

// Standard returns the metric set recorded for every run.
func Standard() []sim.Metric {
	return []sim.Metric{
		NewEnergy(),
		NewEnergyDrift(),
		NewMomentumNorm(),
		NewMeanTemperature(),
	}
}
