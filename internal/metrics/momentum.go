package metrics

import (
	"math"

	"github.com/san-kum/ljcell/internal/sim"
)

// MomentumNorm tracks the largest |P| over the run. For a pairwise
// symmetric force it stays at round-off level.
type MomentumNorm struct {
	name string
	max  float64
}

func NewMomentumNorm() *MomentumNorm {
	return &MomentumNorm{name: "momentum_max"}
}

func (m *MomentumNorm) Name() string {
	return m.name
}

func (m *MomentumNorm) Observe(s sim.Sample) {
	m.max = math.Max(m.max, s.Momentum)
}

func (m *MomentumNorm) Value() float64 {
	return m.max
}

func (m *MomentumNorm) Reset() {
	m.max = 0
}
