package force

import (
	"github.com/san-kum/ljcell/internal/md"
	"github.com/san-kum/ljcell/internal/periodic"
	"gonum.org/v1/gonum/spatial/r3"
)

// Kernel is the truncated Lennard-Jones pair interaction
// V(r) = 4ε[(σ/r)¹² − (σ/r)⁶] for r < rc, and 0 otherwise.
type Kernel struct {
	box    r3.Vec
	rcut2  float64
	sigma2 float64
	eps4   float64
	eps24  float64
}

func NewKernel(p md.Params) Kernel {
	return Kernel{
		box:    p.BoxVec(),
		rcut2:  p.Cutoff2(),
		sigma2: p.Sigma * p.Sigma,
		eps4:   4 * p.Epsilon,
		eps24:  24 * p.Epsilon,
	}
}

// Separation returns the minimum-image vector from pj to pi.
func (k Kernel) Separation(pi, pj r3.Vec) r3.Vec {
	return r3.Vec{
		X: periodic.MinImage(pi.X-pj.X, k.box.X),
		Y: periodic.MinImage(pi.Y-pj.Y, k.box.Y),
		Z: periodic.MinImage(pi.Z-pj.Z, k.box.Z),
	}
}

// Evaluate returns the pair energy and the force on i; the force on j is its
// negation. Pairs at r² >= rc² do not interact and report ok false.
// Coincident positions give non-finite results.
func (k Kernel) Evaluate(pi, pj r3.Vec) (energy float64, fi r3.Vec, ok bool) {
	d := k.Separation(pi, pj)
	r2 := r3.Norm2(d)
	if r2 >= k.rcut2 {
		return 0, r3.Vec{}, false
	}
	s2 := k.sigma2 / r2
	s6 := s2 * s2 * s2
	s12 := s6 * s6
	energy = k.eps4 * (s12 - s6)
	fr := k.eps24 / r2 * (2*s12 - s6)
	return energy, r3.Scale(fr, d), true
}
