package md

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Vectors holds one 3-vector per particle as three parallel slices.
type Vectors struct {
	X, Y, Z []float64
}

func NewVectors(n int) Vectors {
	return Vectors{
		X: make([]float64, n),
		Y: make([]float64, n),
		Z: make([]float64, n),
	}
}

// Len returns the particle count, or -1 when the three slices disagree.
func (v Vectors) Len() int {
	n := len(v.X)
	if len(v.Y) != n || len(v.Z) != n {
		return -1
	}
	return n
}

func (v Vectors) At(i int) r3.Vec {
	return r3.Vec{X: v.X[i], Y: v.Y[i], Z: v.Z[i]}
}

func (v Vectors) Set(i int, p r3.Vec) {
	v.X[i], v.Y[i], v.Z[i] = p.X, p.Y, p.Z
}

func (v Vectors) Zero() {
	clear(v.X)
	clear(v.Y)
	clear(v.Z)
}

func (v Vectors) Clone() Vectors {
	c := NewVectors(len(v.X))
	copy(c.X, v.X)
	copy(c.Y, v.Y)
	copy(c.Z, v.Z)
	return c
}

// Sum returns the vector sum over all particles.
func (v Vectors) Sum() r3.Vec {
	var s r3.Vec
	for i := range v.X {
		s.X += v.X[i]
		s.Y += v.Y[i]
		s.Z += v.Z[i]
	}
	return s
}

func (v Vectors) IsValid() bool {
	for _, s := range [][]float64{v.X, v.Y, v.Z} {
		for _, x := range s {
			if math.IsNaN(x) || math.IsInf(x, 0) {
				return false
			}
		}
	}
	return true
}

// Params are the simulation parameters of one force evaluation.
type Params struct {
	Box     [3]float64
	Cutoff  float64
	Sigma   float64
	Epsilon float64
}

func (p Params) Cutoff2() float64 { return p.Cutoff * p.Cutoff }

func (p Params) BoxVec() r3.Vec {
	return r3.Vec{X: p.Box[0], Y: p.Box[1], Z: p.Box[2]}
}

var axisNames = [3]string{"box.x", "box.y", "box.z"}

// Validate reports the first non-physical parameter as a *ConfigurationError.
func (p Params) Validate() error {
	for i, l := range p.Box {
		if !(l > 0) || math.IsInf(l, 0) {
			return &ConfigurationError{Field: axisNames[i], Value: l, Reason: "box length must be positive and finite"}
		}
	}
	if !(p.Cutoff > 0) || math.IsInf(p.Cutoff, 0) {
		return &ConfigurationError{Field: "cutoff", Value: p.Cutoff, Reason: "cutoff must be positive and finite"}
	}
	if !(p.Sigma > 0) {
		return &ConfigurationError{Field: "sigma", Value: p.Sigma, Reason: "sigma must be positive"}
	}
	if p.Epsilon < 0 || math.IsNaN(p.Epsilon) {
		return &ConfigurationError{Field: "epsilon", Value: p.Epsilon, Reason: "epsilon must be non-negative"}
	}
	return nil
}
