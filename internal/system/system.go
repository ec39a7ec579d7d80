// Package system owns the particle arrays of a simulation: allocation,
// initial placement, velocities and the kinetic observables.
package system

import (
	"math"
	"math/rand"

	"github.com/san-kum/ljcell/internal/md"
	"github.com/san-kum/ljcell/internal/periodic"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
)

// System holds positions, velocities and forces as struct-of-arrays. ID maps
// the current array slot to the particle's original index and is permuted
// together with the arrays.
type System struct {
	N     int
	Box   [3]float64
	Mass  float64
	Pos   md.Vectors
	Vel   md.Vectors
	Force md.Vectors
	ID    []int
}

func New(n int, box [3]float64, mass float64) *System {
	id := make([]int, n)
	for i := range id {
		id[i] = i
	}
	return &System{
		N:     n,
		Box:   box,
		Mass:  mass,
		Pos:   md.NewVectors(n),
		Vel:   md.NewVectors(n),
		Force: md.NewVectors(n),
		ID:    id,
	}
}

// Release drops the particle arrays. The System must not be used afterwards.
func (s *System) Release() {
	s.Pos, s.Vel, s.Force = md.Vectors{}, md.Vectors{}, md.Vectors{}
	s.ID = nil
	s.N = 0
}

// LatticeSide returns the smallest k with k³ >= n.
func LatticeSide(n int) int {
	k := int(math.Cbrt(float64(n)))
	for k*k*k < n {
		k++
	}
	return max(k, 1)
}

// InitCubicLattice fills the first N sites of a k×k×k simple cubic lattice,
// offset by half a spacing, and displaces each particle uniformly by up to
// ±jitter/2 per axis.
func (s *System) InitCubicLattice(rng *rand.Rand, jitter float64) {
	k := LatticeSide(s.N)
	var a [3]float64
	for d := range a {
		a[d] = s.Box[d] / float64(k)
	}
	for i := 0; i < s.N; i++ {
		ix, iy, iz := i%k, (i/k)%k, i/(k*k)
		s.Pos.X[i] = periodic.Wrap((float64(ix)+0.5)*a[0]+jitter*(rng.Float64()-0.5), s.Box[0])
		s.Pos.Y[i] = periodic.Wrap((float64(iy)+0.5)*a[1]+jitter*(rng.Float64()-0.5), s.Box[1])
		s.Pos.Z[i] = periodic.Wrap((float64(iz)+0.5)*a[2]+jitter*(rng.Float64()-0.5), s.Box[2])
	}
}

// InitRandom places particles uniformly in the box.
func (s *System) InitRandom(rng *rand.Rand) {
	for i := 0; i < s.N; i++ {
		s.Pos.X[i] = rng.Float64() * s.Box[0]
		s.Pos.Y[i] = rng.Float64() * s.Box[1]
		s.Pos.Z[i] = rng.Float64() * s.Box[2]
	}
}

// InitVelocities draws Maxwell-Boltzmann velocities, removes the
// centre-of-mass drift and rescales to the target temperature (k_B = 1).
func (s *System) InitVelocities(temperature float64, rng *rand.Rand) {
	if s.N < 2 || temperature <= 0 {
		s.Vel.Zero()
		return
	}
	sd := math.Sqrt(temperature / s.Mass)
	for _, v := range [][]float64{s.Vel.X, s.Vel.Y, s.Vel.Z} {
		for i := range v {
			v[i] = sd * rng.NormFloat64()
		}
		floats.AddConst(-floats.Sum(v)/float64(len(v)), v)
	}
	if t := s.Temperature(); t > 0 {
		f := math.Sqrt(temperature / t)
		floats.Scale(f, s.Vel.X)
		floats.Scale(f, s.Vel.Y)
		floats.Scale(f, s.Vel.Z)
	}
}

func (s *System) KineticEnergy() float64 {
	v := s.Vel
	return 0.5 * s.Mass * (floats.Dot(v.X, v.X) + floats.Dot(v.Y, v.Y) + floats.Dot(v.Z, v.Z))
}

func (s *System) Momentum() r3.Vec {
	return r3.Scale(s.Mass, s.Vel.Sum())
}

// Temperature is 2·KE / (3(N-1)), counting the momentum constraint.
func (s *System) Temperature() float64 {
	if s.N < 2 {
		return 0
	}
	return 2 * s.KineticEnergy() / (3 * float64(s.N-1))
}

// Density is N / V.
func (s *System) Density() float64 {
	return float64(s.N) / (s.Box[0] * s.Box[1] * s.Box[2])
}
