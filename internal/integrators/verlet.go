package integrators

import (
	"github.com/san-kum/ljcell/internal/force"
	"github.com/san-kum/ljcell/internal/locality"
	"github.com/san-kum/ljcell/internal/md"
	"github.com/san-kum/ljcell/internal/periodic"
	"github.com/san-kum/ljcell/internal/system"
	"gonum.org/v1/gonum/floats"
)

// ForceComputer overwrites forces with the total force on each particle and
// reports the potential energy. *force.Evaluator satisfies it.
type ForceComputer interface {
	Compute(pos, forces md.Vectors) (force.Result, error)
}

type StepResult struct {
	Potential float64
	Kinetic   float64
	Result    force.Result
}

// VelocityVerlet is the kick-drift-kick scheme. Forces from the previous
// step are kept in System.Force between calls.
type VelocityVerlet struct {
	forces ForceComputer
	dt     float64
	sort   bool
	primed bool
	last   force.Result
}

func NewVelocityVerlet(fc ForceComputer, dt float64) *VelocityVerlet {
	return &VelocityVerlet{forces: fc, dt: dt}
}

// WithLocalitySort enables re-sorting particles by position before each
// force evaluation.
func (v *VelocityVerlet) WithLocalitySort(on bool) *VelocityVerlet {
	v.sort = on
	return v
}

func (v *VelocityVerlet) Dt() float64 { return v.dt }

// Prime computes the forces at the current positions. Step calls it on first
// use if the caller did not.
func (v *VelocityVerlet) Prime(s *system.System) (StepResult, error) {
	periodic.WrapAll(s.Pos.X, s.Box[0])
	periodic.WrapAll(s.Pos.Y, s.Box[1])
	periodic.WrapAll(s.Pos.Z, s.Box[2])
	res, err := v.forces.Compute(s.Pos, s.Force)
	if err != nil {
		return StepResult{}, err
	}
	v.primed = true
	v.last = res
	return StepResult{Potential: res.Energy, Kinetic: s.KineticEnergy(), Result: res}, nil
}

// Step advances the system by one dt. On error the positions have already
// drifted and the system should be discarded.
func (v *VelocityVerlet) Step(s *system.System) (StepResult, error) {
	if !v.primed {
		if _, err := v.Prime(s); err != nil {
			return StepResult{}, err
		}
	}
	half := 0.5 * v.dt / s.Mass

	kick(s, half)

	floats.AddScaled(s.Pos.X, v.dt, s.Vel.X)
	floats.AddScaled(s.Pos.Y, v.dt, s.Vel.Y)
	floats.AddScaled(s.Pos.Z, v.dt, s.Vel.Z)
	periodic.WrapAll(s.Pos.X, s.Box[0])
	periodic.WrapAll(s.Pos.Y, s.Box[1])
	periodic.WrapAll(s.Pos.Z, s.Box[2])

	if v.sort {
		locality.SortSystem(s)
	}

	res, err := v.forces.Compute(s.Pos, s.Force)
	if err != nil {
		return StepResult{}, err
	}
	v.last = res

	kick(s, half)

	return StepResult{Potential: res.Energy, Kinetic: s.KineticEnergy(), Result: res}, nil
}

// Last returns the most recent force evaluation.
func (v *VelocityVerlet) Last() force.Result { return v.last }

func kick(s *system.System, h float64) {
	floats.AddScaled(s.Vel.X, h, s.Force.X)
	floats.AddScaled(s.Vel.Y, h, s.Force.Y)
	floats.AddScaled(s.Vel.Z, h, s.Force.Z)
}
