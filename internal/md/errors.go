package md

import (
	"errors"
	"fmt"
)

// Domain errors for force evaluation.
var (
	// ErrConfiguration indicates invalid or physically inconsistent parameters.
	ErrConfiguration = errors.New("md: invalid configuration")

	// ErrCapacity indicates a cell bucket received more entries than it reserved.
	ErrCapacity = errors.New("md: cell capacity exceeded")

	// ErrIndexConsistency indicates a particle or cell index outside its range.
	ErrIndexConsistency = errors.New("md: index consistency violated")
)

// ConfigurationError describes the offending parameter.
type ConfigurationError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%v: %s = %g: %s", ErrConfiguration, e.Field, e.Value, e.Reason)
}

func (e *ConfigurationError) Unwrap() error { return ErrConfiguration }

// CapacityError reports a cell bucket filled past its reserved size.
type CapacityError struct {
	Cell     int
	Capacity int
	Count    int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%v: cell %d holds %d entries, capacity %d", ErrCapacity, e.Cell, e.Count, e.Capacity)
}

func (e *CapacityError) Unwrap() error { return ErrCapacity }

// IndexConsistencyError is returned instead of an out-of-bounds access.
// Particle is -1 when the violation is not tied to one particle.
type IndexConsistencyError struct {
	Particle int
	Cell     int
	Cells    int
}

func (e *IndexConsistencyError) Error() string {
	if e.Particle < 0 {
		return fmt.Sprintf("%v: cell %d outside [0, %d)", ErrIndexConsistency, e.Cell, e.Cells)
	}
	return fmt.Sprintf("%v: particle %d mapped to cell %d outside [0, %d)", ErrIndexConsistency, e.Particle, e.Cell, e.Cells)
}

func (e *IndexConsistencyError) Unwrap() error { return ErrIndexConsistency }
