// Package md provides the shared primitives of the force kernel.
//
// The package defines the data every other package passes around:
//
//   - [Vectors]: struct-of-arrays storage of per-particle x, y, z values
//   - [Params]: box, cutoff and Lennard-Jones coefficients for one evaluation
//   - [ConfigurationError], [CapacityError], [IndexConsistencyError]: the
//     error kinds a force evaluation can fail with
//
// # Example
//
//	pos := md.NewVectors(n)
//	p := md.Params{Box: [3]float64{10, 10, 10}, Cutoff: 2.5, Sigma: 1, Epsilon: 1}
//	if err := p.Validate(); err != nil {
//	    return err
//	}
//
// Parameters are immutable for the duration of one force evaluation and are
// passed by value.
package md
