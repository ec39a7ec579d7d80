// Package force evaluates truncated Lennard-Jones forces and potential energy
// for a periodic particle system.
//
// The [Evaluator] bins particles into a cell list on every call and visits
// each unordered pair of cells once: a cell pairs with every stencil
// neighbour of higher id, and with itself by local ordering. Every pair
// contribution is added to one particle and subtracted from the other, so
// the total force is zero up to rounding.
//
//	ev, err := force.NewEvaluator(params, force.Options{Workers: 4})
//	res, err := ev.Compute(pos, forces)
//	fmt.Println(res.Energy, res.Interactions)
//
// [BruteForce] computes the same quantities with an O(N²) pair loop and is
// the reference the cell-list evaluation is checked against.
package force
