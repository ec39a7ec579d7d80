// Package locality reorders particle arrays so that particles close in space
// sit close in memory. The force kernel is indifferent to particle order; the
// sort only improves cache behaviour of the cell list build.
package locality

import (
	"slices"

	"github.com/san-kum/ljcell/internal/md"
	"github.com/san-kum/ljcell/internal/system"
)

// Pair is a sort record: primary and secondary key plus the original index.
type Pair struct {
	Key1  float64
	Key2  float64
	Value int
}

// Compare orders by Key1, then Key2. Pairs with equal keys compare equal.
func Compare(a, b Pair) int {
	switch {
	case a.Key1 < b.Key1:
		return -1
	case a.Key1 > b.Key1:
		return 1
	case a.Key2 < b.Key2:
		return -1
	case a.Key2 > b.Key2:
		return 1
	}
	return 0
}

// Sort orders pairs by Compare. Ties keep their input order.
func Sort(pairs []Pair) {
	slices.SortStableFunc(pairs, Compare)
}

// Order returns the permutation that sorts particles by (key1, key2).
// perm[i] is the old index of the particle that moves to slot i.
func Order(key1, key2 []float64) []int {
	pairs := make([]Pair, len(key1))
	for i := range pairs {
		pairs[i] = Pair{Key1: key1[i], Key2: key2[i], Value: i}
	}
	Sort(pairs)
	perm := make([]int, len(pairs))
	for i, p := range pairs {
		perm[i] = p.Value
	}
	return perm
}

// Apply rearranges each array in place so that arr[i] = old[perm[i]].
func Apply(perm []int, arrays ...[]float64) {
	scratch := make([]float64, len(perm))
	for _, a := range arrays {
		for i, p := range perm {
			scratch[i] = a[p]
		}
		copy(a, scratch)
	}
}

func applyInts(perm []int, a []int) {
	scratch := make([]int, len(perm))
	for i, p := range perm {
		scratch[i] = a[p]
	}
	copy(a, scratch)
}

// SortSystem sorts the system by x then y. Velocities, forces and ids move
// with their positions. It returns the permutation used.
func SortSystem(s *system.System) []int {
	perm := Order(s.Pos.X, s.Pos.Y)
	for _, v := range []md.Vectors{s.Pos, s.Vel, s.Force} {
		Apply(perm, v.X, v.Y, v.Z)
	}
	applyInts(perm, s.ID)
	return perm
}
