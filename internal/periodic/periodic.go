// Package periodic implements periodic boundary conditions on an
// axis-aligned box.
package periodic

import "math"

// Wrap maps p into [0, l) by adding or subtracting integer multiples of l.
// Inputs any number of periods outside the box are handled.
func Wrap(p, l float64) float64 {
	if p >= 0 && p < l {
		return p
	}
	w := math.Mod(p, l)
	if w < 0 {
		w += l
	}
	// -tiny + l rounds to l
	if w >= l {
		w = 0
	}
	return w
}

// WrapAll applies Wrap to every element of xs in place.
func WrapAll(xs []float64, l float64) {
	for i, x := range xs {
		xs[i] = Wrap(x, l)
	}
}

// MinImage returns the minimum-image form of the separation d on an axis of
// length l. Separations of exactly ±l/2 are returned unchanged.
func MinImage(d, l float64) float64 {
	half := 0.5 * l
	if d > half || d < -half {
		d -= l * math.Round(d/l)
	}
	return d
}

// Mod is the positive modulo of b by m.
func Mod(b, m int) int {
	r := b % m
	if r < 0 {
		r += m
	}
	return r
}
