// Package cell partitions a periodic box into a grid of cells no smaller than
// the interaction cutoff.
//
// A [Grid] maps coordinates to cells and cells to linear ids. A [List] bins
// particles into cells. [Grid.Neighbors] enumerates the 3×3×3 periodic
// stencil around a cell, so every pair of particles within the cutoff shares
// a cell or sits in adjacent cells.
//
// When the box is shorter than three cutoffs along some axis, the 27-cell
// stencil would visit cells twice. NewGrid then either fails or, when asked
// to, returns a single-cell grid flagged AllPairs.
package cell
