package cell

import (
	"github.com/san-kum/ljcell/internal/md"
	"github.com/san-kum/ljcell/internal/periodic"
	"gonum.org/v1/gonum/spatial/r3"
)

// Entry is one particle in a cell bucket. Index is the particle's position in
// the caller's arrays and is the only index force updates may use.
type Entry struct {
	Index int
	Pos   r3.Vec
}

// List stores every cell's bucket contiguously: the entries of cell id are
// Entries[Start[id]:Start[id+1]], in increasing particle index order.
//
// A List may be rebuilt any number of times; its buffers are reused but no
// contents survive a Rebuild.
type List struct {
	Grid    *Grid
	Start   []int
	Entries []Entry

	cellOf []int
	cursor []int
}

// Build bins pos into a new List on g.
func Build(g *Grid, pos md.Vectors) (*List, error) {
	l := &List{}
	if err := l.Rebuild(g, pos); err != nil {
		return nil, err
	}
	return l, nil
}

// Rebuild bins pos on g in two passes: count per-cell occupancy, then fill
// exactly sized buckets.
func (l *List) Rebuild(g *Grid, pos md.Vectors) error {
	n := pos.Len()
	if n < 0 {
		return &md.ConfigurationError{Field: "positions", Value: float64(len(pos.X)), Reason: "x, y and z lengths differ"}
	}

	l.Grid = g
	l.Start = resize(l.Start, g.Cells+1)
	l.cursor = resize(l.cursor, g.Cells)
	l.cellOf = resize(l.cellOf, n)
	if cap(l.Entries) < n {
		l.Entries = make([]Entry, n)
	}
	l.Entries = l.Entries[:n]

	for i := 0; i < n; i++ {
		id := g.CellOf(pos.X[i], pos.Y[i], pos.Z[i])
		if id < 0 || id >= g.Cells {
			return &md.IndexConsistencyError{Particle: i, Cell: id, Cells: g.Cells}
		}
		l.cellOf[i] = id
		l.Start[id+1]++
	}
	for id := 0; id < g.Cells; id++ {
		l.Start[id+1] += l.Start[id]
	}
	copy(l.cursor, l.Start[:g.Cells])

	for i := 0; i < n; i++ {
		id := l.cellOf[i]
		c := l.cursor[id]
		if c >= l.Start[id+1] {
			return &md.CapacityError{Cell: id, Capacity: l.Start[id+1] - l.Start[id], Count: c - l.Start[id] + 1}
		}
		l.Entries[c] = Entry{
			Index: i,
			Pos: r3.Vec{
				X: periodic.Wrap(pos.X[i], g.Box[0]),
				Y: periodic.Wrap(pos.Y[i], g.Box[1]),
				Z: periodic.Wrap(pos.Z[i], g.Box[2]),
			},
		}
		l.cursor[id]++
	}
	return nil
}

// resize returns s with length n and every element zero.
func resize(s []int, n int) []int {
	if cap(s) < n {
		return make([]int, n)
	}
	s = s[:n]
	clear(s)
	return s
}

func (l *List) Bucket(id int) []Entry {
	return l.Entries[l.Start[id]:l.Start[id+1]]
}

func (l *List) Count(id int) int {
	return l.Start[id+1] - l.Start[id]
}

// Len returns the number of binned particles.
func (l *List) Len() int { return len(l.Entries) }

// MaxOccupancy returns the largest bucket size.
func (l *List) MaxOccupancy() int {
	m := 0
	for id := 0; id < l.Grid.Cells; id++ {
		if c := l.Count(id); c > m {
			m = c
		}
	}
	return m
}

// Validate checks that every particle index 0..Len()-1 appears exactly once
// and that every entry sits in the cell its position maps to.
func (l *List) Validate() error {
	n := l.Len()
	seen := make([]bool, n)
	for id := 0; id < l.Grid.Cells; id++ {
		for _, e := range l.Bucket(id) {
			if e.Index < 0 || e.Index >= n || seen[e.Index] {
				return &md.IndexConsistencyError{Particle: e.Index, Cell: id, Cells: l.Grid.Cells}
			}
			seen[e.Index] = true
			if got := l.Grid.CellOf(e.Pos.X, e.Pos.Y, e.Pos.Z); got != id {
				return &md.IndexConsistencyError{Particle: e.Index, Cell: got, Cells: l.Grid.Cells}
			}
		}
	}
	return nil
}
