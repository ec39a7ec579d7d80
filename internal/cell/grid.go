package cell

import (
	"math"

	"github.com/san-kum/ljcell/internal/md"
	"github.com/san-kum/ljcell/internal/periodic"
)

// MaxCellsPerAxis caps the per-axis cell count. Capping only enlarges cells,
// so the cell size stays at or above the cutoff.
const MaxCellsPerAxis = 128

const minCellsPerAxis = 3

var axisNames = [3]string{"box.x", "box.y", "box.z"}

// Grid describes the cell decomposition of a periodic box.
type Grid struct {
	N        [3]int
	Size     [3]float64
	Box      [3]float64
	Cells    int
	AllPairs bool
}

// NewGrid derives the grid for box and cutoff. Each axis gets
// max(3, floor(L/cutoff)) cells. If an axis cannot hold three cells of at
// least cutoff, NewGrid returns a *md.ConfigurationError unless allowAllPairs
// is set, in which case the grid degenerates to one cell with AllPairs true.
func NewGrid(box [3]float64, cutoff float64, allowAllPairs bool) (*Grid, error) {
	if !(cutoff > 0) || math.IsInf(cutoff, 0) {
		return nil, &md.ConfigurationError{Field: "cutoff", Value: cutoff, Reason: "cutoff must be positive and finite"}
	}
	for i, l := range box {
		if !(l > 0) || math.IsInf(l, 0) {
			return nil, &md.ConfigurationError{Field: axisNames[i], Value: l, Reason: "box length must be positive and finite"}
		}
	}

	g := &Grid{Box: box}
	for i, l := range box {
		n := cellsAlong(l, cutoff)
		if n >= minCellsPerAxis {
			g.N[i] = n
			g.Size[i] = l / float64(n)
			continue
		}
		if !allowAllPairs {
			return nil, &md.ConfigurationError{
				Field:  axisNames[i],
				Value:  l,
				Reason: "box holds fewer than 3 cells of cutoff size; enable the all-pairs fallback",
			}
		}
		return allPairsGrid(box, cutoff)
	}
	g.Cells = g.N[0] * g.N[1] * g.N[2]
	return g, nil
}

func cellsAlong(l, cutoff float64) int {
	f := math.Floor(l / cutoff)
	if f > MaxCellsPerAxis {
		return MaxCellsPerAxis
	}
	n := int(f)
	for n > 0 && l/float64(n) < cutoff {
		n--
	}
	return n
}

// allPairsGrid is valid only while the cutoff sphere fits inside one
// minimum image on every axis.
func allPairsGrid(box [3]float64, cutoff float64) (*Grid, error) {
	for i, l := range box {
		if cutoff > 0.5*l {
			return nil, &md.ConfigurationError{
				Field:  axisNames[i],
				Value:  l,
				Reason: "cutoff exceeds half the box length; minimum image is ambiguous",
			}
		}
	}
	return &Grid{
		N:        [3]int{1, 1, 1},
		Size:     box,
		Box:      box,
		Cells:    1,
		AllPairs: true,
	}, nil
}

// CellIndex returns the cell coordinates of a point. Coordinates are wrapped
// into the box first, and the result is clamped to [0, N-1] per axis so that
// x == L and rounding at the boundary never produce an out-of-range cell.
func (g *Grid) CellIndex(x, y, z float64) (ix, iy, iz int) {
	ix = g.axisIndex(0, x)
	iy = g.axisIndex(1, y)
	iz = g.axisIndex(2, z)
	return ix, iy, iz
}

func (g *Grid) axisIndex(axis int, p float64) int {
	w := periodic.Wrap(p, g.Box[axis])
	f := w / g.Size[axis]
	if !(f >= 0) {
		return 0
	}
	i := int(f)
	if i >= g.N[axis] {
		i = g.N[axis] - 1
	}
	return i
}

// LinearID returns ix + Nx*(iy + Ny*iz).
func (g *Grid) LinearID(ix, iy, iz int) int {
	return ix + g.N[0]*(iy+g.N[1]*iz)
}

// Unlinearize is the inverse of LinearID.
func (g *Grid) Unlinearize(id int) (ix, iy, iz int) {
	area := g.N[0] * g.N[1]
	iz = id / area
	rem := id - iz*area
	iy = rem / g.N[0]
	ix = rem % g.N[0]
	return ix, iy, iz
}

// CellOf returns the linear cell id owning a point.
func (g *Grid) CellOf(x, y, z float64) int {
	return g.LinearID(g.CellIndex(x, y, z))
}
