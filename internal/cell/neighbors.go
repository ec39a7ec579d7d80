package cell

import "github.com/san-kum/ljcell/internal/periodic"

// Stencil is the number of cells in a periodic 3×3×3 neighbourhood.
const Stencil = 27

// Neighbors returns the linear ids of the 27 cells around (ix, iy, iz),
// itself included, wrapping periodically on each axis. The order is z-major,
// then y, then x, each running -1, 0, +1.
func (g *Grid) Neighbors(ix, iy, iz int) [Stencil]int {
	var out [Stencil]int
	k := 0
	for dz := -1; dz <= 1; dz++ {
		nz := periodic.Mod(iz+dz, g.N[2])
		for dy := -1; dy <= 1; dy++ {
			ny := periodic.Mod(iy+dy, g.N[1])
			for dx := -1; dx <= 1; dx++ {
				nx := periodic.Mod(ix+dx, g.N[0])
				out[k] = g.LinearID(nx, ny, nz)
				k++
			}
		}
	}
	return out
}

// NeighborsOf is Neighbors for a linear cell id.
func (g *Grid) NeighborsOf(id int) [Stencil]int {
	return g.Neighbors(g.Unlinearize(id))
}
