package force

import (
	"github.com/san-kum/ljcell/internal/md"
	"gonum.org/v1/gonum/spatial/r3"
)

// BruteForce evaluates every unordered pair i < j with the minimum-image
// convention. It is the O(N²) reference for the cell-list evaluation.
func BruteForce(pos md.Vectors, p md.Params) (md.Vectors, Result, error) {
	if err := p.Validate(); err != nil {
		return md.Vectors{}, Result{}, err
	}
	n := pos.Len()
	forces := md.NewVectors(max(n, 0))
	if err := checkInputs(pos, forces); err != nil {
		return md.Vectors{}, Result{}, err
	}

	k := NewKernel(p)
	var res Result
	for i := 0; i < n; i++ {
		pi := pos.At(i)
		for j := i + 1; j < n; j++ {
			res.Pairs++
			if k.Separation(pi, pos.At(j)) == (r3.Vec{}) {
				return md.Vectors{}, Result{}, coincidentError(i, j)
			}
			en, f, ok := k.Evaluate(pi, pos.At(j))
			if !ok {
				continue
			}
			res.Energy += en
			res.Interactions++
			forces.X[i] += f.X
			forces.Y[i] += f.Y
			forces.Z[i] += f.Z
			forces.X[j] -= f.X
			forces.Y[j] -= f.Y
			forces.Z[j] -= f.Z
		}
	}
	res.Cells = 1
	res.AllPairs = true
	return forces, res, nil
}
