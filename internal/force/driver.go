package force

import (
	"fmt"

	"github.com/san-kum/ljcell/internal/cell"
	"github.com/san-kum/ljcell/internal/md"
	"gonum.org/v1/gonum/spatial/r3"
)

// Options control how an Evaluator traverses the system.
type Options struct {
	// AllPairsFallback lets boxes narrower than three cutoffs fall back to
	// a single-cell all-pairs pass instead of failing.
	AllPairsFallback bool

	// Workers > 1 splits the cell loop across goroutines.
	Workers int
}

// Result summarises one force evaluation.
type Result struct {
	Energy float64
	// Pairs counts the candidate pairs whose distance was evaluated.
	Pairs int
	// Interactions counts the pairs inside the cutoff.
	Interactions int
	Cells        int
	AllPairs     bool
}

// Evaluator computes forces for a fixed parameter set. The cell list buffers
// are reused between calls, but rebuilt from scratch on each one. An
// Evaluator must not be used from several goroutines at once.
type Evaluator struct {
	params md.Params
	opts   Options
	kernel Kernel
	list   cell.List
	accs   []*accumulator
}

func NewEvaluator(p md.Params, opts Options) (*Evaluator, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Evaluator{params: p, opts: opts, kernel: NewKernel(p)}, nil
}

func (e *Evaluator) Params() md.Params { return e.params }

// Compute overwrites forces with the force on every particle at pos and
// returns the total potential energy. On error forces is left untouched.
func (e *Evaluator) Compute(pos, forces md.Vectors) (Result, error) {
	if err := checkInputs(pos, forces); err != nil {
		return Result{}, err
	}
	g, err := cell.NewGrid(e.params.Box, e.params.Cutoff, e.opts.AllPairsFallback)
	if err != nil {
		return Result{}, err
	}
	if err := e.list.Rebuild(g, pos); err != nil {
		return Result{}, err
	}
	if err := e.checkCoincident(); err != nil {
		return Result{}, err
	}

	forces.Zero()

	var res Result
	switch {
	case g.AllPairs:
		acc := &accumulator{f: forces}
		e.selfPairs(e.list.Bucket(0), acc)
		res = acc.result()
	case e.opts.Workers > 1 && g.Cells > 1:
		res = e.computeParallel(forces)
	default:
		acc := &accumulator{f: forces}
		for c := 0; c < g.Cells; c++ {
			e.visitCell(c, acc)
		}
		res = acc.result()
	}
	res.Cells = g.Cells
	res.AllPairs = g.AllPairs
	return res, nil
}

func checkInputs(pos, forces md.Vectors) error {
	n := pos.Len()
	if n < 0 {
		return &md.ConfigurationError{Field: "positions", Value: float64(len(pos.X)), Reason: "x, y and z lengths differ"}
	}
	if forces.Len() != n {
		return &md.ConfigurationError{Field: "forces", Value: float64(len(forces.X)), Reason: "force arrays must match the particle count"}
	}
	if !pos.IsValid() {
		return &md.ConfigurationError{Field: "positions", Value: float64(n), Reason: "NaN or Inf coordinate"}
	}
	return nil
}

// checkCoincident rejects particles sharing a normalized position. Such
// particles always land in the same cell, so only buckets are scanned.
func (e *Evaluator) checkCoincident() error {
	for c := 0; c < e.list.Grid.Cells; c++ {
		b := e.list.Bucket(c)
		for k, p := range b {
			for _, q := range b[k+1:] {
				if p.Pos == q.Pos {
					return coincidentError(p.Index, q.Index)
				}
			}
		}
	}
	return nil
}

func coincidentError(i, j int) error {
	return &md.ConfigurationError{Field: "positions", Value: float64(i), Reason: fmt.Sprintf("coincident particles %d and %d", i, j)}
}

// visitCell evaluates every pair owned by cell c: pairs with stencil
// neighbours of higher id and pairs inside c itself.
func (e *Evaluator) visitCell(c int, acc *accumulator) {
	own := e.list.Bucket(c)
	if len(own) == 0 {
		return
	}
	for _, n := range e.list.Grid.NeighborsOf(c) {
		switch {
		case c < n:
			e.crossPairs(own, e.list.Bucket(n), acc)
		case c == n:
			e.selfPairs(own, acc)
		}
	}
}

func (e *Evaluator) crossPairs(a, b []cell.Entry, acc *accumulator) {
	if len(b) == 0 {
		return
	}
	for _, p := range a {
		var fi r3.Vec
		for _, q := range b {
			fi = acc.pair(e.kernel, p, q, fi)
		}
		acc.add(p.Index, fi)
	}
}

func (e *Evaluator) selfPairs(b []cell.Entry, acc *accumulator) {
	for k, p := range b {
		var fi r3.Vec
		for _, q := range b[k+1:] {
			fi = acc.pair(e.kernel, p, q, fi)
		}
		acc.add(p.Index, fi)
	}
}

// accumulator collects energy and forces. Force on the first particle of a
// pair is summed locally by the caller and written once; the second
// particle is updated in place.
type accumulator struct {
	f            md.Vectors
	energy       float64
	pairs        int
	interactions int
}

func (a *accumulator) pair(k Kernel, p, q cell.Entry, fi r3.Vec) r3.Vec {
	a.pairs++
	en, f, ok := k.Evaluate(p.Pos, q.Pos)
	if !ok {
		return fi
	}
	a.energy += en
	a.interactions++
	a.f.X[q.Index] -= f.X
	a.f.Y[q.Index] -= f.Y
	a.f.Z[q.Index] -= f.Z
	return r3.Add(fi, f)
}

func (a *accumulator) add(i int, f r3.Vec) {
	a.f.X[i] += f.X
	a.f.Y[i] += f.Y
	a.f.Z[i] += f.Z
}

func (a *accumulator) result() Result {
	return Result{Energy: a.energy, Pairs: a.pairs, Interactions: a.interactions}
}

// ComputeForces is a one-shot evaluation that allocates the force arrays.
func ComputeForces(pos md.Vectors, p md.Params, opts Options) (md.Vectors, float64, error) {
	ev, err := NewEvaluator(p, opts)
	if err != nil {
		return md.Vectors{}, 0, err
	}
	n := pos.Len()
	if n < 0 {
		n = 0
	}
	forces := md.NewVectors(n)
	res, err := ev.Compute(pos, forces)
	if err != nil {
		return md.Vectors{}, 0, err
	}
	return forces, res.Energy, nil
}
