package force

import (
	"sync"

	"github.com/san-kum/ljcell/internal/md"
)

// minCellsPerWorker keeps tiny grids on fewer goroutines.
const minCellsPerWorker = 8

// computeParallel gives each worker a contiguous range of cells. A cell owns
// every pair (c, n) with c <= n, so ranges never share a pair. Workers write
// into private force buffers that are summed in worker order afterwards.
func (e *Evaluator) computeParallel(forces md.Vectors) Result {
	n := forces.Len()
	cells := e.list.Grid.Cells
	e.ensureAccs(e.opts.Workers)

	chunks := parallelFor(cells, e.opts.Workers, minCellsPerWorker, func(w, start, end int) {
		acc := e.workerAcc(w, n)
		for c := start; c < end; c++ {
			e.visitCell(c, acc)
		}
	})

	var res Result
	for _, acc := range e.accs[:chunks] {
		for i := 0; i < n; i++ {
			forces.X[i] += acc.f.X[i]
			forces.Y[i] += acc.f.Y[i]
			forces.Z[i] += acc.f.Z[i]
		}
		res.Energy += acc.energy
		res.Pairs += acc.pairs
		res.Interactions += acc.interactions
	}
	return res
}

// workerAcc returns worker w's zeroed accumulator. The slice of
// accumulators is sized before any goroutine starts.
func (e *Evaluator) workerAcc(w, n int) *accumulator {
	acc := e.accs[w]
	if acc.f.Len() != n {
		acc.f = md.NewVectors(n)
	} else {
		acc.f.Zero()
	}
	acc.energy, acc.pairs, acc.interactions = 0, 0, 0
	return acc
}

func (e *Evaluator) ensureAccs(workers int) {
	for len(e.accs) < workers {
		e.accs = append(e.accs, &accumulator{})
	}
}

// parallelFor splits [0, n) into at most workers contiguous chunks of at
// least minChunk and runs fn on each concurrently. It returns the number of
// chunks used.
func parallelFor(n, workers, minChunk int, fn func(w, start, end int)) int {
	if n/minChunk < workers {
		workers = n / minChunk
	}
	if workers < 1 {
		workers = 1
	}
	chunk := (n + workers - 1) / workers
	workers = (n + chunk - 1) / chunk

	if workers == 1 {
		fn(0, 0, n)
		return 1
	}

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := min(start+chunk, n)
		go func(w, s, e int) {
			defer wg.Done()
			fn(w, s, e)
		}(w, start, end)
	}
	wg.Wait()
	return workers
}
