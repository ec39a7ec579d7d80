package force

import (
	"math/rand"
	"testing"

	"github.com/san-kum/ljcell/internal/md"
)

func benchSystem(n int, box float64) (md.Vectors, md.Params) {
	rng := rand.New(rand.NewSource(1))
	pos := md.NewVectors(n)
	for i := 0; i < n; i++ {
		pos.X[i] = rng.Float64() * box
		pos.Y[i] = rng.Float64() * box
		pos.Z[i] = rng.Float64() * box
	}
	return pos, md.Params{Box: [3]float64{box, box, box}, Cutoff: 2.5, Sigma: 1, Epsilon: 1}
}

func benchmarkEvaluator(b *testing.B, n int, box float64, opts Options) {
	pos, p := benchSystem(n, box)
	ev, err := NewEvaluator(p, opts)
	if err != nil {
		b.Fatal(err)
	}
	forces := md.NewVectors(n)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ev.Compute(pos, forces); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkComputeForces1k(b *testing.B) {
	benchmarkEvaluator(b, 1000, 10, Options{})
}

func BenchmarkComputeForces8k(b *testing.B) {
	benchmarkEvaluator(b, 8000, 20, Options{})
}

func BenchmarkComputeForces8kParallel(b *testing.B) {
	benchmarkEvaluator(b, 8000, 20, Options{Workers: 4})
}

func BenchmarkBruteForce1k(b *testing.B) {
	pos, p := benchSystem(1000, 10)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := BruteForce(pos, p); err != nil {
			b.Fatal(err)
		}
	}
}
