package system

import (
	"math"
	"math/rand"
	"testing"

	"github.com/san-kum/ljcell/internal/cell"
	"github.com/san-kum/ljcell/internal/force"
	"github.com/san-kum/ljcell/internal/md"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestLatticeSide(t *testing.T) {
	tests := []struct{ n, want int }{
		{0, 1}, {1, 1}, {8, 2}, {9, 3}, {27, 3}, {28, 4}, {1000, 10}, {1001, 11},
	}
	for _, tt := range tests {
		if got := LatticeSide(tt.n); got != tt.want {
			t.Errorf("LatticeSide(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestInitCubicLattice(t *testing.T) {
	box := [3]float64{10, 10, 10}
	s := New(1000, box, 1)
	s.InitCubicLattice(rand.New(rand.NewSource(1)), 0)

	// a perfect 10×10×10 lattice with spacing 1: nearest neighbours at 1
	minR2 := math.Inf(1)
	k := force.NewKernel(md.Params{Box: box, Cutoff: 2.5, Sigma: 1, Epsilon: 1})
	for i := 0; i < 50; i++ {
		for j := i + 1; j < s.N; j++ {
			d := k.Separation(s.Pos.At(i), s.Pos.At(j))
			minR2 = math.Min(minR2, r3.Norm2(d))
		}
	}
	if math.Abs(minR2-1) > 1e-9 {
		t.Errorf("nearest neighbour r² = %v, want 1", minR2)
	}

	g, err := cell.NewGrid(box, 2.5, false)
	if err != nil {
		t.Fatal(err)
	}
	l, err := cell.Build(g, s.Pos)
	if err != nil {
		t.Fatal(err)
	}
	if err := l.Validate(); err != nil {
		t.Error(err)
	}
}

func TestInitPositionsInsideBox(t *testing.T) {
	box := [3]float64{5, 6, 7}
	s := New(200, box, 1)
	rng := rand.New(rand.NewSource(2))

	for name, init := range map[string]func(){
		"lattice": func() { s.InitCubicLattice(rng, 0.5) },
		"random":  func() { s.InitRandom(rng) },
	} {
		init()
		for i := 0; i < s.N; i++ {
			p := s.Pos.At(i)
			if p.X < 0 || p.X >= box[0] || p.Y < 0 || p.Y >= box[1] || p.Z < 0 || p.Z >= box[2] {
				t.Fatalf("%s: particle %d at %v outside box", name, i, p)
			}
		}
	}
}

func TestInitVelocities(t *testing.T) {
	s := New(500, [3]float64{10, 10, 10}, 2)
	s.InitVelocities(1.5, rand.New(rand.NewSource(3)))

	if got := s.Temperature(); math.Abs(got-1.5) > 1e-9 {
		t.Errorf("Temperature() = %v, want 1.5", got)
	}
	if p := r3.Norm(s.Momentum()); p > 1e-9 {
		t.Errorf("net momentum %v, want 0", p)
	}
	want := 1.5 * 3 * float64(s.N-1) / 2
	if ke := s.KineticEnergy(); math.Abs(ke-want) > 1e-9 {
		t.Errorf("KineticEnergy() = %v, want %v", ke, want)
	}
}

func TestInitVelocitiesDegenerate(t *testing.T) {
	s := New(1, [3]float64{10, 10, 10}, 1)
	s.Vel.X[0] = 3
	s.InitVelocities(1, rand.New(rand.NewSource(1)))
	if s.KineticEnergy() != 0 || s.Temperature() != 0 {
		t.Error("single particle should be at rest")
	}
}

func TestRelease(t *testing.T) {
	s := New(10, [3]float64{1, 1, 1}, 1)
	if s.Density() != 10 {
		t.Errorf("Density() = %v, want 10", s.Density())
	}
	s.Release()
	if s.N != 0 || s.Pos.X != nil || s.ID != nil {
		t.Error("Release left arrays behind")
	}
}
