package force_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/ljcell/internal/force"
	"github.com/san-kum/ljcell/internal/md"
)

func expectSameForces(got, want md.Vectors, tol float64) {
	Expect(got.Len()).To(Equal(want.Len()))
	for _, axis := range [][2][]float64{{got.X, want.X}, {got.Y, want.Y}, {got.Z, want.Z}} {
		for i := range axis[0] {
			Expect(scalar.EqualWithinAbsOrRel(axis[0][i], axis[1][i], tol, tol)).To(BeTrue(),
				"particle %d: got %v want %v", i, axis[0][i], axis[1][i])
		}
	}
}

// withDuplicate moves particle dst onto particle src.
func withDuplicate(pos md.Vectors, src, dst int) md.Vectors {
	pos.Set(dst, pos.At(src))
	return pos
}

var _ = Describe("Evaluator", func() {
	box := [3]float64{10, 10, 10}

	Describe("against the brute-force reference", func() {
		DescribeTable("agrees on energy, forces and interacting pairs",
			func(box [3]float64, n int, seed int64) {
				p := params(box)
				pos := jitteredLattice(box, 1.25, n, seed)

				ev, err := force.NewEvaluator(p, force.Options{})
				Expect(err).NotTo(HaveOccurred())
				forces := md.NewVectors(n)
				res, err := ev.Compute(pos, forces)
				Expect(err).NotTo(HaveOccurred())

				want, ref, err := force.BruteForce(pos, p)
				Expect(err).NotTo(HaveOccurred())

				Expect(res.AllPairs).To(BeFalse())
				Expect(res.Interactions).To(Equal(ref.Interactions))
				Expect(res.Interactions).To(BeNumerically(">", 0))
				Expect(res.Pairs).To(BeNumerically("<=", n*(n-1)/2))
				Expect(scalar.EqualWithinRel(res.Energy, ref.Energy, 1e-12)).To(BeTrue(),
					"energy %v, reference %v", res.Energy, ref.Energy)
				expectSameForces(forces, want, 1e-9)
			},
			Entry("N=50", box, 50, int64(1)),
			Entry("N=300", box, 300, int64(2)),
			Entry("full lattice", box, 512, int64(3)),
			Entry("anisotropic box", [3]float64{10, 12.5, 7.5}, 200, int64(4)),
		)
	})

	It("conserves momentum", func() {
		pos := jitteredLattice(box, 1.25, 400, 11)
		forces, _, err := force.ComputeForces(pos, params(box), force.Options{})
		Expect(err).NotTo(HaveOccurred())

		net := forces.Sum()
		Expect(r3.Norm(net)).To(BeNumerically("<", 1e-9))
	})

	It("overwrites stale forces instead of accumulating", func() {
		n := 100
		pos := jitteredLattice(box, 1.25, n, 5)
		ev, err := force.NewEvaluator(params(box), force.Options{})
		Expect(err).NotTo(HaveOccurred())

		first := md.NewVectors(n)
		r1, err := ev.Compute(pos, first)
		Expect(err).NotTo(HaveOccurred())

		stale := filled(n, 99)
		r2, err := ev.Compute(pos, stale)
		Expect(err).NotTo(HaveOccurred())

		Expect(r2.Energy).To(Equal(r1.Energy))
		Expect(stale).To(Equal(first))
	})

	It("gives no interaction at exactly the cutoff distance", func() {
		pos := md.Vectors{X: []float64{1, 3.5}, Y: []float64{5, 5}, Z: []float64{5, 5}}
		forces, energy, err := force.ComputeForces(pos, params(box), force.Options{})
		Expect(err).NotTo(HaveOccurred())
		Expect(energy).To(BeZero())
		Expect(forces.Sum()).To(Equal(r3.Vec{}))
		Expect(forces.X).To(Equal([]float64{0, 0}))
	})

	It("interacts through the periodic boundary", func() {
		pos := md.Vectors{X: []float64{0.1, 9.9}, Y: []float64{5, 5}, Z: []float64{5, 5}}
		p := params(box)
		p.Sigma = 0.2
		forces, energy, err := force.ComputeForces(pos, p, force.Options{})
		Expect(err).NotTo(HaveOccurred())

		// r = σ: V = 0, the particles repel across x = 0
		Expect(energy).To(BeNumerically("~", 0, 1e-9))
		Expect(forces.X[0]).To(BeNumerically(">", 0))
		Expect(forces.X[1]).To(BeNumerically("~", -forces.X[0], 1e-9))
	})

	It("handles empty and single-particle systems", func() {
		for _, n := range []int{0, 1} {
			pos := jitteredLattice(box, 1.25, n, 1)
			forces, energy, err := force.ComputeForces(pos, params(box), force.Options{})
			Expect(err).NotTo(HaveOccurred())
			Expect(energy).To(BeZero())
			Expect(forces.Len()).To(Equal(n))
		}
	})

	It("is invariant under reordering of the input", func() {
		n := 250
		pos := jitteredLattice(box, 1.25, n, 8)
		forces, energy, err := force.ComputeForces(pos, params(box), force.Options{})
		Expect(err).NotTo(HaveOccurred())

		rev := md.NewVectors(n)
		for i := 0; i < n; i++ {
			rev.Set(n-1-i, pos.At(i))
		}
		revForces, revEnergy, err := force.ComputeForces(rev, params(box), force.Options{})
		Expect(err).NotTo(HaveOccurred())

		Expect(scalar.EqualWithinRel(energy, revEnergy, 1e-12)).To(BeTrue())
		for i := 0; i < n; i++ {
			Expect(scalar.EqualWithinAbsOrRel(forces.X[i], revForces.X[n-1-i], 1e-9, 1e-9)).To(BeTrue())
			Expect(scalar.EqualWithinAbsOrRel(forces.Y[i], revForces.Y[n-1-i], 1e-9, 1e-9)).To(BeTrue())
			Expect(scalar.EqualWithinAbsOrRel(forces.Z[i], revForces.Z[n-1-i], 1e-9, 1e-9)).To(BeTrue())
		}
	})

	It("tolerates positions outside the primary box", func() {
		n := 120
		pos := jitteredLattice(box, 1.25, n, 9)
		shifted := pos.Clone()
		for i := 0; i < n; i++ {
			shifted.X[i] += 30
			shifted.Y[i] -= 20
		}
		_, e1, err := force.ComputeForces(pos, params(box), force.Options{})
		Expect(err).NotTo(HaveOccurred())
		_, e2, err := force.ComputeForces(shifted, params(box), force.Options{})
		Expect(err).NotTo(HaveOccurred())
		Expect(scalar.EqualWithinRel(e1, e2, 1e-9)).To(BeTrue())
	})

	Describe("small boxes", func() {
		small := [3]float64{6, 6, 6}

		It("fails before touching forces without the fallback", func() {
			n := 20
			pos := jitteredLattice(small, 1.2, n, 3)
			forces := filled(n, 42)

			ev, err := force.NewEvaluator(params(small), force.Options{})
			Expect(err).NotTo(HaveOccurred())
			_, err = ev.Compute(pos, forces)
			Expect(err).To(MatchError(md.ErrConfiguration))
			Expect(forces).To(Equal(filled(n, 42)))
		})

		It("falls back to all pairs when enabled", func() {
			n := 100
			pos := jitteredLattice(small, 1.2, n, 3)
			p := params(small)

			ev, err := force.NewEvaluator(p, force.Options{AllPairsFallback: true, Workers: 4})
			Expect(err).NotTo(HaveOccurred())
			forces := md.NewVectors(n)
			res, err := ev.Compute(pos, forces)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.AllPairs).To(BeTrue())
			Expect(res.Cells).To(Equal(1))
			Expect(res.Pairs).To(Equal(n * (n - 1) / 2))

			want, ref, err := force.BruteForce(pos, p)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Interactions).To(Equal(ref.Interactions))
			Expect(scalar.EqualWithinRel(res.Energy, ref.Energy, 1e-12)).To(BeTrue())
			expectSameForces(forces, want, 1e-9)
		})
	})

	Describe("input validation", func() {
		It("rejects mismatched force arrays", func() {
			pos := jitteredLattice(box, 1.25, 10, 1)
			ev, err := force.NewEvaluator(params(box), force.Options{})
			Expect(err).NotTo(HaveOccurred())
			_, err = ev.Compute(pos, md.NewVectors(9))
			Expect(err).To(MatchError(md.ErrConfiguration))
		})

		It("rejects NaN coordinates without writing forces", func() {
			pos := jitteredLattice(box, 1.25, 10, 1)
			pos.Y[3] = math.NaN()
			forces := filled(10, 7)
			ev, err := force.NewEvaluator(params(box), force.Options{})
			Expect(err).NotTo(HaveOccurred())
			_, err = ev.Compute(pos, forces)
			Expect(err).To(MatchError(md.ErrConfiguration))
			Expect(forces).To(Equal(filled(10, 7)))
		})
	})

	Describe("coincident particles", func() {
		DescribeTable("fail before touching forces",
			func(pos md.Vectors, b [3]float64, opts force.Options) {
				n := pos.Len()
				forces := filled(n, 3)
				ev, err := force.NewEvaluator(params(b), opts)
				Expect(err).NotTo(HaveOccurred())

				_, err = ev.Compute(pos, forces)
				Expect(err).To(MatchError(md.ErrConfiguration))
				var cfgErr *md.ConfigurationError
				Expect(errors.As(err, &cfgErr)).To(BeTrue())
				Expect(cfgErr.Field).To(Equal("positions"))
				Expect(forces).To(Equal(filled(n, 3)))

				_, _, err = force.BruteForce(pos, params(b))
				Expect(err).To(MatchError(md.ErrConfiguration))
			},
			Entry("same point",
				md.Vectors{X: []float64{1, 1}, Y: []float64{1, 1}, Z: []float64{1, 1}},
				box, force.Options{}),
			Entry("periodic images of one point",
				md.Vectors{X: []float64{0, 2, 10}, Y: []float64{5, 5, 5}, Z: []float64{3, 3, 13}},
				box, force.Options{}),
			Entry("among many particles, in parallel",
				withDuplicate(jitteredLattice(box, 1.25, 300, 4), 17, 250),
				box, force.Options{Workers: 4}),
			Entry("in the all-pairs fallback",
				md.Vectors{X: []float64{1, 2, 1}, Y: []float64{1, 2, 1}, Z: []float64{1, 2, 1}},
				[3]float64{6, 6, 6}, force.Options{AllPairsFallback: true}),
		)
	})

	Describe("parallel evaluation", func() {
		It("matches the serial result", func() {
			big := [3]float64{20, 20, 20}
			n := 2000
			pos := jitteredLattice(big, 1.25, n, 21)
			p := params(big)

			serial, err := force.NewEvaluator(p, force.Options{})
			Expect(err).NotTo(HaveOccurred())
			want := md.NewVectors(n)
			ref, err := serial.Compute(pos, want)
			Expect(err).NotTo(HaveOccurred())

			par, err := force.NewEvaluator(p, force.Options{Workers: 4})
			Expect(err).NotTo(HaveOccurred())
			got := md.NewVectors(n)
			res, err := par.Compute(pos, got)
			Expect(err).NotTo(HaveOccurred())

			Expect(res.Pairs).To(Equal(ref.Pairs))
			Expect(res.Interactions).To(Equal(ref.Interactions))
			Expect(scalar.EqualWithinRel(res.Energy, ref.Energy, 1e-12)).To(BeTrue())
			expectSameForces(got, want, 1e-9)
			Expect(r3.Norm(got.Sum())).To(BeNumerically("<", 1e-8))

			again := md.NewVectors(n)
			res2, err := par.Compute(pos, again)
			Expect(err).NotTo(HaveOccurred())
			Expect(res2.Energy).To(Equal(res.Energy))
			Expect(again).To(Equal(got))
		})
	})
})
