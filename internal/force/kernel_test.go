package force_test

import (
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/ljcell/internal/force"
	"github.com/san-kum/ljcell/internal/md"
)

var _ = Describe("Kernel", func() {
	box := [3]float64{10, 10, 10}

	It("gives zero energy and 24ε/σ² coefficient at r = σ", func() {
		p := params(box)
		p.Epsilon = 1.5
		k := force.NewKernel(p)

		pi := r3.Vec{X: 1, Y: 1, Z: 1}
		pj := r3.Vec{X: 2, Y: 1, Z: 1}
		energy, f, ok := k.Evaluate(pi, pj)
		Expect(ok).To(BeTrue())
		Expect(energy).To(BeNumerically("~", 0, 1e-15))

		// along pi - pj with magnitude 24ε/σ²·σ
		Expect(f.X).To(BeNumerically("~", -24*1.5, 1e-12))
		Expect(f.Y).To(BeZero())
		Expect(f.Z).To(BeZero())
	})

	It("scales the force coefficient with σ", func() {
		p := params(box)
		p.Sigma = 1.5
		k := force.NewKernel(p)

		pi := r3.Vec{X: 1, Y: 1, Z: 1}
		pj := r3.Vec{X: 1, Y: 2.5, Z: 1}
		energy, f, ok := k.Evaluate(pi, pj)
		Expect(ok).To(BeTrue())
		Expect(energy).To(BeNumerically("~", 0, 1e-15))

		d := k.Separation(pi, pj)
		coeff := 24 * p.Epsilon / (p.Sigma * p.Sigma)
		Expect(f.Y).To(BeNumerically("~", coeff*d.Y, 1e-12))
	})

	It("matches the closed-form potential away from σ", func() {
		k := force.NewKernel(params(box))
		r := 1.3
		energy, f, ok := k.Evaluate(r3.Vec{X: 5 + r, Y: 5, Z: 5}, r3.Vec{X: 5, Y: 5, Z: 5})
		Expect(ok).To(BeTrue())

		s6 := math.Pow(1/r, 6)
		Expect(energy).To(BeNumerically("~", 4*(s6*s6-s6), 1e-12))
		Expect(f.X).To(BeNumerically("~", 24/(r*r)*(2*s6*s6-s6)*r, 1e-12))
	})

	DescribeTable("cutoff boundary",
		func(r float64, interacts bool) {
			k := force.NewKernel(params(box))
			energy, f, ok := k.Evaluate(r3.Vec{X: 1, Y: 5, Z: 5}, r3.Vec{X: 1 + r, Y: 5, Z: 5})
			Expect(ok).To(Equal(interacts))
			if interacts {
				Expect(energy).NotTo(BeZero())
				Expect(r3.Norm(f)).To(BeNumerically(">", 0))
			} else {
				Expect(energy).To(BeZero())
				Expect(f).To(Equal(r3.Vec{}))
			}
		},
		Entry("exactly at the cutoff", 2.5, false),
		Entry("just inside the cutoff", 2.5-1e-9, true),
		Entry("beyond the cutoff", 3.0, false),
		Entry("well inside", 1.1, true),
	)

	It("uses the minimum image across box edges", func() {
		k := force.NewKernel(params(box))
		pi := r3.Vec{X: 0.01 * box[0], Y: 5, Z: 5}
		pj := r3.Vec{X: 0.99 * box[0], Y: 5, Z: 5}

		d := k.Separation(pi, pj)
		Expect(d.X).To(BeNumerically("~", 0.02*box[0], 1e-12))

		_, _, ok := k.Evaluate(pi, pj)
		Expect(ok).To(BeTrue(), "0.98·L apart directly but 0.02·L through the boundary")
	})

	It("is symmetric under exchange of the pair", func() {
		k := force.NewKernel(params(box))
		rng := rand.New(rand.NewSource(7))
		for n := 0; n < 200; n++ {
			pi := r3.Vec{X: rng.Float64() * 10, Y: rng.Float64() * 10, Z: rng.Float64() * 10}
			pj := r3.Add(pi, r3.Vec{X: rng.Float64()*4 - 2, Y: rng.Float64()*4 - 2, Z: rng.Float64()*4 - 2})

			eij, fij, okij := k.Evaluate(pi, pj)
			eji, fji, okji := k.Evaluate(pj, pi)
			Expect(okij).To(Equal(okji))
			Expect(eij).To(Equal(eji))
			Expect(fij).To(Equal(r3.Scale(-1, fji)))
		}
	})
})

var _ = Describe("Params", func() {
	DescribeTable("rejects invalid values",
		func(p md.Params, field string) {
			_, err := force.NewEvaluator(p, force.Options{})
			Expect(err).To(MatchError(md.ErrConfiguration))

			var cfgErr *md.ConfigurationError
			Expect(err).To(BeAssignableToTypeOf(cfgErr))
			Expect(err.(*md.ConfigurationError).Field).To(Equal(field))
		},
		Entry("zero box", md.Params{Box: [3]float64{0, 10, 10}, Cutoff: 2.5, Sigma: 1, Epsilon: 1}, "box.x"),
		Entry("negative cutoff", md.Params{Box: [3]float64{10, 10, 10}, Cutoff: -1, Sigma: 1, Epsilon: 1}, "cutoff"),
		Entry("zero sigma", md.Params{Box: [3]float64{10, 10, 10}, Cutoff: 2.5, Sigma: 0, Epsilon: 1}, "sigma"),
		Entry("negative epsilon", md.Params{Box: [3]float64{10, 10, 10}, Cutoff: 2.5, Sigma: 1, Epsilon: -1}, "epsilon"),
	)
})
