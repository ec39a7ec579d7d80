package main

import (
	"fmt"
	"math"
	"math/rand"
	"os"
	"runtime"
	"text/tabwriter"
	"time"

	"github.com/san-kum/ljcell/internal/cell"
	"github.com/san-kum/ljcell/internal/config"
	"github.com/san-kum/ljcell/internal/experiment"
	"github.com/san-kum/ljcell/internal/force"
	"github.com/san-kum/ljcell/internal/md"
	"github.com/san-kum/ljcell/internal/system"
	"github.com/san-kum/ljcell/internal/viz"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	checkTolerance = 1e-9
	benchReps      = 3
	bruteForceMaxN = 4000
)

var benchSizes = []int{500, 1000, 2000, 4000, 8000, 16000}

func checkForces(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	exp := experiment.New(cfg)
	if err := exp.Setup(); err != nil {
		return err
	}
	sys, ev := exp.System(), exp.Evaluator()

	forces := md.NewVectors(sys.N)
	res, err := ev.Compute(sys.Pos, forces)
	if err != nil {
		return err
	}
	ref, refRes, err := force.BruteForce(sys.Pos, ev.Params())
	if err != nil {
		return err
	}

	par, err := force.NewEvaluator(ev.Params(), force.Options{
		AllPairsFallback: cfg.AllPairsFallback,
		Workers:          runtime.GOMAXPROCS(0),
	})
	if err != nil {
		return err
	}
	parForces := md.NewVectors(sys.N)
	if _, err := par.Compute(sys.Pos, parForces); err != nil {
		return err
	}

	scale := math.Max(maxAbs(ref), math.SmallestNonzeroFloat64)
	fDev := maxAbsDiff(forces, ref) / scale
	pDev := maxAbsDiff(parForces, ref) / scale
	eDev := math.Abs(res.Energy-refRes.Energy) / math.Max(math.Abs(refRes.Energy), math.SmallestNonzeroFloat64)

	mode := fmt.Sprintf("cell list, %d cells", res.Cells)
	if res.AllPairs {
		mode = "all-pairs fallback"
	}
	fmt.Println(viz.Title.Render(fmt.Sprintf("force check: %d particles, %s", sys.N, mode)))
	fmt.Println(viz.Metric("energy", fmt.Sprintf("%.12g", res.Energy)))
	fmt.Println(viz.Metric("reference", fmt.Sprintf("%.12g", refRes.Energy)))
	fmt.Println(viz.Metric("energy dev", fmt.Sprintf("%.3e", eDev)))
	fmt.Println(viz.Metric("force dev", fmt.Sprintf("%.3e", fDev)))
	fmt.Println(viz.Metric("parallel dev", fmt.Sprintf("%.3e (%d workers)", pDev, runtime.GOMAXPROCS(0))))
	fmt.Println(viz.Metric("net force", fmt.Sprintf("%.3e", r3.Norm(forces.Sum()))))
	fmt.Println(viz.Metric("pairs", fmt.Sprintf("%d examined, %d reference", res.Pairs, refRes.Pairs)))
	fmt.Println(viz.Metric("interactions", fmt.Sprintf("%d, %d reference", res.Interactions, refRes.Interactions)))

	if fDev > checkTolerance || pDev > checkTolerance || eDev > checkTolerance || res.Interactions != refRes.Interactions {
		fmt.Println(viz.StatusFailed.Render("FAIL"))
		return fmt.Errorf("cell-list result deviates from the all-pairs reference")
	}
	fmt.Println(viz.StatusRunning.Render("OK"))
	return nil
}

func benchForces(cmd *cobra.Command, args []string) error {
	base := config.GetPreset(benchPreset)
	if base == nil {
		return fmt.Errorf("unknown preset: %s (available: %v)", benchPreset, config.ListPresets())
	}
	w := benchWorkers
	if w <= 0 {
		w = runtime.GOMAXPROCS(0)
	}
	density := float64(base.Particles) / (base.Box.X * base.Box.Y * base.Box.Z)

	fmt.Printf("benchmarking %s density %.3f, rc %g, %d workers\n\n", benchPreset, density, base.Cutoff, w)
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "N\tBOX\tCELLS\tSERIAL\tPARALLEL\tBRUTE\tSPEEDUP")

	for _, n := range benchSizes {
		l := math.Cbrt(float64(n) / density)
		p := base.Params()
		p.Box = [3]float64{l, l, l}
		g, err := cell.NewGrid(p.Box, p.Cutoff, false)
		if err != nil {
			continue
		}

		sys := system.New(n, p.Box, base.Mass)
		sys.InitCubicLattice(rand.New(rand.NewSource(1)), 0.05)

		serial, err := timeEvaluator(p, force.Options{Workers: 1}, sys.Pos)
		if err != nil {
			return err
		}
		parallel, err := timeEvaluator(p, force.Options{Workers: w}, sys.Pos)
		if err != nil {
			return err
		}

		brute, speedup := "-", "-"
		if n <= bruteForceMaxN {
			d, err := timeIt(func() error {
				_, _, err := force.BruteForce(sys.Pos, p)
				return err
			})
			if err != nil {
				return err
			}
			brute = d.String()
			speedup = fmt.Sprintf("%.1fx", d.Seconds()/serial.Seconds())
		}
		fmt.Fprintf(tw, "%d\t%.2f\t%d\t%v\t%v\t%s\t%s\n", n, l, g.Cells, serial, parallel, brute, speedup)
		sys.Release()
	}
	return tw.Flush()
}

func timeEvaluator(p md.Params, opts force.Options, pos md.Vectors) (time.Duration, error) {
	ev, err := force.NewEvaluator(p, opts)
	if err != nil {
		return 0, err
	}
	forces := md.NewVectors(pos.Len())
	return timeIt(func() error {
		_, err := ev.Compute(pos, forces)
		return err
	})
}

// timeIt reports the fastest of benchReps runs after one warm-up.
func timeIt(fn func() error) (time.Duration, error) {
	if err := fn(); err != nil {
		return 0, err
	}
	best := time.Duration(math.MaxInt64)
	for i := 0; i < benchReps; i++ {
		start := time.Now()
		if err := fn(); err != nil {
			return 0, err
		}
		best = min(best, time.Since(start))
	}
	return best.Round(time.Microsecond), nil
}

func maxAbs(v md.Vectors) float64 {
	if v.Len() == 0 {
		return 0
	}
	return math.Max(floats.Norm(v.X, math.Inf(1)), math.Max(floats.Norm(v.Y, math.Inf(1)), floats.Norm(v.Z, math.Inf(1))))
}

func maxAbsDiff(a, b md.Vectors) float64 {
	if a.Len() == 0 {
		return 0
	}
	d := floats.Distance(a.X, b.X, math.Inf(1))
	d = math.Max(d, floats.Distance(a.Y, b.Y, math.Inf(1)))
	return math.Max(d, floats.Distance(a.Z, b.Z, math.Inf(1)))
}
