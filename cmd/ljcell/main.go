package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/san-kum/ljcell/internal/config"
	"github.com/san-kum/ljcell/internal/experiment"
	"github.com/san-kum/ljcell/internal/export"
	"github.com/san-kum/ljcell/internal/sim"
	"github.com/san-kum/ljcell/internal/storage"
	"github.com/san-kum/ljcell/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir     string
	preset      string
	configFile  string
	particles   int
	steps       int
	dt          float64
	temperature float64
	workers     int
	fallback    bool
	sortEach    bool
	seed        int64
	live        bool
	field       string
	format      string

	benchPreset  string
	benchWorkers int
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "ljcell",
		Short:        "cell-list Lennard-Jones molecular dynamics",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".ljcell", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation and store it",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addSystemFlags(runCmd)
	runCmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of steps")
	runCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	runCmd.Flags().Float64Var(&temperature, "temperature", config.DefaultTemperature, "initial temperature")
	runCmd.Flags().BoolVar(&sortEach, "sort", false, "locality-sort particles every step")
	runCmd.Flags().BoolVar(&live, "live", false, "show a live terminal view")

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "compare the cell-list forces with the all-pairs reference",
		Args:  cobra.NoArgs,
		RunE:  checkForces,
	}
	addSystemFlags(checkCmd)

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "time cell-list, parallel and brute-force evaluation",
		Args:  cobra.NoArgs,
		RunE:  benchForces,
	}
	benchCmd.Flags().StringVar(&benchPreset, "preset", "liquid", "preset supplying density and potential")
	benchCmd.Flags().IntVar(&benchWorkers, "workers", 0, "parallel workers (0: one per CPU)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a sampled observable of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&field, "field", "total", fmt.Sprintf("observable to plot %v", viz.Fields))

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata (json), samples (csv) or a chart (svg)",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&format, "format", "json", "json, csv or svg")
	exportCmd.Flags().StringVar(&field, "field", "total", "observable for svg export")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE:  listPresets,
	}

	rootCmd.AddCommand(runCmd, checkCmd, benchCmd, listCmd, plotCmd, exportCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSystemFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().IntVar(&particles, "particles", config.DefaultParticles, "number of particles")
	cmd.Flags().IntVar(&workers, "workers", config.DefaultWorkers, "force workers (0: one per CPU)")
	cmd.Flags().BoolVar(&fallback, "fallback", false, "allow the all-pairs fallback for small boxes")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0: time based)")
}

// resolveConfig layers defaults, preset, config file and explicitly set flags.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("particles") {
		cfg.Particles = particles
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("fallback") {
		cfg.AllPairsFallback = fallback
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("steps") {
		cfg.Steps = steps
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("temperature") {
		cfg.Temperature = temperature
	}
	if flags.Changed("sort") {
		cfg.Sort = sortEach
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return cfg, cfg.Validate()
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	exp := experiment.New(cfg)
	if err := exp.Setup(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	name := preset
	if name == "" {
		name = "run"
	}

	var result *sim.Result
	if live {
		result, err = viz.RunLive(ctx, name, cfg.Steps, cfg.Params().Box,
			func(ctx context.Context, obs sim.Observer) (*sim.Result, error) {
				return exp.Run(ctx, obs)
			})
	} else {
		fmt.Println(viz.Title.Render(fmt.Sprintf("running %s: %d particles, %d steps", name, cfg.Particles, cfg.Steps)))
		result, err = exp.Run(ctx)
	}
	if result == nil {
		return err
	}
	if err != nil {
		fmt.Println(viz.StatusFailed.Render("stopped: " + err.Error()))
	}

	meta := &storage.RunMetadata{
		Preset:       preset,
		Seed:         cfg.Seed,
		Config:       *cfg,
		Steps:        result.StepsTaken,
		Elapsed:      result.Elapsed.Seconds(),
		Interactions: result.Interactions,
		EnergyDrift:  result.EnergyDrift,
		Metrics:      result.Metrics,
	}
	runID, saveErr := st.Save(meta, result.Samples)
	if saveErr != nil {
		return saveErr
	}

	fmt.Println(viz.Metric("run id", runID))
	fmt.Println(viz.Metric("steps", fmt.Sprint(result.StepsTaken)))
	fmt.Println(viz.Metric("elapsed", result.Elapsed.Round(time.Millisecond).String()))
	if result.StepsTaken > 0 {
		fmt.Println(viz.Metric("per step", (result.Elapsed / time.Duration(result.StepsTaken)).String()))
	}
	fmt.Println(viz.Metric("interactions", fmt.Sprint(result.Interactions)))
	fmt.Println(viz.Metric("energy drift", fmt.Sprintf("%.3e", result.EnergyDrift)))
	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6g\n", name, result.Metrics[name])
	}

	if len(result.Samples) > 1 {
		graph, perr := viz.EnergyPlot(result.Samples, "total", 80, 10)
		if perr == nil {
			fmt.Println()
			fmt.Println(graph)
		}
	}
	return err
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tN\tSTEPS\tDT\tDRIFT\tELAPSED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%.4f\t%.2e\t%.2fs\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Config.Particles,
			run.Steps,
			run.Config.Dt,
			run.EnergyDrift,
			run.Elapsed,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("particles: %d\n", meta.Config.Particles)
	fmt.Printf("samples: %d\n\n", len(samples))

	graph, err := viz.EnergyPlot(samples, field, 80, 10)
	if err != nil {
		return err
	}
	fmt.Println(graph)
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	switch format {
	case "json":
		meta, err := st.Load(runID)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	case "csv":
		f, err := os.Open(st.SamplesPath(runID))
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = io.Copy(os.Stdout, f)
		return err
	case "svg":
		samples, err := st.LoadSamples(runID)
		if err != nil {
			return err
		}
		out, err := export.SamplesToSVG(samples, field, 800, 400)
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	}
	return fmt.Errorf("unknown format %q (json, csv or svg)", format)
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tN\tBOX\tRC\tT\tDT\tSTEPS\tFALLBACK")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%d\t%gx%gx%g\t%g\t%g\t%g\t%d\t%v\n",
			name, p.Particles, p.Box.X, p.Box.Y, p.Box.Z, p.Cutoff, p.Temperature, p.Dt, p.Steps, p.AllPairsFallback)
	}
	return w.Flush()
}
