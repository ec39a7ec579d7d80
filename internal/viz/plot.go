package viz

import (
	"fmt"
	"slices"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/ljcell/internal/sim"
)

// Fields lists the sample columns that can be plotted.
var Fields = []string{"total", "kinetic", "potential", "temperature", "momentum"}

// Series extracts one observable from samples.
func Series(samples []sim.Sample, field string) ([]float64, error) {
	var get func(sim.Sample) float64
	switch field {
	case "total":
		get = func(s sim.Sample) float64 { return s.Total }
	case "kinetic":
		get = func(s sim.Sample) float64 { return s.Kinetic }
	case "potential":
		get = func(s sim.Sample) float64 { return s.Potential }
	case "temperature":
		get = func(s sim.Sample) float64 { return s.Temperature }
	case "momentum":
		get = func(s sim.Sample) float64 { return s.Momentum }
	default:
		return nil, fmt.Errorf("unknown field %q, want one of %v", field, Fields)
	}
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = get(s)
	}
	return out, nil
}

// EnergyPlot draws field against sample index.
func EnergyPlot(samples []sim.Sample, field string, width, height int) (string, error) {
	data, err := Series(samples, field)
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", fmt.Errorf("no samples to plot")
	}
	caption := field
	if len(samples) > 1 {
		caption = fmt.Sprintf("%s, t = %.3g .. %.3g", field, samples[0].Time, samples[len(samples)-1].Time)
	}
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	), nil
}

// Spread returns max - min of a series.
func Spread(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return slices.Max(data) - slices.Min(data)
}
