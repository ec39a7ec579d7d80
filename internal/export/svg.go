// Package export renders stored runs to files.
package export

import (
	"fmt"
	"slices"
	"strings"

	"github.com/san-kum/ljcell/internal/sim"
	"github.com/san-kum/ljcell/internal/viz"
)

// SamplesToSVG draws one observable of a run against simulated time.
func SamplesToSVG(samples []sim.Sample, field string, width, height int) (string, error) {
	data, err := viz.Series(samples, field)
	if err != nil {
		return "", err
	}
	times := make([]float64, len(samples))
	for i, s := range samples {
		times[i] = s.Time
	}
	out := SeriesToSVG(times, data, width, height, "#00ccff")
	if out == "" {
		return "", fmt.Errorf("need at least two samples, have %d", len(samples))
	}
	return out, nil
}

// SeriesToSVG draws the polyline (xs[i], ys[i]) scaled to fill the image with
// 10% padding. It returns "" for fewer than two points.
func SeriesToSVG(xs, ys []float64, width, height int, strokeColor string) string {
	if len(xs) < 2 || len(xs) != len(ys) {
		return ""
	}

	minX, maxX := slices.Min(xs), slices.Max(xs)
	minY, maxY := slices.Min(ys), slices.Max(ys)

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i := range xs {
		x := (xs[i] - minX) / rangeX * float64(width)
		y := float64(height) - (ys[i]-minY)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
