// Package viz renders simulation output in the terminal: asciigraph
// plots of a run's track, a lipgloss element readout, and a live
// Bubble Tea orbit view on a Braille canvas.
package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/orbitlab/internal/orbit"
	"github.com/san-kum/orbitlab/internal/sim"
	"github.com/san-kum/orbitlab/internal/storage"
)

const (
	plotWidth  = 76
	plotHeight = 14
)

// RadiusPlot graphs orbital radius over the run.
func RadiusPlot(points []storage.TrackPoint) string {
	data := make([]float64, 0, len(points))
	for _, p := range points {
		data = append(data, p.Radius)
	}
	if len(data) == 0 {
		return "no track data"
	}

	return graphStyle.Render(asciigraph.Plot(downsample(data, plotWidth),
		asciigraph.Height(plotHeight),
		asciigraph.Caption("orbital radius")))
}

// ElementsPlot graphs the semi-major axis over the run, skipping
// degenerate ticks.
func ElementsPlot(points []storage.TrackPoint) string {
	data := make([]float64, 0, len(points))
	for _, p := range points {
		if !math.IsNaN(p.SMA) {
			data = append(data, p.SMA)
		}
	}
	if len(data) == 0 {
		return "no valid element readings"
	}

	return graphStyle.Render(asciigraph.Plot(downsample(data, plotWidth),
		asciigraph.Height(plotHeight),
		asciigraph.Caption("semi-major axis")))
}

// downsample keeps plots readable for long runs.
func downsample(data []float64, width int) []float64 {
	if len(data) <= width {
		return data
	}
	out := make([]float64, width)
	for i := range out {
		out[i] = data[i*len(data)/width]
	}
	return out
}

// ElementsView renders one element reading.
func ElementsView(el orbit.Elements) string {
	var b strings.Builder

	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label))
		b.WriteString(valueStyle.Render(value))
		b.WriteByte('\n')
	}

	row("class", el.Class.String())
	row("semi-major axis", fmt.Sprintf("%.6g", el.SemiMajorAxis))
	row("eccentricity", fmt.Sprintf("%.6f", el.Eccentricity))
	switch el.Class {
	case orbit.Elliptical:
		row("apoapsis", fmt.Sprintf("%.6g", el.Apoapsis))
		row("periapsis", fmt.Sprintf("%.6g", el.Periapsis))
	case orbit.Hyperbolic:
		row("periapsis", fmt.Sprintf("%.6g", el.Periapsis))
	}

	return b.String()
}

// SummaryView renders a finished run: the final reading plus tick
// counters.
func SummaryView(meta storage.RunMetadata, result *sim.Result) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("%s · %s around %s", meta.Scenario, meta.Tracked, meta.Central)))
	b.WriteByte('\n')

	last, ok := lastValid(result)
	if ok {
		b.WriteString(ElementsView(last.Elements))
		b.WriteString(labelStyle.Render("radius"))
		b.WriteString(valueStyle.Render(fmt.Sprintf("%.6g", last.Radius)))
		b.WriteByte('\n')
	} else {
		b.WriteString(warnStyle.Render("orbit reading unavailable for every tick"))
		b.WriteByte('\n')
	}

	b.WriteString(labelStyle.Render("ticks"))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%d", result.StepsTaken)))
	b.WriteByte('\n')
	if result.DegenerateTicks > 0 {
		b.WriteString(labelStyle.Render("degenerate"))
		b.WriteString(warnStyle.Render(fmt.Sprintf("%d ticks skipped", result.DegenerateTicks)))
		b.WriteByte('\n')
	}

	return b.String()
}

func lastValid(result *sim.Result) (sim.Sample, bool) {
	for i := len(result.Samples) - 1; i >= 0; i-- {
		if result.Samples[i].Valid {
			return result.Samples[i], true
		}
	}
	return sim.Sample{}, false
}
