// Package plotting renders the per-query latency comparison charts from
// aggregated benchmark records.
package plotting

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"mpcbench/internal/benchmark"
)

// Axis selects the independent variable of a chart.
type Axis int

const (
	AxisItems Axis = iota
	AxisUsers
)

func (a Axis) value(r benchmark.Record) float64 {
	if a == AxisUsers {
		return float64(r.Users)
	}
	return float64(r.Items)
}

// Renderer writes line charts into a plots directory, created on first use.
type Renderer struct {
	Dir string
	Log *slog.Logger
}

func NewRenderer(dir string) *Renderer {
	return &Renderer{Dir: dir, Log: slog.Default()}
}

// Render draws one line (with markers) per sweep label, sorted ascending by
// the independent axis within each line, and saves the figure as outName
// inside the renderer's directory. An empty record set is a warning, not an
// error: no file is produced and the remaining charts still render.
func (r *Renderer) Render(records []benchmark.Record, axis Axis, xLabel, title, outName string) error {
	if len(records) == 0 {
		r.log().Warn("no data to plot", "title", title)
		return nil
	}

	if err := os.MkdirAll(r.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create plots directory %s: %w", r.Dir, err)
	}

	labels, grouped := groupByLabel(records)

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = "Time per query (ms)"
	p.Add(plotter.NewGrid())

	for i, label := range labels {
		points := grouped[label]
		sortByAxis(points, axis)

		xys := make(plotter.XYs, len(points))
		for j, pt := range points {
			xys[j].X = axis.value(pt)
			xys[j].Y = pt.PerQueryMs
		}

		line, scatter, err := plotter.NewLinePoints(xys)
		if err != nil {
			return fmt.Errorf("failed to build line for %q: %w", label, err)
		}
		line.Color = plotutil.Color(i)
		scatter.Color = plotutil.Color(i)
		scatter.Shape = plotutil.Shape(i)
		p.Add(line, scatter)
		p.Legend.Add(label, line, scatter)
	}

	out := filepath.Join(r.Dir, outName)
	if err := p.Save(7.5*vg.Inch, 5*vg.Inch, out); err != nil {
		return fmt.Errorf("failed to save plot %s: %w", out, err)
	}
	r.log().Info("wrote plot", "path", out)
	return nil
}

// groupByLabel buckets records by sweep label, preserving first-seen label
// order so the legend matches the order the sweeps were defined in.
func groupByLabel(records []benchmark.Record) ([]string, map[string][]benchmark.Record) {
	grouped := make(map[string][]benchmark.Record)
	var labels []string
	for _, rec := range records {
		if _, seen := grouped[rec.SweepLabel]; !seen {
			labels = append(labels, rec.SweepLabel)
		}
		grouped[rec.SweepLabel] = append(grouped[rec.SweepLabel], rec)
	}
	return labels, grouped
}

func sortByAxis(points []benchmark.Record, axis Axis) {
	sort.Slice(points, func(a, b int) bool {
		return axis.value(points[a]) < axis.value(points[b])
	})
}

func (r *Renderer) log() *slog.Logger {
	if r.Log != nil {
		return r.Log
	}
	return slog.Default()
}
