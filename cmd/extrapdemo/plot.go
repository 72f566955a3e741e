package main

import (
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// errorFloor keeps exact estimates on a logarithmic axis.
const errorFloor = 1e-17

// savePlot renders the true error of every method against the panel count.
func savePlot(path string, values []float64, selected []method, tables map[string][]row) error {
	p := plot.New()
	p.Title.Text = "Trapezoid rule extrapolation"
	p.X.Label.Text = "panels"
	p.Y.Label.Text = "|estimate - 1|"
	p.X.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}

	raw := make([]row, len(values))
	for i, v := range values {
		raw[i] = row{panels: 1 << i, value: v}
	}
	lines := []any{"trapezoid", errorPoints(raw, func(r row) float64 { return r.value })}
	for _, m := range selected {
		pts := errorPoints(tables[m.name], func(r row) float64 { return r.estimate })
		lines = append(lines, m.name, pts)
	}

	if err := plotutil.AddLinePoints(p, lines...); err != nil {
		return err
	}
	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}

func errorPoints(rows []row, value func(row) float64) plotter.XYs {
	pts := make(plotter.XYs, len(rows))
	for i, r := range rows {
		pts[i].X = float64(r.panels)
		pts[i].Y = math.Max(math.Abs(value(r)-1), errorFloor)
	}
	return pts
}
