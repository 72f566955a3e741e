// Package quadrature builds trapezoid-rule sequences with a known limit.
// They are the reference slowly-converging sequences for the extrapolators.
package quadrature

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"
)

// Linspace returns n evenly spaced points from a to b inclusive.
func Linspace(a, b float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{a}
	}
	x := floats.Span(make([]float64, n), a, b)
	x[n-1] = b
	return x
}

// Trapz integrates the samples y taken at abscissae x with the composite
// trapezoid rule. x must be sorted and have the same length as y. Fewer than
// two samples integrate to zero.
func Trapz(y, x []float64) float64 {
	if len(x) < 2 {
		return 0
	}
	return integrate.Trapezoidal(x, y)
}

// SineQuarter approximates the integral of sin(x) over [0, pi/2] (exactly 1)
// with the given number of panels. It returns the estimate and the panel width.
func SineQuarter(panels int) (value, step float64) {
	x := Linspace(0, math.Pi/2, panels+1)
	y := make([]float64, len(x))
	for i, v := range x {
		y[i] = math.Sin(v)
	}
	return Trapz(y, x), x[1]
}

// SineQuarterSequence returns n estimates of SineQuarter for the panel
// counts 2^k0, 2^(k0+1), ..., together with their panel widths.
func SineQuarterSequence(k0, n int) (values, steps []float64) {
	values = make([]float64, n)
	steps = make([]float64, n)
	for k := range n {
		values[k], steps[k] = SineQuarter(1 << (k0 + k))
	}
	return values, steps
}
