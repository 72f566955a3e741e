package extrap

import (
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"
)

const (
	// eps is the float64 machine epsilon.
	eps = 0x1p-52

	// tiny is the smallest positive normal float64.
	tiny = 0x1p-1022

	// huge is the largest finite float64.
	huge = math.MaxFloat64

	// studentT1 is the two-sided 95% quantile of Student's t distribution
	// with one degree of freedom.
	studentT1 = 12.7062047361747
)

// Scalar is the element type accepted by the slice-based extrapolators.
type Scalar interface {
	float64 | complex128
}

// abs returns the magnitude of v.
func abs[T Scalar](v T) float64 {
	switch x := any(v).(type) {
	case float64:
		return math.Abs(x)
	case complex128:
		return cmplx.Abs(x)
	}
	return math.NaN()
}

// floorTiny replaces a difference whose magnitude is below tiny by tiny, so
// that its reciprocal stays finite.
func floorTiny[T Scalar](delta T, magnitude float64) T {
	if magnitude < tiny {
		return T(tiny)
	}
	return delta
}

// magnitudes returns |x[i]| for every element.
func magnitudes[T Scalar](x []T) []float64 {
	out := make([]float64, len(x))
	switch v := any(x).(type) {
	case []float64:
		for i, f := range v {
			out[i] = math.Abs(f)
		}
	case []complex128:
		re := make([]float64, len(v))
		im := make([]float64, len(v))
		for i, z := range v {
			re[i] = real(z)
			im[i] = imag(z)
		}
		vecmath.Magnitude(out, re, im)
	}
	return out
}

// diff returns the forward differences x[i+1] - x[i].
func diff[T Scalar](x []T) []T {
	if len(x) < 2 {
		return nil
	}
	out := make([]T, len(x)-1)
	for i := range out {
		out[i] = x[i+1] - x[i]
	}
	return out
}

// sumSquares returns the sum of w[i]^2.
func sumSquares(w []float64) float64 {
	sq := make([]float64, len(w))
	vecmath.MulBlock(sq, w, w)
	return floats.Sum(sq)
}

func reversed(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[len(x)-1-i] = v
	}
	return out
}
