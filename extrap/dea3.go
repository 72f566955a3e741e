package extrap

import (
	"fmt"
	"math"
)

// Dea3 extrapolates elementwise from three consecutive terms v0, v1, v2 of
// one or more convergent sequences using a single Shanks transformation. It
// is the vectorized equivalent of the epsilon algorithm restricted to three
// values (DQELG with limexp = 3).
//
// All three slices must have the same length, except that a slice of length
// one is broadcast against the others. For each element:
//
//	d1 = v1 - v0, d2 = v2 - v1
//	sss = 1/d2 - 1/d1 + tiny
//	converged if |d1| <= tol1, |d2| <= tol2 or |sss*v1| <= 1e-4
//	result = v2 if converged, else v1 + 1/sss
//	abserr = |d1| + |d2| + (10*tol2 if converged, else |result - v2|)
//
// where tol1 and tol2 are machine epsilon times the larger magnitude of the
// adjacent terms. Differences below the smallest normal float64 are replaced
// by it before dividing.
//
// With symmetric set and more than one element, the last result and the first
// error are dropped, so that results and errors of central-difference
// sequences line up.
func Dea3[T Scalar](v0, v1, v2 []T, symmetric bool) (result []T, abserr []float64, err error) {
	n, err := broadcastLen(len(v0), len(v1), len(v2))
	if err != nil {
		return nil, nil, err
	}

	e0 := broadcast(v0, n)
	e1 := broadcast(v1, n)
	e2 := broadcast(v2, n)

	delta1 := make([]T, n)
	delta2 := make([]T, n)
	for i := range n {
		delta1[i] = e1[i] - e0[i]
		delta2[i] = e2[i] - e1[i]
	}

	err1 := magnitudes(delta1)
	err2 := magnitudes(delta2)
	abs0 := magnitudes(e0)
	abs1 := magnitudes(e1)
	abs2 := magnitudes(e2)

	result = make([]T, n)
	abserr = make([]float64, n)
	for i := range n {
		tol1 := math.Max(abs1[i], abs0[i]) * eps
		tol2 := math.Max(abs2[i], abs1[i]) * eps

		d1 := floorTiny(delta1[i], err1[i])
		d2 := floorTiny(delta2[i], err2[i])
		sss := 1/d2 - 1/d1 + tiny

		converged := err1[i] <= tol1 || err2[i] <= tol2 || abs(sss*e1[i]) <= irregularThreshold
		if converged {
			result[i] = e2[i]
			abserr[i] = err1[i] + err2[i] + 10*tol2
			continue
		}

		result[i] = e1[i] + 1/sss
		abserr[i] = err1[i] + err2[i] + abs(result[i]-e2[i])
	}

	if symmetric && n > 1 {
		return result[:n-1], abserr[1:], nil
	}
	return result, abserr, nil
}

// Dea3Value is the scalar form of [Dea3].
func Dea3Value(v0, v1, v2 float64) (result, abserr float64) {
	res, errs, _ := Dea3([]float64{v0}, []float64{v1}, []float64{v2}, false)
	return res[0], errs[0]
}

// broadcastLen returns the common length of the given slice lengths, where a
// length of one broadcasts against any other.
func broadcastLen(lengths ...int) (int, error) {
	n := 1
	for _, l := range lengths {
		switch {
		case l == 0:
			return 0, ErrEmptySequence
		case l == 1 || l == n:
		case n == 1:
			n = l
		default:
			return 0, fmt.Errorf("%w: lengths %v", ErrLengthMismatch, lengths)
		}
	}
	return n, nil
}

func broadcast[T Scalar](x []T, n int) []T {
	if len(x) == n {
		return x
	}
	out := make([]T, n)
	for i := range out {
		out[i] = x[0]
	}
	return out
}
