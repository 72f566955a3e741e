// Package linalg holds the small dense linear-algebra routines used to build
// extrapolation rules.
package linalg

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Errors returned by the pseudo-inverse routines.
var (
	ErrFactorization = errors.New("linalg: SVD factorization failed")
	ErrRowRange      = errors.New("linalg: row index out of range")
)

// eps is the float64 machine epsilon.
var eps = math.Nextafter(1, 2) - 1

// Pinv returns the Moore-Penrose pseudo-inverse of a, computed from its
// singular value decomposition. Singular values below
// max(rows, cols) * eps * sigma_max are treated as zero.
func Pinv(a mat.Matrix) (*mat.Dense, error) {
	u, sigma, v, err := decompose(a)
	if err != nil {
		return nil, err
	}

	r, c := a.Dims()
	cutoff := cutoffFor(sigma, r, c)

	// pinv = V * diag(1/sigma) * U^T
	vs := mat.DenseCopyOf(v)
	_, k := vs.Dims()
	for j := range k {
		inv := 0.0
		if sigma[j] > cutoff {
			inv = 1 / sigma[j]
		}
		for i := range c {
			vs.Set(i, j, vs.At(i, j)*inv)
		}
	}

	var out mat.Dense
	out.Mul(vs, u.T())
	return &out, nil
}

// PinvRow returns row i of the pseudo-inverse of a without forming the
// whole matrix.
func PinvRow(a mat.Matrix, i int) ([]float64, error) {
	r, c := a.Dims()
	if i < 0 || i >= c {
		return nil, ErrRowRange
	}

	u, sigma, v, err := decompose(a)
	if err != nil {
		return nil, err
	}
	cutoff := cutoffFor(sigma, r, c)

	row := make([]float64, r)
	for j, s := range sigma {
		if s <= cutoff {
			continue
		}
		w := v.At(i, j) / s
		for col := range r {
			row[col] += w * u.At(col, j)
		}
	}
	return row, nil
}

func decompose(a mat.Matrix) (*mat.Dense, []float64, *mat.Dense, error) {
	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDThin); !ok {
		return nil, nil, nil, ErrFactorization
	}

	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	return &u, svd.Values(nil), &v, nil
}

func cutoffFor(sigma []float64, r, c int) float64 {
	if len(sigma) == 0 {
		return 0
	}
	return float64(max(r, c)) * eps * sigma[0]
}
