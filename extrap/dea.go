package extrap

import (
	"fmt"
	"math"

	"go.uber.org/zap"
)

// DefaultLimexp is the default bound on the condensed epsilon table.
const DefaultLimexp = 50

// irregularThreshold is the bound on |e1 * (1/d1 + 1/d2 - 1/d3)| below which
// the table is considered irregular at that position.
const irregularThreshold = 1e-4

// Dea extrapolates a slowly convergent sequence with repeated Shanks
// transformations, computed by Wynn's epsilon algorithm on a bounded table.
// It is a translation of the DQELG routine of QUADPACK (Piessens et al.,
// 1983).
//
// Each Push extends the sequence by one value and returns the best limit
// estimate seen so far together with an absolute error estimate. Memory is
// O(limexp) regardless of how many values are pushed.
//
// A Dea is not safe for concurrent use.
type Dea struct {
	limexp int

	// table holds the two lower diagonals of the epsilon table,
	// limexp+2 entries.
	table []float64

	// history holds at most the last three accepted results.
	history [3]float64

	n    int // index of the next value in table
	nres int // number of results recorded in history

	logger *zap.Logger
}

// DeaOption configures a Dea.
type DeaOption func(*Dea)

// WithLogger traces table truncations at debug level. A nil logger is ignored.
func WithLogger(logger *zap.Logger) DeaOption {
	return func(d *Dea) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// NewDea returns an empty table holding at most limexp elements. limexp is
// rounded up to the next odd number; the result must be at least 3.
func NewDea(limexp int, opts ...DeaOption) (*Dea, error) {
	d := &Dea{logger: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}

	if err := d.SetLimexp(limexp); err != nil {
		return nil, err
	}
	return d, nil
}

// SetLimexp changes the table bound and resets the table.
func (d *Dea) SetLimexp(limexp int) error {
	n := 2*(limexp/2) + 1
	if n < 3 {
		return fmt.Errorf("%w: got %d", ErrLimexpTooSmall, limexp)
	}

	d.limexp = n
	d.table = make([]float64, n+2)
	d.Reset()
	return nil
}

// Limexp returns the (odd) table bound.
func (d *Dea) Limexp() int {
	return d.limexp
}

// Len returns the number of table entries in use. It stops growing once the
// table is full or gets truncated.
func (d *Dea) Len() int {
	return d.n
}

// Results returns the number of extrapolated results produced so far.
func (d *Dea) Results() int {
	return d.nres
}

// Reset clears the table and the result history.
func (d *Dea) Reset() {
	for i := range d.table {
		d.table[i] = 0
	}
	d.history = [3]float64{}
	d.n = 0
	d.nres = 0
}

// Push adds value to the sequence and returns the extrapolated limit and an
// estimate of its absolute error.
func (d *Dea) Push(value float64) (result, abserr float64) {
	n := d.n
	d.table[n] = value

	switch n {
	case 0:
		result, abserr = value, math.Abs(value)
	case 1:
		result, abserr = value, 6*math.Abs(value-d.table[0])
	default:
		result, abserr, n = d.extrapolate(n)
	}

	d.n = n + 1
	return result, abserr
}

// extrapolate runs one round of the epsilon algorithm on the table whose
// newest value sits at index n. It returns the result, its error estimate and
// the index of the newest element kept after condensing the table.
func (d *Dea) extrapolate(n int) (result, abserr float64, kept int) {
	tab := d.table
	nres := d.nres

	abserr = huge
	result = tab[n]
	tab[n+2] = tab[n]
	newelm := n / 2
	tab[n] = huge

	oldN := n
	k1 := n
	converged := false

	for i := range newelm {
		res := tab[k1+2]
		e0 := tab[k1-2]
		e1 := tab[k1-1]
		e2 := res

		delta2 := e2 - e1
		delta3 := e1 - e0
		err2 := math.Abs(delta2)
		err3 := math.Abs(delta3)
		e1abs := math.Abs(e1)
		tol2 := math.Max(math.Abs(e2), e1abs) * eps
		tol3 := math.Max(e1abs, math.Abs(e0)) * eps

		e3 := tab[k1]
		tab[k1] = e1

		if err2 <= tol2 && err3 <= tol3 {
			// e0, e1 and e2 are equal to within machine accuracy. The
			// table is condensed and the result recorded as on the
			// irregular path below; only the error estimate stays local.
			result = res
			abserr = err2 + err3
			converged = true
			n = 2 * i
			break
		}

		delta1 := e1 - e3
		err1 := math.Abs(delta1)
		tol1 := math.Max(e1abs, math.Abs(e3)) * eps

		// Two elements very close to each other, or an irregular table:
		// omit the part of the table beyond this position.
		if err1 <= tol1 || err2 <= tol2 || err3 <= tol3 {
			n = 2 * i
			break
		}
		ss := 1/delta1 + 1/delta2 - 1/delta3
		if math.Abs(ss*e1) <= irregularThreshold {
			n = 2 * i
			break
		}

		res = e1 + 1/ss
		tab[k1] = res
		k1 -= 2

		if errEst := err2 + math.Abs(res-e2) + err3; errEst <= abserr {
			abserr = errEst
			result = res
		}
	}

	if n != oldN {
		d.logger.Debug("dea: truncating epsilon table",
			zap.Int("index", oldN),
			zap.Int("kept", n),
			zap.Bool("converged", converged))
	}

	if n == d.limexp-1 {
		d.logger.Debug("dea: epsilon table full", zap.Int("limexp", d.limexp))
		n = d.limexp - 2
	}
	shiftTable(tab, n, newelm, oldN)

	if nres > 1 && !converged {
		abserr = historyDeviation(&d.history, result, nres)
	}
	updateHistory(&d.history, result, nres)

	abserr = math.Max(abserr, 5*eps*math.Abs(result))
	d.nres++
	return result, abserr, n
}
