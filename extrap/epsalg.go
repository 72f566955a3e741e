package extrap

import "math"

const (
	// epsAlgTiny is the difference below which two table entries are
	// treated as equal.
	epsAlgTiny = 1e-60

	// epsAlgInf stands in for an infinite table entry.
	epsAlgInf = 1e60
)

// EpsAlg extrapolates a slowly convergent sequence with the iterated Shanks
// transformation, computed by Wynn's epsilon algorithm (Weniger 1989,
// equations 4.3-10a to 4.3-10c).
//
// The table keeps one entry per pushed value and is never condensed. EpsAlg
// does not estimate its own error; difference successive estimates for that.
// The zero value is ready to use.
type EpsAlg struct {
	table []float64
}

// NewEpsAlg returns an empty epsilon table.
func NewEpsAlg() *EpsAlg {
	return &EpsAlg{}
}

// Push appends s to the sequence and returns the current limit estimate.
func (e *EpsAlg) Push(s float64) float64 {
	n := len(e.table)
	e.table = append(e.table, s)
	if n == 0 {
		return s
	}

	var aux1, aux2 float64
	for i := n; i > 0; i-- {
		aux1 = aux2
		aux2 = e.table[i-1]
		delta := e.table[i] - aux2

		switch {
		case e.table[i] >= epsAlgInf && aux2 >= epsAlgInf:
			// inf - inf: the reciprocal difference vanishes
			e.table[i-1] = aux1
		case math.Abs(delta) <= epsAlgTiny:
			e.table[i-1] = epsAlgInf
		default:
			e.table[i-1] = aux1 + 1/delta
		}
	}

	// The diagonal holding the estimate alternates with the parity of n.
	// Fall back to the deepest finite even column when the newest one is
	// singular.
	for k := n % 2; k <= n; k += 2 {
		if e.table[k] < epsAlgInf {
			return e.table[k]
		}
	}
	return e.table[n%2]
}

// Len returns the number of values pushed so far.
func (e *EpsAlg) Len() int {
	return len(e.table)
}

// Reset discards the table.
func (e *EpsAlg) Reset() {
	e.table = e.table[:0]
}
