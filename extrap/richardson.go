package extrap

import (
	"fmt"
	"math"
	"slices"
	"sync"

	"github.com/cwbudde/algo-extrap/conv"
	"github.com/cwbudde/algo-extrap/internal/linalg"
	"gonum.org/v1/gonum/mat"
)

// RichardsonConfig describes the assumed error expansion
//
//	L = f(h) + a0*h^p0 + a1*h^p1 + a2*h^p2 + ...,  p_i = Order + Step*i
//
// of a sequence sampled at step sizes h, h/StepRatio, h/StepRatio^2, ...
type RichardsonConfig struct {
	StepRatio float64
	Step      int
	Order     int
	NumTerms  int
}

// RichardsonOption mutates a RichardsonConfig.
type RichardsonOption func(*RichardsonConfig)

// DefaultRichardsonConfig returns step ratio 2, step 1, order 1 and two
// correction terms.
func DefaultRichardsonConfig() RichardsonConfig {
	return RichardsonConfig{
		StepRatio: 2,
		Step:      1,
		Order:     1,
		NumTerms:  2,
	}
}

// WithStepRatio sets the ratio between successive step sizes. Values not
// greater than one are ignored.
func WithStepRatio(ratio float64) RichardsonOption {
	return func(cfg *RichardsonConfig) {
		if ratio > 1 {
			cfg.StepRatio = ratio
		}
	}
}

// WithStep sets the exponent spacing of the error expansion.
func WithStep(step int) RichardsonOption {
	return func(cfg *RichardsonConfig) {
		if step > 0 {
			cfg.Step = step
		}
	}
}

// WithOrder sets the exponent of the leading error term.
func WithOrder(order int) RichardsonOption {
	return func(cfg *RichardsonConfig) {
		if order > 0 {
			cfg.Order = order
		}
	}
}

// WithNumTerms sets the number of error terms to cancel.
func WithNumTerms(n int) RichardsonOption {
	return func(cfg *RichardsonConfig) {
		if n > 0 {
			cfg.NumTerms = n
		}
	}
}

// Result is the output of a Richardson extrapolation. All three slices have
// the input length minus len(rule)-1.
type Result[T Scalar] struct {
	// Values holds the extrapolated sequence. Values[i] combines the input
	// terms i .. i+len(rule)-1 and is aligned with the coarsest of them.
	Values []T

	// AbsErr holds the absolute error estimate of each value.
	AbsErr []float64

	// Steps holds the step size each value is aligned with.
	Steps []float64
}

// Richardson extrapolates a sequence with Richardson's method: it fits the
// error expansion described by its [RichardsonConfig] to windows of the
// sequence and keeps the constant term.
//
// A Richardson is safe for concurrent use.
type Richardson struct {
	cfg RichardsonConfig

	mu    sync.Mutex
	rules map[int][]float64
}

// NewRichardson returns an extrapolator for the default expansion modified
// by opts.
func NewRichardson(opts ...RichardsonOption) *Richardson {
	cfg := DefaultRichardsonConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &Richardson{
		cfg:   cfg,
		rules: make(map[int][]float64),
	}
}

// Config returns the extrapolator configuration.
func (r *Richardson) Config() RichardsonConfig {
	return r.cfg
}

// Rule returns the weights that combine len(weights) consecutive terms into
// an estimate free of the leading error terms. The number of cancelled terms
// is reduced to sequenceLength-1 when the sequence is too short; for a
// single term the rule is [1]. The weights always sum to one.
func (r *Richardson) Rule(sequenceLength int) ([]float64, error) {
	numTerms := min(r.cfg.NumTerms, sequenceLength-1)
	if numTerms <= 0 {
		return []float64{1}, nil
	}

	r.mu.Lock()
	rule, ok := r.rules[numTerms]
	r.mu.Unlock()
	if ok {
		return slices.Clone(rule), nil
	}

	rule, err := linalg.PinvRow(r.rMatrix(numTerms), 0)
	if err != nil {
		return nil, fmt.Errorf("extrap: richardson rule for %d terms: %w", numTerms, err)
	}

	r.mu.Lock()
	r.rules[numTerms] = rule
	r.mu.Unlock()
	return slices.Clone(rule), nil
}

// rMatrix builds the (numTerms+1) x (numTerms+1) matrix whose row i models
// the term sampled at step h/StepRatio^i: a leading one for the limit, then
// (1/StepRatio)^(i*p_j) for each error term.
func (r *Richardson) rMatrix(numTerms int) *mat.Dense {
	size := numTerms + 1
	m := mat.NewDense(size, size, nil)
	inv := 1 / r.cfg.StepRatio
	for i := range size {
		m.Set(i, 0, 1)
		for j := 1; j < size; j++ {
			p := float64(i * (r.cfg.Step*(j-1) + r.cfg.Order))
			m.Set(i, j, math.Pow(inv, p))
		}
	}
	return m
}

// Extrapolate applies the rule along sequence. steps[i] is the step size
// sequence[i] was computed with.
func (r *Richardson) Extrapolate(sequence, steps []float64) (Result[float64], error) {
	return extrapolate(r, sequence, steps)
}

// ExtrapolateComplex is the complex-valued form of [Richardson.Extrapolate].
func (r *Richardson) ExtrapolateComplex(sequence []complex128, steps []float64) (Result[complex128], error) {
	return extrapolate(r, sequence, steps)
}

// ColumnsResult is the output of [Richardson.ExtrapolateColumns].
type ColumnsResult struct {
	Values *mat.Dense
	AbsErr *mat.Dense
	Steps  []float64
}

// ExtrapolateColumns extrapolates each column of sequence independently;
// row i holds the terms computed with steps[i].
func (r *Richardson) ExtrapolateColumns(sequence mat.Matrix, steps []float64) (ColumnsResult, error) {
	rows, cols := sequence.Dims()
	if rows == 0 || cols == 0 {
		return ColumnsResult{}, ErrEmptySequence
	}

	var out ColumnsResult
	col := make([]float64, rows)
	for c := range cols {
		mat.Col(col, c, sequence)
		res, err := r.Extrapolate(col, steps)
		if err != nil {
			return ColumnsResult{}, err
		}

		if out.Values == nil {
			m := len(res.Values)
			out.Values = mat.NewDense(m, cols, nil)
			out.AbsErr = mat.NewDense(m, cols, nil)
			out.Steps = res.Steps
		}
		out.Values.SetCol(c, res.Values)
		out.AbsErr.SetCol(c, res.AbsErr)
	}
	return out, nil
}

func extrapolate[T Scalar](r *Richardson, sequence []T, steps []float64) (Result[T], error) {
	ne := len(sequence)
	if ne == 0 {
		return Result[T]{}, ErrEmptySequence
	}
	if len(steps) != ne {
		return Result[T]{}, fmt.Errorf("%w: %d terms, %d steps", ErrLengthMismatch, ne, len(steps))
	}

	rule, err := r.Rule(ne)
	if err != nil {
		return Result[T]{}, err
	}

	nr := len(rule) - 1
	m := ne - nr
	mm := min(ne, m+1)

	extrapolated, err := convolve(sequence, reversed(rule), nr/2)
	if err != nil {
		return Result[T]{}, err
	}

	abserr := estimateError(extrapolated[:mm], sequence, steps, rule)

	return Result[T]{
		Values: extrapolated[:m],
		AbsErr: abserr[:m],
		Steps:  slices.Clone(steps[:m]),
	}, nil
}

// convolve filters sequence with rule along its only axis, reflecting at the
// edges. Complex sequences are filtered part by part.
func convolve[T Scalar](sequence []T, rule []float64, origin int) ([]T, error) {
	switch s := any(sequence).(type) {
	case []float64:
		out, err := conv.Convolve1D(s, rule, origin)
		if err != nil {
			return nil, err
		}
		return any(out).([]T), nil
	case []complex128:
		out, err := conv.Convolve1DComplex(s, rule, origin)
		if err != nil {
			return nil, err
		}
		return any(out).([]T), nil
	}
	return nil, fmt.Errorf("extrap: unsupported element type %T", sequence)
}

// estimateError estimates the absolute error of each extrapolated value from
// the spread of neighbouring values and their distance to the raw sequence,
// scaled by a Student-t factor for the one spare degree of freedom.
func estimateError[T Scalar](extrapolated, sequence []T, steps, rule []float64) []float64 {
	m := len(extrapolated)
	mOld := len(sequence)
	fact := math.Max(studentT1*math.Sqrt(sumSquares(rule)), 10*eps)

	if mOld < 2 {
		mag := magnitudes(extrapolated)
		out := make([]float64, m)
		for i := range out {
			out[i] = (mag[i]*eps + steps[i]) * fact
		}
		return out
	}

	// Extrapolate always passes at least two values once the sequence has
	// two terms; this branch only guards direct callers.
	if m < 2 {
		errs := magnitudes(diff(sequence))
		mag := magnitudes(sequence)
		off := len(errs) - m
		out := make([]float64, m)
		for i := range out {
			k := off + i
			tol := math.Max(mag[k], mag[k+1]) * fact
			if errs[k] <= tol {
				out[i] = errs[k] + 10*tol
			} else {
				out[i] = errs[k] + abs(extrapolated[i]-sequence[mOld-m+i])*fact
			}
		}
		return out
	}

	errs := magnitudes(diff(extrapolated))
	mag := magnitudes(extrapolated)
	out := make([]float64, m-1)
	for i := range out {
		e := errs[i] * fact
		tol := math.Max(mag[i+1], mag[i]) * eps * fact
		if e <= tol {
			out[i] = e + 10*tol
		} else {
			out[i] = e + abs(extrapolated[i]-sequence[mOld-(m-1)+i])*fact
		}
	}
	return out
}
