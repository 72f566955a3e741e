package conv

// Boundary selects how samples beyond the edges of the input are synthesised
// by [Correlate1D] and [Convolve1D].
type Boundary int

const (
	// BoundaryReflect mirrors about the edge, repeating the edge sample.
	BoundaryReflect Boundary = iota

	// BoundaryConstant pads with a constant (see [WithCval]).
	BoundaryConstant

	// BoundaryNearest repeats the edge sample.
	BoundaryNearest

	// BoundaryMirror mirrors about the edge sample without repeating it.
	BoundaryMirror

	// BoundaryWrap wraps around to the opposite edge.
	BoundaryWrap
)

// String returns the boundary mode name.
func (b Boundary) String() string {
	switch b {
	case BoundaryReflect:
		return "reflect"
	case BoundaryConstant:
		return "constant"
	case BoundaryNearest:
		return "nearest"
	case BoundaryMirror:
		return "mirror"
	case BoundaryWrap:
		return "wrap"
	default:
		return "unknown"
	}
}

// FilterConfig holds the edge handling used by the filter-style functions.
type FilterConfig struct {
	Boundary Boundary
	Cval     float64
}

// Option mutates a FilterConfig.
type Option func(*FilterConfig)

// DefaultFilterConfig returns reflect boundaries with a zero pad value.
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{Boundary: BoundaryReflect}
}

// WithBoundary sets the boundary mode. Unknown modes are ignored.
func WithBoundary(b Boundary) Option {
	return func(cfg *FilterConfig) {
		if b >= BoundaryReflect && b <= BoundaryWrap {
			cfg.Boundary = b
		}
	}
}

// WithCval sets the pad value used by BoundaryConstant.
func WithCval(v float64) Option {
	return func(cfg *FilterConfig) {
		cfg.Cval = v
	}
}

func applyOptions(opts []Option) FilterConfig {
	cfg := DefaultFilterConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Correlate1D correlates input with weights and returns a slice of the same
// length as input:
//
//	out[i] = sum_j weights[j] * input[i + j - len(weights)/2 - origin]
//
// Indices outside input are resolved by the configured boundary mode.
// len(weights)/2 + origin must lie in [0, len(weights)).
func Correlate1D(input, weights []float64, origin int, opts ...Option) ([]float64, error) {
	if err := validateFilter(len(input), len(weights), origin); err != nil {
		return nil, err
	}

	cfg := applyOptions(opts)
	size := len(weights)
	left := size/2 + origin
	line := extendLine(input, left, size-1-left, cfg)

	return correlateLine(line, weights, len(input))
}

// Convolve1D convolves input with weights, keeping the input length. A
// positive origin shifts the kernel towards later samples. For odd-length
// kernels and origin 0 the kernel is centred on each output sample.
func Convolve1D(input, weights []float64, origin int, opts ...Option) ([]float64, error) {
	if len(input) == 0 {
		return nil, ErrEmptyInput
	}
	if len(weights) == 0 {
		return nil, ErrEmptyKernel
	}

	origin = -origin
	if len(weights)%2 == 0 {
		origin--
	}

	return Correlate1D(input, reversed(weights), origin, opts...)
}

// Correlate1DComplex is the complex-input form of [Correlate1D]. The real and
// imaginary parts are filtered independently with the same weights.
func Correlate1DComplex(input []complex128, weights []float64, origin int, opts ...Option) ([]complex128, error) {
	return splitComplex(input, func(part []float64) ([]float64, error) {
		return Correlate1D(part, weights, origin, opts...)
	})
}

// Convolve1DComplex is the complex-input form of [Convolve1D]. The real and
// imaginary parts are filtered independently with the same weights.
func Convolve1DComplex(input []complex128, weights []float64, origin int, opts ...Option) ([]complex128, error) {
	return splitComplex(input, func(part []float64) ([]float64, error) {
		return Convolve1D(part, weights, origin, opts...)
	})
}

func splitComplex(input []complex128, filter func([]float64) ([]float64, error)) ([]complex128, error) {
	re := make([]float64, len(input))
	im := make([]float64, len(input))
	for i, z := range input {
		re[i] = real(z)
		im[i] = imag(z)
	}

	outRe, err := filter(re)
	if err != nil {
		return nil, err
	}
	outIm, err := filter(im)
	if err != nil {
		return nil, err
	}

	out := make([]complex128, len(input))
	for i := range out {
		out[i] = complex(outRe[i], outIm[i])
	}
	return out, nil
}

func validateFilter(inputLen, size, origin int) error {
	if inputLen == 0 {
		return ErrEmptyInput
	}
	if size == 0 {
		return ErrEmptyKernel
	}
	if pos := size/2 + origin; pos < 0 || pos >= size {
		return ErrInvalidOrigin
	}
	return nil
}

// correlateLine evaluates the n fully overlapping correlation outputs of an
// already extended line.
func correlateLine(line, weights []float64, n int) ([]float64, error) {
	out, err := ConvolveMode(line, reversed(weights), ModeValid)
	if err != nil {
		return nil, err
	}
	return out[:n], nil
}

// extendLine returns input padded with left and right synthesised samples.
func extendLine(input []float64, left, right int, cfg FilterConfig) []float64 {
	line := make([]float64, left+len(input)+right)
	for k := range line {
		line[k] = sampleAt(input, k-left, cfg)
	}
	return line
}

// sampleAt returns x[idx], resolving out-of-range indices by the boundary mode.
func sampleAt(x []float64, idx int, cfg FilterConfig) float64 {
	n := len(x)
	if idx >= 0 && idx < n {
		return x[idx]
	}

	switch cfg.Boundary {
	case BoundaryConstant:
		return cfg.Cval
	case BoundaryNearest:
		if idx < 0 {
			return x[0]
		}
		return x[n-1]
	case BoundaryWrap:
		return x[mod(idx, n)]
	case BoundaryMirror:
		if n == 1 {
			return x[0]
		}
		period := 2*n - 2
		k := mod(idx, period)
		if k >= n {
			k = period - k
		}
		return x[k]
	default:
		period := 2 * n
		k := mod(idx, period)
		if k >= n {
			k = period - 1 - k
		}
		return x[k]
	}
}

func mod(a, m int) int {
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}
