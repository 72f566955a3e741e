package conv

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Errors returned by convolution functions.
var (
	ErrEmptyInput     = errors.New("conv: empty input")
	ErrEmptyKernel    = errors.New("conv: empty kernel")
	ErrLengthMismatch = errors.New("conv: buffer length mismatch")
	ErrInvalidOrigin  = errors.New("conv: invalid origin")
)

// fftThreshold is the kernel length from which FFT convolution is used.
const fftThreshold = 64

// Mode specifies the output mode for linear convolution.
type Mode int

const (
	// ModeFull returns the full convolution result with length len(a)+len(b)-1.
	ModeFull Mode = iota

	// ModeSame returns output with the same length as the first input.
	ModeSame

	// ModeValid returns only the portion where signals fully overlap,
	// with length max(len(a), len(b)) - min(len(a), len(b)) + 1.
	ModeValid
)

// Direct performs direct time-domain linear convolution of a and b.
// Returns a new slice of length len(a) + len(b) - 1.
//
// This is an O(N*M) algorithm suitable for short kernels.
func Direct(a, b []float64) ([]float64, error) {
	if len(a) == 0 {
		return nil, ErrEmptyInput
	}
	if len(b) == 0 {
		return nil, ErrEmptyKernel
	}

	result := make([]float64, len(a)+len(b)-1)
	if err := DirectTo(result, a, b); err != nil {
		return nil, err
	}
	return result, nil
}

// DirectTo performs direct convolution, writing to a pre-allocated destination.
// dst must have length len(a) + len(b) - 1.
func DirectTo(dst, a, b []float64) error {
	if len(dst) != len(a)+len(b)-1 {
		return fmt.Errorf("%w: dst has %d samples, want %d", ErrLengthMismatch, len(dst), len(a)+len(b)-1)
	}

	for i := range dst {
		dst[i] = 0
	}

	m := len(b)
	for i, x := range a {
		// dst[i:i+m] += x * b
		floats.AddScaled(dst[i:i+m], x, b)
	}
	return nil
}

// Convolve performs linear convolution with automatic algorithm selection.
// Kernels shorter than 64 samples use direct convolution, longer ones
// go through the FFT.
func Convolve(a, b []float64) ([]float64, error) {
	if len(a) == 0 {
		return nil, ErrEmptyInput
	}
	if len(b) == 0 {
		return nil, ErrEmptyKernel
	}

	// Keep a as the longer signal
	if len(b) > len(a) {
		a, b = b, a
	}

	if len(b) < fftThreshold {
		return Direct(a, b)
	}

	return FFTConvolve(a, b)
}

// ConvolveMode performs convolution with specified output mode.
func ConvolveMode(a, b []float64, mode Mode) ([]float64, error) {
	full, err := Convolve(a, b)
	if err != nil {
		return nil, err
	}

	return trimToMode(full, len(a), len(b), mode), nil
}

// trimToMode extracts the appropriate portion of a full convolution result.
func trimToMode(full []float64, lenA, lenB int, mode Mode) []float64 {
	switch mode {
	case ModeSame:
		start := (lenB - 1) / 2
		return full[start : start+lenA]
	case ModeValid:
		if lenA >= lenB {
			return full[lenB-1 : lenA]
		}
		return full[lenA-1 : lenB]
	default:
		return full
	}
}

// nextPowerOf2 returns the next power of 2 >= n.
func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p *= 2
	}
	return p
}

func reversed(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[len(x)-1-i] = v
	}
	return out
}
