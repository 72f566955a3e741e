// Package conv provides the one-dimensional convolution routines used by the
// extrapolation package.
//
// Two families are offered:
//
//   - Linear convolution: [Direct] for short kernels, [FFTConvolve] for long
//     ones, and [Convolve] which picks between the two.
//   - Filter-style convolution: [Correlate1D] and [Convolve1D] keep the output
//     the same length as the input, shift the kernel by an origin, and
//     synthesise samples beyond the input edges with a [Boundary] mode.
//
// # Usage
//
//	full, err := conv.Convolve(signal, kernel)
//	same, err := conv.Convolve1D(sequence, rule, len(rule)/2)
//
// Complex sequences are handled by [Convolve1DComplex] and
// [Correlate1DComplex], which filter the real and imaginary parts with the
// same real kernel and recombine them.
//
// # Boundary modes
//
// Given input a b c d, samples outside the input are taken as:
//
//	BoundaryReflect   d c b a | a b c d | d c b a
//	BoundaryMirror      d c b | a b c d | c b a
//	BoundaryNearest   a a a a | a b c d | d d d d
//	BoundaryWrap      a b c d | a b c d | a b c d
//	BoundaryConstant  k k k k | a b c d | k k k k
//
// # Algorithm Selection
//
// Kernels shorter than 64 taps are evaluated directly; longer kernels go
// through a single zero-padded FFT of the combined length.
package conv
