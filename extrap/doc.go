// Package extrap accelerates the convergence of slowly converging sequences.
//
// Typical inputs are partial sums, finite-difference quotients or quadrature
// panel sequences whose terms approach a limit as a step size shrinks. The
// package turns such a sequence into an extrapolated limit together with an
// absolute error estimate. It never evaluates the underlying function.
//
// Four accelerators are provided:
//
//   - [Dea]: Wynn's epsilon algorithm on a bounded, condensed table with
//     convergence and irregularity detection (after QUADPACK's DQELG). Values
//     are pushed one at a time and every push returns a result and an error.
//   - [EpsAlg]: the plain epsilon recurrence on an unbounded table. Every push
//     returns an estimate, no error.
//   - [Dea3]: the three-point Shanks transform applied elementwise to three
//     slices of consecutive terms.
//   - [Richardson]: cancels the leading terms of an assumed error expansion
//     L = f(h) + a0*h^p0 + a1*h^p1 + ... with p_i = order + step*i, using a
//     rule convolved along the whole sequence.
//
// # Usage
//
//	dea, err := extrap.NewDea(extrap.DefaultLimexp)
//	for _, v := range approximations {
//		result, abserr := dea.Push(v)
//		...
//	}
//
//	r := extrap.NewRichardson(extrap.WithStep(2), extrap.WithOrder(2))
//	res, err := r.Extrapolate(values, steps)
//
// # Numerical edge cases
//
// Near-zero differences never cause errors or warnings. They are replaced by
// tiny or huge sentinel magnitudes before dividing, and the tolerance tests
// detect the ill-conditioned steps. All irregularities end up in the returned
// error estimate.
//
// # Concurrency
//
// [Dea] and [EpsAlg] hold mutable state and must not be shared between
// goroutines without external locking. [Dea3] and the Richardson
// extrapolation methods are safe for concurrent use on independent inputs.
package extrap
