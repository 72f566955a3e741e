package extrap

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-extrap/internal/quadrature"
	"github.com/cwbudde/algo-extrap/internal/testutil"
)

func TestDea3Trapezoid(t *testing.T) {
	values, _ := quadrature.SineQuarterSequence(5, 3)
	for _, v := range values {
		assert.Less(t, math.Abs(v-1), 1e-3)
	}

	result, abserr := Dea3Value(values[0], values[1], values[2])
	assert.InDelta(t, 1, result, 1e-9)
	assert.InDelta(t, 2.008e-4, abserr, 1e-7)
	testutil.RequireBounded(t, []float64{result}, []float64{abserr}, 1)
}

func TestDea3Geometric(t *testing.T) {
	// A geometric sequence is extrapolated exactly by one Shanks step.
	result, abserr := Dea3Value(1.5, 1.25, 1.125)
	assert.Equal(t, 1.0, result)
	assert.Equal(t, 0.5, abserr)
}

func TestDea3Constant(t *testing.T) {
	for _, limit := range []float64{4, -1e-3, 0} {
		result, abserr := Dea3Value(limit, limit, limit)
		assert.Equal(t, limit, result)
		assert.Equal(t, 10*eps*math.Abs(limit), abserr)
	}
}

func TestDea3Complex(t *testing.T) {
	limit := complex(2, -1)
	ratio := complex(0, 0.5)
	v := []complex128{limit + 1, limit + ratio, limit + ratio*ratio}

	result, abserr, err := Dea3(v[:1], v[1:2], v[2:], false)
	require.NoError(t, err)
	require.Len(t, result, 1)

	assert.InDelta(t, real(limit), real(result[0]), 1e-12)
	assert.InDelta(t, imag(limit), imag(result[0]), 1e-12)

	// |d1| + |d2| + |result - v2|
	want := math.Hypot(1, 0.5) + math.Hypot(0.25, 0.5) + 0.25
	assert.InDelta(t, want, abserr[0], 1e-12)
}

func TestDea3Vectorized(t *testing.T) {
	v0 := []float64{1.5, 3, 0.7853981633974483}
	v1 := []float64{1.25, 3, 0.9480594489685199}
	v2 := []float64{1.125, 3, 0.9871158009727754}

	result, abserr, err := Dea3(v0, v1, v2, false)
	require.NoError(t, err)
	require.Len(t, result, 3)
	require.Len(t, abserr, 3)

	for i := range v0 {
		r, e := Dea3Value(v0[i], v1[i], v2[i])
		assert.Equal(t, r, result[i], "element %d", i)
		assert.Equal(t, e, abserr[i], "element %d", i)
	}
}

func TestDea3Broadcast(t *testing.T) {
	result, abserr, err := Dea3([]float64{2}, []float64{1.5, 2}, []float64{1.25}, false)
	require.NoError(t, err)
	require.Len(t, result, 2)

	r, e := Dea3Value(2, 1.5, 1.25)
	assert.Equal(t, r, result[0])
	assert.Equal(t, e, abserr[0])

	r, e = Dea3Value(2, 2, 1.25)
	assert.Equal(t, r, result[1])
	assert.Equal(t, e, abserr[1])
}

func TestDea3Symmetric(t *testing.T) {
	v0 := []float64{1.5, 2.5, 4}
	v1 := []float64{1.25, 2.1, 3}
	v2 := []float64{1.125, 2.05, 2.5}

	full, fullErr, err := Dea3(v0, v1, v2, false)
	require.NoError(t, err)

	result, abserr, err := Dea3(v0, v1, v2, true)
	require.NoError(t, err)
	assert.Equal(t, full[:2], result)
	assert.Equal(t, fullErr[1:], abserr)

	// A single element is never trimmed.
	result, abserr, err = Dea3(v0[:1], v1[:1], v2[:1], true)
	require.NoError(t, err)
	assert.Len(t, result, 1)
	assert.Len(t, abserr, 1)
}

func TestDea3Errors(t *testing.T) {
	_, _, err := Dea3([]float64{1, 2}, []float64{1, 2, 3}, []float64{1}, false)
	require.ErrorIs(t, err, ErrLengthMismatch)

	_, _, err = Dea3([]float64{}, []float64{1}, []float64{1}, false)
	require.ErrorIs(t, err, ErrEmptySequence)

	_, _, err = Dea3[complex128](nil, nil, nil, false)
	require.ErrorIs(t, err, ErrEmptySequence)
}
