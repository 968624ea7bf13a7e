package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	assert.Equal(t, 0.0, m.Evaluate(0))
	assert.Equal(t, 123.456, m.Evaluate(123.456))
	assert.Equal(t, -7.0, m.Evaluate(-7))
}

func TestModelFunc(t *testing.T) {
	m := ModelFunc(func(rt float64) float64 { return rt * 2 })
	assert.Equal(t, 24.0, m.Evaluate(12))
}

func TestLinear(t *testing.T) {
	m := Linear{Slope: 2, Intercept: 3}
	assert.Equal(t, 3.0, m.Evaluate(0))
	assert.Equal(t, 13.0, m.Evaluate(5))
}

func TestInterpolated(t *testing.T) {
	t.Run("Interpolation", func(t *testing.T) {
		m, err := NewInterpolated([]float64{0, 10}, []float64{0, 20})
		require.NoError(t, err)

		assert.InDelta(t, 0.0, m.Evaluate(0), 1e-12)
		assert.InDelta(t, 10.0, m.Evaluate(5), 1e-12)
		assert.InDelta(t, 20.0, m.Evaluate(10), 1e-12)
	})

	t.Run("Extrapolation", func(t *testing.T) {
		m, err := NewInterpolated([]float64{0, 10}, []float64{0, 20})
		require.NoError(t, err)

		assert.InDelta(t, -10.0, m.Evaluate(-5), 1e-12)
		assert.InDelta(t, 30.0, m.Evaluate(15), 1e-12)
	})

	t.Run("UnsortedSupport", func(t *testing.T) {
		m, err := NewInterpolated([]float64{10, 0, 5}, []float64{20, 0, 10})
		require.NoError(t, err)

		assert.InDelta(t, 5.0, m.Evaluate(2.5), 1e-12)
		assert.InDelta(t, 15.0, m.Evaluate(7.5), 1e-12)
	})

	t.Run("TooFewPairs", func(t *testing.T) {
		_, err := NewInterpolated([]float64{1}, []float64{1})
		var tf *ErrTooFewPairs
		require.ErrorAs(t, err, &tf)
		assert.Equal(t, 1, tf.Pairs)
	})

	t.Run("LengthMismatch", func(t *testing.T) {
		_, err := NewInterpolated([]float64{1, 2}, []float64{1})
		var lm *ErrPairLengthMismatch
		require.ErrorAs(t, err, &lm)
		assert.Equal(t, 2, lm.XLen)
		assert.Equal(t, 1, lm.YLen)
	})
}
