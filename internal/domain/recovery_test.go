package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulateCooling(t *testing.T) {
	t.Run("matches exponential decay", func(t *testing.T) {
		const t0 = 444.28829381583665
		series := SimulateCooling(t0, DefaultHorizonYears)

		require.Len(t, series, DefaultHorizonYears)
		for i, pt := range series {
			assert.Equal(t, i, pt.Year)
			assert.InDelta(t, t0*math.Exp(-RecoveryRate*float64(i)), pt.TemperatureDrop, 1e-9)
		}
		assert.Equal(t, t0, series[0].TemperatureDrop)
	})

	t.Run("strictly decreasing", func(t *testing.T) {
		series := SimulateCooling(12.5, 30)
		for i := 1; i < len(series); i++ {
			assert.Less(t, series[i].TemperatureDrop, series[i-1].TemperatureDrop, "year %d", i)
			assert.Greater(t, series[i].TemperatureDrop, 0.0)
		}
	})

	t.Run("single year", func(t *testing.T) {
		series := SimulateCooling(3, 1)
		require.Len(t, series, 1)
		assert.Equal(t, RecoveryPoint{Year: 0, TemperatureDrop: 3}, series[0])
	})

	t.Run("non-positive horizon", func(t *testing.T) {
		assert.Empty(t, SimulateCooling(3, 0))
		assert.Empty(t, SimulateCooling(3, -4))
	})

	t.Run("recomputes identically", func(t *testing.T) {
		assert.Equal(t, SimulateCooling(7.25, 50), SimulateCooling(7.25, 50))
	})
}

func TestRecoverySeries_Accessors(t *testing.T) {
	series := SimulateCooling(10, 3)

	assert.Equal(t, []float64{0, 1, 2}, series.Years())

	temps := series.Temperatures()
	require.Len(t, temps, 3)
	assert.Equal(t, 10.0, temps[0])

	want := (10 + 10*math.Exp(-0.1) + 10*math.Exp(-0.2)) / 3
	assert.InDelta(t, want, series.Mean(), 1e-12)

	assert.Equal(t, 0.0, RecoverySeries{}.Mean())
}
