package evaluate

import (
	"math"
	"testing"

	"github.com/couchcryptid/flood-signal-etl/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScore_PerfectForecast(t *testing.T) {
	actual := []float64{10, 20, 30}
	s := Score(actual, actual)

	assert.Zero(t, s.SMAPE)
	assert.Zero(t, s.RMSE)
	assert.Zero(t, s.MAE)
}

func TestScore_KnownValues(t *testing.T) {
	actual := []float64{100, 100}
	forecast := []float64{110, 90}

	s := Score(actual, forecast)

	assert.InEpsilon(t, 10.0, s.MAE, 0.0001)
	assert.InEpsilon(t, 10.0, s.RMSE, 0.0001)
	// row 1: 10/105, row 2: 10/95, mean * 100
	want := 100 * (10.0/105.0 + 10.0/95.0) / 2
	assert.InEpsilon(t, want, s.SMAPE, 0.0001)
}

func TestScore_ZeroRows(t *testing.T) {
	assert.Zero(t, Score(nil, nil))
}

func TestScore_BothZeroContributesNothing(t *testing.T) {
	s := Score([]float64{0, 100}, []float64{0, 100})
	assert.Zero(t, s.SMAPE)
	assert.False(t, math.IsNaN(s.SMAPE))
}

func TestSummarize(t *testing.T) {
	series := []domain.ForecastTriple{
		{Actual: 100, ForecastA: 105, ForecastB: 120}, // both over, a closer
		{Actual: 100, ForecastA: 90, ForecastB: 110},  // only b over
		{Actual: 100, ForecastA: 80, ForecastB: 95},   // both under, max = b
	}

	s, err := Summarize(series)
	require.NoError(t, err)

	assert.Equal(t, 3, s.Rows)
	assert.Equal(t, 1, s.ChoseA)
	assert.Equal(t, 2, s.ChoseB)

	// Row 2 is the divergence: closest-value would take a=90 (under),
	// the safety bias takes b=110 (over).
	assert.Equal(t, 1, s.UnderPredictionsAvoided)

	// Ensemble selections: 105, 110, 95 → MAE (5+10+5)/3.
	assert.InEpsilon(t, 20.0/3.0, s.Ensemble.MAE, 0.0001)
}

func TestSummarize_PropagatesInvalidForecast(t *testing.T) {
	_, err := Summarize([]domain.ForecastTriple{{Actual: math.Inf(1), ForecastA: 1, ForecastB: 2}})
	require.Error(t, err)
}
