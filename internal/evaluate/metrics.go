// Package evaluate computes back-test accuracy metrics for discharge
// forecasts. The metrics live outside the domain package on purpose: the
// selection rule never looks at aggregate error, only at individual rows.
package evaluate

import (
	"math"

	"github.com/couchcryptid/flood-signal-etl/internal/domain"
)

// Scores holds the standard point-forecast error metrics for one series.
type Scores struct {
	SMAPE float64 // symmetric mean absolute percentage error, percent
	RMSE  float64
	MAE   float64
}

// Summary compares both source models against the safety-biased ensemble
// over one back-test run.
type Summary struct {
	Rows     int
	ModelA   Scores
	ModelB   Scores
	Ensemble Scores

	// ChoseA/ChoseB count which source each row's selection came from.
	ChoseA int
	ChoseB int

	// UnderPredictionsAvoided counts rows where the safety bias picked an
	// over-estimate while a plain closest-value rule would have picked an
	// under-estimate.
	UnderPredictionsAvoided int
}

// Score computes SMAPE, RMSE, and MAE of a forecast series against the
// observed series. Panics are avoided by definition: a row where both
// actual and forecast are zero contributes zero to SMAPE.
func Score(actual, forecast []float64) Scores {
	n := len(actual)
	if n == 0 {
		return Scores{}
	}

	var smapeSum, sqSum, absSum float64
	for i := range actual {
		diff := forecast[i] - actual[i]
		absSum += math.Abs(diff)
		sqSum += diff * diff

		denom := (math.Abs(actual[i]) + math.Abs(forecast[i])) / 2
		if denom != 0 {
			smapeSum += math.Abs(diff) / denom
		}
	}

	return Scores{
		SMAPE: 100 * smapeSum / float64(n),
		RMSE:  math.Sqrt(sqSum / float64(n)),
		MAE:   absSum / float64(n),
	}
}

// Summarize runs the ensemble selection over the series and scores the two
// source models and the resulting ensemble.
func Summarize(series []domain.ForecastTriple) (Summary, error) {
	selections, err := domain.SelectSeries(series)
	if err != nil {
		return Summary{}, err
	}

	n := len(series)
	actual := make([]float64, n)
	fa := make([]float64, n)
	fb := make([]float64, n)
	ens := make([]float64, n)

	s := Summary{Rows: n}
	for i, tr := range series {
		actual[i] = tr.Actual
		fa[i] = tr.ForecastA
		fb[i] = tr.ForecastB
		ens[i] = selections[i].Value

		if selections[i].Source == domain.SourceA {
			s.ChoseA++
		} else {
			s.ChoseB++
		}

		if selections[i].Value >= tr.Actual && closest(tr) < tr.Actual {
			s.UnderPredictionsAvoided++
		}
	}

	s.ModelA = Score(actual, fa)
	s.ModelB = Score(actual, fb)
	s.Ensemble = Score(actual, ens)
	return s, nil
}

// closest returns what a plain nearest-value ensemble would have picked.
func closest(tr domain.ForecastTriple) float64 {
	if math.Abs(tr.ForecastB-tr.Actual) < math.Abs(tr.ForecastA-tr.Actual) {
		return tr.ForecastB
	}
	return tr.ForecastA
}
