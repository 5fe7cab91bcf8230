package domain

import "math"

// ForecastSource identifies which model's forecast the selector chose.
type ForecastSource string

const (
	SourceA ForecastSource = "a"
	SourceB ForecastSource = "b"
)

// ForecastTriple is one time step of a back-test series: the observed
// discharge and the two model point-forecasts for it.
type ForecastTriple struct {
	Actual    float64 `json:"actual"`
	ForecastA float64 `json:"forecast_a"`
	ForecastB float64 `json:"forecast_b"`
}

// SelectionResult is the per-row outcome of SelectSeries.
type SelectionResult struct {
	Value  float64        `json:"value"`
	Source ForecastSource `json:"source"`
}

// Select combines two point-forecasts into one, biased toward not
// under-predicting the observed value. First matching rule wins:
//
//	both >= actual  → the closer of the two (equal distance → forecast A)
//	only a >= actual → forecast A
//	only b >= actual → forecast B
//	both < actual   → max(forecast A, forecast B)
//
// The asymmetry is deliberate: for a hazard quantity an over-estimate costs
// point accuracy, an under-estimate costs a missed event. Do not replace
// this with a nearest-value rule. The result is always bit-for-bit one of
// the two inputs.
//
// Returns an InvalidForecastError if any input is NaN or infinite.
func Select(actual, forecastA, forecastB float64) (float64, error) {
	v, _, err := selectOne(actual, forecastA, forecastB, -1)
	return v, err
}

// SelectSeries applies Select across a back-test series. Rows are
// independent, so evaluation order is irrelevant; the first non-finite
// input aborts with an InvalidForecastError carrying the row index.
func SelectSeries(series []ForecastTriple) ([]SelectionResult, error) {
	results := make([]SelectionResult, len(series))
	for i, tr := range series {
		v, src, err := selectOne(tr.Actual, tr.ForecastA, tr.ForecastB, i)
		if err != nil {
			return nil, err
		}
		results[i] = SelectionResult{Value: v, Source: src}
	}
	return results, nil
}

func selectOne(actual, a, b float64, row int) (float64, ForecastSource, error) {
	if err := checkFinite(actual, "actual", row); err != nil {
		return 0, "", err
	}
	if err := checkFinite(a, "forecast_a", row); err != nil {
		return 0, "", err
	}
	if err := checkFinite(b, "forecast_b", row); err != nil {
		return 0, "", err
	}

	overA := a >= actual
	overB := b >= actual
	switch {
	case overA && overB:
		// Non-strict comparison: an exact distance tie keeps forecast A.
		if math.Abs(b-actual) < math.Abs(a-actual) {
			return b, SourceB, nil
		}
		return a, SourceA, nil
	case overA:
		return a, SourceA, nil
	case overB:
		return b, SourceB, nil
	default:
		if b > a {
			return b, SourceB, nil
		}
		return a, SourceA, nil
	}
}

func checkFinite(v float64, input string, row int) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &InvalidForecastError{Input: input, Value: v, Index: row}
	}
	return nil
}
