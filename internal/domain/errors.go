package domain

import "fmt"

// ConfigurationError reports an input or configuration value outside the
// labeler's contract: a month outside 1-12, negative rainfall, or a station
// roster with overlapping coastal/deltaic entries. It is surfaced
// immediately and never recovered locally.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Reason)
}

// InvalidForecastError reports a non-finite value (NaN or ±Inf) passed to
// the ensemble selector. Input names which of the three inputs violated the
// contract; Index is the row position for series evaluation, -1 for scalar
// calls.
type InvalidForecastError struct {
	Input string
	Value float64
	Index int
}

func (e *InvalidForecastError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("invalid forecast: row %d: %s is %v", e.Index, e.Input, e.Value)
	}
	return fmt.Sprintf("invalid forecast: %s is %v", e.Input, e.Value)
}
