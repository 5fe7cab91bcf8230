package domain

import "fmt"

// Default labeling constants. The monsoon window is June through October;
// months outside it are defined as non-flood regardless of rainfall.
const (
	DefaultCoastalThresholdMM = 1100.0
	DefaultDeltaicThresholdMM = 550.0
)

// LabelPolicy holds the flood-labeling thresholds and monsoon window.
// The zero value is not usable; start from DefaultLabelPolicy and override
// fields as needed.
type LabelPolicy struct {
	CoastalThresholdMM float64
	DeltaicThresholdMM float64
	MonsoonMonths      map[int]bool
}

// DefaultLabelPolicy returns the canonical policy: 1100 mm coastal,
// 550 mm deltaic, monsoon months {6,7,8,9,10}.
func DefaultLabelPolicy() LabelPolicy {
	return LabelPolicy{
		CoastalThresholdMM: DefaultCoastalThresholdMM,
		DeltaicThresholdMM: DefaultDeltaicThresholdMM,
		MonsoonMonths:      map[int]bool{6: true, 7: true, 8: true, 9: true, 10: true},
	}
}

// Validate checks the policy itself, not an observation. Used at config
// load so a bad override fails startup rather than the first batch.
func (p LabelPolicy) Validate() error {
	if p.CoastalThresholdMM <= 0 {
		return &ConfigurationError{Field: "coastal_threshold_mm", Reason: "must be positive"}
	}
	if p.DeltaicThresholdMM <= 0 {
		return &ConfigurationError{Field: "deltaic_threshold_mm", Reason: "must be positive"}
	}
	if len(p.MonsoonMonths) == 0 {
		return &ConfigurationError{Field: "monsoon_months", Reason: "must not be empty"}
	}
	for m := range p.MonsoonMonths {
		if m < 1 || m > 12 {
			return &ConfigurationError{Field: "monsoon_months", Reason: fmt.Sprintf("month %d outside 1-12", m)}
		}
	}
	return nil
}

// Threshold returns the rainfall threshold in mm for a region.
func (p LabelPolicy) Threshold(region Region) float64 {
	if region == RegionCoastal {
		return p.CoastalThresholdMM
	}
	return p.DeltaicThresholdMM
}

// AssignFlood derives the binary flood label for one observation.
//
// Months outside the monsoon window are non-flood unconditionally — a
// policy definition, not a probability statement. Within the window the
// label is rainfall >= the region threshold (inclusive boundary).
//
// Returns a ConfigurationError for a month outside 1-12 or negative
// rainfall; over the valid domain it is total and never fails.
func (p LabelPolicy) AssignFlood(month int, rainfallMM float64, region Region) (bool, error) {
	if month < 1 || month > 12 {
		return false, &ConfigurationError{Field: "month", Reason: fmt.Sprintf("%d outside 1-12", month)}
	}
	if rainfallMM < 0 {
		return false, &ConfigurationError{Field: "rainfall_mm", Reason: fmt.Sprintf("%g is negative", rainfallMM)}
	}
	if !p.MonsoonMonths[month] {
		return false, nil
	}
	return rainfallMM >= p.Threshold(region), nil
}
