package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseRawEvent deserializes a RawEvent's value into an Observation.
// It expects the flat CSV-style JSON produced by the collector service.
//
// Station, Year, Month, and Rainfall are the label-driving fields and must
// parse; temperature and humidity are carried for downstream feature use
// and default to zero when absent or malformed, matching how the source
// dataset leaves gaps in the early decades.
func ParseRawEvent(raw RawEvent) (Observation, error) {
	var rec RawObservationRecord
	if err := json.Unmarshal(raw.Value, &rec); err != nil {
		return Observation{}, fmt.Errorf("parse raw event: %w", err)
	}

	station := strings.TrimSpace(rec.Station)
	if station == "" {
		return Observation{}, fmt.Errorf("parse raw event: missing station")
	}

	year, err := strconv.Atoi(strings.TrimSpace(rec.Year))
	if err != nil {
		return Observation{}, fmt.Errorf("parse raw event: year %q: %w", rec.Year, err)
	}
	month, err := strconv.Atoi(strings.TrimSpace(rec.Month))
	if err != nil {
		return Observation{}, fmt.Errorf("parse raw event: month %q: %w", rec.Month, err)
	}
	rainfall, err := strconv.ParseFloat(strings.TrimSpace(rec.Rainfall), 64)
	if err != nil {
		return Observation{}, fmt.Errorf("parse raw event: rainfall %q: %w", rec.Rainfall, err)
	}

	return Observation{
		Station:     station,
		Year:        year,
		Month:       month,
		RainfallMM:  rainfall,
		MaxTempC:    parseFloatOrZero(rec.MaxTemp),
		MinTempC:    parseFloatOrZero(rec.MinTemp),
		HumidityPct: parseFloatOrZero(rec.Humidity),
	}, nil
}

// parseFloatOrZero parses a string as float64, returning 0 on failure.
func parseFloatOrZero(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// LabelObservation resolves the station's region, assigns the flood label,
// and derives the enrichment fields. Out-of-domain observations (month
// outside 1-12, negative rainfall) return the ConfigurationError from
// AssignFlood unchanged; nothing is defaulted silently except the
// documented unmapped-station → Deltaic fallback, which is surfaced via
// RegionMapped.
func LabelObservation(obs Observation, stations *StationMap, policy LabelPolicy) (FloodEvent, error) {
	region, mapped := stations.Resolve(obs.Station)

	flood, err := policy.AssignFlood(obs.Month, obs.RainfallMM, region)
	if err != nil {
		return FloodEvent{}, err
	}

	threshold := policy.Threshold(region)
	event := FloodEvent{
		ID:           generateID(obs.Station, obs.Year, obs.Month, obs.RainfallMM),
		Station:      obs.Station,
		Region:       region,
		RegionMapped: mapped,
		Year:         obs.Year,
		Month:        obs.Month,
		RainfallMM:   obs.RainfallMM,
		MaxTempC:     obs.MaxTempC,
		MinTempC:     obs.MinTempC,
		HumidityPct:  obs.HumidityPct,
		Flood:        flood,
		ThresholdMM:  threshold,
		MonthBucket:  fmt.Sprintf("%04d-%02d", obs.Year, obs.Month),
		ProcessedAt:  clock.Now(),
	}

	if policy.MonsoonMonths[obs.Month] {
		event.Exceedance = obs.RainfallMM / threshold
		event.Severity = deriveSeverity(event.Exceedance)
	}

	return event, nil
}

// deriveSeverity maps the threshold exceedance ratio to a band:
// <1.25 moderate, <1.75 severe, else extreme. Ratios below 1.0 are
// non-flood and carry no band. The three-level scale is a project-specific
// simplification for downstream queries.
func deriveSeverity(exceedance float64) *string {
	if exceedance < 1.0 {
		return nil
	}
	var s string
	switch {
	case exceedance < 1.25:
		s = "moderate"
	case exceedance < 1.75:
		s = "severe"
	default:
		s = "extreme"
	}
	return &s
}

// generateID produces a deterministic ID from the observation's key fields.
// Reprocessing the same raw row yields the same ID, so downstream upserts
// stay idempotent across replays.
func generateID(station string, year, month int, rainfallMM float64) string {
	input := fmt.Sprintf("%s|%d|%d|%g", station, year, month, rainfallMM)
	hash := sha256.Sum256([]byte(input))
	return "obs-" + hex.EncodeToString(hash[:8])
}

// SerializeFloodEvent marshals a FloodEvent into an OutputEvent keyed by the
// deterministic ID, with region and label headers for header-only consumers.
func SerializeFloodEvent(event FloodEvent) (OutputEvent, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return OutputEvent{}, fmt.Errorf("serialize flood event: %w", err)
	}
	return OutputEvent{
		Key:   []byte(event.ID),
		Value: data,
		Headers: map[string]string{
			"region":       string(event.Region),
			"flood":        strconv.FormatBool(event.Flood),
			"processed_at": event.ProcessedAt.Format(time.RFC3339),
		},
	}, nil
}
