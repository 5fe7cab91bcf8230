package domain

import (
	"context"
	"time"
)

// RawObservationRecord represents the flat JSON structure produced by the
// collector. All values arrive as strings because the collector passes BMD
// CSV cells through untouched.
type RawObservationRecord struct {
	Station  string `json:"Station"`
	Year     string `json:"Year"`
	Month    string `json:"Month"`
	Rainfall string `json:"Rainfall"` // monthly total, mm
	MaxTemp  string `json:"MaxTemp"`  // monthly mean daily maximum, °C
	MinTemp  string `json:"MinTemp"`  // monthly mean daily minimum, °C
	Humidity string `json:"Humidity"` // monthly mean relative humidity, %
}

// RawEvent represents an unprocessed message from the source topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// Observation is the parsed domain form of one station-month row.
type Observation struct {
	Station     string
	Year        int
	Month       int
	RainfallMM  float64
	MaxTempC    float64
	MinTempC    float64
	HumidityPct float64
}

// FloodEvent is the labeled, enriched representation destined for the sink.
type FloodEvent struct {
	ID           string  `json:"id"`
	Station      string  `json:"station"`
	Region       Region  `json:"region"`
	RegionMapped bool    `json:"region_mapped"`
	Year         int     `json:"year"`
	Month        int     `json:"month"`
	RainfallMM   float64 `json:"rainfall_mm"`
	MaxTempC     float64 `json:"max_temp_c,omitempty"`
	MinTempC     float64 `json:"min_temp_c,omitempty"`
	HumidityPct  float64 `json:"humidity_pct,omitempty"`

	Flood       bool    `json:"flood"`
	ThresholdMM float64 `json:"threshold_mm"`
	Exceedance  float64 `json:"exceedance,omitempty"` // rainfall/threshold, monsoon months only
	Severity    *string `json:"severity,omitempty"`
	MonthBucket string  `json:"month_bucket"` // YYYY-MM

	RawPayload  []byte    `json:"-"`
	ProcessedAt time.Time `json:"processed_at"`
}

// OutputEvent is the serialized form destined for the sink topic.
type OutputEvent struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}
