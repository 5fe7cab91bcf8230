package pipeline

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/couchcryptid/flood-signal-etl/internal/domain"
	"github.com/couchcryptid/flood-signal-etl/internal/observability"
)

// FloodTransformer implements Transformer using the domain labeling
// functions with an injected station roster and policy.
type FloodTransformer struct {
	stations *domain.StationMap
	policy   domain.LabelPolicy
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// NewTransformer creates a FloodTransformer.
func NewTransformer(stations *domain.StationMap, policy domain.LabelPolicy, logger *slog.Logger, metrics *observability.Metrics) *FloodTransformer {
	return &FloodTransformer{
		stations: stations,
		policy:   policy,
		logger:   logger,
		metrics:  metrics,
	}
}

func (t *FloodTransformer) Transform(_ context.Context, raw domain.RawEvent) (domain.OutputEvent, error) {
	obs, err := domain.ParseRawEvent(raw)
	if err != nil {
		return domain.OutputEvent{}, err
	}

	event, err := domain.LabelObservation(obs, t.stations, t.policy)
	if err != nil {
		return domain.OutputEvent{}, err
	}

	// The Deltaic fallback for unmapped stations is documented behavior,
	// but it must be visible, not silent.
	if !event.RegionMapped {
		t.logger.Warn("station not in roster, defaulting to deltaic",
			"station", event.Station, "year", event.Year, "month", event.Month)
		t.metrics.UnmappedStations.Inc()
	}
	t.metrics.FloodLabels.WithLabelValues(string(event.Region), strconv.FormatBool(event.Flood)).Inc()

	return domain.SerializeFloodEvent(event)
}
