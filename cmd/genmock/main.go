// Command genmock reads a raw BMD monthly-observation CSV and generates
// mock data fixtures: the collector-style raw JSON the labeler consumes and
// the labeled JSON it produces. It uses the actual domain package so the
// labeled fixture matches real pipeline behavior.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  -csv data/bmd/monthly_observations.csv \
//	  -raw-out data/mock/bmd_observations_raw.json \
//	  -labeled-out data/mock/bmd_observations_labeled.json
package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/flood-signal-etl/internal/domain"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	csvPath := flag.String("csv", "", "raw BMD monthly CSV (Station,Year,Month,Rainfall,MaxTemp,MinTemp,Humidity)")
	rawOut := flag.String("raw-out", "", "output path for raw JSON fixture")
	labeledOut := flag.String("labeled-out", "", "output path for labeled JSON fixture")
	flag.Parse()

	if *csvPath == "" || *rawOut == "" || *labeledOut == "" {
		flag.Usage()
		return fmt.Errorf("missing required flags: -csv, -raw-out, -labeled-out")
	}

	// Set a fixed clock for reproducible ProcessedAt timestamps.
	domain.SetClock(clockwork.NewFakeClockAt(
		time.Date(2026, time.January, 15, 6, 0, 0, 0, time.UTC),
	))
	defer domain.SetClock(nil)

	records, events, err := processCSV(*csvPath)
	if err != nil {
		return fmt.Errorf("processing %s: %w", *csvPath, err)
	}
	log.Printf("total: %d records", len(records))

	if err := writeJSON(*rawOut, records); err != nil {
		return fmt.Errorf("writing raw fixture: %w", err)
	}
	log.Printf("wrote raw fixture: %s", *rawOut)

	if err := writeJSON(*labeledOut, events); err != nil {
		return fmt.Errorf("writing labeled fixture: %w", err)
	}
	log.Printf("wrote labeled fixture: %s", *labeledOut)

	printStats(events)
	return nil
}

func processCSV(path string) ([]domain.RawObservationRecord, []domain.FloodEvent, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("no data rows")
	}

	header := rows[0]
	colIdx := map[string]int{}
	for i, h := range header {
		colIdx[h] = i
	}

	stations := domain.DefaultStationMap()
	policy := domain.DefaultLabelPolicy()

	var records []domain.RawObservationRecord
	var events []domain.FloodEvent

	for _, row := range rows[1:] {
		if len(row) < len(header) {
			continue
		}

		rec := domain.RawObservationRecord{
			Station:  get(row, colIdx, "Station"),
			Year:     get(row, colIdx, "Year"),
			Month:    get(row, colIdx, "Month"),
			Rainfall: get(row, colIdx, "Rainfall"),
			MaxTemp:  get(row, colIdx, "MaxTemp"),
			MinTemp:  get(row, colIdx, "MinTemp"),
			Humidity: get(row, colIdx, "Humidity"),
		}
		records = append(records, rec)

		// Run the actual labeling transform.
		rawJSON, err := json.Marshal(rec)
		if err != nil {
			return nil, nil, fmt.Errorf("marshal record: %w", err)
		}
		obs, err := domain.ParseRawEvent(domain.RawEvent{Value: rawJSON})
		if err != nil {
			return nil, nil, fmt.Errorf("parse raw event: %w", err)
		}
		event, err := domain.LabelObservation(obs, stations, policy)
		if err != nil {
			return nil, nil, fmt.Errorf("label %s %s-%s: %w", rec.Station, rec.Year, rec.Month, err)
		}
		events = append(events, event)
	}

	return records, events, nil
}

func get(row []string, idx map[string]int, col string) string {
	i, ok := idx[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

// statsResult holds aggregated counts for printStats reporting.
type statsResult struct {
	regionCounts   map[domain.Region]int
	floodByRegion  map[domain.Region]int
	severityCounts map[string]int
	stationCounts  map[string]int
	floods         int
	unmapped       int
}

func collectStats(events []domain.FloodEvent) statsResult {
	s := statsResult{
		regionCounts:   map[domain.Region]int{},
		floodByRegion:  map[domain.Region]int{},
		severityCounts: map[string]int{},
		stationCounts:  map[string]int{},
	}
	for i := range events {
		e := &events[i]
		s.regionCounts[e.Region]++
		s.stationCounts[e.Station]++
		if e.Flood {
			s.floods++
			s.floodByRegion[e.Region]++
		}
		if e.Severity != nil {
			s.severityCounts[*e.Severity]++
		}
		if !e.RegionMapped {
			s.unmapped++
		}
	}
	return s
}

type stationCount struct {
	station string
	count   int
}

func printStats(events []domain.FloodEvent) {
	stats := collectStats(events)

	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Total: %d\n", len(events))
	fmt.Printf("By region: coastal=%d, deltaic=%d\n",
		stats.regionCounts[domain.RegionCoastal], stats.regionCounts[domain.RegionDeltaic])
	fmt.Printf("Flood months: %d (coastal=%d, deltaic=%d)\n",
		stats.floods, stats.floodByRegion[domain.RegionCoastal], stats.floodByRegion[domain.RegionDeltaic])
	fmt.Printf("By severity: moderate=%d, severe=%d, extreme=%d\n",
		stats.severityCounts["moderate"], stats.severityCounts["severe"], stats.severityCounts["extreme"])
	fmt.Printf("Unmapped stations (deltaic fallback): %d\n", stats.unmapped)

	printStationBreakdown(stats)
	printFloodDetails(events)
}

func printStationBreakdown(stats statsResult) {
	sc := make([]stationCount, 0, len(stats.stationCounts))
	for s, c := range stats.stationCounts {
		sc = append(sc, stationCount{s, c})
	}
	sort.Slice(sc, func(i, j int) bool { return sc[i].count > sc[j].count })

	fmt.Printf("Stations (%d): ", len(sc))
	for _, s := range sc {
		fmt.Printf("%s=%d ", s.station, s.count)
	}
	fmt.Println()
}

func printFloodDetails(events []domain.FloodEvent) {
	// First flood record info.
	for i := range events {
		if !events[i].Flood {
			continue
		}
		e := &events[i]
		fmt.Printf("\nFirst flood record:\n")
		fmt.Printf("  ID: %s\n", e.ID)
		fmt.Printf("  Station: %s (%s)\n", e.Station, e.Region)
		fmt.Printf("  Month: %s, Rainfall: %g mm, Threshold: %g mm\n", e.MonthBucket, e.RainfallMM, e.ThresholdMM)
		fmt.Printf("  Exceedance: %.3f\n", e.Exceedance)
		if e.Severity != nil {
			fmt.Printf("  Severity: %s\n", *e.Severity)
		}
		break
	}

	// Wettest month overall.
	var maxRain float64
	var wettest string
	for i := range events {
		if events[i].RainfallMM > maxRain {
			maxRain = events[i].RainfallMM
			wettest = events[i].Station + " " + events[i].MonthBucket
		}
	}
	fmt.Printf("\nWettest month: %s (%g mm)\n", wettest, maxRain)
}
