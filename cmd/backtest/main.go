// Command backtest evaluates the safety-biased forecast ensemble over a
// back-test CSV of observed discharge and two model forecasts. It reports
// sMAPE/RMSE/MAE for each source model and for the ensemble, optionally
// writes the per-row selections, and can append the run summary to a SQLite
// history database for comparison across runs.
//
// Usage:
//
//	go run ./cmd/backtest \
//	  -input data/backtest/bow_river_24h.csv \
//	  -out data/backtest/bow_river_24h_ensemble.csv \
//	  -history data/backtest/runs.db
//
// The input CSV must have the header: timestamp,actual,forecast_a,forecast_b.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/couchcryptid/flood-signal-etl/internal/domain"
	"github.com/couchcryptid/flood-signal-etl/internal/evaluate"
	"github.com/couchcryptid/flood-signal-etl/internal/history"
)

func main() {
	input := flag.String("input", "", "back-test CSV (timestamp,actual,forecast_a,forecast_b)")
	out := flag.String("out", "", "optional output CSV of per-row selections")
	historyPath := flag.String("history", "", "optional SQLite database to append the run summary to")
	flag.Parse()

	if *input == "" {
		flag.Usage()
		fmt.Fprintln(os.Stderr, "missing required flag: -input")
		os.Exit(1)
	}

	if code := run(*input, *out, *historyPath); code != 0 {
		os.Exit(code)
	}
}

func run(inputPath, outPath, historyPath string) int {
	timestamps, series, err := loadSeries(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load %s: %v\n", inputPath, err)
		return 1
	}

	selections, err := domain.SelectSeries(series)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: ensemble selection: %v\n", err)
		return 1
	}

	summary, err := evaluate.Summarize(series)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: evaluate: %v\n", err)
		return 1
	}

	printReport(inputPath, summary)

	if outPath != "" {
		if err := writeSelections(outPath, timestamps, series, selections); err != nil {
			fmt.Fprintf(os.Stderr, "FATAL: write %s: %v\n", outPath, err)
			return 1
		}
		fmt.Printf("\nwrote selections: %s\n", outPath)
	}

	if historyPath != "" {
		if err := recordRun(historyPath, inputPath, summary); err != nil {
			fmt.Fprintf(os.Stderr, "FATAL: record run: %v\n", err)
			return 1
		}
		fmt.Printf("recorded run in %s\n", historyPath)
	}

	return 0
}

// loadSeries reads and parses the back-test CSV. Every row must parse; a
// malformed row aborts with its line number rather than being dropped, so
// reported metrics always cover the whole file.
func loadSeries(path string) ([]string, []domain.ForecastTriple, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("no data rows")
	}

	header := rows[0]
	colIdx := map[string]int{}
	for i, h := range header {
		colIdx[h] = i
	}
	for _, col := range []string{"timestamp", "actual", "forecast_a", "forecast_b"} {
		if _, ok := colIdx[col]; !ok {
			return nil, nil, fmt.Errorf("missing column %q", col)
		}
	}

	timestamps := make([]string, 0, len(rows)-1)
	series := make([]domain.ForecastTriple, 0, len(rows)-1)
	for i, row := range rows[1:] {
		line := i + 2
		actual, err := strconv.ParseFloat(row[colIdx["actual"]], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("line %d: actual: %w", line, err)
		}
		fa, err := strconv.ParseFloat(row[colIdx["forecast_a"]], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("line %d: forecast_a: %w", line, err)
		}
		fb, err := strconv.ParseFloat(row[colIdx["forecast_b"]], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("line %d: forecast_b: %w", line, err)
		}
		timestamps = append(timestamps, row[colIdx["timestamp"]])
		series = append(series, domain.ForecastTriple{Actual: actual, ForecastA: fa, ForecastB: fb})
	}
	return timestamps, series, nil
}

func printReport(inputPath string, s evaluate.Summary) {
	fmt.Println("=== Ensemble Back-Test Report ===")
	fmt.Printf("input: %s (%d rows)\n\n", inputPath, s.Rows)

	fmt.Printf("%-10s %10s %10s %10s\n", "series", "sMAPE%", "RMSE", "MAE")
	printScores("model_a", s.ModelA)
	printScores("model_b", s.ModelB)
	printScores("ensemble", s.Ensemble)

	fmt.Printf("\nselections: a=%d b=%d\n", s.ChoseA, s.ChoseB)
	fmt.Printf("under-predictions avoided vs closest-value rule: %d\n", s.UnderPredictionsAvoided)
}

func printScores(name string, sc evaluate.Scores) {
	fmt.Printf("%-10s %10.3f %10.3f %10.3f\n", name, sc.SMAPE, sc.RMSE, sc.MAE)
}

// writeSelections emits one row per time step with the chosen value and its
// source, alongside the inputs for spot checks.
func writeSelections(path string, timestamps []string, series []domain.ForecastTriple, selections []domain.SelectionResult) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"timestamp", "actual", "forecast_a", "forecast_b", "ensemble", "source"}); err != nil {
		return err
	}
	for i, sel := range selections {
		row := []string{
			timestamps[i],
			strconv.FormatFloat(series[i].Actual, 'g', -1, 64),
			strconv.FormatFloat(series[i].ForecastA, 'g', -1, 64),
			strconv.FormatFloat(series[i].ForecastB, 'g', -1, 64),
			strconv.FormatFloat(sel.Value, 'g', -1, 64),
			string(sel.Source),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func recordRun(historyPath, inputPath string, summary evaluate.Summary) error {
	store, err := history.Open(historyPath)
	if err != nil {
		return err
	}
	defer store.Close()

	return store.RecordRun(context.Background(), history.Run{
		RanAt:     time.Now().UTC(),
		InputPath: inputPath,
		Summary:   summary,
	})
}
