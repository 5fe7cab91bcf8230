// Package domain models Bangladesh Meteorological Department (BMD) monthly
// station observations and the flood-signal rules derived from them.
//
// # Data Source
//
// Observations originate from the BMD 65-year monthly climate dataset
// (rainfall, temperature, humidity per station per month). The upstream
// collector service reads the station CSVs, injects a "Station" field, and
// publishes each row as flat JSON to the Kafka source topic.
//
// # Labeling Rule
//
// The flood label is a deterministic threshold rule, not model output:
//
//	Month outside the monsoon window {6,7,8,9,10} → never flood.
//	Coastal station:  flood iff monthly rainfall >= 1100 mm.
//	Deltaic station:  flood iff monthly rainfall >= 550 mm.
//
// Both thresholds and the monsoon window are configuration with the above
// defaults; an alternative threshold study for the same dataset proposes
// 1000/500 mm, so nothing in this package hard-codes one canon.
//
// # Region Resolution
//
// Stations are classified Coastal or Deltaic by an injected closed roster
// ([StationMap]). A station absent from both lists resolves to Deltaic.
// That fallback is inherited from the historical labeling run and is kept
// for parity; Resolve reports it through its second return value so callers
// can log and count unmapped stations instead of hiding them.
//
// # Severity
//
// Flood months carry an exceedance ratio (rainfall over the applicable
// threshold) and a derived band:
//
//	<1.25 moderate | <1.75 severe | ≥1.75 extreme
//
// The band is a project-specific simplification for downstream queries;
// non-flood months carry no band.
//
// # Ensemble Selection
//
// [Select] combines two discharge point-forecasts per time step into one,
// biased against under-prediction: a forecast at or above the observed value
// always beats one below it, and only when both under-predict does the rule
// fall back to the larger. The output is always one of the two inputs,
// never a blend. See Select for the full decision table.
//
// # ID Generation
//
// Event IDs are deterministic SHA-256 hashes of station|year|month|rainfall.
// This enables idempotent upserts downstream and replay safety without
// distributed coordination. See [generateID].
package domain
