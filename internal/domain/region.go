package domain

// Region is the closed two-valued classification of a BMD station that
// selects which rainfall threshold applies.
type Region string

const (
	RegionCoastal Region = "coastal"
	RegionDeltaic Region = "deltaic"
)

// StationMap resolves station names to regions from an injected roster.
// The roster is immutable after construction, so a single map is safe to
// share across any number of goroutines.
type StationMap struct {
	coastal map[string]struct{}
	deltaic map[string]struct{}
}

// NewStationMap builds a StationMap from the two station lists. The lists
// must be disjoint; a station appearing in both returns a
// ConfigurationError.
func NewStationMap(coastal, deltaic []string) (*StationMap, error) {
	m := &StationMap{
		coastal: make(map[string]struct{}, len(coastal)),
		deltaic: make(map[string]struct{}, len(deltaic)),
	}
	for _, s := range coastal {
		m.coastal[s] = struct{}{}
	}
	for _, s := range deltaic {
		if _, ok := m.coastal[s]; ok {
			return nil, &ConfigurationError{
				Field:  "station_map",
				Reason: "station " + s + " listed as both coastal and deltaic",
			}
		}
		m.deltaic[s] = struct{}{}
	}
	return m, nil
}

// Resolve classifies a station. Stations absent from both lists resolve to
// Deltaic with mapped=false — the fallback inherited from the historical
// labeling run. Callers that cannot tolerate it should check mapped.
func (m *StationMap) Resolve(station string) (region Region, mapped bool) {
	if _, ok := m.coastal[station]; ok {
		return RegionCoastal, true
	}
	_, ok := m.deltaic[station]
	return RegionDeltaic, ok
}

// DefaultStationMap returns the standard BMD station roster. The split
// follows the dataset's coastal-belt grouping: stations on the Bay of
// Bengal coast are coastal, everything else deltaic.
func DefaultStationMap() *StationMap {
	m, err := NewStationMap(
		[]string{
			"Chittagong", "Cox's Bazar", "Teknaf", "Kutubdia", "Sandwip",
			"Sitakunda", "Hatiya", "Khepupara", "Patuakhali", "Bhola",
		},
		[]string{
			"Dhaka", "Barisal", "Khulna", "Faridpur", "Madaripur",
			"Satkhira", "Jessore", "Comilla", "Chandpur", "Mymensingh",
			"Tangail", "Sylhet", "Srimangal", "Rajshahi", "Ishurdi",
			"Bogra", "Rangpur", "Dinajpur", "Sydpur",
		},
	)
	if err != nil {
		// The built-in roster is disjoint by construction.
		panic(err)
	}
	return m
}
