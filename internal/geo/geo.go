package geo

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

//go:embed cities_states_regions.json
var rawCities []byte

var ErrUnknownState = errors.New("geo: unknown state/region")

// City is one city with its bilingual names.
type City struct {
	English string `json:"english"`
	Burmese string `json:"burmese"`
}

// Index holds the state/region to city lookup used for address dropdowns.
// Built once at startup; read-only afterwards.
type Index struct {
	states []string
	cities map[string][]City
}

// Load parses the embedded dataset and orders states with a Unicode
// collator so Burmese names sort consistently.
func Load() (*Index, error) {
	cities := map[string][]City{}
	if err := json.Unmarshal(rawCities, &cities); err != nil {
		return nil, fmt.Errorf("geo: parse dataset: %w", err)
	}

	states := make([]string, 0, len(cities))
	for state := range cities {
		states = append(states, state)
	}
	collate.New(language.Und).SortStrings(states)

	return &Index{states: states, cities: cities}, nil
}

// States returns all state/region names in collation order.
func (ix *Index) States() []string {
	out := make([]string, len(ix.states))
	copy(out, ix.states)
	return out
}

// Cities returns the cities of one state/region.
func (ix *Index) Cities(state string) ([]City, error) {
	cities, ok := ix.cities[state]
	if !ok {
		return nil, ErrUnknownState
	}
	out := make([]City, len(cities))
	copy(out, cities)
	return out, nil
}
