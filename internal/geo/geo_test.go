package geo

import (
	"math"
	"testing"
)

func TestStandardizeCountryName(t *testing.T) {
	testCases := []struct {
		raw      string
		expected string
	}{
		{"Sweden", "sweden"},
		{"  Sweden  ", "sweden"},
		{"USA", "united states"},
		{"United States of America", "united states"},
		{"UK", "united kingdom"},
		{"England", "united kingdom"},
		{"Korea, South", "south korea"},
		{"Czechia", "czech republic"},
		{"International", ""},
		{"Unknown", ""},
		{"", ""},
	}

	for _, tc := range testCases {
		got := StandardizeCountryName(tc.raw)
		if got != tc.expected {
			t.Errorf("StandardizeCountryName(%q) = %q, want %q", tc.raw, got, tc.expected)
		}
	}
}

func testCoords() map[string]Coord {
	return map[string]Coord{
		"sweden":        {Lat: 60.128161, Lon: 18.643501},
		"norway":        {Lat: 60.472024, Lon: 8.468946},
		"united states": {Lat: 37.09024, Lon: -95.712891},
	}
}

func TestProviderScore(t *testing.T) {
	p := NewProvider(testCoords())

	scores := p.Score("Sweden", map[int64]string{
		1: "Sweden",
		2: "Norway",
		3: "USA",
		4: "Atlantis", // unresolvable
	})

	if len(scores) != 3 {
		t.Fatalf("expected 3 scored candidates, got %d", len(scores))
	}

	if _, ok := scores[4]; ok {
		t.Error("unresolvable country should have no score entry")
	}

	if scores[1] != 1.0 {
		t.Errorf("same country should score exactly 1, got %v", scores[1])
	}

	// Norway is much closer to Sweden than the US is
	if scores[2] <= scores[3] {
		t.Errorf("expected norway (%v) to outscore united states (%v)", scores[2], scores[3])
	}

	for id, s := range scores {
		if s <= 0 || s > 1 {
			t.Errorf("score for band %d out of (0,1]: %v", id, s)
		}
	}
}

func TestProviderScoreUnresolvableTarget(t *testing.T) {
	p := NewProvider(testCoords())

	scores := p.Score("Atlantis", map[int64]string{1: "Sweden"})
	if len(scores) != 0 {
		t.Errorf("expected no scores for unresolvable target country, got %v", scores)
	}
}

func TestProviderScoreEmptyProvider(t *testing.T) {
	p := NewProvider(nil)

	scores := p.Score("Sweden", map[int64]string{1: "Sweden"})
	if len(scores) != 0 {
		t.Errorf("expected no scores from empty provider, got %v", scores)
	}
}

func TestHaversine(t *testing.T) {
	stockholm := Coord{Lat: 59.3293, Lon: 18.0686}
	oslo := Coord{Lat: 59.9139, Lon: 10.7522}

	km := haversineKm(stockholm, oslo)
	// Roughly 415 km apart
	if math.Abs(km-415) > 20 {
		t.Errorf("stockholm-oslo distance = %v km, expected ~415", km)
	}

	if d := haversineKm(stockholm, stockholm); d != 0 {
		t.Errorf("zero distance expected for identical coordinates, got %v", d)
	}
}
