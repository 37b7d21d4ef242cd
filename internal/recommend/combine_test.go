package recommend

import (
	"errors"
	"math"
	"testing"

	"github.com/franz/band-scout/internal/util"
)

func TestNormalizeSignal(t *testing.T) {
	testCases := []struct {
		name     string
		values   []float64
		expected []float64
	}{
		{
			name:     "spread values hit exactly 0 and 1",
			values:   []float64{2, 4, 6},
			expected: []float64{0, 0.5, 1},
		},
		{
			name:     "negative values absorbed",
			values:   []float64{-1, 0, 1},
			expected: []float64{0, 0.5, 1},
		},
		{
			name:     "zero variance becomes constant zero",
			values:   []float64{3, 3, 3},
			expected: []float64{0, 0, 0},
		},
		{
			name:     "single value is degenerate",
			values:   []float64{42},
			expected: []float64{0},
		},
		{
			name:     "empty input",
			values:   nil,
			expected: []float64{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeSignal(tc.values)
			if len(got) != len(tc.expected) {
				t.Fatalf("length %d, want %d", len(got), len(tc.expected))
			}
			for i := range got {
				if math.Abs(got[i]-tc.expected[i]) > 1e-9 {
					t.Errorf("index %d: got %v, want %v", i, got[i], tc.expected[i])
				}
				if got[i] < 0 || got[i] > 1 {
					t.Errorf("index %d: %v outside [0,1]", i, got[i])
				}
				if math.IsNaN(got[i]) {
					t.Errorf("index %d: NaN leaked out of normalization", i)
				}
			}
		})
	}
}

func TestWeightsValidate(t *testing.T) {
	valid := Weights{Genre: 0.333, Lyrical: 0.333, Similar: 0.333, Country: 0.1}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid weights rejected: %v", err)
	}

	// Weights are not required to sum to 1
	overweight := Weights{Genre: 5, Lyrical: 5, Similar: 5, Country: 5}
	if err := overweight.Validate(); err != nil {
		t.Errorf("over-weighting must be allowed: %v", err)
	}

	negative := Weights{Genre: -0.1}
	if err := negative.Validate(); !errors.Is(err, util.ErrInvalidWeights) {
		t.Errorf("expected ErrInvalidWeights for negative weight, got %v", err)
	}

	nan := Weights{Lyrical: math.NaN()}
	if err := nan.Validate(); !errors.Is(err, util.ErrInvalidWeights) {
		t.Errorf("expected ErrInvalidWeights for NaN weight, got %v", err)
	}
}

func equalWeights() Weights {
	return Weights{Genre: 1, Lyrical: 1, Similar: 1, Country: 1}
}

func TestCombineExcludesTarget(t *testing.T) {
	rows := []CandidateRow{
		{BandID: 1, Name: "Target", GenreSim: 1, ThemeSim: 1, CrowdScore: 1, GeoScore: 1},
		{BandID: 2, Name: "Other", GenreSim: 0.5, ThemeSim: 0.5, CrowdScore: 0.5, GeoScore: 0.5},
	}

	ranked := Combine(rows, 1, equalWeights(), 10)
	for _, r := range ranked {
		if r.BandID == 1 {
			t.Error("target band must never appear in the ranked output")
		}
	}
}

func TestCombineOutputLength(t *testing.T) {
	var rows []CandidateRow
	rows = append(rows, CandidateRow{BandID: 100}) // target
	for i := int64(1); i <= 15; i++ {
		rows = append(rows, CandidateRow{BandID: i, CrowdScore: float64(i)})
	}

	ranked := Combine(rows, 100, equalWeights(), 10)
	if len(ranked) != 10 {
		t.Errorf("expected top-10, got %d", len(ranked))
	}

	// Fewer candidates than topK
	ranked = Combine(rows[:4], 100, equalWeights(), 10)
	if len(ranked) != 3 {
		t.Errorf("expected min(10, n-1) = 3, got %d", len(ranked))
	}
}

func TestCombineSingleCandidateNoFault(t *testing.T) {
	rows := []CandidateRow{
		{BandID: 1, GenreSim: 1, ThemeSim: 1, CrowdScore: 0, GeoScore: 0},
	}

	ranked := Combine(rows, 1, equalWeights(), 10)
	if len(ranked) != 0 {
		t.Errorf("single candidate (the target) must yield empty output, got %v", ranked)
	}
}

func TestCombineRanksByTotal(t *testing.T) {
	rows := []CandidateRow{
		{BandID: 1}, // target
		{BandID: 2, CrowdScore: 0.1},
		{BandID: 3, CrowdScore: 0.9},
		{BandID: 4, CrowdScore: 0.5},
	}

	ranked := Combine(rows, 1, equalWeights(), 10)
	if len(ranked) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(ranked))
	}
	if ranked[0].BandID != 3 || ranked[1].BandID != 4 || ranked[2].BandID != 2 {
		t.Errorf("unexpected order: %v", ranked)
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i].TotalScore > ranked[i-1].TotalScore {
			t.Errorf("output not sorted descending at %d", i)
		}
	}
}

func TestCombineTiesKeepCandidateOrder(t *testing.T) {
	rows := []CandidateRow{
		{BandID: 1}, // target
		{BandID: 5, Name: "First"},
		{BandID: 3, Name: "Second"},
		{BandID: 9, Name: "Third"},
	}

	ranked := Combine(rows, 1, equalWeights(), 10)
	if ranked[0].BandID != 5 || ranked[1].BandID != 3 || ranked[2].BandID != 9 {
		t.Errorf("ties must keep candidate order, got %v", ranked)
	}
}

func TestCombineWeightMonotonicity(t *testing.T) {
	// Band 3 has strictly higher crowd score; raising the similar
	// weight must never push it below band 2.
	rows := []CandidateRow{
		{BandID: 1}, // target
		{BandID: 2, GenreSim: 0.9, CrowdScore: 0.1},
		{BandID: 3, GenreSim: 0.1, CrowdScore: 0.9},
	}

	rankOf := func(ranked []Recommendation, id int64) int {
		for i, r := range ranked {
			if r.BandID == id {
				return i
			}
		}
		return -1
	}

	low := Combine(rows, 1, Weights{Genre: 1, Similar: 0.1}, 10)
	high := Combine(rows, 1, Weights{Genre: 1, Similar: 10}, 10)

	if rankOf(high, 3) > rankOf(low, 3) {
		t.Errorf("increasing similar weight worsened rank of higher-crowd band: %v -> %v",
			rankOf(low, 3), rankOf(high, 3))
	}
}
