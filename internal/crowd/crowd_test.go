package crowd

import (
	"testing"

	"github.com/franz/band-scout/internal/store"
)

func TestAggregateMaxWinsAcrossDirections(t *testing.T) {
	edges := []store.Edge{
		{BandID: 1, SimilarID: 2, Score: 0.7},
		{BandID: 2, SimilarID: 1, Score: 0.9},
	}

	scores := Aggregate(edges, 1)

	if len(scores) != 1 {
		t.Fatalf("expected exactly one entry, got %d", len(scores))
	}
	if scores[2] != 0.9 {
		t.Errorf("expected max score 0.9 for band 2, got %v", scores[2])
	}
}

func TestAggregate(t *testing.T) {
	edges := []store.Edge{
		{BandID: 1, SimilarID: 2, Score: 0.5},
		{BandID: 1, SimilarID: 3, Score: 0.8},
		{BandID: 4, SimilarID: 1, Score: 0.3},
		{BandID: 1, SimilarID: 2, Score: 0.2}, // duplicate source, lower
		{BandID: 5, SimilarID: 6, Score: 0.9}, // not incident to target
		{BandID: 1, SimilarID: 1, Score: 1.0}, // self-loop
	}

	scores := Aggregate(edges, 1)

	expected := map[int64]float64{2: 0.5, 3: 0.8, 4: 0.3}
	if len(scores) != len(expected) {
		t.Fatalf("expected %d entries, got %d: %v", len(expected), len(scores), scores)
	}
	for id, want := range expected {
		if scores[id] != want {
			t.Errorf("band %d: expected %v, got %v", id, want, scores[id])
		}
	}
}

func TestAggregateNoEdges(t *testing.T) {
	scores := Aggregate(nil, 1)
	if len(scores) != 0 {
		t.Errorf("expected empty result for no edges, got %v", scores)
	}

	scores = Aggregate([]store.Edge{{BandID: 2, SimilarID: 3, Score: 0.4}}, 1)
	if len(scores) != 0 {
		t.Errorf("expected empty result when no edge touches target, got %v", scores)
	}
}
