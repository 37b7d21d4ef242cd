// Package crowd aggregates directed crowd-sourced similarity edges into
// one undirected score per counterpart band.
package crowd

import "github.com/franz/band-scout/internal/store"

// Aggregate selects all edges incident to the target in either
// direction and keeps the maximum score per counterpart. When both
// directions exist, max wins over sum or average. Self-loops are
// dropped; candidates with no edge simply have no entry, and downstream
// joins fall back to a zero score.
func Aggregate(edges []store.Edge, targetID int64) map[int64]float64 {
	scores := make(map[int64]float64)

	for _, e := range edges {
		var counterpart int64
		switch targetID {
		case e.BandID:
			counterpart = e.SimilarID
		case e.SimilarID:
			counterpart = e.BandID
		default:
			continue
		}

		if counterpart == targetID {
			continue
		}

		if best, ok := scores[counterpart]; !ok || e.Score > best {
			scores[counterpart] = e.Score
		}
	}

	return scores
}
