package recommend

import (
	"github.com/franz/band-scout/internal/catalog"
	"github.com/franz/band-scout/internal/genre"
)

// FilterByGenre selects the bands sharing at least one processed genre
// tag with the target. The target itself is part of the result (it is
// excluded later, by the combiner). An unknown target, or a target with
// no processed tags, yields an empty result rather than an error;
// callers must check for emptiness before scoring.
//
// Candidate order is the stable catalog order of bands.
func FilterByGenre(bands []catalog.Band, targetID int64) []catalog.Band {
	var targetTags []string
	found := false
	for _, b := range bands {
		if b.ID == targetID {
			targetTags = b.GenreTags
			found = true
			break
		}
	}
	if !found {
		return nil
	}

	var candidates []catalog.Band
	for _, b := range bands {
		if genre.Overlaps(targetTags, b.GenreTags) {
			candidates = append(candidates, b)
		}
	}

	return candidates
}
