package recommend

import (
	"testing"

	"github.com/franz/band-scout/internal/catalog"
)

func testBands() []catalog.Band {
	return []catalog.Band{
		{ID: 1, Name: "Target", GenreTags: []string{"death metal"}},
		{ID: 2, Name: "A", GenreTags: []string{"death metal", "doom"}},
		{ID: 3, Name: "B", GenreTags: []string{"pop"}},
		{ID: 4, Name: "C", GenreTags: []string{"doom"}},
	}
}

func TestFilterByGenre(t *testing.T) {
	candidates := FilterByGenre(testBands(), 1)

	ids := make([]int64, 0, len(candidates))
	for _, c := range candidates {
		ids = append(ids, c.ID)
	}

	// Target included, A shares "death metal", B and C do not overlap
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 2 {
		t.Errorf("expected candidates [1 2], got %v", ids)
	}
}

func TestFilterByGenreUnknownTarget(t *testing.T) {
	candidates := FilterByGenre(testBands(), 99)
	if len(candidates) != 0 {
		t.Errorf("unknown target must yield empty candidate set, got %v", candidates)
	}
}

func TestFilterByGenreTargetWithoutTags(t *testing.T) {
	bands := []catalog.Band{
		{ID: 1, Name: "Tagless"},
		{ID: 2, Name: "A", GenreTags: []string{"doom"}},
	}

	candidates := FilterByGenre(bands, 1)
	if len(candidates) != 0 {
		t.Errorf("target without tags cannot overlap anything, got %v", candidates)
	}
}

func TestFilterByGenrePreservesOrder(t *testing.T) {
	bands := []catalog.Band{
		{ID: 5, GenreTags: []string{"doom"}},
		{ID: 1, GenreTags: []string{"doom"}},
		{ID: 9, GenreTags: []string{"doom"}},
	}

	candidates := FilterByGenre(bands, 1)
	if len(candidates) != 3 {
		t.Fatalf("expected 3 candidates, got %d", len(candidates))
	}
	if candidates[0].ID != 5 || candidates[1].ID != 1 || candidates[2].ID != 9 {
		t.Errorf("candidate order must follow input order, got %v", candidates)
	}
}
