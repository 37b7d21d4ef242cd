package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/franz/band-scout/internal/report"
	"github.com/franz/band-scout/internal/store"
	"github.com/franz/band-scout/internal/util"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func testPaths(t *testing.T, dir string) Paths {
	t.Helper()
	return Paths{
		Bands: writeFile(t, dir, "bands.csv",
			"Band ID,Band Name,Country,Genre\n"+
				"1,Grave Omen,Sweden,Death Metal\n"+
				"2,Rotting Dawn,Sweden,\"Death Metal, Doom Metal\"\n"+
				"oops,Bad Row,Nowhere,None\n"),
		Lyrics: writeFile(t, dir, "lyrics.csv",
			"Band ID,Themes:\n"+
				"1,\"Death, War\"\n"+
				"2,Despair\n"+
				"3,\n"),
		Edges: writeFile(t, dir, "similar.csv",
			"Band ID,Similar Artist ID,Score\n"+
				"1,2,0.7\n"+
				"2,1,0.9\n"+
				"1,2,-1\n"),
		Countries: writeFile(t, dir, "countries.csv",
			"country,latitude,longitude\n"+
				"Sweden,60.13,18.64\n"+
				"Norway,60.47,8.47\n"),
	}
}

func testLoader(t *testing.T) (*Loader, *store.Store) {
	t.Helper()

	db, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	loader := New(&Config{Store: db, Logger: report.NullLogger()})
	return loader, db
}

func TestLoadAll(t *testing.T) {
	loader, db := testLoader(t)
	paths := testPaths(t, t.TempDir())

	result, err := loader.LoadAll(context.Background(), paths)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if result.Bands != 2 {
		t.Errorf("expected 2 bands, got %d", result.Bands)
	}
	if result.Themes != 2 {
		t.Errorf("expected 2 themes, got %d", result.Themes)
	}
	if result.Edges != 2 {
		t.Errorf("expected 2 edges, got %d", result.Edges)
	}
	if result.Countries != 2 {
		t.Errorf("expected 2 countries, got %d", result.Countries)
	}
	// One bad band id, one empty theme row, one negative-score edge
	if result.Skipped != 3 {
		t.Errorf("expected 3 skipped rows, got %d", result.Skipped)
	}

	band, err := db.GetBand(2)
	if err != nil {
		t.Fatalf("failed to get band: %v", err)
	}
	if band == nil || band.Genre != "Death Metal, Doom Metal" {
		t.Errorf("unexpected band 2: %+v", band)
	}

	countries, err := db.GetAllCountries()
	if err != nil {
		t.Fatalf("failed to get countries: %v", err)
	}
	if _, ok := countries["sweden"]; !ok {
		t.Errorf("country names must be standardized at ingest, got %v", countries)
	}
}

func TestLoadAllReplacesPreviousGeneration(t *testing.T) {
	loader, db := testLoader(t)
	paths := testPaths(t, t.TempDir())

	if _, err := loader.LoadAll(context.Background(), paths); err != nil {
		t.Fatalf("first load failed: %v", err)
	}

	dir := t.TempDir()
	paths.Bands = writeFile(t, dir, "bands.csv",
		"Band ID,Band Name,Country,Genre\n5,Only One,Norway,Doom Metal\n")

	if _, err := loader.LoadAll(context.Background(), paths); err != nil {
		t.Fatalf("second load failed: %v", err)
	}

	count, err := db.CountBands()
	if err != nil {
		t.Fatalf("failed to count bands: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 band after reload, got %d", count)
	}
}

func TestLoadMissingColumn(t *testing.T) {
	loader, _ := testLoader(t)
	dir := t.TempDir()

	paths := testPaths(t, dir)
	paths.Bands = writeFile(t, dir, "no-id.csv",
		"Band Name,Country,Genre\nGrave Omen,Sweden,Death Metal\n")

	_, err := loader.LoadAll(context.Background(), paths)
	if !errors.Is(err, util.ErrMissingColumn) {
		t.Errorf("expected ErrMissingColumn, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	loader, _ := testLoader(t)

	paths := testPaths(t, t.TempDir())
	paths.Edges = filepath.Join(t.TempDir(), "does-not-exist.csv")

	if _, err := loader.LoadAll(context.Background(), paths); err == nil {
		t.Error("expected error for missing dataset file")
	}
}

func TestNormalizeHeader(t *testing.T) {
	testCases := []struct {
		raw      string
		expected string
	}{
		{"Band ID", "band id"},
		{"Themes:", "themes"},
		{"  Score  ", "score"},
	}

	for _, tc := range testCases {
		if got := normalizeHeader(tc.raw); got != tc.expected {
			t.Errorf("normalizeHeader(%q) = %q, want %q", tc.raw, got, tc.expected)
		}
	}
}
