package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/franz/band-scout/internal/ingest"
	"github.com/franz/band-scout/internal/store"
	"github.com/franz/band-scout/internal/util"
)

func tempDataset(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("header\n"), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestValidateDatasetPaths(t *testing.T) {
	dir := t.TempDir()
	complete := ingest.Paths{
		Bands:     tempDataset(t, dir, "bands.csv"),
		Lyrics:    tempDataset(t, dir, "lyrics.csv"),
		Edges:     tempDataset(t, dir, "similar.csv"),
		Countries: tempDataset(t, dir, "countries.csv"),
	}

	if err := validateDatasetPaths(complete); err != nil {
		t.Errorf("all paths present and readable, got error: %v", err)
	}

	missing := complete
	missing.Lyrics = ""
	err := validateDatasetPaths(missing)
	if err == nil {
		t.Fatal("expected error for unset dataset path")
	}
	if !errors.Is(err, util.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got: %v", err)
	}

	unreadable := complete
	unreadable.Edges = filepath.Join(dir, "does-not-exist.csv")
	err = validateDatasetPaths(unreadable)
	if err == nil {
		t.Fatal("expected error for missing dataset file")
	}
	if errors.Is(err, util.ErrInvalidConfig) {
		t.Errorf("unreadable file is not a config error, got: %v", err)
	}
}

func TestLookupBand(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := store.Open(dbPath)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer db.Close()

	bands := []*store.Band{
		{ID: 7, Name: "Opeth", Country: "Sweden", Genre: "Progressive metal"},
	}
	if err := db.ReplaceBands(bands); err != nil {
		t.Fatalf("failed to insert bands: %v", err)
	}

	band, err := lookupBand(db, 7)
	if err != nil {
		t.Fatalf("lookup of existing band failed: %v", err)
	}
	if band.Name != "Opeth" {
		t.Errorf("expected Opeth, got %q", band.Name)
	}

	_, err = lookupBand(db, 999)
	if err == nil {
		t.Fatal("expected error for missing band id")
	}
	if !errors.Is(err, util.ErrUnknownBand) {
		t.Errorf("expected ErrUnknownBand, got: %v", err)
	}
}
