package store

// Schema v1 - Initial database schema
const schemaV1 = `
-- Schema version tracking
CREATE TABLE IF NOT EXISTS schema_version (
  version INTEGER PRIMARY KEY,
  applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Bands from the bands dataset. The seq surrogate records insertion
-- order; id would alias the rowid and sort by band id instead.
CREATE TABLE IF NOT EXISTS bands (
  seq INTEGER PRIMARY KEY AUTOINCREMENT,
  id INTEGER UNIQUE NOT NULL,
  name TEXT NOT NULL,
  country TEXT NOT NULL DEFAULT '',
  genre TEXT NOT NULL DEFAULT '',
  loaded_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_bands_name ON bands(name);

-- Lyrical theme text (at most one row per band)
CREATE TABLE IF NOT EXISTS themes (
  band_id INTEGER PRIMARY KEY REFERENCES bands(id),
  themes TEXT NOT NULL
);

-- Directed crowd-sourced similarity scores
CREATE TABLE IF NOT EXISTS edges (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  band_id INTEGER NOT NULL,
  similar_id INTEGER NOT NULL,
  score REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_edges_band_id ON edges(band_id);
CREATE INDEX IF NOT EXISTS idx_edges_similar_id ON edges(similar_id);

-- Country centroid coordinates, keyed by standardized name
CREATE TABLE IF NOT EXISTS countries (
  name TEXT PRIMARY KEY,
  latitude REAL NOT NULL,
  longitude REAL NOT NULL
);
`
