package store

import (
	"database/sql"
	"fmt"
)

// ReplaceEdges atomically replaces the edges table with the given rows
func (s *Store) ReplaceEdges(edges []*Edge) error {
	return s.Transaction(func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM edges"); err != nil {
			return fmt.Errorf("failed to clear edges: %w", err)
		}

		stmt, err := tx.Prepare(`
			INSERT INTO edges (band_id, similar_id, score) VALUES (?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare edge insert: %w", err)
		}
		defer stmt.Close()

		for _, e := range edges {
			if _, err := stmt.Exec(e.BandID, e.SimilarID, e.Score); err != nil {
				return fmt.Errorf("failed to insert edge %d->%d: %w", e.BandID, e.SimilarID, err)
			}
		}
		return nil
	})
}

// GetAllEdges retrieves all directed similarity edges in load order
func (s *Store) GetAllEdges() ([]*Edge, error) {
	rows, err := s.db.Query(`
		SELECT band_id, similar_id, score FROM edges ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query edges: %w", err)
	}
	defer rows.Close()

	var edges []*Edge
	for rows.Next() {
		e := &Edge{}
		if err := rows.Scan(&e.BandID, &e.SimilarID, &e.Score); err != nil {
			return nil, fmt.Errorf("failed to scan edge: %w", err)
		}
		edges = append(edges, e)
	}

	return edges, rows.Err()
}

// GetEdgesForBand retrieves all edges incident to a band in either direction
func (s *Store) GetEdgesForBand(bandID int64) ([]*Edge, error) {
	rows, err := s.db.Query(`
		SELECT band_id, similar_id, score FROM edges
		WHERE band_id = ? OR similar_id = ?
		ORDER BY score DESC
	`, bandID, bandID)
	if err != nil {
		return nil, fmt.Errorf("failed to query edges for band %d: %w", bandID, err)
	}
	defer rows.Close()

	var edges []*Edge
	for rows.Next() {
		e := &Edge{}
		if err := rows.Scan(&e.BandID, &e.SimilarID, &e.Score); err != nil {
			return nil, fmt.Errorf("failed to scan edge: %w", err)
		}
		edges = append(edges, e)
	}

	return edges, rows.Err()
}

// CountEdges returns the number of loaded edges
func (s *Store) CountEdges() (int, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM edges").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count edges: %w", err)
	}
	return count, nil
}

// CountDanglingEdges returns edges referencing a band absent from the bands table
func (s *Store) CountDanglingEdges() (int, error) {
	var count int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM edges e
		LEFT JOIN bands a ON a.id = e.band_id
		LEFT JOIN bands b ON b.id = e.similar_id
		WHERE a.id IS NULL OR b.id IS NULL
	`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count dangling edges: %w", err)
	}
	return count, nil
}
