package store

import (
	"database/sql"
	"fmt"
)

// ReplaceThemes atomically replaces the themes table with the given rows
func (s *Store) ReplaceThemes(themes []*Theme) error {
	return s.Transaction(func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM themes"); err != nil {
			return fmt.Errorf("failed to clear themes: %w", err)
		}

		stmt, err := tx.Prepare(`
			INSERT INTO themes (band_id, themes) VALUES (?, ?)
			ON CONFLICT(band_id) DO UPDATE SET themes = excluded.themes
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare theme insert: %w", err)
		}
		defer stmt.Close()

		for _, t := range themes {
			if _, err := stmt.Exec(t.BandID, t.Themes); err != nil {
				return fmt.Errorf("failed to insert themes for band %d: %w", t.BandID, err)
			}
		}
		return nil
	})
}

// GetTheme retrieves the theme text for a band
func (s *Store) GetTheme(bandID int64) (*Theme, error) {
	t := &Theme{}
	err := s.db.QueryRow(`
		SELECT band_id, themes FROM themes WHERE band_id = ?
	`, bandID).Scan(&t.BandID, &t.Themes)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get themes: %w", err)
	}

	return t, nil
}

// GetAllThemes retrieves all theme rows keyed by band identifier
func (s *Store) GetAllThemes() (map[int64]string, error) {
	rows, err := s.db.Query("SELECT band_id, themes FROM themes")
	if err != nil {
		return nil, fmt.Errorf("failed to query themes: %w", err)
	}
	defer rows.Close()

	themes := make(map[int64]string)
	for rows.Next() {
		var bandID int64
		var text string
		if err := rows.Scan(&bandID, &text); err != nil {
			return nil, fmt.Errorf("failed to scan themes: %w", err)
		}
		themes[bandID] = text
	}

	return themes, rows.Err()
}

// CountThemes returns the number of loaded theme rows
func (s *Store) CountThemes() (int, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM themes").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count themes: %w", err)
	}
	return count, nil
}

// CountOrphanThemes returns theme rows whose band is not in the bands table
func (s *Store) CountOrphanThemes() (int, error) {
	var count int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM themes t
		LEFT JOIN bands b ON b.id = t.band_id
		WHERE b.id IS NULL
	`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count orphan themes: %w", err)
	}
	return count, nil
}
