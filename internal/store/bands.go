package store

import (
	"database/sql"
	"fmt"
)

// ReplaceBands atomically replaces the bands table with the given rows.
// Insertion order is preserved via the seq column and defines catalog
// order.
func (s *Store) ReplaceBands(bands []*Band) error {
	return s.Transaction(func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM bands"); err != nil {
			return fmt.Errorf("failed to clear bands: %w", err)
		}

		stmt, err := tx.Prepare(`
			INSERT INTO bands (id, name, country, genre)
			VALUES (?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare band insert: %w", err)
		}
		defer stmt.Close()

		for _, b := range bands {
			if _, err := stmt.Exec(b.ID, b.Name, b.Country, b.Genre); err != nil {
				return fmt.Errorf("failed to insert band %d: %w", b.ID, err)
			}
		}
		return nil
	})
}

// GetBand retrieves a band by its identifier
func (s *Store) GetBand(id int64) (*Band, error) {
	b := &Band{}
	err := s.db.QueryRow(`
		SELECT id, name, country, genre FROM bands WHERE id = ?
	`, id).Scan(&b.ID, &b.Name, &b.Country, &b.Genre)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get band: %w", err)
	}

	return b, nil
}

// GetAllBands retrieves all bands in stable load order
func (s *Store) GetAllBands() ([]*Band, error) {
	rows, err := s.db.Query(`
		SELECT id, name, country, genre FROM bands ORDER BY seq
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query bands: %w", err)
	}
	defer rows.Close()

	var bands []*Band
	for rows.Next() {
		b := &Band{}
		if err := rows.Scan(&b.ID, &b.Name, &b.Country, &b.Genre); err != nil {
			return nil, fmt.Errorf("failed to scan band: %w", err)
		}
		bands = append(bands, b)
	}

	return bands, rows.Err()
}

// GetDistinctBandCountries returns the distinct raw country strings in
// the bands table
func (s *Store) GetDistinctBandCountries() ([]string, error) {
	rows, err := s.db.Query(`
		SELECT DISTINCT country FROM bands WHERE country != '' ORDER BY country
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query band countries: %w", err)
	}
	defer rows.Close()

	var countries []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("failed to scan country: %w", err)
		}
		countries = append(countries, c)
	}

	return countries, rows.Err()
}

// CountBands returns the number of loaded bands
func (s *Store) CountBands() (int, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM bands").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count bands: %w", err)
	}
	return count, nil
}
