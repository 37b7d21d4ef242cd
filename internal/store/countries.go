package store

import (
	"database/sql"
	"fmt"
)

// ReplaceCountries atomically replaces the countries table with the given rows.
// Names are stored as standardized by the ingest layer.
func (s *Store) ReplaceCountries(countries []*Country) error {
	return s.Transaction(func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM countries"); err != nil {
			return fmt.Errorf("failed to clear countries: %w", err)
		}

		stmt, err := tx.Prepare(`
			INSERT INTO countries (name, latitude, longitude) VALUES (?, ?, ?)
			ON CONFLICT(name) DO UPDATE SET
				latitude = excluded.latitude,
				longitude = excluded.longitude
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare country insert: %w", err)
		}
		defer stmt.Close()

		for _, c := range countries {
			if _, err := stmt.Exec(c.Name, c.Latitude, c.Longitude); err != nil {
				return fmt.Errorf("failed to insert country %q: %w", c.Name, err)
			}
		}
		return nil
	})
}

// GetAllCountries retrieves all country centroids keyed by standardized name
func (s *Store) GetAllCountries() (map[string][2]float64, error) {
	rows, err := s.db.Query("SELECT name, latitude, longitude FROM countries")
	if err != nil {
		return nil, fmt.Errorf("failed to query countries: %w", err)
	}
	defer rows.Close()

	countries := make(map[string][2]float64)
	for rows.Next() {
		var name string
		var lat, lon float64
		if err := rows.Scan(&name, &lat, &lon); err != nil {
			return nil, fmt.Errorf("failed to scan country: %w", err)
		}
		countries[name] = [2]float64{lat, lon}
	}

	return countries, rows.Err()
}

// CountCountries returns the number of loaded countries
func (s *Store) CountCountries() (int, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM countries").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count countries: %w", err)
	}
	return count, nil
}
