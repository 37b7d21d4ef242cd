// Package catalog builds the in-memory snapshot the scoring pipeline
// runs over: bands joined with their lyrical themes, the crowd edge
// list, and country centroids. The snapshot is immutable between
// Refresh calls; the pipeline only ever borrows read-only views.
package catalog

import (
	"fmt"
	"strings"

	"github.com/franz/band-scout/internal/genre"
	"github.com/franz/band-scout/internal/geo"
	"github.com/franz/band-scout/internal/store"
)

// Band is one catalog entry, fully preprocessed for scoring.
// Bands without at least one valid lyrical theme are not in the catalog.
type Band struct {
	ID        int64
	Name      string
	Country   string
	GenreTags []string
	GenreText string
	ThemeText string
}

// Catalog is the loaded snapshot plus the store handle used to refresh it
type Catalog struct {
	store  *store.Store
	bands  []Band
	byID   map[int64]int
	edges  []store.Edge
	coords map[string]geo.Coord
}

// Load builds a catalog from the store
func Load(st *store.Store) (*Catalog, error) {
	c := &Catalog{store: st}
	if err := c.Refresh(); err != nil {
		return nil, err
	}
	return c, nil
}

// Refresh rebuilds the snapshot from the store. On error the previous
// snapshot is left intact.
func (c *Catalog) Refresh() error {
	rows, err := c.store.GetAllBands()
	if err != nil {
		return fmt.Errorf("failed to load bands: %w", err)
	}

	themes, err := c.store.GetAllThemes()
	if err != nil {
		return fmt.Errorf("failed to load themes: %w", err)
	}

	edgeRows, err := c.store.GetAllEdges()
	if err != nil {
		return fmt.Errorf("failed to load edges: %w", err)
	}

	countryRows, err := c.store.GetAllCountries()
	if err != nil {
		return fmt.Errorf("failed to load countries: %w", err)
	}

	bands := make([]Band, 0, len(rows))
	byID := make(map[int64]int, len(rows))

	for _, row := range rows {
		themeText := NormalizeThemes(themes[row.ID])
		if themeText == "" {
			// No valid themes: excluded from candidacy entirely
			continue
		}

		if _, dup := byID[row.ID]; dup {
			return fmt.Errorf("duplicate band id %d in bands table", row.ID)
		}

		byID[row.ID] = len(bands)
		bands = append(bands, Band{
			ID:        row.ID,
			Name:      row.Name,
			Country:   row.Country,
			GenreTags: genre.Tags(row.Genre),
			GenreText: genre.CleanLabel(row.Genre),
			ThemeText: themeText,
		})
	}

	edges := make([]store.Edge, 0, len(edgeRows))
	for _, e := range edgeRows {
		edges = append(edges, *e)
	}

	coords := make(map[string]geo.Coord, len(countryRows))
	for name, ll := range countryRows {
		coords[name] = geo.Coord{Lat: ll[0], Lon: ll[1]}
	}

	c.bands = bands
	c.byID = byID
	c.edges = edges
	c.coords = coords

	return nil
}

// Bands returns all catalog entries in stable load order
func (c *Catalog) Bands() []Band {
	return c.bands
}

// Lookup finds a band by identifier
func (c *Catalog) Lookup(id int64) (Band, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return Band{}, false
	}
	return c.bands[idx], true
}

// Edges returns the directed crowd similarity edges
func (c *Catalog) Edges() []store.Edge {
	return c.edges
}

// Coords returns country centroids keyed by standardized name
func (c *Catalog) Coords() map[string]geo.Coord {
	return c.coords
}

// Len returns the number of catalog entries
func (c *Catalog) Len() int {
	return len(c.bands)
}

// NormalizeThemes cleans a raw theme string into the comma-joined,
// lowercased form used for theme text similarity. Empty and
// whitespace-only tokens are dropped; an unusable input yields "".
func NormalizeThemes(raw string) string {
	parts := strings.Split(strings.ToLower(raw), ",")
	cleaned := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			cleaned = append(cleaned, p)
		}
	}
	return strings.Join(cleaned, ", ")
}
