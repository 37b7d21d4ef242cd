// Package ingest loads the CSV datasets into the SQLite store.
// Malformed rows are counted and reported, never silently dropped;
// a file missing a required column is a hard construction failure.
package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"

	"github.com/franz/band-scout/internal/geo"
	"github.com/franz/band-scout/internal/report"
	"github.com/franz/band-scout/internal/store"
	"github.com/franz/band-scout/internal/util"
)

// Paths locates the four dataset files
type Paths struct {
	Bands     string
	Lyrics    string
	Edges     string
	Countries string
}

// Loader reads CSV datasets into the store
type Loader struct {
	store        *store.Store
	logger       *report.EventLogger
	showProgress bool
}

// Config holds loader configuration
type Config struct {
	Store        *store.Store
	Logger       *report.EventLogger
	ShowProgress bool
}

// New creates a new Loader
func New(cfg *Config) *Loader {
	return &Loader{
		store:        cfg.Store,
		logger:       cfg.Logger,
		showProgress: cfg.ShowProgress,
	}
}

// Result represents ingest results
type Result struct {
	Bands     int
	Themes    int
	Edges     int
	Countries int
	Skipped   int
}

// LoadAll ingests all four datasets, replacing previous contents
func (l *Loader) LoadAll(ctx context.Context, paths Paths) (*Result, error) {
	result := &Result{}

	loaded, skipped, err := l.loadBands(ctx, paths.Bands)
	if err != nil {
		return nil, fmt.Errorf("bands dataset: %w", err)
	}
	result.Bands, result.Skipped = loaded, result.Skipped+skipped

	loaded, skipped, err = l.loadThemes(ctx, paths.Lyrics)
	if err != nil {
		return nil, fmt.Errorf("lyrics dataset: %w", err)
	}
	result.Themes, result.Skipped = loaded, result.Skipped+skipped

	loaded, skipped, err = l.loadEdges(ctx, paths.Edges)
	if err != nil {
		return nil, fmt.Errorf("similarity dataset: %w", err)
	}
	result.Edges, result.Skipped = loaded, result.Skipped+skipped

	loaded, skipped, err = l.loadCountries(ctx, paths.Countries)
	if err != nil {
		return nil, fmt.Errorf("countries dataset: %w", err)
	}
	result.Countries, result.Skipped = loaded, result.Skipped+skipped

	util.SuccessLog("Loaded %s bands, %s themes, %s edges, %s countries (%d rows skipped)",
		humanize.Comma(int64(result.Bands)), humanize.Comma(int64(result.Themes)),
		humanize.Comma(int64(result.Edges)), humanize.Comma(int64(result.Countries)),
		result.Skipped)

	return result, nil
}

func (l *Loader) loadBands(ctx context.Context, path string) (int, int, error) {
	start := time.Now()

	var bands []*store.Band
	skipped := 0

	short, err := l.readCSV(ctx, path, []string{"band id", "band name", "country", "genre"},
		func(row map[string]string) {
			id, err := strconv.ParseInt(row["band id"], 10, 64)
			if err != nil {
				util.DebugLog("skipping band row with bad id %q: %v", row["band id"], err)
				skipped++
				return
			}
			bands = append(bands, &store.Band{
				ID:      id,
				Name:    strings.TrimSpace(row["band name"]),
				Country: strings.TrimSpace(row["country"]),
				Genre:   strings.TrimSpace(row["genre"]),
			})
		})
	if err != nil {
		return 0, 0, err
	}
	skipped += short

	if err := l.store.ReplaceBands(bands); err != nil {
		return 0, 0, err
	}

	l.logger.LogLoad("bands", len(bands), skipped, time.Since(start))
	return len(bands), skipped, nil
}

func (l *Loader) loadThemes(ctx context.Context, path string) (int, int, error) {
	start := time.Now()

	var themes []*store.Theme
	skipped := 0

	short, err := l.readCSV(ctx, path, []string{"band id", "themes"},
		func(row map[string]string) {
			id, err := strconv.ParseInt(row["band id"], 10, 64)
			if err != nil {
				util.DebugLog("skipping theme row with bad id %q: %v", row["band id"], err)
				skipped++
				return
			}
			text := strings.TrimSpace(row["themes"])
			if text == "" {
				skipped++
				return
			}
			themes = append(themes, &store.Theme{BandID: id, Themes: text})
		})
	if err != nil {
		return 0, 0, err
	}
	skipped += short

	if err := l.store.ReplaceThemes(themes); err != nil {
		return 0, 0, err
	}

	l.logger.LogLoad("themes", len(themes), skipped, time.Since(start))
	return len(themes), skipped, nil
}

func (l *Loader) loadEdges(ctx context.Context, path string) (int, int, error) {
	start := time.Now()

	var edges []*store.Edge
	skipped := 0

	short, err := l.readCSV(ctx, path, []string{"band id", "similar artist id", "score"},
		func(row map[string]string) {
			a, errA := strconv.ParseInt(row["band id"], 10, 64)
			b, errB := strconv.ParseInt(row["similar artist id"], 10, 64)
			score, errS := strconv.ParseFloat(row["score"], 64)
			if errA != nil || errB != nil || errS != nil || score < 0 {
				util.DebugLog("skipping malformed edge row %v", row)
				skipped++
				return
			}
			edges = append(edges, &store.Edge{BandID: a, SimilarID: b, Score: score})
		})
	if err != nil {
		return 0, 0, err
	}
	skipped += short

	if err := l.store.ReplaceEdges(edges); err != nil {
		return 0, 0, err
	}

	l.logger.LogLoad("edges", len(edges), skipped, time.Since(start))
	return len(edges), skipped, nil
}

func (l *Loader) loadCountries(ctx context.Context, path string) (int, int, error) {
	start := time.Now()

	var countries []*store.Country
	skipped := 0

	short, err := l.readCSV(ctx, path, []string{"country", "latitude", "longitude"},
		func(row map[string]string) {
			name := geo.StandardizeCountryName(row["country"])
			lat, errLat := strconv.ParseFloat(row["latitude"], 64)
			lon, errLon := strconv.ParseFloat(row["longitude"], 64)
			if name == "" || errLat != nil || errLon != nil {
				util.DebugLog("skipping malformed country row %v", row)
				skipped++
				return
			}
			countries = append(countries, &store.Country{Name: name, Latitude: lat, Longitude: lon})
		})
	if err != nil {
		return 0, 0, err
	}
	skipped += short

	if err := l.store.ReplaceCountries(countries); err != nil {
		return 0, 0, err
	}

	l.logger.LogLoad("countries", len(countries), skipped, time.Since(start))
	return len(countries), skipped, nil
}

// readCSV streams a CSV file, mapping each record to the required
// columns by header name (case-insensitive, trailing ':' tolerated).
// Returns the number of records too short to carry every required
// column; those never reach handle.
func (l *Loader) readCSV(ctx context.Context, path string, columns []string, handle func(map[string]string)) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("failed to read header of %s: %w", path, err)
	}

	index := make(map[string]int, len(columns))
	for i, name := range header {
		index[normalizeHeader(name)] = i
	}
	for _, col := range columns {
		if _, ok := index[col]; !ok {
			return 0, fmt.Errorf("%s lacks column %q: %w", path, col, util.ErrMissingColumn)
		}
	}

	bar := l.newProgressBar(path)
	short := 0

	for {
		select {
		case <-ctx.Done():
			return short, ctx.Err()
		default:
		}

		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return short, fmt.Errorf("failed to read %s: %w (%v)", path, util.ErrMalformedRow, err)
		}

		row := make(map[string]string, len(columns))
		bad := false
		for _, col := range columns {
			i := index[col]
			if i >= len(record) {
				bad = true
				break
			}
			row[col] = record[i]
		}
		if bad {
			util.DebugLog("skipping short row in %s: %v", path, record)
			short++
		} else {
			handle(row)
		}

		if bar != nil {
			bar.Add(1)
		}
	}

	if bar != nil {
		bar.Finish()
	}

	return short, nil
}

func (l *Loader) newProgressBar(path string) *progressbar.ProgressBar {
	if !l.showProgress {
		return nil
	}
	return progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(fmt.Sprintf("Loading %s", path)),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("rows"),
		progressbar.OptionThrottle(200*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}

// normalizeHeader lowercases a header cell and strips the trailing ':'
// some source exports carry (e.g. "Themes:")
func normalizeHeader(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.TrimSuffix(name, ":")
}
