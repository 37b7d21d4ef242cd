// Package recommend implements the scoring pipeline: genre-overlap
// candidate filtering, two text similarity signals, crowd score
// aggregation, geographic proximity, and the weighted combination
// producing the ranked output.
package recommend

import (
	"context"
	"fmt"
	"time"

	"github.com/franz/band-scout/internal/catalog"
	"github.com/franz/band-scout/internal/crowd"
	"github.com/franz/band-scout/internal/report"
	"github.com/franz/band-scout/internal/textsim"
	"github.com/franz/band-scout/internal/util"
)

// GeoScorer supplies the geographic proximity signal. It is an external
// collaborator to the pipeline; geo.Provider implements it.
type GeoScorer interface {
	Score(targetCountry string, candidates map[int64]string) map[int64]float64
}

// Recommender runs the scoring pipeline over a catalog snapshot
type Recommender struct {
	catalog *catalog.Catalog
	geo     GeoScorer
	logger  *report.EventLogger
	topK    int
}

// Config holds recommender configuration
type Config struct {
	Catalog *catalog.Catalog
	Geo     GeoScorer
	Logger  *report.EventLogger
	TopK    int
}

// New creates a new Recommender
func New(cfg *Config) *Recommender {
	topK := cfg.TopK
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Recommender{
		catalog: cfg.Catalog,
		geo:     cfg.Geo,
		logger:  cfg.Logger,
		topK:    topK,
	}
}

// Result represents one pipeline run. An empty Recommendations slice
// with a non-empty Reason is a valid outcome (unknown band, no genre
// overlap), not a failure.
type Result struct {
	TargetID        int64
	TargetName      string
	Candidates      int
	Recommendations []Recommendation
	Reason          string
}

// Recommend computes the ranked similar-band list for a target band.
// The pipeline is pure over the current snapshot: identical inputs
// yield identical ordered output, and nothing in the catalog is
// mutated.
func (r *Recommender) Recommend(ctx context.Context, bandID int64, w Weights) (*Result, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}

	target, ok := r.catalog.Lookup(bandID)
	if !ok {
		reason := fmt.Sprintf("band %d is not in the catalog", bandID)
		util.WarnLog("%s", reason)
		r.logger.LogEmpty(bandID, reason)
		return &Result{TargetID: bandID, Reason: reason}, nil
	}

	candidates := FilterByGenre(r.catalog.Bands(), bandID)
	r.logger.LogFilter(bandID, len(candidates))

	if len(candidates) == 0 {
		// Target has no processed genre tags, so not even the target
		// itself qualifies; the text engine must not run on this.
		reason := fmt.Sprintf("no bands share a genre with %q", target.Name)
		util.WarnLog("%s", reason)
		r.logger.LogEmpty(bandID, reason)
		return &Result{TargetID: bandID, TargetName: target.Name, Reason: reason}, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	genreSim, err := r.textSignal(bandID, candidates, "genre", func(b catalog.Band) string {
		return b.GenreText
	})
	if err != nil {
		return nil, err
	}

	themeSim, err := r.textSignal(bandID, candidates, "themes", func(b catalog.Band) string {
		return b.ThemeText
	})
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	crowdSim := crowd.Aggregate(r.catalog.Edges(), bandID)
	r.logger.LogSignal(bandID, "crowd", len(crowdSim), time.Since(start))

	start = time.Now()
	countries := make(map[int64]string, len(candidates))
	for _, c := range candidates {
		countries[c.ID] = c.Country
	}
	geoSim := r.geo.Score(target.Country, countries)
	r.logger.LogSignal(bandID, "geo", len(geoSim), time.Since(start))

	rows := make([]CandidateRow, 0, len(candidates))
	for _, c := range candidates {
		rows = append(rows, CandidateRow{
			BandID:     c.ID,
			Name:       c.Name,
			GenreSim:   genreSim[c.ID],
			ThemeSim:   themeSim[c.ID],
			CrowdScore: crowdSim[c.ID],
			GeoScore:   geoSim[c.ID],
		})
	}

	ranked := Combine(rows, bandID, w, r.topK)
	for i, rec := range ranked {
		r.logger.LogRecommendation(bandID, rec.BandID, i+1, rec.TotalScore)
	}

	return &Result{
		TargetID:        bandID,
		TargetName:      target.Name,
		Candidates:      len(candidates),
		Recommendations: ranked,
	}, nil
}

// textSignal runs the text similarity engine over one text column
func (r *Recommender) textSignal(targetID int64, candidates []catalog.Band, name string, column func(catalog.Band) string) (map[int64]float64, error) {
	start := time.Now()

	docs := make([]textsim.Document, 0, len(candidates))
	for _, c := range candidates {
		docs = append(docs, textsim.Document{ID: c.ID, Text: column(c)})
	}

	scores, err := textsim.Similarity(docs, targetID)
	if err != nil {
		r.logger.LogError(report.EventSignal, targetID, err)
		return nil, fmt.Errorf("%s similarity failed: %w", name, err)
	}

	r.logger.LogSignal(targetID, name, len(scores), time.Since(start))
	return scores, nil
}
