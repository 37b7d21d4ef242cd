package recommend

import (
	"fmt"
	"math"
	"sort"

	"github.com/franz/band-scout/internal/util"
)

// DefaultTopK is the default length of the ranked output
const DefaultTopK = 10

// Weights are the caller-supplied signal weights. They are not required
// to sum to 1 and are never renormalized; callers may intentionally
// under- or over-weight a signal.
type Weights struct {
	Genre   float64
	Lyrical float64
	Similar float64
	Country float64
}

// Validate rejects negative or non-finite weights
func (w Weights) Validate() error {
	for _, v := range []float64{w.Genre, w.Lyrical, w.Similar, w.Country} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("weights must be non-negative and finite: %w", util.ErrInvalidWeights)
		}
	}
	return nil
}

// CandidateRow carries the four raw signal values for one candidate
type CandidateRow struct {
	BandID     int64
	Name       string
	GenreSim   float64
	ThemeSim   float64
	CrowdScore float64
	GeoScore   float64
}

// Recommendation is one row of the ranked output
type Recommendation struct {
	BandID     int64
	Name       string
	TotalScore float64
}

// NormalizeSignal min-max rescales a signal to [0, 1] across the
// candidate set. A zero-variance signal (including the single-candidate
// case) is defined as constant 0 for the whole set; the division by
// zero of naive min-max must never reach the totals.
func NormalizeSignal(values []float64) []float64 {
	normalized := make([]float64, len(values))
	if len(values) == 0 {
		return normalized
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	if hi == lo {
		return normalized
	}

	for i, v := range values {
		normalized[i] = (v - lo) / (hi - lo)
	}
	return normalized
}

// Combine normalizes each signal across the candidate set, computes the
// weighted total, drops the target, and returns the topK rows by
// Total_Score. Ties keep candidate order (stable sort), so identical
// inputs always produce identical output.
func Combine(rows []CandidateRow, targetID int64, w Weights, topK int) []Recommendation {
	if topK <= 0 {
		topK = DefaultTopK
	}

	n := len(rows)
	genreSim := make([]float64, n)
	themeSim := make([]float64, n)
	crowdScore := make([]float64, n)
	geoScore := make([]float64, n)
	for i, row := range rows {
		genreSim[i] = row.GenreSim
		themeSim[i] = row.ThemeSim
		crowdScore[i] = row.CrowdScore
		geoScore[i] = row.GeoScore
	}

	genreSim = NormalizeSignal(genreSim)
	themeSim = NormalizeSignal(themeSim)
	crowdScore = NormalizeSignal(crowdScore)
	geoScore = NormalizeSignal(geoScore)

	ranked := make([]Recommendation, 0, n)
	for i, row := range rows {
		if row.BandID == targetID {
			continue
		}
		total := w.Lyrical*themeSim[i] +
			w.Similar*crowdScore[i] +
			w.Genre*genreSim[i] +
			w.Country*geoScore[i]
		ranked = append(ranked, Recommendation{
			BandID:     row.BandID,
			Name:       row.Name,
			TotalScore: total,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalScore > ranked[j].TotalScore
	})

	if len(ranked) > topK {
		ranked = ranked[:topK]
	}
	return ranked
}
