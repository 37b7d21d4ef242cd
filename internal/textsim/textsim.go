// Package textsim computes pairwise text similarity over a candidate
// set: TF-IDF vectors over the set's own vocabulary, truncated SVD
// reduction, then cosine against the target's reduced vector.
//
// The vocabulary is refit on every candidate set, so scores for the
// same pair of bands are NOT comparable across different query targets.
// That non-comparability is intentional and relied upon by the ranking
// behavior downstream.
package textsim

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/franz/band-scout/internal/util"
)

// MaxComponents caps the truncated SVD dimensionality
const MaxComponents = 20

// Document is one candidate's text field
type Document struct {
	ID   int64
	Text string
}

// Similarity computes the cosine similarity of every document against
// the target document, after TF-IDF vectorization and truncated SVD
// reduction to min(MaxComponents, vocabulary size) components.
//
// Cosines are returned raw and unclamped; negative values are possible
// and are absorbed by min-max normalization downstream.
func Similarity(docs []Document, targetID int64) (map[int64]float64, error) {
	if len(docs) == 0 {
		return nil, fmt.Errorf("no candidate documents: %w", util.ErrEmptyCandidateSet)
	}

	targetIdx := -1
	for i, d := range docs {
		if d.ID == targetID {
			targetIdx = i
			break
		}
	}
	if targetIdx < 0 {
		return nil, fmt.Errorf("target band %d not in candidate set: %w", targetID, util.ErrEmptyCandidateSet)
	}

	matrix, vocabSize := Vectorize(docs)

	scores := make(map[int64]float64, len(docs))
	if vocabSize == 0 {
		// Nothing to compare; every document is trivially self-similar
		for _, d := range docs {
			scores[d.ID] = 0
		}
		scores[targetID] = 1
		return scores, nil
	}

	reduced := reduce(matrix, vocabSize)

	target := reduced.RawRowView(targetIdx)
	for i, d := range docs {
		scores[d.ID] = cosine(reduced.RawRowView(i), target)
	}

	return scores, nil
}

// reduce projects the TF-IDF matrix onto its top singular components,
// capped at MaxComponents. The projection (U·Σ) preserves the relative
// cosine geometry of the rows.
func reduce(matrix *mat.Dense, vocabSize int) *mat.Dense {
	rows, _ := matrix.Dims()

	var svd mat.SVD
	if ok := svd.Factorize(matrix, mat.SVDThin); !ok {
		// Factorization failure leaves nothing better than the raw vectors
		return matrix
	}

	var u mat.Dense
	svd.UTo(&u)
	values := svd.Values(nil)

	k := MaxComponents
	if vocabSize < k {
		k = vocabSize
	}
	if len(values) < k {
		k = len(values)
	}

	reduced := mat.NewDense(rows, k, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < k; j++ {
			reduced.Set(i, j, u.At(i, j)*values[j])
		}
	}

	return reduced
}

// cosine computes cosine similarity with a zero-vector guard
func cosine(a, b []float64) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
