package textsim

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// tokenRe matches word tokens of two or more letters, digits or
// underscores; single-character tokens carry no signal
var tokenRe = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// Vectorize builds an l2-normalized TF-IDF matrix over the documents'
// own vocabulary. Returns the matrix (one row per document, columns in
// sorted term order) and the vocabulary size.
//
// IDF uses the smoothed form ln((1+n)/(1+df)) + 1, so terms present in
// every document still carry weight.
func Vectorize(docs []Document) (*mat.Dense, int) {
	n := len(docs)

	tokenized := make([][]string, n)
	df := make(map[string]int)
	for i, d := range docs {
		tokenized[i] = Tokenize(d.Text)
		seen := make(map[string]bool)
		for _, t := range tokenized[i] {
			if !seen[t] {
				seen[t] = true
				df[t]++
			}
		}
	}

	vocab := make([]string, 0, len(df))
	for term := range df {
		vocab = append(vocab, term)
	}
	sort.Strings(vocab)

	index := make(map[string]int, len(vocab))
	for i, term := range vocab {
		index[term] = i
	}

	if len(vocab) == 0 {
		return mat.NewDense(n, 1, nil), 0
	}

	idf := make([]float64, len(vocab))
	for i, term := range vocab {
		idf[i] = math.Log(float64(1+n)/float64(1+df[term])) + 1
	}

	matrix := mat.NewDense(n, len(vocab), nil)
	for i, tokens := range tokenized {
		for _, t := range tokens {
			j := index[t]
			matrix.Set(i, j, matrix.At(i, j)+idf[j])
		}
		normalizeRow(matrix, i)
	}

	return matrix, len(vocab)
}

// Tokenize lowercases text and extracts word tokens
func Tokenize(text string) []string {
	return tokenRe.FindAllString(strings.ToLower(text), -1)
}

// normalizeRow scales a row to unit l2 norm; zero rows are left alone
func normalizeRow(m *mat.Dense, row int) {
	v := m.RawRowView(row)
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	if sum == 0 {
		return
	}
	norm := math.Sqrt(sum)
	for i := range v {
		v[i] /= norm
	}
}
