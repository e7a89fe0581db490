// Package similarity implements cosine similarity, pairwise matrices
// and top-k search over embedding vectors.
package similarity

import (
	"fmt"
	"math"
	"sort"

	"github.com/agenthands/cortex/internal/model"
)

// Cosine returns the cosine similarity of two vectors: dot product over
// the product of L2 norms. A zero vector yields 0.
func Cosine(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("cosine over %d-d and %d-d vectors: %w", len(a), len(b), model.ErrDimensionMismatch)
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0, nil
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}

// Matrix is a symmetric pairwise similarity matrix over sorted ids.
type Matrix struct {
	IDs    []string
	Scores [][]float64
}

// BuildMatrix computes the full pairwise cosine matrix. Ids are sorted
// for consistent ordering; the diagonal is 1.0 by construction. All
// vectors must share one dimension.
func BuildMatrix(vectors map[string][]float32) (*Matrix, error) {
	ids := make([]string, 0, len(vectors))
	for id := range vectors {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	m := &Matrix{IDs: ids, Scores: make([][]float64, len(ids))}
	for i := range m.Scores {
		m.Scores[i] = make([]float64, len(ids))
		m.Scores[i][i] = 1.0
	}

	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			score, err := Cosine(vectors[ids[i]], vectors[ids[j]])
			if err != nil {
				return nil, err
			}
			m.Scores[i][j] = score
			m.Scores[j][i] = score
		}
	}
	return m, nil
}

// Pair is an unordered document pair with A < B lexicographically.
type Pair struct {
	A     string
	B     string
	Score float64
}

// SimilarPairs returns pairs scoring at or above threshold, sorted by
// score descending, then by id pair for determinism.
func (m *Matrix) SimilarPairs(threshold float64) []Pair {
	var pairs []Pair
	for i := 0; i < len(m.IDs); i++ {
		for j := i + 1; j < len(m.IDs); j++ {
			if m.Scores[i][j] >= threshold {
				pairs = append(pairs, Pair{A: m.IDs[i], B: m.IDs[j], Score: m.Scores[i][j]})
			}
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Score != pairs[j].Score {
			return pairs[i].Score > pairs[j].Score
		}
		if pairs[i].A != pairs[j].A {
			return pairs[i].A < pairs[j].A
		}
		return pairs[i].B < pairs[j].B
	})
	return pairs
}

// Scored is one id with a similarity score.
type Scored struct {
	ID    string
	Score float64
}

// TopK scores query against every vector and returns at most k results
// sorted by score descending, ties broken by id ascending.
func TopK(query []float32, vectors map[string][]float32, k int) ([]Scored, error) {
	scored := make([]Scored, 0, len(vectors))
	for id, vec := range vectors {
		score, err := Cosine(query, vec)
		if err != nil {
			return nil, err
		}
		scored = append(scored, Scored{ID: id, Score: score})
	}
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].ID < scored[j].ID
	})
	if k >= 0 && k < len(scored) {
		scored = scored[:k]
	}
	return scored, nil
}

// Centroid is the element-wise mean of the given vectors. Nil when the
// input is empty.
func Centroid(vectors [][]float32) []float32 {
	if len(vectors) == 0 {
		return nil
	}
	dim := len(vectors[0])
	sum := make([]float64, dim)
	for _, v := range vectors {
		for i := 0; i < dim && i < len(v); i++ {
			sum[i] += float64(v[i])
		}
	}
	out := make([]float32, dim)
	for i := range sum {
		out[i] = float32(sum[i] / float64(len(vectors)))
	}
	return out
}
