// Package digest suggests links between semantically similar documents
// that are not yet connected, and surfaces orphaned documents.
package digest

import (
	"sort"
	"time"

	"github.com/agenthands/cortex/internal/config"
	"github.com/agenthands/cortex/internal/graph"
	"github.com/agenthands/cortex/internal/metrics"
	"github.com/agenthands/cortex/internal/similarity"
)

const orphanCap = 50

// Suggestion is a pair of unlinked documents worth connecting.
type Suggestion struct {
	DocA       string  `json:"doc_a"`
	DocB       string  `json:"doc_b"`
	PathA      string  `json:"path_a"`
	PathB      string  `json:"path_b"`
	Similarity float64 `json:"similarity"`
	Recency    float64 `json:"recency"`
	Centrality float64 `json:"centrality"`
	Score      float64 `json:"score"`

	idA, idB string
}

// Orphan is a document no other document links to.
type Orphan struct {
	Title     string    `json:"title"`
	Path      string    `json:"path"`
	WordCount int       `json:"word_count"`
	CreatedAt time.Time `json:"created_at"`
}

// Result is a complete digest run.
type Result struct {
	Suggestions       []Suggestion `json:"suggestions"`
	Orphans           []Orphan     `json:"orphans"`
	Threshold         float64      `json:"threshold"`
	MissingEmbeddings int          `json:"missing_embeddings"`
	GeneratedAt       time.Time    `json:"generated_at"`
}

// Generate scores every similar-but-unlinked pair above the threshold
// and collects orphans. Pairs are ranked by
// similarity*0.5 + recency*0.3 + centrality*0.2.
func Generate(g *graph.Graph, vectors map[string][]float32, cfg config.DigestConfig, now time.Time) (*Result, error) {
	matrix, err := similarity.BuildMatrix(vectors)
	if err != nil {
		return nil, err
	}

	centrality := metrics.Centrality(g)
	missing := 0
	for _, id := range g.Nodes {
		if _, ok := vectors[id]; !ok {
			missing++
		}
	}

	var suggestions []Suggestion
	for _, pair := range matrix.SimilarPairs(cfg.Threshold) {
		if g.HasLink(pair.A, pair.B) {
			continue
		}
		docA, okA := g.Docs[pair.A]
		docB, okB := g.Docs[pair.B]
		if !okA || !okB {
			continue
		}

		recency := (metrics.RecencyScore(docA.UpdatedAt, now) + metrics.RecencyScore(docB.UpdatedAt, now)) / 2
		central := (centrality[pair.A] + centrality[pair.B]) / 2
		score := pair.Score*0.5 + recency*0.3 + central*0.2

		suggestions = append(suggestions, Suggestion{
			DocA:       docA.Title,
			DocB:       docB.Title,
			PathA:      docA.Path,
			PathB:      docB.Path,
			Similarity: pair.Score,
			Recency:    recency,
			Centrality: central,
			Score:      score,
			idA:        pair.A,
			idB:        pair.B,
		})
	}

	sort.Slice(suggestions, func(i, j int) bool {
		if suggestions[i].Score != suggestions[j].Score {
			return suggestions[i].Score > suggestions[j].Score
		}
		if suggestions[i].Similarity != suggestions[j].Similarity {
			return suggestions[i].Similarity > suggestions[j].Similarity
		}
		if suggestions[i].idA != suggestions[j].idA {
			return suggestions[i].idA < suggestions[j].idA
		}
		return suggestions[i].idB < suggestions[j].idB
	})
	if len(suggestions) > cfg.TopN {
		suggestions = suggestions[:cfg.TopN]
	}

	orphans := findOrphans(g, cfg.MinOrphanWords)

	return &Result{
		Suggestions:       suggestions,
		Orphans:           orphans,
		Threshold:         cfg.Threshold,
		MissingEmbeddings: missing,
		GeneratedAt:       now,
	}, nil
}

func findOrphans(g *graph.Graph, minWords int) []Orphan {
	var orphans []Orphan
	for _, id := range g.Nodes {
		doc := g.Docs[id]
		if doc.IsStub || doc.WordCount < minWords || g.InDegree(id) != 0 {
			continue
		}
		title := doc.Title
		if title == "" {
			title = "Untitled"
		}
		orphans = append(orphans, Orphan{
			Title:     title,
			Path:      doc.Path,
			WordCount: doc.WordCount,
			CreatedAt: doc.CreatedAt,
		})
	}
	sort.Slice(orphans, func(i, j int) bool {
		if orphans[i].WordCount != orphans[j].WordCount {
			return orphans[i].WordCount > orphans[j].WordCount
		}
		return orphans[i].Title < orphans[j].Title
	})
	if len(orphans) > orphanCap {
		orphans = orphans[:orphanCap]
	}
	return orphans
}
