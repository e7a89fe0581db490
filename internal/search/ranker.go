package search

import (
	"sort"
	"time"

	"github.com/agenthands/cortex/internal/graph"
	"github.com/agenthands/cortex/internal/metrics"
	"github.com/agenthands/cortex/internal/similarity"
)

// scores breaks down how one candidate was ranked.
type scores struct {
	Vec         float64
	Recency     float64
	Centrality  float64
	DirectBoost float64
	Final       float64
}

type ranked struct {
	ID     string
	Scores scores
}

// rerank scores every candidate as vec*0.6 + recency*0.2 +
// centrality*0.2, multiplied by 1.2 for direct vector-search hits.
// Candidates reached only through graph expansion keep a vector score
// of zero rather than being dropped.
func rerank(
	g *graph.Graph,
	candidates []string,
	direct map[string]bool,
	queryVec []float32,
	vectors map[string][]float32,
	centrality map[string]float64,
	now time.Time,
) ([]ranked, error) {
	results := make([]ranked, 0, len(candidates))

	for _, id := range candidates {
		vec := 0.0
		if v, ok := vectors[id]; ok {
			sim, err := similarity.Cosine(queryVec, v)
			if err != nil {
				return nil, err
			}
			vec = sim
		}

		recency := 0.0
		if doc, ok := g.Docs[id]; ok {
			recency = metrics.RecencyScore(doc.UpdatedAt, now)
		}

		boost := 1.0
		if direct[id] {
			boost = 1.2
		}

		s := scores{
			Vec:         vec,
			Recency:     recency,
			Centrality:  centrality[id],
			DirectBoost: boost,
		}
		s.Final = (s.Vec*0.6 + s.Recency*0.2 + s.Centrality*0.2) * boost
		results = append(results, ranked{ID: id, Scores: s})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Scores.Final != results[j].Scores.Final {
			return results[i].Scores.Final > results[j].Scores.Final
		}
		return results[i].ID < results[j].ID
	})

	return results, nil
}
