// Package search implements retrieval over the knowledge graph:
// vector search plus graph-neighborhood expansion and re-ranking.
package search

import (
	"context"
	"fmt"
	"time"

	"github.com/agenthands/cortex/internal/embedding"
	"github.com/agenthands/cortex/internal/graph"
	"github.com/agenthands/cortex/internal/metrics"
	"github.com/agenthands/cortex/internal/similarity"
)

const directCandidates = 10

// Result is a single ranked document with its full content.
type Result struct {
	FileID     string   `json:"file_id"`
	Title      string   `json:"title"`
	Path       string   `json:"path"`
	DocType    string   `json:"doc_type"`
	WordCount  int      `json:"word_count"`
	Tags       []string `json:"tags"`
	Relevance  float64  `json:"relevance"`
	VecScore   float64  `json:"vec_score"`
	Recency    float64  `json:"recency"`
	Centrality float64  `json:"centrality"`
	Content    string   `json:"content"`
}

// Results is one complete retrieval run.
type Results struct {
	Query       string    `json:"query"`
	Results     []Result  `json:"results"`
	Expanded    bool      `json:"expanded"`
	TopK        int       `json:"top_k"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Retriever runs the retrieval pipeline against a built graph and the
// embedding cache.
type Retriever struct {
	g       *graph.Graph
	service *embedding.Service
}

func NewRetriever(g *graph.Graph, service *embedding.Service) *Retriever {
	return &Retriever{g: g, service: service}
}

// Search embeds the query, takes the top 10 vector hits, optionally
// expands one hop along the graph in both directions, re-ranks, and
// returns the topK results with full content.
func (r *Retriever) Search(ctx context.Context, query string, topK int, expand bool) (*Results, error) {
	now := time.Now()

	queryVec, err := r.service.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	vectors, err := r.service.Cached(ctx)
	if err != nil {
		return nil, err
	}

	out := &Results{
		Query:       query,
		Expanded:    expand,
		TopK:        topK,
		GeneratedAt: now,
	}
	if len(vectors) == 0 {
		return out, nil
	}

	direct, err := r.vectorSearch(queryVec, vectors)
	if err != nil {
		return nil, err
	}

	candidates := append([]string(nil), direct...)
	if expand {
		candidates = r.expand(direct)
	}

	directSet := make(map[string]bool, len(direct))
	for _, id := range direct {
		directSet[id] = true
	}

	centrality := metrics.Centrality(r.g)
	rankings, err := rerank(r.g, candidates, directSet, queryVec, vectors, centrality, now)
	if err != nil {
		return nil, err
	}
	if len(rankings) > topK {
		rankings = rankings[:topK]
	}

	for _, rk := range rankings {
		res := Result{
			FileID:     rk.ID,
			Title:      rk.ID,
			DocType:    "unknown",
			Relevance:  rk.Scores.Final,
			VecScore:   rk.Scores.Vec,
			Recency:    rk.Scores.Recency,
			Centrality: rk.Scores.Centrality,
		}
		if doc, ok := r.g.Docs[rk.ID]; ok {
			if doc.Title != "" {
				res.Title = doc.Title
			}
			res.Path = doc.Path
			if doc.Type != "" {
				res.DocType = doc.Type
			}
			res.WordCount = doc.WordCount
			res.Tags = doc.Tags
			res.Content = doc.Content
		}
		out.Results = append(out.Results, res)
	}

	return out, nil
}

func (r *Retriever) vectorSearch(queryVec []float32, vectors map[string][]float32) ([]string, error) {
	scored, err := similarity.TopK(queryVec, vectors, directCandidates)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(scored))
	for i, s := range scored {
		ids[i] = s.ID
	}
	return ids, nil
}

// expand adds every 1-hop neighbor of the direct hits, following links
// in both directions.
func (r *Retriever) expand(direct []string) []string {
	seen := make(map[string]bool, len(direct))
	expanded := append([]string(nil), direct...)
	for _, id := range direct {
		seen[id] = true
	}
	for _, id := range direct {
		for _, n := range r.g.Neighbors(id) {
			if !seen[n] {
				seen[n] = true
				expanded = append(expanded, n)
			}
		}
	}
	return expanded
}
