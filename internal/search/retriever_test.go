package search

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/cortex/internal/config"
	"github.com/agenthands/cortex/internal/embedding"
	"github.com/agenthands/cortex/internal/graph"
	"github.com/agenthands/cortex/internal/llm"
	"github.com/agenthands/cortex/internal/model"
)

// fixedEmbedder returns preset vectors keyed by input text.
type fixedEmbedder struct {
	vectors map[string][]float32
	name    string
}

func (e *fixedEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if v, ok := e.vectors[text]; ok {
		return v, nil
	}
	return []float32{0, 0}, nil
}

func (e *fixedEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v, err := e.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (e *fixedEmbedder) Model() string {
	if e.name != "" {
		return e.name
	}
	return "test-model"
}

var _ llm.EmbedderClient = (*fixedEmbedder)(nil)

func now() time.Time { return time.Now() }

// corpus: "match" is close to the query, "other" is orthogonal,
// "neighbor" is linked from "match" but has no embedding.
func testSetup(t *testing.T) (*graph.Graph, *embedding.Service) {
	t.Helper()

	docs := []model.Document{
		{ID: "match", Title: "Matching Note", Content: "Body.", Type: "note", WordCount: 10, UpdatedAt: now()},
		{ID: "other", Title: "Other Note", Content: "Body.", Type: "note", WordCount: 10, UpdatedAt: now()},
		{ID: "neighbor", Title: "Neighbor Note", Content: "Body.", Type: "note", WordCount: 10, UpdatedAt: now()},
	}
	links := []model.Link{
		{Source: "match", Target: "neighbor", Resolved: true},
	}
	g := graph.Build(docs, links)

	cache := embedding.NewMemoryCache()
	put := func(id string, vec []float32) {
		require.NoError(t, cache.Put(context.Background(), embedding.Embedding{
			FileID: id, Vector: vec, Model: "test-model", ContentHash: "h",
		}))
	}
	put("match", []float32{1, 0})
	put("other", []float32{0, 1})

	embedder := &fixedEmbedder{vectors: map[string][]float32{
		"my query": {1, 0.05},
	}}
	service := embedding.NewService(cache, embedder, config.EmbeddingConfig{})
	return g, service
}

func TestSearch_RanksDirectHitFirst(t *testing.T) {
	g, service := testSetup(t)
	r := NewRetriever(g, service)

	results, err := r.Search(context.Background(), "my query", 5, true)
	require.NoError(t, err)

	require.NotEmpty(t, results.Results)
	assert.Equal(t, "match", results.Results[0].FileID)
	assert.Greater(t, results.Results[0].VecScore, 0.9)
	assert.Equal(t, "Matching Note", results.Results[0].Title)
	assert.Equal(t, "Body.", results.Results[0].Content)
}

func TestSearch_ExpansionIncludesUnembeddedNeighbors(t *testing.T) {
	g, service := testSetup(t)
	r := NewRetriever(g, service)

	results, err := r.Search(context.Background(), "my query", 5, true)
	require.NoError(t, err)

	var neighbor *Result
	for i := range results.Results {
		if results.Results[i].FileID == "neighbor" {
			neighbor = &results.Results[i]
		}
	}
	require.NotNil(t, neighbor, "1-hop neighbor joins the candidate set")
	assert.Equal(t, 0.0, neighbor.VecScore)
	assert.Greater(t, neighbor.Relevance, 0.0)
}

func TestSearch_NoExpansion(t *testing.T) {
	g, service := testSetup(t)
	r := NewRetriever(g, service)

	results, err := r.Search(context.Background(), "my query", 5, false)
	require.NoError(t, err)

	for _, res := range results.Results {
		assert.NotEqual(t, "neighbor", res.FileID)
	}
	assert.False(t, results.Expanded)
}

func TestSearch_TopKLimits(t *testing.T) {
	g, service := testSetup(t)
	r := NewRetriever(g, service)

	results, err := r.Search(context.Background(), "my query", 1, true)
	require.NoError(t, err)
	assert.Len(t, results.Results, 1)
}

func TestSearch_DirectBoost(t *testing.T) {
	g, service := testSetup(t)
	r := NewRetriever(g, service)

	results, err := r.Search(context.Background(), "my query", 5, true)
	require.NoError(t, err)

	for _, res := range results.Results {
		if res.FileID == "match" {
			expected := (res.VecScore*0.6 + res.Recency*0.2 + res.Centrality*0.2) * 1.2
			assert.InDelta(t, expected, res.Relevance, 1e-9)
		}
	}
}

func TestSearch_EmptyCache(t *testing.T) {
	g := graph.Build([]model.Document{{ID: "a", Title: "A"}}, nil)
	service := embedding.NewService(embedding.NewMemoryCache(), &fixedEmbedder{}, config.EmbeddingConfig{})
	r := NewRetriever(g, service)

	results, err := r.Search(context.Background(), "anything", 5, true)
	require.NoError(t, err)
	assert.Empty(t, results.Results)
}

func TestSearch_ModelMismatchFails(t *testing.T) {
	g, _ := testSetup(t)

	cache := embedding.NewMemoryCache()
	require.NoError(t, cache.Put(context.Background(), embedding.Embedding{
		FileID: "match", Vector: []float32{1, 0}, Model: "stale-model", ContentHash: "h",
	}))
	service := embedding.NewService(cache, &fixedEmbedder{}, config.EmbeddingConfig{})
	r := NewRetriever(g, service)

	_, err := r.Search(context.Background(), "my query", 5, true)
	assert.ErrorIs(t, err, model.ErrModelMismatch)
}

func TestFormat(t *testing.T) {
	g, service := testSetup(t)
	r := NewRetriever(g, service)

	results, err := r.Search(context.Background(), "my query", 5, true)
	require.NoError(t, err)

	out := Format(results)
	assert.Contains(t, out, `# SEARCH q="my query"`)
	assert.Contains(t, out, "### 1. Matching Note")
	assert.Contains(t, out, "--- CONTENT ---")
	assert.Contains(t, out, "--- END ---")
}

func TestFormat_NoResults(t *testing.T) {
	out := Format(&Results{Query: "nothing", TopK: 5, GeneratedAt: now()})
	assert.Contains(t, out, "No results found.")
}
