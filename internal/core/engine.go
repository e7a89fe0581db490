// Package core wires the document store, embedding service and graph
// analytics into one engine the CLI and server share.
package core

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/agenthands/cortex/internal/config"
	"github.com/agenthands/cortex/internal/digest"
	"github.com/agenthands/cortex/internal/embedding"
	"github.com/agenthands/cortex/internal/gaps"
	"github.com/agenthands/cortex/internal/graph"
	"github.com/agenthands/cortex/internal/insights"
	"github.com/agenthands/cortex/internal/llm"
	"github.com/agenthands/cortex/internal/pulse"
	"github.com/agenthands/cortex/internal/search"
	"github.com/agenthands/cortex/internal/store"
)

type Engine struct {
	Config   *config.Config
	Store    store.Store
	Embedder llm.EmbedderClient
	Service  *embedding.Service
	Pulses   *pulse.Store
}

// New builds an engine from configuration: SQLite-backed document
// store, embedding cache and provider client, pulse store.
func New(ctx context.Context, cfg *config.Config) (*Engine, error) {
	embedder, err := llm.NewEmbedder(ctx, cfg.LLM)
	if err != nil {
		return nil, err
	}

	cache, err := embedding.OpenSQLiteCache(cfg.Embedding.CachePath)
	if err != nil {
		return nil, fmt.Errorf("opening embedding cache: %w", err)
	}

	return &Engine{
		Config:   cfg,
		Store:    store.NewSQLiteStore(cfg.Store.DataRoot, cfg.Store.Spaces),
		Embedder: embedder,
		Service:  embedding.NewService(cache, embedder, cfg.Embedding),
		Pulses:   pulse.NewStore(cfg.Pulse.Directory),
	}, nil
}

func (e *Engine) Close() error {
	var firstErr error
	if err := e.Service.Close(); err != nil {
		firstErr = err
	}
	if err := e.Store.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

// BuildGraph loads documents and links for the given spaces and builds
// the in-memory graph. Empty spaces means every configured space.
func (e *Engine) BuildGraph(ctx context.Context, spaces []string) (*graph.Graph, error) {
	if len(spaces) == 0 {
		spaces = e.Config.Store.Spaces
	}
	docs, err := e.Store.ListDocuments(ctx, spaces)
	if err != nil {
		return nil, err
	}
	links, err := e.Store.ListLinks(ctx, spaces)
	if err != nil {
		return nil, err
	}
	g := graph.Build(docs, links)
	slog.Debug("graph built", "nodes", len(g.Nodes), "edges", len(g.Edges), "stubs", len(g.Stubs))
	return g, nil
}

// Embeddings computes or loads embeddings for every document in the
// graph, skipping stubs.
func (e *Engine) Embeddings(ctx context.Context, g *graph.Graph, force bool) (map[string][]float32, error) {
	docs := g.Documents()
	return e.Service.GetEmbeddings(ctx, docs, force)
}

// Digest runs the link-suggestion digest over the given spaces.
func (e *Engine) Digest(ctx context.Context, spaces []string) (*digest.Result, error) {
	g, err := e.BuildGraph(ctx, spaces)
	if err != nil {
		return nil, err
	}
	vectors, err := e.Embeddings(ctx, g, false)
	if err != nil {
		return nil, err
	}
	return digest.Generate(g, vectors, e.Config.Digest, time.Now())
}

// Gaps runs gap detection over the given spaces.
func (e *Engine) Gaps(ctx context.Context, spaces []string) (*gaps.Result, error) {
	g, err := e.BuildGraph(ctx, spaces)
	if err != nil {
		return nil, err
	}
	vectors, err := e.Embeddings(ctx, g, false)
	if err != nil {
		return nil, err
	}
	return gaps.Detect(g, vectors, e.Config.Gaps.MinScore, time.Now())
}

// Insights analyzes every cluster in the given spaces.
func (e *Engine) Insights(ctx context.Context, spaces []string) (*insights.Result, error) {
	g, err := e.BuildGraph(ctx, spaces)
	if err != nil {
		return nil, err
	}
	return insights.NewAnalyzer(g, e.Config.Insights).Analyze(time.Now()), nil
}

// InsightsForCluster analyzes a single cluster by id.
func (e *Engine) InsightsForCluster(ctx context.Context, spaces []string, clusterID int) (*insights.ClusterAnalysis, error) {
	g, err := e.BuildGraph(ctx, spaces)
	if err != nil {
		return nil, err
	}
	return insights.NewAnalyzer(g, e.Config.Insights).AnalyzeCluster(clusterID)
}

// Search runs the retrieval pipeline over the given spaces.
func (e *Engine) Search(ctx context.Context, spaces []string, query string, topK int, expand bool) (*search.Results, error) {
	g, err := e.BuildGraph(ctx, spaces)
	if err != nil {
		return nil, err
	}
	return search.NewRetriever(g, e.Service).Search(ctx, query, topK, expand)
}

// Pulse captures a snapshot of the current graph state.
func (e *Engine) Pulse(ctx context.Context, spaces []string, id, note string) (*pulse.Snapshot, error) {
	g, err := e.BuildGraph(ctx, spaces)
	if err != nil {
		return nil, err
	}
	return e.Pulses.Capture(g, id, note, time.Now())
}

// Stats computes aggregate graph statistics.
func (e *Engine) Stats(ctx context.Context, spaces []string) (graph.Stats, error) {
	g, err := e.BuildGraph(ctx, spaces)
	if err != nil {
		return graph.Stats{}, err
	}
	return g.ComputeStats(), nil
}
