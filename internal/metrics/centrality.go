package metrics

import (
	"math"
	"time"

	"github.com/agenthands/cortex/internal/graph"
)

const (
	pagerankDamping    = 0.85
	pagerankIterations = 100
	pagerankTolerance  = 1e-9
)

// Centrality computes PageRank over the directed resolved-link graph
// and normalizes scores into [0,1] by the per-run maximum. Every
// consumer of centrality (digest, gaps, insights, search) uses this one
// metric.
func Centrality(g *graph.Graph) map[string]float64 {
	n := len(g.Nodes)
	if n == 0 {
		return map[string]float64{}
	}

	// Weighted adjacency; parallel links add weight.
	weight := make(map[string]map[string]float64)
	outWeight := make(map[string]float64)
	for _, e := range g.Edges {
		if weight[e.Source] == nil {
			weight[e.Source] = make(map[string]float64)
		}
		weight[e.Source][e.Target]++
		outWeight[e.Source]++
	}

	rank := make(map[string]float64, n)
	for _, id := range g.Nodes {
		rank[id] = 1.0 / float64(n)
	}

	for iter := 0; iter < pagerankIterations; iter++ {
		next := make(map[string]float64, n)

		// Mass of nodes with no outgoing links is spread uniformly.
		dangling := 0.0
		for _, id := range g.Nodes {
			if outWeight[id] == 0 {
				dangling += rank[id]
			}
		}

		base := (1-pagerankDamping)/float64(n) + pagerankDamping*dangling/float64(n)
		for _, id := range g.Nodes {
			next[id] = base
		}
		for u, targets := range weight {
			for v, w := range targets {
				next[v] += pagerankDamping * rank[u] * w / outWeight[u]
			}
		}

		delta := 0.0
		for _, id := range g.Nodes {
			delta += math.Abs(next[id] - rank[id])
		}
		rank = next
		if delta < pagerankTolerance*float64(n) {
			break
		}
	}

	maxRank := 0.0
	for _, r := range rank {
		if r > maxRank {
			maxRank = r
		}
	}
	if maxRank == 0 {
		maxRank = 1
	}
	for id := range rank {
		rank[id] /= maxRank
	}
	return rank
}

// RecencyScore decays linearly from 1 (updated now) to 0 over 30 days.
// A zero timestamp scores 0.
func RecencyScore(updatedAt, now time.Time) float64 {
	if updatedAt.IsZero() {
		return 0
	}
	days := now.Sub(updatedAt).Hours() / 24
	if days <= 0 {
		return 1
	}
	if days >= 30 {
		return 0
	}
	return 1 - days/30
}
