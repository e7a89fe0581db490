// Package metrics computes per-run graph metrics: community
// assignment, centrality and recency. Cluster ids are only meaningful
// within a single run.
package metrics

import (
	"sort"

	"github.com/agenthands/cortex/internal/graph"
)

// Assignment maps every node id to exactly one integer cluster id.
type Assignment map[string]int

const maxLPAIterations = 20

// Clusters partitions the graph into communities using label
// propagation. Parallel links between a pair collapse into edge weight;
// self-links carry no clustering signal and are skipped. Isolated nodes
// keep their own singleton cluster.
func Clusters(g *graph.Graph) Assignment {
	if len(g.Nodes) == 0 {
		return Assignment{}
	}

	// node -> neighbor -> weight
	adj := make(map[string]map[string]int, len(g.Nodes))
	for _, id := range g.Nodes {
		adj[id] = make(map[string]int)
	}
	for _, e := range g.Edges {
		if e.Source == e.Target {
			continue
		}
		adj[e.Source][e.Target]++
		adj[e.Target][e.Source]++
	}

	// Each node starts with its own label.
	labels := make(map[string]string, len(g.Nodes))
	for _, id := range g.Nodes {
		labels[id] = id
	}

	for iter := 0; iter < maxLPAIterations; iter++ {
		changed := 0

		for _, u := range g.Nodes {
			neighbors := adj[u]
			if len(neighbors) == 0 {
				continue
			}

			labelCounts := make(map[string]int)
			maxCount := 0
			for v, weight := range neighbors {
				label := labels[v]
				labelCounts[label] += weight
				if labelCounts[label] > maxCount {
					maxCount = labelCounts[label]
				}
			}

			var candidates []string
			for label, count := range labelCounts {
				if count == maxCount {
					candidates = append(candidates, label)
				}
			}

			// Tie-break on the lexicographically largest label so
			// repeated runs over the same input converge the same way.
			sort.Strings(candidates)
			best := candidates[len(candidates)-1]

			if labels[u] != best {
				labels[u] = best
				changed++
			}
		}

		if changed == 0 {
			break
		}
	}

	// Map winning labels to compact integer ids, ordered by label so
	// the numbering is reproducible for a given propagation outcome.
	uniq := make([]string, 0)
	seen := make(map[string]bool)
	for _, id := range g.Nodes {
		if l := labels[id]; !seen[l] {
			seen[l] = true
			uniq = append(uniq, l)
		}
	}
	sort.Strings(uniq)
	labelID := make(map[string]int, len(uniq))
	for i, l := range uniq {
		labelID[l] = i
	}

	assignment := make(Assignment, len(g.Nodes))
	for _, id := range g.Nodes {
		assignment[id] = labelID[labels[id]]
	}
	return assignment
}

// Members groups node ids by cluster, each group sorted.
func (a Assignment) Members() map[int][]string {
	members := make(map[int][]string)
	for id, cluster := range a {
		members[cluster] = append(members[cluster], id)
	}
	for _, ids := range members {
		sort.Strings(ids)
	}
	return members
}

// Count returns the number of distinct clusters.
func (a Assignment) Count() int {
	seen := make(map[int]bool)
	for _, c := range a {
		seen[c] = true
	}
	return len(seen)
}
