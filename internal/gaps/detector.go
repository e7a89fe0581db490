// Package gaps finds pairs of clusters that are semantically close but
// barely linked, pointing at missing connective structure.
package gaps

import (
	"sort"
	"time"

	"github.com/agenthands/cortex/internal/graph"
	"github.com/agenthands/cortex/internal/metrics"
	"github.com/agenthands/cortex/internal/similarity"
)

// ClusterInfo summarizes one side of a gap.
type ClusterInfo struct {
	ClusterID int        `json:"cluster_id"`
	Size      int        `json:"size"`
	HubDocs   []string   `json:"hub_docs"`
	TopTags   []TagCount `json:"top_tags"`
}

// TagCount pairs a tag with its occurrence count inside a cluster.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// Gap is a pair of clusters whose semantic closeness outruns their
// link density.
type Gap struct {
	ClusterA      int         `json:"cluster_a"`
	ClusterB      int         `json:"cluster_b"`
	SemanticSim   float64     `json:"semantic_similarity"`
	LinkDensity   float64     `json:"link_density"`
	CrossLinks    int         `json:"cross_links"`
	GapScore      float64     `json:"gap_score"`
	ClusterAInfo  ClusterInfo `json:"cluster_a_info"`
	ClusterBInfo  ClusterInfo `json:"cluster_b_info"`
	SharedTags    []string    `json:"shared_tags"`
	BoundaryNodes []string    `json:"boundary_nodes"`
}

// Result is a complete gap detection run.
type Result struct {
	Gaps            []Gap     `json:"gaps"`
	ClusterCount    int       `json:"cluster_count"`
	SkippedClusters int       `json:"skipped_clusters"`
	GeneratedAt     time.Time `json:"generated_at"`
}

// Detect computes clusters, measures centroid similarity against
// cross-cluster link density for every pair, and returns pairs whose
// gap score clears minScore, sorted by score descending.
//
// Clusters smaller than two members are ignored, as are clusters with
// no embedded members (counted in SkippedClusters).
func Detect(g *graph.Graph, vectors map[string][]float32, minScore float64, now time.Time) (*Result, error) {
	assignment := metrics.Clusters(g)
	members := assignment.Members()
	centrality := metrics.Centrality(g)

	centroids := make(map[int][]float32)
	skipped := 0
	for id, nodes := range members {
		var vecs [][]float32
		for _, n := range nodes {
			if v, ok := vectors[n]; ok {
				vecs = append(vecs, v)
			}
		}
		if len(vecs) == 0 {
			skipped++
			continue
		}
		centroids[id] = similarity.Centroid(vecs)
	}

	ids := make([]int, 0, len(members))
	for id := range members {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var gaps []Gap
	for i, a := range ids {
		for _, b := range ids[i+1:] {
			membersA, membersB := members[a], members[b]
			if len(membersA) < 2 || len(membersB) < 2 {
				continue
			}
			centroidA, okA := centroids[a]
			centroidB, okB := centroids[b]
			if !okA || !okB {
				continue
			}

			sim, err := similarity.Cosine(centroidA, centroidB)
			if err != nil {
				return nil, err
			}

			cross := countCrossLinks(g, membersA, membersB)
			density := float64(cross) / float64(len(membersA)*len(membersB))
			score := sim - density
			if score < minScore {
				continue
			}

			gaps = append(gaps, Gap{
				ClusterA:      a,
				ClusterB:      b,
				SemanticSim:   sim,
				LinkDensity:   density,
				CrossLinks:    cross,
				GapScore:      score,
				ClusterAInfo:  clusterInfo(g, a, membersA, centrality),
				ClusterBInfo:  clusterInfo(g, b, membersB, centrality),
				SharedTags:    sharedTags(g, membersA, membersB),
				BoundaryNodes: boundaryNodes(g, membersA, membersB),
			})
		}
	}

	sort.Slice(gaps, func(i, j int) bool {
		if gaps[i].GapScore != gaps[j].GapScore {
			return gaps[i].GapScore > gaps[j].GapScore
		}
		if gaps[i].ClusterA != gaps[j].ClusterA {
			return gaps[i].ClusterA < gaps[j].ClusterA
		}
		return gaps[i].ClusterB < gaps[j].ClusterB
	})

	return &Result{
		Gaps:            gaps,
		ClusterCount:    len(members),
		SkippedClusters: skipped,
		GeneratedAt:     now,
	}, nil
}

func countCrossLinks(g *graph.Graph, membersA, membersB []string) int {
	inA := toSet(membersA)
	inB := toSet(membersB)
	count := 0
	for _, e := range g.Edges {
		if (inA[e.Source] && inB[e.Target]) || (inB[e.Source] && inA[e.Target]) {
			count++
		}
	}
	return count
}

func clusterInfo(g *graph.Graph, id int, nodes []string, centrality map[string]float64) ClusterInfo {
	sorted := append([]string(nil), nodes...)
	sort.Slice(sorted, func(i, j int) bool {
		if centrality[sorted[i]] != centrality[sorted[j]] {
			return centrality[sorted[i]] > centrality[sorted[j]]
		}
		return sorted[i] < sorted[j]
	})

	var hubs []string
	for _, n := range sorted {
		if len(hubs) == 5 {
			break
		}
		hubs = append(hubs, docTitle(g, n))
	}

	counts := make(map[string]int)
	for _, n := range nodes {
		if doc, ok := g.Docs[n]; ok {
			for _, t := range doc.Tags {
				counts[t]++
			}
		}
	}
	tags := make([]TagCount, 0, len(counts))
	for t, c := range counts {
		tags = append(tags, TagCount{Tag: t, Count: c})
	}
	sort.Slice(tags, func(i, j int) bool {
		if tags[i].Count != tags[j].Count {
			return tags[i].Count > tags[j].Count
		}
		return tags[i].Tag < tags[j].Tag
	})
	if len(tags) > 5 {
		tags = tags[:5]
	}

	return ClusterInfo{ClusterID: id, Size: len(nodes), HubDocs: hubs, TopTags: tags}
}

func sharedTags(g *graph.Graph, membersA, membersB []string) []string {
	tagSet := func(nodes []string) map[string]bool {
		set := make(map[string]bool)
		for _, n := range nodes {
			if doc, ok := g.Docs[n]; ok {
				for _, t := range doc.Tags {
					set[t] = true
				}
			}
		}
		return set
	}
	tagsA := tagSet(membersA)
	var shared []string
	for t := range tagSet(membersB) {
		if tagsA[t] {
			shared = append(shared, t)
		}
	}
	sort.Strings(shared)
	return shared
}

// boundaryNodes returns nodes outside both clusters that hold a
// resolved link into each of them. These are the natural anchors for
// bridging the gap.
func boundaryNodes(g *graph.Graph, membersA, membersB []string) []string {
	inA := toSet(membersA)
	inB := toSet(membersB)

	linksTo := func(node string, set map[string]bool) bool {
		for _, n := range g.Neighbors(node) {
			if set[n] {
				return true
			}
		}
		return false
	}

	var titles []string
	for _, node := range g.Nodes {
		if inA[node] || inB[node] {
			continue
		}
		if linksTo(node, inA) && linksTo(node, inB) {
			titles = append(titles, docTitle(g, node))
		}
	}
	sort.Strings(titles)
	return titles
}

func docTitle(g *graph.Graph, id string) string {
	if doc, ok := g.Docs[id]; ok && doc.Title != "" {
		return doc.Title
	}
	return id
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
