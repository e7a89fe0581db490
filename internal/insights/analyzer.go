// Package insights produces per-cluster reports: statistics, hub
// documents, dominant tags, inter-cluster connections, and content
// samples.
package insights

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/agenthands/cortex/internal/config"
	"github.com/agenthands/cortex/internal/graph"
	"github.com/agenthands/cortex/internal/metrics"
	"github.com/agenthands/cortex/internal/model"
)

// Stats holds aggregate numbers for one cluster.
type Stats struct {
	AvgWords      int     `json:"avg_words"`
	TotalWords    int     `json:"total_words"`
	AvgCentrality float64 `json:"avg_centrality"`
	Density       float64 `json:"density"`
}

// Hub is a high-centrality document inside a cluster.
type Hub struct {
	Title      string   `json:"title"`
	Centrality float64  `json:"centrality"`
	WordCount  int      `json:"word_count"`
	Tags       []string `json:"tags"`
	Path       string   `json:"path"`
}

// TagFreq pairs a tag with its count across cluster members.
type TagFreq struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// Connection counts links from one cluster into another.
type Connection struct {
	ClusterID int `json:"cluster_id"`
	LinkCount int `json:"link_count"`
}

// Sample is a content excerpt from a representative document.
type Sample struct {
	Title     string `json:"title"`
	WordCount int    `json:"word_count"`
	Excerpt   string `json:"excerpt"`
}

// ClusterAnalysis is the full report for a single cluster.
type ClusterAnalysis struct {
	ClusterID   int          `json:"cluster_id"`
	Size        int          `json:"size"`
	Stats       Stats        `json:"stats"`
	Hubs        []Hub        `json:"hubs"`
	TagFreq     []TagFreq    `json:"tag_freq"`
	Connections []Connection `json:"connections"`
	Samples     []Sample     `json:"samples"`
}

// Result covers every analyzed cluster.
type Result struct {
	Clusters      []ClusterAnalysis `json:"clusters"`
	TotalDocs     int               `json:"total_docs"`
	TotalClusters int               `json:"total_clusters"`
	GeneratedAt   time.Time         `json:"generated_at"`
}

// Analyzer runs cluster analysis over a built graph.
type Analyzer struct {
	g          *graph.Graph
	cfg        config.InsightsConfig
	assignment metrics.Assignment
	members    map[int][]string
	centrality map[string]float64
}

func NewAnalyzer(g *graph.Graph, cfg config.InsightsConfig) *Analyzer {
	assignment := metrics.Clusters(g)
	return &Analyzer{
		g:          g,
		cfg:        cfg,
		assignment: assignment,
		members:    assignment.Members(),
		centrality: metrics.Centrality(g),
	}
}

// Analyze reports on every cluster at or above the configured minimum
// size, sorted by size descending.
func (a *Analyzer) Analyze(now time.Time) *Result {
	ids := make([]int, 0, len(a.members))
	for id := range a.members {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var analyses []ClusterAnalysis
	for _, id := range ids {
		if len(a.members[id]) < a.cfg.MinClusterSize {
			continue
		}
		analyses = append(analyses, a.analyze(id))
	}

	sort.SliceStable(analyses, func(i, j int) bool {
		if analyses[i].Size != analyses[j].Size {
			return analyses[i].Size > analyses[j].Size
		}
		return analyses[i].ClusterID < analyses[j].ClusterID
	})
	if a.cfg.TopClusters > 0 && len(analyses) > a.cfg.TopClusters {
		analyses = analyses[:a.cfg.TopClusters]
	}

	return &Result{
		Clusters:      analyses,
		TotalDocs:     len(a.g.Nodes),
		TotalClusters: len(a.members),
		GeneratedAt:   now,
	}
}

// AnalyzeCluster reports on one cluster regardless of its size.
func (a *Analyzer) AnalyzeCluster(id int) (*ClusterAnalysis, error) {
	if _, ok := a.members[id]; !ok {
		return nil, fmt.Errorf("cluster %d: %w", id, model.ErrClusterNotFound)
	}
	analysis := a.analyze(id)
	return &analysis, nil
}

func (a *Analyzer) analyze(id int) ClusterAnalysis {
	nodes := a.members[id]
	return ClusterAnalysis{
		ClusterID:   id,
		Size:        len(nodes),
		Stats:       a.stats(nodes),
		Hubs:        a.hubs(nodes),
		TagFreq:     a.tagFreq(nodes),
		Connections: a.connections(id, nodes),
		Samples:     a.samples(nodes),
	}
}

func (a *Analyzer) stats(nodes []string) Stats {
	if len(nodes) == 0 {
		return Stats{}
	}

	totalWords := 0
	sumCentrality := 0.0
	for _, n := range nodes {
		if doc, ok := a.g.Docs[n]; ok {
			totalWords += doc.WordCount
		}
		sumCentrality += a.centrality[n]
	}

	inCluster := toSet(nodes)
	internal := 0
	for _, e := range a.g.Edges {
		if inCluster[e.Source] && inCluster[e.Target] {
			internal++
		}
	}
	density := 0.0
	if len(nodes) > 1 {
		maxEdges := float64(len(nodes)*(len(nodes)-1)) / 2
		density = float64(internal) / maxEdges
	}

	return Stats{
		AvgWords:      totalWords / len(nodes),
		TotalWords:    totalWords,
		AvgCentrality: round3(sumCentrality / float64(len(nodes))),
		Density:       round3(density),
	}
}

func (a *Analyzer) hubs(nodes []string) []Hub {
	sorted := a.byCentrality(nodes)
	var hubs []Hub
	for _, n := range sorted {
		if len(hubs) == 10 {
			break
		}
		doc := a.g.Docs[n]
		tags := doc.Tags
		if len(tags) > 5 {
			tags = tags[:5]
		}
		hubs = append(hubs, Hub{
			Title:      titleOf(doc, n),
			Centrality: a.centrality[n],
			WordCount:  doc.WordCount,
			Tags:       tags,
			Path:       doc.Path,
		})
	}
	return hubs
}

func (a *Analyzer) tagFreq(nodes []string) []TagFreq {
	counts := make(map[string]int)
	for _, n := range nodes {
		if doc, ok := a.g.Docs[n]; ok {
			for _, t := range doc.Tags {
				counts[t]++
			}
		}
	}
	freqs := make([]TagFreq, 0, len(counts))
	for t, c := range counts {
		freqs = append(freqs, TagFreq{Tag: t, Count: c})
	}
	sort.Slice(freqs, func(i, j int) bool {
		if freqs[i].Count != freqs[j].Count {
			return freqs[i].Count > freqs[j].Count
		}
		return freqs[i].Tag < freqs[j].Tag
	})
	if len(freqs) > 10 {
		freqs = freqs[:10]
	}
	return freqs
}

func (a *Analyzer) connections(id int, nodes []string) []Connection {
	inCluster := toSet(nodes)
	counts := make(map[int]int)
	for _, e := range a.g.Edges {
		srcIn, tgtIn := inCluster[e.Source], inCluster[e.Target]
		if srcIn == tgtIn {
			continue
		}
		other := e.Target
		if tgtIn {
			other = e.Source
		}
		if otherID, ok := a.assignment[other]; ok && otherID != id {
			counts[otherID]++
		}
	}

	conns := make([]Connection, 0, len(counts))
	for cid, c := range counts {
		conns = append(conns, Connection{ClusterID: cid, LinkCount: c})
	}
	sort.Slice(conns, func(i, j int) bool {
		if conns[i].LinkCount != conns[j].LinkCount {
			return conns[i].LinkCount > conns[j].LinkCount
		}
		return conns[i].ClusterID < conns[j].ClusterID
	})
	if len(conns) > 10 {
		conns = conns[:10]
	}
	return conns
}

func (a *Analyzer) samples(nodes []string) []Sample {
	sorted := append([]string(nil), nodes...)
	sort.Slice(sorted, func(i, j int) bool {
		ci, cj := a.centrality[sorted[i]], a.centrality[sorted[j]]
		if ci != cj {
			return ci > cj
		}
		wi, wj := a.g.Docs[sorted[i]].WordCount, a.g.Docs[sorted[j]].WordCount
		if wi != wj {
			return wi > wj
		}
		return sorted[i] < sorted[j]
	})

	var samples []Sample
	for _, n := range sorted {
		if len(samples) == 5 {
			break
		}
		doc := a.g.Docs[n]
		samples = append(samples, Sample{
			Title:     titleOf(doc, n),
			WordCount: doc.WordCount,
			Excerpt:   Excerpt(doc.Content, a.cfg.ExcerptLen),
		})
	}
	return samples
}

func (a *Analyzer) byCentrality(nodes []string) []string {
	sorted := append([]string(nil), nodes...)
	sort.Slice(sorted, func(i, j int) bool {
		if a.centrality[sorted[i]] != a.centrality[sorted[j]] {
			return a.centrality[sorted[i]] > a.centrality[sorted[j]]
		}
		return sorted[i] < sorted[j]
	})
	return sorted
}

// Excerpt truncates content to at most maxLen runes, preferring a
// sentence or word boundary when one falls in the last 30% of the
// window.
func Excerpt(content string, maxLen int) string {
	runes := []rune(content)
	if len(runes) <= maxLen {
		return strings.TrimSpace(content)
	}

	excerpt := strings.TrimSpace(string(runes[:maxLen]))
	cutoff := int(float64(maxLen) * 0.7)

	if i := strings.LastIndex(excerpt, "."); i > cutoff {
		return excerpt[:i+1]
	}
	if i := strings.LastIndex(excerpt, " "); i > cutoff {
		return excerpt[:i] + "..."
	}
	return excerpt + "..."
}

func titleOf(doc model.Document, id string) string {
	if doc.Title != "" {
		return doc.Title
	}
	return id
}

func round3(v float64) float64 {
	return float64(int(v*1000+0.5)) / 1000
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
