// Package graph builds the in-memory document graph for one analysis
// run. Nodes are document ids, edges are resolved links. The graph is
// rebuilt fresh per invocation and never persisted.
package graph

import (
	"sort"

	"github.com/agenthands/cortex/internal/model"
)

type Graph struct {
	// Nodes holds document ids in lexicographic order.
	Nodes []string
	// Docs indexes the scoped documents by id.
	Docs map[string]model.Document
	// Edges are resolved links, one entry per link record. Parallel
	// links between the same pair are kept here so density counts see
	// them individually.
	Edges []model.Link
	// Stubs are links whose target does not exist in scope. Excluded
	// from the graph proper but reported separately.
	Stubs []model.Link

	out      map[string][]string // collapsed adjacency, unique targets
	in       map[string][]string // collapsed adjacency, unique sources
	inCount  map[string]int      // individual resolved-link counts
	outCount map[string]int
	edgeSet  map[[2]string]bool
}

// Build constructs the graph from document and link records. Links with
// a source id outside the document set are dropped silently. Self-links
// are kept as edges.
func Build(docs []model.Document, links []model.Link) *Graph {
	g := &Graph{
		Docs:     make(map[string]model.Document, len(docs)),
		out:      make(map[string][]string),
		in:       make(map[string][]string),
		inCount:  make(map[string]int),
		outCount: make(map[string]int),
		edgeSet:  make(map[[2]string]bool),
	}

	for _, d := range docs {
		if _, ok := g.Docs[d.ID]; ok {
			continue
		}
		g.Docs[d.ID] = d
		g.Nodes = append(g.Nodes, d.ID)
	}
	sort.Strings(g.Nodes)

	outSeen := make(map[[2]string]bool)
	inSeen := make(map[[2]string]bool)

	for _, l := range links {
		if _, ok := g.Docs[l.Source]; !ok {
			continue
		}
		if !l.Resolved || !g.HasNode(l.Target) {
			g.Stubs = append(g.Stubs, l)
			continue
		}

		g.Edges = append(g.Edges, l)
		g.outCount[l.Source]++
		g.inCount[l.Target]++
		g.edgeSet[[2]string{l.Source, l.Target}] = true

		if k := [2]string{l.Source, l.Target}; !outSeen[k] {
			outSeen[k] = true
			g.out[l.Source] = append(g.out[l.Source], l.Target)
		}
		if k := [2]string{l.Target, l.Source}; !inSeen[k] {
			inSeen[k] = true
			g.in[l.Target] = append(g.in[l.Target], l.Source)
		}
	}

	return g
}

func (g *Graph) HasNode(id string) bool {
	_, ok := g.Docs[id]
	return ok
}

// HasLink reports whether any resolved link exists between a and b in
// either direction.
func (g *Graph) HasLink(a, b string) bool {
	return g.edgeSet[[2]string{a, b}] || g.edgeSet[[2]string{b, a}]
}

// OutNeighbors returns the unique targets of a node's resolved links.
func (g *Graph) OutNeighbors(id string) []string { return g.out[id] }

// InNeighbors returns the unique sources of a node's resolved links.
func (g *Graph) InNeighbors(id string) []string { return g.in[id] }

// Neighbors returns the unique nodes adjacent to id in either
// direction, excluding id itself.
func (g *Graph) Neighbors(id string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, n := range g.out[id] {
		if n != id && !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	for _, n := range g.in[id] {
		if n != id && !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	sort.Strings(out)
	return out
}

// Documents returns every non-stub document in node order.
func (g *Graph) Documents() []model.Document {
	out := make([]model.Document, 0, len(g.Nodes))
	for _, id := range g.Nodes {
		doc := g.Docs[id]
		if doc.IsStub {
			continue
		}
		out = append(out, doc)
	}
	return out
}

// InDegree counts incoming resolved links individually.
func (g *Graph) InDegree(id string) int { return g.inCount[id] }

// OutDegree counts outgoing resolved links individually.
func (g *Graph) OutDegree(id string) int { return g.outCount[id] }

// Degree is the sum of in- and out-degree.
func (g *Graph) Degree(id string) int { return g.inCount[id] + g.outCount[id] }
