package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agenthands/cortex/internal/model"
)

func docs(ids ...string) []model.Document {
	out := make([]model.Document, len(ids))
	for i, id := range ids {
		out[i] = model.Document{ID: id, Title: "Doc " + id}
	}
	return out
}

func TestBuild_SortsNodesAndSeparatesStubs(t *testing.T) {
	links := []model.Link{
		{Source: "c", Target: "a", Resolved: true},
		{Source: "a", Target: "Missing Note", Resolved: false},
		{Source: "a", Target: "ghost", Resolved: true}, // target not in corpus
	}
	g := Build(docs("c", "a", "b"), links)

	assert.Equal(t, []string{"a", "b", "c"}, g.Nodes)
	assert.Len(t, g.Edges, 1)
	assert.Len(t, g.Stubs, 2)
}

func TestBuild_DropsLinksFromUnknownSources(t *testing.T) {
	links := []model.Link{
		{Source: "nope", Target: "a", Resolved: true},
	}
	g := Build(docs("a"), links)

	assert.Empty(t, g.Edges)
	assert.Empty(t, g.Stubs)
}

func TestBuild_DeduplicatesDocuments(t *testing.T) {
	d := append(docs("a", "b"), model.Document{ID: "a", Title: "Duplicate"})
	g := Build(d, nil)

	assert.Equal(t, []string{"a", "b"}, g.Nodes)
	assert.Equal(t, "Doc a", g.Docs["a"].Title)
}

func TestHasLink_EitherDirection(t *testing.T) {
	links := []model.Link{{Source: "a", Target: "b", Resolved: true}}
	g := Build(docs("a", "b"), links)

	assert.True(t, g.HasLink("a", "b"))
	assert.True(t, g.HasLink("b", "a"))
	assert.False(t, g.HasLink("a", "c"))
}

func TestDegrees_CountParallelLinksIndividually(t *testing.T) {
	links := []model.Link{
		{Source: "a", Target: "b", Resolved: true},
		{Source: "a", Target: "b", Resolved: true},
		{Source: "b", Target: "a", Resolved: true},
	}
	g := Build(docs("a", "b"), links)

	assert.Equal(t, 2, g.OutDegree("a"))
	assert.Equal(t, 2, g.InDegree("b"))
	assert.Equal(t, 3, g.Degree("a"))
	// Neighbors collapse parallel links
	assert.Equal(t, []string{"b"}, g.Neighbors("a"))
}

func TestNeighbors_ExcludesSelfLinks(t *testing.T) {
	links := []model.Link{
		{Source: "a", Target: "a", Resolved: true},
		{Source: "a", Target: "b", Resolved: true},
	}
	g := Build(docs("a", "b"), links)

	assert.Equal(t, []string{"b"}, g.Neighbors("a"))
}

func TestDocuments_SkipsStubs(t *testing.T) {
	d := docs("a", "b")
	d = append(d, model.Document{ID: "s", Title: "Stub", IsStub: true})
	g := Build(d, nil)

	got := g.Documents()
	assert.Len(t, got, 2)
	for _, doc := range got {
		assert.False(t, doc.IsStub)
	}
}

func TestComputeStats(t *testing.T) {
	d := []model.Document{
		{ID: "a", Type: "note", Space: "work"},
		{ID: "b", Type: "note", Space: "work"},
		{ID: "c", Type: "journal", Space: "personal"},
	}
	links := []model.Link{
		{Source: "a", Target: "b", Resolved: true},
		{Source: "a", Target: "Missing", Resolved: false},
	}
	g := Build(d, links)
	stats := g.ComputeStats()

	assert.Equal(t, 3, stats.NodeCount)
	assert.Equal(t, 1, stats.EdgeCount)
	assert.Equal(t, 1, stats.StubCount)
	assert.Equal(t, 2, stats.NodesByType["note"])
	assert.Equal(t, 1, stats.NodesBySpace["personal"])
	assert.Equal(t, 2, stats.Components)
}

func TestComponents_LargestFirst(t *testing.T) {
	// a-b-c connected, d isolated
	links := []model.Link{
		{Source: "a", Target: "b", Resolved: true},
		{Source: "b", Target: "c", Resolved: true},
	}
	g := Build(docs("a", "b", "c", "d"), links)

	comps := g.Components()
	assert.Len(t, comps, 2)
	assert.Equal(t, []string{"a", "b", "c"}, comps[0])
	assert.Equal(t, []string{"d"}, comps[1])
}
