package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agenthands/cortex/internal/graph"
	"github.com/agenthands/cortex/internal/model"
)

func buildGraph(ids []string, pairs [][2]string) *graph.Graph {
	docs := make([]model.Document, len(ids))
	for i, id := range ids {
		docs[i] = model.Document{ID: id, Title: id}
	}
	links := make([]model.Link, len(pairs))
	for i, p := range pairs {
		links[i] = model.Link{Source: p[0], Target: p[1], Resolved: true}
	}
	return graph.Build(docs, links)
}

func TestClusters_DisconnectedTriangles(t *testing.T) {
	// [1-2-3-1] (Triangle A) ... [4-5-6-4] (Triangle B)
	g := buildGraph(
		[]string{"1", "2", "3", "4", "5", "6"},
		[][2]string{
			{"1", "2"}, {"2", "3"}, {"3", "1"},
			{"4", "5"}, {"5", "6"}, {"6", "4"},
		},
	)

	a := Clusters(g)
	assert.Equal(t, 2, a.Count())
	assert.Equal(t, a["1"], a["2"])
	assert.Equal(t, a["2"], a["3"])
	assert.Equal(t, a["4"], a["5"])
	assert.Equal(t, a["5"], a["6"])
	assert.NotEqual(t, a["1"], a["4"])
}

func TestClusters_EveryNodeAssigned(t *testing.T) {
	g := buildGraph(
		[]string{"a", "b", "c", "d"},
		[][2]string{{"a", "b"}},
	)

	a := Clusters(g)
	assert.Len(t, a, 4)

	members := a.Members()
	total := 0
	for _, m := range members {
		total += len(m)
	}
	assert.Equal(t, 4, total)
}

func TestClusters_IsolatedNodesKeepSingletons(t *testing.T) {
	g := buildGraph([]string{"x", "y"}, nil)

	a := Clusters(g)
	assert.Equal(t, 2, a.Count())
	assert.NotEqual(t, a["x"], a["y"])
}

func TestClusters_IDsAreCompact(t *testing.T) {
	g := buildGraph(
		[]string{"a", "b", "c", "d"},
		[][2]string{{"a", "b"}, {"c", "d"}},
	)

	a := Clusters(g)
	seen := make(map[int]bool)
	for _, c := range a {
		seen[c] = true
		assert.GreaterOrEqual(t, c, 0)
		assert.Less(t, c, a.Count())
	}
	assert.Len(t, seen, a.Count())
}

func TestClusters_Deterministic(t *testing.T) {
	g := buildGraph(
		[]string{"1", "2", "3", "4", "5", "6"},
		[][2]string{
			{"1", "2"}, {"2", "3"}, {"3", "1"},
			{"3", "4"},
			{"4", "5"}, {"5", "6"}, {"6", "4"},
		},
	)

	first := Clusters(g)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Clusters(g))
	}
}

func TestClusters_SelfLinksIgnored(t *testing.T) {
	g := buildGraph(
		[]string{"a", "b"},
		[][2]string{{"a", "a"}, {"a", "b"}},
	)

	a := Clusters(g)
	assert.Equal(t, a["a"], a["b"])
}

func TestClusters_EmptyGraph(t *testing.T) {
	g := buildGraph(nil, nil)
	assert.Empty(t, Clusters(g))
}
