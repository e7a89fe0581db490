package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCentrality_HubOutranksLeaves(t *testing.T) {
	// Star: a, b, c all link to hub
	g := buildGraph(
		[]string{"hub", "a", "b", "c"},
		[][2]string{{"a", "hub"}, {"b", "hub"}, {"c", "hub"}},
	)

	c := Centrality(g)
	assert.Equal(t, 1.0, c["hub"])
	assert.Less(t, c["a"], c["hub"])
	assert.InDelta(t, c["a"], c["b"], 1e-9)
}

func TestCentrality_NormalizedToUnitInterval(t *testing.T) {
	g := buildGraph(
		[]string{"a", "b", "c", "d"},
		[][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}, {"d", "a"}},
	)

	c := Centrality(g)
	maxSeen := 0.0
	for _, v := range c {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
		if v > maxSeen {
			maxSeen = v
		}
	}
	assert.Equal(t, 1.0, maxSeen)
}

func TestCentrality_NoEdges(t *testing.T) {
	g := buildGraph([]string{"a", "b"}, nil)

	c := Centrality(g)
	assert.Equal(t, 1.0, c["a"])
	assert.Equal(t, 1.0, c["b"])
}

func TestCentrality_EmptyGraph(t *testing.T) {
	g := buildGraph(nil, nil)
	assert.Empty(t, Centrality(g))
}

func TestRecencyScore(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 0.0, RecencyScore(time.Time{}, now))
	assert.Equal(t, 1.0, RecencyScore(now, now))
	assert.Equal(t, 1.0, RecencyScore(now.Add(time.Hour), now))
	assert.Equal(t, 0.0, RecencyScore(now.AddDate(0, 0, -30), now))
	assert.Equal(t, 0.0, RecencyScore(now.AddDate(0, -6, 0), now))
	assert.InDelta(t, 0.5, RecencyScore(now.AddDate(0, 0, -15), now), 1e-9)
	assert.InDelta(t, 1.0-1.0/30, RecencyScore(now.AddDate(0, 0, -1), now), 1e-9)
}
