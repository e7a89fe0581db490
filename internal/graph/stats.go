package graph

import "sort"

type Stats struct {
	NodeCount    int            `json:"node_count"`
	EdgeCount    int            `json:"edge_count"`
	StubCount    int            `json:"stub_count"`
	AvgDegree    float64        `json:"avg_degree"`
	MaxDegree    int            `json:"max_degree"`
	OrphanCount  int            `json:"orphan_count"`
	Components   int            `json:"component_count"`
	NodesByType  map[string]int `json:"nodes_by_type"`
	NodesBySpace map[string]int `json:"nodes_by_space"`
}

// ComputeStats summarizes the graph.
func (g *Graph) ComputeStats() Stats {
	s := Stats{
		NodeCount:    len(g.Nodes),
		EdgeCount:    len(g.Edges),
		StubCount:    len(g.Stubs),
		NodesByType:  make(map[string]int),
		NodesBySpace: make(map[string]int),
	}

	total := 0
	for _, id := range g.Nodes {
		d := g.Degree(id)
		total += d
		if d > s.MaxDegree {
			s.MaxDegree = d
		}
		if d == 0 {
			s.OrphanCount++
		}

		doc := g.Docs[id]
		typ := doc.Type
		if typ == "" {
			typ = "unknown"
		}
		s.NodesByType[typ]++
		s.NodesBySpace[doc.Space]++
	}
	if len(g.Nodes) > 0 {
		s.AvgDegree = float64(total) / float64(len(g.Nodes))
	}
	s.Components = len(g.Components())

	return s
}

// Components returns the connected components of the undirected view of
// the graph, each as a sorted id slice, largest first.
func (g *Graph) Components() [][]string {
	visited := make(map[string]bool)
	var components [][]string

	for _, start := range g.Nodes {
		if visited[start] {
			continue
		}
		var component []string
		stack := []string{start}
		visited[start] = true
		for len(stack) > 0 {
			u := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			component = append(component, u)
			for _, v := range g.Neighbors(u) {
				if !visited[v] {
					visited[v] = true
					stack = append(stack, v)
				}
			}
		}
		sort.Strings(component)
		components = append(components, component)
	}

	sort.Slice(components, func(i, j int) bool {
		if len(components[i]) != len(components[j]) {
			return len(components[i]) > len(components[j])
		}
		return components[i][0] < components[j][0]
	})
	return components
}
