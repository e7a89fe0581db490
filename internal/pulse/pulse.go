// Package pulse takes timestamped snapshots of the graph and diffs
// consecutive snapshots to show how the knowledge base is moving.
package pulse

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/agenthands/cortex/internal/graph"
	"github.com/agenthands/cortex/internal/model"
)

// Snapshot is one saved pulse.
type Snapshot struct {
	ID        string       `json:"id"`
	Timestamp time.Time    `json:"timestamp"`
	Stats     graph.Stats  `json:"stats"`
	Nodes     []string     `json:"nodes"`
	Edges     []string     `json:"edges"`
	Changes   *Changes     `json:"changes,omitempty"`
	Note      string       `json:"note,omitempty"`
}

// Changes diffs a snapshot against its predecessor.
type Changes struct {
	NodesAdded     []string `json:"nodes_added"`
	NodesRemoved   []string `json:"nodes_removed"`
	EdgesAdded     []string `json:"edges_added"`
	EdgesRemoved   []string `json:"edges_removed"`
	NodeCountDelta int      `json:"node_count_delta"`
	EdgeCountDelta int      `json:"edge_count_delta"`
}

// Store reads and writes pulse snapshots in a directory, one JSON file
// per snapshot named after its id.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Capture snapshots the graph, diffs it against the latest stored
// snapshot if one exists, and saves the result. An empty id defaults
// to the current minute-resolution timestamp.
func (s *Store) Capture(g *graph.Graph, id, note string, now time.Time) (*Snapshot, error) {
	if id == "" {
		id = now.Format("2006-01-02-1504")
	}

	snap := &Snapshot{
		ID:        id,
		Timestamp: now,
		Stats:     g.ComputeStats(),
		Nodes:     append([]string(nil), g.Nodes...),
		Edges:     edgeIDs(g),
		Note:      note,
	}

	prev, err := s.Latest()
	if err != nil && err != model.ErrNotFound {
		return nil, err
	}
	if prev != nil {
		snap.Changes = diff(prev, snap)
	}

	if err := s.save(snap); err != nil {
		return nil, err
	}
	return snap, nil
}

func (s *Store) save(snap *Snapshot) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating pulse directory: %w", err)
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	path := filepath.Join(s.dir, snap.ID+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing pulse %s: %w", snap.ID, err)
	}
	return nil
}

// Load reads one snapshot by id.
func (s *Store) Load(id string) (*Snapshot, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, id+".json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("pulse %s: %w", id, model.ErrNotFound)
		}
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parsing pulse %s: %w", id, err)
	}
	return &snap, nil
}

// Latest returns the snapshot with the newest capture timestamp, or
// ErrNotFound when the directory holds none. Ids are free-form, so id
// order says nothing about age.
func (s *Store) Latest() (*Snapshot, error) {
	ids, err := s.List()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, model.ErrNotFound
	}
	var latest *Snapshot
	for _, id := range ids {
		snap, err := s.Load(id)
		if err != nil {
			return nil, err
		}
		if latest == nil || snap.Timestamp.After(latest.Timestamp) {
			latest = snap
		}
	}
	return latest, nil
}

// List returns snapshot ids in lexicographic order.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var ids []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(ids)
	return ids, nil
}

func diff(prev, cur *Snapshot) *Changes {
	return &Changes{
		NodesAdded:     setDiff(cur.Nodes, prev.Nodes),
		NodesRemoved:   setDiff(prev.Nodes, cur.Nodes),
		EdgesAdded:     setDiff(cur.Edges, prev.Edges),
		EdgesRemoved:   setDiff(prev.Edges, cur.Edges),
		NodeCountDelta: len(cur.Nodes) - len(prev.Nodes),
		EdgeCountDelta: len(cur.Edges) - len(prev.Edges),
	}
}

func setDiff(a, b []string) []string {
	inB := make(map[string]bool, len(b))
	for _, x := range b {
		inB[x] = true
	}
	var out []string
	for _, x := range a {
		if !inB[x] {
			out = append(out, x)
		}
	}
	sort.Strings(out)
	return out
}

func edgeIDs(g *graph.Graph) []string {
	seen := make(map[string]bool, len(g.Edges))
	ids := make([]string, 0, len(g.Edges))
	for _, e := range g.Edges {
		id := e.Source + "->" + e.Target
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}
