package store

import (
	"context"
	"sort"

	"github.com/agenthands/cortex/internal/model"
)

// MemoryStore serves a fixed document set. Used in tests and for
// callers that already hold documents in memory.
type MemoryStore struct {
	docs  []model.Document
	links []model.Link
}

func NewMemoryStore(docs []model.Document, links []model.Link) *MemoryStore {
	return &MemoryStore{docs: docs, links: links}
}

func (s *MemoryStore) Spaces(_ context.Context) ([]string, error) {
	set := make(map[string]bool)
	for _, d := range s.docs {
		if d.Space != "" {
			set[d.Space] = true
		}
	}
	spaces := make([]string, 0, len(set))
	for sp := range set {
		spaces = append(spaces, sp)
	}
	sort.Strings(spaces)
	return spaces, nil
}

func (s *MemoryStore) ListDocuments(_ context.Context, spaces []string) ([]model.Document, error) {
	if len(spaces) == 0 {
		return s.docs, nil
	}
	want := make(map[string]bool, len(spaces))
	for _, sp := range spaces {
		want[sp] = true
	}
	var out []model.Document
	for _, d := range s.docs {
		if want[d.Space] {
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *MemoryStore) ListLinks(_ context.Context, _ []string) ([]model.Link, error) {
	return s.links, nil
}

func (s *MemoryStore) Close() error { return nil }
