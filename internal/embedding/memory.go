package embedding

import (
	"context"
	"sync"

	"github.com/agenthands/cortex/internal/model"
)

// MemoryCache is an in-process Cache, used in tests and as a substitute
// store when no durable cache is configured.
type MemoryCache struct {
	mu   sync.RWMutex
	rows map[string]Embedding
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{rows: make(map[string]Embedding)}
}

func (c *MemoryCache) Get(_ context.Context, fileID string) (*Embedding, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	emb, ok := c.rows[fileID]
	if !ok {
		return nil, model.ErrNotFound
	}
	return &emb, nil
}

func (c *MemoryCache) GetBatch(_ context.Context, fileIDs []string) (map[string]Embedding, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]Embedding, len(fileIDs))
	for _, id := range fileIDs {
		if emb, ok := c.rows[id]; ok {
			out[id] = emb
		}
	}
	return out, nil
}

func (c *MemoryCache) All(_ context.Context) (map[string]Embedding, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]Embedding, len(c.rows))
	for id, emb := range c.rows {
		out[id] = emb
	}
	return out, nil
}

func (c *MemoryCache) Put(_ context.Context, emb Embedding) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rows[emb.FileID] = emb
	return nil
}

func (c *MemoryCache) Close() error { return nil }
