// Package embedding provides the content-addressed vector cache and
// the service that keeps it current. Cached vectors are reused
// byte-identically until a document's content hash or the active model
// changes.
package embedding

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"time"
)

// Embedding is one cached vector row, keyed uniquely by FileID.
type Embedding struct {
	FileID      string
	Vector      []float32
	Model       string
	ContentHash string
	CreatedAt   time.Time
}

// Cache is the persistent store for embeddings. Get returns
// model.ErrNotFound on a miss. Put overwrites any prior row for the
// same file id; each write is atomic and independent.
type Cache interface {
	Get(ctx context.Context, fileID string) (*Embedding, error)
	GetBatch(ctx context.Context, fileIDs []string) (map[string]Embedding, error)
	All(ctx context.Context) (map[string]Embedding, error)
	Put(ctx context.Context, emb Embedding) error
	Close() error
}

// PrepareText builds the text handed to the embedding model: the title
// plus the first prefixLen characters of content.
func PrepareText(title, content string, prefixLen int) string {
	if content == "" {
		return title
	}
	return title + "\n\n" + prefix(content, prefixLen)
}

// ContentHash fingerprints exactly the portion of a document that gets
// embedded, so hash equality implies an identical embedding input.
func ContentHash(title, content string, prefixLen int) string {
	text := fmt.Sprintf("%s\n\n%s", title, prefix(content, prefixLen))
	sum := md5.Sum([]byte(text))
	return hex.EncodeToString(sum[:])
}

// prefix truncates to n characters, not bytes, so multi-byte runes are
// never split.
func prefix(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
