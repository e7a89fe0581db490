// Package store is the boundary to the external document store. The
// analytics engine only reads: documents and their link table, scoped
// by space.
package store

import (
	"context"

	"github.com/agenthands/cortex/internal/model"
)

type Store interface {
	// Spaces lists the space names with an existing knowledge database.
	Spaces(ctx context.Context) ([]string, error)
	// ListDocuments returns all documents in the given spaces,
	// including full content. Empty spaces yields an empty slice.
	ListDocuments(ctx context.Context, spaces []string) ([]model.Document, error)
	// ListLinks returns the raw link table for the given spaces.
	ListLinks(ctx context.Context, spaces []string) ([]model.Link, error)
	Close() error
}
