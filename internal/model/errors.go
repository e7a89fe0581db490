package model

import "errors"

var (
	// ErrModelMismatch means cached embeddings and the active embedder
	// belong to different vector spaces. Comparing them would produce
	// garbage scores, so the whole run aborts.
	ErrModelMismatch = errors.New("embedding model mismatch")

	// ErrDimensionMismatch means two vectors of different lengths were
	// handed to the similarity engine.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrClusterNotFound is returned for single-cluster lookups with an
	// id that does not exist in the current partition.
	ErrClusterNotFound = errors.New("cluster not found")

	// ErrNoDocuments means the requested scope resolved to an empty
	// document set.
	ErrNoDocuments = errors.New("no documents in scope")

	// ErrNotFound is the generic missing-row sentinel used by stores.
	ErrNotFound = errors.New("not found")
)
