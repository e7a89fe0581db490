package llm

import (
	"context"
)

// EmbedderClient turns text into fixed-length float vectors. Vectors
// are deterministic for identical input and model identifier.
type EmbedderClient interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	// EmbedBatch embeds all texts in one provider call where the API
	// allows it. The result is index-aligned with the input.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	// Model identifies the vector space. Embeddings from different
	// models must never be compared.
	Model() string
}
