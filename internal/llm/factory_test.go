package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/cortex/internal/config"
)

func TestNewEmbedder_OpenAI(t *testing.T) {
	client, err := NewEmbedder(context.Background(), config.LLMConfig{
		Provider:       "openai",
		EmbeddingModel: "text-embedding-3-small",
		APIKey:         "sk-test",
	})
	require.NoError(t, err)
	assert.Equal(t, "text-embedding-3-small", client.Model())
}

func TestNewEmbedder_Ollama(t *testing.T) {
	client, err := NewEmbedder(context.Background(), config.LLMConfig{
		Provider:       "ollama",
		EmbeddingModel: "nomic-embed-text",
	})
	require.NoError(t, err)
	assert.Equal(t, "nomic-embed-text", client.Model())
}

func TestNewEmbedder_CaseInsensitiveProvider(t *testing.T) {
	_, err := NewEmbedder(context.Background(), config.LLMConfig{
		Provider: "OpenAI",
		APIKey:   "sk-test",
	})
	assert.NoError(t, err)
}

func TestNewEmbedder_UnknownProvider(t *testing.T) {
	_, err := NewEmbedder(context.Background(), config.LLMConfig{Provider: "carrier-pigeon"})
	assert.ErrorContains(t, err, "unsupported embedding provider")
}
