package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/agenthands/cortex/internal/config"
)

// NewEmbedder builds an embedder client for the configured provider.
func NewEmbedder(ctx context.Context, cfg config.LLMConfig) (EmbedderClient, error) {
	provider := strings.ToLower(cfg.Provider)

	switch provider {
	case "openai":
		return NewOpenAIClient(cfg.APIKey, cfg.EmbeddingModel, cfg.BaseURL), nil

	case "gemini":
		return NewGeminiClient(ctx, cfg.APIKey, cfg.EmbeddingModel)

	case "ollama":
		// Ollama speaks the OpenAI embedding API under /v1. The key is
		// ignored by the server but required by the client config.
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		if !strings.HasSuffix(baseURL, "/v1") {
			baseURL = fmt.Sprintf("%s/v1", strings.TrimRight(baseURL, "/"))
		}
		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = "ollama"
		}
		return NewOpenAIClient(apiKey, cfg.EmbeddingModel, baseURL), nil

	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", cfg.Provider)
	}
}
