package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 0.75, cfg.Digest.Threshold)
	assert.Equal(t, 20, cfg.Digest.TopN)
	assert.Equal(t, 50, cfg.Digest.MinOrphanWords)
	assert.Equal(t, 0.3, cfg.Gaps.MinScore)
	assert.Equal(t, 3, cfg.Insights.MinClusterSize)
	assert.Equal(t, 500, cfg.Insights.ExcerptLen)
	assert.True(t, cfg.Insights.IncludeSamples)
	assert.Equal(t, 5, cfg.Search.TopK)
	assert.True(t, cfg.Search.Expand)
	assert.Equal(t, 500, cfg.Embedding.PrefixLen)
	assert.Equal(t, 8765, cfg.Server.Port)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[store]
data_root = "/data/notes"
spaces = ["work", "personal"]

[digest]
threshold = 0.8

[llm]
provider = "ollama"
embedding_model = "nomic-embed-text"
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/data/notes", cfg.Store.DataRoot)
	assert.Equal(t, []string{"work", "personal"}, cfg.Store.Spaces)
	assert.Equal(t, 0.8, cfg.Digest.Threshold)
	assert.Equal(t, "ollama", cfg.LLM.Provider)
	// untouched sections keep defaults
	assert.Equal(t, 20, cfg.Digest.TopN)
	assert.Equal(t, 5, cfg.Search.TopK)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.toml")
	assert.Error(t, err)
}

func TestLoad_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("not [valid"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadOrDefault_FallsBack(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, 0.75, cfg.Digest.Threshold)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("CORTEX_DATA_ROOT", "/env/root")
	t.Setenv("LLM_PROVIDER", "gemini")
	t.Setenv("LLM_API_KEY", "sk-primary")
	t.Setenv("OPENAI_API_KEY", "sk-fallback")

	cfg := Default()
	cfg.ApplyEnv()

	assert.Equal(t, "/env/root", cfg.Store.DataRoot)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, "sk-primary", cfg.LLM.APIKey)
}

func TestApplyEnv_OpenAIKeyFallback(t *testing.T) {
	t.Setenv("LLM_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "sk-fallback")

	cfg := Default()
	cfg.ApplyEnv()
	assert.Equal(t, "sk-fallback", cfg.LLM.APIKey)
}

func TestDatabasePath(t *testing.T) {
	cfg := Default()
	cfg.Store.DataRoot = "/data"

	assert.Equal(t, filepath.Join("/data", "work", ".cortex", "knowledge.db"), cfg.DatabasePath("work"))
}
