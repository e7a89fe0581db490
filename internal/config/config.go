package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

type StoreConfig struct {
	DataRoot string   `toml:"data_root"`
	Spaces   []string `toml:"spaces"`
}

type LLMConfig struct {
	Provider       string `toml:"provider"`
	EmbeddingModel string `toml:"embedding_model"`
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
}

type EmbeddingConfig struct {
	CachePath   string  `toml:"cache_path"`
	PrefixLen   int     `toml:"prefix_len"`
	BatchSize   int     `toml:"batch_size"`
	Concurrency int     `toml:"concurrency"`
	RateLimit   float64 `toml:"rate_limit"` // requests per second, 0 = unlimited
}

type DigestConfig struct {
	Threshold      float64 `toml:"threshold"`
	TopN           int     `toml:"top_n"`
	MinOrphanWords int     `toml:"min_orphan_words"`
}

type GapsConfig struct {
	MinScore float64 `toml:"min_score"`
}

type InsightsConfig struct {
	TopClusters    int  `toml:"top_clusters"` // 0 = all
	MinClusterSize int  `toml:"min_cluster_size"`
	ExcerptLen     int  `toml:"excerpt_len"`
	IncludeSamples bool `toml:"include_samples"`
}

type SearchConfig struct {
	TopK   int  `toml:"top_k"`
	Expand bool `toml:"expand"`
}

type PulseConfig struct {
	Directory string `toml:"directory"`
}

type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

type Config struct {
	Store     StoreConfig     `toml:"store"`
	LLM       LLMConfig       `toml:"llm"`
	Embedding EmbeddingConfig `toml:"embedding"`
	Digest    DigestConfig    `toml:"digest"`
	Gaps      GapsConfig      `toml:"gaps"`
	Insights  InsightsConfig  `toml:"insights"`
	Search    SearchConfig    `toml:"search"`
	Pulse     PulseConfig     `toml:"pulse"`
	Server    ServerConfig    `toml:"server"`
}

// Default returns the built-in configuration. The scoring and threshold
// values are compatibility constants and must not drift.
func Default() *Config {
	return &Config{
		Store: StoreConfig{
			DataRoot: ".",
		},
		LLM: LLMConfig{
			Provider:       "openai",
			EmbeddingModel: "text-embedding-3-small",
		},
		Embedding: EmbeddingConfig{
			CachePath:   "embeddings.db",
			PrefixLen:   500,
			BatchSize:   32,
			Concurrency: 3,
		},
		Digest: DigestConfig{
			Threshold:      0.75,
			TopN:           20,
			MinOrphanWords: 50,
		},
		Gaps: GapsConfig{
			MinScore: 0.3,
		},
		Insights: InsightsConfig{
			MinClusterSize: 3,
			ExcerptLen:     500,
			IncludeSamples: true,
		},
		Search: SearchConfig{
			TopK:   5,
			Expand: true,
		},
		Pulse: PulseConfig{
			Directory: "pulses",
		},
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8765,
		},
	}
}

// Load reads a TOML config file over the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault loads path if it exists, otherwise falls back to the
// defaults. Env overrides are applied either way so a bare environment
// is enough to run.
func LoadOrDefault(path string) (*Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); err == nil {
		cfg, err = Load(path)
		if err != nil {
			return nil, err
		}
	}
	cfg.ApplyEnv()
	return cfg, nil
}

// ApplyEnv overlays environment variables onto the config.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("CORTEX_DATA_ROOT"); v != "" {
		c.Store.DataRoot = v
	}
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		c.LLM.Provider = v
	}
	if v := os.Getenv("LLM_EMBEDDING_MODEL"); v != "" {
		c.LLM.EmbeddingModel = v
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" && c.LLM.APIKey == "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		c.LLM.BaseURL = v
	}
	if v := os.Getenv("CORTEX_CACHE_PATH"); v != "" {
		c.Embedding.CachePath = v
	}
}

// DatabasePath returns the knowledge database path for a space.
func (c *Config) DatabasePath(space string) string {
	return filepath.Join(c.Store.DataRoot, space, ".cortex", "knowledge.db")
}
