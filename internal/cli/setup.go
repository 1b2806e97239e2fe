package cli

import (
	"fmt"
	"time"

	"vidseg/config"
	"vidseg/internal/adapter/cache"
	"vidseg/internal/adapter/embedding"
	"vidseg/internal/adapter/store"
	"vidseg/internal/port"
	"vidseg/internal/usecase"
)

// openStore opens the bbolt segment store configured for the data dir.
func openStore(cfg *config.Config, dir string) (*store.BoltSegmentStore, error) {
	if err := config.EnsureDataDir(dir); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	st, err := store.NewBoltSegmentStore(cfg.StoreDBPath(dir), cfg.Embedding.Dimension, usecase.EmbedTextFormat)
	if err != nil {
		return nil, fmt.Errorf("failed to open segment store: %w", err)
	}
	return st, nil
}

// newEmbedder builds the configured embedding provider.
func newEmbedder(cfg *config.Config) (port.Embedder, error) {
	switch cfg.Embedding.Provider {
	case "mock":
		return embedding.NewMockEmbedder(cfg.Embedding.Dimension), nil
	case "openai", "":
		return embedding.NewOpenAICompatibleEmbedder(
			cfg.Embedding.APIKeyEnv,
			cfg.Embedding.Model,
			cfg.Embedding.BaseURL,
			cfg.Embedding.Dimension,
		)
	default:
		return nil, fmt.Errorf("unknown embedding provider: %s", cfg.Embedding.Provider)
	}
}

// newQueryCache builds the query cache, or nil when disabled.
func newQueryCache(cfg *config.Config) *cache.QueryCache {
	if !cfg.Cache.Enabled {
		return nil
	}
	return cache.NewQueryCache(cfg.Cache.MaxEntries, time.Duration(cfg.Cache.TTLSeconds)*time.Second)
}
