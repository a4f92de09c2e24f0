// Package file provides the TOML configuration store.
package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Default configuration values.
const (
	DefaultHost              = "localhost"
	DefaultPort              = 6334
	DefaultCollection        = "gmail_embeddings_full"
	DefaultChunkSize         = 200
	DefaultMaxResults        = 50
	DefaultEmbeddingProvider = "ollama"
	DefaultEmbeddingModel    = "all-minilm"
)

// Config holds all runtime settings. Zero values fall back to defaults at
// load time.
type Config struct {
	// Host and Port locate the Qdrant server (gRPC port).
	Host string `toml:"host"`
	Port int    `toml:"port"`

	// Collection is the vector collection name used for ingestion and
	// queries.
	Collection string `toml:"collection"`

	// ChunkSize is the ingestion chunk size in words.
	ChunkSize int `toml:"chunk_size"`

	// MaxResults caps the full-mailbox fetch on first runs.
	MaxResults int64 `toml:"max_results"`

	// EmbeddingProvider selects the embedding backend: "ollama" or
	// "openai".
	EmbeddingProvider string `toml:"embedding_provider"`

	// EmbeddingModel names the model within the provider.
	EmbeddingModel string `toml:"embedding_model"`

	// EmbeddingBaseURL overrides the provider's base URL.
	EmbeddingBaseURL string `toml:"embedding_base_url"`

	// OpenAIAPIKey authenticates against OpenAI when the provider is
	// "openai".
	OpenAIAPIKey string `toml:"openai_api_key"`

	// CursorPath overrides the sync cursor file location.
	CursorPath string `toml:"cursor_path"`

	// TokenPath locates the Gmail OAuth token file.
	TokenPath string `toml:"token_path"`
}

// DefaultPath returns the default config file location,
// ~/.mailvec/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".mailvec", "config.toml"), nil
}

// Load reads the config file at path and fills unset values with defaults.
// A missing file yields the defaults without error; a malformed one is an
// error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// No config file yet, run on defaults.
	case err != nil:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyDefaults(cfg)
	return cfg, nil
}

// Save writes the config to path with restricted permissions.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultCollection
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = DefaultChunkSize
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = DefaultMaxResults
	}
	if cfg.EmbeddingProvider == "" {
		cfg.EmbeddingProvider = DefaultEmbeddingProvider
	}
	if cfg.EmbeddingModel == "" && cfg.EmbeddingProvider == DefaultEmbeddingProvider {
		cfg.EmbeddingModel = DefaultEmbeddingModel
	}
}
