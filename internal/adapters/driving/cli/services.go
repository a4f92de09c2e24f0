package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/mailvec/internal/adapters/driven/config/file"
	cursorfile "github.com/custodia-labs/mailvec/internal/adapters/driven/cursor/file"
	"github.com/custodia-labs/mailvec/internal/adapters/driven/embedding/ollama"
	"github.com/custodia-labs/mailvec/internal/adapters/driven/embedding/openai"
	"github.com/custodia-labs/mailvec/internal/adapters/driven/vectorstore/qdrant"
	"github.com/custodia-labs/mailvec/internal/connectors/google"
	"github.com/custodia-labs/mailvec/internal/connectors/google/gmail"
	"github.com/custodia-labs/mailvec/internal/core/ports/driven"
)

// cfg is the runtime configuration, loaded by the root command before any
// subcommand runs.
var cfg *file.Config

// Factories below are package variables so tests can substitute fakes.
var (
	newStore      = defaultStore
	newEmbedder   = defaultEmbedder
	newMailSource = defaultMailSource
	newCursors    = defaultCursors
)

// loadRuntimeConfig reads the config file and applies flag overrides.
func loadRuntimeConfig() error {
	path := configPath
	if path == "" {
		var err error
		path, err = file.DefaultPath()
		if err != nil {
			return err
		}
	}

	loaded, err := file.Load(path)
	if err != nil {
		return err
	}

	if flagHost != "" {
		loaded.Host = flagHost
	}
	if flagPort != 0 {
		loaded.Port = flagPort
	}
	if flagCollection != "" {
		loaded.Collection = flagCollection
	}

	cfg = loaded
	return nil
}

func defaultStore() (driven.VectorStore, error) {
	return qdrant.New(qdrant.Config{
		Host: cfg.Host,
		Port: cfg.Port,
	})
}

func defaultEmbedder() (driven.EmbeddingService, error) {
	switch cfg.EmbeddingProvider {
	case "", "ollama":
		return ollama.New(ollama.Config{
			BaseURL: cfg.EmbeddingBaseURL,
			Model:   cfg.EmbeddingModel,
		}), nil
	case "openai":
		return openai.New(openai.Config{
			APIKey:  cfg.OpenAIAPIKey,
			BaseURL: cfg.EmbeddingBaseURL,
			Model:   cfg.EmbeddingModel,
		})
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.EmbeddingProvider)
	}
}

func defaultMailSource(ctx context.Context) (driven.MailSource, error) {
	tokenPath := cfg.TokenPath
	if tokenPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		tokenPath = filepath.Join(home, ".mailvec", "token.json")
	}

	ts, err := google.FileTokenSource(tokenPath)
	if err != nil {
		return nil, fmt.Errorf("load gmail token: %w", err)
	}
	svc, err := google.NewGmailService(ctx, ts)
	if err != nil {
		return nil, fmt.Errorf("create gmail client: %w", err)
	}
	return gmail.NewSource(svc, gmail.DefaultConfig()), nil
}

func defaultCursors() (driven.CursorStore, error) {
	return cursorfile.NewCursorStore(cfg.CursorPath)
}
