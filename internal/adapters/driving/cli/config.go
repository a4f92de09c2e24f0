package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/mailvec/internal/adapters/driven/config/file"
	cursorfile "github.com/custodia-labs/mailvec/internal/adapters/driven/cursor/file"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Shows the effective configuration after merging the config file,
built-in defaults and command-line flag overrides.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the effective configuration to the config file",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

func init() {
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

// effectiveConfigPath resolves the config file location, honouring the
// --config flag.
func effectiveConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return file.DefaultPath()
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	path, err := effectiveConfigPath()
	if err != nil {
		return err
	}

	cursors, err := cursorfile.NewCursorStore(cfg.CursorPath)
	if err != nil {
		return fmt.Errorf("resolve cursor path: %w", err)
	}

	cmd.Printf("Config file: %s\n", path)
	cmd.Println()

	cmd.Println("[Vector Store]")
	cmd.Printf("  Host:       %s\n", cfg.Host)
	cmd.Printf("  Port:       %d\n", cfg.Port)
	cmd.Printf("  Collection: %s\n", cfg.Collection)
	cmd.Println()

	cmd.Println("[Ingestion]")
	cmd.Printf("  Chunk size:  %d words\n", cfg.ChunkSize)
	cmd.Printf("  Max results: %d\n", cfg.MaxResults)
	cmd.Printf("  Cursor file: %s\n", cursors.Path())
	cmd.Printf("  Token file:  %s\n", effectiveTokenPath())
	cmd.Println()

	cmd.Println("[Embedding]")
	cmd.Printf("  Provider: %s\n", cfg.EmbeddingProvider)
	model := cfg.EmbeddingModel
	if model == "" {
		model = "(not set)"
	}
	cmd.Printf("  Model:    %s\n", model)
	if cfg.EmbeddingBaseURL != "" {
		cmd.Printf("  Base URL: %s\n", cfg.EmbeddingBaseURL)
	}
	if cfg.EmbeddingProvider == "openai" {
		if cfg.OpenAIAPIKey != "" {
			cmd.Printf("  API key:  %s\n", maskAPIKey(cfg.OpenAIAPIKey))
		} else {
			cmd.Printf("  API key:  (not set)\n")
		}
	}

	return nil
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	path, err := effectiveConfigPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := file.Save(path, cfg); err != nil {
		return err
	}

	cmd.Printf("Wrote config to %s\n", path)
	return nil
}

func effectiveTokenPath() string {
	if cfg.TokenPath != "" {
		return cfg.TokenPath
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "(unresolved)"
	}
	return filepath.Join(home, ".mailvec", "token.json")
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
