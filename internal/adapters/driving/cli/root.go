// Package cli implements the mailvec command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/mailvec/internal/core/domain"
	"github.com/custodia-labs/mailvec/internal/logger"
)

var (
	verbose        bool
	configPath     string
	flagHost       string
	flagPort       int
	flagCollection string
)

var rootCmd = &cobra.Command{
	Use:   "mailvec",
	Short: "Index Gmail messages into a Qdrant vector collection",
	Long: `mailvec ingests a Gmail mailbox into a Qdrant vector collection and
queries it. Running without a subcommand shows the configured collection.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		return loadRuntimeConfig()
	},
	RunE: runRoot,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default ~/.mailvec/config.toml)")
	rootCmd.PersistentFlags().StringVar(&flagHost, "host", "", "Qdrant host (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagPort, "port", 0, "Qdrant gRPC port (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagCollection, "collection", "", "collection name (overrides config)")
}

// runRoot is the default action: show the configured collection.
func runRoot(cmd *cobra.Command, _ []string) error {
	store, err := newStore()
	if err != nil {
		return err
	}
	defer store.Close()

	info, err := store.CollectionInfo(context.Background(), cfg.Collection)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			cmd.Printf("Collection %q does not exist yet. Run 'mailvec ingest' to create it.\n", cfg.Collection)
			return nil
		}
		return fmt.Errorf("collection info: %w", err)
	}

	printCollectionInfo(cmd, info)
	return nil
}

func printCollectionInfo(cmd *cobra.Command, info *domain.CollectionInfo) {
	cmd.Printf("Collection: %s\n", info.Name)
	cmd.Printf("  Points:      %d\n", info.PointsCount)
	cmd.Printf("  Vector size: %d\n", info.VectorSize)
	cmd.Printf("  Distance:    %s\n", info.Distance)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
