package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var collectionsCmd = &cobra.Command{
	Use:   "collections",
	Short: "List all collections in the vector store",
	Args:  cobra.NoArgs,
	RunE:  runCollections,
}

var infoCmd = &cobra.Command{
	Use:   "info [collection]",
	Short: "Show details for a collection",
	Long: `Shows point count, vector size and distance metric. Without an
argument the configured collection is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(collectionsCmd)
	rootCmd.AddCommand(infoCmd)
}

func runCollections(cmd *cobra.Command, _ []string) error {
	store, err := newStore()
	if err != nil {
		return err
	}
	defer store.Close()

	names, err := store.Collections(context.Background())
	if err != nil {
		return fmt.Errorf("list collections: %w", err)
	}

	if len(names) == 0 {
		cmd.Println("No collections found.")
		return nil
	}

	cmd.Printf("Collections (%d):\n", len(names))
	for _, name := range names {
		marker := " "
		if name == cfg.Collection {
			marker = "*"
		}
		cmd.Printf("  %s %s\n", marker, name)
	}
	return nil
}

func runInfo(cmd *cobra.Command, args []string) error {
	name := cfg.Collection
	if len(args) > 0 {
		name = args[0]
	}

	store, err := newStore()
	if err != nil {
		return err
	}
	defer store.Close()

	info, err := store.CollectionInfo(context.Background(), name)
	if err != nil {
		return fmt.Errorf("collection info: %w", err)
	}

	printCollectionInfo(cmd, info)
	return nil
}
