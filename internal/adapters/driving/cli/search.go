package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/mailvec/internal/core/services"
)

var (
	searchLimit  int
	searchOutput string
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Find points semantically similar to a query",
	Long: `Embeds the query text and returns the nearest points by cosine
similarity, best first.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "maximum number of results")
	searchCmd.Flags().StringVarP(&searchOutput, "output", "o", outputTable, "output format: table or json")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchOutput == outputCSV {
		return fmt.Errorf("csv output is not supported for search results")
	}
	if err := validateOutput(searchOutput); err != nil {
		return err
	}

	embedder, err := newEmbedder()
	if err != nil {
		return err
	}
	defer embedder.Close()

	store, err := newStore()
	if err != nil {
		return err
	}
	defer store.Close()

	engine := services.NewEngine(store, embedder)

	results, err := engine.Search(context.Background(), cfg.Collection, args[0], searchLimit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	return renderScoredPoints(cmd, results, searchOutput)
}
