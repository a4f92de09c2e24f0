package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/mailvec/internal/core/domain"
	"github.com/custodia-labs/mailvec/internal/core/services"
)

var (
	scrollLimit    int
	scrollOffset   int
	filterSubject  string
	filterSender   string
	filterURL      string
	filterCategory string
	scrollOutput   string
)

var scrollCmd = &cobra.Command{
	Use:   "scroll",
	Short: "Browse stored points with optional payload filters",
	Long: `Fetches one page of points from the collection and filters it by
payload fields. Filters apply to the fetched page only: string fields
match on case-insensitive substring.`,
	Args: cobra.NoArgs,
	RunE: runScroll,
}

func init() {
	scrollCmd.Flags().IntVar(&scrollLimit, "limit", services.DefaultScrollLimit, "maximum number of points to fetch")
	scrollCmd.Flags().IntVar(&scrollOffset, "offset", 0, "point ID to start from")
	scrollCmd.Flags().StringVar(&filterSubject, "filter-subject", "", "filter by subject substring")
	scrollCmd.Flags().StringVar(&filterSender, "filter-sender", "", "filter by sender substring")
	scrollCmd.Flags().StringVar(&filterURL, "filter-url", "", "filter by url substring")
	scrollCmd.Flags().StringVar(&filterCategory, "filter-category", "", "filter by category substring")
	scrollCmd.Flags().StringVarP(&scrollOutput, "output", "o", outputTable, "output format: table, json or csv")
	rootCmd.AddCommand(scrollCmd)
}

func runScroll(cmd *cobra.Command, _ []string) error {
	if err := validateOutput(scrollOutput); err != nil {
		return err
	}

	store, err := newStore()
	if err != nil {
		return err
	}
	defer store.Close()

	engine := services.NewEngine(store, nil)

	opts := domain.ScrollOptions{
		Limit:   scrollLimit,
		Offset:  scrollOffset,
		Filters: scrollFilters(),
	}
	points, err := engine.Scroll(context.Background(), cfg.Collection, opts)
	if err != nil {
		return fmt.Errorf("scroll failed: %w", err)
	}

	if len(points) == 0 {
		cmd.Println("No points found in the collection.")
		return nil
	}

	cmd.Printf("Found %d points (limit: %d, offset: %d)\n", len(points), scrollLimit, scrollOffset)
	return renderStoredPoints(cmd, points, scrollOutput)
}

func scrollFilters() []domain.Filter {
	var filters []domain.Filter
	for _, f := range []domain.Filter{
		{Key: "subject", Value: filterSubject},
		{Key: "sender", Value: filterSender},
		{Key: "url", Value: filterURL},
		{Key: "category", Value: filterCategory},
	} {
		if f.Value != "" {
			filters = append(filters, f)
		}
	}
	return filters
}
