package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/mailvec/internal/core/services"
	"github.com/custodia-labs/mailvec/internal/extractors"
	"github.com/custodia-labs/mailvec/internal/postprocessors/chunker"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Ingest new Gmail messages into the collection",
	Long: `Fetches messages added since the last run, flattens each into one text
document (body, quoted replies stripped, plus extracted PDF and DOCX
attachments), chunks, embeds and upserts into the Qdrant collection.
The first run fetches the newest messages instead.`,
	Args: cobra.NoArgs,
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	source, err := newMailSource(ctx)
	if err != nil {
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

	cursors, err := newCursors()
	if err != nil {
		return err
	}

	pipeline := services.NewPipeline(services.PipelineConfig{
		Tracker:    services.NewTracker(source, cfg.MaxResults),
		Composer:   services.NewComposer(source, extractors.New()),
		Source:     source,
		Chunker:    chunker.New(chunker.WithChunkSize(cfg.ChunkSize)),
		Embedder:   embedder,
		Store:      store,
		Cursors:    cursors,
		Collection: cfg.Collection,
	})

	result, err := pipeline.Run(ctx)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	if result.NoNewData {
		cmd.Println("No new data.")
		return nil
	}

	cmd.Printf("Indexed %d of %d messages (%d skipped) as %d points into %s.\n",
		result.Indexed, result.Planned, result.Skipped, result.Points, cfg.Collection)
	return nil
}
