package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/mailvec/internal/core/domain"
	"github.com/custodia-labs/mailvec/internal/core/ports/driven"
	"github.com/custodia-labs/mailvec/internal/logger"
	"github.com/custodia-labs/mailvec/internal/postprocessors/chunker"
)

// Pipeline runs one ingestion pass: plan messages, compose documents,
// chunk, embed and upsert into the vector store.
type Pipeline struct {
	tracker    *Tracker
	composer   *Composer
	source     driven.MailSource
	chunker    *chunker.Processor
	embedder   driven.EmbeddingService
	store      driven.VectorStore
	cursors    driven.CursorStore
	collection string
}

// PipelineConfig wires the pipeline's collaborators.
type PipelineConfig struct {
	Tracker    *Tracker
	Composer   *Composer
	Source     driven.MailSource
	Chunker    *chunker.Processor
	Embedder   driven.EmbeddingService
	Store      driven.VectorStore
	Cursors    driven.CursorStore
	Collection string
}

// NewPipeline creates an ingestion pipeline.
func NewPipeline(cfg PipelineConfig) *Pipeline {
	return &Pipeline{
		tracker:    cfg.Tracker,
		composer:   cfg.Composer,
		source:     cfg.Source,
		chunker:    cfg.Chunker,
		embedder:   cfg.Embedder,
		store:      cfg.Store,
		cursors:    cfg.Cursors,
		collection: cfg.Collection,
	}
}

// Result summarises one ingestion run.
type Result struct {
	Planned   int
	Indexed   int
	Skipped   int
	Points    int
	NoNewData bool
}

// Run executes one ingestion pass. The new watermark is persisted as soon
// as the plan is made, so a failed run does not re-deliver the same window
// forever. Messages that fail to fetch or compose are skipped with a
// warning rather than aborting the batch.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	logger.Section("Sync planning")
	cursor, err := p.cursors.Load()
	if err != nil {
		logger.Warn("could not load cursor, treating as first run: %v", err)
		cursor = ""
	}

	ids, watermark, err := p.tracker.Plan(ctx, cursor)
	if err != nil {
		return nil, fmt.Errorf("plan sync: %w", err)
	}

	if err := p.cursors.Save(watermark); err != nil {
		return nil, fmt.Errorf("save cursor: %w", err)
	}

	if len(ids) == 0 {
		logger.Info("no new data")
		return &Result{NoNewData: true}, nil
	}

	dims := p.embedder.Dimensions()
	if dims <= 0 {
		return nil, domain.ErrEmbeddingUnavailable
	}
	logger.Info("embedding with %s (%d dimensions)", p.embedder.ModelName(), dims)
	if err := p.store.EnsureCollection(ctx, p.collection, uint64(dims)); err != nil {
		return nil, fmt.Errorf("ensure collection %s: %w", p.collection, err)
	}

	if info, err := p.store.CollectionInfo(ctx, p.collection); err == nil && info.PointsCount > 0 {
		logger.Warn("collection %s already holds %d points; new point IDs restart at 0 and overwrite earlier ones",
			p.collection, info.PointsCount)
	}

	logger.Section("Indexing")
	result := &Result{Planned: len(ids)}
	var points []domain.IndexedPoint

	for _, id := range ids {
		msg, err := p.source.Message(ctx, id)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			logger.Warn("skipping message %s: %v", id, err)
			result.Skipped++
			continue
		}

		doc, err := p.composer.Compose(ctx, msg)
		if err != nil {
			logger.Warn("skipping message %s: %v", id, err)
			result.Skipped++
			continue
		}

		chunks := p.chunker.Process(doc)
		if len(chunks) == 0 {
			result.Skipped++
			continue
		}

		texts := make([]string, len(chunks))
		for i, c := range chunks {
			texts[i] = c.Content
		}
		vectors, err := p.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return nil, fmt.Errorf("embed message %s: %w", id, err)
		}
		if len(vectors) != len(chunks) {
			return nil, fmt.Errorf("embed message %s: got %d vectors for %d chunks", id, len(vectors), len(chunks))
		}

		// Every chunk of a message carries the same full-document payload;
		// only the vector differs.
		payload := doc.Payload()
		for i := range chunks {
			points = append(points, domain.IndexedPoint{
				ID:      uint64(len(points)),
				Vector:  vectors[i],
				Payload: payload,
			})
		}
		result.Indexed++
	}

	if len(points) == 0 {
		logger.Info("no indexable content in %d planned messages", len(ids))
		return result, nil
	}

	logger.Info("uploading %d points to %s", len(points), p.collection)
	if err := p.store.Upsert(ctx, p.collection, points); err != nil {
		return nil, fmt.Errorf("upsert %d points: %w", len(points), err)
	}
	result.Points = len(points)

	logger.Info("indexed %d of %d messages as %d points into %s",
		result.Indexed, result.Planned, result.Points, p.collection)
	return result, nil
}
