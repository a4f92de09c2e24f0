package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/mailvec/internal/core/domain"
	"github.com/custodia-labs/mailvec/internal/core/ports/driven"
)

// DefaultScrollLimit is the page size used when the caller does not set one.
const DefaultScrollLimit = 100

// Engine answers read-side questions against the vector store: collection
// listings, payload scrolling with client-side filters, and semantic search.
type Engine struct {
	store    driven.VectorStore
	embedder driven.EmbeddingService
}

// NewEngine creates a query engine. embedder may be nil when only
// non-semantic operations are needed.
func NewEngine(store driven.VectorStore, embedder driven.EmbeddingService) *Engine {
	return &Engine{store: store, embedder: embedder}
}

// Collections lists the store's collection names.
func (e *Engine) Collections(ctx context.Context) ([]string, error) {
	return e.store.Collections(ctx)
}

// CollectionInfo describes one collection.
func (e *Engine) CollectionInfo(ctx context.Context, name string) (*domain.CollectionInfo, error) {
	return e.store.CollectionInfo(ctx, name)
}

// Scroll retrieves one page of points and applies the given filters to it.
// Filters narrow the fetched page only; points outside the page window are
// never considered.
func (e *Engine) Scroll(ctx context.Context, collection string, opts domain.ScrollOptions) ([]domain.StoredPoint, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultScrollLimit
	}
	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}

	points, err := e.store.Scroll(ctx, collection, limit, offset)
	if err != nil {
		return nil, err
	}
	if len(opts.Filters) == 0 {
		return points, nil
	}

	filtered := make([]domain.StoredPoint, 0, len(points))
	for _, p := range points {
		if matchesFilters(p.Payload, opts.Filters) {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// Search embeds the query text and returns the nearest points.
func (e *Engine) Search(ctx context.Context, collection, query string, limit int) ([]domain.ScoredPoint, error) {
	if e.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: empty query", domain.ErrInvalidInput)
	}
	if limit <= 0 {
		limit = 10
	}

	vector, err := e.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	return e.store.Search(ctx, collection, vector, limit)
}

// matchesFilters reports whether the payload satisfies every filter. String
// values match on case-insensitive substring; everything else on rendered
// equality. A missing key behaves as an empty string.
func matchesFilters(payload map[string]any, filters []domain.Filter) bool {
	for _, f := range filters {
		value, ok := payload[f.Key]
		if !ok {
			value = ""
		}
		if s, isString := value.(string); isString {
			if !strings.Contains(strings.ToLower(s), strings.ToLower(f.Value)) {
				return false
			}
			continue
		}
		if fmt.Sprint(value) != f.Value {
			return false
		}
	}
	return true
}
