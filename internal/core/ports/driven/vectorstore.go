package driven

import (
	"context"

	"github.com/custodia-labs/mailvec/internal/core/domain"
)

// VectorStore persists and searches indexed points, grouped in named
// collections.
type VectorStore interface {
	// Collections returns the names of all collections.
	Collections(ctx context.Context) ([]string, error)

	// CollectionInfo returns point count, dimensionality and distance
	// metric for one collection.
	CollectionInfo(ctx context.Context, name string) (*domain.CollectionInfo, error)

	// EnsureCollection creates the collection with the given vector size
	// and cosine distance if it does not exist yet.
	EnsureCollection(ctx context.Context, name string, vectorSize uint64) error

	// Upsert writes a batch of points in one bulk call.
	Upsert(ctx context.Context, name string, points []domain.IndexedPoint) error

	// Scroll fetches a page of points without vectors.
	Scroll(ctx context.Context, name string, limit, offset int) ([]domain.StoredPoint, error)

	// Search returns the limit nearest neighbours to the query vector,
	// ranked by similarity.
	Search(ctx context.Context, name string, vector []float32, limit int) ([]domain.ScoredPoint, error)

	// Close releases resources.
	Close() error
}
