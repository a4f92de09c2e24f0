// Package qdrant provides a vector store adapter backed by a Qdrant server.
package qdrant

import (
	"context"
	"fmt"

	"github.com/qdrant/go-client/qdrant"

	"github.com/custodia-labs/mailvec/internal/core/domain"
	"github.com/custodia-labs/mailvec/internal/core/ports/driven"
	"github.com/custodia-labs/mailvec/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

// Default connection values. Port is the gRPC port, not the REST one.
const (
	DefaultHost = "localhost"
	DefaultPort = 6334
)

// Config holds connection settings for the Qdrant server.
type Config struct {
	// Host is the Qdrant server hostname (default: localhost).
	Host string

	// Port is the gRPC port (default: 6334).
	Port int

	// APIKey enables authentication when set.
	APIKey string

	// UseTLS enables transport security. Required by Qdrant Cloud.
	UseTLS bool
}

// Store talks to a Qdrant server over gRPC.
type Store struct {
	client *qdrant.Client
}

// New connects to the Qdrant server.
func New(cfg Config) (*Store, error) {
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   cfg.Host,
		Port:   cfg.Port,
		APIKey: cfg.APIKey,
		UseTLS: cfg.UseTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to qdrant at %s:%d: %w", cfg.Host, cfg.Port, err)
	}

	return &Store{client: client}, nil
}

// Collections lists all collection names.
func (s *Store) Collections(ctx context.Context) ([]string, error) {
	names, err := s.client.ListCollections(ctx)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w (%v)", domain.ErrStoreUnavailable, err)
	}
	return names, nil
}

// CollectionInfo describes one collection.
func (s *Store) CollectionInfo(ctx context.Context, name string) (*domain.CollectionInfo, error) {
	exists, err := s.client.CollectionExists(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("check collection %s: %w", name, err)
	}
	if !exists {
		return nil, fmt.Errorf("collection %s: %w", name, domain.ErrNotFound)
	}

	info, err := s.client.GetCollectionInfo(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("get collection %s: %w", name, err)
	}

	out := &domain.CollectionInfo{
		Name:        name,
		PointsCount: info.GetPointsCount(),
	}
	if params := info.GetConfig().GetParams().GetVectorsConfig().GetParams(); params != nil {
		out.VectorSize = params.GetSize()
		out.Distance = params.GetDistance().String()
	}
	return out, nil
}

// EnsureCollection creates the collection if it does not exist. Vectors use
// cosine distance.
func (s *Store) EnsureCollection(ctx context.Context, name string, vectorSize uint64) error {
	exists, err := s.client.CollectionExists(ctx, name)
	if err != nil {
		return fmt.Errorf("check collection %s: %w", name, err)
	}
	if exists {
		return nil
	}

	logger.Info("creating collection %s (size=%d, distance=cosine)", name, vectorSize)
	err = s.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: name,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("create collection %s: %w", name, err)
	}
	return nil
}

// Upsert writes points into the collection, overwriting any points with the
// same IDs.
func (s *Store) Upsert(ctx context.Context, name string, points []domain.IndexedPoint) error {
	if len(points) == 0 {
		return nil
	}

	structs := make([]*qdrant.PointStruct, len(points))
	for i, p := range points {
		structs[i] = &qdrant.PointStruct{
			Id:      qdrant.NewIDNum(p.ID),
			Vectors: qdrant.NewVectors(p.Vector...),
			Payload: qdrant.NewValueMap(p.Payload),
		}
	}

	_, err := s.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: name,
		Points:         structs,
	})
	if err != nil {
		return fmt.Errorf("upsert %d points into %s: %w", len(points), name, err)
	}
	return nil
}

// Scroll reads one page of points with payloads, without vectors. Offset is
// the numeric point ID to start from.
func (s *Store) Scroll(ctx context.Context, name string, limit, offset int) ([]domain.StoredPoint, error) {
	req := &qdrant.ScrollPoints{
		CollectionName: name,
		Limit:          qdrant.PtrOf(uint32(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	}
	if offset > 0 {
		req.Offset = qdrant.NewIDNum(uint64(offset))
	}

	retrieved, err := s.client.Scroll(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("scroll %s: %w", name, err)
	}

	points := make([]domain.StoredPoint, 0, len(retrieved))
	for _, p := range retrieved {
		points = append(points, domain.StoredPoint{
			ID:      p.GetId().GetNum(),
			Payload: payloadToMap(p.GetPayload()),
		})
	}
	return points, nil
}

// Search returns the points nearest to the query vector by cosine
// similarity, best first.
func (s *Store) Search(ctx context.Context, name string, vector []float32, limit int) ([]domain.ScoredPoint, error) {
	scored, err := s.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: name,
		Query:          qdrant.NewQuery(vector...),
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", name, err)
	}

	points := make([]domain.ScoredPoint, 0, len(scored))
	for _, p := range scored {
		points = append(points, domain.ScoredPoint{
			ID:      p.GetId().GetNum(),
			Score:   p.GetScore(),
			Payload: payloadToMap(p.GetPayload()),
		})
	}
	return points, nil
}

// Close releases the gRPC connection.
func (s *Store) Close() error {
	return s.client.Close()
}
