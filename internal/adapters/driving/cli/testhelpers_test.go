package cli

import (
	"bytes"
	"context"
	"fmt"

	"github.com/custodia-labs/mailvec/internal/core/domain"
	"github.com/custodia-labs/mailvec/internal/core/ports/driven"
)

type fakeStore struct {
	collections map[string]*domain.CollectionInfo
	points      []domain.StoredPoint
	scored      []domain.ScoredPoint
	upserted    []domain.IndexedPoint
	closed      bool
}

func (f *fakeStore) Collections(_ context.Context) ([]string, error) {
	names := make([]string, 0, len(f.collections))
	for name := range f.collections {
		names = append(names, name)
	}
	return names, nil
}

func (f *fakeStore) CollectionInfo(_ context.Context, name string) (*domain.CollectionInfo, error) {
	info, ok := f.collections[name]
	if !ok {
		return nil, fmt.Errorf("collection %s: %w", name, domain.ErrNotFound)
	}
	return info, nil
}

func (f *fakeStore) EnsureCollection(_ context.Context, name string, vectorSize uint64) error {
	if f.collections == nil {
		f.collections = make(map[string]*domain.CollectionInfo)
	}
	if _, ok := f.collections[name]; !ok {
		f.collections[name] = &domain.CollectionInfo{Name: name, VectorSize: vectorSize, Distance: "Cosine"}
	}
	return nil
}

func (f *fakeStore) Upsert(_ context.Context, _ string, points []domain.IndexedPoint) error {
	f.upserted = append(f.upserted, points...)
	return nil
}

func (f *fakeStore) Scroll(_ context.Context, _ string, limit, offset int) ([]domain.StoredPoint, error) {
	if offset >= len(f.points) {
		return nil, nil
	}
	end := min(offset+limit, len(f.points))
	return f.points[offset:end], nil
}

func (f *fakeStore) Search(_ context.Context, _ string, _ []float32, limit int) ([]domain.ScoredPoint, error) {
	if limit > len(f.scored) {
		limit = len(f.scored)
	}
	return f.scored[:limit], nil
}

func (f *fakeStore) Close() error {
	f.closed = true
	return nil
}

type fakeEmbedder struct{ dims int }

func (f *fakeEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	return make([]float32, f.dims), nil
}

func (f *fakeEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	vecs := make([][]float32, len(texts))
	for i := range texts {
		vecs[i] = make([]float32, f.dims)
	}
	return vecs, nil
}

func (f *fakeEmbedder) Dimensions() int   { return f.dims }
func (f *fakeEmbedder) ModelName() string { return "fake" }
func (f *fakeEmbedder) Close() error      { return nil }

type fakeMailSource struct {
	recent    []string
	watermark string
	messages  map[string]*domain.Message
}

func (f *fakeMailSource) RecentMessageIDs(_ context.Context, _ int64) ([]string, error) {
	return f.recent, nil
}

func (f *fakeMailSource) HistoryMessageIDs(_ context.Context, _ string) ([]string, error) {
	return nil, nil
}

func (f *fakeMailSource) Watermark(_ context.Context) (string, error) {
	return f.watermark, nil
}

func (f *fakeMailSource) Message(_ context.Context, id string) (*domain.Message, error) {
	msg, ok := f.messages[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return msg, nil
}

func (f *fakeMailSource) Attachment(_ context.Context, _, _ string) ([]byte, error) {
	return nil, domain.ErrNotFound
}

type fakeCursors struct{ value string }

func (f *fakeCursors) Load() (string, error)       { return f.value, nil }
func (f *fakeCursors) Save(watermark string) error { f.value = watermark; return nil }

// setupTestServices swaps the service factories for fakes and returns a
// cleanup function restoring the originals.
func setupTestServices(store *fakeStore, source *fakeMailSource) func() {
	oldStore := newStore
	oldEmbedder := newEmbedder
	oldSource := newMailSource
	oldCursors := newCursors
	oldConfigPath := configPath

	newStore = func() (driven.VectorStore, error) { return store, nil }
	newEmbedder = func() (driven.EmbeddingService, error) { return &fakeEmbedder{dims: 4}, nil }
	newMailSource = func(_ context.Context) (driven.MailSource, error) { return source, nil }
	newCursors = func() (driven.CursorStore, error) { return &fakeCursors{}, nil }
	configPath = "/nonexistent/mailvec-test-config.toml"

	return func() {
		newStore = oldStore
		newEmbedder = oldEmbedder
		newMailSource = oldSource
		newCursors = oldCursors
		configPath = oldConfigPath
	}
}

// execute runs the root command with args and captures combined output.
func execute(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}
