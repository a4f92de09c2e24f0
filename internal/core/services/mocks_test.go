package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/mailvec/internal/core/domain"
)

type mockMailSource struct {
	recent       []string
	recentErr    error
	history      []string
	historyErr   error
	watermark    string
	watermarkErr error
	messages     map[string]*domain.Message
	attachments  map[string][]byte

	historyCalls int
	recentCalls  int
}

func (m *mockMailSource) RecentMessageIDs(_ context.Context, _ int64) ([]string, error) {
	m.recentCalls++
	return m.recent, m.recentErr
}

func (m *mockMailSource) HistoryMessageIDs(_ context.Context, _ string) ([]string, error) {
	m.historyCalls++
	return m.history, m.historyErr
}

func (m *mockMailSource) Watermark(_ context.Context) (string, error) {
	return m.watermark, m.watermarkErr
}

func (m *mockMailSource) Message(_ context.Context, id string) (*domain.Message, error) {
	msg, ok := m.messages[id]
	if !ok {
		return nil, fmt.Errorf("message %s: %w", id, domain.ErrNotFound)
	}
	return msg, nil
}

func (m *mockMailSource) Attachment(_ context.Context, _, attachmentID string) ([]byte, error) {
	data, ok := m.attachments[attachmentID]
	if !ok {
		return nil, fmt.Errorf("attachment %s: %w", attachmentID, domain.ErrNotFound)
	}
	return data, nil
}

type stubExtractor struct {
	outcomes map[string]domain.ExtractOutcome
}

func (s *stubExtractor) Extract(filename string, _ []byte) domain.ExtractOutcome {
	if o, ok := s.outcomes[filename]; ok {
		return o
	}
	return domain.ExtractOutcome{}
}

type mockEmbedder struct {
	dims     int
	embedErr error
}

func (m *mockEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	return make([]float32, m.dims), nil
}

func (m *mockEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	vectors := make([][]float32, len(texts))
	for i := range texts {
		vectors[i] = make([]float32, m.dims)
	}
	return vectors, nil
}

func (m *mockEmbedder) Dimensions() int   { return m.dims }
func (m *mockEmbedder) ModelName() string { return "mock" }
func (m *mockEmbedder) Close() error      { return nil }

type mockStore struct {
	collections map[string]*domain.CollectionInfo
	points      []domain.StoredPoint
	scored      []domain.ScoredPoint
	upserted    map[string][]domain.IndexedPoint
	scrollErr   error
}

func (m *mockStore) Collections(_ context.Context) ([]string, error) {
	names := make([]string, 0, len(m.collections))
	for name := range m.collections {
		names = append(names, name)
	}
	return names, nil
}

func (m *mockStore) CollectionInfo(_ context.Context, name string) (*domain.CollectionInfo, error) {
	info, ok := m.collections[name]
	if !ok {
		return nil, fmt.Errorf("collection %s: %w", name, domain.ErrNotFound)
	}
	return info, nil
}

func (m *mockStore) EnsureCollection(_ context.Context, name string, vectorSize uint64) error {
	if m.collections == nil {
		m.collections = make(map[string]*domain.CollectionInfo)
	}
	if _, ok := m.collections[name]; !ok {
		m.collections[name] = &domain.CollectionInfo{
			Name:       name,
			VectorSize: vectorSize,
			Distance:   "Cosine",
		}
	}
	return nil
}

func (m *mockStore) Upsert(_ context.Context, name string, points []domain.IndexedPoint) error {
	if m.upserted == nil {
		m.upserted = make(map[string][]domain.IndexedPoint)
	}
	m.upserted[name] = append(m.upserted[name], points...)
	return nil
}

func (m *mockStore) Scroll(_ context.Context, _ string, limit, offset int) ([]domain.StoredPoint, error) {
	if m.scrollErr != nil {
		return nil, m.scrollErr
	}
	if offset >= len(m.points) {
		return nil, nil
	}
	end := offset + limit
	if end > len(m.points) {
		end = len(m.points)
	}
	return m.points[offset:end], nil
}

func (m *mockStore) Search(_ context.Context, _ string, _ []float32, limit int) ([]domain.ScoredPoint, error) {
	if limit > len(m.scored) {
		limit = len(m.scored)
	}
	return m.scored[:limit], nil
}

func (m *mockStore) Close() error { return nil }

type memoryCursor struct {
	value   string
	loadErr error
	saveErr error
	saves   []string
}

func (m *memoryCursor) Load() (string, error) {
	return m.value, m.loadErr
}

func (m *memoryCursor) Save(watermark string) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.value = watermark
	m.saves = append(m.saves, watermark)
	return nil
}
