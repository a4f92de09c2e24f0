package domain

// Chunk is one word-bounded window of a composite document.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// Content is the chunk text, words rejoined with single spaces.
	Content string

	// Position is the ordinal position within the document.
	Position int
}

// IndexedPoint is the persisted unit: one embedded chunk plus the parent
// message's full payload. Identifiers are assigned sequentially within a
// run, not derived from content.
type IndexedPoint struct {
	ID      uint64
	Vector  []float32
	Payload map[string]any
}

// StoredPoint is a point read back from the store without its vector.
type StoredPoint struct {
	ID      uint64
	Payload map[string]any
}

// ScoredPoint is a similarity search hit.
type ScoredPoint struct {
	ID      uint64
	Score   float32
	Payload map[string]any
}

// CollectionInfo describes one vector collection.
type CollectionInfo struct {
	Name        string
	PointsCount uint64
	VectorSize  uint64
	Distance    string
}
