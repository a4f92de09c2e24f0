// Package chunker provides word-bounded text chunking.
package chunker

import (
	"iter"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/mailvec/internal/core/domain"
)

// DefaultChunkSize is the default number of words per chunk for ingestion.
const DefaultChunkSize = 200

// Split returns a lazy, restartable sequence of chunks: consecutive windows
// of exactly size whitespace-delimited words (the final window may be
// shorter), each rejoined with single spaces. Empty input yields an empty
// sequence; a non-positive size yields an empty sequence as well.
func Split(text string, size int) iter.Seq[string] {
	return func(yield func(string) bool) {
		if size <= 0 {
			return
		}
		words := strings.Fields(text)
		for start := 0; start < len(words); start += size {
			end := min(start+size, len(words))
			if !yield(strings.Join(words[start:end], " ")) {
				return
			}
		}
	}
}

// Processor materialises chunks for a composite document.
type Processor struct {
	chunkSize int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the chunk size in words.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		if size > 0 {
			p.chunkSize = size
		}
	}
}

// New creates a new chunker processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{
		chunkSize: DefaultChunkSize,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ChunkSize returns the configured words-per-chunk.
func (p *Processor) ChunkSize() int {
	return p.chunkSize
}

// Process splits the document text into ordered chunks.
func (p *Processor) Process(doc *domain.CompositeDocument) []domain.Chunk {
	if doc == nil || doc.Text == "" {
		return nil
	}

	var chunks []domain.Chunk
	position := 0
	for content := range Split(doc.Text, p.chunkSize) {
		chunks = append(chunks, domain.Chunk{
			ID:       uuid.New().String(),
			Content:  content,
			Position: position,
		})
		position++
	}
	return chunks
}
