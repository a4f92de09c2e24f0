package extractors

import (
	"strings"

	"github.com/custodia-labs/mailvec/internal/core/domain"
	"github.com/custodia-labs/mailvec/internal/core/ports/driven"
	"github.com/custodia-labs/mailvec/internal/extractors/docx"
	"github.com/custodia-labs/mailvec/internal/extractors/pdf"
)

// Ensure Extractor implements the interface.
var _ driven.AttachmentExtractor = (*Extractor)(nil)

// Extractor dispatches attachment bytes to a format-specific extractor by
// filename extension (case-insensitive suffix match).
type Extractor struct {
	pdf  driven.AttachmentExtractor
	docx driven.AttachmentExtractor
}

// New creates an extractor covering the supported attachment kinds.
func New() *Extractor {
	return &Extractor{
		pdf:  pdf.New(),
		docx: docx.New(),
	}
}

// Extract converts attachment bytes into plain text. Unknown extensions
// return an empty outcome.
func (e *Extractor) Extract(filename string, data []byte) domain.ExtractOutcome {
	name := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(name, ".pdf"):
		return e.pdf.Extract(filename, data)
	case strings.HasSuffix(name, ".docx"):
		return e.docx.Extract(filename, data)
	}
	return domain.ExtractOutcome{}
}
