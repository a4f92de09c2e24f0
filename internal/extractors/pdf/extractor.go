// Package pdf extracts plain text from PDF attachments.
package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"

	"github.com/custodia-labs/mailvec/internal/core/domain"
	"github.com/custodia-labs/mailvec/internal/core/ports/driven"
	"github.com/custodia-labs/mailvec/internal/logger"
)

// Ensure Extractor implements the interface.
var _ driven.AttachmentExtractor = (*Extractor)(nil)

const (
	// MaxPages caps how many pages are processed per document.
	MaxPages = 50

	// MaxTextLen caps the accumulated text length in bytes.
	MaxTextLen = 100000

	// TruncationMarker is appended when MaxTextLen is exceeded.
	TruncationMarker = "\n[Content truncated due to size limit]"
)

// Extractor converts PDF bytes to plain text under the page and size caps.
type Extractor struct{}

// New creates a new PDF extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extract parses the document and accumulates per-page text. A page that
// fails to extract is skipped with a warning; a document that fails to parse
// yields a parse-error outcome. Extract never panics.
func (e *Extractor) Extract(filename string, data []byte) (out domain.ExtractOutcome) {
	defer func() {
		if r := recover(); r != nil {
			out = domain.ExtractOutcome{
				Failure: domain.ExtractParseError,
				Detail:  fmt.Sprint(r),
			}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return domain.ExtractOutcome{
			Failure: domain.ExtractParseError,
			Detail:  err.Error(),
		}
	}

	pages := reader.NumPage()

	var text strings.Builder
	for i := 1; i <= pages && i <= MaxPages; i++ {
		pageText, err := extractPage(reader, i)
		if err != nil {
			logger.Warn("could not extract text from page %d of %s: %v", i, filename, err)
			continue
		}
		if pageText != "" {
			text.WriteString(pageText)
			text.WriteString("\n")
		}
		if text.Len() > MaxTextLen {
			return domain.ExtractOutcome{
				Text:    truncate(text.String()),
				Failure: domain.ExtractSizeLimitExceeded,
			}
		}
	}

	out = domain.ExtractOutcome{Text: text.String()}
	if pages > MaxPages {
		out.Failure = domain.ExtractPageLimitExceeded
	}
	return out
}

// truncate cuts accumulated text to at most MaxTextLen bytes, backing off to
// the nearest rune boundary, and appends the truncation marker.
func truncate(text string) string {
	if len(text) <= MaxTextLen {
		return text
	}
	cut := MaxTextLen
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + TruncationMarker
}

// extractPage isolates per-page faults: the underlying library can panic on
// malformed page content.
func extractPage(reader *pdf.Reader, num int) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("page extraction panicked: %v", r)
		}
	}()

	page := reader.Page(num)
	if page.V.IsNull() {
		return "", errors.New("page is null")
	}
	return page.GetPlainText(nil)
}
