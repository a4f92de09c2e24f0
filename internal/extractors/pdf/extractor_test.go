package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/mailvec/internal/core/domain"
)

// buildPDF assembles a minimal uncompressed PDF with one text content stream
// per page, with a classic xref table.
func buildPDF(pageTexts []string) []byte {
	var buf bytes.Buffer
	var offsets []int
	writeObj := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}

	buf.WriteString("%PDF-1.4\n")
	writeObj("<< /Type /Catalog /Pages 2 0 R >>")

	kids := make([]string, len(pageTexts))
	for i := range pageTexts {
		kids[i] = fmt.Sprintf("%d 0 R", 3+2*i)
	}
	writeObj(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>",
		strings.Join(kids, " "), len(pageTexts)))

	for i, text := range pageTexts {
		writeObj(fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents %d 0 R >>",
			4+2*i))
		content := fmt.Sprintf("BT (%s) Tj ET", text)
		writeObj(fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream",
			len(content), content))
	}

	xrefOffset := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(offsets)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(offsets)+1, xrefOffset)
	return buf.Bytes()
}

func TestExtract_CorruptDocument(t *testing.T) {
	e := New()

	out := e.Extract("broken.pdf", []byte("this is not a pdf"))

	assert.Equal(t, domain.ExtractParseError, out.Failure)
	assert.Empty(t, out.Text)
	assert.NotEmpty(t, out.Detail)
}

func TestExtract_EmptyInput(t *testing.T) {
	e := New()

	out := e.Extract("empty.pdf", nil)

	// No panic, no partial garbage: degraded to a parse error.
	assert.Equal(t, domain.ExtractParseError, out.Failure)
}

func TestExtract_SmallDocument(t *testing.T) {
	e := New()
	data := buildPDF([]string{"hello from page one", "and page two"})

	out := e.Extract("small.pdf", data)

	assert.Equal(t, domain.ExtractOK, out.Failure)
	assert.Contains(t, out.Text, "hello from page one")
	assert.Contains(t, out.Text, "and page two")
}

func TestExtract_PageCapStopsProcessing(t *testing.T) {
	e := New()
	pages := make([]string, MaxPages+10)
	for i := range pages {
		pages[i] = "page content"
	}
	data := buildPDF(pages)

	out := e.Extract("big.pdf", data)

	assert.Equal(t, domain.ExtractPageLimitExceeded, out.Failure)
	// Pages beyond the cap are never extracted.
	assert.Equal(t, MaxPages, strings.Count(out.Text, "page content"))
}

func TestExtract_SizeCapTruncatesWithMarker(t *testing.T) {
	e := New()
	page := strings.Repeat("a", 60000)
	data := buildPDF([]string{page, page})

	out := e.Extract("dense.pdf", data)

	assert.Equal(t, domain.ExtractSizeLimitExceeded, out.Failure)
	require.True(t, strings.HasSuffix(out.Text, TruncationMarker))
	assert.Len(t, out.Text, MaxTextLen+len(TruncationMarker))
}

func TestTruncate_UnderLimit(t *testing.T) {
	text := "short text"

	assert.Equal(t, text, truncate(text))
}

func TestTruncate_OverLimit(t *testing.T) {
	text := strings.Repeat("a", MaxTextLen+500)

	got := truncate(text)

	require.True(t, strings.HasSuffix(got, TruncationMarker))
	assert.Len(t, got, MaxTextLen+len(TruncationMarker))
}

func TestTruncate_RuneBoundary(t *testing.T) {
	// Fill so that the byte cap lands inside a multi-byte rune.
	text := strings.Repeat("a", MaxTextLen-1) + strings.Repeat("é", 300)

	got := truncate(text)

	assert.True(t, utf8.ValidString(got))
	require.True(t, strings.HasSuffix(got, TruncationMarker))
	cut := strings.TrimSuffix(got, TruncationMarker)
	assert.Equal(t, MaxTextLen-1, len(cut))
}

func TestLimits(t *testing.T) {
	// The caps are the extractor's defining property; pin them.
	assert.Equal(t, 50, MaxPages)
	assert.Equal(t, 100000, MaxTextLen)
}
