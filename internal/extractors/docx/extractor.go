// Package docx extracts plain text from DOCX attachments.
//
// A DOCX file is a ZIP archive; paragraph text lives in word/document.xml.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"github.com/custodia-labs/mailvec/internal/core/domain"
	"github.com/custodia-labs/mailvec/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.AttachmentExtractor = (*Extractor)(nil)

// Extractor converts DOCX bytes to plain text, one paragraph per line.
type Extractor struct{}

// New creates a new DOCX extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extract opens the archive and joins paragraph texts with newlines. Any
// failure yields a parse-error outcome; Extract never returns an error.
func (e *Extractor) Extract(_ string, data []byte) domain.ExtractOutcome {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return domain.ExtractOutcome{
			Failure: domain.ExtractParseError,
			Detail:  err.Error(),
		}
	}

	text, err := documentText(reader)
	if err != nil {
		return domain.ExtractOutcome{
			Failure: domain.ExtractParseError,
			Detail:  err.Error(),
		}
	}

	return domain.ExtractOutcome{Text: text}
}

// documentText extracts paragraph text from word/document.xml.
func documentText(reader *zip.Reader) (string, error) {
	for _, file := range reader.File {
		if file.Name != "word/document.xml" {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return "", err
		}

		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", err
		}

		return parseDocumentXML(content)
	}
	return "", errors.New("word/document.xml not found")
}

// documentXML represents the structure of word/document.xml.
type documentXML struct {
	Body struct {
		Paragraphs []paragraph `xml:"p"`
	} `xml:"body"`
}

type paragraph struct {
	Runs []run `xml:"r"`
}

type run struct {
	Text []textElement `xml:"t"`
}

type textElement struct {
	Content string `xml:",chardata"`
}

// parseDocumentXML joins paragraph texts with newlines.
func parseDocumentXML(content []byte) (string, error) {
	var doc documentXML
	if err := xml.Unmarshal(content, &doc); err != nil {
		return "", err
	}

	var result strings.Builder
	for i, para := range doc.Body.Paragraphs {
		if i > 0 {
			result.WriteString("\n")
		}
		for _, r := range para.Runs {
			for _, t := range r.Text {
				result.WriteString(t.Content)
			}
		}
	}

	return result.String(), nil
}
