package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/mailvec/internal/core/domain"
	"github.com/custodia-labs/mailvec/internal/core/ports/driven"
	"github.com/custodia-labs/mailvec/internal/logger"
	"github.com/custodia-labs/mailvec/internal/normalisers/reply"
)

// attachmentMIMETypes are the content types routed to the attachment
// extractor when an attachment reference is present.
var attachmentMIMETypes = map[string]bool{
	"application/pdf": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

// Composer flattens a message's MIME tree into one composite text document:
// header block, normalised body, extracted attachment texts.
type Composer struct {
	source    driven.MailSource
	extractor driven.AttachmentExtractor
}

// NewComposer creates a document composer.
func NewComposer(source driven.MailSource, extractor driven.AttachmentExtractor) *Composer {
	return &Composer{
		source:    source,
		extractor: extractor,
	}
}

// Compose walks the message's MIME tree depth-first, accumulating body text
// from text/plain parts and extracting supported attachments. The walk uses
// an explicit stack so adversarial nesting cannot exhaust the call stack.
func (c *Composer) Compose(ctx context.Context, msg *domain.Message) (*domain.CompositeDocument, error) {
	var body strings.Builder
	var attachments []string

	switch {
	case msg.Payload == nil:
		// Nothing to walk; headers alone still form a document.
	case len(msg.Payload.Parts) == 0:
		// Single-part message: the payload's own body is the text.
		body.Write(msg.Payload.Body)
	default:
		stack := pushReversed(nil, msg.Payload.Parts)
		for len(stack) > 0 {
			part := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			switch {
			case part.MIMEType == "text/plain":
				body.Write(part.Body)
			case attachmentMIMETypes[part.MIMEType] && part.AttachmentID != "":
				text, err := c.extractAttachment(ctx, msg.ID, part)
				if err != nil {
					logger.Warn("could not fetch attachment %s of message %s: %v",
						part.AttachmentID, msg.ID, err)
					break
				}
				attachments = append(attachments, text)
			}

			// Nested parts are visited regardless of the parent's type.
			stack = pushReversed(stack, part.Parts)
		}
	}

	normalised := reply.Normalise(body.String())

	var text strings.Builder
	fmt.Fprintf(&text, "Subject: %s\nFrom: %s\nTo: %s\nDate: %s\n\n%s",
		msg.Subject, msg.From, msg.To, msg.Date, normalised)

	nonEmpty := make([]string, 0, len(attachments))
	for _, a := range attachments {
		if a != "" {
			nonEmpty = append(nonEmpty, a)
		}
	}
	if len(nonEmpty) > 0 {
		text.WriteString("\n\nAttachments:\n")
		text.WriteString(strings.Join(nonEmpty, "\n"))
	}

	return &domain.CompositeDocument{
		MessageID: msg.ID,
		ThreadID:  msg.ThreadID,
		Subject:   msg.Subject,
		Sender:    msg.From,
		To:        msg.To,
		Date:      msg.Date,
		Text:      text.String(),
	}, nil
}

// extractAttachment fetches the payload and renders the extraction outcome:
// parse failures become a short diagnostic placeholder, partial text from
// limit failures is kept as-is.
func (c *Composer) extractAttachment(ctx context.Context, messageID string, part *domain.MIMEPart) (string, error) {
	data, err := c.source.Attachment(ctx, messageID, part.AttachmentID)
	if err != nil {
		return "", err
	}

	outcome := c.extractor.Extract(part.Filename, data)
	if outcome.Failure != domain.ExtractOK {
		logger.Warn("attachment %s of message %s degraded: %s",
			part.Filename, messageID, outcome.Failure)
	}
	if outcome.Failure == domain.ExtractParseError {
		return placeholder(part.Filename, outcome.Detail), nil
	}
	return outcome.Text, nil
}

// placeholder renders the diagnostic text stored in place of an attachment
// that could not be parsed. The reason is capped at 100 characters.
func placeholder(filename, detail string) string {
	kind := "attachment"
	lower := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(lower, ".pdf"):
		kind = "PDF"
	case strings.HasSuffix(lower, ".docx"):
		kind = "DOCX"
	}
	if len(detail) > 100 {
		detail = detail[:100]
	}
	return fmt.Sprintf("[%s processing failed: %s]", kind, detail)
}

// pushReversed appends parts in reverse so the stack pops them in document
// order.
func pushReversed(stack []*domain.MIMEPart, parts []*domain.MIMEPart) []*domain.MIMEPart {
	for i := len(parts) - 1; i >= 0; i-- {
		stack = append(stack, parts[i])
	}
	return stack
}
