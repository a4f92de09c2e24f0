package driven

import "github.com/custodia-labs/mailvec/internal/core/domain"

// AttachmentExtractor converts attachment bytes into plain text.
// Extract never returns an error and never panics: all failure modes are
// reported in the outcome so the caller can degrade gracefully. This is the
// pipeline's defense against adversarial or oversized attachments.
type AttachmentExtractor interface {
	Extract(filename string, data []byte) domain.ExtractOutcome
}
