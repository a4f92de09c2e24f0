package driven

import (
	"context"

	"github.com/custodia-labs/mailvec/internal/core/domain"
)

// MailSource provides read access to a single mailbox. All calls are
// blocking network operations on the caller's goroutine.
type MailSource interface {
	// RecentMessageIDs lists the identifiers of the newest max messages.
	RecentMessageIDs(ctx context.Context, max int64) ([]string, error)

	// HistoryMessageIDs lists identifiers referenced by "message added"
	// change-log events recorded after the given watermark. Zero results is
	// a valid outcome and must be distinguished from an error (an expired
	// watermark is a common, expected error).
	HistoryMessageIDs(ctx context.Context, watermark string) ([]string, error)

	// Watermark returns the mailbox's current change-log high-water mark.
	Watermark(ctx context.Context) (string, error)

	// Message fetches one full message including its MIME tree.
	Message(ctx context.Context, id string) (*domain.Message, error)

	// Attachment fetches the decoded bytes of one attachment payload.
	Attachment(ctx context.Context, messageID, attachmentID string) ([]byte, error)
}
