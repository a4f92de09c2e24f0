package services

import (
	"context"

	"github.com/custodia-labs/mailvec/internal/core/ports/driven"
	"github.com/custodia-labs/mailvec/internal/logger"
)

// DefaultMaxResults bounds the full-mailbox fetch used when no usable
// cursor exists.
const DefaultMaxResults int64 = 50

// Tracker plans which messages an ingestion run should process. With a
// valid cursor it asks the mailbox for history events recorded after it;
// without one, or when the cursor has expired server-side, it falls back
// to listing the newest messages.
type Tracker struct {
	source     driven.MailSource
	maxResults int64
}

// NewTracker creates a sync planner. maxResults caps the fallback listing;
// non-positive values use DefaultMaxResults.
func NewTracker(source driven.MailSource, maxResults int64) *Tracker {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	return &Tracker{source: source, maxResults: maxResults}
}

// Plan returns the message IDs to process and the watermark the run should
// persist. An empty cursor or a failed history listing triggers the
// fallback; an empty history result does not, since a quiet mailbox is a
// normal outcome.
func (t *Tracker) Plan(ctx context.Context, cursor string) ([]string, string, error) {
	var ids []string
	fromHistory := false

	if cursor != "" {
		historyIDs, err := t.source.HistoryMessageIDs(ctx, cursor)
		if err != nil {
			logger.Warn("history listing from %q failed, falling back to full fetch: %v", cursor, err)
		} else {
			ids = historyIDs
			fromHistory = true
		}
	}

	if !fromHistory {
		recent, err := t.source.RecentMessageIDs(ctx, t.maxResults)
		if err != nil {
			return nil, "", err
		}
		ids = recent
	}

	watermark, err := t.source.Watermark(ctx)
	if err != nil {
		return nil, "", err
	}

	logger.Debug("planned %d messages (history=%v), next watermark %s", len(ids), fromHistory, watermark)
	return ids, watermark, nil
}
