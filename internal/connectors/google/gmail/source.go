package gmail

import (
	"context"
	"encoding/base64"
	"fmt"
	"strconv"

	"google.golang.org/api/gmail/v1"

	"github.com/custodia-labs/mailvec/internal/connectors/google"
	"github.com/custodia-labs/mailvec/internal/core/domain"
	"github.com/custodia-labs/mailvec/internal/core/ports/driven"
	"github.com/custodia-labs/mailvec/internal/logger"
)

// Ensure Source implements the interface.
var _ driven.MailSource = (*Source)(nil)

// Source implements driven.MailSource over the Gmail REST API. All calls
// are paced through a shared rate limiter.
type Source struct {
	svc     *gmail.Service
	limiter *google.RateLimiter
	userID  string
}

// NewSource creates a Gmail mail source.
func NewSource(svc *gmail.Service, cfg Config) *Source {
	if cfg.UserID == "" {
		cfg.UserID = DefaultUserID
	}
	return &Source{
		svc:     svc,
		limiter: google.NewRateLimiter(),
		userID:  cfg.UserID,
	}
}

// wrap maps an API error to the connector taxonomy and records backoff when
// the response was a 429.
func (s *Source) wrap(err error) error {
	if google.IsRateLimited(err) {
		s.limiter.RecordRateLimitError(0)
	}
	return google.WrapError(err)
}

// RecentMessageIDs lists the identifiers of the newest max messages.
func (s *Source) RecentMessageIDs(ctx context.Context, max int64) ([]string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := s.svc.Users.Messages.List(s.userID).MaxResults(max).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", s.wrap(err))
	}

	ids := make([]string, 0, len(resp.Messages))
	for _, m := range resp.Messages {
		ids = append(ids, m.Id)
	}
	return ids, nil
}

// HistoryMessageIDs lists identifiers referenced by messageAdded history
// events recorded after the given watermark. An empty result is valid; an
// expired watermark surfaces as an error.
func (s *Source) HistoryMessageIDs(ctx context.Context, watermark string) ([]string, error) {
	startID, err := strconv.ParseUint(watermark, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", google.ErrHistoryIDExpired, watermark)
	}

	var ids []string
	seen := make(map[string]bool)
	pageToken := ""

	for {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		call := s.svc.Users.History.List(s.userID).
			StartHistoryId(startID).
			HistoryTypes("messageAdded").
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		resp, err := call.Do()
		if err != nil {
			if google.IsHistoryIDExpired(err) {
				return nil, fmt.Errorf("%w: start %d", google.ErrHistoryIDExpired, startID)
			}
			return nil, fmt.Errorf("list history: %w", s.wrap(err))
		}

		for _, h := range resp.History {
			for _, added := range h.MessagesAdded {
				if added.Message == nil || seen[added.Message.Id] {
					continue
				}
				seen[added.Message.Id] = true
				ids = append(ids, added.Message.Id)
			}
		}

		if resp.NextPageToken == "" {
			return ids, nil
		}
		pageToken = resp.NextPageToken
	}
}

// Watermark returns the mailbox's current history ID.
func (s *Source) Watermark(ctx context.Context) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", err
	}

	profile, err := s.svc.Users.GetProfile(s.userID).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("get profile: %w", s.wrap(err))
	}
	return strconv.FormatUint(profile.HistoryId, 10), nil
}

// Message fetches one full message including its MIME tree.
func (s *Source) Message(ctx context.Context, id string) (*domain.Message, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	logger.Debug("fetching full message %s", id)
	msg, err := s.svc.Users.Messages.Get(s.userID, id).Format("full").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("get message %s: %w", id, s.wrap(err))
	}
	return ToDomainMessage(msg), nil
}

// Attachment fetches and decodes one attachment payload.
func (s *Source) Attachment(ctx context.Context, messageID, attachmentID string) ([]byte, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	logger.Debug("fetching attachment %s of message %s", attachmentID, messageID)
	att, err := s.svc.Users.Messages.Attachments.Get(s.userID, messageID, attachmentID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("get attachment %s: %w", attachmentID, s.wrap(err))
	}

	data, err := base64.URLEncoding.DecodeString(att.Data)
	if err != nil {
		data, err = base64.RawURLEncoding.DecodeString(att.Data)
		if err != nil {
			return nil, fmt.Errorf("decode attachment %s: %w", attachmentID, err)
		}
	}
	return data, nil
}
