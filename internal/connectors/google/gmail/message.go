package gmail

import (
	"encoding/base64"

	"google.golang.org/api/gmail/v1"

	"github.com/custodia-labs/mailvec/internal/core/domain"
)

// ToDomainMessage converts a fully-fetched Gmail message into the domain
// representation, decoding inline part bodies along the way.
func ToDomainMessage(msg *gmail.Message) *domain.Message {
	out := &domain.Message{
		ID:       msg.Id,
		ThreadID: msg.ThreadId,
	}

	if msg.Payload != nil {
		out.Subject = headerValue(msg.Payload.Headers, "Subject")
		out.From = headerValue(msg.Payload.Headers, "From")
		out.To = headerValue(msg.Payload.Headers, "To")
		out.Date = headerValue(msg.Payload.Headers, "Date")
		out.Payload = toDomainPart(msg.Payload)
	}

	return out
}

func headerValue(headers []*gmail.MessagePartHeader, name string) string {
	for _, h := range headers {
		if h.Name == name {
			return h.Value
		}
	}
	return ""
}

func toDomainPart(part *gmail.MessagePart) *domain.MIMEPart {
	out := &domain.MIMEPart{
		MIMEType: part.MimeType,
		Filename: part.Filename,
	}

	if part.Body != nil {
		out.AttachmentID = part.Body.AttachmentId
		if part.Body.Data != "" {
			out.Body = decodeBody(part.Body.Data)
		}
	}

	for _, child := range part.Parts {
		out.Parts = append(out.Parts, toDomainPart(child))
	}

	return out
}

// decodeBody decodes Gmail's URL-safe base64 body data, which may arrive
// with or without padding. Undecodable data degrades to nil.
func decodeBody(data string) []byte {
	if decoded, err := base64.URLEncoding.DecodeString(data); err == nil {
		return decoded
	}
	if decoded, err := base64.RawURLEncoding.DecodeString(data); err == nil {
		return decoded
	}
	return nil
}
