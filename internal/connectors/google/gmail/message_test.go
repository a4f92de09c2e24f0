package gmail

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/gmail/v1"
)

func TestToDomainMessage_Headers(t *testing.T) {
	msg := &gmail.Message{
		Id:       "m1",
		ThreadId: "t1",
		Payload: &gmail.MessagePart{
			MimeType: "text/plain",
			Headers: []*gmail.MessagePartHeader{
				{Name: "Subject", Value: "Quarterly report"},
				{Name: "From", Value: "Alice <alice@example.com>"},
				{Name: "To", Value: "bob@example.com"},
				{Name: "Date", Value: "Mon, 2 Jan 2023 10:00:00 +0000"},
			},
			Body: &gmail.MessagePartBody{
				Data: base64.URLEncoding.EncodeToString([]byte("hello")),
			},
		},
	}

	got := ToDomainMessage(msg)

	assert.Equal(t, "m1", got.ID)
	assert.Equal(t, "t1", got.ThreadID)
	assert.Equal(t, "Quarterly report", got.Subject)
	assert.Equal(t, "Alice <alice@example.com>", got.From)
	assert.Equal(t, "bob@example.com", got.To)
	require.NotNil(t, got.Payload)
	assert.Equal(t, []byte("hello"), got.Payload.Body)
}

func TestToDomainMessage_MissingHeaders(t *testing.T) {
	msg := &gmail.Message{Id: "m2", Payload: &gmail.MessagePart{}}

	got := ToDomainMessage(msg)

	assert.Empty(t, got.Subject)
	assert.Empty(t, got.From)
}

func TestToDomainMessage_NestedParts(t *testing.T) {
	msg := &gmail.Message{
		Id: "m3",
		Payload: &gmail.MessagePart{
			MimeType: "multipart/mixed",
			Parts: []*gmail.MessagePart{
				{
					MimeType: "multipart/alternative",
					Parts: []*gmail.MessagePart{
						{MimeType: "text/plain", Body: &gmail.MessagePartBody{
							Data: base64.RawURLEncoding.EncodeToString([]byte("body")),
						}},
						{MimeType: "text/html"},
					},
				},
				{
					MimeType: "application/pdf",
					Filename: "report.pdf",
					Body:     &gmail.MessagePartBody{AttachmentId: "att-1"},
				},
			},
		},
	}

	got := ToDomainMessage(msg)

	require.NotNil(t, got.Payload)
	require.Len(t, got.Payload.Parts, 2)

	alt := got.Payload.Parts[0]
	require.Len(t, alt.Parts, 2)
	assert.Equal(t, []byte("body"), alt.Parts[0].Body)

	att := got.Payload.Parts[1]
	assert.Equal(t, "report.pdf", att.Filename)
	assert.Equal(t, "att-1", att.AttachmentID)
}

func TestDecodeBody_PaddingVariants(t *testing.T) {
	padded := base64.URLEncoding.EncodeToString([]byte("abcde"))
	raw := base64.RawURLEncoding.EncodeToString([]byte("abcde"))

	assert.Equal(t, []byte("abcde"), decodeBody(padded))
	assert.Equal(t, []byte("abcde"), decodeBody(raw))
	assert.Nil(t, decodeBody("%%not-base64%%"))
}
