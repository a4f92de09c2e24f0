package domain

// Message is one mailbox message as fetched from the mail source.
// It is immutable once fetched within a run.
type Message struct {
	// ID is the mail source's message identifier, unique per mailbox.
	ID string

	// ThreadID groups messages belonging to one conversation.
	ThreadID string

	// Subject, From, To and Date are the raw header values, possibly empty.
	Subject string
	From    string
	To      string
	Date    string

	// Payload is the root of the MIME part tree.
	Payload *MIMEPart
}

// MIMEPart is one node in a message's MIME tree. Parts may nest to
// arbitrary depth.
type MIMEPart struct {
	// MIMEType is the declared content type (e.g. "text/plain").
	MIMEType string

	// Filename is the attachment filename, when the part is an attachment.
	Filename string

	// Body is the decoded inline body data, when present.
	Body []byte

	// AttachmentID references a payload that must be fetched separately
	// from the mail source.
	AttachmentID string

	// Parts are the nested child parts.
	Parts []*MIMEPart
}

// CompositeDocument is the flattened textual representation of one message:
// header summary, normalised body and extracted attachment texts. It exists
// only transiently during ingestion.
type CompositeDocument struct {
	MessageID string
	ThreadID  string
	Subject   string
	Sender    string
	To        string
	Date      string

	// Text is the full composite text, including the header block and any
	// attachment section.
	Text string
}

// Payload returns the stored point payload for this document. Every chunk
// of one message carries this same payload in full.
func (d *CompositeDocument) Payload() map[string]any {
	return map[string]any{
		"id":        d.MessageID,
		"thread_id": d.ThreadID,
		"subject":   d.Subject,
		"sender":    d.Sender,
		"to":        d.To,
		"date":      d.Date,
		"text":      d.Text,
	}
}
