// Package gmail implements the MailSource port over the Gmail REST API.
package gmail

// DefaultUserID addresses the authenticated mailbox.
const DefaultUserID = "me"

// Config holds Gmail source configuration.
type Config struct {
	// UserID is the mailbox to address (default "me").
	UserID string
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{UserID: DefaultUserID}
}
