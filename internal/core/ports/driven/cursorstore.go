package driven

// CursorStore persists the sync watermark between runs. The cursor value
// itself is threaded through the sync tracker explicitly; load and save
// happen at the orchestration boundary.
type CursorStore interface {
	// Load returns the stored watermark, or "" when none exists yet.
	Load() (string, error)

	// Save overwrites the stored watermark wholesale.
	Save(watermark string) error
}
