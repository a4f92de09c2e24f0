package domain

// ExtractFailure classifies how attachment extraction degraded.
type ExtractFailure int

const (
	// ExtractOK means extraction completed without hitting a limit.
	ExtractOK ExtractFailure = iota

	// ExtractParseError means the document could not be parsed at all.
	ExtractParseError

	// ExtractPageLimitExceeded means pages beyond the cap were skipped.
	ExtractPageLimitExceeded

	// ExtractSizeLimitExceeded means the text was truncated at the byte cap.
	ExtractSizeLimitExceeded
)

// String returns the failure name for logs.
func (f ExtractFailure) String() string {
	switch f {
	case ExtractOK:
		return "ok"
	case ExtractParseError:
		return "parse_error"
	case ExtractPageLimitExceeded:
		return "page_limit_exceeded"
	case ExtractSizeLimitExceeded:
		return "size_limit_exceeded"
	default:
		return "unknown"
	}
}

// ExtractOutcome carries extracted text plus how extraction degraded, if it
// did. Extraction never fails outright; the caller decides whether to render
// the partial text or a placeholder.
type ExtractOutcome struct {
	// Text is the extracted text. For limit failures it holds the partial
	// text up to the cap; for parse errors it is empty.
	Text string

	// Failure records how extraction degraded.
	Failure ExtractFailure

	// Detail is a human-readable reason, set for parse errors.
	Detail string
}
