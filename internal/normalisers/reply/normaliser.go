// Package reply strips quoted reply fragments and trailing signatures from
// plain-text email bodies.
package reply

import (
	"regexp"
	"strings"
)

// signatureMarkers are scanned in order; the first match truncates the body
// from that point onward. Each is a literal substring, not a pattern.
var signatureMarkers = []string{"\n--", "\nThanks", "\nBest regards", "\nSent from my"}

// attributionPattern matches reply attribution lines such as
// "On Mon, 2 Jan 2023 at 10:00, Alice <alice@example.com> wrote:".
var attributionPattern = regexp.MustCompile(`^On\b.*wrote:\s*$`)

// Normalise removes quoted reply fragments, truncates at the first signature
// marker, and trims surrounding whitespace. Malformed input yields
// best-effort output; Normalise never fails.
func Normalise(body string) string {
	cleaned := stripQuoted(body)

	for _, marker := range signatureMarkers {
		if idx := strings.Index(cleaned, marker); idx >= 0 {
			cleaned = cleaned[:idx]
		}
	}

	return strings.TrimSpace(cleaned)
}

// stripQuoted splits the body into quoted and non-quoted fragments and
// rejoins only the non-quoted ones, preserving original order and line
// content. A body without quoted fragments passes through unchanged.
func stripQuoted(body string) string {
	lines := strings.Split(body, "\n")

	kept := make([]string, 0, len(lines))
	for i, line := range lines {
		if isQuotedLine(line) {
			continue
		}
		// An attribution line directly introducing a quote belongs to the
		// quoted fragment.
		if attributionPattern.MatchString(strings.TrimSpace(line)) &&
			i+1 < len(lines) && isQuotedLine(lines[i+1]) {
			continue
		}
		kept = append(kept, line)
	}

	return strings.Join(kept, "\n")
}

func isQuotedLine(line string) bool {
	return strings.HasPrefix(strings.TrimLeft(line, " \t"), ">")
}
