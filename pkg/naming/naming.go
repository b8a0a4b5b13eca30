package naming

import (
	"fmt"
	"strings"
)

// maxSanitizedLength is the hard cap on the sanitized prompt portion of a
// generated filename, applied before the seed suffix
const maxSanitizedLength = 50

// Sanitize converts a prompt into a filesystem-safe token. Every character
// that is not an ASCII letter or digit is dropped, except whitespace which
// becomes an underscore. The result is truncated to 50 characters and only
// ever contains [A-Za-z0-9_].
func Sanitize(prompt string) string {
	sanitized := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == ' ', r == '\t', r == '\n', r == '\r', r == '\v', r == '\f':
			return '_'
		default:
			return -1
		}
	}, prompt)

	if len(sanitized) > maxSanitizedLength {
		sanitized = sanitized[:maxSanitizedLength]
	}
	return sanitized
}

// GeneratedFilename derives the output name for one generated image from
// its 1-based prompt index, the prompt text and the seed used
func GeneratedFilename(index int, prompt string, seed int) string {
	return fmt.Sprintf("%d_%s_seed_%d.png", index, Sanitize(prompt), seed)
}

// CombinedFilename derives the output name for a comparison grid from the
// source image's filename
func CombinedFilename(filename string) string {
	return "combined_" + filename
}
