package validation

import (
	"strings"
)

const MaxFilenameLength = 50

// CleanFilename trims the candidate name and returns it with a validity
// flag. Whitespace-only and over-long names are rejected; the stored
// metadata always receives the trimmed form.
func CleanFilename(filename string) (string, bool) {
	trimmed := strings.TrimSpace(filename)
	if trimmed == "" || len([]rune(trimmed)) > MaxFilenameLength {
		return "", false
	}
	return trimmed, true
}
