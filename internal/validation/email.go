package validation

import (
	"regexp"
	"strings"
)

// Deliberately loose local@domain.tld shape; the API promises a syntactic
// check only, not RFC 5322 compliance.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsValidEmail reports whether the value looks like an email address
// after trimming surrounding whitespace.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}

// NormalizeEmail canonicalizes an address for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
