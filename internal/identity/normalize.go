package identity

import "strings"

// NormalizeEmail performs case-insensitive canonicalization. Uniqueness and
// lookups always run on the normalized form.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
