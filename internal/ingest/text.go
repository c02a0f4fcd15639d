package ingest

import "strings"

// NormalizeText trims s and collapses internal whitespace runs to a single
// space. Case is preserved.
func NormalizeText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// normalizeHeader lowercases s and strips everything except ASCII letters
// and digits, so "User ID", "user_id" and "USERID" compare equal.
func normalizeHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
