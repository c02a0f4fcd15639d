// Package reconcile deduplicates roster snapshots, indexes them, and computes
// the ordered difference between an old and a new snapshot.
package reconcile

import (
	"access-diff/internal/domain"
)

// Dedupe collapses records sharing an entitlement key into one, preserving
// first-seen order. Identity fields are frozen at first sight; a blank name
// is filled from the first later duplicate that has one. Records without a
// valid key pass through untouched and never collide.
func Dedupe(in []domain.EntitlementRecord) []domain.EntitlementRecord {
	out := make([]domain.EntitlementRecord, 0, len(in))
	pos := make(map[string]int, len(in))

	for _, r := range in {
		key := r.Key()
		if key == "" {
			out = append(out, r)
			continue
		}
		i, exists := pos[key]
		if !exists {
			pos[key] = len(out)
			out = append(out, r)
			continue
		}
		if domain.IsBlank(out[i].Name) && !domain.IsBlank(r.Name) {
			out[i].Name = r.Name
		}
	}
	return out
}
