package reconcile

import (
	"access-diff/internal/domain"
)

// Snapshot indexes one deduplicated record set. Each snapshot owns its maps;
// nothing is shared between the old and new side.
type Snapshot struct {
	// Users maps the trimmed, case-sensitive user id to its display name.
	Users map[string]string
	// Entitlements maps the case-folded entitlement key to its record.
	Entitlements map[string]domain.EntitlementRecord
}

// BuildSnapshot indexes records. For users the first non-blank name wins; a
// stored blank name is replaced by a later non-blank one. Records with a
// blank user id are not indexed, and keyless records are left out of the
// entitlement index.
func BuildSnapshot(records []domain.EntitlementRecord) *Snapshot {
	s := &Snapshot{
		Users:        make(map[string]string),
		Entitlements: make(map[string]domain.EntitlementRecord, len(records)),
	}

	for _, r := range records {
		id := r.UserKey()
		if id == "" {
			continue
		}
		if stored, ok := s.Users[id]; !ok || (domain.IsBlank(stored) && !domain.IsBlank(r.Name)) {
			s.Users[id] = r.Name
		}

		if key := r.Key(); key != "" {
			s.Entitlements[key] = r
		}
	}
	return s
}
