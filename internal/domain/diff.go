package domain

// FieldName is the only per-user attribute tracked across snapshots.
const FieldName = "Name"

// UserChange reports a user present in only one snapshot.
type UserChange struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
}

// UserFieldChange reports a tracked attribute that differs between snapshots.
type UserFieldChange struct {
	UserID   string `json:"user_id"`
	Name     string `json:"name"` // display name: new value when non-blank, else old
	Field    string `json:"field"`
	OldValue string `json:"old_value"`
	NewValue string `json:"new_value"`
}

// EntitlementChange reports a grant present in only one snapshot.
type EntitlementChange struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	App    string `json:"app"`
	Role   string `json:"role"`
}

// DiffResult is the reconciliation of an old and a new roster snapshot.
type DiffResult struct {
	UsersAdded       []UserChange        `json:"users_added"`
	UsersRemoved     []UserChange        `json:"users_removed"`
	UserFieldChanges []UserFieldChange   `json:"user_field_changes"`
	EntAdded         []EntitlementChange `json:"entitlements_added"`
	EntRemoved       []EntitlementChange `json:"entitlements_removed"`

	// EntitlementComparisonAvailable is always true today; kept for callers
	// that render a "not compared" state.
	EntitlementComparisonAvailable bool `json:"entitlement_comparison_available"`
}

// DiffSummary holds the size of each change list.
type DiffSummary struct {
	UsersAdded       int `json:"users_added"`
	UsersRemoved     int `json:"users_removed"`
	UserFieldChanges int `json:"user_field_changes"`
	EntAdded         int `json:"entitlements_added"`
	EntRemoved       int `json:"entitlements_removed"`
}

// Summary returns the count of each change list.
func (d *DiffResult) Summary() DiffSummary {
	return DiffSummary{
		UsersAdded:       len(d.UsersAdded),
		UsersRemoved:     len(d.UsersRemoved),
		UserFieldChanges: len(d.UserFieldChanges),
		EntAdded:         len(d.EntAdded),
		EntRemoved:       len(d.EntRemoved),
	}
}

// HasChanges returns true if any change list is non-empty.
func (d *DiffResult) HasChanges() bool {
	s := d.Summary()
	return s.UsersAdded+s.UsersRemoved+s.UserFieldChanges+s.EntAdded+s.EntRemoved > 0
}
