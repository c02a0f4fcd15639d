package domain

import "strings"

// KeySeparator joins the parts of an entitlement identity key.
const KeySeparator = "|"

// EntitlementRecord is one roster row: a role granted to a user within an
// application. Values are compared by derived keys, never structurally.
type EntitlementRecord struct {
	UserID string
	Name   string
	App    string
	Role   string
}

// Key returns the case-folded identity of the grant, or "" when any of
// user id, application, or role is blank.
func (r EntitlementRecord) Key() string {
	id := strings.TrimSpace(r.UserID)
	app := strings.TrimSpace(r.App)
	role := strings.TrimSpace(r.Role)
	if id == "" || app == "" || role == "" {
		return ""
	}
	return strings.ToLower(id) + KeySeparator + strings.ToLower(app) + KeySeparator + strings.ToLower(role)
}

// UserKey returns the case-sensitive user identity (the trimmed user id).
func (r EntitlementRecord) UserKey() string {
	return strings.TrimSpace(r.UserID)
}

// IsBlank reports whether s is empty or whitespace only.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
