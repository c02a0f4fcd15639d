// Package export flattens a diff into downloadable CSV tables and keeps the
// rendered payloads in a short-lived token store.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"access-diff/internal/domain"
)

// Export file names, in presentation order.
const (
	FileUsersAdded          = "users_added.csv"
	FileUsersRemoved        = "users_removed.csv"
	FileUserChanges         = "users_changes.csv"
	FileEntitlementsAdded   = "entitlements_added.csv"
	FileEntitlementsRemoved = "entitlements_removed.csv"
)

var (
	userHeader        = []string{"UserID", "Name"}
	userChangeHeader  = []string{"UserID", "Name", "Field", "OldValue", "NewValue"}
	entitlementHeader = []string{"UserID", "Name", "Application", "Role"}
)

// Table is one flattened change list.
type Table struct {
	Filename string
	Header   []string
	Rows     [][]string
}

// Tables flattens res into its five export tables.
func Tables(res *domain.DiffResult) []Table {
	return []Table{
		{Filename: FileUsersAdded, Header: userHeader, Rows: userRows(res.UsersAdded)},
		{Filename: FileUsersRemoved, Header: userHeader, Rows: userRows(res.UsersRemoved)},
		{Filename: FileUserChanges, Header: userChangeHeader, Rows: userChangeRows(res.UserFieldChanges)},
		{Filename: FileEntitlementsAdded, Header: entitlementHeader, Rows: entitlementRows(res.EntAdded)},
		{Filename: FileEntitlementsRemoved, Header: entitlementHeader, Rows: entitlementRows(res.EntRemoved)},
	}
}

// CSV renders the table as comma separated values with LF line endings.
// Fields containing a comma, quote, or line break are quoted and embedded
// quotes doubled.
func (t Table) CSV() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(t.Header); err != nil {
		return nil, fmt.Errorf("write %s header: %w", t.Filename, err)
	}
	if err := w.WriteAll(t.Rows); err != nil {
		return nil, fmt.Errorf("write %s rows: %w", t.Filename, err)
	}
	return buf.Bytes(), nil
}

func userRows(changes []domain.UserChange) [][]string {
	rows := make([][]string, len(changes))
	for i, c := range changes {
		rows[i] = []string{c.UserID, c.Name}
	}
	return rows
}

func userChangeRows(changes []domain.UserFieldChange) [][]string {
	rows := make([][]string, len(changes))
	for i, c := range changes {
		rows[i] = []string{c.UserID, c.Name, c.Field, c.OldValue, c.NewValue}
	}
	return rows
}

func entitlementRows(changes []domain.EntitlementChange) [][]string {
	rows := make([][]string, len(changes))
	for i, c := range changes {
		rows[i] = []string{c.UserID, c.Name, c.App, c.Role}
	}
	return rows
}
