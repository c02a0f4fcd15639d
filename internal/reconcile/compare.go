package reconcile

import (
	"sort"
	"strings"

	"access-diff/internal/domain"
)

// Compare reconciles two snapshots. It never fails: two empty snapshots
// produce an empty result. The change lists are never nil.
func Compare(oldSnap, newSnap *Snapshot) *domain.DiffResult {
	res := &domain.DiffResult{
		UsersAdded:                     []domain.UserChange{},
		UsersRemoved:                   []domain.UserChange{},
		UserFieldChanges:               []domain.UserFieldChange{},
		EntAdded:                       []domain.EntitlementChange{},
		EntRemoved:                     []domain.EntitlementChange{},
		EntitlementComparisonAvailable: true,
	}

	diffUsers(res, oldSnap.Users, newSnap.Users)
	diffEntitlements(res, oldSnap.Entitlements, newSnap.Entitlements)

	sortResult(res)
	return res
}

// CompareRecords deduplicates both record sets, indexes them, and reconciles.
func CompareRecords(oldRecs, newRecs []domain.EntitlementRecord) *domain.DiffResult {
	return Compare(BuildSnapshot(Dedupe(oldRecs)), BuildSnapshot(Dedupe(newRecs)))
}

func diffUsers(res *domain.DiffResult, oldUsers, newUsers map[string]string) {
	for id, name := range newUsers {
		oldName, exists := oldUsers[id]
		if !exists {
			res.UsersAdded = append(res.UsersAdded, domain.UserChange{UserID: id, Name: name})
			continue
		}

		oldName = strings.TrimSpace(oldName)
		newName := strings.TrimSpace(name)
		if oldName == newName {
			continue
		}
		display := newName
		if display == "" {
			display = oldName
		}
		res.UserFieldChanges = append(res.UserFieldChanges, domain.UserFieldChange{
			UserID:   id,
			Name:     display,
			Field:    domain.FieldName,
			OldValue: oldName,
			NewValue: newName,
		})
	}

	for id, name := range oldUsers {
		if _, exists := newUsers[id]; !exists {
			res.UsersRemoved = append(res.UsersRemoved, domain.UserChange{UserID: id, Name: name})
		}
	}
}

func diffEntitlements(res *domain.DiffResult, oldEnt, newEnt map[string]domain.EntitlementRecord) {
	for k, r := range newEnt {
		if _, exists := oldEnt[k]; !exists {
			res.EntAdded = append(res.EntAdded, entitlementChange(r))
		}
	}
	for k, r := range oldEnt {
		if _, exists := newEnt[k]; !exists {
			res.EntRemoved = append(res.EntRemoved, entitlementChange(r))
		}
	}
}

func entitlementChange(r domain.EntitlementRecord) domain.EntitlementChange {
	return domain.EntitlementChange{UserID: r.UserID, Name: r.Name, App: r.App, Role: r.Role}
}

// sortResult orders user lists by user id and entitlement lists by the raw
// (not case-folded) user|app|role string.
func sortResult(res *domain.DiffResult) {
	sort.SliceStable(res.UsersAdded, func(i, j int) bool {
		return res.UsersAdded[i].UserID < res.UsersAdded[j].UserID
	})
	sort.SliceStable(res.UsersRemoved, func(i, j int) bool {
		return res.UsersRemoved[i].UserID < res.UsersRemoved[j].UserID
	})
	sort.SliceStable(res.UserFieldChanges, func(i, j int) bool {
		return res.UserFieldChanges[i].UserID < res.UserFieldChanges[j].UserID
	})
	sort.SliceStable(res.EntAdded, func(i, j int) bool {
		return entitlementSortKey(res.EntAdded[i]) < entitlementSortKey(res.EntAdded[j])
	})
	sort.SliceStable(res.EntRemoved, func(i, j int) bool {
		return entitlementSortKey(res.EntRemoved[i]) < entitlementSortKey(res.EntRemoved[j])
	})
}

func entitlementSortKey(c domain.EntitlementChange) string {
	return c.UserID + domain.KeySeparator + c.App + domain.KeySeparator + c.Role
}
