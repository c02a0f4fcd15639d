package ingest

// Header aliases per logical column, in priority order.
var (
	userIDAliases = []string{"userid", "user id", "user", "id"}
	nameAliases   = []string{"name", "fullname", "displayname", "display name"}
	appAliases    = []string{"application", "app", "system"}
	roleAliases   = []string{"role", "entitlement", "permission", "group"}
)

// noColumn marks a logical column that is absent from the sheet.
const noColumn = -1

// columnMap locates the four logical roster columns within a sheet.
type columnMap struct {
	UserID int
	Name   int
	App    int
	Role   int
}

// resolveColumns maps a header row onto the logical columns. Missing
// columns resolve to noColumn and read as blank.
func resolveColumns(header []Cell) columnMap {
	idx := headerIndex(header)
	return columnMap{
		UserID: pick(idx, userIDAliases...),
		Name:   pick(idx, nameAliases...),
		App:    pick(idx, appAliases...),
		Role:   pick(idx, roleAliases...),
	}
}

// headerIndex maps normalized header text to its column. When two headers
// normalize to the same key, the rightmost wins.
func headerIndex(header []Cell) map[string]int {
	m := make(map[string]int, len(header))
	for i, c := range header {
		k := normalizeHeader(c.String())
		if k == "" {
			continue
		}
		m[k] = i
	}
	return m
}

func pick(idx map[string]int, aliases ...string) int {
	for _, a := range aliases {
		if i, ok := idx[normalizeHeader(a)]; ok {
			return i
		}
	}
	return noColumn
}

// cellAt returns the cell text at column i, or "" when i is out of range.
func cellAt(row []Cell, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i].String()
}
