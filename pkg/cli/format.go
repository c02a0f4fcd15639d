package cli

import (
	"fmt"
	"io"

	"access-diff/internal/domain"
)

// ANSI color codes.
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorCyan   = "\033[36m"
	colorDim    = "\033[2m"
)

// FormatText writes a human-readable diff to w.
// If noColor is true, ANSI codes are suppressed.
func FormatText(w io.Writer, res *domain.DiffResult, noColor bool) {
	c := func(code string) string {
		if noColor {
			return ""
		}
		return code
	}

	if !res.HasChanges() {
		fmt.Fprintln(w, "No differences found.")
		return
	}

	section := func(title string, n int) bool {
		if n == 0 {
			return false
		}
		fmt.Fprintf(w, "\n%s# %s (%d)%s\n", c(colorCyan), title, n, c(colorReset))
		return true
	}

	if section("Users added", len(res.UsersAdded)) {
		for _, u := range res.UsersAdded {
			fmt.Fprintf(w, "  %s+%s %s %q\n", c(colorGreen), c(colorReset), u.UserID, u.Name)
		}
	}
	if section("Users removed", len(res.UsersRemoved)) {
		for _, u := range res.UsersRemoved {
			fmt.Fprintf(w, "  %s-%s %s %q\n", c(colorRed), c(colorReset), u.UserID, u.Name)
		}
	}
	if section("User changes", len(res.UserFieldChanges)) {
		for _, u := range res.UserFieldChanges {
			fmt.Fprintf(w, "  %s~%s %s %q\n", c(colorYellow), c(colorReset), u.UserID, u.Name)
			fmt.Fprintf(w, "      %s: %q → %q\n", u.Field, u.OldValue, u.NewValue)
		}
	}
	if section("Entitlements added", len(res.EntAdded)) {
		for _, e := range res.EntAdded {
			fmt.Fprintf(w, "  %s+%s %s %s/%s %s%q%s\n", c(colorGreen), c(colorReset), e.UserID, e.App, e.Role, c(colorDim), e.Name, c(colorReset))
		}
	}
	if section("Entitlements removed", len(res.EntRemoved)) {
		for _, e := range res.EntRemoved {
			fmt.Fprintf(w, "  %s-%s %s %s/%s %s%q%s\n", c(colorRed), c(colorReset), e.UserID, e.App, e.Role, c(colorDim), e.Name, c(colorReset))
		}
	}

	s := res.Summary()
	fmt.Fprintf(w, "\n%sSummary:%s users %d added, %d removed, %d changed; entitlements %d added, %d removed.\n",
		c(colorDim), c(colorReset), s.UsersAdded, s.UsersRemoved, s.UserFieldChanges, s.EntAdded, s.EntRemoved)
}
