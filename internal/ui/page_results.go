package ui

import (
	"fmt"
	"strings"

	. "maragu.dev/gomponents"
	data "maragu.dev/gomponents-datastar"
	. "maragu.dev/gomponents/html"

	"access-diff/internal/export"
	"access-diff/internal/service/review"
)

const previewRowLimit = 50

var tableTitles = map[string]string{
	export.FileUsersAdded:          "Users added",
	export.FileUsersRemoved:        "Users removed",
	export.FileUserChanges:         "User changes",
	export.FileEntitlementsAdded:   "Entitlements added",
	export.FileEntitlementsRemoved: "Entitlements removed",
}

var tableTones = map[string]string{
	export.FileUsersAdded:          "success",
	export.FileUsersRemoved:        "danger",
	export.FileUserChanges:         "attention",
	export.FileEntitlementsAdded:   "success",
	export.FileEntitlementsRemoved: "danger",
}

type resultsPageData struct {
	OldName string
	NewName string
	Report  *review.Report
}

func resultsPage(d resultsPageData) Node {
	tokens := make(map[string]string, len(d.Report.Exports))
	stats := make([]Node, 0, len(d.Report.Exports))
	for _, link := range d.Report.Exports {
		tokens[link.Filename] = link.Token
		stats = append(stats, Div(
			Class(cardClass("stat")),
			Strong(Text(fmt.Sprintf("%d", link.Rows))),
			statusLabel(tableTitles[link.Filename], tableTones[link.Filename]),
			P(A(Href(downloadHref(link.Token)), Attr("download", link.Filename), Text(link.Filename))),
		))
	}

	sections := make([]Node, 0, len(d.Report.Tables))
	for _, t := range d.Report.Tables {
		sections = append(sections, previewTable(t, tokens[t.Filename]))
	}

	summary := "No differences found."
	if d.Report.Result.HasChanges() {
		summary = "Downloads stay available for a limited time."
	}

	return appPage("Comparison results",
		Div(
			Class(cardClass()),
			P(Text(fmt.Sprintf("%s → %s", d.OldName, d.NewName))),
			P(Class("muted"), Text(summary)),
		),
		Div(Class("grid"), Group(stats)),
		quickFilterCard("Filter rows by user, name, application or role"),
		Group(sections),
		P(A(Href("/"), Text("Compare another pair"))),
	)
}

func previewTable(t export.Table, token string) Node {
	title := tableTitles[t.Filename]
	if len(t.Rows) == 0 {
		return Div(Class(cardClass()), H2(Text(title)), P(Class("muted"), Text("No rows.")))
	}

	shown := t.Rows
	if len(shown) > previewRowLimit {
		shown = shown[:previewRowLimit]
	}

	head := make([]Node, 0, len(t.Header))
	for _, h := range t.Header {
		head = append(head, Th(Text(h)))
	}
	rows := make([]Node, 0, len(shown))
	for _, row := range shown {
		cells := make([]Node, 0, len(row))
		for _, v := range row {
			cells = append(cells, Td(Text(v)))
		}
		rows = append(rows, Tr(data.Show(containsExpr(strings.Join(row, " "))), Group(cells)))
	}

	note := fmt.Sprintf("%d rows", len(t.Rows))
	if len(t.Rows) > len(shown) {
		note = fmt.Sprintf("Showing first %d of %d rows", len(shown), len(t.Rows))
	}

	return Div(
		Class(cardClass("table-wrap")),
		H2(Text(title)),
		P(Class("muted"), Text(note+". "), A(Href(downloadHref(token)), Text("Download CSV"))),
		Table(Class("data-table"), THead(Tr(Group(head))), TBody(Group(rows))),
	)
}

func downloadHref(token string) string {
	return "/download/" + token
}
