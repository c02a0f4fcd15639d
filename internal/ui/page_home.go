package ui

import (
	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

const acceptSpreadsheets = ".xlsx,.csv,application/vnd.openxmlformats-officedocument.spreadsheetml.sheet,text/csv"

func homePage(csrf Node) Node {
	return appPage("Compare snapshots",
		Div(
			Class(cardClass()),
			P(Class("muted"), Text("Upload the previous and the current access roster. Every sheet is read; columns are matched by header name.")),
			Form(
				Method("post"),
				Action("/compare"),
				EncType("multipart/form-data"),
				csrf,
				fileInput(oldFileField, "Old snapshot"),
				fileInput(newFileField, "New snapshot"),
				Button(Type("submit"), Class("btn btn-primary"), Text("Compare")),
			),
		),
	)
}

func fileInput(name, label string) Node {
	return Div(
		Class("form-row"),
		Label(For(name), Text(label)),
		Input(ID(name), Name(name), Type("file"), Class("form-control"), Accept(acceptSpreadsheets), Required()),
	)
}
