// Package ingest turns spreadsheet-like roster exports into candidate
// entitlement records.
package ingest

import (
	"math"
	"strconv"
)

// CellKind classifies a decoded cell.
type CellKind int

const (
	CellBlank CellKind = iota
	CellText
	CellNumber
	CellBool
	CellFormula
	CellError
)

// Cell is a single decoded value. Only the payload matching Kind is set;
// formula cells carry their cached result in Text or Number.
type Cell struct {
	Kind   CellKind
	Text   string
	Number float64
	Bool   bool
}

// Sheet is one table of a workbook. Rows[0] is the header row.
type Sheet struct {
	Name string
	Rows [][]Cell
}

// Workbook is an ordered list of sheets.
type Workbook struct {
	Sheets []Sheet
}

// TextCell returns a text cell, or a blank cell for the empty string.
func TextCell(s string) Cell {
	if s == "" {
		return Cell{}
	}
	return Cell{Kind: CellText, Text: s}
}

// NumberCell returns a numeric cell.
func NumberCell(v float64) Cell {
	return Cell{Kind: CellNumber, Number: v}
}

// BoolCell returns a boolean cell.
func BoolCell(v bool) Cell {
	return Cell{Kind: CellBool, Bool: v}
}

// integralEpsilon is how close a number must be to an integer to print as one.
const integralEpsilon = 0.0000001

// String renders the cell as roster text. Blank, error, and unknown cells
// render as the empty string.
func (c Cell) String() string {
	switch c.Kind {
	case CellText:
		return c.Text
	case CellNumber:
		return formatNumber(c.Number)
	case CellBool:
		return strconv.FormatBool(c.Bool)
	case CellFormula:
		if c.Text != "" {
			return c.Text
		}
		return formatNumber(c.Number)
	default:
		return ""
	}
}

func formatNumber(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}
	r := math.Round(v)
	if math.Abs(v-r) < integralEpsilon && math.Abs(r) < 1e18 {
		return strconv.FormatInt(int64(r), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
