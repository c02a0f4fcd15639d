package ingest

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// readXLSX decodes an Office Open XML workbook. Sheet-level read failures
// abort the whole workbook; individual cell failures degrade to blank.
func readXLSX(data []byte) (*Workbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close() //nolint:errcheck

	wb := &Workbook{}
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", name, err)
		}
		sheet := Sheet{Name: name, Rows: make([][]Cell, len(rows))}
		for r, values := range rows {
			cells := make([]Cell, len(values))
			for c, raw := range values {
				cells[c] = xlsxCell(f, name, c+1, r+1, raw)
			}
			sheet.Rows[r] = cells
		}
		wb.Sheets = append(wb.Sheets, sheet)
	}
	return wb, nil
}

// xlsxCell classifies a raw cell value using the cell's stored type.
// col and row are 1-based.
func xlsxCell(f *excelize.File, sheet string, col, row int, raw string) Cell {
	if raw == "" {
		return Cell{}
	}
	axis, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return Cell{}
	}
	typ, err := f.GetCellType(sheet, axis)
	if err != nil {
		return Cell{}
	}

	switch typ {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString:
		return Cell{Kind: CellText, Text: raw}
	case excelize.CellTypeBool:
		return BoolCell(raw == "1" || strings.EqualFold(raw, "true"))
	case excelize.CellTypeFormula:
		return Cell{Kind: CellFormula, Text: raw}
	case excelize.CellTypeError:
		return Cell{Kind: CellError}
	case excelize.CellTypeNumber, excelize.CellTypeUnset, excelize.CellTypeDate:
		// Numeric cells usually omit the type attribute entirely.
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			return NumberCell(v)
		}
		return Cell{Kind: CellText, Text: raw}
	default:
		return Cell{}
	}
}
