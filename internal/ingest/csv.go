package ingest

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// readCSV decodes a comma separated export as a single-sheet workbook.
// Every non-empty field is a text cell; rows may be ragged.
func readCSV(name string, data []byte) (*Workbook, error) {
	br := stripUTF8BOM(bufio.NewReader(bytes.NewReader(data)))

	r := csv.NewReader(br)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	sheet := Sheet{Name: name}
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		cells := make([]Cell, len(rec))
		for i, v := range rec {
			cells[i] = TextCell(v)
		}
		sheet.Rows = append(sheet.Rows, cells)
	}
	return &Workbook{Sheets: []Sheet{sheet}}, nil
}

func stripUTF8BOM(r *bufio.Reader) *bufio.Reader {
	b, err := r.Peek(3)
	if err == nil && len(b) == 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		_, _ = r.Discard(3)
	}
	return r
}
