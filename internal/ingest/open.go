package ingest

import (
	"fmt"
	"io"

	"github.com/gabriel-vasile/mimetype"

	"access-diff/internal/domain"
)

// Media types accepted as roster sources.
const (
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimeZIP  = "application/zip"
	mimeCSV  = "text/csv"
	mimeText = "text/plain"
)

// Open reads the whole source and decodes it into a Workbook. The format is
// sniffed from the content, not the file name. Any failure is returned as a
// *domain.IngestError naming the source.
func Open(name string, r io.Reader) (*Workbook, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, domain.ErrIngest(name, fmt.Errorf("read: %w", err))
	}
	wb, err := decode(name, data)
	if err != nil {
		return nil, domain.ErrIngest(name, err)
	}
	return wb, nil
}

func decode(name string, data []byte) (*Workbook, error) {
	mt := mimetype.Detect(data)
	switch {
	case mt.Is(mimeXLSX), mt.Is(mimeZIP):
		return readXLSX(data)
	case mt.Is(mimeCSV), mt.Is(mimeText):
		return readCSV(name, data)
	default:
		return nil, fmt.Errorf("unsupported file type %s", mt.String())
	}
}
