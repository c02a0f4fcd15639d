package ingest

import (
	"context"
	"io"
	"log/slog"

	"access-diff/internal/domain"
)

// Ingestor extracts candidate entitlement records from workbooks. The output
// is neither validated beyond the mandatory user id nor deduplicated.
type Ingestor struct {
	logger *slog.Logger
}

// NewIngestor creates an Ingestor. A nil logger discards output.
func NewIngestor(logger *slog.Logger) *Ingestor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Ingestor{logger: logger}
}

// ReadSource opens the named source and extracts its candidate records.
func (in *Ingestor) ReadSource(ctx context.Context, name string, r io.Reader) ([]domain.EntitlementRecord, error) {
	wb, err := Open(name, r)
	if err != nil {
		return nil, err
	}
	return in.Records(ctx, wb)
}

// Records extracts candidates from every sheet, in sheet order then row
// order. Only context cancellation returns an error.
func (in *Ingestor) Records(ctx context.Context, wb *Workbook) ([]domain.EntitlementRecord, error) {
	var out []domain.EntitlementRecord
	for i := range wb.Sheets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out = in.appendSheet(out, &wb.Sheets[i])
	}
	return out, nil
}

func (in *Ingestor) appendSheet(out []domain.EntitlementRecord, sheet *Sheet) []domain.EntitlementRecord {
	if len(sheet.Rows) == 0 || len(sheet.Rows[0]) == 0 {
		in.logger.Debug("skipping sheet without header", "sheet", sheet.Name)
		return out
	}

	cols := resolveColumns(sheet.Rows[0])
	var emitted, missingUser int
	for _, row := range sheet.Rows[1:] {
		userID := cellAt(row, cols.UserID)
		name := cellAt(row, cols.Name)
		app := cellAt(row, cols.App)
		role := cellAt(row, cols.Role)

		if domain.IsBlank(userID) && domain.IsBlank(name) && domain.IsBlank(app) && domain.IsBlank(role) {
			continue
		}
		if domain.IsBlank(userID) {
			missingUser++
			continue
		}
		out = append(out, domain.EntitlementRecord{
			UserID: NormalizeText(userID),
			Name:   NormalizeText(name),
			App:    NormalizeText(app),
			Role:   NormalizeText(role),
		})
		emitted++
	}

	in.logger.Debug("sheet ingested",
		"sheet", sheet.Name,
		"records", emitted,
		"dropped_missing_user", missingUser,
		"user_column", cols.UserID != noColumn,
	)
	return out
}
