// Package review orchestrates a roster comparison: ingest both snapshots,
// reconcile them, and publish the CSV exports.
package review

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"access-diff/internal/domain"
	"access-diff/internal/export"
	"access-diff/internal/ingest"
	"access-diff/internal/reconcile"
)

// Source is one raw roster snapshot.
type Source struct {
	Name   string
	Reader io.Reader
}

// ExportLink names a stored export and its retrieval token.
type ExportLink struct {
	Filename string `json:"filename"`
	Token    string `json:"token"`
	Rows     int    `json:"rows"`
}

// Report is the outcome of a stored comparison.
type Report struct {
	ID      string             `json:"id"`
	Result  *domain.DiffResult `json:"result"`
	Summary domain.DiffSummary `json:"summary"`
	Exports []ExportLink       `json:"exports"`
	Tables  []export.Table     `json:"-"`
}

// Service runs comparisons. The store may be nil when only Diff is used.
type Service struct {
	ingestor *ingest.Ingestor
	store    *export.Store
	logger   *slog.Logger
}

// NewService creates a review Service.
func NewService(ingestor *ingest.Ingestor, store *export.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{ingestor: ingestor, store: store, logger: logger}
}

// Diff ingests both snapshots concurrently and reconciles them. A fatal
// ingestion error on either side aborts the comparison.
func (s *Service) Diff(ctx context.Context, oldSrc, newSrc Source) (*domain.DiffResult, error) {
	var oldRecs, newRecs []domain.EntitlementRecord

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		recs, err := s.ingestor.ReadSource(gctx, oldSrc.Name, oldSrc.Reader)
		if err != nil {
			return err
		}
		oldRecs = recs
		return nil
	})
	g.Go(func() error {
		recs, err := s.ingestor.ReadSource(gctx, newSrc.Name, newSrc.Reader)
		if err != nil {
			return err
		}
		newRecs = recs
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return reconcile.CompareRecords(oldRecs, newRecs), nil
}

// Compare runs Diff, renders the five export tables, and stores each under a
// fresh token.
func (s *Service) Compare(ctx context.Context, oldSrc, newSrc Source) (*Report, error) {
	if s.store == nil {
		return nil, fmt.Errorf("review: export store not configured")
	}
	start := time.Now()

	res, err := s.Diff(ctx, oldSrc, newSrc)
	if err != nil {
		s.logger.Warn("comparison failed", "old", oldSrc.Name, "new", newSrc.Name, "error", err)
		return nil, err
	}

	tables := export.Tables(res)
	links := make([]ExportLink, 0, len(tables))
	for _, t := range tables {
		payload, err := t.CSV()
		if err != nil {
			return nil, fmt.Errorf("render export: %w", err)
		}
		links = append(links, ExportLink{
			Filename: t.Filename,
			Token:    s.store.Put(payload, t.Filename),
			Rows:     len(t.Rows),
		})
	}

	report := &Report{
		ID:      domain.NewID(),
		Result:  res,
		Summary: res.Summary(),
		Exports: links,
		Tables:  tables,
	}
	s.logger.Info("comparison complete",
		"review_id", report.ID,
		"old", oldSrc.Name,
		"new", newSrc.Name,
		"users_added", report.Summary.UsersAdded,
		"users_removed", report.Summary.UsersRemoved,
		"user_changes", report.Summary.UserFieldChanges,
		"entitlements_added", report.Summary.EntAdded,
		"entitlements_removed", report.Summary.EntRemoved,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return report, nil
}

// Export returns a stored export by token.
func (s *Service) Export(token string) (export.StoredFile, error) {
	if s.store == nil {
		return export.StoredFile{}, domain.ErrNotFound("export not found or expired")
	}
	return s.store.Get(token)
}
