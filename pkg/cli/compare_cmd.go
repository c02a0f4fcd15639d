package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"access-diff/internal/domain"
	"access-diff/internal/export"
	"access-diff/internal/ingest"
	"access-diff/internal/service/review"
)

type compareOutput struct {
	Summary domain.DiffSummary `json:"summary"`
	Result  *domain.DiffResult `json:"result"`
	Files   []string           `json:"files,omitempty"`
}

func newCompareCmd(opts *rootOptions) *cobra.Command {
	var (
		outDir  string
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "compare <old-file> <new-file>",
		Short: "Compare two roster snapshots",
		Long: "Reads every sheet of both workbooks (xlsx or csv), reports users added,\n" +
			"removed and renamed plus entitlements added and removed, and optionally\n" +
			"writes the five CSV exports to --out-dir.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("out-dir") {
				if v := os.Getenv("ACCESSDIFF_OUT_DIR"); v != "" {
					outDir = v
				} else {
					outDir = opts.active.OutDir
				}
			}

			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			oldSrc, closeOld, err := openSource(args[0])
			if err != nil {
				return err
			}
			defer closeOld()
			newSrc, closeNew, err := openSource(args[1])
			if err != nil {
				return err
			}
			defer closeNew()

			svc := review.NewService(ingest.NewIngestor(logger), nil, logger)
			res, err := svc.Diff(cmd.Context(), oldSrc, newSrc)
			if err != nil {
				return err
			}

			var files []string
			if outDir != "" {
				files, err = writeExports(outDir, res)
				if err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			if getOutputFormat(cmd) == "json" {
				return PrintJSON(out, compareOutput{Summary: res.Summary(), Result: res, Files: files})
			}
			FormatText(out, res, !colorEnabled(out, opts.noColor))
			if len(files) > 0 {
				_, _ = fmt.Fprintf(out, "Wrote %d files to %s\n", len(files), outDir)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "out-dir", "", "Directory to write the CSV exports to")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log per-sheet ingestion details to stderr")

	return cmd
}

func openSource(path string) (review.Source, func(), error) {
	f, err := os.Open(path) //nolint:gosec // path comes from the command line
	if err != nil {
		return review.Source{}, nil, fmt.Errorf("open %s: %w", path, err)
	}
	if info, err := f.Stat(); err == nil && info.Size() == 0 {
		_ = f.Close()
		return review.Source{}, nil, domain.ErrValidation("%s is empty", path)
	}
	return review.Source{Name: filepath.Base(path), Reader: f}, func() { _ = f.Close() }, nil
}

func writeExports(dir string, res *domain.DiffResult) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:gosec
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	tables := export.Tables(res)
	files := make([]string, 0, len(tables))
	for _, t := range tables {
		payload, err := t.CSV()
		if err != nil {
			return nil, err
		}
		path := filepath.Join(dir, t.Filename)
		if err := os.WriteFile(path, payload, 0o644); err != nil { //nolint:gosec
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		files = append(files, path)
	}
	return files, nil
}
