package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tashri/internal/adapters/driving/watch"
	"github.com/custodia-labs/tashri/internal/core/domain"
	"github.com/custodia-labs/tashri/internal/core/ports/driving"
	"github.com/custodia-labs/tashri/internal/logger"
)

var (
	ingestSources []string
	ingestOut     string
	ingestWatch   bool
	ingestWorkers int
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [source-id...]",
	Short: "Fetch and extract legislation into the database",
	Long: `Fetches every statute in the source catalogue, extracts its provisions
and definitions, and stores them for search and lookup.

If source IDs are given (as arguments or with --source), only those are
ingested. A failure on one statute is reported and does not stop the rest.

With --out, each statute is also written as <id>.json in the interchange
format. With --watch, the catalogue and any local source files are watched
and re-ingested when they change.`,
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringSliceVar(&ingestSources, "source", nil, "source id to ingest (repeatable)")
	ingestCmd.Flags().StringVarP(&ingestOut, "out", "o", "", "also write <id>.json files to this directory")
	ingestCmd.Flags().BoolVarP(&ingestWatch, "watch", "w", false, "re-ingest when the catalogue or local sources change")
	ingestCmd.Flags().IntVar(&ingestWorkers, "workers", 0, "documents to process concurrently (default from config)")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if newIngestService == nil {
		return errors.New("ingest service not configured")
	}

	svc, err := newIngestService(ingestOptions{
		Workers:  ingestWorkers,
		OutDir:   ingestOut,
		Progress: func(r domain.IngestResult) { printIngestResult(cmd, r) },
	})
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	ids := slices.Concat(args, ingestSources)

	report, err := ingest(ctx, cmd, svc, ids)
	if err != nil {
		return err
	}

	if ingestWatch {
		return watchAndIngest(ctx, cmd, svc)
	}

	if failed := report.Failed(); failed > 0 {
		return fmt.Errorf("%d of %d documents failed", failed, len(report.Results))
	}
	return nil
}

// ingest runs one batch. An empty ids slice ingests the whole catalogue.
func ingest(ctx context.Context, cmd *cobra.Command, svc driving.IngestService, ids []string) (*domain.IngestReport, error) {
	var (
		report *domain.IngestReport
		err    error
	)
	if len(ids) == 0 {
		cmd.Println("Ingesting all sources...")
		report, err = svc.IngestAll(ctx)
	} else {
		cmd.Printf("Ingesting %d source(s)...\n", len(ids))
		report, err = svc.Ingest(ctx, ids)
	}
	if err != nil {
		return nil, fmt.Errorf("ingest failed: %w", err)
	}

	printIngestSummary(cmd, report)
	return report, nil
}

// watchAndIngest blocks, re-ingesting on catalogue or local source changes
// until the context is cancelled.
func watchAndIngest(ctx context.Context, cmd *cobra.Command, svc driving.IngestService) error {
	if sourceCatalog == nil {
		return errors.New("source catalogue not configured")
	}

	w, err := watch.New(watchPaths(sourceCatalog), watch.DefaultDebounce)
	if err != nil {
		return err
	}
	defer w.Close()

	if len(w.Paths()) == 0 {
		cmd.Println("Nothing to watch: the catalogue is built in and has no local sources.")
		return nil
	}

	cmd.Printf("Watching %d file(s) for changes. Press Ctrl+C to stop.\n", len(w.Paths()))
	return w.Run(ctx, func(ctx context.Context, changed []string) {
		ids, all := changedSources(sourceCatalog, changed)
		if all {
			if err := sourceCatalog.Reload(); err != nil {
				logger.Error("Catalogue reload failed, keeping previous sources: %v", err)
				return
			}
			if err := w.SetPaths(watchPaths(sourceCatalog)); err != nil {
				logger.Warn("Updating watched files: %v", err)
			}
		}
		if !all && len(ids) == 0 {
			return
		}
		if _, err := ingest(ctx, cmd, svc, ids); err != nil {
			logger.Error("%v", err)
		}
	})
}

func watchPaths(c catalogView) []string {
	paths := c.LocalPaths()
	if c.Path() != "" {
		paths = append([]string{c.Path()}, paths...)
	}
	return paths
}

// changedSources maps changed files to source ids. all is true when the
// catalogue itself changed and everything must be re-ingested.
func changedSources(c catalogView, changed []string) (ids []string, all bool) {
	if p := c.Path(); p != "" {
		catalogFile := absPath(p)
		if slices.ContainsFunc(changed, func(x string) bool { return absPath(x) == catalogFile }) {
			return nil, true
		}
	}
	return c.SourceIDsFor(changed), false
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}

func printIngestResult(cmd *cobra.Command, r domain.IngestResult) {
	out := cmd.OutOrStderr()
	if r.Outcome == domain.IngestFailed {
		cmd.Printf("  %s %s: %s\n", styled(out, errorStyle, "✗"), r.SourceID, r.Error)
		return
	}

	line := fmt.Sprintf("  %s %s: %d provisions, %d definitions (%s)",
		styled(out, successStyle, "✓"), r.SourceID, r.Provisions, r.Definitions, r.Duration.Round(time.Millisecond))
	if r.Drifted {
		line += " " + styled(out, warningStyle, "[changed upstream]")
	}
	cmd.Println(line)
	for _, w := range r.Warnings {
		cmd.Printf("      %s\n", styled(out, warningStyle, "! "+w))
	}
}

func printIngestSummary(cmd *cobra.Command, report *domain.IngestReport) {
	cmd.Printf("Done: %d succeeded, %d failed (%s)\n",
		report.Succeeded(), report.Failed(), report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond))
}
