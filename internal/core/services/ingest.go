package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/tashri/internal/core/domain"
	"github.com/custodia-labs/tashri/internal/core/ports/driven"
	"github.com/custodia-labs/tashri/internal/core/ports/driving"
	"github.com/custodia-labs/tashri/internal/logger"
)

// Ensure IngestOrchestrator implements the interface.
var _ driving.IngestService = (*IngestOrchestrator)(nil)

// IngestOrchestrator fetches, extracts and stores catalogue sources.
//
// With one worker, sources are processed strictly in declared order. More
// workers fetch in parallel; the fetcher's shared rate limiter still spaces
// requests. Reports always list results in declared order.
type IngestOrchestrator struct {
	catalog    driven.SourceCatalog
	fetcher    driven.Fetcher
	extractors driven.ExtractorRegistry
	store      driven.DocumentStore
	exporter   driven.DocumentExporter
	workers    int

	progressMu sync.Mutex
	progress   func(domain.IngestResult)

	now   func() time.Time
	runID func() string
}

// NewIngestOrchestrator creates a new ingest orchestrator with one worker.
func NewIngestOrchestrator(
	catalog driven.SourceCatalog,
	fetcher driven.Fetcher,
	extractors driven.ExtractorRegistry,
	store driven.DocumentStore,
) *IngestOrchestrator {
	return &IngestOrchestrator{
		catalog:    catalog,
		fetcher:    fetcher,
		extractors: extractors,
		store:      store,
		workers:    1,
		now:        time.Now,
		runID:      uuid.NewString,
	}
}

// SetWorkers sets the number of documents processed concurrently.
func (o *IngestOrchestrator) SetWorkers(n int) {
	if n < 1 {
		n = 1
	}
	o.workers = n
}

// SetExporter writes every successfully extracted document through exp.
func (o *IngestOrchestrator) SetExporter(exp driven.DocumentExporter) {
	o.exporter = exp
}

// SetProgress registers a callback invoked as each document finishes.
// Calls are serialised.
func (o *IngestOrchestrator) SetProgress(fn func(domain.IngestResult)) {
	o.progressMu.Lock()
	defer o.progressMu.Unlock()
	o.progress = fn
}

// IngestAll ingests every catalogue source.
func (o *IngestOrchestrator) IngestAll(ctx context.Context) (*domain.IngestReport, error) {
	if err := o.ready(); err != nil {
		return nil, err
	}
	sources, err := o.catalog.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sources: %w", err)
	}
	return o.run(ctx, sources)
}

// Ingest ingests the named sources in the order given. Unknown ids fail
// the call before anything is fetched.
func (o *IngestOrchestrator) Ingest(ctx context.Context, sourceIDs []string) (*domain.IngestReport, error) {
	if err := o.ready(); err != nil {
		return nil, err
	}

	var errs []error
	sources := make([]domain.Source, 0, len(sourceIDs))
	for _, id := range sourceIDs {
		src, err := o.catalog.Get(ctx, id)
		if err != nil {
			errs = append(errs, fmt.Errorf("source %s: %w", id, err))
			continue
		}
		sources = append(sources, *src)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return o.run(ctx, sources)
}

func (o *IngestOrchestrator) ready() error {
	if o.catalog == nil || o.fetcher == nil || o.extractors == nil || o.store == nil {
		return fmt.Errorf("ingest: %w", domain.ErrNotImplemented)
	}
	return nil
}

func (o *IngestOrchestrator) run(ctx context.Context, sources []domain.Source) (*domain.IngestReport, error) {
	report := &domain.IngestReport{
		RunID:     o.runID(),
		StartedAt: o.now(),
		Results:   make([]domain.IngestResult, len(sources)),
	}
	logger.Info("Ingest run %s: %d sources, %d workers", report.RunID, len(sources), o.workers)

	// The group only bounds concurrency. Failures are recorded in each
	// result, so no worker returns an error and Wait is always nil.
	var g errgroup.Group
	g.SetLimit(o.workers)
	for i, src := range sources {
		g.Go(func() error {
			result := o.ingestOne(ctx, src)
			report.Results[i] = result
			o.notify(result)
			return nil
		})
	}
	g.Wait() //nolint:errcheck

	report.FinishedAt = o.now()
	logger.Info("Ingest run %s complete: %d succeeded, %d failed",
		report.RunID, report.Succeeded(), report.Failed())

	return report, ctx.Err()
}

// ingestOne processes a single source. Every failure is recorded in the
// result; nothing here aborts the batch.
func (o *IngestOrchestrator) ingestOne(ctx context.Context, src domain.Source) domain.IngestResult {
	start := o.now()
	result := domain.IngestResult{SourceID: src.ID, Outcome: domain.IngestFailed}
	fail := func(step string, err error) domain.IngestResult {
		result.Error = fmt.Sprintf("%s: %v", step, err)
		result.Duration = o.now().Sub(start)
		logger.Error("Ingest %s failed: %s", src.ID, result.Error)
		return result
	}

	if err := ctx.Err(); err != nil {
		return fail("cancelled", err)
	}

	// 1. Validate the catalogue entry
	if err := src.Validate(); err != nil {
		return fail("validate", err)
	}

	// 2. Fetch (rate limited and retried inside the fetcher)
	logger.Debug("Fetching %s from %s", src.ID, src.URL)
	raw, err := o.fetcher.Fetch(ctx, src)
	if err != nil {
		return fail("fetch", err)
	}

	// 3. Extract provisions and definitions
	extracted, err := o.extractors.Extract(ctx, raw)
	if err != nil {
		return fail("extract", err)
	}
	doc := extracted.Document
	for _, w := range extracted.Warnings {
		logger.Warn("%s: %s", src.ID, w)
	}
	result.Warnings = extracted.Warnings

	// 4. Compare with the previous ingestion
	prev, err := o.store.GetDocument(ctx, doc.ID)
	switch {
	case err == nil && prev.ContentHash != "" && prev.ContentHash != doc.ContentHash:
		result.Drifted = true
		logger.Warn("%s: upstream content changed since last ingestion", src.ID)
	case err != nil && !errors.Is(err, domain.ErrNotFound):
		return fail("load previous", err)
	}

	// 5. Persist, replacing the previous version wholesale
	if err := o.store.SaveDocument(ctx, &doc); err != nil {
		return fail("save", err)
	}

	// 6. Optional interchange export
	if o.exporter != nil {
		if err := o.exporter.Export(ctx, &doc); err != nil {
			return fail("export", err)
		}
	}

	result.Outcome = domain.IngestSucceeded
	result.Provisions = len(doc.Provisions)
	result.Definitions = len(doc.Definitions)
	result.Language = doc.Language
	result.Duration = o.now().Sub(start)
	logger.Info("Ingested %s: %d provisions, %d definitions (%s)",
		src.ID, result.Provisions, result.Definitions, result.Language)
	return result
}

func (o *IngestOrchestrator) notify(result domain.IngestResult) {
	o.progressMu.Lock()
	defer o.progressMu.Unlock()
	if o.progress != nil {
		o.progress(result)
	}
}
