package cli

import (
	"fmt"

	"github.com/custodia-labs/tashri/internal/adapters/driven/config/file"
	"github.com/custodia-labs/tashri/internal/adapters/driven/export"
	"github.com/custodia-labs/tashri/internal/adapters/driven/fetch"
	"github.com/custodia-labs/tashri/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/tashri/internal/core/domain"
	"github.com/custodia-labs/tashri/internal/core/ports/driven"
	"github.com/custodia-labs/tashri/internal/core/ports/driving"
	"github.com/custodia-labs/tashri/internal/core/services"
	"github.com/custodia-labs/tashri/internal/extractors"
	"github.com/custodia-labs/tashri/internal/logger"
)

// Services used by the commands.
var (
	searchService   driving.SearchService
	documentService driving.DocumentService
	resolverService driving.ResolverService
	citationService driving.CitationService
	documentStore   driven.DocumentStore
	configStore     configView
	sourceCatalog   catalogView

	// newIngestService builds an ingest service for a single command run.
	newIngestService func(opts ingestOptions) (driving.IngestService, error)

	servicesReady bool
	closers       []func() error
)

// configView is the part of the config store the config command reads.
type configView interface {
	Path() string
	Values() ([]file.KeyValue, error)
}

// catalogView is the part of the source catalogue the watcher needs.
type catalogView interface {
	Path() string
	Reload() error
	LocalPaths() []string
	SourceIDsFor(paths []string) []string
}

type ingestOptions struct {
	// Workers overrides ingest.workers when positive.
	Workers int

	// OutDir, when set, receives one JSON file per document.
	OutDir string

	Progress func(domain.IngestResult)
}

func loadConfig() (*file.ConfigStore, error) {
	if configPath != "" {
		return file.NewConfigStoreAt(configPath)
	}
	return file.NewConfigStore("")
}

func initConfig() error {
	store, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	configStore = store
	return nil
}

// initServices wires the SQLite store, catalogue, fetcher and core services
// from configuration. Flags take precedence over config file values.
func initServices() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	configStore = cfg
	settings := cfg.Settings()

	dir := dataDir
	if dir == "" {
		dir = settings.Storage.DataDir
	}
	store, err := sqlite.NewStore(dir)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	closers = append(closers, store.Close)
	logger.Debug("Database: %s", store.Path())

	catalogFile := catalogPath
	if catalogFile == "" {
		catalogFile = settings.Ingest.Catalog
	}
	catalog, err := file.LoadCatalog(catalogFile)
	if err != nil {
		return fmt.Errorf("loading catalogue: %w", err)
	}
	sourceCatalog = catalog

	docs := store.DocumentStore()
	documentStore = docs
	searchService = services.NewSearchService(store.SearchEngine())
	documentService = services.NewDocumentService(docs)
	resolverService = services.NewResolverService(docs)
	citationService = services.NewCitationService(docs)

	limiter := fetch.NewRateLimiter(settings.Fetch.MinDelay(), fetch.SystemClock)
	fetcher := fetch.NewFetcher(fetch.ConfigFromSettings(settings.Fetch), limiter)
	registry := extractors.NewDefaultRegistry()

	newIngestService = func(opts ingestOptions) (driving.IngestService, error) {
		o := services.NewIngestOrchestrator(catalog, fetcher, registry, docs)
		o.SetWorkers(settings.Ingest.Workers)
		if opts.Workers > 0 {
			o.SetWorkers(opts.Workers)
		}
		if opts.OutDir != "" {
			exp, err := export.NewJSONExporter(opts.OutDir)
			if err != nil {
				return nil, err
			}
			o.SetExporter(exp)
		}
		if opts.Progress != nil {
			o.SetProgress(opts.Progress)
		}
		return o, nil
	}

	servicesReady = true
	return nil
}

func closeServices() {
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i](); err != nil {
			logger.Warn("Closing: %v", err)
		}
	}
	closers = nil
}
