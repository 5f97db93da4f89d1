package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tashri/internal/adapters/driven/config/file"
	"github.com/custodia-labs/tashri/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/tashri/internal/core/domain"
	"github.com/custodia-labs/tashri/internal/core/ports/driving"
)

// mockSearchService returns canned results.
type mockSearchService struct {
	response *domain.SearchResponse
	err      error
	lastOpts domain.SearchOptions
}

func (m *mockSearchService) Search(_ context.Context, query string, opts domain.SearchOptions) (*domain.SearchResponse, error) {
	m.lastOpts = opts
	if m.err != nil {
		return nil, m.err
	}
	if m.response != nil {
		return m.response, nil
	}
	return &domain.SearchResponse{
		Query:   query,
		Variant: query,
		Results: []domain.SearchResult{{
			DocumentID:    "fdl-45-2021",
			DocumentTitle: "Federal Decree-Law No. 45 of 2021 on the Protection of Personal Data",
			Zone:          domain.ZoneFederal,
			ProvisionRef:  "art2",
			Title:         "Scope",
			Snippet:       "applies to the [processing] of personal data",
			Score:         4.2,
		}},
	}, nil
}

type mockDocumentService struct {
	documents   []domain.ParsedDocument
	lookup      *driving.ProvisionLookup
	definitions []domain.ParsedDefinition
	resolution  domain.Resolution
	err         error
}

func (m *mockDocumentService) List(_ context.Context) ([]domain.ParsedDocument, error) {
	return m.documents, m.err
}

func (m *mockDocumentService) Get(_ context.Context, _ string) (*domain.ParsedDocument, domain.Resolution, error) {
	return nil, m.resolution, m.err
}

func (m *mockDocumentService) GetProvision(_ context.Context, _, _ string) (*driving.ProvisionLookup, error) {
	return m.lookup, m.err
}

func (m *mockDocumentService) Definitions(_ context.Context, _, _ string) ([]domain.ParsedDefinition, domain.Resolution, error) {
	return m.definitions, m.resolution, m.err
}

type mockResolverService struct {
	resolution domain.Resolution
}

func (m *mockResolverService) Resolve(_ context.Context, input string) (domain.Resolution, error) {
	res := m.resolution
	res.Input = input
	return res, nil
}

type mockCitationService struct {
	validation *domain.CitationValidation
	lastStyle  domain.CitationStyle
	err        error
}

func (m *mockCitationService) Validate(_ context.Context, _ string) (*domain.CitationValidation, error) {
	return m.validation, m.err
}

func (m *mockCitationService) Format(_ context.Context, _ string, style domain.CitationStyle) (string, error) {
	m.lastStyle = style
	if m.err != nil {
		return "", m.err
	}
	if style == domain.StylePinpoint {
		return "Art. 2", nil
	}
	return "Article 2, Federal Decree-Law No. 45 of 2021", nil
}

type mockIngestService struct {
	report   *domain.IngestReport
	err      error
	progress func(domain.IngestResult)
	all      bool
	ids      []string
}

func (m *mockIngestService) IngestAll(_ context.Context) (*domain.IngestReport, error) {
	m.all = true
	return m.run()
}

func (m *mockIngestService) Ingest(_ context.Context, ids []string) (*domain.IngestReport, error) {
	m.ids = ids
	return m.run()
}

func (m *mockIngestService) run() (*domain.IngestReport, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.progress != nil {
		for _, r := range m.report.Results {
			m.progress(r)
		}
	}
	return m.report, nil
}

type mockConfigStore struct{}

func (mockConfigStore) Path() string { return "/home/test/.tashri/config.toml" }

func (mockConfigStore) Values() ([]file.KeyValue, error) {
	return []file.KeyValue{
		{Key: "fetch.min_delay_ms", Value: int64(1000)},
		{Key: "ingest.workers", Value: int64(1)},
	}, nil
}

func testIngestReport() *domain.IngestReport {
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return &domain.IngestReport{
		RunID:      "run-1",
		StartedAt:  start,
		FinishedAt: start.Add(3 * time.Second),
		Results: []domain.IngestResult{
			{SourceID: "fdl-45-2021", Outcome: domain.IngestSucceeded, Provisions: 30, Definitions: 12, Duration: time.Second},
			{SourceID: "difc-law-5-2020", Outcome: domain.IngestSucceeded, Provisions: 60, Drifted: true,
				Warnings: []string{"no definitions found"}, Duration: 2 * time.Second},
		},
	}
}

// setupTestServices injects mocks and resets flags. The returned function
// restores the previous services.
func setupTestServices() func() {
	oldSearch, oldDocs := searchService, documentService
	oldResolver, oldCitation := resolverService, citationService
	oldStore := documentStore
	oldConfig, oldCatalog := configStore, sourceCatalog
	oldIngest, oldReady := newIngestService, servicesReady

	searchService = &mockSearchService{}
	documentService = &mockDocumentService{}
	resolverService = &mockResolverService{}
	citationService = &mockCitationService{}
	documentStore = memory.NewDocumentStore()
	configStore = mockConfigStore{}
	sourceCatalog = nil
	ingest := &mockIngestService{report: testIngestReport()}
	newIngestService = func(opts ingestOptions) (driving.IngestService, error) {
		ingest.progress = opts.Progress
		return ingest, nil
	}
	servicesReady = true
	resetFlags(rootCmd)

	return func() {
		searchService, documentService = oldSearch, oldDocs
		resolverService, citationService = oldResolver, oldCitation
		documentStore = oldStore
		configStore, sourceCatalog = oldConfig, oldCatalog
		newIngestService, servicesReady = oldIngest, oldReady
		resetFlags(rootCmd)
	}
}

// resetFlags restores every flag to its default. cobra keeps parsed values
// between Execute calls.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// execute runs the root command with args and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "tashri", rootCmd.Use)
}

func TestRootCmd_GlobalFlags(t *testing.T) {
	for _, name := range []string{"verbose", "config", "data-dir", "catalog"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), name)
	}
	assert.Equal(t, "v", rootCmd.PersistentFlags().Lookup("verbose").Shorthand)
}

func TestRootCmd_RegistersCommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{
		"ingest", "search", "resolve", "provision", "definitions",
		"documents", "citation", "config", "import", "mcp", "version",
	} {
		assert.True(t, names[want], "missing command %s", want)
	}
}

func TestPrepare_ConfigOnly(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	servicesReady = false
	configStore = nil
	configPath = t.TempDir() + "/config.toml"

	err := prepare(configPathCmd, nil)

	require.NoError(t, err)
	require.NotNil(t, configStore)
	assert.Equal(t, configPath, configStore.Path())
}

func TestPrepare_NoServices(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	servicesReady = false
	configStore = nil

	require.NoError(t, prepare(versionCmd, nil))
	assert.Nil(t, configStore)
}

func TestServicesFor(t *testing.T) {
	completion := &cobra.Command{Use: "completion"}
	bash := &cobra.Command{Use: "bash"}
	completion.AddCommand(bash)

	assert.Equal(t, servicesNone, servicesFor(versionCmd))
	assert.Equal(t, servicesConfig, servicesFor(configPathCmd))
	assert.Equal(t, "", servicesFor(searchCmd))
	assert.Equal(t, servicesNone, servicesFor(bash))
	assert.Equal(t, servicesNone, servicesFor(&cobra.Command{Use: "help"}))
}

func TestPrepare_WiresServices(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer closeServices()
	servicesReady = false
	searchService, documentService, newIngestService = nil, nil, nil
	documentStore = nil

	dir := t.TempDir()
	configPath = dir + "/config.toml"
	dataDir = dir + "/data"

	require.NoError(t, prepare(searchCmd, nil))

	assert.True(t, servicesReady)
	assert.NotNil(t, searchService)
	assert.NotNil(t, documentService)
	assert.NotNil(t, resolverService)
	assert.NotNil(t, citationService)
	assert.NotNil(t, sourceCatalog)
	assert.NotNil(t, documentStore)
	require.NotNil(t, newIngestService)

	svc, err := newIngestService(ingestOptions{Workers: 2, OutDir: dir + "/out"})
	require.NoError(t, err)
	assert.NotNil(t, svc)

	docs, err := documentService.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestPrepare_BadConfig(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	servicesReady = false

	dir := t.TempDir()
	configPath = dir + "/config.toml"
	require.NoError(t, os.WriteFile(configPath, []byte("[ingest]\nworkers = 0\n"), 0600))

	err := prepare(searchCmd, nil)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Contains(t, err.Error(), "loading config")
}
