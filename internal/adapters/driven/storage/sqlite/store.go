package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/tashri/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/tashri/internal/core/domain"
	"github.com/custodia-labs/tashri/internal/core/ports/driven"
	"github.com/custodia-labs/tashri/internal/logger"
)

// DatabaseFile is the database file name inside the data directory.
const DatabaseFile = "tashri.db"

// Snippet markers wrap matched terms in search excerpts.
const (
	snippetOpen     = "["
	snippetClose    = "]"
	snippetEllipsis = "…"
	snippetTokens   = 24
)

// Store is a SQLite-backed storage that provides the document store and
// search engine through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.tashri/data/tashri.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".tashri", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DatabaseFile)

	// WAL for concurrent readers; foreign keys on every pooled connection
	db, err := sql.Open("sqlite", dbPath+
		"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// DocumentStore returns a DocumentStore interface backed by this store.
func (s *Store) DocumentStore() driven.DocumentStore {
	return &documentStore{store: s}
}

// SearchEngine returns a SearchEngine interface backed by this store.
func (s *Store) SearchEngine() driven.SearchEngine {
	return &searchEngine{store: s}
}

// migration is one embedded NNN_name.up.sql script.
type migration struct {
	version int
	name    string
}

// migrate applies the embedded scripts newer than the recorded schema
// version, each in its own transaction.
func (s *Store) migrate(fsys fs.FS) error {
	if _, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`); err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var applied int
	if err := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&applied); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}

	pending, err := pendingMigrations(fsys, applied)
	if err != nil {
		return err
	}
	for _, m := range pending {
		script, err := fs.ReadFile(fsys, m.name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", m.name, err)
		}
		if err := s.applyMigration(m.version, string(script)); err != nil {
			return fmt.Errorf("executing migration %s: %w", m.name, err)
		}
		logger.Debug("Applied migration %s", m.name)
	}
	return nil
}

// pendingMigrations lists the up scripts above version, oldest first.
func pendingMigrations(fsys fs.FS, version int) ([]migration, error) {
	names, err := fs.Glob(fsys, "*.up.sql")
	if err != nil {
		return nil, fmt.Errorf("listing migrations: %w", err)
	}

	var pending []migration
	for _, name := range names {
		prefix, _, ok := strings.Cut(name, "_")
		n, err := strconv.Atoi(prefix)
		if !ok || err != nil {
			return nil, fmt.Errorf("migration %s has no version prefix", name)
		}
		if n > version {
			pending = append(pending, migration{version: n, name: name})
		}
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].version < pending[j].version })
	return pending, nil
}

func (s *Store) applyMigration(version int, script string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.Exec(script); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
		return err
	}
	return tx.Commit()
}

// SchemaVersion returns the highest applied migration version.
func (s *Store) SchemaVersion(ctx context.Context) (int, error) {
	var version int
	err := s.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("getting schema version: %w", err)
	}
	return version, nil
}

// ==================== Document Store ====================

// documentStore implements driven.DocumentStore.
type documentStore struct {
	store *Store
}

var _ driven.DocumentStore = (*documentStore)(nil)

const documentColumns = `id, type, title, title_en, short_name, status, issued_date,
	in_force_date, url, legal_zone, language, content_hash`

const provisionColumns = `provision_ref, chapter, section, title, content, language`

// SaveDocument stores a document, replacing its provisions, definitions and
// index rows wholesale. The row keeps its original insertion position.
func (s *documentStore) SaveDocument(ctx context.Context, doc *domain.ParsedDocument) error {
	if doc == nil || doc.ID == "" {
		return fmt.Errorf("%w: document must have an id", domain.ErrInvalidInput)
	}
	docType := doc.Type
	if docType == "" {
		docType = domain.DocumentTypeStatute
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.ExecContext(ctx, `
		INSERT INTO documents (`+documentColumns+`, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			type = excluded.type,
			title = excluded.title,
			title_en = excluded.title_en,
			short_name = excluded.short_name,
			status = excluded.status,
			issued_date = excluded.issued_date,
			in_force_date = excluded.in_force_date,
			url = excluded.url,
			legal_zone = excluded.legal_zone,
			language = excluded.language,
			content_hash = excluded.content_hash,
			updated_at = excluded.updated_at
	`, doc.ID, docType, doc.Title, doc.TitleEn, doc.ShortName, string(doc.Status), doc.IssuedDate,
		doc.InForceDate, doc.URL, string(doc.LegalZone), doc.Language, doc.ContentHash, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("saving document: %w", err)
	}

	if err := clearChildren(ctx, tx, doc.ID); err != nil {
		return err
	}
	if err := insertProvisions(ctx, tx, doc.ID, doc.Provisions); err != nil {
		return err
	}
	if err := insertDefinitions(ctx, tx, doc.ID, doc.Definitions); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func clearChildren(ctx context.Context, tx *sql.Tx, documentID string) error {
	for _, table := range []string{"provisions_fts", "provisions", "definitions"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE document_id = ?", documentID); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	return nil
}

func insertProvisions(ctx context.Context, tx *sql.Tx, documentID string, provisions []domain.ParsedProvision) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO provisions (document_id, position, `+provisionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	fts, err := tx.PrepareContext(ctx, `
		INSERT INTO provisions_fts (content, title, chapter, document_id, provision_ref)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer fts.Close()

	for i, p := range provisions {
		if _, err := stmt.ExecContext(ctx, documentID, i, p.ProvisionRef, p.Chapter,
			p.Section, p.Title, p.Content, p.Language); err != nil {
			return fmt.Errorf("saving provision %s: %w", p.ProvisionRef, err)
		}
		if _, err := fts.ExecContext(ctx, p.Content, p.Title, p.Chapter, documentID, p.ProvisionRef); err != nil {
			return fmt.Errorf("indexing provision %s: %w", p.ProvisionRef, err)
		}
	}
	return nil
}

func insertDefinitions(ctx context.Context, tx *sql.Tx, documentID string, definitions []domain.ParsedDefinition) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO definitions (document_id, term, position, definition, source_provision)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for i, d := range definitions {
		if _, err := stmt.ExecContext(ctx, documentID, d.Term, i, d.Definition, d.SourceProvision); err != nil {
			return fmt.Errorf("saving definition %q: %w", d.Term, err)
		}
	}
	return nil
}

// GetDocument retrieves document metadata by ID.
func (s *documentStore) GetDocument(ctx context.Context, id string) (*domain.ParsedDocument, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT `+documentColumns+` FROM documents WHERE id = ?
	`, id)

	doc, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return doc, err
}

// ListDocuments returns metadata for every document in insertion order.
func (s *documentStore) ListDocuments(ctx context.Context) ([]domain.ParsedDocument, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT `+documentColumns+` FROM documents ORDER BY rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	docs := []domain.ParsedDocument{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}

	return docs, nil
}

// DocumentExists reports whether a document id is stored.
func (s *documentStore) DocumentExists(ctx context.Context, id string) (bool, error) {
	var n int
	err := s.store.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM documents WHERE id = ?", id).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("checking document: %w", err)
	}
	return n > 0, nil
}

// ListProvisions returns the provisions of a document in source order.
func (s *documentStore) ListProvisions(ctx context.Context, documentID string) ([]domain.ParsedProvision, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT `+provisionColumns+` FROM provisions
		WHERE document_id = ? ORDER BY position
	`, documentID)
	if err != nil {
		return nil, fmt.Errorf("querying provisions: %w", err)
	}
	defer rows.Close()

	provisions := []domain.ParsedProvision{}
	for rows.Next() {
		p, err := scanProvision(rows)
		if err != nil {
			return nil, err
		}
		provisions = append(provisions, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating provisions: %w", err)
	}

	return provisions, nil
}

// GetProvision retrieves a provision by exact provision_ref.
func (s *documentStore) GetProvision(ctx context.Context, documentID, provisionRef string) (*domain.ParsedProvision, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT `+provisionColumns+` FROM provisions
		WHERE document_id = ? AND provision_ref = ?
	`, documentID, provisionRef)

	p, err := scanProvision(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return p, err
}

// GetProvisionBySection retrieves the first provision in source order whose
// raw section numeral equals section.
func (s *documentStore) GetProvisionBySection(ctx context.Context, documentID, section string) (*domain.ParsedProvision, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT `+provisionColumns+` FROM provisions
		WHERE document_id = ? AND section = ?
		ORDER BY position LIMIT 1
	`, documentID, section)

	p, err := scanProvision(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return p, err
}

// ListDefinitions returns a document's definitions in extraction order.
func (s *documentStore) ListDefinitions(ctx context.Context, documentID string) ([]domain.ParsedDefinition, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT term, definition, source_provision FROM definitions
		WHERE document_id = ? ORDER BY position
	`, documentID)
	if err != nil {
		return nil, fmt.Errorf("querying definitions: %w", err)
	}
	defer rows.Close()

	definitions := []domain.ParsedDefinition{}
	for rows.Next() {
		var d domain.ParsedDefinition
		if err := rows.Scan(&d.Term, &d.Definition, &d.SourceProvision); err != nil {
			return nil, fmt.Errorf("scanning definition: %w", err)
		}
		definitions = append(definitions, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating definitions: %w", err)
	}

	return definitions, nil
}

// DeleteDocument removes a document with its provisions, definitions and
// index rows.
func (s *documentStore) DeleteDocument(ctx context.Context, id string) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err := clearChildren(ctx, tx, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// ==================== Search Engine ====================

// searchEngine implements driven.SearchEngine over provisions_fts.
type searchEngine struct {
	store *Store
}

var _ driven.SearchEngine = (*searchEngine)(nil)

// Search runs query as an FTS5 MATCH expression. Rows are ordered by BM25;
// Score is the negated bm25 value so higher is better.
func (e *searchEngine) Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return []domain.SearchResult{}, nil
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = 20
	}

	rows, err := e.store.db.QueryContext(ctx, `
		SELECT p.document_id, d.title, d.legal_zone, p.provision_ref, p.title, p.chapter,
			snippet(provisions_fts, 0, ?, ?, ?, ?),
			bm25(provisions_fts)
		FROM provisions_fts
		JOIN provisions p
			ON p.document_id = provisions_fts.document_id
			AND p.provision_ref = provisions_fts.provision_ref
		JOIN documents d ON d.id = p.document_id
		WHERE provisions_fts MATCH ?
			AND (? = '' OR d.legal_zone = ?)
			AND (? = '' OR p.document_id = ?)
		ORDER BY bm25(provisions_fts)
		LIMIT ?
	`, snippetOpen, snippetClose, snippetEllipsis, snippetTokens,
		query,
		string(opts.Zone), string(opts.Zone),
		opts.DocumentID, opts.DocumentID,
		limit)
	if err != nil {
		return nil, fmt.Errorf("searching provisions: %w", err)
	}
	defer rows.Close()

	results := []domain.SearchResult{}
	for rows.Next() {
		var r domain.SearchResult
		var zone string
		var rank float64
		if err := rows.Scan(&r.DocumentID, &r.DocumentTitle, &zone, &r.ProvisionRef,
			&r.Title, &r.Chapter, &r.Snippet, &rank); err != nil {
			return nil, fmt.Errorf("scanning search result: %w", err)
		}
		r.Zone = domain.LegalZone(zone)
		r.Score = -rank
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating search results: %w", err)
	}

	return results, nil
}

// ==================== Helper Functions ====================

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(row scanner) (*domain.ParsedDocument, error) {
	var doc domain.ParsedDocument
	var status, zone string

	if err := row.Scan(&doc.ID, &doc.Type, &doc.Title, &doc.TitleEn, &doc.ShortName, &status,
		&doc.IssuedDate, &doc.InForceDate, &doc.URL, &zone, &doc.Language, &doc.ContentHash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	doc.Status = domain.Status(status)
	doc.LegalZone = domain.LegalZone(zone)
	return &doc, nil
}

func scanProvision(row scanner) (*domain.ParsedProvision, error) {
	var p domain.ParsedProvision
	if err := row.Scan(&p.ProvisionRef, &p.Chapter, &p.Section, &p.Title, &p.Content, &p.Language); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning provision: %w", err)
	}
	return &p, nil
}
