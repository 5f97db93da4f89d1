// Package sqlite provides the SQLite-backed document store and search engine.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. A single database connection serves:
//
//   - DocumentStore: statutes with their provisions and definitions
//   - SearchEngine: FTS5 full-text search over provisions, ranked by BM25
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
// Applied versions are recorded in schema_migrations.
//
// # Data Location
//
// By default, the database is stored at ~/.tashri/data/tashri.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode. Saving a document replaces its provisions, definitions
// and index rows in one transaction.
package sqlite
