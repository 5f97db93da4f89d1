// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - Fetcher: Retrieves raw HTML for a catalogue source (rate limited, retried)
//   - Extractor: Turns raw HTML into a ParsedDocument for one legal zone
//   - ExtractorRegistry: Dispatches raw documents to the extractor for their zone
//   - DocumentStore: Statute, provision and definition persistence
//   - SearchEngine: Full-text search over provisions (SQLite FTS5)
//   - SourceCatalog: The list of statutes to ingest
//   - DocumentExporter: Writes documents in the JSON interchange shape
//   - ConfigStore: Application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or extractor package
package driven
