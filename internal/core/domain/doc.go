// Package domain defines the core entities for tashri.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - ParsedDocument: A statute with its provisions and definitions
//   - ParsedProvision: An addressable article or section
//   - ParsedDefinition: A defined term mined from a definitions provision
//   - Citation: A transient, parsed free-text citation
//   - Source: A catalogue entry describing where a statute is published
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
package domain
