// Package driving defines the interfaces that external actors use to
// call INTO the core: the CLI, the MCP server and the file watcher.
//
// These are the "driving" or "primary" ports in hexagonal architecture.
//
// # Import Rules
//
//   - Can Import: domain package only
package driving
