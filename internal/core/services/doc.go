// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Resolution and citation handling are pure functions over rows already
// loaded from the DocumentStore; only ingestion touches the network.
package services
