package domain

import "time"

// IngestOutcome is the final state of one document in an ingest run.
type IngestOutcome string

const (
	IngestSucceeded IngestOutcome = "succeeded"
	IngestFailed    IngestOutcome = "failed"
)

// IngestResult records what happened to a single source during a run.
type IngestResult struct {
	SourceID    string        `json:"source_id"`
	Outcome     IngestOutcome `json:"outcome"`
	Provisions  int           `json:"provisions"`
	Definitions int           `json:"definitions"`
	Language    string        `json:"language,omitempty"`

	// Drifted is set when the upstream content hash changed since the
	// previous ingestion.
	Drifted bool `json:"drifted,omitempty"`

	// Warnings are non-fatal extraction misses.
	Warnings []string `json:"warnings,omitempty"`

	// Error is set for failed outcomes.
	Error string `json:"error,omitempty"`

	Duration time.Duration `json:"duration"`
}

// IngestReport summarises one ingest run across every requested source.
type IngestReport struct {
	RunID      string         `json:"run_id"`
	StartedAt  time.Time      `json:"started_at"`
	FinishedAt time.Time      `json:"finished_at"`
	Results    []IngestResult `json:"results"`
}

// Succeeded returns the number of documents ingested successfully.
func (r *IngestReport) Succeeded() int {
	n := 0
	for i := range r.Results {
		if r.Results[i].Outcome == IngestSucceeded {
			n++
		}
	}
	return n
}

// Failed returns the number of documents that failed.
func (r *IngestReport) Failed() int {
	return len(r.Results) - r.Succeeded()
}
