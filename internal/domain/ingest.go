package domain

import "time"

// IngestStats holds the outcome of one pull-based ingestion invocation.
// Failed counts per-item failures (malformed items, single append failures)
// that were skipped without aborting the batch.
type IngestStats struct {
	Source    string        `json:"source"`
	Fetched   int           `json:"fetched"`
	Submitted int           `json:"submitted"`
	Failed    int           `json:"failed"`
	Published int           `json:"published"`
	Duration  time.Duration `json:"duration"`
}
