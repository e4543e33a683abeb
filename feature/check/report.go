package check

import (
	"time"

	"parity-check/core/reconcile"
	"parity-check/feature/export"
)

// Report describes one consistency run.
type Report struct {
	// RunID identifies the run in logs.
	RunID string `json:"run_id"`

	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at"`

	// Elapsed is the total run time.
	Elapsed time.Duration `json:"elapsed"`

	// Exports lists the exports the run performed; empty when exports were skipped.
	Exports []export.Result `json:"exports"`

	// RDS describes the downloaded RDS dataset.
	RDS SourceReport `json:"rds"`

	// Redshift describes the downloaded Redshift dataset.
	Redshift SourceReport `json:"redshift"`

	// Result is the set difference of both datasets.
	Result *reconcile.Result `json:"result"`

	// Consistent is true when both datasets hold the same lines.
	Consistent bool `json:"consistent"`
}

// SourceReport describes the data fetched for one source.
type SourceReport struct {
	// Prefix is the object prefix the export was written under.
	Prefix string `json:"prefix"`

	// Folder is the local folder files were downloaded into.
	Folder string `json:"folder"`

	// Files are the local file paths in listing order.
	Files []string `json:"files"`

	// Lines is the number of lines loaded from Files.
	Lines int `json:"lines"`
}
