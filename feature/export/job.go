package export

import (
	"errors"
	"fmt"
	"time"
)

// ErrExport is wrapped by every export failure.
var ErrExport = errors.New("export failed")

// Source identifies which system an export job runs against.
type Source string

const (
	// SourceRelational is the RDS / Aurora MySQL database.
	SourceRelational Source = "rds"
	// SourceWarehouse is the Redshift cluster.
	SourceWarehouse Source = "redshift"
)

// Stage names the step of an export that failed.
type Stage string

const (
	StageConnect Stage = "connect"
	StageExecute Stage = "execute"
	StageFetch   Stage = "fetch"
)

// Job describes a single export: run Query against Source and write the result to Destination.
type Job struct {
	// Source is the system the query runs against.
	Source Source
	// Query is the SELECT whose result gets exported.
	Query string
	// Destination is the object-store URI the engine writes to.
	Destination string
}

// Result describes a finished export.
type Result struct {
	Source      Source        `json:"source"`
	Destination string        `json:"destination"`
	Elapsed     time.Duration `json:"elapsed"`
}

// Error is returned when an export job fails.
type Error struct {
	Source      Source
	Stage       Stage
	Destination string
	Err         error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s export to %s failed at %s: %v", e.Source, e.Destination, e.Stage, e.Err)
}

// Unwrap exposes both ErrExport and the underlying cause to errors.Is/As.
func (e *Error) Unwrap() []error {
	return []error{ErrExport, e.Err}
}

func newError(job Job, stage Stage, err error) *Error {
	return &Error{Source: job.Source, Stage: stage, Destination: job.Destination, Err: err}
}
