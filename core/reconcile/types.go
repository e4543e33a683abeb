package reconcile

import (
	"errors"
	"fmt"
)

// ErrMismatch is returned by Result.Err when the two datasets differ.
var ErrMismatch = errors.New("data is different between RDS and Redshift")

const (
	// RelationalSentinel is appended to the relational dataset when sentinels are injected.
	RelationalSentinel = "DUMMY in RDS"
	// WarehouseSentinel is appended to the warehouse dataset when sentinels are injected.
	WarehouseSentinel = "DUMMY in REDSHIFT"
)

// Options controls reconcile behavior.
type Options struct {
	// InjectSentinels runs the sentinel self-test: each side's sentinel must be absent
	// from both datasets so it would surface as a difference. The reported difference
	// is always computed on the real data. Off by default.
	InjectSentinels bool
}

// Result is the set difference of the two datasets.
type Result struct {
	// OnlyInRelational holds distinct lines present in RDS but not in Redshift, sorted.
	OnlyInRelational []string `json:"only_in_rds"`

	// OnlyInWarehouse holds distinct lines present in Redshift but not in RDS, sorted.
	OnlyInWarehouse []string `json:"only_in_redshift"`

	// Summary provides aggregate counts.
	Summary Summary `json:"summary"`

	// SentinelsInjected reports whether the sentinel self-test ran.
	SentinelsInjected bool `json:"sentinels_injected"`

	// SentinelsVerified is true when every sentinel would surface on its own side.
	SentinelsVerified bool `json:"sentinels_verified"`
}

// Summary provides aggregate statistics for a reconcile result.
type Summary struct {
	// RelationalLines is the number of lines read from the RDS export.
	RelationalLines int `json:"rds_lines"`

	// WarehouseLines is the number of lines read from the Redshift export.
	WarehouseLines int `json:"redshift_lines"`

	// RelationalDistinct is the number of distinct RDS lines.
	RelationalDistinct int `json:"rds_distinct"`

	// WarehouseDistinct is the number of distinct Redshift lines.
	WarehouseDistinct int `json:"redshift_distinct"`

	// OnlyInRelational counts lines missing from Redshift.
	OnlyInRelational int `json:"only_in_rds"`

	// OnlyInWarehouse counts lines missing from RDS.
	OnlyInWarehouse int `json:"only_in_redshift"`
}

// Consistent reports whether both sides hold the same set of lines.
func (r *Result) Consistent() bool {
	return len(r.OnlyInRelational) == 0 && len(r.OnlyInWarehouse) == 0
}

// Err returns an error wrapping ErrMismatch if the datasets differ, nil otherwise.
func (r *Result) Err() error {
	if r.Consistent() {
		return nil
	}
	return &MismatchError{
		OnlyInRelational: len(r.OnlyInRelational),
		OnlyInWarehouse:  len(r.OnlyInWarehouse),
	}
}

// MismatchError carries the size of each side of a failed reconciliation.
type MismatchError struct {
	OnlyInRelational int
	OnlyInWarehouse  int
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s: %d only in RDS, %d only in Redshift", ErrMismatch, e.OnlyInRelational, e.OnlyInWarehouse)
}

func (e *MismatchError) Unwrap() error {
	return ErrMismatch
}
