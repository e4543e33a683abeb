// Package reconcile compares the two exported datasets of a consistency run.
//
// Each side is reduced to a set of lines and the engine reports the lines that
// exist only in RDS and only in Redshift. Both sides are equal when both
// differences are empty; Result.Err turns a non-empty difference into an error
// wrapping ErrMismatch.
//
// # Sentinels
//
// Options.InjectSentinels adds "DUMMY in RDS" and "DUMMY in REDSHIFT" to the
// respective sides before differencing. Each must surface as a difference on its
// own side (Result.SentinelsVerified); they are then removed from the reported
// result, so an injected run still reports equal datasets as consistent.
//
// # Usage Example
//
//	result := reconcile.Reconcile(rdsLines, redshiftLines, reconcile.Options{})
//	if err := result.Err(); err != nil {
//	    log.Error("datasets differ", zap.Strings("only_in_rds", result.OnlyInRelational))
//	}
package reconcile
