// Package check runs a complete RDS vs Redshift consistency run.
//
// The Runner executes a fixed sequence and never goes back a step:
//
//  1. verify the bucket is reachable
//  2. export the RDS query (INTO OUTFILE S3), then the Redshift query (UNLOAD)
//  3. for each source: list its prefix, download into a local folder, load the lines
//  4. reconcile both datasets and log the outcome
//  5. optionally remove the exported objects
//
// Any failure before the diff aborts the run. A completed run with differing data
// returns its Report together with an error wrapping reconcile.ErrMismatch.
package check
