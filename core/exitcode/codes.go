package exitcode

// Exit codes for the parity-check CLI.
// Schedulers wrapping the binary can use these to tell a broken run from a real inconsistency.
const (
	// Success - both sources hold the same data
	Success = 0

	// Failure - unclassified error
	Failure = 1

	// ConfigError - missing or invalid configuration
	// Don't retry: fix the config first
	ConfigError = 2

	// ExportError - RDS export or Redshift UNLOAD failed
	// Check database permissions and the IAM role
	ExportError = 3

	// StorageError - listing or downloading from S3 failed
	// Retry with backoff
	StorageError = 4

	// Mismatch - the run completed and the sources differ
	// Don't retry: investigate the data
	Mismatch = 5
)
