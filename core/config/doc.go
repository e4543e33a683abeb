// Package config provides configuration management for parity-check.
//
// It utilizes Viper for loading configuration from environment variables,
// an optional .env file and an optional config file (--config).
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - RDS: MySQL (Aurora/RDS) connection details
//   - Redshift: warehouse connection details and the IAM role used by UNLOAD
//   - Storage: S3/MinIO credentials, bucket and region
//   - Log: Logging level and format
//   - Check: queries, object prefixes and local download folders
//
// Every key maps to an upper-case environment variable, e.g. rds.host -> RDS_HOST,
// check.rds_query -> CHECK_RDS_QUERY.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".", "")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(true); err != nil {
//	    log.Fatal(err)
//	}
package config
