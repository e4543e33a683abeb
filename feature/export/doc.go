// Package export runs the engine-native exports that put each source's query
// result into the S3 bucket.
//
// RDS (Aurora MySQL) writes with SELECT ... INTO OUTFILE S3, Redshift with UNLOAD
// authenticated through an IAM role. Both exporters open one connection per job,
// release it on every exit path and return a *Error wrapping ErrExport on failure,
// which the caller must check before looking for exported files.
//
// # Usage
//
//	exp := export.NewRelationalExporter(cfg.RDS, log)
//	_, err := exp.Export(ctx, export.Job{
//	    Source:      export.SourceRelational,
//	    Query:       "select id from posts",
//	    Destination: export.RelationalDestination(region, bucket, "rds_20240101_120000"),
//	})
package export
