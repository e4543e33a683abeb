// Package database handles connections to the relational source (RDS / Aurora MySQL).
//
// It provides a wrapper around GORM to properly configure MySQL connections
// based on the application's configuration: URL-encoded credentials, connection
// and I/O timeouts, and a ping before the handle is returned.
//
// # Usage
//
//	db, err := database.Connect(ctx, cfg.RDS)
//	if err != nil {
//	    return err
//	}
//	defer database.Close(db)
package database
