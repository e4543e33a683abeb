// Package warehouse handles connections to the Redshift cluster.
//
// Redshift is reached through lib/pq and database/sql. Only the connection is
// managed here; the UNLOAD statement itself lives in feature/export.
package warehouse
