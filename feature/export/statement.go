package export

import (
	"fmt"
	"strings"
)

// OutfileStatement appends the Aurora MySQL export-to-S3 clause to query.
// A trailing semicolon on query is dropped, otherwise the clause would land after it.
func OutfileStatement(query, destination string) string {
	return fmt.Sprintf("%s INTO OUTFILE S3 '%s' FIELDS TERMINATED BY ',' LINES TERMINATED BY '\\n'",
		trimQuery(query), quote(destination))
}

// UnloadStatement wraps query in a Redshift UNLOAD authenticated with iamRole.
// query is embedded in a string literal, so its single quotes are doubled.
// An empty region leaves out the REGION clause and Redshift uses the cluster's region.
func UnloadStatement(query, destination, iamRole, region string) string {
	stmt := fmt.Sprintf("UNLOAD ('%s') TO '%s' CREDENTIALS 'aws_iam_role=%s' DELIMITER ','",
		quote(trimQuery(query)), quote(destination), quote(iamRole))
	if region != "" {
		stmt += fmt.Sprintf(" REGION '%s'", quote(region))
	}
	return stmt
}

// RelationalDestination builds the s3-<region>:// URI Aurora MySQL expects.
func RelationalDestination(region, bucket, prefix string) string {
	if region == "" {
		return fmt.Sprintf("s3://%s/%s", bucket, prefix)
	}
	return fmt.Sprintf("s3-%s://%s/%s", region, bucket, prefix)
}

// WarehouseDestination builds the s3:// URI UNLOAD expects.
func WarehouseDestination(bucket, prefix string) string {
	return fmt.Sprintf("s3://%s/%s", bucket, prefix)
}

func trimQuery(query string) string {
	return strings.TrimRight(strings.TrimSpace(query), "; \t\r\n")
}

func quote(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
