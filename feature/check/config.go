package check

// Config holds the parameters of a consistency run.
type Config struct {
	// RDSQuery is the SELECT exported from RDS.
	RDSQuery string `mapstructure:"rds_query" default:""`
	// RedshiftQuery is the SELECT unloaded from Redshift.
	RedshiftQuery string `mapstructure:"redshift_query" default:""`
	// RDSPrefix is the object prefix of RDS exports; the run stamp is appended.
	RDSPrefix string `mapstructure:"rds_prefix" default:"rds"`
	// RedshiftPrefix is the object prefix of Redshift exports; the run stamp is appended.
	RedshiftPrefix string `mapstructure:"redshift_prefix" default:"redshift"`
	// RDSFolder receives the downloaded RDS files.
	RDSFolder string `mapstructure:"rds_folder" default:"data_rds"`
	// RedshiftFolder receives the downloaded Redshift files.
	RedshiftFolder string `mapstructure:"redshift_folder" default:"data_redshift"`
	// ClearFolders empties both folders before downloading.
	ClearFolders bool `mapstructure:"clear_folders" default:"true"`
	// InjectSentinels turns on the reconciler's sentinel self-test.
	InjectSentinels bool `mapstructure:"inject_sentinels" default:"false"`
	// ListPageSize is the number of keys requested per listing page.
	ListPageSize int `mapstructure:"list_page_size" default:"1000"`
}
