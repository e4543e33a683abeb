package warehouse

// Config holds configuration for the warehouse (Redshift) connection.
type Config struct {
	// Host is the cluster endpoint.
	Host string `mapstructure:"host" default:""`
	// Port is the cluster port.
	Port int `mapstructure:"port" default:"5439"`
	// User is the database user.
	User string `mapstructure:"user" default:"awsuser"`
	// Password is the database password.
	Password string `mapstructure:"password" default:""`
	// Name is the database name.
	Name string `mapstructure:"name" default:"dev"`
	// SSLMode is passed to the driver (disable, require, verify-full).
	SSLMode string `mapstructure:"sslmode" default:"require"`
	// IAMRole is the role ARN UNLOAD assumes to write into the bucket.
	IAMRole string `mapstructure:"iam_role" default:""`
	// TimeoutSeconds bounds connection setup.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
