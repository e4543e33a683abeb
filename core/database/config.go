package database

// Config holds configuration for the relational (RDS MySQL) connection.
type Config struct {
	// Host is the database host.
	Host string `mapstructure:"host" default:""`
	// Port is the database port.
	Port int `mapstructure:"port" default:"3306"`
	// User is the database user.
	User string `mapstructure:"user" default:"admin"`
	// Password is the database password.
	Password string `mapstructure:"password" default:""`
	// Name is the database name.
	Name string `mapstructure:"name" default:""`
	// TimeoutSeconds bounds connection setup and the initial ping. Statements run unbounded.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
