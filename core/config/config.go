package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"parity-check/core/database"
	"parity-check/core/logger"
	"parity-check/core/storage"
	"parity-check/core/warehouse"
	"parity-check/feature/check"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrInvalid is wrapped by every configuration validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// RDS holds connection settings for the relational database.
	RDS database.Config `mapstructure:"rds"`
	// Redshift holds connection settings for the warehouse cluster.
	Redshift warehouse.Config `mapstructure:"redshift"`
	// Storage holds configuration for the object storage (S3 or MinIO).
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Check holds the queries, prefixes and local folders of a consistency run.
	Check check.Config `mapstructure:"check"`
}

// LoadConfig loads configuration from environment variables and .env file.
// When configFile is not empty it is read as well (YAML, JSON or TOML); environment
// variables still take precedence over its values.
func LoadConfig(path, configFile string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. RDS_HOST -> rds.host)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("%w: read %s: %v", ErrInvalid, configFile, err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	return &config, nil
}

// Validate reports every required setting that is missing.
// Export settings are only required when exports are going to run.
func (c *Config) Validate(withExport bool) error {
	var errs []error
	require := func(value, key string) {
		if strings.TrimSpace(value) == "" {
			errs = append(errs, fmt.Errorf("%w: %s is required", ErrInvalid, key))
		}
	}

	require(c.Storage.Bucket, "storage.bucket")

	if withExport {
		errs = append(errs, c.ValidateExport(SourceRDS), c.ValidateExport(SourceRedshift))
	}

	if c.Check.ListPageSize < 0 {
		errs = append(errs, fmt.Errorf("%w: check.list_page_size must not be negative", ErrInvalid))
	}

	return errors.Join(errs...)
}

// Export sources accepted by ValidateExport.
const (
	SourceRDS      = "rds"
	SourceRedshift = "redshift"
)

// ValidateExport reports the settings a single export from source is missing.
func (c *Config) ValidateExport(source string) error {
	var errs []error
	require := func(value, key string) {
		if strings.TrimSpace(value) == "" {
			errs = append(errs, fmt.Errorf("%w: %s is required", ErrInvalid, key))
		}
	}

	switch source {
	case SourceRDS:
		require(c.RDS.Host, "rds.host")
		require(c.Storage.Region, "storage.region")
		require(c.Check.RDSQuery, "check.rds_query")
	case SourceRedshift:
		require(c.Redshift.Host, "redshift.host")
		require(c.Redshift.IAMRole, "redshift.iam_role")
		require(c.Check.RedshiftQuery, "check.redshift_query")
	default:
		errs = append(errs, fmt.Errorf("%w: unknown export source %q", ErrInvalid, source))
	}

	return errors.Join(errs...)
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
