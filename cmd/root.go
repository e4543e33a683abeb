package cmd

import (
	"errors"
	"fmt"
	"os"

	"parity-check/core/config"
	"parity-check/core/exitcode"
	"parity-check/core/logger"
	"parity-check/core/reconcile"
	"parity-check/feature/export"
	"parity-check/feature/objects"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var configFile string

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "parity-check",
	Short: "RDS and Redshift consistency checker",
	Long: `parity-check exports the same query from RDS (MySQL) and Redshift into S3,
downloads both result sets and reports every row that exists on one side only.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format with debug level for readable ISO8601 timestamps
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(exitCodeFor(err))
	}
}

// exitCodeFor maps an error class to the process exit code.
func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return exitcode.Success
	case errors.Is(err, config.ErrInvalid):
		return exitcode.ConfigError
	case errors.Is(err, export.ErrExport):
		return exitcode.ExportError
	case errors.Is(err, objects.ErrStorage):
		return exitcode.StorageError
	case errors.Is(err, reconcile.ErrMismatch):
		return exitcode.Mismatch
	default:
		return exitcode.Failure
	}
}

// loadConfig loads and validates the configuration for a command.
func loadConfig(withExport bool) (*config.Config, error) {
	cfg, err := config.LoadConfig(".", configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(withExport); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *logger.Config) (*zap.Logger, error) {
	l, err := logger.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create logger: %w", config.ErrInvalid, err)
	}
	return l, nil
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configFile, "config", "", "optional config file (YAML, JSON or TOML)")
}
