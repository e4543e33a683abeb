package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"parity-check/core/config"
	"parity-check/core/storage"
	"parity-check/feature/check"
	"parity-check/feature/export"
	"parity-check/feature/objects"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var checkOpts check.Options

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Export both sources to S3 and compare them",
	Long: `Runs the full pipeline: export the RDS query with INTO OUTFILE S3, export the
Redshift query with UNLOAD, download both result sets and compare them line by line.
Exits with a non-zero status when the datasets differ.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := interruptible(cmd)
		defer stop()

		jsonOutput, _ := cmd.Flags().GetBool("json")
		inject, _ := cmd.Flags().GetBool("inject-sentinels")

		if checkOpts.SkipExport && (checkOpts.RDSPrefix == "" || checkOpts.RedshiftPrefix == "") {
			return fmt.Errorf("%w: --skip-export requires --rds-prefix and --redshift-prefix", config.ErrInvalid)
		}

		cfg, err := loadConfig(!checkOpts.SkipExport)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("inject-sentinels") {
			cfg.Check.InjectSentinels = inject
		}

		logg, err := newLogger(&cfg.Log)
		if err != nil {
			return err
		}
		defer logg.Sync()

		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to create storage client: %w", err)
		}

		runner := check.NewRunner(
			cfg.Check,
			cfg.Storage.Region,
			export.NewRelationalExporter(cfg.RDS, logg),
			export.NewWarehouseExporter(cfg.Redshift, cfg.Storage.Region, logg),
			objects.NewBucket(client, cfg.Storage.Bucket, cfg.Check.ListPageSize, logg),
			logg,
		)

		report, err := runner.Run(ctx, checkOpts)
		if report != nil {
			if jsonOutput {
				if encErr := writeJSON(cmd, report); encErr != nil {
					return encErr
				}
			} else if report.Consistent {
				logg.Info("Data is consistent between RDS and Redshift",
					zap.String("run_id", report.RunID),
					zap.Int("lines", report.RDS.Lines),
					zap.Duration("elapsed", report.Elapsed),
				)
			}
		}
		return err
	},
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

// interruptible returns the command context cancelled on SIGINT or SIGTERM.
func interruptible(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
}

func init() {
	RootCmd.AddCommand(checkCmd)
	checkCmd.Flags().Bool("json", false, "print the run report as JSON")
	checkCmd.Flags().BoolVar(&checkOpts.SkipExport, "skip-export", false, "compare an earlier export instead of exporting again")
	checkCmd.Flags().StringVar(&checkOpts.RDSPrefix, "rds-prefix", "", "object prefix of the RDS export (default <check.rds_prefix>_<timestamp>)")
	checkCmd.Flags().StringVar(&checkOpts.RedshiftPrefix, "redshift-prefix", "", "object prefix of the Redshift export (default <check.redshift_prefix>_<timestamp>)")
	checkCmd.Flags().BoolVar(&checkOpts.Cleanup, "cleanup", false, "remove the exported objects from the bucket after comparing")
	checkCmd.Flags().Bool("inject-sentinels", false, "add a marker row to each side and verify it is reported")
}
