package cmd

import (
	"fmt"
	"time"

	"parity-check/core/config"
	"parity-check/core/storage"
	"parity-check/feature/check"
	"parity-check/feature/export"
	"parity-check/feature/objects"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Run a single export into S3",
	Long:  `Exports the configured query of one source into the S3 bucket without comparing anything.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// exportRDSCmd represents the export rds command
var exportRDSCmd = &cobra.Command{
	Use:   "rds",
	Short: "Export the RDS query with SELECT ... INTO OUTFILE S3",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(cmd, config.SourceRDS)
	},
}

// exportRedshiftCmd represents the export redshift command
var exportRedshiftCmd = &cobra.Command{
	Use:   "redshift",
	Short: "Export the Redshift query with UNLOAD",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(cmd, config.SourceRedshift)
	},
}

func runExport(cmd *cobra.Command, source string) error {
	ctx, stop := interruptible(cmd)
	defer stop()

	cfg, err := loadConfig(false)
	if err != nil {
		return err
	}
	if err := cfg.ValidateExport(source); err != nil {
		return err
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
	bucket := objects.NewBucket(client, cfg.Storage.Bucket, cfg.Check.ListPageSize, logg)
	if err := bucket.Check(ctx); err != nil {
		return err
	}

	prefix, _ := cmd.Flags().GetString("prefix")

	var (
		exporter check.Exporter
		job      export.Job
	)
	switch source {
	case config.SourceRDS:
		if prefix == "" {
			prefix = check.Prefix(cfg.Check.RDSPrefix, time.Now())
		}
		exporter = export.NewRelationalExporter(cfg.RDS, logg)
		job = export.Job{
			Source:      export.SourceRelational,
			Query:       cfg.Check.RDSQuery,
			Destination: export.RelationalDestination(cfg.Storage.Region, bucket.Name(), prefix),
		}
	default:
		if prefix == "" {
			prefix = check.Prefix(cfg.Check.RedshiftPrefix, time.Now())
		}
		exporter = export.NewWarehouseExporter(cfg.Redshift, cfg.Storage.Region, logg)
		job = export.Job{
			Source:      export.SourceWarehouse,
			Query:       cfg.Check.RedshiftQuery,
			Destination: export.WarehouseDestination(bucket.Name(), prefix),
		}
	}

	res, err := exporter.Export(ctx, job)
	if err != nil {
		return err
	}

	logg.Info("Export finished", zap.String("prefix", prefix), zap.String("destination", res.Destination))
	fmt.Fprintln(cmd.OutOrStdout(), prefix)
	return nil
}

func init() {
	RootCmd.AddCommand(exportCmd)
	exportCmd.AddCommand(exportRDSCmd, exportRedshiftCmd)
	exportCmd.PersistentFlags().String("prefix", "", "object prefix to export to (default <configured prefix>_<timestamp>)")
}
