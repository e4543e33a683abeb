package check

import (
	"context"
	"fmt"
	"time"

	"parity-check/core/logger"
	"parity-check/core/reconcile"
	"parity-check/core/utils"
	"parity-check/feature/export"
	"parity-check/feature/objects"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// stampLayout matches the timestamp suffix of export prefixes (rds_20240131_235959).
const stampLayout = "20060102_150405"

// Exporter runs one export job.
type Exporter interface {
	Export(ctx context.Context, job export.Job) (*export.Result, error)
}

// Options tweaks a single run.
type Options struct {
	// SkipExport reuses exports that already exist under RDSPrefix and RedshiftPrefix.
	SkipExport bool
	// RDSPrefix overrides the generated RDS object prefix.
	RDSPrefix string
	// RedshiftPrefix overrides the generated Redshift object prefix.
	RedshiftPrefix string
	// Cleanup removes both runs' exported objects from the bucket at the end.
	Cleanup bool
}

// Runner executes the export, download and diff steps of a consistency run.
type Runner struct {
	cfg        Config
	region     string
	relational Exporter
	warehouse  Exporter
	bucket     *objects.Bucket
	log        *zap.Logger
	now        func() time.Time
}

// NewRunner wires a runner. region is the bucket region handed to the RDS export.
func NewRunner(cfg Config, region string, relational, warehouse Exporter, bucket *objects.Bucket, log *zap.Logger) *Runner {
	return &Runner{
		cfg:        cfg,
		region:     region,
		relational: relational,
		warehouse:  warehouse,
		bucket:     bucket,
		log:        log,
		now:        time.Now,
	}
}

// Run executes the whole pipeline once. It returns the report together with an
// error wrapping reconcile.ErrMismatch when the datasets differ. Any failure
// before the diff aborts the run and returns a nil report.
func (r *Runner) Run(ctx context.Context, opts Options) (*Report, error) {
	started := r.now()
	report := &Report{
		RunID:     uuid.NewString(),
		StartedAt: started,
		Exports:   []export.Result{},
	}
	l := logger.WithRun(r.log, report.RunID)

	report.RDS.Prefix = prefixOr(opts.RDSPrefix, r.cfg.RDSPrefix, started)
	report.Redshift.Prefix = prefixOr(opts.RedshiftPrefix, r.cfg.RedshiftPrefix, started)

	l.Info("Starting consistency run",
		zap.String("bucket", r.bucket.Name()),
		zap.String("rds_prefix", report.RDS.Prefix),
		zap.String("redshift_prefix", report.Redshift.Prefix),
		zap.Bool("skip_export", opts.SkipExport),
	)

	if err := r.bucket.Check(ctx); err != nil {
		return nil, err
	}

	if !opts.SkipExport {
		jobs := []struct {
			exporter Exporter
			job      export.Job
		}{
			{r.relational, export.Job{
				Source:      export.SourceRelational,
				Query:       r.cfg.RDSQuery,
				Destination: export.RelationalDestination(r.region, r.bucket.Name(), report.RDS.Prefix),
			}},
			{r.warehouse, export.Job{
				Source:      export.SourceWarehouse,
				Query:       r.cfg.RedshiftQuery,
				Destination: export.WarehouseDestination(r.bucket.Name(), report.Redshift.Prefix),
			}},
		}

		for _, j := range jobs {
			l.Info("Exporting into S3", zap.String("source", string(j.job.Source)))
			res, err := j.exporter.Export(ctx, j.job)
			if err != nil {
				return nil, err
			}
			report.Exports = append(report.Exports, *res)
		}
	}

	rdsLines, err := r.fetch(ctx, l, &report.RDS, r.cfg.RDSFolder)
	if err != nil {
		return nil, err
	}
	redshiftLines, err := r.fetch(ctx, l, &report.Redshift, r.cfg.RedshiftFolder)
	if err != nil {
		return nil, err
	}

	report.Result = Compare(l, rdsLines, redshiftLines, reconcile.Options{InjectSentinels: r.cfg.InjectSentinels})
	report.Consistent = report.Result.Consistent()

	if opts.Cleanup {
		r.cleanup(ctx, l, report.RDS.Prefix, report.Redshift.Prefix)
	}

	report.Elapsed = r.now().Sub(started)
	return report, report.Result.Err()
}

// fetch lists the source's prefix, downloads the objects and loads their lines.
func (r *Runner) fetch(ctx context.Context, l *zap.Logger, src *SourceReport, folder string) ([]string, error) {
	refs, err := objects.Collect(r.bucket.List(ctx, src.Prefix))
	if err != nil {
		return nil, err
	}
	l.Info("Found exported files", zap.String("prefix", src.Prefix), zap.Int("count", len(refs)))

	dir, err := utils.PrepareFolder(folder, r.cfg.ClearFolders)
	if err != nil {
		return nil, err
	}
	src.Folder = dir

	src.Files, err = r.bucket.Download(ctx, objects.Keys(refs), dir)
	if err != nil {
		return nil, err
	}

	lines, err := objects.LoadLines(src.Files)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", src.Prefix, err)
	}
	src.Lines = len(lines)

	return lines, nil
}

func (r *Runner) cleanup(ctx context.Context, l *zap.Logger, prefixes ...string) {
	for _, prefix := range prefixes {
		if _, err := r.bucket.Remove(ctx, prefix); err != nil {
			l.Warn("Failed to clean up exported objects", zap.String("prefix", prefix), zap.Error(err))
		}
	}
}

// Compare reconciles both datasets and logs the outcome.
// Counts are always logged; the full differences only when the datasets differ.
func Compare(l *zap.Logger, rdsLines, redshiftLines []string, opts reconcile.Options) *reconcile.Result {
	l.Info("Loaded datasets", zap.Int("rds_lines", len(rdsLines)), zap.Int("redshift_lines", len(redshiftLines)))

	result := reconcile.Reconcile(rdsLines, redshiftLines, opts)

	l.Info("Reconciled datasets",
		zap.Int("only_in_rds", result.Summary.OnlyInRelational),
		zap.Int("only_in_redshift", result.Summary.OnlyInWarehouse),
	)

	if opts.InjectSentinels && !result.SentinelsVerified {
		l.Warn("Sentinel self-test failed, a sentinel value occurs in the data")
	}

	if !result.Consistent() {
		l.Error("Data is different between RDS and Redshift",
			zap.Strings("only_in_rds", result.OnlyInRelational),
			zap.Strings("only_in_redshift", result.OnlyInWarehouse),
		)
	}

	return result
}

// Prefix returns the object prefix of an export started at t, e.g. rds_20240131_235959.
func Prefix(base string, t time.Time) string {
	return base + "_" + t.Format(stampLayout)
}

func prefixOr(explicit, base string, t time.Time) string {
	if explicit != "" {
		return explicit
	}
	return Prefix(base, t)
}
