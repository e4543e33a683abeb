package export

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"parity-check/core/warehouse"

	"go.uber.org/zap"
)

// WarehouseExporter unloads query results from Redshift into S3.
type WarehouseExporter struct {
	open    func(ctx context.Context) (*sql.DB, error)
	iamRole string
	region  string
	log     *zap.Logger
}

// NewWarehouseExporter returns an exporter that opens a fresh connection per job.
// region is the bucket region UNLOAD writes to.
func NewWarehouseExporter(cfg warehouse.Config, region string, log *zap.Logger) *WarehouseExporter {
	return &WarehouseExporter{
		open: func(ctx context.Context) (*sql.DB, error) {
			return warehouse.Connect(ctx, cfg)
		},
		iamRole: cfg.IAMRole,
		region:  region,
		log:     log,
	}
}

// Export runs an UNLOAD for job. The connection is released on every exit path.
func (e *WarehouseExporter) Export(ctx context.Context, job Job) (_ *Result, err error) {
	start := time.Now()
	l := e.log.With(zap.String("source", string(job.Source)), zap.String("destination", job.Destination))

	defer func() {
		if err != nil {
			l.Error("Failed to export Redshift data into S3 bucket", zap.Error(err))
		}
	}()

	if job.Source != SourceWarehouse {
		return nil, newError(job, StageConnect, errors.New("job is not a Redshift export"))
	}

	db, err := e.open(ctx)
	if err != nil {
		return nil, newError(job, StageConnect, err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			l.Warn("Failed to close Redshift connection", zap.Error(cerr))
		}
	}()

	stmt := UnloadStatement(job.Query, job.Destination, e.iamRole, e.region)
	if _, err := db.ExecContext(ctx, stmt); err != nil {
		return nil, newError(job, StageExecute, err)
	}

	res := &Result{Source: job.Source, Destination: job.Destination, Elapsed: time.Since(start)}
	l.Info("Exported Redshift data into S3 bucket", zap.Duration("elapsed", res.Elapsed))

	return res, nil
}
