package export

import (
	"context"
	"errors"
	"time"

	"parity-check/core/database"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RelationalExporter exports query results from RDS straight into S3
// with SELECT ... INTO OUTFILE S3.
type RelationalExporter struct {
	open func(ctx context.Context) (*gorm.DB, error)
	log  *zap.Logger
}

// NewRelationalExporter returns an exporter that opens a fresh connection per job.
func NewRelationalExporter(cfg database.Config, log *zap.Logger) *RelationalExporter {
	return &RelationalExporter{
		open: func(ctx context.Context) (*gorm.DB, error) {
			return database.Connect(ctx, cfg)
		},
		log: log,
	}
}

// Export runs job and drains its (empty) result set.
// The connection and rows are released on every exit path.
func (e *RelationalExporter) Export(ctx context.Context, job Job) (_ *Result, err error) {
	start := time.Now()
	l := e.log.With(zap.String("source", string(job.Source)), zap.String("destination", job.Destination))

	defer func() {
		if err != nil {
			l.Error("Failed to export RDS data into S3 bucket", zap.Error(err))
		}
	}()

	if job.Source != SourceRelational {
		return nil, newError(job, StageConnect, errors.New("job is not an RDS export"))
	}

	db, err := e.open(ctx)
	if err != nil {
		return nil, newError(job, StageConnect, err)
	}
	defer func() {
		if cerr := database.Close(db); cerr != nil {
			l.Warn("Failed to close RDS connection", zap.Error(cerr))
		}
	}()

	rows, err := db.WithContext(ctx).Raw(OutfileStatement(job.Query, job.Destination)).Rows()
	if err != nil {
		return nil, newError(job, StageExecute, err)
	}
	defer rows.Close()

	// INTO OUTFILE returns no rows, anything that does come back is discarded
	discarded := 0
	for rows.Next() {
		discarded++
	}
	if err := rows.Err(); err != nil {
		return nil, newError(job, StageFetch, err)
	}

	res := &Result{Source: job.Source, Destination: job.Destination, Elapsed: time.Since(start)}
	l.Info("Exported RDS data into S3 bucket", zap.Duration("elapsed", res.Elapsed), zap.Int("discarded_rows", discarded))

	return res, nil
}
