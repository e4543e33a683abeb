package check

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"parity-check/core/reconcile"
	"parity-check/core/storage/mocks"
	"parity-check/feature/export"
	"parity-check/feature/objects"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeExporter struct {
	jobs []export.Job
	err  error
}

func (f *fakeExporter) Export(_ context.Context, job export.Job) (*export.Result, error) {
	f.jobs = append(f.jobs, job)
	if f.err != nil {
		return nil, f.err
	}
	return &export.Result{Source: job.Source, Destination: job.Destination}, nil
}

type fixture struct {
	runner     *Runner
	client     *mocks.Client
	relational *fakeExporter
	warehouse  *fakeExporter
	logs       *observer.ObservedLogs
	cfg        Config
}

var runStart = time.Date(2024, 1, 31, 23, 59, 58, 0, time.UTC)

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	cfg := Config{
		RDSQuery:       "select id from posts",
		RedshiftQuery:  "select id from stackoverflow.posts",
		RDSPrefix:      "rds",
		RedshiftPrefix: "redshift",
		RDSFolder:      filepath.Join(dir, "data_rds"),
		RedshiftFolder: filepath.Join(dir, "data_redshift"),
		ClearFolders:   true,
	}

	core, logs := observer.New(zapcore.DebugLevel)
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "temp").Return(true, nil).Maybe()

	f := &fixture{
		client:     client,
		relational: &fakeExporter{},
		warehouse:  &fakeExporter{},
		logs:       logs,
		cfg:        cfg,
	}
	f.runner = NewRunner(cfg, "ap-southeast-1", f.relational, f.warehouse,
		objects.NewBucket(client, "temp", 0, zap.New(core)), zap.New(core))
	f.runner.now = func() time.Time { return runStart }
	return f
}

// exported registers a listing for prefix and downloads that write contents[i] to key i.
func (f *fixture) exported(prefix string, contents ...string) {
	infos := make([]minio.ObjectInfo, len(contents))
	for i, content := range contents {
		key := prefix + ".part_0000" + string(rune('0'+i))
		infos[i] = minio.ObjectInfo{Key: key, Size: int64(len(content))}
		body := content
		f.client.On("FGetObject", mock.Anything, "temp", key, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				if err := os.WriteFile(args.String(3), []byte(body), 0o644); err != nil {
					panic(err)
				}
			}).Return(nil)
	}
	f.client.On("ListObjects", mock.Anything, "temp",
		minio.ListObjectsOptions{Prefix: prefix, Recursive: true, MaxKeys: objects.DefaultPageSize},
	).Return(mocks.ObjectChannel(infos...))
}

func TestRunner_Run(t *testing.T) {
	t.Run("Consistent", func(t *testing.T) {
		f := newFixture(t)
		f.exported("rds_20240131_235958", "1\n2\n", "3\n")
		f.exported("redshift_20240131_235958", "3\n1\n2\n")

		report, err := f.runner.Run(context.Background(), Options{})
		require.NoError(t, err)

		assert.True(t, report.Consistent)
		_, err = uuid.Parse(report.RunID)
		assert.NoError(t, err)

		require.Len(t, f.relational.jobs, 1)
		assert.Equal(t, export.Job{
			Source:      export.SourceRelational,
			Query:       "select id from posts",
			Destination: "s3-ap-southeast-1://temp/rds_20240131_235958",
		}, f.relational.jobs[0])
		require.Len(t, f.warehouse.jobs, 1)
		assert.Equal(t, "s3://temp/redshift_20240131_235958", f.warehouse.jobs[0].Destination)
		assert.Len(t, report.Exports, 2)

		assert.Equal(t, 3, report.RDS.Lines)
		assert.Equal(t, 3, report.Redshift.Lines)
		assert.Len(t, report.RDS.Files, 2)
		assert.Equal(t, f.cfg.RDSFolder, report.RDS.Folder)
		assert.Empty(t, report.Result.OnlyInRelational)
		assert.Empty(t, report.Result.OnlyInWarehouse)
	})

	t.Run("Mismatch", func(t *testing.T) {
		f := newFixture(t)
		f.exported("rds_20240131_235958", "1\n2\n")
		f.exported("redshift_20240131_235958", "1\n2\n3\n")

		report, err := f.runner.Run(context.Background(), Options{})
		require.Error(t, err)
		assert.ErrorIs(t, err, reconcile.ErrMismatch)
		require.NotNil(t, report)
		assert.False(t, report.Consistent)
		assert.Equal(t, []string{}, report.Result.OnlyInRelational)
		assert.Equal(t, []string{"3"}, report.Result.OnlyInWarehouse)

		entries := f.logs.FilterMessage("Data is different between RDS and Redshift").All()
		require.Len(t, entries, 1)
		assert.Equal(t, []interface{}{"3"}, entries[0].ContextMap()["only_in_redshift"])
	})

	t.Run("ExportFailureHaltsBeforeListing", func(t *testing.T) {
		f := newFixture(t)
		f.relational.err = &export.Error{Source: export.SourceRelational, Stage: export.StageConnect, Err: errors.New("connection refused")}

		report, err := f.runner.Run(context.Background(), Options{})
		assert.Nil(t, report)
		assert.ErrorIs(t, err, export.ErrExport)
		assert.Empty(t, f.warehouse.jobs)
		f.client.AssertNotCalled(t, "ListObjects", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("WarehouseExportFailure", func(t *testing.T) {
		f := newFixture(t)
		f.warehouse.err = &export.Error{Source: export.SourceWarehouse, Stage: export.StageExecute, Err: errors.New("Access Denied")}

		_, err := f.runner.Run(context.Background(), Options{})
		assert.ErrorIs(t, err, export.ErrExport)
		assert.Len(t, f.relational.jobs, 1)
		f.client.AssertNotCalled(t, "ListObjects", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("NoExportedObjects", func(t *testing.T) {
		f := newFixture(t)
		f.exported("rds_20240131_235958")
		f.exported("redshift_20240131_235958")

		report, err := f.runner.Run(context.Background(), Options{})
		require.NoError(t, err)
		assert.Empty(t, report.RDS.Files)
		assert.Equal(t, 0, report.RDS.Lines)
		assert.True(t, report.Consistent)
		assert.DirExists(t, f.cfg.RDSFolder)
	})

	t.Run("BucketUnavailable", func(t *testing.T) {
		f := newFixture(t)
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "temp").Return(false, nil)
		f.runner.bucket = objects.NewBucket(client, "temp", 0, zap.NewNop())

		_, err := f.runner.Run(context.Background(), Options{})
		assert.ErrorIs(t, err, objects.ErrStorage)
		assert.Empty(t, f.relational.jobs)
	})

	t.Run("SkipExportWithExplicitPrefixes", func(t *testing.T) {
		f := newFixture(t)
		f.exported("rds_20230101_000000", "1\n")
		f.exported("redshift_20230101_000000", "1\n")

		report, err := f.runner.Run(context.Background(), Options{
			SkipExport:     true,
			RDSPrefix:      "rds_20230101_000000",
			RedshiftPrefix: "redshift_20230101_000000",
		})
		require.NoError(t, err)
		assert.Empty(t, f.relational.jobs)
		assert.Empty(t, f.warehouse.jobs)
		assert.Empty(t, report.Exports)
		assert.Equal(t, "rds_20230101_000000", report.RDS.Prefix)
	})

	t.Run("ClearsStaleDownloads", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, os.MkdirAll(f.cfg.RDSFolder, 0o755))
		stale := filepath.Join(f.cfg.RDSFolder, "stale.part_00000")
		require.NoError(t, os.WriteFile(stale, []byte("999\n"), 0o644))

		f.exported("rds_20240131_235958", "1\n")
		f.exported("redshift_20240131_235958", "1\n")

		_, err := f.runner.Run(context.Background(), Options{})
		require.NoError(t, err)
		assert.NoFileExists(t, stale)
	})

	t.Run("DownloadFailure", func(t *testing.T) {
		f := newFixture(t)
		f.client.On("ListObjects", mock.Anything, "temp", mock.Anything).
			Return(mocks.ObjectChannel(minio.ObjectInfo{Key: "rds_20240131_235958.part_00000"}))
		f.client.On("FGetObject", mock.Anything, "temp", mock.Anything, mock.Anything, mock.Anything).
			Return(errors.New("connection reset by peer"))

		_, err := f.runner.Run(context.Background(), Options{})
		assert.ErrorIs(t, err, objects.ErrStorage)
	})

	t.Run("Cleanup", func(t *testing.T) {
		f := newFixture(t)
		f.exported("rds_20240131_235958", "1\n")
		f.exported("redshift_20240131_235958", "1\n")
		f.client.On("RemoveObjects", mock.Anything, "temp", mock.Anything, mock.Anything).Return(nil)

		_, err := f.runner.Run(context.Background(), Options{Cleanup: true})
		require.NoError(t, err)
		f.client.AssertNumberOfCalls(t, "RemoveObjects", 2)
	})

	t.Run("SentinelsInjected", func(t *testing.T) {
		f := newFixture(t)
		f.runner.cfg.InjectSentinels = true
		f.exported("rds_20240131_235958", "1\n")
		f.exported("redshift_20240131_235958", "1\n")

		report, err := f.runner.Run(context.Background(), Options{})
		require.NoError(t, err)
		assert.True(t, report.Result.SentinelsInjected)
		assert.True(t, report.Result.SentinelsVerified)
		assert.True(t, report.Consistent)
	})

	t.Run("SentinelValueInDataStillMismatches", func(t *testing.T) {
		f := newFixture(t)
		f.runner.cfg.InjectSentinels = true
		f.exported("rds_20240131_235958", "1\n")
		f.exported("redshift_20240131_235958", "1\n"+reconcile.RelationalSentinel+"\n")

		report, err := f.runner.Run(context.Background(), Options{})
		assert.ErrorIs(t, err, reconcile.ErrMismatch)
		require.NotNil(t, report)
		assert.False(t, report.Consistent)
		assert.False(t, report.Result.SentinelsVerified)
		assert.Equal(t, []string{reconcile.RelationalSentinel}, report.Result.OnlyInWarehouse)
		assert.Equal(t, 1, f.logs.FilterMessage("Sentinel self-test failed, a sentinel value occurs in the data").Len())
	})
}

func TestCompare_LogsCounts(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)

	result := Compare(zap.New(core), []string{"1"}, []string{"1"}, reconcile.Options{})
	assert.True(t, result.Consistent())

	entries := logs.FilterMessage("Reconciled datasets").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(0), entries[0].ContextMap()["only_in_rds"])
	assert.Equal(t, 0, logs.FilterMessage("Data is different between RDS and Redshift").Len())
}
