package database

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect establishes a connection to the MySQL database.
// The caller owns the returned handle and must release it with Close.
func Connect(ctx context.Context, cfg Config) (*gorm.DB, error) {
	// Suppress GORM logging, the callers log through zap
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(mysql.Open(DSN(cfg)), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	// A run issues one statement at a time
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	pingCtx, cancel := context.WithTimeout(ctx, timeout(cfg))
	defer cancel()

	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// Close releases the connection pool behind db.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// DSN builds the go-sql-driver DSN for cfg.
// The driver formats credentials itself, so passwords may contain '@' or '/'.
func DSN(cfg Config) string {
	d := mysqldriver.NewConfig()
	d.User = cfg.User
	d.Passwd = cfg.Password
	d.Net = "tcp"
	d.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	d.DBName = cfg.Name
	d.ParseTime = true
	d.Loc = time.Local
	d.Params = map[string]string{"charset": "utf8mb4"}

	// Only connection setup is bounded: INTO OUTFILE S3 sends nothing back until
	// the export finishes, so a read deadline would abort long exports
	d.Timeout = timeout(cfg)

	return d.FormatDSN()
}

func timeout(cfg Config) time.Duration {
	if cfg.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(cfg.TimeoutSeconds) * time.Second
}
