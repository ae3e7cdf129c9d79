package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens a PostgreSQL connection via GORM and verifies connectivity.
func Connect(ctx context.Context, dsn string) (*gorm.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// ConnectSQLite opens a file-backed SQLite database for single-node setups.
func ConnectSQLite(path string) (*gorm.DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite path is empty")
	}
	return gorm.Open(sqlite.Open(path), &gorm.Config{})
}

// ConnectAny dials PostgreSQL when a DSN is set, falls back to SQLite when a
// path is set, and returns nil with a no-op cleanup when neither works. The
// caller is expected to fall back to in-memory repositories on nil.
func ConnectAny(ctx context.Context, logger *slog.Logger, postgresDSN, sqlitePath string) (*gorm.DB, func()) {
	if strings.TrimSpace(postgresDSN) != "" {
		db, err := Connect(ctx, postgresDSN)
		if err == nil {
			if sqlDB, dbErr := db.DB(); dbErr == nil {
				logInfo(logger, "postgres connection established")
				return db, func() { _ = sqlDB.Close() }
			} else {
				err = dbErr
			}
		}
		logWarn(logger, "failed to connect to postgres", err)
	}
	if strings.TrimSpace(sqlitePath) != "" {
		db, err := ConnectSQLite(sqlitePath)
		if err == nil {
			logInfo(logger, "sqlite database opened", slog.String("path", sqlitePath))
			return db, func() {
				if sqlDB, err := db.DB(); err == nil {
					_ = sqlDB.Close()
				}
			}
		}
		logWarn(logger, "failed to open sqlite database", err)
	}
	logWarn(logger, "no database configured, falling back to in-memory repositories", nil)
	return nil, func() {}
}

func logInfo(logger *slog.Logger, msg string, args ...any) {
	if logger != nil {
		logger.Info(msg, args...)
	}
}

func logWarn(logger *slog.Logger, msg string, err error) {
	if logger == nil {
		return
	}
	if err != nil {
		logger.Warn(msg, slog.String("error", err.Error()))
		return
	}
	logger.Warn(msg)
}
