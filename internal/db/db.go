package db

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/torebek/gigledger/internal/config"
)

// New opens the ledger database and applies migrations. SQLite is kept to a
// single connection so concurrent transactions queue instead of failing
// with a busy error.
func New(cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DB.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DB.DSN)
	default:
		dialector = postgres.Open(cfg.DB.DSN)
	}

	gormLog := gormlogger.New(
		&zerologWriter{log: log},
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	)

	database, err := gorm.Open(dialector, &gorm.Config{Logger: gormLog})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := database.DB()
	if err != nil {
		return nil, err
	}

	if cfg.DB.Driver == "sqlite" {
		sqlDB.SetMaxOpenConns(1)
	} else {
		if cfg.DB.MaxOpenConns > 0 {
			sqlDB.SetMaxOpenConns(cfg.DB.MaxOpenConns)
		}
		if cfg.DB.MaxIdleConns > 0 {
			sqlDB.SetMaxIdleConns(cfg.DB.MaxIdleConns)
		}
		if cfg.DB.ConnMaxLifetime != "" {
			lifetime, err := time.ParseDuration(cfg.DB.ConnMaxLifetime)
			if err != nil {
				return nil, fmt.Errorf("parse DB_CONN_MAX_LIFETIME: %w", err)
			}
			sqlDB.SetConnMaxLifetime(lifetime)
		}
	}

	if err := runMigrations(database, cfg.DB.Driver); err != nil {
		return nil, err
	}
	return database, nil
}

type zerologWriter struct {
	log zerolog.Logger
}

func (w *zerologWriter) Printf(format string, args ...interface{}) {
	w.log.Warn().Msgf(format, args...)
}
