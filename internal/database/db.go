package database

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"radiotrack/internal/config"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open opens (creating when needed) the inventory file and ensures the schema.
// An unwritable location is returned as an error; the caller treats it as fatal.
func Open(cfg config.DatabaseConfig, logger *zap.Logger) (*gorm.DB, error) {
	level, err := ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	if dir := filepath.Dir(cfg.Path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("database directory could not be created: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(DSN(cfg)), &gorm.Config{
		Logger: gormlogger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("database could not be opened: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("database handle: %w", err)
	}
	// single writer; busy_timeout covers other processes
	sqlDB.SetMaxOpenConns(1)

	if err := Init(db); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	logger.Debug("database ready",
		zap.String("path", cfg.Path),
		zap.String("journal_mode", cfg.JournalMode),
		zap.Duration("busy_timeout", cfg.BusyTimeout),
	)
	return db, nil
}

// DSN builds the go-sqlite3 connection string.
func DSN(cfg config.DatabaseConfig) string {
	return fmt.Sprintf("file:%s?_busy_timeout=%d&_journal_mode=%s",
		cfg.Path, cfg.BusyTimeout.Milliseconds(), strings.ToUpper(cfg.JournalMode))
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func ParseLogLevel(v string) (gormlogger.LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "silent":
		return gormlogger.Silent, nil
	case "error":
		return gormlogger.Error, nil
	case "warn":
		return gormlogger.Warn, nil
	case "info":
		return gormlogger.Info, nil
	default:
		return gormlogger.Silent, fmt.Errorf("unknown gorm log level: %s", v)
	}
}
