package database_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"radiotrack/internal/config"
	"radiotrack/internal/database"
	"radiotrack/internal/models"
	"radiotrack/internal/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	gormlogger "gorm.io/gorm/logger"
)

func TestInit_Idempotent(t *testing.T) {
	db := testhelpers.NewDB(t)

	require.NoError(t, db.Exec(`INSERT INTO departments (id, name) VALUES ('D1', 'Patrol')`).Error)
	require.NoError(t, database.Init(db))
	require.NoError(t, database.Init(db))

	var count int64
	require.NoError(t, db.Model(&models.Department{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSchema_Defaults(t *testing.T) {
	db := testhelpers.NewDB(t)

	require.NoError(t, db.Exec(`INSERT INTO radios (serial) VALUES ('SN1')`).Error)
	var radio models.Radio
	require.NoError(t, db.First(&radio).Error)
	assert.Equal(t, models.StatusActive, radio.Status)
	assert.Equal(t, models.MissingNo, radio.Missing)
	assert.Nil(t, radio.LastUpdated)

	require.NoError(t, db.Exec(`INSERT INTO services (radio_id) VALUES (?)`, radio.ID).Error)
	var svc models.Service
	require.NoError(t, db.First(&svc).Error)
	assert.Equal(t, models.ServiceOpen, svc.Status)

	require.NoError(t, db.Exec(`INSERT INTO radio_changes (radio_id, change_type) VALUES (99, 'ADD')`).Error)
	var change models.RadioChange
	require.NoError(t, db.First(&change).Error)
	assert.NotEmpty(t, change.Timestamp)
}

func TestSchema_RequiredColumns(t *testing.T) {
	db := testhelpers.NewDB(t)

	assert.Error(t, db.Exec(`INSERT INTO radios (radio_id) VALUES ('R1')`).Error)
	assert.Error(t, db.Exec(`INSERT INTO departments (id) VALUES ('D1')`).Error)
}

func TestOpen_ReopenKeepsData(t *testing.T) {
	cfg := config.DatabaseConfig{
		Path:        filepath.Join(t.TempDir(), "nested", "radios.db"),
		BusyTimeout: time.Second,
		JournalMode: "WAL",
	}
	logger := zaptest.NewLogger(t)

	db, err := database.Open(cfg, logger)
	require.NoError(t, err)
	require.NoError(t, db.Exec(`INSERT INTO radios (serial) VALUES ('SN1')`).Error)
	require.NoError(t, database.Close(db))

	db, err = database.Open(cfg, logger)
	require.NoError(t, err)
	defer database.Close(db)

	var count int64
	require.NoError(t, db.Model(&models.Radio{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestOpen_UnwritableLocation(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	cfg := config.DatabaseConfig{
		Path:        filepath.Join(blocker, "sub", "radios.db"),
		BusyTimeout: time.Second,
		JournalMode: "WAL",
	}
	_, err := database.Open(cfg, zaptest.NewLogger(t))
	assert.Error(t, err)
}

func TestOpen_BadLogLevel(t *testing.T) {
	cfg := config.DatabaseConfig{
		Path:        filepath.Join(t.TempDir(), "radios.db"),
		BusyTimeout: time.Second,
		JournalMode: "WAL",
		LogLevel:    "loud",
	}
	_, err := database.Open(cfg, zaptest.NewLogger(t))
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	cfg := config.DatabaseConfig{Path: "/tmp/r.db", BusyTimeout: 10 * time.Second, JournalMode: "wal"}
	assert.Equal(t, "file:/tmp/r.db?_busy_timeout=10000&_journal_mode=WAL", database.DSN(cfg))
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want gormlogger.LogLevel
	}{
		{"", gormlogger.Silent},
		{"silent", gormlogger.Silent},
		{"error", gormlogger.Error},
		{"WARN", gormlogger.Warn},
		{"info", gormlogger.Info},
	}
	for _, tt := range tests {
		got, err := database.ParseLogLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := database.ParseLogLevel("verbose")
	assert.Error(t, err)
}
