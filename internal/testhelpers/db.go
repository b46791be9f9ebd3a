package testhelpers

import (
	"path/filepath"
	"testing"
	"time"

	"radiotrack/internal/config"
	"radiotrack/internal/database"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

// NewDB opens a fresh inventory file under the test's temp dir.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := config.DatabaseConfig{
		Path:        filepath.Join(t.TempDir(), "radios.db"),
		BusyTimeout: 2 * time.Second,
		JournalMode: "WAL",
		LogLevel:    "silent",
	}
	db, err := database.Open(cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func Ptr[T any](v T) *T { return &v }
