package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const defaultDBPath = "radios.db"

type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Report   ReportConfig   `yaml:"report"`
}

type DatabaseConfig struct {
	Path        string        `yaml:"path" env:"RADIOTRACK_DB_PATH" env-default:"radios.db"`
	BusyTimeout time.Duration `yaml:"busy_timeout" env:"RADIOTRACK_DB_BUSY_TIMEOUT" env-default:"10s"` // connection-acquisition wait
	JournalMode string        `yaml:"journal_mode" env:"RADIOTRACK_DB_JOURNAL_MODE" env-default:"WAL"`
	LogLevel    string        `yaml:"log_level" env:"RADIOTRACK_DB_LOG_LEVEL" env-default:"silent"` // gorm SQL logger
}

type LogConfig struct {
	Level  string `yaml:"level" env:"RADIOTRACK_LOG_LEVEL" env-default:"info"`
	Format string `yaml:"format" env:"RADIOTRACK_LOG_FORMAT" env-default:"console"`
}

type ReportConfig struct {
	OrgTitle  string `yaml:"org_title" env:"RADIOTRACK_REPORT_ORG_TITLE" env-default:"RADIO INVENTORY"`
	SheetName string `yaml:"sheet_name" env:"RADIOTRACK_REPORT_SHEET_NAME" env-default:"Radio Report"`
}

var journalModes = []string{"DELETE", "TRUNCATE", "PERSIST", "MEMORY", "WAL", "OFF"}

// Load reads path when it exists, otherwise only the environment.
// Environment variables always win over the file.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("config could not be read: %w", err)
		}
	} else if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("config could not be read from env: %w", err)
	}

	cfg.Database.JournalMode = strings.ToUpper(strings.TrimSpace(cfg.Database.JournalMode))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Database.Path) == "" {
		return errors.New("config: database.path is required")
	}
	if c.Database.BusyTimeout <= 0 {
		return errors.New("config: database.busy_timeout must be positive")
	}
	valid := false
	for _, m := range journalModes {
		if c.Database.JournalMode == m {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("config: unknown database.journal_mode %q", c.Database.JournalMode)
	}
	if strings.TrimSpace(c.Report.SheetName) == "" {
		return errors.New("config: report.sheet_name is required")
	}
	return nil
}

// Warnings lists settings worth pointing out at startup.
func (c *Config) Warnings() []string {
	var out []string
	if c.Database.Path == defaultDBPath {
		out = append(out, "database.path is the default, the database file lives in the working directory")
	}
	if c.Database.JournalMode != "WAL" {
		out = append(out, "database.journal_mode is not WAL, readers will block during writes")
	}
	return out
}
