package main

import (
	"fmt"

	"radiotrack/internal/database"

	"github.com/spf13/pflag"
)

// gorm log level custom flag type
type gormLogLevel string

func (l *gormLogLevel) String() string { return string(*l) }

func (l *gormLogLevel) Set(v string) error {
	if _, err := database.ParseLogLevel(v); err != nil {
		return err
	}
	*l = gormLogLevel(v)
	return nil
}

func (l *gormLogLevel) Type() string { return "logLevel" }

type outputFormat string

const (
	formatTable outputFormat = "table"
	formatJSON  outputFormat = "json"
	formatYAML  outputFormat = "yaml"
)

func (o *outputFormat) String() string { return string(*o) }

func (o *outputFormat) Set(v string) error {
	switch outputFormat(v) {
	case formatTable, formatJSON, formatYAML:
		*o = outputFormat(v)
		return nil
	}
	return fmt.Errorf("unknown output format: %s", v)
}

func (o *outputFormat) Type() string { return "format" }

// GlobalFlags override values loaded from the config file and environment.
type GlobalFlags struct {
	ConfigPath string
	DBPath     string
	LogLevel   string
	DBLogLevel gormLogLevel
	Output     outputFormat
	Yes        bool
}

func NewGlobalFlags() *GlobalFlags {
	return &GlobalFlags{Output: formatTable}
}

func (f *GlobalFlags) BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&f.ConfigPath, "config", f.ConfigPath, "path to a YAML config file")
	fs.StringVar(&f.DBPath, "db", f.DBPath, "inventory database file (overrides database.path)")
	fs.StringVar(&f.LogLevel, "log-level", f.LogLevel, "log level (debug,info,warn,error)")
	fs.Var(&f.DBLogLevel, "db-log-level", "gorm database log level (silent,error,warn,info)")
	fs.VarP(&f.Output, "output", "o", "output format (table,json,yaml)")
	fs.BoolVarP(&f.Yes, "yes", "y", f.Yes, "skip confirmation prompts")
}
