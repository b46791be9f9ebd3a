package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"radiotrack/internal/admin"
	"radiotrack/internal/apperrors"
	"radiotrack/internal/config"
	"radiotrack/internal/database"
	"radiotrack/internal/inventory"
	"radiotrack/internal/logger"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// app is built once per invocation by the root command.
type app struct {
	flags *GlobalFlags
	in    *bufio.Reader
	out   io.Writer

	cfg         *config.Config
	logger      *zap.Logger
	db          *gorm.DB
	radios      *inventory.RadioService
	serviceLog  *inventory.ServiceLog
	departments *admin.DepartmentService
}

func newApp(in io.Reader, out io.Writer) *app {
	return &app{flags: NewGlobalFlags(), in: bufio.NewReader(in), out: out}
}

func (a *app) setup() error {
	cfg, err := config.Load(a.flags.ConfigPath)
	if err != nil {
		return err
	}
	if a.flags.DBPath != "" {
		cfg.Database.Path = a.flags.DBPath
	}
	if a.flags.LogLevel != "" {
		cfg.Log.Level = a.flags.LogLevel
	}
	if a.flags.DBLogLevel != "" {
		cfg.Database.LogLevel = string(a.flags.DBLogLevel)
	}
	a.cfg = cfg

	base, err := logger.New(cfg.Log)
	if err != nil {
		return err
	}
	a.logger = base.With(zap.String("run_id", uuid.NewString()))
	for _, w := range cfg.Warnings() {
		a.logger.Debug("config", zap.String("warning", w))
	}

	db, err := database.Open(cfg.Database, a.logger)
	if err != nil {
		return err
	}
	a.db = db
	a.radios = inventory.NewRadioService(db, a.logger)
	a.serviceLog = inventory.NewServiceLog(db, a.logger)
	a.departments = admin.NewDepartmentService(db, a.logger)
	return nil
}

func (a *app) close() error {
	var err error
	if a.db != nil {
		err = database.Close(a.db)
		a.db = nil
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	return err
}

// confirm asks a yes/no question unless --yes was given. Anything but y/yes
// is a no.
func (a *app) confirm(format string, args ...interface{}) (bool, error) {
	if a.flags.Yes {
		return true, nil
	}
	fmt.Fprintf(a.out, format+" [y/N]: ", args...)
	line, err := a.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	fmt.Fprintln(a.out, "Cancelled.")
	return false, nil
}

// describe turns an error into the single line shown to the operator.
func describe(err error) string {
	var ve *apperrors.ValidationError
	switch {
	case errors.As(err, &ve):
		return ve.Message
	case errors.Is(err, apperrors.ErrNotFound):
		return "record not found"
	case errors.Is(err, apperrors.ErrServiceClosed):
		return "this service is already closed"
	case apperrors.IsBusy(err):
		return "the database is locked by another program, try again"
	case apperrors.IsConstraint(err):
		return fmt.Sprintf("a record with this key already exists or a required value is missing (%v)", err)
	}
	return err.Error()
}

func newRootCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "radiotrack",
		Short: "Radio equipment inventory",
		Long: `radiotrack keeps the radio inventory: who holds each radio, its
department, whether it is in service or missing, its repair history and
every change made to it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}

	a.flags.BindFlags(cmd.PersistentFlags())

	cmd.AddCommand(
		newInitCommand(a),
		newRadioCommand(a),
		newDepartmentCommand(a),
		newServiceCommand(a),
		newReportCommand(a),
	)
	return cmd
}

func newInitCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the inventory database if it does not exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// setup already ran the schema initializer
			fmt.Fprintf(a.out, "Database ready: %s\n", a.cfg.Database.Path)
			return nil
		},
	}
}
