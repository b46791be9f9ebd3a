package main

import (
	"fmt"
	"os"
	"strconv"

	"radiotrack/internal/audit"
	"radiotrack/internal/inventory"
	"radiotrack/internal/models"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type RadioFormFlags struct {
	RadioID         string
	Serial          string
	Model           string
	AssignedTo      string
	Notes           string
	DepartmentLabel string
	DepartmentID    string
	DateReceived    string
	DateIssued      string
	DateReturned    string
}

func (f *RadioFormFlags) BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&f.RadioID, "radio-id", f.RadioID, "radio identifier (required)")
	fs.StringVar(&f.Serial, "serial", f.Serial, "serial number (required)")
	fs.StringVar(&f.Model, "model", f.Model, "model")
	fs.StringVar(&f.AssignedTo, "assigned-to", f.AssignedTo, "person holding the radio")
	fs.StringVar(&f.Notes, "notes", f.Notes, "free text notes")
	fs.StringVar(&f.DepartmentLabel, "department", f.DepartmentLabel, `department label as listed by "dept labels", e.g. "PD - Police"`)
	fs.StringVar(&f.DepartmentID, "department-id", f.DepartmentID, "department id, instead of --department")
	fs.StringVar(&f.DateReceived, "date-received", f.DateReceived, "date received")
	fs.StringVar(&f.DateIssued, "date-issued", f.DateIssued, "date issued")
	fs.StringVar(&f.DateReturned, "date-returned", f.DateReturned, "date returned")
}

// request builds the form. On edit, base holds the stored radio and only the
// flags given on the command line replace its values.
func (f *RadioFormFlags) request(cmd *cobra.Command, a *app, base *models.Radio) (inventory.RadioRequest, error) {
	var req inventory.RadioRequest
	if base != nil {
		req = inventory.RadioRequest{
			RadioID:      value(base.RadioID),
			Serial:       base.Serial,
			Model:        value(base.Model),
			AssignedTo:   value(base.AssignedTo),
			Notes:        value(base.Notes),
			DepartmentID: base.DepartmentID,
			DateReceived: value(base.DateReceived),
			DateIssued:   value(base.DateIssued),
			DateReturned: value(base.DateReturned),
		}
	}

	set := func(name string, dst *string, v string) {
		if base == nil || cmd.Flags().Changed(name) {
			*dst = v
		}
	}
	set("radio-id", &req.RadioID, f.RadioID)
	set("serial", &req.Serial, f.Serial)
	set("model", &req.Model, f.Model)
	set("assigned-to", &req.AssignedTo, f.AssignedTo)
	set("notes", &req.Notes, f.Notes)
	set("date-received", &req.DateReceived, f.DateReceived)
	set("date-issued", &req.DateIssued, f.DateIssued)
	set("date-returned", &req.DateReturned, f.DateReturned)

	switch {
	case cmd.Flags().Changed("department-id"):
		id := f.DepartmentID
		req.DepartmentID = &id
	case cmd.Flags().Changed("department"):
		id, err := a.departments.ResolveLabel(cmd.Context(), f.DepartmentLabel)
		if err != nil {
			return req, err
		}
		if id == nil && f.DepartmentLabel != "" {
			a.logger.Warn("unknown department label, radio saved without department")
		}
		req.DepartmentID = id
	}
	return req, nil
}

// value reads a stored column into the text form. NULL comes back empty, so
// saving a legacy row records NULL to "" edits, as the desktop form did.
func value(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return uint(id), nil
}

func newRadioCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "radio",
		Aliases: []string{"radios"},
		Short:   "Add, edit and inspect radios",
	}
	cmd.AddCommand(
		newRadioAddCommand(a),
		newRadioEditCommand(a),
		newRadioShowCommand(a),
		newRadioListCommand(a),
		newRadioDeleteCommand(a),
		newRadioMissingCommand(a),
		newRadioStatusCommand(a),
		newRadioHistoryCommand(a),
		newRadioImportCommand(a),
	)
	return cmd
}

func newRadioAddCommand(a *app) *cobra.Command {
	f := &RadioFormFlags{}
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a radio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := f.request(cmd, a, nil)
			if err != nil {
				return err
			}
			radio, err := a.radios.Create(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Radio saved (id %d).\n", radio.ID)
			return nil
		},
	}
	f.BindFlags(cmd.Flags())
	return cmd
}

func newRadioEditCommand(a *app) *cobra.Command {
	f := &RadioFormFlags{}
	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Edit a radio; only the given flags change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			current, err := a.radios.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			req, err := f.request(cmd, a, current)
			if err != nil {
				return err
			}
			n, err := a.radios.Update(cmd.Context(), id, req)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Radio saved (%d field(s) changed).\n", n)
			return nil
		},
	}
	f.BindFlags(cmd.Flags())
	return cmd
}

func newRadioShowCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one radio",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			r, err := a.radios.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			rows := [][]string{
				{"ID", strconv.FormatUint(uint64(r.ID), 10)},
				{"Radio ID", inventory.Text(r.RadioID)},
				{"Serial", r.Serial},
				{"Model", inventory.Text(r.Model)},
				{"Assigned To", inventory.Text(r.AssignedTo)},
				{"Notes", inventory.Text(r.Notes)},
				{"Department ID", inventory.Text(r.DepartmentID)},
				{"Date Received", inventory.Text(r.DateReceived)},
				{"Date Issued", inventory.Text(r.DateIssued)},
				{"Date Returned", inventory.Text(r.DateReturned)},
				{"Last Updated", inventory.Text(r.LastUpdated)},
				{"Status", statusText(r.Status)},
				{"Missing", missingText(r.Missing)},
			}
			return a.render(table{headers: []string{"FIELD", "VALUE"}, rows: rows, data: r})
		},
	}
}

func statusText(s models.RadioStatus) string {
	if s == "" {
		return "None"
	}
	return string(s)
}

func missingText(m models.MissingFlag) string {
	if m == "" {
		return "None"
	}
	return string(m)
}

func newRadioListCommand(a *app) *cobra.Command {
	var filter inventory.RadioFilter
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List radios with their department",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := a.radios.List(cmd.Context(), filter)
			if err != nil {
				return err
			}
			headers := append(append([]string{}, inventory.GridColumns...), "Flag")
			cells := make([][]string, 0, len(rows))
			for _, r := range rows {
				cells = append(cells, append(r.Cells(), string(r.Highlight())))
			}
			return a.render(table{headers: headers, rows: cells, data: rows})
		},
	}
	cmd.Flags().StringVar(&filter.Search, "search", "", "case-insensitive text found in any column")
	cmd.Flags().StringVar(&filter.Status, "status", "", "exact status, e.g. Active or \"In Service\"")
	cmd.Flags().StringVar(&filter.Missing, "missing", "", "Yes or No")
	cmd.Flags().StringVar(&filter.Department, "department", "", "department name")
	return cmd
}

func newRadioDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a radio and its service history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			r, err := a.radios.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			ok, err := a.confirm("Are you sure you want to delete radio %s?", r.Serial)
			if err != nil || !ok {
				return err
			}
			if err := a.radios.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Radio deleted.")
			return nil
		},
	}
}

func newRadioMissingCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "missing ID",
		Short: "Toggle the missing flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			r, err := a.radios.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			verb := "Missing"
			if r.Missing.Toggled() == models.MissingNo {
				verb = "Found"
			}
			ok, err := a.confirm("Mark radio %s as %s?", r.Serial, verb)
			if err != nil || !ok {
				return err
			}
			next, err := a.radios.ToggleMissing(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Missing: %s\n", next)
			return nil
		},
	}
}

func newRadioStatusCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "status ID in-service|active",
		Short:     "Put a radio into service or take it out of service",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"in-service", "active"},
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			var status models.RadioStatus
			switch args[1] {
			case "in-service":
				status = models.StatusInService
			case "active":
				status = models.StatusActive
			default:
				return fmt.Errorf("unknown status %q, use in-service or active", args[1])
			}
			r, err := a.radios.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			ok, err := a.confirm("Mark radio %s as '%s'?", r.Serial, status)
			if err != nil || !ok {
				return err
			}
			if err := a.radios.SetStatus(cmd.Context(), id, status); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Status: %s\n", status)
			return nil
		},
	}
}

func newRadioHistoryCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "history ID",
		Short: "Show every recorded change to a radio, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			changes, err := audit.ListChanges(cmd.Context(), a.db, id)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(changes))
			for _, c := range changes {
				rows = append(rows, []string{
					c.Timestamp, string(c.ChangeType), c.FieldChanged,
					inventory.Text(c.OldValue), inventory.Text(c.NewValue),
				})
			}
			return a.render(table{
				headers: []string{"TIMESTAMP", "TYPE", "FIELD", "OLD", "NEW"},
				rows:    rows,
				data:    changes,
			})
		},
	}
}

func newRadioImportCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE.xlsx",
		Short: "Add radios from the first sheet of an Excel file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer file.Close()

			res, err := a.radios.ImportExcel(cmd.Context(), file)
			if err != nil {
				return err
			}
			if a.flags.Output != formatTable {
				return a.render(table{data: res})
			}
			fmt.Fprintf(a.out, "%d radio(s) imported, %d row(s) skipped.\n", len(res.Created), len(res.Skipped))
			rows := make([][]string, 0, len(res.Skipped))
			for _, s := range res.Skipped {
				rows = append(rows, []string{strconv.Itoa(s.Row), s.Reason})
			}
			if len(rows) == 0 {
				return nil
			}
			return a.render(table{headers: []string{"ROW", "REASON"}, rows: rows, data: res})
		},
	}
}
