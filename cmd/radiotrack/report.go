package main

import (
	"fmt"

	"radiotrack/internal/report"

	"github.com/spf13/cobra"
)

func newReportCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "report",
		Aliases: []string{"reports"},
		Short:   "Run canned reports and export them to Excel",
	}
	cmd.AddCommand(newReportKindsCommand(a), newReportRunCommand(a))
	return cmd
}

func newReportKindsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List available reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds := report.Kinds()
			rows := make([][]string, 0, len(kinds))
			for _, k := range kinds {
				rows = append(rows, []string{string(k)})
			}
			return a.render(table{headers: []string{"REPORT"}, rows: rows, data: kinds})
		},
	}
}

func newReportRunCommand(a *app) *cobra.Command {
	var department, export string
	cmd := &cobra.Command{
		Use:   `run "REPORT NAME"`,
		Short: "Run a report, optionally saving it as an .xlsx file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := report.ParseKind(args[0])
			if err != nil {
				return err
			}
			res, err := report.Run(cmd.Context(), a.db, kind, report.Params{Department: department})
			if err != nil {
				return err
			}

			if export != "" {
				opts := report.ExcelOptions{OrgTitle: a.cfg.Report.OrgTitle, SheetName: a.cfg.Report.SheetName}
				if err := report.SaveExcel(export, res, opts); err != nil {
					return err
				}
				fmt.Fprintf(a.out, "Excel file exported: %s\n", export)
				return nil
			}

			rows := make([][]string, 0, len(res.Rows))
			for _, r := range res.Rows {
				cells := make([]string, len(r))
				for i, v := range r {
					cells[i] = cellText(v)
				}
				rows = append(rows, cells)
			}
			if a.flags.Output == formatTable {
				fmt.Fprintln(a.out, res.Title())
			}
			return a.render(table{headers: res.Columns, rows: rows, data: res})
		},
	}
	cmd.Flags().StringVar(&department, "department", "", `department name, required for "Radios by Department"`)
	cmd.Flags().StringVar(&export, "export", "", "write the report to this .xlsx path instead of printing it")
	return cmd
}
