package main

import (
	"fmt"

	"radiotrack/internal/admin"
	"radiotrack/internal/inventory"

	"github.com/spf13/cobra"
)

func newDepartmentCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "dept",
		Aliases: []string{"department", "departments"},
		Short:   "Manage departments",
	}
	cmd.AddCommand(
		newDeptAddCommand(a),
		newDeptEditCommand(a),
		newDeptDeleteCommand(a),
		newDeptListCommand(a),
		newDeptLabelsCommand(a),
		newDeptNamesCommand(a),
	)
	return cmd
}

func newDeptAddCommand(a *app) *cobra.Command {
	var contact string
	cmd := &cobra.Command{
		Use:   "add ID NAME",
		Short: "Add a department",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := admin.CreateDepartmentRequest{ID: args[0], Name: args[1]}
			if cmd.Flags().Changed("contact") {
				req.Contact = &contact
			}
			d, err := a.departments.Create(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Department %s saved.\n", d.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&contact, "contact", "", "contact person or number")
	return cmd
}

func newDeptEditCommand(a *app) *cobra.Command {
	var name, contact string
	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change a department's name or contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := admin.UpdateDepartmentRequest{Name: name}
			if cmd.Flags().Changed("contact") {
				req.Contact = &contact
			}
			if err := a.departments.Update(cmd.Context(), args[0], req); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Department %s saved.\n", args[0])
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "department name (required)")
	cmd.Flags().StringVar(&contact, "contact", "", "contact person or number, omitted clears it")
	return cmd
}

func newDeptDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a department; its radios keep the old id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := a.confirm("Delete department '%s'?", args[0])
			if err != nil || !ok {
				return err
			}
			if err := a.departments.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Department deleted.")
			return nil
		},
	}
}

func newDeptListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List departments by id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			departments, err := a.departments.List(cmd.Context())
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(departments))
			for _, d := range departments {
				rows = append(rows, []string{d.ID, d.Name, inventory.Text(d.Contact)})
			}
			return a.render(table{headers: []string{"ID", "NAME", "CONTACT"}, rows: rows, data: departments})
		},
	}
}

func newDeptLabelsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "labels",
		Short: "List the labels accepted by radio --department",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			labels, err := a.departments.Labels(cmd.Context())
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(labels))
			for _, l := range labels {
				rows = append(rows, []string{l.Label})
			}
			return a.render(table{headers: []string{"LABEL"}, rows: rows, data: labels})
		},
	}
}

func newDeptNamesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "names",
		Short: "List distinct department names accepted by radio list --department",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := a.departments.Names(cmd.Context())
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(names))
			for _, n := range names {
				rows = append(rows, []string{n})
			}
			return a.render(table{headers: []string{"NAME"}, rows: rows, data: names})
		},
	}
}
