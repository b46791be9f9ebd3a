package main

import (
	"fmt"
	"strconv"

	"radiotrack/internal/inventory"

	"github.com/spf13/cobra"
)

func newServiceCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "service",
		Aliases: []string{"services"},
		Short:   "Open, close and list repair tickets",
	}
	cmd.AddCommand(
		newServiceOpenCommand(a),
		newServiceCloseCommand(a),
		newServiceListCommand(a),
	)
	return cmd
}

func newServiceOpenCommand(a *app) *cobra.Command {
	var req inventory.OpenServiceRequest
	cmd := &cobra.Command{
		Use:   "open RADIO",
		Short: "Open a service ticket and mark the radio In Service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if _, err := inventory.ParseAmount(req.Amount); err != nil {
				return err
			}
			r, err := a.radios.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			ok, err := a.confirm("Mark radio %s as 'In Service' and log service entry?", r.Serial)
			if err != nil || !ok {
				return err
			}
			svc, err := a.serviceLog.Open(cmd.Context(), id, req)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Service %d opened.\n", svc.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.LRCServiceNum, "lrc", "", "repair shop ticket number")
	cmd.Flags().StringVar(&req.DateSent, "date-sent", "", "date sent for repair")
	cmd.Flags().StringVar(&req.Problem, "problem", "", "problem description")
	cmd.Flags().StringVar(&req.Notes, "notes", "", "notes")
	cmd.Flags().StringVar(&req.Amount, "amount", "", "repair cost, blank for 0")
	return cmd
}

func newServiceCloseCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "close SERVICE",
		Short: "Close a service ticket, stamping today's repaired date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.serviceLog.Close(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Service %d closed.\n", id)
			return nil
		},
	}
}

func newServiceListCommand(a *app) *cobra.Command {
	var radio uint
	var status string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List services for one radio or for all radios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			headers := []string{"ID", "SERIAL", "STATUS", "DATE", "LRC #", "SENT", "REPAIRED", "AMOUNT", "PROBLEM", "NOTES"}

			if radio != 0 {
				services, err := a.serviceLog.ListForRadio(cmd.Context(), radio)
				if err != nil {
					return err
				}
				rows := make([][]string, 0, len(services))
				for _, s := range services {
					rows = append(rows, []string{
						strconv.FormatUint(uint64(s.ID), 10), "", string(s.Status),
						inventory.Text(s.DateService), inventory.Text(s.LRCServiceNum), inventory.Text(s.DateSent),
						inventory.Text(s.DateRepaired), amountText(s.Amount), inventory.Text(s.Problem), inventory.Text(s.Notes),
					})
				}
				return a.render(table{headers: headers, rows: rows, data: services})
			}

			services, err := a.serviceLog.ListAll(cmd.Context(), status)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(services))
			for _, s := range services {
				rows = append(rows, []string{
					strconv.FormatUint(uint64(s.ID), 10), inventory.Text(s.Serial), string(s.Status),
					inventory.Text(s.DateService), inventory.Text(s.LRCServiceNum), inventory.Text(s.DateSent),
					inventory.Text(s.DateRepaired), amountText(s.Amount), inventory.Text(s.Problem), inventory.Text(s.Notes),
				})
			}
			return a.render(table{headers: headers, rows: rows, data: services})
		},
	}
	cmd.Flags().UintVar(&radio, "radio", 0, "radio id; all radios when omitted")
	cmd.Flags().StringVar(&status, "status", inventory.ServiceFilterAll, "all, open or closed (all radios only)")
	return cmd
}

func amountText(v *float64) string {
	if v == nil {
		return "None"
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}
