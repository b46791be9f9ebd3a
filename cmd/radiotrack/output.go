package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"
)

// table is what every listing command prints. data is the value encoded for
// json and yaml output.
type table struct {
	headers []string
	rows    [][]string
	data    interface{}
}

func (a *app) render(t table) error {
	switch a.flags.Output {
	case formatJSON:
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return enc.Encode(t.data)
	case formatYAML:
		enc := yaml.NewEncoder(a.out)
		enc.SetIndent(2)
		if err := enc.Encode(t.data); err != nil {
			return err
		}
		return enc.Close()
	}
	writeTable(a.out, t.headers, t.rows)
	return nil
}

func writeTable(w io.Writer, headers []string, rows [][]string) {
	tw := tablewriter.NewWriter(w)
	tw.SetHeader(headers)
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)
	tw.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	tw.SetAlignment(tablewriter.ALIGN_LEFT)
	tw.AppendBulk(rows)
	tw.Render()
}

// cellText renders a report cell. NULL prints as None.
func cellText(v interface{}) string {
	if v == nil {
		return "None"
	}
	return fmt.Sprint(v)
}
