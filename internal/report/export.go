package report

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"radiotrack/internal/apperrors"

	"github.com/xuri/excelize/v2"
)

const (
	headerRow    = 4
	firstDataRow = 5
	maxColWidth  = 50
	headerFill   = "#305496"
	subtitleDate = "01/02/2006"
)

type ExcelOptions struct {
	OrgTitle  string
	SheetName string
}

// WriteExcel renders the result as a single styled sheet.
func WriteExcel(w io.Writer, res *Result, opts ExcelOptions) error {
	if res == nil || len(res.Rows) == 0 {
		return apperrors.ErrEmptyReport
	}
	if opts.SheetName == "" {
		opts.SheetName = "Radio Report"
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := opts.SheetName
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("excel sheet: %w", err)
	}

	lastCol, err := excelize.ColumnNumberToName(len(res.Columns))
	if err != nil {
		return fmt.Errorf("excel columns: %w", err)
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("excel style: %w", err)
	}
	subtitleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 12},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("excel style: %w", err)
	}
	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
	align := &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{headerFill}, Pattern: 1},
		Alignment: align,
		Border:    border,
	})
	if err != nil {
		return fmt.Errorf("excel style: %w", err)
	}
	dataStyle, err := f.NewStyle(&excelize.Style{Alignment: align, Border: border})
	if err != nil {
		return fmt.Errorf("excel style: %w", err)
	}

	subtitle := fmt.Sprintf("REPORT: %s   %s", strings.ToUpper(string(res.Kind)), res.GeneratedAt.Format(subtitleDate))

	// title block, rows 1 and 2
	for _, line := range []struct {
		row   int
		value string
		style int
	}{
		{1, opts.OrgTitle, titleStyle},
		{2, subtitle, subtitleStyle},
	} {
		first := cell("A", line.row)
		if err := f.MergeCell(sheet, first, cell(lastCol, line.row)); err != nil {
			return fmt.Errorf("excel merge: %w", err)
		}
		if err := f.SetCellValue(sheet, first, line.value); err != nil {
			return fmt.Errorf("excel cell: %w", err)
		}
		if err := f.SetCellStyle(sheet, first, first, line.style); err != nil {
			return fmt.Errorf("excel style: %w", err)
		}
	}

	widths := make([]int, len(res.Columns))
	widths[0] = max(textLen(opts.OrgTitle), textLen(subtitle))

	for i, name := range res.Columns {
		ref := cell(colName(i), headerRow)
		if err := f.SetCellValue(sheet, ref, name); err != nil {
			return fmt.Errorf("excel cell: %w", err)
		}
		widths[i] = max(widths[i], textLen(name))
	}
	if err := f.SetCellStyle(sheet, cell("A", headerRow), cell(lastCol, headerRow), headerStyle); err != nil {
		return fmt.Errorf("excel style: %w", err)
	}

	for r, values := range res.Rows {
		row := firstDataRow + r
		for i, v := range values {
			if v == nil {
				continue
			}
			if err := f.SetCellValue(sheet, cell(colName(i), row), v); err != nil {
				return fmt.Errorf("excel cell: %w", err)
			}
			widths[i] = max(widths[i], displayLen(v))
		}
	}
	lastRow := firstDataRow + len(res.Rows) - 1
	if err := f.SetCellStyle(sheet, cell("A", firstDataRow), cell(lastCol, lastRow), dataStyle); err != nil {
		return fmt.Errorf("excel style: %w", err)
	}

	for i, w := range widths {
		col := colName(i)
		if err := f.SetColWidth(sheet, col, col, float64(min(w+4, maxColWidth))); err != nil {
			return fmt.Errorf("excel width: %w", err)
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return fmt.Errorf("excel write: %w", err)
	}
	_, err = buf.WriteTo(w)
	return err
}

// SaveExcel writes the workbook to path, replacing any existing file.
func SaveExcel(path string, res *Result, opts ExcelOptions) error {
	if res == nil || len(res.Rows) == 0 {
		return apperrors.ErrEmptyReport
	}
	var buf bytes.Buffer
	if err := WriteExcel(&buf, res, opts); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("report could not be saved: %w", err)
	}
	return nil
}

// displayLen is the width a value takes in the sheet. Empty strings and
// zero numbers do not count.
func displayLen(v interface{}) int {
	switch t := v.(type) {
	case string:
		return textLen(t)
	case int64:
		if t == 0 {
			return 0
		}
		return len(fmt.Sprint(t))
	case float64:
		if t == 0 {
			return 0
		}
		return len(fmt.Sprint(t))
	default:
		return textLen(fmt.Sprint(t))
	}
}

func textLen(s string) int { return utf8.RuneCountInString(s) }

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
