package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"radiotrack/internal/apperrors"
	"radiotrack/internal/inventory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func run(t *testing.T, dbPath, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	a := newApp(strings.NewReader(stdin), &out)
	err := execute(a, append([]string{"--db", dbPath, "--log-level", "error"}, args...))
	return out.String(), err
}

func mustRun(t *testing.T, dbPath string, args ...string) string {
	t.Helper()
	out, err := run(t, dbPath, "", args...)
	require.NoError(t, err, strings.Join(args, " "))
	return out
}

func listRadios(t *testing.T, dbPath string, args ...string) []inventory.GridRow {
	t.Helper()
	out := mustRun(t, dbPath, append([]string{"radio", "list", "-o", "json"}, args...)...)
	var rows []inventory.GridRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	return rows
}

func TestCLI_RadioLifecycle(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "radios.db")

	assert.Contains(t, mustRun(t, dbPath, "init"), "Database ready")
	mustRun(t, dbPath, "dept", "add", "PD", "Police", "--contact", "555-0100")
	assert.Contains(t, mustRun(t, dbPath, "dept", "labels"), "PD - Police")

	out := mustRun(t, dbPath, "radio", "add", "--radio-id", "R1", "--serial", "SN1", "--model", "APX", "--department", "PD - Police")
	assert.Contains(t, out, "Radio saved (id 1)")

	rows := listRadios(t, dbPath)
	require.Len(t, rows, 1)
	assert.Equal(t, "Police", inventory.Text(rows[0].DepartmentName))

	out = mustRun(t, dbPath, "radio", "edit", "1", "--assigned-to", "Kim")
	assert.Contains(t, out, "1 field(s) changed")

	mustRun(t, dbPath, "radio", "missing", "1", "--yes")
	rows = listRadios(t, dbPath, "--missing", "yes")
	require.Len(t, rows, 1)
	assert.Equal(t, inventory.HighlightMissing, rows[0].Highlight())

	mustRun(t, dbPath, "service", "open", "1", "-y", "--problem", "no power", "--amount", "12.5")
	assert.Len(t, listRadios(t, dbPath, "--status", "in service"), 1)
	assert.Contains(t, mustRun(t, dbPath, "service", "list", "--status", "open"), "no power")

	history := mustRun(t, dbPath, "radio", "history", "1")
	for _, tag := range []string{"ADD", "EDIT", "MISSING", "STATUS"} {
		assert.Contains(t, history, tag)
	}

	xlsx := filepath.Join(t.TempDir(), "missing.xlsx")
	mustRun(t, dbPath, "report", "run", "missing radios", "--export", xlsx)
	f, err := excelize.OpenFile(xlsx)
	require.NoError(t, err)
	v, err := f.GetCellValue("Radio Report", "B5")
	require.NoError(t, err)
	assert.Equal(t, "SN1", v)
	require.NoError(t, f.Close())

	out, err = run(t, dbPath, "n\n", "radio", "delete", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Cancelled.")
	assert.Len(t, listRadios(t, dbPath), 1)

	out, err = run(t, dbPath, "yes\n", "radio", "delete", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Radio deleted.")
	assert.Empty(t, listRadios(t, dbPath))
}

func TestCLI_Errors(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "radios.db")

	_, err := run(t, dbPath, "", "radio", "add", "--serial", "SN1")
	require.Error(t, err)
	assert.Equal(t, "Radio ID is required", describe(err))

	_, err = run(t, dbPath, "", "radio", "show", "5")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = run(t, dbPath, "", "service", "open", "1", "--amount", "abc")
	assert.True(t, apperrors.IsValidation(err))

	_, err = run(t, dbPath, "", "report", "run", "Radios by Department")
	assert.True(t, apperrors.IsValidation(err))

	_, err = run(t, dbPath, "", "radio", "list", "-o", "xml")
	assert.Error(t, err)

	_, err = run(t, dbPath, "", "--db-log-level", "loud", "init")
	assert.Error(t, err)
}

func TestExecute_ReleasesDatabaseOnFailure(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "radios.db")

	var out bytes.Buffer
	a := newApp(strings.NewReader(""), &out)
	err := execute(a, []string{"--db", dbPath, "--log-level", "error", "radio", "show", "99"})
	require.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Equal(t, "record not found", describe(err))
	assert.Nil(t, a.db)

	// the file is free for the next invocation
	mustRun(t, dbPath, "radio", "add", "--radio-id", "R1", "--serial", "SN1")
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "record not found", describe(apperrors.ErrNotFound))
	assert.Equal(t, "this service is already closed", describe(apperrors.ErrServiceClosed))
	assert.Equal(t, "boom", describe(errors.New("boom")))
}

func TestCLI_ExportImport(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.db")
	dst := filepath.Join(dir, "dst.db")
	xlsx := filepath.Join(dir, "all.xlsx")

	mustRun(t, src, "radio", "add", "--radio-id", "R1", "--serial", "SN1")
	mustRun(t, src, "radio", "add", "--radio-id", "R2", "--serial", "SN2", "--notes", "spare")
	mustRun(t, src, "report", "run", "All Radios", "--export", xlsx)

	out := mustRun(t, dst, "radio", "import", xlsx)
	assert.Contains(t, out, "2 radio(s) imported, 0 row(s) skipped.")
	assert.Len(t, listRadios(t, dst, "--search", "spare"), 1)
}

func TestCLI_EmptyReportExport(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "radios.db")

	_, err := run(t, dbPath, "", "report", "run", "Missing Radios", "--export", filepath.Join(t.TempDir(), "x.xlsx"))
	assert.ErrorIs(t, err, apperrors.ErrEmptyReport)
}
