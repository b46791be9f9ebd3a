package inventory

import (
	"context"
	"testing"

	"radiotrack/internal/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func seedGrid(t *testing.T) *RadioService {
	t.Helper()
	db := testhelpers.NewDB(t)
	require.NoError(t, db.Exec(`INSERT INTO departments (id, name) VALUES ('FIRE', 'Fire'), ('PD', 'Police')`).Error)
	require.NoError(t, db.Exec(`INSERT INTO radios (radio_id, serial, model, department_id, assigned_to, status, missing, notes) VALUES
		('R1', 'SN-A1', 'XTS', 'FIRE', 'Alex', 'Active', 'No', 'spare'),
		('R2', 'SN-B2', 'APX', 'PD', 'Sam', 'In Service', 'No', NULL),
		('R3', 'SN-C3', 'APX', 'PD', 'Jo', 'In Service', 'Yes', 'lost at scene'),
		('R4', 'SN-D4', NULL, 'GONE', NULL, NULL, NULL, NULL)`).Error)
	return NewRadioService(db, zaptest.NewLogger(t))
}

func serials(rows []GridRow) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Serial)
	}
	return out
}

func TestList_Filters(t *testing.T) {
	svc := seedGrid(t)

	tests := []struct {
		name   string
		filter RadioFilter
		want   []string
	}{
		{"no filter", RadioFilter{}, []string{"SN-A1", "SN-B2", "SN-C3", "SN-D4"}},
		{"search serial", RadioFilter{Search: "sn-b"}, []string{"SN-B2"}},
		{"search department name", RadioFilter{Search: "POLICE"}, []string{"SN-B2", "SN-C3"}},
		{"null cells read as None", RadioFilter{Search: "none"}, []string{"SN-A1", "SN-B2", "SN-C3", "SN-D4"}},
		{"search id", RadioFilter{Search: "4"}, []string{"SN-D4"}},
		{"status", RadioFilter{Status: "in service"}, []string{"SN-B2", "SN-C3"}},
		{"status none", RadioFilter{Status: "None"}, []string{"SN-D4"}},
		{"status partial is no match", RadioFilter{Status: "serv"}, []string{}},
		{"missing", RadioFilter{Missing: "YES"}, []string{"SN-C3"}},
		{"department", RadioFilter{Department: "police"}, []string{"SN-B2", "SN-C3"}},
		{"dangling department", RadioFilter{Department: "none"}, []string{"SN-D4"}},
		{"combined", RadioFilter{Search: "apx", Missing: "no"}, []string{"SN-B2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := svc.List(context.Background(), tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, serials(rows))
		})
	}
}

func TestList_FiltersFoldUnicode(t *testing.T) {
	db := testhelpers.NewDB(t)
	require.NoError(t, db.Exec(`INSERT INTO departments (id, name) VALUES ('EMS', 'Émergence'), ('PD', 'Police')`).Error)
	require.NoError(t, db.Exec(`INSERT INTO radios (radio_id, serial, department_id, status, missing) VALUES
		('R1', 'SN-E1', 'EMS', 'Active', 'No'),
		('R2', 'SN-P1', 'PD', 'Active', 'No')`).Error)
	svc := NewRadioService(db, zaptest.NewLogger(t))

	var names []string
	require.NoError(t, db.Table("departments").Distinct("name").Order("name").Pluck("name", &names).Error)
	require.Contains(t, names, "Émergence")

	for _, dept := range []string{"Émergence", "émergence", "ÉMERGENCE"} {
		t.Run(dept, func(t *testing.T) {
			rows, err := svc.List(context.Background(), RadioFilter{Department: dept})
			require.NoError(t, err)
			assert.Equal(t, []string{"SN-E1"}, serials(rows))
		})
	}

	rows, err := svc.List(context.Background(), RadioFilter{Search: "émergence", Status: "ACTIVE"})
	require.NoError(t, err)
	assert.Equal(t, []string{"SN-E1"}, serials(rows))
}

func TestList_JoinAndHighlight(t *testing.T) {
	svc := seedGrid(t)

	rows, err := svc.List(context.Background(), RadioFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, "Fire", Text(rows[0].DepartmentName))
	assert.Equal(t, HighlightNone, rows[0].Highlight())
	assert.Equal(t, HighlightInService, rows[1].Highlight())
	assert.Equal(t, HighlightMissing, rows[2].Highlight())

	assert.Nil(t, rows[3].DepartmentName)
	assert.Equal(t, "GONE", Text(rows[3].DepartmentID))
	assert.Equal(t, []string{"4", "SN-D4", "None", "None", "GONE", "None", "None", "None", "None", "None"}, rows[3].Cells())
	assert.Len(t, GridColumns, len(rows[3].Cells()))
}
