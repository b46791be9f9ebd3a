package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"radiotrack/internal/apperrors"

	"gorm.io/gorm"
)

type Kind string

const (
	AllRadios          Kind = "All Radios"
	RadiosByDepartment Kind = "Radios by Department"
	RadiosInService    Kind = "Radios in Service"
	DisabledRadios     Kind = "Disabled Radios"
	MissingRadios      Kind = "Missing Radios"
)

const titleLayout = "Jan 02, 2006 03:04 PM"

type definition struct {
	columns   []string
	query     string
	needsDept bool
}

var shortColumns = []string{"ID", "Serial", "Model", "Department", "Assigned"}

const shortSelect = `SELECT r.id, r.serial, r.model, d.name, r.assigned_to
	FROM radios r
	LEFT JOIN departments d ON r.department_id = d.id`

var definitions = map[Kind]definition{
	AllRadios: {
		columns: []string{
			"Radio ID", "Serial", "Model", "Department", "Assigned To", "Notes",
			"Date Received", "Date Issued", "Date Returned", "In Service",
		},
		// "In Service" here reads Yes for radios that are Active, i.e. in use
		query: `SELECT r.radio_id, r.serial, r.model, d.name, r.assigned_to, r.notes,
			r.date_received, r.date_issued, r.date_returned,
			CASE WHEN r.status = 'Active' THEN 'Yes' ELSE 'No' END AS in_service
			FROM radios r
			LEFT JOIN departments d ON r.department_id = d.id
			ORDER BY r.id`,
	},
	RadiosByDepartment: {
		columns: []string{"ID", "Serial", "Model", "Assigned", "Status", "Missing", "Notes"},
		query: `SELECT r.id, r.serial, r.model, r.assigned_to, r.status, r.missing, r.notes
			FROM radios r
			JOIN departments d ON r.department_id = d.id
			WHERE d.name = ?
			ORDER BY r.id`,
		needsDept: true,
	},
	RadiosInService: {
		columns: shortColumns,
		query:   shortSelect + ` WHERE r.status = 'In Service' ORDER BY r.id`,
	},
	DisabledRadios: {
		columns: shortColumns,
		query:   shortSelect + ` WHERE r.status IS NULL OR r.status NOT IN ('Active', 'In Service') ORDER BY r.id`,
	},
	MissingRadios: {
		columns: shortColumns,
		query:   shortSelect + ` WHERE r.missing = 'Yes' ORDER BY r.id`,
	},
}

// Kinds lists the reports in picker order.
func Kinds() []Kind {
	return []Kind{AllRadios, RadiosByDepartment, RadiosInService, DisabledRadios, MissingRadios}
}

// ParseKind matches a report name case-insensitively.
func ParseKind(name string) (Kind, error) {
	for _, k := range Kinds() {
		if strings.EqualFold(string(k), strings.TrimSpace(name)) {
			return k, nil
		}
	}
	return "", apperrors.Invalid("report", fmt.Sprintf("unknown report %q", name))
}

type Params struct {
	Department string // department name, Radios by Department only
	Now        func() time.Time
}

// Result is one materialized report. Row values are nil, int64, float64 or
// string.
type Result struct {
	Kind        Kind            `json:"kind" yaml:"kind"`
	Columns     []string        `json:"columns" yaml:"columns"`
	Rows        [][]interface{} `json:"rows" yaml:"rows"`
	GeneratedAt time.Time       `json:"generated_at" yaml:"generated_at"`
}

func (r *Result) Title() string {
	return fmt.Sprintf("%s - %s", r.Kind, r.GeneratedAt.Format(titleLayout))
}

// Run executes the report. Nothing is cached; each call re-reads the tables.
func Run(ctx context.Context, db *gorm.DB, kind Kind, p Params) (*Result, error) {
	def, ok := definitions[kind]
	if !ok {
		return nil, apperrors.Invalid("report", fmt.Sprintf("unknown report %q", kind))
	}

	var args []interface{}
	if def.needsDept {
		dept := strings.TrimSpace(p.Department)
		if dept == "" {
			return nil, apperrors.Invalid("department", "select a department for this report")
		}
		args = append(args, dept)
	}

	now := time.Now
	if p.Now != nil {
		now = p.Now
	}

	rows, err := db.WithContext(ctx).Raw(def.query, args...).Rows()
	if err != nil {
		return nil, apperrors.Storage("report.run", err)
	}
	defer rows.Close()

	res := &Result{Kind: kind, Columns: def.columns, Rows: [][]interface{}{}, GeneratedAt: now()}
	for rows.Next() {
		values := make([]interface{}, len(def.columns))
		ptrs := make([]interface{}, len(values))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, apperrors.Storage("report.scan", err)
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		res.Rows = append(res.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Storage("report.run", err)
	}
	return res, nil
}
