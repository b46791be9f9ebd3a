package inventory

import (
	"context"
	"strconv"
	"strings"

	"radiotrack/internal/apperrors"
	"radiotrack/internal/models"

	"go.uber.org/zap"
)

// noneText is how an empty (NULL) cell reads in the grid and in filters.
const noneText = "None"

type Highlight string

const (
	HighlightNone      Highlight = ""
	HighlightMissing   Highlight = "missing"
	HighlightInService Highlight = "in_service"
)

// GridRow is one line of the radio grid, department name joined in.
type GridRow struct {
	ID             uint    `json:"id" yaml:"id"`
	Serial         string  `json:"serial" yaml:"serial"`
	Model          *string `json:"model" yaml:"model"`
	LastUpdated    *string `json:"last_updated" yaml:"last_updated"`
	DepartmentID   *string `json:"department_id" yaml:"department_id"`
	DepartmentName *string `json:"department" yaml:"department"`
	AssignedTo     *string `json:"assigned_to" yaml:"assigned_to"`
	Status         *string `json:"status" yaml:"status"`
	Missing        *string `json:"missing" yaml:"missing"`
	Notes          *string `json:"notes" yaml:"notes"`
}

// Cells renders the row the way the grid shows it.
func (r GridRow) Cells() []string {
	return []string{
		strconv.FormatUint(uint64(r.ID), 10),
		r.Serial,
		Text(r.Model),
		Text(r.LastUpdated),
		Text(r.DepartmentID),
		Text(r.DepartmentName),
		Text(r.AssignedTo),
		Text(r.Status),
		Text(r.Missing),
		Text(r.Notes),
	}
}

// Highlight tags missing radios first, then radios in service.
func (r GridRow) Highlight() Highlight {
	if strings.ToLower(strings.TrimSpace(Text(r.Missing))) == "yes" {
		return HighlightMissing
	}
	if strings.ToLower(strings.TrimSpace(Text(r.Status))) == "in service" {
		return HighlightInService
	}
	return HighlightNone
}

var GridColumns = []string{
	"ID", "Serial", "Model", "Last Updated", "Department ID", "Department",
	"Assigned To", "Status", "Missing", "Notes",
}

// Text renders a nullable column, NULL as "None".
func Text(p *string) string {
	if p == nil {
		return noneText
	}
	return *p
}

// RadioFilter holds the grid's search box and drop-downs. Empty fields do
// not filter.
type RadioFilter struct {
	Search     string
	Status     string
	Missing    string
	Department string // department name
}

func (f RadioFilter) matchesColumns(r GridRow) bool {
	return equalFold(f.Status, r.Status) &&
		equalFold(f.Missing, r.Missing) &&
		equalFold(f.Department, r.DepartmentName)
}

// equalFold reports whether cell reads as want, ignoring case. An empty want
// matches anything.
func equalFold(want string, cell *string) bool {
	if want == "" {
		return true
	}
	return strings.ToLower(Text(cell)) == strings.ToLower(want)
}

func (f RadioFilter) matchesSearch(r GridRow) bool {
	term := strings.ToLower(f.Search)
	if term == "" {
		return true
	}
	for _, cell := range r.Cells() {
		if strings.Contains(strings.ToLower(cell), term) {
			return true
		}
	}
	return false
}

// List returns grid rows ordered by id. Status, missing and department are
// exact case-insensitive matches; search is a substring match over every
// rendered cell. Both compare Unicode-lowered text, so they run here rather
// than in SQLite, whose LOWER only folds ASCII.
func (s *RadioService) List(ctx context.Context, f RadioFilter) ([]GridRow, error) {
	q := s.db.WithContext(ctx).
		Table("radios AS r").
		Select(`r.id, r.serial, r.model, r.last_updated, r.department_id,
			d.name AS department_name, r.assigned_to, r.status, r.missing, r.notes`).
		Joins("LEFT JOIN departments d ON r.department_id = d.id")

	var rows []GridRow
	if err := q.Order("r.id").Scan(&rows).Error; err != nil {
		return nil, apperrors.Storage("radio.list", err)
	}

	out := rows[:0]
	for _, r := range rows {
		if !f.matchesColumns(r) || !f.matchesSearch(r) {
			continue
		}
		if r.Status != nil && !models.RadioStatus(*r.Status).Known() {
			s.logger.Warn("unrecognized status value", zap.Uint("id", r.ID), zap.String("status", *r.Status))
		}
		out = append(out, r)
	}
	return out, nil
}
