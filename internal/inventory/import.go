package inventory

import (
	"context"
	"fmt"
	"io"
	"strings"

	"radiotrack/internal/apperrors"
	"radiotrack/internal/models"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// ImportSkip is a sheet row that was not imported.
type ImportSkip struct {
	Row    int    `json:"row" yaml:"row"` // 1-based sheet row
	Reason string `json:"reason" yaml:"reason"`
}

type ImportResult struct {
	Created []uint       `json:"created" yaml:"created"`
	Skipped []ImportSkip `json:"skipped" yaml:"skipped"`
}

// import columns, matched case-insensitively against the header row
var importColumns = map[string]func(r *RadioRequest, v string){
	"radio id":      func(r *RadioRequest, v string) { r.RadioID = v },
	"serial":        func(r *RadioRequest, v string) { r.Serial = v },
	"model":         func(r *RadioRequest, v string) { r.Model = v },
	"assigned to":   func(r *RadioRequest, v string) { r.AssignedTo = v },
	"assigned":      func(r *RadioRequest, v string) { r.AssignedTo = v },
	"notes":         func(r *RadioRequest, v string) { r.Notes = v },
	"date received": func(r *RadioRequest, v string) { r.DateReceived = v },
	"date issued":   func(r *RadioRequest, v string) { r.DateIssued = v },
	"date returned": func(r *RadioRequest, v string) { r.DateReturned = v },
}

// ImportExcel adds one radio per row of the first sheet. The header row is the
// first row with a "Serial" cell, so an All Radios export can be read back
// with its title block. Departments are matched by name or id. Rows failing
// validation are skipped; a storage error stops the import.
func (s *RadioService) ImportExcel(ctx context.Context, r io.Reader) (*ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperrors.Invalid("file", fmt.Sprintf("Excel file could not be read: %v", err))
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperrors.Invalid("file", "Excel file has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, apperrors.Invalid("file", fmt.Sprintf("sheet could not be read: %v", err))
	}

	headerIdx := -1
	for i, row := range rows {
		for _, c := range row {
			if strings.EqualFold(strings.TrimSpace(c), "serial") {
				headerIdx = i
				break
			}
		}
		if headerIdx >= 0 {
			break
		}
	}
	if headerIdx < 0 {
		return nil, apperrors.Invalid("file", `no header row with a "Serial" column`)
	}

	header := rows[headerIdx]
	deptCol := -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "department", "department id":
			deptCol = i
		}
	}

	res := &ImportResult{Created: []uint{}, Skipped: []ImportSkip{}}
	for i := headerIdx + 1; i < len(rows); i++ {
		row := rows[i]
		if blank(row) {
			continue
		}

		var req RadioRequest
		for col, h := range header {
			if set, ok := importColumns[strings.ToLower(strings.TrimSpace(h))]; ok {
				set(&req, at(row, col))
			}
		}
		if deptCol >= 0 {
			if dept := strings.TrimSpace(at(row, deptCol)); dept != "" {
				id, err := s.departmentByNameOrID(ctx, dept)
				if err != nil {
					return res, err
				}
				if id == nil {
					res.Skipped = append(res.Skipped, ImportSkip{Row: i + 1, Reason: fmt.Sprintf("unknown department %q", dept)})
					continue
				}
				req.DepartmentID = id
			}
		}

		radio, err := s.Create(ctx, req)
		if err != nil {
			if apperrors.IsValidation(err) {
				res.Skipped = append(res.Skipped, ImportSkip{Row: i + 1, Reason: err.Error()})
				continue
			}
			return res, err
		}
		res.Created = append(res.Created, radio.ID)
	}

	s.logger.Info("radios imported", zap.Int("created", len(res.Created)), zap.Int("skipped", len(res.Skipped)))
	return res, nil
}

func (s *RadioService) departmentByNameOrID(ctx context.Context, v string) (*string, error) {
	var ids []string
	err := s.db.WithContext(ctx).Model(&models.Department{}).
		Where("name = ? OR id = ?", v, v).
		Order("id").Limit(1).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, apperrors.Storage("department.lookup", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}
	return &ids[0], nil
}

func at(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
