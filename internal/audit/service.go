package audit

import (
	"fmt"
	"strings"

	"radiotrack/internal/apperrors"
	"radiotrack/internal/models"

	"gorm.io/gorm"
)

// Change describes one radio_changes row. Old and New keep NULL as nil.
type Change struct {
	RadioID uint
	Type    models.ChangeType
	Field   string
	Old     *string
	New     *string
}

// WriteChange appends one audit row using the caller's handle, normally the
// transaction that performed the radio write. The radio id is not checked.
func WriteChange(tx *gorm.DB, c Change) error {
	row := models.RadioChange{
		RadioID:      c.RadioID,
		ChangeType:   c.Type,
		FieldChanged: c.Field,
		OldValue:     c.Old,
		NewValue:     c.New,
	}
	if err := tx.Create(&row).Error; err != nil {
		return apperrors.Storage("audit.write", fmt.Errorf("audit row could not be written: %w", err))
	}
	return nil
}

// AddSummary is the new_value of an ADD row.
func AddSummary(radioID, serial, model, assigned, notes string) string {
	return strings.Join([]string{radioID, serial, model, assigned, notes}, ", ")
}

func Added(radioID uint, summary string) Change {
	empty := ""
	return Change{RadioID: radioID, Type: models.ChangeAdd, Field: models.FieldAll, Old: &empty, New: &summary}
}

func Deleted(radioID uint, serial string) Change {
	empty := ""
	return Change{RadioID: radioID, Type: models.ChangeDelete, Field: models.FieldAll, Old: &serial, New: &empty}
}

func StatusChanged(radioID uint, from, to models.RadioStatus) Change {
	return Change{RadioID: radioID, Type: models.ChangeStatus, Field: "status", Old: textOf(string(from)), New: textOf(string(to))}
}

func MissingChanged(radioID uint, from, to models.MissingFlag) Change {
	return Change{RadioID: radioID, Type: models.ChangeMissing, Field: "missing", Old: textOf(string(from)), New: textOf(string(to))}
}

// NULL columns scan to "", keep them NULL in history
func textOf(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
