package audit

import (
	"context"

	"radiotrack/internal/apperrors"
	"radiotrack/internal/models"

	"gorm.io/gorm"
)

// ListChanges returns the history of one radio, newest first. Rows of deleted
// radios are still returned. types narrows the result when given.
func ListChanges(ctx context.Context, db *gorm.DB, radioID uint, types ...models.ChangeType) ([]models.RadioChange, error) {
	q := db.WithContext(ctx).Model(&models.RadioChange{}).Where("radio_id = ?", radioID)
	if len(types) > 0 {
		q = q.Where("change_type IN ?", types)
	}

	var changes []models.RadioChange
	if err := q.Order("timestamp DESC").Order("id DESC").Find(&changes).Error; err != nil {
		return nil, apperrors.Storage("audit.list", err)
	}
	return changes, nil
}
