package inventory

import (
	"context"
	"errors"
	"strings"
	"time"

	"radiotrack/internal/apperrors"
	"radiotrack/internal/audit"
	"radiotrack/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const lastUpdatedLayout = "2006-01-02 15:04:05"

// RadioRequest carries the add/edit form. DepartmentID is already resolved
// from its label; nil means no department.
type RadioRequest struct {
	RadioID      string  `json:"radio_id"`
	Serial       string  `json:"serial"`
	Model        string  `json:"model"`
	AssignedTo   string  `json:"assigned_to"`
	Notes        string  `json:"notes"`
	DepartmentID *string `json:"department_id"`
	DateReceived string  `json:"date_received"`
	DateIssued   string  `json:"date_issued"`
	DateReturned string  `json:"date_returned"`
}

func (r RadioRequest) normalized() RadioRequest {
	r.RadioID = strings.TrimSpace(r.RadioID)
	r.Serial = strings.TrimSpace(r.Serial)
	r.Model = strings.TrimSpace(r.Model)
	r.AssignedTo = strings.TrimSpace(r.AssignedTo)
	r.Notes = strings.TrimSpace(r.Notes)
	r.DateReceived = strings.TrimSpace(r.DateReceived)
	r.DateIssued = strings.TrimSpace(r.DateIssued)
	r.DateReturned = strings.TrimSpace(r.DateReturned)
	if r.DepartmentID != nil {
		d := strings.TrimSpace(*r.DepartmentID)
		if d == "" {
			r.DepartmentID = nil
		} else {
			r.DepartmentID = &d
		}
	}
	return r
}

func (r RadioRequest) validate() error {
	if r.RadioID == "" {
		return apperrors.Invalid("radio_id", "Radio ID is required")
	}
	if r.Serial == "" {
		return apperrors.Invalid("serial", "Serial is required")
	}
	return nil
}

// apply copies the form onto a radio. Blank text fields are stored as "".
func (r RadioRequest) apply(radio *models.Radio) {
	radio.RadioID = &r.RadioID
	radio.Serial = r.Serial
	radio.Model = &r.Model
	radio.AssignedTo = &r.AssignedTo
	radio.Notes = &r.Notes
	radio.DepartmentID = r.DepartmentID
	radio.DateReceived = &r.DateReceived
	radio.DateIssued = &r.DateIssued
	radio.DateReturned = &r.DateReturned
}

// ----------------------------------------
// Tracked fields
// ----------------------------------------

// trackedField pairs a column with its accessor. The edit diff and the
// UPDATE statement both walk this list, in this order.
type trackedField struct {
	column string
	value  func(r *models.Radio) *string
}

var trackedFields = []trackedField{
	{"radio_id", func(r *models.Radio) *string { return r.RadioID }},
	{"serial", func(r *models.Radio) *string { return &r.Serial }},
	{"model", func(r *models.Radio) *string { return r.Model }},
	{"assigned_to", func(r *models.Radio) *string { return r.AssignedTo }},
	{"notes", func(r *models.Radio) *string { return r.Notes }},
	{"department_id", func(r *models.Radio) *string { return r.DepartmentID }},
	{"date_received", func(r *models.Radio) *string { return r.DateReceived }},
	{"date_issued", func(r *models.Radio) *string { return r.DateIssued }},
	{"date_returned", func(r *models.Radio) *string { return r.DateReturned }},
}

// sameText compares two nullable values as text. NULL only equals NULL.
func sameText(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func diffRadio(id uint, prev, next *models.Radio) []audit.Change {
	var changes []audit.Change
	for _, f := range trackedFields {
		oldVal, newVal := f.value(prev), f.value(next)
		if sameText(oldVal, newVal) {
			continue
		}
		changes = append(changes, audit.Change{
			RadioID: id,
			Type:    models.ChangeEdit,
			Field:   f.column,
			Old:     oldVal,
			New:     newVal,
		})
	}
	return changes
}

func updateColumns(next *models.Radio, lastUpdated string) map[string]interface{} {
	cols := make(map[string]interface{}, len(trackedFields)+1)
	for _, f := range trackedFields {
		cols[f.column] = f.value(next)
	}
	cols["last_updated"] = lastUpdated
	return cols
}

// ----------------------------------------
// RadioService
// ----------------------------------------

type RadioService struct {
	db     *gorm.DB
	logger *zap.Logger
	now    func() time.Time
}

func NewRadioService(db *gorm.DB, logger *zap.Logger) *RadioService {
	return &RadioService{db: db, logger: logger, now: time.Now}
}

// WithClock replaces the clock used for last_updated.
func (s *RadioService) WithClock(now func() time.Time) *RadioService {
	s.now = now
	return s
}

// writes run to completion once started
func (s *RadioService) write(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return s.db.WithContext(context.WithoutCancel(ctx)).Transaction(fn)
}

// Create inserts the radio and one ADD audit row.
func (s *RadioService) Create(ctx context.Context, req RadioRequest) (*models.Radio, error) {
	req = req.normalized()
	if err := req.validate(); err != nil {
		return nil, err
	}

	radio := &models.Radio{}
	req.apply(radio)

	err := s.write(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(radio).Error; err != nil {
			return apperrors.Storage("radio.create", err)
		}
		summary := audit.AddSummary(req.RadioID, req.Serial, req.Model, req.AssignedTo, req.Notes)
		return audit.WriteChange(tx, audit.Added(radio.ID, summary))
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("radio created", zap.Uint("id", radio.ID), zap.String("serial", radio.Serial))
	return radio, nil
}

// Update writes one EDIT row per changed field and stamps last_updated.
// It returns the number of audit rows written.
func (s *RadioService) Update(ctx context.Context, id uint, req RadioRequest) (int, error) {
	req = req.normalized()
	if err := req.validate(); err != nil {
		return 0, err
	}

	var changes []audit.Change
	err := s.write(ctx, func(tx *gorm.DB) error {
		prev, err := findRadio(tx, id)
		if err != nil {
			return err
		}

		next := *prev
		req.apply(&next)
		changes = diffRadio(id, prev, &next)
		for _, c := range changes {
			if err := audit.WriteChange(tx, c); err != nil {
				return err
			}
		}

		stamp := s.now().Format(lastUpdatedLayout)
		if err := tx.Model(&models.Radio{}).Where("id = ?", id).Updates(updateColumns(&next, stamp)).Error; err != nil {
			return apperrors.Storage("radio.update", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("radio updated", zap.Uint("id", id), zap.Int("changes", len(changes)))
	return len(changes), nil
}

// Delete removes the radio and its services and writes one DELETE row.
func (s *RadioService) Delete(ctx context.Context, id uint) error {
	var serial string
	err := s.write(ctx, func(tx *gorm.DB) error {
		prev, err := findRadio(tx, id)
		if err != nil {
			return err
		}
		serial = prev.Serial

		// foreign keys are not enforced, cascade by hand
		if err := tx.Where("radio_id = ?", id).Delete(&models.Service{}).Error; err != nil {
			return apperrors.Storage("radio.delete", err)
		}
		if err := tx.Delete(&models.Radio{}, id).Error; err != nil {
			return apperrors.Storage("radio.delete", err)
		}
		return audit.WriteChange(tx, audit.Deleted(id, serial))
	})
	if err != nil {
		return err
	}

	s.logger.Info("radio deleted", zap.Uint("id", id), zap.String("serial", serial))
	return nil
}

// ToggleMissing flips the missing flag and returns the new value.
// last_updated is left alone.
func (s *RadioService) ToggleMissing(ctx context.Context, id uint) (models.MissingFlag, error) {
	var next models.MissingFlag
	err := s.write(ctx, func(tx *gorm.DB) error {
		prev, err := findRadio(tx, id)
		if err != nil {
			return err
		}
		if !prev.Missing.Known() {
			s.logger.Warn("unrecognized missing value", zap.Uint("id", id), zap.String("missing", string(prev.Missing)))
		}

		next = prev.Missing.Toggled()
		if err := tx.Model(&models.Radio{}).Where("id = ?", id).Update("missing", next).Error; err != nil {
			return apperrors.Storage("radio.missing", err)
		}
		return audit.WriteChange(tx, audit.MissingChanged(id, prev.Missing, next))
	})
	if err != nil {
		return "", err
	}

	s.logger.Info("radio missing toggled", zap.Uint("id", id), zap.String("missing", string(next)))
	return next, nil
}

// SetStatus writes the status column and one STATUS row, even when the value
// does not change. last_updated is left alone.
func (s *RadioService) SetStatus(ctx context.Context, id uint, status models.RadioStatus) error {
	if !status.Known() {
		return apperrors.Invalid("status", "status must be Active or In Service")
	}
	err := s.write(ctx, func(tx *gorm.DB) error {
		return setStatus(tx, s.logger, id, status)
	})
	if err != nil {
		return err
	}

	s.logger.Info("radio status set", zap.Uint("id", id), zap.String("status", string(status)))
	return nil
}

func (s *RadioService) PutInService(ctx context.Context, id uint) error {
	return s.SetStatus(ctx, id, models.StatusInService)
}

func (s *RadioService) TakeOutOfService(ctx context.Context, id uint) error {
	return s.SetStatus(ctx, id, models.StatusActive)
}

func (s *RadioService) Get(ctx context.Context, id uint) (*models.Radio, error) {
	radio, err := findRadio(s.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	s.warnLegacy(radio)
	return radio, nil
}

// FindByRadioID looks radios up by their external identifier.
func (s *RadioService) FindByRadioID(ctx context.Context, radioID string) ([]models.Radio, error) {
	var radios []models.Radio
	if err := s.db.WithContext(ctx).Where("radio_id = ?", radioID).Order("id").Find(&radios).Error; err != nil {
		return nil, apperrors.Storage("radio.find", err)
	}
	for i := range radios {
		s.warnLegacy(&radios[i])
	}
	return radios, nil
}

func (s *RadioService) warnLegacy(r *models.Radio) {
	if !r.Status.Known() {
		s.logger.Warn("unrecognized status value", zap.Uint("id", r.ID), zap.String("status", string(r.Status)))
	}
	if !r.Missing.Known() {
		s.logger.Warn("unrecognized missing value", zap.Uint("id", r.ID), zap.String("missing", string(r.Missing)))
	}
}

func setStatus(tx *gorm.DB, logger *zap.Logger, id uint, status models.RadioStatus) error {
	prev, err := findRadio(tx, id)
	if err != nil {
		return err
	}
	if !prev.Status.Known() {
		logger.Warn("unrecognized status value", zap.Uint("id", id), zap.String("status", string(prev.Status)))
	}
	if err := tx.Model(&models.Radio{}).Where("id = ?", id).Update("status", status).Error; err != nil {
		return apperrors.Storage("radio.status", err)
	}
	return audit.WriteChange(tx, audit.StatusChanged(id, prev.Status, status))
}

func findRadio(tx *gorm.DB, id uint) (*models.Radio, error) {
	var radio models.Radio
	if err := tx.First(&radio, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Storage("radio.get", err)
	}
	return &radio, nil
}
