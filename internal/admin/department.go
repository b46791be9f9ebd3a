package admin

import (
	"context"
	"fmt"
	"strings"

	"radiotrack/internal/apperrors"
	"radiotrack/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CreateDepartmentRequest struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Contact *string `json:"contact"` // Optional
}

type UpdateDepartmentRequest struct {
	Name    string  `json:"name"`
	Contact *string `json:"contact"` // Optional
}

// DepartmentLabel is the "<id> - <name>" choice shown by the radio form.
type DepartmentLabel struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"label" yaml:"label"`
}

func Label(id, name string) string {
	return fmt.Sprintf("%s - %s", id, name)
}

type DepartmentService struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewDepartmentService(db *gorm.DB, logger *zap.Logger) *DepartmentService {
	return &DepartmentService{db: db, logger: logger}
}

// ----------------------------------------
// DEPARTMENT CRUD
// ----------------------------------------

func (s *DepartmentService) Create(ctx context.Context, req CreateDepartmentRequest) (*models.Department, error) {
	id := strings.TrimSpace(req.ID)
	name := strings.TrimSpace(req.Name)
	if id == "" {
		return nil, apperrors.Invalid("id", "Department ID is required")
	}
	if name == "" {
		return nil, apperrors.Invalid("name", "Department name is required")
	}

	dept := models.Department{ID: id, Name: name, Contact: trimmed(req.Contact)}
	if err := s.db.WithContext(context.WithoutCancel(ctx)).Create(&dept).Error; err != nil {
		return nil, apperrors.Storage("department.create", err)
	}

	s.logger.Info("department created", zap.String("id", dept.ID))
	return &dept, nil
}

// Update changes name and contact. The id is fixed once created.
func (s *DepartmentService) Update(ctx context.Context, id string, req UpdateDepartmentRequest) error {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return apperrors.Invalid("name", "Department name is required")
	}

	res := s.db.WithContext(context.WithoutCancel(ctx)).
		Model(&models.Department{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"name":    name,
			"contact": trimmed(req.Contact),
		})
	if res.Error != nil {
		return apperrors.Storage("department.update", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}

	s.logger.Info("department updated", zap.String("id", id))
	return nil
}

// Delete removes the department. Radios pointing at it keep the dangling id.
func (s *DepartmentService) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(context.WithoutCancel(ctx)).Where("id = ?", id).Delete(&models.Department{})
	if res.Error != nil {
		return apperrors.Storage("department.delete", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}

	s.logger.Info("department deleted", zap.String("id", id))
	return nil
}

func (s *DepartmentService) List(ctx context.Context) ([]models.Department, error) {
	var departments []models.Department
	if err := s.db.WithContext(ctx).Order("id").Find(&departments).Error; err != nil {
		return nil, apperrors.Storage("department.list", err)
	}
	return departments, nil
}

// Names lists distinct department names for the grid filter.
func (s *DepartmentService) Names(ctx context.Context) ([]string, error) {
	var names []string
	if err := s.db.WithContext(ctx).Model(&models.Department{}).Distinct("name").Order("name").Pluck("name", &names).Error; err != nil {
		return nil, apperrors.Storage("department.names", err)
	}
	return names, nil
}

// Labels lists departments as form choices ordered by name.
func (s *DepartmentService) Labels(ctx context.Context) ([]DepartmentLabel, error) {
	var departments []models.Department
	if err := s.db.WithContext(ctx).Order("name").Order("id").Find(&departments).Error; err != nil {
		return nil, apperrors.Storage("department.labels", err)
	}

	labels := make([]DepartmentLabel, 0, len(departments))
	for _, d := range departments {
		labels = append(labels, DepartmentLabel{ID: d.ID, Label: Label(d.ID, d.Name)})
	}
	return labels, nil
}

// ResolveLabel maps a form label back to its department id. An unknown or
// blank label resolves to nil, meaning no department.
func (s *DepartmentService) ResolveLabel(ctx context.Context, label string) (*string, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, nil
	}
	labels, err := s.Labels(ctx)
	if err != nil {
		return nil, err
	}
	for _, l := range labels {
		if l.Label == label {
			id := l.ID
			return &id, nil
		}
	}
	return nil, nil
}

func trimmed(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	return &v
}
