package inventory

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"radiotrack/internal/apperrors"
	"radiotrack/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const serviceDateLayout = "2006-01-02"

// Service list filters.
const (
	ServiceFilterAll    = "all"
	ServiceFilterOpen   = "open"
	ServiceFilterClosed = "closed"
)

type OpenServiceRequest struct {
	LRCServiceNum string `json:"lrc_service_num"`
	DateSent      string `json:"date_sent"`
	Problem       string `json:"problem"`
	Notes         string `json:"notes"`
	Amount        string `json:"amount"` // blank means 0
}

// ServiceRow is a service joined with its radio's serial. Serial is nil when
// the radio no longer exists.
type ServiceRow struct {
	ID            uint                 `json:"id" yaml:"id"`
	Serial        *string              `json:"serial" yaml:"serial"`
	Status        models.ServiceStatus `json:"status" yaml:"status"`
	DateService   *string              `json:"date_service" yaml:"date_service"`
	LRCServiceNum *string              `json:"lrc_service_num" yaml:"lrc_service_num"`
	DateSent      *string              `json:"date_sent" yaml:"date_sent"`
	DateRepaired  *string              `json:"date_repaired" yaml:"date_repaired"`
	Amount        *float64             `json:"amount" yaml:"amount"`
	Problem       *string              `json:"problem" yaml:"problem"`
	Notes         *string              `json:"notes" yaml:"notes"`
}

// ParseAmount reads the cost field. Blank is 0.
func ParseAmount(v string) (float64, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, apperrors.Invalid("amount", "amount must be a number")
	}
	return f, nil
}

type ServiceLog struct {
	db     *gorm.DB
	logger *zap.Logger
	now    func() time.Time
}

func NewServiceLog(db *gorm.DB, logger *zap.Logger) *ServiceLog {
	return &ServiceLog{db: db, logger: logger, now: time.Now}
}

func (l *ServiceLog) WithClock(now func() time.Time) *ServiceLog {
	l.now = now
	return l
}

// today is the UTC calendar date, matching SQLite's DATE('now').
func (l *ServiceLog) today() string {
	return l.now().UTC().Format(serviceDateLayout)
}

// Open inserts an open service dated today and puts the radio In Service with
// its own STATUS row. Both writes commit together.
func (l *ServiceLog) Open(ctx context.Context, radioID uint, req OpenServiceRequest) (*models.Service, error) {
	amount, err := ParseAmount(req.Amount)
	if err != nil {
		return nil, err
	}

	today := l.today()
	lrc := strings.TrimSpace(req.LRCServiceNum)
	sent := strings.TrimSpace(req.DateSent)
	problem := strings.TrimSpace(req.Problem)
	notes := strings.TrimSpace(req.Notes)

	svc := &models.Service{
		RadioID:       radioID,
		Status:        models.ServiceOpen,
		DateService:   &today,
		LRCServiceNum: &lrc,
		DateSent:      &sent,
		Amount:        &amount,
		Problem:       &problem,
		Notes:         &notes,
	}

	err = l.db.WithContext(context.WithoutCancel(ctx)).Transaction(func(tx *gorm.DB) error {
		if _, err := findRadio(tx, radioID); err != nil {
			return err
		}
		if err := tx.Create(svc).Error; err != nil {
			return apperrors.Storage("service.open", err)
		}
		return setStatus(tx, l.logger, radioID, models.StatusInService)
	})
	if err != nil {
		return nil, err
	}

	l.logger.Info("service opened", zap.Uint("service_id", svc.ID), zap.Uint("radio_id", radioID))
	return svc, nil
}

// Close marks an open service closed and stamps the repaired date. Service
// rows are not audited. Closing a closed service fails with ErrServiceClosed
// before anything is written.
func (l *ServiceLog) Close(ctx context.Context, serviceID uint) error {
	today := l.today()
	err := l.db.WithContext(context.WithoutCancel(ctx)).Transaction(func(tx *gorm.DB) error {
		var svc models.Service
		if err := tx.First(&svc, "id = ?", serviceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotFound
			}
			return apperrors.Storage("service.get", err)
		}
		if svc.Status == models.ServiceClosed {
			return apperrors.ErrServiceClosed
		}
		err := tx.Model(&models.Service{}).Where("id = ?", serviceID).Updates(map[string]interface{}{
			"status":        models.ServiceClosed,
			"date_repaired": today,
		}).Error
		if err != nil {
			return apperrors.Storage("service.close", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	l.logger.Info("service closed", zap.Uint("service_id", serviceID))
	return nil
}

func (l *ServiceLog) Get(ctx context.Context, serviceID uint) (*models.Service, error) {
	var svc models.Service
	if err := l.db.WithContext(ctx).First(&svc, "id = ?", serviceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Storage("service.get", err)
	}
	return &svc, nil
}

// ListForRadio returns a radio's services, newest service date first.
func (l *ServiceLog) ListForRadio(ctx context.Context, radioID uint) ([]models.Service, error) {
	var services []models.Service
	err := l.db.WithContext(ctx).
		Where("radio_id = ?", radioID).
		Order("date_service DESC").Order("id DESC").
		Find(&services).Error
	if err != nil {
		return nil, apperrors.Storage("service.list", err)
	}
	return services, nil
}

// ListAll returns services of every radio. status is all, open or closed.
func (l *ServiceLog) ListAll(ctx context.Context, status string) ([]ServiceRow, error) {
	q := l.db.WithContext(ctx).
		Table("services AS s").
		Select(`s.id, r.serial, s.status, s.date_service, s.lrc_service_num,
			s.date_sent, s.date_repaired, s.amount, s.problem, s.notes`).
		Joins("LEFT JOIN radios r ON s.radio_id = r.id")

	switch strings.ToLower(strings.TrimSpace(status)) {
	case "", ServiceFilterAll:
	case ServiceFilterOpen:
		q = q.Where("s.status = ?", models.ServiceOpen)
	case ServiceFilterClosed:
		q = q.Where("s.status = ?", models.ServiceClosed)
	default:
		return nil, apperrors.Invalid("status", "status must be all, open or closed")
	}

	var rows []ServiceRow
	if err := q.Order("s.date_service DESC").Order("s.id DESC").Scan(&rows).Error; err != nil {
		return nil, apperrors.Storage("service.list_all", err)
	}
	return rows, nil
}
