package models

// Service is one repair ticket for a radio.
type Service struct {
	ID            uint          `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	RadioID       uint          `gorm:"column:radio_id;not null" json:"radio_id"`
	Status        ServiceStatus `gorm:"column:status;not null;default:open" json:"status"`
	DateService   *string       `gorm:"column:date_service" json:"date_service"`
	LRCServiceNum *string       `gorm:"column:lrc_service_num" json:"lrc_service_num"` // external repair ticket
	DateSent      *string       `gorm:"column:date_sent" json:"date_sent"`
	DateRepaired  *string       `gorm:"column:date_repaired" json:"date_repaired"`
	Amount        *float64      `gorm:"column:amount" json:"amount"`
	Problem       *string       `gorm:"column:problem" json:"problem"`
	Notes         *string       `gorm:"column:notes" json:"notes"`
}

func (Service) TableName() string { return "services" }
