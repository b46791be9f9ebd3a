package models

type Radio struct {
	ID           uint        `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	RadioID      *string     `gorm:"column:radio_id" json:"radio_id"` // external identifier
	Serial       string      `gorm:"column:serial;not null" json:"serial"`
	Model        *string     `gorm:"column:model" json:"model"`
	AssignedTo   *string     `gorm:"column:assigned_to" json:"assigned_to"`
	Notes        *string     `gorm:"column:notes" json:"notes"`
	DepartmentID *string     `gorm:"column:department_id" json:"department_id"` // weak reference, may dangle
	DateReceived *string     `gorm:"column:date_received" json:"date_received"`
	DateIssued   *string     `gorm:"column:date_issued" json:"date_issued"`
	DateReturned *string     `gorm:"column:date_returned" json:"date_returned"`
	LastUpdated  *string     `gorm:"column:last_updated" json:"last_updated"`
	Status       RadioStatus `gorm:"column:status;default:Active" json:"status"`
	Missing      MissingFlag `gorm:"column:missing;default:No" json:"missing"`
}

func (Radio) TableName() string { return "radios" }
