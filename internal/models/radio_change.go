package models

type ChangeType string

const (
	ChangeAdd     ChangeType = "ADD"
	ChangeEdit    ChangeType = "EDIT"
	ChangeStatus  ChangeType = "STATUS"
	ChangeMissing ChangeType = "MISSING"
	ChangeDelete  ChangeType = "DELETE"
)

// FieldAll is the field name used by ADD and DELETE rows.
const FieldAll = "ALL"

// RadioChange is one append-only audit row. RadioID is not a foreign key and
// keeps pointing at deleted radios.
type RadioChange struct {
	ID           uint       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	RadioID      uint       `gorm:"column:radio_id" json:"radio_id"`
	ChangeType   ChangeType `gorm:"column:change_type" json:"change_type"`
	FieldChanged string     `gorm:"column:field_changed" json:"field_changed"`
	OldValue     *string    `gorm:"column:old_value" json:"old_value"`
	NewValue     *string    `gorm:"column:new_value" json:"new_value"`
	Timestamp    string     `gorm:"column:timestamp;->" json:"timestamp"` // column default
}

func (RadioChange) TableName() string { return "radio_changes" }
