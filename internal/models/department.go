package models

type Department struct {
	ID      string  `gorm:"column:id;primaryKey" json:"id"` // caller supplied, never generated
	Name    string  `gorm:"column:name;not null" json:"name"`
	Contact *string `gorm:"column:contact" json:"contact"` // Optional
}

func (Department) TableName() string { return "departments" }
