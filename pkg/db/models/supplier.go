package models

import "time"

// Supplier provides stock items to the workshop.
type Supplier struct {
	ID        int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name      string     `gorm:"column:name;size:255;not null" json:"name"`
	Email     *string    `gorm:"column:email;size:255;uniqueIndex" json:"email,omitempty"`
	ContactNo string     `gorm:"column:contact_no;size:255;not null;uniqueIndex" json:"contact_no"`
	Address   *string    `gorm:"column:address;size:255" json:"address,omitempty"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt *time.Time `gorm:"column:updated_at;autoUpdateTime:false" json:"updated_at,omitempty"`
}

// GetID implements repo.Entity.
func (s Supplier) GetID() int64 { return s.ID }

// TableName overrides the table name used by GORM.
func (Supplier) TableName() string { return "suppliers" }
