package models

import "time"

// Customer is a workshop client who owns one or more vehicles.
type Customer struct {
	ID        int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name      string     `gorm:"column:name;size:255;not null" json:"name"`
	Email     *string    `gorm:"column:email;size:255;uniqueIndex" json:"email,omitempty"`
	ContactNo string     `gorm:"column:contact_no;size:255;not null;uniqueIndex" json:"contact_no"`
	Address   *string    `gorm:"column:address;size:255" json:"address,omitempty"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt *time.Time `gorm:"column:updated_at;autoUpdateTime:false" json:"updated_at,omitempty"`

	// Deleting a customer removes their vehicles as well.
	Vehicles []Vehicle `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"vehicles,omitempty"`
}

// GetID implements repo.Entity.
func (c Customer) GetID() int64 { return c.ID }

// TableName overrides the table name used by GORM.
func (Customer) TableName() string { return "customers" }
