package models

import "time"

// Vehicle is a customer's car identified by its registration number.
type Vehicle struct {
	ID            int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Make          string     `gorm:"column:make;size:255;not null" json:"make"`
	Model         string     `gorm:"column:model;size:255;not null" json:"model"`
	Year          int        `gorm:"column:year;not null" json:"year"`
	VehicleNumber string     `gorm:"column:vehicle_number;size:17;not null;uniqueIndex" json:"vehicle_number"`
	CustomerID    int64      `gorm:"column:customer_id;not null;index" json:"customer_id"`
	CreatedAt     time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     *time.Time `gorm:"column:updated_at;autoUpdateTime:false" json:"updated_at,omitempty"`
}

// GetID implements repo.Entity.
func (v Vehicle) GetID() int64 { return v.ID }

// TableName overrides the table name used by GORM.
func (Vehicle) TableName() string { return "vehicles" }
