package models

import (
	"time"

	"github.com/autoworks/workshop-backend/pkg/enums"
)

// Estimate is a quoted cost for upcoming work on a vehicle.
type Estimate struct {
	ID           int64                `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	EstimateDate time.Time            `gorm:"column:estimate_date;not null" json:"estimate_date"`
	TotalAmount  float64              `gorm:"column:total_amount;not null" json:"total_amount"`
	Status       enums.EstimateStatus `gorm:"column:status;size:50;not null" json:"status"`
	ValidUntil   time.Time            `gorm:"column:valid_until;not null" json:"valid_until"`
	Description  *string              `gorm:"column:description;size:255" json:"description,omitempty"`
	VehicleID    int64                `gorm:"column:vehicle_id;not null;index" json:"vehicle_id"`
	JobCardID    *int64               `gorm:"column:job_card_id;index" json:"job_card_id,omitempty"`
	CustomerID   *int64               `gorm:"column:customer_id;index" json:"customer_id,omitempty"`
	CreatedAt    time.Time            `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    *time.Time           `gorm:"column:updated_at;autoUpdateTime:false" json:"updated_at,omitempty"`
}

// GetID implements repo.Entity.
func (e Estimate) GetID() int64 { return e.ID }

// TableName overrides the table name used by GORM.
func (Estimate) TableName() string { return "estimates" }
