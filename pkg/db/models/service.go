package models

import (
	"time"

	"github.com/autoworks/workshop-backend/pkg/enums"
)

// Service is scheduled maintenance work on a vehicle. The inventory items it
// consumes are reserved through inventory_service_links.
type Service struct {
	ID           int64               `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Status       enums.ServiceStatus `gorm:"column:status;size:32;not null" json:"status"`
	ServiceDate  time.Time           `gorm:"column:service_date;not null" json:"service_date"`
	DeliveryDate time.Time           `gorm:"column:delivery_date;not null" json:"delivery_date"`
	Description  string              `gorm:"column:description;not null" json:"description"`
	VehicleID    int64               `gorm:"column:vehicle_id;not null;index" json:"vehicle_id"`
	CreatedAt    time.Time           `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    *time.Time          `gorm:"column:updated_at;autoUpdateTime:false" json:"updated_at,omitempty"`

	Inventories []Inventory `gorm:"many2many:inventory_service_links;constraint:OnDelete:CASCADE" json:"inventories,omitempty"`
}

// GetID implements repo.Entity.
func (s Service) GetID() int64 { return s.ID }

// TableName overrides the table name used by GORM.
func (Service) TableName() string { return "services" }
