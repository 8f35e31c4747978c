package models

import (
	"time"

	"github.com/autoworks/workshop-backend/pkg/enums"
)

// JobCard is a work order opened against a vehicle. It reserves inventory the
// same way a service does, through inventory_job_card_links.
type JobCard struct {
	ID          int64               `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Status      enums.ServiceStatus `gorm:"column:status;size:32;not null" json:"status"`
	ServiceDate time.Time           `gorm:"column:service_date;not null" json:"service_date"`
	Description string              `gorm:"column:description;not null" json:"description"`
	VehicleID   int64               `gorm:"column:vehicle_id;not null;index" json:"vehicle_id"`
	CreatedAt   time.Time           `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   *time.Time          `gorm:"column:updated_at;autoUpdateTime:false" json:"updated_at,omitempty"`

	Inventories []Inventory `gorm:"many2many:inventory_job_card_links;constraint:OnDelete:CASCADE" json:"inventories,omitempty"`
}

// GetID implements repo.Entity.
func (j JobCard) GetID() int64 { return j.ID }

// TableName overrides the table name used by GORM.
func (JobCard) TableName() string { return "job_cards" }
