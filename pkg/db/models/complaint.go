package models

import (
	"time"

	"github.com/autoworks/workshop-backend/pkg/enums"
)

// Complaint is a customer grievance tracked to resolution.
type Complaint struct {
	ID          int64                   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Description string                  `gorm:"column:description;not null" json:"description"`
	Status      enums.ComplaintStatus   `gorm:"column:status;size:50;not null" json:"status"`
	Priority    enums.ComplaintPriority `gorm:"column:priority;size:50;not null" json:"priority"`
	CustomerID  int64                   `gorm:"column:customer_id;not null;index" json:"customer_id"`
	CreatedAt   time.Time               `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   *time.Time              `gorm:"column:updated_at;autoUpdateTime:false" json:"updated_at,omitempty"`
}

// GetID implements repo.Entity.
func (c Complaint) GetID() int64 { return c.ID }

// TableName overrides the table name used by GORM.
func (Complaint) TableName() string { return "complaints" }
