package models

import "time"

// Feedback is a customer's review of completed work.
type Feedback struct {
	ID          int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Description string     `gorm:"column:description;not null" json:"description"`
	Rating      int        `gorm:"column:rating;not null" json:"rating"`
	CustomerID  int64      `gorm:"column:customer_id;not null;index" json:"customer_id"`
	EmployeeID  *int64     `gorm:"column:employee_id;index" json:"employee_id,omitempty"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   *time.Time `gorm:"column:updated_at;autoUpdateTime:false" json:"updated_at,omitempty"`
}

// GetID implements repo.Entity.
func (f Feedback) GetID() int64 { return f.ID }

// TableName overrides the table name used by GORM.
func (Feedback) TableName() string { return "feedbacks" }
