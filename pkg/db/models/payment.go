package models

import (
	"time"

	"github.com/autoworks/workshop-backend/pkg/enums"
)

// Payment records money received against a job card.
type Payment struct {
	ID              int64               `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	CustomerID      int64               `gorm:"column:customer_id;not null;index" json:"customer_id"`
	JobCardID       int64               `gorm:"column:job_card_id;not null;index" json:"job_card_id"`
	Amount          float64             `gorm:"column:amount;not null" json:"amount"`
	Credit          float64             `gorm:"column:credit;not null" json:"credit"`
	Balance         float64             `gorm:"column:balance;not null" json:"balance"`
	PaymentDate     time.Time           `gorm:"column:payment_date;not null" json:"payment_date"`
	Method          enums.PaymentMethod `gorm:"column:method;size:50;not null" json:"method"`
	ReferenceNumber string              `gorm:"column:reference_number;size:100;not null;uniqueIndex" json:"reference_number"`
	Status          enums.PaymentStatus `gorm:"column:status;size:50;not null" json:"status"`
	CreatedAt       time.Time           `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       *time.Time          `gorm:"column:updated_at;autoUpdateTime:false" json:"updated_at,omitempty"`
}

// GetID implements repo.Entity.
func (p Payment) GetID() int64 { return p.ID }

// TableName overrides the table name used by GORM.
func (Payment) TableName() string { return "payments" }
