package models

import (
	"time"

	"github.com/autoworks/workshop-backend/pkg/enums"
)

// DefaultMinimumThreshold is applied when an item is created without an
// explicit restock floor.
const DefaultMinimumThreshold = 10

// Inventory is a stock item. Quantity is the stock currently on the shelf;
// reservations against services and job cards are recorded on the link rows.
type Inventory struct {
	ID               int64                   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ItemName         string                  `gorm:"column:item_name;size:255;not null;uniqueIndex" json:"item_name"`
	Quantity         int                     `gorm:"column:quantity;not null" json:"quantity"`
	UnitPrice        float64                 `gorm:"column:unit_price;not null" json:"unit_price"`
	MinimumThreshold int                     `gorm:"column:minimum_threshold;not null" json:"minimum_threshold"`
	Category         enums.InventoryCategory `gorm:"column:category;size:32;not null" json:"category"`
	CreatedAt        time.Time               `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt        *time.Time              `gorm:"column:updated_at;autoUpdateTime:false" json:"updated_at,omitempty"`

	Suppliers []Supplier `gorm:"many2many:inventory_supplier_links;constraint:OnDelete:CASCADE" json:"suppliers,omitempty"`
}

// GetID implements repo.Entity.
func (i Inventory) GetID() int64 { return i.ID }

// TableName overrides the table name used by GORM.
func (Inventory) TableName() string { return "inventories" }
