package models

// InventorySupplierLink joins inventory items to the suppliers that stock them.
type InventorySupplierLink struct {
	InventoryID int64 `gorm:"column:inventory_id;primaryKey" json:"inventory_id"`
	SupplierID  int64 `gorm:"column:supplier_id;primaryKey" json:"supplier_id"`
}

// TableName overrides the table name used by GORM.
func (InventorySupplierLink) TableName() string { return "inventory_supplier_links" }

// InventoryServiceLink records how many units of an item a service reserved.
type InventoryServiceLink struct {
	InventoryID int64 `gorm:"column:inventory_id;primaryKey" json:"inventory_id"`
	ServiceID   int64 `gorm:"column:service_id;primaryKey" json:"service_id"`
	Quantity    int   `gorm:"column:quantity;not null;default:1" json:"quantity"`
}

// TableName overrides the table name used by GORM.
func (InventoryServiceLink) TableName() string { return "inventory_service_links" }

// InventoryJobCardLink records how many units of an item a job card reserved.
type InventoryJobCardLink struct {
	InventoryID int64 `gorm:"column:inventory_id;primaryKey" json:"inventory_id"`
	JobCardID   int64 `gorm:"column:job_card_id;primaryKey" json:"job_card_id"`
	Quantity    int   `gorm:"column:quantity;not null;default:1" json:"quantity"`
}

// TableName overrides the table name used by GORM.
func (InventoryJobCardLink) TableName() string { return "inventory_job_card_links" }
