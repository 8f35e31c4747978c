package models

import "gorm.io/gorm"

// All lists every model in dependency order, for AutoMigrate.
func All() []any {
	return []any{
		&Customer{},
		&Vehicle{},
		&Supplier{},
		&Inventory{},
		&Service{},
		&JobCard{},
		&InventorySupplierLink{},
		&InventoryServiceLink{},
		&InventoryJobCardLink{},
		&Payment{},
		&Complaint{},
		&Feedback{},
		&Estimate{},
		&Employee{},
	}
}

// RegisterJoinTables tells GORM to use our link models (which carry the
// reservation quantity) for the many-to-many associations. Must be called
// before the first query against those associations.
func RegisterJoinTables(db *gorm.DB) error {
	if err := db.SetupJoinTable(&Inventory{}, "Suppliers", &InventorySupplierLink{}); err != nil {
		return err
	}
	if err := db.SetupJoinTable(&Service{}, "Inventories", &InventoryServiceLink{}); err != nil {
		return err
	}
	return db.SetupJoinTable(&JobCard{}, "Inventories", &InventoryJobCardLink{})
}
