package enums

import "fmt"

// InventoryCategory classifies stock items kept in the workshop store room.
type InventoryCategory string

const (
	InventoryCategoryLubricants  InventoryCategory = "lubricants"
	InventoryCategorySpareParts  InventoryCategory = "spare_parts"
	InventoryCategoryTools       InventoryCategory = "tools"
	InventoryCategoryElectricals InventoryCategory = "electricals"
	InventoryCategoryOthers      InventoryCategory = "others"
)

var validInventoryCategories = []InventoryCategory{
	InventoryCategoryLubricants,
	InventoryCategorySpareParts,
	InventoryCategoryTools,
	InventoryCategoryElectricals,
	InventoryCategoryOthers,
}

// String implements fmt.Stringer.
func (c InventoryCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known InventoryCategory.
func (c InventoryCategory) IsValid() bool {
	for _, candidate := range validInventoryCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseInventoryCategory converts raw input into an InventoryCategory.
func ParseInventoryCategory(value string) (InventoryCategory, error) {
	for _, candidate := range validInventoryCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid inventory category %q", value)
}
