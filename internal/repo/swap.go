package repo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// LinkSwap describes one edge of a many-to-many link table so the same swap
// operation can serve any parent/other pairing.
type LinkSwap struct {
	// Model is a pointer to the link model, e.g. &models.InventorySupplierLink{}.
	Model any
	// ParentColumn and OtherColumn are the link table's foreign key columns.
	ParentColumn string
	OtherColumn  string
	// Preload names the parent association to reload after the swap.
	Preload string
}

// SwapLink repoints the link row (parentID, previousOtherID) at newOtherID.
// The same row is updated in place; any extra link attributes (such as a
// reservation quantity) carry over unchanged. All three guard conditions
// return (nil, nil) without mutating anything: missing parent, missing link
// row, missing new target.
func SwapLink[P Entity, O Entity](ctx context.Context, conn *gorm.DB, swap LinkSwap, parentID, previousOtherID, newOtherID int64) (*P, error) {
	tx := conn.WithContext(ctx)

	var parent P
	if err := tx.First(&parent, "id = ?", parentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var linked int64
	if err := tx.Model(swap.Model).
		Where(fmt.Sprintf("%s = ? AND %s = ?", swap.ParentColumn, swap.OtherColumn), parentID, previousOtherID).
		Count(&linked).Error; err != nil {
		return nil, err
	}
	if linked == 0 {
		return nil, nil
	}

	var other O
	if err := tx.First(&other, "id = ?", newOtherID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	err := tx.Transaction(func(inner *gorm.DB) error {
		return inner.Model(swap.Model).
			Where(fmt.Sprintf("%s = ? AND %s = ?", swap.ParentColumn, swap.OtherColumn), parentID, previousOtherID).
			Update(swap.OtherColumn, newOtherID).Error
	})
	if err != nil {
		return nil, err
	}

	var refreshed P
	if err := tx.Preload(swap.Preload).First(&refreshed, "id = ?", parentID).Error; err != nil {
		return nil, err
	}
	return &refreshed, nil
}
