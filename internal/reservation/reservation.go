// Package reservation implements atomic stock reservation against inventory
// items. Services and job cards share the same engine: every operation
// validates the full request set before touching a single quantity, so a
// failure leaves stock exactly as it was.
package reservation

import (
	"context"
	"errors"

	"github.com/autoworks/workshop-backend/pkg/db/models"
	pkgerrors "github.com/autoworks/workshop-backend/pkg/errors"
	"gorm.io/gorm"
)

// Request asks to reserve Quantity units of one inventory item. A zero
// Quantity means "one unit"; negative quantities fail validation.
type Request struct {
	InventoryID int64 `json:"inventory_id"`
	Quantity    int   `json:"quantity"`
}

// Reservation is one validated line of a reservation plan.
type Reservation struct {
	Inventory models.Inventory
	Quantity  int
}

// Validate resolves and checks every request against current stock and
// returns the reservation plan, one entry per distinct inventory item
// (duplicate ids are merged by summing). held carries the quantities already
// reserved by the record being updated, keyed by inventory id; pass nil on
// create. Held stock counts as available again, since updating replaces the
// old reservation set.
//
// Per item the checks run in order: existence, quantity at least 1, minimum
// threshold, sufficiency. Nothing is mutated here.
func Validate(ctx context.Context, tx *gorm.DB, requests []Request, held map[int64]int) ([]Reservation, error) {
	if len(requests) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "At least one inventory item is required")
	}

	plan := make([]Reservation, 0, len(requests))
	index := make(map[int64]int, len(requests))

	for _, req := range requests {
		quantity := req.Quantity
		if quantity == 0 {
			quantity = 1
		}

		var item models.Inventory
		if err := tx.WithContext(ctx).First(&item, "id = ?", req.InventoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "Inventory with id %d not found", req.InventoryID)
			}
			return nil, err
		}

		if quantity < 1 {
			return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "Service quantity for %s must be at least 1", item.ItemName)
		}

		if i, ok := index[req.InventoryID]; ok {
			plan[i].Quantity += quantity
		} else {
			index[req.InventoryID] = len(plan)
			plan = append(plan, Reservation{Inventory: item, Quantity: quantity})
		}

		line := plan[index[req.InventoryID]]
		available := line.Inventory.Quantity + held[req.InventoryID]

		if available < line.Inventory.MinimumThreshold {
			return nil, pkgerrors.Newf(pkgerrors.CodeValidation,
				"%s has reached minimum threshold. Restock before creating a new service", item.ItemName)
		}
		if available < line.Quantity {
			return nil, pkgerrors.Newf(pkgerrors.CodeValidation,
				"Insufficient quantity for %s. Required: %d, Available: %d", item.ItemName, line.Quantity, available)
		}
	}
	return plan, nil
}

// Apply moves stock from the held set to the planned set: kept items adjust
// by delta, new items deduct in full, held items missing from the plan get
// their quantity back. Must run inside the caller's transaction, after
// Validate on the same inputs.
func Apply(ctx context.Context, tx *gorm.DB, plan []Reservation, held map[int64]int) error {
	planned := make(map[int64]bool, len(plan))
	for _, line := range plan {
		planned[line.Inventory.ID] = true
		delta := line.Quantity - held[line.Inventory.ID]
		if delta == 0 {
			continue
		}
		if err := adjustStock(ctx, tx, line.Inventory.ID, -delta); err != nil {
			return err
		}
	}
	for id, quantity := range held {
		if planned[id] || quantity == 0 {
			continue
		}
		if err := adjustStock(ctx, tx, id, quantity); err != nil {
			return err
		}
	}
	return nil
}

// Release returns every held quantity to stock. Used when the owning record
// is deleted, regardless of its status.
func Release(ctx context.Context, tx *gorm.DB, held map[int64]int) error {
	for id, quantity := range held {
		if quantity == 0 {
			continue
		}
		if err := adjustStock(ctx, tx, id, quantity); err != nil {
			return err
		}
	}
	return nil
}

func adjustStock(ctx context.Context, tx *gorm.DB, inventoryID int64, delta int) error {
	return tx.WithContext(ctx).
		Model(&models.Inventory{}).
		Where("id = ?", inventoryID).
		Update("quantity", gorm.Expr("quantity + ?", delta)).Error
}
