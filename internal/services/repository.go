// Package services manages vehicle services together with the inventory
// stock they reserve. All writes go through the reservation engine so a
// service and its stock movements commit or roll back as one unit.
package services

import (
	"context"
	"errors"
	"time"

	"github.com/autoworks/workshop-backend/internal/repo"
	"github.com/autoworks/workshop-backend/internal/reservation"
	"github.com/autoworks/workshop-backend/pkg/db/models"
	pkgerrors "github.com/autoworks/workshop-backend/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func errLengthMismatch() error {
	return pkgerrors.New(pkgerrors.CodeValidation, "input slices must have the same length")
}

// Repository wraps the generic service repository with reservation-aware
// writes. Reads and listing come from the embedded repository and preload
// the reserved inventory items.
type Repository struct {
	*repo.Repository[models.Service]
	conn *gorm.DB
}

// NewRepository builds a service repository bound to the given connection.
func NewRepository(conn *gorm.DB) *Repository {
	return &Repository{
		Repository: repo.NewRepository[models.Service](conn, "Inventories"),
		conn:       conn,
	}
}

// Create persists the service and reserves the requested inventory in one
// transaction. Validation failures leave both the service and stock
// untouched.
func (r *Repository) Create(ctx context.Context, record *models.Service, items []reservation.Request) (*models.Service, error) {
	err := r.conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return r.createTx(ctx, tx, record, items)
	})
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, record.ID)
}

// CreateMany persists services with their reservations in one transaction;
// items[i] belongs to records[i].
func (r *Repository) CreateMany(ctx context.Context, records []models.Service, items [][]reservation.Request) ([]models.Service, error) {
	if len(records) != len(items) {
		return nil, errLengthMismatch()
	}
	err := r.conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range records {
			if err := r.createTx(ctx, tx, &records[i], items[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	ids := make([]int64, len(records))
	for i, record := range records {
		ids[i] = record.ID
	}
	return r.FindByIDs(ctx, ids)
}

// UpdateByID patches the service columns and replaces its reservation set
// with items. Returns (nil, nil) when the id does not exist.
func (r *Repository) UpdateByID(ctx context.Context, id int64, changes map[string]any, items []reservation.Request) (*models.Service, error) {
	found := false
	err := r.conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		found, err = r.updateTx(ctx, tx, id, changes, items)
		return err
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return r.FindByID(ctx, id)
}

// UpdateManyByIDs applies changes[i] and items[i] to ids[i] in one
// transaction.
func (r *Repository) UpdateManyByIDs(ctx context.Context, ids []int64, changes []map[string]any, items [][]reservation.Request) ([]models.Service, error) {
	if len(ids) != len(changes) || len(ids) != len(items) {
		return nil, errLengthMismatch()
	}
	err := r.conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, id := range ids {
			if _, err := r.updateTx(ctx, tx, id, changes[i], items[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.FindByIDs(ctx, ids)
}

// DeleteByID removes the service, restoring every reserved quantity to stock
// regardless of the service's status. Returns (nil, nil) when the id does
// not exist.
func (r *Repository) DeleteByID(ctx context.Context, id int64) (*models.Service, error) {
	existing, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}
	err = r.conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return r.deleteTx(ctx, tx, id)
	})
	if err != nil {
		return nil, err
	}
	return existing, nil
}

// DeleteManyByIDs removes every existing service among ids, restoring their
// stock, and reports how many were deleted.
func (r *Repository) DeleteManyByIDs(ctx context.Context, ids []int64) (int, error) {
	existing, err := r.FindByIDs(ctx, ids)
	if err != nil {
		return 0, err
	}
	if len(existing) == 0 {
		return 0, nil
	}
	err = r.conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, record := range existing {
			if err := r.deleteTx(ctx, tx, record.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(existing), nil
}

func (r *Repository) createTx(ctx context.Context, tx *gorm.DB, record *models.Service, items []reservation.Request) error {
	plan, err := reservation.Validate(ctx, tx, items, nil)
	if err != nil {
		return err
	}
	if err := tx.WithContext(ctx).Omit(clause.Associations).Create(record).Error; err != nil {
		return err
	}
	if err := reservation.Apply(ctx, tx, plan, nil); err != nil {
		return err
	}
	links := make([]models.InventoryServiceLink, 0, len(plan))
	for _, line := range plan {
		links = append(links, models.InventoryServiceLink{
			InventoryID: line.Inventory.ID,
			ServiceID:   record.ID,
			Quantity:    line.Quantity,
		})
	}
	return tx.WithContext(ctx).Create(&links).Error
}

func (r *Repository) updateTx(ctx context.Context, tx *gorm.DB, id int64, changes map[string]any, items []reservation.Request) (bool, error) {
	var existing models.Service
	if err := tx.WithContext(ctx).First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	held, err := r.heldQuantities(ctx, tx, id)
	if err != nil {
		return false, err
	}
	plan, err := reservation.Validate(ctx, tx, items, held)
	if err != nil {
		return false, err
	}

	patch := make(map[string]any, len(changes)+1)
	for k, v := range changes {
		patch[k] = v
	}
	delete(patch, "id")
	patch["updated_at"] = time.Now().UTC()
	if err := tx.WithContext(ctx).Model(&models.Service{}).Where("id = ?", id).Updates(patch).Error; err != nil {
		return false, err
	}

	if err := reservation.Apply(ctx, tx, plan, held); err != nil {
		return false, err
	}

	planned := make(map[int64]bool, len(plan))
	for _, line := range plan {
		planned[line.Inventory.ID] = true
		link := models.InventoryServiceLink{
			InventoryID: line.Inventory.ID,
			ServiceID:   id,
			Quantity:    line.Quantity,
		}
		if _, kept := held[line.Inventory.ID]; kept {
			err = tx.WithContext(ctx).Model(&models.InventoryServiceLink{}).
				Where("service_id = ? AND inventory_id = ?", id, line.Inventory.ID).
				Update("quantity", line.Quantity).Error
		} else {
			err = tx.WithContext(ctx).Create(&link).Error
		}
		if err != nil {
			return false, err
		}
	}
	for inventoryID := range held {
		if planned[inventoryID] {
			continue
		}
		if err := tx.WithContext(ctx).
			Delete(&models.InventoryServiceLink{}, "service_id = ? AND inventory_id = ?", id, inventoryID).Error; err != nil {
			return false, err
		}
	}
	return true, nil
}

func (r *Repository) deleteTx(ctx context.Context, tx *gorm.DB, id int64) error {
	held, err := r.heldQuantities(ctx, tx, id)
	if err != nil {
		return err
	}
	if err := reservation.Release(ctx, tx, held); err != nil {
		return err
	}
	if err := tx.WithContext(ctx).Delete(&models.InventoryServiceLink{}, "service_id = ?", id).Error; err != nil {
		return err
	}
	return tx.WithContext(ctx).Delete(&models.Service{}, "id = ?", id).Error
}

func (r *Repository) heldQuantities(ctx context.Context, tx *gorm.DB, id int64) (map[int64]int, error) {
	var links []models.InventoryServiceLink
	if err := tx.WithContext(ctx).Where("service_id = ?", id).Find(&links).Error; err != nil {
		return nil, err
	}
	held := make(map[int64]int, len(links))
	for _, link := range links {
		held[link.InventoryID] = link.Quantity
	}
	return held, nil
}
