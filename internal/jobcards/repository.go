// Package jobcards manages work orders and the inventory stock they reserve.
// Job cards share the reservation engine with services and additionally
// support swapping one reserved item for another.
package jobcards

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

var inventorySwap = repo.LinkSwap{
	Model:        &models.InventoryJobCardLink{},
	ParentColumn: "job_card_id",
	OtherColumn:  "inventory_id",
	Preload:      "Inventories",
}

// Repository wraps the generic job card repository with reservation-aware
// writes and inventory swapping.
type Repository struct {
	*repo.Repository[models.JobCard]
	conn *gorm.DB
}

// NewRepository builds a job card repository bound to the given connection.
func NewRepository(conn *gorm.DB) *Repository {
	return &Repository{
		Repository: repo.NewRepository[models.JobCard](conn, "Inventories"),
		conn:       conn,
	}
}

// Create persists the job card and reserves the requested inventory in one
// transaction. An unspecified quantity reserves one unit.
func (r *Repository) Create(ctx context.Context, record *models.JobCard, items []reservation.Request) (*models.JobCard, error) {
	err := r.conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return r.createTx(ctx, tx, record, items)
	})
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, record.ID)
}

// CreateMany persists job cards with their reservations in one transaction;
// items[i] belongs to records[i].
func (r *Repository) CreateMany(ctx context.Context, records []models.JobCard, items [][]reservation.Request) ([]models.JobCard, error) {
	if len(records) != len(items) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "input slices must have the same length")
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

// UpdateByID patches the job card columns and replaces its reservation set
// with items. Returns (nil, nil) when the id does not exist.
func (r *Repository) UpdateByID(ctx context.Context, id int64, changes map[string]any, items []reservation.Request) (*models.JobCard, error) {
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
func (r *Repository) UpdateManyByIDs(ctx context.Context, ids []int64, changes []map[string]any, items [][]reservation.Request) ([]models.JobCard, error) {
	if len(ids) != len(changes) || len(ids) != len(items) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "input slices must have the same length")
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

// DeleteByID removes the job card, restoring every reserved quantity to
// stock regardless of status. Returns (nil, nil) when the id does not exist.
func (r *Repository) DeleteByID(ctx context.Context, id int64) (*models.JobCard, error) {
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

// DeleteManyByIDs removes every existing job card among ids, restoring their
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

// SwapInventory repoints the job card's reservation of previousInventoryID
// at newInventoryID, keeping the reserved quantity. Stock levels do not
// move; only the link row changes. Returns (nil, nil) when the job card,
// the link or the new item is missing.
func (r *Repository) SwapInventory(ctx context.Context, jobCardID, previousInventoryID, newInventoryID int64) (*models.JobCard, error) {
	return repo.SwapLink[models.JobCard, models.Inventory](ctx, r.conn, inventorySwap, jobCardID, previousInventoryID, newInventoryID)
}

func (r *Repository) createTx(ctx context.Context, tx *gorm.DB, record *models.JobCard, items []reservation.Request) error {
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
	links := make([]models.InventoryJobCardLink, 0, len(plan))
	for _, line := range plan {
		links = append(links, models.InventoryJobCardLink{
			InventoryID: line.Inventory.ID,
			JobCardID:   record.ID,
			Quantity:    line.Quantity,
		})
	}
	return tx.WithContext(ctx).Create(&links).Error
}

func (r *Repository) updateTx(ctx context.Context, tx *gorm.DB, id int64, changes map[string]any, items []reservation.Request) (bool, error) {
	var existing models.JobCard
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
	if err := tx.WithContext(ctx).Model(&models.JobCard{}).Where("id = ?", id).Updates(patch).Error; err != nil {
		return false, err
	}

	if err := reservation.Apply(ctx, tx, plan, held); err != nil {
		return false, err
	}

	planned := make(map[int64]bool, len(plan))
	for _, line := range plan {
		planned[line.Inventory.ID] = true
		link := models.InventoryJobCardLink{
			InventoryID: line.Inventory.ID,
			JobCardID:   id,
			Quantity:    line.Quantity,
		}
		if _, kept := held[line.Inventory.ID]; kept {
			err = tx.WithContext(ctx).Model(&models.InventoryJobCardLink{}).
				Where("job_card_id = ? AND inventory_id = ?", id, line.Inventory.ID).
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
			Delete(&models.InventoryJobCardLink{}, "job_card_id = ? AND inventory_id = ?", id, inventoryID).Error; err != nil {
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
	if err := tx.WithContext(ctx).Delete(&models.InventoryJobCardLink{}, "job_card_id = ?", id).Error; err != nil {
		return err
	}
	return tx.WithContext(ctx).Delete(&models.JobCard{}, "id = ?", id).Error
}

func (r *Repository) heldQuantities(ctx context.Context, tx *gorm.DB, id int64) (map[int64]int, error) {
	var links []models.InventoryJobCardLink
	if err := tx.WithContext(ctx).Where("job_card_id = ?", id).Find(&links).Error; err != nil {
		return nil, err
	}
	held := make(map[int64]int, len(links))
	for _, link := range links {
		held[link.InventoryID] = link.Quantity
	}
	return held, nil
}
