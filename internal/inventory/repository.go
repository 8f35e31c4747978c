// Package inventory manages stock items and their supplier links.
package inventory

import (
	"context"
	"errors"

	"github.com/autoworks/workshop-backend/internal/repo"
	"github.com/autoworks/workshop-backend/pkg/db/models"
	pkgerrors "github.com/autoworks/workshop-backend/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var supplierSwap = repo.LinkSwap{
	Model:        &models.InventorySupplierLink{},
	ParentColumn: "inventory_id",
	OtherColumn:  "supplier_id",
	Preload:      "Suppliers",
}

// Repository wraps the generic inventory repository with supplier linking.
type Repository struct {
	*repo.Repository[models.Inventory]
	conn *gorm.DB
}

// NewRepository builds an inventory repository bound to the given connection.
func NewRepository(conn *gorm.DB) *Repository {
	return &Repository{
		Repository: repo.NewRepository[models.Inventory](conn, "Suppliers"),
		conn:       conn,
	}
}

// Create persists the item and links it to the given suppliers in one
// transaction. A zero minimum threshold falls back to the default restock
// floor.
func (r *Repository) Create(ctx context.Context, record *models.Inventory, supplierIDs []int64) (*models.Inventory, error) {
	if record.MinimumThreshold == 0 {
		record.MinimumThreshold = models.DefaultMinimumThreshold
	}
	err := r.conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, supplierID := range supplierIDs {
			var supplier models.Supplier
			if err := tx.First(&supplier, "id = ?", supplierID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return pkgerrors.Newf(pkgerrors.CodeValidation, "Supplier with id %d not found", supplierID)
				}
				return err
			}
		}
		if err := tx.Omit(clause.Associations).Create(record).Error; err != nil {
			return err
		}
		for _, supplierID := range supplierIDs {
			link := models.InventorySupplierLink{InventoryID: record.ID, SupplierID: supplierID}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, record.ID)
}

// SwapSupplier repoints the item's link from previousSupplierID to
// newSupplierID. Returns (nil, nil) when the item, the link or the new
// supplier is missing.
func (r *Repository) SwapSupplier(ctx context.Context, inventoryID, previousSupplierID, newSupplierID int64) (*models.Inventory, error) {
	return repo.SwapLink[models.Inventory, models.Supplier](ctx, r.conn, supplierSwap, inventoryID, previousSupplierID, newSupplierID)
}

// DeleteByID removes the item along with its supplier and reservation links.
// Returns (nil, nil) when the id does not exist.
func (r *Repository) DeleteByID(ctx context.Context, id int64) (*models.Inventory, error) {
	existing, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}
	err = r.conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.InventorySupplierLink{}, "inventory_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.InventoryServiceLink{}, "inventory_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.InventoryJobCardLink{}, "inventory_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Inventory{}, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return existing, nil
}
