package inventory

import (
	"context"
	"testing"

	"github.com/autoworks/workshop-backend/pkg/db/models"
	"github.com/autoworks/workshop-backend/pkg/enums"
	pkgerrors "github.com/autoworks/workshop-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupInventoryTest(t *testing.T) (*gorm.DB, *Repository) {
	t.Helper()

	dsn := "file:inventory_" + uuid.NewString() + "?mode=memory&cache=shared&_foreign_keys=on"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, models.RegisterJoinTables(conn))
	require.NoError(t, conn.AutoMigrate(models.All()...))
	return conn, NewRepository(conn)
}

func newSupplier(t *testing.T, conn *gorm.DB, name, contact string) *models.Supplier {
	t.Helper()
	supplier := &models.Supplier{Name: name, ContactNo: contact}
	require.NoError(t, conn.Create(supplier).Error)
	return supplier
}

func TestInventoryCreateLinksSuppliers(t *testing.T) {
	conn, repo := setupInventoryTest(t)
	ctx := context.Background()

	first := newSupplier(t, conn, "Lanka Lubes", "0112223334")
	second := newSupplier(t, conn, "AutoParts Direct", "0112223335")

	created, err := repo.Create(ctx, &models.Inventory{
		ItemName:         "Engine Oil",
		Quantity:         100,
		UnitPrice:        12.5,
		MinimumThreshold: 10,
		Category:         enums.InventoryCategoryLubricants,
	}, []int64{first.ID, second.ID})
	require.NoError(t, err)
	require.NotNil(t, created)
	require.Len(t, created.Suppliers, 2)
}

func TestInventoryCreateDefaultsThreshold(t *testing.T) {
	_, repo := setupInventoryTest(t)

	created, err := repo.Create(context.Background(), &models.Inventory{
		ItemName:  "Wiper Blade",
		Quantity:  20,
		UnitPrice: 5,
		Category:  enums.InventoryCategorySpareParts,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultMinimumThreshold, created.MinimumThreshold)
}

func TestInventoryCreateMissingSupplier(t *testing.T) {
	conn, repo := setupInventoryTest(t)

	_, err := repo.Create(context.Background(), &models.Inventory{
		ItemName:         "Engine Oil",
		Quantity:         100,
		UnitPrice:        12.5,
		MinimumThreshold: 10,
		Category:         enums.InventoryCategoryLubricants,
	}, []int64{9999})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	var count int64
	require.NoError(t, conn.Model(&models.Inventory{}).Count(&count).Error)
	assert.Equal(t, int64(0), count, "failed create must not persist the item")
}

func TestInventorySwapSupplier(t *testing.T) {
	conn, repo := setupInventoryTest(t)
	ctx := context.Background()

	current := newSupplier(t, conn, "Lanka Lubes", "0112223334")
	replacement := newSupplier(t, conn, "AutoParts Direct", "0112223335")

	created, err := repo.Create(ctx, &models.Inventory{
		ItemName:         "Engine Oil",
		Quantity:         100,
		UnitPrice:        12.5,
		MinimumThreshold: 10,
		Category:         enums.InventoryCategoryLubricants,
	}, []int64{current.ID})
	require.NoError(t, err)

	swapped, err := repo.SwapSupplier(ctx, created.ID, current.ID, replacement.ID)
	require.NoError(t, err)
	require.NotNil(t, swapped)
	require.Len(t, swapped.Suppliers, 1)
	assert.Equal(t, replacement.ID, swapped.Suppliers[0].ID)

	// all three guards return nil without touching the link
	missing, err := repo.SwapSupplier(ctx, 9999, replacement.ID, current.ID)
	require.NoError(t, err)
	assert.Nil(t, missing)

	missing, err = repo.SwapSupplier(ctx, created.ID, current.ID, replacement.ID)
	require.NoError(t, err)
	assert.Nil(t, missing, "previous supplier is no longer linked")

	missing, err = repo.SwapSupplier(ctx, created.ID, replacement.ID, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestInventoryDeleteCleansLinks(t *testing.T) {
	conn, repo := setupInventoryTest(t)
	ctx := context.Background()

	supplier := newSupplier(t, conn, "Lanka Lubes", "0112223334")
	created, err := repo.Create(ctx, &models.Inventory{
		ItemName:         "Engine Oil",
		Quantity:         100,
		UnitPrice:        12.5,
		MinimumThreshold: 10,
		Category:         enums.InventoryCategoryLubricants,
	}, []int64{supplier.ID})
	require.NoError(t, err)

	snapshot, err := repo.DeleteByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, snapshot)

	var count int64
	require.NoError(t, conn.Model(&models.InventorySupplierLink{}).Where("inventory_id = ?", created.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	missing, err := repo.DeleteByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSupplierDeleteCascadesLinks(t *testing.T) {
	conn, repo := setupInventoryTest(t)
	ctx := context.Background()

	supplier := newSupplier(t, conn, "Lanka Lubes", "0112223334")
	created, err := repo.Create(ctx, &models.Inventory{
		ItemName:         "Engine Oil",
		Quantity:         100,
		UnitPrice:        12.5,
		MinimumThreshold: 10,
		Category:         enums.InventoryCategoryLubricants,
	}, []int64{supplier.ID})
	require.NoError(t, err)

	require.NoError(t, conn.Delete(&models.Supplier{}, supplier.ID).Error)

	var count int64
	require.NoError(t, conn.Model(&models.InventorySupplierLink{}).Where("supplier_id = ?", supplier.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count, "link rows must go with their supplier")

	item, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, item, "the item itself survives the supplier delete")
	assert.Empty(t, item.Suppliers)
}
