package services

import (
	"context"
	"testing"
	"time"

	"github.com/autoworks/workshop-backend/internal/reservation"
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

type fixtures struct {
	conn    *gorm.DB
	repo    *Repository
	vehicle models.Vehicle
	oil     models.Inventory
	pads    models.Inventory
}

func setupServiceTest(t *testing.T) fixtures {
	t.Helper()

	dsn := "file:services_" + uuid.NewString() + "?mode=memory&cache=shared&_foreign_keys=on"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, models.RegisterJoinTables(conn))
	require.NoError(t, conn.AutoMigrate(models.All()...))

	customer := models.Customer{Name: "Asha Verma", ContactNo: "0771234567"}
	require.NoError(t, conn.Create(&customer).Error)
	vehicle := models.Vehicle{Make: "Toyota", Model: "Corolla", Year: 2020, VehicleNumber: "WP-" + uuid.NewString()[:8], CustomerID: customer.ID}
	require.NoError(t, conn.Create(&vehicle).Error)

	oil := models.Inventory{ItemName: "Engine Oil", Quantity: 100, UnitPrice: 12.5, MinimumThreshold: 10, Category: enums.InventoryCategoryLubricants}
	pads := models.Inventory{ItemName: "Brake Pads", Quantity: 40, UnitPrice: 30, MinimumThreshold: 5, Category: enums.InventoryCategorySpareParts}
	require.NoError(t, conn.Create(&oil).Error)
	require.NoError(t, conn.Create(&pads).Error)

	return fixtures{conn: conn, repo: NewRepository(conn), vehicle: vehicle, oil: oil, pads: pads}
}

func (f fixtures) newService(desc string) *models.Service {
	return &models.Service{
		Status:       enums.ServiceStatusPending,
		ServiceDate:  time.Now().AddDate(0, 0, 1),
		DeliveryDate: time.Now().AddDate(0, 0, 3),
		Description:  desc,
		VehicleID:    f.vehicle.ID,
	}
}

func (f fixtures) stockOf(t *testing.T, id int64) int {
	t.Helper()
	var item models.Inventory
	require.NoError(t, f.conn.First(&item, "id = ?", id).Error)
	return item.Quantity
}

func (f fixtures) linkQuantities(t *testing.T, serviceID int64) map[int64]int {
	t.Helper()
	var links []models.InventoryServiceLink
	require.NoError(t, f.conn.Where("service_id = ?", serviceID).Find(&links).Error)
	out := make(map[int64]int, len(links))
	for _, link := range links {
		out[link.InventoryID] = link.Quantity
	}
	return out
}

func validationMessage(t *testing.T, err error) string {
	t.Helper()
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())
	return typed.Message()
}

func TestServiceCreateReservesStock(t *testing.T) {
	f := setupServiceTest(t)
	ctx := context.Background()

	created, err := f.repo.Create(ctx, f.newService("Full service"), []reservation.Request{
		{InventoryID: f.oil.ID, Quantity: 10},
		{InventoryID: f.pads.ID, Quantity: 2},
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Nil(t, created.UpdatedAt)
	require.Len(t, created.Inventories, 2)

	assert.Equal(t, 90, f.stockOf(t, f.oil.ID))
	assert.Equal(t, 38, f.stockOf(t, f.pads.ID))
	assert.Equal(t, map[int64]int{f.oil.ID: 10, f.pads.ID: 2}, f.linkQuantities(t, created.ID))
}

func TestServiceCreateDefaultsQuantity(t *testing.T) {
	f := setupServiceTest(t)

	created, err := f.repo.Create(context.Background(), f.newService("Oil top-up"), []reservation.Request{
		{InventoryID: f.oil.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, 99, f.stockOf(t, f.oil.ID))
	assert.Equal(t, map[int64]int{f.oil.ID: 1}, f.linkQuantities(t, created.ID))
}

func TestServiceCreateRequiresInventory(t *testing.T) {
	f := setupServiceTest(t)

	_, err := f.repo.Create(context.Background(), f.newService("No parts"), nil)
	assert.Equal(t, "At least one inventory item is required", validationMessage(t, err))
}

func TestServiceCreateValidationLeavesNothingBehind(t *testing.T) {
	f := setupServiceTest(t)
	ctx := context.Background()

	// second item fails sufficiency, so the first must not be deducted
	_, err := f.repo.Create(ctx, f.newService("Doomed"), []reservation.Request{
		{InventoryID: f.oil.ID, Quantity: 10},
		{InventoryID: f.pads.ID, Quantity: 500},
	})
	assert.Equal(t, "Insufficient quantity for Brake Pads. Required: 500, Available: 40", validationMessage(t, err))

	assert.Equal(t, 100, f.stockOf(t, f.oil.ID))
	assert.Equal(t, 40, f.stockOf(t, f.pads.ID))

	var count int64
	require.NoError(t, f.conn.Model(&models.Service{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestServiceCreateMissingInventory(t *testing.T) {
	f := setupServiceTest(t)

	_, err := f.repo.Create(context.Background(), f.newService("Ghost part"), []reservation.Request{
		{InventoryID: 9999, Quantity: 1},
	})
	assert.Equal(t, "Inventory with id 9999 not found", validationMessage(t, err))
}

func TestServiceCreateBelowThreshold(t *testing.T) {
	f := setupServiceTest(t)
	require.NoError(t, f.conn.Model(&models.Inventory{}).Where("id = ?", f.pads.ID).Update("quantity", 3).Error)

	_, err := f.repo.Create(context.Background(), f.newService("Low stock"), []reservation.Request{
		{InventoryID: f.pads.ID, Quantity: 1},
	})
	assert.Equal(t, "Brake Pads has reached minimum threshold. Restock before creating a new service", validationMessage(t, err))
}

func TestServiceCreateMany(t *testing.T) {
	f := setupServiceTest(t)

	created, err := f.repo.CreateMany(context.Background(),
		[]models.Service{*f.newService("First"), *f.newService("Second")},
		[][]reservation.Request{
			{{InventoryID: f.oil.ID, Quantity: 10}},
			{{InventoryID: f.oil.ID, Quantity: 20}, {InventoryID: f.pads.ID, Quantity: 5}},
		})
	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.Equal(t, 70, f.stockOf(t, f.oil.ID))
	assert.Equal(t, 35, f.stockOf(t, f.pads.ID))
}

func TestServiceUpdateAdjustsKeptItemByDelta(t *testing.T) {
	f := setupServiceTest(t)
	ctx := context.Background()

	created, err := f.repo.Create(ctx, f.newService("Full service"), []reservation.Request{
		{InventoryID: f.oil.ID, Quantity: 10},
	})
	require.NoError(t, err)

	updated, err := f.repo.UpdateByID(ctx, created.ID,
		map[string]any{"status": enums.ServiceStatusInProgress, "description": "Full service plus oil"},
		[]reservation.Request{{InventoryID: f.oil.ID, Quantity: 20}})
	require.NoError(t, err)
	require.NotNil(t, updated)
	require.NotNil(t, updated.UpdatedAt)
	assert.Equal(t, enums.ServiceStatusInProgress, updated.Status)

	assert.Equal(t, 80, f.stockOf(t, f.oil.ID))
	assert.Equal(t, map[int64]int{f.oil.ID: 20}, f.linkQuantities(t, created.ID))
}

func TestServiceUpdateAddsAndRemovesItems(t *testing.T) {
	f := setupServiceTest(t)
	ctx := context.Background()

	created, err := f.repo.Create(ctx, f.newService("Full service"), []reservation.Request{
		{InventoryID: f.oil.ID, Quantity: 10},
	})
	require.NoError(t, err)

	// oil dropped (restored), pads added (deducted in full)
	updated, err := f.repo.UpdateByID(ctx, created.ID, map[string]any{}, []reservation.Request{
		{InventoryID: f.pads.ID, Quantity: 4},
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	require.Len(t, updated.Inventories, 1)
	assert.Equal(t, f.pads.ID, updated.Inventories[0].ID)

	assert.Equal(t, 100, f.stockOf(t, f.oil.ID))
	assert.Equal(t, 36, f.stockOf(t, f.pads.ID))
	assert.Equal(t, map[int64]int{f.pads.ID: 4}, f.linkQuantities(t, created.ID))
}

func TestServiceUpdateHeldStockCountsAsAvailable(t *testing.T) {
	f := setupServiceTest(t)
	ctx := context.Background()

	created, err := f.repo.Create(ctx, f.newService("Big job"), []reservation.Request{
		{InventoryID: f.oil.ID, Quantity: 60},
	})
	require.NoError(t, err)
	assert.Equal(t, 40, f.stockOf(t, f.oil.ID))

	// 100 effective units are available to this service even though the
	// shelf shows 40
	updated, err := f.repo.UpdateByID(ctx, created.ID, nil, []reservation.Request{
		{InventoryID: f.oil.ID, Quantity: 100},
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, 0, f.stockOf(t, f.oil.ID))

	_, err = f.repo.UpdateByID(ctx, created.ID, nil, []reservation.Request{
		{InventoryID: f.oil.ID, Quantity: 101},
	})
	assert.Equal(t, "Insufficient quantity for Engine Oil. Required: 101, Available: 100", validationMessage(t, err))
	assert.Equal(t, 0, f.stockOf(t, f.oil.ID), "failed update must not move stock")
}

func TestServiceUpdateRequiresInventory(t *testing.T) {
	f := setupServiceTest(t)
	ctx := context.Background()

	created, err := f.repo.Create(ctx, f.newService("Full service"), []reservation.Request{
		{InventoryID: f.oil.ID, Quantity: 10},
	})
	require.NoError(t, err)

	_, err = f.repo.UpdateByID(ctx, created.ID, map[string]any{"description": "x"}, nil)
	assert.Equal(t, "At least one inventory item is required", validationMessage(t, err))
	assert.Equal(t, 90, f.stockOf(t, f.oil.ID), "failed update must not move stock")
}

func TestServiceUpdateNegativeQuantity(t *testing.T) {
	f := setupServiceTest(t)
	ctx := context.Background()

	created, err := f.repo.Create(ctx, f.newService("Full service"), []reservation.Request{
		{InventoryID: f.oil.ID, Quantity: 10},
	})
	require.NoError(t, err)

	_, err = f.repo.UpdateByID(ctx, created.ID, nil, []reservation.Request{
		{InventoryID: f.oil.ID, Quantity: -1},
	})
	assert.Equal(t, "Service quantity for Engine Oil must be at least 1", validationMessage(t, err))
}

func TestServiceUpdateMissingService(t *testing.T) {
	f := setupServiceTest(t)

	updated, err := f.repo.UpdateByID(context.Background(), 9999, nil, []reservation.Request{
		{InventoryID: f.oil.ID, Quantity: 1},
	})
	require.NoError(t, err)
	assert.Nil(t, updated)
	assert.Equal(t, 100, f.stockOf(t, f.oil.ID))
}

func TestServiceDeleteRestoresStock(t *testing.T) {
	f := setupServiceTest(t)
	ctx := context.Background()

	created, err := f.repo.Create(ctx, f.newService("Full service"), []reservation.Request{
		{InventoryID: f.oil.ID, Quantity: 10},
		{InventoryID: f.pads.ID, Quantity: 2},
	})
	require.NoError(t, err)

	snapshot, err := f.repo.DeleteByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, snapshot)

	assert.Equal(t, 100, f.stockOf(t, f.oil.ID))
	assert.Equal(t, 40, f.stockOf(t, f.pads.ID))
	assert.Empty(t, f.linkQuantities(t, created.ID))

	gone, err := f.repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestServiceDeleteCompletedServiceStillRestoresStock(t *testing.T) {
	f := setupServiceTest(t)
	ctx := context.Background()

	created, err := f.repo.Create(ctx, f.newService("Done deal"), []reservation.Request{
		{InventoryID: f.oil.ID, Quantity: 25},
	})
	require.NoError(t, err)

	_, err = f.repo.UpdateByID(ctx, created.ID,
		map[string]any{"status": enums.ServiceStatusCompleted},
		[]reservation.Request{{InventoryID: f.oil.ID, Quantity: 25}})
	require.NoError(t, err)

	snapshot, err := f.repo.DeleteByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, snapshot)
	assert.Equal(t, 100, f.stockOf(t, f.oil.ID))
}

func TestServiceDeleteMissingService(t *testing.T) {
	f := setupServiceTest(t)

	snapshot, err := f.repo.DeleteByID(context.Background(), 9999)
	require.NoError(t, err)
	assert.Nil(t, snapshot)
}

func TestServiceDeleteManyByIDs(t *testing.T) {
	f := setupServiceTest(t)
	ctx := context.Background()

	a, err := f.repo.Create(ctx, f.newService("First"), []reservation.Request{{InventoryID: f.oil.ID, Quantity: 10}})
	require.NoError(t, err)
	b, err := f.repo.Create(ctx, f.newService("Second"), []reservation.Request{{InventoryID: f.oil.ID, Quantity: 20}})
	require.NoError(t, err)

	count, err := f.repo.DeleteManyByIDs(ctx, []int64{a.ID, b.ID, 9999})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, 100, f.stockOf(t, f.oil.ID))
}
