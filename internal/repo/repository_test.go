package repo

import (
	"context"
	"fmt"
	"testing"

	"github.com/autoworks/workshop-backend/pkg/db/models"
	"github.com/autoworks/workshop-backend/pkg/enums"
	pkgerrors "github.com/autoworks/workshop-backend/pkg/errors"
	"github.com/autoworks/workshop-backend/pkg/pagination"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupRepoTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:repo_" + uuid.NewString() + "?mode=memory&cache=shared&_foreign_keys=on"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, models.RegisterJoinTables(conn))
	require.NoError(t, conn.AutoMigrate(models.All()...))
	return conn
}

func newCustomer(t *testing.T, repo *Repository[models.Customer], name, contact string) *models.Customer {
	t.Helper()

	created, err := repo.Create(context.Background(), &models.Customer{
		Name:      name,
		ContactNo: contact,
	})
	require.NoError(t, err)
	return created
}

func TestRepositoryCreateAndFind(t *testing.T) {
	conn := setupRepoTestDB(t)
	repo := NewRepository[models.Customer](conn)
	ctx := context.Background()

	created := newCustomer(t, repo, "Asha Verma", "0771234567")
	require.NotZero(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Nil(t, created.UpdatedAt, "updated_at stays unset until the first update")

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Asha Verma", found.Name)

	missing, err := repo.FindByID(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestRepositoryCreateUniqueConflict(t *testing.T) {
	conn := setupRepoTestDB(t)
	repo := NewRepository[models.Customer](conn)
	ctx := context.Background()

	newCustomer(t, repo, "Asha Verma", "0771234567")

	_, err := repo.Create(ctx, &models.Customer{Name: "Other", ContactNo: "0771234567"})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeConflict))
}

func TestRepositoryCreateMany(t *testing.T) {
	conn := setupRepoTestDB(t)
	repo := NewRepository[models.Supplier](conn)
	ctx := context.Background()

	suppliers := []models.Supplier{
		{Name: "Lanka Lubes", ContactNo: "0112223334"},
		{Name: "AutoParts Direct", ContactNo: "0112223335"},
	}
	created, err := repo.CreateMany(ctx, suppliers)
	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.NotZero(t, created[0].ID)
	assert.NotZero(t, created[1].ID)

	empty, err := repo.CreateMany(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestRepositoryFindByIDsOmitsMissing(t *testing.T) {
	conn := setupRepoTestDB(t)
	repo := NewRepository[models.Customer](conn)
	ctx := context.Background()

	a := newCustomer(t, repo, "First", "0770000001")
	b := newCustomer(t, repo, "Second", "0770000002")

	records, err := repo.FindByIDs(ctx, []int64{b.ID, 555, a.ID})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, a.ID, records[0].ID)
	assert.Equal(t, b.ID, records[1].ID)
}

func TestRepositoryUpdateByID(t *testing.T) {
	conn := setupRepoTestDB(t)
	repo := NewRepository[models.Customer](conn)
	ctx := context.Background()

	created := newCustomer(t, repo, "Asha Verma", "0771234567")

	updated, err := repo.UpdateByID(ctx, created.ID, map[string]any{
		"name": "Asha V. Perera",
		"id":   999, // must be ignored
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Asha V. Perera", updated.Name)
	assert.Equal(t, "0771234567", updated.ContactNo, "untouched columns keep their values")
	require.NotNil(t, updated.UpdatedAt)

	missing, err := repo.UpdateByID(ctx, 9999, map[string]any{"name": "x"})
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestRepositoryUpdateManyByIDs(t *testing.T) {
	conn := setupRepoTestDB(t)
	repo := NewRepository[models.Customer](conn)
	ctx := context.Background()

	a := newCustomer(t, repo, "First", "0770000001")
	b := newCustomer(t, repo, "Second", "0770000002")

	updated, err := repo.UpdateManyByIDs(ctx,
		[]int64{a.ID, b.ID},
		[]map[string]any{{"name": "First Renamed"}, {"name": "Second Renamed"}},
	)
	require.NoError(t, err)
	require.Len(t, updated, 2)
	assert.Equal(t, "First Renamed", updated[0].Name)
	assert.Equal(t, "Second Renamed", updated[1].Name)

	_, err = repo.UpdateManyByIDs(ctx, []int64{a.ID}, nil)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestRepositoryDeleteByID(t *testing.T) {
	conn := setupRepoTestDB(t)
	repo := NewRepository[models.Customer](conn)
	ctx := context.Background()

	created := newCustomer(t, repo, "Asha Verma", "0771234567")

	snapshot, err := repo.DeleteByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, snapshot)
	assert.Equal(t, "Asha Verma", snapshot.Name)

	gone, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	again, err := repo.DeleteByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, again)
}

func TestRepositoryDeleteManyByIDs(t *testing.T) {
	conn := setupRepoTestDB(t)
	repo := NewRepository[models.Customer](conn)
	ctx := context.Background()

	a := newCustomer(t, repo, "First", "0770000001")
	b := newCustomer(t, repo, "Second", "0770000002")

	count, err := repo.DeleteManyByIDs(ctx, []int64{a.ID, b.ID, 777})
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = repo.DeleteManyByIDs(ctx, []int64{a.ID})
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestRepositoryDeleteByIDCascadesDependents(t *testing.T) {
	conn := setupRepoTestDB(t)
	customers := NewRepository[models.Customer](conn)
	vehicles := NewRepository[models.Vehicle](conn)
	ctx := context.Background()

	owner := newCustomer(t, customers, "Asha Verma", "0771234567")
	car, err := vehicles.Create(ctx, &models.Vehicle{
		Make:          "Toyota",
		Model:         "Corolla",
		Year:          2019,
		VehicleNumber: "WP-CAB-1234",
		CustomerID:    owner.ID,
	})
	require.NoError(t, err)

	_, err = customers.DeleteByID(ctx, owner.ID)
	require.NoError(t, err)

	orphan, err := vehicles.FindByID(ctx, car.ID)
	require.NoError(t, err)
	assert.Nil(t, orphan, "vehicles must go with their customer")
}

func seedInventory(t *testing.T, conn *gorm.DB, n int) {
	t.Helper()

	repo := NewRepository[models.Inventory](conn)
	items := make([]models.Inventory, 0, n)
	for i := 1; i <= n; i++ {
		items = append(items, models.Inventory{
			ItemName:         fmt.Sprintf("Item %02d", i),
			Quantity:         50,
			UnitPrice:        9.99,
			MinimumThreshold: models.DefaultMinimumThreshold,
			Category:         enums.InventoryCategorySpareParts,
		})
	}
	_, err := repo.CreateMany(context.Background(), items)
	require.NoError(t, err)
}

func TestRepositoryListPagination(t *testing.T) {
	conn := setupRepoTestDB(t)
	seedInventory(t, conn, 25)
	repo := NewRepository[models.Inventory](conn)
	ctx := context.Background()

	page1, err := repo.List(ctx, pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, page1.CurrentPage)
	assert.Equal(t, 3, page1.TotalPages)
	assert.Equal(t, int64(25), page1.TotalRecords)
	require.Len(t, page1.Records, 10)
	require.NotNil(t, page1.NextRecordID)
	assert.Equal(t, int64(11), *page1.NextRecordID)
	assert.Nil(t, page1.PreviousRecordID)

	page2, err := repo.List(ctx, pagination.Params{Page: 2, Limit: 10})
	require.NoError(t, err)
	require.Len(t, page2.Records, 10)
	require.NotNil(t, page2.NextRecordID)
	assert.Equal(t, int64(21), *page2.NextRecordID)
	require.NotNil(t, page2.PreviousRecordID)
	assert.Equal(t, int64(1), *page2.PreviousRecordID)

	page3, err := repo.List(ctx, pagination.Params{Page: 3, Limit: 10})
	require.NoError(t, err)
	require.Len(t, page3.Records, 5)
	assert.Nil(t, page3.NextRecordID, "the final page has no next record")
	require.NotNil(t, page3.PreviousRecordID)
	assert.Equal(t, int64(11), *page3.PreviousRecordID)
}

func TestRepositoryListClampsOutOfRangePage(t *testing.T) {
	conn := setupRepoTestDB(t)
	seedInventory(t, conn, 5)
	repo := NewRepository[models.Inventory](conn)

	page, err := repo.List(context.Background(), pagination.Params{Page: 40, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Len(t, page.Records, 5)
	assert.Nil(t, page.NextRecordID)
	assert.Nil(t, page.PreviousRecordID)
}

func TestRepositoryListEmptyTable(t *testing.T) {
	conn := setupRepoTestDB(t)
	repo := NewRepository[models.Inventory](conn)

	page, err := repo.List(context.Background(), pagination.Params{Page: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, int64(0), page.TotalRecords)
	assert.Empty(t, page.Records)
	assert.Nil(t, page.NextRecordID)
	assert.Nil(t, page.PreviousRecordID)
}

func TestRepositoryListDefaultsLimit(t *testing.T) {
	conn := setupRepoTestDB(t)
	seedInventory(t, conn, 12)
	repo := NewRepository[models.Inventory](conn)

	page, err := repo.List(context.Background(), pagination.Params{Page: 1, Limit: 0})
	require.NoError(t, err)
	assert.Equal(t, pagination.DefaultLimit, page.Limit)
	assert.Len(t, page.Records, pagination.DefaultLimit)
}

func TestRepositoryListSearch(t *testing.T) {
	conn := setupRepoTestDB(t)
	repo := NewRepository[models.Inventory](conn)
	ctx := context.Background()

	_, err := repo.CreateMany(ctx, []models.Inventory{
		{ItemName: "Brake Pad", Quantity: 10, UnitPrice: 20, MinimumThreshold: 2, Category: enums.InventoryCategorySpareParts},
		{ItemName: "Brake Fluid", Quantity: 10, UnitPrice: 8, MinimumThreshold: 2, Category: enums.InventoryCategoryLubricants},
		{ItemName: "Wiper Blade", Quantity: 10, UnitPrice: 5, MinimumThreshold: 2, Category: enums.InventoryCategorySpareParts},
	})
	require.NoError(t, err)

	page, err := repo.List(ctx, pagination.Params{Page: 1, SearchBy: "item_name", SearchQuery: "brake"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.TotalRecords)
	require.Len(t, page.Records, 2)
	assert.Nil(t, page.NextRecordID)
}

func TestRepositoryListSearchInvalidColumn(t *testing.T) {
	conn := setupRepoTestDB(t)
	repo := NewRepository[models.Inventory](conn)

	_, err := repo.List(context.Background(), pagination.Params{Page: 1, SearchBy: "drop table"})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
	assert.Contains(t, err.Error(), "Invalid search column")

	// validation fires even when no query is supplied alongside the column
	_, err = repo.List(context.Background(), pagination.Params{Page: 1, SearchBy: "nope"})
	require.Error(t, err)
}
