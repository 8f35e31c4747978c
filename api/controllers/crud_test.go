package controllers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/autoworks/workshop-backend/internal/repo"
	"github.com/autoworks/workshop-backend/pkg/db/models"
)

func newSupplierRepo(t *testing.T) *repo.Repository[models.Supplier] {
	t.Helper()

	dsn := fmt.Sprintf("file:controllers_%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.Supplier{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return repo.NewRepository[models.Supplier](conn)
}

func TestGetResourceMissingRecord(t *testing.T) {
	suppliers := newSupplierRepo(t)

	r := chi.NewRouter()
	r.Get("/{id}", GetResource(suppliers, nil))

	req := httptest.NewRequest(http.MethodGet, "/42", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestGetResourceRejectsBadID(t *testing.T) {
	suppliers := newSupplierRepo(t)

	r := chi.NewRouter()
	r.Get("/{id}", GetResource(suppliers, nil))

	req := httptest.NewRequest(http.MethodGet, "/not-a-number", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestDeleteResourceReturnsSnapshot(t *testing.T) {
	suppliers := newSupplierRepo(t)

	created, err := suppliers.Create(context.Background(), &models.Supplier{
		Name:      "Apex Parts",
		ContactNo: "+15550009999",
	})
	if err != nil {
		t.Fatalf("seed supplier: %v", err)
	}

	r := chi.NewRouter()
	r.Delete("/{id}", DeleteResource(suppliers, nil))

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/%d", created.ID), nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	remaining, err := suppliers.FindByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("find after delete: %v", err)
	}
	if remaining != nil {
		t.Fatalf("supplier should be gone, got %+v", remaining)
	}
}
