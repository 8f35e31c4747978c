package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/autoworks/workshop-backend/pkg/migrate"
)

func readMigration(t *testing.T, pattern string) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration matching %q", pattern)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}

func TestInventoryMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "*_create_suppliers_inventories.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS inventories",
		"item_name VARCHAR(255) NOT NULL UNIQUE",
		"CHECK (quantity >= 0)",
		"CHECK (minimum_threshold > 0)",
		"PRIMARY KEY (inventory_id, supplier_id)",
		"DROP TABLE IF EXISTS inventories",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestReservationLinkMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "*_create_services_job_cards.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS inventory_service_links",
		"CREATE TABLE IF NOT EXISTS inventory_job_card_links",
		"quantity INTEGER NOT NULL DEFAULT 1 CHECK (quantity >= 1)",
		"PRIMARY KEY (inventory_id, service_id)",
		"PRIMARY KEY (inventory_id, job_card_id)",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestValidateDirAcceptsBundledMigrations(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("bundled migrations failed validation: %v", err)
	}
}

func TestCreateSQLMigration(t *testing.T) {
	dir := t.TempDir()

	path, err := migrate.CreateSQLMigration(dir, "Add Warranty Table!")
	if err != nil {
		t.Fatalf("create migration: %v", err)
	}
	if !strings.HasSuffix(path, "_add_warranty_table.sql") {
		t.Fatalf("unexpected filename: %s", path)
	}
	if err := migrate.ValidateDir(dir); err != nil {
		t.Fatalf("created migration failed validation: %v", err)
	}
}
