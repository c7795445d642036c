package db

import (
	"path/filepath"
	"testing"

	"hppcalc/internal/config"
	"hppcalc/models"
)

func TestInitializeSQLiteFallback(t *testing.T) {
	t.Parallel()

	cfg := config.DatabaseConfig{SQLitePath: filepath.Join(t.TempDir(), "cache.db")}
	database, err := Initialize(cfg)
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	if err := AutoMigrate(database); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}

	menu := models.CachedMenu{LocalID: "LOCAL_test", MenuName: "Teh Manis", SavedAt: "2025-01-01T00:00:00Z"}
	if err := database.Create(&menu).Error; err != nil {
		t.Fatalf("create cached menu: %v", err)
	}

	var found models.CachedMenu
	if err := database.Where("local_id = ?", "LOCAL_test").First(&found).Error; err != nil {
		t.Fatalf("read back cached menu: %v", err)
	}
	if found.MenuName != "Teh Manis" {
		t.Fatalf("menu name = %q", found.MenuName)
	}
}

func TestInitializeRejectsBlankPaths(t *testing.T) {
	t.Parallel()

	if _, err := Initialize(config.DatabaseConfig{SQLitePath: "   "}); err == nil {
		t.Fatal("expected error for blank sqlite path without database URL")
	}
}

func TestAutoMigrateNilHandle(t *testing.T) {
	t.Parallel()

	if err := AutoMigrate(nil); err == nil {
		t.Fatal("expected error for nil database handle")
	}
}
