package mock

import (
	"context"
	"testing"

	"hppcalc/models"
)

func TestNewSeedsData(t *testing.T) {
	db, err := New(context.Background())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var menuCount int64
	if err := db.Model(&models.CachedMenu{}).Count(&menuCount).Error; err != nil {
		t.Fatalf("count cached menus: %v", err)
	}
	if menuCount == 0 {
		t.Fatal("expected seeded cached menus")
	}

	var itemCount int64
	if err := db.Model(&models.PriceListItem{}).Count(&itemCount).Error; err != nil {
		t.Fatalf("count price list items: %v", err)
	}
	if itemCount == 0 {
		t.Fatal("expected seeded price list items")
	}

	var menu models.CachedMenu
	if err := db.Where("menu_name = ?", "Es Kopi Susu").First(&menu).Error; err != nil {
		t.Fatalf("find seeded menu: %v", err)
	}
	if menu.LocalID == "" || menu.SavedAt == "" {
		t.Fatalf("seeded menu missing identifiers: %+v", menu)
	}
}
