package mock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	applog "hppcalc/internal/log"
	"hppcalc/models"
)

// New returns an in-memory sqlite database seeded with a few cached
// menu snapshots and price-list entries, enough to exercise the list
// and autofill paths without a remote endpoint.
func New(ctx context.Context) (*gorm.DB, error) {
	applog.Debug(ctx, "initialising mock database")

	db, err := gorm.Open(sqlite.Open("file:hppcalc-mock?mode=memory&cache=shared"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		PrepareStmt:                              true,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&models.CachedMenu{},
		&models.PriceListItem{},
	); err != nil {
		return nil, err
	}

	if err := seed(ctx, db); err != nil {
		return nil, err
	}

	applog.Debug(ctx, "mock database ready")
	return db, nil
}

func seed(ctx context.Context, db *gorm.DB) error {
	applog.Debug(ctx, "seeding mock database")

	now := time.Now().UTC()
	menus := []models.CachedMenu{
		{
			LocalID:     "LOCAL_" + uuid.NewString(),
			MenuName:    "Nasi Goreng Spesial",
			Category:    models.CategoryFood,
			Subcategory: "MAIN_COURSE",
			HPPPerUnit:  5750,
			DineInPrice: 9583.33,
			GofoodPrice: 12458.33,
			SavedAt:     now.Add(-2 * time.Hour).Format(time.RFC3339),
		},
		{
			LocalID:     "LOCAL_" + uuid.NewString(),
			MenuName:    "Es Kopi Susu",
			Category:    models.CategoryDrink,
			Subcategory: "COFFEE",
			HPPPerUnit:  4200,
			DineInPrice: 7000,
			GofoodPrice: 9100,
			SavedAt:     now.Add(-30 * time.Minute).Format(time.RFC3339),
		},
	}
	for i := range menus {
		if err := db.WithContext(ctx).Create(&menus[i]).Error; err != nil {
			return err
		}
	}

	items := []models.PriceListItem{
		{Name: "gula pasir", Unit: "GRAM", PackSize: 1000, PackPrice: 18000, Supplier: "Toko Sinar"},
		{Name: "susu kental manis", Unit: "MILLILITER", PackSize: 490, PackPrice: 12500, Supplier: "Toko Sinar"},
		{Name: "kopi robusta", Unit: "GRAM", PackSize: 500, PackPrice: 42000, Supplier: "Gudang Kopi"},
	}
	for i := range items {
		if err := db.WithContext(ctx).Create(&items[i]).Error; err != nil {
			return err
		}
	}

	return nil
}
