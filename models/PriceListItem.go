package models

import (
	"gorm.io/gorm"
)

// PriceListItem is one entry in the imported supplier price list: a
// purchasable lot of a raw material with its pack size and price. The
// library backs ingredient autofill in the form.
type PriceListItem struct {
	gorm.Model
	Name      string  `gorm:"uniqueIndex;not null" json:"name"`
	Unit      string  `gorm:"not null" json:"unit"`
	PackSize  float64 `gorm:"not null" json:"pack_size"`
	PackPrice float64 `gorm:"not null" json:"pack_price"`
	Supplier  string  `json:"supplier"`
}
