package models

import (
	"gorm.io/gorm"
)

// CachedMenu is one flattened menu snapshot in the bounded local
// cache. It doubles as the offline backup written alongside every
// remote save and as the fallback list when the sheet is unreachable.
// Payload holds the full save payload as JSON so a cached entry can be
// replayed verbatim.
type CachedMenu struct {
	gorm.Model
	LocalID     string  `gorm:"uniqueIndex;not null" json:"local_id"`
	MenuID      string  `gorm:"index" json:"menu_id"`
	MenuName    string  `gorm:"index;not null" json:"menu_name"`
	Category    string  `json:"category"`
	Subcategory string  `json:"subcategory"`
	Brand       string  `json:"brand"`
	HPPPerUnit  float64 `json:"hpp_per_piece"`
	DineInPrice float64 `json:"dine_in_price"`
	GofoodPrice float64 `json:"gofood_price"`
	Payload     string  `gorm:"type:text" json:"-"`
	SavedAt     string  `gorm:"not null" json:"saved_at"`
}
