package models

import (
	"strings"

	"github.com/google/uuid"
)

// Category taxonomy mirrored from the menu sheet. Subcategories are
// grouped under their parent category.
const (
	CategoryFood  = "MAKANAN"
	CategoryDrink = "MINUMAN"
)

// Subcategories indexes the fixed subcategory lists by category.
var Subcategories = map[string][]string{
	CategoryFood:  {"APPETIZER", "MAIN_COURSE", "DESSERT", "BREAKFAST", "SNACK", "LAINNYA"},
	CategoryDrink: {"SIGNATURE", "COFFEE", "TEA", "JUICE", "MOCKTAIL", "LAINNYA"},
}

// IngredientCategories lists the accepted ingredient classifications.
var IngredientCategories = []string{"BAHAN_UTAMA", "BUMBU", "PELENGKAP", "LAINNYA"}

// Units lists the accepted measurement units for usage and purchase lots.
var Units = []string{"GRAM", "KILOGRAM", "MILLILITER", "LITER", "PCS", "BUTIR", "SACHET", "LEMBAR"}

// Default pricing parameters applied to a fresh form.
const (
	DefaultProfitMargin = 40.0
	DefaultPlatformFee  = 20.0
	DefaultTax          = 10.0
)

// Ingredient is one raw-material row: how much of it one batch uses,
// and what a purchased lot of it costs. Numeric fields stay as strings
// because they arrive straight from form inputs; the pricing engine
// parses them with blank-or-garbage coercing to zero.
type Ingredient struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Usage            string `json:"usage"`
	Unit             string `json:"unit"`
	PurchasePrice    string `json:"purchase_price"`
	PurchaseUnit     string `json:"purchase_unit"`
	PurchaseUnitType string `json:"purchase_unit_type"`
	Category         string `json:"category"`
	Supplier         string `json:"supplier"`
	Notes            string `json:"notes"`
}

// NewIngredient returns a blank row with a fresh identifier and the
// default unit/category selections.
func NewIngredient() Ingredient {
	return Ingredient{
		ID:               uuid.NewString(),
		Unit:             "GRAM",
		PurchaseUnitType: "GRAM",
		Category:         "BAHAN_UTAMA",
	}
}

// Complete reports whether the row carries everything the sheet needs:
// name, usage amount, purchase price, and purchase-unit amount.
func (i Ingredient) Complete() bool {
	return strings.TrimSpace(i.Name) != "" &&
		strings.TrimSpace(i.Usage) != "" &&
		strings.TrimSpace(i.PurchasePrice) != "" &&
		strings.TrimSpace(i.PurchaseUnit) != ""
}

// Packaging is a flat per-batch consumable cost, not tied to any
// single ingredient.
type Packaging struct {
	Name     string `json:"name"`
	Cost     string `json:"cost"`
	Quantity string `json:"quantity"`
	Unit     string `json:"unit"`
}

// DefaultPackaging returns the packaging record a fresh form starts with.
func DefaultPackaging() Packaging {
	return Packaging{Name: "Packaging", Quantity: "1"}
}

// Recipe is the single source of truth for one costed menu item: the
// full form state as one value, trivially snapshotted for tests and
// serialized wholesale on save.
type Recipe struct {
	MenuID          string       `json:"menu_id,omitempty"`
	MenuName        string       `json:"menu_name"`
	Category        string       `json:"category"`
	Subcategory     string       `json:"subcategory"`
	Brand           string       `json:"brand"`
	TargetCost      string       `json:"target_cost"`
	TargetQty       string       `json:"target_qty"`
	ProfitMarginPct float64      `json:"profit_margin"`
	PlatformFeePct  float64      `json:"platform_fee_percent"`
	TaxPct          float64      `json:"tax_percent"`
	Notes           string       `json:"notes"`
	Ingredients     []Ingredient `json:"ingredients"`
	Packaging       Packaging    `json:"packaging"`
}

// NewRecipe builds the blank form: one empty ingredient row, default
// packaging, and the standard margin/fee/tax percentages.
func NewRecipe() Recipe {
	return Recipe{
		Category:        CategoryFood,
		Subcategory:     "MAIN_COURSE",
		TargetQty:       "1",
		ProfitMarginPct: DefaultProfitMargin,
		PlatformFeePct:  DefaultPlatformFee,
		TaxPct:          DefaultTax,
		Ingredients:     []Ingredient{NewIngredient()},
		Packaging:       DefaultPackaging(),
	}
}

// AddIngredient appends a blank row and returns its identifier.
func (r *Recipe) AddIngredient() string {
	row := NewIngredient()
	r.Ingredients = append(r.Ingredients, row)
	return row.ID
}

// RemoveIngredient deletes the row with the given identifier. The last
// remaining row is never removed.
func (r *Recipe) RemoveIngredient(id string) bool {
	if len(r.Ingredients) <= 1 {
		return false
	}
	for idx, row := range r.Ingredients {
		if row.ID == id {
			r.Ingredients = append(r.Ingredients[:idx], r.Ingredients[idx+1:]...)
			return true
		}
	}
	return false
}

// Normalize trims identifying fields, restores default selections for
// blank ones, and guarantees at least one ingredient row with a
// non-empty identifier. Safe to call on decoded client input.
func (r *Recipe) Normalize() {
	r.MenuName = strings.TrimSpace(r.MenuName)
	r.Brand = strings.TrimSpace(r.Brand)
	if r.Category == "" {
		r.Category = CategoryFood
	}
	if r.Subcategory == "" {
		r.Subcategory = "MAIN_COURSE"
	}
	if strings.TrimSpace(r.TargetQty) == "" {
		r.TargetQty = "1"
	}
	if len(r.Ingredients) == 0 {
		r.Ingredients = []Ingredient{NewIngredient()}
	}
	for idx := range r.Ingredients {
		if r.Ingredients[idx].ID == "" {
			r.Ingredients[idx].ID = uuid.NewString()
		}
		r.Ingredients[idx].Name = strings.TrimSpace(r.Ingredients[idx].Name)
	}
	if r.Packaging.Name == "" {
		r.Packaging = Packaging{Name: "Packaging", Cost: r.Packaging.Cost, Quantity: "1", Unit: r.Packaging.Unit}
	}
}

// IncompleteIngredients counts rows missing any required field.
func (r Recipe) IncompleteIngredients() int {
	count := 0
	for _, row := range r.Ingredients {
		if !row.Complete() {
			count++
		}
	}
	return count
}

// EditMode reports whether the recipe was loaded from a remote record,
// which turns the next save into an update.
func (r Recipe) EditMode() bool {
	return strings.TrimSpace(r.MenuID) != ""
}
