package syncer

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"hppcalc/models"
)

// List sources reported alongside menu summaries.
const (
	SourceSheets = "sheets"
	SourceLocal  = "local"
)

// MenuSummary is one row of the saved-menus list, regardless of
// whether it came from the sheet or the local cache.
type MenuSummary struct {
	MenuID      string  `json:"menu_id,omitempty"`
	LocalID     string  `json:"local_id,omitempty"`
	MenuName    string  `json:"menu_name"`
	Category    string  `json:"category"`
	Subcategory string  `json:"subcategory"`
	Brand       string  `json:"brand,omitempty"`
	HPPPerUnit  float64 `json:"hpp_per_piece"`
	DineInPrice float64 `json:"dine_in_price"`
	GofoodPrice float64 `json:"gofood_price"`
	SavedAt     string  `json:"saved_at,omitempty"`
}

// recipeFromRecord maps a sheet record's field names back onto the
// local recipe shape. Each sub-structure is decoded defensively: a
// malformed ingredient list or packaging record degrades to the blank
// default instead of aborting the load.
func recipeFromRecord(menuID string, record map[string]any) models.Recipe {
	recipe := models.NewRecipe()
	recipe.MenuID = strings.TrimSpace(menuID)
	recipe.MenuName = asString(record["nama_menu"])
	if recipe.MenuName == "" {
		recipe.MenuName = asString(record["menu_name"])
	}
	if category := asString(record["kategori"]); category != "" {
		recipe.Category = category
	}
	if sub := asString(record["subkategori"]); sub != "" {
		recipe.Subcategory = sub
	}
	recipe.Brand = asString(record["brand"])
	recipe.TargetCost = numberField(record["target_cost"], "")
	recipe.TargetQty = numberField(record["target_qty"], "1")
	recipe.ProfitMarginPct = floatField(record["profit_margin"], models.DefaultProfitMargin)
	recipe.PlatformFeePct = floatField(record["percentage_gofood"], models.DefaultPlatformFee)
	recipe.TaxPct = floatField(record["percentage_pajak"], models.DefaultTax)
	recipe.Notes = asString(record["catatan"])

	recipe.Packaging = models.Packaging{
		Name:     "Packaging",
		Cost:     numberField(record["total_packaging"], ""),
		Quantity: "1",
	}

	if rows := ingredientsFromRecord(record["ingredients"]); len(rows) > 0 {
		recipe.Ingredients = rows
	}

	recipe.Normalize()
	return recipe
}

func ingredientsFromRecord(raw any) []models.Ingredient {
	items, ok := raw.([]any)
	if !ok {
		return nil
	}

	rows := make([]models.Ingredient, 0, len(items))
	for _, item := range items {
		record, ok := item.(map[string]any)
		if !ok {
			continue
		}
		row := models.Ingredient{
			ID:               uuid.NewString(),
			Name:             asString(record["nama_bahan"]),
			Usage:            numberField(record["jumlah_pakai"], ""),
			Unit:             defaultString(asString(record["satuan_pakai"]), "GRAM"),
			PurchasePrice:    numberField(record["harga_beli"], ""),
			PurchaseUnit:     numberField(record["satuan_beli"], "1"),
			PurchaseUnitType: defaultString(asString(record["satuan_beli_type"]), "GRAM"),
			Category:         defaultString(asString(record["kategori_bahan"]), "BAHAN_UTAMA"),
			Supplier:         asString(record["supplier"]),
			Notes:            asString(record["catatan_bahan"]),
		}
		rows = append(rows, row)
	}
	return rows
}

func summariesFromRecords(records []map[string]any) []MenuSummary {
	summaries := make([]MenuSummary, 0, len(records))
	for _, record := range records {
		name := asString(record["nama_menu"])
		if name == "" {
			name = asString(record["menu_name"])
		}
		hpp := floatField(record["hpp_per_unit"], 0)
		if hpp == 0 {
			hpp = floatField(record["hpp_per_piece"], 0)
		}
		summaries = append(summaries, MenuSummary{
			MenuID:      asString(record["menu_id"]),
			MenuName:    name,
			Category:    asString(record["kategori"]),
			Subcategory: asString(record["subkategori"]),
			Brand:       asString(record["brand"]),
			HPPPerUnit:  hpp,
			DineInPrice: floatField(record["dine_in_price"], 0),
			GofoodPrice: floatField(record["gofood_price"], 0),
			SavedAt:     asString(record["timestamp"]),
		})
	}
	return summaries
}

func summariesFromCache(entries []models.CachedMenu) []MenuSummary {
	summaries := make([]MenuSummary, 0, len(entries))
	for _, entry := range entries {
		summaries = append(summaries, MenuSummary{
			MenuID:      entry.MenuID,
			LocalID:     entry.LocalID,
			MenuName:    entry.MenuName,
			Category:    entry.Category,
			Subcategory: entry.Subcategory,
			Brand:       entry.Brand,
			HPPPerUnit:  entry.HPPPerUnit,
			DineInPrice: entry.DineInPrice,
			GofoodPrice: entry.GofoodPrice,
			SavedAt:     entry.SavedAt,
		})
	}
	return summaries
}

// asString renders any scalar record value as trimmed text.
func asString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// floatField parses a record value as a number, accepting the string
// and numeric forms the sheet interchangeably produces.
func floatField(value any, def float64) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return def
		}
		return parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return def
		}
		return parsed
	default:
		return def
	}
}

// numberField renders a numeric record value back into form-input
// text, keeping the default when the value is absent or unreadable.
func numberField(value any, def string) string {
	if value == nil {
		return def
	}
	if s, ok := value.(string); ok {
		if strings.TrimSpace(s) == "" {
			return def
		}
		return strings.TrimSpace(s)
	}
	parsed := floatField(value, 0)
	if parsed == 0 && def != "" {
		return def
	}
	return strconv.FormatFloat(parsed, 'f', -1, 64)
}

func defaultString(value, def string) string {
	if value == "" {
		return def
	}
	return value
}
