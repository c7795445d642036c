package syncer

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"hppcalc/internal/pricing"
	"hppcalc/internal/sheets"
	"hppcalc/models"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// saveChecks is the declarative half of save validation; the
// per-ingredient completeness rule needs counting and stays manual.
type saveChecks struct {
	MenuName     string  `validate:"required"`
	Category     string  `validate:"omitempty,oneof=MAKANAN MINUMAN"`
	ProfitMargin float64 `validate:"gte=0"`
	PlatformFee  float64 `validate:"gte=0,lte=100"`
	Tax          float64 `validate:"gte=0,lte=100"`
}

// validateRecipe checks a normalized recipe before any network call.
// The bool result is true when the recipe may be saved.
func validateRecipe(r models.Recipe) (Result, bool) {
	checks := saveChecks{
		MenuName:     r.MenuName,
		Category:     r.Category,
		ProfitMargin: r.ProfitMarginPct,
		PlatformFee:  r.PlatformFeePct,
		Tax:          r.TaxPct,
	}
	if err := validate.Struct(checks); err != nil {
		message := "Invalid menu data."
		if fieldErrors, ok := err.(validator.ValidationErrors); ok && len(fieldErrors) > 0 {
			switch fieldErrors[0].Field() {
			case "MenuName":
				message = "Please enter menu name."
			case "Category":
				message = "Unknown menu category."
			default:
				message = "Percentages must be within their valid range."
			}
		}
		return Result{Kind: ResultInvalid, Message: message}, false
	}

	if incomplete := r.IncompleteIngredients(); incomplete > 0 {
		return Result{
			Kind: ResultInvalid,
			Message: fmt.Sprintf(
				"%d ingredient row(s) are incomplete. Each row needs a name, usage amount, purchase price, and purchase unit.",
				incomplete,
			),
		}, false
	}

	return Result{}, true
}

// BuildPayload flattens a recipe and its computed breakdown into the
// wire payload. The action is update_menu when the recipe carries a
// remote id, save_menu otherwise.
func BuildPayload(r models.Recipe, b pricing.Breakdown) sheets.MenuPayload {
	action := sheets.ActionSaveMenu
	if r.EditMode() {
		action = sheets.ActionUpdateMenu
	}

	rows := make([]sheets.IngredientPayload, 0, len(r.Ingredients))
	for _, row := range r.Ingredients {
		rows = append(rows, sheets.IngredientPayload{
			Name:             row.Name,
			Usage:            row.Usage,
			Unit:             row.Unit,
			PurchasePrice:    row.PurchasePrice,
			PurchaseUnit:     row.PurchaseUnit,
			PurchaseUnitType: row.PurchaseUnitType,
			Category:         row.Category,
			Supplier:         row.Supplier,
			Notes:            row.Notes,
		})
	}

	return sheets.MenuPayload{
		Action:           action,
		MenuID:           r.MenuID,
		MenuName:         r.MenuName,
		Category:         r.Category,
		Subcategory:      r.Subcategory,
		Brand:            r.Brand,
		TargetCost:       b.TargetCost,
		TargetQty:        b.TargetQty,
		TotalMaterial:    b.TotalMaterial,
		PackagingCost:    b.PackagingCost,
		TotalProduction:  b.TotalProduction,
		HPPPerPiece:      b.HPPPerUnit,
		ProfitMargin:     r.ProfitMarginPct,
		DineInPrice:      b.DineInPrice,
		GofoodPercentage: r.PlatformFeePct,
		TaxPercentage:    r.TaxPct,
		GofoodPrice:      b.GofoodPrice,
		GrossProfit:      b.GrossProfit,
		TotalProfit:      b.TotalProfit,
		TotalRevenue:     b.TotalRevenue,
		Notes:            r.Notes,
		Ingredients:      rows,
		Packaging: sheets.PackagingPayload{
			Name:     r.Packaging.Name,
			Cost:     r.Packaging.Cost,
			Quantity: r.Packaging.Quantity,
			Unit:     r.Packaging.Unit,
		},
		Source: sheets.PayloadSource,
	}
}
