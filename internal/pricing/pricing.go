// Package pricing implements the HPP cost pipeline: pure arithmetic
// over a recipe's ingredient rows and cost parameters. Every function
// is total; blank or unparsable numeric input coerces to zero, so the
// engine is safe to run on every edit of a half-filled form.
package pricing

import (
	"math"
	"strconv"
	"strings"

	"hppcalc/models"
)

// ParseAmount converts a form value to a number, treating blank or
// unparsable input as zero. NaN and infinities also collapse to zero.
func ParseAmount(value string) float64 {
	parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return 0
	}
	return parsed
}

// parseQty is ParseAmount with the production-count rule applied:
// blank, zero, or negative counts are treated as one unit.
func parseQty(value string) float64 {
	qty := ParseAmount(value)
	if qty <= 0 {
		return 1
	}
	return qty
}

// IngredientCost prices one row: the fraction of the purchased lot the
// batch consumes, times the lot price. Rows without a positive lot
// size and price cost nothing.
func IngredientCost(row models.Ingredient) float64 {
	usage := ParseAmount(row.Usage)
	purchaseUnit := ParseAmount(row.PurchaseUnit)
	purchasePrice := ParseAmount(row.PurchasePrice)
	if purchaseUnit <= 0 || purchasePrice <= 0 {
		return 0
	}
	return (usage / purchaseUnit) * purchasePrice
}

// TotalMaterialCost sums IngredientCost over all rows.
func TotalMaterialCost(rows []models.Ingredient) float64 {
	total := 0.0
	for _, row := range rows {
		total += IngredientCost(row)
	}
	return total
}

// TotalProductionCost adds the flat packaging cost to the material total.
func TotalProductionCost(rows []models.Ingredient, packaging models.Packaging) float64 {
	return TotalMaterialCost(rows) + ParseAmount(packaging.Cost)
}

// HPPPerUnit divides the production total across the target unit
// count. A blank or non-positive count means a single unit.
func HPPPerUnit(totalProduction float64, targetQty string) float64 {
	return totalProduction / parseQty(targetQty)
}

// DineInPrice marks the per-unit cost up to the base sale price:
// hpp / (1 - margin/100). A zero margin leaves the cost unchanged.
// Margins of 100% or more make the divisor vanish or go negative, so
// they are treated as degenerate and the price is pinned to twice the
// unit cost. Negative margins are treated as zero.
func DineInPrice(hpp, marginPct float64) float64 {
	if marginPct >= 100 {
		return hpp * 2
	}
	if marginPct <= 0 {
		return hpp
	}
	return hpp / (1 - marginPct/100)
}

// PlatformFee is the delivery-platform commission on the base price.
func PlatformFee(dineInPrice, feePct float64) float64 {
	if feePct <= 0 {
		return 0
	}
	return dineInPrice * feePct / 100
}

// TaxAmount is the tax on the base price.
func TaxAmount(dineInPrice, taxPct float64) float64 {
	if taxPct <= 0 {
		return 0
	}
	return dineInPrice * taxPct / 100
}

// GofoodPrice is the delivery-platform sale price: base price plus
// commission plus tax.
func GofoodPrice(dineInPrice, platformFee, taxAmount float64) float64 {
	return dineInPrice + platformFee + taxAmount
}

// Breakdown is the full computed snapshot for a recipe. It is what the
// form displays and what a save sends to the sheet.
type Breakdown struct {
	TotalMaterial   float64 `json:"total_material"`
	PackagingCost   float64 `json:"packaging_cost"`
	TotalProduction float64 `json:"total_production"`
	TargetQty       float64 `json:"target_qty"`
	HPPPerUnit      float64 `json:"hpp_per_piece"`
	DineInPrice     float64 `json:"dine_in_price"`
	PlatformFee     float64 `json:"platform_fee"`
	TaxAmount       float64 `json:"tax_amount"`
	GofoodPrice     float64 `json:"gofood_price"`
	GrossProfit     float64 `json:"gross_profit"`
	TotalProfit     float64 `json:"total_profit"`
	TotalRevenue    float64 `json:"total_revenue"`
	TargetCost      float64 `json:"target_cost"`
	CostVariance    float64 `json:"cost_variance"`
}

// Compute runs the whole pipeline for one recipe. Deterministic and
// side-effect free: identical input yields bit-identical output.
func Compute(r models.Recipe) Breakdown {
	material := TotalMaterialCost(r.Ingredients)
	packagingCost := ParseAmount(r.Packaging.Cost)
	production := material + packagingCost
	qty := parseQty(r.TargetQty)
	hpp := production / qty
	dineIn := DineInPrice(hpp, r.ProfitMarginPct)
	fee := PlatformFee(dineIn, r.PlatformFeePct)
	tax := TaxAmount(dineIn, r.TaxPct)
	gross := dineIn - hpp
	targetCost := ParseAmount(r.TargetCost)

	return Breakdown{
		TotalMaterial:   material,
		PackagingCost:   packagingCost,
		TotalProduction: production,
		TargetQty:       qty,
		HPPPerUnit:      hpp,
		DineInPrice:     dineIn,
		PlatformFee:     fee,
		TaxAmount:       tax,
		GofoodPrice:     GofoodPrice(dineIn, fee, tax),
		GrossProfit:     gross,
		TotalProfit:     gross * qty,
		TotalRevenue:    dineIn * qty,
		TargetCost:      targetCost,
		// Positive variance means the unit cost came in under target.
		CostVariance: targetCost - hpp,
	}
}
