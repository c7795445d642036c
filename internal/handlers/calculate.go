package handlers

import (
	"encoding/json"
	"net/http"

	applog "hppcalc/internal/log"
	"hppcalc/internal/pricing"
	"hppcalc/models"
)

type calculateResponse struct {
	Breakdown pricing.Breakdown `json:"breakdown"`
	Formatted map[string]string `json:"formatted"`
}

// Calculate prices a recipe without persisting anything. The response
// carries the numeric breakdown plus display-ready rupiah strings, so
// clients never reimplement the formatting.
func Calculate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var recipe models.Recipe
	if err := json.NewDecoder(r.Body).Decode(&recipe); err != nil {
		applog.Debug(r.Context(), "invalid calculate payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	recipe.Normalize()
	breakdown := pricing.Compute(recipe)

	writeJSON(w, http.StatusOK, calculateResponse{
		Breakdown: breakdown,
		Formatted: map[string]string{
			"total_material":   pricing.FormatRupiah(breakdown.TotalMaterial),
			"total_production": pricing.FormatRupiah(breakdown.TotalProduction),
			"hpp_per_piece":    pricing.FormatRupiah(breakdown.HPPPerUnit),
			"dine_in_price":    pricing.FormatRupiah(breakdown.DineInPrice),
			"gofood_price":     pricing.FormatRupiah(breakdown.GofoodPrice),
			"gross_profit":     pricing.FormatRupiah(breakdown.GrossProfit),
		},
	})
}
