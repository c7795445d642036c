package handlers

import (
	"net/http"
	"strings"

	applog "hppcalc/internal/log"
	"hppcalc/models"
)

type priceListResponse struct {
	ID        uint    `json:"id"`
	Name      string  `json:"name"`
	Unit      string  `json:"unit"`
	PackSize  float64 `json:"pack_size"`
	PackPrice float64 `json:"pack_price"`
	Supplier  string  `json:"supplier"`
}

// PriceList serves the imported ingredient price book, optionally
// filtered by a case-insensitive name match. The calculator uses it
// to pre-fill purchase prices.
func PriceList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if database == nil {
		applog.Debug(r.Context(), "price list request without database")
		writeJSONError(w, http.StatusServiceUnavailable, "service unavailable")
		return
	}

	ctx := r.Context()
	query := database.WithContext(ctx).Order("name asc")
	if needle := strings.TrimSpace(r.URL.Query().Get("query")); needle != "" {
		query = query.Where("lower(name) LIKE ?", "%"+strings.ToLower(needle)+"%")
	}

	var items []models.PriceListItem
	if err := query.Find(&items).Error; err != nil {
		applog.Error(ctx, "failed to list price book items", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to load price list")
		return
	}

	responses := make([]priceListResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, priceListResponse{
			ID:        item.ID,
			Name:      item.Name,
			Unit:      item.Unit,
			PackSize:  item.PackSize,
			PackPrice: item.PackPrice,
			Supplier:  item.Supplier,
		})
	}
	writeJSON(w, http.StatusOK, responses)
}
