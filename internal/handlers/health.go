package handlers

import (
	"net/http"
	"time"

	applog "hppcalc/internal/log"
)

type healthResponse struct {
	Status string    `json:"status"`
	Sheets string    `json:"sheets"`
	Time   time.Time `json:"time"`
}

// Health is a simple readiness handler suitable for infrastructure
// probes. The process is healthy even while the sheet endpoint is
// down; the sheets field only reports the current sync state.
func Health(w http.ResponseWriter, r *http.Request) {
	applog.Debug(r.Context(), "health check requested", "method", r.Method)

	resp := healthResponse{
		Status: "ok",
		Sheets: "unconfigured",
		Time:   time.Now().UTC(),
	}
	if controller != nil {
		state, _ := controller.Status()
		resp.Sheets = string(state)
	}

	writeJSON(w, http.StatusOK, resp)
}
