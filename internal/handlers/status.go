package handlers

import (
	"net/http"

	applog "hppcalc/internal/log"
)

type statusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Status reports the current connection state without touching the
// network.
func Status(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if controller == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "sync is not configured")
		return
	}

	state, message := controller.Status()
	writeJSON(w, http.StatusOK, statusResponse{Status: string(state), Message: message})
}

// Probe forces an immediate connectivity check against the sheet
// endpoint and reports the resulting state.
func Probe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if controller == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "sync is not configured")
		return
	}

	state, message := controller.Probe(r.Context())
	applog.Info(r.Context(), "manual connection probe", "status", string(state))
	writeJSON(w, http.StatusOK, statusResponse{Status: string(state), Message: message})
}
