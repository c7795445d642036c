package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/a-h/templ"
	"github.com/alexedwards/scs/v2"
	"gorm.io/gorm"

	applog "hppcalc/internal/log"
	"hppcalc/internal/syncer"
)

const (
	sessionFlashKey = "ui:flash"
	sessionEditKey  = "ui:edit-menu"
)

var (
	sessionManager *scs.SessionManager
	database       *gorm.DB
	controller     *syncer.Syncer
)

// Configure installs the shared dependencies used by the HTTP handlers.
func Configure(sm *scs.SessionManager, db *gorm.DB, s *syncer.Syncer) {
	sessionManager = sm
	database = db
	controller = s
}

// flashMessage pops the one-shot notification stored by the previous
// request, when sessions are wired.
func flashMessage(r *http.Request) string {
	if sessionManager == nil {
		return ""
	}
	return sessionManager.PopString(r.Context(), sessionFlashKey)
}

func setFlash(r *http.Request, message string) {
	if sessionManager == nil || message == "" {
		return
	}
	sessionManager.Put(r.Context(), sessionFlashKey, message)
}

// editModeID returns the menu id the session is currently editing.
func editModeID(r *http.Request) string {
	if sessionManager == nil {
		return ""
	}
	return sessionManager.GetString(r.Context(), sessionEditKey)
}

func setEditMode(r *http.Request, menuID string) {
	if sessionManager == nil || menuID == "" {
		return
	}
	sessionManager.Put(r.Context(), sessionEditKey, menuID)
}

func clearEditMode(r *http.Request) {
	if sessionManager == nil {
		return
	}
	sessionManager.Remove(r.Context(), sessionEditKey)
}

func renderComponent(w http.ResponseWriter, r *http.Request, component templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := component.Render(r.Context(), w); err != nil {
		applog.Error(r.Context(), "failed to render component", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		applog.Error(context.Background(), "failed to encode json response", "error", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
