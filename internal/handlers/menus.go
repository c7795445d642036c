package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	applog "hppcalc/internal/log"
	"hppcalc/internal/syncer"
	"hppcalc/models"
)

type menuListResponse struct {
	Source string               `json:"source"`
	Menus  []syncer.MenuSummary `json:"menus"`
}

type menuLoadResponse struct {
	Result syncer.Result `json:"result"`
	Recipe models.Recipe `json:"recipe"`
}

// MenuResource handles REST-style interactions for saved menus. Save
// and delete degrade to the local cache when the sheet endpoint is
// unreachable, so the failure modes surface as result kinds rather
// than transport errors.
func MenuResource(w http.ResponseWriter, r *http.Request) {
	if controller == nil {
		applog.Debug(r.Context(), "menu request without sync controller")
		writeJSONError(w, http.StatusServiceUnavailable, "sync is not configured")
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api/menus")
	path = strings.Trim(path, "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			listMenus(w, r)
		case http.MethodPost:
			saveMenu(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	menuID := strings.SplitN(path, "/", 2)[0]

	switch r.Method {
	case http.MethodGet:
		loadMenu(w, r, menuID)
	case http.MethodDelete:
		deleteMenu(w, r, menuID)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func listMenus(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("query"))
	category := strings.TrimSpace(r.URL.Query().Get("category"))

	summaries, source := controller.List(r.Context(), query, category)
	writeJSON(w, http.StatusOK, menuListResponse{Source: source, Menus: summaries})
}

func saveMenu(w http.ResponseWriter, r *http.Request) {
	var recipe models.Recipe
	if err := json.NewDecoder(r.Body).Decode(&recipe); err != nil {
		applog.Debug(r.Context(), "invalid menu save payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	result := controller.Save(r.Context(), recipe)
	setFlash(r, result.Message)
	if result.ClearForm {
		clearEditMode(r)
	}
	writeJSON(w, resultStatus(result), result)
}

func loadMenu(w http.ResponseWriter, r *http.Request, menuID string) {
	recipe, result := controller.Load(r.Context(), menuID)
	if result.Kind == syncer.ResultFailed {
		writeJSON(w, http.StatusBadGateway, result)
		return
	}
	setEditMode(r, menuID)
	writeJSON(w, http.StatusOK, menuLoadResponse{Result: result, Recipe: recipe})
}

func deleteMenu(w http.ResponseWriter, r *http.Request, menuID string) {
	confirmed := r.URL.Query().Get("confirm") == "true"
	result := controller.Delete(r.Context(), menuID, confirmed)
	setFlash(r, result.Message)
	if result.Kind == syncer.ResultDeleted && editModeID(r) == menuID {
		clearEditMode(r)
	}
	writeJSON(w, resultStatus(result), result)
}

// resultStatus maps save/delete outcomes onto HTTP status codes. A
// local-fallback save is still a success from the client's view.
func resultStatus(result syncer.Result) int {
	switch result.Kind {
	case syncer.ResultSaved, syncer.ResultLocalFallback, syncer.ResultDeleted:
		return http.StatusOK
	case syncer.ResultInvalid:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}
