package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHomeRendersCalculator(t *testing.T) {
	withTestController(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	Home(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "text/html") {
		t.Fatalf("expected html response, got %q", ct)
	}
	body := w.Body.String()
	if !strings.Contains(body, "<title>HPP Calculator</title>") {
		t.Fatalf("missing title: %s", body)
	}
	if !strings.Contains(body, "menu-form") {
		t.Fatal("missing calculator form")
	}
}

func TestHomeRejectsUnknownPaths(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	w := httptest.NewRecorder()
	Home(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestHomeRestoresEditModeFromSession(t *testing.T) {
	withTestController(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("action") {
		case "get_menu":
			w.Write([]byte(`{"success": true, "menu": {"nama_menu": "Soto Ayam", "kategori": "MAKANAN"}}`))
		default:
			w.Write([]byte(`{"success": true, "menus": []}`))
		}
	})
	sm := withTestSessionManager(t)

	// Loading a menu marks the session as editing it.
	loadReq := sessionRequest(t, sm, httptest.NewRequest(http.MethodGet, "/api/menus/M3", nil))
	MenuResource(httptest.NewRecorder(), loadReq)

	homeReq := httptest.NewRequest(http.MethodGet, "/", nil)
	homeReq = homeReq.WithContext(loadReq.Context())
	w := httptest.NewRecorder()
	Home(w, homeReq)

	body := w.Body.String()
	if !strings.Contains(body, "Edit Menu") {
		t.Fatalf("expected edit mode after load: %s", body)
	}
	if !strings.Contains(body, "Soto Ayam") {
		t.Fatal("expected the loaded menu to populate the form")
	}
}

func TestHomeShowsFlashFromSession(t *testing.T) {
	withTestController(t, nil)
	sm := withTestSessionManager(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = sessionRequest(t, sm, req)
	sm.Put(req.Context(), sessionFlashKey, "\"Nasi Goreng\" saved locally.")

	w := httptest.NewRecorder()
	Home(w, req)

	if !strings.Contains(w.Body.String(), "saved locally.") {
		t.Fatal("flash message should render once")
	}
}
