package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hppcalc/internal/cache"
	"hppcalc/internal/handlers"
	"hppcalc/internal/sheets"
	"hppcalc/internal/syncer"
	"hppcalc/models"
)

func newTestServer(t *testing.T, sheetHandler http.HandlerFunc) *Server {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "server.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	if err := db.AutoMigrate(&models.CachedMenu{}, &models.PriceListItem{}); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}

	var client *sheets.Client
	if sheetHandler != nil {
		sheetSrv := httptest.NewServer(sheetHandler)
		t.Cleanup(sheetSrv.Close)
		client, err = sheets.NewClient(sheets.Config{BaseURL: sheetSrv.URL, Timeout: 2 * time.Second})
		if err != nil {
			t.Fatalf("failed to build sheets client: %v", err)
		}
	}

	controller := syncer.New(client, cache.NewStore(db, 10), time.Minute)
	t.Cleanup(controller.Stop)

	srv := New(Config{Addr: ":8080", Session: SessionConfig{CookieSecure: true}, Database: db, Syncer: controller})
	t.Cleanup(func() {
		handlers.Configure(nil, nil, nil)
	})
	return srv
}

func TestNewAppliesSessionDefaults(t *testing.T) {
	srv := newTestServer(t, nil)

	if srv.httpServer.Addr != ":8080" {
		t.Fatalf("expected server addr :8080, got %q", srv.httpServer.Addr)
	}
	if srv.httpServer.Handler == nil {
		t.Fatal("expected handler to be configured")
	}
}

func TestHealthEndpointThroughHandlerChain(t *testing.T) {
	srv := newTestServer(t, nil)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	srv.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"status":"ok"`) {
		t.Fatalf("unexpected body: %s", rr.Body.String())
	}
}

func TestSaveFlowEndToEnd(t *testing.T) {
	var saw struct {
		action string
	}
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			var payload sheets.MenuPayload
			json.NewDecoder(r.Body).Decode(&payload)
			saw.action = payload.Action
		}
		json.NewEncoder(w).Encode(map[string]any{"success": true, "sheet_count": 4})
	})

	body := `{
		"menu_name": "Nasi Goreng",
		"target_qty": "4",
		"ingredients": [
			{"name": "Beras", "usage": "360", "purchase_price": "25000", "purchase_unit": "1000"}
		],
		"packaging": {"name": "Packaging", "cost": "14000", "quantity": "1"}
	}`

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/menus", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	srv.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if saw.action != sheets.ActionSaveMenu {
		t.Fatalf("endpoint saw action %q, want save_menu", saw.action)
	}

	var result syncer.Result
	if err := json.Unmarshal(rr.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode result: %v", err)
	}
	if result.Kind != syncer.ResultSaved || !result.ClearForm {
		t.Fatalf("result = %+v", result)
	}
}

func TestRouterServesCalculatorPage(t *testing.T) {
	srv := newTestServer(t, nil)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	srv.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "menu-form") {
		t.Fatal("expected calculator form on the home page")
	}
}

func TestRouterCalculateWithoutPersistence(t *testing.T) {
	srv := newTestServer(t, nil)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/calculate", strings.NewReader(`{"menu_name":"x"}`))
	srv.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}
