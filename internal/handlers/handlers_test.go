package handlers

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hppcalc/internal/cache"
	"hppcalc/internal/sheets"
	"hppcalc/internal/syncer"
	"hppcalc/models"
)

func withTestDatabase(t *testing.T) *gorm.DB {
	t.Helper()
	original := database
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "handlers.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite database: %v", err)
	}
	if err := db.AutoMigrate(&models.CachedMenu{}, &models.PriceListItem{}); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}
	database = db
	t.Cleanup(func() {
		database = original
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func withTestSessionManager(t *testing.T) *scs.SessionManager {
	t.Helper()
	original := sessionManager
	sm := scs.New()
	sessionManager = sm
	t.Cleanup(func() { sessionManager = original })
	return sm
}

// withTestController wires the handlers against a fake sheet endpoint
// plus a temp sqlite cache. A nil handler leaves the controller in
// permanent local-only mode.
func withTestController(t *testing.T, handler http.HandlerFunc) *syncer.Syncer {
	t.Helper()
	original := controller

	var client *sheets.Client
	if handler != nil {
		srv := httptest.NewServer(handler)
		t.Cleanup(srv.Close)
		var err error
		client, err = sheets.NewClient(sheets.Config{BaseURL: srv.URL, Timeout: 2 * time.Second})
		if err != nil {
			t.Fatalf("failed to build sheets client: %v", err)
		}
	}

	db := withTestDatabase(t)
	s := syncer.New(client, cache.NewStore(db, 10), time.Minute)
	controller = s
	t.Cleanup(func() {
		controller = original
		s.Stop()
	})
	return s
}

func sessionRequest(t *testing.T, sm *scs.SessionManager, req *http.Request) *http.Request {
	t.Helper()
	ctx, err := sm.Load(req.Context(), "")
	if err != nil {
		t.Fatalf("failed to load session context: %v", err)
	}
	return req.WithContext(ctx)
}
