package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestStatusReportsWithoutNetwork(t *testing.T) {
	var hits int
	withTestController(t, func(w http.ResponseWriter, r *http.Request) {
		hits++
		json.NewEncoder(w).Encode(map[string]any{"success": true})
	})

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	w := httptest.NewRecorder()
	Status(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if hits != 0 {
		t.Fatalf("status must not touch the endpoint, saw %d calls", hits)
	}

	var resp statusResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "checking" {
		t.Fatalf("expected initial state checking, got %q", resp.Status)
	}
}

func TestProbeChecksTheEndpoint(t *testing.T) {
	withTestController(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": true, "sheet_count": 4})
	})

	req := httptest.NewRequest(http.MethodPost, "/api/probe", nil)
	w := httptest.NewRecorder()
	Probe(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp statusResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "connected" {
		t.Fatalf("expected connected, got %q", resp.Status)
	}
}

func TestProbeRejectsGet(t *testing.T) {
	withTestController(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/probe", nil)
	w := httptest.NewRecorder()
	Probe(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", w.Code)
	}
}

func TestStatusUnconfigured(t *testing.T) {
	original := controller
	controller = nil
	t.Cleanup(func() { controller = original })

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	w := httptest.NewRecorder()
	Status(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
}
