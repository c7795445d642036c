// Package syncer orchestrates persistence for the calculator:
// connectivity probing against the sheet endpoint, save/update/delete
// /load/list of menu records, and the local-cache fallback that keeps
// every operation usable offline. Nothing in this package fails hard;
// remote trouble degrades to informational local-only results.
package syncer

import (
	"context"
	"errors"
	"sync"
	"time"

	"hppcalc/internal/cache"
	applog "hppcalc/internal/log"
	"hppcalc/internal/pricing"
	"hppcalc/internal/sheets"
	"hppcalc/models"
)

// Connection states reported to the UI badge.
type Status string

const (
	StatusChecking  Status = "checking"
	StatusConnected Status = "connected"
	StatusOffline   Status = "error"
)

// Result kinds for save/delete/load operations.
type ResultKind string

const (
	ResultSaved         ResultKind = "saved"
	ResultLocalFallback ResultKind = "local"
	ResultInvalid       ResultKind = "invalid"
	ResultDeleted       ResultKind = "deleted"
	ResultFailed        ResultKind = "failed"
)

// Result is the uniform outcome of a sync operation: a kind the
// caller can branch on plus a human-readable status message.
type Result struct {
	Kind      ResultKind `json:"kind"`
	Message   string     `json:"message"`
	MenuID    string     `json:"menu_id,omitempty"`
	LocalID   string     `json:"local_id,omitempty"`
	ClearForm bool       `json:"clear_form,omitempty"`
}

// minSheetCount is the number of sheets the deployment schema needs;
// a ping reporting fewer triggers the initialize action.
const minSheetCount = 4

// Syncer owns the remote client, the local cache, and the connection
// state. A nil client means permanent local-only mode.
type Syncer struct {
	client *sheets.Client
	cache  *cache.Store

	mu            sync.RWMutex
	status        Status
	statusMessage string
	checkedAt     time.Time

	probeInterval time.Duration
	stopChan      chan struct{}
	stopOnce      sync.Once
}

// New builds a Syncer. probeInterval bounds the background re-check
// cadence; non-positive values fall back to two minutes.
func New(client *sheets.Client, store *cache.Store, probeInterval time.Duration) *Syncer {
	if probeInterval <= 0 {
		probeInterval = 2 * time.Minute
	}
	return &Syncer{
		client:        client,
		cache:         store,
		status:        StatusChecking,
		statusMessage: "Checking connection...",
		probeInterval: probeInterval,
		stopChan:      make(chan struct{}),
	}
}

// Status returns the current connection state and its message.
func (s *Syncer) Status() (Status, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status, s.statusMessage
}

func (s *Syncer) setStatus(status Status, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
	s.statusMessage = message
	s.checkedAt = time.Now()
}

// Probe pings the endpoint and updates the connection state. Any
// error means offline; the calculator keeps working either way.
func (s *Syncer) Probe(ctx context.Context) (Status, string) {
	if s.client == nil {
		s.setStatus(StatusOffline, "No sheet endpoint configured. Data will be saved locally.")
		return s.Status()
	}

	s.setStatus(StatusChecking, "Testing connection...")

	envelope, err := s.client.Ping(ctx)
	if err != nil {
		applog.Warn(ctx, "connection probe failed", "error", err)
		s.setStatus(StatusOffline, "Using offline mode. Data will be saved locally.")
		return s.Status()
	}

	s.setStatus(StatusConnected, "Connected to Google Sheets.")

	if envelope.SheetCount > 0 && envelope.SheetCount < minSheetCount {
		if _, err := s.client.Initialize(ctx); err != nil {
			applog.Warn(ctx, "sheet initialization failed", "error", err)
		} else {
			applog.Info(ctx, "sheet schema initialized", "previous_sheet_count", envelope.SheetCount)
		}
	}

	return s.Status()
}

// StartMonitor launches the background re-probe loop: while offline,
// connectivity is re-checked on the configured interval. A manual
// probe may overlap a scheduled one; the worst case is one redundant
// ping.
func (s *Syncer) StartMonitor(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.probeInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if status, _ := s.Status(); status == StatusConnected {
					continue
				}
				probeCtx, cancel := context.WithTimeout(ctx, s.probeInterval/2)
				s.Probe(probeCtx)
				cancel()
			case <-s.stopChan:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop terminates the background monitor.
func (s *Syncer) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
	})
}

// Save validates the recipe, builds the flattened payload, and
// persists it: remotely when possible, into the local cache otherwise.
// Validation failures issue no network call. A successful brand-new
// save asks the caller to clear the form; updates keep their state.
func (s *Syncer) Save(ctx context.Context, recipe models.Recipe) Result {
	recipe.Normalize()

	if result, ok := validateRecipe(recipe); !ok {
		return result
	}

	payload := BuildPayload(recipe, pricing.Compute(recipe))
	update := recipe.EditMode()

	if s.client == nil {
		return s.fallback(ctx, payload, "No sheet endpoint configured.")
	}

	envelope, err := s.client.SaveMenu(ctx, payload)
	if err != nil {
		applog.Warn(ctx, "remote save failed, falling back to cache",
			"menu", payload.MenuName, "update", update, "error", err)
		return s.fallback(ctx, payload, remoteFailureReason(err))
	}

	entry := s.backup(ctx, payload)
	result := Result{
		Kind:      ResultSaved,
		Message:   "\"" + payload.MenuName + "\" saved successfully to Google Sheets.",
		MenuID:    payload.MenuID,
		ClearForm: !update,
	}
	if update {
		result.Message = "\"" + payload.MenuName + "\" updated successfully."
	}
	if entry != nil {
		result.LocalID = entry.LocalID
	}
	if envelope != nil && envelope.Version.String() != "" {
		applog.Debug(ctx, "remote save acknowledged", "menu", payload.MenuName, "version", envelope.Version.String())
	}
	return result
}

// fallback writes the payload into the local cache and reports the
// degraded-but-successful outcome.
func (s *Syncer) fallback(ctx context.Context, payload sheets.MenuPayload, reason string) Result {
	entry := s.backup(ctx, payload)
	if entry == nil {
		return Result{
			Kind:    ResultFailed,
			Message: "Could not save \"" + payload.MenuName + "\": " + reason,
		}
	}
	return Result{
		Kind:    ResultLocalFallback,
		Message: "\"" + payload.MenuName + "\" saved locally. It will sync once the connection returns. " + reason,
		LocalID: entry.LocalID,
	}
}

// backup best-effort writes the payload into the cache; errors are
// logged, never propagated.
func (s *Syncer) backup(ctx context.Context, payload sheets.MenuPayload) *models.CachedMenu {
	if s.cache == nil {
		return nil
	}
	entry, err := s.cache.Put(ctx, payload)
	if err != nil {
		applog.Error(ctx, "local cache write failed", "menu", payload.MenuName, "error", err)
		return nil
	}
	return entry
}

// Delete removes a remote record. It refuses to act without explicit
// confirmation, and drops any cached copy once the remote accepts.
func (s *Syncer) Delete(ctx context.Context, menuID string, confirmed bool) Result {
	if !confirmed {
		return Result{Kind: ResultInvalid, Message: "Deletion requires explicit confirmation."}
	}
	if s.client == nil {
		return Result{Kind: ResultFailed, Message: "Cannot delete: no sheet endpoint configured."}
	}

	if _, err := s.client.DeleteMenu(ctx, menuID); err != nil {
		applog.Warn(ctx, "remote delete failed", "menu_id", menuID, "error", err)
		return Result{Kind: ResultFailed, Message: "Failed to delete menu: " + remoteFailureReason(err)}
	}

	if s.cache != nil {
		if err := s.cache.Remove(ctx, menuID); err != nil {
			applog.Error(ctx, "cache cleanup after delete failed", "menu_id", menuID, "error", err)
		}
	}

	return Result{Kind: ResultDeleted, Message: "Menu deleted.", MenuID: menuID}
}

// Load fetches one record and maps it back onto the local recipe
// shape, switching the form into edit mode. Malformed sub-structures
// degrade to safe defaults rather than failing the load.
func (s *Syncer) Load(ctx context.Context, menuID string) (models.Recipe, Result) {
	if s.client == nil {
		return models.NewRecipe(), Result{Kind: ResultFailed, Message: "Cannot load: no sheet endpoint configured."}
	}

	envelope, err := s.client.Menu(ctx, menuID)
	if err != nil || envelope == nil || envelope.Menu == nil {
		applog.Warn(ctx, "remote load failed", "menu_id", menuID, "error", err)
		return models.NewRecipe(), Result{Kind: ResultFailed, Message: "Failed to load menu."}
	}

	recipe := recipeFromRecord(menuID, envelope.Menu)
	return recipe, Result{
		Kind:    ResultSaved,
		Message: "Loaded \"" + recipe.MenuName + "\" for editing.",
		MenuID:  menuID,
	}
}

// List fetches menu summaries, filtered when query or category is
// set. A remote failure falls back to the local cache's recent list.
func (s *Syncer) List(ctx context.Context, query, category string) ([]MenuSummary, string) {
	if s.client != nil {
		envelope, err := s.fetchList(ctx, query, category)
		if err == nil && envelope != nil {
			return summariesFromRecords(envelope.Menus), SourceSheets
		}
		applog.Warn(ctx, "remote list failed, using local cache", "error", err)
	}

	if s.cache == nil {
		return nil, SourceLocal
	}
	entries, err := s.cache.Recent(ctx)
	if err != nil {
		applog.Error(ctx, "local cache list failed", "error", err)
		return nil, SourceLocal
	}
	return summariesFromCache(entries), SourceLocal
}

func (s *Syncer) fetchList(ctx context.Context, query, category string) (*sheets.Envelope, error) {
	if query != "" || category != "" {
		return s.client.SearchMenus(ctx, query, category)
	}
	return s.client.Menus(ctx)
}

// remoteFailureReason keeps user-facing messages short while the logs
// carry the full error.
func remoteFailureReason(err error) string {
	switch {
	case errors.Is(err, sheets.ErrUnconfirmed):
		return "The sheet did not confirm the request."
	default:
		var remoteErr *sheets.RemoteError
		if errors.As(err, &remoteErr) {
			return remoteErr.Message
		}
		return "The sheet endpoint is unreachable."
	}
}
