// Package cache keeps the bounded most-recent list of menu snapshots.
// Every save writes here as a backup, and the list is what the UI
// falls back to when the sheet is unreachable.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hppcalc/internal/config"
	applog "hppcalc/internal/log"
	"hppcalc/internal/sheets"
	"hppcalc/models"
)

// Store is the gorm-backed snapshot list.
type Store struct {
	db    *gorm.DB
	limit int
	now   func() time.Time
}

// NewStore builds a Store with the configured entry cap. Out-of-range
// caps are clamped to the supported 10–50 window.
func NewStore(db *gorm.DB, limit int) *Store {
	if limit < config.MinCacheLimit {
		limit = config.MinCacheLimit
	}
	if limit > config.MaxCacheLimit {
		limit = config.MaxCacheLimit
	}
	return &Store{db: db, limit: limit, now: time.Now}
}

// Limit reports the configured entry cap.
func (s *Store) Limit() int {
	return s.limit
}

// Put prepends a snapshot built from the save payload. An existing
// entry with the same menu name is replaced rather than duplicated,
// and entries beyond the cap are dropped oldest-first.
func (s *Store) Put(ctx context.Context, payload sheets.MenuPayload) (*models.CachedMenu, error) {
	if s.db == nil {
		return nil, gorm.ErrInvalidDB
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("cache: encode payload: %w", err)
	}

	entry := &models.CachedMenu{
		LocalID:     "LOCAL_" + uuid.NewString(),
		MenuID:      payload.MenuID,
		MenuName:    payload.MenuName,
		Category:    payload.Category,
		Subcategory: payload.Subcategory,
		Brand:       payload.Brand,
		HPPPerUnit:  payload.HPPPerPiece,
		DineInPrice: payload.DineInPrice,
		GofoodPrice: payload.GofoodPrice,
		Payload:     string(raw),
		SavedAt:     s.now().UTC().Format(time.RFC3339),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if strings.TrimSpace(payload.MenuName) != "" {
			if err := tx.Where("menu_name = ?", payload.MenuName).Delete(&models.CachedMenu{}).Error; err != nil {
				return fmt.Errorf("cache: drop duplicate: %w", err)
			}
		}
		if err := tx.Create(entry).Error; err != nil {
			return fmt.Errorf("cache: create entry: %w", err)
		}
		return trim(tx, s.limit)
	})
	if err != nil {
		return nil, err
	}

	return entry, nil
}

func trim(tx *gorm.DB, limit int) error {
	var stale []uint
	err := tx.Model(&models.CachedMenu{}).
		Order("created_at DESC, id DESC").
		Offset(limit).
		Limit(-1).
		Pluck("id", &stale).Error
	if err != nil {
		return fmt.Errorf("cache: find stale entries: %w", err)
	}
	if len(stale) == 0 {
		return nil
	}
	if err := tx.Delete(&models.CachedMenu{}, stale).Error; err != nil {
		return fmt.Errorf("cache: trim: %w", err)
	}
	return nil
}

// Recent returns the cached snapshots most-recent-first.
func (s *Store) Recent(ctx context.Context) ([]models.CachedMenu, error) {
	if s.db == nil {
		return nil, gorm.ErrInvalidDB
	}

	var entries []models.CachedMenu
	err := s.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(s.limit).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("cache: list: %w", err)
	}
	return entries, nil
}

// Remove deletes every entry matching the remote menu id, used after
// a confirmed remote delete.
func (s *Store) Remove(ctx context.Context, menuID string) error {
	if s.db == nil {
		return gorm.ErrInvalidDB
	}
	if strings.TrimSpace(menuID) == "" {
		return nil
	}
	if err := s.db.WithContext(ctx).Where("menu_id = ?", menuID).Delete(&models.CachedMenu{}).Error; err != nil {
		return fmt.Errorf("cache: remove: %w", err)
	}
	return nil
}

// Payload decodes the stored save payload of one entry. Corrupt
// payloads degrade to a minimal payload built from the flattened
// columns instead of failing.
func (s *Store) Payload(ctx context.Context, entry models.CachedMenu) sheets.MenuPayload {
	var payload sheets.MenuPayload
	if err := json.Unmarshal([]byte(entry.Payload), &payload); err != nil {
		applog.Warn(ctx, "cached payload unreadable, using flattened columns", "local_id", entry.LocalID, "error", err)
		return sheets.MenuPayload{
			MenuID:      entry.MenuID,
			MenuName:    entry.MenuName,
			Category:    entry.Category,
			Subcategory: entry.Subcategory,
			Brand:       entry.Brand,
			HPPPerPiece: entry.HPPPerUnit,
			DineInPrice: entry.DineInPrice,
			GofoodPrice: entry.GofoodPrice,
			Source:      sheets.PayloadSource,
		}
	}
	return payload
}
