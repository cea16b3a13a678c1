// Package prefs persists the selected timezones and custom labels.
package prefs

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/hay-kot/tzc/internal/core/kv"
	"github.com/hay-kot/tzc/internal/core/zone"
	"github.com/rs/zerolog"
)

const (
	Namespace = "prefs"
	Key       = "timezone-compare-data"
)

// DefaultZones is the selection used on first run and whenever stored data is
// unusable.
var DefaultZones = []zone.ID{"Europe/Berlin", "America/New_York", "Asia/Singapore"}

// Data is the persisted document. SelectedTimezones never contains the
// viewer's local zone.
type Data struct {
	SelectedTimezones []zone.ID          `json:"selectedTimezones"`
	CustomLabels      map[zone.ID]string `json:"customLabels"`
	LastBaseTime      *time.Time         `json:"lastBaseTime,omitempty"`
}

// Defaults returns a fresh Data holding zones and no labels.
func Defaults(zones []zone.ID) Data {
	return Data{
		SelectedTimezones: slices.Clone(zones),
		CustomLabels:      map[zone.ID]string{},
	}
}

// Store loads and saves Data under a single KV key.
type Store struct {
	kv       *kv.TypedKV[Data]
	defaults []zone.ID
	logger   zerolog.Logger
}

// NewStore creates a store over backend. An empty defaults uses DefaultZones.
func NewStore(backend kv.KV, defaults []zone.ID, logger zerolog.Logger) *Store {
	if len(defaults) == 0 {
		defaults = DefaultZones
	}
	return &Store{
		kv:       kv.Scoped[Data](backend, Namespace),
		defaults: slices.Clone(defaults),
		logger:   logger,
	}
}

// Load returns the stored preferences. It never fails: a missing, unreadable,
// malformed or empty document yields the defaults.
func (s *Store) Load(ctx context.Context) Data {
	data, err := s.kv.Get(ctx, Key)
	switch {
	case errors.Is(err, kv.ErrNotFound):
		s.logger.Debug().Msg("no stored preferences, using defaults")
		return Defaults(s.defaults)
	case err != nil:
		s.logger.Warn().Err(err).Msg("failed to load preferences, using defaults")
		return Defaults(s.defaults)
	case len(data.SelectedTimezones) == 0:
		s.logger.Warn().Msg("stored preferences have no timezones, using defaults")
		return Defaults(s.defaults)
	}

	if data.CustomLabels == nil {
		data.CustomLabels = map[zone.ID]string{}
	}
	return data
}

// Save replaces the stored preferences.
func (s *Store) Save(ctx context.Context, data Data) error {
	if err := s.kv.Set(ctx, Key, data); err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}

// Stored reports whether a preferences document exists. Load falls back to
// the defaults when it does not.
func (s *Store) Stored(ctx context.Context) (bool, error) {
	return s.kv.Has(ctx, Key)
}

// Reset deletes the stored document so the next Load returns the defaults.
func (s *Store) Reset(ctx context.Context) error {
	if err := s.kv.Delete(ctx, Key); err != nil {
		return fmt.Errorf("reset preferences: %w", err)
	}
	return nil
}

// Location is the full key the document is stored under.
func (s *Store) Location() string {
	return s.kv.Key(Key)
}
