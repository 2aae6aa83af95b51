// Package settings holds the process-wide mutable configuration:
// TTR thresholds, per-category targets, WhatsApp templates and the
// editable dropdown enumerations.
package settings

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/sitiket/tiketops/internal/domain"
)

// Persisted blob keys in the key-value collaborator.
const (
	SettingsKey = "sitiket:settings"
	OptionsKey  = "sitiket:dropdown_options"
)

// KV is the persistence collaborator. Load returns (nil, nil) when the
// key is absent.
type KV interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
}

// Broadcaster fans a change notification out to other processes.
// Delivery is best-effort.
type Broadcaster interface {
	Broadcast(ctx context.Context, key string) error
}

// Store is the single shared holder of settings and dropdown options.
// Reads return copies; saves replace the whole object atomically and
// notify subscribers, so no caller ever observes a partial update or a
// stale snapshot across a save.
type Store struct {
	kv        KV
	broadcast Broadcaster
	logger    *zap.Logger

	mu       sync.RWMutex
	settings domain.AppSettings
	options  domain.DropdownOptions
	subs     []func()
}

// NewStore builds a store primed with defaults. The broadcaster may be
// nil when cross-process fan-out is not wired.
func NewStore(kv KV, broadcast Broadcaster, logger *zap.Logger) *Store {
	return &Store{
		kv:        kv,
		broadcast: broadcast,
		logger:    logger,
		settings:  DefaultSettings(),
		options:   DefaultOptions(),
	}
}

// Load reads both persisted blobs, merging stored values over the
// defaults so fields introduced by later versions still get a default.
// Absence and corrupt JSON both fall back silently to defaults.
func (s *Store) Load(ctx context.Context) {
	settings := DefaultSettings()
	if s.loadInto(ctx, SettingsKey, &settings) {
		s.mu.Lock()
		s.settings = settings
		s.mu.Unlock()
	}

	options := DefaultOptions()
	if s.loadInto(ctx, OptionsKey, &options) {
		s.mu.Lock()
		s.options = options
		s.mu.Unlock()
	}
	s.notify()
}

func (s *Store) loadInto(ctx context.Context, key string, target any) bool {
	raw, err := s.kv.Load(ctx, key)
	if err != nil {
		s.logger.Warn("settings load failed; using defaults",
			zap.String("key", key), zap.Error(err))
		return false
	}
	if raw == nil {
		return false
	}
	if err := json.Unmarshal(raw, target); err != nil {
		s.logger.Warn("settings blob corrupt; using defaults",
			zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// Settings returns a copy of the current configuration.
func (s *Store) Settings() domain.AppSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings.Clone()
}

// Options returns a copy of the current dropdown enumerations.
func (s *Store) Options() domain.DropdownOptions {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.options
}

// SaveSettings persists and publishes a whole-object replacement.
func (s *Store) SaveSettings(ctx context.Context, settings domain.AppSettings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return err
	}
	if err := s.kv.Save(ctx, SettingsKey, raw); err != nil {
		return err
	}
	s.mu.Lock()
	s.settings = settings.Clone()
	s.mu.Unlock()
	s.notify()
	s.announce(ctx, SettingsKey)
	return nil
}

// SaveOptions persists and publishes the dropdown enumerations.
func (s *Store) SaveOptions(ctx context.Context, options domain.DropdownOptions) error {
	raw, err := json.Marshal(options)
	if err != nil {
		return err
	}
	if err := s.kv.Save(ctx, OptionsKey, raw); err != nil {
		return err
	}
	s.mu.Lock()
	s.options = options
	s.mu.Unlock()
	s.notify()
	s.announce(ctx, OptionsKey)
	return nil
}

// ResetSettings restores and persists the hard-coded defaults.
func (s *Store) ResetSettings(ctx context.Context) error {
	return s.SaveSettings(ctx, DefaultSettings())
}

// Subscribe registers an in-process callback fired after every load or
// save. Callbacks must re-read via Settings()/Options().
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// Reload re-reads the persisted blobs; used when a remote change
// notification arrives.
func (s *Store) Reload(ctx context.Context) {
	s.Load(ctx)
}

func (s *Store) notify() {
	s.mu.RLock()
	subs := append([]func(){}, s.subs...)
	s.mu.RUnlock()
	for _, fn := range subs {
		fn()
	}
}

func (s *Store) announce(ctx context.Context, key string) {
	if s.broadcast == nil {
		return
	}
	if err := s.broadcast.Broadcast(ctx, key); err != nil {
		s.logger.Warn("settings broadcast failed", zap.String("key", key), zap.Error(err))
	}
}
