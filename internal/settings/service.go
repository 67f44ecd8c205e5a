package settings

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/go-playground/validator/v10"
)

var ErrInvalidPreloadTime = errors.New("preload_time must be HH:MM in 24-hour format")

// DefaultPreloadTime is used until an admin configures one.
const DefaultPreloadTime = "00:00"

// Settings is an immutable snapshot of the whole configuration surface.
// Handlers and the access gate read one snapshot per request so that
// api_enabled and api_key are always observed together.
type Settings struct {
	APIEnabled     bool   `json:"api_enabled"`
	PreloadEnabled bool   `json:"preload_enabled"`
	PreloadTime    string `json:"preload_time"`
	APIKey         string `json:"-"`
}

// Update is the admin-editable subset of Settings. The API key is rotated
// through its own endpoint, never set directly.
type Update struct {
	APIEnabled     bool   `json:"api_enabled"`
	PreloadEnabled bool   `json:"preload_enabled"`
	PreloadTime    string `json:"preload_time" validate:"required,datetime=15:04"`
}

type Service struct {
	repo     Repository
	validate *validator.Validate

	mu      sync.RWMutex
	current Settings
	subs    []func(Settings)
}

func NewService(repo Repository) *Service {
	return &Service{
		repo:     repo,
		validate: validator.New(),
		current:  Settings{PreloadTime: DefaultPreloadTime},
	}
}

// Load reads every known key from the repository and replaces the snapshot.
// Missing keys keep their zero value, except preload_time which falls back
// to DefaultPreloadTime.
func (s *Service) Load(ctx context.Context) error {
	next := Settings{PreloadTime: DefaultPreloadTime}

	if v, err := s.repo.GetSetting(ctx, KeyAPIEnabled); err == nil {
		next.APIEnabled, _ = strconv.ParseBool(v)
	}
	if v, err := s.repo.GetSetting(ctx, KeyPreloadEnabled); err == nil {
		next.PreloadEnabled, _ = strconv.ParseBool(v)
	}
	if v, err := s.repo.GetSetting(ctx, KeyPreloadTime); err == nil && v != "" {
		next.PreloadTime = v
	}
	if v, err := s.repo.GetSetting(ctx, KeyAPIKey); err == nil {
		next.APIKey = v
	}

	s.replace(next)
	return nil
}

// Snapshot returns the current settings by value.
func (s *Service) Snapshot() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Subscribe registers fn to be called with the new snapshot after every
// successful change. Subscriptions are wired once at startup.
func (s *Service) Subscribe(fn func(Settings)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// Apply validates and persists an admin update, then refreshes the snapshot
// and notifies subscribers.
func (s *Service) Apply(ctx context.Context, upd Update) (Settings, error) {
	if err := s.validate.Struct(upd); err != nil {
		return Settings{}, ErrInvalidPreloadTime
	}

	// Keys are written in a fixed order. A mid-write failure leaves the
	// snapshot untouched, so running behavior stays consistent; the store is
	// reconciled on the admin's retry.
	pairs := []struct{ key, value string }{
		{KeyAPIEnabled, strconv.FormatBool(upd.APIEnabled)},
		{KeyPreloadEnabled, strconv.FormatBool(upd.PreloadEnabled)},
		{KeyPreloadTime, upd.PreloadTime},
	}
	for _, p := range pairs {
		if err := s.repo.SetSetting(ctx, p.key, p.value); err != nil {
			return Settings{}, fmt.Errorf("persist %s: %w", p.key, err)
		}
	}

	s.mu.Lock()
	next := s.current
	next.APIEnabled = upd.APIEnabled
	next.PreloadEnabled = upd.PreloadEnabled
	next.PreloadTime = upd.PreloadTime
	s.current = next
	subs := s.subs
	s.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
	return next, nil
}

// SetAPIKey persists a freshly issued key and refreshes the snapshot,
// invalidating the previous key immediately.
func (s *Service) SetAPIKey(ctx context.Context, key string) error {
	if err := s.repo.SetSetting(ctx, KeyAPIKey, key); err != nil {
		return err
	}

	s.mu.Lock()
	next := s.current
	next.APIKey = key
	s.current = next
	subs := s.subs
	s.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
	return nil
}

func (s *Service) replace(next Settings) {
	s.mu.Lock()
	s.current = next
	subs := s.subs
	s.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
}
