package apikey

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/mateusz-zadorozny/woocommerce-order-stats-mpress/internal/settings"
)

var (
	ErrAPIDisabled = errors.New("API is currently disabled.")
	ErrInvalidKey  = errors.New("Invalid API Key.")
)

const keyBytes = 16

type Service struct {
	settings *settings.Service
}

func NewService(s *settings.Service) *Service {
	return &Service{settings: s}
}

// Authorize gates a request. Both the enabled flag and the stored key come
// from one snapshot so a concurrent settings change cannot be observed
// half-applied. The comparison is constant-time.
func (s *Service) Authorize(suppliedKey string) error {
	cfg := s.settings.Snapshot()
	if !cfg.APIEnabled {
		return ErrAPIDisabled
	}
	// An empty stored key means no key was ever issued; nothing matches it.
	if cfg.APIKey == "" {
		return ErrInvalidKey
	}
	if subtle.ConstantTimeCompare([]byte(suppliedKey), []byte(cfg.APIKey)) != 1 {
		return ErrInvalidKey
	}
	return nil
}

// IssueNewKey generates a random key, persists it as the active one and
// returns it. The previous key stops working the moment the new one is
// stored.
func (s *Service) IssueNewKey(ctx context.Context) (string, error) {
	buf := make([]byte, keyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate api key: %w", err)
	}
	key := hex.EncodeToString(buf)

	if err := s.settings.SetAPIKey(ctx, key); err != nil {
		return "", fmt.Errorf("store api key: %w", err)
	}
	return key, nil
}
