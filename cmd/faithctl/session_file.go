package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gdugdh24/faithmatch-backend/internal/client/api"
)

type storedSession struct {
	Token     string    `yaml:"token"`
	ExpiresAt time.Time `yaml:"expires_at"`
	UserID    string    `yaml:"user_id,omitempty"`
	Email     string    `yaml:"email,omitempty"`
}

func saveSession(path string, s *api.Session) error {
	stored := storedSession{Token: s.Token(), ExpiresAt: s.ExpiresAt()}
	if u := s.User(); u != nil {
		stored.UserID = u.ID
		stored.Email = u.Email
	}
	data, err := yaml.Marshal(stored)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// loadSession returns nil when no usable session is stored.
func loadSession(path string) (*api.Session, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	var stored storedSession
	if err := yaml.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", path, err)
	}
	sess := api.NewSession(stored.Token, stored.ExpiresAt)
	if !sess.Active(time.Now()) {
		return nil, nil
	}
	return sess, nil
}

func removeSession(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}
