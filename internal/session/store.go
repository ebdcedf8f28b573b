// ABOUTME: File-backed persistence for the admin bearer token
// ABOUTME: Stores a single opaque token as JSON with restrictive permissions

package session

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// storedAuth is the on-disk shape, matching the login response field.
type storedAuth struct {
	AccessToken string `json:"accessToken"`
}

// Store persists at most one bearer token at a fixed path. The token is
// written as-is: no expiry, rotation, or encryption.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Save persists the token, overwriting any prior one.
func (s *Store) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	data, err := json.Marshal(storedAuth{AccessToken: token})
	if err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}

	slog.Debug("Token saved", "path", s.path)
	return nil
}

// Read returns the stored token, or false when none is present.
// An unreadable or malformed file counts as absence.
func (s *Store) Read() (string, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Debug("Token file unreadable", "path", s.path, "error", err)
		}
		return "", false
	}

	var auth storedAuth
	if err := json.Unmarshal(data, &auth); err != nil {
		slog.Debug("Token file malformed", "path", s.path, "error", err)
		return "", false
	}

	if auth.AccessToken == "" {
		return "", false
	}
	return auth.AccessToken, true
}

// Clear removes the token. Removing an already-absent token is a no-op.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove token file: %w", err)
	}
	return nil
}
