// ABOUTME: Process-wide auth session with an explicit Locked/Unlocked state machine
// ABOUTME: Gates admin flows on token presence only; real enforcement is server-side

package session

import (
	"errors"
	"log/slog"
	"sync"
)

// ErrLocked is returned when an admin flow is attempted without a session token.
var ErrLocked = errors.New("not authenticated")

// State describes the auth guard: Locked when no token is held, Unlocked when
// one is. The guard never inspects token validity, only presence, so a stale
// or revoked token still reads as Unlocked until the server rejects it.
type State int

const (
	Locked State = iota
	Unlocked
)

func (s State) String() string {
	if s == Unlocked {
		return "unlocked"
	}
	return "locked"
}

// Session is the process-wide auth context. It is created once at startup,
// reading any persisted token, and injected into the API client and commands
// rather than read from ambient globals. SetToken and Clear are the only
// transitions.
type Session struct {
	mu    sync.RWMutex
	store *Store
	token string
}

// New builds a session, loading any previously persisted token.
func New(store *Store) *Session {
	s := &Session{store: store}
	if token, ok := store.Read(); ok {
		s.token = token
		slog.Debug("Session restored from persisted token")
	}
	return s
}

// State reports the current guard state.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" {
		return Locked
	}
	return Unlocked
}

// Token returns the current bearer token, or false when Locked.
func (s *Session) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" {
		return "", false
	}
	return s.token, true
}

// SetToken stores a token from a successful login, transitioning to Unlocked.
func (s *Session) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Save(token); err != nil {
		return err
	}
	s.token = token
	return nil
}

// Clear removes the token, transitioning to Locked. This is the logout path;
// the session never clears itself on server-side rejection unless the client
// is explicitly configured to do so.
func (s *Session) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Clear(); err != nil {
		return err
	}
	s.token = ""
	return nil
}

// Require returns ErrLocked unless a token is held. Admin commands call this
// before rendering anything protected.
func (s *Session) Require() error {
	if s.State() == Locked {
		return ErrLocked
	}
	return nil
}
