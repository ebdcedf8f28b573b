package session

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestSession_StartsLocked(t *testing.T) {
	s := New(tempStore(t))

	if s.State() != Locked {
		t.Error("expected a fresh session to be locked")
	}
	if _, ok := s.Token(); ok {
		t.Error("expected no token from a locked session")
	}
}

func TestSession_LoginUnlocks(t *testing.T) {
	s := New(tempStore(t))

	if err := s.SetToken("abc"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.State() != Unlocked {
		t.Error("expected session to be unlocked after SetToken")
	}
	token, ok := s.Token()
	if !ok || token != "abc" {
		t.Errorf("expected token abc, got %q (ok=%t)", token, ok)
	}
}

func TestSession_LogoutLocks(t *testing.T) {
	s := New(tempStore(t))

	if err := s.SetToken("abc"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.State() != Locked {
		t.Error("expected session to be locked after Clear")
	}
}

func TestSession_RestoresPersistedToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auth.json")
	store := NewStore(path)
	if err := store.Save("persisted"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A new process reading the same path comes up unlocked.
	s := New(NewStore(path))
	if s.State() != Unlocked {
		t.Error("expected session restored from disk to be unlocked")
	}
	token, _ := s.Token()
	if token != "persisted" {
		t.Errorf("expected persisted token, got %q", token)
	}
}

func TestSession_RequireWhenLocked(t *testing.T) {
	s := New(tempStore(t))

	err := s.Require()
	if !errors.Is(err, ErrLocked) {
		t.Errorf("expected ErrLocked, got %v", err)
	}
}

func TestSession_RequireWhenUnlocked(t *testing.T) {
	s := New(tempStore(t))

	if err := s.SetToken("abc"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Require(); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestState_String(t *testing.T) {
	if Locked.String() != "locked" {
		t.Errorf("expected locked, got %s", Locked.String())
	}
	if Unlocked.String() != "unlocked" {
		t.Errorf("expected unlocked, got %s", Unlocked.String())
	}
}
