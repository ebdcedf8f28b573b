package session

import (
	"os"
	"path/filepath"
	"testing"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "weblog", "auth.json"))
}

func TestStore_SaveAndRead(t *testing.T) {
	s := tempStore(t)

	if err := s.Save("abc"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	token, ok := s.Read()
	if !ok {
		t.Fatal("expected a stored token")
	}
	if token != "abc" {
		t.Errorf("expected token abc, got %q", token)
	}
}

func TestStore_SaveOverwrites(t *testing.T) {
	s := tempStore(t)

	if err := s.Save("first"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Save("second"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	token, ok := s.Read()
	if !ok || token != "second" {
		t.Errorf("expected token second, got %q (ok=%t)", token, ok)
	}
}

func TestStore_ReadAbsent(t *testing.T) {
	s := tempStore(t)

	if _, ok := s.Read(); ok {
		t.Error("expected no token from an empty store")
	}
}

func TestStore_ReadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auth.json")
	if err := os.WriteFile(path, []byte("not json"), 0o600); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s := NewStore(path)
	if _, ok := s.Read(); ok {
		t.Error("expected a malformed file to read as absence")
	}
}

func TestStore_Clear(t *testing.T) {
	s := tempStore(t)

	if err := s.Save("abc"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := s.Read(); ok {
		t.Error("expected no token after clear")
	}
}

func TestStore_ClearAbsentIsNoOp(t *testing.T) {
	s := tempStore(t)

	if err := s.Clear(); err != nil {
		t.Errorf("expected clearing an empty store to succeed, got %v", err)
	}
}

func TestStore_FilePermissions(t *testing.T) {
	s := tempStore(t)

	if err := s.Save("abc"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	info, err := os.Stat(s.path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("expected 0600 permissions, got %o", perm)
	}
}
