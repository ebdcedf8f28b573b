// ABOUTME: Tests for the login and logout commands
// ABOUTME: Verifies session transitions around the credential exchange

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/psyberpath/portfolio-v1/internal/session"
)

func TestRunLogin_UnlocksSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"accessToken": "abc"})
	}))
	defer server.Close()

	env := newTestEnv(t, server.URL)
	var buf bytes.Buffer

	exitCode := runLogin(context.Background(), &buf, env, "admin@test.dev", "hunter2")
	if exitCode != exitOK {
		t.Fatalf("expected exit 0, got %d (output: %s)", exitCode, buf.String())
	}

	if env.sess.State() != session.Unlocked {
		t.Error("expected the session to be unlocked after login")
	}
	token, _ := env.sess.Token()
	if token != "abc" {
		t.Errorf("expected stored token abc, got %q", token)
	}
}

func TestRunLogin_FailureStaysLocked(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{})
	}))
	defer server.Close()

	env := newTestEnv(t, server.URL)
	var buf bytes.Buffer

	exitCode := runLogin(context.Background(), &buf, env, "admin@test.dev", "wrong")
	if exitCode != exitRequest {
		t.Fatalf("expected exit %d, got %d", exitRequest, exitCode)
	}
	if !strings.Contains(buf.String(), "Invalid credentials") {
		t.Errorf("expected the default failure message, got %q", buf.String())
	}
	if env.sess.State() != session.Locked {
		t.Error("expected the session to stay locked after a failed login")
	}
}

func TestRunLogin_MissingCredentials(t *testing.T) {
	env := newTestEnv(t, "http://127.0.0.1:1")
	var buf bytes.Buffer

	if exitCode := runLogin(context.Background(), &buf, env, "", ""); exitCode != exitUsage {
		t.Errorf("expected exit %d, got %d", exitUsage, exitCode)
	}
}

func TestRunLogout_LocksSession(t *testing.T) {
	env := newTestEnv(t, "http://127.0.0.1:1")
	unlockTestEnv(t, env)
	var buf bytes.Buffer

	if exitCode := runLogout(&buf, env); exitCode != exitOK {
		t.Fatalf("expected exit 0, got %d", exitCode)
	}
	if env.sess.State() != session.Locked {
		t.Error("expected the session to be locked after logout")
	}
}

func TestRunLogout_AlreadyLocked(t *testing.T) {
	env := newTestEnv(t, "http://127.0.0.1:1")
	var buf bytes.Buffer

	if exitCode := runLogout(&buf, env); exitCode != exitOK {
		t.Fatalf("expected exit 0, got %d", exitCode)
	}
	if !strings.Contains(buf.String(), "already locked") {
		t.Errorf("expected a no-op message, got %q", buf.String())
	}
}
