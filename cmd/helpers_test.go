// ABOUTME: Shared helpers for command tests
// ABOUTME: Builds a command environment against an httptest backend

package cmd

import (
	"path/filepath"
	"testing"

	"github.com/psyberpath/portfolio-v1/internal/config"
)

// newTestEnv wires an environment against the given backend URL with an
// isolated token file.
func newTestEnv(t *testing.T, backendURL string) *appEnv {
	t.Helper()
	return newEnvFrom(&config.Config{
		APIURL:         backendURL,
		RequestTimeout: 5,
		TokenPath:      filepath.Join(t.TempDir(), "auth.json"),
		CacheTTL:       60,
		HealthInterval: 1,
	})
}

// unlockTestEnv stores a token so admin flows run.
func unlockTestEnv(t *testing.T, env *appEnv) {
	t.Helper()
	if err := env.sess.SetToken("abc"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
