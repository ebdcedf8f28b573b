// ABOUTME: Root command for the weblog CLI
// ABOUTME: Handles global flags and builds the shared command environment

package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/psyberpath/portfolio-v1/internal/cache"
	"github.com/psyberpath/portfolio-v1/internal/client"
	"github.com/psyberpath/portfolio-v1/internal/config"
	"github.com/psyberpath/portfolio-v1/internal/logger"
	"github.com/psyberpath/portfolio-v1/internal/posts"
	"github.com/psyberpath/portfolio-v1/internal/session"
	"github.com/psyberpath/portfolio-v1/internal/styles"
)

var (
	apiURL     string
	jsonOutput bool
)

const defaultAPIURL = "https://api.psyberpath.dev"

// Exit codes
const (
	exitOK      = 0
	exitUsage   = 1
	exitRequest = 2
	exitLocked  = 3
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "weblog",
	Short: "Admin console for the psyberpath weblog",
	Long: `weblog is a command-line console for the psyberpath portfolio and weblog API.

Reading commands (list, show, health, subscribe) work without a session.
Writing commands (create, edit, delete) require a session token obtained
with 'weblog login'; the token lives in a local file until 'weblog logout'.

Environment Variables:
  WEBLOG_API_URL              Remote API URL (default: ` + defaultAPIURL + `)
  WEBLOG_TOKEN_PATH           Session token file location
  WEBLOG_TIMEOUT              Per-request timeout in seconds (default: 30)
  WEBLOG_CACHE_TTL            Query cache TTL in seconds (default: 300)
  WEBLOG_HEALTH_INTERVAL      Watch-mode poll interval in seconds (default: 30)
  WEBLOG_CLEAR_TOKEN_ON_401   Drop the stored token when the server rejects it (default: false)
  WEBLOG_ALL_PROXY            ssh+socks5:// jump host for API traffic

Exit codes: 0 success, 1 usage error, 2 request failure, 3 session locked.`,
}

// Execute runs the root command
func Execute() error {
	logger.Init()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Remote API URL (overrides WEBLOG_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// appEnv bundles the configured session, client, and flows a command needs.
type appEnv struct {
	cfg  *config.Config
	sess *session.Session
	api  *client.Client
	svc  *posts.Service
}

// newEnv loads configuration and wires the environment, with the --api-url
// flag taking precedence over WEBLOG_API_URL and the built-in default.
func newEnv() (*appEnv, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if apiURL != "" {
		cfg.APIURL = config.EnsureScheme(apiURL)
	}
	if cfg.APIURL == "" {
		cfg.APIURL = defaultAPIURL
	}
	return newEnvFrom(cfg), nil
}

// newEnvFrom wires the environment from an explicit config. The session is
// initialized once here, reading any persisted token, and injected downward.
func newEnvFrom(cfg *config.Config) *appEnv {
	sess := session.New(session.NewStore(cfg.TokenPath))
	api := client.New(cfg.APIURL, sess, client.Options{
		Timeout:         time.Duration(cfg.RequestTimeout) * time.Second,
		AllProxy:        cfg.AllProxy,
		ClearTokenOn401: cfg.ClearTokenOn401,
	})
	svc := posts.NewService(api, cache.New(time.Duration(cfg.CacheTTL)*time.Second))
	return &appEnv{cfg: cfg, sess: sess, api: api, svc: svc}
}

// mustEnv builds the environment or exits with a usage error.
func mustEnv() *appEnv {
	env, err := newEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitUsage)
	}
	return env
}

// guard refuses admin flows while the session is locked, pointing the user
// back to login. This is advisory UI gating only; the server enforces the
// real authorization on every write.
func guard(env *appEnv, w io.Writer) bool {
	if err := env.sess.Require(); err != nil {
		fmt.Fprintf(w, "%s Run 'weblog login' to authenticate.\n", styles.Err.Render("Session is locked."))
		return false
	}
	return true
}
