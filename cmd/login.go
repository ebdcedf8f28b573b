// ABOUTME: Login command for the weblog CLI
// ABOUTME: Exchanges credentials for a bearer token and unlocks the session

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/psyberpath/portfolio-v1/internal/styles"
)

var loginIdentity string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate and unlock the session",
	Long: `Authenticate against the remote API and store the returned bearer token.

The identity may be passed with --identity; the secret is read from the
WEBLOG_SECRET environment variable or prompted for interactively. The token
is persisted as-is with no local expiry; only 'weblog logout' removes it.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		env := mustEnv()

		identity := loginIdentity
		secret := os.Getenv("WEBLOG_SECRET")

		if identity == "" || secret == "" {
			var fields []huh.Field
			if identity == "" {
				fields = append(fields, huh.NewInput().
					Title("Identity").
					Placeholder("admin@psyberpath.dev").
					Value(&identity))
			}
			if secret == "" {
				fields = append(fields, huh.NewInput().
					Title("Passkey").
					EchoMode(huh.EchoModePassword).
					Value(&secret))
			}
			if err := huh.NewForm(huh.NewGroup(fields...)).Run(); err != nil {
				if errors.Is(err, huh.ErrUserAborted) {
					fmt.Fprintln(os.Stdout, "Canceled.")
					os.Exit(exitUsage)
				}
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(exitUsage)
			}
		}

		exitCode := runLogin(ctx, os.Stdout, env, identity, secret)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginIdentity, "identity", "", "Login identity (email)")
	rootCmd.AddCommand(loginCmd)
}

// runLogin performs the credential exchange and stores the token on success.
func runLogin(ctx context.Context, w io.Writer, env *appEnv, identity, secret string) int {
	if identity == "" || secret == "" {
		fmt.Fprintln(w, "Error: identity and secret are required")
		return exitUsage
	}

	token, err := env.api.Login(ctx, identity, secret)
	if err != nil {
		fmt.Fprintf(w, "%s %v\n", styles.Err.Render("Login failed:"), err)
		return exitRequest
	}

	if err := env.sess.SetToken(token); err != nil {
		fmt.Fprintf(w, "Error: failed to store token: %v\n", err)
		return exitRequest
	}

	fmt.Fprintf(w, "%s Session unlocked.\n", styles.OK.Render("Authenticated."))
	return exitOK
}
