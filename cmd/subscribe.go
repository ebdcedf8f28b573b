// ABOUTME: Subscribe command for the weblog CLI
// ABOUTME: Signs an email address up for the newsletter

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/psyberpath/portfolio-v1/internal/styles"
)

var subscribeCmd = &cobra.Command{
	Use:   "subscribe <email>",
	Short: "Subscribe an email to the newsletter",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		env := mustEnv()
		exitCode := runSubscribe(ctx, os.Stdout, env, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(subscribeCmd)
}

// runSubscribe submits the address. Anything beyond a basic shape check is
// the server's call.
func runSubscribe(ctx context.Context, w io.Writer, env *appEnv, email string) int {
	if !strings.Contains(email, "@") {
		fmt.Fprintln(w, "Error: that does not look like an email address")
		return exitUsage
	}

	if err := env.api.Subscribe(ctx, email); err != nil {
		fmt.Fprintf(w, "%s %v\n", styles.Err.Render("Subscribe failed:"), err)
		return exitRequest
	}

	fmt.Fprintf(w, "%s %s\n", styles.OK.Render("Subscribed"), email)
	return exitOK
}
