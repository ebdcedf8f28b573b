// ABOUTME: Logout command for the weblog CLI
// ABOUTME: Clears the stored bearer token, locking the session

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/psyberpath/portfolio-v1/internal/session"
	"github.com/psyberpath/portfolio-v1/internal/styles"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session token",
	Run: func(cmd *cobra.Command, args []string) {
		env := mustEnv()
		exitCode := runLogout(os.Stdout, env)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

// runLogout clears the token. Logging out while already locked is a no-op.
func runLogout(w io.Writer, env *appEnv) int {
	if env.sess.State() == session.Locked {
		fmt.Fprintln(w, "Session already locked.")
		return exitOK
	}

	if err := env.sess.Clear(); err != nil {
		fmt.Fprintf(w, "Error: failed to clear token: %v\n", err)
		return exitRequest
	}

	fmt.Fprintf(w, "%s Session locked.\n", styles.OK.Render("Logged out."))
	return exitOK
}
