// ABOUTME: Status command for the weblog CLI
// ABOUTME: Reports the session guard state and where the token lives

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/psyberpath/portfolio-v1/internal/session"
	"github.com/psyberpath/portfolio-v1/internal/styles"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show session state",
	Long: `Show whether the session is locked or unlocked. Unlocked only means a
token is stored locally; the server still decides whether it is accepted.`,
	Run: func(cmd *cobra.Command, args []string) {
		env := mustEnv()
		exitCode := runStatus(os.Stdout, env)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

// runStatus renders the guard state.
func runStatus(w io.Writer, env *appEnv) int {
	state := env.sess.State()

	if IsJSONOutput() {
		output := map[string]interface{}{
			"backend":    env.cfg.APIURL,
			"state":      state.String(),
			"token_path": env.cfg.TokenPath,
		}
		data, _ := json.MarshalIndent(output, "", "  ")
		fmt.Fprintln(w, string(data))
		return exitOK
	}

	if state == session.Unlocked {
		fmt.Fprintf(w, "Session:  %s\n", styles.OK.Render("unlocked"))
	} else {
		fmt.Fprintf(w, "Session:  %s\n", styles.Meta.Render("locked"))
	}
	fmt.Fprintf(w, "Backend:  %s\n", env.cfg.APIURL)
	fmt.Fprintf(w, "Token:    %s\n", env.cfg.TokenPath)
	return exitOK
}
