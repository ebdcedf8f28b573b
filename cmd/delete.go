// ABOUTME: Delete command for the weblog CLI
// ABOUTME: Removes a post after an explicit confirmation step

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

var deleteYes bool

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a post",
	Long: `Delete a post by id. Asks for confirmation unless --yes is given.
Requires an unlocked session.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		env := mustEnv()
		if !guard(env, os.Stdout) {
			os.Exit(exitLocked)
		}

		if !deleteYes {
			confirmed := false
			confirm := huh.NewConfirm().
				Title("Delete this signal?").
				Affirmative("Delete").
				Negative("Keep").
				Value(&confirmed)
			if err := confirm.Run(); err != nil && !errors.Is(err, huh.ErrUserAborted) {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(exitUsage)
			}
			if !confirmed {
				fmt.Fprintln(os.Stdout, "Aborted.")
				return
			}
		}

		exitCode := runDelete(ctx, os.Stdout, env, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	deleteCmd.Flags().BoolVar(&deleteYes, "yes", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(deleteCmd)
}

// runDelete removes the post. The item disappears from the next list read
// via cache invalidation; on failure it remains.
func runDelete(ctx context.Context, w io.Writer, env *appEnv, id string) int {
	if !guard(env, w) {
		return exitLocked
	}

	if err := env.svc.Delete(ctx, id); err != nil {
		fmt.Fprintf(w, "%s %v\n", styles.Err.Render("Delete failed:"), err)
		return exitRequest
	}

	fmt.Fprintf(w, "%s %s\n", styles.OK.Render("Deleted"), id)
	return exitOK
}
