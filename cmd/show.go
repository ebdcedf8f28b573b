// ABOUTME: Show command for the weblog CLI
// ABOUTME: Renders a single post by slug or id

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/psyberpath/portfolio-v1/internal/client"
	"github.com/psyberpath/portfolio-v1/internal/styles"
)

var showCmd = &cobra.Command{
	Use:   "show <slug-or-id>",
	Short: "Show a single post",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		env := mustEnv()
		exitCode := runShow(ctx, os.Stdout, env, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}

// runShow fetches and renders one post.
func runShow(ctx context.Context, w io.Writer, env *appEnv, ref string) int {
	post, err := env.svc.Get(ctx, ref)
	if err != nil {
		if client.IsNotFound(err) {
			fmt.Fprintln(w, styles.Meta.Render("Thought not found."))
			return exitRequest
		}
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitRequest
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(post, "", "  ")
		fmt.Fprintln(w, string(data))
		return exitOK
	}

	fmt.Fprintln(w, styles.Title.Render(post.Title))
	meta := post.CreatedAt.Format("2006.01.02")
	if post.Author.Name != "" {
		meta = post.Author.Name + " • " + meta
	}
	fmt.Fprintln(w, styles.Meta.Render(meta))
	fmt.Fprintln(w)
	fmt.Fprintln(w, post.Content)
	return exitOK
}
