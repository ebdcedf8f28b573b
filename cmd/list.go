// ABOUTME: List command for the weblog CLI
// ABOUTME: Renders the public post archive, cache-or-fetch

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

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List weblog posts",
	Long:  `List all posts in the public archive, newest first as the server orders them.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		env := mustEnv()
		exitCode := runList(ctx, os.Stdout, env)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}

// runList fetches and renders the archive.
func runList(ctx context.Context, w io.Writer, env *appEnv) int {
	summaries, err := env.svc.List(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitRequest
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatSummaryJSON(summaries))
		return exitOK
	}

	fmt.Fprintln(w, styles.Meta.Render(fmt.Sprintf("// Total logs: %d", len(summaries))))
	if len(summaries) == 0 {
		fmt.Fprintln(w, styles.Meta.Render("No signals found. Initialize first transmission."))
		return exitOK
	}

	for _, p := range summaries {
		fmt.Fprintf(w, "%s  %s  %s\n",
			styles.Meta.Render(p.CreatedAt.Format("2006.01.02")),
			styles.Accent.Render("/"+p.Slug),
			styles.Title.Render(p.Title))
	}
	return exitOK
}

// formatSummaryJSON renders summaries as indented JSON.
func formatSummaryJSON(summaries []client.PostSummary) string {
	data, _ := json.MarshalIndent(summaries, "", "  ")
	return string(data)
}
