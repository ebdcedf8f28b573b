// ABOUTME: Edit command for the weblog CLI
// ABOUTME: Applies a partial update to an existing post, sending only changed fields

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/psyberpath/portfolio-v1/internal/client"
	"github.com/psyberpath/portfolio-v1/internal/styles"
)

var (
	editTitle   string
	editContent string
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit an existing post",
	Long: `Edit an existing post. With --title or --content, only those fields are
sent; everything else stays as it is. Without flags, an interactive form
opens pre-filled with the current post. Requires an unlocked session.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		env := mustEnv()
		if !guard(env, os.Stdout) {
			os.Exit(exitLocked)
		}
		id := args[0]

		if cmd.Flags().Changed("title") || cmd.Flags().Changed("content") {
			update := client.PostUpdate{}
			if cmd.Flags().Changed("title") {
				update.Title = &editTitle
			}
			if cmd.Flags().Changed("content") {
				update.Content = &editContent
			}
			exitCode := runEdit(ctx, os.Stdout, env, id, update)
			if exitCode != 0 {
				os.Exit(exitCode)
			}
			return
		}

		// Pre-fill from the current post, cache-or-fetch.
		post, err := env.svc.Get(ctx, id)
		if err != nil {
			fmt.Fprintf(os.Stdout, "Error: %v\n", err)
			os.Exit(exitRequest)
		}
		title, content := post.Title, post.Content

		for {
			ok, err := editorForm(&title, &content)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(exitUsage)
			}
			if !ok {
				fmt.Fprintln(os.Stdout, "Canceled.")
				os.Exit(exitUsage)
			}

			update := client.PostUpdate{}
			if title != post.Title {
				update.Title = &title
			}
			if content != post.Content {
				update.Content = &content
			}

			if runEdit(ctx, os.Stdout, env, id, update) == exitOK {
				return
			}
		}
	},
}

func init() {
	editCmd.Flags().StringVar(&editTitle, "title", "", "New post title")
	editCmd.Flags().StringVar(&editContent, "content", "", "New post content (markdown)")
	rootCmd.AddCommand(editCmd)
}

// runEdit submits the partial update.
func runEdit(ctx context.Context, w io.Writer, env *appEnv, id string, update client.PostUpdate) int {
	if !guard(env, w) {
		return exitLocked
	}
	if update.Title == nil && update.Content == nil {
		fmt.Fprintln(w, "No changes.")
		return exitOK
	}

	post, err := env.svc.Update(ctx, id, update)
	if err != nil {
		fmt.Fprintf(w, "%s %v\n", styles.Err.Render("Publish failed:"), err)
		return exitRequest
	}

	fmt.Fprintf(w, "%s %s\n", styles.OK.Render("Updated"), styles.Accent.Render("/"+post.Slug))
	return exitOK
}
