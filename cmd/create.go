// ABOUTME: Create command for the weblog CLI
// ABOUTME: Publishes a new post via flags or an interactive editor form

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

var (
	createTitle   string
	createContent string
	createFile    string
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Publish a new post",
	Long: `Publish a new post. Title and markdown content come from flags, a file,
or an interactive form when neither is given. Requires an unlocked session.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		env := mustEnv()
		if !guard(env, os.Stdout) {
			os.Exit(exitLocked)
		}

		title, content := createTitle, createContent
		if createFile != "" {
			data, err := os.ReadFile(createFile)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: failed to read %s: %v\n", createFile, err)
				os.Exit(exitUsage)
			}
			content = string(data)
		}

		if title != "" && content != "" {
			exitCode := runCreate(ctx, os.Stdout, env, title, content)
			if exitCode != 0 {
				os.Exit(exitCode)
			}
			return
		}

		// Interactive editor: on failure the form comes back with the same
		// values so nothing typed is lost.
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

			if runCreate(ctx, os.Stdout, env, title, content) == exitOK {
				return
			}
		}
	},
}

func init() {
	createCmd.Flags().StringVar(&createTitle, "title", "", "Post title")
	createCmd.Flags().StringVar(&createContent, "content", "", "Post content (markdown)")
	createCmd.Flags().StringVar(&createFile, "file", "", "Read content from a markdown file")
	rootCmd.AddCommand(createCmd)
}

// editorForm prompts for title and content, pre-filled with the current
// values. Returns false when the user aborts.
func editorForm(title, content *string) (bool, error) {
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Title").
			Placeholder("Transmission Title...").
			Value(title),
		huh.NewText().
			Title("Content").
			Placeholder("// Write your logic here (Markdown supported)...").
			Value(content),
	))
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// runCreate publishes the post and reports the new slug.
func runCreate(ctx context.Context, w io.Writer, env *appEnv, title, content string) int {
	if !guard(env, w) {
		return exitLocked
	}
	if title == "" {
		fmt.Fprintln(w, "Error: please enter a title")
		return exitUsage
	}
	if content == "" {
		fmt.Fprintln(w, "Error: please enter some content")
		return exitUsage
	}

	post, err := env.svc.Create(ctx, title, content)
	if err != nil {
		fmt.Fprintf(w, "%s %v\n", styles.Err.Render("Publish failed:"), err)
		return exitRequest
	}

	fmt.Fprintf(w, "%s %s\n", styles.OK.Render("Published"), styles.Accent.Render("/"+post.Slug))
	return exitOK
}
