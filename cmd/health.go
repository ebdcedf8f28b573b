// ABOUTME: Health command for the weblog CLI
// ABOUTME: One-shot status check or continuous watch-mode polling

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/psyberpath/portfolio-v1/internal/health"
	"github.com/psyberpath/portfolio-v1/internal/styles"
)

var healthWatch bool

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check remote service status",
	Long: `Check connectivity to the weblog API. With --watch, polls on the
configured interval and reports status transitions until interrupted.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		env := mustEnv()
		var exitCode int
		if healthWatch {
			exitCode = runHealthWatch(ctx, os.Stdout, env)
		} else {
			exitCode = runHealth(ctx, os.Stdout, env)
		}
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	healthCmd.Flags().BoolVar(&healthWatch, "watch", false, "Poll continuously and report transitions")
	rootCmd.AddCommand(healthCmd)
}

// runHealth performs a single check. Exit code 2 signals an unhealthy
// service so pipelines can gate on it.
func runHealth(ctx context.Context, w io.Writer, env *appEnv) int {
	p := health.NewPoller(env.api, time.Duration(env.cfg.HealthInterval)*time.Second)
	st := p.Check(ctx)

	if IsJSONOutput() {
		fmt.Fprintln(w, formatHealthJSON(env.cfg.APIURL, st))
	} else {
		fmt.Fprintln(w, formatHealthHuman(st))
	}

	if !st.Healthy {
		return exitRequest
	}
	return exitOK
}

// runHealthWatch polls until the context is canceled.
func runHealthWatch(ctx context.Context, w io.Writer, env *appEnv) int {
	p := health.NewPoller(env.api, time.Duration(env.cfg.HealthInterval)*time.Second)
	p.Run(ctx, func(st health.Status) {
		fmt.Fprintf(w, "%s  %s\n", styles.Meta.Render(st.CheckedAt.Format(time.TimeOnly)), formatHealthHuman(st))
	}, nil)
	return exitOK
}

// formatHealthHuman renders the status line the site footer shows.
func formatHealthHuman(st health.Status) string {
	if st.Healthy {
		return styles.OK.Render("●") + " Systems Nominal"
	}
	return styles.Err.Render("●") + " System Offline (" + st.Detail + ")"
}

// formatHealthJSON renders a machine-readable status report.
func formatHealthJSON(url string, st health.Status) string {
	output := map[string]interface{}{
		"backend":    url,
		"healthy":    st.Healthy,
		"detail":     st.Detail,
		"checked_at": st.CheckedAt.Format(time.RFC3339),
	}
	data, _ := json.MarshalIndent(output, "", "  ")
	return string(data)
}
