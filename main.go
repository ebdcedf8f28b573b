// ABOUTME: Entry point for the weblog CLI
// ABOUTME: Command-line admin console for the psyberpath portfolio API

package main

import (
	"fmt"
	"os"

	"github.com/psyberpath/portfolio-v1/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
