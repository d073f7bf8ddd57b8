/*
Copyright (c) 2026 moyaru <rbffo@icloud.com>
*/

package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MOYARU/storyscan/internal/app/interactive"
	"github.com/MOYARU/storyscan/internal/app/scan"
	"github.com/MOYARU/storyscan/internal/app/ui"
	appver "github.com/MOYARU/storyscan/internal/version"
)

var (
	version = appver.Value

	configPath string
	logLevel   string
	tenantName string
	workers    int
	failUnder  float64
	jsonOutput bool
	htmlOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "storyscan [feed]",
	Short: "storyscan scores tenant story feeds for content quality: CTA and URL consistency, title hygiene, asset traceability and domain consistency.",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := ui.WaitForCancel(context.Background())
		defer cancel()

		if len(args) == 0 {
			interactive.NewShell(os.Stdin, os.Stdout, configPath).Run(ctx, cmd.Long)
			return
		}

		opts := scan.Options{
			ConfigPath: configPath,
			Tenant:     tenantName,
			Workers:    workers,
			LogLevel:   logLevel,
			JSONOutput: jsonOutput,
			HTMLOutput: htmlOutput,
		}
		if cmd.Flags().Changed("fail-under") {
			opts.FailUnder = &failUnder
		}
		if err := scan.RunScan(ctx, args[0], opts); err != nil {
			fmt.Printf("%sScan failed: %v%s\n", ui.ColorRed, err, ui.ColorReset)
			os.Exit(1)
		}
	},
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = version

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Policy file (default: .storyscan.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output result as JSON")
	rootCmd.Flags().BoolVar(&htmlOutput, "html", false, "Output result as HTML")
	rootCmd.Flags().IntVar(&workers, "workers", 0, "Stories analyzed concurrently (default: policy workers, 1)")
	rootCmd.Flags().StringVar(&tenantName, "tenant", "", "Override the tenant name from the feed")
	rootCmd.Flags().Float64Var(&failUnder, "fail-under", 0, "Exit 1 if a story scores below this value or is rejected")

	rootCmd.Long = ui.AsciiArt + `
storyscan is a rule-based content quality scanner for story feeds.

Usage:
   storyscan [feed.json|feed.yaml] [flags]
   storyscan checks
   storyscan serve [--addr :8080]

Example:
  storyscan feed.json
  storyscan feed.yaml --json --html
  storyscan feed.json --workers 4 --fail-under 6

Flags:
  --json               Output result as JSON
  --html               Output result as HTML
  --workers            Stories analyzed concurrently
  --tenant             Override the tenant name from the feed
  --fail-under         Exit 1 if a story scores below this value or is rejected
  --config             Policy file (default: .storyscan.yaml)
  --log-level          Log level: debug, info, warn, error

Run without a feed to start the interactive shell.
`
}
