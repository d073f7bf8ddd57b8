package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MOYARU/storyscan/internal/api"
	"github.com/MOYARU/storyscan/internal/app/ui"
	"github.com/MOYARU/storyscan/internal/batch"
	"github.com/MOYARU/storyscan/internal/checks/scanner"
	"github.com/MOYARU/storyscan/internal/config"
	"github.com/MOYARU/storyscan/internal/logger"
	msges "github.com/MOYARU/storyscan/internal/messages"
	"github.com/MOYARU/storyscan/internal/report"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:          "serve",
	Short:        "Run the HTTP analysis API",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		policy, err := config.LoadPolicy(configPath)
		if err != nil {
			return err
		}
		level := policy.LogLevel
		if logLevel != "" {
			level = logLevel
		}
		if err := logger.InitLogger(level, policy.LogFile); err != nil {
			return err
		}

		addr := policy.ServeAddr
		if cmd.Flags().Changed("addr") {
			addr = serveAddr
		}

		var sanitizer *report.Sanitizer
		if policy.RedactOutput {
			var rejected []string
			sanitizer, rejected = report.NewSanitizer(policy.RedactionPatterns)
			for _, pattern := range rejected {
				logger.Log.WithField("pattern", pattern).Warn("ignoring invalid redaction pattern")
			}
		}

		sc := scanner.New(scanner.WithDisabled(policy.DisabledChecks...))
		runner := batch.New(sc, batch.WithWorkers(policy.Workers))
		handlers := api.NewHandlers(sc, runner, sc.Checks, sanitizer, logger.Log)

		ctx, cancel := ui.WaitForCancel(context.Background())
		defer cancel()

		fmt.Println(msges.GetUIMessage("ServerListening", addr))
		if err := api.Serve(ctx, addr, api.NewRouter(handlers), logger.Log); err != nil {
			return fmt.Errorf("%s", msges.GetUIMessage("ServerShutdownFailed", err))
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address (default: policy serve_addr)")
	rootCmd.AddCommand(serveCmd)
}
