package scan

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/MOYARU/storyscan/internal/app/output"
	"github.com/MOYARU/storyscan/internal/app/ui"
	"github.com/MOYARU/storyscan/internal/batch"
	"github.com/MOYARU/storyscan/internal/checks/scanner"
	"github.com/MOYARU/storyscan/internal/config"
	"github.com/MOYARU/storyscan/internal/engine"
	"github.com/MOYARU/storyscan/internal/feed"
	"github.com/MOYARU/storyscan/internal/logger"
	msges "github.com/MOYARU/storyscan/internal/messages"
	"github.com/MOYARU/storyscan/internal/report"
)

// Options carries the command line overrides for one scan. Zero values
// fall back to the policy file.
type Options struct {
	ConfigPath string
	Tenant     string
	Workers    int
	LogLevel   string
	// FailUnder overrides the policy threshold when non-nil.
	FailUnder  *float64
	JSONOutput bool
	HTMLOutput bool
	// OutputDir receives report files; the working directory when empty.
	OutputDir string
	Out       io.Writer
}

// ThresholdError is returned when stories score below the fail-under
// threshold or were rejected.
type ThresholdError struct {
	Count     int
	Threshold float64
}

func (e *ThresholdError) Error() string {
	return msges.GetUIMessage("FailUnderTriggered", e.Count, e.Threshold)
}

// RunScan loads a feed, analyzes every story and renders the report.
func RunScan(ctx context.Context, feedPath string, opts Options) error {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	p := ui.PaletteFor(out)

	policy, err := config.LoadPolicy(opts.ConfigPath)
	if err != nil {
		return err
	}
	level := policy.LogLevel
	if opts.LogLevel != "" {
		level = opts.LogLevel
	}
	if err := logger.InitLogger(level, policy.LogFile); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	ctx, cancel := ui.WaitForCancel(ctx)
	defer cancel()

	display := feedPath
	if engine.IsRemote(feedPath) {
		display = (&report.Sanitizer{}).URL(feedPath)
	}
	fmt.Fprintln(out, p.Paint(ui.ColorGray, msges.GetUIMessage("StatusLoadingFeed", display)))
	f, fetched, err := loadFeed(ctx, feedPath)
	if err != nil {
		return err
	}
	if fetched != nil {
		printDownload(out, p, fetched)
	}

	tenant := f.TenantName
	if opts.Tenant != "" {
		tenant = opts.Tenant
	}
	workers := policy.Workers
	if opts.Workers > 0 {
		workers = opts.Workers
	}

	fmt.Fprintln(out, p.Paint(ui.ColorGray, msges.GetUIMessage("StatusAnalyzing", len(f.Stories), tenant)))
	runner := batch.New(
		scanner.New(scanner.WithDisabled(policy.DisabledChecks...)),
		batch.WithWorkers(workers),
	)
	rep, err := runner.RunWithMetadata(ctx, tenant, batch.Metadata{
		TenantID:     f.TenantID,
		LastSyncedAt: f.LastSyncedAt,
	}, f.Stories)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(out, p.Paint(ui.ColorYellow, msges.GetUIMessage("AnalysisCancelled")))
		}
		return err
	}
	fmt.Fprintln(out, p.Paint(ui.ColorGreen, msges.GetUIMessage("AnalysisComplete")))

	if policy.RedactOutput {
		sanitizer, rejected := report.NewSanitizer(policy.RedactionPatterns)
		for _, pattern := range rejected {
			logger.Log.WithField("pattern", pattern).Warn("ignoring invalid redaction pattern")
		}
		rep = output.Redact(rep, sanitizer)
	}

	domains := feed.Domains(f.Stories)
	output.PrintReport(out, rep, domains)

	if opts.JSONOutput {
		if path, err := output.SaveJSONReport(opts.OutputDir, rep, domains); err != nil {
			fmt.Fprintln(out, p.Paint(ui.ColorRed, msges.GetUIMessage("JSONReportFailed", err)))
		} else {
			fmt.Fprintf(out, "\n%s\n", msges.GetUIMessage("JSONReportSaved", path))
		}
	}
	if opts.HTMLOutput {
		if path, err := output.SaveHTMLReport(opts.OutputDir, rep, domains); err != nil {
			fmt.Fprintln(out, p.Paint(ui.ColorRed, msges.GetUIMessage("HTMLReportFailed", err)))
		} else {
			fmt.Fprintf(out, "%s\n", msges.GetUIMessage("HTMLReportSaved", path))
		}
	}

	threshold := policy.FailUnder
	if opts.FailUnder != nil {
		threshold = *opts.FailUnder
	}
	if n := BelowThreshold(rep, threshold); n > 0 {
		logger.Log.WithFields(logrus.Fields{
			"count":     n,
			"threshold": threshold,
		}).Warn("fail-under threshold triggered")
		return &ThresholdError{Count: n, Threshold: threshold}
	}
	return nil
}

// loadFeed reads a feed from a file, or downloads it when src is an
// http(s) URL. The fetch result is nil for files.
func loadFeed(ctx context.Context, src string) (*feed.Feed, *engine.FetchResult, error) {
	if !engine.IsRemote(src) {
		f, err := feed.Load(src)
		return f, nil, err
	}
	fetcher := &engine.Fetcher{Log: logger.Log}
	res, err := fetcher.Fetch(ctx, src)
	if err != nil {
		return nil, nil, err
	}
	format := feed.FormatJSON
	if res.IsYAML() {
		format = feed.FormatYAML
	}
	f, err := feed.Parse(res.Body, format)
	return f, res, err
}

func printDownload(out io.Writer, p ui.Palette, res *engine.FetchResult) {
	compressed := ""
	if res.Compressed {
		compressed = ", gzip"
	}
	line := msges.GetUIMessage("StatusDownloaded", len(res.Body), res.Requests(), res.Elapsed.Round(time.Millisecond), compressed)
	fmt.Fprintln(out, p.Paint(ui.ColorGray, line))
	for _, hop := range res.Redirects() {
		fmt.Fprintln(out, p.Paint(ui.ColorGray, msges.GetUIMessage("StatusRedirected", hop.URL, hop.Status)))
	}
}

// BelowThreshold counts analyzed stories scoring under threshold plus
// rejected stories. A threshold of zero or less disables the gate.
func BelowThreshold(r report.Report, threshold float64) int {
	if threshold <= 0 {
		return 0
	}
	n := 0
	for _, res := range r.Results {
		if res.Analysis == nil || res.Analysis.OverallScore < threshold {
			n++
		}
	}
	return n
}
