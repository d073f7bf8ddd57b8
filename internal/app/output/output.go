package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/MOYARU/storyscan/internal/app/ui"
	"github.com/MOYARU/storyscan/internal/checks"
	"github.com/MOYARU/storyscan/internal/feed"
	msges "github.com/MOYARU/storyscan/internal/messages"
	"github.com/MOYARU/storyscan/internal/report"
)

const reportTimeLayout = "20060102_150405"

// PrintReport writes the console rendering of a batch report. Colors are
// used only when w is a terminal.
func PrintReport(w io.Writer, r report.Report, domains []feed.DomainCount) {
	p := ui.PaletteFor(w)

	avg := r.AverageScore()
	fmt.Fprintf(w, "\n%s\n", p.Paint(ui.ColorWhite, msges.GetUIMessage("ConsoleReportTitle")))
	fmt.Fprintf(w, " %s\n", msges.GetUIMessage("ConsoleTenant", r.TenantName))
	if r.LastSyncedAt != "" {
		fmt.Fprintf(w, " %s\n", msges.GetUIMessage("ConsoleLastSynced", r.LastSyncedAt))
	}
	fmt.Fprintf(w, " %s\n", msges.GetUIMessage("ConsoleStories", r.TotalStories))
	if r.FailedStories > 0 {
		fmt.Fprintf(w, " %s\n", p.Paint(ui.ColorRed, msges.GetUIMessage("ConsoleFailed", r.FailedStories)))
	}
	fmt.Fprintf(w, " %s\n", p.Paint(ui.GradeColor(string(report.GradeScore(avg))), msges.GetUIMessage("ConsoleAverageScore", avg)))
	fmt.Fprintf(w, " %s\n", msges.GetUIMessage("ConsoleTotalIssues", r.TotalIssues()))

	for _, res := range r.Results {
		printResult(w, p, res)
	}

	if len(domains) > 0 {
		fmt.Fprintf(w, "\n%s\n", p.Paint(ui.ColorWhite, msges.GetUIMessage("ConsoleDomainsTitle")))
		for _, d := range domains {
			fmt.Fprintf(w, " - %s (%d)\n", d.Domain, d.Count)
		}
	}
}

func printResult(w io.Writer, p ui.Palette, res report.StoryResult) {
	fmt.Fprintf(w, "\n%s\n", p.Paint(ui.ColorWhite, res.StoryTitle))
	fmt.Fprintf(w, "%s\n", p.Paint(ui.ColorGray, msges.GetUIMessage("ConsoleStoryID", res.StoryID)))

	if res.Analysis == nil {
		fmt.Fprintf(w, " %s\n", p.Paint(ui.ColorRed, msges.GetUIMessage("ConsoleRejected", res.Error)))
		return
	}

	a := res.Analysis
	score := p.Paint(ui.GradeColor(string(report.GradeScore(a.OverallScore))), msges.GetUIMessage("ConsoleScore", a.OverallScore))
	if worst := a.WorstSeverity(); worst != "" {
		score += " " + p.Paint(ui.SeverityColor(string(worst)), msges.GetUIMessage("ConsoleWorst", strings.ToUpper(string(worst))))
	}
	fmt.Fprintf(w, " %s\n", score)
	fmt.Fprintf(w, " %s\n", a.Summary)

	if len(a.Issues) > 0 {
		fmt.Fprintf(w, " %s\n", msges.GetUIMessage("ConsoleIssuesFound", len(a.Issues)))
		for _, issue := range report.BySeverity(a.Issues) {
			label := fmt.Sprintf("[%s] (%s) %s", strings.ToUpper(string(issue.Severity)), issue.Category, issue.Location)
			fmt.Fprintf(w, "  %s\n", p.Paint(ui.SeverityColor(string(issue.Severity)), label))
			fmt.Fprintf(w, "%s\n", p.Paint(ui.ColorGray, "   - "+issue.Description))
			fmt.Fprintf(w, "%s\n", p.Paint(ui.ColorGray, fmt.Sprintf("   - %s: %s", msges.GetUIMessage("ConsoleSuggestion"), issue.Suggestion)))
		}
	}
	if len(a.Strengths) > 0 {
		fmt.Fprintf(w, " %s\n", msges.GetUIMessage("ConsoleStrengths"))
		for _, s := range a.Strengths {
			fmt.Fprintf(w, "  %s\n", p.Paint(ui.ColorGreen, "+ "+s))
		}
	}
}

// PrintChecks lists the registered checks in evaluation order.
func PrintChecks(w io.Writer, list []checks.Check) {
	p := ui.PaletteFor(w)
	fmt.Fprintf(w, "%s\n", p.Paint(ui.ColorWhite, msges.GetUIMessage("ConsoleChecksTitle")))
	for _, c := range list {
		kind := "strength"
		if c.Penalty > 0 {
			kind = fmt.Sprintf("%s/%s -%.1f", c.Severity, c.Category, c.Penalty)
		}
		fmt.Fprintf(w, " %-28s %-5s %-28s %s\n", c.ID, c.Scope, kind, p.Paint(ui.ColorGray, c.Title))
	}
}

// Redact returns a copy of r whose issue texts went through s.
func Redact(r report.Report, s *report.Sanitizer) report.Report {
	if s == nil {
		return r
	}
	results := make([]report.StoryResult, len(r.Results))
	for i, res := range r.Results {
		if res.Analysis != nil {
			a := s.Analysis(*res.Analysis)
			res.Analysis = &a
		}
		results[i] = res
	}
	r.Results = results
	return r
}

// SeveritySummary counts issues per severity across a report.
type SeveritySummary struct {
	Critical int `json:"critical"`
	High     int `json:"high"`
	Medium   int `json:"medium"`
	Low      int `json:"low"`
	Total    int `json:"total"`
}

func summarize(r report.Report) SeveritySummary {
	counts := r.SeverityCounts()
	return SeveritySummary{
		Critical: counts[report.SeverityCritical],
		High:     counts[report.SeverityHigh],
		Medium:   counts[report.SeverityMedium],
		Low:      counts[report.SeverityLow],
		Total:    r.TotalIssues(),
	}
}

// SaveJSONReport writes the report with a severity summary and the domain
// inventory into dir (the working directory when empty) and returns the
// file path.
func SaveJSONReport(dir string, r report.Report, domains []feed.DomainCount) (string, error) {
	type JSONReport struct {
		report.Report
		AverageScore float64            `json:"average_score"`
		Summary      SeveritySummary    `json:"summary"`
		Domains      []feed.DomainCount `json:"domains,omitempty"`
	}

	filename := filepath.Join(dir, reportFilename(r, "json"))
	file, err := os.Create(filename)
	if err != nil {
		return "", err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	err = encoder.Encode(JSONReport{
		Report:       r,
		AverageScore: r.AverageScore(),
		Summary:      summarize(r),
		Domains:      domains,
	})
	if err != nil {
		return "", err
	}
	return filename, nil
}

func reportFilename(r report.Report, ext string) string {
	ts := r.AnalyzedAt
	if ts.IsZero() {
		ts = time.Now()
	}
	return fmt.Sprintf("storyscan_report_%s_%s.%s", sanitizeFilePart(r.TenantName), ts.Format(reportTimeLayout), ext)
}

func sanitizeFilePart(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "tenant"
	}
	return b.String()
}
