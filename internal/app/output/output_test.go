package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/MOYARU/storyscan/internal/checks/registry"
	"github.com/MOYARU/storyscan/internal/feed"
	"github.com/MOYARU/storyscan/internal/report"
)

func sampleReport() report.Report {
	return report.Report{
		ID:            "3f1c2a9e-0000-4000-8000-000000000001",
		TenantName:    "Antarctic Football League",
		LastSyncedAt:  "2026-02-14T10:05:00Z",
		AnalyzedAt:    time.Date(2026, 2, 14, 10, 30, 0, 0, time.UTC),
		TotalStories:  3,
		FailedStories: 1,
		Results: []report.StoryResult{
			{
				StoryID:    "story_123",
				StoryTitle: "Last 5 meetings",
				Analysis: &report.StoryAnalysis{
					OverallScore: 8.0,
					Issues: []report.Issue{
						{Severity: report.SeverityMedium, Category: report.CategoryConsistency, Location: "Page 2", Description: `CTA says "Buy tickets" but URL points to "highlights"`, Suggestion: "Fix it"},
						{Severity: report.SeverityHigh, Category: report.CategoryTechnical, Location: "Action URLs", Description: "token=abcdef123456", Suggestion: "Use one domain"},
					},
					Strengths: []string{"Clear team identification in categories"},
					Summary:   "2 issues detected across 2 categories",
				},
			},
			{
				StoryID:    "story_124",
				StoryTitle: "Matchday build-up",
				Analysis: &report.StoryAnalysis{
					OverallScore: 10,
					Issues:       []report.Issue{},
					Strengths:    []string{},
					Summary:      report.NoIssuesSummary,
				},
			},
			{
				StoryID:    "story_bad",
				StoryTitle: "Broken",
				Error:      "story story_bad: invalid context: is required",
			},
		},
	}
}

func TestSaveJSONReportSummaryCounts(t *testing.T) {
	tmp := t.TempDir()
	domains := []feed.DomainCount{{Domain: "antarcticfootballleague.com", Count: 4}}

	path, err := SaveJSONReport(tmp, sampleReport(), domains)
	if err != nil {
		t.Fatalf("SaveJSONReport() error: %v", err)
	}
	if filepath.Base(path) != "storyscan_report_antarctic_football_league_20260214_103000.json" {
		t.Fatalf("unexpected report file name: %s", path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}

	var doc struct {
		ID           string  `json:"id"`
		TenantName   string  `json:"tenant_name"`
		TotalStories int     `json:"total_stories"`
		AverageScore float64 `json:"average_score"`
		Summary      struct {
			High   int `json:"high"`
			Medium int `json:"medium"`
			Low    int `json:"low"`
			Total  int `json:"total"`
		} `json:"summary"`
		Results []struct {
			StoryID  string          `json:"story_id"`
			Analysis json.RawMessage `json:"analysis"`
			Error    string          `json:"error"`
		} `json:"results"`
		Domains []feed.DomainCount `json:"domains"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}

	if doc.TenantName != "Antarctic Football League" || doc.TotalStories != 3 || doc.ID == "" {
		t.Fatalf("unexpected envelope: %+v", doc)
	}
	if doc.AverageScore != 9.0 {
		t.Fatalf("expected average 9.0, got %v", doc.AverageScore)
	}
	if doc.Summary.High != 1 || doc.Summary.Medium != 1 || doc.Summary.Low != 0 || doc.Summary.Total != 2 {
		t.Fatalf("unexpected summary: %+v", doc.Summary)
	}
	if len(doc.Results) != 3 || doc.Results[2].Analysis != nil || doc.Results[2].Error == "" {
		t.Fatalf("unexpected results: %+v", doc.Results)
	}
	if len(doc.Domains) != 1 || doc.Domains[0].Count != 4 {
		t.Fatalf("unexpected domains: %+v", doc.Domains)
	}
}

func TestSaveHTMLReport(t *testing.T) {
	tmp := t.TempDir()
	path, err := SaveHTMLReport(tmp, sampleReport(), nil)
	if err != nil {
		t.Fatalf("SaveHTMLReport() error: %v", err)
	}
	if !strings.HasSuffix(path, ".html") {
		t.Fatalf("unexpected report file name: %s", path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	html := string(raw)
	for _, want := range []string{
		"Antarctic Football League",
		"8.0/10",
		"bg-high",
		"CTA says &#34;Buy tickets&#34;",
		"rejected",
		"Clear team identification in categories",
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected HTML to contain %q", want)
		}
	}
}

func TestPrintReportPlain(t *testing.T) {
	var buf bytes.Buffer
	PrintReport(&buf, sampleReport(), []feed.DomainCount{{Domain: "antarcticfootballleague.com", Count: 4}})
	out := buf.String()

	if strings.Contains(out, "\033[") {
		t.Fatalf("expected no color codes when writing to a buffer")
	}
	for _, want := range []string{
		"Tenant: Antarctic Football League",
		"Average score: 9.0/10",
		"Total issues: 2",
		"Stories rejected: 1",
		"[MEDIUM] (consistency) Page 2",
		"+ Clear team identification in categories",
		"Rejected: story story_bad: invalid context: is required",
		"antarcticfootballleague.com (4)",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected console output to contain %q\n%s", want, out)
		}
	}
}

func TestPrintReportOrdersIssuesBySeverity(t *testing.T) {
	var buf bytes.Buffer
	PrintReport(&buf, sampleReport(), nil)
	out := buf.String()

	high := strings.Index(out, "[HIGH] (technical) Action URLs")
	medium := strings.Index(out, "[MEDIUM] (consistency) Page 2")
	if high < 0 || medium < 0 || high > medium {
		t.Fatalf("expected high issue before medium issue\n%s", out)
	}
	if !strings.Contains(out, "Quality score: 8.0/10 [worst: HIGH]") {
		t.Fatalf("expected worst severity badge\n%s", out)
	}
	if strings.Contains(out, "Quality score: 10.0/10 [worst") {
		t.Fatalf("issue-free story must not carry a badge\n%s", out)
	}
}

func TestBuildHTMLDataOrdersIssues(t *testing.T) {
	r := sampleReport()
	data := buildHTMLData(r, nil)

	first := data.Stories[0]
	if first.Worst != "high" || len(first.Issues) != 2 || first.Issues[0].Severity != report.SeverityHigh {
		t.Fatalf("unexpected story view: worst=%q issues=%+v", first.Worst, first.Issues)
	}
	if r.Results[0].Analysis.Issues[0].Severity != report.SeverityMedium {
		t.Fatalf("report issue order must stay in evaluation order")
	}
}

func TestPrintChecks(t *testing.T) {
	var buf bytes.Buffer
	PrintChecks(&buf, registry.DefaultChecks())
	out := buf.String()
	if !strings.Contains(out, "URL_DOMAIN_CONSISTENCY") || !strings.Contains(out, "high/technical -2.0") {
		t.Fatalf("unexpected checks listing:\n%s", out)
	}
	if !strings.Contains(out, "TEAM_NAMES_PRESENT") {
		t.Fatalf("expected strength checks to be listed:\n%s", out)
	}
}

func TestRedactLeavesInputUntouched(t *testing.T) {
	r := sampleReport()
	s, _ := report.NewSanitizer(nil)

	redacted := Redact(r, s)
	if got := redacted.Results[0].Analysis.Issues[1].Description; strings.Contains(got, "abcdef123456") {
		t.Fatalf("expected token to be redacted, got %q", got)
	}
	if got := r.Results[0].Analysis.Issues[1].Description; got != "token=abcdef123456" {
		t.Fatalf("input report was modified: %q", got)
	}
	if redacted.Results[2].Analysis != nil {
		t.Fatalf("rejected results must stay without analysis")
	}
	if Redact(r, nil).Results[0].Analysis != r.Results[0].Analysis {
		t.Fatalf("nil sanitizer should return the report unchanged")
	}
}

func TestSanitizeFilePart(t *testing.T) {
	tests := map[string]string{
		"Antarctic Football League": "antarctic_football_league",
		"  ":                        "tenant",
		"a/b:c":                     "a_b_c",
	}
	for in, want := range tests {
		if got := sanitizeFilePart(in); got != want {
			t.Fatalf("sanitizeFilePart(%q) = %q, want %q", in, got, want)
		}
	}
}
