package output

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sort"

	"github.com/MOYARU/storyscan/internal/feed"
	msges "github.com/MOYARU/storyscan/internal/messages"
	"github.com/MOYARU/storyscan/internal/report"
)

// HTML report
type HTMLReportData struct {
	ReportID     string
	TenantName   string
	LastSyncedAt string
	AnalyzedAt   string
	TotalStories int
	Failed       int
	AverageScore string
	AverageGrade string
	TotalIssues  int
	Summary      SeveritySummary
	CategoryRows []CategorySummaryRow
	Stories      []TemplateStory
	Domains      []feed.DomainCount

	UITitle     string
	UIStrengths string
	UISuggest   string
	UIDomains   string
}

type TemplateStory struct {
	report.StoryResult
	Score string
	Grade string
	// Issues are ordered worst first.
	Issues []report.Issue
	Worst  string
}

type CategorySummaryRow struct {
	Category string
	Critical int
	High     int
	Medium   int
	Low      int
	Total    int
}

// SaveHTMLReport renders the report as a standalone HTML page into dir and
// returns the file path.
func SaveHTMLReport(dir string, r report.Report, domains []feed.DomainCount) (string, error) {
	t, err := template.New("report").Parse(htmlTemplate)
	if err != nil {
		return "", err
	}

	filename := filepath.Join(dir, reportFilename(r, "html"))
	f, err := os.Create(filename)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := t.Execute(f, buildHTMLData(r, domains)); err != nil {
		return "", err
	}
	return filename, nil
}

func buildHTMLData(r report.Report, domains []feed.DomainCount) HTMLReportData {
	avg := r.AverageScore()
	data := HTMLReportData{
		ReportID:     r.ID,
		TenantName:   r.TenantName,
		LastSyncedAt: r.LastSyncedAt,
		AnalyzedAt:   r.AnalyzedAt.Format("2006-01-02 15:04:05 MST"),
		TotalStories: r.TotalStories,
		Failed:       r.FailedStories,
		AverageScore: fmt.Sprintf("%.1f", avg),
		AverageGrade: string(report.GradeScore(avg)),
		TotalIssues:  r.TotalIssues(),
		Summary:      summarize(r),
		CategoryRows: buildCategoryRows(r),
		Domains:      domains,
		UITitle:      msges.GetUIMessage("ConsoleReportTitle"),
		UIStrengths:  msges.GetUIMessage("ConsoleStrengths"),
		UISuggest:    msges.GetUIMessage("ConsoleSuggestion"),
		UIDomains:    msges.GetUIMessage("ConsoleDomainsTitle"),
	}

	for _, res := range r.Results {
		ts := TemplateStory{StoryResult: res}
		if res.Analysis != nil {
			ts.Score = fmt.Sprintf("%.1f", res.Analysis.OverallScore)
			ts.Grade = string(report.GradeScore(res.Analysis.OverallScore))
			ts.Issues = report.BySeverity(res.Analysis.Issues)
			ts.Worst = string(res.Analysis.WorstSeverity())
		}
		data.Stories = append(data.Stories, ts)
	}
	return data
}

func buildCategoryRows(r report.Report) []CategorySummaryRow {
	byCategory := map[report.Category]*CategorySummaryRow{}
	for _, res := range r.Results {
		if res.Analysis == nil {
			continue
		}
		for _, issue := range res.Analysis.Issues {
			row, ok := byCategory[issue.Category]
			if !ok {
				row = &CategorySummaryRow{Category: string(issue.Category)}
				byCategory[issue.Category] = row
			}
			switch issue.Severity {
			case report.SeverityCritical:
				row.Critical++
			case report.SeverityHigh:
				row.High++
			case report.SeverityMedium:
				row.Medium++
			default:
				row.Low++
			}
			row.Total++
		}
	}

	rows := make([]CategorySummaryRow, 0, len(byCategory))
	for _, row := range byCategory {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Total == rows[j].Total {
			return rows[i].Category < rows[j].Category
		}
		return rows[i].Total > rows[j].Total
	})
	return rows
}

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.UITitle}} - {{.TenantName}}</title>
    <style>
        :root {
            --text: #16324d;
            --muted: #5b738c;
            --line: #d9e1ea;
            --critical: #9b2c9b;
            --high: #d64545;
            --medium: #e6a900;
            --low: #1d6eea;
            --good: #3f9f5f;
            --fair: #e6a900;
            --poor: #d64545;
            --radius-md: 12px;
            --shadow-2: 0 2px 8px rgba(16, 53, 88, 0.06);
        }
        * { box-sizing: border-box; }
        body {
            font-family: "Segoe UI", "Inter", "Helvetica Neue", Arial, sans-serif;
            line-height: 1.6;
            color: var(--text);
            margin: 0;
            padding: 28px 16px 40px;
        }
        .page { max-width: 1100px; margin: 0 auto; }
        h1, h2, h3 { margin: 0; color: #0b3d6e; }
        .header, .section {
            padding: 20px;
            margin-bottom: 20px;
            border: 1px solid var(--line);
            border-radius: var(--radius-md);
        }
        .meta { color: var(--muted); }
        .cards { display: grid; grid-template-columns: repeat(auto-fit, minmax(150px, 1fr)); gap: 12px; margin-bottom: 20px; }
        .card { padding: 14px; border: 1px solid var(--line); border-radius: var(--radius-md); box-shadow: var(--shadow-2); }
        .card h3 { font-size: 1.8rem; line-height: 1; }
        .card p { margin: 0; color: var(--muted); font-weight: 600; }
        .good { color: var(--good); }
        .fair { color: var(--fair); }
        .poor { color: var(--poor); }
        .story {
            padding: 18px;
            border-radius: var(--radius-md);
            box-shadow: var(--shadow-2);
            margin-bottom: 14px;
            border: 1px solid var(--line);
            border-left: 6px solid #a7b7c7;
        }
        .story.good { border-left-color: var(--good); }
        .story.fair { border-left-color: var(--fair); }
        .story.poor, .story.rejected { border-left-color: var(--poor); }
        .story-header { display: flex; justify-content: space-between; align-items: center; }
        .issue { padding: 10px 14px; margin-top: 10px; border-radius: 10px; border: 1px solid var(--line); background: #f7fbff; }
        .severity-badge { padding: 3px 9px; border-radius: 999px; color: #fff; font-weight: 700; font-size: 0.76rem; text-transform: uppercase; }
        .bg-critical { background-color: var(--critical); }
        .bg-high { background-color: var(--high); }
        .bg-medium { background-color: var(--medium); color: #1d1d1d; }
        .bg-low { background-color: var(--low); }
        .fix { color: #245f38; }
        .strengths li { color: #2d7f4a; }
        table { width: 100%; border-collapse: collapse; font-size: .95rem; }
        th, td { border-bottom: 1px solid #e7edf4; padding: 8px 10px; text-align: right; }
        th:first-child, td:first-child { text-align: left; }
        thead th { background: #f5f9fd; color: #285b8a; }
        code { background: #f2f8ff; padding: 2px 6px; border-radius: 6px; border: 1px solid var(--line); }
    </style>
</head>
<body>
<div class="page">
    <div class="header">
        <h1>{{.UITitle}}</h1>
        <p class="meta">{{.TenantName}}{{if .LastSyncedAt}} &middot; synced {{.LastSyncedAt}}{{end}} &middot; analyzed {{.AnalyzedAt}}</p>
        <p class="meta">Report <code>{{.ReportID}}</code></p>
    </div>

    <div class="cards">
        <div class="card"><h3>{{.TotalStories}}</h3><p>Stories</p></div>
        <div class="card {{.AverageGrade}}"><h3>{{.AverageScore}}</h3><p>Average score</p></div>
        <div class="card"><h3>{{.TotalIssues}}</h3><p>Issues</p></div>
        <div class="card"><h3>{{.Failed}}</h3><p>Rejected</p></div>
    </div>

    {{if .CategoryRows}}
    <div class="section">
        <h2>Issues by category</h2>
        <table>
            <thead><tr><th>Category</th><th>Critical</th><th>High</th><th>Medium</th><th>Low</th><th>Total</th></tr></thead>
            <tbody>
            {{range .CategoryRows}}
                <tr><td>{{.Category}}</td><td>{{.Critical}}</td><td>{{.High}}</td><td>{{.Medium}}</td><td>{{.Low}}</td><td>{{.Total}}</td></tr>
            {{end}}
            </tbody>
        </table>
    </div>
    {{end}}

    {{range .Stories}}
    {{if .Analysis}}
    <div class="story {{.Grade}}">
        <div class="story-header">
            <h3>{{.StoryTitle}}</h3>
            <strong class="{{.Grade}}">{{.Score}}/10</strong>
        </div>
        <p class="meta"><code>{{.StoryID}}</code> &middot; {{.Analysis.Summary}}{{if .Worst}} <span class="severity-badge bg-{{.Worst}}">worst: {{.Worst}}</span>{{end}}</p>
        {{range .Issues}}
        <div class="issue">
            <span class="severity-badge bg-{{.Severity}}">{{.Severity}}</span>
            <strong>{{.Location}}</strong> ({{.Category}})
            <div>{{.Description}}</div>
            <div class="fix">{{$.UISuggest}}: {{.Suggestion}}</div>
        </div>
        {{end}}
        {{if .Analysis.Strengths}}
        <p><strong>{{$.UIStrengths}}</strong></p>
        <ul class="strengths">{{range .Analysis.Strengths}}<li>{{.}}</li>{{end}}</ul>
        {{end}}
    </div>
    {{else}}
    <div class="story rejected">
        <div class="story-header"><h3>{{.StoryTitle}}</h3><strong class="poor">rejected</strong></div>
        <p class="meta"><code>{{.StoryID}}</code></p>
        <p>{{.Error}}</p>
    </div>
    {{end}}
    {{end}}

    {{if .Domains}}
    <div class="section">
        <h2>{{.UIDomains}}</h2>
        <table>
            <thead><tr><th>Domain</th><th>Actions</th></tr></thead>
            <tbody>{{range .Domains}}<tr><td>{{.Domain}}</td><td>{{.Count}}</td></tr>{{end}}</tbody>
        </table>
    </div>
    {{end}}
</div>
</body>
</html>
`
