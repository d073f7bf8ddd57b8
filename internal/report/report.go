package report

import (
	"sort"
	"time"
)

type Severity string
type Category string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"

	CategoryConsistency     Category = "consistency"
	CategoryProfessionalism Category = "professionalism"
	CategoryTechnical       Category = "technical"
	CategoryBrand           Category = "brand"
	CategoryAccuracy        Category = "accuracy"
)

// Rank orders severities worst first: critical=4 down to low=1, unknown=0.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 4
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

type Issue struct {
	Severity    Severity `json:"severity"`
	Category    Category `json:"category"`
	Location    string   `json:"location"`
	Description string   `json:"description"`
	Suggestion  string   `json:"suggestion"`
}

type StoryAnalysis struct {
	OverallScore float64  `json:"overall_score"`
	Issues       []Issue  `json:"issues"`
	Strengths    []string `json:"strengths"`
	Summary      string   `json:"summary"`
}

// WorstSeverity is the highest-ranked severity among the issues, or "" when
// there are none.
func (a StoryAnalysis) WorstSeverity() Severity {
	var worst Severity
	for _, issue := range a.Issues {
		if issue.Severity.Rank() > worst.Rank() {
			worst = issue.Severity
		}
	}
	return worst
}

// BySeverity returns a copy of issues ordered worst first. Issues of equal
// severity keep their evaluation order.
func BySeverity(issues []Issue) []Issue {
	out := append([]Issue(nil), issues...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Severity.Rank() > out[j].Severity.Rank()
	})
	return out
}

// StoryResult pairs a story with its analysis. Exactly one of Analysis and
// Error is set.
type StoryResult struct {
	StoryID    string         `json:"story_id"`
	StoryTitle string         `json:"story_title"`
	Analysis   *StoryAnalysis `json:"analysis,omitempty"`
	Error      string         `json:"error,omitempty"`
}

type Report struct {
	ID            string        `json:"id"`
	TenantID      string        `json:"tenant_id,omitempty"`
	TenantName    string        `json:"tenant_name"`
	LastSyncedAt  string        `json:"last_synced_at,omitempty"`
	AnalyzedAt    time.Time     `json:"analyzed_at"`
	TotalStories  int           `json:"total_stories"`
	FailedStories int           `json:"failed_stories"`
	Results       []StoryResult `json:"results"`
}

// AverageScore is the mean score of the analyzed stories, rounded like a
// story score. It is 0 when nothing was analyzed.
func (r Report) AverageScore() float64 {
	var sum float64
	n := 0
	for _, res := range r.Results {
		if res.Analysis == nil {
			continue
		}
		sum += res.Analysis.OverallScore
		n++
	}
	if n == 0 {
		return 0
	}
	return RoundScore(sum / float64(n))
}

func (r Report) TotalIssues() int {
	total := 0
	for _, res := range r.Results {
		if res.Analysis != nil {
			total += len(res.Analysis.Issues)
		}
	}
	return total
}

// SeverityCounts tallies issues across all analyzed stories.
func (r Report) SeverityCounts() map[Severity]int {
	counts := make(map[Severity]int)
	for _, res := range r.Results {
		if res.Analysis == nil {
			continue
		}
		for _, issue := range res.Analysis.Issues {
			counts[issue.Severity]++
		}
	}
	return counts
}
