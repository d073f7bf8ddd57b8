package scanner

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"testing"

	"github.com/MOYARU/storyscan/internal/report"
	"github.com/MOYARU/storyscan/internal/story"
)

const (
	strengthTeams = "Clear team identification in categories"
	strengthCTAs  = "Professional, action-oriented CTAs throughout"
	strengthDates = "Date consistency between metadata and categories"
	strengthURLs  = "All URLs properly formatted and domain-consistent"
)

func page(n int, cta, url string) story.Page {
	return story.Page{
		ID:       fmt.Sprintf("page_%d", n),
		Type:     story.PageTypeImage,
		AssetURL: fmt.Sprintf("https://cdn.example.com/assets/story_1/page_%d.jpg", n),
		Action:   &story.Action{CTA: cta, URL: url},
	}
}

func newStory(title string, pages ...story.Page) story.Story {
	if pages == nil {
		pages = []story.Page{}
	}
	return story.Story{
		ID:    "story_1",
		Title: title,
		Pages: pages,
		Context: &story.Context{
			Categories:  []string{"Matchday"},
			Tenant:      "Example FC",
			PublishDate: "2026-02-14",
		},
	}
}

func fixtureStories() []story.Story {
	ctx := func(extra ...string) *story.Context {
		return &story.Context{
			Categories:  append([]string{"Penguin FC", "Seals United", "PFC v SU – 14/02/26"}, extra...),
			Tenant:      "Antarctic Football League",
			PublishDate: "2026-02-14",
		}
	}
	return []story.Story{
		{
			ID:    "story_123",
			Title: "Last 5 meetings: Penguin FC vs Seals United",
			Pages: []story.Page{
				{ID: "page_1", Type: story.PageTypeVideo, AssetURL: "https://cdn.storyteller.com/assets/story_123/page_1.mp4", Action: &story.Action{CTA: "Watch highlights", URL: "https://antarcticfootballleague.com/match-report"}},
				{ID: "page_2", Type: story.PageTypeImage, AssetURL: "https://cdn.storyteller.com/assets/story_123/page_2.jpg", Action: &story.Action{CTA: "Buy tickets", URL: "https://antarcticfootballleague.com/highlights"}},
			},
			Context: ctx(),
		},
		{
			ID:    "story_124",
			Title: "Matchday build-up: PFC v SU",
			Pages: []story.Page{
				{ID: "page_1", Type: story.PageTypeImage, AssetURL: "https://cdn.storyteller.com/assets/story_124/page_1.jpg", Action: &story.Action{CTA: "View lineup", URL: "https://antarcticfootballleague.com/lineup"}},
				{ID: "page_2", Type: story.PageTypeVideo, AssetURL: "https://cdn.storyteller.com/assets/story_124/page_2.mp4", Action: &story.Action{CTA: "Live match centre", URL: "https://antarcticfootballleague.com/live"}},
			},
			Context: ctx("Matchday"),
		},
	}
}

func mustAnalyze(t *testing.T, s *Scanner, st story.Story) report.StoryAnalysis {
	t.Helper()
	got, err := s.Analyze(st)
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}
	return got
}

func TestAnalyzeFixtureStories(t *testing.T) {
	s := New()
	stories := fixtureStories()

	first := mustAnalyze(t, s, stories[0])
	wantIssues := []report.Issue{
		{
			Severity:    report.SeverityLow,
			Category:    report.CategoryConsistency,
			Location:    "Page 1",
			Description: `CTA mentions "highlights" but URL suggests "match-report" - slight semantic mismatch`,
			Suggestion:  "Align terminology: use either 'highlights' or 'match report' consistently",
		},
		{
			Severity:    report.SeverityMedium,
			Category:    report.CategoryConsistency,
			Location:    "Page 2",
			Description: `CTA says "Buy tickets" but URL points to "highlights"`,
			Suggestion:  "Update URL to point to ticket purchase page or change CTA to match actual destination",
		},
	}
	if !reflect.DeepEqual(first.Issues, wantIssues) {
		t.Fatalf("issues mismatch:\n got=%+v\nwant=%+v", first.Issues, wantIssues)
	}
	if first.OverallScore != 8.0 {
		t.Fatalf("unexpected score: %v", first.OverallScore)
	}
	if first.Summary != "2 issues detected across 1 categories" {
		t.Fatalf("unexpected summary: %q", first.Summary)
	}
	if want := []string{strengthTeams, strengthCTAs, strengthURLs}; !reflect.DeepEqual(first.Strengths, want) {
		t.Fatalf("strengths mismatch: got=%v want=%v", first.Strengths, want)
	}

	second := mustAnalyze(t, s, stories[1])
	if second.OverallScore != 10.0 || len(second.Issues) != 0 {
		t.Fatalf("expected a clean story, got score=%v issues=%+v", second.OverallScore, second.Issues)
	}
	if second.Summary != report.NoIssuesSummary {
		t.Fatalf("unexpected summary: %q", second.Summary)
	}
}

func TestAnalyzeScenarios(t *testing.T) {
	tests := []struct {
		name      string
		story     story.Story
		score     float64
		locations []string
		severity  []report.Severity
	}{
		{
			name:      "ticket cta with highlights url",
			story:     newStory("Derby day", page(1, "Buy tickets", "https://examplefc.com/highlights")),
			score:     8.5,
			locations: []string{"Page 1"},
			severity:  []report.Severity{report.SeverityMedium},
		},
		{
			name:  "ticket cta with ticket url",
			story: newStory("Derby day", page(1, "Buy Tickets", "https://examplefc.com/TICKETS")),
			score: 10,
		},
		{
			name:      "highlights cta with match report url",
			story:     newStory("Derby day", page(1, "Watch highlights", "https://examplefc.com/match-report")),
			score:     9.5,
			locations: []string{"Page 1"},
			severity:  []report.Severity{report.SeverityLow},
		},
		{
			name:      "lowercase title",
			story:     newStory("hello world", page(1, "View lineup", "https://examplefc.com/lineup")),
			score:     9.5,
			locations: []string{"Story Title"},
			severity:  []report.Severity{report.SeverityLow},
		},
		{
			name:  "capitalized title",
			story: newStory("Hello world", page(1, "View lineup", "https://examplefc.com/lineup")),
			score: 10,
		},
		{
			name:      "double space in title",
			story:     newStory("Hello  world", page(1, "View lineup", "https://examplefc.com/lineup")),
			score:     9,
			locations: []string{"Story Title"},
			severity:  []report.Severity{report.SeverityMedium},
		},
		{
			name:      "short cta",
			story:     newStory("Derby day", page(1, "Buy", "https://examplefc.com/shop")),
			score:     9,
			locations: []string{"CTAs"},
			severity:  []report.Severity{report.SeverityMedium},
		},
		{
			name:      "lowercase cta",
			story:     newStory("Derby day", page(1, "view lineup", "https://examplefc.com/lineup")),
			score:     9,
			locations: []string{"CTAs"},
			severity:  []report.Severity{report.SeverityMedium},
		},
		{
			name:      "foreign domain",
			story:     newStory("Derby day", page(1, "View lineup", "https://other.com/lineup")),
			score:     8,
			locations: []string{"Action URLs"},
			severity:  []report.Severity{report.SeverityHigh},
		},
		{
			name:      "non http url",
			story:     newStory("Derby day", page(1, "View lineup", "ftp://examplefc.com/lineup")),
			score:     8,
			locations: []string{"Action URLs"},
			severity:  []report.Severity{report.SeverityHigh},
		},
		{
			name:  "mixed case domain",
			story: newStory("Derby day", page(1, "View lineup", "https://ExampleFC.com/lineup")),
			score: 10,
		},
		{
			name: "asset without story id",
			story: func() story.Story {
				p := page(1, "View lineup", "https://examplefc.com/lineup")
				p.AssetURL = "https://cdn.example.com/assets/page_1.jpg"
				return newStory("Derby day", p)
			}(),
			score:     9.7,
			locations: []string{"Page 1"},
			severity:  []report.Severity{report.SeverityLow},
		},
		{
			name: "issues keep evaluation order",
			story: newStory("derby  day",
				page(1, "Buy tickets", "https://examplefc.com/shop"),
				page(2, "Watch highlights", "https://other.com/match-report"),
			),
			score:     10 - 1.5 - 0.5 - 0.5 - 1.0 - 2.0,
			locations: []string{"Page 1", "Page 2", "Story Title", "Story Title", "Action URLs"},
			severity: []report.Severity{
				report.SeverityMedium, report.SeverityLow, report.SeverityLow, report.SeverityMedium, report.SeverityHigh,
			},
		},
	}

	s := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustAnalyze(t, s, tt.story)
			if got.OverallScore != report.FinalizeScore(tt.score) {
				t.Fatalf("score mismatch: got=%v want=%v", got.OverallScore, tt.score)
			}
			if len(got.Issues) != len(tt.locations) {
				t.Fatalf("issue count mismatch: got=%+v want locations=%v", got.Issues, tt.locations)
			}
			for i, issue := range got.Issues {
				if issue.Location != tt.locations[i] || issue.Severity != tt.severity[i] {
					t.Fatalf("issue %d mismatch: got=%s/%s want=%s/%s", i, issue.Location, issue.Severity, tt.locations[i], tt.severity[i])
				}
			}
			if got.Summary != report.Summarize(got.Issues) {
				t.Fatalf("summary not derived from issues: %q", got.Summary)
			}
		})
	}
}

func TestAnalyzeEmptyPages(t *testing.T) {
	got := mustAnalyze(t, New(), newStory("Derby day"))

	if len(got.Issues) != 0 {
		t.Fatalf("expected no issues, got %+v", got.Issues)
	}
	if got.OverallScore != 10 {
		t.Fatalf("unexpected score: %v", got.OverallScore)
	}
	if want := []string{strengthCTAs, strengthURLs}; !reflect.DeepEqual(got.Strengths, want) {
		t.Fatalf("strengths mismatch: got=%v want=%v", got.Strengths, want)
	}
}

func TestAnalyzeScoreClampsAtMinimum(t *testing.T) {
	var pages []story.Page
	for i := 1; i <= 7; i++ {
		p := page(i, "Buy tickets", "https://examplefc.com/shop")
		p.AssetURL = "https://cdn.example.com/unrelated.jpg"
		pages = append(pages, p)
	}
	got := mustAnalyze(t, New(), newStory("derby  day", pages...))

	if got.OverallScore != report.MinScore {
		t.Fatalf("expected clamped score 1.0, got %v", got.OverallScore)
	}
	if len(got.Issues) != 16 {
		t.Fatalf("expected 16 issues, got %d", len(got.Issues))
	}
	if got.Summary != "16 issues detected across 3 categories" {
		t.Fatalf("unexpected summary: %q", got.Summary)
	}
}

func TestAnalyzeDateConsistency(t *testing.T) {
	tests := []struct {
		name       string
		categories []string
		date       string
		want       bool
	}{
		{name: "short date present", categories: []string{"A v B – 2/14/26"}, date: "2026-02-14", want: true},
		{name: "day-first date", categories: []string{"PFC v SU – 14/02/26"}, date: "2026-02-14", want: false},
		{name: "two digit month", categories: []string{"Cup 11/05"}, date: "2026-11-05", want: true},
		{name: "only first dated category counts", categories: []string{"1/1", "Cup 2/14"}, date: "2026-02-14", want: false},
		{name: "no dated category", categories: []string{"Matchday"}, date: "2026-02-14", want: false},
	}

	s := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := newStory("Derby day")
			st.Context.Categories = tt.categories
			st.Context.PublishDate = tt.date
			got := mustAnalyze(t, s, st)

			has := false
			for _, strength := range got.Strengths {
				if strength == strengthDates {
					has = true
				}
			}
			if has != tt.want {
				t.Fatalf("date strength mismatch: got=%v want=%v (strengths=%v)", has, tt.want, got.Strengths)
			}
			if len(got.Issues) != 0 {
				t.Fatalf("date check must never raise issues: %+v", got.Issues)
			}
		})
	}
}

func TestAnalyzeIsIdempotent(t *testing.T) {
	s := New()
	for _, st := range fixtureStories() {
		a := mustAnalyze(t, s, st)
		b := mustAnalyze(t, s, st)
		if !reflect.DeepEqual(a, b) {
			t.Fatalf("analysis differs between calls for %s", st.ID)
		}
	}
}

func TestAnalyzeValidationError(t *testing.T) {
	st := newStory("Derby day")
	st.Context = nil

	_, err := New().Analyze(st)
	var ve *story.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *story.ValidationError, got %v", err)
	}
	if ve.StoryID != "story_1" || ve.Field != "context" {
		t.Fatalf("unexpected validation error: %+v", ve)
	}
}

func TestWithDisabled(t *testing.T) {
	st := newStory("Derby day", page(1, "View lineup", "https://other.com/lineup"))

	got := mustAnalyze(t, New(WithDisabled("URL_DOMAIN_CONSISTENCY", "UNKNOWN")), st)
	if got.OverallScore != 10 || len(got.Issues) != 0 {
		t.Fatalf("disabled check still applied: score=%v issues=%+v", got.OverallScore, got.Issues)
	}
	for _, strength := range got.Strengths {
		if strength == strengthURLs {
			t.Fatalf("disabled check still earned its strength")
		}
	}
	if len(New(WithDisabled("URL_DOMAIN_CONSISTENCY")).Checks) != len(New().Checks)-1 {
		t.Fatalf("expected exactly one check to be removed")
	}
}

func TestScoreBoundsAndPrecision(t *testing.T) {
	ctas := []string{"Buy tickets", "buy", "Watch highlights", "View lineup"}
	urls := []string{"https://examplefc.com/match-report", "https://other.com/tickets", "examplefc.com/live"}
	titles := []string{"Derby day", "derby  day", "hello world"}

	s := New()
	for _, title := range titles {
		for _, c := range ctas {
			for _, u := range urls {
				pages := []story.Page{page(1, c, u), page(2, c, u), page(3, c, u)}
				pages[2].AssetURL = "https://cdn.example.com/x.jpg"
				got := mustAnalyze(t, s, newStory(title, pages...))

				if got.OverallScore < report.MinScore || got.OverallScore > report.MaxScore {
					t.Fatalf("score out of bounds: %v", got.OverallScore)
				}
				scaled := got.OverallScore * 10
				if math.Abs(scaled-math.Round(scaled)) > 1e-9 {
					t.Fatalf("score has more than one decimal: %v", got.OverallScore)
				}
			}
		}
	}
}
