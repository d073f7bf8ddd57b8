package scanner

import (
	"fmt"

	"github.com/MOYARU/storyscan/internal/checks"
	ctxpkg "github.com/MOYARU/storyscan/internal/checks/context"
	"github.com/MOYARU/storyscan/internal/checks/registry"
	msges "github.com/MOYARU/storyscan/internal/messages"
	"github.com/MOYARU/storyscan/internal/report"
	"github.com/MOYARU/storyscan/internal/story"
)

// Scanner applies an ordered check list to one story at a time. It holds no
// per-call state, so one Scanner can serve concurrent Analyze calls.
type Scanner struct {
	Checks []checks.Check

	pageChecks  []checks.Check
	storyChecks []checks.Check
}

type Option func(*scannerOptions)

type scannerOptions struct {
	checks   []checks.Check
	disabled map[string]bool
}

// WithChecks replaces the default registry.
func WithChecks(list []checks.Check) Option {
	return func(o *scannerOptions) {
		o.checks = list
	}
}

// WithDisabled drops the given check IDs. Unknown IDs are ignored.
func WithDisabled(ids ...string) Option {
	return func(o *scannerOptions) {
		for _, id := range ids {
			o.disabled[id] = true
		}
	}
}

func New(opts ...Option) *Scanner {
	o := &scannerOptions{
		checks:   registry.DefaultChecks(),
		disabled: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(o)
	}

	s := &Scanner{}
	for _, c := range o.checks {
		if o.disabled[c.ID] {
			continue
		}
		s.Checks = append(s.Checks, c)
		switch c.Scope {
		case checks.ScopePage:
			s.pageChecks = append(s.pageChecks, c)
		default:
			s.storyChecks = append(s.storyChecks, c)
		}
	}
	return s
}

// Analyze validates st and runs every check against it. Page checks run for
// each page in order, then story checks run once. The only error is a
// *story.ValidationError.
func (s *Scanner) Analyze(st story.Story) (report.StoryAnalysis, error) {
	if err := st.Validate(); err != nil {
		return report.StoryAnalysis{}, err
	}

	acc := accumulator{
		score:     report.BaselineScore,
		issues:    []report.Issue{},
		strengths: []string{},
	}

	for i := range st.Pages {
		ctx := ctxpkg.ForPage(st, i)
		for _, c := range s.pageChecks {
			acc.apply(c, ctx)
		}
	}

	ctx := ctxpkg.ForStory(st)
	for _, c := range s.storyChecks {
		acc.apply(c, ctx)
	}

	return report.StoryAnalysis{
		OverallScore: report.FinalizeScore(acc.score),
		Issues:       acc.issues,
		Strengths:    acc.strengths,
		Summary:      report.Summarize(acc.issues),
	}, nil
}

type accumulator struct {
	score     float64
	issues    []report.Issue
	strengths []string
}

func (a *accumulator) apply(c checks.Check, ctx *ctxpkg.Context) {
	out := c.Run(ctx)
	msg := msges.GetMessage(c.ID)

	switch {
	case out.Raised:
		location := c.Location
		if c.Scope == checks.ScopePage {
			location = ctx.Location()
		}
		description := msg.Description
		if len(out.Args) > 0 {
			description = fmt.Sprintf(description, out.Args...)
		}
		a.issues = append(a.issues, report.Issue{
			Severity:    c.Severity,
			Category:    c.Category,
			Location:    location,
			Description: description,
			Suggestion:  msg.Suggestion,
		})
		a.score -= c.Penalty
	case out.Passed && msg.Strength != "":
		a.strengths = append(a.strengths, msg.Strength)
	}
}
