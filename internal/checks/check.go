package checks

import (
	context "github.com/MOYARU/storyscan/internal/checks/context"
	"github.com/MOYARU/storyscan/internal/report"
)

type Scope string

const (
	// ScopePage checks run once per page, in page order.
	ScopePage Scope = "page"
	// ScopeStory checks run once per story, after all page checks.
	ScopeStory Scope = "story"
)

type Check struct {
	ID       string
	Title    string
	Scope    Scope
	Severity report.Severity
	Category report.Category
	// Location is used for story-scoped issues; page-scoped issues are
	// located by page number.
	Location string
	Penalty  float64
	Run      func(*context.Context) Outcome
}

// Outcome is what a single check run produced. A check either raises its
// issue, earns its strength, or does nothing.
type Outcome struct {
	Raised bool
	Passed bool
	// Args fill the check's description format.
	Args []any
}

func Raise(args ...any) Outcome {
	return Outcome{Raised: true, Args: args}
}

func Pass() Outcome {
	return Outcome{Passed: true}
}

func Skip() Outcome {
	return Outcome{}
}
