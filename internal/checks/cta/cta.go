package cta

import (
	"github.com/MOYARU/storyscan/internal/checks"
	ctxpkg "github.com/MOYARU/storyscan/internal/checks/context"
	"github.com/MOYARU/storyscan/internal/checks/text"
)

const minCTALength = 3

// CheckTicketURL flags a ticket CTA whose URL does not mention tickets.
func CheckTicketURL(ctx *ctxpkg.Context) checks.Outcome {
	if ctx.Page == nil || ctx.Page.Action == nil {
		return checks.Skip()
	}
	action := ctx.Page.Action
	if text.ContainsFold(action.CTA, "ticket") && !text.ContainsFold(action.URL, "ticket") {
		return checks.Raise(action.CTA, text.URLTail(action.URL))
	}
	return checks.Skip()
}

// CheckHighlightsURL flags a highlights CTA that links to a match report.
func CheckHighlightsURL(ctx *ctxpkg.Context) checks.Outcome {
	if ctx.Page == nil || ctx.Page.Action == nil {
		return checks.Skip()
	}
	action := ctx.Page.Action
	if text.ContainsFold(action.CTA, "highlight") && text.ContainsFold(action.URL, "match-report") {
		return checks.Raise()
	}
	return checks.Skip()
}

// CheckFormatting passes when every CTA is longer than three characters and
// starts upper-case. With no pages it passes vacuously.
func CheckFormatting(ctx *ctxpkg.Context) checks.Outcome {
	for _, action := range ctx.Actions() {
		if text.Length(action.CTA) <= minCTALength || !text.FirstIsUpper(action.CTA) {
			return checks.Raise()
		}
	}
	return checks.Pass()
}
