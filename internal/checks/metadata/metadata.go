package metadata

import (
	"strings"

	"github.com/MOYARU/storyscan/internal/checks"
	ctxpkg "github.com/MOYARU/storyscan/internal/checks/context"
	"github.com/MOYARU/storyscan/internal/checks/text"
)

var teamMarkers = []string{"FC", "United"}

// CheckTeamNames earns a strength when a category looks like a team name.
// Matching is case-sensitive.
func CheckTeamNames(ctx *ctxpkg.Context) checks.Outcome {
	for _, cat := range ctx.Categories() {
		for _, marker := range teamMarkers {
			if strings.Contains(cat, marker) {
				return checks.Pass()
			}
		}
	}
	return checks.Skip()
}

// CheckDateConsistency earns a strength when the first date-like category
// (one containing '/') contains the publish date's short form. A miss is
// silent.
func CheckDateConsistency(ctx *ctxpkg.Context) checks.Outcome {
	dated, ok := firstDatedCategory(ctx.Categories())
	if !ok {
		return checks.Skip()
	}
	if strings.Contains(dated, text.ShortDate(ctx.PublishDate())) {
		return checks.Pass()
	}
	return checks.Skip()
}

func firstDatedCategory(categories []string) (string, bool) {
	for _, cat := range categories {
		if strings.Contains(cat, "/") {
			return cat, true
		}
	}
	return "", false
}
