package title

import (
	"strings"

	"github.com/MOYARU/storyscan/internal/checks"
	ctxpkg "github.com/MOYARU/storyscan/internal/checks/context"
	"github.com/MOYARU/storyscan/internal/checks/text"
)

// CheckCapitalization compares the title with itself first-letter
// upper-cased. It is not a title-case validator.
func CheckCapitalization(ctx *ctxpkg.Context) checks.Outcome {
	t := ctx.Story.Title
	if t != text.UpperFirst(t) {
		return checks.Raise()
	}
	return checks.Skip()
}

func CheckSpacing(ctx *ctxpkg.Context) checks.Outcome {
	if strings.Contains(ctx.Story.Title, "  ") {
		return checks.Raise()
	}
	return checks.Skip()
}
