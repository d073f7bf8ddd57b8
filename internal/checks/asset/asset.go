package asset

import (
	"strings"

	"github.com/MOYARU/storyscan/internal/checks"
	ctxpkg "github.com/MOYARU/storyscan/internal/checks/context"
)

// CheckStoryIDInAsset flags page assets whose URL does not embed the story ID.
func CheckStoryIDInAsset(ctx *ctxpkg.Context) checks.Outcome {
	if ctx.Page == nil {
		return checks.Skip()
	}
	if !strings.Contains(ctx.Page.AssetURL, ctx.Story.ID) {
		return checks.Raise()
	}
	return checks.Skip()
}
