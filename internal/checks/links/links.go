package links

import (
	"strings"

	"github.com/MOYARU/storyscan/internal/checks"
	ctxpkg "github.com/MOYARU/storyscan/internal/checks/context"
	"github.com/MOYARU/storyscan/internal/checks/text"
)

// CheckDomainConsistency passes when every action URL starts with "http" and
// contains the tenant name, spaces removed, case-insensitively.
func CheckDomainConsistency(ctx *ctxpkg.Context) checks.Outcome {
	tenant := text.CompactLower(ctx.Tenant())
	for _, action := range ctx.Actions() {
		if !strings.HasPrefix(action.URL, "http") || !strings.Contains(strings.ToLower(action.URL), tenant) {
			return checks.Raise()
		}
	}
	return checks.Pass()
}
