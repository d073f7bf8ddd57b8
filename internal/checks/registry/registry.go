package registry

import (
	"github.com/MOYARU/storyscan/internal/checks"
	"github.com/MOYARU/storyscan/internal/checks/asset"
	"github.com/MOYARU/storyscan/internal/checks/cta"
	"github.com/MOYARU/storyscan/internal/checks/links"
	"github.com/MOYARU/storyscan/internal/checks/metadata"
	"github.com/MOYARU/storyscan/internal/checks/title"
	msges "github.com/MOYARU/storyscan/internal/messages"
	"github.com/MOYARU/storyscan/internal/report"
)

// DefaultChecks returns the checks in evaluation order. The order is part of
// the output: issues are reported in the order their checks ran.
func DefaultChecks() []checks.Check {
	return []checks.Check{
		{
			ID:       "CTA_TICKET_URL_MISMATCH",
			Title:    msges.GetMessage("CTA_TICKET_URL_MISMATCH").Title,
			Scope:    checks.ScopePage,
			Severity: report.SeverityMedium,
			Category: report.CategoryConsistency,
			Penalty:  1.5,
			Run:      cta.CheckTicketURL,
		},
		{
			ID:       "CTA_HIGHLIGHTS_MATCH_REPORT",
			Title:    msges.GetMessage("CTA_HIGHLIGHTS_MATCH_REPORT").Title,
			Scope:    checks.ScopePage,
			Severity: report.SeverityLow,
			Category: report.CategoryConsistency,
			Penalty:  0.5,
			Run:      cta.CheckHighlightsURL,
		},
		{
			ID:       "ASSET_STORY_ID_MISSING",
			Title:    msges.GetMessage("ASSET_STORY_ID_MISSING").Title,
			Scope:    checks.ScopePage,
			Severity: report.SeverityLow,
			Category: report.CategoryTechnical,
			Penalty:  0.3,
			Run:      asset.CheckStoryIDInAsset,
		},
		{
			ID:       "TITLE_CAPITALIZATION",
			Title:    msges.GetMessage("TITLE_CAPITALIZATION").Title,
			Scope:    checks.ScopeStory,
			Severity: report.SeverityLow,
			Category: report.CategoryProfessionalism,
			Location: "Story Title",
			Penalty:  0.5,
			Run:      title.CheckCapitalization,
		},
		{
			ID:       "TITLE_DOUBLE_SPACE",
			Title:    msges.GetMessage("TITLE_DOUBLE_SPACE").Title,
			Scope:    checks.ScopeStory,
			Severity: report.SeverityMedium,
			Category: report.CategoryProfessionalism,
			Location: "Story Title",
			Penalty:  1.0,
			Run:      title.CheckSpacing,
		},
		{
			ID:    "TEAM_NAMES_PRESENT",
			Title: msges.GetMessage("TEAM_NAMES_PRESENT").Title,
			Scope: checks.ScopeStory,
			Run:   metadata.CheckTeamNames,
		},
		{
			ID:       "CTA_FORMATTING",
			Title:    msges.GetMessage("CTA_FORMATTING").Title,
			Scope:    checks.ScopeStory,
			Severity: report.SeverityMedium,
			Category: report.CategoryBrand,
			Location: "CTAs",
			Penalty:  1.0,
			Run:      cta.CheckFormatting,
		},
		{
			ID:    "DATE_CONSISTENCY",
			Title: msges.GetMessage("DATE_CONSISTENCY").Title,
			Scope: checks.ScopeStory,
			Run:   metadata.CheckDateConsistency,
		},
		{
			ID:       "URL_DOMAIN_CONSISTENCY",
			Title:    msges.GetMessage("URL_DOMAIN_CONSISTENCY").Title,
			Scope:    checks.ScopeStory,
			Severity: report.SeverityHigh,
			Category: report.CategoryTechnical,
			Location: "Action URLs",
			Penalty:  2.0,
			Run:      links.CheckDomainConsistency,
		},
	}
}
