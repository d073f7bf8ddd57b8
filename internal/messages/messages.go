package messages

import (
	"fmt"
)

type MessageDetail struct {
	Title       string
	Description string
	Suggestion  string
	Strength    string
}

var checkMessages = map[string]MessageDetail{
	"CTA_TICKET_URL_MISMATCH": {
		Title:       "Ticket CTA Points Elsewhere",
		Description: `CTA says "%s" but URL points to "%s"`,
		Suggestion:  "Update URL to point to ticket purchase page or change CTA to match actual destination",
	},
	"CTA_HIGHLIGHTS_MATCH_REPORT": {
		Title:       "Highlights CTA Opens Match Report",
		Description: `CTA mentions "highlights" but URL suggests "match-report" - slight semantic mismatch`,
		Suggestion:  "Align terminology: use either 'highlights' or 'match report' consistently",
	},
	"ASSET_STORY_ID_MISSING": {
		Title:       "Asset Not Traceable to Story",
		Description: "Asset URL doesn't clearly reference parent story ID",
		Suggestion:  "Consider including story_id in asset URL for better traceability",
	},
	"TITLE_CAPITALIZATION": {
		Title:       "Title Capitalization",
		Description: "Title capitalization could be improved",
		Suggestion:  "Use title case or sentence case consistently",
	},
	"TITLE_DOUBLE_SPACE": {
		Title:       "Title Spacing",
		Description: "Multiple consecutive spaces detected",
		Suggestion:  "Remove extra spacing",
	},
	"TEAM_NAMES_PRESENT": {
		Title:    "Team Identification",
		Strength: "Clear team identification in categories",
	},
	"CTA_FORMATTING": {
		Title:       "CTA Formatting",
		Description: "Inconsistent CTA capitalization or formatting",
		Suggestion:  "Standardize CTA formatting (e.g., Title Case or Sentence case)",
		Strength:    "Professional, action-oriented CTAs throughout",
	},
	"DATE_CONSISTENCY": {
		Title:    "Date Consistency",
		Strength: "Date consistency between metadata and categories",
	},
	"URL_DOMAIN_CONSISTENCY": {
		Title:       "Action URL Domain",
		Description: "One or more URLs may not match expected domain pattern",
		Suggestion:  "Verify all URLs point to correct tenant domain",
		Strength:    "All URLs properly formatted and domain-consistent",
	},
}

var uiMessages = map[string]string{
	"ConsoleReportTitle":   "Content Quality Report",
	"ConsoleTenant":        "Tenant: %s",
	"ConsoleLastSynced":    "Last synced: %s",
	"ConsoleStories":       "Stories analyzed: %d",
	"ConsoleFailed":        "Stories rejected: %d",
	"ConsoleAverageScore":  "Average score: %.1f/10",
	"ConsoleTotalIssues":   "Total issues: %d",
	"ConsoleStoryID":       "Story ID: %s",
	"ConsoleScore":         "Quality score: %.1f/10",
	"ConsoleWorst":         "[worst: %s]",
	"ConsoleIssuesFound":   "Issues found (%d)",
	"ConsoleStrengths":     "Strengths",
	"ConsoleSuggestion":    "Suggestion",
	"ConsoleRejected":      "Rejected: %s",
	"ConsoleDomainsTitle":  "Action URL domains",
	"ConsoleChecksTitle":   "Registered checks",
	"StatusLoadingFeed":    "Loading feed: %s",
	"StatusDownloaded":     "Downloaded %d bytes in %d request(s), %s%s",
	"StatusRedirected":     "  redirected by %s (%d)",
	"StatusAnalyzing":      "Analyzing %d stories for %s",
	"AnalysisComplete":     "Analysis complete.",
	"AnalysisCancelled":    "Analysis cancelled.",
	"JSONReportSaved":      "JSON report saved to %s",
	"HTMLReportSaved":      "HTML report saved to %s",
	"JSONReportFailed":     "Failed to save JSON report: %v",
	"HTMLReportFailed":     "Failed to save HTML report: %v",
	"FailUnderTriggered":   "%d stories scored below %.1f or were rejected",
	"ServerListening":      "storyscan API listening on %s",
	"ServerShutdownFailed": "shutdown error: %v",

	"InteractiveWelcome":      "Type 'help' for commands, 'exit' to quit.",
	"InteractiveHelp":         "Commands:",
	"InteractiveExit":         "Bye.",
	"InteractiveErrorFeed":    "Usage: %s <feed.json|feed.yaml> [--json] [--html] [--workers N]",
	"InteractiveErrorUnknown": "Unknown command: %s",
	"InteractiveScanFailed":   "Scan failed: %v",
	"PolicyUpdated":           "Updated %s in %s",
	"PolicyUpdateFailed":      "Failed to update policy: %v",
}

// GetMessage returns the catalog entry for a check ID. Unknown IDs get a
// placeholder so a missing entry is visible in the report instead of blank.
func GetMessage(id string) MessageDetail {
	if msg, ok := checkMessages[id]; ok {
		if msg.Title == "" {
			msg.Title = id
		}
		return msg
	}
	return MessageDetail{
		Title:       "Message Not Found",
		Description: fmt.Sprintf("Message details for ID '%s' not found.", id),
		Suggestion:  "Please check the message ID.",
	}
}

func GetUIMessage(id string, args ...interface{}) string {
	format, ok := uiMessages[id]
	if !ok || format == "" {
		return id
	}
	if len(args) > 0 {
		return fmt.Sprintf(format, args...)
	}
	return format
}
