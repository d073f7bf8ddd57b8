package report

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	reBearer    = regexp.MustCompile(`(?i)\b(bearer\s+)([a-z0-9\-\._~\+\/]+=*)`)
	reApiKeyKV  = regexp.MustCompile(`(?i)\b(api[_-]?key|access[_-]?token|token|secret|authorization)\s*[:=]\s*([^\s,;]+)`)
	reLongToken = regexp.MustCompile(`\b[a-zA-Z0-9_\-]{24,}\b`)
)

// Sanitizer redacts credentials that leak into issue text through CTA
// labels or action URLs before a report is rendered.
type Sanitizer struct {
	custom []*regexp.Regexp
}

// NewSanitizer compiles extra redaction patterns. Patterns that fail to
// compile are skipped and returned so the caller can log them.
func NewSanitizer(patterns []string) (*Sanitizer, []string) {
	s := &Sanitizer{}
	var rejected []string
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			rejected = append(rejected, p)
			continue
		}
		s.custom = append(s.custom, re)
	}
	return s, rejected
}

func (s *Sanitizer) Issue(issue Issue) Issue {
	issue.Description = s.Text(issue.Description)
	issue.Suggestion = s.Text(issue.Suggestion)
	return issue
}

// Analysis returns a sanitized copy; the input is not modified.
func (s *Sanitizer) Analysis(a StoryAnalysis) StoryAnalysis {
	issues := make([]Issue, len(a.Issues))
	for i, issue := range a.Issues {
		issues[i] = s.Issue(issue)
	}
	a.Issues = issues
	return a
}

func (s *Sanitizer) Text(in string) string {
	out := in
	out = reBearer.ReplaceAllString(out, "${1}<redacted>")
	out = reApiKeyKV.ReplaceAllString(out, "${1}=<redacted>")
	out = reLongToken.ReplaceAllStringFunc(out, func(tok string) string {
		if len(tok) <= 10 {
			return "<redacted>"
		}
		return tok[:4] + "...<redacted>..." + tok[len(tok)-4:]
	})
	for _, re := range s.custom {
		out = re.ReplaceAllString(out, "<redacted>")
	}
	return out
}

func (s *Sanitizer) URL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return s.Text(raw)
	}

	q := u.Query()
	for k := range q {
		kl := strings.ToLower(k)
		if strings.Contains(kl, "token") ||
			strings.Contains(kl, "key") ||
			strings.Contains(kl, "secret") ||
			strings.Contains(kl, "auth") ||
			strings.Contains(kl, "session") ||
			strings.Contains(kl, "pass") {
			q.Set(k, "<redacted>")
		}
	}
	u.RawQuery = q.Encode()
	return u.String()
}
