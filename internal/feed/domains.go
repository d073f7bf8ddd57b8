package feed

import (
	"net/url"
	"sort"
	"strings"

	"golang.org/x/net/publicsuffix"

	"github.com/MOYARU/storyscan/internal/story"
)

type DomainCount struct {
	Domain string `json:"domain"`
	Count  int    `json:"count"`
}

// Domains counts action URLs by registrable domain (eTLD+1), most used
// first. URLs without a host are skipped.
func Domains(stories []story.Story) []DomainCount {
	counts := make(map[string]int)
	for _, st := range stories {
		for _, p := range st.Pages {
			if p.Action == nil {
				continue
			}
			if d := registrableDomain(p.Action.URL); d != "" {
				counts[d]++
			}
		}
	}

	out := make([]DomainCount, 0, len(counts))
	for d, c := range counts {
		out = append(out, DomainCount{Domain: d, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Domain < out[j].Domain
		}
		return out[i].Count > out[j].Count
	})
	return out
}

func registrableDomain(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return ""
	}
	etld1, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}
	return etld1
}
