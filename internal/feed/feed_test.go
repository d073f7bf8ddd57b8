package feed

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/MOYARU/storyscan/internal/checks/scanner"
	"github.com/MOYARU/storyscan/internal/story"
)

func TestLoadJSONAndYAMLAgree(t *testing.T) {
	fromJSON, err := Load("testdata/antarctic.json")
	if err != nil {
		t.Fatalf("Load(json) error: %v", err)
	}
	fromYAML, err := Load("testdata/antarctic.yaml")
	if err != nil {
		t.Fatalf("Load(yaml) error: %v", err)
	}

	if fromJSON.TenantName != "Antarctic Football League" || fromJSON.TenantID != "tenant_antarctic_league_001" {
		t.Fatalf("unexpected envelope: %+v", fromJSON)
	}
	if fromJSON.LastSyncedAt != "2026-02-14T10:05:00Z" {
		t.Fatalf("unexpected last_synced_at: %s", fromJSON.LastSyncedAt)
	}
	if len(fromJSON.Stories) != 2 {
		t.Fatalf("expected 2 stories, got %d", len(fromJSON.Stories))
	}
	first := fromJSON.Stories[0]
	if first.ID != "story_123" || len(first.Pages) != 2 || first.Pages[1].Action.CTA != "Buy tickets" {
		t.Fatalf("unexpected first story: %+v", first)
	}
	if first.Pages[0].Type != story.PageTypeVideo {
		t.Fatalf("unexpected page type: %s", first.Pages[0].Type)
	}
	for _, st := range fromJSON.Stories {
		if err := st.Validate(); err != nil {
			t.Fatalf("fixture story %s invalid: %v", st.ID, err)
		}
	}

	if !reflect.DeepEqual(fromJSON, fromYAML) {
		t.Fatalf("JSON and YAML feeds differ:\njson=%+v\nyaml=%+v", fromJSON, fromYAML)
	}
}

func TestParseYAMLKeepsUnquotedDates(t *testing.T) {
	const doc = `tenant_name: Demo League
last_synced_at: 2026-02-14T10:05:00Z
stories:
  - story_id: story_1
    story_title: Cup final
    pages: []
    context:
      categories: [Home FC, Away FC, Cup 2/14]
      tenant: Demo League
      publish_date: 2026-02-14
`
	f, err := Parse([]byte(doc), FormatYAML)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if f.LastSyncedAt != "2026-02-14T10:05:00Z" {
		t.Fatalf("unexpected last_synced_at: %q", f.LastSyncedAt)
	}
	st := f.Stories[0]
	if err := st.Validate(); err != nil {
		t.Fatalf("story rejected: %v", err)
	}
	if st.Context.PublishDate != "2026-02-14" {
		t.Fatalf("unexpected publish_date: %q", st.Context.PublishDate)
	}

	a, err := scanner.New().Analyze(st)
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}
	found := false
	for _, s := range a.Strengths {
		if s == "Date consistency between metadata and categories" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected date consistency strength, got %v", a.Strengths)
	}
}

func TestParseYAMLAliasesAndEmpty(t *testing.T) {
	const doc = `tenant_name: &name Demo League
stories:
  - story_id: story_1
    story_title: Matchday
    pages: []
    context: {categories: [], tenant: *name, publish_date: "2026-03-01"}
`
	f, err := Parse([]byte(doc), FormatYAML)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if f.Stories[0].Context.Tenant != "Demo League" {
		t.Fatalf("alias not resolved: %+v", f.Stories[0].Context)
	}
	if _, err := Parse([]byte(""), FormatYAML); err == nil {
		t.Fatalf("expected an error for an empty YAML document")
	}
}

func TestParseIsolatesMalformedStories(t *testing.T) {
	doc := `{
  "tenant_name": "Example FC",
  "stories": [
    {"story_id": "bad_pages", "story_title": "Broken", "pages": "abc",
     "context": {"categories": [], "tenant": "Example FC", "publish_date": "2026-02-14"}},
    {"story_id": "no_context", "story_title": "Missing", "pages": []},
    {"story_id": "ok", "story_title": "Fine", "pages": [],
     "context": {"categories": [], "tenant": "Example FC", "publish_date": "2026-02-14"}},
    "not an object"
  ]
}`
	f, err := Parse([]byte(doc), FormatJSON)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(f.Stories) != 4 {
		t.Fatalf("expected 4 stories, got %d", len(f.Stories))
	}

	tests := []struct {
		idx     int
		storyID string
		field   string
	}{
		{idx: 0, storyID: "bad_pages", field: "pages"},
		{idx: 1, storyID: "no_context", field: "context"},
		{idx: 3, storyID: "", field: "story"},
	}
	for _, tt := range tests {
		var ve *story.ValidationError
		if err := f.Stories[tt.idx].Validate(); !errors.As(err, &ve) {
			t.Fatalf("story %d: expected *story.ValidationError, got %v", tt.idx, err)
		}
		if ve.StoryID != tt.storyID || ve.Field != tt.field {
			t.Fatalf("story %d: unexpected error %+v", tt.idx, ve)
		}
	}

	if err := f.Stories[2].Validate(); err != nil {
		t.Fatalf("valid story rejected: %v", err)
	}
}

func TestParseNestedSchemaFailure(t *testing.T) {
	raw := `{"story_id": "s1", "story_title": "T",
  "pages": [{"page_id": "p1", "asset_url": "x"}],
  "context": {"categories": [], "tenant": "T", "publish_date": "2026-02-14"}}`

	var ve *story.ValidationError
	if err := ParseStory([]byte(raw)).Validate(); !errors.As(err, &ve) {
		t.Fatalf("expected *story.ValidationError, got %v", err)
	}
	if !strings.HasPrefix(ve.Field, "pages.0") || !strings.HasSuffix(ve.Field, "action") {
		t.Fatalf("unexpected field: %s", ve.Field)
	}
}

func TestParseEnvelopeErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "missing tenant", doc: `{"stories": []}`},
		{name: "empty tenant", doc: `{"tenant_name": "", "stories": []}`},
		{name: "stories not array", doc: `{"tenant_name": "T", "stories": {}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc), FormatJSON)
			var se *SchemaError
			if !errors.As(err, &se) {
				t.Fatalf("expected *SchemaError, got %v", err)
			}
			if len(se.Problems) == 0 {
				t.Fatalf("expected schema problems to be listed")
			}
		})
	}

	if _, err := Parse([]byte(`{not json`), FormatJSON); err == nil {
		t.Fatalf("expected an error for invalid JSON")
	}
	if _, err := Parse([]byte(""), FormatYAML); err == nil {
		t.Fatalf("expected an error for an empty YAML document")
	}
}

func TestFormatFromPath(t *testing.T) {
	if FormatFromPath("feed.YML") != FormatYAML || FormatFromPath("feed.yaml") != FormatYAML {
		t.Fatalf("expected yaml format")
	}
	if FormatFromPath("feed.json") != FormatJSON || FormatFromPath("feed") != FormatJSON {
		t.Fatalf("expected json format")
	}
}

func TestDomains(t *testing.T) {
	f, err := Load("testdata/antarctic.json")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	extra := story.Story{
		ID: "s", Title: "T",
		Pages: []story.Page{
			{ID: "a", Action: &story.Action{URL: "https://shop.example.co.uk/tickets"}},
			{ID: "b", Action: &story.Action{URL: "not a url"}},
			{ID: "c"},
		},
	}

	got := Domains(append(f.Stories, extra))
	want := []DomainCount{
		{Domain: "antarcticfootballleague.com", Count: 4},
		{Domain: "example.co.uk", Count: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("domains mismatch: got=%+v want=%+v", got, want)
	}
}
