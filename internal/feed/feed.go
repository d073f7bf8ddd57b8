package feed

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/MOYARU/storyscan/internal/story"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Feed is a tenant's story collection as delivered by the content source.
type Feed struct {
	TenantID     string        `json:"tenant_id,omitempty"`
	TenantName   string        `json:"tenant_name"`
	LastSyncedAt string        `json:"last_synced_at,omitempty"`
	Stories      []story.Story `json:"stories"`
}

// SchemaError lists every envelope-level schema violation.
type SchemaError struct {
	Problems []string
}

func (e *SchemaError) Error() string {
	return "feed does not match schema: " + strings.Join(e.Problems, "; ")
}

// FormatFromPath picks YAML for .yaml/.yml files and JSON otherwise.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

func Load(path string) (*Feed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read feed: %w", err)
	}
	return Parse(data, FormatFromPath(path))
}

// Parse decodes a feed document. Envelope problems fail the whole feed.
// A story that does not match the story schema is kept as a malformed story
// so the batch can report it next to the valid ones.
func Parse(data []byte, format Format) (*Feed, error) {
	if format == FormatYAML {
		converted, err := yamlToJSON(data)
		if err != nil {
			return nil, err
		}
		data = converted
	}

	result, err := envelopeSchema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}
	if !result.Valid() {
		se := &SchemaError{}
		for _, re := range result.Errors() {
			se.Problems = append(se.Problems, re.String())
		}
		return nil, se
	}

	var envelope struct {
		TenantID     string            `json:"tenant_id"`
		TenantName   string            `json:"tenant_name"`
		LastSyncedAt string            `json:"last_synced_at"`
		Stories      []json.RawMessage `json:"stories"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode feed: %w", err)
	}

	f := &Feed{
		TenantID:     envelope.TenantID,
		TenantName:   envelope.TenantName,
		LastSyncedAt: envelope.LastSyncedAt,
		Stories:      make([]story.Story, 0, len(envelope.Stories)),
	}
	for _, raw := range envelope.Stories {
		f.Stories = append(f.Stories, ParseStory(raw))
	}
	return f, nil
}

// ParseStory decodes one JSON story. It never fails: problems are carried
// by the returned story and surface from its Validate method.
func ParseStory(raw []byte) story.Story {
	id, title := storyHeader(raw)

	result, err := storySchema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return story.Malformed(id, title, &story.ValidationError{StoryID: id, Field: "story", Reason: err.Error()})
	}
	if !result.Valid() {
		first := result.Errors()[0]
		return story.Malformed(id, title, &story.ValidationError{
			StoryID: id,
			Field:   schemaField(first),
			Reason:  first.Description(),
		})
	}

	var st story.Story
	if err := json.Unmarshal(raw, &st); err != nil {
		return story.Malformed(id, title, &story.ValidationError{StoryID: id, Field: "story", Reason: err.Error()})
	}
	return st
}

// storyHeader pulls the id and title out of a raw story on a best-effort
// basis so failures can still be labeled.
func storyHeader(raw []byte) (string, string) {
	var head struct {
		ID    any `json:"story_id"`
		Title any `json:"story_title"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return "", ""
	}
	id, _ := head.ID.(string)
	title, _ := head.Title.(string)
	return id, title
}

func yamlToJSON(data []byte) ([]byte, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse YAML feed: %w", err)
	}
	if root.Kind == 0 || (root.Kind == yaml.DocumentNode && len(root.Content) == 0) {
		return nil, errors.New("failed to parse YAML feed: document is empty")
	}
	doc, err := yamlValue(&root)
	if err != nil {
		return nil, fmt.Errorf("failed to parse YAML feed: %w", err)
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to convert YAML feed: %w", err)
	}
	return out, nil
}

// yamlValue converts a node into the JSON data model. Timestamps keep their
// source text so dates like publish_date stay "2026-02-14".
func yamlValue(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return yamlValue(n.Content[0])
	case yaml.AliasNode:
		return yamlValue(n.Alias)
	case yaml.MappingNode:
		m := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := yamlValue(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			m[n.Content[i].Value] = v
		}
		return m, nil
	case yaml.SequenceNode:
		list := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := yamlValue(c)
			if err != nil {
				return nil, err
			}
			list = append(list, v)
		}
		return list, nil
	}

	if n.ShortTag() == "!!timestamp" {
		return n.Value, nil
	}
	var v any
	if err := n.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}
