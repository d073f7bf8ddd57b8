package feed

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const envelopeSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["tenant_name", "stories"],
  "properties": {
    "tenant_id": { "type": "string" },
    "tenant_name": { "type": "string", "minLength": 1 },
    "last_synced_at": { "type": "string" },
    "stories": { "type": "array" }
  }
}`

const storySchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["story_id", "story_title", "pages", "context"],
  "properties": {
    "story_id": { "type": "string" },
    "story_title": { "type": "string" },
    "pages": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["page_id", "asset_url", "action"],
        "properties": {
          "page_id": { "type": "string" },
          "type": { "type": "string" },
          "asset_url": { "type": "string" },
          "action": {
            "type": "object",
            "required": ["cta", "url"],
            "properties": {
              "cta": { "type": "string" },
              "url": { "type": "string" }
            }
          }
        }
      }
    },
    "context": {
      "type": "object",
      "required": ["categories", "tenant", "publish_date"],
      "properties": {
        "categories": { "type": "array", "items": { "type": "string" } },
        "tenant": { "type": "string" },
        "publish_date": { "type": "string" }
      }
    }
  }
}`

var (
	envelopeSchema = mustSchema(envelopeSchemaJSON)
	storySchema    = mustSchema(storySchemaJSON)
)

func mustSchema(src string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("feed: invalid embedded schema: %v", err))
	}
	return s
}

// schemaField turns a gojsonschema field path into the name used on
// validation errors. For missing properties the property name is appended
// to its parent path.
func schemaField(re gojsonschema.ResultError) string {
	field := re.Field()
	if field == "(root)" {
		field = ""
	}
	if prop, ok := re.Details()["property"].(string); ok && prop != "" && !strings.HasSuffix(field, prop) {
		if field == "" {
			field = prop
		} else {
			field += "." + prop
		}
	}
	if field == "" {
		return "story"
	}
	return field
}
