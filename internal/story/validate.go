package story

import (
	"errors"
	"fmt"
)

// ValidationError reports a story that cannot be analyzed because a required
// field is missing or has the wrong shape.
type ValidationError struct {
	StoryID string
	Field   string
	Reason  string
}

func (e *ValidationError) Error() string {
	id := e.StoryID
	if id == "" {
		id = "<unknown>"
	}
	return fmt.Sprintf("story %s: invalid %s: %s", id, e.Field, e.Reason)
}

// Validate checks the fields the analysis dereferences. It returns the first
// problem found as a *ValidationError.
func (s Story) Validate() error {
	if s.invalid != nil {
		var ve *ValidationError
		if errors.As(s.invalid, &ve) {
			return ve
		}
		return &ValidationError{StoryID: s.ID, Field: "story", Reason: s.invalid.Error()}
	}

	fail := func(field, reason string) error {
		return &ValidationError{StoryID: s.ID, Field: field, Reason: reason}
	}

	if s.ID == "" {
		return fail("story_id", "is required")
	}
	if s.Title == "" {
		return fail("story_title", "is required")
	}
	if s.Pages == nil {
		return fail("pages", "is required")
	}
	if s.Context == nil {
		return fail("context", "is required")
	}
	if s.Context.Tenant == "" {
		return fail("context.tenant", "is required")
	}

	seen := make(map[string]struct{}, len(s.Pages))
	for i, p := range s.Pages {
		field := fmt.Sprintf("pages[%d]", i)
		if p.ID == "" {
			return fail(field+".page_id", "is required")
		}
		if _, dup := seen[p.ID]; dup {
			return fail(field+".page_id", fmt.Sprintf("duplicate page id %q", p.ID))
		}
		seen[p.ID] = struct{}{}
		if p.Action == nil {
			return fail(field+".action", "is required")
		}
	}
	return nil
}
