package context

import (
	"fmt"

	"github.com/MOYARU/storyscan/internal/story"
)

// Context is the read-only view a check runs against. Page is nil for
// story-scoped checks.
type Context struct {
	Story     story.Story
	Page      *story.Page
	PageIndex int
}

func ForStory(s story.Story) *Context {
	return &Context{Story: s}
}

// ForPage builds the context for page i (zero-based) of s.
func ForPage(s story.Story, i int) *Context {
	return &Context{Story: s, Page: &s.Pages[i], PageIndex: i + 1}
}

// Location is the human-readable pointer used on page-scoped issues.
func (c *Context) Location() string {
	return fmt.Sprintf("Page %d", c.PageIndex)
}

func (c *Context) Tenant() string {
	if c.Story.Context == nil {
		return ""
	}
	return c.Story.Context.Tenant
}

func (c *Context) Categories() []string {
	if c.Story.Context == nil {
		return nil
	}
	return c.Story.Context.Categories
}

func (c *Context) PublishDate() string {
	if c.Story.Context == nil {
		return ""
	}
	return c.Story.Context.PublishDate
}

// Actions returns the action of every page in order, skipping pages
// without one.
func (c *Context) Actions() []story.Action {
	out := make([]story.Action, 0, len(c.Story.Pages))
	for _, p := range c.Story.Pages {
		if p.Action != nil {
			out = append(out, *p.Action)
		}
	}
	return out
}
