package story

type PageType string

const (
	PageTypeImage PageType = "image"
	PageTypeVideo PageType = "video"
)

// IsKnown reports whether t is one of the page types the scanner was built
// against. Unknown types are kept as-is; they are not a validation failure.
func (t PageType) IsKnown() bool {
	switch t {
	case PageTypeImage, PageTypeVideo:
		return true
	}
	return false
}

type Action struct {
	CTA string `json:"cta" yaml:"cta"`
	URL string `json:"url" yaml:"url"`
}

type Page struct {
	ID       string   `json:"page_id" yaml:"page_id"`
	Type     PageType `json:"type" yaml:"type"`
	AssetURL string   `json:"asset_url" yaml:"asset_url"`
	Action   *Action  `json:"action" yaml:"action"`
}

type Context struct {
	Categories  []string `json:"categories" yaml:"categories"`
	Tenant      string   `json:"tenant" yaml:"tenant"`
	PublishDate string   `json:"publish_date" yaml:"publish_date"`
}

// Story is one unit of content submitted for quality analysis.
// A nil Pages slice means the field was missing; an empty one is valid.
type Story struct {
	ID      string   `json:"story_id" yaml:"story_id"`
	Title   string   `json:"story_title" yaml:"story_title"`
	Pages   []Page   `json:"pages" yaml:"pages"`
	Context *Context `json:"context" yaml:"context"`

	// set by Malformed when the raw record could not be decoded
	invalid error
}

// Malformed returns a placeholder story for a record that failed decoding.
// Validate returns err for it, so the failure travels with the batch.
func Malformed(id, title string, err error) Story {
	return Story{ID: id, Title: title, invalid: err}
}
