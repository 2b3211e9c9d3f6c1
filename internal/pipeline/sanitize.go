package pipeline

import (
	"github.com/microcosm-cc/bluemonday"
)

// HTMLSanitizer cleans rendered HTML.
type HTMLSanitizer interface {
	Sanitize(html string) string
}

// NewSanitizer returns a user-generated-content policy that keeps the
// markup produced by the catalogue extensions: container classes and
// roles, heading ids, abbreviation titles and highlighter classes.
func NewSanitizer() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Globally()
	p.AllowAttrs("role").OnElements("div")
	p.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	p.AllowAttrs("title").OnElements("abbr")
	p.AllowElements("abbr", "i")
	return p
}

var _ HTMLSanitizer = (*bluemonday.Policy)(nil)
