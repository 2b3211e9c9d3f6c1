package callout

import (
	"bytes"

	"github.com/yuin/goldmark/ast"
)

// LinkClass is appended to the class attribute of links inside containers.
const LinkClass = "alert-link"

// LinkHook inspects a link node (*ast.Link or *ast.AutoLink) during the
// container walk. Hooks only change node attributes; the HTML renderer
// registered for the node kind still writes the markup.
type LinkHook func(link ast.Node, depth *Depth)

// StyleLinks returns a hook that appends LinkClass to links inside a
// container and then hands the link to next. next may be nil.
func StyleLinks(next LinkHook) LinkHook {
	return func(link ast.Node, depth *Depth) {
		if depth.Inside() {
			AppendClass(link, LinkClass)
		}
		if next != nil {
			next(link, depth)
		}
	}
}

// AppendClass adds class to the node's class attribute, keeping existing classes.
func AppendClass(n ast.Node, class string) {
	v, ok := n.AttributeString("class")
	if !ok {
		n.SetAttributeString("class", []byte(class))
		return
	}
	var current []byte
	switch t := v.(type) {
	case []byte:
		current = t
	case string:
		current = []byte(t)
	}
	current = bytes.TrimSpace(current)
	if len(current) == 0 {
		n.SetAttributeString("class", []byte(class))
		return
	}
	merged := make([]byte, 0, len(current)+1+len(class))
	merged = append(merged, current...)
	merged = append(merged, ' ')
	merged = append(merged, class...)
	n.SetAttributeString("class", merged)
}
