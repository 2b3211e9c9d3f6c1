package headings

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/util"
)

// Heading is one heading of a rendered page.
type Heading struct {
	Title        string `json:"Title"`
	Anchor       string `json:"Anchor"`
	HeadingLevel string `json:"HeadingLevel"`
}

// Collect returns the headings of doc in document order. Anchors are the
// id attributes set by IDTransformer; headings without one get an empty
// anchor.
func Collect(doc ast.Node, source []byte) []Heading {
	var out []Heading
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		out = append(out, Heading{
			Title:        PlainText(h, source),
			Anchor:       idOf(h),
			HeadingLevel: fmt.Sprintf("h%d", h.Level),
		})
		return ast.WalkSkipChildren, nil
	})
	return out
}

// Marshal encodes headings as a JSON array. A nil slice encodes as [].
func Marshal(headings []Heading) ([]byte, error) {
	if headings == nil {
		headings = []Heading{}
	}
	return json.Marshal(headings)
}

// PlainText returns the text content of n with inline markup removed and
// entities and backslash escapes resolved.
func PlainText(n ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			v := t.Segment.Value(source)
			if t.IsRaw() {
				b.Write(v)
			} else {
				b.WriteString(html.UnescapeString(string(util.UnescapePunctuations(v))))
			}
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.WriteString(html.UnescapeString(string(t.Value)))
		case *ast.RawHTML:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}

func idOf(n ast.Node) string {
	v, ok := n.AttributeString("id")
	if !ok {
		return ""
	}
	switch t := v.(type) {
	case []byte:
		return string(t)
	case string:
		return t
	}
	return ""
}
