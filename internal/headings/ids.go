package headings

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/alnah/go-catalogue/internal/mdext"
)

var pageKey = parser.NewContextKey()

// NewContext returns a parser context whose headings are namespaced by page.
func NewContext(page string) parser.Context {
	pc := parser.NewContext()
	pc.Set(pageKey, page)
	return pc
}

// PageOf returns the page stored in pc, or "".
func PageOf(pc parser.Context) string {
	page, _ := pc.Get(pageKey).(string)
	return page
}

// IDTransformer sets the id of every heading to Slugify(page, text), where
// text is the heading's plain text. It must run before anything that reads
// heading ids, such as permalinks or the table of contents.
type IDTransformer struct{}

var _ parser.ASTTransformer = IDTransformer{}

// Transform implements parser.ASTTransformer.
func (IDTransformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	page := PageOf(pc)
	source := reader.Source()
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		h.SetAttributeString("id", []byte(Slugify(page, PlainText(h, source))))
		return ast.WalkSkipChildren, nil
	})
}

type idExtension struct{}

// IDs is a goldmark extension installing IDTransformer. Parse with a
// context from NewContext to namespace the ids.
var IDs goldmark.Extender = idExtension{}

func (idExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithASTTransformers(
			util.Prioritized(IDTransformer{}, mdext.PriorityHeadingIDTransformer),
		),
	)
}
