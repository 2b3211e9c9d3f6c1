package mdext

import (
	"regexp"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// KindIcon is the node kind of an icon shortcode.
var KindIcon = ast.NewNodeKind("Icon")

var iconPattern = regexp.MustCompile(`^:fa-([\w-]+?):`)

// Icon is a Font Awesome shortcode such as :fa-check:.
type Icon struct {
	ast.BaseInline
	Name string
}

// NewIcon returns an icon node for the given name, without the fa- prefix.
func NewIcon(name string) *Icon {
	return &Icon{Name: name}
}

// Kind implements ast.Node.
func (n *Icon) Kind() ast.NodeKind {
	return KindIcon
}

// Dump implements ast.Node.
func (n *Icon) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Name": n.Name}, nil)
}

type iconParser struct{}

func (p *iconParser) Trigger() []byte {
	return []byte{':'}
}

func (p *iconParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	line, _ := block.PeekLine()
	m := iconPattern.FindSubmatch(line)
	if m == nil {
		return nil
	}
	block.Advance(len(m[0]))
	return NewIcon(string(m[1]))
}

// IconHTMLRenderer writes <i class="fa fa-{name}"></i>.
type IconHTMLRenderer struct{}

// RegisterFuncs implements renderer.NodeRenderer.
func (r *IconHTMLRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindIcon, r.renderIcon)
}

func (r *IconHTMLRenderer) renderIcon(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*Icon)
	_, _ = w.WriteString(`<i class="fa fa-`)
	_, _ = w.Write(util.EscapeHTML([]byte(n.Name)))
	_, _ = w.WriteString(`"></i>`)
	return ast.WalkContinue, nil
}

type icons struct{}

// Icons is the icon shortcode extension.
var Icons goldmark.Extender = &icons{}

func (e *icons) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithInlineParsers(
			util.Prioritized(&iconParser{}, PriorityIconParser),
		),
	)
	m.Renderer().AddOptions(
		renderer.WithNodeRenderers(
			util.Prioritized(&IconHTMLRenderer{}, PriorityIconRenderer),
		),
	)
}
