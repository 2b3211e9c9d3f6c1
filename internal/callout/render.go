package callout

import (
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// HTMLRenderer writes Container nodes.
type HTMLRenderer struct{}

// NewHTMLRenderer returns a renderer for Container nodes.
func NewHTMLRenderer() renderer.NodeRenderer {
	return &HTMLRenderer{}
}

// RegisterFuncs implements renderer.NodeRenderer.
func (r *HTMLRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindContainer, r.renderContainer)
}

func (r *HTMLRenderer) renderContainer(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*Container)
	if entering {
		_, _ = w.WriteString(n.Spec.Open(n.Params))
	} else {
		_, _ = w.WriteString(n.Spec.Close())
	}
	return ast.WalkContinue, nil
}
