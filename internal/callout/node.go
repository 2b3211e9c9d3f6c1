package callout

import (
	"github.com/yuin/goldmark/ast"
)

// KindContainer is the node kind of a fenced container.
var KindContainer = ast.NewNodeKind("Container")

// Container is a block holding the content between an opening and a
// closing colon fence.
type Container struct {
	ast.BaseBlock

	// Spec is the registration the fence name resolved to.
	Spec Spec

	// Params is the text following the colons on the opening line, name included.
	Params string

	fence int
}

// NewContainer returns a container for spec opened by a fence of the given length.
func NewContainer(spec Spec, params string, fence int) *Container {
	return &Container{Spec: spec, Params: params, fence: fence}
}

// Kind implements ast.Node.
func (n *Container) Kind() ast.NodeKind {
	return KindContainer
}

// Dump implements ast.Node.
func (n *Container) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Name":   n.Spec.Name,
		"Style":  n.Spec.Style.String(),
		"Params": n.Params,
	}, nil)
}
