package callout

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// minFence is the shortest colon run that opens or closes a container.
const minFence = 3

type containerParser struct {
	ext *Extension
}

func newContainerParser(ext *Extension) *containerParser {
	return &containerParser{ext: ext}
}

func (p *containerParser) Trigger() []byte {
	return []byte{':'}
}

func (p *containerParser) Open(parent ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	line, segment := reader.PeekLine()
	w, pos := util.IndentWidth(line, reader.LineOffset())
	if w > 3 {
		return nil, parser.NoChildren
	}
	fence := fenceLength(line[pos:])
	if fence < minFence {
		return nil, parser.NoChildren
	}
	params := strings.TrimSpace(string(line[pos+fence:]))
	fields := strings.Fields(params)
	if len(fields) == 0 {
		return nil, parser.NoChildren
	}
	spec, ok := p.ext.Lookup(fields[0])
	if !ok {
		return nil, parser.NoChildren
	}
	reader.Advance(segment.Len() - newlineLength(line) + segment.Padding)
	return NewContainer(spec, params, fence), parser.HasChildren
}

func (p *containerParser) Continue(node ast.Node, reader text.Reader, pc parser.Context) parser.State {
	n := node.(*Container)
	line, segment := reader.PeekLine()
	w, pos := util.IndentWidth(line, reader.LineOffset())
	if w < 4 && pos <= len(line) {
		fence := fenceLength(line[pos:])
		if fence >= minFence && fence >= n.fence && util.IsBlank(line[pos+fence:]) {
			reader.Advance(segment.Len() - newlineLength(line) + segment.Padding)
			return parser.Close
		}
	}
	return parser.Continue | parser.HasChildren
}

func (p *containerParser) Close(node ast.Node, reader text.Reader, pc parser.Context) {}

func (p *containerParser) CanInterruptParagraph() bool {
	return true
}

func (p *containerParser) CanAcceptIndentedLine() bool {
	return false
}

// fenceLength counts the leading colons of b.
func fenceLength(b []byte) int {
	i := 0
	for i < len(b) && b[i] == ':' {
		i++
	}
	return i
}

func newlineLength(line []byte) int {
	if len(line) > 0 && line[len(line)-1] == '\n' {
		return 1
	}
	return 0
}
