package mdext

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Abbreviation definitions look like:
//
//	*[HTML]: Hyper Text Markup Language
//
// Every later occurrence of HTML as a whole word is wrapped in
// <abbr title="Hyper Text Markup Language">. The first definition of a
// term wins.

var (
	// KindAbbreviation is the node kind of an expanded abbreviation.
	KindAbbreviation = ast.NewNodeKind("Abbreviation")

	// KindAbbreviationDefinition is the node kind of a definition line.
	KindAbbreviationDefinition = ast.NewNodeKind("AbbreviationDefinition")

	abbrKey        = parser.NewContextKey()
	abbrDefPattern = regexp.MustCompile(`^\*\[([^\]]+)\]:[ \t]*(.*?)[ \t]*$`)
)

// Abbreviation wraps the occurrences of a defined term.
type Abbreviation struct {
	ast.BaseInline
	Title string
}

// Kind implements ast.Node.
func (n *Abbreviation) Kind() ast.NodeKind {
	return KindAbbreviation
}

// Dump implements ast.Node.
func (n *Abbreviation) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Title": n.Title}, nil)
}

// AbbreviationDefinition is a definition line. It is removed before rendering.
type AbbreviationDefinition struct {
	ast.BaseBlock
	Term  string
	Title string
}

// Kind implements ast.Node.
func (n *AbbreviationDefinition) Kind() ast.NodeKind {
	return KindAbbreviationDefinition
}

// Dump implements ast.Node.
func (n *AbbreviationDefinition) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Term": n.Term, "Title": n.Title}, nil)
}

type abbrDefs struct {
	titles map[string]string
	terms  []string
}

func (d *abbrDefs) add(term, title string) {
	if _, ok := d.titles[term]; ok {
		return
	}
	d.titles[term] = title
	d.terms = append(d.terms, term)
}

func definitions(pc parser.Context) *abbrDefs {
	if v, ok := pc.Get(abbrKey).(*abbrDefs); ok {
		return v
	}
	d := &abbrDefs{titles: make(map[string]string)}
	pc.Set(abbrKey, d)
	return d
}

type abbrDefinitionParser struct{}

func (p *abbrDefinitionParser) Trigger() []byte {
	return []byte{'*'}
}

func (p *abbrDefinitionParser) Open(parent ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	line, segment := reader.PeekLine()
	w, pos := util.IndentWidth(line, reader.LineOffset())
	if w > 3 {
		return nil, parser.NoChildren
	}
	m := abbrDefPattern.FindSubmatch(util.TrimRightSpace(line[pos:]))
	if m == nil {
		return nil, parser.NoChildren
	}
	term, title := string(m[1]), string(m[2])
	definitions(pc).add(term, title)
	advance := segment.Len()
	if line[len(line)-1] == '\n' {
		advance--
	}
	reader.Advance(advance)
	return &AbbreviationDefinition{Term: term, Title: title}, parser.NoChildren
}

func (p *abbrDefinitionParser) Continue(node ast.Node, reader text.Reader, pc parser.Context) parser.State {
	return parser.Close
}

func (p *abbrDefinitionParser) Close(node ast.Node, reader text.Reader, pc parser.Context) {}

func (p *abbrDefinitionParser) CanInterruptParagraph() bool {
	return true
}

func (p *abbrDefinitionParser) CanAcceptIndentedLine() bool {
	return false
}

type abbrTransformer struct{}

func (t *abbrTransformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	var defs []ast.Node
	var texts []*ast.Text
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *AbbreviationDefinition:
			defs = append(defs, n)
		case *ast.CodeSpan, *ast.AutoLink, *ast.RawHTML, *ast.CodeBlock, *ast.FencedCodeBlock, *ast.HTMLBlock:
			return ast.WalkSkipChildren, nil
		case *ast.Text:
			texts = append(texts, n)
		}
		return ast.WalkContinue, nil
	})
	for _, n := range defs {
		n.Parent().RemoveChild(n.Parent(), n)
	}

	d, ok := pc.Get(abbrKey).(*abbrDefs)
	if !ok || len(d.terms) == 0 {
		return
	}
	pattern := termPattern(d.terms)
	source := reader.Source()
	for _, n := range texts {
		expand(n, source, pattern, d.titles)
	}
}

// termPattern matches any term, longest first.
func termPattern(terms []string) *regexp.Regexp {
	sorted := append([]string(nil), terms...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i]) > len(sorted[j])
	})
	quoted := make([]string, len(sorted))
	for i, term := range sorted {
		quoted[i] = regexp.QuoteMeta(term)
	}
	return regexp.MustCompile(strings.Join(quoted, "|"))
}

// expand splits n around whole-word occurrences of the terms.
func expand(n *ast.Text, source []byte, pattern *regexp.Regexp, titles map[string]string) {
	value := n.Segment.Value(source)
	parent := n.Parent()
	if parent == nil {
		return
	}
	start := n.Segment.Start
	last := 0
	replaced := false
	for _, loc := range pattern.FindAllIndex(value, -1) {
		if !isBoundary(value, loc[0], loc[1]) {
			continue
		}
		if loc[0] > last {
			parent.InsertBefore(parent, n, ast.NewTextSegment(text.NewSegment(start+last, start+loc[0])))
		}
		abbr := &Abbreviation{Title: titles[string(value[loc[0]:loc[1]])]}
		abbr.AppendChild(abbr, ast.NewTextSegment(text.NewSegment(start+loc[0], start+loc[1])))
		parent.InsertBefore(parent, n, abbr)
		last = loc[1]
		replaced = true
	}
	if !replaced {
		return
	}
	if last < len(value) {
		tail := ast.NewTextSegment(text.NewSegment(start+last, n.Segment.Stop))
		tail.SetSoftLineBreak(n.SoftLineBreak())
		tail.SetHardLineBreak(n.HardLineBreak())
		parent.InsertBefore(parent, n, tail)
	} else if n.SoftLineBreak() || n.HardLineBreak() {
		tail := ast.NewTextSegment(text.NewSegment(n.Segment.Stop, n.Segment.Stop))
		tail.SetSoftLineBreak(n.SoftLineBreak())
		tail.SetHardLineBreak(n.HardLineBreak())
		parent.InsertBefore(parent, n, tail)
	}
	parent.RemoveChild(parent, n)
}

// isBoundary reports whether value[start:end] is delimited by punctuation,
// whitespace or the edges of value.
func isBoundary(value []byte, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRune(value[:start])
		if !unicode.IsPunct(r) && !unicode.IsSpace(r) {
			return false
		}
	}
	if end < len(value) {
		r, _ := utf8.DecodeRune(value[end:])
		if !unicode.IsPunct(r) && !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// AbbreviationHTMLRenderer writes <abbr> elements.
type AbbreviationHTMLRenderer struct{}

// RegisterFuncs implements renderer.NodeRenderer.
func (r *AbbreviationHTMLRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindAbbreviation, r.renderAbbreviation)
	reg.Register(KindAbbreviationDefinition, r.renderDefinition)
}

func (r *AbbreviationHTMLRenderer) renderAbbreviation(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*Abbreviation)
	if entering {
		_, _ = w.WriteString(`<abbr title="`)
		_, _ = w.Write(util.EscapeHTML([]byte(n.Title)))
		_, _ = w.WriteString(`">`)
	} else {
		_, _ = w.WriteString("</abbr>")
	}
	return ast.WalkContinue, nil
}

func (r *AbbreviationHTMLRenderer) renderDefinition(util.BufWriter, []byte, ast.Node, bool) (ast.WalkStatus, error) {
	return ast.WalkSkipChildren, nil
}

type abbreviations struct{}

// Abbreviations is the abbreviation extension.
var Abbreviations goldmark.Extender = &abbreviations{}

func (e *abbreviations) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithBlockParsers(
			util.Prioritized(&abbrDefinitionParser{}, PriorityAbbrDefinitionParser),
		),
		parser.WithASTTransformers(
			util.Prioritized(&abbrTransformer{}, PriorityAbbrTransformer),
		),
	)
	m.Renderer().AddOptions(
		renderer.WithNodeRenderers(
			util.Prioritized(&AbbreviationHTMLRenderer{}, PriorityAbbrRenderer),
		),
	)
}
