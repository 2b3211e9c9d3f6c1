package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	emoji "github.com/yuin/goldmark-emoji"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
	"go.abhg.dev/goldmark/anchor"
	"go.abhg.dev/goldmark/frontmatter"
	"go.abhg.dev/goldmark/toc"
	"go.uber.org/zap"

	"github.com/alnah/go-catalogue/internal/callout"
	"github.com/alnah/go-catalogue/internal/headings"
	"github.com/alnah/go-catalogue/internal/mdext"
)

// Sentinel errors for rendering.
var (
	ErrRender      = errors.New("markdown rendering failed")
	ErrFrontMatter = errors.New("invalid front matter")
)

// Result is the output of one render.
type Result struct {
	// HTML is the rendered fragment.
	HTML string

	// Headings lists every heading in document order.
	Headings []headings.Heading

	// TOC is a nested list of links to the headings within the configured
	// depth range. Empty when disabled or when there is nothing to list.
	TOC string

	// Meta holds the decoded front matter, when enabled and present.
	Meta map[string]any
}

// Options selects the optional renderer features.
type Options struct {
	Links         bool     // alert-link styling inside containers
	Typographer   bool     // smart quotes and dashes
	Linkify       bool     // bare URLs become links
	Unsafe        bool     // raw HTML passes through
	HardWraps     bool     // newlines become <br>
	Permalinks    bool     // "#" anchor after each heading
	Emoji         bool     // :smile: shortcodes
	FrontMatter   bool     // YAML/TOML front matter into Result.Meta
	Sanitize      bool     // bluemonday UGC policy on the output
	LineNumbers   bool     // line numbers in highlighted code
	GuessLanguage bool     // guess the lexer when a fence has no language
	Diagrams      []string // container names rendered as diagrams
	TOC           bool     // build Result.TOC
	TOCMinDepth   int
	TOCMaxDepth   int
}

// DefaultOptions mirrors the catalogue's historical markdown setup.
func DefaultOptions() Options {
	return Options{
		Links:       true,
		Typographer: true,
		Linkify:     true,
		Unsafe:      true,
		Diagrams:    []string{"mermaid"},
		TOC:         true,
		TOCMinDepth: 1,
		TOCMaxDepth: 6,
	}
}

// MarkdownRenderer renders one page.
type MarkdownRenderer interface {
	Render(ctx context.Context, page, content string) (*Result, error)
}

// Renderer converts Markdown pages to HTML with the catalogue extensions.
// Every render builds its own parser context, so a Renderer is safe for
// concurrent use once constructed.
type Renderer struct {
	md        goldmark.Markdown
	opts      Options
	callouts  *callout.Extension
	pre       MarkdownPreprocessor
	sanitizer HTMLSanitizer
	logger    *zap.Logger
}

var _ MarkdownRenderer = (*Renderer)(nil)

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithCallouts replaces the container extension, for callers that register
// their own containers or link hooks.
func WithCallouts(ext *callout.Extension) Option {
	return func(r *Renderer) {
		if ext != nil {
			r.callouts = ext
		}
	}
}

// WithPreprocessor replaces the Markdown preprocessor.
func WithPreprocessor(pre MarkdownPreprocessor) Option {
	return func(r *Renderer) {
		if pre != nil {
			r.pre = pre
		}
	}
}

// NewRenderer creates a Renderer for opts.
func NewRenderer(opts Options, options ...Option) *Renderer {
	r := &Renderer{
		opts:   opts,
		pre:    &CommonMarkPreprocessor{},
		logger: zap.NewNop(),
	}
	for _, o := range options {
		o(r)
	}
	if r.callouts == nil {
		r.callouts = callout.New(callout.WithLinks(opts.Links))
	}
	for _, name := range opts.Diagrams {
		r.callouts.RegisterDiagram(name)
	}
	if opts.Sanitize {
		r.sanitizer = NewSanitizer()
	}

	formatOptions := []chromahtml.Option{
		chromahtml.WithClasses(true), // CSS classes for an external stylesheet
	}
	if opts.LineNumbers {
		formatOptions = append(formatOptions, chromahtml.WithLineNumbers(true))
	}

	extensions := []goldmark.Extender{
		extension.Table,
		extension.Strikethrough,
		extension.Footnote,       // [^1] footnotes
		extension.DefinitionList, // term / : definition
		mdext.Abbreviations,      // *[HTML]: Hyper Text Markup Language
		mdext.Icons,              // :fa-check:
		r.callouts,               // ::: info ... :::
		headings.IDs,             // page/slug heading ids
		highlighting.NewHighlighting(
			highlighting.WithStyle(DefaultStyle),
			highlighting.WithFormatOptions(formatOptions...),
			highlighting.WithGuessLanguage(opts.GuessLanguage),
		),
	}
	if opts.Linkify {
		extensions = append(extensions, extension.Linkify)
	}
	if opts.Typographer {
		extensions = append(extensions, extension.Typographer)
	}
	if opts.Emoji {
		extensions = append(extensions, emoji.Emoji)
	}
	if opts.FrontMatter {
		extensions = append(extensions, &frontmatter.Extender{})
	}
	if opts.Permalinks {
		extensions = append(extensions, &anchor.Extender{
			Texter:     anchor.Text("#"),
			Position:   anchor.After,
			Attributer: anchor.Attributes{"class": "permalink"},
		})
	}

	rendererOptions := []renderer.Option{}
	if opts.Unsafe {
		rendererOptions = append(rendererOptions, html.WithUnsafe())
	}
	if opts.HardWraps {
		rendererOptions = append(rendererOptions, html.WithHardWraps())
	}

	r.md = goldmark.New(
		goldmark.WithExtensions(extensions...),
		goldmark.WithParserOptions(
			parser.WithASTTransformers(
				util.Prioritized(&languageTransformer{logger: r.logger}, mdext.PriorityLanguageTransformer),
			),
		),
		goldmark.WithRendererOptions(rendererOptions...),
	)
	return r
}

// Callouts returns the container extension in use.
func (r *Renderer) Callouts() *callout.Extension {
	return r.callouts
}

// Render converts content to HTML. page namespaces the heading anchors.
// Supports context cancellation via goroutine + select pattern since
// Goldmark doesn't natively support context.
func (r *Renderer) Render(ctx context.Context, page, content string) (*Result, error) {
	// Fast path: check context before starting
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	type result struct {
		res *Result
		err error
	}

	done := make(chan result, 1)

	go func() {
		res, err := r.render(ctx, page, content)
		done <- result{res: res, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case out := <-done:
		return out.res, out.err
	}
}

func (r *Renderer) render(ctx context.Context, page, content string) (*Result, error) {
	source := []byte(r.pre.PreprocessMarkdown(ctx, content))
	pc := headings.NewContext(page)
	doc := r.md.Parser().Parse(text.NewReader(source), parser.WithContext(pc))

	res := &Result{Headings: headings.Collect(doc, source)}

	if r.opts.FrontMatter {
		if fm := frontmatter.Get(pc); fm != nil {
			var meta map[string]any
			if err := fm.Decode(&meta); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrFrontMatter, err)
			}
			res.Meta = meta
		}
	}

	if r.opts.TOC {
		res.TOC = r.renderTOC(doc, source, page)
	}

	var buf bytes.Buffer
	if err := r.md.Renderer().Render(&buf, source, doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	out := buf.String()
	if r.sanitizer != nil {
		out = r.sanitizer.Sanitize(out)
	}
	res.HTML = out

	r.logger.Debug("rendered page",
		zap.String("page", page),
		zap.Int("headings", len(res.Headings)),
		zap.Int("bytes", len(out)),
	)
	return res, nil
}

// renderTOC returns the table of contents, or "" when it would be empty.
// A failure is logged and leaves the page without a TOC.
func (r *Renderer) renderTOC(doc ast.Node, source []byte, page string) string {
	tree, err := toc.Inspect(doc, source,
		toc.MinDepth(r.opts.TOCMinDepth),
		toc.MaxDepth(r.opts.TOCMaxDepth),
		toc.Compact(true),
	)
	if err != nil {
		r.logger.Warn("building table of contents", zap.String("page", page), zap.Error(err))
		return ""
	}
	list := toc.RenderList(tree)
	if list == nil {
		return ""
	}
	var buf bytes.Buffer
	if err := r.md.Renderer().Render(&buf, source, list); err != nil {
		r.logger.Warn("rendering table of contents", zap.String("page", page), zap.Error(err))
		return ""
	}
	return buf.String()
}
