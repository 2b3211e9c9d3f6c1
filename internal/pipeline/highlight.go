package pipeline

import (
	"fmt"
	"io"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"go.uber.org/zap"
)

// DefaultStyle is the chroma style used for generated stylesheets.
const DefaultStyle = "github"

// FlexSearch highlights the catalogue query language:
//
//	(title -fuzzy 'release notes' and @today
//
// Field names open with a parenthesis, constants start with @, switches
// with a hyphen, strings use single quotes and and/or are keywords.
var FlexSearch = lexers.Register(chroma.MustNewLexer(
	&chroma.Config{
		Name:            "FlexSearch",
		Aliases:         []string{"flexsearch", "flex"},
		CaseInsensitive: true,
	},
	func() chroma.Rules {
		return chroma.Rules{
			"root": {
				{Pattern: `\([a-zA-Z]+`, Type: chroma.NameVariable},
				{Pattern: `@[a-zA-Z]+`, Type: chroma.NameConstant},
				{Pattern: `'[^']*'?`, Type: chroma.LiteralStringSingle},
				{Pattern: `-[a-zA-Z]+`, Type: chroma.NameAttribute},
				{Pattern: `\b(?:and|or)\b`, Type: chroma.Keyword},
				{Pattern: `\s+`, Type: chroma.TextWhitespace},
				{Pattern: `[^\s'@(-]+`, Type: chroma.Text},
				{Pattern: `.`, Type: chroma.Text},
			},
		}
	},
))

// HasLexer reports whether code fenced with lang can be highlighted.
func HasLexer(lang string) bool {
	return lexers.Get(lang) != nil
}

// StyleCSS writes the class-based stylesheet for a chroma style. Unknown
// style names fall back to chroma's default style.
func StyleCSS(w io.Writer, style string) error {
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(w, styles.Get(style)); err != nil {
		return fmt.Errorf("writing %s stylesheet: %w", style, err)
	}
	return nil
}

// languageTransformer logs fenced code blocks the highlighter cannot handle.
// Those blocks still render, unhighlighted.
type languageTransformer struct {
	logger *zap.Logger
}

func (t *languageTransformer) Transform(doc *ast.Document, reader text.Reader, _ parser.Context) {
	source := reader.Source()
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		block, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}
		lang := string(block.Language(source))
		switch {
		case lang == "":
			t.logger.Debug("code block without language")
		case !HasLexer(lang):
			t.logger.Warn("no highlighter for language", zap.String("language", lang))
		}
		return ast.WalkSkipChildren, nil
	})
}
