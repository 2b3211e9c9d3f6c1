package pipeline

// Notes:
// - Renders use DefaultOptions unless a test needs a feature switched;
//   assertions check fragments rather than whole documents because
//   typography and highlighting markup come from third-party extensions.

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/alnah/go-catalogue/internal/callout"
	"github.com/alnah/go-catalogue/internal/headings"
)

func render(t *testing.T, r *Renderer, page, content string) *Result {
	t.Helper()

	res, err := r.Render(context.Background(), page, content)
	if err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}
	return res
}

// ---------------------------------------------------------------------------
// TestRender - Markup produced by the extension set
// ---------------------------------------------------------------------------

func TestRender(t *testing.T) {
	t.Parallel()

	r := NewRenderer(DefaultOptions())

	tests := []struct {
		name     string
		input    string
		contains []string
	}{
		{
			name:     "callout",
			input:    "::: success\nSaved.\n:::\n",
			contains: []string{"<div class=\"callout callout-success\">\n<p>Saved.</p>\n</div>"},
		},
		{
			name:     "alert with link",
			input:    "::: alert-warning\nRead [this](/x).\n:::\n",
			contains: []string{`<div class="alert alert-warning" role="alert">`, `<a href="/x" class="alert-link">this</a>`},
		},
		{
			name:     "mermaid diagram",
			input:    "::: mermaid graph LR\nA\n:::\n",
			contains: []string{`<div class="mermaid">graph LR<p>A</p>`},
		},
		{
			name:     "heading ids are page scoped",
			input:    "## Getting Started\n",
			contains: []string{`<h2 id="docs/getting-started">Getting Started</h2>`},
		},
		{
			name:     "abbreviation",
			input:    "*[CLI]: Command Line Interface\n\nUse the CLI.\n",
			contains: []string{`<abbr title="Command Line Interface">CLI</abbr>`},
		},
		{
			name:     "icon",
			input:    "Saved :fa-save:\n",
			contains: []string{`<i class="fa fa-save"></i>`},
		},
		{
			name:     "footnote",
			input:    "Text[^1].\n\n[^1]: Note.\n",
			contains: []string{`class="footnotes"`},
		},
		{
			name:     "definition list",
			input:    "Term\n: Definition\n",
			contains: []string{"<dl>", "<dt>Term</dt>", "<dd>Definition</dd>"},
		},
		{
			name:     "table",
			input:    "| a | b |\n|---|---|\n| 1 | 2 |\n",
			contains: []string{"<table>", "<td>1</td>"},
		},
		{
			name:     "linkify",
			input:    "Visit https://example.com today.\n",
			contains: []string{`<a href="https://example.com">https://example.com</a>`},
		},
		{
			name:     "raw html kept",
			input:    "<span class=\"x\">raw</span>\n",
			contains: []string{`<span class="x">raw</span>`},
		},
		{
			name:     "highlighted code uses classes",
			input:    "```go\nfunc main() {}\n```\n",
			contains: []string{`class="chroma"`},
		},
		{
			name:     "flexsearch lexer",
			input:    "```flex\n(title 'x' and @today -fuzzy\n```\n",
			contains: []string{`<span class="nv">(title</span>`, `<span class="s1">&#39;x&#39;</span>`, `<span class="k">and</span>`},
		},
		{
			name:     "crlf normalized",
			input:    "# One\r\n\r\nTwo\r\n",
			contains: []string{`<h1 id="docs/one">One</h1>`, "<p>Two</p>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := render(t, r, "docs", tt.input)
			for _, want := range tt.contains {
				if !strings.Contains(res.HTML, want) {
					t.Errorf("HTML missing %q in:\n%s", want, res.HTML)
				}
			}
		})
	}
}

func TestRender_Headings(t *testing.T) {
	t.Parallel()

	r := NewRenderer(DefaultOptions())
	res := render(t, r, "guide", "# Guide\n\n## Install `go`\n\n::: info\n### Inside\n:::\n")

	want := []headings.Heading{
		{Title: "Guide", Anchor: "guide/guide", HeadingLevel: "h1"},
		{Title: "Install go", Anchor: "guide/install-go", HeadingLevel: "h2"},
		{Title: "Inside", Anchor: "guide/inside", HeadingLevel: "h3"},
	}
	if diff := cmp.Diff(want, res.Headings); diff != "" {
		t.Errorf("Headings mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(res.TOC, `href="#guide/install-go"`) {
		t.Errorf("TOC missing heading link:\n%s", res.TOC)
	}
}

func TestRender_HeadingText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    headings.Heading
	}{
		{
			name:    "link in heading",
			content: "## See [the docs](https://x.io/a)\n",
			want:    headings.Heading{Title: "See the docs", Anchor: "p/see-the-docs", HeadingLevel: "h2"},
		},
		{
			name:    "entity in heading",
			content: "## A &amp; B\n",
			want:    headings.Heading{Title: "A & B", Anchor: "p/a-b", HeadingLevel: "h2"},
		},
		{
			name:    "escaped punctuation",
			content: "## 1\\. Start\n",
			want:    headings.Heading{Title: "1. Start", Anchor: "p/1-start", HeadingLevel: "h2"},
		},
		{
			name:    "multi-line setext",
			content: "Multi\nline\n===\n",
			want:    headings.Heading{Title: "Multi line", Anchor: "p/multi-line", HeadingLevel: "h1"},
		},
	}

	r := NewRenderer(DefaultOptions())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := render(t, r, "p", tt.content)
			if diff := cmp.Diff([]headings.Heading{tt.want}, res.Headings); diff != "" {
				t.Errorf("Headings mismatch (-want +got):\n%s", diff)
			}
			if !strings.Contains(res.HTML, `id="`+tt.want.Anchor+`"`) {
				t.Errorf("HTML missing id %q:\n%s", tt.want.Anchor, res.HTML)
			}
			if !strings.Contains(res.TOC, `href="#`+tt.want.Anchor+`"`) {
				t.Errorf("TOC missing link to %q:\n%s", tt.want.Anchor, res.TOC)
			}
		})
	}
}

func TestRender_Isolation(t *testing.T) {
	t.Parallel()

	r := NewRenderer(DefaultOptions())
	first := render(t, r, "page1", "# Alpha\n")
	second := render(t, r, "page2", "# Beta\n")

	if len(first.Headings) != 1 || first.Headings[0].Anchor != "page1/alpha" {
		t.Errorf("first.Headings = %+v", first.Headings)
	}
	if len(second.Headings) != 1 || second.Headings[0].Anchor != "page2/beta" {
		t.Errorf("second.Headings = %+v", second.Headings)
	}
}

func TestRender_NoHeadings(t *testing.T) {
	t.Parallel()

	res := render(t, NewRenderer(DefaultOptions()), "p", "just text\n")
	if len(res.Headings) != 0 {
		t.Errorf("Headings = %+v, want none", res.Headings)
	}
	if res.TOC != "" {
		t.Errorf("TOC = %q, want empty", res.TOC)
	}
}

// ---------------------------------------------------------------------------
// TestRender_Options - Optional features
// ---------------------------------------------------------------------------

func TestRender_Options(t *testing.T) {
	t.Parallel()

	t.Run("links disabled", func(t *testing.T) {
		t.Parallel()

		opts := DefaultOptions()
		opts.Links = false
		res := render(t, NewRenderer(opts), "p", "::: info\n[x](/x)\n:::\n")
		if strings.Contains(res.HTML, callout.LinkClass) {
			t.Errorf("unexpected %s in:\n%s", callout.LinkClass, res.HTML)
		}
	})

	t.Run("unsafe disabled", func(t *testing.T) {
		t.Parallel()

		opts := DefaultOptions()
		opts.Unsafe = false
		res := render(t, NewRenderer(opts), "p", "<script>x</script>\n")
		if strings.Contains(res.HTML, "<script>") {
			t.Errorf("raw HTML should be omitted:\n%s", res.HTML)
		}
	})

	t.Run("sanitize", func(t *testing.T) {
		t.Parallel()

		opts := DefaultOptions()
		opts.Sanitize = true
		res := render(t, NewRenderer(opts), "p", "<script>alert(1)</script>\n\n::: alert-info\n*[A]: b\n\nA [x](/x)\n:::\n")
		if strings.Contains(res.HTML, "<script>") {
			t.Errorf("script should be sanitized:\n%s", res.HTML)
		}
		for _, want := range []string{
			`<div class="alert alert-info" role="alert">`,
			`<abbr title="b">A</abbr>`,
			`class="alert-link"`,
		} {
			if !strings.Contains(res.HTML, want) {
				t.Errorf("sanitized HTML missing %q:\n%s", want, res.HTML)
			}
		}
	})

	t.Run("front matter", func(t *testing.T) {
		t.Parallel()

		opts := DefaultOptions()
		opts.FrontMatter = true
		res := render(t, NewRenderer(opts), "p", "---\ntitle: Hello\ntags: [a, b]\n---\n# Body\n")
		if res.Meta["title"] != "Hello" {
			t.Errorf("Meta[title] = %v, want Hello", res.Meta["title"])
		}
		if strings.Contains(res.HTML, "title: Hello") {
			t.Errorf("front matter leaked into HTML:\n%s", res.HTML)
		}
	})

	t.Run("permalinks", func(t *testing.T) {
		t.Parallel()

		opts := DefaultOptions()
		opts.Permalinks = true
		res := render(t, NewRenderer(opts), "p", "## Title\n")
		if !strings.Contains(res.HTML, `href="#p/title"`) {
			t.Errorf("permalink missing:\n%s", res.HTML)
		}
	})

	t.Run("emoji", func(t *testing.T) {
		t.Parallel()

		opts := DefaultOptions()
		opts.Emoji = true
		res := render(t, NewRenderer(opts), "p", "Nice :smile:\n")
		if strings.Contains(res.HTML, ":smile:") {
			t.Errorf("emoji shortcode not replaced:\n%s", res.HTML)
		}
	})

	t.Run("toc disabled", func(t *testing.T) {
		t.Parallel()

		opts := DefaultOptions()
		opts.TOC = false
		res := render(t, NewRenderer(opts), "p", "# A\n")
		if res.TOC != "" {
			t.Errorf("TOC = %q, want empty", res.TOC)
		}
	})

	t.Run("toc depth", func(t *testing.T) {
		t.Parallel()

		opts := DefaultOptions()
		opts.TOCMinDepth = 2
		opts.TOCMaxDepth = 2
		res := render(t, NewRenderer(opts), "p", "# Top\n\n## Mid\n\n### Low\n")
		if !strings.Contains(res.TOC, "#p/mid") {
			t.Errorf("TOC missing h2:\n%s", res.TOC)
		}
		if strings.Contains(res.TOC, "#p/top") || strings.Contains(res.TOC, "#p/low") {
			t.Errorf("TOC outside depth range:\n%s", res.TOC)
		}
	})

	t.Run("custom callout extension", func(t *testing.T) {
		t.Parallel()

		ext := callout.New()
		ext.RegisterCallout("tip")
		r := NewRenderer(DefaultOptions(), WithCallouts(ext))
		res := render(t, r, "p", "::: tip\nt\n:::\n")
		if !strings.Contains(res.HTML, `<div class="callout callout-tip">`) {
			t.Errorf("custom container missing:\n%s", res.HTML)
		}
		if r.Callouts() != ext {
			t.Error("Callouts() should return the injected extension")
		}
	})
}

// ---------------------------------------------------------------------------
// TestRender_Logging - Highlighter diagnostics
// ---------------------------------------------------------------------------

func TestRender_Logging(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	r := NewRenderer(DefaultOptions(), WithLogger(zap.New(core)))

	res := render(t, r, "p", "```nosuchlang\nx := 1\n```\n\n```\nplain\n```\n")

	warn := logs.FilterMessage("no highlighter for language").All()
	if len(warn) != 1 {
		t.Fatalf("expected one warning, got %d", len(warn))
	}
	if warn[0].Level != zapcore.WarnLevel || warn[0].ContextMap()["language"] != "nosuchlang" {
		t.Errorf("unexpected warning entry: %+v", warn[0])
	}
	if logs.FilterMessage("code block without language").Len() != 1 {
		t.Error("expected a debug entry for the unlabelled block")
	}
	if !strings.Contains(res.HTML, "x := 1") {
		t.Errorf("unknown language block should still render:\n%s", res.HTML)
	}
}

// ---------------------------------------------------------------------------
// TestRender_Context - Cancellation
// ---------------------------------------------------------------------------

func TestRender_ContextCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRenderer(DefaultOptions()).Render(ctx, "p", "# A\n")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Render() error = %v, want context.Canceled", err)
	}
}

func TestRender_FrontMatterError(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	opts.FrontMatter = true
	_, err := NewRenderer(opts).Render(context.Background(), "p", "---\ntitle: [unclosed\n---\nbody\n")
	if !errors.Is(err, ErrFrontMatter) {
		t.Errorf("Render() error = %v, want ErrFrontMatter", err)
	}
}

// ---------------------------------------------------------------------------
// TestHighlight - Lexer registry and stylesheet
// ---------------------------------------------------------------------------

func TestHasLexer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		lang string
		want bool
	}{
		{"go", true},
		{"flexsearch", true},
		{"flex", true},
		{"FLEX", true},
		{"nosuchlang", false},
	}
	for _, tt := range tests {
		if got := HasLexer(tt.lang); got != tt.want {
			t.Errorf("HasLexer(%q) = %v, want %v", tt.lang, got, tt.want)
		}
	}
}

func TestStyleCSS(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	if err := StyleCSS(&b, DefaultStyle); err != nil {
		t.Fatalf("StyleCSS() unexpected error: %v", err)
	}
	if !strings.Contains(b.String(), ".chroma") {
		t.Errorf("stylesheet missing .chroma rules:\n%.200s", b.String())
	}
}

func TestPreprocessMarkdown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"crlf", "a\r\nb", "a\nb"},
		{"lone cr", "a\rb", "a\nb"},
		{"nul", "a\x00b", "a\uFFFDb"},
		{"unchanged", "a\nb", "a\nb"},
	}
	p := &CommonMarkPreprocessor{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := p.PreprocessMarkdown(context.Background(), tt.input); got != tt.want {
				t.Errorf("PreprocessMarkdown(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
