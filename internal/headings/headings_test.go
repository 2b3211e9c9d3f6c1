package headings_test

import (
	"regexp"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/alnah/go-catalogue/internal/headings"
)

// ---------------------------------------------------------------------------
// TestSlugify - Anchor normalization
// ---------------------------------------------------------------------------

func TestSlugify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		page string
		text string
		want string
	}{
		{
			name: "punctuation removed",
			page: "docs",
			text: "Hello, World!",
			want: "docs/hello-world",
		},
		{
			name: "runs of separators collapsed",
			page: "p",
			text: "  multiple   spaces--and__underscores  ",
			want: "p/multiple-spaces-and-underscores",
		},
		{
			name: "empty after normalization",
			page: "p",
			text: "?!",
			want: "p/",
		},
		{
			name: "no page",
			page: "",
			text: "Intro",
			want: "/intro",
		},
		{
			name: "digits kept",
			page: "api",
			text: "Version 2.0 Notes",
			want: "api/version-20-notes",
		},
		{
			name: "leading and trailing hyphens trimmed",
			page: "p",
			text: "-- edge --",
			want: "p/edge",
		},
		{
			name: "no-break space separates",
			page: "p",
			text: "Release\u00a0Notes",
			want: "p/release-notes",
		},
		{
			name: "vertical tab separates",
			page: "p",
			text: "a\vb",
			want: "p/a-b",
		},
		{
			name: "ideographic and line separators",
			page: "p",
			text: "one\u3000two\u2028three\ufefffour",
			want: "p/one-two-three-four",
		},
		{
			name: "non ascii letters dropped",
			page: "p",
			text: "Café Menu",
			want: "p/caf-menu",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := headings.Slugify(tt.page, tt.text); got != tt.want {
				t.Errorf("Slugify(%q, %q) = %q, want %q", tt.page, tt.text, got, tt.want)
			}
		})
	}
}

func TestSlugify_Charset(t *testing.T) {
	t.Parallel()

	allowed := regexp.MustCompile(`^[a-z0-9-]*$`)
	inputs := []string{
		"Getting Started!",
		"What's new in 3.1?",
		"(Draft) -- API: Reference; v2",
		"A_B_C d-e-f",
		"Q&A #42 @home",
	}
	for _, in := range inputs {
		got := headings.Normalize(in)
		if !allowed.MatchString(got) {
			t.Errorf("Normalize(%q) = %q contains characters outside [a-z0-9-]", in, got)
		}
	}
}

// ---------------------------------------------------------------------------
// TestCollect - Headings gathered from a parsed document
// ---------------------------------------------------------------------------

func parse(t *testing.T, page, src string) []headings.Heading {
	t.Helper()

	md := goldmark.New(goldmark.WithExtensions(headings.IDs))
	source := []byte(src)
	pc := headings.NewContext(page)
	doc := md.Parser().Parse(text.NewReader(source), parser.WithContext(pc))
	return headings.Collect(doc, source)
}

func TestCollect(t *testing.T) {
	t.Parallel()

	src := "# Hello, World!\n\nText.\n\n## Setup\n\n### Setup\n\nSub Title\n---------\n"
	want := []headings.Heading{
		{Title: "Hello, World!", Anchor: "docs/hello-world", HeadingLevel: "h1"},
		{Title: "Setup", Anchor: "docs/setup", HeadingLevel: "h2"},
		{Title: "Setup", Anchor: "docs/setup", HeadingLevel: "h3"},
		{Title: "Sub Title", Anchor: "docs/sub-title", HeadingLevel: "h2"},
	}

	got := parse(t, "docs", src)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Collect() mismatch (-want +got):\n%s", diff)
	}
}

func TestCollect_InlineMarkup(t *testing.T) {
	t.Parallel()

	got := parse(t, "p", "## Use `go test` *now*\n")
	want := []headings.Heading{
		{Title: "Use go test now", Anchor: "p/use-go-test-now", HeadingLevel: "h2"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Collect() mismatch (-want +got):\n%s", diff)
	}
}

func TestCollect_TextContent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want headings.Heading
	}{
		{
			name: "link destination left out",
			src:  "## See [the docs](https://x.io/a)\n",
			want: headings.Heading{Title: "See the docs", Anchor: "p/see-the-docs", HeadingLevel: "h2"},
		},
		{
			name: "named entity decoded",
			src:  "## A &amp; B\n",
			want: headings.Heading{Title: "A & B", Anchor: "p/a-b", HeadingLevel: "h2"},
		},
		{
			name: "numeric entity decoded",
			src:  "## Caf&#233;\n",
			want: headings.Heading{Title: "Café", Anchor: "p/caf", HeadingLevel: "h2"},
		},
		{
			name: "backslash escapes resolved",
			src:  "## \\*Not emphasis\\*\n",
			want: headings.Heading{Title: "*Not emphasis*", Anchor: "p/not-emphasis", HeadingLevel: "h2"},
		},
		{
			name: "multi-line setext heading",
			src:  "Multi\nline\n===\n",
			want: headings.Heading{Title: "Multi line", Anchor: "p/multi-line", HeadingLevel: "h1"},
		},
		{
			name: "code span kept verbatim",
			src:  "## Run `a &amp; b`\n",
			want: headings.Heading{Title: "Run a &amp; b", Anchor: "p/run-a-amp-b", HeadingLevel: "h2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := parse(t, "p", tt.src)
			if diff := cmp.Diff([]headings.Heading{tt.want}, got); diff != "" {
				t.Errorf("Collect() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCollect_PageIsolation(t *testing.T) {
	t.Parallel()

	first := parse(t, "page1", "# One\n")
	second := parse(t, "page2", "# Two\n")

	if len(first) != 1 || first[0].Anchor != "page1/one" {
		t.Fatalf("first render = %+v", first)
	}
	want := []headings.Heading{{Title: "Two", Anchor: "page2/two", HeadingLevel: "h1"}}
	if diff := cmp.Diff(want, second); diff != "" {
		t.Errorf("second render kept earlier headings (-want +got):\n%s", diff)
	}
}

// ---------------------------------------------------------------------------
// TestMarshal - JSON encoding
// ---------------------------------------------------------------------------

func TestMarshal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input []headings.Heading
		want  string
	}{
		{
			name:  "nil",
			input: nil,
			want:  `[]`,
		},
		{
			name:  "one heading",
			input: []headings.Heading{{Title: "A", Anchor: "p/a", HeadingLevel: "h2"}},
			want:  `[{"Title":"A","Anchor":"p/a","HeadingLevel":"h2"}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := headings.Marshal(tt.input)
			if err != nil {
				t.Fatalf("Marshal() unexpected error: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Marshal() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestNewContext(t *testing.T) {
	t.Parallel()

	if got := headings.PageOf(headings.NewContext("guide")); got != "guide" {
		t.Errorf("PageOf(NewContext(guide)) = %q, want %q", got, "guide")
	}
	if got := headings.PageOf(parser.NewContext()); got != "" {
		t.Errorf("PageOf(plain context) = %q, want empty", got)
	}
}
