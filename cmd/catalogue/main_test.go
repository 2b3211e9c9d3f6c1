package main

// Notes:
// - Commands run through runMain with an in-memory Environment; the
//   process environment and working directory are never consulted.
// - Outputs are written under t.TempDir.

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	catalogue "github.com/alnah/go-catalogue"
)

// testEnv returns an Environment backed by buffers and vars.
func testEnv(stdin string, vars map[string]string) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	env := &Environment{
		Stdin:  strings.NewReader(stdin),
		Stdout: &stdout,
		Stderr: &stderr,
		Getenv: func(k string) string { return vars[k] },
		Environ: func() []string {
			out := make([]string, 0, len(vars))
			for k, v := range vars {
				out = append(out, k+"="+v)
			}
			return out
		},
	}
	return env, &stdout, &stderr
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(b)
}

// ---------------------------------------------------------------------------
// TestRunMain - Dispatch
// ---------------------------------------------------------------------------

func TestRunMain_Dispatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{name: "no command", args: nil, wantCode: ExitUsage, wantStderr: "Usage: catalogue"},
		{name: "unknown command", args: []string{"publish"}, wantCode: ExitUsage, wantStderr: "Unknown command: publish"},
		{name: "version", args: []string{"version"}, wantCode: ExitSuccess, wantStdout: "catalogue dev"},
		{name: "help", args: []string{"help"}, wantCode: ExitSuccess, wantStdout: "Commands:"},
		{name: "help render", args: []string{"help", "render"}, wantCode: ExitSuccess, wantStdout: "--standalone"},
		{name: "render --help", args: []string{"render", "--help"}, wantCode: ExitSuccess, wantStderr: "Usage: catalogue render"},
		{name: "bad flag", args: []string{"render", "--nope"}, wantCode: ExitUsage, wantStderr: "invalid usage"},
		{name: "render without input", args: []string{"render"}, wantCode: ExitIO, wantStderr: "no input"},
		{name: "index without input", args: []string{"index"}, wantCode: ExitIO},
		{name: "transform without template", args: []string{"transform"}, wantCode: ExitUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := testEnv("", nil)
			code := runMain(context.Background(), tt.args, env)
			if code != tt.wantCode {
				t.Errorf("runMain() = %d, want %d (stderr: %s)", code, tt.wantCode, stderr)
			}
			if !strings.Contains(stdout.String(), tt.wantStdout) {
				t.Errorf("stdout = %q, want it to contain %q", stdout, tt.wantStdout)
			}
			if !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want it to contain %q", stderr, tt.wantStderr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRender - render command
// ---------------------------------------------------------------------------

func TestRender_Directory(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, map[string]string{
		"index.md":         "# Home\n\n::: info\nSee [install](guide/install.html).\n:::\n",
		"guide/install.md": "# Install\n\n## Requirements\n",
	})
	out := filepath.Join(t.TempDir(), "site")

	env, stdout, stderr := testEnv("", nil)
	code := runMain(context.Background(), []string{"render", dir, "-o", out, "-w", "2", "--headings"}, env)
	if code != ExitSuccess {
		t.Fatalf("runMain() = %d, stderr: %s", code, stderr)
	}
	if !strings.Contains(stdout.String(), "2 succeeded, 0 failed") {
		t.Errorf("stdout = %q", stdout)
	}

	home := readFile(t, filepath.Join(out, "index.html"))
	if !strings.Contains(home, `<h1 id="index/home">Home</h1>`) || !strings.Contains(home, `class="alert-link"`) {
		t.Errorf("index.html = %s", home)
	}

	var got []catalogue.Heading
	if err := json.Unmarshal([]byte(readFile(t, filepath.Join(out, "guide", "install.headings.json"))), &got); err != nil {
		t.Fatalf("headings file is not JSON: %v", err)
	}
	want := []catalogue.Heading{
		{Title: "Install", Anchor: "guide/install/install", HeadingLevel: "h1"},
		{Title: "Requirements", Anchor: "guide/install/requirements", HeadingLevel: "h2"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("headings mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_StandalonePage(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, map[string]string{"doc.md": "# Doc\n\nBody.\n"})
	out := filepath.Join(dir, "out.html")

	env, _, stderr := testEnv("", nil)
	args := []string{"render", filepath.Join(dir, "doc.md"), "-o", out, "--standalone", "--page", "p", "--title", "Custom", "-q"}
	if code := runMain(context.Background(), args, env); code != ExitSuccess {
		t.Fatalf("runMain() = %d, stderr: %s", code, stderr)
	}

	doc := readFile(t, out)
	for _, want := range []string{"<title>Custom</title>", `id="p/doc"`, "<style>"} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q", want)
		}
	}
}

func TestRender_InvalidWorkers(t *testing.T) {
	t.Parallel()

	env, _, _ := testEnv("", nil)
	if code := runMain(context.Background(), []string{"render", ".", "-w", "-1"}, env); code != ExitUsage {
		t.Errorf("runMain() = %d, want %d", code, ExitUsage)
	}
}

func TestRender_Cancelled(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, map[string]string{"a.md": "# A", "b.md": "# B"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	env, _, stderr := testEnv("", nil)
	if code := runMain(ctx, []string{"render", dir}, env); code != ExitGeneral {
		t.Errorf("runMain() = %d, want %d", code, ExitGeneral)
	}
	if !strings.Contains(stderr.String(), "FAILED") {
		t.Errorf("stderr = %q, want failures", stderr)
	}
}

// ---------------------------------------------------------------------------
// TestIndex - index command
// ---------------------------------------------------------------------------

func TestIndex_JSONDocuments(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, map[string]string{
		"docs.json": `[{"id": 1, "title": "One", "body": "first", "href": "1.html"}]`,
	})

	env, stdout, stderr := testEnv("", nil)
	if code := runMain(context.Background(), []string{"index", filepath.Join(dir, "docs.json")}, env); code != ExitSuccess {
		t.Fatalf("runMain() = %d, stderr: %s", code, stderr)
	}

	var got struct {
		Store map[string]map[string]string `json:"store"`
	}
	if err := json.Unmarshal(stdout.Bytes(), &got); err != nil {
		t.Fatalf("stdout is not JSON: %v", err)
	}
	if got.Store["1"]["href"] != "1.html" {
		t.Errorf("store = %v", got.Store)
	}
}

func TestIndex_DirectoryQuery(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, map[string]string{
		"deploy.md": "# Deploying\n\nShip the build.\n",
		"setup.md":  "# Setup\n\nRead deploying notes first.\n",
	})

	env, stdout, stderr := testEnv("", nil)
	if code := runMain(context.Background(), []string{"index", dir, "--query", "deploying"}, env); code != ExitSuccess {
		t.Fatalf("runMain() = %d, stderr: %s", code, stderr)
	}

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	if len(lines) != 2 || !strings.Contains(lines[0], "deploy.html\tDeploying") {
		t.Errorf("hits = %q, want title match first", lines)
	}
}

func TestIndex_InvalidDocuments(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, map[string]string{"docs.json": `{"id": 1}`})

	env, _, _ := testEnv("", nil)
	if code := runMain(context.Background(), []string{"index", filepath.Join(dir, "docs.json")}, env); code != ExitUsage {
		t.Errorf("runMain() = %d, want %d", code, ExitUsage)
	}
}

// ---------------------------------------------------------------------------
// TestTransform - transform command
// ---------------------------------------------------------------------------

func TestTransform_TemplateFile(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, map[string]string{
		"t.hbs":     "{{#each items}}<{{this}}>{{/each}}",
		"data.json": `{"items": ["a", "b"]}`,
	})

	env, stdout, stderr := testEnv("", nil)
	args := []string{"transform", filepath.Join(dir, "t.hbs"), "-d", filepath.Join(dir, "data.json")}
	if code := runMain(context.Background(), args, env); code != ExitSuccess {
		t.Fatalf("runMain() = %d, stderr: %s", code, stderr)
	}
	if got := stdout.String(); got != "&lt;a&gt;&lt;b&gt;\n" && got != "<a><b>\n" {
		t.Errorf("stdout = %q", got)
	}
}

func TestTransform_NamedFromStdin(t *testing.T) {
	t.Parallel()

	env, stdout, stderr := testEnv(`{"title": "Widgets", "href": "w.html", "tags": ["x"]}`, nil)
	if code := runMain(context.Background(), []string{"transform", "--name", "card"}, env); code != ExitSuccess {
		t.Fatalf("runMain() = %d, stderr: %s", code, stderr)
	}
	for _, want := range []string{`<a href="w.html">Widgets</a>`, "<li>x</li>"} {
		if !strings.Contains(stdout.String(), want) {
			t.Errorf("stdout missing %q:\n%s", want, stdout)
		}
	}
}

func TestTransform_GoTemplateFromEnv(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, map[string]string{"t.tmpl": `{{.name | title}}`})

	env, stdout, stderr := testEnv(`{"name": "ada"}`, map[string]string{envEngine: "gotemplate"})
	if code := runMain(context.Background(), []string{"transform", filepath.Join(dir, "t.tmpl")}, env); code != ExitSuccess {
		t.Fatalf("runMain() = %d, stderr: %s", code, stderr)
	}
	if got := stdout.String(); got != "Ada\n" {
		t.Errorf("stdout = %q, want Ada", got)
	}
}

func TestTransform_UnknownName(t *testing.T) {
	t.Parallel()

	env, _, stderr := testEnv(`{}`, nil)
	if code := runMain(context.Background(), []string{"transform", "--name", "nope"}, env); code != ExitUsage {
		t.Errorf("runMain() = %d, want %d", code, ExitUsage)
	}
	if !strings.Contains(stderr.String(), "nope") {
		t.Errorf("stderr = %q", stderr)
	}
}

// ---------------------------------------------------------------------------
// TestCSS - css command
// ---------------------------------------------------------------------------

func TestCSS(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "catalogue.css")

	env, _, stderr := testEnv("", nil)
	if code := runMain(context.Background(), []string{"css", "-o", out, "--style", "monokai"}, env); code != ExitSuccess {
		t.Fatalf("runMain() = %d, stderr: %s", code, stderr)
	}
	css := readFile(t, out)
	if !strings.Contains(css, ".alert-link") || !strings.Contains(css, ".chroma") {
		t.Errorf("stylesheet incomplete:\n%s", css)
	}
}

func TestCSS_BadLogLevel(t *testing.T) {
	t.Parallel()

	env, _, _ := testEnv("", map[string]string{envLogLevel: "loud"})
	if code := runMain(context.Background(), []string{"css"}, env); code != ExitUsage {
		t.Errorf("runMain() = %d, want %d", code, ExitUsage)
	}
}
