package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"
)

// ErrDocumentRender indicates the page shell template failed.
var ErrDocumentRender = errors.New("document template rendering failed")

// DefaultDocumentTemplate wraps a rendered fragment in a complete HTML5 page.
const DefaultDocumentTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
{{- if .TOC}}
<nav class="toc">
{{.TOC}}</nav>
{{- end}}
<main>
{{.Body}}</main>
</body>
</html>
`

// CSSInjector defines the contract for CSS injection into HTML.
type CSSInjector interface {
	InjectCSS(ctx context.Context, htmlContent, cssContent string) string
}

// CSSInjection injects CSS as a <style> block into HTML content.
type CSSInjection struct{}

var _ CSSInjector = (*CSSInjection)(nil)

// InjectCSS inserts a <style> block into HTML content.
// Tries </head> first, then <body>, then prepends to the HTML.
// CSS content is sanitized to prevent injection attacks.
func (s *CSSInjection) InjectCSS(ctx context.Context, htmlContent, cssContent string) string {
	if cssContent == "" {
		return htmlContent
	}

	// Check for cancellation
	if ctx.Err() != nil {
		return htmlContent
	}

	styleBlock := "<style>" + sanitizeCSS(cssContent) + "</style>"
	lowerHTML := strings.ToLower(htmlContent)

	// Try inserting before </head>
	if idx := strings.Index(lowerHTML, "</head>"); idx != -1 {
		return htmlContent[:idx] + styleBlock + htmlContent[idx:]
	}

	// Try inserting after <body>
	if idx := strings.Index(lowerHTML, "<body"); idx != -1 {
		// Find the closing > of <body...>
		closeIdx := strings.Index(htmlContent[idx:], ">")
		if closeIdx != -1 {
			insertPos := idx + closeIdx + 1
			return htmlContent[:insertPos] + styleBlock + htmlContent[insertPos:]
		}
	}

	// Fallback: prepend
	return styleBlock + htmlContent
}

// sanitizeCSS escapes sequences that could break out of a <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

// DocumentData is the input of the page shell template.
type DocumentData struct {
	Title string
	Body  template.HTML
	TOC   template.HTML
}

// DocumentWrapper defines the contract for wrapping a fragment in a page.
type DocumentWrapper interface {
	Wrap(ctx context.Context, data *DocumentData) (string, error)
}

// DocumentInjection renders rendered pages into a page shell template.
type DocumentInjection struct {
	tmpl *template.Template
}

var _ DocumentWrapper = (*DocumentInjection)(nil)

// NewDocumentInjection creates a DocumentInjection from template content.
// Empty content selects DefaultDocumentTemplate.
func NewDocumentInjection(tmplContent string) (*DocumentInjection, error) {
	if tmplContent == "" {
		tmplContent = DefaultDocumentTemplate
	}
	tmpl, err := template.New("document").Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("parsing document template: %w", err)
	}
	return &DocumentInjection{tmpl: tmpl}, nil
}

// Wrap renders data into the page shell. The body and TOC are trusted
// output of Renderer and are not escaped.
func (d *DocumentInjection) Wrap(ctx context.Context, data *DocumentData) (string, error) {
	if data == nil {
		return "", fmt.Errorf("%w: no document data", ErrDocumentRender)
	}

	// Check for cancellation
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	var buf bytes.Buffer
	if err := d.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrDocumentRender, err)
	}
	return buf.String(), nil
}

// Standalone wraps res in a complete page titled title, with css inlined.
func Standalone(ctx context.Context, wrapper DocumentWrapper, title string, res *Result, css string) (string, error) {
	page, err := wrapper.Wrap(ctx, &DocumentData{
		Title: title,
		Body:  template.HTML(res.HTML),
		TOC:   template.HTML(res.TOC),
	})
	if err != nil {
		return "", err
	}
	return (&CSSInjection{}).InjectCSS(ctx, page, css), nil
}
