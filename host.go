package catalogue

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/alnah/go-catalogue/internal/headings"
	"github.com/alnah/go-catalogue/internal/tmpl"
)

// Host exposes a Catalogue through the string-only functions of the host
// window: render, getHeadings, compile, transform, compileAndTransform and
// createIndex. Failures are reported in the returned strings; no method
// returns an error or panics.
//
// Host keeps the headings of the last rendered page. Calls are serialised.
type Host struct {
	mu       sync.Mutex
	cat      *Catalogue
	headings []Heading
}

// NewHost returns a Host backed by cat.
func NewHost(cat *Catalogue) *Host {
	return &Host{cat: cat}
}

// Render converts input to HTML and remembers its headings. Anchors are
// prefixed with pageName. A failed render returns an empty string and
// clears the headings.
func (h *Host) Render(pageName, input string) string {
	h.mu.Lock()
	defer h.mu.Unlock()

	res, err := h.cat.Render(context.Background(), pageName, input)
	if err != nil {
		h.cat.logger.Error("render failed", zap.String("page", pageName), zap.Error(err))
		h.headings = nil
		return ""
	}
	h.headings = res.Headings
	return res.HTML
}

// GetHeadings returns the headings of the last rendered page as a JSON array.
func (h *Host) GetHeadings() string {
	h.mu.Lock()
	defer h.mu.Unlock()

	out, err := headings.Marshal(h.headings)
	if err != nil {
		return "[]"
	}
	return string(out)
}

// Compile stores source as the template name. It always reports true; a
// template that does not compile fails when it is transformed.
func (h *Host) Compile(name, source string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	_ = h.cat.Compile(name, source)
	return true
}

// Transform applies the template name to jsonData.
func (h *Host) Transform(name, jsonData string) string {
	h.mu.Lock()
	defer h.mu.Unlock()

	out, err := h.cat.Transform(name, jsonData)
	if err == nil {
		return out
	}
	te, ok := tmpl.AsError(err)
	if ok && te.Kind == tmpl.KindNotFound {
		return "Template:" + name + " not found."
	}
	return "Template:" + name + " cannot be used. It could be due to errors in template or it is not registered correctly. Error:" + cause(err)
}

// CompileAndTransform compiles source and applies it to jsonData.
func (h *Host) CompileAndTransform(source, jsonData string) string {
	h.mu.Lock()
	defer h.mu.Unlock()

	out, err := h.cat.CompileAndTransform(source, jsonData)
	if err != nil {
		return "Cannot compile the template. Error:" + cause(err)
	}
	return out
}

// CreateIndex indexes a JSON array of documents and returns the serialized
// index and store.
func (h *Host) CreateIndex(jsonDocs string) string {
	h.mu.Lock()
	defer h.mu.Unlock()

	out, err := h.cat.CreateIndex([]byte(jsonDocs))
	if err != nil {
		return "Cannot create the index. Error:" + err.Error()
	}
	return string(out)
}

func cause(err error) string {
	if te, ok := tmpl.AsError(err); ok {
		return te.Cause()
	}
	return err.Error()
}
