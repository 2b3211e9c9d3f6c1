package callout

import (
	"sort"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/alnah/go-catalogue/internal/mdext"
)

// Extension registers containers with goldmark and styles links inside them.
// Register containers and hooks before the first conversion.
type Extension struct {
	mu    sync.RWMutex
	specs map[string]Spec
	hook  LinkHook
}

var _ goldmark.Extender = (*Extension)(nil)

// Option configures an Extension.
type Option func(*options)

type options struct {
	links bool
}

// WithLinks enables or disables alert-link styling. Enabled by default.
func WithLinks(enabled bool) Option {
	return func(o *options) {
		o.links = enabled
	}
}

// New returns an Extension with the callout and alert containers registered.
func New(opts ...Option) *Extension {
	o := options{links: true}
	for _, opt := range opts {
		opt(&o)
	}

	e := &Extension{specs: make(map[string]Spec)}
	for _, name := range CalloutNames {
		e.RegisterCallout(name)
	}
	for _, name := range AlertNames {
		e.RegisterAlert(name)
	}
	e.InstallLinkStyling(o.links)
	return e
}

// Register adds or replaces a container registration.
func (e *Extension) Register(spec Spec) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.specs[spec.Name] = spec
}

// RegisterCallout registers name in callout style.
func (e *Extension) RegisterCallout(name string) {
	e.Register(Spec{Name: name, Style: StyleCallout})
}

// RegisterAlert registers name in alert style.
func (e *Extension) RegisterAlert(name string) {
	e.Register(Spec{Name: name, Style: StyleAlert})
}

// RegisterDiagram registers name as a diagram container.
func (e *Extension) RegisterDiagram(name string) {
	e.Register(Spec{Name: name, Style: StyleDiagram})
}

// Lookup returns the registration for name.
func (e *Extension) Lookup(name string) (Spec, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	spec, ok := e.specs[name]
	return spec, ok
}

// Names returns the registered container names, sorted.
func (e *Extension) Names() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	names := make([]string, 0, len(e.specs))
	for name := range e.specs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// UseLinkHook wraps the current link hook with wrap. The wrapper receives
// the previously installed hook, which may be nil, and is expected to
// delegate to it.
func (e *Extension) UseLinkHook(wrap func(next LinkHook) LinkHook) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.hook = wrap(e.hook)
}

// LinkHook returns the installed hook chain, or nil.
func (e *Extension) LinkHook() LinkHook {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.hook
}

// InstallLinkStyling wraps the link hook chain with alert-link styling when
// enabled. It does nothing otherwise.
func (e *Extension) InstallLinkStyling(enabled bool) {
	if !enabled {
		return
	}
	e.UseLinkHook(StyleLinks)
}

// Extend implements goldmark.Extender.
func (e *Extension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithBlockParsers(
			util.Prioritized(newContainerParser(e), mdext.PriorityContainerParser),
		),
		parser.WithASTTransformers(
			util.Prioritized(&depthTransformer{ext: e}, mdext.PriorityContainerTransformer),
		),
	)
	m.Renderer().AddOptions(
		renderer.WithNodeRenderers(
			util.Prioritized(NewHTMLRenderer(), mdext.PriorityContainerRenderer),
		),
	)
}

// depthTransformer walks the document once, tracking container nesting,
// and hands every link to the hook chain.
type depthTransformer struct {
	ext *Extension
}

func (t *depthTransformer) Transform(doc *ast.Document, _ text.Reader, _ parser.Context) {
	hook := t.ext.LinkHook()
	if hook == nil {
		return
	}
	var depth Depth
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		switch n := n.(type) {
		case *Container:
			if !n.Spec.Tracked() {
				break
			}
			if entering {
				depth.Enter()
			} else {
				depth.Leave()
			}
		case *ast.Link, *ast.AutoLink:
			if entering {
				hook(n, &depth)
			}
		}
		return ast.WalkContinue, nil
	})
}
