package catalogue

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/alnah/go-catalogue/internal/assets"
	"github.com/alnah/go-catalogue/internal/callout"
	"github.com/alnah/go-catalogue/internal/pipeline"
	"github.com/alnah/go-catalogue/internal/search"
	"github.com/alnah/go-catalogue/internal/tmpl"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.CommonMarkPreprocessor)(nil)
	_ pipeline.MarkdownRenderer     = (*pipeline.Renderer)(nil)
	_ pipeline.DocumentWrapper      = (*pipeline.DocumentInjection)(nil)
	_ assets.AssetLoader            = (*assets.AssetResolver)(nil)
)

// Catalogue renders pages, owns a template cache and builds search indexes.
// It is safe for concurrent use.
type Catalogue struct {
	cfg       *Config
	logger    *zap.Logger
	assetPath string

	assets    assets.AssetLoader
	renderer  *pipeline.Renderer
	templates *tmpl.Cache
	document  pipeline.DocumentWrapper
}

// New creates a Catalogue from the default configuration, modified by opts.
// Named templates shipped with the assets are compiled unless
// Config.Templates.Preload is off.
func New(opts ...Option) (*Catalogue, error) {
	c := &Catalogue{
		cfg:    DefaultConfig(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.assetPath == "" {
		c.assetPath = c.cfg.Assets.BasePath
	}

	if err := c.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	resolver, err := assets.NewAssetResolver(c.assetPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}
	c.assets = resolver

	ext := callout.New(callout.WithLinks(c.cfg.Markdown.Links))
	for _, name := range c.cfg.Markdown.Callouts {
		ext.RegisterCallout(name)
	}
	c.renderer = pipeline.NewRenderer(renderOptions(c.cfg),
		pipeline.WithLogger(c.logger),
		pipeline.WithCallouts(ext),
	)

	engine, err := tmpl.NewEngine(strings.ToLower(c.cfg.Templates.Engine), c.markdown)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	c.templates = tmpl.NewCache(engine, tmpl.WithLogger(c.logger))

	shell, err := c.assets.LoadTemplate(assets.DefaultDocumentName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssetLoad, err)
	}
	c.document, err = pipeline.NewDocumentInjection(shell)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssetLoad, err)
	}

	if c.cfg.Templates.Preload {
		if err := c.preload(); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// preload compiles the named templates of the configured engine. A template
// that does not compile is kept in the cache and reported when used.
func (c *Catalogue) preload() error {
	set, err := c.assets.LoadTemplateSet(c.templates.Engine().Name())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAssetLoad, err)
	}
	for _, name := range set.Names() {
		_ = c.templates.Compile(name, set.Templates[name])
	}
	c.logger.Debug("templates loaded", zap.Int("count", len(set.Templates)), zap.String("engine", set.Engine))
	return nil
}

// markdown backs the md template helper. Pages rendered from templates have
// no page name and their headings are discarded.
func (c *Catalogue) markdown(source string) (string, error) {
	res, err := c.renderer.Render(context.Background(), "", source)
	if err != nil {
		return "", err
	}
	return res.HTML, nil
}

// Config returns the configuration in use. It must not be modified.
func (c *Catalogue) Config() *Config {
	return c.cfg
}

// Render converts page content to HTML and collects its headings. Heading
// anchors are prefixed with page.
func (c *Catalogue) Render(ctx context.Context, page, content string) (*Result, error) {
	return c.renderer.Render(ctx, page, content)
}

// RegisterCallout adds a callout-style container.
func (c *Catalogue) RegisterCallout(name string) {
	c.renderer.Callouts().RegisterCallout(name)
}

// RegisterAlert adds an alert-style container.
func (c *Catalogue) RegisterAlert(name string) {
	c.renderer.Callouts().RegisterAlert(name)
}

// UseLinkHook wraps the link hook chain, see callout.Extension.UseLinkHook.
func (c *Catalogue) UseLinkHook(wrap func(next LinkHook) LinkHook) {
	c.renderer.Callouts().UseLinkHook(wrap)
}

// Standalone renders page content into a complete HTML document with the
// catalogue stylesheet inlined.
func (c *Catalogue) Standalone(ctx context.Context, page, title, content string) (string, error) {
	res, err := c.Render(ctx, page, content)
	if err != nil {
		return "", err
	}
	return c.Wrap(ctx, title, res)
}

// Wrap builds the complete HTML document for an already rendered page. An
// empty title falls back to the first heading.
func (c *Catalogue) Wrap(ctx context.Context, title string, res *Result) (string, error) {
	css, err := c.Stylesheet()
	if err != nil {
		return "", err
	}
	if title == "" && len(res.Headings) > 0 {
		title = res.Headings[0].Title
	}
	return pipeline.Standalone(ctx, c.document, title, res, css)
}

// Stylesheet returns the catalogue stylesheet followed by the rules of the
// configured highlighting style.
func (c *Catalogue) Stylesheet() (string, error) {
	css, err := c.assets.LoadStyle(assets.DefaultStyleName)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAssetLoad, err)
	}
	var buf bytes.Buffer
	buf.WriteString(css)
	buf.WriteByte('\n')
	if err := pipeline.StyleCSS(&buf, c.cfg.Highlight.Style); err != nil {
		return "", fmt.Errorf("%w: %v", ErrAssetLoad, err)
	}
	return buf.String(), nil
}

// Compile compiles source and stores it as name. A failed compile is also
// stored and reported by later Transform calls.
func (c *Catalogue) Compile(name, source string) error {
	return c.templates.Compile(name, source)
}

// Transform applies the template name to a JSON document.
func (c *Catalogue) Transform(name, jsonData string) (string, error) {
	return c.templates.Transform(name, jsonData)
}

// CompileAndTransform compiles source and applies it to a JSON document
// without storing it.
func (c *Catalogue) CompileAndTransform(source, jsonData string) (string, error) {
	return c.templates.CompileAndTransform(source, jsonData)
}

// Evict removes the template name and reports whether it was present.
func (c *Catalogue) Evict(name string) bool {
	return c.templates.Evict(name)
}

// Templates returns the names of the stored templates, sorted.
func (c *Catalogue) Templates() []string {
	return c.templates.Names()
}

// BuildIndex indexes a JSON array of documents. The caller closes the index.
func (c *Catalogue) BuildIndex(docs []byte) (*Index, error) {
	return search.Build(docs, searchOptions(c.cfg, c.logger))
}

// CreateIndex indexes a JSON array of documents and returns the serialized
// {"index": ..., "store": ...} form. Every call starts from an empty index.
func (c *Catalogue) CreateIndex(docs []byte) ([]byte, error) {
	return search.CreateIndex(docs, searchOptions(c.cfg, c.logger))
}
