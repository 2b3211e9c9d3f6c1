package catalogue

import (
	"go.uber.org/zap"

	"github.com/alnah/go-catalogue/internal/callout"
	"github.com/alnah/go-catalogue/internal/config"
	"github.com/alnah/go-catalogue/internal/headings"
	"github.com/alnah/go-catalogue/internal/logging"
	"github.com/alnah/go-catalogue/internal/pipeline"
	"github.com/alnah/go-catalogue/internal/search"
	"github.com/alnah/go-catalogue/internal/tmpl"
)

// Public names for the types that cross the package boundary.
type (
	// Config is the catalogue configuration, see DefaultConfig and LoadConfig.
	Config = config.Config

	// Result is a rendered page.
	Result = pipeline.Result

	// Heading is one heading record of a rendered page.
	Heading = headings.Heading

	// TemplateError is a template failure with its Kind.
	TemplateError = tmpl.Error

	// Index is a queryable search index.
	Index = search.Index

	// Hit is one search result.
	Hit = search.Hit

	// Document is one searchable page.
	Document = search.Document

	// DocID is a document reference.
	DocID = search.DocID

	// LinkHook inspects links during the container walk of a render.
	LinkHook = callout.LinkHook

	// Depth is the container nesting of a render position.
	Depth = callout.Depth
)

// DefaultConfig returns the stock catalogue configuration.
func DefaultConfig() *Config {
	return config.DefaultConfig()
}

// LoadConfig loads a YAML configuration by file path or by name.
func LoadConfig(nameOrPath string) (*Config, error) {
	return config.LoadConfig(nameOrPath)
}

// Option configures a Catalogue.
type Option func(*Catalogue)

// WithConfig replaces the default configuration. The configuration is
// validated by New.
func WithConfig(cfg *Config) Option {
	return func(c *Catalogue) {
		if cfg != nil {
			c.cfg = cfg
		}
	}
}

// WithLogger sets the logger used by every component. Nil selects a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Catalogue) {
		c.logger = logging.Nop(logger)
	}
}

// WithAssetPath overrides Config.Assets.BasePath.
func WithAssetPath(path string) Option {
	return func(c *Catalogue) {
		c.assetPath = path
	}
}

// renderOptions maps the configuration onto renderer options.
func renderOptions(cfg *Config) pipeline.Options {
	return pipeline.Options{
		Links:         cfg.Markdown.Links,
		Typographer:   cfg.Markdown.Typographer,
		Linkify:       cfg.Markdown.Linkify,
		Unsafe:        cfg.Markdown.UnsafeHTML,
		HardWraps:     cfg.Markdown.HardWraps,
		Permalinks:    cfg.Markdown.Permalinks,
		Emoji:         cfg.Markdown.Emoji,
		FrontMatter:   cfg.Markdown.FrontMatter,
		Sanitize:      cfg.Markdown.Sanitize,
		LineNumbers:   cfg.Highlight.LineNumbers,
		GuessLanguage: cfg.Highlight.GuessLanguage,
		Diagrams:      cfg.Markdown.Diagrams,
		TOC:           cfg.TOC.Enabled,
		TOCMinDepth:   cfg.TOC.MinDepth,
		TOCMaxDepth:   cfg.TOC.MaxDepth,
	}
}

// searchOptions maps the configuration onto index options.
func searchOptions(cfg *Config, logger *zap.Logger) search.Options {
	return search.Options{
		TitleBoost: cfg.Search.TitleBoost,
		StripHTML:  cfg.Search.StripHTML,
		Logger:     logger,
	}
}
