package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-catalogue/internal/fileutil"
	"github.com/alnah/go-catalogue/internal/logging"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength      = 4096
	MaxNameLength      = 64 // container and engine names
	MaxDiagramsCount   = 32
	MaxTitleBoost      = 1000
	DefaultHighlighter = "github"
)

// Template engines accepted by templates.engine.
const (
	EngineHandlebars = "handlebars"
	EngineGoTemplate = "gotemplate"
)

// Config holds all configuration for rendering, templating and indexing.
type Config struct {
	Markdown  MarkdownConfig  `yaml:"markdown"`
	Highlight HighlightConfig `yaml:"highlight"`
	TOC       TOCConfig       `yaml:"toc"`
	Templates TemplatesConfig `yaml:"templates"`
	Search    SearchConfig    `yaml:"search"`
	Assets    AssetsConfig    `yaml:"assets"`
	Log       logging.Config  `yaml:"log"`
}

// MarkdownConfig toggles renderer features.
type MarkdownConfig struct {
	Links       bool     `yaml:"links"`       // alert-link class inside callouts
	Typographer bool     `yaml:"typographer"` // smart quotes and dashes
	Linkify     bool     `yaml:"linkify"`
	UnsafeHTML  bool     `yaml:"unsafeHTML"` // pass raw HTML through
	HardWraps   bool     `yaml:"hardWraps"`
	Permalinks  bool     `yaml:"permalinks"`
	Emoji       bool     `yaml:"emoji"`
	FrontMatter bool     `yaml:"frontMatter"`
	Sanitize    bool     `yaml:"sanitize"`
	Callouts    []string `yaml:"callouts"` // extra callout-style containers
	Diagrams    []string `yaml:"diagrams"` // default: mermaid
}

// HighlightConfig defines code highlighting options.
type HighlightConfig struct {
	Style         string `yaml:"style"` // chroma style for the css command
	LineNumbers   bool   `yaml:"lineNumbers"`
	GuessLanguage bool   `yaml:"guessLanguage"`
}

// TOCConfig defines the table of contents built with each render.
type TOCConfig struct {
	Enabled  bool `yaml:"enabled"`
	MinDepth int  `yaml:"minDepth"` // 1-6, default 1
	MaxDepth int  `yaml:"maxDepth"` // 1-6, default 6
}

// TemplatesConfig defines the template engine. Named templates are read
// from the embedded set and from {assets.basePath}/templates.
type TemplatesConfig struct {
	Engine  string `yaml:"engine"`  // handlebars or gotemplate
	Preload bool   `yaml:"preload"` // compile the named templates at startup
}

// SearchConfig defines indexing options.
type SearchConfig struct {
	TitleBoost float64 `yaml:"titleBoost"`
	StripHTML  bool    `yaml:"stripHTML"`
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// Validate checks ranges, enumerations and field lengths. Called
// automatically by LoadConfig, but available for consumers who construct
// Config manually.
func (c *Config) Validate() error {
	for i, name := range c.Markdown.Callouts {
		if err := validateName(fmt.Sprintf("markdown.callouts[%d]", i), name); err != nil {
			return err
		}
	}
	if len(c.Markdown.Diagrams) > MaxDiagramsCount {
		return fmt.Errorf("%w: markdown.diagrams: %d entries (max %d)", ErrInvalidValue, len(c.Markdown.Diagrams), MaxDiagramsCount)
	}
	for i, name := range c.Markdown.Diagrams {
		if err := validateName(fmt.Sprintf("markdown.diagrams[%d]", i), name); err != nil {
			return err
		}
	}

	if err := validateFieldLength("highlight.style", c.Highlight.Style, MaxNameLength); err != nil {
		return err
	}

	if c.TOC.Enabled {
		if err := validateDepth("toc.minDepth", c.TOC.MinDepth); err != nil {
			return err
		}
		if err := validateDepth("toc.maxDepth", c.TOC.MaxDepth); err != nil {
			return err
		}
		if c.TOC.MinDepth != 0 && c.TOC.MaxDepth != 0 && c.TOC.MinDepth > c.TOC.MaxDepth {
			return fmt.Errorf("%w: toc.minDepth (%d) > toc.maxDepth (%d)", ErrInvalidValue, c.TOC.MinDepth, c.TOC.MaxDepth)
		}
	}

	switch strings.ToLower(c.Templates.Engine) {
	case "", EngineHandlebars, EngineGoTemplate:
		// valid
	default:
		return fmt.Errorf("%w: templates.engine %q (must be %s or %s)", ErrInvalidValue, c.Templates.Engine, EngineHandlebars, EngineGoTemplate)
	}

	if c.Search.TitleBoost < 0 || c.Search.TitleBoost > MaxTitleBoost {
		return fmt.Errorf("%w: search.titleBoost must be between 0 and %d, got %.2f", ErrInvalidValue, MaxTitleBoost, c.Search.TitleBoost)
	}

	if err := validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength); err != nil {
		return err
	}

	if err := c.Log.Validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// validateName checks a container name: non-empty, bounded, no whitespace.
func validateName(fieldName, value string) error {
	if value == "" {
		return fmt.Errorf("%w: %s: empty name", ErrInvalidValue, fieldName)
	}
	if err := validateFieldLength(fieldName, value, MaxNameLength); err != nil {
		return err
	}
	if strings.ContainsAny(value, " \t\r\n") {
		return fmt.Errorf("%w: %s: %q contains whitespace", ErrInvalidValue, fieldName, value)
	}
	return nil
}

// validateDepth accepts zero (unset) and heading levels 1-6.
func validateDepth(fieldName string, depth int) error {
	if depth != 0 && (depth < 1 || depth > 6) {
		return fmt.Errorf("%w: %s must be between 1 and 6, got %d", ErrInvalidValue, fieldName, depth)
	}
	return nil
}

// DefaultConfig returns the configuration of the stock catalogue site:
// alert links, linkify and typographer on, raw HTML allowed, a mermaid
// diagram container and a full-depth table of contents.
func DefaultConfig() *Config {
	return &Config{
		Markdown: MarkdownConfig{
			Links:       true,
			Typographer: true,
			Linkify:     true,
			UnsafeHTML:  true,
			Diagrams:    []string{"mermaid"},
		},
		Highlight: HighlightConfig{Style: DefaultHighlighter},
		TOC:       TOCConfig{Enabled: true, MinDepth: 1, MaxDepth: 6},
		Templates: TemplatesConfig{Engine: EngineHandlebars, Preload: true},
		Search:    SearchConfig{TitleBoost: 10, StripHTML: true},
		Log:       logging.DefaultConfig(),
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Keys missing from the file keep their DefaultConfig value.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := decodeStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-catalogue/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "go-catalogue", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
