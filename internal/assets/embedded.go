package assets

import (
	"embed"
	"fmt"
)

//go:embed styles/*
var styles embed.FS

//go:embed templates/*
var templates embed.FS

// EmbeddedLoader loads assets from embedded filesystem.
// Implements AssetLoader interface.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadStyle loads a CSS style from embedded assets by name.
// The name should not include the .css extension.
func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	content, err := styles.ReadFile("styles/" + name + ".css")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrStyleNotFound, name)
	}

	return string(content), nil
}

// LoadTemplate loads an HTML document shell from embedded assets by name.
// The name should not include the .html extension.
func (e *EmbeddedLoader) LoadTemplate(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	content, err := templates.ReadFile("templates/" + name + ".html")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
	}

	return string(content), nil
}

// LoadTemplateSet loads the embedded templates written for engine.
func (e *EmbeddedLoader) LoadTemplateSet(engine string) (*TemplateSet, error) {
	ext, err := TemplateExtension(engine)
	if err != nil {
		return nil, err
	}

	entries, err := templates.ReadDir("templates")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssetRead, err)
	}

	set := newTemplateSet(engine)
	for _, entry := range entries {
		name, ok := templateName(entry.Name(), ext)
		if !ok || entry.IsDir() {
			continue
		}
		content, err := templates.ReadFile("templates/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrAssetRead, err)
		}
		set.Templates[name] = string(content)
	}
	return set, nil
}

// Compile-time interface check.
var _ AssetLoader = (*EmbeddedLoader)(nil)
