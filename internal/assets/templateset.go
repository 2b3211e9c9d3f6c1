package assets

import (
	"fmt"
	"sort"
	"strings"
)

// Built-in asset names.
const (
	DefaultStyleName    = "catalogue"
	DefaultDocumentName = "document"
)

// templateExt maps template engine names to the file extension of their
// templates.
var templateExt = map[string]string{
	"handlebars": ".hbs",
	"gotemplate": ".tmpl",
}

// TemplateExtension returns the file extension used for engine's templates.
func TemplateExtension(engine string) (string, error) {
	ext, ok := templateExt[strings.ToLower(engine)]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownEngine, engine)
	}
	return ext, nil
}

// TemplateSet holds the named templates of one engine.
type TemplateSet struct {
	Engine    string
	Templates map[string]string // name (file name without extension) to source
}

func newTemplateSet(engine string) *TemplateSet {
	return &TemplateSet{Engine: strings.ToLower(engine), Templates: make(map[string]string)}
}

// Names returns the template names, sorted.
func (s *TemplateSet) Names() []string {
	names := make([]string, 0, len(s.Templates))
	for name := range s.Templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Merge copies other's templates into s, replacing templates of the same name.
func (s *TemplateSet) Merge(other *TemplateSet) {
	for name, src := range other.Templates {
		s.Templates[name] = src
	}
}

// templateName returns the template name of file when it carries ext.
func templateName(file, ext string) (string, bool) {
	name, ok := strings.CutSuffix(file, ext)
	if !ok || ValidateAssetName(name) != nil {
		return "", false
	}
	return name, true
}
