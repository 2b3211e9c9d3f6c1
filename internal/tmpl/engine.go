package tmpl

import (
	"bytes"
	"encoding/json"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/aymerick/raymond"
)

// Engine names.
const (
	EngineHandlebars = "handlebars"
	EngineGoTemplate = "gotemplate"
)

// MarkdownFunc renders Markdown for the md helper.
type MarkdownFunc func(source string) (string, error)

// Engine compiles template sources.
type Engine interface {
	Name() string
	Compile(name, source string) (Template, error)
}

// Template applies compiled markup to decoded JSON data.
type Template interface {
	Execute(data any) (string, error)
}

// NewEngine returns the engine registered under name. An empty name
// selects handlebars. markdown may be nil, in which case the md helper
// returns its content unchanged.
func NewEngine(name string, markdown MarkdownFunc) (Engine, error) {
	switch name {
	case "", EngineHandlebars:
		return NewHandlebars(markdown), nil
	case EngineGoTemplate:
		return NewGoTemplate(markdown), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrEngine, name)
	}
}

// Handlebars compiles handlebars templates with the catalogue helpers.
type Handlebars struct {
	helpers map[string]interface{}
}

var _ Engine = (*Handlebars)(nil)

// NewHandlebars returns a handlebars engine.
func NewHandlebars(markdown MarkdownFunc) *Handlebars {
	return &Handlebars{helpers: Helpers(markdown)}
}

// Name implements Engine.
func (h *Handlebars) Name() string {
	return EngineHandlebars
}

// Compile implements Engine.
func (h *Handlebars) Compile(name, source string) (Template, error) {
	tpl, err := raymond.Parse(ExpandCompare(source))
	if err != nil {
		return nil, newError(KindCompile, name, err)
	}
	tpl.RegisterHelpers(h.helpers)
	return &handlebarsTemplate{name: name, tpl: tpl}, nil
}

type handlebarsTemplate struct {
	name string
	tpl  *raymond.Template
}

// Execute implements Template. Panics escaping raymond are reported as
// execution errors.
func (t *handlebarsTemplate) Execute(data any) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = "", newError(KindExecute, t.name, fmt.Errorf("%v", r))
		}
	}()

	out, err = t.tpl.Exec(data)
	if err != nil {
		return "", newError(KindExecute, t.name, err)
	}
	return out, nil
}

// GoTemplate compiles text/template sources with the sprig functions plus
// md and json.
type GoTemplate struct {
	funcs template.FuncMap
}

var _ Engine = (*GoTemplate)(nil)

// NewGoTemplate returns a Go template engine.
func NewGoTemplate(markdown MarkdownFunc) *GoTemplate {
	funcs := sprig.TxtFuncMap()
	funcs["md"] = func(source string) (string, error) {
		if markdown == nil {
			return source, nil
		}
		return markdown(source)
	}
	funcs["json"] = func(v any) (string, error) {
		b, err := json.Marshal(v)
		return string(b), err
	}
	return &GoTemplate{funcs: funcs}
}

// Name implements Engine.
func (g *GoTemplate) Name() string {
	return EngineGoTemplate
}

// Compile implements Engine.
func (g *GoTemplate) Compile(name, source string) (Template, error) {
	t, err := template.New(name).Funcs(g.funcs).Parse(source)
	if err != nil {
		return nil, newError(KindCompile, name, err)
	}
	return &goTemplate{name: name, tpl: t}, nil
}

type goTemplate struct {
	name string
	tpl  *template.Template
}

func (t *goTemplate) Execute(data any) (string, error) {
	var buf bytes.Buffer
	if err := t.tpl.Execute(&buf, data); err != nil {
		return "", newError(KindExecute, t.name, err)
	}
	return buf.String(), nil
}
