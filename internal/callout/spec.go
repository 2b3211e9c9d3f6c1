package callout

import (
	"strings"
)

// Style selects the markup a container renders.
type Style int

const (
	// StyleCallout renders <div class="callout callout-{name}">.
	StyleCallout Style = iota
	// StyleAlert renders <div class="alert {name}" role="alert">.
	StyleAlert
	// StyleDiagram renders <div class="{name}"> followed by the fence params.
	// Diagram containers are not counted as nesting for link styling.
	StyleDiagram
)

// String returns the style name.
func (s Style) String() string {
	switch s {
	case StyleCallout:
		return "callout"
	case StyleAlert:
		return "alert"
	case StyleDiagram:
		return "diagram"
	default:
		return "unknown"
	}
}

// Spec is a container registration.
type Spec struct {
	Name  string
	Style Style
}

// Default container names.
var (
	CalloutNames = []string{"success", "info", "warning", "danger"}
	AlertNames   = []string{"alert-success", "alert-info", "alert-warning", "alert-danger"}
)

// Tracked reports whether an open container of this spec counts as nesting.
func (s Spec) Tracked() bool {
	return s.Style != StyleDiagram
}

// Open returns the opening markup for a container with the given params.
// Diagram containers emit the params that follow the name verbatim.
func (s Spec) Open(params string) string {
	switch s.Style {
	case StyleAlert:
		return `<div class="alert ` + s.Name + `" role="alert">` + "\n"
	case StyleDiagram:
		rest := strings.TrimSpace(params)
		rest = strings.TrimSpace(strings.TrimPrefix(rest, s.Name))
		return `<div class="` + s.Name + `">` + rest
	default:
		return `<div class="callout callout-` + s.Name + `">` + "\n"
	}
}

// Close returns the closing markup.
func (s Spec) Close() string {
	return "</div>\n"
}
