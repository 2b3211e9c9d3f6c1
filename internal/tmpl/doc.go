// Package tmpl compiles and applies page templates.
//
// Two engines are available: handlebars (the default, with the catalogue
// helpers compare, json, md and each_upto) and gotemplate (text/template
// with the sprig function set). Compiled templates live in a Cache owned by
// the caller. Failures are reported as *Error values carrying a Kind.
package tmpl
