// Package headings assigns page-scoped anchors to headings and collects
// them after a render.
//
// An anchor is the page name, a slash and the normalized heading text:
//
//	Slugify("docs", "Hello, World!") // "docs/hello-world"
//
// Duplicate headings receive identical anchors.
package headings
