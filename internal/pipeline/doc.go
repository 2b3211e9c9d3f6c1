// Package pipeline renders catalogue Markdown pages.
//
// A render runs these stages:
//   - Markdown preprocessing (line endings, NUL characters)
//   - Parsing with the catalogue extensions (containers, abbreviations,
//     icons, footnotes, definition lists, tables)
//   - Heading collection and table of contents
//   - HTML rendering with chroma highlighting, optionally sanitized
//
// Standalone output wraps the fragment in a page shell and inlines the
// stylesheet.
package pipeline
