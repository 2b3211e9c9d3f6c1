// Package catalogue renders Markdown pages, applies templates and builds
// search indexes for a documentation catalogue.
//
// # Quick Start
//
// Create a Catalogue, render a page and read its headings:
//
//	cat, err := catalogue.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := cat.Render(ctx, "guide", "# Hello\n\n::: info\nSee [docs](/docs).\n:::\n")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.HTML)          // <h1 id="guide/hello">Hello</h1> ...
//	fmt.Println(res.Headings[0])   // {Hello guide/hello h1}
//
// # Markdown
//
// Rendering uses goldmark with tables, strikethrough, footnotes, definition
// lists, abbreviations, icon shortcodes, linkify, typographer and chroma
// highlighting. Eight fenced containers are always available:
//
//	::: success / info / warning / danger               callout style
//	::: alert-success / alert-info / alert-warning / alert-danger   alert style
//
// Links inside a container carry the alert-link class. Every heading gets
// the anchor "{page}/{slug}" so anchors of different pages never collide.
//
// # Templates
//
// Templates are compiled into a cache owned by the Catalogue:
//
//	_ = cat.Compile("card", "<h3>{{title}}</h3>")
//	out, err := cat.Transform("card", `{"title": "Intro"}`)
//
// Failures are *TemplateError values carrying a Kind (not found, compile,
// data, execute). Handlebars templates have the compare, json, md and
// each_upto helpers.
//
// # Search
//
// CreateIndex turns a JSON array of {id, title, body, href} documents into a
// serialized index and an id to {title, href} store. BuildIndex returns the
// queryable index instead.
//
// # Host Bridge
//
// Host exposes the string-in, string-out functions of the embedding shell
// (render, getHeadings, compile, transform, compileAndTransform,
// createIndex). Host methods never fail: errors are returned as
// descriptive strings.
package catalogue
