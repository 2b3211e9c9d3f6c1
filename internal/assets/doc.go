// Package assets provides the stylesheet, the standalone document shell and
// the named templates shipped with the catalogue.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (defaults)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// AssetResolver is the loader used by the catalogue. It tries the custom
// FilesystemLoader first, falling back to EmbeddedLoader if the asset is
// not found. Template sets are merged by name: a custom card.hbs replaces
// the embedded one while the other embedded templates stay available.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css        # stylesheets (catalogue.css)
//	└── templates/
//	    ├── {name}.html       # document shells (document.html)
//	    ├── {name}.hbs        # handlebars templates
//	    └── {name}.tmpl       # Go templates
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
