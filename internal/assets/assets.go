package assets

// defaultLoader serves the package-level helpers from embedded assets.
var defaultLoader = NewEmbeddedLoader()

// LoadStyle loads an embedded CSS file by name.
// The name should not include the .css extension or path components.
func LoadStyle(name string) (string, error) {
	return defaultLoader.LoadStyle(name)
}

// LoadTemplate loads an embedded document shell by name.
func LoadTemplate(name string) (string, error) {
	return defaultLoader.LoadTemplate(name)
}

// LoadTemplateSet loads the embedded templates written for engine.
func LoadTemplateSet(engine string) (*TemplateSet, error) {
	return defaultLoader.LoadTemplateSet(engine)
}
