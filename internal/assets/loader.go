package assets

// AssetLoader returns the source of a named stylesheet or page template.
// Names carry no extension and no directory.
type AssetLoader interface {
	LoadStyle(name string) (string, error)
	LoadTemplate(name string) (string, error)
}
