package assets

import (
	"embed"
	"fmt"
)

// builtin holds the stylesheet and page templates shipped with the binary.
//
//go:embed styles templates
var builtin embed.FS

// Asset kinds map a logical name to a file below builtin (or a custom
// asset directory, see FilesystemLoader).
const (
	stylesDir    = "styles"
	styleExt     = ".css"
	templatesDir = "templates"
	templateExt  = ".html"
)

// EmbeddedLoader serves the built-in assets.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadStyle returns the built-in stylesheet called name.
func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	return readBuiltin(stylesDir, name, styleExt, ErrStyleNotFound)
}

// LoadTemplate returns the built-in page template called name.
func (e *EmbeddedLoader) LoadTemplate(name string) (string, error) {
	return readBuiltin(templatesDir, name, templateExt, ErrTemplateNotFound)
}

// readBuiltin validates name and reads dir/name+ext, mapping any read
// failure to notFound.
func readBuiltin(dir, name, ext string, notFound error) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}
	content, err := builtin.ReadFile(dir + "/" + name + ext)
	if err != nil {
		return "", fmt.Errorf("%w: %q", notFound, name)
	}
	return string(content), nil
}

// Compile-time interface check.
var _ AssetLoader = (*EmbeddedLoader)(nil)
