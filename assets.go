package md2epub

import (
	"errors"

	"github.com/alnah/go-md2epub/internal/assets"
)

// Asset name constants for the built-in stylesheet and templates.
const (
	// DefaultStyle is the name of the built-in CSS style.
	DefaultStyle = assets.DefaultStyleName

	// IndexTemplate is the name of the template rendering chapters with content.
	IndexTemplate = assets.IndexTemplateName

	// BlankTemplate is the name of the template rendering placeholder pages.
	BlankTemplate = assets.BlankTemplateName
)

// AssetLoader defines the contract for loading CSS styles and page templates.
// Implementations may load from filesystem, embedded assets, a database, etc.
//
// The library provides NewAssetLoader() for filesystem-based loading with
// fallback to embedded defaults. Implement this interface for custom backends.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	LoadStyle(name string) (string, error)

	// LoadTemplate loads a page template by name (without .html extension).
	// Templates use html/template syntax and receive "title", "body" and
	// "stylesheet" (index) or "title" (blank).
	// Returns ErrTemplateNotFound if the template doesn't exist.
	LoadTemplate(name string) (string, error)
}

// NewAssetLoader creates an AssetLoader for the given base path.
// If basePath is empty, returns a loader using only embedded assets.
// If basePath is set, custom assets take precedence with fallback to embedded.
//
// The basePath directory should contain:
//   - styles/{name}.css for CSS styles
//   - templates/{name}.html for page templates
//
// Returns ErrInvalidAssetPath if basePath is set but not a valid, readable directory.
func NewAssetLoader(basePath string) (AssetLoader, error) {
	resolver, err := assets.NewAssetResolver(basePath)
	if err != nil {
		return nil, convertAssetError(err, ErrInvalidAssetPath)
	}
	return &assetLoaderAdapter{loader: resolver}, nil
}

// assetLoaderAdapter wraps an internal loader to return public errors.
type assetLoaderAdapter struct {
	loader assets.AssetLoader
}

func (a *assetLoaderAdapter) LoadStyle(name string) (string, error) {
	content, err := a.loader.LoadStyle(name)
	return content, convertAssetError(err, ErrStyleNotFound)
}

func (a *assetLoaderAdapter) LoadTemplate(name string) (string, error) {
	content, err := a.loader.LoadTemplate(name)
	return content, convertAssetError(err, ErrTemplateNotFound)
}

// publicAssetErrors maps internal asset errors to public sentinels.
// A nil public sentinel stands for the not-found error of the lookup kind,
// so a malformed name reads as a missing style or template.
var publicAssetErrors = []struct {
	internal error
	public   error
}{
	{assets.ErrStyleNotFound, ErrStyleNotFound},
	{assets.ErrTemplateNotFound, ErrTemplateNotFound},
	{assets.ErrInvalidAssetName, nil},
	{assets.ErrInvalidBasePath, ErrInvalidAssetPath},
	{assets.ErrPathTraversal, ErrInvalidAssetPath},
}

// convertAssetError maps err to a public sentinel, keeping its message.
// notFound is the sentinel of the lookup that failed. Unknown errors are
// returned unchanged.
func convertAssetError(err, notFound error) error {
	if err == nil {
		return nil
	}
	for _, m := range publicAssetErrors {
		if !errors.Is(err, m.internal) {
			continue
		}
		if m.public == nil {
			return wrapError(notFound, err)
		}
		return wrapError(m.public, err)
	}
	return err
}

// wrapError returns an error printing as original and matching sentinel
// with errors.Is. The internal error is not exposed.
func wrapError(sentinel, original error) error {
	return &wrappedAssetError{sentinel: sentinel, original: original}
}

type wrappedAssetError struct {
	sentinel error
	original error
}

func (e *wrappedAssetError) Error() string { return e.original.Error() }

func (e *wrappedAssetError) Unwrap() error { return e.sentinel }
