package assets

import "errors"

// Lookup failures. ErrStyleNotFound and ErrTemplateNotFound let an
// AssetResolver fall through to the next loader; the others stop it.
var (
	ErrStyleNotFound    = errors.New("style not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrInvalidAssetName = errors.New("invalid asset name")
)

// Custom directory failures.
var (
	ErrInvalidBasePath = errors.New("invalid asset directory")
	ErrAssetRead       = errors.New("failed to read asset")
	ErrPathTraversal   = errors.New("asset escapes asset directory")
)
