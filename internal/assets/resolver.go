package assets

import "errors"

// AssetResolver asks a chain of loaders in order and returns the first hit.
// A loader that does not have the asset passes to the next one; any other
// failure (invalid name, unreadable file, escaping link) stops the chain.
type AssetResolver struct {
	chain []AssetLoader
}

// NewAssetResolver returns a resolver over the embedded assets, preceded by
// the directory customBasePath when it is set.
// Returns ErrInvalidBasePath if customBasePath is not a readable directory.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	r := &AssetResolver{}
	if customBasePath != "" {
		custom, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		r.chain = append(r.chain, custom)
	}
	r.chain = append(r.chain, NewEmbeddedLoader())
	return r, nil
}

// LoadStyle returns the first stylesheet called name along the chain.
func (r *AssetResolver) LoadStyle(name string) (string, error) {
	return r.first(func(l AssetLoader) (string, error) { return l.LoadStyle(name) })
}

// LoadTemplate returns the first page template called name along the chain.
func (r *AssetResolver) LoadTemplate(name string) (string, error) {
	return r.first(func(l AssetLoader) (string, error) { return l.LoadTemplate(name) })
}

func (r *AssetResolver) first(load func(AssetLoader) (string, error)) (string, error) {
	var err error
	for _, l := range r.chain {
		var content string
		content, err = load(l)
		if err == nil {
			return content, nil
		}
		if !errors.Is(err, ErrStyleNotFound) && !errors.Is(err, ErrTemplateNotFound) {
			return "", err
		}
	}
	return "", err
}

// HasCustomLoader reports whether a custom directory precedes the embedded assets.
func (r *AssetResolver) HasCustomLoader() bool {
	return len(r.chain) > 1
}

// Compile-time interface check.
var _ AssetLoader = (*AssetResolver)(nil)
