package resources

import (
	"net/url"
	"path"
	"path/filepath"
)

// Kind tells where an asset's bytes come from.
type Kind int

const (
	// Local assets are files below the book source directory.
	Local Kind = iota
	// Remote assets are fetched over the network into the cache.
	Remote
)

// String returns "local" or "remote".
func (k Kind) String() string {
	if k == Remote {
		return "remote"
	}
	return "local"
}

// Asset is a resolved embeddable resource.
type Asset struct {
	LocationOnDisk string   // absolute path of the bytes, or the cache destination for Remote
	Filename       string   // slash-separated path inside the package
	MediaType      string   // inferred from Filename's extension
	Kind           Kind     // Local or Remote
	Link           string   // reference string as written in the content
	URL            *url.URL // parsed address, Remote only
}

// Identity is the deduplication key of an asset.
// Two references with the same Identity are embedded once.
type Identity struct {
	Location  string
	MediaType string
}

// Identity returns the asset's deduplication key.
func (a *Asset) Identity() Identity {
	return Identity{Location: a.LocationOnDisk, MediaType: a.MediaType}
}

// IsRemote reports whether the asset must be downloaded before embedding.
func (a *Asset) IsRemote() bool {
	return a.Kind == Remote
}

// PackagePath returns the filename anchored at the package root ("/cache/x.png").
// Rewritten references use it so they resolve the same from any chapter depth.
func (a *Asset) PackagePath() string {
	return "/" + path.Clean(filepath.ToSlash(a.Filename))
}

func newAsset(filename, location string, kind Kind, link string, u *url.URL) *Asset {
	filename = filepath.ToSlash(filename)
	return &Asset{
		LocationOnDisk: location,
		Filename:       filename,
		MediaType:      MediaTypeByFilename(filename),
		Kind:           kind,
		Link:           link,
		URL:            u,
	}
}
