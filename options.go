package md2epub

import (
	"time"

	"go.uber.org/zap"

	"github.com/alnah/go-md2epub/internal/resources"
)

// Option configures a Generator.
type Option func(*Generator)

// DefaultBuildDir is the destination, relative to the book root, used when
// WithDestination is not given.
const DefaultBuildDir = "book"

// defaultLanguage is written to the package when the book declares none.
const defaultLanguage = "en"

// DefaultHTTPTimeout bounds a remote image download unless WithHTTPTimeout is set.
const DefaultHTTPTimeout = resources.DefaultTimeout

// generatorName identifies this tool in the package metadata.
const generatorName = "md2epub"

// WithLogger sets the diagnostics sink. A nil logger disables logging.
func WithLogger(logger *zap.Logger) Option {
	return func(g *Generator) {
		if logger == nil {
			logger = zap.NewNop()
		}
		g.logger = logger
	}
}

// WithRetriever replaces the network and disk access used to embed assets.
func WithRetriever(r ContentRetriever) Option {
	return func(g *Generator) {
		g.retriever = r
	}
}

// WithHTTPTimeout bounds each remote image download of the default retriever.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithHTTPTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("md2epub: WithHTTPTimeout duration must be positive")
	}
	return func(g *Generator) {
		g.httpTimeout = d
	}
}

// WithDestination sets the output directory. Remote images are cached
// below it in "cache/".
func WithDestination(dir string) Option {
	return func(g *Generator) {
		g.destination = dir
	}
}

// WithAssetPath loads styles and templates from a custom directory, falling
// back to the embedded ones. See NewAssetLoader for the layout.
func WithAssetPath(path string) Option {
	return func(g *Generator) {
		g.assetPath = path
	}
}

// WithAssetLoader sets a custom loader for styles and templates.
// It takes precedence over WithAssetPath.
func WithAssetLoader(loader AssetLoader) Option {
	return func(g *Generator) {
		g.loader = loader
	}
}

// WithHighlightStyle sets the chroma style used for code blocks.
func WithHighlightStyle(name string) Option {
	return func(g *Generator) {
		g.highlightStyle = name
	}
}

// WithClock sets the time source for the modification date of EPUB 3 packages.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		if now != nil {
			g.now = now
		}
	}
}

// defaultRetriever downloads over HTTP and reads from disk.
func defaultRetriever(timeout time.Duration, logger *zap.Logger) ContentRetriever {
	return resources.NewHandler(
		resources.NewHTTPRetriever(resources.WithTimeout(timeout)),
		logger,
	)
}
