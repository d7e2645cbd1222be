package md2epub

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/alnah/go-md2epub/internal/epub"
	"github.com/alnah/go-md2epub/internal/markdown"
	"github.com/alnah/go-md2epub/internal/resources"
)

// Generator turns a Book into an EPUB package.
// Create with NewGenerator() and call Generate() to write the package.
// A Generator may be reused; each call to Generate starts from scratch.
type Generator struct {
	book    *Book
	cfg     *Config
	version epub.Version

	logger         *zap.Logger
	retriever      ContentRetriever
	loader         AssetLoader
	assetPath      string
	destination    string
	httpTimeout    time.Duration
	highlightStyle string
	now            func() time.Time

	resolver *resources.Resolver
	index    *template.Template
	blank    *template.Template
}

// build holds the state of one Generate call.
type build struct {
	table *resources.Table
	pkg   *epub.Builder
}

// NewGenerator validates cfg and prepares a Generator for book.
// A nil cfg means DefaultConfig(). Configuration errors, such as
// ErrUnsupportedVersion, are reported here, before anything is rendered.
func NewGenerator(book *Book, cfg *Config, opts ...Option) (*Generator, error) {
	if book == nil {
		return nil, ErrNilBook
	}
	cfg = cfg.clone()
	version, err := cfg.version()
	if err != nil {
		return nil, err
	}

	g := &Generator{
		book:        book,
		cfg:         cfg,
		version:     version,
		logger:      zap.NewNop(),
		httpTimeout: DefaultHTTPTimeout,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}

	if g.destination == "" {
		g.destination = filepath.Join(book.Root, DefaultBuildDir)
	}

	// Handle WithAssetPath unless WithAssetLoader already provided a loader
	if g.loader == nil {
		g.loader, err = NewAssetLoader(g.assetPath)
		if err != nil {
			return nil, err
		}
	}

	if g.retriever == nil {
		g.retriever = defaultRetriever(g.httpTimeout, g.logger)
	}

	g.resolver, err = resources.NewResolver(book.SourceDir(), g.destination)
	if err != nil {
		return nil, err
	}

	if err := g.parseTemplates(); err != nil {
		return nil, err
	}

	return g, nil
}

// Generate runs the full pipeline and writes the package to w.
// The context is checked between steps and bounds remote downloads.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (g *Generator) Generate(ctx context.Context, w io.Writer) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	g.logger.Info("generating EPUB",
		zap.String("title", g.book.Title),
		zap.String("version", g.version.String()))

	b := &build{
		table: resources.NewTable(),
		pkg:   epub.New(g.logger),
	}

	steps := []struct {
		name string
		run  func(ctx context.Context, b *build) error
	}{
		{"populating metadata", g.populateMetadata},
		{"finding assets", g.findAssets},
		{"rendering chapters", g.renderChapters},
		{"adding cover image", g.addCoverImage},
		{"embedding stylesheets", g.embedStylesheets},
		{"embedding assets", g.embedAssets},
		{"embedding additional resources", g.embedAdditionalResources},
	}
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := step.run(ctx, b); err != nil {
			return fmt.Errorf("%s: %w", step.name, err)
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := b.pkg.Generate(w); err != nil {
		return fmt.Errorf("writing package: %w", err)
	}

	g.logger.Info("generated EPUB",
		zap.Int("pages", len(b.pkg.Pages())),
		zap.Int("assets", b.table.Len()))
	return nil
}

func (g *Generator) populateMetadata(_ context.Context, b *build) error {
	if g.book.Title == "" {
		g.logger.Warn("no title set, yet all EPUB documents should have one")
	}
	lang := g.book.Language
	if lang == "" {
		lang = defaultLanguage
	}
	b.pkg.SetVersion(g.version)
	b.pkg.SetMetadata(epub.Metadata{
		Title:       g.book.Title,
		Description: g.book.Description,
		Author:      strings.Join(g.book.Authors, ", "),
		Lang:        lang,
		Generator:   generatorName,
		Modified:    g.now(),
	})
	return nil
}

// findAssets resolves every image referenced by the book before anything
// is rendered, so rewriting never sees a partial table.
func (g *Generator) findAssets(_ context.Context, b *build) error {
	return g.book.Walk(func(ch *Chapter) error {
		if ch.IsDraft() || ch.Content == "" {
			return nil
		}
		links, err := markdown.FindImageLinks(ch.Content)
		if err != nil {
			return fmt.Errorf("chapter %q: %w", ch.Path, err)
		}
		for _, link := range links {
			asset, err := g.resolver.Resolve(link, ch.Path)
			if err != nil {
				return fmt.Errorf("chapter %q: %w", ch.Path, err)
			}
			g.logger.Debug("resolved asset",
				zap.String("link", link),
				zap.String("chapter", ch.Path),
				zap.Stringer("kind", asset.Kind),
				zap.String("filename", asset.Filename))
			b.table.Add(asset)
		}
		return nil
	})
}

func (g *Generator) addCoverImage(_ context.Context, b *build) error {
	if g.cfg.CoverImage == "" {
		return nil
	}
	full, err := g.resolveResourcePath(g.cfg.CoverImage)
	if err != nil {
		return err
	}
	data, err := g.retriever.Read(full)
	if err != nil {
		return err
	}
	name := packageName(g.cfg.CoverImage)
	g.logger.Debug("adding cover image", zap.String("path", full), zap.String("name", name))
	return b.pkg.AddCoverImage(name, data, resources.MediaTypeByFilename(name))
}

// embedStylesheets concatenates the default stylesheet and the additional
// ones, in configuration order.
func (g *Generator) embedStylesheets(_ context.Context, b *build) error {
	var css strings.Builder
	if g.cfg.UseDefaultCSS {
		style, err := g.loader.LoadStyle(DefaultStyle)
		if err != nil {
			return fmt.Errorf("loading default style: %w", err)
		}
		css.WriteString(style)
	}
	for _, p := range g.cfg.AdditionalCSS {
		full, err := g.resolveResourcePath(p)
		if err != nil {
			return err
		}
		data, err := g.retriever.Read(full)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrStylesheetRead, p, err)
		}
		g.logger.Debug("adding stylesheet", zap.String("path", full))
		if css.Len() > 0 && !strings.HasSuffix(css.String(), "\n") {
			css.WriteByte('\n')
		}
		css.Write(data)
	}
	b.pkg.SetStylesheet([]byte(css.String()))
	return nil
}

// embedAssets adds one copy of each distinct asset, downloading remote
// ones one at a time.
func (g *Generator) embedAssets(ctx context.Context, b *build) error {
	for _, asset := range b.table.Unique() {
		if b.pkg.Has(asset.Filename) {
			g.logger.Debug("asset already in package", zap.String("filename", asset.Filename))
			continue
		}
		if err := g.retriever.Download(ctx, asset); err != nil {
			return fmt.Errorf("downloading %s: %w", asset.Link, err)
		}
		data, err := g.retriever.Read(asset.LocationOnDisk)
		if err != nil {
			return err
		}
		g.logger.Debug("embedding asset",
			zap.String("filename", asset.Filename),
			zap.String("media_type", asset.MediaType))
		if err := b.pkg.AddResource(asset.Filename, data, asset.MediaType); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) embedAdditionalResources(_ context.Context, b *build) error {
	for _, p := range g.cfg.AdditionalResources {
		full, err := g.resolveResourcePath(p)
		if err != nil {
			return err
		}
		name := packageName(p)
		if b.pkg.Has(name) {
			g.logger.Debug("resource already in package", zap.String("name", name))
			continue
		}
		data, err := g.retriever.Read(full)
		if err != nil {
			return err
		}
		g.logger.Debug("embedding resource", zap.String("path", full), zap.String("name", name))
		if err := b.pkg.AddResource(name, data, resources.MediaTypeByFilename(name)); err != nil {
			return err
		}
	}
	return nil
}

// packageName returns the entry name of a configured resource: the path as
// written, or its base name when it is absolute or climbs out of the root.
func packageName(p string) string {
	slashed := filepath.ToSlash(filepath.Clean(p))
	if filepath.IsAbs(p) || slashed == ".." || strings.HasPrefix(slashed, "../") {
		return filepath.Base(p)
	}
	return slashed
}
