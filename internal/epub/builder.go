package epub

import (
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Sentinel errors for package assembly.
var (
	// ErrDuplicateEntry indicates two entries were added under the same path.
	ErrDuplicateEntry = errors.New("duplicate package entry")
	// ErrInvalidPath indicates an entry path that is empty, absolute or escapes the package.
	ErrInvalidPath = errors.New("invalid package entry path")
	// ErrNoContent indicates a package without any page.
	ErrNoContent = errors.New("package has no content pages")
	// ErrUnsupportedVersion indicates an EPUB version other than 2 or 3.
	ErrUnsupportedVersion = errors.New("unsupported EPUB version")
)

// Version is the EPUB specification version of the package.
type Version int

// Supported versions.
const (
	V2 Version = 2
	V3 Version = 3
)

// String returns "2.0" or "3.0".
func (v Version) String() string {
	if v == V3 {
		return "3.0"
	}
	return "2.0"
}

// ParseVersion maps a configured version number to a Version.
// Zero selects the default, EPUB 2.
func ParseVersion(n int) (Version, error) {
	switch n {
	case 0, 2:
		return V2, nil
	case 3:
		return V3, nil
	default:
		return 0, fmt.Errorf("%w: %d (expected 2 or 3)", ErrUnsupportedVersion, n)
	}
}

// Metadata describes the book in the package document.
type Metadata struct {
	Title       string
	Description string
	Author      string // display form, several names already joined
	Lang        string
	Generator   string
	Identifier  string    // derived from Title and Author when empty
	Modified    time.Time // dcterms:modified for EPUB 3; zero means now
}

// Content is one XHTML page of the book, in reading order.
type Content struct {
	Path  string // slash-separated, relative to the package content directory
	Title string // table of contents label
	Level int    // table of contents nesting, 0 is top level
	Data  []byte
}

type resource struct {
	path      string
	data      []byte
	mediaType string
	cover     bool
}

// reserved entries are written by Generate itself.
var reserved = []string{
	"content.opf",
	"toc.ncx",
	"nav.xhtml",
	"stylesheet.css",
}

// Builder accumulates package entries. It is not safe for concurrent use.
type Builder struct {
	version    Version
	meta       Metadata
	pages      []Content
	resources  []resource
	stylesheet []byte
	paths      map[string]struct{}
	logger     *zap.Logger
}

// New returns an empty EPUB 2 Builder. A nil logger is replaced by a no-op logger.
func New(logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	b := &Builder{
		version: V2,
		paths:   make(map[string]struct{}),
		logger:  logger,
	}
	for _, p := range reserved {
		b.paths[p] = struct{}{}
	}
	return b
}

// SetVersion selects the EPUB version of the package.
func (b *Builder) SetVersion(v Version) {
	b.version = v
}

// SetMetadata replaces the book metadata.
func (b *Builder) SetMetadata(m Metadata) {
	b.meta = m
}

// SetStylesheet sets the content of stylesheet.css.
func (b *Builder) SetStylesheet(css []byte) {
	b.stylesheet = css
}

// AddContent appends a page to the reading order.
func (b *Builder) AddContent(c Content) error {
	p, err := b.claim(c.Path)
	if err != nil {
		return err
	}
	c.Path = p
	if c.Level < 0 {
		c.Level = 0
	}
	b.pages = append(b.pages, c)
	b.logger.Debug("added page", zap.String("path", p), zap.Int("level", c.Level))
	return nil
}

// AddCoverImage adds the cover image. It is flagged as such in the package document.
func (b *Builder) AddCoverImage(p string, data []byte, mediaType string) error {
	for _, r := range b.resources {
		if r.cover {
			return fmt.Errorf("%w: cover image already set to %q", ErrDuplicateEntry, r.path)
		}
	}
	return b.addResource(p, data, mediaType, true)
}

// AddResource adds an auxiliary file such as an image, font or script.
func (b *Builder) AddResource(p string, data []byte, mediaType string) error {
	return b.addResource(p, data, mediaType, false)
}

func (b *Builder) addResource(p string, data []byte, mediaType string, cover bool) error {
	clean, err := b.claim(p)
	if err != nil {
		return err
	}
	b.resources = append(b.resources, resource{path: clean, data: data, mediaType: mediaType, cover: cover})
	b.logger.Debug("added resource",
		zap.String("path", clean),
		zap.String("media_type", mediaType),
		zap.Bool("cover", cover))
	return nil
}

// Has reports whether an entry already occupies p.
func (b *Builder) Has(p string) bool {
	clean, err := cleanPath(p)
	if err != nil {
		return false
	}
	_, ok := b.paths[clean]
	return ok
}

// Pages returns the pages added so far, in reading order.
func (b *Builder) Pages() []Content {
	return b.pages
}

func (b *Builder) claim(p string) (string, error) {
	clean, err := cleanPath(p)
	if err != nil {
		return "", err
	}
	if _, ok := b.paths[clean]; ok {
		return "", fmt.Errorf("%w: %s", ErrDuplicateEntry, clean)
	}
	b.paths[clean] = struct{}{}
	return clean, nil
}

func cleanPath(p string) (string, error) {
	p = strings.ReplaceAll(p, "\\", "/")
	if p == "" || strings.HasPrefix(p, "/") {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, p)
	}
	clean := path.Clean(p)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, p)
	}
	return clean, nil
}

// identifier returns the configured identifier, or a stable UUID URN
// derived from the title and author.
func (m Metadata) identifier() string {
	if m.Identifier != "" {
		return m.Identifier
	}
	id := uuid.NewSHA1(uuid.NameSpaceURL, []byte(m.Title+"\x00"+m.Author))
	return "urn:uuid:" + id.String()
}

// Generate writes the package to w.
func (b *Builder) Generate(w io.Writer) error {
	if len(b.pages) == 0 {
		return ErrNoContent
	}
	return b.write(w)
}
