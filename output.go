package md2epub

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2epub/internal/fileutil"
)

// defaultOutputName is used when the book has no title.
const defaultOutputName = "book"

// OutputFilename returns the package path for a book titled title inside
// dest: "<title>.epub", or "book.epub" when the title is empty.
// Path separators in the title are replaced so the file stays in dest.
func OutputFilename(dest, title string) string {
	name := strings.TrimSpace(title)
	if name == "" {
		name = defaultOutputName
	}
	name = strings.NewReplacer("/", "-", "\\", "-").Replace(name)
	return filepath.Join(dest, name+".epub")
}

// Generate writes book as an EPUB package into the destination directory
// (see WithDestination) and returns the path of the written file.
// The package is written to a temporary file and renamed into place, so a
// failed run leaves no package behind.
func Generate(ctx context.Context, book *Book, cfg *Config, opts ...Option) (string, error) {
	g, err := NewGenerator(book, cfg, opts...)
	if err != nil {
		return "", err
	}
	return g.WriteFile(ctx)
}

// WriteFile generates the package into the destination directory.
func (g *Generator) WriteFile(ctx context.Context) (string, error) {
	if err := os.MkdirAll(g.destination, 0o750); err != nil {
		return "", fmt.Errorf("creating destination directory: %w", err)
	}
	out := OutputFilename(g.destination, g.book.Title)
	err := fileutil.WriteAtomic(out, fileutil.FilePermissions, func(w io.Writer) error {
		return g.Generate(ctx, w)
	})
	if err != nil {
		return "", err
	}
	return out, nil
}

// Destination returns the output directory of the generator.
func (g *Generator) Destination() string {
	return g.destination
}
