package md2epub

import (
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gosimple/slug"

	"github.com/alnah/go-md2epub/internal/resources"
)

// Asset is an image resolved from chapter content.
type Asset = resources.Asset

// Retriever fetches the bytes behind a remote address.
type Retriever = resources.Retriever

// ContentRetriever downloads remote assets and reads files for embedding.
// Implement it to replace network or disk access, e.g. in tests.
type ContentRetriever = resources.ContentRetriever

// SectionNumber is the position of a numbered chapter, e.g. [1 2] for 1.2.
type SectionNumber []int

// String renders the number the way mdBook does: "1.2.".
func (n SectionNumber) String() string {
	var b strings.Builder
	for _, part := range n {
		b.WriteString(strconv.Itoa(part))
		b.WriteByte('.')
	}
	return b.String()
}

// Chapter is a node of the book's chapter tree.
type Chapter struct {
	Name     string
	Content  string
	Number   SectionNumber // nil for unnumbered chapters
	Path     string        // source path relative to the source directory, "" for drafts
	SubItems []*Chapter
}

// IsDraft reports whether the chapter has no source file.
func (c *Chapter) IsDraft() bool {
	return c.Path == ""
}

// Level returns the chapter's nesting level in the table of contents.
func (c *Chapter) Level() int {
	if len(c.Number) == 0 {
		return 0
	}
	return len(c.Number) - 1
}

// DestinationPath returns the page path inside the package. Drafts are
// named after a slug of their title.
func (c *Chapter) DestinationPath() string {
	if c.IsDraft() {
		name := slug.Make(c.Name)
		if name == "" {
			name = "untitled"
		}
		return name + ".html"
	}
	p := strings.ReplaceAll(c.Path, "\\", "/")
	return strings.TrimSuffix(p, path.Ext(p)) + ".html"
}

// Book is the input of a generation run.
type Book struct {
	Root        string // book root, holding book.toml
	Src         string // source directory, relative to Root or absolute
	Title       string
	Description string
	Language    string
	Authors     []string
	Chapters    []*Chapter
}

// SourceDir returns the directory chapter paths are relative to.
func (b *Book) SourceDir() string {
	if filepath.IsAbs(b.Src) {
		return b.Src
	}
	return filepath.Join(b.Root, b.Src)
}

// Walk visits every chapter depth-first, parents before children.
// It stops at the first error returned by fn.
func (b *Book) Walk(fn func(*Chapter) error) error {
	return walkChapters(b.Chapters, fn)
}

func walkChapters(chapters []*Chapter, fn func(*Chapter) error) error {
	for _, ch := range chapters {
		if ch == nil {
			continue
		}
		if err := fn(ch); err != nil {
			return err
		}
		if err := walkChapters(ch.SubItems, fn); err != nil {
			return err
		}
	}
	return nil
}
