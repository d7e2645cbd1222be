package book

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/alnah/go-md2epub"
	"github.com/alnah/go-md2epub/internal/config"
)

// Load reads the book at root: SUMMARY.md and every chapter file below the
// source directory named in cfg. A nil cfg means config.DefaultConfig().
func Load(root string, cfg *config.Config) (*md2epub.Book, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	b := &md2epub.Book{
		Root:        root,
		Src:         cfg.Book.Src,
		Title:       cfg.Book.Title,
		Description: cfg.Book.Description,
		Language:    cfg.Book.Language,
		Authors:     cfg.Book.Authors,
	}
	srcDir := b.SourceDir()

	summaryPath := filepath.Join(srcDir, SummaryFile)
	data, err := os.ReadFile(summaryPath) // #nosec G304 -- path built from the book root
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSummaryNotFound, summaryPath)
		}
		return nil, fmt.Errorf("reading %s: %w", summaryPath, err)
	}

	b.Chapters, err = ParseSummary(data)
	if err != nil {
		return nil, err
	}

	err = b.Walk(func(ch *md2epub.Chapter) error {
		if ch.IsDraft() {
			return nil
		}
		p := filepath.Join(srcDir, filepath.FromSlash(ch.Path))
		content, err := os.ReadFile(p) // #nosec G304 -- chapter paths come from SUMMARY.md
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrChapterRead, ch.Path, err)
		}
		ch.Content = string(content)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

// ApplyConfig copies the [output.epub] settings of cfg into a library Config.
func ApplyConfig(cfg *config.Config) *md2epub.Config {
	if cfg == nil {
		return md2epub.DefaultConfig()
	}
	e := cfg.Output.EPUB
	return &md2epub.Config{
		UseDefaultCSS:       e.UseDefaultCSS,
		AdditionalCSS:       e.AdditionalCSS,
		IndexTemplate:       e.IndexTemplate,
		CoverImage:          e.CoverImage,
		AdditionalResources: e.AdditionalResources,
		NoSectionLabel:      e.NoSectionLabel,
		CurlyQuotes:         e.CurlyQuotes,
		EPUBVersion:         e.EPUBVersion,
	}
}
