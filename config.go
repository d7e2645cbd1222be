package md2epub

import (
	"slices"

	"github.com/alnah/go-md2epub/internal/epub"
)

// Config tunes how a book is packaged. It mirrors the [output.epub] table
// of book.toml.
type Config struct {
	UseDefaultCSS       bool     // prepend the built-in stylesheet
	AdditionalCSS       []string // stylesheets appended in order
	IndexTemplate       string   // chapter template, relative to the book root
	CoverImage          string
	AdditionalResources []string // extra files such as fonts
	NoSectionLabel      bool     // drop "1.2." prefixes from page titles
	CurlyQuotes         bool
	EPUBVersion         int // 0 or 2 for EPUB 2, 3 for EPUB 3
}

// DefaultConfig returns a Config using the default stylesheet and EPUB 2.
func DefaultConfig() *Config {
	return &Config{UseDefaultCSS: true}
}

// Validate checks that the configuration can be used to generate a package.
// Returns nil if c is nil (nil means use defaults).
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	_, err := c.version()
	return err
}

func (c *Config) version() (epub.Version, error) {
	return epub.ParseVersion(c.EPUBVersion)
}

func (c *Config) clone() *Config {
	if c == nil {
		return DefaultConfig()
	}
	cp := *c
	cp.AdditionalCSS = slices.Clone(c.AdditionalCSS)
	cp.AdditionalResources = slices.Clone(c.AdditionalResources)
	return &cp
}
