// Package config loads book configuration files.
//
// A book is configured by book.toml (the mdBook layout, with this tool's
// settings under [output.epub]) or, failing that, by book.yaml / book.yml
// using the same keys. Unset keys keep their defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2epub/internal/codec"
	"github.com/alnah/go-md2epub/internal/epub"
	"github.com/alnah/go-md2epub/internal/fileutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("failed to parse config")
	ErrFieldTooLong   = errors.New("field exceeds maximum length")
	ErrUnknownFormat  = errors.New("unknown config file format")
)

// Field length limits.
const (
	MaxTitleLength       = 500
	MaxDescriptionLength = 5000
	MaxAuthorLength      = 200
	MaxLanguageLength    = 35 // BCP 47 tag
	MaxPathLength        = 4096
)

// Candidate file names, in lookup order.
var configFiles = []string{"book.toml", "book.yaml", "book.yml"}

// Config mirrors the sections of book.toml this tool reads. The json tags
// match the config object of an mdBook render context.
type Config struct {
	Book   BookConfig   `yaml:"book" toml:"book" json:"book"`
	Build  BuildConfig  `yaml:"build" toml:"build" json:"build"`
	Output OutputConfig `yaml:"output" toml:"output" json:"output"`
}

// BookConfig holds book metadata.
type BookConfig struct {
	Title       string   `yaml:"title" toml:"title" json:"title"`
	Description string   `yaml:"description" toml:"description" json:"description"`
	Authors     []string `yaml:"authors" toml:"authors" json:"authors"`
	Language    string   `yaml:"language" toml:"language" json:"language"`
	Src         string   `yaml:"src" toml:"src" json:"src"` // Chapter sources, relative to the root (default: "src")
}

// BuildConfig holds output location settings.
type BuildConfig struct {
	BuildDir string `yaml:"build-dir" toml:"build-dir" json:"build-dir"` // Relative to the root (default: "book")
}

// OutputConfig groups backend sections.
type OutputConfig struct {
	EPUB EPUBConfig `yaml:"epub" toml:"epub" json:"epub"`
}

// EPUBConfig holds the settings of the EPUB backend.
type EPUBConfig struct {
	UseDefaultCSS       bool     `yaml:"use-default-css" toml:"use-default-css" json:"use-default-css"`
	AdditionalCSS       []string `yaml:"additional-css" toml:"additional-css" json:"additional-css"`
	AdditionalResources []string `yaml:"additional-resources" toml:"additional-resources" json:"additional-resources"`
	IndexTemplate       string   `yaml:"index-template" toml:"index-template" json:"index-template"`
	CoverImage          string   `yaml:"cover-image" toml:"cover-image" json:"cover-image"`
	NoSectionLabel      bool     `yaml:"no-section-label" toml:"no-section-label" json:"no-section-label"`
	CurlyQuotes         bool     `yaml:"curly-quotes" toml:"curly-quotes" json:"curly-quotes"`
	EPUBVersion         int      `yaml:"epub-version" toml:"epub-version" json:"epub-version"` // 2 or 3 (default: 2)
	AssetPath           string   `yaml:"asset-path" toml:"asset-path" json:"asset-path"`       // Directory overriding built-in templates and styles
}

// DefaultConfig returns the configuration of a book without config file.
func DefaultConfig() *Config {
	return &Config{
		Book: BookConfig{
			Src: "src",
		},
		Build: BuildConfig{
			BuildDir: "book",
		},
		Output: OutputConfig{
			EPUB: EPUBConfig{
				UseDefaultCSS: true,
			},
		},
	}
}

// Validate checks the EPUB version and field lengths.
func (c *Config) Validate() error {
	if _, err := epub.ParseVersion(c.Output.EPUB.EPUBVersion); err != nil {
		return fmt.Errorf("output.epub.epub-version: %w", err)
	}

	if err := validateFieldLength("book.title", c.Book.Title, MaxTitleLength); err != nil {
		return err
	}
	if err := validateFieldLength("book.description", c.Book.Description, MaxDescriptionLength); err != nil {
		return err
	}
	if err := validateFieldLength("book.language", c.Book.Language, MaxLanguageLength); err != nil {
		return err
	}
	for i, a := range c.Book.Authors {
		if err := validateFieldLength(fmt.Sprintf("book.authors[%d]", i), a, MaxAuthorLength); err != nil {
			return err
		}
	}

	paths := map[string]string{
		"book.src":                   c.Book.Src,
		"build.build-dir":            c.Build.BuildDir,
		"output.epub.index-template": c.Output.EPUB.IndexTemplate,
		"output.epub.cover-image":    c.Output.EPUB.CoverImage,
		"output.epub.asset-path":     c.Output.EPUB.AssetPath,
	}
	for name, p := range paths {
		if err := validateFieldLength(name, p, MaxPathLength); err != nil {
			return err
		}
	}
	for i, p := range c.Output.EPUB.AdditionalCSS {
		if err := validateFieldLength(fmt.Sprintf("output.epub.additional-css[%d]", i), p, MaxPathLength); err != nil {
			return err
		}
	}
	for i, p := range c.Output.EPUB.AdditionalResources {
		if err := validateFieldLength(fmt.Sprintf("output.epub.additional-resources[%d]", i), p, MaxPathLength); err != nil {
			return err
		}
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// Load reads the configuration of the book at root. It returns the path of
// the file used, or "" when root has no config file and defaults apply.
func Load(root string) (*Config, string, error) {
	for _, name := range configFiles {
		p := filepath.Join(root, name)
		if !fileutil.FileExists(p) {
			continue
		}
		cfg, err := LoadFile(p)
		if err != nil {
			return nil, "", err
		}
		return cfg, p, nil
	}

	cfg := DefaultConfig()
	return cfg, "", nil
}

// LoadFile reads the configuration file at path. The format follows the
// extension: .toml, or .yaml / .yml.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".toml" && ext != ".yaml" && ext != ".yml" {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}

	cfg := DefaultConfig()
	if len(bytes.TrimSpace(data)) == 0 {
		// mdBook accepts an empty book.toml.
		return cfg, nil
	}
	if ext == ".toml" {
		undecoded, err := codec.UnmarshalTOML(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, path, err)
		}
		// Other tables belong to other tools; ours must be exact.
		for _, key := range undecoded {
			if strings.HasPrefix(key, "output.epub.") {
				return nil, fmt.Errorf("%w: %s: unknown key %q", ErrConfigParse, path, key)
			}
		}
	} else if err := codec.UnmarshalYAMLStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
