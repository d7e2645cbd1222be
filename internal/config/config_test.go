package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/alnah/go-md2epub/internal/epub"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return p
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Book.Src != "src" {
		t.Errorf("Book.Src = %q, want src", cfg.Book.Src)
	}
	if cfg.Build.BuildDir != "book" {
		t.Errorf("Build.BuildDir = %q, want book", cfg.Build.BuildDir)
	}
	if !cfg.Output.EPUB.UseDefaultCSS {
		t.Error("UseDefaultCSS = false, want true")
	}
	if cfg.Output.EPUB.EPUBVersion != 0 {
		t.Errorf("EPUBVersion = %d, want 0", cfg.Output.EPUB.EPUBVersion)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
}

func TestValidateFieldLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "empty value is valid", value: ""},
		{name: "value at limit is valid", value: "1234567890"},
		{name: "value over limit returns error", value: "12345678901", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validateFieldLength("test.field", tt.value, 10)
			if tt.wantErr {
				if !errors.Is(err, ErrFieldTooLong) {
					t.Errorf("error = %v, want ErrFieldTooLong", err)
				}
				if err != nil && !strings.Contains(err.Error(), "test.field") {
					t.Errorf("error %q does not name the field", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{name: "version 2", mutate: func(c *Config) { c.Output.EPUB.EPUBVersion = 2 }},
		{name: "version 3", mutate: func(c *Config) { c.Output.EPUB.EPUBVersion = 3 }},
		{
			name:    "version 42",
			mutate:  func(c *Config) { c.Output.EPUB.EPUBVersion = 42 },
			wantErr: epub.ErrUnsupportedVersion,
		},
		{
			name:    "long title",
			mutate:  func(c *Config) { c.Book.Title = strings.Repeat("x", MaxTitleLength+1) },
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "long author",
			mutate:  func(c *Config) { c.Book.Authors = []string{"ok", strings.Repeat("x", MaxAuthorLength+1)} },
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "long language",
			mutate:  func(c *Config) { c.Book.Language = strings.Repeat("x", MaxLanguageLength+1) },
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "long css path",
			mutate:  func(c *Config) { c.Output.EPUB.AdditionalCSS = []string{strings.Repeat("x", MaxPathLength+1)} },
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "long cover path",
			mutate:  func(c *Config) { c.Output.EPUB.CoverImage = strings.Repeat("x", MaxPathLength+1) },
			wantErr: ErrFieldTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFile_TOML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	p := writeConfig(t, dir, "book.toml", `
[book]
title = "My Book"
authors = ["Ann", "Bob"]
description = "About things"
language = "fr"
src = "chapters"

[build]
build-dir = "out"

[output.html]
theme = "ayu"

[output.epub]
use-default-css = false
additional-css = ["extra.css"]
additional-resources = ["fonts/a.ttf"]
cover-image = "cover.png"
index-template = "tpl/index.html"
no-section-label = true
curly-quotes = true
epub-version = 3
`)

	cfg, err := LoadFile(p)
	if err != nil {
		t.Fatalf("LoadFile() unexpected error: %v", err)
	}

	if cfg.Book.Title != "My Book" || cfg.Book.Description != "About things" || cfg.Book.Language != "fr" {
		t.Errorf("Book = %+v", cfg.Book)
	}
	if !reflect.DeepEqual(cfg.Book.Authors, []string{"Ann", "Bob"}) {
		t.Errorf("Authors = %v", cfg.Book.Authors)
	}
	if cfg.Book.Src != "chapters" || cfg.Build.BuildDir != "out" {
		t.Errorf("Src = %q, BuildDir = %q", cfg.Book.Src, cfg.Build.BuildDir)
	}
	want := EPUBConfig{
		UseDefaultCSS:       false,
		AdditionalCSS:       []string{"extra.css"},
		AdditionalResources: []string{"fonts/a.ttf"},
		IndexTemplate:       "tpl/index.html",
		CoverImage:          "cover.png",
		NoSectionLabel:      true,
		CurlyQuotes:         true,
		EPUBVersion:         3,
	}
	if !reflect.DeepEqual(cfg.Output.EPUB, want) {
		t.Errorf("Output.EPUB = %+v, want %+v", cfg.Output.EPUB, want)
	}
}

func TestLoadFile_DefaultsKept(t *testing.T) {
	t.Parallel()

	p := writeConfig(t, t.TempDir(), "book.toml", "[book]\ntitle = \"T\"\n")
	cfg, err := LoadFile(p)
	if err != nil {
		t.Fatalf("LoadFile() unexpected error: %v", err)
	}
	if !cfg.Output.EPUB.UseDefaultCSS {
		t.Error("UseDefaultCSS lost its default")
	}
	if cfg.Book.Src != "src" || cfg.Build.BuildDir != "book" {
		t.Errorf("defaults lost: src=%q build-dir=%q", cfg.Book.Src, cfg.Build.BuildDir)
	}
}

func TestLoadFile_Empty(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"book.toml", "book.yaml"} {
		p := writeConfig(t, t.TempDir(), name, "\n")
		cfg, err := LoadFile(p)
		if err != nil {
			t.Fatalf("LoadFile(empty %s) unexpected error: %v", name, err)
		}
		if !reflect.DeepEqual(cfg, DefaultConfig()) {
			t.Errorf("LoadFile(empty %s) = %+v, want defaults", name, cfg)
		}
	}
}

func TestLoadFile_YAML(t *testing.T) {
	t.Parallel()

	p := writeConfig(t, t.TempDir(), "book.yaml", `
book:
  title: Yaml Book
  authors: [Ann]
output:
  epub:
    epub-version: 3
    curly-quotes: true
`)
	cfg, err := LoadFile(p)
	if err != nil {
		t.Fatalf("LoadFile() unexpected error: %v", err)
	}
	if cfg.Book.Title != "Yaml Book" || cfg.Output.EPUB.EPUBVersion != 3 || !cfg.Output.EPUB.CurlyQuotes {
		t.Errorf("LoadFile() = %+v", cfg)
	}
}

func TestLoadFile_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		content string
		wantErr error
	}{
		{
			name:    "unknown epub key in toml",
			file:    "a.toml",
			content: "[output.epub]\ncurly-quote = true\n",
			wantErr: ErrConfigParse,
		},
		{
			name:    "unknown key in yaml",
			file:    "b.yaml",
			content: "book:\n  titel: x\n",
			wantErr: ErrConfigParse,
		},
		{
			name:    "invalid toml",
			file:    "c.toml",
			content: "[book\ntitle=",
			wantErr: ErrConfigParse,
		},
		{
			name:    "unsupported version",
			file:    "d.toml",
			content: "[output.epub]\nepub-version = 42\n",
			wantErr: epub.ErrUnsupportedVersion,
		},
		{
			name:    "unknown extension",
			file:    "e.json",
			content: "{}",
			wantErr: ErrUnknownFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := writeConfig(t, dir, tt.file, tt.content)
			_, err := LoadFile(p)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("LoadFile() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := LoadFile(filepath.Join(dir, "missing.toml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("LoadFile() error = %v, want %v", err, ErrConfigNotFound)
		}
	})
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("no config file uses defaults", func(t *testing.T) {
		t.Parallel()

		cfg, used, err := Load(t.TempDir())
		if err != nil {
			t.Fatalf("Load() unexpected error: %v", err)
		}
		if used != "" {
			t.Errorf("Load() used %q, want none", used)
		}
		if !reflect.DeepEqual(cfg, DefaultConfig()) {
			t.Errorf("Load() = %+v, want defaults", cfg)
		}
	})

	t.Run("toml wins over yaml", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeConfig(t, dir, "book.yaml", "book:\n  title: from yaml\n")
		tomlPath := writeConfig(t, dir, "book.toml", "[book]\ntitle = \"from toml\"\n")

		cfg, used, err := Load(dir)
		if err != nil {
			t.Fatalf("Load() unexpected error: %v", err)
		}
		if used != tomlPath || cfg.Book.Title != "from toml" {
			t.Errorf("Load() = %q from %q", cfg.Book.Title, used)
		}
	})

	t.Run("yml fallback", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeConfig(t, dir, "book.yml", "book:\n  title: from yml\n")

		cfg, _, err := Load(dir)
		if err != nil {
			t.Fatalf("Load() unexpected error: %v", err)
		}
		if cfg.Book.Title != "from yml" {
			t.Errorf("Title = %q, want from yml", cfg.Book.Title)
		}
	})

	t.Run("invalid file is reported", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeConfig(t, dir, "book.toml", "[output.epub]\nepub-version = 9\n")
		if _, _, err := Load(dir); !errors.Is(err, epub.ErrUnsupportedVersion) {
			t.Errorf("Load() error = %v, want %v", err, epub.ErrUnsupportedVersion)
		}
	})
}
