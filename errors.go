package md2epub

import (
	"errors"

	"github.com/alnah/go-md2epub/internal/epub"
	"github.com/alnah/go-md2epub/internal/markdown"
	"github.com/alnah/go-md2epub/internal/resources"
)

// Sentinel errors for library operations.
var (
	ErrNilBook          = errors.New("book cannot be nil")
	ErrDraftChapter     = errors.New("draft chapter has no content to render")
	ErrTemplateParse    = errors.New("template parsing failed")
	ErrTemplateRender   = errors.New("template rendering failed")
	ErrResourceNotFound = errors.New("resource not found")
	ErrStylesheetRead   = errors.New("failed to read stylesheet")

	// Asset resolution errors.
	ErrAssetNotFound      = resources.ErrAssetNotFound
	ErrAssetNotFile       = resources.ErrAssetNotFile
	ErrAssetOutsideSource = resources.ErrAssetOutsideSource
	ErrSourceDir          = resources.ErrSourceDir
	ErrAssetRead          = resources.ErrAssetRead

	// Network errors.
	ErrRemoteNotFound   = resources.ErrRemoteNotFound
	ErrUnexpectedStatus = resources.ErrUnexpectedStatus

	// ErrAssetNotIndexed signals a chapter referencing an image that was
	// not resolved before rendering. It indicates a bug.
	ErrAssetNotIndexed = markdown.ErrAssetNotIndexed

	// Configuration errors.
	ErrUnsupportedVersion = epub.ErrUnsupportedVersion

	// Package errors.
	ErrDuplicateEntry = epub.ErrDuplicateEntry
	ErrNoContent      = epub.ErrNoContent

	// Asset loading errors.
	ErrStyleNotFound    = errors.New("style not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrInvalidAssetPath = errors.New("invalid asset path")
)
