package main

import (
	"context"
	"errors"
	"net"
	"os"

	"github.com/alnah/go-md2epub"
	"github.com/alnah/go-md2epub/internal/book"
	"github.com/alnah/go-md2epub/internal/config"
	"github.com/alnah/go-md2epub/internal/hints"
)

// Exit codes for md2epub CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Package written
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or templates
	ExitIO      = 3 // Missing files, unresolvable images or resources
	ExitNetwork = 4 // Remote image download failed
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Network errors (exit 4)
	var netErr net.Error
	if errors.Is(err, md2epub.ErrRemoteNotFound) ||
		errors.Is(err, md2epub.ErrUnexpectedStatus) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.As(err, &netErr) {
		return ExitNetwork
	}

	// Usage/config/template errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrUnknownFormat) ||
		errors.Is(err, md2epub.ErrUnsupportedVersion) ||
		errors.Is(err, md2epub.ErrTemplateParse) ||
		errors.Is(err, md2epub.ErrStyleNotFound) ||
		errors.Is(err, md2epub.ErrTemplateNotFound) ||
		errors.Is(err, md2epub.ErrInvalidAssetPath) ||
		errors.Is(err, book.ErrInvalidSummary) ||
		errors.Is(err, book.ErrRenderContext) ||
		errors.Is(err, ErrInvalidTimeout) {
		return ExitUsage
	}

	// I/O and resolution errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, md2epub.ErrAssetNotFound) ||
		errors.Is(err, md2epub.ErrAssetNotFile) ||
		errors.Is(err, md2epub.ErrAssetOutsideSource) ||
		errors.Is(err, md2epub.ErrSourceDir) ||
		errors.Is(err, md2epub.ErrAssetRead) ||
		errors.Is(err, md2epub.ErrResourceNotFound) ||
		errors.Is(err, md2epub.ErrStylesheetRead) ||
		errors.Is(err, book.ErrSummaryNotFound) ||
		errors.Is(err, book.ErrChapterRead) ||
		errors.Is(err, ErrWriteEPUB) {
		return ExitIO
	}

	return ExitGeneral
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error) string {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr) && netErr.Timeout():
		return hints.ForTimeout()
	case errors.Is(err, md2epub.ErrRemoteNotFound),
		errors.Is(err, md2epub.ErrUnexpectedStatus),
		errors.As(err, &netErr):
		return hints.ForRemoteFetch()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound("")
	case errors.Is(err, md2epub.ErrUnsupportedVersion):
		return hints.ForUnsupportedVersion()
	case errors.Is(err, md2epub.ErrAssetNotFound),
		errors.Is(err, md2epub.ErrAssetOutsideSource):
		return hints.ForAssetNotFound("")
	case errors.Is(err, md2epub.ErrResourceNotFound),
		errors.Is(err, md2epub.ErrStylesheetRead):
		return hints.ForResourceNotFound()
	case errors.Is(err, ErrWriteEPUB):
		return hints.ForOutputDirectory()
	}
	return ""
}
