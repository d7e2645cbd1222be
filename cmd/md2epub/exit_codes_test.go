package main

// Notes:
// - exitCodeFor: we test the sentinel errors of every exit class, plus
//   wrapped errors to verify the errors.Is chain.
// - hintFor: we only check that a hint is attached to the classes that
//   have one; hint wording is tested in internal/hints.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/alnah/go-md2epub"
	"github.com/alnah/go-md2epub/internal/book"
	"github.com/alnah/go-md2epub/internal/config"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	dialErr := &url.Error{Op: "Get", URL: "https://example.com/a.png", Err: &net.OpError{Op: "dial", Err: errors.New("refused")}}

	tests := []struct {
		name string
		err  error
		want int
	}{
		// Success
		{"nil error", nil, ExitSuccess},

		// Network errors (exit 4)
		{"remote not found", md2epub.ErrRemoteNotFound, ExitNetwork},
		{"unexpected status", md2epub.ErrUnexpectedStatus, ExitNetwork},
		{"deadline exceeded", context.DeadlineExceeded, ExitNetwork},
		{"transport error", fmt.Errorf("fetching: %w", dialErr), ExitNetwork},
		{"wrapped remote not found", fmt.Errorf("embedding assets: %w", md2epub.ErrRemoteNotFound), ExitNetwork},

		// Usage/config errors (exit 2)
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"field too long", config.ErrFieldTooLong, ExitUsage},
		{"unknown format", config.ErrUnknownFormat, ExitUsage},
		{"unsupported version", md2epub.ErrUnsupportedVersion, ExitUsage},
		{"template parse", md2epub.ErrTemplateParse, ExitUsage},
		{"style not found", md2epub.ErrStyleNotFound, ExitUsage},
		{"template not found", md2epub.ErrTemplateNotFound, ExitUsage},
		{"invalid asset path", md2epub.ErrInvalidAssetPath, ExitUsage},
		{"invalid summary", book.ErrInvalidSummary, ExitUsage},
		{"render context", book.ErrRenderContext, ExitUsage},
		{"invalid timeout", ErrInvalidTimeout, ExitUsage},
		{"wrapped config parse", fmt.Errorf("loading config: %w", config.ErrConfigParse), ExitUsage},

		// I/O errors (exit 3)
		{"file not exist", os.ErrNotExist, ExitIO},
		{"permission denied", os.ErrPermission, ExitIO},
		{"asset not found", md2epub.ErrAssetNotFound, ExitIO},
		{"asset not file", md2epub.ErrAssetNotFile, ExitIO},
		{"asset outside source", md2epub.ErrAssetOutsideSource, ExitIO},
		{"source dir", md2epub.ErrSourceDir, ExitIO},
		{"asset read", md2epub.ErrAssetRead, ExitIO},
		{"resource not found", md2epub.ErrResourceNotFound, ExitIO},
		{"stylesheet read", md2epub.ErrStylesheetRead, ExitIO},
		{"summary not found", book.ErrSummaryNotFound, ExitIO},
		{"chapter read", book.ErrChapterRead, ExitIO},
		{"write epub", ErrWriteEPUB, ExitIO},

		// General errors (exit 1)
		{"unknown error", errors.New("something unexpected"), ExitGeneral},
		{"asset not indexed", md2epub.ErrAssetNotIndexed, ExitGeneral},
		{"canceled", context.Canceled, ExitGeneral},
		{"too many args", ErrTooManyArgs, ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestExitCodeConstants - Unix conventions
// ---------------------------------------------------------------------------

func TestExitCodeConstants(t *testing.T) {
	t.Parallel()

	if ExitSuccess != 0 || ExitGeneral != 1 || ExitUsage != 2 {
		t.Errorf("conventional codes changed: success=%d general=%d usage=%d", ExitSuccess, ExitGeneral, ExitUsage)
	}
	for _, code := range []int{ExitIO, ExitNetwork} {
		if code <= ExitUsage || code >= 126 {
			t.Errorf("custom exit code %d outside (2, 126)", code)
		}
	}
}

// ---------------------------------------------------------------------------
// TestHintFor - Hint selection
// ---------------------------------------------------------------------------

func TestHintFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		contains string
	}{
		{"timeout", fmt.Errorf("fetching: %w", context.DeadlineExceeded), "--timeout"},
		{"remote", md2epub.ErrRemoteNotFound, "reference it locally"},
		{"config", config.ErrConfigNotFound, "--config"},
		{"version", md2epub.ErrUnsupportedVersion, "2 or 3"},
		{"asset", md2epub.ErrAssetNotFound, "relative to the chapter"},
		{"resource", md2epub.ErrResourceNotFound, "book root"},
		{"write", ErrWriteEPUB, "writable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := hintFor(tt.err)
			if !strings.Contains(got, "hint:") || !strings.Contains(got, tt.contains) {
				t.Errorf("hintFor(%v) = %q, want hint containing %q", tt.err, got, tt.contains)
			}
		})
	}

	if got := hintFor(errors.New("other")); got != "" {
		t.Errorf("hintFor(other) = %q, want empty", got)
	}
}
