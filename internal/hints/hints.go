// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-md2epub/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForRemoteFetch returns hints for remote image download errors.
// Detects CI/Docker environment and suggests proxy settings when none are set.
func ForRemoteFetch() string {
	var hints []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""

	if (inCI || IsInContainer()) && os.Getenv("HTTPS_PROXY") == "" && os.Getenv("https_proxy") == "" {
		hints = append(hints, "set HTTPS_PROXY if the network is restricted")
	}

	hints = append(hints, "download the image into the book and reference it locally")

	return formatHints(hints)
}

// ForTimeout returns a hint about increasing timeout for slow downloads.
func ForTimeout() string {
	return format("for slow image hosts, use --timeout flag")
}

// ForAssetNotFound returns hints for local image resolution errors.
func ForAssetNotFound(srcDir string) string {
	if srcDir == "" {
		return format("image paths are relative to the chapter file")
	}
	return format("image paths are relative to the chapter file under " + srcDir)
}

// ForResourceNotFound returns hints for cover, stylesheet and extra resource errors.
func ForResourceNotFound() string {
	return format("paths are tried as given, then under the source directory, then under the book root")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating book.toml in the book root.
func ForConfigNotFound(root string) string {
	hint := "use --config /path/to/book.toml"
	if root != "" {
		hint += " or create " + strings.TrimSuffix(root, "/") + "/book.toml"
	}
	return format(hint)
}

// ForUnsupportedVersion returns hints for invalid EPUB version values.
func ForUnsupportedVersion() string {
	return format("epub-version must be 2 or 3")
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
