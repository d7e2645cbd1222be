package resources_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-md2epub/internal/resources"
)

// writeFile creates path (and its parents) below root.
func writeFile(t *testing.T, root, path string) string {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(full), 0o750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(full, []byte("data:"+path), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	return full
}

// canonical returns the symlink-free absolute form of p.
func canonical(t *testing.T, p string) string {
	t.Helper()
	c, err := filepath.EvalSymlinks(p)
	if err != nil {
		t.Fatalf("EvalSymlinks(%q): %v", p, err)
	}
	return c
}

// ---------------------------------------------------------------------------
// TestParseRemote - Network address classification
// ---------------------------------------------------------------------------

func TestParseRemote(t *testing.T) {
	t.Parallel()

	tests := []struct {
		link string
		want bool
	}{
		{link: "https://example.org/pic.svg", want: true},
		{link: "http://example.org/a/b.png?x=1", want: true},
		{link: "HTTPS://EXAMPLE.ORG/x.png", want: true},
		{link: "./img.png", want: false},
		{link: "img.png", want: false},
		{link: "../shared/img.png", want: false},
		{link: "/abs/img.png", want: false},
		{link: "ftp://example.org/a.png", want: false},
		{link: "https:///nohost.png", want: false},
		{link: "data:image/png;base64,AAAA", want: false},
		{link: "%zz", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.link, func(t *testing.T) {
			t.Parallel()

			_, got := resources.ParseRemote(tt.link)
			if got != tt.want {
				t.Errorf("ParseRemote(%q) = %v, want %v", tt.link, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestHashLink - Deterministic cache identifiers
// ---------------------------------------------------------------------------

func TestHashLink(t *testing.T) {
	t.Parallel()

	t.Run("same address same identifier", func(t *testing.T) {
		t.Parallel()

		u1, _ := resources.ParseRemote("https://example.org/pic.svg")
		u2, _ := resources.ParseRemote("https://example.org/pic.svg")
		if a, b := resources.HashLink(u1), resources.HashLink(u2); a != b {
			t.Errorf("HashLink not deterministic: %q != %q", a, b)
		}
	})

	t.Run("keeps extension", func(t *testing.T) {
		t.Parallel()

		u, _ := resources.ParseRemote("https://example.org/pic.svg?size=2")
		got := resources.HashLink(u)
		if !strings.HasSuffix(got, ".svg") {
			t.Errorf("HashLink() = %q, want .svg suffix", got)
		}
	})

	t.Run("no extension", func(t *testing.T) {
		t.Parallel()

		u, _ := resources.ParseRemote("https://example.org/avatar")
		got := resources.HashLink(u)
		if strings.Contains(got, ".") {
			t.Errorf("HashLink() = %q, want no extension", got)
		}
		for _, r := range got {
			if !strings.ContainsRune("0123456789abcdef", r) {
				t.Fatalf("HashLink() = %q, want lowercase hex", got)
			}
		}
	})

	t.Run("different addresses differ", func(t *testing.T) {
		t.Parallel()

		u1, _ := resources.ParseRemote("https://example.org/a.png")
		u2, _ := resources.ParseRemote("https://example.org/b.png")
		if resources.HashLink(u1) == resources.HashLink(u2) {
			t.Error("HashLink() collided for distinct addresses")
		}
	})
}

// ---------------------------------------------------------------------------
// TestNewResolver - Source directory validation
// ---------------------------------------------------------------------------

func TestNewResolver(t *testing.T) {
	t.Parallel()

	t.Run("missing source dir", func(t *testing.T) {
		t.Parallel()

		_, err := resources.NewResolver(filepath.Join(t.TempDir(), "nope"), "")
		if !errors.Is(err, resources.ErrSourceDir) {
			t.Errorf("NewResolver() error = %v, want %v", err, resources.ErrSourceDir)
		}
	})

	t.Run("empty source dir", func(t *testing.T) {
		t.Parallel()

		_, err := resources.NewResolver("", "")
		if !errors.Is(err, resources.ErrSourceDir) {
			t.Errorf("NewResolver() error = %v, want %v", err, resources.ErrSourceDir)
		}
	})

	t.Run("source dir is a file", func(t *testing.T) {
		t.Parallel()

		file := writeFile(t, t.TempDir(), "book.md")
		_, err := resources.NewResolver(file, "")
		if !errors.Is(err, resources.ErrSourceDir) {
			t.Errorf("NewResolver() error = %v, want %v", err, resources.ErrSourceDir)
		}
	})

	t.Run("cache root defaults to source dir", func(t *testing.T) {
		t.Parallel()

		src := t.TempDir()
		r, err := resources.NewResolver(src, "")
		if err != nil {
			t.Fatalf("NewResolver() unexpected error: %v", err)
		}
		a, err := r.Resolve("https://example.org/pic.png", "ch.md")
		if err != nil {
			t.Fatalf("Resolve() unexpected error: %v", err)
		}
		if dir := filepath.Dir(filepath.Dir(a.LocationOnDisk)); dir != canonical(t, src) {
			t.Errorf("cache root = %q, want %q", dir, canonical(t, src))
		}
	})
}

// ---------------------------------------------------------------------------
// TestResolve_Local - Local reference resolution
// ---------------------------------------------------------------------------

func TestResolve_Local(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	writeFile(t, src, "ch/img.png")
	writeFile(t, src, "shared/logo.svg")
	writeFile(t, src, "root.jpg")
	writeFile(t, src, "ch/data.bin.unknownext")
	if err := os.MkdirAll(filepath.Join(src, "ch", "dir.png"), 0o750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	r, err := resources.NewResolver(src, "")
	if err != nil {
		t.Fatalf("NewResolver() unexpected error: %v", err)
	}
	canonSrc := canonical(t, src)

	tests := []struct {
		name         string
		link         string
		chapter      string
		wantFilename string
		wantMedia    string
		wantErr      error
	}{
		{
			name:         "dot relative from nested chapter",
			link:         "./img.png",
			chapter:      "ch/page.md",
			wantFilename: "ch/img.png",
			wantMedia:    "image/png",
		},
		{
			name:         "bare name from nested chapter",
			link:         "img.png",
			chapter:      "ch/page.md",
			wantFilename: "ch/img.png",
			wantMedia:    "image/png",
		},
		{
			name:         "parent directory reference",
			link:         "../shared/logo.svg",
			chapter:      "ch/page.md",
			wantFilename: "shared/logo.svg",
			wantMedia:    "image/svg+xml",
		},
		{
			name:         "root chapter",
			link:         "root.jpg",
			chapter:      "intro.md",
			wantFilename: "root.jpg",
			wantMedia:    "image/jpeg",
		},
		{
			name:         "unknown extension",
			link:         "data.bin.unknownext",
			chapter:      "ch/page.md",
			wantFilename: "ch/data.bin.unknownext",
			wantMedia:    resources.DefaultMediaType,
		},
		{
			name:    "missing file",
			link:    "missing.png",
			chapter: "ch/page.md",
			wantErr: resources.ErrAssetNotFound,
		},
		{
			name:    "directory",
			link:    "dir.png",
			chapter: "ch/page.md",
			wantErr: resources.ErrAssetNotFile,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			a, err := r.Resolve(tt.link, tt.chapter)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Resolve(%q) error = %v, want %v", tt.link, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve(%q) unexpected error: %v", tt.link, err)
			}
			if a.Kind != resources.Local {
				t.Errorf("Kind = %v, want local", a.Kind)
			}
			if a.Filename != tt.wantFilename {
				t.Errorf("Filename = %q, want %q", a.Filename, tt.wantFilename)
			}
			if a.MediaType != tt.wantMedia {
				t.Errorf("MediaType = %q, want %q", a.MediaType, tt.wantMedia)
			}
			wantLoc := filepath.Join(canonSrc, filepath.FromSlash(tt.wantFilename))
			if a.LocationOnDisk != wantLoc {
				t.Errorf("LocationOnDisk = %q, want %q", a.LocationOnDisk, wantLoc)
			}
			if a.Link != tt.link {
				t.Errorf("Link = %q, want %q", a.Link, tt.link)
			}
		})
	}
}

func TestResolve_LocalOutsideSource(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	src := filepath.Join(base, "src")
	writeFile(t, base, "outside.png")
	if err := os.MkdirAll(src, 0o750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	r, err := resources.NewResolver(src, "")
	if err != nil {
		t.Fatalf("NewResolver() unexpected error: %v", err)
	}
	_, err = r.Resolve("../outside.png", "intro.md")
	if !errors.Is(err, resources.ErrAssetOutsideSource) {
		t.Errorf("Resolve() error = %v, want %v", err, resources.ErrAssetOutsideSource)
	}
}

func TestResolve_LocalSymlink(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	target := writeFile(t, src, "real/photo.png")
	if err := os.MkdirAll(filepath.Join(src, "ch"), 0o750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.Symlink(target, filepath.Join(src, "ch", "alias.png")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	r, err := resources.NewResolver(src, "")
	if err != nil {
		t.Fatalf("NewResolver() unexpected error: %v", err)
	}

	link, err := r.Resolve("alias.png", "ch/page.md")
	if err != nil {
		t.Fatalf("Resolve(alias) unexpected error: %v", err)
	}
	if link.Filename != "ch/alias.png" {
		t.Errorf("Filename = %q, want %q", link.Filename, "ch/alias.png")
	}
	if link.LocationOnDisk != canonical(t, target) {
		t.Errorf("LocationOnDisk = %q, want %q", link.LocationOnDisk, canonical(t, target))
	}

	direct, err := r.Resolve("../real/photo.png", "ch/page.md")
	if err != nil {
		t.Fatalf("Resolve(direct) unexpected error: %v", err)
	}
	if direct.Filename != "real/photo.png" {
		t.Errorf("Filename = %q, want %q", direct.Filename, "real/photo.png")
	}
	if direct.Identity() != link.Identity() {
		t.Errorf("Identity mismatch: %+v vs %+v", direct.Identity(), link.Identity())
	}
}

func TestResolve_LocalSymlinkToMissing(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	if err := os.Symlink(filepath.Join(src, "gone.png"), filepath.Join(src, "dangling.png")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	r, err := resources.NewResolver(src, "")
	if err != nil {
		t.Fatalf("NewResolver() unexpected error: %v", err)
	}
	_, err = r.Resolve("dangling.png", "intro.md")
	if !errors.Is(err, resources.ErrAssetNotFound) {
		t.Errorf("Resolve() error = %v, want %v", err, resources.ErrAssetNotFound)
	}
}

// ---------------------------------------------------------------------------
// TestResolve_Remote - Remote reference resolution
// ---------------------------------------------------------------------------

func TestResolve_Remote(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	cache := t.TempDir()
	r, err := resources.NewResolver(src, cache)
	if err != nil {
		t.Fatalf("NewResolver() unexpected error: %v", err)
	}

	const link = "https://example.org/pic.svg"
	a, err := r.Resolve(link, "ch/page.md")
	if err != nil {
		t.Fatalf("Resolve() unexpected error: %v", err)
	}
	u, _ := resources.ParseRemote(link)
	id := resources.HashLink(u)

	if a.Kind != resources.Remote {
		t.Errorf("Kind = %v, want remote", a.Kind)
	}
	if a.Filename != "cache/"+id {
		t.Errorf("Filename = %q, want %q", a.Filename, "cache/"+id)
	}
	if want := filepath.Join(cache, "cache", id); a.LocationOnDisk != want {
		t.Errorf("LocationOnDisk = %q, want %q", a.LocationOnDisk, want)
	}
	if a.MediaType != "image/svg+xml" {
		t.Errorf("MediaType = %q, want image/svg+xml", a.MediaType)
	}
	if a.PackagePath() != "/cache/"+id {
		t.Errorf("PackagePath() = %q, want %q", a.PackagePath(), "/cache/"+id)
	}

	// Chapter location does not matter for remote references.
	b, err := r.Resolve(link, "other/deep/page.md")
	if err != nil {
		t.Fatalf("Resolve() unexpected error: %v", err)
	}
	if b.Filename != a.Filename || b.Identity() != a.Identity() {
		t.Errorf("second resolution differs: %+v vs %+v", b, a)
	}
}

func TestResolve_RemoteWithoutExtension(t *testing.T) {
	t.Parallel()

	r, err := resources.NewResolver(t.TempDir(), "")
	if err != nil {
		t.Fatalf("NewResolver() unexpected error: %v", err)
	}
	a, err := r.Resolve("https://example.org/avatar?s=64", "intro.md")
	if err != nil {
		t.Fatalf("Resolve() unexpected error: %v", err)
	}
	if a.MediaType != resources.DefaultMediaType {
		t.Errorf("MediaType = %q, want %q", a.MediaType, resources.DefaultMediaType)
	}
}

// ---------------------------------------------------------------------------
// TestKind_String
// ---------------------------------------------------------------------------

func TestKind_String(t *testing.T) {
	t.Parallel()

	if resources.Local.String() != "local" {
		t.Errorf("Local.String() = %q", resources.Local.String())
	}
	if resources.Remote.String() != "remote" {
		t.Errorf("Remote.String() = %q", resources.Remote.String())
	}
}
