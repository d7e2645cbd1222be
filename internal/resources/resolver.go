package resources

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/alnah/go-md2epub/internal/fileutil"
)

// CacheDir is the directory, relative to both the cache root and the
// package, that holds downloaded remote assets.
const CacheDir = "cache"

// Resolver turns reference strings into Assets.
type Resolver struct {
	srcDir    string
	cacheRoot string
}

// NewResolver returns a Resolver for the book source directory srcDir.
// Remote assets are cached below cacheRoot/cache. srcDir must exist; it is
// canonicalized once so symlinked source trees compare correctly.
func NewResolver(srcDir, cacheRoot string) (*Resolver, error) {
	if srcDir == "" {
		return nil, fmt.Errorf("%w: empty path", ErrSourceDir)
	}
	abs, err := filepath.Abs(srcDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceDir, err)
	}
	canon, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceDir, err)
	}
	info, err := os.Stat(canon)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrSourceDir, srcDir)
	}
	if cacheRoot == "" {
		cacheRoot = canon
	}
	cacheAbs, err := filepath.Abs(cacheRoot)
	if err != nil {
		return nil, fmt.Errorf("%w: cache root: %v", ErrSourceDir, err)
	}
	return &Resolver{srcDir: canon, cacheRoot: cacheAbs}, nil
}

// Resolve classifies link and resolves it relative to the directory of
// chapterPath, a path relative to the source directory.
func (r *Resolver) Resolve(link, chapterPath string) (*Asset, error) {
	if u, ok := ParseRemote(link); ok {
		return r.FromURL(link, u), nil
	}
	return r.FromLocal(link, chapterPath)
}

// ParseRemote reports whether link is an absolute http(s) address.
func ParseRemote(link string) (*url.URL, bool) {
	u, err := url.Parse(link)
	if err != nil {
		return nil, false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, false
	}
	if u.Host == "" {
		return nil, false
	}
	return u, true
}

// HashLink returns the cache identifier of u: the hex xxhash64 of its
// string form followed by the URL path's extension, if any.
func HashLink(u *url.URL) string {
	id := strconv.FormatUint(xxhash.Sum64String(u.String()), 16)
	if ext := path.Ext(u.Path); ext != "" && ext != "." {
		id += ext
	}
	return id
}

// FromURL builds the Remote asset for u. link is the reference as written.
func (r *Resolver) FromURL(link string, u *url.URL) *Asset {
	name := path.Join(CacheDir, HashLink(u))
	location := filepath.Join(r.cacheRoot, filepath.FromSlash(name))
	return newAsset(name, location, Remote, link, u)
}

// FromLocal resolves link against the chapter's directory below the
// source directory.
func (r *Resolver) FromLocal(link, chapterPath string) (*Asset, error) {
	chapterDir := filepath.Dir(filepath.FromSlash(chapterPath))
	full := filepath.Join(r.srcDir, chapterDir, filepath.FromSlash(link))

	resolved, err := filepath.EvalSymlinks(full)
	if err != nil {
		return nil, fmt.Errorf("%w: %q from %q", ErrAssetNotFound, link, chapterPath)
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return nil, fmt.Errorf("%w: %q from %q", ErrAssetNotFound, link, chapterPath)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %q from %q", ErrAssetNotFile, link, chapterPath)
	}

	// A symlink keeps its logical place in the package tree.
	if fileutil.IsSymlink(full) {
		rel, err := relativeTo(r.srcDir, full)
		if err != nil {
			return nil, fmt.Errorf("%w: %q from %q", ErrAssetOutsideSource, link, chapterPath)
		}
		return newAsset(rel, resolved, Local, link, nil), nil
	}

	rel, err := relativeTo(r.srcDir, resolved)
	if err != nil {
		return nil, fmt.Errorf("%w: %q from %q", ErrAssetOutsideSource, link, chapterPath)
	}
	return newAsset(rel, resolved, Local, link, nil), nil
}

var errNotBelow = errors.New("path not below base")

func relativeTo(base, target string) (string, error) {
	rel, err := filepath.Rel(base, target)
	if err != nil {
		return "", err
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errNotBelow
	}
	return filepath.ToSlash(rel), nil
}
