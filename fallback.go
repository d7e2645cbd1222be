package md2epub

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"
)

// resolveResourcePath locates a configured file: the path as given, then
// under the source directory, then under the book root.
func (g *Generator) resolveResourcePath(p string) (string, error) {
	candidates := []string{p}
	if !filepath.IsAbs(p) {
		candidates = append(candidates,
			filepath.Join(g.book.SourceDir(), p),
			filepath.Join(g.book.Root, p),
		)
	}
	for _, c := range candidates {
		abs, err := canonicalize(c)
		if err == nil {
			g.logger.Debug("found resource", zap.String("path", p), zap.String("resolved", abs))
			return abs, nil
		}
		g.logger.Debug("resource not found", zap.String("candidate", c))
	}
	return "", fmt.Errorf("%w: %s", ErrResourceNotFound, p)
}

// canonicalize returns the absolute path of an existing file with symlinks
// resolved.
func canonicalize(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}
