package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/alnah/go-md2epub"
	"github.com/alnah/go-md2epub/internal/book"
	"github.com/alnah/go-md2epub/internal/config"
)

// Sentinel errors for CLI operations.
var (
	ErrInvalidTimeout = errors.New("invalid timeout")
	ErrWriteEPUB      = errors.New("failed to write EPUB file")
	ErrTooManyArgs    = errors.New("expected at most one book root")
)

// dirPermissions is used for the destination directory (rwxr-x---).
const dirPermissions = 0o750

// project is a loaded book with its resolved settings.
type project struct {
	book *md2epub.Book
	cfg  *config.Config
	dest string
}

// runBuild loads the book, merges flags and writes the package.
func runBuild(ctx context.Context, positional []string, flags *buildFlags, env *Environment) error {
	if len(positional) > 1 {
		return fmt.Errorf("%w: got %d", ErrTooManyArgs, len(positional))
	}

	envCfg := loadEnvConfig()
	timeout, err := resolveTimeout(flags.timeout, envCfg)
	if err != nil {
		return err
	}

	logger := newLogger(env.Stderr, flags.common.verbose, flags.common.quiet)
	defer func() { _ = logger.Sync() }()

	var p *project
	if flags.stdin {
		p, err = loadRenderContext(env)
	} else {
		root := "."
		if len(positional) == 1 {
			root = positional[0]
		}
		p, err = loadProject(root, flags.common.config, envCfg)
	}
	if err != nil {
		return err
	}

	mergeFlags(flags, p.cfg)
	if err := p.cfg.Validate(); err != nil {
		return err
	}

	dest := resolveDestination(flags.dest, envCfg, p)
	if err := os.MkdirAll(dest, dirPermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteEPUB, err)
	}

	opts := []md2epub.Option{
		md2epub.WithLogger(logger),
		md2epub.WithDestination(dest),
		md2epub.WithHTTPTimeout(timeout),
		md2epub.WithClock(env.Now),
	}
	if assetPath := resolveAssetPath(flags.assetPath, envCfg, p); assetPath != "" {
		opts = append(opts, md2epub.WithAssetPath(assetPath))
	}
	if flags.highlight != "" {
		opts = append(opts, md2epub.WithHighlightStyle(flags.highlight))
	}

	start := env.Now()
	out, err := md2epub.Generate(ctx, p.book, book.ApplyConfig(p.cfg), opts...)
	if err != nil {
		return err
	}

	logger.Debug("build finished", zap.Duration("elapsed", env.Now().Sub(start)))
	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Created %s\n", out)
	}
	return nil
}

// loadProject reads the config and the chapters of the book at root.
// An explicit config path (flag, then MD2EPUB_CONFIG) must exist; otherwise
// the files next to root are tried and defaults apply when none exists.
func loadProject(root, configFlag string, envCfg *envConfig) (*project, error) {
	configPath := configFlag
	if configPath == "" {
		configPath = envCfg.ConfigPath
	}

	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, _, err = config.Load(root)
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	b, err := book.Load(root, cfg)
	if err != nil {
		return nil, err
	}
	return &project{book: b, cfg: cfg}, nil
}

// loadRenderContext reads the book mdBook pipes to its backends.
func loadRenderContext(env *Environment) (*project, error) {
	rc, err := book.DecodeRenderContext(env.Stdin)
	if err != nil {
		return nil, err
	}
	return &project{book: rc.Book, cfg: rc.Config, dest: rc.Destination}, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *buildFlags, cfg *config.Config) {
	e := &cfg.Output.EPUB

	if flags.epub.version != 0 {
		e.EPUBVersion = flags.epub.version
	}
	if flags.epub.curlyQuotes {
		e.CurlyQuotes = true
	}
	if flags.epub.noSectionLabel {
		e.NoSectionLabel = true
	}
	if flags.epub.noDefaultCSS {
		e.UseDefaultCSS = false
	}
	if flags.epub.cover != "" {
		e.CoverImage = flags.epub.cover
	}
	if flags.epub.template != "" {
		e.IndexTemplate = flags.epub.template
	}
	e.AdditionalCSS = append(e.AdditionalCSS, flags.epub.css...)
	e.AdditionalResources = append(e.AdditionalResources, flags.epub.resources...)
}

// resolveTimeout returns the download timeout: flag, then MD2EPUB_TIMEOUT,
// then the library default.
func resolveTimeout(flagValue string, envCfg *envConfig) (time.Duration, error) {
	if flagValue != "" {
		d, err := time.ParseDuration(flagValue)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrInvalidTimeout, err)
		}
		if d <= 0 {
			return 0, fmt.Errorf("%w: must be positive, got %s", ErrInvalidTimeout, flagValue)
		}
		return d, nil
	}
	if envCfg.Timeout > 0 {
		return envCfg.Timeout, nil
	}
	return md2epub.DefaultHTTPTimeout, nil
}

// resolveDestination returns the output directory: flag, then MD2EPUB_DEST,
// then the render context destination, then <root>/<build-dir>.
func resolveDestination(flagValue string, envCfg *envConfig, p *project) string {
	switch {
	case flagValue != "":
		return flagValue
	case envCfg.Dest != "":
		return envCfg.Dest
	case p.dest != "":
		return p.dest
	}
	buildDir := p.cfg.Build.BuildDir
	if buildDir == "" {
		buildDir = md2epub.DefaultBuildDir
	}
	if filepath.IsAbs(buildDir) {
		return buildDir
	}
	return filepath.Join(p.book.Root, buildDir)
}

// resolveAssetPath returns the custom asset directory: flag, then
// MD2EPUB_ASSET_PATH, then output.epub.asset-path relative to the book root.
func resolveAssetPath(flagValue string, envCfg *envConfig, p *project) string {
	switch {
	case flagValue != "":
		return flagValue
	case envCfg.AssetPath != "":
		return envCfg.AssetPath
	}
	configured := p.cfg.Output.EPUB.AssetPath
	if configured == "" || filepath.IsAbs(configured) {
		return configured
	}
	return filepath.Join(p.book.Root, configured)
}
