package main

import (
	flag "github.com/spf13/pflag"
)

// commonFlags holds output control flags.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// epubFlags override the [output.epub] section of the config.
type epubFlags struct {
	version        int
	curlyQuotes    bool
	noSectionLabel bool
	noDefaultCSS   bool
	cover          string
	css            []string
	resources      []string
	template       string
}

// buildFlags holds all flags for the build command.
type buildFlags struct {
	common    commonFlags
	epub      epubFlags
	dest      string
	stdin     bool
	timeout   string
	assetPath string
	highlight string
}

// addCommonFlags adds output control flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file path (default: <root>/book.toml)")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs")
}

// addEPUBFlags adds package flags to a FlagSet.
func addEPUBFlags(fs *flag.FlagSet, f *epubFlags) {
	fs.IntVar(&f.version, "epub-version", 0, "EPUB version: 2 or 3")
	fs.BoolVar(&f.curlyQuotes, "curly-quotes", false, "convert straight quotes to curly quotes")
	fs.BoolVar(&f.noSectionLabel, "no-section-label", false, "omit section numbers from the table of contents")
	fs.BoolVar(&f.noDefaultCSS, "no-default-css", false, "do not embed the built-in stylesheet")
	fs.StringVar(&f.cover, "cover", "", "cover image path")
	fs.StringArrayVar(&f.css, "css", nil, "additional stylesheet (repeatable)")
	fs.StringArrayVar(&f.resources, "resource", nil, "additional resource to embed (repeatable)")
	fs.StringVar(&f.template, "template", "", "chapter page template path")
}

// parseBuildFlags parses build command flags and returns positional args.
func parseBuildFlags(args []string, env *Environment) (*buildFlags, []string, error) {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	f := &buildFlags{}

	fs.StringVarP(&f.dest, "dest", "d", "", "output directory (default: <root>/<build-dir>)")
	fs.BoolVar(&f.stdin, "stdin", false, "read an mdBook render context from standard input")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "remote image download timeout (e.g., 30s, 2m)")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom style and template directory")
	fs.StringVar(&f.highlight, "highlight-style", "", "chroma style for code blocks")

	addCommonFlags(fs, &f.common)
	addEPUBFlags(fs, &f.epub)

	fs.Usage = func() { printBuildUsage(env.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
