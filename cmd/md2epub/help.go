package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2epub [build] [flags] [root]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  build      Build an EPUB from an mdBook project (default)")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'md2epub help build' for the list of flags.")
}

// printBuildUsage prints usage for the build command.
func printBuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2epub build [flags] [root]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Build <root>/<src>/SUMMARY.md into <dest>/<title>.epub.")
	fmt.Fprintln(w, "With --stdin, the book is read from the render context mdBook")
	fmt.Fprintln(w, "passes to its backends and root is ignored.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  root    Book directory (default: current directory)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -c, --config <path>         Config file (default: book.toml, book.yaml)")
	fmt.Fprintln(w, "  -d, --dest <dir>            Output directory")
	fmt.Fprintln(w, "      --stdin                 Read an mdBook render context from stdin")
	fmt.Fprintln(w, "  -t, --timeout <d>           Remote image download timeout (e.g., 30s)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Package:")
	fmt.Fprintln(w, "      --epub-version <n>      EPUB version: 2 or 3")
	fmt.Fprintln(w, "      --cover <path>          Cover image")
	fmt.Fprintln(w, "      --resource <path>       Extra file to embed (repeatable)")
	fmt.Fprintln(w, "      --no-section-label      Omit section numbers in the TOC")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "      --css <path>            Additional stylesheet (repeatable)")
	fmt.Fprintln(w, "      --no-default-css        Skip the built-in stylesheet")
	fmt.Fprintln(w, "      --template <path>       Chapter page template")
	fmt.Fprintln(w, "      --asset-path <dir>      Custom style and template directory")
	fmt.Fprintln(w, "      --highlight-style <s>   Chroma style for code blocks")
	fmt.Fprintln(w, "      --curly-quotes          Use curly quotes")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet                 Only show errors")
	fmt.Fprintln(w, "  -v, --verbose               Show debug logs")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MD2EPUB_CONFIG, MD2EPUB_DEST, MD2EPUB_TIMEOUT, MD2EPUB_ASSET_PATH")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "build":
		printBuildUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: md2epub version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: md2epub help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
