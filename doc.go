// Package md2epub builds EPUB packages from mdBook-style books.
//
// # Quick Start
//
// Describe the book as a chapter tree, then generate the package:
//
//	book := &md2epub.Book{
//	    Root:  "/path/to/book",
//	    Src:   "src",
//	    Title: "My Book",
//	    Chapters: []*md2epub.Chapter{
//	        {Name: "Intro", Path: "intro.md", Content: "# Intro"},
//	    },
//	}
//	out, err := md2epub.Generate(ctx, book, md2epub.DefaultConfig(),
//	    md2epub.WithDestination("/path/to/book/book"),
//	)
//
// Generate writes "<title>.epub" (or "book.epub") atomically: a failed run
// leaves no package behind.
//
// # Generation Pipeline
//
// A Generator runs these steps in order and stops at the first error:
//
//  1. Package metadata (title, description, authors, language)
//  2. Image discovery and resolution over every chapter into an asset table
//  3. Chapter rendering via Goldmark, with remote images rewritten to the
//     package cache directory
//  4. Cover image
//  5. Stylesheet (default CSS followed by additional stylesheets)
//  6. Embedding of every distinct asset, downloading remote ones first
//  7. Additional resources
//  8. Serialization of the EPUB container
//
// Local images keep their path relative to the source directory, so the
// references written in chapters resolve unchanged inside the package.
// Remote images are stored under "cache/<hash>[.ext]".
//
// # Configuration
//
// Config mirrors the [output.epub] table of book.toml. Behavior that is
// not part of the book is set with functional options:
//
//	g, err := md2epub.NewGenerator(book, cfg,
//	    md2epub.WithLogger(logger),
//	    md2epub.WithHTTPTimeout(time.Minute),
//	    md2epub.WithAssetPath("/path/to/custom/assets"),
//	)
//
// # Error Handling
//
// Errors wrap package-level sentinels and can be checked with errors.Is:
//
//	if errors.Is(err, md2epub.ErrAssetNotFound) {
//	    // an image referenced by a chapter is missing
//	}
//
// Network failures wrap ErrRemoteNotFound or ErrUnexpectedStatus.
package md2epub
