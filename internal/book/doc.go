// Package book loads mdBook books into the chapter tree used by md2epub.
//
// A book comes either from disk (SUMMARY.md plus the chapter files below
// the source directory) or from the JSON render context mdBook writes to
// the standard input of its backends.
package book
