// Package epub assembles EPUB 2 and EPUB 3 packages.
//
// A Builder collects pages, a stylesheet, a cover image and resources, then
// writes them as a zip container: the stored mimetype entry first, the
// container descriptor, the OPF package document, the NCX table of contents
// and, for EPUB 3, the navigation document. Everything else lives under
// OEBPS/ at the path it was added with.
package epub
