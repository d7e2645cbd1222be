// Package markdown parses chapter content with goldmark.
//
// FindImageLinks discovers every image reference in a chapter, from
// Markdown image syntax and from img elements nested in raw HTML.
// Renderer converts a chapter to an XHTML fragment, rewriting references to
// remote images so they point at the package cache.
//
// Raw HTML is rewritten by literal substring replacement of the exact src
// value. The element tree is parsed only to find those values and is never
// re-serialized, so unrelated formatting survives untouched.
package markdown
