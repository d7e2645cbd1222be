package markdown

import (
	"errors"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
)

// Sentinel errors for chapter parsing and rendering.
var (
	// ErrAssetNotIndexed indicates a reference reached rendering without
	// having been resolved first. It signals a bug, not bad input.
	ErrAssetNotIndexed = errors.New("asset missing from asset table")
	// ErrRawHTML indicates a raw HTML fragment could not be parsed.
	ErrRawHTML = errors.New("unable to parse raw HTML")
	// ErrRender indicates goldmark failed to render a chapter.
	ErrRender = errors.New("markdown rendering failed")
)

// Options tune chapter rendering.
type Options struct {
	// CurlyQuotes turns straight quotes and dashes into typographic ones.
	CurlyQuotes bool
	// HighlightStyle is the chroma style for code blocks. Empty means "github".
	HighlightStyle string
}

// DefaultHighlightStyle is the chroma style used when none is configured.
const DefaultHighlightStyle = "github"

// typographicSubstitutions replaces goldmark's HTML entities, which are not
// declared in XHTML, with the literal characters.
var typographicSubstitutions = map[extension.TypographicPunctuation][]byte{
	extension.LeftSingleQuote:  []byte("‘"),
	extension.RightSingleQuote: []byte("’"),
	extension.LeftDoubleQuote:  []byte("“"),
	extension.RightDoubleQuote: []byte("”"),
	extension.EnDash:           []byte("–"),
	extension.EmDash:           []byte("—"),
	extension.Ellipsis:         []byte("…"),
	extension.LeftAngleQuote:   []byte("«"),
	extension.RightAngleQuote:  []byte("»"),
	extension.Apostrophe:       []byte("’"),
}

// newGoldmark builds the goldmark instance shared by discovery and rendering.
// raw, when non-nil, takes over rendering of raw HTML nodes.
func newGoldmark(opts Options, raw renderer.NodeRenderer) goldmark.Markdown {
	style := opts.HighlightStyle
	if style == "" {
		style = DefaultHighlightStyle
	}

	exts := []goldmark.Extender{
		extension.GFM,      // Tables, strikethrough, autolinks, task lists
		extension.Footnote, // [^1] footnotes
		highlighting.NewHighlighting(
			highlighting.WithStyle(style),
			highlighting.WithFormatOptions(
				chromahtml.WithClasses(false), // Inline styles: the package carries no chroma stylesheet
			),
		),
	}
	if opts.CurlyQuotes {
		exts = append(exts, extension.NewTypographer(
			extension.WithTypographicSubstitutions(typographicSubstitutions),
		))
	}

	rendererOpts := []renderer.Option{
		html.WithXHTML(), // Self-closing tags, pages are XHTML
	}
	if raw != nil {
		// Lower value wins over the default HTML renderer (1000).
		rendererOpts = append(rendererOpts, renderer.WithNodeRenderers(util.Prioritized(raw, 100)))
	}

	return goldmark.New(
		goldmark.WithExtensions(exts...),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(), // Generate IDs for headings (navigation anchors)
		),
		goldmark.WithRendererOptions(rendererOpts...),
	)
}
