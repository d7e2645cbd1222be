package markdown

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
	"golang.org/x/net/html"

	"github.com/alnah/go-md2epub/internal/resources"
)

// Renderer converts chapter Markdown to XHTML, pointing remote image
// references at their cached package path. Local references are left as
// written since local assets keep their source-relative layout.
type Renderer struct {
	md    goldmark.Markdown
	table *resources.Table
}

// NewRenderer returns a Renderer that looks references up in table.
// The table must be complete before Render is called.
func NewRenderer(table *resources.Table, opts Options) *Renderer {
	raw := &rawHTMLRenderer{table: table}
	return &Renderer{
		md:    newGoldmark(opts, raw),
		table: table,
	}
}

// Render returns the XHTML body for content.
func (r *Renderer) Render(content string) (string, error) {
	source := []byte(content)
	doc := r.md.Parser().Parse(text.NewReader(source))

	if err := r.rewriteImages(doc); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := r.md.Renderer().Render(&buf, source, doc); err != nil {
		return "", fmt.Errorf("%w: %w", ErrRender, err)
	}
	return buf.String(), nil
}

func (r *Renderer) rewriteImages(doc ast.Node) error {
	return ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		img, ok := node.(*ast.Image)
		if !ok || !entering {
			return ast.WalkContinue, nil
		}
		link := string(img.Destination)
		if link == "" || isDataURI(link) {
			return ast.WalkContinue, nil
		}
		asset, ok := r.table.Get(link)
		if !ok {
			return ast.WalkStop, fmt.Errorf("%w: %q", ErrAssetNotIndexed, link)
		}
		if asset.IsRemote() {
			img.Destination = []byte(asset.PackagePath())
		}
		return ast.WalkContinue, nil
	})
}

// rawHTMLRenderer writes raw HTML verbatim except for remote img sources,
// which are substituted in place.
type rawHTMLRenderer struct {
	table *resources.Table
}

// RegisterFuncs implements renderer.NodeRenderer.
func (r *rawHTMLRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindHTMLBlock, r.render)
	reg.Register(ast.KindRawHTML, r.render)
}

func (r *rawHTMLRenderer) render(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	out, err := r.substitute(rawText(node, source))
	if err != nil {
		return ast.WalkStop, err
	}
	_, _ = w.WriteString(out)
	return ast.WalkSkipChildren, nil
}

// substitute replaces every remote img src in raw with its package path.
func (r *rawHTMLRenderer) substitute(raw string) (string, error) {
	srcs, err := imageSources(raw)
	if err != nil {
		return "", err
	}

	seen := make(map[string]struct{}, len(srcs))
	remote := srcs[:0]
	for _, src := range srcs {
		if _, ok := seen[src]; ok {
			continue
		}
		seen[src] = struct{}{}
		if _, ok := resources.ParseRemote(src); ok {
			remote = append(remote, src)
		}
	}
	// Longest first so a URL that prefixes another is not replaced inside it.
	sort.SliceStable(remote, func(i, j int) bool { return len(remote[i]) > len(remote[j]) })

	for _, src := range remote {
		asset, ok := r.table.Get(src)
		if !ok {
			return "", fmt.Errorf("%w: %q", ErrAssetNotIndexed, src)
		}
		if !asset.IsRemote() {
			continue
		}
		raw = strings.ReplaceAll(raw, src, asset.PackagePath())
		// Attribute values arrive entity-decoded; the raw text may still
		// hold the escaped form.
		if escaped := html.EscapeString(src); escaped != src {
			raw = strings.ReplaceAll(raw, escaped, asset.PackagePath())
		}
	}
	return raw, nil
}
