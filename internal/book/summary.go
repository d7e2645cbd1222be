package book

import (
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/alnah/go-md2epub"
)

// SummaryFile is the name of the table of contents in the source directory.
const SummaryFile = "SUMMARY.md"

var summaryParser = goldmark.New().Parser()

// ParseSummary returns the chapter tree described by a SUMMARY.md file.
//
// Links in paragraphs are unnumbered prefix or suffix chapters. Links in
// lists are numbered chapters, nested lists are their sub-chapters. The
// first heading is the book title and later ones are part titles; neither
// becomes a chapter. Thematic breaks are separators. A link with an empty
// destination, such as [Draft](), is a draft chapter.
func ParseSummary(data []byte) ([]*md2epub.Chapter, error) {
	doc := summaryParser.Parse(text.NewReader(data))

	var chapters []*md2epub.Chapter
	numbered := 0
	for node := doc.FirstChild(); node != nil; node = node.NextSibling() {
		switch n := node.(type) {
		case *ast.Paragraph:
			links, err := paragraphLinks(n, data)
			if err != nil {
				return nil, err
			}
			chapters = append(chapters, links...)
		case *ast.List:
			items, err := parseList(n, data, nil, &numbered)
			if err != nil {
				return nil, err
			}
			chapters = append(chapters, items...)
		}
	}
	return chapters, nil
}

func paragraphLinks(p *ast.Paragraph, source []byte) ([]*md2epub.Chapter, error) {
	var chapters []*md2epub.Chapter
	for c := p.FirstChild(); c != nil; c = c.NextSibling() {
		link, ok := c.(*ast.Link)
		if !ok {
			continue
		}
		ch, err := linkChapter(link, source)
		if err != nil {
			return nil, err
		}
		chapters = append(chapters, ch)
	}
	if len(chapters) == 0 {
		return nil, fmt.Errorf("%w: expected a link, got %q", ErrInvalidSummary, inlineText(p, source))
	}
	return chapters, nil
}

// parseList numbers the items of list below parent. counter holds the last
// number used at this depth.
func parseList(list *ast.List, source []byte, parent md2epub.SectionNumber, counter *int) ([]*md2epub.Chapter, error) {
	var chapters []*md2epub.Chapter
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		var ch *md2epub.Chapter
		var subs []*md2epub.Chapter
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			switch n := c.(type) {
			case *ast.List:
				if ch == nil {
					return nil, fmt.Errorf("%w: nested list without a parent chapter", ErrInvalidSummary)
				}
				sub := 0
				items, err := parseList(n, source, ch.Number, &sub)
				if err != nil {
					return nil, err
				}
				subs = append(subs, items...)
			default:
				if ch != nil {
					continue
				}
				link := firstLink(c)
				if link == nil {
					return nil, fmt.Errorf("%w: list item without a link: %q", ErrInvalidSummary, inlineText(c, source))
				}
				var err error
				if ch, err = linkChapter(link, source); err != nil {
					return nil, err
				}
				*counter++
				ch.Number = append(slices.Clone(parent), *counter)
			}
		}
		if ch == nil {
			return nil, fmt.Errorf("%w: empty list item", ErrInvalidSummary)
		}
		ch.SubItems = subs
		chapters = append(chapters, ch)
	}
	return chapters, nil
}

func linkChapter(link *ast.Link, source []byte) (*md2epub.Chapter, error) {
	name := strings.TrimSpace(inlineText(link, source))
	if name == "" {
		return nil, fmt.Errorf("%w: link without a name to %q", ErrInvalidSummary, link.Destination)
	}
	dest := string(link.Destination)
	if unescaped, err := url.PathUnescape(dest); err == nil {
		dest = unescaped
	}
	return &md2epub.Chapter{Name: name, Path: dest}, nil
}

func firstLink(n ast.Node) *ast.Link {
	var found *ast.Link
	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if link, ok := node.(*ast.Link); ok && entering {
			found = link
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	return found
}

// inlineText concatenates the text segments below n.
func inlineText(n ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := node.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}
