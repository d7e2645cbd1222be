package markdown

import (
	"slices"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var discoveryParser = newGoldmark(Options{}, nil).Parser()

// FindImageLinks returns the sorted, distinct image references in content:
// destinations of Markdown images and src attributes of img elements inside
// raw HTML, at any nesting depth. Inline data URIs are not assets and are
// left out. Empty content yields no references.
func FindImageLinks(content string) ([]string, error) {
	if strings.TrimSpace(content) == "" {
		return nil, nil
	}

	source := []byte(content)
	doc := discoveryParser.Parse(text.NewReader(source))

	var found []string
	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := node.(type) {
		case *ast.Image:
			found = append(found, string(n.Destination))
		case *ast.HTMLBlock, *ast.RawHTML:
			srcs, err := imageSources(rawText(n, source))
			if err != nil {
				return ast.WalkStop, err
			}
			found = append(found, srcs...)
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}

	links := found[:0]
	for _, l := range found {
		if l == "" || isDataURI(l) {
			continue
		}
		links = append(links, l)
	}
	slices.Sort(links)
	return slices.Compact(links), nil
}

func isDataURI(link string) bool {
	return len(link) >= 5 && strings.EqualFold(link[:5], "data:")
}
