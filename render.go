package md2epub

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/alnah/go-md2epub/internal/epub"
	"github.com/alnah/go-md2epub/internal/markdown"
)

// stylesheetName is the package path of the combined stylesheet.
const stylesheetName = "stylesheet.css"

// parseTemplates loads the index and blank templates. A configured index
// template is read relative to the book root.
func (g *Generator) parseTemplates() error {
	var index string
	if g.cfg.IndexTemplate != "" {
		p := g.cfg.IndexTemplate
		if !filepath.IsAbs(p) {
			p = filepath.Join(g.book.Root, p)
		}
		data, err := os.ReadFile(p) // #nosec G304 -- template path comes from the book configuration
		if err != nil {
			return fmt.Errorf("%w: opening %s: %v", ErrTemplateParse, p, err)
		}
		index = string(data)
	} else {
		var err error
		index, err = g.loader.LoadTemplate(IndexTemplate)
		if err != nil {
			return fmt.Errorf("loading index template: %w", err)
		}
	}

	blank, err := g.loader.LoadTemplate(BlankTemplate)
	if err != nil {
		return fmt.Errorf("loading blank template: %w", err)
	}

	if g.index, err = template.New(IndexTemplate).Parse(index); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrTemplateParse, IndexTemplate, err)
	}
	if g.blank, err = template.New(BlankTemplate).Parse(blank); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrTemplateParse, BlankTemplate, err)
	}
	return nil
}

// renderChapters adds one page per chapter with content and one placeholder
// page per draft chapter with children. Parents come before their children.
func (g *Generator) renderChapters(_ context.Context, b *build) error {
	r := markdown.NewRenderer(b.table, markdown.Options{
		CurlyQuotes:    g.cfg.CurlyQuotes,
		HighlightStyle: g.highlightStyle,
	})
	taken := make(map[string]struct{})
	_ = g.book.Walk(func(ch *Chapter) error {
		if !ch.IsDraft() {
			taken[ch.DestinationPath()] = struct{}{}
		}
		return nil
	})
	return g.book.Walk(func(ch *Chapter) error {
		return g.addChapter(r, b, ch, taken)
	})
}

// draftPath returns the page path of a draft, suffixed with -2, -3, ...
// when its slug is already used by another page.
func draftPath(ch *Chapter, taken map[string]struct{}) string {
	dest := ch.DestinationPath()
	stem := strings.TrimSuffix(dest, ".html")
	for n := 2; ; n++ {
		if _, ok := taken[dest]; !ok {
			break
		}
		dest = fmt.Sprintf("%s-%d.html", stem, n)
	}
	taken[dest] = struct{}{}
	return dest
}

func (g *Generator) addChapter(r *markdown.Renderer, b *build, ch *Chapter, taken map[string]struct{}) error {
	var page string
	var err error
	switch {
	case !ch.IsDraft():
		page, err = g.renderChapter(r, ch)
	case len(ch.SubItems) == 0:
		g.logger.Debug("skipping draft chapter", zap.String("name", ch.Name))
		return nil
	default:
		page, err = g.renderBlank(ch)
	}
	if err != nil {
		return err
	}

	dest := ch.DestinationPath()
	if ch.IsDraft() {
		dest = draftPath(ch, taken)
	}
	g.logger.Debug("adding page", zap.String("name", ch.Name), zap.String("path", dest))
	return b.pkg.AddContent(epub.Content{
		Path:  dest,
		Title: g.pageTitle(ch),
		Level: ch.Level(),
		Data:  []byte(page),
	})
}

// renderChapter renders a chapter with content through the index template.
func (g *Generator) renderChapter(r *markdown.Renderer, ch *Chapter) (string, error) {
	if ch.IsDraft() {
		return "", fmt.Errorf("%w: %q", ErrDraftChapter, ch.Name)
	}
	body, err := r.Render(ch.Content)
	if err != nil {
		return "", fmt.Errorf("chapter %q: %w", ch.Path, err)
	}
	return g.execute(g.index, map[string]any{
		"title":      ch.Name,
		"body":       template.HTML(body), // #nosec G203 -- rendered by goldmark from book sources
		"stylesheet": stylesheetPath(ch.Path),
	})
}

// renderBlank renders the placeholder page of a draft chapter.
func (g *Generator) renderBlank(ch *Chapter) (string, error) {
	return g.execute(g.blank, map[string]any{"title": ch.Name})
}

func (g *Generator) execute(tmpl *template.Template, data map[string]any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrTemplateRender, tmpl.Name(), err)
	}
	return buf.String(), nil
}

// pageTitle prefixes the chapter name with its section number unless
// labels are disabled.
func (g *Generator) pageTitle(ch *Chapter) string {
	if g.cfg.NoSectionLabel || len(ch.Number) == 0 {
		return ch.Name
	}
	return ch.Number.String() + " " + ch.Name
}

// stylesheetPath returns the relative path from a chapter's page to the
// stylesheet: one ".." per directory of chapterPath.
func stylesheetPath(chapterPath string) string {
	dir := path.Dir(path.Clean(strings.ReplaceAll(chapterPath, "\\", "/")))
	if dir == "." || dir == "/" {
		return stylesheetName
	}
	depth := len(strings.Split(strings.Trim(dir, "/"), "/"))
	return strings.Repeat("../", depth) + stylesheetName
}
