package book

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/alnah/go-md2epub"
	"github.com/alnah/go-md2epub/internal/config"
)

// RenderContext is what mdBook passes to a backend on standard input.
type RenderContext struct {
	Version     string // mdBook version
	Root        string // book root
	Destination string // directory the backend writes to
	Book        *md2epub.Book
	Config      *config.Config
}

type wireContext struct {
	Version string `json:"version"`
	Root    string `json:"root"`
	Book    struct {
		Sections []json.RawMessage `json:"sections"`
	} `json:"book"`
	Config      json.RawMessage `json:"config"`
	Destination string          `json:"destination"`
}

type wireChapter struct {
	Name     string            `json:"name"`
	Content  string            `json:"content"`
	Number   []int             `json:"number"`
	SubItems []json.RawMessage `json:"sub_items"`
	Path     *string           `json:"path"`
}

// DecodeRenderContext reads an mdBook render context. Sections are
// Chapter objects, "Separator" strings or PartTitle objects; only
// chapters are kept. Unknown config keys are ignored.
func DecodeRenderContext(r io.Reader) (*RenderContext, error) {
	var wire wireContext
	if err := json.NewDecoder(r).Decode(&wire); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderContext, err)
	}
	if wire.Root == "" {
		return nil, fmt.Errorf("%w: missing root", ErrRenderContext)
	}

	cfg := config.DefaultConfig()
	if len(wire.Config) > 0 {
		if err := json.Unmarshal(wire.Config, cfg); err != nil {
			return nil, fmt.Errorf("%w: config: %v", ErrRenderContext, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	chapters, err := decodeItems(wire.Book.Sections)
	if err != nil {
		return nil, err
	}

	return &RenderContext{
		Version:     wire.Version,
		Root:        wire.Root,
		Destination: wire.Destination,
		Config:      cfg,
		Book: &md2epub.Book{
			Root:        wire.Root,
			Src:         cfg.Book.Src,
			Title:       cfg.Book.Title,
			Description: cfg.Book.Description,
			Language:    cfg.Book.Language,
			Authors:     cfg.Book.Authors,
			Chapters:    chapters,
		},
	}, nil
}

func decodeItems(items []json.RawMessage) ([]*md2epub.Chapter, error) {
	var chapters []*md2epub.Chapter
	for _, raw := range items {
		var marker string
		if err := json.Unmarshal(raw, &marker); err == nil {
			// "Separator"
			continue
		}

		var item map[string]json.RawMessage
		if err := json.Unmarshal(raw, &item); err != nil {
			return nil, fmt.Errorf("%w: book item: %v", ErrRenderContext, err)
		}
		rawChapter, ok := item["Chapter"]
		if !ok {
			if _, part := item["PartTitle"]; part {
				continue
			}
			return nil, fmt.Errorf("%w: unknown book item %s", ErrRenderContext, raw)
		}

		var wc wireChapter
		if err := json.Unmarshal(rawChapter, &wc); err != nil {
			return nil, fmt.Errorf("%w: chapter: %v", ErrRenderContext, err)
		}
		subs, err := decodeItems(wc.SubItems)
		if err != nil {
			return nil, err
		}
		ch := &md2epub.Chapter{
			Name:     wc.Name,
			Content:  wc.Content,
			SubItems: subs,
		}
		if len(wc.Number) > 0 {
			ch.Number = md2epub.SectionNumber(wc.Number)
		}
		if wc.Path != nil {
			ch.Path = *wc.Path
		}
		chapters = append(chapters, ch)
	}
	return chapters, nil
}
