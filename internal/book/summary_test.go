package book

import (
	"errors"
	"reflect"
	"testing"

	"github.com/alnah/go-md2epub"
)

// outline flattens a chapter tree to "number name -> path" lines.
func outline(chapters []*md2epub.Chapter) []string {
	var out []string
	var visit func([]*md2epub.Chapter)
	visit = func(cs []*md2epub.Chapter) {
		for _, ch := range cs {
			out = append(out, ch.Number.String()+"|"+ch.Name+"|"+ch.Path)
			visit(ch.SubItems)
		}
	}
	visit(chapters)
	return out
}

func TestParseSummary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		summary string
		want    []string
	}{
		{
			name: "full layout",
			summary: `# Summary

[Introduction](README.md)

# Part One

- [Getting Started](start/index.md)
    - [Install](start/install.md)
    - [First *Steps*](start/first%20steps.md)
- [Draft Chapter]()
    - [Nested](draft/nested.md)

---

# Part Two

- [Reference](ref.md)

[Appendix](appendix.md)
[Credits](credits.md)
`,
			want: []string{
				"|Introduction|README.md",
				"1.|Getting Started|start/index.md",
				"1.1.|Install|start/install.md",
				"1.2.|First Steps|start/first steps.md",
				"2.|Draft Chapter|",
				"2.1.|Nested|draft/nested.md",
				"3.|Reference|ref.md",
				"|Appendix|appendix.md",
				"|Credits|credits.md",
			},
		},
		{
			name:    "only a title",
			summary: "# Summary\n",
			want:    nil,
		},
		{
			name:    "deep nesting",
			summary: "- [A](a.md)\n  - [B](b.md)\n    - [C](c.md)\n",
			want:    []string{"1.|A|a.md", "1.1.|B|b.md", "1.1.1.|C|c.md"},
		},
		{
			name:    "html comments are ignored",
			summary: "<!-- hidden -->\n\n- [A](a.md)\n",
			want:    []string{"1.|A|a.md"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			chapters, err := ParseSummary([]byte(tt.summary))
			if err != nil {
				t.Fatalf("ParseSummary() unexpected error: %v", err)
			}
			if got := outline(chapters); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseSummary() =\n%v\nwant\n%v", got, tt.want)
			}
		})
	}
}

func TestParseSummary_Levels(t *testing.T) {
	t.Parallel()

	chapters, err := ParseSummary([]byte("[Pre](pre.md)\n\n- [A](a.md)\n  - [B](b.md)\n"))
	if err != nil {
		t.Fatalf("ParseSummary() unexpected error: %v", err)
	}
	if chapters[0].Level() != 0 || chapters[1].Level() != 0 || chapters[1].SubItems[0].Level() != 1 {
		t.Errorf("levels = %d %d %d, want 0 0 1",
			chapters[0].Level(), chapters[1].Level(), chapters[1].SubItems[0].Level())
	}
	if chapters[1].SubItems[0].IsDraft() {
		t.Error("B should not be a draft")
	}
}

func TestParseSummary_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		summary string
	}{
		{name: "plain text paragraph", summary: "just some words\n"},
		{name: "list item without link", summary: "- not a link\n"},
		{name: "link without name", summary: "- [](a.md)\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseSummary([]byte(tt.summary))
			if !errors.Is(err, ErrInvalidSummary) {
				t.Errorf("ParseSummary() error = %v, want ErrInvalidSummary", err)
			}
		})
	}
}
