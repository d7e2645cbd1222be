package resources

import "sort"

// Table maps reference strings, exactly as written in chapter content, to
// their resolved Assets. It is filled once before rendering and only read
// afterwards.
type Table struct {
	assets map[string]*Asset
	// shadowed holds assets whose link was already taken by a different
	// file, e.g. "img.png" written in two chapter directories.
	shadowed []*Asset
}

// NewTable returns an empty Table.
func NewTable() *Table {
	return &Table{assets: make(map[string]*Asset)}
}

// Add records a under its Link. An existing entry for the same link is kept
// for lookups; if it names another file, a is still kept for Unique.
func (t *Table) Add(a *Asset) {
	existing, ok := t.assets[a.Link]
	if !ok {
		t.assets[a.Link] = a
		return
	}
	if existing.Identity() != a.Identity() {
		t.shadowed = append(t.shadowed, a)
	}
}

// Has reports whether link is already resolved.
func (t *Table) Has(link string) bool {
	_, ok := t.assets[link]
	return ok
}

// Get returns the asset for link.
func (t *Table) Get(link string) (*Asset, bool) {
	a, ok := t.assets[link]
	return a, ok
}

// Len returns the number of reference strings in the table.
func (t *Table) Len() int { return len(t.assets) }

// Links returns the reference strings in sorted order.
func (t *Table) Links() []string {
	links := make([]string, 0, len(t.assets))
	for l := range t.assets {
		links = append(links, l)
	}
	sort.Strings(links)
	return links
}

// Unique returns one asset per Identity. Iteration follows sorted links and
// the first link of each identity wins, so the order is stable across runs.
// Shadowed assets come last, in insertion order.
func (t *Table) Unique() []*Asset {
	all := make([]*Asset, 0, len(t.assets)+len(t.shadowed))
	for _, l := range t.Links() {
		all = append(all, t.assets[l])
	}
	all = append(all, t.shadowed...)

	seen := make(map[Identity]struct{}, len(all))
	out := make([]*Asset, 0, len(all))
	for _, a := range all {
		id := a.Identity()
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, a)
	}
	return out
}
