package epub

// tocNode is one entry of the table of contents tree.
type tocNode struct {
	page     *Content
	children []*tocNode
}

// buildTOC nests pages by Level. A page is placed under the closest
// preceding page with a lower level; a level deeper than its predecessor
// allows is clamped to one below it.
func buildTOC(pages []Content) *tocNode {
	root := &tocNode{}
	stack := []*tocNode{root}
	for i := range pages {
		depth := pages[i].Level
		if depth > len(stack)-1 {
			depth = len(stack) - 1
		}
		stack = stack[:depth+1]
		n := &tocNode{page: &pages[i]}
		parent := stack[depth]
		parent.children = append(parent.children, n)
		stack = append(stack, n)
	}
	return root
}

// depth returns the number of levels below n.
func (n *tocNode) depth() int {
	deepest := 0
	for _, c := range n.children {
		if d := c.depth() + 1; d > deepest {
			deepest = d
		}
	}
	return deepest
}
