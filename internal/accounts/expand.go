package accounts

// Expansion records which nodes are expanded, keyed by account id.
// The zero value is ready to use and has everything collapsed.
type Expansion struct {
	open map[int]struct{}
}

// Toggle flips the state of id and leaves every other id untouched.
func (e *Expansion) Toggle(id int) {
	if e.IsExpanded(id) {
		delete(e.open, id)
		return
	}
	e.Expand(id)
}

// Expand marks id as expanded.
func (e *Expansion) Expand(id int) {
	if e.open == nil {
		e.open = make(map[int]struct{})
	}
	e.open[id] = struct{}{}
}

// IsExpanded reports whether id is expanded.
func (e *Expansion) IsExpanded(id int) bool {
	_, ok := e.open[id]
	return ok
}

// CollapseAll resets the state so every node is collapsed.
func (e *Expansion) CollapseAll() {
	e.open = nil
}

// ExpandAll expands every node of t that has children.
func (e *Expansion) ExpandAll(t *Tree) {
	t.Walk(func(n *Node) {
		if !n.IsLeaf() {
			e.Expand(n.ID)
		}
	})
}

// Len returns the number of expanded ids.
func (e *Expansion) Len() int {
	return len(e.open)
}
