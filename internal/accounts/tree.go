package accounts

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/ledgerdesk/ledgerdesk/internal/model"
)

// ErrDuplicateID is returned when two accounts share an id.
var ErrDuplicateID = errors.New("duplicate account id")

// CycleError lists accounts whose parent chain loops back on itself,
// together with any accounts hanging below such a loop.
type CycleError struct {
	IDs []int
}

func (e *CycleError) Error() string {
	ids := make([]string, len(e.IDs))
	for i, id := range e.IDs {
		ids[i] = fmt.Sprint(id)
	}
	return "parent cycle among accounts " + strings.Join(ids, ", ")
}

// Node is an account placed in the hierarchy.
type Node struct {
	model.Account
	Level    int // number of ancestors
	Children []*Node
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	return len(n.Children)
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Tree is the hierarchy derived from a flat account list. It has no identity
// of its own and is rebuilt whenever the list changes.
type Tree struct {
	Roots []*Node
	// Orphans are accounts whose parent chain ends at an id that is not in
	// the list. They are not placed in the hierarchy.
	Orphans []model.Account

	index map[int]*Node
}

// Build arranges a flat list into a forest rooted at accounts without a
// parent. Siblings keep their source order.
func Build(accounts []model.Account) (*Tree, error) {
	byID := make(map[int]model.Account, len(accounts))
	children := make(map[int][]model.Account)
	var roots []model.Account

	for _, a := range accounts {
		if _, dup := byID[a.ID]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateID, a.ID)
		}
		byID[a.ID] = a
		if a.ParentID == nil {
			roots = append(roots, a)
		} else {
			children[*a.ParentID] = append(children[*a.ParentID], a)
		}
	}

	t := &Tree{index: make(map[int]*Node, len(accounts))}

	var stack []*Node
	for _, a := range roots {
		n := &Node{Account: a}
		t.Roots = append(t.Roots, n)
		t.index[a.ID] = n
		stack = append(stack, n)
	}

	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, c := range children[n.ID] {
			if _, seen := t.index[c.ID]; seen {
				return nil, &CycleError{IDs: []int{c.ID}}
			}
			child := &Node{Account: c, Level: n.Level + 1}
			n.Children = append(n.Children, child)
			t.index[c.ID] = child
			stack = append(stack, child)
		}
	}

	if len(t.index) == len(accounts) {
		return t, nil
	}

	var cyclic []int
	for _, a := range accounts {
		if _, placed := t.index[a.ID]; placed {
			continue
		}
		if endsInCycle(a, byID) {
			cyclic = append(cyclic, a.ID)
		} else {
			t.Orphans = append(t.Orphans, a)
		}
	}
	if len(cyclic) > 0 {
		slices.Sort(cyclic)
		return nil, &CycleError{IDs: cyclic}
	}
	return t, nil
}

// endsInCycle follows a's parent chain until it leaves the list or revisits
// an account.
func endsInCycle(a model.Account, byID map[int]model.Account) bool {
	seen := map[int]bool{a.ID: true}
	cur := a
	for cur.ParentID != nil {
		next, ok := byID[*cur.ParentID]
		if !ok {
			return false
		}
		if seen[next.ID] {
			return true
		}
		seen[next.ID] = true
		cur = next
	}
	return false
}

// Select returns the placed node for id, including its level and children.
func (t *Tree) Select(id int) (*Node, bool) {
	n, ok := t.index[id]
	return n, ok
}

// Len returns the number of placed nodes.
func (t *Tree) Len() int {
	return len(t.index)
}

// Walk visits every placed node depth-first, parents before children.
func (t *Tree) Walk(fn func(n *Node)) {
	var visit func(nodes []*Node)
	visit = func(nodes []*Node) {
		for _, n := range nodes {
			fn(n)
			visit(n.Children)
		}
	}
	visit(t.Roots)
}
