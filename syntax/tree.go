package syntax

import (
	"fmt"
	"strings"
)

// Key identifies a node inside a Tree.
type Key int

// RootKey is the key of the Grammar node every successful parse produces.
const RootKey Key = 0

// Node is a single production in the parse tree. It stores byte offsets
// into the source it was parsed from, never the text itself.
type Node struct {
	Rule     Rule
	Start    int
	End      int
	Children []Key
}

// Len returns the number of source bytes the node spans.
func (n Node) Len() int {
	return n.End - n.Start
}

// Tree is an arena of nodes addressed by Key. A Tree is never modified
// once Parse returns it.
type Tree struct {
	nodes []Node
}

// Node returns the node stored under k. It panics if k is out of range.
func (t *Tree) Node(k Key) Node {
	return t.nodes[k]
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Children returns the child keys of k in document order.
func (t *Tree) Children(k Key) []Key {
	return t.nodes[k].Children
}

// Text returns the source text spanned by k.
func (t *Tree) Text(source []byte, k Key) string {
	n := t.nodes[k]
	return string(source[n.Start:n.End])
}

// FirstChildOfRule returns the first child of k with the given rule.
func (t *Tree) FirstChildOfRule(k Key, rule Rule) (Key, bool) {
	for _, c := range t.nodes[k].Children {
		if t.nodes[c].Rule == rule {
			return c, true
		}
	}
	return 0, false
}

// ChildrenOfRule returns every child of k with the given rule.
func (t *Tree) ChildrenOfRule(k Key, rule Rule) []Key {
	var result []Key
	for _, c := range t.nodes[k].Children {
		if t.nodes[c].Rule == rule {
			result = append(result, c)
		}
	}
	return result
}

// Walk visits k and its descendants depth first. Returning false from fn
// skips the children of the visited node.
func (t *Tree) Walk(k Key, fn func(k Key, depth int) bool) {
	t.walk(k, 0, fn)
}

func (t *Tree) walk(k Key, depth int, fn func(Key, int) bool) {
	if !fn(k, depth) {
		return
	}
	for _, c := range t.nodes[k].Children {
		t.walk(c, depth+1, fn)
	}
}

// Dump renders the tree as an indented outline, one node per line. Leaf
// nodes also print their source text.
func (t *Tree) Dump(source []byte) string {
	var sb strings.Builder
	t.Walk(RootKey, func(k Key, depth int) bool {
		n := t.nodes[k]
		sb.WriteString(strings.Repeat("  ", depth))
		fmt.Fprintf(&sb, "%s [%d-%d]", n.Rule, n.Start, n.End)
		if len(n.Children) == 0 {
			fmt.Fprintf(&sb, " %q", source[n.Start:n.End])
		}
		sb.WriteByte('\n')
		return true
	})
	return sb.String()
}

func (t *Tree) add(rule Rule, start, end int) Key {
	t.nodes = append(t.nodes, Node{Rule: rule, Start: start, End: end})
	return Key(len(t.nodes) - 1)
}

func (t *Tree) attach(parent, child Key) {
	t.nodes[parent].Children = append(t.nodes[parent].Children, child)
}

func (t *Tree) setEnd(k Key, end int) {
	t.nodes[k].End = end
}
