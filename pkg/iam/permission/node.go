package permission

import (
	"strings"
)

// NodeKind discriminates the two shapes a tree node can take
type NodeKind int

const (
	KindLeaf NodeKind = iota
	KindCategory
)

// Node is one node of a role's capability tree: either a boolean Leaf or a
// Category holding named children. A Category's Enabled flag gates every
// descendant at evaluation time, not just in the UI.
type Node struct {
	Kind NodeKind

	// Leaf
	Value bool

	// Category
	Children map[string]*Node
	Enabled  bool
	Visible  bool
}

// NewLeaf creates a leaf node holding a capability flag
func NewLeaf(value bool) *Node {
	return &Node{Kind: KindLeaf, Value: value}
}

// NewCategory creates an empty category. Enabled and Visible default to true;
// a category that gates nothing off is the common case.
func NewCategory() *Node {
	return &Node{
		Kind:     KindCategory,
		Children: make(map[string]*Node),
		Enabled:  true,
		Visible:  true,
	}
}

// IsLeaf reports whether the node is a boolean leaf
func (n *Node) IsLeaf() bool {
	return n.Kind == KindLeaf
}

// Child adds or replaces a named child and returns the category for chaining
func (n *Node) Child(name string, child *Node) *Node {
	if n.Children == nil {
		n.Children = make(map[string]*Node)
	}
	n.Children[name] = child
	return n
}

// ============================================================================
// Evaluation
// ============================================================================

// Get resolves the effective value at path. A stored leaf value of true is
// still false when any ancestor category along the path is disabled; that
// cascade is enforced here, at evaluation, so no caller can bypass it by
// reading the raw leaf.
func (n *Node) Get(path ...string) (bool, error) {
	if len(path) == 0 {
		return false, ErrPathNotFound().WithDetail("path", "")
	}

	current := n
	for depth, key := range path {
		if current.IsLeaf() {
			// Leaf reached before the path was consumed
			return false, ErrPathNotFound().WithDetail("path", strings.Join(path[:depth+1], "."))
		}
		if !current.Enabled {
			return false, nil
		}
		next, ok := current.Children[key]
		if !ok {
			return false, ErrPathNotFound().WithDetail("path", strings.Join(path[:depth+1], "."))
		}
		current = next
	}

	if !current.IsLeaf() {
		return false, ErrPathNotFound().WithDetail("path", strings.Join(path, "."))
	}
	return current.Value, nil
}

// ============================================================================
// Mutation (copy-on-write)
// ============================================================================

// Set returns a tree with the leaf at path updated. The receiver is never
// mutated: nodes along the path are copied, untouched siblings are shared.
// Callers holding the old tree keep seeing the old values.
func (n *Node) Set(path []string, value bool) (*Node, error) {
	if len(path) == 0 {
		return nil, ErrPathNotFound().WithDetail("path", "")
	}
	return n.setRec(path, 0, value)
}

func (n *Node) setRec(path []string, depth int, value bool) (*Node, error) {
	if depth == len(path) {
		if !n.IsLeaf() {
			return nil, ErrPathNotFound().WithDetail("path", strings.Join(path, "."))
		}
		return NewLeaf(value), nil
	}

	if n.IsLeaf() {
		return nil, ErrPathNotFound().WithDetail("path", strings.Join(path[:depth+1], "."))
	}

	child, ok := n.Children[path[depth]]
	if !ok {
		return nil, ErrPathNotFound().WithDetail("path", strings.Join(path[:depth+1], "."))
	}

	newChild, err := child.setRec(path, depth+1, value)
	if err != nil {
		return nil, err
	}

	copied := &Node{
		Kind:     KindCategory,
		Children: make(map[string]*Node, len(n.Children)),
		Enabled:  n.Enabled,
		Visible:  n.Visible,
	}
	for name, c := range n.Children {
		copied.Children[name] = c
	}
	copied.Children[path[depth]] = newChild
	return copied, nil
}

// SetMeta returns a tree with the category at path updated to the given
// enabled/visible flags. An empty path addresses the root category.
func (n *Node) SetMeta(path []string, enabled, visible bool) (*Node, error) {
	if n.IsLeaf() {
		return nil, ErrPathNotFound().WithDetail("path", strings.Join(path, "."))
	}

	if len(path) == 0 {
		copied := &Node{
			Kind:     KindCategory,
			Children: make(map[string]*Node, len(n.Children)),
			Enabled:  enabled,
			Visible:  visible,
		}
		for name, c := range n.Children {
			copied.Children[name] = c
		}
		return copied, nil
	}

	child, ok := n.Children[path[0]]
	if !ok {
		return nil, ErrPathNotFound().WithDetail("path", path[0])
	}

	newChild, err := child.SetMeta(path[1:], enabled, visible)
	if err != nil {
		return nil, err
	}

	copied := &Node{
		Kind:     KindCategory,
		Children: make(map[string]*Node, len(n.Children)),
		Enabled:  n.Enabled,
		Visible:  n.Visible,
	}
	for name, c := range n.Children {
		copied.Children[name] = c
	}
	copied.Children[path[0]] = newChild
	return copied, nil
}

// ============================================================================
// Cloning
// ============================================================================

// Clone produces a fully independent deep copy. Role templates are cloned
// before assignment so no two roles ever share a subtree in memory.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	if n.IsLeaf() {
		return NewLeaf(n.Value)
	}
	copied := &Node{
		Kind:     KindCategory,
		Children: make(map[string]*Node, len(n.Children)),
		Enabled:  n.Enabled,
		Visible:  n.Visible,
	}
	for name, child := range n.Children {
		copied.Children[name] = child.Clone()
	}
	return copied
}

// Paths returns every leaf path in the tree, in no particular order
func (n *Node) Paths() [][]string {
	var out [][]string
	n.collectPaths(nil, &out)
	return out
}

func (n *Node) collectPaths(prefix []string, out *[][]string) {
	if n.IsLeaf() {
		path := make([]string, len(prefix))
		copy(path, prefix)
		*out = append(*out, path)
		return
	}
	for name, child := range n.Children {
		child.collectPaths(append(prefix, name), out)
	}
}
