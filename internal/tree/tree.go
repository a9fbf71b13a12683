// Package tree provides the generic labeled tree that data mode renders.
package tree

// Node is one display node: a text label and its ordered children.
// Child order always matches source iteration order.
type Node struct {
	Label    string
	Children []Node
}

// Leaf returns a node with the given label and no children.
func Leaf(label string) Node {
	return Node{Label: label}
}

// Builder assembles a Node tree incrementally. Begin opens a child
// under the current node, End closes it, and AddLeaf attaches a
// childless node. The zero Builder starts at an unlabeled root.
type Builder struct {
	root  Node
	stack []*Node
}

// NewBuilder creates a builder whose root carries the given label. An
// empty label produces a synthetic root whose own label is suppressed
// at render time.
func NewBuilder(label string) *Builder {
	b := &Builder{root: Node{Label: label}}
	b.stack = []*Node{&b.root}
	return b
}

func (b *Builder) current() *Node {
	return b.stack[len(b.stack)-1]
}

// Begin opens a new child with the given label and makes it current.
func (b *Builder) Begin(label string) {
	cur := b.current()
	cur.Children = append(cur.Children, Node{Label: label})
	b.stack = append(b.stack, &cur.Children[len(cur.Children)-1])
}

// End closes the current child. Ending at the root is a no-op.
func (b *Builder) End() {
	if len(b.stack) > 1 {
		b.stack = b.stack[:len(b.stack)-1]
	}
}

// AddLeaf attaches a childless node under the current node.
func (b *Builder) AddLeaf(label string) {
	cur := b.current()
	cur.Children = append(cur.Children, Leaf(label))
}

// Build returns the finished tree.
func (b *Builder) Build() Node {
	return b.root
}
