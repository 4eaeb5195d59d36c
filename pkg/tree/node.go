// Package tree builds and manipulates the mutable node tree reconstructed
// from the scanner's flat token stream.
package tree

// NodeType discriminates the tagged union of tree elements.
type NodeType int

const (
	RootNode NodeType = iota
	TagNode
	TextNode
	CommentNode
)

func (t NodeType) String() string {
	switch t {
	case RootNode:
		return "Root"
	case TagNode:
		return "Tag"
	case TextNode:
		return "Text"
	case CommentNode:
		return "Comment"
	default:
		return "Unknown"
	}
}

// Node is one element of the template tree. A parent exclusively owns its
// children; Parent is a non-owning back-reference used only for navigation.
// Children order is insertion order and is semantically meaningful: sibling
// lookup for flow-control chaining depends on it.
type Node struct {
	Type    NodeType
	TagName string

	// Text holds trimmed content for text nodes and verbatim content for
	// comments. Desc keeps the original untrimmed text so placeholder
	// round-tripping can recover exact slot spans.
	Text string
	Desc string

	Attributes []*Attribute
	Children   []*Node
	Parent     *Node

	// SelfClosed records an explicit "/>" closure, as opposed to closure
	// via the void element table.
	SelfClosed bool

	Start      int
	End        int
	TagStart   int
	TagEnd     int
	NameStart  int
	NameEnd    int
	ClosureEnd int
}

// Attribute is one attribute of a tag node. Value has quotes stripped and
// escape sequences resolved; RawValue is the source text including quotes.
// Removed is a soft delete: the attribute stays in the list for diagnostic
// lookups but is excluded from serialization.
type Attribute struct {
	Name     string
	RawValue string
	Value    string
	Quoted   bool

	Start      int
	End        int
	NameStart  int
	NameEnd    int
	ValueStart int
	ValueEnd   int

	Removed bool
}

func NewRoot() *Node {
	return &Node{Type: RootNode}
}

// Attr returns the named attribute, including removed ones.
func (n *Node) Attr(name string) *Attribute {
	for _, a := range n.Attributes {
		if a.Name == name {
			return a
		}
	}
	return nil
}

func (n *Node) FirstChild() *Node {
	if len(n.Children) == 0 {
		return nil
	}
	return n.Children[0]
}

func (n *Node) LastChild() *Node {
	if len(n.Children) == 0 {
		return nil
	}
	return n.Children[len(n.Children)-1]
}

// childIndex returns n's position in its parent's child list, or -1 for the
// root.
func (n *Node) childIndex() int {
	if n.Parent == nil {
		return -1
	}
	for i, c := range n.Parent.Children {
		if c == n {
			return i
		}
	}
	return -1
}

func (n *Node) PreviousSibling() *Node {
	if i := n.childIndex(); i > 0 {
		return n.Parent.Children[i-1]
	}
	return nil
}

func (n *Node) NextSibling() *Node {
	if i := n.childIndex(); i >= 0 && i+1 < len(n.Parent.Children) {
		return n.Parent.Children[i+1]
	}
	return nil
}

// Append adds children at the end of n's child list, detaching them from any
// previous parent.
func (n *Node) Append(children ...*Node) {
	for _, c := range children {
		c.detach()
		c.Parent = n
		n.Children = append(n.Children, c)
	}
}

// Prepend adds children at the front of n's child list.
func (n *Node) Prepend(children ...*Node) {
	for i := len(children) - 1; i >= 0; i-- {
		c := children[i]
		c.detach()
		c.Parent = n
		n.Children = append([]*Node{c}, n.Children...)
	}
}

// Before inserts siblings immediately before n in its parent's child list.
func (n *Node) Before(siblings ...*Node) {
	i := n.childIndex()
	if i < 0 {
		return
	}
	n.Parent.insertAt(i, siblings...)
}

// After inserts siblings immediately after n in its parent's child list.
func (n *Node) After(siblings ...*Node) {
	i := n.childIndex()
	if i < 0 {
		return
	}
	n.Parent.insertAt(i+1, siblings...)
}

func (n *Node) insertAt(i int, nodes ...*Node) {
	for _, c := range nodes {
		c.detach()
		c.Parent = n
	}
	rest := make([]*Node, len(n.Children[i:]))
	copy(rest, n.Children[i:])
	n.Children = append(n.Children[:i], append(nodes, rest...)...)
}

// Remove detaches n and its subtree from the parent.
func (n *Node) Remove() {
	n.detach()
}

// RemoveSelf splices n's children into the parent at n's position,
// flattening one level. Used when flow-control wrapper elements are
// unwrapped into comment markers.
func (n *Node) RemoveSelf() {
	i := n.childIndex()
	if i < 0 {
		return
	}
	parent := n.Parent
	children := n.Children
	n.Children = nil
	n.detach()
	for _, c := range children {
		c.Parent = parent
	}
	rest := make([]*Node, len(parent.Children[i:]))
	copy(rest, parent.Children[i:])
	parent.Children = append(parent.Children[:i], append(children, rest...)...)
}

// ReplaceWith substitutes others for n in the parent's child list.
func (n *Node) ReplaceWith(others ...*Node) {
	i := n.childIndex()
	if i < 0 {
		return
	}
	parent := n.Parent
	n.detach()
	parent.insertAt(i, others...)
}

// WrapWith puts wrapper in n's place and moves n inside it.
func (n *Node) WrapWith(wrapper *Node) {
	i := n.childIndex()
	if i < 0 {
		return
	}
	parent := n.Parent
	n.detach()
	parent.insertAt(i, wrapper)
	wrapper.Append(n)
}

// WrapChildrenWith moves all of n's children into wrapper and makes wrapper
// the sole child.
func (n *Node) WrapChildrenWith(wrapper *Node) {
	children := n.Children
	n.Children = nil
	n.Append(wrapper)
	for _, c := range children {
		if c != wrapper {
			wrapper.Append(c)
		}
	}
}

func (n *Node) detach() {
	if n.Parent == nil {
		return
	}
	p := n.Parent
	for i, c := range p.Children {
		if c == n {
			p.Children = append(p.Children[:i], p.Children[i+1:]...)
			break
		}
	}
	n.Parent = nil
}

// Walk visits n and its descendants depth-first, parent before children.
// Returning false from visit skips the node's children.
func (n *Node) Walk(visit func(*Node) bool) {
	if !visit(n) {
		return
	}
	// Children may be mutated by later passes but not during a plain walk;
	// iterate over a snapshot to stay safe against appends.
	children := make([]*Node, len(n.Children))
	copy(children, n.Children)
	for _, c := range children {
		c.Walk(visit)
	}
}
