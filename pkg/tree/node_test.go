package tree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/lupos-tmpl-typer/pkg/tree"
)

func textNode(s string) *tree.Node {
	return &tree.Node{Type: tree.TextNode, Text: s}
}

func names(nodes []*tree.Node) []string {
	var out []string
	for _, n := range nodes {
		out = append(out, n.Text)
	}
	return out
}

func TestSiblingNavigation(t *testing.T) {
	root := tree.NewRoot()
	a, b, c := textNode("a"), textNode("b"), textNode("c")
	root.Append(a, b, c)

	assert.Nil(t, a.PreviousSibling())
	assert.Same(t, a, b.PreviousSibling())
	assert.Same(t, c, b.NextSibling())
	assert.Nil(t, c.NextSibling())
	assert.Same(t, a, root.FirstChild())
	assert.Same(t, c, root.LastChild())
}

func TestInsertions(t *testing.T) {
	root := tree.NewRoot()
	b := textNode("b")
	root.Append(b)

	b.Before(textNode("a"))
	b.After(textNode("c"))
	root.Prepend(textNode("0"))

	assert.Equal(t, []string{"0", "a", "b", "c"}, names(root.Children))
	for _, c := range root.Children {
		assert.Same(t, root, c.Parent)
	}
}

func TestAppendDetachesFromOldParent(t *testing.T) {
	p1 := tree.NewRoot()
	p2 := tree.NewRoot()
	n := textNode("n")

	p1.Append(n)
	p2.Append(n)

	assert.Empty(t, p1.Children)
	assert.Same(t, p2, n.Parent)
}

func TestReplaceWith(t *testing.T) {
	root := tree.NewRoot()
	a, b, c := textNode("a"), textNode("b"), textNode("c")
	root.Append(a, b, c)

	b.ReplaceWith(textNode("x"), textNode("y"))

	assert.Equal(t, []string{"a", "x", "y", "c"}, names(root.Children))
	assert.Nil(t, b.Parent)
}

func TestRemoveSelf(t *testing.T) {
	root := tree.NewRoot()
	wrapper := &tree.Node{Type: tree.TagNode, TagName: "w"}
	root.Append(textNode("a"), wrapper, textNode("d"))
	wrapper.Append(textNode("b"), textNode("c"))

	wrapper.RemoveSelf()

	assert.Equal(t, []string{"a", "b", "c", "d"}, names(root.Children))
	for _, c := range root.Children {
		assert.Same(t, root, c.Parent)
	}
}

func TestWrapWith(t *testing.T) {
	root := tree.NewRoot()
	n := textNode("n")
	root.Append(n)

	wrapper := &tree.Node{Type: tree.TagNode, TagName: "w"}
	n.WrapWith(wrapper)

	require.Len(t, root.Children, 1)
	assert.Same(t, wrapper, root.Children[0])
	require.Len(t, wrapper.Children, 1)
	assert.Same(t, n, wrapper.Children[0])
}

func TestWrapChildrenWith(t *testing.T) {
	root := tree.NewRoot()
	root.Append(textNode("a"), textNode("b"))

	wrapper := &tree.Node{Type: tree.TagNode, TagName: "w"}
	root.WrapChildrenWith(wrapper)

	require.Len(t, root.Children, 1)
	assert.Same(t, wrapper, root.Children[0])
	assert.Equal(t, []string{"a", "b"}, names(wrapper.Children))
}

func TestWalk(t *testing.T) {
	root := tree.NewRoot()
	div := &tree.Node{Type: tree.TagNode, TagName: "div"}
	root.Append(div)
	div.Append(textNode("a"), textNode("b"))

	var visited []tree.NodeType
	root.Walk(func(n *tree.Node) bool {
		visited = append(visited, n.Type)
		return true
	})
	assert.Equal(t, []tree.NodeType{tree.RootNode, tree.TagNode, tree.TextNode, tree.TextNode}, visited)

	// Returning false prunes the subtree.
	count := 0
	root.Walk(func(n *tree.Node) bool {
		count++
		return n.Type != tree.TagNode
	})
	assert.Equal(t, 2, count)
}
