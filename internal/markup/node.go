// Package markup turns a structural event stream from an HTML tokenizer into
// an ordered forest of element nodes, applying tag permission filtering and
// entity decoding along the way.
package markup

import "strings"

// NodeKind discriminates the three element node shapes.
type NodeKind int

const (
	// TextNode carries decoded character content and has no children.
	TextNode NodeKind = iota
	// TagNode is a matched start/end pair and owns its children.
	TagNode
	// SelfClosingTagNode is a void element: no children, no end tag.
	SelfClosingTagNode
)

// Node is one element of the parsed forest. Nodes are immutable once the
// parse that produced them returns; the tree has no back-edges.
type Node struct {
	kind     NodeKind
	tag      string
	content  string
	attrs    map[string]string
	children []*Node
}

// NewTextNode builds a standalone text node. Used by callers that need a
// plain-text fallback forest.
func NewTextNode(content string) *Node {
	return &Node{kind: TextNode, content: content}
}

// Kind returns the node's kind.
func (n *Node) Kind() NodeKind { return n.kind }

// TagName returns the lower-cased tag name, or "" for text nodes.
func (n *Node) TagName() string { return n.tag }

// Content returns the character content of a text node.
func (n *Node) Content() string { return n.content }

// Children returns the node's ordered children. The slice must not be
// mutated.
func (n *Node) Children() []*Node { return n.children }

// Attr returns the value of the named attribute and whether it exists.
func (n *Node) Attr(name string) (string, bool) {
	v, ok := n.attrs[name]
	return v, ok
}

// Attributes returns the attribute map as authored. The map must not be
// mutated; it is nil for text nodes and attribute-less tags.
func (n *Node) Attributes() map[string]string { return n.attrs }

// Text returns the concatenated text content of the node's subtree in
// document order.
func (n *Node) Text() string {
	var sb strings.Builder
	n.appendText(&sb)
	return sb.String()
}

func (n *Node) appendText(sb *strings.Builder) {
	if n.kind == TextNode {
		sb.WriteString(n.content)
		return
	}
	for _, c := range n.children {
		c.appendText(sb)
	}
}

// PlainText concatenates the text content of a forest in document order.
func PlainText(forest []*Node) string {
	var sb strings.Builder
	for _, n := range forest {
		n.appendText(&sb)
	}
	return sb.String()
}

// voidTags are the self-closing element names, matched case-insensitively.
var voidTags = map[string]bool{
	"br": true, "hr": true, "img": true, "input": true,
	"area": true, "base": true, "col": true, "embed": true,
	"link": true, "meta": true, "param": true, "source": true,
	"track": true, "wbr": true,
}

// IsVoidTag reports whether name names a self-closing element.
func IsVoidTag(name string) bool {
	return voidTags[strings.ToLower(name)]
}
