package model

import "strings"

// NodeType distinguishes text nodes from element nodes.
type NodeType int

const (
	// TextNode holds character data in Data.
	TextNode NodeType = iota
	// ElementNode holds a tag name in Data and may have children.
	ElementNode
)

// String returns the node type name.
func (t NodeType) String() string {
	switch t {
	case TextNode:
		return "text"
	case ElementNode:
		return "element"
	default:
		return "unknown"
	}
}

// Node is a node of a rendered document tree.
//
// Children are owned by their parent. The parent link is a back-reference
// that is only used for upward scans and is maintained by AppendChild; a node
// can belong to at most one parent.
type Node struct {
	// Type is the node kind.
	Type NodeType

	// Data is the text of a TextNode or the lower-case tag name of an ElementNode.
	Data string

	// Attr holds element attributes. Nil for text nodes.
	Attr map[string]string

	// Children are the child nodes in document order.
	Children []*Node

	parent *Node
}

// NewText creates a text node.
func NewText(text string) *Node {
	return &Node{Type: TextNode, Data: text}
}

// NewElement creates an element node and appends the given children to it.
// The tag name is lower-cased.
func NewElement(tag string, attr map[string]string, children ...*Node) *Node {
	n := &Node{
		Type: ElementNode,
		Data: strings.ToLower(tag),
		Attr: attr,
	}
	for _, c := range children {
		n.AppendChild(c)
	}
	return n
}

// NewLink is a shorthand for an "a" element with the given href and text.
func NewLink(href, text string) *Node {
	return NewElement("a", map[string]string{"href": href}, NewText(text))
}

// AppendChild adds c as the last child of n.
// It panics if c already has a parent or if n is a text node.
func (n *Node) AppendChild(c *Node) {
	if n.Type != ElementNode {
		panic("model: AppendChild called on a text node")
	}
	if c.parent != nil {
		panic("model: AppendChild called for an attached child Node")
	}
	c.parent = n
	n.Children = append(n.Children, c)
}

// Parent returns the parent element, or nil for a root node.
func (n *Node) Parent() *Node {
	return n.parent
}

// IsElement reports whether n is an element with the given tag name.
func (n *Node) IsElement(tag string) bool {
	return n != nil && n.Type == ElementNode && n.Data == tag
}

// GetAttr returns the value of the attribute key and whether it is present.
func (n *Node) GetAttr(key string) (string, bool) {
	if n.Attr == nil {
		return "", false
	}
	v, ok := n.Attr[key]
	return v, ok
}

// Text returns the concatenated text of n and its descendants.
func (n *Node) Text() string {
	var sb strings.Builder
	n.Walk(func(d *Node) bool {
		if d.Type == TextNode {
			sb.WriteString(d.Data)
		}
		return true
	})
	return sb.String()
}

// Walk visits n and its descendants in pre-order. Walking stops as soon as
// fn returns false; Walk then returns false as well.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range n.Children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}

// String renders the node in a compact HTML-like form for diagnostics.
func (n *Node) String() string {
	if n.Type == TextNode {
		return n.Data
	}
	var sb strings.Builder
	sb.WriteString("<")
	sb.WriteString(n.Data)
	if href, ok := n.GetAttr("href"); ok {
		sb.WriteString(` href="`)
		sb.WriteString(href)
		sb.WriteString(`"`)
	}
	sb.WriteString(">")
	sb.WriteString(n.Text())
	sb.WriteString("</")
	sb.WriteString(n.Data)
	sb.WriteString(">")
	return sb.String()
}

// Paragraph is one block-level unit of an article body: an ordered sequence
// of node trees.
type Paragraph []*Node

// Text returns the concatenated text of all trees in the paragraph.
func (p Paragraph) Text() string {
	var sb strings.Builder
	for _, root := range p {
		sb.WriteString(root.Text())
	}
	return sb.String()
}

// Article is a fetched page: its identifier, title and body paragraphs in
// document order.
type Article struct {
	// URL is the canonical identifier the article was fetched under.
	URL string `json:"url"`

	// Title is the article heading, empty when the page has none.
	Title string `json:"title,omitempty"`

	// Digest is the hex SHA3-256 digest of the raw response body.
	Digest string `json:"digest,omitempty"`

	// Paragraphs are the body paragraphs in document order.
	Paragraphs []Paragraph `json:"-"`
}
