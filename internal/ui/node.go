package ui

import "slices"

// Rect is an axis-aligned screen rectangle in pixels.
type Rect struct {
	X, Y, W, H int32
}

// Contains reports whether (x, y) lies inside r. The right and bottom edges are exclusive.
func (r Rect) Contains(x, y int32) bool {
	return x >= r.X && y >= r.Y && x < r.X+r.W && y < r.Y+r.H
}

// Node is a single UI element: panel, button, label. Classes and ID are matched by CSS;
// Bounds is filled in by Engine.Layout. OnClick, when set, makes the node a click target.
type Node struct {
	Type     string
	ID       string
	Classes  []string
	Text     string
	Children []*Node
	OnClick  func()
	Bounds   Rect
}

// NewNode creates a node with type, optional id, text and classes.
func NewNode(typ, id, text string, classes ...string) *Node {
	return &Node{Type: typ, ID: id, Text: text, Classes: classes}
}

// Add appends children and returns n for chaining.
func (n *Node) Add(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// HasClass reports whether n carries class c.
func (n *Node) HasClass(c string) bool {
	return slices.Contains(n.Classes, c)
}

// SetClass adds or removes class c. It returns true when the class list changed.
func (n *Node) SetClass(c string, on bool) bool {
	i := slices.Index(n.Classes, c)
	switch {
	case on && i < 0:
		n.Classes = append(n.Classes, c)
		return true
	case !on && i >= 0:
		n.Classes = slices.Delete(n.Classes, i, i+1)
		return true
	}
	return false
}

// Walk visits n and its descendants depth-first, parents before children.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Find returns the first node in the subtree with the given id.
func (n *Node) Find(id string) *Node {
	if n.ID == id {
		return n
	}
	for _, c := range n.Children {
		if f := c.Find(id); f != nil {
			return f
		}
	}
	return nil
}
