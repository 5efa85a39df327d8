package ui

import "image/color"

// Painter draws overlay primitives. The graphics backend implements it on top of the window.
type Painter interface {
	FillRect(r Rect, c color.RGBA)
	StrokeRect(r Rect, c color.RGBA)
	Text(s string, x, y, size int32, c color.RGBA)
}

// Engine holds the current stylesheet and the root nodes, lays them out and draws them.
// Top-level nodes are positioned absolutely from left/right/top; their children stack
// vertically inside the parent's padding, separated by gap.
// Resolved styles are cached and only recomputed after Invalidate, SetStylesheet or SetNodes.
type Engine struct {
	sheet      *Stylesheet
	nodes      []*Node
	styles     map[*Node]ComputedStyle
	cacheValid bool
}

// New creates an empty UI engine (no stylesheet, no nodes).
func New() *Engine {
	return &Engine{}
}

// SetStylesheet sets the stylesheet directly (e.g. from embedded CSS).
func (e *Engine) SetStylesheet(sheet *Stylesheet) {
	e.sheet = sheet
	e.cacheValid = false
}

// SetNodes replaces all root nodes. Roots are drawn in order.
func (e *Engine) SetNodes(nodes []*Node) {
	e.nodes = nodes
	e.cacheValid = false
}

// Invalidate drops cached styles, e.g. after a node's classes changed.
func (e *Engine) Invalidate() {
	e.cacheValid = false
}

func (e *Engine) resolveStyles() {
	if e.cacheValid {
		return
	}
	e.styles = make(map[*Node]ComputedStyle)
	for _, root := range e.nodes {
		root.Walk(func(n *Node) {
			e.styles[n] = ResolveProps(e.sheet.Resolve(n))
		})
	}
	e.cacheValid = true
}

// Layout computes Bounds for every node against a screen of the given size.
func (e *Engine) Layout(screenW, screenH int32) {
	e.resolveStyles()
	for _, root := range e.nodes {
		st := e.styles[root]
		w := e.naturalWidth(root)
		x := st.Left
		if st.Right >= 0 {
			x = screenW - w - st.Right
		}
		e.place(root, x, st.Top, w)
	}
}

// naturalWidth is the CSS width, or for containers the widest child plus padding.
func (e *Engine) naturalWidth(n *Node) int32 {
	st := e.styles[n]
	if st.Width > 0 {
		return st.Width
	}
	var widest int32
	for _, c := range n.Children {
		widest = max(widest, e.naturalWidth(c))
	}
	if widest == 0 {
		return 0
	}
	return widest + 2*st.Padding
}

// place sets n's bounds at (x, y) with width w and returns the resulting height.
func (e *Engine) place(n *Node, x, y, w int32) int32 {
	st := e.styles[n]
	inner := w - 2*st.Padding
	cy := y + st.Padding
	for i, c := range n.Children {
		if i > 0 {
			cy += st.Gap
		}
		cw := e.styles[c].Width
		if cw <= 0 {
			cw = inner
		}
		cy += e.place(c, x+st.Padding, cy, cw)
	}
	h := st.Height
	if h <= 0 {
		if len(n.Children) > 0 {
			h = cy - y + st.Padding
		} else {
			h = st.FontSize + 2*st.Padding
		}
	}
	n.Bounds = Rect{X: x, Y: y, W: w, H: h}
	return h
}

// Draw paints every node: background, then 1px border, then text. Parents draw before children.
func (e *Engine) Draw(p Painter) {
	e.resolveStyles()
	for _, root := range e.nodes {
		root.Walk(func(n *Node) {
			st := e.styles[n]
			b := n.Bounds
			if st.Background.A > 0 && b.W > 0 && b.H > 0 {
				p.FillRect(b, st.Background)
			}
			if st.HasBorder && b.W > 0 && b.H > 0 {
				p.StrokeRect(b, st.Border)
			}
			if n.Text != "" {
				p.Text(n.Text, b.X+st.Padding, b.Y+st.Padding, st.FontSize, st.Color)
			}
		})
	}
}

// Click dispatches a click at (x, y) to the topmost node with an OnClick handler under the point.
// It returns whether a handler ran.
func (e *Engine) Click(x, y int32) bool {
	for i := len(e.nodes) - 1; i >= 0; i-- {
		if hit := hitTest(e.nodes[i], x, y); hit != nil {
			hit.OnClick()
			return true
		}
	}
	return false
}

func hitTest(n *Node, x, y int32) *Node {
	if !n.Bounds.Contains(x, y) {
		return nil
	}
	for i := len(n.Children) - 1; i >= 0; i-- {
		if hit := hitTest(n.Children[i], x, y); hit != nil {
			return hit
		}
	}
	if n.OnClick != nil {
		return n
	}
	return nil
}
