package ui

import (
	"image/color"
	"sort"
	"strconv"
	"strings"
)

// Selector is one compound selector: optional element type, required classes, optional id.
type Selector struct {
	Type    string
	ID      string
	Classes []string
}

// Matches reports whether n satisfies every part of the selector.
func (s Selector) Matches(n *Node) bool {
	if s.Type != "" && s.Type != n.Type {
		return false
	}
	if s.ID != "" && s.ID != n.ID {
		return false
	}
	for _, c := range s.Classes {
		if !n.HasClass(c) {
			return false
		}
	}
	return true
}

// Specificity orders rules: ids beat classes beat element types.
func (s Selector) Specificity() int {
	n := len(s.Classes) * 10
	if s.ID != "" {
		n += 100
	}
	if s.Type != "" {
		n++
	}
	return n
}

// Rule is a single selector with its declarations. Order is its position in the sheet.
type Rule struct {
	Selector Selector
	Props    map[string]string
	Order    int
}

// Stylesheet is a list of rules. Higher specificity wins; ties go to the later rule.
type Stylesheet struct {
	Rules []Rule
}

// Resolve merges the declarations of every rule matching n.
func (s *Stylesheet) Resolve(n *Node) map[string]string {
	merged := make(map[string]string)
	if s == nil {
		return merged
	}
	var matched []Rule
	for _, r := range s.Rules {
		if r.Selector.Matches(n) {
			matched = append(matched, r)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		si, sj := matched[i].Selector.Specificity(), matched[j].Selector.Specificity()
		if si != sj {
			return si < sj
		}
		return matched[i].Order < matched[j].Order
	})
	for _, r := range matched {
		for k, v := range r.Props {
			merged[k] = v
		}
	}
	return merged
}

// ComputedStyle holds resolved values used for layout and drawing.
// Right is -1 when unset; when set, the node is placed Right pixels from the right edge and Left is ignored.
// Padding insets text and children; Gap separates stacked children.
type ComputedStyle struct {
	Background color.RGBA
	Color      color.RGBA
	Border     color.RGBA
	HasBorder  bool
	Width      int32
	Height     int32
	Left       int32
	Top        int32
	Right      int32
	Padding    int32
	Gap        int32
	FontSize   int32
}

// DefaultComputedStyle returns a minimal style (transparent background, white text, no border, zero size).
func DefaultComputedStyle() ComputedStyle {
	return ComputedStyle{
		Background: color.RGBA{},
		Color:      color.RGBA{R: 255, G: 255, B: 255, A: 255},
		Border:     color.RGBA{A: 255},
		Right:      -1,
		Padding:    4,
		FontSize:   20,
	}
}

// ParseHexColor parses #RGB or #RRGGBB into an opaque color. Returns black and false on parse error.
func ParseHexColor(s string) (color.RGBA, bool) {
	black := color.RGBA{A: 255}
	s = strings.TrimSpace(s)
	if len(s) < 4 || s[0] != '#' {
		return black, false
	}
	hex := s[1:]
	for i := 0; i < len(hex); i++ {
		if _, ok := hexNibble(hex[i]); !ok {
			return black, false
		}
	}
	nib := func(i int) uint8 {
		v, _ := hexNibble(hex[i])
		return v
	}
	switch len(hex) {
	case 3:
		return color.RGBA{R: nib(0) * 17, G: nib(1) * 17, B: nib(2) * 17, A: 255}, true
	case 6:
		return color.RGBA{R: nib(0)<<4 + nib(1), G: nib(2)<<4 + nib(3), B: nib(4)<<4 + nib(5), A: 255}, true
	}
	return black, false
}

func hexNibble(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// ParsePx parses a number, with optional "px" suffix, to int32. Unitless is treated as pixels.
func ParsePx(s string) (int32, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "px")
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return int32(n), true
}

// ResolveProps builds a ComputedStyle from a merged property map. Invalid values are ignored.
func ResolveProps(props map[string]string) ComputedStyle {
	out := DefaultComputedStyle()
	for k, v := range props {
		v = strings.TrimSpace(v)
		switch k {
		case "background":
			if c, ok := ParseHexColor(v); ok {
				out.Background = c
			}
		case "color":
			if c, ok := ParseHexColor(v); ok {
				out.Color = c
			}
		case "border":
			if c, ok := ParseHexColor(v); ok {
				out.Border = c
				out.HasBorder = true
			}
		case "width":
			if n, ok := ParsePx(v); ok {
				out.Width = n
			}
		case "height":
			if n, ok := ParsePx(v); ok {
				out.Height = n
			}
		case "left":
			if n, ok := ParsePx(v); ok {
				out.Left = n
			}
		case "top":
			if n, ok := ParsePx(v); ok {
				out.Top = n
			}
		case "right":
			if n, ok := ParsePx(v); ok && n >= 0 {
				out.Right = n
			}
		case "padding":
			if n, ok := ParsePx(v); ok && n >= 0 {
				out.Padding = n
			}
		case "gap":
			if n, ok := ParsePx(v); ok && n >= 0 {
				out.Gap = n
			}
		case "font-size":
			if n, ok := ParsePx(v); ok && n > 0 {
				out.FontSize = n
			}
		}
	}
	return out
}
