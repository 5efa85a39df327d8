package ui

import (
	"image/color"
	"reflect"
	"testing"
)

func TestParseSelector(t *testing.T) {
	cases := []struct {
		raw  string
		want Selector
		ok   bool
	}{
		{"button", Selector{Type: "button"}, true},
		{".panel", Selector{Classes: []string{"panel"}}, true},
		{"#catalog", Selector{ID: "catalog"}, true},
		{"button.toggle.on", Selector{Type: "button", Classes: []string{"toggle", "on"}}, true},
		{"panel#left.dark", Selector{Type: "panel", ID: "left", Classes: []string{"dark"}}, true},
		{"", Selector{}, false},
		{".panel button", Selector{}, false},
		{"a > b", Selector{}, false},
		{"button:hover", Selector{}, false},
		{"#a#b", Selector{}, false},
		{"button.", Selector{}, false},
	}
	for _, tc := range cases {
		got, ok := ParseSelector(tc.raw)
		if ok != tc.ok {
			t.Fatalf("ParseSelector(%q) ok = %v, want %v", tc.raw, ok, tc.ok)
		}
		if ok && !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("ParseSelector(%q) = %+v, want %+v", tc.raw, got, tc.want)
		}
	}
}

func TestParseCSS(t *testing.T) {
	css := `
/* panels */
.panel { background: #222; padding: 8px }
button, .toggle { color: #ffffff; }
.panel button { color: #000; }
#title { font-size: 24px; Width: 100 }
`
	sheet, err := ParseCSS(css)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(sheet.Rules) != 4 {
		t.Fatalf("expected 4 rules (descendant block skipped), got %d", len(sheet.Rules))
	}
	if sheet.Rules[0].Props["padding"] != "8px" {
		t.Fatalf("padding = %q", sheet.Rules[0].Props["padding"])
	}
	if sheet.Rules[3].Props["width"] != "100" {
		t.Fatalf("keys should be lowercased: %+v", sheet.Rules[3].Props)
	}
	for i, r := range sheet.Rules {
		if r.Order != i {
			t.Fatalf("rule %d has order %d", i, r.Order)
		}
	}
}

func TestParseCSSSkipsAtRules(t *testing.T) {
	sheet, err := ParseCSS(`
@media (min-width: 800px) { .panel { width: 300px; } }
@import "other.css";
.panel { width: 200px; /* inline */ gap: 4px }
`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(sheet.Rules) != 1 {
		t.Fatalf("expected only the top-level rule, got %d", len(sheet.Rules))
	}
	if got := sheet.Rules[0].Props; got["width"] != "200px" || got["gap"] != "4px" {
		t.Fatalf("props %v", got)
	}
}

func TestParseCSSReportsMalformedDeclarations(t *testing.T) {
	sheet, err := ParseCSS(`button { width 100px; height: 30px; } .panel { gap: 2; }`)
	if err == nil {
		t.Fatalf("expected error for declaration without colon")
	}
	if len(sheet.Rules) != 2 {
		t.Fatalf("valid rules should survive, got %d", len(sheet.Rules))
	}
	if got := sheet.Rules[0].Props; got["height"] != "30px" || got["width"] != "" {
		t.Fatalf("props %v", got)
	}
}

func TestStylesheetSpecificity(t *testing.T) {
	sheet, _ := ParseCSS(`
#go { color: #f00; }
button.on { color: #0f0; }
button { color: #00f; }
.on { color: #fff; }
`)
	n := NewNode("button", "go", "Go", "on")
	if got := sheet.Resolve(n)["color"]; got != "#f00" {
		t.Fatalf("id should win, got %s", got)
	}
	n.ID = ""
	if got := sheet.Resolve(n)["color"]; got != "#0f0" {
		t.Fatalf("type+class should win, got %s", got)
	}
	m := NewNode("label", "", "", "on")
	if got := sheet.Resolve(m)["color"]; got != "#fff" {
		t.Fatalf("class rule expected, got %s", got)
	}
	sheet2, _ := ParseCSS(`.a { color: #111; } .a { color: #222; }`)
	if got := sheet2.Resolve(NewNode("x", "", "", "a"))["color"]; got != "#222" {
		t.Fatalf("later rule should win ties, got %s", got)
	}
}

func TestParseHexColor(t *testing.T) {
	if c, ok := ParseHexColor("#1a1a2e"); !ok || c != (color.RGBA{R: 0x1a, G: 0x1a, B: 0x2e, A: 255}) {
		t.Fatalf("got %v %v", c, ok)
	}
	if c, ok := ParseHexColor("#fa0"); !ok || c != (color.RGBA{R: 0xff, G: 0xaa, B: 0x00, A: 255}) {
		t.Fatalf("got %v %v", c, ok)
	}
	for _, bad := range []string{"", "red", "#12", "#12345", "#ggg"} {
		if _, ok := ParseHexColor(bad); ok {
			t.Fatalf("%q should not parse", bad)
		}
	}
}

func TestResolveProps(t *testing.T) {
	st := ResolveProps(map[string]string{
		"width": "120px", "right": "10", "padding": "6px", "gap": "3",
		"border": "#444", "font-size": "bogus",
	})
	if st.Width != 120 || st.Right != 10 || st.Padding != 6 || st.Gap != 3 {
		t.Fatalf("unexpected style %+v", st)
	}
	if !st.HasBorder {
		t.Fatalf("border should be set")
	}
	if st.FontSize != DefaultComputedStyle().FontSize {
		t.Fatalf("invalid font-size should keep default")
	}
}

func testEngine(t *testing.T) (*Engine, *Node, *Node, *Node) {
	t.Helper()
	sheet, err := ParseCSS(`
.panel { top: 10; padding: 5; gap: 2; }
#left { left: 10; }
#right { right: 10; }
button { width: 100; height: 30; }
`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	e := New()
	e.SetStylesheet(sheet)
	a := NewNode("button", "a", "A")
	b := NewNode("button", "b", "B")
	left := NewNode("panel", "left", "", "panel").Add(a, b)
	right := NewNode("panel", "right", "", "panel").Add(NewNode("button", "c", "C"))
	e.SetNodes([]*Node{left, right})
	return e, left, a, right
}

func TestLayout(t *testing.T) {
	e, left, a, right := testEngine(t)
	e.Layout(800, 600)
	if left.Bounds != (Rect{X: 10, Y: 10, W: 110, H: 72}) {
		t.Fatalf("left bounds %+v", left.Bounds)
	}
	if a.Bounds != (Rect{X: 15, Y: 15, W: 100, H: 30}) {
		t.Fatalf("a bounds %+v", a.Bounds)
	}
	b := left.Find("b")
	if b.Bounds.Y != 47 {
		t.Fatalf("b should stack below a with gap, got y=%d", b.Bounds.Y)
	}
	if right.Bounds.X != 800-110-10 {
		t.Fatalf("right panel x = %d", right.Bounds.X)
	}
}

type recordingPainter struct {
	fills, strokes int
	texts          []string
}

func (p *recordingPainter) FillRect(Rect, color.RGBA)   { p.fills++ }
func (p *recordingPainter) StrokeRect(Rect, color.RGBA) { p.strokes++ }
func (p *recordingPainter) Text(s string, _, _, _ int32, _ color.RGBA) {
	p.texts = append(p.texts, s)
}

func TestDraw(t *testing.T) {
	e, _, _, _ := testEngine(t)
	sheet, err := ParseCSS(`
.panel { top: 10; padding: 5; gap: 2; background: #000; border: #fff; }
#left { left: 10; }
#right { right: 10; }
button { width: 100; height: 30; }
`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	e.SetStylesheet(sheet)
	e.Layout(800, 600)
	p := &recordingPainter{}
	e.Draw(p)
	if p.fills != 2 || p.strokes != 2 {
		t.Fatalf("fills=%d strokes=%d", p.fills, p.strokes)
	}
	if !reflect.DeepEqual(p.texts, []string{"A", "B", "C"}) {
		t.Fatalf("texts %v", p.texts)
	}
}

func TestClick(t *testing.T) {
	e, left, a, _ := testEngine(t)
	var clicked []string
	a.OnClick = func() { clicked = append(clicked, "a") }
	left.OnClick = func() { clicked = append(clicked, "panel") }
	e.Layout(800, 600)
	if !e.Click(20, 20) {
		t.Fatalf("click on a not handled")
	}
	if !e.Click(12, 80) {
		t.Fatalf("click on panel padding not handled")
	}
	if e.Click(400, 400) {
		t.Fatalf("click on empty space should not be handled")
	}
	if !reflect.DeepEqual(clicked, []string{"a", "panel"}) {
		t.Fatalf("clicked %v", clicked)
	}
}

func TestInvalidateAfterClassChange(t *testing.T) {
	sheet, _ := ParseCSS(`button { height: 20; } button.active { height: 40; }`)
	e := New()
	e.SetStylesheet(sheet)
	n := NewNode("button", "", "x")
	e.SetNodes([]*Node{n})
	e.Layout(100, 100)
	if n.Bounds.H != 20 {
		t.Fatalf("h = %d", n.Bounds.H)
	}
	if !n.SetClass("active", true) || n.SetClass("active", true) {
		t.Fatalf("SetClass should report change only once")
	}
	e.Invalidate()
	e.Layout(100, 100)
	if n.Bounds.H != 40 {
		t.Fatalf("h after invalidate = %d", n.Bounds.H)
	}
}

func TestState(t *testing.T) {
	s := NewState(false)
	var seen []bool
	stop := s.Watch(func(v bool) { seen = append(seen, v) })
	s.Set(true)
	s.Set(true)
	s.Update(func(v bool) bool { return !v })
	stop()
	stop()
	s.Set(true)
	if !reflect.DeepEqual(seen, []bool{false, true, false}) {
		t.Fatalf("seen %v", seen)
	}
	if !s.Get() {
		t.Fatalf("Get after Set(true) = false")
	}
}

func TestScope(t *testing.T) {
	var s Scope
	var log []string
	if !s.Mount(func(s *Scope) {
		s.Defer(func() { log = append(log, "first") })
		s.Defer(func() { log = append(log, "second") })
	}) {
		t.Fatalf("first mount should run")
	}
	if s.Mount(func(*Scope) { log = append(log, "again") }) {
		t.Fatalf("second mount should be ignored")
	}
	if !s.Mounted() {
		t.Fatalf("scope should be mounted")
	}
	s.Unmount()
	s.Unmount()
	if !reflect.DeepEqual(log, []string{"second", "first"}) {
		t.Fatalf("log %v", log)
	}
	if s.Mounted() {
		t.Fatalf("scope still mounted")
	}
}
