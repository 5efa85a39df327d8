package viewer

import (
	"errors"
	"image/color"
	"math"
	"reflect"
	"strconv"
	"strings"
	"testing"

	"shape-viewer/internal/engine/enginetest"
	"shape-viewer/internal/geometry"
	"shape-viewer/internal/host"
	"shape-viewer/internal/logger"
	"shape-viewer/internal/prefs"
	"shape-viewer/internal/primitives"
	"shape-viewer/internal/scene"
	"shape-viewer/internal/ui"
)

type journalScheduler struct {
	*host.FrameQueue
	j *enginetest.Journal
}

func (s journalScheduler) CancelFrame(id host.FrameID) {
	s.j.Record("cancel frame")
	s.FrameQueue.CancelFrame(id)
}

type journalEvents struct {
	*host.Window
	j *enginetest.Journal
}

func (e journalEvents) RemoveResizeListener(id host.ListenerID) {
	e.j.Record("remove resize listener")
	e.Window.RemoveResizeListener(id)
}

type fixture struct {
	dev       *enginetest.Device
	frames    *host.FrameQueue
	window    *host.Window
	container *host.StaticContainer
	store     prefs.Store
	log       *logger.Logger
	app       *App
}

func newFixture(t *testing.T, store prefs.Store) *fixture {
	t.Helper()
	f := &fixture{
		dev:       enginetest.NewDevice(),
		frames:    host.NewFrameQueue(),
		window:    host.NewWindow(),
		container: &host.StaticContainer{Width: 1024, Height: 768},
		store:     store,
		log:       logger.New(""),
	}
	f.app = New(Options{
		Store:     store,
		Catalog:   primitives.New(f.dev),
		Device:    f.dev,
		Scheduler: journalScheduler{FrameQueue: f.frames, j: f.dev.Journal},
		Events:    journalEvents{Window: f.window, j: f.dev.Journal},
		Logger:    f.log,
	})
	return f
}

func (f *fixture) renderer(t *testing.T) *enginetest.Renderer {
	t.Helper()
	if len(f.dev.Renderers) != 1 {
		t.Fatalf("expected one renderer, got %d", len(f.dev.Renderers))
	}
	return f.dev.Renderers[0]
}

func stored(t *testing.T, s prefs.Store, key string) string {
	t.Helper()
	v, ok, err := s.GetItem(key)
	if err != nil || !ok {
		t.Fatalf("GetItem(%s) = %q, %v, %v", key, v, ok, err)
	}
	return v
}

func TestEndToEnd(t *testing.T) {
	f := newFixture(t, prefs.NewMemoryStore())
	f.app.Mount(f.container)

	snap := f.app.Snapshot()
	if !snap.Mounted || snap.Shape != "Cubo" || snap.Wireframe || !snap.AutoRotate {
		t.Fatalf("unexpected initial state %+v", snap)
	}
	h := f.app.Scene().Handles()
	cube := h.Mesh.Geometry
	if cube.Geometry().Kind != geometry.KindBox {
		t.Fatalf("default shape is %s", cube.Geometry().Kind)
	}
	children := h.Scene.Children()

	if !f.app.SelectShape("Esfera") {
		t.Fatalf("SelectShape(Esfera) returned false")
	}
	sphere := h.Mesh.Geometry
	buf := sphere.Geometry()
	if buf.Kind != geometry.KindSphere || buf.Params["widthSegments"] != 32 || buf.Params["heightSegments"] != 16 {
		t.Fatalf("unexpected sphere %s %v", buf.Kind, buf.Params)
	}
	if !cube.Disposed() || enginetest.ShapeHandle(cube).Released != 1 {
		t.Fatalf("cube not released exactly once")
	}
	if !reflect.DeepEqual(h.Scene.Children(), children) || f.app.Scene().Handles().Camera != h.Camera {
		t.Fatalf("camera, lights or helpers changed on replace")
	}

	f.app.ToggleWireframe()
	if !h.Mesh.Material.Wireframe || !h.Mesh.Material.NeedsUpdate {
		t.Fatalf("material not forced to wireframe")
	}
	f.frames.Tick()
	d, ok := f.renderer(t).LastDraw()
	if !ok || d.Shape != sphere || !d.Wireframe {
		t.Fatalf("draw after toggle %+v", d)
	}
	if h.Mesh.Material.NeedsUpdate {
		t.Fatalf("draw did not acknowledge the material update")
	}

	material := h.Mesh.Material
	f.dev.Journal.Reset()
	f.app.Unmount()
	f.app.Unmount()
	want := []string{
		"remove resize listener",
		"cancel frame",
		"renderer dispose",
		"release shape#" + strconv.Itoa(enginetest.ShapeHandle(sphere).ID),
		"release material#" + strconv.Itoa(enginetest.MaterialHandle(material).ID),
	}
	if got := f.dev.Journal.Events(); !reflect.DeepEqual(got, want) {
		t.Fatalf("teardown: want %v, got %v", want, got)
	}
	if h.Scene.Len() != 0 {
		t.Fatalf("scene not cleared")
	}
	if f.app.Mounted() {
		t.Fatalf("still mounted")
	}
}

func TestMountTwiceInitializesOnce(t *testing.T) {
	f := newFixture(t, prefs.NewMemoryStore())
	f.app.Mount(f.container)
	f.app.Mount(f.container)
	f.renderer(t)
	if f.window.Listeners() != 1 || f.frames.Pending() != 1 {
		t.Fatalf("listeners=%d pending=%d", f.window.Listeners(), f.frames.Pending())
	}
}

func TestPersistedPreferencesAtStartup(t *testing.T) {
	store := prefs.NewMemoryStore()
	_ = store.SetItem(prefs.WireframeKey, "true")
	_ = store.SetItem(prefs.AutoRotateKey, "false")
	f := newFixture(t, store)
	f.app.Mount(f.container)

	if f.app.Scene().Handles().Mesh.Material.Wireframe != true {
		t.Fatalf("material should start in wireframe")
	}
	if f.app.Scene().AutoRotate() {
		t.Fatalf("auto-rotate mirror should start off")
	}
	before := f.app.Snapshot().Rotation
	for i := 0; i < 5; i++ {
		f.frames.Tick()
	}
	if f.app.Snapshot().Rotation != before {
		t.Fatalf("mesh rotated while auto-rotate is off")
	}
	if l := f.app.rotateButton.Text; l != LabelResumeRotation {
		t.Fatalf("rotate label %q", l)
	}
	if l := f.app.wireButton.Text; l != LabelSolid {
		t.Fatalf("wireframe label %q", l)
	}
}

func TestToggleStorageRoundTrip(t *testing.T) {
	store := prefs.NewMemoryStore()
	f := newFixture(t, store)
	f.app.Mount(f.container)
	mat := f.app.Scene().Handles().Mesh.Material

	f.app.ToggleWireframe()
	if got := stored(t, store, prefs.WireframeKey); got != "true" {
		t.Fatalf("stored %q after first toggle", got)
	}
	f.app.ToggleWireframe()
	if got := stored(t, store, prefs.WireframeKey); got != "false" {
		t.Fatalf("stored %q after second toggle", got)
	}
	if mat.Wireframe || f.app.Scene().Wireframe() {
		t.Fatalf("wireframe did not return to false")
	}

	f.app.ToggleAutoRotate()
	if got := stored(t, store, prefs.AutoRotateKey); got != "false" {
		t.Fatalf("stored %q after pausing", got)
	}
	if f.app.Scene().AutoRotate() {
		t.Fatalf("mirror not updated")
	}
}

func TestMirrorFollowsStateAndRotates(t *testing.T) {
	f := newFixture(t, prefs.NewMemoryStore())
	f.app.Mount(f.container)
	const n = 10
	for i := 0; i < n; i++ {
		f.frames.Tick()
	}
	r := f.app.Snapshot().Rotation
	if math.Abs(float64(r.X)-n*scene.RotateStepX) > 1e-4 || math.Abs(float64(r.Y)-n*scene.RotateStepY) > 1e-4 {
		t.Fatalf("rotation after %d frames: %+v", n, r)
	}
	f.app.ToggleAutoRotate()
	for i := 0; i < n; i++ {
		f.frames.Tick()
	}
	if f.app.Snapshot().Rotation != r {
		t.Fatalf("rotation changed while paused")
	}
}

func TestControlsIgnoredWhileUnmounted(t *testing.T) {
	store := prefs.NewMemoryStore()
	f := newFixture(t, store)
	f.app.ToggleWireframe()
	f.app.ToggleAutoRotate()
	if f.app.SelectShape("Toro") {
		t.Fatalf("SelectShape should fail before mount")
	}
	if _, ok, _ := store.GetItem(prefs.WireframeKey); ok {
		t.Fatalf("store written before mount")
	}
	if len(f.dev.Shapes) != 0 {
		t.Fatalf("shapes uploaded before mount")
	}
	snap := f.app.Snapshot()
	if snap.Wireframe || !snap.AutoRotate {
		t.Fatalf("state changed before mount: %+v", snap)
	}
}

func TestSelectUnknownShape(t *testing.T) {
	f := newFixture(t, prefs.NewMemoryStore())
	f.app.Mount(f.container)
	if f.app.SelectShape("Dodecaedro") || f.app.SelectIndex(42) {
		t.Fatalf("unknown entry accepted")
	}
	if f.app.Snapshot().Shape != "Cubo" {
		t.Fatalf("shape changed")
	}
}

type failingStore struct{}

func (failingStore) GetItem(string) (string, bool, error) { return "", false, errors.New("offline") }
func (failingStore) SetItem(string, string) error         { return errors.New("offline") }
func (failingStore) Close() error                         { return nil }

func TestStoreFailuresAreLogged(t *testing.T) {
	f := newFixture(t, failingStore{})
	f.app.Mount(f.container)
	f.app.ToggleWireframe()
	if !f.app.Scene().Wireframe() {
		t.Fatalf("toggle should still apply when the store fails")
	}
	found := false
	for _, l := range f.log.Lines() {
		if strings.Contains(l, "prefs:") && strings.Contains(l, prefs.WireframeKey) {
			found = true
		}
	}
	if !found {
		t.Fatalf("write failure not logged: %v", f.log.Lines())
	}
}

func TestStylesheetErrorsAreLogged(t *testing.T) {
	hasStylesheetLine := func(lines []string) bool {
		for _, l := range lines {
			if strings.Contains(l, "ui: stylesheet:") {
				return true
			}
		}
		return false
	}
	if f := newFixture(t, prefs.NewMemoryStore()); hasStylesheetLine(f.log.Lines()) {
		t.Fatalf("embedded stylesheet reported errors: %v", f.log.Lines())
	}

	saved := stylesheetCSS
	t.Cleanup(func() { stylesheetCSS = saved })
	stylesheetCSS = `button { width 180px; height: 32px; }`
	f := newFixture(t, prefs.NewMemoryStore())
	if !hasStylesheetLine(f.log.Lines()) {
		t.Fatalf("malformed stylesheet not logged: %v", f.log.Lines())
	}
	f.app.Overlay().Layout(800, 600)
	if h := f.app.rotateButton.Bounds.H; h != 32 {
		t.Fatalf("valid declarations should still apply, button height = %d", h)
	}
}

func TestHandleKey(t *testing.T) {
	f := newFixture(t, prefs.NewMemoryStore())
	f.app.Mount(f.container)
	if !f.app.HandleKey('w') || !f.app.Snapshot().Wireframe {
		t.Fatalf("w should toggle wireframe")
	}
	if !f.app.HandleKey(' ') || f.app.Snapshot().AutoRotate {
		t.Fatalf("space should toggle rotation")
	}
	if !f.app.HandleKey('5') || f.app.Snapshot().Shape != "Toro" {
		t.Fatalf("5 should select Toro, got %s", f.app.Snapshot().Shape)
	}
	if f.app.HandleKey('9') || f.app.HandleKey('x') {
		t.Fatalf("unmapped keys should be ignored")
	}
}

type nopPainter struct{}

func (nopPainter) FillRect(ui.Rect, color.RGBA)                  {}
func (nopPainter) StrokeRect(ui.Rect, color.RGBA)                {}
func (nopPainter) Text(string, int32, int32, int32, color.RGBA) {}

func TestOverlayClicks(t *testing.T) {
	f := newFixture(t, prefs.NewMemoryStore())
	f.app.Mount(f.container)
	o := f.app.Overlay()
	o.Layout(1024, 768)
	o.Draw(nopPainter{})

	catalog := o.Nodes()[0]
	if catalog.ID != CatalogPanelID || len(catalog.Children) != 8 {
		t.Fatalf("catalog panel has %d buttons", len(catalog.Children))
	}
	anillo := catalog.Children[7]
	if anillo.Text != "Anillo" {
		t.Fatalf("last button is %q", anillo.Text)
	}
	if !o.Click(anillo.Bounds.X+1, anillo.Bounds.Y+1) {
		t.Fatalf("click on Anillo not handled")
	}
	if f.app.Snapshot().Shape != "Anillo" || !anillo.HasClass(activeClass) {
		t.Fatalf("Anillo not selected")
	}

	wire := f.app.wireButton
	if wire.Text != LabelWireframe {
		t.Fatalf("wire label %q", wire.Text)
	}
	if wire.Bounds.X+wire.Bounds.W > 1024 || wire.Bounds.X < 512 {
		t.Fatalf("controls should sit on the right: %+v", wire.Bounds)
	}
	o.Click(wire.Bounds.X+1, wire.Bounds.Y+1)
	if wire.Text != LabelSolid || !f.app.Snapshot().Wireframe {
		t.Fatalf("wireframe toggle click did not apply")
	}
}

func TestRemountStartsFromCube(t *testing.T) {
	f := newFixture(t, prefs.NewMemoryStore())
	f.app.Mount(f.container)
	f.app.SelectShape("Cono")
	f.app.Unmount()
	f.app.Mount(f.container)
	if f.app.Snapshot().Shape != "Cubo" {
		t.Fatalf("shape after remount %q", f.app.Snapshot().Shape)
	}
	if len(f.dev.Renderers) != 2 || f.dev.Renderers[0].Disposed != 1 {
		t.Fatalf("first renderer not disposed before second mount")
	}
}

func TestSnapshotTitle(t *testing.T) {
	s := Snapshot{Shape: "Toro", Wireframe: true}
	if got := s.Title("Shape Viewer"); got != "Shape Viewer - Toro (wireframe)" {
		t.Fatalf("title %q", got)
	}
}
