// Package viewer is the control surface of the shape viewer: one button per catalog entry, the
// auto-rotate and wireframe toggles, and the effects that keep the scene's mirror cells and the
// preference store in step with the reactive toggle state.
package viewer

import (
	_ "embed"
	"fmt"

	"shape-viewer/internal/engine"
	"shape-viewer/internal/host"
	"shape-viewer/internal/logger"
	"shape-viewer/internal/prefs"
	"shape-viewer/internal/primitives"
	"shape-viewer/internal/scene"
	"shape-viewer/internal/ui"
)

//go:embed viewer.css
var stylesheetCSS string

// Button labels.
const (
	LabelPauseRotation  = "Pause Rotation"
	LabelResumeRotation = "Resume Rotation"
	LabelSolid          = "Solid"
	LabelWireframe      = "Wireframe"
)

// Node ids of the overlay.
const (
	CatalogPanelID   = "catalog"
	ControlsPanelID  = "controls"
	RotateToggleID   = "toggle-rotate"
	WireToggleID     = "toggle-wireframe"
	shapeButtonClass = "shape"
	activeClass      = "active"
	onClass          = "on"
)

// Options are the collaborators an App needs.
type Options struct {
	Store     prefs.Store
	Catalog   *primitives.Catalog
	Device    engine.Device
	Scheduler host.Scheduler
	Events    host.Events
	Logger    *logger.Logger
}

// Snapshot is a read-only view of the viewer state.
type Snapshot struct {
	Mounted    bool
	Shape      string
	AutoRotate bool
	Wireframe  bool
	Rotation   engine.Vec3
}

// Title formats s for a window title bar.
func (s Snapshot) Title(app string) string {
	mode := "solid"
	if s.Wireframe {
		mode = "wireframe"
	}
	return fmt.Sprintf("%s - %s (%s)", app, s.Shape, mode)
}

// App wires the reactive toggles to the scene manager and the store. All methods run on the UI thread.
type App struct {
	opts  Options
	scene *scene.Manager

	autoRotate *ui.State[bool]
	wireframe  *ui.State[bool]
	shape      *ui.State[string]

	overlay      *ui.Engine
	shapeButtons map[string]*ui.Node
	rotateButton *ui.Node
	wireButton   *ui.Node

	scope ui.Scope
}

// New loads the persisted preferences and builds the overlay. Nothing is created on the GPU until Mount.
func New(opts Options) *App {
	initial := prefs.Load(opts.Store)
	a := &App{
		opts:         opts,
		autoRotate:   ui.NewState(initial.AutoRotate),
		wireframe:    ui.NewState(initial.Wireframe),
		shape:        ui.NewState(primitives.DefaultDef.Name),
		overlay:      ui.New(),
		shapeButtons: make(map[string]*ui.Node),
	}
	a.scene = scene.New(scene.Options{
		Device:       opts.Device,
		Scheduler:    opts.Scheduler,
		Events:       opts.Events,
		DefaultShape: primitives.NewFactory(primitives.DefaultDef, opts.Device),
		Logger:       opts.Logger,
	}, initial)
	a.buildOverlay()
	return a
}

func (a *App) buildOverlay() {
	sheet, err := ui.ParseCSS(stylesheetCSS)
	if err != nil {
		a.logf("ui: stylesheet: %v", err)
	}
	a.overlay.SetStylesheet(sheet)
	catalog := ui.NewNode("panel", CatalogPanelID, "", "panel")
	for i, e := range a.opts.Catalog.Entries() {
		idx := i
		b := ui.NewNode("button", "", e.Name, shapeButtonClass)
		b.OnClick = func() { a.SelectIndex(idx) }
		a.shapeButtons[e.Name] = b
		catalog.Add(b)
	}
	a.rotateButton = ui.NewNode("button", RotateToggleID, "")
	a.rotateButton.OnClick = a.ToggleAutoRotate
	a.wireButton = ui.NewNode("button", WireToggleID, "")
	a.wireButton.OnClick = a.ToggleWireframe
	controls := ui.NewNode("panel", ControlsPanelID, "", "panel").Add(a.rotateButton, a.wireButton)
	a.overlay.SetNodes([]*ui.Node{catalog, controls})
	a.relabel()
}

// Mount initialises the scene in container and starts the state effects. Only the first call
// while mounted has any effect.
func (a *App) Mount(container host.Container) {
	a.scope.Mount(func(s *ui.Scope) {
		a.shape.Set(primitives.DefaultDef.Name)
		a.scene.Initialize(container)
		s.Defer(a.scene.Teardown)
		s.Defer(a.autoRotate.Watch(a.syncAutoRotate))
		s.Defer(a.wireframe.Watch(a.syncWireframe))
		s.Defer(a.shape.Watch(func(string) { a.relabel() }))
	})
}

// Unmount stops the effects and tears the scene down. It is a no-op when not mounted.
func (a *App) Unmount() {
	a.scope.Unmount()
}

// Mounted reports whether the viewer is live.
func (a *App) Mounted() bool {
	return a.scope.Mounted()
}

func (a *App) syncAutoRotate(v bool) {
	a.scene.SetAutoRotate(v)
	a.persist(prefs.AutoRotateKey, v)
	a.relabel()
}

func (a *App) syncWireframe(v bool) {
	a.scene.SetWireframe(v)
	a.persist(prefs.WireframeKey, v)
	a.relabel()
}

// persist writes a preference; failures are logged and otherwise ignored.
func (a *App) persist(key string, v bool) {
	if err := prefs.Put(a.opts.Store, key, v); err != nil {
		a.logf("prefs: %v", err)
	}
}

func (a *App) relabel() {
	a.rotateButton.Text = RotateLabel(a.autoRotate.Get())
	a.wireButton.Text = WireframeLabel(a.wireframe.Get())
	changed := a.rotateButton.SetClass(onClass, a.autoRotate.Get())
	if a.wireButton.SetClass(onClass, a.wireframe.Get()) {
		changed = true
	}
	current := a.shape.Get()
	for name, b := range a.shapeButtons {
		if b.SetClass(activeClass, name == current) {
			changed = true
		}
	}
	if changed {
		a.overlay.Invalidate()
	}
}

// RotateLabel is the auto-rotate toggle's label for the given state.
func RotateLabel(rotating bool) string {
	if rotating {
		return LabelPauseRotation
	}
	return LabelResumeRotation
}

// WireframeLabel is the wireframe toggle's label: it names the mode a click switches to.
func WireframeLabel(wireframe bool) string {
	if wireframe {
		return LabelSolid
	}
	return LabelWireframe
}

// SelectShape swaps the mesh to the named catalog entry. It returns false for unknown names or
// when the viewer is not mounted.
func (a *App) SelectShape(name string) bool {
	e, ok := a.opts.Catalog.Lookup(name)
	if !ok {
		return false
	}
	return a.selectEntry(e)
}

// SelectIndex swaps the mesh to the i-th catalog entry.
func (a *App) SelectIndex(i int) bool {
	e, ok := a.opts.Catalog.At(i)
	if !ok {
		return false
	}
	return a.selectEntry(e)
}

func (a *App) selectEntry(e primitives.Entry) bool {
	if !a.scene.Initialized() {
		return false
	}
	a.scene.ReplaceGeometry(e.Factory)
	a.shape.Set(e.Name)
	a.logf("viewer: geometry replaced with %s", e.Name)
	return true
}

// ToggleAutoRotate flips auto-rotation. Ignored while unmounted.
func (a *App) ToggleAutoRotate() {
	if !a.Mounted() {
		return
	}
	a.autoRotate.Update(func(v bool) bool { return !v })
}

// ToggleWireframe flips wireframe rendering. Ignored while unmounted.
func (a *App) ToggleWireframe() {
	if !a.Mounted() {
		return
	}
	a.wireframe.Update(func(v bool) bool { return !v })
}

// HandleKey maps a typed character to a control: w toggles wireframe, space toggles rotation,
// 1-9 select catalog entries. It returns whether the key was used.
func (a *App) HandleKey(r rune) bool {
	switch {
	case r == 'w' || r == 'W':
		a.ToggleWireframe()
		return a.Mounted()
	case r == ' ':
		a.ToggleAutoRotate()
		return a.Mounted()
	case r >= '1' && r <= '9':
		return a.SelectIndex(int(r - '1'))
	}
	return false
}

// Overlay returns the UI engine the graphics backend lays out, draws and sends clicks to.
func (a *App) Overlay() *ui.Engine {
	return a.overlay
}

// Scene returns the scene manager.
func (a *App) Scene() *scene.Manager {
	return a.scene
}

// Snapshot returns the current state.
func (a *App) Snapshot() Snapshot {
	s := Snapshot{
		Mounted:    a.Mounted(),
		Shape:      a.shape.Get(),
		AutoRotate: a.autoRotate.Get(),
		Wireframe:  a.wireframe.Get(),
	}
	if m := a.scene.Handles().Mesh; m != nil {
		s.Rotation = m.Rotation
	}
	return s
}

func (a *App) logf(format string, args ...any) {
	if a.opts.Logger != nil {
		a.opts.Logger.Logf(format, args...)
	}
}
