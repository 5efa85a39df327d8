// Package enginetest provides an in-memory engine.Device that records every GPU-side call, for tests.
package enginetest

import (
	"fmt"
	"sync"

	"shape-viewer/internal/engine"
	"shape-viewer/internal/geometry"
)

// Journal is an ordered log of events shared between fakes so tests can assert cross-component ordering.
type Journal struct {
	mu     sync.Mutex
	events []string
}

// Record appends an event.
func (j *Journal) Record(format string, args ...any) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.events = append(j.events, fmt.Sprintf(format, args...))
}

// Events returns a copy of the recorded events.
func (j *Journal) Events() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]string, len(j.events))
	copy(out, j.events)
	return out
}

// Reset drops all recorded events.
func (j *Journal) Reset() {
	j.mu.Lock()
	j.events = nil
	j.mu.Unlock()
}

// Handle counts releases of one fake GPU resource.
type Handle struct {
	ID       int
	Kind     string
	Released int
	journal  *Journal
}

// Release implements engine.Handle.
func (h *Handle) Release() {
	h.Released++
	h.journal.Record("release %s#%d", h.Kind, h.ID)
}

// Device is a fake engine.Device. All resources share its Journal.
type Device struct {
	Journal   *Journal
	Shapes    []*engine.Shape
	Materials []*engine.Material
	Renderers []*Renderer
	nextID    int
}

// NewDevice returns a Device with a fresh journal.
func NewDevice() *Device {
	return &Device{Journal: &Journal{}}
}

func (d *Device) handle(kind string) *Handle {
	d.nextID++
	return &Handle{ID: d.nextID, Kind: kind, journal: d.Journal}
}

// UploadShape implements engine.Device.
func (d *Device) UploadShape(buf *geometry.Buffer) *engine.Shape {
	h := d.handle("shape")
	s := engine.NewShape(buf, h)
	d.Shapes = append(d.Shapes, s)
	d.Journal.Record("upload %s#%d", buf.Kind, h.ID)
	return s
}

// NewMaterial implements engine.Device.
func (d *Device) NewMaterial(opts engine.MaterialOptions) *engine.Material {
	m := engine.NewMaterial(opts, d.handle("material"))
	d.Materials = append(d.Materials, m)
	return m
}

// NewRenderer implements engine.Device.
func (d *Device) NewRenderer(opts engine.RendererOptions) engine.Renderer {
	r := &Renderer{Options: opts, Width: opts.Width, Height: opts.Height, PixelRatio: 1, journal: d.Journal}
	d.Renderers = append(d.Renderers, r)
	d.Journal.Record("renderer create")
	return r
}

// ShapeHandle returns the fake handle behind s.
func ShapeHandle(s *engine.Shape) *Handle {
	h, _ := s.Handle().(*Handle)
	return h
}

// MaterialHandle returns the fake handle behind m.
func MaterialHandle(m *engine.Material) *Handle {
	h, _ := m.Handle().(*Handle)
	return h
}

// Draw is a snapshot of what one Render call saw.
type Draw struct {
	Children  int
	Shape     *engine.Shape
	Wireframe bool
	Rotation  engine.Vec3
	Aspect    float32
}

// Renderer is a fake engine.Renderer recording sizes, draws and disposal.
type Renderer struct {
	Options    engine.RendererOptions
	Width      int
	Height     int
	PixelRatio float32
	Draws      []Draw
	Disposed   int
	journal    *Journal
}

// SetPixelRatio implements engine.Renderer.
func (r *Renderer) SetPixelRatio(ratio float32) {
	r.PixelRatio = ratio
}

// SetSize implements engine.Renderer.
func (r *Renderer) SetSize(width, height int) {
	r.Width, r.Height = width, height
	r.journal.Record("renderer size %dx%d", width, height)
}

// Render implements engine.Renderer. It acknowledges pending material updates like a real backend.
func (r *Renderer) Render(scene *engine.Scene, camera *engine.PerspectiveCamera) {
	d := Draw{Children: scene.Len(), Aspect: camera.Aspect}
	for _, obj := range scene.Children() {
		if m, ok := obj.(*engine.Mesh); ok {
			d.Shape = m.Geometry
			d.Rotation = m.Rotation
			if m.Material != nil {
				m.Material.Acknowledge()
				d.Wireframe = m.Material.Wireframe
			}
		}
	}
	r.Draws = append(r.Draws, d)
	r.journal.Record("render")
}

// Dispose implements engine.Renderer.
func (r *Renderer) Dispose() {
	r.Disposed++
	r.journal.Record("renderer dispose")
}

// LastDraw returns the most recent draw, or false when nothing was drawn.
func (r *Renderer) LastDraw() (Draw, bool) {
	if len(r.Draws) == 0 {
		return Draw{}, false
	}
	return r.Draws[len(r.Draws)-1], true
}
