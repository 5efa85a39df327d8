// Package engine is the rendering surface the viewer drives: a small scene graph plus the
// GPU-backed resources (shapes, materials, renderers) a Device creates and the viewer must release.
package engine

import (
	"image/color"

	"shape-viewer/internal/geometry"
)

// Handle is the backend side of a GPU-resident resource. Release frees it; the engine calls it at most once.
type Handle interface {
	Release()
}

// Shape is an uploaded geometry buffer. It must be disposed explicitly before it is dropped,
// because the buffers it holds live on the GPU and are not reclaimed by the garbage collector.
type Shape struct {
	buf      *geometry.Buffer
	handle   Handle
	disposed bool
}

// NewShape wraps buf and the backend handle that owns its GPU copy. handle may be nil.
func NewShape(buf *geometry.Buffer, handle Handle) *Shape {
	return &Shape{buf: buf, handle: handle}
}

// Geometry returns the CPU-side buffer the shape was built from.
func (s *Shape) Geometry() *geometry.Buffer {
	return s.buf
}

// Handle returns the backend handle so a renderer can find its GPU mesh.
func (s *Shape) Handle() Handle {
	return s.handle
}

// Dispose releases the GPU buffers. Repeated calls do nothing.
func (s *Shape) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	if s.handle != nil {
		s.handle.Release()
	}
}

// Disposed reports whether Dispose has run.
func (s *Shape) Disposed() bool {
	return s.disposed
}

// MaterialOptions are the construction parameters of a Material.
type MaterialOptions struct {
	Color     color.RGBA
	Wireframe bool
}

// Material is the surface appearance of a mesh. Color is fixed at creation; Wireframe may be
// changed in place, after which NeedsUpdate must be set so the renderer picks up the change.
type Material struct {
	Color       color.RGBA
	Wireframe   bool
	NeedsUpdate bool
	// Version counts acknowledged updates; renderers bump it when they consume NeedsUpdate.
	Version  int
	handle   Handle
	disposed bool
}

// NewMaterial returns a material with the given options backed by handle (may be nil).
func NewMaterial(opts MaterialOptions, handle Handle) *Material {
	return &Material{Color: opts.Color, Wireframe: opts.Wireframe, handle: handle}
}

// Handle returns the backend handle (shader, uniforms) of the material.
func (m *Material) Handle() Handle {
	return m.handle
}

// Acknowledge clears NeedsUpdate and bumps Version. Renderers call it after applying the change.
func (m *Material) Acknowledge() {
	if !m.NeedsUpdate {
		return
	}
	m.NeedsUpdate = false
	m.Version++
}

// Dispose releases the material's GPU state. Repeated calls do nothing.
func (m *Material) Dispose() {
	if m.disposed {
		return
	}
	m.disposed = true
	if m.handle != nil {
		m.handle.Release()
	}
}

// Disposed reports whether Dispose has run.
func (m *Material) Disposed() bool {
	return m.disposed
}

// RendererOptions configure a new Renderer.
type RendererOptions struct {
	Antialias bool
	Width     int
	Height    int
}

// Renderer draws a scene through a camera into its own drawing surface (window or canvas).
type Renderer interface {
	SetPixelRatio(ratio float32)
	SetSize(width, height int)
	Render(scene *Scene, camera *PerspectiveCamera)
	// Dispose releases the GPU context and its drawing surface.
	Dispose()
}

// Device creates GPU-resident resources. Every Shape, Material and Renderer it returns must be disposed by its owner.
type Device interface {
	NewRenderer(opts RendererOptions) Renderer
	UploadShape(buf *geometry.Buffer) *Shape
	NewMaterial(opts MaterialOptions) *Material
}
