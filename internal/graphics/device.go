package graphics

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"shape-viewer/internal/engine"
	"shape-viewer/internal/geometry"
	"shape-viewer/internal/logger"
)

// WindowOptions configure the window a Renderer opens.
type WindowOptions struct {
	Title     string
	Width     int
	Height    int
	TargetFPS int
	Antialias bool
}

// Device creates raylib-backed shapes, materials and the renderer. Shapes and materials need the
// GL context, so they can only be created while a renderer is live.
type Device struct {
	opts   WindowOptions
	log    *logger.Logger
	shader rl.Shader
	// lit is false when the lit shader failed to compile; meshes then draw with the material's
	// default shader and no lighting.
	lit         bool
	shaderValid func(rl.Shader) bool
	// open is true between window creation and renderer disposal. Releases after close are
	// no-ops: closing the window destroys the context and everything in it.
	open bool
}

// NewDevice returns a device that will open a window with opts on NewRenderer.
func NewDevice(opts WindowOptions, log *logger.Logger) *Device {
	return &Device{opts: opts, log: log, shaderValid: rl.IsShaderValid}
}

// Open reports whether the renderer's window exists.
func (d *Device) Open() bool {
	return d.open
}

// Window returns a Container reporting the window size, or the configured size before it opens.
func (d *Device) Window() *Window {
	return &Window{dev: d}
}

// NewRenderer opens the window. Only one renderer may be live at a time.
func (d *Device) NewRenderer(opts engine.RendererOptions) engine.Renderer {
	flags := uint32(rl.FlagWindowResizable)
	if opts.Antialias && d.opts.Antialias {
		flags |= rl.FlagMsaa4xHint
	}
	rl.SetConfigFlags(flags)
	rl.InitWindow(int32(opts.Width), int32(opts.Height), d.opts.Title)
	rl.SetExitKey(rl.KeyNull) // Space and digits are shortcuts; close via the window button
	if d.opts.TargetFPS > 0 {
		rl.SetTargetFPS(int32(d.opts.TargetFPS))
	}
	d.useShader(loadLitShader())
	d.open = true
	d.logf("graphics: window %dx%d opened (msaa=%v)", opts.Width, opts.Height, opts.Antialias && d.opts.Antialias)
	return &Renderer{dev: d, width: opts.Width, height: opts.Height, pixelRatio: 1}
}

// useShader adopts s as the lit shader when it compiled.
func (d *Device) useShader(s rl.Shader) {
	d.lit = d.shaderValid(s)
	if !d.lit {
		d.shader = rl.Shader{}
		d.logf("graphics: lit shader failed to compile, drawing unlit")
		return
	}
	d.shader = s
}

// UploadShape copies buf into a GPU mesh.
func (d *Device) UploadShape(buf *geometry.Buffer) *engine.Shape {
	h := &meshHandle{dev: d}
	if d.open {
		h.mesh = toMesh(buf)
		rl.UploadMesh(&h.mesh, false)
		h.loaded = true
	}
	return engine.NewShape(buf, h)
}

// NewMaterial allocates a raylib material with the default shader; lighting is applied at draw time.
func (d *Device) NewMaterial(opts engine.MaterialOptions) *engine.Material {
	h := &materialHandle{dev: d}
	if d.open {
		h.mat = rl.LoadMaterialDefault()
		h.loaded = true
	}
	return engine.NewMaterial(opts, h)
}

func (d *Device) logf(format string, args ...any) {
	if d.log != nil {
		d.log.Logf(format, args...)
	}
}

// toMesh builds an rl.Mesh over the buffer's slices. UploadMesh pins them during the copy.
func toMesh(buf *geometry.Buffer) rl.Mesh {
	m := rl.Mesh{
		VertexCount:   int32(buf.VertexCount()),
		TriangleCount: int32(buf.TriangleCount()),
	}
	if len(buf.Positions) > 0 {
		m.Vertices = &buf.Positions[0]
	}
	if len(buf.Normals) > 0 {
		m.Normals = &buf.Normals[0]
	}
	if len(buf.Indices) > 0 {
		m.Indices = &buf.Indices[0]
	}
	texcoords := make([]float32, 2*buf.VertexCount())
	if len(texcoords) > 0 {
		m.Texcoords = &texcoords[0]
	}
	return m
}

type meshHandle struct {
	dev    *Device
	mesh   rl.Mesh
	loaded bool
}

func (h *meshHandle) Release() {
	if h.loaded && h.dev.open {
		rl.UnloadMesh(&h.mesh)
	}
	h.loaded = false
}

type materialHandle struct {
	dev    *Device
	mat    rl.Material
	loaded bool
}

func (h *materialHandle) Release() {
	if h.loaded && h.dev.open {
		rl.UnloadMaterial(h.mat)
	}
	h.loaded = false
}

// Renderer draws an engine.Scene into the window. Dispose closes the window.
type Renderer struct {
	dev        *Device
	width      int
	height     int
	pixelRatio float32
}

// SetPixelRatio records the display scale. raylib already renders at framebuffer resolution.
func (r *Renderer) SetPixelRatio(ratio float32) {
	r.pixelRatio = ratio
}

// SetSize resizes the window when the requested size differs from the current one.
func (r *Renderer) SetSize(width, height int) {
	r.width, r.height = width, height
	if !r.dev.open {
		return
	}
	if rl.GetScreenWidth() != width || rl.GetScreenHeight() != height {
		rl.SetWindowSize(width, height)
	}
}

// Render clears to the scene background and draws every object with camera's view and projection.
// Call between rl.BeginDrawing and rl.EndDrawing.
func (r *Renderer) Render(scene *engine.Scene, camera *engine.PerspectiveCamera) {
	if !r.dev.open {
		return
	}
	rl.ClearBackground(scene.Background)
	rl.BeginMode3D(rl.Camera3D{
		Position:   vec3(camera.Position),
		Target:     vec3(camera.Target),
		Up:         vec3(camera.Up),
		Fovy:       camera.FOV,
		Projection: rl.CameraPerspective,
	})
	rl.SetMatrixProjection(matrix(camera.ProjectionMatrix()))

	lights := collectLights(scene)
	r.dev.applyLights(lights, camera.Position)
	for _, obj := range scene.Children() {
		switch o := obj.(type) {
		case *engine.Mesh:
			r.drawMesh(o)
		case *engine.AxesHelper:
			drawAxes(o.Size)
		case *engine.GridHelper:
			drawGrid(o.Size, o.Divisions)
		}
	}
	rl.EndMode3D()
}

func (r *Renderer) drawMesh(m *engine.Mesh) {
	if m.Geometry == nil || m.Material == nil {
		return
	}
	mh, ok := m.Geometry.Handle().(*meshHandle)
	if !ok || !mh.loaded {
		return
	}
	mat, ok := m.Material.Handle().(*materialHandle)
	if !ok || !mat.loaded {
		return
	}
	m.Material.Acknowledge()
	draw := mat.mat
	if r.dev.lit {
		draw.Shader = r.dev.shader
	}
	draw.GetMap(rl.MapDiffuse).Color = m.Material.Color
	transform := rl.MatrixMultiply(
		rl.MatrixRotateXYZ(rl.NewVector3(m.Rotation.X, m.Rotation.Y, m.Rotation.Z)),
		rl.MatrixTranslate(m.Position.X, m.Position.Y, m.Position.Z),
	)
	rl.DisableBackfaceCulling()
	if m.Material.Wireframe {
		rl.EnableWireMode()
	}
	rl.DrawMesh(mh.mesh, draw, transform)
	if m.Material.Wireframe {
		rl.DisableWireMode()
	}
	rl.EnableBackfaceCulling()
}

// Dispose unloads the shader and closes the window. Shapes and materials released afterwards are no-ops.
func (r *Renderer) Dispose() {
	if !r.dev.open {
		return
	}
	if r.dev.lit {
		rl.UnloadShader(r.dev.shader)
		r.dev.lit = false
	}
	rl.CloseWindow()
	r.dev.open = false
	r.dev.logf("graphics: window closed")
}

func vec3(v engine.Vec3) rl.Vector3 {
	return rl.NewVector3(v.X, v.Y, v.Z)
}

// matrix converts a column-major 4x4 into raylib's Matrix (Mi is column-major element i).
func matrix(p [16]float32) rl.Matrix {
	return rl.Matrix{
		M0: p[0], M1: p[1], M2: p[2], M3: p[3],
		M4: p[4], M5: p[5], M6: p[6], M7: p[7],
		M8: p[8], M9: p[9], M10: p[10], M11: p[11],
		M12: p[12], M13: p[13], M14: p[14], M15: p[15],
	}
}

func scaled(c color.RGBA, k float32) []float32 {
	return []float32{float32(c.R) / 255 * k, float32(c.G) / 255 * k, float32(c.B) / 255 * k}
}
