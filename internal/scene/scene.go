package scene

import (
	"shape-viewer/internal/engine"
	"shape-viewer/internal/host"
	"shape-viewer/internal/logger"
	"shape-viewer/internal/prefs"
	"shape-viewer/internal/primitives"
)

const (
	cameraFOV  = 75
	cameraNear = 0.1
	cameraFar  = 1000

	ambientIntensity     = 0.4
	directionalIntensity = 1.0

	axesSize      = 3
	gridSize      = 10
	gridDivisions = 10
)

// Background is the scene clear color.
var Background = engine.Hex(0x1a1a2e)

var (
	meshColor        = engine.Hex(0x44aa88)
	lightColor       = engine.Hex(0xffffff)
	cameraPosition   = engine.Vec3{X: 2, Y: 2, Z: 5}
	directionalLight = engine.Vec3{X: 5, Y: 5, Z: 5}
)

// Options are the collaborators a Manager needs. DefaultShape builds the mesh's first shape.
type Options struct {
	Device       engine.Device
	Scheduler    host.Scheduler
	Events       host.Events
	DefaultShape primitives.Factory
	Logger       *logger.Logger
}

// Handles are the objects created by Initialize.
type Handles struct {
	Scene    *engine.Scene
	Camera   *engine.PerspectiveCamera
	Renderer engine.Renderer
	Mesh     *engine.Mesh
}

// Manager owns the scene, camera, renderer and the single mesh for one mount.
// It also holds the two mirror cells (auto-rotate, wireframe) read by the frame loop;
// SetAutoRotate and SetWireframe are their only writers.
// All methods must be called from the UI thread.
type Manager struct {
	opts Options

	container host.Container
	scene     *engine.Scene
	camera    *engine.PerspectiveCamera
	renderer  engine.Renderer
	mesh      *engine.Mesh

	resizeID host.ListenerID
	frameID  host.FrameID

	autoRotate bool
	wireframe  bool
}

// New returns a Manager whose mirror cells start at the loaded preferences.
func New(opts Options, initial prefs.Preferences) *Manager {
	return &Manager{
		opts:       opts,
		autoRotate: initial.AutoRotate,
		wireframe:  initial.Wireframe,
	}
}

// Initialize builds the scene inside container and starts the frame loop.
// A second call tears the previous scene down first so only one renderer surface ever exists.
// A nil container is ignored.
func (m *Manager) Initialize(container host.Container) Handles {
	if container == nil {
		return Handles{}
	}
	if m.renderer != nil {
		m.logf("scene: re-initialising, disposing previous renderer")
		m.Teardown()
	}
	m.container = container
	width, height := container.Size()

	m.scene = engine.NewScene(Background)

	m.camera = engine.NewPerspectiveCamera(cameraFOV, aspect(width, height), cameraNear, cameraFar)
	m.camera.Position = cameraPosition

	m.renderer = m.opts.Device.NewRenderer(engine.RendererOptions{Antialias: true, Width: width, Height: height})
	m.renderer.SetPixelRatio(container.PixelRatio())
	m.renderer.SetSize(width, height)

	m.scene.Add(
		&engine.AmbientLight{Color: lightColor, Intensity: ambientIntensity},
		&engine.DirectionalLight{Color: lightColor, Intensity: directionalIntensity, Position: directionalLight},
	)

	material := m.opts.Device.NewMaterial(engine.MaterialOptions{Color: meshColor, Wireframe: m.wireframe})
	m.mesh = engine.NewMesh(m.opts.DefaultShape(), material)
	m.scene.Add(m.mesh)

	m.scene.Add(
		&engine.AxesHelper{Size: axesSize},
		&engine.GridHelper{Size: gridSize, Divisions: gridDivisions},
	)

	m.resizeID = m.opts.Events.AddResizeListener(m.handleResize)
	m.frameID = m.opts.Scheduler.RequestFrame(m.frame)
	m.logf("scene: initialised %dx%d (wireframe=%v, autoRotate=%v)", width, height, m.wireframe, m.autoRotate)

	return m.Handles()
}

func aspect(width, height int) float32 {
	if width <= 0 || height <= 0 {
		return 1
	}
	return float32(width) / float32(height)
}

// handleResize follows the container size. Events before Initialize or with an empty container are dropped.
func (m *Manager) handleResize() {
	if m.container == nil || m.camera == nil || m.renderer == nil {
		return
	}
	width, height := m.container.Size()
	if width <= 0 || height <= 0 {
		return
	}
	m.camera.Aspect = aspect(width, height)
	m.camera.UpdateProjectionMatrix()
	m.renderer.SetSize(width, height)
}

// ReplaceGeometry swaps the mesh's shape for a fresh one from factory and disposes the old one in the same step.
// Before Initialize (or after Teardown) it does nothing and factory is not called.
func (m *Manager) ReplaceGeometry(factory primitives.Factory) {
	if m.mesh == nil || factory == nil {
		return
	}
	next := factory()
	prev := m.mesh.Geometry
	m.mesh.Geometry = nil
	if prev != nil {
		prev.Dispose()
	}
	m.mesh.Geometry = next
}

// SetAutoRotate writes the auto-rotate mirror cell.
func (m *Manager) SetAutoRotate(v bool) {
	m.autoRotate = v
}

// SetWireframe writes the wireframe mirror cell and forces the live material to match.
func (m *Manager) SetWireframe(v bool) {
	m.wireframe = v
	if m.mesh == nil || m.mesh.Material == nil {
		return
	}
	m.mesh.Material.Wireframe = v
	m.mesh.Material.NeedsUpdate = true
}

// AutoRotate returns the auto-rotate mirror cell.
func (m *Manager) AutoRotate() bool {
	return m.autoRotate
}

// Wireframe returns the wireframe mirror cell.
func (m *Manager) Wireframe() bool {
	return m.wireframe
}

// Initialized reports whether a scene is live.
func (m *Manager) Initialized() bool {
	return m.renderer != nil
}

// Handles returns the live objects; all fields are nil when not initialised.
func (m *Manager) Handles() Handles {
	return Handles{Scene: m.scene, Camera: m.camera, Renderer: m.renderer, Mesh: m.mesh}
}

// Teardown releases everything Initialize created, in order: resize listener, pending frame,
// renderer, current shape, material, scene children. Each step runs at most once; calling
// Teardown again, or before Initialize, does nothing.
func (m *Manager) Teardown() {
	if m.resizeID != 0 {
		m.opts.Events.RemoveResizeListener(m.resizeID)
		m.resizeID = 0
	}
	if m.frameID != 0 {
		m.opts.Scheduler.CancelFrame(m.frameID)
		m.frameID = 0
	}
	if m.renderer != nil {
		m.renderer.Dispose()
		m.renderer = nil
	}
	if m.mesh != nil {
		if m.mesh.Geometry != nil {
			m.mesh.Geometry.Dispose()
		}
		if m.mesh.Material != nil {
			m.mesh.Material.Dispose()
		}
		m.mesh = nil
	}
	if m.scene != nil {
		m.scene.Clear()
		m.scene = nil
		m.logf("scene: torn down")
	}
	m.camera = nil
	m.container = nil
}

func (m *Manager) logf(format string, args ...any) {
	if m.opts.Logger != nil {
		m.opts.Logger.Logf(format, args...)
	}
}
