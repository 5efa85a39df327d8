package engine

import (
	"image/color"

	"github.com/chewxy/math32"
)

// Vec3 is a 3D vector or Euler angle triple (radians).
type Vec3 struct {
	X, Y, Z float32
}

// Hex returns an opaque color from a 0xRRGGBB value.
func Hex(v uint32) color.RGBA {
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}

// Object is anything that can be placed in a Scene.
type Object interface {
	sceneObject()
}

// Mesh pairs one Shape with one Material. Rotation is applied X, then Y, then Z.
type Mesh struct {
	Geometry *Shape
	Material *Material
	Position Vec3
	Rotation Vec3
}

// NewMesh returns a mesh at the origin with no rotation.
func NewMesh(geometry *Shape, material *Material) *Mesh {
	return &Mesh{Geometry: geometry, Material: material}
}

// AmbientLight lights every surface equally.
type AmbientLight struct {
	Color     color.RGBA
	Intensity float32
}

// DirectionalLight shines from Position toward the origin.
type DirectionalLight struct {
	Color     color.RGBA
	Intensity float32
	Position  Vec3
}

// AxesHelper draws the X (red), Y (green) and Z (blue) axes from the origin.
type AxesHelper struct {
	Size float32
}

// GridHelper draws a square grid on the XZ plane centered at the origin.
type GridHelper struct {
	Size      float32
	Divisions int
}

func (*Mesh) sceneObject()             {}
func (*AmbientLight) sceneObject()     {}
func (*DirectionalLight) sceneObject() {}
func (*AxesHelper) sceneObject()       {}
func (*GridHelper) sceneObject()       {}

// Scene is the root container of everything drawn in one frame.
type Scene struct {
	Background color.RGBA
	children   []Object
}

// NewScene returns an empty scene with the given background color.
func NewScene(background color.RGBA) *Scene {
	return &Scene{Background: background}
}

// Add appends objects in draw order.
func (s *Scene) Add(objs ...Object) {
	s.children = append(s.children, objs...)
}

// Children returns a copy of the child list.
func (s *Scene) Children() []Object {
	out := make([]Object, len(s.children))
	copy(out, s.children)
	return out
}

// Len returns the number of children.
func (s *Scene) Len() int {
	return len(s.children)
}

// Clear removes every child. Resources owned by the children are not released.
func (s *Scene) Clear() {
	s.children = nil
}

// PerspectiveCamera looks from Position toward Target. Aspect changes take effect after UpdateProjectionMatrix.
type PerspectiveCamera struct {
	FOV      float32 // vertical field of view, degrees
	Aspect   float32
	Near     float32
	Far      float32
	Position Vec3
	Target   Vec3
	Up       Vec3

	projection [16]float32
}

// NewPerspectiveCamera returns a camera looking at the origin with +Y up and its projection computed.
func NewPerspectiveCamera(fov, aspect, near, far float32) *PerspectiveCamera {
	c := &PerspectiveCamera{FOV: fov, Aspect: aspect, Near: near, Far: far, Up: Vec3{0, 1, 0}}
	c.UpdateProjectionMatrix()
	return c
}

// UpdateProjectionMatrix recomputes the column-major projection from FOV, Aspect, Near and Far.
func (c *PerspectiveCamera) UpdateProjectionMatrix() {
	aspect := c.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	f := 1 / math32.Tan(c.FOV*math32.Pi/360)
	var m [16]float32
	m[0] = f / aspect
	m[5] = f
	m[10] = (c.Far + c.Near) / (c.Near - c.Far)
	m[11] = -1
	m[14] = 2 * c.Far * c.Near / (c.Near - c.Far)
	c.projection = m
}

// ProjectionMatrix returns the matrix computed by the last UpdateProjectionMatrix.
func (c *PerspectiveCamera) ProjectionMatrix() [16]float32 {
	return c.projection
}
