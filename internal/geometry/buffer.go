// Package geometry generates indexed triangle buffers for the primitive solids the viewer can show.
// Generators are pure Go and allocate fresh slices on every call, so two buffers never share memory.
package geometry

import "github.com/chewxy/math32"

// Kind names the primitive a buffer was generated from.
type Kind string

const (
	KindBox       Kind = "box"
	KindSphere    Kind = "sphere"
	KindPlane     Kind = "plane"
	KindCone      Kind = "cone"
	KindCylinder  Kind = "cylinder"
	KindTorus     Kind = "torus"
	KindTorusKnot Kind = "torus_knot"
	KindCircle    Kind = "circle"
	KindRing      Kind = "ring"
)

// Buffer is a CPU-side triangle list: xyz positions, xyz normals and 16-bit indices (three per triangle).
// Params records the generator arguments (e.g. "radius", "widthSegments") for inspection.
type Buffer struct {
	Kind      Kind
	Params    map[string]float32
	Positions []float32
	Normals   []float32
	Indices   []uint16
}

// VertexCount returns the number of vertices in the buffer.
func (b *Buffer) VertexCount() int {
	return len(b.Positions) / 3
}

// TriangleCount returns the number of indexed triangles.
func (b *Buffer) TriangleCount() int {
	return len(b.Indices) / 3
}

// MaxVertices is the largest vertex count addressable by uint16 indices.
const MaxVertices = 1 << 16

// VertexBound returns how many vertices the generator for kind reserves, given its segment
// counts in argument order. Missing counts are treated as zero. Unknown kinds return 0.
func VertexBound(kind Kind, segments ...int) int {
	seg := func(i int) int {
		if i < len(segments) {
			return segments[i]
		}
		return 0
	}
	switch kind {
	case KindBox:
		return 24
	case KindPlane:
		return 4
	case KindSphere, KindTorus, KindTorusKnot:
		return (seg(0) + 1) * (seg(1) + 1)
	case KindCone, KindCylinder:
		return 2*(seg(0)+1) + 2*(2*seg(0)+1)
	case KindCircle:
		return seg(0) + 2
	case KindRing:
		return 2 * (seg(0) + 1)
	}
	return 0
}

// builder accumulates vertices and triangles for one buffer.
type builder struct {
	buf *Buffer
}

func newBuilder(kind Kind, params map[string]float32, vertexHint int) *builder {
	if vertexHint > MaxVertices {
		panic("geometry: vertex count exceeds 16-bit index range")
	}
	return &builder{buf: &Buffer{
		Kind:      kind,
		Params:    params,
		Positions: make([]float32, 0, vertexHint*3),
		Normals:   make([]float32, 0, vertexHint*3),
	}}
}

func (b *builder) vertex(x, y, z, nx, ny, nz float32) {
	b.buf.Positions = append(b.buf.Positions, x, y, z)
	b.buf.Normals = append(b.buf.Normals, nx, ny, nz)
}

func (b *builder) tri(a, c, d int) {
	b.buf.Indices = append(b.buf.Indices, uint16(a), uint16(c), uint16(d))
}

func (b *builder) count() int {
	return len(b.buf.Positions) / 3
}

func (b *builder) done() *Buffer {
	return b.buf
}

// normalize returns v scaled to unit length; zero vectors are returned unchanged.
func normalize(x, y, z float32) (float32, float32, float32) {
	l := math32.Sqrt(x*x + y*y + z*z)
	if l == 0 {
		return x, y, z
	}
	return x / l, y / l, z / l
}

func cross(ax, ay, az, bx, by, bz float32) (float32, float32, float32) {
	return ay*bz - az*by, az*bx - ax*bz, ax*by - ay*bx
}
