package primitives

import (
	"fmt"

	"shape-viewer/internal/geometry"
)

// PrimitiveDef is the YAML definition of one catalog entry (see catalog.yaml).
// Which fields apply depends on Type; Segments holds one or two segment counts in the order
// the generator takes them (e.g. sphere: width, height; torus: radial, tubular).
type PrimitiveDef struct {
	Name         string    `yaml:"name"`
	Type         string    `yaml:"type"`
	Size         []float32 `yaml:"size,omitempty"`
	Radius       float32   `yaml:"radius,omitempty"`
	RadiusTop    float32   `yaml:"radius_top,omitempty"`
	RadiusBottom float32   `yaml:"radius_bottom,omitempty"`
	InnerRadius  float32   `yaml:"inner_radius,omitempty"`
	OuterRadius  float32   `yaml:"outer_radius,omitempty"`
	Height       float32   `yaml:"height,omitempty"`
	Tube         float32   `yaml:"tube,omitempty"`
	Segments     []int     `yaml:"segments,omitempty,flow"`
}

// DefaultDef is the shape the mesh starts with. It is not listed in the catalog.
var DefaultDef = PrimitiveDef{Name: "Cubo", Type: string(geometry.KindBox), Size: []float32{1, 1, 1}}

// Build generates the buffer described by d. It fails when required parameters are missing.
func (d PrimitiveDef) Build() (*geometry.Buffer, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	switch geometry.Kind(d.Type) {
	case geometry.KindBox:
		return geometry.Box(d.Size[0], d.Size[1], d.Size[2]), nil
	case geometry.KindSphere:
		return geometry.Sphere(d.Radius, d.Segments[0], d.Segments[1]), nil
	case geometry.KindPlane:
		return geometry.Plane(d.Size[0], d.Size[1]), nil
	case geometry.KindCone:
		return geometry.Cone(d.Radius, d.Height, d.Segments[0]), nil
	case geometry.KindCylinder:
		return geometry.Cylinder(d.RadiusTop, d.RadiusBottom, d.Height, d.Segments[0]), nil
	case geometry.KindTorus:
		return geometry.Torus(d.Radius, d.Tube, d.Segments[0], d.Segments[1]), nil
	case geometry.KindTorusKnot:
		return geometry.TorusKnot(d.Radius, d.Tube, d.Segments[0], d.Segments[1]), nil
	case geometry.KindCircle:
		return geometry.Circle(d.Radius, d.Segments[0]), nil
	case geometry.KindRing:
		return geometry.Ring(d.InnerRadius, d.OuterRadius, d.Segments[0]), nil
	}
	return nil, fmt.Errorf("primitive %q: unknown type %q", d.Name, d.Type)
}

// Validate checks that d names a known type and carries the parameters that type needs.
func (d PrimitiveDef) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("primitive of type %q: missing name", d.Type)
	}
	need := func(cond bool, what string) error {
		if !cond {
			return fmt.Errorf("primitive %q (%s): %s", d.Name, d.Type, what)
		}
		return nil
	}
	segs := func(n int) error {
		if len(d.Segments) != n {
			return fmt.Errorf("primitive %q (%s): want %d segment counts, got %d", d.Name, d.Type, n, len(d.Segments))
		}
		for _, s := range d.Segments {
			if s < 3 {
				return fmt.Errorf("primitive %q (%s): segment count %d below 3", d.Name, d.Type, s)
			}
		}
		if v := geometry.VertexBound(geometry.Kind(d.Type), d.Segments...); v > geometry.MaxVertices {
			return fmt.Errorf("primitive %q (%s): segments %v need %d vertices, limit is %d",
				d.Name, d.Type, d.Segments, v, geometry.MaxVertices)
		}
		return nil
	}
	switch geometry.Kind(d.Type) {
	case geometry.KindBox:
		return need(len(d.Size) == 3, "size must be [w, h, d]")
	case geometry.KindPlane:
		return need(len(d.Size) == 2, "size must be [w, h]")
	case geometry.KindSphere, geometry.KindCircle:
		n := 2
		if d.Type == string(geometry.KindCircle) {
			n = 1
		}
		if err := need(d.Radius > 0, "radius must be positive"); err != nil {
			return err
		}
		return segs(n)
	case geometry.KindCone:
		if err := need(d.Radius > 0 && d.Height > 0, "radius and height must be positive"); err != nil {
			return err
		}
		return segs(1)
	case geometry.KindCylinder:
		if err := need(d.RadiusTop > 0 && d.RadiusBottom > 0 && d.Height > 0, "radii and height must be positive"); err != nil {
			return err
		}
		return segs(1)
	case geometry.KindTorus, geometry.KindTorusKnot:
		if err := need(d.Radius > 0 && d.Tube > 0, "radius and tube must be positive"); err != nil {
			return err
		}
		return segs(2)
	case geometry.KindRing:
		if err := need(d.InnerRadius >= 0 && d.OuterRadius > d.InnerRadius, "outer radius must exceed inner radius"); err != nil {
			return err
		}
		return segs(1)
	}
	return fmt.Errorf("primitive %q: unknown type %q", d.Name, d.Type)
}
