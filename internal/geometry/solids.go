package geometry

import "github.com/chewxy/math32"

// boxFaces lists, per face, the outward normal and two in-plane axes with u x v = normal.
var boxFaces = [6][3][3]float32{
	{{1, 0, 0}, {0, 0, -1}, {0, 1, 0}},
	{{-1, 0, 0}, {0, 0, 1}, {0, 1, 0}},
	{{0, 1, 0}, {1, 0, 0}, {0, 0, -1}},
	{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}},
	{{0, 0, 1}, {1, 0, 0}, {0, 1, 0}},
	{{0, 0, -1}, {-1, 0, 0}, {0, 1, 0}},
}

// Box returns an axis-aligned box centered at the origin: four vertices per face so each face has flat normals.
func Box(width, height, depth float32) *Buffer {
	b := newBuilder(KindBox, map[string]float32{"width": width, "height": height, "depth": depth}, VertexBound(KindBox))
	half := [3]float32{width / 2, height / 2, depth / 2}
	corners := [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	for _, f := range boxFaces {
		n, u, v := f[0], f[1], f[2]
		base := b.count()
		for _, c := range corners {
			var p [3]float32
			for i := 0; i < 3; i++ {
				p[i] = (n[i] + c[0]*u[i] + c[1]*v[i]) * half[i]
			}
			b.vertex(p[0], p[1], p[2], n[0], n[1], n[2])
		}
		b.tri(base, base+1, base+2)
		b.tri(base, base+2, base+3)
	}
	return b.done()
}

// Sphere returns a UV sphere with (widthSegments+1)*(heightSegments+1) vertices.
// The pole rows keep their duplicated vertices but emit a single triangle per quad.
func Sphere(radius float32, widthSegments, heightSegments int) *Buffer {
	b := newBuilder(KindSphere, map[string]float32{
		"radius":         radius,
		"widthSegments":  float32(widthSegments),
		"heightSegments": float32(heightSegments),
	}, VertexBound(KindSphere, widthSegments, heightSegments))
	grid := make([][]int, heightSegments+1)
	for iy := 0; iy <= heightSegments; iy++ {
		v := float32(iy) / float32(heightSegments)
		theta := v * math32.Pi
		row := make([]int, widthSegments+1)
		for ix := 0; ix <= widthSegments; ix++ {
			u := float32(ix) / float32(widthSegments)
			phi := u * 2 * math32.Pi
			x := -radius * math32.Cos(phi) * math32.Sin(theta)
			y := radius * math32.Cos(theta)
			z := radius * math32.Sin(phi) * math32.Sin(theta)
			nx, ny, nz := normalize(x, y, z)
			row[ix] = b.count()
			b.vertex(x, y, z, nx, ny, nz)
		}
		grid[iy] = row
	}
	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := grid[iy][ix+1]
			bb := grid[iy][ix]
			c := grid[iy+1][ix]
			d := grid[iy+1][ix+1]
			if iy != 0 {
				b.tri(a, bb, d)
			}
			if iy != heightSegments-1 {
				b.tri(bb, c, d)
			}
		}
	}
	return b.done()
}

// Plane returns a single-quad plane in the XY plane facing +Z.
func Plane(width, height float32) *Buffer {
	b := newBuilder(KindPlane, map[string]float32{"width": width, "height": height}, VertexBound(KindPlane))
	for iy := 0; iy <= 1; iy++ {
		y := -(float32(iy)*height - height/2)
		for ix := 0; ix <= 1; ix++ {
			x := float32(ix)*width - width/2
			b.vertex(x, y, 0, 0, 0, 1)
		}
	}
	a, bb, c, d := 0, 2, 3, 1
	b.tri(a, bb, d)
	b.tri(bb, c, d)
	return b.done()
}

// Cone returns a cylinder with a zero top radius.
func Cone(radius, height float32, radialSegments int) *Buffer {
	buf := cylinder(KindCone, 0, radius, height, radialSegments)
	buf.Params = map[string]float32{"radius": radius, "height": height, "radialSegments": float32(radialSegments)}
	return buf
}

// Cylinder returns a closed cylinder along Y, centered at the origin, with one height segment.
func Cylinder(radiusTop, radiusBottom, height float32, radialSegments int) *Buffer {
	return cylinder(KindCylinder, radiusTop, radiusBottom, height, radialSegments)
}

func cylinder(kind Kind, radiusTop, radiusBottom, height float32, radialSegments int) *Buffer {
	b := newBuilder(kind, map[string]float32{
		"radiusTop":      radiusTop,
		"radiusBottom":   radiusBottom,
		"height":         height,
		"radialSegments": float32(radialSegments),
	}, VertexBound(kind, radialSegments))
	halfHeight := height / 2
	slope := (radiusBottom - radiusTop) / height

	var rows [2][]int
	for y := 0; y <= 1; y++ {
		v := float32(y)
		radius := v*(radiusBottom-radiusTop) + radiusTop
		row := make([]int, radialSegments+1)
		for x := 0; x <= radialSegments; x++ {
			theta := float32(x) / float32(radialSegments) * 2 * math32.Pi
			sin, cos := math32.Sin(theta), math32.Cos(theta)
			nx, ny, nz := normalize(sin, slope, cos)
			row[x] = b.count()
			b.vertex(radius*sin, -v*height+halfHeight, radius*cos, nx, ny, nz)
		}
		rows[y] = row
	}
	for x := 0; x < radialSegments; x++ {
		a := rows[0][x]
		bb := rows[1][x]
		c := rows[1][x+1]
		d := rows[0][x+1]
		if radiusTop > 0 {
			b.tri(a, bb, d)
		}
		if radiusBottom > 0 {
			b.tri(bb, c, d)
		}
	}
	if radiusTop > 0 {
		cylinderCap(b, true, radiusTop, halfHeight, radialSegments)
	}
	if radiusBottom > 0 {
		cylinderCap(b, false, radiusBottom, halfHeight, radialSegments)
	}
	return b.done()
}

func cylinderCap(b *builder, top bool, radius, halfHeight float32, radialSegments int) {
	sign := float32(-1)
	if top {
		sign = 1
	}
	centerStart := b.count()
	for x := 0; x < radialSegments; x++ {
		b.vertex(0, halfHeight*sign, 0, 0, sign, 0)
	}
	ringStart := b.count()
	for x := 0; x <= radialSegments; x++ {
		theta := float32(x) / float32(radialSegments) * 2 * math32.Pi
		b.vertex(radius*math32.Sin(theta), halfHeight*sign, radius*math32.Cos(theta), 0, sign, 0)
	}
	for x := 0; x < radialSegments; x++ {
		c := centerStart + x
		i := ringStart + x
		if top {
			b.tri(i, i+1, c)
		} else {
			b.tri(i+1, i, c)
		}
	}
}

// Torus returns a ring torus in the XY plane. radius is the distance from the center to the tube center.
func Torus(radius, tube float32, radialSegments, tubularSegments int) *Buffer {
	b := newBuilder(KindTorus, map[string]float32{
		"radius":          radius,
		"tube":            tube,
		"radialSegments":  float32(radialSegments),
		"tubularSegments": float32(tubularSegments),
	}, VertexBound(KindTorus, radialSegments, tubularSegments))
	for j := 0; j <= radialSegments; j++ {
		v := float32(j) / float32(radialSegments) * 2 * math32.Pi
		for i := 0; i <= tubularSegments; i++ {
			u := float32(i) / float32(tubularSegments) * 2 * math32.Pi
			x := (radius + tube*math32.Cos(v)) * math32.Cos(u)
			y := (radius + tube*math32.Cos(v)) * math32.Sin(u)
			z := tube * math32.Sin(v)
			nx, ny, nz := normalize(x-radius*math32.Cos(u), y-radius*math32.Sin(u), z)
			b.vertex(x, y, z, nx, ny, nz)
		}
	}
	stride := tubularSegments + 1
	for j := 1; j <= radialSegments; j++ {
		for i := 1; i <= tubularSegments; i++ {
			a := stride*j + i - 1
			bb := stride*(j-1) + i - 1
			c := stride*(j-1) + i
			d := stride*j + i
			b.tri(a, bb, d)
			b.tri(bb, c, d)
		}
	}
	return b.done()
}

// Torus knot winding numbers: the tube winds p times around the symmetry axis and q times around the torus interior.
const (
	knotP = 2
	knotQ = 3
)

// TorusKnot returns a (2,3) torus knot swept with a circular tube.
func TorusKnot(radius, tube float32, tubularSegments, radialSegments int) *Buffer {
	b := newBuilder(KindTorusKnot, map[string]float32{
		"radius":          radius,
		"tube":            tube,
		"tubularSegments": float32(tubularSegments),
		"radialSegments":  float32(radialSegments),
	}, VertexBound(KindTorusKnot, tubularSegments, radialSegments))
	for i := 0; i <= tubularSegments; i++ {
		u := float32(i) / float32(tubularSegments) * knotP * 2 * math32.Pi
		p1 := knotCurve(u, radius)
		p2 := knotCurve(u+0.01, radius)
		tx, ty, tz := p2[0]-p1[0], p2[1]-p1[1], p2[2]-p1[2]
		nx, ny, nz := p2[0]+p1[0], p2[1]+p1[1], p2[2]+p1[2]
		bx, by, bz := cross(tx, ty, tz, nx, ny, nz)
		nx, ny, nz = cross(bx, by, bz, tx, ty, tz)
		bx, by, bz = normalize(bx, by, bz)
		nx, ny, nz = normalize(nx, ny, nz)
		for j := 0; j <= radialSegments; j++ {
			v := float32(j) / float32(radialSegments) * 2 * math32.Pi
			cx := -tube * math32.Cos(v)
			cy := tube * math32.Sin(v)
			x := p1[0] + cx*nx + cy*bx
			y := p1[1] + cx*ny + cy*by
			z := p1[2] + cx*nz + cy*bz
			vx, vy, vz := normalize(x-p1[0], y-p1[1], z-p1[2])
			b.vertex(x, y, z, vx, vy, vz)
		}
	}
	stride := radialSegments + 1
	for j := 1; j <= tubularSegments; j++ {
		for i := 1; i <= radialSegments; i++ {
			a := stride*(j-1) + (i - 1)
			bb := stride*j + (i - 1)
			c := stride*j + i
			d := stride*(j-1) + i
			b.tri(a, bb, d)
			b.tri(bb, c, d)
		}
	}
	return b.done()
}

func knotCurve(u, radius float32) [3]float32 {
	cu, su := math32.Cos(u), math32.Sin(u)
	quOverP := float32(knotQ) / float32(knotP) * u
	cs := math32.Cos(quOverP)
	return [3]float32{
		radius * (2 + cs) * 0.5 * cu,
		radius * (2 + cs) * su * 0.5,
		radius * math32.Sin(quOverP) * 0.5,
	}
}

// Circle returns a flat disk in the XY plane facing +Z: one center vertex plus segments+1 rim vertices.
func Circle(radius float32, segments int) *Buffer {
	b := newBuilder(KindCircle, map[string]float32{"radius": radius, "segments": float32(segments)}, VertexBound(KindCircle, segments))
	b.vertex(0, 0, 0, 0, 0, 1)
	for s := 0; s <= segments; s++ {
		theta := float32(s) / float32(segments) * 2 * math32.Pi
		b.vertex(radius*math32.Cos(theta), radius*math32.Sin(theta), 0, 0, 0, 1)
	}
	for i := 1; i <= segments; i++ {
		b.tri(i, i+1, 0)
	}
	return b.done()
}

// Ring returns a flat annulus in the XY plane facing +Z with a single radial band.
func Ring(innerRadius, outerRadius float32, thetaSegments int) *Buffer {
	b := newBuilder(KindRing, map[string]float32{
		"innerRadius":   innerRadius,
		"outerRadius":   outerRadius,
		"thetaSegments": float32(thetaSegments),
	}, VertexBound(KindRing, thetaSegments))
	for j := 0; j <= 1; j++ {
		radius := innerRadius + float32(j)*(outerRadius-innerRadius)
		for i := 0; i <= thetaSegments; i++ {
			theta := float32(i) / float32(thetaSegments) * 2 * math32.Pi
			b.vertex(radius*math32.Cos(theta), radius*math32.Sin(theta), 0, 0, 0, 1)
		}
	}
	for i := 0; i < thetaSegments; i++ {
		a := i
		bb := i + thetaSegments + 1
		c := i + thetaSegments + 2
		d := i + 1
		b.tri(a, bb, d)
		b.tri(bb, c, d)
	}
	return b.done()
}
