package graphics

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"shape-viewer/internal/engine"
)

// Lit shader: ambient term plus one directional light, two-sided so open shapes (plane, disk, ring)
// are lit from behind too. mvp, matNormal and colDiffuse are bound by raylib.
const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec3 vertexNormal;
uniform mat4 mvp;
uniform mat4 matNormal;
out vec3 fragNormal;
void main() {
  fragNormal = normalize(vec3(matNormal * vec4(vertexNormal, 0.0)));
  gl_Position = mvp * vec4(vertexPosition, 1.0);
}
`
	litFS = `#version 330
in vec3 fragNormal;
out vec4 finalColor;
uniform vec4 colDiffuse;
uniform vec3 ambientColor;
uniform vec3 lightDir;
uniform vec3 lightColor;
void main() {
  vec3 n = normalize(fragNormal);
  if (!gl_FrontFacing) n = -n;
  float diffuse = max(dot(n, lightDir), 0.0);
  finalColor = vec4(colDiffuse.rgb * (ambientColor + lightColor * diffuse), colDiffuse.a);
}
`
)

func loadLitShader() rl.Shader {
	return rl.LoadShaderFromMemory(litVS, litFS)
}

type lights struct {
	ambient     []*engine.AmbientLight
	directional []*engine.DirectionalLight
}

func collectLights(scene *engine.Scene) lights {
	var l lights
	for _, obj := range scene.Children() {
		switch o := obj.(type) {
		case *engine.AmbientLight:
			l.ambient = append(l.ambient, o)
		case *engine.DirectionalLight:
			l.directional = append(l.directional, o)
		}
	}
	return l
}

// applyLights sums ambient lights and uses the first directional light, which points from its position to the origin.
func (d *Device) applyLights(l lights, eye engine.Vec3) {
	if !d.lit {
		return
	}
	ambient := []float32{0, 0, 0}
	for _, a := range l.ambient {
		c := scaled(a.Color, a.Intensity)
		for i := range ambient {
			ambient[i] += c[i]
		}
	}
	dir := rl.Vector3Normalize(vec3(eye))
	lightColor := []float32{0, 0, 0}
	if len(l.directional) > 0 {
		dl := l.directional[0]
		dir = rl.Vector3Normalize(vec3(dl.Position))
		lightColor = scaled(dl.Color, dl.Intensity)
	}
	rl.SetShaderValue(d.shader, rl.GetShaderLocation(d.shader, "ambientColor"), ambient, rl.ShaderUniformVec3)
	rl.SetShaderValue(d.shader, rl.GetShaderLocation(d.shader, "lightDir"), []float32{dir.X, dir.Y, dir.Z}, rl.ShaderUniformVec3)
	rl.SetShaderValue(d.shader, rl.GetShaderLocation(d.shader, "lightColor"), lightColor, rl.ShaderUniformVec3)
}

// Helper line colors.
var (
	axisX      = rl.NewColor(255, 0, 0, 255)
	axisY      = rl.NewColor(0, 255, 0, 255)
	axisZ      = rl.NewColor(0, 0, 255, 255)
	gridCenter = rl.NewColor(0x44, 0x44, 0x44, 255)
	gridLine   = rl.NewColor(0x88, 0x88, 0x88, 255)
)

// drawAxes draws the X, Y and Z axes from the origin, size units long.
func drawAxes(size float32) {
	origin := rl.NewVector3(0, 0, 0)
	rl.DrawLine3D(origin, rl.NewVector3(size, 0, 0), axisX)
	rl.DrawLine3D(origin, rl.NewVector3(0, size, 0), axisY)
	rl.DrawLine3D(origin, rl.NewVector3(0, 0, size), axisZ)
}

// drawGrid draws a size x size grid on the XZ plane, centered on the origin, with divisions cells per side.
// Reuses start/end vectors to avoid per-frame allocations.
func drawGrid(size float32, divisions int) {
	if divisions <= 0 {
		return
	}
	half := size / 2
	step := size / float32(divisions)
	var start, end rl.Vector3
	for i := 0; i <= divisions; i++ {
		k := -half + float32(i)*step
		c := gridLine
		if 2*i == divisions {
			c = gridCenter
		}
		start.X, start.Y, start.Z = -half, 0, k
		end.X, end.Y, end.Z = half, 0, k
		rl.DrawLine3D(start, end, c)
		start.X, start.Y, start.Z = k, 0, -half
		end.X, end.Y, end.Z = k, 0, half
		rl.DrawLine3D(start, end, c)
	}
}
