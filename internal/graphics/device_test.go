package graphics

import (
	"strings"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"

	"shape-viewer/internal/engine"
	"shape-viewer/internal/logger"
)

func TestUseShaderFallsBackWhenInvalid(t *testing.T) {
	log := logger.New("")
	d := NewDevice(WindowOptions{}, log)
	d.shaderValid = func(rl.Shader) bool { return false }
	d.useShader(rl.Shader{ID: 7})
	if d.lit || d.shader.ID != 0 {
		t.Fatalf("invalid shader adopted: lit=%v id=%d", d.lit, d.shader.ID)
	}
	lines := log.Lines()
	if len(lines) != 1 || !strings.Contains(lines[0], "lit shader failed") {
		t.Fatalf("fallback not logged: %v", lines)
	}

	d.shaderValid = func(s rl.Shader) bool { return s.ID != 0 }
	d.useShader(rl.Shader{ID: 7})
	if !d.lit || d.shader.ID != 7 {
		t.Fatalf("valid shader not adopted: lit=%v id=%d", d.lit, d.shader.ID)
	}
	// Applying lights without a lit shader must not touch the GL state.
	d.lit = false
	d.applyLights(lights{}, engine.Vec3{Z: 5})
}
