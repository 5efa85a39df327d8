// Package graphics is the raylib backend: it implements the engine Device and Renderer, the host
// Container and the overlay Painter, and runs the main loop that pumps the frame queue.
package graphics

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"shape-viewer/internal/host"
	"shape-viewer/internal/ui"
)

// Hooks connect the main loop to the application. Nil hooks are skipped.
type Hooks struct {
	// Resize runs when the window size changed since the last frame.
	Resize func()
	// Key runs once per typed character.
	Key func(r rune) bool
	// Click runs on a left mouse press with window coordinates.
	Click func(x, y int32) bool
	// Overlay lays out and draws the 2D UI after the 3D scene.
	Overlay func(p ui.Painter, width, height int32)
	// Title returns the window title; it is applied when it changes.
	Title func() string
}

// Run pumps input and the frame queue until the window is closed or the renderer disposes it.
// Each iteration: dispatch resize, typed keys and clicks, then draw the queued frames and the overlay.
// When no frame is queued the window is cleared to background.
func Run(dev *Device, frames *host.FrameQueue, background color.RGBA, hooks Hooks) {
	painter := &Painter{}
	title := ""
	for dev.Open() && !rl.WindowShouldClose() {
		if rl.IsWindowResized() && hooks.Resize != nil {
			hooks.Resize()
		}
		for r := rl.GetCharPressed(); r != 0; r = rl.GetCharPressed() {
			if hooks.Key != nil {
				hooks.Key(rune(r))
			}
		}
		if rl.IsMouseButtonPressed(rl.MouseButtonLeft) && hooks.Click != nil {
			pos := rl.GetMousePosition()
			hooks.Click(int32(pos.X), int32(pos.Y))
		}
		if !dev.Open() {
			break
		}

		rl.BeginDrawing()
		if frames.Tick() == 0 {
			rl.ClearBackground(background)
		}
		if hooks.Overlay != nil {
			hooks.Overlay(painter, int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight()))
		}
		rl.EndDrawing()

		if hooks.Title != nil {
			if t := hooks.Title(); t != title {
				rl.SetWindowTitle(t)
				title = t
			}
		}
	}
}

// FPS returns raylib's current frame rate.
func FPS() int {
	return int(rl.GetFPS())
}

// Window is the host.Container for the raylib window.
type Window struct {
	dev *Device
}

// Size returns the window size, or the configured size before the window opens.
func (w *Window) Size() (int, int) {
	if !w.dev.open {
		return w.dev.opts.Width, w.dev.opts.Height
	}
	return rl.GetScreenWidth(), rl.GetScreenHeight()
}

// PixelRatio returns the monitor's DPI scale, 1 before the window opens.
func (w *Window) PixelRatio() float32 {
	if !w.dev.open {
		return 1
	}
	if s := rl.GetWindowScaleDPI().X; s > 0 {
		return s
	}
	return 1
}

// Painter draws overlay primitives with raylib's default font.
type Painter struct{}

// FillRect implements ui.Painter.
func (*Painter) FillRect(r ui.Rect, c color.RGBA) {
	rl.DrawRectangle(r.X, r.Y, r.W, r.H, c)
}

// StrokeRect implements ui.Painter with a 1px outline.
func (*Painter) StrokeRect(r ui.Rect, c color.RGBA) {
	rl.DrawRectangleLines(r.X, r.Y, r.W, r.H, c)
}

// Text implements ui.Painter.
func (*Painter) Text(s string, x, y, size int32, c color.RGBA) {
	rl.DrawText(s, x, y, size, c)
}
