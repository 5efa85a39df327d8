// Package debug draws an optional frame-rate and heap readout in the bottom-left corner of the overlay.
package debug

import (
	"fmt"
	"image/color"
	"runtime"

	"github.com/dustin/go-humanize"

	"shape-viewer/internal/ui"
)

const (
	fontSize   = 18
	padding    = 12
	lineHeight = fontSize + 4
	// updateInterval: only refresh the text every N frames to reduce allocations.
	updateInterval = 30
)

var textColor = color.RGBA{G: 228, B: 48, A: 255}

// Stats holds the readout state. It is hidden by default.
type Stats struct {
	Show bool

	fps        func() int
	heap       func() uint64
	frameCount uint32
	fpsText    string
	memText    string
}

// New returns hidden Stats reading the frame rate from fps.
func New(fps func() int) *Stats {
	return &Stats{fps: fps, heap: heapAlloc}
}

func heapAlloc() uint64 {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return ms.Alloc
}

// Toggle flips visibility.
func (s *Stats) Toggle() {
	s.Show = !s.Show
	if s.Show {
		s.fpsText, s.memText = "", ""
	}
}

// Draw renders the readout when shown. Text is recomputed every updateInterval frames.
func (s *Stats) Draw(p ui.Painter, _, screenH int32) {
	s.frameCount++
	if !s.Show {
		return
	}
	if s.fpsText == "" || s.frameCount%updateInterval == 0 {
		s.fpsText = fmt.Sprintf("FPS: %d", s.fps())
		s.memText = "Mem: " + humanize.IBytes(s.heap())
	}
	y := screenH - padding - 2*lineHeight
	p.Text(s.fpsText, padding, y, fontSize, textColor)
	p.Text(s.memText, padding, y+lineHeight, fontSize, textColor)
}

// Lines returns the current readout text.
func (s *Stats) Lines() []string {
	return []string{s.fpsText, s.memText}
}
