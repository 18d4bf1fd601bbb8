// Package opengl provides a GLFW window host and an OpenGL painter for
// virtualized lists.
package opengl

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/go-theft-auto/vlist"
)

// Color is an RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float32
}

// Painter fills virtual item rows with scissored clears. It needs no shaders
// or buffers, so any current GL context will do.
type Painter struct {
	width  int
	height int
	scale  float32

	Background Color
	Even       Color
	Odd        Color
	Gap        float32
}

// NewPainter creates a painter for a framebuffer of width x height pixels.
// scale converts list pixels to framebuffer pixels (framebuffer width over
// window width).
func NewPainter(width, height int, scale float32) *Painter {
	if scale <= 0 {
		scale = 1
	}
	return &Painter{
		width:      width,
		height:     height,
		scale:      scale,
		Background: Color{0.12, 0.12, 0.14, 1},
		Even:       Color{0.22, 0.24, 0.30, 1},
		Odd:        Color{0.18, 0.20, 0.25, 1},
		Gap:        1,
	}
}

// Resize updates the framebuffer size.
func (p *Painter) Resize(width, height int, scale float32) {
	p.width, p.height = width, height
	if scale > 0 {
		p.scale = scale
	}
}

// Paint clears the frame and fills one row per item. Item rows are placed at
// Start - scrollOffset from the top of the framebuffer. It returns the number
// of rows that landed on screen.
func (p *Painter) Paint(items []vlist.VirtualItem, scrollOffset float64) int {
	gl.Viewport(0, 0, int32(p.width), int32(p.height))
	gl.Disable(gl.SCISSOR_TEST)
	p.clear(p.Background)

	gl.Enable(gl.SCISSOR_TEST)
	defer gl.Disable(gl.SCISSOR_TEST)

	drawn := 0
	for _, it := range items {
		top := float32(it.Start-scrollOffset) * p.scale
		h := float32(it.Size)*p.scale - p.Gap
		if h < 1 {
			h = 1
		}
		if top+h <= 0 || top >= float32(p.height) {
			continue
		}
		// GL scissor origin is bottom-left.
		y := float32(p.height) - top - h
		gl.Scissor(0, int32(y), int32(p.width), int32(h))
		if it.Index%2 == 0 {
			p.clear(p.Even)
		} else {
			p.clear(p.Odd)
		}
		drawn++
	}
	return drawn
}

// Marker fills a thin bar at the given list offset, used to show the sentinel.
func (p *Painter) Marker(y float64, scrollOffset float64, c Color) {
	top := float32(y-scrollOffset) * p.scale
	if top < 0 || top >= float32(p.height) {
		return
	}
	gl.Enable(gl.SCISSOR_TEST)
	gl.Scissor(0, int32(float32(p.height)-top-4), int32(p.width), 4)
	p.clear(c)
	gl.Disable(gl.SCISSOR_TEST)
}

func (p *Painter) clear(c Color) {
	gl.ClearColor(c.R, c.G, c.B, c.A)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}
