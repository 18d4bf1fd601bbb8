package opengl

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/vlist"
)

// WheelStep is the scroll distance of one wheel notch in pixels.
const WheelStep = 40.0

// GLFWWindow adapts a GLFW window to vlist.Window. The window is the scroll
// surface: wheel and navigation keys move the offset, size changes resize
// the viewport.
type GLFWWindow struct {
	*vlist.ScrollSurface
	window *glfw.Window
}

// NewGLFWWindow installs scroll, key and size callbacks on window.
func NewGLFWWindow(window *glfw.Window) *GLFWWindow {
	_, h := window.GetSize()
	w := &GLFWWindow{
		ScrollSurface: vlist.NewScrollSurface(float64(h)),
		window:        window,
	}

	window.SetScrollCallback(w.scrollCallback)
	window.SetKeyCallback(w.keyCallback)
	window.SetSizeCallback(w.sizeCallback)

	return w
}

func (w *GLFWWindow) scrollCallback(_ *glfw.Window, _, yoff float64) {
	w.Wheel(yoff, WheelStep)
}

func (w *GLFWWindow) keyCallback(win *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	if action != glfw.Press && action != glfw.Repeat {
		return
	}
	switch key {
	case glfw.KeyUp:
		w.ScrollBy(-WheelStep)
	case glfw.KeyDown:
		w.ScrollBy(WheelStep)
	case glfw.KeyPageUp:
		w.PageUp()
	case glfw.KeyPageDown, glfw.KeySpace:
		w.PageDown()
	case glfw.KeyHome:
		w.Home()
	case glfw.KeyEnd:
		w.End()
	case glfw.KeyEscape:
		win.SetShouldClose(true)
	}
}

func (w *GLFWWindow) sizeCallback(_ *glfw.Window, _, height int) {
	w.SetInnerHeight(float64(height))
}
