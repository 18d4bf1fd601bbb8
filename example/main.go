// Example renders a window-scrolled virtual list with OpenGL and appends
// pages of rows when the bottom sentinel comes into range.
//
// Prerequisites:
//
//	Install devbox: https://www.jetify.com/devbox
//	devbox shell              # enter the dev environment (provides Go + OpenGL/X11 headers)
//	go run ./example/         # run this example
//
// Scroll with the wheel, arrow keys, PgUp/PgDn, Home/End. Escape quits.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/vlist"
	"github.com/go-theft-auto/vlist/backend/memory"
	"github.com/go-theft-auto/vlist/backend/opengl"
)

const (
	windowWidth  = 800
	windowHeight = 600
	windowTitle  = "vlist example"

	pageSize   = 200
	maxItems   = 2000
	loadFrames = 30 // simulated fetch latency
)

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// rowHeight gives rows a repeating pattern of heights.
func rowHeight(i int) float64 {
	return float64(24 + (i*7)%5*8)
}

func run() error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(windowWidth, windowHeight, windowTitle, nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1) // vsync

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	surface := opengl.NewGLFWWindow(window)
	doc := memory.NewDocument(surface.InnerHeight())
	host := doc.HostWithWindow(surface)

	list, err := vlist.New(pageSize,
		vlist.WithHeightFunc(rowHeight),
		vlist.WithScrollTarget(vlist.ScrollWindow),
		vlist.WithOverscan(5),
		vlist.WithHost(host),
	)
	if err != nil {
		return fmt.Errorf("virtualizer: %w", err)
	}
	defer list.Close()

	loading := false
	fetchDone := 0
	var sentinel *vlist.Sentinel
	var sentinelErr error
	sentinel, err = vlist.NewSentinel(host, func() {
		loading = true
		fetchDone = int(doc.Frames().FrameCount()) + loadFrames
		if err := sentinel.Update(vlist.WithLoading(true)); err != nil {
			sentinelErr = err
		}
	}, vlist.WithThreshold(300))
	if err != nil {
		return fmt.Errorf("sentinel: %w", err)
	}
	defer sentinel.Close()

	marker := doc.NewElement(1)
	sentinel.Ref()(marker)
	markerVisible := false

	fbw, fbh := window.GetFramebufferSize()
	painter := opengl.NewPainter(fbw, fbh, float32(fbw)/float32(windowWidth))

	for !window.ShouldClose() {
		glfw.PollEvents()
		doc.Tick()
		if sentinelErr != nil {
			return fmt.Errorf("sentinel: %w", sentinelErr)
		}

		if loading && int(doc.Frames().FrameCount()) >= fetchDone {
			next := list.ItemCount() + pageSize
			if next > maxItems {
				next = maxItems
			}
			list.SetItemCount(next)
			loading = false
			if err := sentinel.Update(vlist.WithLoading(false), vlist.WithHasMore(next < maxItems)); err != nil {
				return fmt.Errorf("sentinel: %w", err)
			}
			markerVisible = false
		}

		surface.SetContentHeight(list.TotalHeight())

		// The marker sits after the last row; report it entering the
		// extended viewport.
		vp := list.Viewport()
		visible := list.TotalHeight()-vp.ScrollOffset <= vp.ContainerHeight+300
		if visible != markerVisible {
			markerVisible = visible
			doc.Intersect(marker, visible)
		}

		w, h := window.GetFramebufferSize()
		ww, _ := window.GetSize()
		painter.Resize(w, h, float32(w)/float32(maxInt(ww, 1)))
		painter.Paint(list.Items(), vp.ScrollOffset)
		if loading {
			painter.Marker(list.TotalHeight()-4, vp.ScrollOffset, opengl.Color{R: 0.9, G: 0.6, B: 0.1, A: 1})
		}

		window.SwapBuffers()
	}

	return nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
