// Command gen renders sample list states with the OpenGL painter, captures
// framebuffer pixels, and saves JPEG screenshots to doc/imgs/.
//
// Usage:
//
//	devbox shell
//	go run ./doc/gen/
package main

import (
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/vlist"
	"github.com/go-theft-auto/vlist/backend/memory"
	"github.com/go-theft-auto/vlist/backend/opengl"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// screenshot defines a single list state to capture.
type screenshot struct {
	name     string          // filename without extension
	width    int             // viewport width
	height   int             // viewport height
	count    int             // item count
	opts     []vlist.Option  // extra virtualizer options
	offset   float64         // scroll offset
	measured map[int]float64 // heights reported through MeasureRef
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
	glfw.WindowHint(glfw.Visible, glfw.False)

	window, err := glfw.CreateWindow(800, 600, "screenshot-gen", nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	outDir := filepath.Join("doc", "imgs")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	shots := buildScreenshots()

	for _, s := range shots {
		if err := capture(s, outDir); err != nil {
			return fmt.Errorf("capture %s: %w", s.name, err)
		}
		fmt.Printf("  %s.jpg (%dx%d)\n", s.name, s.width, s.height)
	}

	fmt.Printf("\nGenerated %d screenshots in %s/\n", len(shots), outDir)
	return nil
}

func capture(s screenshot, outDir string) error {
	// The hidden window stays at 800x600, larger than every screenshot, so
	// only the painter's framebuffer size changes.
	doc := memory.NewDocument(float64(s.height))
	opts := append([]vlist.Option{
		vlist.WithContainerHeight(float64(s.height)),
		vlist.WithHost(doc.Host()),
	}, s.opts...)

	list, err := vlist.New(s.count, opts...)
	if err != nil {
		return err
	}
	defer list.Close()

	for i, h := range s.measured {
		list.MeasureRef(i)(doc.NewElement(h))
	}
	list.SetScrollOffset(s.offset)
	doc.Flush(4)

	painter := opengl.NewPainter(s.width, s.height, 1)
	painter.Paint(list.Items(), s.offset)

	pixels := make([]byte, s.width*s.height*4)
	gl.ReadPixels(0, 0, int32(s.width), int32(s.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))

	// Flip vertically (OpenGL origin is bottom-left)
	rowLen := s.width * 4
	tmp := make([]byte, rowLen)
	for y := 0; y < s.height/2; y++ {
		top := y * rowLen
		bot := (s.height - 1 - y) * rowLen
		copy(tmp, pixels[top:top+rowLen])
		copy(pixels[top:top+rowLen], pixels[bot:bot+rowLen])
		copy(pixels[bot:bot+rowLen], tmp)
	}

	img := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	copy(img.Pix, pixels)

	path := filepath.Join(outDir, s.name+".jpg")
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return jpeg.Encode(f, img, &jpeg.Options{Quality: 90})
}

// buildScreenshots returns the list states to capture.
func buildScreenshots() []screenshot {
	return []screenshot{
		{
			name: "uniform_top", width: 320, height: 240, count: 1000,
			opts: []vlist.Option{vlist.WithFixedHeight(24)},
		},
		{
			name: "uniform_scrolled", width: 320, height: 240, count: 1000,
			opts:   []vlist.Option{vlist.WithFixedHeight(24)},
			offset: 10_000,
		},
		{
			name: "variable", width: 320, height: 240, count: 500,
			opts: []vlist.Option{vlist.WithHeightFunc(func(i int) float64 {
				return float64(16 + (i%4)*12)
			})},
			offset: 1_200,
		},
		{
			name: "measured", width: 320, height: 240, count: 50,
			opts: []vlist.Option{
				vlist.WithFixedHeight(30),
				vlist.WithItemSpacing(4),
				vlist.MeasureItemHeight(),
			},
			measured: map[int]float64{0: 60, 1: 20, 2: 90, 3: 40, 4: 45},
		},
	}
}
