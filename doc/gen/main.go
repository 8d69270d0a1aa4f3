// Command gen builds sample control trees for each built-in skin, renders
// them through the OpenGL backend, captures the framebuffer and saves JPEG
// screenshots to doc/imgs/.
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
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/retained"
	"github.com/go-theft-auto/retained/backend/opengl"
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

// screenshot defines a single capture.
type screenshot struct {
	name   string // filename without extension
	width  int
	height int
	build  func(ui *retained.Manager) error
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

	renderer, err := opengl.NewRenderer(800, 600)
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer renderer.Delete()

	outDir := filepath.Join("doc", "imgs")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	skins := []*retained.SkinSet{retained.DefaultSkin(), retained.GTASkin()}
	n := 0
	for _, sk := range skins {
		for _, s := range screenshots() {
			name := sk.Name + "_" + s.name
			if err := capture(renderer, sk, s, filepath.Join(outDir, name+".jpg")); err != nil {
				return fmt.Errorf("capture %s: %w", name, err)
			}
			fmt.Printf("  %s.jpg (%dx%d)\n", name, s.width, s.height)
			n++
		}
	}
	fmt.Printf("\nGenerated %d screenshots in %s/\n", n, outDir)
	return nil
}

func capture(renderer *opengl.Renderer, sk *retained.SkinSet, s screenshot, path string) error {
	// Only the projection changes; the hidden window stays 800x600, larger
	// than every screenshot.
	renderer.Resize(s.width, s.height)

	// Fresh manager per screenshot so no state leaks between captures.
	ui, err := retained.NewManager(
		retained.WithSkin(sk),
		retained.WithRenderer(renderer),
		retained.WithScreenSize(s.width, s.height),
	)
	if err != nil {
		return err
	}
	if err := s.build(ui); err != nil {
		return err
	}
	if err := ui.Update(time.Second / 60); err != nil {
		return err
	}

	gl.Viewport(0, 0, int32(s.width), int32(s.height))
	gl.ClearColor(0.12, 0.12, 0.14, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	if err := ui.Draw(); err != nil {
		return err
	}
	for _, c := range ui.Controls() {
		c.Dispose()
	}

	pixels := make([]byte, s.width*s.height*4)
	gl.ReadPixels(0, 0, int32(s.width), int32(s.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))

	// OpenGL origin is bottom-left.
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

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return jpeg.Encode(f, img, &jpeg.Options{Quality: 90})
}

func window(ui *retained.Manager, text string, r retained.Rect) (*retained.Window, error) {
	w, err := retained.NewWindow(ui)
	if err != nil {
		return nil, err
	}
	w.SetText(text)
	w.SetBounds(r)
	return w, w.Show()
}

func button(parent *retained.Window, text string, r retained.Rect) (*retained.Button, error) {
	b, err := retained.NewButton(parent.Manager())
	if err != nil {
		return nil, err
	}
	b.SetText(text)
	b.SetBounds(r)
	return b, parent.Add(b.Control)
}

func screenshots() []screenshot {
	return []screenshot{
		{
			name: "window", width: 360, height: 240,
			build: func(ui *retained.Manager) error {
				w, err := window(ui, "Tools", retained.Rect{X: 20, Y: 20, W: 320, H: 200})
				if err != nil {
					return err
				}
				_, err = button(w, "OK", retained.Rect{X: 228, Y: 152, W: 80, H: 20})
				return err
			},
		},
		{
			name: "buttons", width: 360, height: 140,
			build: func(ui *retained.Manager) error {
				w, err := window(ui, "Buttons", retained.Rect{X: 20, Y: 20, W: 320, H: 100})
				if err != nil {
					return err
				}
				if _, err := button(w, "Normal", retained.Rect{X: 8, Y: 8, W: 90, H: 20}); err != nil {
					return err
				}
				focused, err := button(w, "Focused", retained.Rect{X: 108, Y: 8, W: 90, H: 20})
				if err != nil {
					return err
				}
				focused.Focus()
				disabled, err := button(w, "Disabled", retained.Rect{X: 208, Y: 8, W: 90, H: 20})
				if err != nil {
					return err
				}
				disabled.SetEnabled(false)
				return nil
			},
		},
		{
			name: "modal", width: 400, height: 300,
			build: func(ui *retained.Manager) error {
				if _, err := window(ui, "Editor", retained.Rect{X: 10, Y: 10, W: 380, H: 280}); err != nil {
					return err
				}
				dlg, err := retained.NewWindow(ui)
				if err != nil {
					return err
				}
				dlg.SetText("Discard changes?")
				dlg.SetBounds(retained.Rect{X: 100, Y: 110, W: 200, H: 80})
				if _, err := button(dlg, "Discard", retained.Rect{X: 8, Y: 28, W: 80, H: 20}); err != nil {
					return err
				}
				return dlg.ShowModal()
			},
		},
		{
			name: "alpha", width: 360, height: 240,
			build: func(ui *retained.Manager) error {
				if _, err := window(ui, "Back", retained.Rect{X: 20, Y: 20, W: 200, H: 150}); err != nil {
					return err
				}
				front, err := window(ui, "Translucent", retained.Rect{X: 120, Y: 70, W: 220, H: 150})
				if err != nil {
					return err
				}
				front.SetAlpha(160)
				return nil
			},
		},
	}
}
