// Example opens a GLFW window with a tools window built from a layout file,
// a modal confirmation dialog and a tooltip.
//
// Prerequisites:
//
//	Install devbox: https://www.jetify.com/devbox
//	devbox shell              # enter the dev environment (provides Go + OpenGL/X11 headers)
//	go run ./example/         # run this example
//	go run ./example/ -config ui.toml -skin editor.toml -v
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/retained"
	"github.com/go-theft-auto/retained/backend/opengl"
	"github.com/go-theft-auto/retained/inspect"
	"github.com/go-theft-auto/retained/layout"
	"github.com/go-theft-auto/retained/skin"
)

const (
	windowWidth  = 800
	windowHeight = 600
	windowTitle  = "retained example"
)

const toolsLayout = `
[[control]]
class = "Window"
name = "tools"
props = { left = 40, top = 40, width = 320, height = 200, text = "Tools" }

  [[control.children]]
  class = "Button"
  name = "count"
  props = { left = 8, top = 8, width = 160, text = "Click me (0)", tooltip = "Counts clicks; double-click adds ten" }

  [[control.children]]
  class = "Button"
  name = "quit"
  props = { left = 236, top = 152, text = "Quit", anchor = ["right", "bottom"] }
`

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "TOML file with timing and sizing settings")
	skinPath := flag.String("skin", "", "TOML skin file layered over the GTA skin")
	verbose := flag.Bool("v", false, "log debug output")
	flag.Parse()

	retained.SetVerbose(*verbose)
	if err := run(*configPath, *skinPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath, skinPath string) error {
	cfg := retained.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = retained.LoadConfig(configPath); err != nil {
			return err
		}
	}
	sk := retained.GTASkin()
	if skinPath != "" {
		var err error
		if sk, err = skin.Load(skinPath, skin.WithBase(sk)); err != nil {
			return err
		}
	}

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

	renderer, err := opengl.NewRenderer(windowWidth, windowHeight)
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer renderer.Delete()

	ui, err := retained.NewManager(
		retained.WithConfig(cfg),
		retained.WithSkin(sk),
		retained.WithRenderer(renderer),
		retained.WithInput(opengl.NewInput(window)),
		retained.WithScreenSize(windowWidth, windowHeight),
		retained.WithSnapping(retained.DefaultSnapConfig()),
	)
	if err != nil {
		return err
	}

	l, err := layout.Parse(ui, []byte(toolsLayout))
	if err != nil {
		return err
	}
	tools := l.Control("tools").Behavior().(*retained.Window)
	count := l.Control("count").Behavior().(*retained.Button)
	quit := l.Control("quit").Behavior().(*retained.Button)

	clicks := 0
	count.Click.Subscribe(func(*retained.MouseEventArgs) {
		clicks++
		count.SetText(fmt.Sprintf("Click me (%d)", clicks))
	})
	count.DoubleClick.Subscribe(func(*retained.MouseEventArgs) {
		clicks += 10
		count.SetText(fmt.Sprintf("Click me (%d)", clicks))
	})

	confirm, err := newConfirm(ui, func() { window.SetShouldClose(true) })
	if err != nil {
		return err
	}
	quit.Click.Subscribe(func(*retained.MouseEventArgs) {
		if err := confirm.ShowModal(); err != nil {
			slog.Error("show confirm", "err", err)
		}
	})
	if err := tools.Show(); err != nil {
		return err
	}

	window.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		renderer.Resize(w, h)
	})
	window.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if key == glfw.KeyF12 && action == glfw.Press {
			fmt.Println(inspect.Tree(ui))
		}
	})

	last := time.Now()
	for !window.ShouldClose() {
		glfw.PollEvents()
		now := time.Now()
		if err := ui.Update(now.Sub(last)); err != nil {
			return err
		}
		last = now

		w, h := window.GetFramebufferSize()
		gl.Viewport(0, 0, int32(w), int32(h))
		gl.ClearColor(0.12, 0.12, 0.14, 1.0)
		gl.Clear(gl.COLOR_BUFFER_BIT)

		if err := ui.Draw(); err != nil {
			return err
		}
		window.SwapBuffers()
	}

	l.Dispose()
	confirm.Dispose()
	return nil
}

// newConfirm builds a small dialog whose OK button calls onConfirm.
func newConfirm(ui *retained.Manager, onConfirm func()) (*retained.Window, error) {
	dlg, err := retained.NewWindow(ui)
	if err != nil {
		return nil, err
	}
	dlg.SetText("Quit?")
	dlg.SetBounds(retained.Rect{X: 300, Y: 250, W: 200, H: 80})
	dlg.SetResizable(false)
	dlg.SetVisible(false)

	ok, err := retained.NewButton(ui)
	if err != nil {
		return nil, err
	}
	ok.SetText("OK")
	ok.SetBounds(retained.Rect{X: 8, Y: 28, W: 80, H: 20})

	cancel, err := retained.NewButton(ui)
	if err != nil {
		return nil, err
	}
	cancel.SetText("Cancel")
	cancel.SetBounds(retained.Rect{X: 104, Y: 28, W: 80, H: 20})

	for _, b := range []*retained.Button{ok, cancel} {
		if err := dlg.Add(b.Control); err != nil {
			return nil, err
		}
	}
	ok.Click.Subscribe(func(*retained.MouseEventArgs) {
		if dlg.Close() {
			onConfirm()
		}
	})
	cancel.Click.Subscribe(func(*retained.MouseEventArgs) { dlg.Close() })
	return dlg, nil
}
