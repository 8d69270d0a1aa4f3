package opengl

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/retained"
)

// Input polls a GLFW window and implements retained.InputSource. Keys and
// buttons are read on every Poll; scroll offsets are accumulated by a
// callback between polls. Poll must run on the main thread.
type Input struct {
	window           *glfw.Window
	scrollX, scrollY float64
}

var _ retained.InputSource = (*Input)(nil)

// NewInput creates an input source for window and installs its scroll
// callback, chaining to any callback set before.
func NewInput(window *glfw.Window) *Input {
	in := &Input{window: window}
	var prev glfw.ScrollCallback
	prev = window.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		in.scrollX += xoff
		in.scrollY += yoff
		if prev != nil {
			prev(w, xoff, yoff)
		}
	})
	return in
}

// Poll returns the device state for the current tick.
func (in *Input) Poll() (retained.InputSnapshot, error) {
	var s retained.InputSnapshot
	for glfwKey, k := range keyMap {
		if in.window.GetKey(glfwKey) == glfw.Press {
			s.SetKey(k, true)
		}
	}
	for glfwButton, b := range buttonMap {
		if in.window.GetMouseButton(glfwButton) == glfw.Press {
			s.SetButton(b, true)
		}
	}

	x, y := in.window.GetCursorPos()
	s.MouseX, s.MouseY = int(x), int(y)
	s.ScrollX, s.ScrollY = int(in.scrollX), int(in.scrollY)
	// Keep fractional trackpad scroll for the next tick.
	in.scrollX -= float64(s.ScrollX)
	in.scrollY -= float64(s.ScrollY)

	// The window is the screen root controls are laid out in.
	w, h := in.window.GetSize()
	s.Client = retained.Rect{W: w, H: h}
	s.Screen = retained.Size{Width: w, Height: h}
	return s, nil
}

var buttonMap = map[glfw.MouseButton]retained.MouseButton{
	glfw.MouseButtonLeft:   retained.MouseButtonLeft,
	glfw.MouseButtonRight:  retained.MouseButtonRight,
	glfw.MouseButtonMiddle: retained.MouseButtonMiddle,
	glfw.MouseButton4:      retained.MouseButtonX1,
	glfw.MouseButton5:      retained.MouseButtonX2,
}

var keyMap = func() map[glfw.Key]retained.Key {
	m := map[glfw.Key]retained.Key{
		glfw.KeyTab:          retained.KeyTab,
		glfw.KeyLeft:         retained.KeyLeft,
		glfw.KeyRight:        retained.KeyRight,
		glfw.KeyUp:           retained.KeyUp,
		glfw.KeyDown:         retained.KeyDown,
		glfw.KeyPageUp:       retained.KeyPageUp,
		glfw.KeyPageDown:     retained.KeyPageDown,
		glfw.KeyHome:         retained.KeyHome,
		glfw.KeyEnd:          retained.KeyEnd,
		glfw.KeyInsert:       retained.KeyInsert,
		glfw.KeyDelete:       retained.KeyDelete,
		glfw.KeyBackspace:    retained.KeyBackspace,
		glfw.KeySpace:        retained.KeySpace,
		glfw.KeyEnter:        retained.KeyEnter,
		glfw.KeyKPEnter:      retained.KeyEnter,
		glfw.KeyEscape:       retained.KeyEscape,
		glfw.KeyLeftShift:    retained.KeyLeftShift,
		glfw.KeyRightShift:   retained.KeyRightShift,
		glfw.KeyLeftControl:  retained.KeyLeftControl,
		glfw.KeyRightControl: retained.KeyRightControl,
		glfw.KeyLeftAlt:      retained.KeyLeftAlt,
		glfw.KeyRightAlt:     retained.KeyRightAlt,
	}
	// GLFW and retained both number letters, digits and F-keys contiguously.
	for i := range 26 {
		m[glfw.KeyA+glfw.Key(i)] = retained.KeyA + retained.Key(i)
	}
	for i := range 10 {
		m[glfw.Key0+glfw.Key(i)] = retained.Key0 + retained.Key(i)
	}
	for i := range 12 {
		m[glfw.KeyF1+glfw.Key(i)] = retained.KeyF1 + retained.Key(i)
	}
	return m
}()
