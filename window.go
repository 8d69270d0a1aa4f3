package retained

// Window is a movable, resizable top-level container with a caption.
type Window struct {
	*Control

	// Closing fires before the window closes; set Cancel to keep it open.
	Closing Event[*WindowClosingEventArgs]
	// Closed fires after the window was hidden.
	Closed Event[*EventArgs]
}

// NewWindow creates a window with the Window skin kind.
func NewWindow(m *Manager) (*Window, error) {
	c, err := NewControl(m, KindWindow)
	if err != nil {
		return nil, err
	}
	w := &Window{Control: c}
	if err := checkLayers(c.skin, w.skinLayers()); err != nil {
		m.unregister(c)
		return nil, err
	}
	c.SetBehavior(w)
	c.SetMovable(true)
	c.SetResizable(true)
	c.Resize.Subscribe(func(*ResizeEventArgs) { w.updateCaptionArea() })
	c.SkinChanged.Subscribe(func(*EventArgs) { w.updateCaptionArea() })
	w.updateCaptionArea()
	return w, nil
}

func (w *Window) skinLayers() []string { return []string{LayerControl, LayerCaption} }

// CaptionHeight returns the height of the caption strip above the client
// area.
func (w *Window) CaptionHeight() int {
	return max(w.ClientMargins().Top-w.OriginMargins().Top, 0)
}

func (w *Window) updateCaptionArea() {
	w.SetMovableArea(Rect{W: w.width, H: w.CaptionHeight()})
}

// Active reports whether focus is inside the window.
func (w *Window) Active() bool {
	return inSubtree(w.Control, w.m.focused)
}

// Show attaches the window as a root control if needed, makes it visible
// and focuses it.
func (w *Window) Show() error {
	if w.parent == nil {
		if err := w.m.Add(w.Control); err != nil {
			return err
		}
	}
	w.SetVisible(true)
	w.m.BringToFront(w.Control)
	w.m.SetFocus(w.Control)
	return nil
}

// ShowModal shows the window and makes it the active modal.
func (w *Window) ShowModal() error {
	return w.m.ShowModal(w.Control)
}

// IsModal reports whether the window is on the modal stack.
func (w *Window) IsModal() bool { return indexOf(w.m.modals, w.Control) >= 0 }

// Close asks Closing subscribers, then the manager's WindowClosing
// subscribers, whether the window may close. It returns false when one of
// them cancelled.
func (w *Window) Close() bool {
	args := &WindowClosingEventArgs{Sender: w.Control}
	w.Closing.Emit(args)
	if !args.Cancel {
		w.m.WindowClosing.Emit(args)
	}
	if args.Cancel {
		return false
	}
	w.m.CloseModal(w.Control)
	w.SetVisible(false)
	w.Closed.Emit(&EventArgs{Sender: w.Control})
	return true
}

// Paint draws the frame, then the caption strip and its text.
func (w *Window) Paint(c *Control, dl *DrawList, r Rect) error {
	if _, err := c.PaintLayer(dl, r, LayerControl); err != nil {
		return err
	}
	l, err := c.skin.Layer(LayerCaption)
	if err != nil {
		return err
	}
	om := c.OriginMargins()
	bar := Rect{X: r.X + om.Left, Y: r.Y + om.Top, W: c.width, H: w.CaptionHeight()}
	if l.Height > 0 {
		bar.H = min(bar.H, l.Height)
	}
	state := c.State()
	if w.Active() {
		state = StateFocused
	}
	dl.AddRect(bar, l.Color.For(state))
	if c.text != "" {
		dl.PushClip(bar.Intersect(rectFromClip(dl.ClipRect())))
		dl.AddText(bar.X+4, bar.Y+(bar.H-GlyphHeight)/2, c.text, c.LayerTextColor(l))
		dl.PopClip()
	}
	return nil
}

func rectFromClip(c [4]float32) Rect {
	return Rect{X: int(c[0]), Y: int(c[1]), W: int(c[2] - c[0]), H: int(c[3] - c[1])}
}
