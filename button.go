package retained

// Button is a focusable control that also clicks on Enter or Space.
type Button struct {
	*Control
}

// NewButton creates a button with the Button skin kind.
func NewButton(m *Manager) (*Button, error) {
	c, err := NewControl(m, KindButton)
	if err != nil {
		return nil, err
	}
	b := &Button{Control: c}
	c.SetBehavior(b)
	c.KeyPress.Subscribe(b.onKeyPress)
	return b, nil
}

func (b *Button) skinLayers() []string { return []string{LayerControl} }

func (b *Button) onKeyPress(e *KeyEventArgs) {
	if e.Repeat || (e.Key != KeyEnter && e.Key != KeySpace) {
		return
	}
	e.Handled = true
	b.Click.Emit(&MouseEventArgs{Sender: b.Control, Button: MouseButtonNone, Position: b.m.mouse})
}

// Paint draws the button face with its text centered.
func (b *Button) Paint(c *Control, dl *DrawList, r Rect) error {
	l, err := c.PaintLayer(dl, r, LayerControl)
	if err != nil {
		return err
	}
	if c.text == "" {
		return nil
	}
	x := r.X + (r.W-TextWidth(c.text))/2
	y := r.Y + (r.H-GlyphHeight)/2
	if c.pressed[MouseButtonLeft] {
		x++
		y++
	}
	dl.AddText(x, y, c.text, c.LayerTextColor(l))
	return nil
}
