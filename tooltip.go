package retained

import "time"

// tooltipState drives the hover tooltip on the manager clock.
type tooltipState struct {
	ctl     *Control
	target  *Control
	elapsed time.Duration
	shown   bool
	// dismissed blocks the tooltip until the hovered control changes.
	dismissed bool
}

// ToolTip returns the tooltip control, or nil before it was first shown.
func (m *Manager) ToolTip() *Control { return m.tip.ctl }

// ToolTipVisible reports whether a tooltip is on screen.
func (m *Manager) ToolTipVisible() bool { return m.tip.shown }

func (m *Manager) hideToolTip() {
	m.tip.elapsed = 0
	if !m.tip.shown {
		return
	}
	m.tip.shown = false
	if m.tip.ctl != nil {
		m.tip.ctl.SetVisible(false)
	}
}

// updateToolTip shows the hovered control's tooltip after ToolTipDelay and
// hides it again after ToolTipDismiss.
func (m *Manager) updateToolTip(dt time.Duration) error {
	t := m.hovered
	if !m.cfg.ToolTipsEnabled || t == nil || t.tip == "" || m.anyOwner() {
		m.hideToolTip()
		m.tip.target = t
		return nil
	}
	if t != m.tip.target {
		m.hideToolTip()
		m.tip.target = t
		m.tip.dismissed = false
	}
	if m.tip.dismissed {
		return nil
	}
	m.tip.elapsed += dt

	switch {
	case !m.tip.shown && m.tip.elapsed >= m.cfg.ToolTipDelay:
		return m.showToolTip(t)
	case m.tip.shown && m.tip.elapsed >= m.cfg.ToolTipDelay+m.cfg.ToolTipDismiss:
		m.hideToolTip()
		m.tip.dismissed = true
	}
	return nil
}

func (m *Manager) anyOwner() bool {
	for _, c := range m.owners {
		if c != nil {
			return true
		}
	}
	return false
}

func (m *Manager) showToolTip(t *Control) error {
	if m.tip.ctl == nil {
		c, err := NewControl(m, KindToolTip)
		if err != nil {
			return err
		}
		c.SetName("tooltip")
		c.SetPassive(true)
		c.SetCanFocus(false)
		c.SetStayOnTop(true)
		c.SetVisible(false)
		m.tip.ctl = c
	}
	c := m.tip.ctl
	if err := m.Add(c); err != nil {
		return err
	}

	c.SetText(t.tip)
	c.SetSize(TextWidth(t.tip)+8, GlyphHeight+8)
	x, y := m.mouse.X, m.mouse.Y+20
	if sw := m.screen.Width; sw > 0 && x+c.width > sw {
		x = max(sw-c.width, 0)
	}
	if sh := m.screen.Height; sh > 0 && y+c.height > sh {
		y = max(m.mouse.Y-c.height-4, 0)
	}
	c.SetPosition(x, y)
	c.SetVisible(true)
	m.BringToFront(c)
	m.tip.shown = true
	return nil
}
