package retained

// NavDirection is the direction of an arrow-key focus move.
type NavDirection uint8

const (
	NavUp NavDirection = iota
	NavDown
	NavLeft
	NavRight
)

// String returns a human-readable name for the navigation direction.
func (d NavDirection) String() string {
	switch d {
	case NavUp:
		return "Up"
	case NavDown:
		return "Down"
	case NavLeft:
		return "Left"
	case NavRight:
		return "Right"
	default:
		return "Unknown"
	}
}

// FocusedControl returns the control holding keyboard focus, or nil.
func (m *Manager) FocusedControl() *Control { return m.focused }

// SetFocus moves keyboard focus to c, or clears it when c is nil.
//
// A control that cannot focus redirects to its root. Focusing a root, or
// redirecting to one, keeps focus where it is when it is already somewhere
// under that root. The root of the new focus is brought to front. While a
// modal is active, controls outside it are refused.
func (m *Manager) SetFocus(c *Control) {
	if c != nil {
		if c.disposed || !c.visible || !c.enabled {
			return
		}
		if modal := m.ModalWindow(); modal != nil && c.root != modal {
			return
		}
		if !c.canFocus || c == c.root {
			r := c.root
			if m.focused != nil && m.focused.root == r {
				m.BringToFront(r)
				return
			}
			c = r
		}
	}
	if c == m.focused {
		if c != nil {
			m.BringToFront(c.root)
		}
		return
	}

	prev := m.focused
	m.focused = nil
	if prev != nil {
		prev.focused = false
		prev.Invalidate()
		prev.FocusLost.Emit(&EventArgs{Sender: prev})
	}
	m.focused = c
	if c != nil {
		c.focused = true
		c.Invalidate()
		m.BringToFront(c.root)
		c.FocusGained.Emit(&EventArgs{Sender: c})
	}
	m.log.Debug("focus changed", "from", controlName(prev), "to", controlName(c))
	m.FocusChanged.Emit(&EventArgs{Sender: c})
}

func controlName(c *Control) string {
	if c == nil {
		return "<nil>"
	}
	return c.String()
}

// tabStop reports whether Tab may land on c.
func (m *Manager) tabStop(c *Control) bool {
	return c.canFocus && c.parent != nil && c.enabled && !c.passive && m.checkState(c)
}

// FocusNext moves focus through the z-order list, forward or backward,
// wrapping around. Roots, disabled and non-focusable controls are skipped.
func (m *Manager) FocusNext(forward bool) {
	order := m.OrderList()
	n := len(order)
	if n == 0 {
		return
	}
	start := indexOf(order, m.focused)
	step := 1
	if !forward {
		step = -1
		if start < 0 {
			start = n
		}
	}
	for i := 1; i <= n; i++ {
		j := ((start+i*step)%n + n) % n
		if c := order[j]; c != m.focused && m.tabStop(c) {
			m.SetFocus(c)
			return
		}
	}
}

// FocusDirection moves focus to the nearest focusable sibling in direction
// d. Candidates are ranked by the distance between centers across the axis
// of movement, then by the gap between facing edges along it.
func (m *Manager) FocusDirection(d NavDirection) {
	cur := m.focused
	if cur == nil || cur.parent == nil {
		return
	}
	cr := cur.AbsoluteRect()
	ccx, ccy := cr.X+cr.W/2, cr.Y+cr.H/2

	var best *Control
	bestPerp, bestAlong := 0, 0
	for _, s := range cur.parent.children {
		if s == cur || !s.visible || !s.canFocus || !s.enabled || s.passive {
			continue
		}
		sr := s.AbsoluteRect()
		scx, scy := sr.X+sr.W/2, sr.Y+sr.H/2

		var perp, along int
		switch d {
		case NavLeft:
			if scx >= ccx {
				continue
			}
			perp, along = absInt(scy-ccy), absInt(cr.X-sr.Right())
		case NavRight:
			if scx <= ccx {
				continue
			}
			perp, along = absInt(scy-ccy), absInt(sr.X-cr.Right())
		case NavUp:
			if scy >= ccy {
				continue
			}
			perp, along = absInt(scx-ccx), absInt(cr.Y-sr.Bottom())
		case NavDown:
			if scy <= ccy {
				continue
			}
			perp, along = absInt(scx-ccx), absInt(sr.Y-cr.Bottom())
		default:
			return
		}

		if best == nil || perp < bestPerp || (perp == bestPerp && along < bestAlong) {
			best, bestPerp, bestAlong = s, perp, along
		}
	}
	if best != nil {
		m.SetFocus(best)
	}
}
