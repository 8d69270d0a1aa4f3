package retained

import "math"

const unbounded = math.MaxInt32

// Left returns the x position relative to the parent's client area.
func (c *Control) Left() int { return c.left }

// Top returns the y position relative to the parent's client area.
func (c *Control) Top() int { return c.top }

// Width returns the logical width.
func (c *Control) Width() int { return c.width }

// Height returns the logical height.
func (c *Control) Height() int { return c.height }

// Bounds returns the logical rectangle relative to the parent's client area.
func (c *Control) Bounds() Rect { return Rect{X: c.left, Y: c.top, W: c.width, H: c.height} }

// SetPosition writes left and top directly. Anchor margins are not
// recomputed and no Move notification fires.
func (c *Control) SetPosition(left, top int) {
	c.left, c.top = left, top
	c.Invalidate()
}

// SetLeft moves c horizontally and recomputes its anchor margins.
func (c *Control) SetLeft(v int) {
	if c.left == v {
		return
	}
	old := c.left
	c.left = v
	c.updateMargins()
	c.Invalidate()
	if !c.suspended {
		c.Move.Emit(&MoveEventArgs{Sender: c, Left: v, Top: c.top, OldLeft: old, OldTop: c.top})
	}
}

// SetTop moves c vertically and recomputes its anchor margins.
func (c *Control) SetTop(v int) {
	if c.top == v {
		return
	}
	old := c.top
	c.top = v
	c.updateMargins()
	c.Invalidate()
	if !c.suspended {
		c.Move.Emit(&MoveEventArgs{Sender: c, Left: c.left, Top: v, OldLeft: c.left, OldTop: old})
	}
}

// SetWidth clamps v to [MinimumWidth, MaximumWidth] and resizes c.
func (c *Control) SetWidth(v int) {
	maxW := c.MaximumWidth()
	v = clampInt(v, c.minW, maxW)
	if om := c.OriginMargins().Horizontal(); om > 0 && v+om > maxW {
		v = max(maxW-om, c.minW)
	}
	if v == c.width {
		return
	}
	old := c.width
	c.width = v
	c.updateMargins()
	c.Invalidate()
	if !c.suspended {
		c.Resize.Emit(&ResizeEventArgs{Sender: c, Width: v, Height: c.height, OldWidth: old, OldHeight: c.height})
	}
}

// SetHeight clamps v to [MinimumHeight, MaximumHeight] and resizes c.
func (c *Control) SetHeight(v int) {
	maxH := c.MaximumHeight()
	v = clampInt(v, c.minH, maxH)
	if om := c.OriginMargins().Vertical(); om > 0 && v+om > maxH {
		v = max(maxH-om, c.minH)
	}
	if v == c.height {
		return
	}
	old := c.height
	c.height = v
	c.updateMargins()
	c.Invalidate()
	if !c.suspended {
		c.Resize.Emit(&ResizeEventArgs{Sender: c, Width: c.width, Height: v, OldWidth: c.width, OldHeight: old})
	}
}

// SetSize sets width then height.
func (c *Control) SetSize(w, h int) {
	c.SetWidth(w)
	c.SetHeight(h)
}

// SetBounds sets position then size.
func (c *Control) SetBounds(r Rect) {
	c.SetLeft(r.X)
	c.SetTop(r.Y)
	c.SetSize(r.W, r.H)
}

// MinimumWidth returns the lower width bound.
func (c *Control) MinimumWidth() int { return c.minW }

// MinimumHeight returns the lower height bound.
func (c *Control) MinimumHeight() int { return c.minH }

// MaximumWidth returns the upper width bound, never larger than the screen.
func (c *Control) MaximumWidth() int {
	m := c.maxW
	if m <= 0 {
		m = unbounded
	}
	if sw := c.m.screen.Width; sw > 0 && m > sw {
		m = sw
	}
	return m
}

// MaximumHeight returns the upper height bound, never larger than the screen.
func (c *Control) MaximumHeight() int {
	m := c.maxH
	if m <= 0 {
		m = unbounded
	}
	if sh := c.m.screen.Height; sh > 0 && m > sh {
		m = sh
	}
	return m
}

// SetMinimumSize sets the lower bounds and re-clamps the current size.
func (c *Control) SetMinimumSize(w, h int) {
	c.minW, c.minH = max(w, 0), max(h, 0)
	c.SetSize(c.width, c.height)
}

// SetMaximumSize sets the upper bounds and re-clamps the current size. Zero
// means bounded by the screen only.
func (c *Control) SetMaximumSize(w, h int) {
	c.maxW, c.maxH = max(w, 0), max(h, 0)
	c.SetSize(c.width, c.height)
}

// Anchor returns the anchored parent edges.
func (c *Control) Anchor() Anchors { return c.anchor }

// SetAnchor selects the parent edges c follows and captures the current
// margins.
func (c *Control) SetAnchor(a Anchors) {
	c.anchor = a
	c.updateMargins()
}

// AnchorMargins returns the distances to each parent edge captured at the
// last explicit move or resize.
func (c *Control) AnchorMargins() Margins { return c.margins }

// OriginMargins returns how far the painted area extends past the logical
// rectangle.
func (c *Control) OriginMargins() Margins {
	if c.skin == nil {
		return Margins{}
	}
	return c.skin.OriginMargins
}

// ClientMargins returns the inset of the area children are placed in.
func (c *Control) ClientMargins() Margins {
	if c.skin == nil {
		return Margins{}
	}
	return c.skin.ClientMargins
}

// ClientWidth returns the width of the client area.
func (c *Control) ClientWidth() int {
	return c.width + c.OriginMargins().Horizontal() - c.ClientMargins().Horizontal()
}

// ClientHeight returns the height of the client area.
func (c *Control) ClientHeight() int {
	return c.height + c.OriginMargins().Vertical() - c.ClientMargins().Vertical()
}

// Scroll returns the offset applied to children.
func (c *Control) Scroll() Point { return c.scroll }

// SetScroll shifts the children of c by -p.
func (c *Control) SetScroll(p Point) {
	if c.scroll != p {
		c.scroll = p
		c.Invalidate()
	}
}

// parentClientSize returns the size the anchor margins are measured in.
// Root controls are measured against the screen.
func (c *Control) parentClientSize() (int, int) {
	if c.parent != nil {
		return c.parent.ClientWidth(), c.parent.ClientHeight()
	}
	return c.m.screen.Width, c.m.screen.Height
}

func (c *Control) updateMargins() {
	pw, ph := c.parentClientSize()
	c.margins = Margins{
		Left:   c.left,
		Top:    c.top,
		Right:  pw - c.width - c.left,
		Bottom: ph - c.height - c.top,
	}
}

func (c *Control) onParentResize(e *ResizeEventArgs) {
	c.processAnchor(e.Width-e.OldWidth, e.Height-e.OldHeight)
}

// processAnchor repositions or resizes c after its parent changed size by
// (dw, dh). Each axis uses the margins captured before the pass so the
// horizontal step cannot disturb the vertical one.
func (c *Control) processAnchor(dw, dh int) {
	pw, ph := c.parentClientSize()
	m := c.margins
	a := c.anchor

	switch {
	case a.Has(AnchorLeft | AnchorRight):
		c.SetWidth(pw - c.left - m.Right)
	case a.Has(AnchorRight):
		c.SetLeft(pw - c.width - m.Right)
	case !a.Has(AnchorLeft) && dw != 0:
		c.SetLeft(c.left + halfAwayFromZero(dw))
	}

	switch {
	case a.Has(AnchorTop | AnchorBottom):
		c.SetHeight(ph - c.top - m.Bottom)
	case a.Has(AnchorBottom):
		c.SetTop(ph - c.height - m.Bottom)
	case !a.Has(AnchorTop) && dh != 0:
		c.SetTop(c.top + halfAwayFromZero(dh))
	}
}

// halfAwayFromZero halves d, rounding odd values away from zero.
func halfAwayFromZero(d int) int {
	h := d / 2
	if d%2 != 0 {
		if d > 0 {
			h++
		} else {
			h--
		}
	}
	return h
}

// AbsoluteLeft returns the screen x of the logical rectangle. It walks the
// parent chain on every call.
func (c *Control) AbsoluteLeft() int {
	if c.parent == nil {
		return c.left
	}
	p := c.parent
	return p.AbsoluteLeft() - p.OriginMargins().Left + p.ClientMargins().Left + c.left - p.scroll.X
}

// AbsoluteTop returns the screen y of the logical rectangle.
func (c *Control) AbsoluteTop() int {
	if c.parent == nil {
		return c.top
	}
	p := c.parent
	return p.AbsoluteTop() - p.OriginMargins().Top + p.ClientMargins().Top + c.top - p.scroll.Y
}

// AbsoluteRect returns the logical rectangle in screen coordinates.
func (c *Control) AbsoluteRect() Rect {
	return Rect{X: c.AbsoluteLeft(), Y: c.AbsoluteTop(), W: c.width, H: c.height}
}

// OriginRect returns the painted rectangle in screen coordinates.
func (c *Control) OriginRect() Rect {
	om := c.OriginMargins()
	return Rect{
		X: c.AbsoluteLeft() - om.Left,
		Y: c.AbsoluteTop() - om.Top,
		W: c.width + om.Horizontal(),
		H: c.height + om.Vertical(),
	}
}

// ClientRect returns the client area in screen coordinates.
func (c *Control) ClientRect() Rect {
	o := c.OriginRect()
	cm := c.ClientMargins()
	return Rect{X: o.X + cm.Left, Y: o.Y + cm.Top, W: c.ClientWidth(), H: c.ClientHeight()}
}

// checkParent reports whether p lies inside the client area of every
// ancestor up to the first detached one.
func (c *Control) checkParent(p Point) bool {
	for x := c; x.parent != nil && !x.detached; x = x.parent {
		if !x.parent.ClientRect().Contains(p) {
			return false
		}
	}
	return true
}

// checkPosition reports whether p hits c and is not clipped by an ancestor.
func (c *Control) checkPosition(p Point) bool {
	return c.AbsoluteRect().Contains(p) && c.checkParent(p)
}
