package retained

// ResizableEdge is a bit set of control edges. Combinations give the four
// corner zones.
type ResizableEdge uint8

const (
	ResizeEdgeNone   ResizableEdge = 0
	ResizeEdgeLeft   ResizableEdge = 1 << 0
	ResizeEdgeRight  ResizableEdge = 1 << 1
	ResizeEdgeTop    ResizableEdge = 1 << 2
	ResizeEdgeBottom ResizableEdge = 1 << 3

	ResizeEdgeAll = ResizeEdgeLeft | ResizeEdgeRight | ResizeEdgeTop | ResizeEdgeBottom
)

type dragMode uint8

const (
	dragIdle dragMode = iota
	dragMoving
	dragResizing
)

// dragState tracks an interactive move or resize of one control.
type dragState struct {
	mode       dragMode
	edge       ResizableEdge
	startMouse Point
	start      Rect // Bounds() when the drag began

	outlining bool
	outline   Rect // proposed bounds, applied on release when outlining
}

// Movable reports whether the control can be dragged.
func (c *Control) Movable() bool { return c.movable }

// SetMovable enables dragging the control by its movable area.
func (c *Control) SetMovable(v bool) { c.movable = v }

// MovableArea returns the drag handle relative to the control. An empty
// rectangle means the whole control.
func (c *Control) MovableArea() Rect { return c.movableArea }

// SetMovableArea restricts where a press starts a move.
func (c *Control) SetMovableArea(r Rect) { c.movableArea = r }

// Resizable reports whether the control can be resized with the mouse.
func (c *Control) Resizable() bool { return c.resizable }

// SetResizable enables resizing by the border.
func (c *Control) SetResizable(v bool) { c.resizable = v }

// ResizeEdges returns the edges that may be dragged.
func (c *Control) ResizeEdges() ResizableEdge { return c.resizeEdges }

// SetResizeEdges restricts which edges may be dragged.
func (c *Control) SetResizeEdges(e ResizableEdge) { c.resizeEdges = e }

// ResizerSize returns the border thickness that starts a resize.
func (c *Control) ResizerSize() int {
	switch {
	case c.resizerSize >= 0:
		return c.resizerSize
	case c.skin != nil && c.skin.ResizerSize > 0:
		return c.skin.ResizerSize
	}
	return c.m.cfg.ResizerSize
}

// SetResizerSize overrides the skin border thickness. Negative restores it.
func (c *Control) SetResizerSize(v int) { c.resizerSize = v }

// IsMoving reports whether a move drag is in progress.
func (c *Control) IsMoving() bool { return c.drag.mode == dragMoving }

// IsResizing reports whether a resize drag is in progress.
func (c *Control) IsResizing() bool { return c.drag.mode == dragResizing }

// OutlineRect returns the ghost rectangle in screen coordinates while an
// outlined move or resize is in progress.
func (c *Control) OutlineRect() (Rect, bool) {
	if c.drag.mode == dragIdle || !c.drag.outlining {
		return Rect{}, false
	}
	dx := c.AbsoluteLeft() - c.left
	dy := c.AbsoluteTop() - c.top
	return c.drag.outline.Offset(dx, dy), true
}

// resizeEdgeAt returns the resize zone under p, a screen position.
func (c *Control) resizeEdgeAt(p Point) ResizableEdge {
	if !c.resizable {
		return ResizeEdgeNone
	}
	r := c.AbsoluteRect()
	if !r.Contains(p) {
		return ResizeEdgeNone
	}
	rs := c.ResizerSize()
	var edge ResizableEdge
	if p.X < r.X+rs {
		edge |= ResizeEdgeLeft
	} else if p.X >= r.Right()-rs {
		edge |= ResizeEdgeRight
	}
	if p.Y < r.Y+rs {
		edge |= ResizeEdgeTop
	} else if p.Y >= r.Bottom()-rs {
		edge |= ResizeEdgeBottom
	}
	return edge & c.resizeEdges
}

func (c *Control) inMovableArea(p Point) bool {
	if !c.movable {
		return false
	}
	r := c.AbsoluteRect()
	if c.movableArea.Empty() {
		return r.Contains(p)
	}
	return c.movableArea.Offset(r.X, r.Y).Contains(p)
}

// beginDrag starts a resize or move if p is over a resize zone or the
// movable area.
func (c *Control) beginDrag(p Point) {
	switch edge := c.resizeEdgeAt(p); {
	case edge != ResizeEdgeNone:
		c.drag = dragState{mode: dragResizing, edge: edge, outlining: c.m.cfg.OutlineResizing}
	case c.inMovableArea(p):
		c.drag = dragState{mode: dragMoving, outlining: c.m.cfg.OutlineMoving}
	default:
		return
	}
	c.drag.startMouse = p
	c.drag.start = c.Bounds()
	c.drag.outline = c.drag.start

	if c.drag.mode == dragResizing {
		c.ResizeBegin.Emit(&EventArgs{Sender: c})
	} else {
		c.MoveBegin.Emit(&EventArgs{Sender: c})
	}
}

// updateDrag applies the cursor travel since beginDrag.
func (c *Control) updateDrag(p Point) {
	d := p.Sub(c.drag.startMouse)
	s := c.drag.start

	switch c.drag.mode {
	case dragMoving:
		left, top := s.X+d.X, s.Y+d.Y
		if v, ok := c.behavior.(MoveValidator); ok {
			v.ValidateMove(c, &left, &top)
		}
		if s := c.m.snap; s != nil && c.parent == nil {
			s.apply(c, &left, &top)
		}
		if c.drag.outlining {
			c.drag.outline = Rect{X: left, Y: top, W: c.width, H: c.height}
			return
		}
		c.SetLeft(left)
		c.SetTop(top)

	case dragResizing:
		r := c.resizedBounds(d)
		if c.drag.outlining {
			c.drag.outline = r
			return
		}
		c.SetLeft(r.X)
		c.SetTop(r.Y)
		c.SetSize(r.W, r.H)
	}
}

// resizedBounds computes the bounds for a resize by d. Dragged left and top
// edges keep the opposite edge fixed.
func (c *Control) resizedBounds(d Point) Rect {
	s := c.drag.start
	e := c.drag.edge
	w, h := s.W, s.H
	if e&ResizeEdgeLeft != 0 {
		w = s.W - d.X
	}
	if e&ResizeEdgeRight != 0 {
		w = s.W + d.X
	}
	if e&ResizeEdgeTop != 0 {
		h = s.H - d.Y
	}
	if e&ResizeEdgeBottom != 0 {
		h = s.H + d.Y
	}
	w = clampInt(w, c.minW, c.MaximumWidth())
	h = clampInt(h, c.minH, c.MaximumHeight())
	if v, ok := c.behavior.(ResizeValidator); ok {
		v.ValidateResize(c, &w, &h)
	}

	r := Rect{X: s.X, Y: s.Y, W: w, H: h}
	if e&ResizeEdgeLeft != 0 {
		r.X = s.X + s.W - w
	}
	if e&ResizeEdgeTop != 0 {
		r.Y = s.Y + s.H - h
	}
	return r
}

// endDrag commits an outlined drag and returns to idle.
func (c *Control) endDrag() {
	mode := c.drag.mode
	if mode == dragIdle {
		return
	}
	if c.drag.outlining {
		r := c.drag.outline
		c.SetLeft(r.X)
		c.SetTop(r.Y)
		if mode == dragResizing {
			c.SetSize(r.W, r.H)
		}
	}
	c.drag = dragState{}
	if s := c.m.snap; s != nil {
		s.guides = s.guides[:0]
	}
	if mode == dragResizing {
		c.ResizeEnd.Emit(&EventArgs{Sender: c})
	} else {
		c.MoveEnd.Emit(&EventArgs{Sender: c})
	}
}
