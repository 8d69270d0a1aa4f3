package retained

import "fmt"

// Surface is an offscreen render target owned by the renderer.
type Surface interface {
	TextureID() uint32
	Width() int
	Height() int
}

// Renderer draws finished draw lists. Implementations live in backend
// packages.
type Renderer interface {
	// CreateSurface allocates an offscreen target of the given size.
	CreateSurface(width, height int) (Surface, error)
	// DeleteSurface releases a target returned by CreateSurface.
	DeleteSurface(s Surface)
	// RenderToSurface clears s to clear and draws dl into it.
	RenderToSurface(s Surface, clear uint32, dl *DrawList) error
	// Render draws dl onto the main target.
	Render(dl *DrawList) error
	// FontTextureID returns the texture AddText samples from.
	FontTextureID() uint32
}

// isSurfaceOwner reports whether c renders into its own cached surface.
func (c *Control) isSurfaceOwner() bool { return c.parent == nil || c.detached }

// Surface returns the cached render target, or nil.
func (c *Control) Surface() Surface { return c.surface }

func (c *Control) releaseSurface() {
	if c.surface == nil {
		return
	}
	if r := c.m.renderer; r != nil {
		r.DeleteSurface(c.surface)
	}
	c.surface = nil
	c.invalidated = true
}

// clearDirty resets the dirty flag of c and of the descendants painted into
// the same surface.
func (c *Control) clearDirty() {
	c.invalidated = false
	for _, ch := range c.children {
		if !ch.detached {
			ch.clearDirty()
		}
	}
}

// Draw runs BeginDraw then EndDraw.
func (m *Manager) Draw() error {
	if err := m.BeginDraw(); err != nil {
		return err
	}
	return m.EndDraw()
}

// BeginDraw repaints the cached surface of every visible surface owner that
// is invalidated. Clean surfaces are reused as they are.
func (m *Manager) BeginDraw() error {
	if m.renderer == nil {
		return ErrNoRenderer
	}
	for _, c := range m.OrderList() {
		if !c.isSurfaceOwner() || !c.invalidated {
			continue
		}
		if err := m.predraw(c); err != nil {
			return fmt.Errorf("retained: draw %s: %w", c, err)
		}
	}
	return nil
}

// surfaceSize returns the size c needs, limited to the screen.
func (m *Manager) surfaceSize(c *Control) Size {
	r := c.OriginRect()
	s := Size{Width: r.W, Height: r.H}
	if m.screen.Width > 0 {
		s.Width = min(s.Width, m.screen.Width)
	}
	if m.screen.Height > 0 {
		s.Height = min(s.Height, m.screen.Height)
	}
	return s
}

// ensureSurface grows the surface of c when need exceeds its capacity.
// Capacity is rounded up to TextureResizeIncrement and capped at the screen.
func (m *Manager) ensureSurface(c *Control, need Size) error {
	if s := c.surface; s != nil && need.Width <= s.Width() && need.Height <= s.Height() {
		return nil
	}
	w := roundUp(need.Width, m.cfg.TextureResizeIncrement)
	h := roundUp(need.Height, m.cfg.TextureResizeIncrement)
	if m.screen.Width > 0 {
		w = min(w, m.screen.Width)
	}
	if m.screen.Height > 0 {
		h = min(h, m.screen.Height)
	}
	if c.surface != nil {
		m.renderer.DeleteSurface(c.surface)
		c.surface = nil
	}
	s, err := m.renderer.CreateSurface(w, h)
	if err != nil {
		return fmt.Errorf("create surface %dx%d: %w", w, h, err)
	}
	c.surface = s
	m.log.Debug("surface allocated", "control", c.String(), "width", w, "height", h)
	return nil
}

func (m *Manager) predraw(c *Control) error {
	need := m.surfaceSize(c)
	if need.Width <= 0 || need.Height <= 0 {
		c.clearDirty()
		return nil
	}
	if err := m.ensureSurface(c, need); err != nil {
		return err
	}

	dl := AcquireDrawList()
	defer ReleaseDrawList(dl)
	dl.FontTexture = m.renderer.FontTextureID()

	o := c.OriginRect()
	clip := Rect{W: need.Width, H: need.Height}
	dl.PushClip(clip)
	if err := c.paintTree(dl, Point{X: o.X, Y: o.Y}, clip); err != nil {
		return err
	}
	dl.PopClip()

	if err := m.renderer.RenderToSurface(c.surface, c.bgColor, dl); err != nil {
		return err
	}
	if verbose() {
		m.log.Debug("surface painted", "control", c.String(), "vertices", len(dl.VtxBuffer), "commands", len(dl.CmdBuffer))
	}
	c.clearDirty()
	return nil
}

// paintTree paints c and its non-detached descendants. origin is the screen
// position of the surface; clip is the intersection of every ancestor's
// client area in surface coordinates.
func (c *Control) paintTree(dl *DrawList, origin Point, clip Rect) error {
	if err := c.paint(dl, c.OriginRect().Offset(-origin.X, -origin.Y)); err != nil {
		return err
	}
	inner := clip.Intersect(c.ClientRect().Offset(-origin.X, -origin.Y))
	if inner.Empty() {
		return nil
	}
	for _, ch := range c.children {
		if !ch.visible || ch.detached {
			continue
		}
		if !ch.OriginRect().Offset(-origin.X, -origin.Y).Intersects(inner) {
			continue
		}
		dl.PushClip(inner)
		err := ch.paintTree(dl, origin, inner)
		dl.PopClip()
		if err != nil {
			return err
		}
	}
	return nil
}

func (c *Control) paint(dl *DrawList, r Rect) error {
	var err error
	if p, ok := c.behavior.(Painter); ok {
		err = p.Paint(c, dl, r)
	} else {
		err = c.paintDefault(dl, r)
	}
	if err != nil {
		return err
	}
	if c.Draw.Len() > 0 {
		c.Draw.Emit(&DrawEventArgs{Sender: c, List: dl, Rect: r})
	}
	return nil
}

func (c *Control) paintDefault(dl *DrawList, r Rect) error {
	l, err := c.PaintLayer(dl, r, LayerControl)
	if err != nil {
		return err
	}
	if c.text != "" {
		cr := c.ClientRect()
		o := c.OriginRect()
		x := r.X + (cr.X - o.X) + 2
		y := r.Y + (r.H-GlyphHeight)/2
		dl.AddText(x, y, c.text, c.LayerTextColor(l))
	}
	return nil
}

// PaintLayer fills r with the named skin layer in the control's current
// state and draws its border. Controls painted into an ancestor's surface
// apply their own alpha; surface owners get it when composited.
func (c *Control) PaintLayer(dl *DrawList, r Rect, name string) (*SkinLayer, error) {
	l, err := c.skin.Layer(name)
	if err != nil {
		return nil, err
	}
	state := c.State()
	fill := l.Color.For(state)
	if c.color != 0 {
		fill = c.color
	}
	border := l.Border.For(state)
	if c.focused {
		border = l.Border.For(StateFocused)
	}
	if !c.isSurfaceOwner() && c.alpha != 255 {
		fill = WithAlpha(fill, c.alpha)
		border = WithAlpha(border, c.alpha)
	}
	if l.Texture != 0 {
		dl.AddImage(l.Texture, r, Rect{W: 1, H: 1}, 1, 1, fill)
	} else {
		dl.AddRect(r, fill)
	}
	dl.AddRectOutline(r, border, l.BorderSize)
	return l, nil
}

// LayerTextColor returns the text color for l, honoring SetTextColor.
func (c *Control) LayerTextColor(l *SkinLayer) uint32 {
	if c.txtColor != 0 {
		return c.txtColor
	}
	col := l.Text.For(c.State())
	if !c.isSurfaceOwner() && c.alpha != 255 {
		col = WithAlpha(col, c.alpha)
	}
	return col
}

// EndDraw composites every cached surface onto the main target in z-order,
// tinted by the owner's alpha, followed by the ghost rectangles of outlined
// drags and the snap guides of the move in progress.
func (m *Manager) EndDraw() error {
	if m.renderer == nil {
		return ErrNoRenderer
	}
	dl := AcquireDrawList()
	defer ReleaseDrawList(dl)
	dl.FontTexture = m.renderer.FontTextureID()

	order := m.OrderList()
	for _, c := range order {
		s := c.surface
		if !c.isSurfaceOwner() || s == nil {
			continue
		}
		r := c.OriginRect()
		r.W = min(r.W, s.Width())
		r.H = min(r.H, s.Height())
		dl.AddImage(s.TextureID(), r, Rect{W: r.W, H: r.H}, s.Width(), s.Height(), WithAlpha(ColorWhite, c.alpha))
	}
	for _, c := range order {
		if r, ok := c.OutlineRect(); ok {
			dl.AddRectOutline(r, outlineColor(c), 1)
		}
	}
	if m.snap != nil {
		m.snap.draw(dl)
	}
	if err := m.renderer.Render(dl); err != nil {
		return fmt.Errorf("retained: composite: %w", err)
	}
	return nil
}

func outlineColor(c *Control) uint32 {
	if l, err := c.skin.Layer(LayerControl); err == nil {
		if col := l.Border.For(StateFocused); col != 0 {
			return col
		}
	}
	return ColorWhite
}
