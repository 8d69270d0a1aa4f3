package retained

import (
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithConfig replaces the default configuration.
func WithConfig(cfg Config) ManagerOption {
	return func(m *Manager) { m.cfg = cfg }
}

// WithSkin sets the skin controls are resolved against.
func WithSkin(s Skin) ManagerOption {
	return func(m *Manager) { m.skin = s }
}

// WithRenderer sets the renderer used by BeginDraw and EndDraw.
func WithRenderer(r Renderer) ManagerOption {
	return func(m *Manager) { m.renderer = r }
}

// WithInput sets the device source polled by Update.
func WithInput(src InputSource) ManagerOption {
	return func(m *Manager) { m.input = src }
}

// WithScreenSize sets the initial screen size. Update replaces it with the
// size reported by the input source.
func WithScreenSize(w, h int) ManagerOption {
	return func(m *Manager) { m.screen = Size{Width: w, Height: h} }
}

// WithLogger sets the logger. The default writes text to stderr.
func WithLogger(l *slog.Logger) ManagerOption {
	return func(m *Manager) { m.log = l }
}

// Manager owns a UI tree: the control registry, root list, z-order, focus,
// modal stack and mouse ownership. It is not safe for concurrent use; call
// every method from the thread that runs Update.
type Manager struct {
	cfg      Config
	skin     Skin
	renderer Renderer
	input    InputSource
	screen   Size
	log      *slog.Logger
	disp     *Dispatcher

	nextID   uint64
	controls []*Control
	byID     map[uint64]*Control

	roots      []*Control
	order      []*Control
	orderDirty bool

	focused     *Control
	modals      []*Control
	hovered     *Control
	owners      [MouseButtonCount]*Control
	pressAt     [MouseButtonCount]Point
	clickButton MouseButton
	mouse       Point
	clock       time.Duration

	tip  tooltipState
	snap *snapper

	DeviceSettingsChanged Event[*EventArgs]
	SkinChanging          Event[*EventArgs]
	SkinChanged           Event[*EventArgs]
	WindowClosing         Event[*WindowClosingEventArgs]
	FocusChanged          Event[*EventArgs]
}

// NewManager creates a manager. The configuration is validated.
func NewManager(opts ...ManagerOption) (*Manager, error) {
	m := &Manager{
		cfg:         DefaultConfig(),
		skin:        DefaultSkin(),
		log:         uiLogger,
		byID:        make(map[uint64]*Control),
		clickButton: MouseButtonNone,
		orderDirty:  true,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.skin == nil {
		return nil, &ConfigError{Source: "manager", Item: "skin", Err: ErrSkinMissing}
	}
	if err := m.cfg.Validate(); err != nil {
		return nil, err
	}

	m.disp = NewDispatcher()
	m.disp.RepeatDelay = m.cfg.KeyRepeatDelay
	m.disp.RepeatInterval = m.cfg.KeyRepeatInterval
	m.disp.KeyDown.Subscribe(m.onKeyDown)
	m.disp.KeyPress.Subscribe(m.onKeyPress)
	m.disp.KeyUp.Subscribe(m.onKeyUp)
	m.disp.MouseMove.Subscribe(m.onMouseMove)
	m.disp.MouseScroll.Subscribe(m.onMouseScroll)
	m.disp.MouseDown.Subscribe(m.onMouseDown)
	m.disp.MousePress.Subscribe(m.onMousePress)
	m.disp.MouseUp.Subscribe(m.onMouseUp)
	return m, nil
}

// Config returns the active configuration.
func (m *Manager) Config() Config { return m.cfg }

// Dispatcher returns the input dispatcher, for hosts that want raw events.
func (m *Manager) Dispatcher() *Dispatcher { return m.disp }

// Renderer returns the configured renderer, or nil.
func (m *Manager) Renderer() Renderer { return m.renderer }

// Logger returns the manager's logger.
func (m *Manager) Logger() *slog.Logger { return m.log }

// ScreenSize returns the current screen size.
func (m *Manager) ScreenSize() Size { return m.screen }

// SetScreenSize updates the screen size, re-clamps every control and emits
// DeviceSettingsChanged.
func (m *Manager) SetScreenSize(w, h int) {
	s := Size{Width: w, Height: h}
	if s == m.screen {
		return
	}
	m.screen = s
	for _, c := range m.controls {
		c.SetSize(c.width, c.height)
	}
	for _, c := range m.roots {
		c.updateMargins()
	}
	m.log.Debug("screen size changed", "width", w, "height", h)
	m.DeviceSettingsChanged.Emit(&EventArgs{})
}

// MousePosition returns the cursor position from the last Update.
func (m *Manager) MousePosition() Point { return m.mouse }

// Clock returns the time accumulated by Update.
func (m *Manager) Clock() time.Duration { return m.clock }

// Update advances the manager clock by dt, polls the input source and routes
// the resulting events.
func (m *Manager) Update(dt time.Duration) error {
	m.clock += dt
	if m.input != nil {
		snap, err := m.input.Poll()
		if err != nil {
			return fmt.Errorf("retained: update: poll input: %w", err)
		}
		if snap.Screen.Width > 0 && snap.Screen.Height > 0 {
			m.SetScreenSize(snap.Screen.Width, snap.Screen.Height)
		}
		m.rebuildOrder()
		m.disp.Update(dt, snap)
	} else {
		m.rebuildOrder()
	}
	if err := m.updateToolTip(dt); err != nil {
		return fmt.Errorf("retained: update: %w", err)
	}
	return nil
}

// register assigns an ID and records c in the registry.
func (m *Manager) register(c *Control) {
	m.nextID++
	c.id = m.nextID
	m.controls = append(m.controls, c)
	m.byID[c.id] = c
}

func (m *Manager) unregister(c *Control) {
	delete(m.byID, c.id)
	m.controls = removeControl(m.controls, c)
}

// Controls returns every registered control in creation order, attached or
// not.
func (m *Manager) Controls() []*Control {
	out := make([]*Control, len(m.controls))
	copy(out, m.controls)
	return out
}

// ControlByID returns the registered control with the given ID, or nil.
func (m *Manager) ControlByID(id uint64) *Control { return m.byID[id] }

// Roots returns the root-level controls in z-order, back to front.
func (m *Manager) Roots() []*Control {
	out := make([]*Control, len(m.roots))
	copy(out, m.roots)
	return out
}

// Add attaches c as a root-level control, detaching it from any parent.
func (m *Manager) Add(c *Control) error {
	switch {
	case c == nil:
		return &InvalidValueError{Control: "manager", Property: "control", Err: errors.New("nil control")}
	case c.disposed:
		return ErrDisposed
	case c.m != m:
		return &InvalidValueError{Control: "manager", Property: "control", Value: c.name, Err: errors.New("control belongs to another manager")}
	}
	if c.parent == nil && indexOf(m.roots, c) >= 0 {
		return nil
	}
	c.detach()
	m.roots = insertSibling(m.roots, c)
	c.updateMargins()
	c.Invalidate()
	m.orderChanged()
	return nil
}

// Remove detaches a root-level control. Children of other controls are
// removed through their parent.
func (m *Manager) Remove(c *Control) {
	if c == nil || c.parent != nil || indexOf(m.roots, c) < 0 {
		return
	}
	m.roots = removeControl(m.roots, c)
	c.releaseSurface()
	m.controlDetached(c)
}

func (m *Manager) skinControl(kind string) (*SkinControl, error) {
	return m.skin.Control(kind)
}

// Skin returns the active skin.
func (m *Manager) Skin() Skin { return m.skin }

// SetSkin resolves every registered control against s and switches to it.
// If any kind is missing from s the skin is left unchanged.
func (m *Manager) SetSkin(s Skin) error {
	if s == nil {
		return &InvalidValueError{Control: "manager", Property: "skin", Err: ErrSkinMissing}
	}
	resolved := make([]*SkinControl, len(m.controls))
	var errs []error
	for i, c := range m.controls {
		sc, err := s.Control(c.kind)
		if err == nil {
			err = checkLayers(sc, c.requiredLayers())
		}
		if err != nil {
			errs = append(errs, err)
			continue
		}
		resolved[i] = sc
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}

	m.SkinChanging.Emit(&EventArgs{})
	m.skin = s
	for i, c := range m.controls {
		c.applySkin(resolved[i], false)
	}
	m.log.Info("skin changed", "controls", len(m.controls))
	m.SkinChanged.Emit(&EventArgs{})
	return nil
}

// siblings returns the list c is ordered in.
func (m *Manager) siblings(c *Control) *[]*Control {
	if c.parent != nil {
		return &c.parent.children
	}
	if indexOf(m.roots, c) >= 0 {
		return &m.roots
	}
	return nil
}

// BringToFront moves c to the top of its siblings, below any StayOnTop
// sibling unless c is one itself.
func (m *Manager) BringToFront(c *Control) {
	if c == nil {
		return
	}
	list := m.siblings(c)
	if list == nil {
		return
	}
	*list = insertSibling(removeControl(*list, c), c)
	if c.parent != nil {
		c.parent.Invalidate()
	}
	m.orderChanged()
}

// SendToBack moves c to the bottom of its siblings, above any StayOnBack
// sibling unless c is one itself.
func (m *Manager) SendToBack(c *Control) {
	if c == nil {
		return
	}
	list := m.siblings(c)
	if list == nil {
		return
	}
	rest := removeControl(*list, c)
	i := 0
	switch {
	case c.stayOnBack:
	case c.stayOnTop:
		for i < len(rest) && !rest[i].stayOnTop {
			i++
		}
	default:
		for i < len(rest) && rest[i].stayOnBack {
			i++
		}
	}
	rest = append(rest, nil)
	copy(rest[i+1:], rest[i:])
	rest[i] = c
	*list = rest
	if c.parent != nil {
		c.parent.Invalidate()
	}
	m.orderChanged()
}

func (m *Manager) orderChanged() { m.orderDirty = true }

func (m *Manager) rebuildOrder() {
	m.order = m.order[:0]
	var walk func(c *Control)
	walk = func(c *Control) {
		if !c.visible {
			return
		}
		m.order = append(m.order, c)
		for _, ch := range c.children {
			walk(ch)
		}
	}
	for _, r := range m.roots {
		walk(r)
	}
	m.orderDirty = false
}

// OrderList returns the visible controls flattened depth-first in z-order,
// back to front.
func (m *Manager) OrderList() []*Control {
	if m.orderDirty {
		m.rebuildOrder()
	}
	return m.order
}

// ModalWindow returns the active modal control, or nil.
func (m *Manager) ModalWindow() *Control {
	if n := len(m.modals); n > 0 {
		return m.modals[n-1]
	}
	return nil
}

// ShowModal makes the root-level control c modal. While it is the top of the
// modal stack only its subtree receives input and focus.
func (m *Manager) ShowModal(c *Control) error {
	if c == nil {
		return &InvalidValueError{Control: "manager", Property: "modal", Err: errors.New("nil control")}
	}
	if c.parent != nil {
		return &InvalidValueError{Control: c.name, Property: "modal", Err: errors.New("modal control must be root-level")}
	}
	if err := m.Add(c); err != nil {
		return err
	}
	m.modals = append(removeControl(m.modals, c), c)
	c.SetVisible(true)
	m.BringToFront(c)
	m.SetFocus(c)
	m.log.Debug("modal pushed", "control", c.String(), "depth", len(m.modals))
	return nil
}

// CloseModal removes c from the modal stack. Focus moves to the next modal,
// if any.
func (m *Manager) CloseModal(c *Control) {
	if indexOf(m.modals, c) < 0 {
		return
	}
	m.modals = removeControl(m.modals, c)
	m.log.Debug("modal popped", "control", c.String(), "depth", len(m.modals))
	if inSubtree(c, m.focused) {
		m.SetFocus(m.ModalWindow())
	}
}

// IsDragging reports whether c holds a mouse button and the cursor has moved
// more than DragThreshold pixels on either axis since the press.
func (m *Manager) IsDragging(c *Control) bool {
	if c == nil {
		return false
	}
	for b, owner := range m.owners {
		if owner != c {
			continue
		}
		d := m.mouse.Sub(m.pressAt[b])
		if absInt(d.X) > m.cfg.DragThreshold || absInt(d.Y) > m.cfg.DragThreshold {
			return true
		}
	}
	return false
}

// HoveredControl returns the control under the cursor, or nil.
func (m *Manager) HoveredControl() *Control { return m.hovered }

// ButtonOwner returns the control holding b, or nil.
func (m *Manager) ButtonOwner(b MouseButton) *Control {
	if b < 0 || b >= MouseButtonCount {
		return nil
	}
	return m.owners[b]
}

func inSubtree(root, x *Control) bool {
	return x != nil && (x == root || root.Contains(x, true))
}

// controlDetached drops every reference the router holds into c's subtree.
func (m *Manager) controlDetached(c *Control) {
	m.forget(c)
	m.orderChanged()
}

// controlHidden is called when c becomes invisible or disabled.
func (m *Manager) controlHidden(c *Control) {
	m.forget(c)
}

func (m *Manager) forget(c *Control) {
	if inSubtree(c, m.focused) {
		m.SetFocus(nil)
	}
	if inSubtree(c, m.hovered) {
		m.hovered.hovered = false
		m.hovered = nil
	}
	for b, owner := range m.owners {
		if inSubtree(c, owner) {
			owner.pressed[b] = false
			owner.endDrag()
			m.owners[b] = nil
		}
	}
	for _, modal := range m.Modals() {
		if inSubtree(c, modal) {
			m.CloseModal(modal)
		}
	}
	if inSubtree(c, m.tip.target) {
		m.hideToolTip()
	}
}

// Modals returns the modal stack, bottom first.
func (m *Manager) Modals() []*Control {
	out := make([]*Control, len(m.modals))
	copy(out, m.modals)
	return out
}

// checkState reports whether c may receive input at all.
func (m *Manager) checkState(c *Control) bool {
	if c.passive || !c.visible || !c.enabled {
		return false
	}
	modal := m.ModalWindow()
	return modal == nil || c.root == modal
}

// checkOrder reports whether no control above c in z-order covers p.
func (m *Manager) checkOrder(c *Control, p Point) bool {
	order := m.OrderList()
	i := indexOf(order, c)
	if i < 0 {
		return false
	}
	for _, x := range order[i+1:] {
		if !x.passive && x.checkPosition(p) {
			return false
		}
	}
	return true
}

// ControlAt returns the top-most control that would receive a press at p.
func (m *Manager) ControlAt(p Point) *Control {
	order := m.OrderList()
	for i := len(order) - 1; i >= 0; i-- {
		c := order[i]
		if m.checkState(c) && c.checkPosition(p) {
			return c
		}
	}
	return nil
}

func (m *Manager) mouseArgs(c *Control, e *MouseEventArgs) *MouseEventArgs {
	args := *e
	args.Sender = c
	args.Handled = false
	return &args
}

func (m *Manager) onMouseDown(e *MouseEventArgs) {
	b := e.Button
	m.mouse = e.Position
	m.pressAt[b] = e.Position
	m.hideToolTip()

	c := m.ControlAt(e.Position)
	if c == nil {
		if m.cfg.AutoUnfocus && m.ModalWindow() == nil && m.clickButton == MouseButtonNone {
			m.SetFocus(nil)
		}
		return
	}

	m.owners[b] = c
	if m.clickButton == MouseButtonNone {
		m.clickButton = b
		m.SetFocus(c)
	}
	c.pressed[b] = true
	c.Invalidate()
	if b == MouseButtonLeft {
		c.beginDrag(e.Position)
	}
	c.MouseDown.Emit(m.mouseArgs(c, e))
}

func (m *Manager) onMousePress(e *MouseEventArgs) {
	if c := m.owners[e.Button]; c != nil {
		c.MousePress.Emit(m.mouseArgs(c, e))
	}
}

func (m *Manager) onMouseUp(e *MouseEventArgs) {
	b := e.Button
	m.mouse = e.Position
	c := m.owners[b]
	if c == nil {
		if b == m.clickButton {
			m.clickButton = MouseButtonNone
		}
		return
	}

	if b == MouseButtonLeft {
		c.endDrag()
	}
	if m.clickButton == b && !otherButtonsDown(e.Buttons, b) &&
		c.checkPosition(e.Position) && m.checkOrder(c, e.Position) {
		m.click(c, e)
	}

	c.pressed[b] = false
	c.Invalidate()
	c.MouseUp.Emit(m.mouseArgs(c, e))
	m.owners[b] = nil
	if b == m.clickButton {
		m.clickButton = MouseButtonNone
	}
	m.updateHover(e)
}

func otherButtonsDown(buttons [MouseButtonCount]bool, b MouseButton) bool {
	for i, down := range buttons {
		if down && MouseButton(i) != b {
			return true
		}
	}
	return false
}

// click fires Click, or DoubleClick when the previous click on c used the
// same button within DoubleClickTime.
func (m *Manager) click(c *Control, e *MouseEventArgs) {
	b := e.Button
	if c.lastClickValid && c.lastClickButton == b && m.clock-c.lastClickAt <= m.cfg.DoubleClickTime {
		c.lastClickValid = false
		c.DoubleClick.Emit(m.mouseArgs(c, e))
		return
	}
	c.lastClickValid = true
	c.lastClickAt = m.clock
	c.lastClickButton = b
	c.Click.Emit(m.mouseArgs(c, e))
}

func (m *Manager) onMouseMove(e *MouseEventArgs) {
	m.mouse = e.Position

	var sent []*Control
	for _, c := range m.owners {
		if c == nil || indexOf(sent, c) >= 0 {
			continue
		}
		sent = append(sent, c)
		if c.drag.mode != dragIdle {
			c.updateDrag(e.Position)
		}
		c.MouseMove.Emit(m.mouseArgs(c, e))
	}

	m.updateHover(e)
	if h := m.hovered; h != nil && indexOf(sent, h) < 0 {
		h.MouseMove.Emit(m.mouseArgs(h, e))
	}
	if !m.tip.shown {
		m.tip.elapsed = 0
	}
}

// updateHover recomputes the hovered control. Hover does not change while a
// button is owned.
func (m *Manager) updateHover(e *MouseEventArgs) {
	for _, c := range m.owners {
		if c != nil {
			return
		}
	}
	c := m.ControlAt(e.Position)
	if c == m.hovered {
		return
	}
	if old := m.hovered; old != nil {
		old.hovered = false
		old.Invalidate()
		old.MouseOut.Emit(m.mouseArgs(old, e))
	}
	m.hovered = c
	m.hideToolTip()
	if c != nil {
		c.hovered = true
		c.Invalidate()
		c.MouseOver.Emit(m.mouseArgs(c, e))
	}
}

func (m *Manager) onMouseScroll(e *MouseEventArgs) {
	c := m.hovered
	for _, owner := range m.owners {
		if owner != nil {
			c = owner
			break
		}
	}
	if c != nil {
		c.MouseScroll.Emit(m.mouseArgs(c, e))
	}
}

// keyTarget returns the focused control if it can take keyboard input.
func (m *Manager) keyTarget() *Control {
	c := m.focused
	if c == nil || !c.visible || !c.enabled {
		return nil
	}
	return c
}

func keyArgs(c *Control, e *KeyEventArgs) *KeyEventArgs {
	args := *e
	args.Sender = c
	args.Handled = false
	return &args
}

func (m *Manager) onKeyDown(e *KeyEventArgs) {
	if c := m.keyTarget(); c != nil {
		c.KeyDown.Emit(keyArgs(c, e))
	}
}

func (m *Manager) onKeyUp(e *KeyEventArgs) {
	if c := m.keyTarget(); c != nil {
		c.KeyUp.Emit(keyArgs(c, e))
	}
}

// onKeyPress forwards the press to the focused control, then runs focus
// navigation if the control left it unhandled.
func (m *Manager) onKeyPress(e *KeyEventArgs) {
	args := keyArgs(nil, e)
	if c := m.keyTarget(); c != nil {
		args.Sender = c
		c.KeyPress.Emit(args)
	}
	if args.Handled || e.Control || e.Alt {
		return
	}
	switch e.Key {
	case KeyTab:
		m.FocusNext(!e.Shift)
	case KeyUp:
		m.FocusDirection(NavUp)
	case KeyDown:
		m.FocusDirection(NavDown)
	case KeyLeft:
		m.FocusDirection(NavLeft)
	case KeyRight:
		m.FocusDirection(NavRight)
	}
}
