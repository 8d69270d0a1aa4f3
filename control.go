package retained

import (
	"errors"
	"fmt"
	"time"
)

// Painter paints a control into its owner's draw list. r is the control's
// painted rectangle in draw list coordinates; the clip rectangle is already
// pushed. An error aborts the frame and is returned from Manager.Draw.
type Painter interface {
	Paint(c *Control, dl *DrawList, r Rect) error
}

// MoveValidator may clamp a proposed position during an interactive move.
type MoveValidator interface {
	ValidateMove(c *Control, left, top *int)
}

// ResizeValidator may clamp a proposed size during an interactive resize.
type ResizeValidator interface {
	ValidateResize(c *Control, width, height *int)
}

// Control is a node of the UI tree. Controls are created with NewControl and
// owned by their parent's child list or by the Manager's root list.
type Control struct {
	m    *Manager
	id   uint64
	kind string
	name string
	text string
	tip  string

	parent   *Control
	root     *Control
	children []*Control

	left, top     int
	width, height int
	minW, minH    int
	maxW, maxH    int // zero means unbounded
	anchor        Anchors
	margins       Margins // anchor margins, distance to each parent edge
	scroll        Point

	visible  bool
	enabled  bool
	color    uint32 // zero means skin color
	bgColor  uint32
	txtColor uint32
	alpha    uint8

	movable     bool
	movableArea Rect // relative to the control; empty means whole control
	resizable   bool
	resizeEdges ResizableEdge
	resizerSize int // negative means skin value
	stayOnTop   bool
	stayOnBack  bool
	canFocus    bool
	passive     bool
	detached    bool
	suspended   bool

	focused bool
	hovered bool
	pressed [MouseButtonCount]bool

	lastClickAt     time.Duration // manager clock
	lastClickValid  bool
	lastClickButton MouseButton

	invalidated bool
	disposed    bool

	skin     *SkinControl
	behavior any
	surface  Surface
	drag     dragState

	parentResize Subscription

	Click       Event[*MouseEventArgs]
	DoubleClick Event[*MouseEventArgs]
	MouseDown   Event[*MouseEventArgs]
	MousePress  Event[*MouseEventArgs]
	MouseUp     Event[*MouseEventArgs]
	MouseMove   Event[*MouseEventArgs]
	MouseOver   Event[*MouseEventArgs]
	MouseOut    Event[*MouseEventArgs]
	MouseScroll Event[*MouseEventArgs]

	KeyDown  Event[*KeyEventArgs]
	KeyPress Event[*KeyEventArgs]
	KeyUp    Event[*KeyEventArgs]

	Move        Event[*MoveEventArgs]
	Resize      Event[*ResizeEventArgs]
	MoveBegin   Event[*EventArgs]
	MoveEnd     Event[*EventArgs]
	ResizeBegin Event[*EventArgs]
	ResizeEnd   Event[*EventArgs]

	FocusGained    Event[*EventArgs]
	FocusLost      Event[*EventArgs]
	EnabledChanged Event[*EventArgs]
	VisibleChanged Event[*EventArgs]
	TextChanged    Event[*EventArgs]
	ParentChanged  Event[*EventArgs]
	SkinChanged    Event[*EventArgs]
	Disposed       Event[*EventArgs]

	Draw Event[*DrawEventArgs]
}

// NewControl creates a control of the given skin kind and registers it with m.
// An empty kind means KindControl. The control is not attached anywhere.
func NewControl(m *Manager, kind string) (*Control, error) {
	if m == nil {
		return nil, errors.New("retained: NewControl: nil manager")
	}
	if kind == "" {
		kind = KindControl
	}
	sc, err := m.skinControl(kind)
	if err != nil {
		return nil, err
	}

	c := &Control{
		m:               m,
		kind:            kind,
		visible:         true,
		enabled:         true,
		alpha:           255,
		anchor:          AnchorLeft | AnchorTop,
		resizeEdges:     ResizeEdgeAll,
		resizerSize:     -1,
		canFocus:        true,
		invalidated:     true,
		lastClickButton: MouseButtonNone,
	}
	c.root = c
	c.applySkin(sc, true)
	m.register(c)
	return c, nil
}

// MustNewControl is like NewControl but panics on error. It is intended for
// built-in kinds that every skin provides.
func MustNewControl(m *Manager, kind string) *Control {
	c, err := NewControl(m, kind)
	if err != nil {
		panic(err)
	}
	return c
}

// applySkin installs sc. Size limits come from the skin; the current size is
// reset to the skin default only on construction.
func (c *Control) applySkin(sc *SkinControl, initial bool) {
	c.skin = sc
	c.minW, c.minH = sc.MinimumSize.Width, sc.MinimumSize.Height
	c.maxW, c.maxH = sc.MaximumSize.Width, sc.MaximumSize.Height
	if initial {
		c.width = clampInt(sc.DefaultSize.Width, c.minW, c.MaximumWidth())
		c.height = clampInt(sc.DefaultSize.Height, c.minH, c.MaximumHeight())
		return
	}
	c.SetWidth(c.width)
	c.SetHeight(c.height)
	c.Invalidate()
	c.SkinChanged.Emit(&EventArgs{Sender: c})
}

// ID returns the registry identifier, unique within the manager.
func (c *Control) ID() uint64 { return c.id }

// Kind returns the skin kind the control was created with.
func (c *Control) Kind() string { return c.kind }

// Manager returns the owning manager.
func (c *Control) Manager() *Manager { return c.m }

// Skin returns the resolved skin description.
func (c *Control) Skin() *SkinControl { return c.skin }

// Name returns the control name.
func (c *Control) Name() string { return c.name }

// SetName sets the control name used by SearchChildControlByName.
func (c *Control) SetName(name string) { c.name = name }

// Text returns the caption text.
func (c *Control) Text() string { return c.text }

// SetText sets the caption text.
func (c *Control) SetText(s string) {
	if c.text == s {
		return
	}
	c.text = s
	c.Invalidate()
	if !c.suspended {
		c.TextChanged.Emit(&EventArgs{Sender: c})
	}
}

// ToolTipText returns the text shown when hovering.
func (c *Control) ToolTipText() string { return c.tip }

// SetToolTipText sets the hover text. Empty disables the tooltip.
func (c *Control) SetToolTipText(s string) { c.tip = s }

// Behavior returns the value installed with SetBehavior.
func (c *Control) Behavior() any { return c.behavior }

// SetBehavior installs the widget value that implements any of Painter,
// MoveValidator or ResizeValidator for this control.
func (c *Control) SetBehavior(b any) {
	c.behavior = b
	c.Invalidate()
}

// Parent returns the parent control, or nil for root-level controls.
func (c *Control) Parent() *Control { return c.parent }

// Root returns the top-most ancestor. A control without a parent is its own
// root.
func (c *Control) Root() *Control { return c.root }

// Children returns a copy of the child list in paint order.
func (c *Control) Children() []*Control {
	out := make([]*Control, len(c.children))
	copy(out, c.children)
	return out
}

// Add attaches child to c, detaching it from its previous owner first.
func (c *Control) Add(child *Control) error {
	switch {
	case child == nil:
		return &InvalidValueError{Control: c.name, Property: "child", Value: nil, Err: errors.New("nil control")}
	case c.disposed || child.disposed:
		return ErrDisposed
	case child == c || child.Contains(c, true):
		return &InvalidValueError{Control: c.name, Property: "child", Value: child.name, Err: errors.New("would create a cycle")}
	case child.m != c.m:
		return &InvalidValueError{Control: c.name, Property: "child", Value: child.name, Err: errors.New("control belongs to another manager")}
	}
	if child.parent == c {
		return nil
	}

	child.detach()
	if !child.detached {
		child.releaseSurface()
	}
	c.children = insertSibling(c.children, child)
	child.parent = c
	child.setRoot(c.root)
	if !c.Enabled() && child.enabled {
		child.SetEnabled(false)
	}
	child.parentResize = c.Resize.Subscribe(child.onParentResize)
	child.updateMargins()

	c.m.orderChanged()
	c.Invalidate()
	child.ParentChanged.Emit(&EventArgs{Sender: child})
	return nil
}

// Remove detaches child from c. The child is not disposed and may be added
// elsewhere.
func (c *Control) Remove(child *Control) {
	if child == nil || child.parent != c {
		return
	}
	c.children = removeControl(c.children, child)
	c.Resize.Unsubscribe(child.parentResize)
	child.parentResize = 0
	child.parent = nil
	child.setRoot(child)

	c.m.controlDetached(child)
	c.Invalidate()
	child.ParentChanged.Emit(&EventArgs{Sender: child})
}

// detach removes c from its parent or from the manager root list.
func (c *Control) detach() {
	if c.parent != nil {
		c.parent.Remove(c)
		return
	}
	c.m.Remove(c)
}

func (c *Control) setRoot(root *Control) {
	c.root = root
	for _, ch := range c.children {
		ch.setRoot(root)
	}
}

// Contains reports whether other is a child of c, or any descendant when
// recursive is set.
func (c *Control) Contains(other *Control, recursive bool) bool {
	if other == nil {
		return false
	}
	for _, ch := range c.children {
		if ch == other {
			return true
		}
		if recursive && ch.Contains(other, true) {
			return true
		}
	}
	return false
}

// SearchChildControlByName returns the first descendant named name in
// depth-first order, or nil.
func (c *Control) SearchChildControlByName(name string) *Control {
	for _, ch := range c.children {
		if ch.name == name {
			return ch
		}
		if found := ch.SearchChildControlByName(name); found != nil {
			return found
		}
	}
	return nil
}

// Invalidate marks c and every ancestor dirty so their cached surfaces are
// repainted on the next BeginDraw.
func (c *Control) Invalidate() {
	for x := c; x != nil; x = x.parent {
		x.invalidated = true
	}
}

// Invalidated reports whether c is waiting to be repainted.
func (c *Control) Invalidated() bool { return c.invalidated }

// Visible reports the control's own visibility flag.
func (c *Control) Visible() bool { return c.visible }

// SetVisible shows or hides the control.
func (c *Control) SetVisible(v bool) {
	if c.visible == v {
		return
	}
	c.visible = v
	c.Invalidate()
	c.m.orderChanged()
	if !v {
		c.m.controlHidden(c)
	}
	if !c.suspended {
		c.VisibleChanged.Emit(&EventArgs{Sender: c})
	}
}

// Enabled reports whether c accepts input.
func (c *Control) Enabled() bool { return c.enabled }

// SetEnabled enables or disables c and its descendants.
func (c *Control) SetEnabled(v bool) {
	if c.parent != nil && v && !c.parent.enabled {
		return
	}
	changed := c.enabled != v
	c.enabled = v
	for _, ch := range c.children {
		ch.SetEnabled(v)
	}
	if !changed {
		return
	}
	c.Invalidate()
	if !v {
		c.m.controlHidden(c)
	}
	if !c.suspended {
		c.EnabledChanged.Emit(&EventArgs{Sender: c})
	}
}

// Color returns the tint override, zero when the skin decides.
func (c *Control) Color() uint32 { return c.color }

// SetColor overrides the skin fill color.
func (c *Control) SetColor(v uint32) {
	if c.color != v {
		c.color = v
		c.Invalidate()
	}
}

// BackColor returns the color the cached surface is cleared to.
func (c *Control) BackColor() uint32 { return c.bgColor }

// SetBackColor sets the surface clear color.
func (c *Control) SetBackColor(v uint32) {
	if c.bgColor != v {
		c.bgColor = v
		c.Invalidate()
	}
}

// TextColor returns the text color override.
func (c *Control) TextColor() uint32 { return c.txtColor }

// SetTextColor overrides the skin text color.
func (c *Control) SetTextColor(v uint32) {
	if c.txtColor != v {
		c.txtColor = v
		c.Invalidate()
	}
}

// Alpha returns the opacity, 0 to 255.
func (c *Control) Alpha() uint8 { return c.alpha }

// SetAlpha sets the opacity used when the control is composited.
func (c *Control) SetAlpha(v uint8) {
	if c.alpha != v {
		c.alpha = v
		c.Invalidate()
	}
}

// CanFocus reports whether c takes keyboard focus itself.
func (c *Control) CanFocus() bool { return c.canFocus }

// SetCanFocus sets whether c takes keyboard focus itself. Clicking a control
// that cannot focus focuses its root instead.
func (c *Control) SetCanFocus(v bool) { c.canFocus = v }

// Passive reports whether c ignores input.
func (c *Control) Passive() bool { return c.passive }

// SetPassive makes c transparent to hit-testing.
func (c *Control) SetPassive(v bool) { c.passive = v }

// Detached reports whether c paints into its own surface and ignores its
// parent's clip.
func (c *Control) Detached() bool { return c.detached }

// SetDetached changes whether c renders independently of its parent.
func (c *Control) SetDetached(v bool) {
	if c.detached == v {
		return
	}
	c.detached = v
	if !v {
		c.releaseSurface()
	}
	c.Invalidate()
}

// Suspended reports whether notifications are suppressed.
func (c *Control) Suspended() bool { return c.suspended }

// SetSuspended suppresses Move, Resize and change notifications during
// bulk updates.
func (c *Control) SetSuspended(v bool) { c.suspended = v }

// StayOnTop reports whether c is kept above its normal siblings.
func (c *Control) StayOnTop() bool { return c.stayOnTop }

// SetStayOnTop keeps c above its siblings. It clears StayOnBack.
func (c *Control) SetStayOnTop(v bool) {
	if c.stayOnTop == v {
		return
	}
	c.stayOnTop = v
	if v {
		c.stayOnBack = false
	}
	c.m.BringToFront(c)
}

// StayOnBack reports whether c is kept below its normal siblings.
func (c *Control) StayOnBack() bool { return c.stayOnBack }

// SetStayOnBack keeps c below its siblings. It clears StayOnTop.
func (c *Control) SetStayOnBack(v bool) {
	if c.stayOnBack == v {
		return
	}
	c.stayOnBack = v
	if v {
		c.stayOnTop = false
	}
	c.m.SendToBack(c)
}

// Focused reports whether c holds keyboard focus.
func (c *Control) Focused() bool { return c.focused }

// Focus asks the manager to focus c.
func (c *Control) Focus() { c.m.SetFocus(c) }

// Hovered reports whether the cursor is over c.
func (c *Control) Hovered() bool { return c.hovered }

// Pressed reports whether any mouse button is held on c.
func (c *Control) Pressed() bool {
	for _, p := range c.pressed {
		if p {
			return true
		}
	}
	return false
}

// State returns the visual state used to pick skin colors.
func (c *Control) State() ControlState {
	switch {
	case !c.enabled:
		return StateDisabled
	case c.pressed[MouseButtonLeft]:
		return StatePressed
	case c.hovered:
		return StateHovered
	case c.focused:
		return StateFocused
	}
	return StateEnabled
}

// IsDisposed reports whether Dispose has run.
func (c *Control) IsDisposed() bool { return c.disposed }

// Dispose destroys children first, detaches c, releases its surface and
// removes it from the registry. Calling it again is a no-op.
func (c *Control) Dispose() {
	if c.disposed {
		return
	}
	for len(c.children) > 0 {
		c.children[len(c.children)-1].Dispose()
	}
	c.detach()
	c.releaseSurface()
	c.m.unregister(c)
	c.disposed = true
	c.Disposed.Emit(&EventArgs{Sender: c})
}

// String returns a short description for logs.
func (c *Control) String() string {
	if c.name != "" {
		return fmt.Sprintf("%s(%s#%d)", c.kind, c.name, c.id)
	}
	return fmt.Sprintf("%s#%d", c.kind, c.id)
}

// insertSibling appends c to list keeping the back, normal, top partition.
func insertSibling(list []*Control, c *Control) []*Control {
	i := len(list)
	switch {
	case c.stayOnBack:
		i = 0
		for i < len(list) && list[i].stayOnBack {
			i++
		}
	case !c.stayOnTop:
		for i > 0 && list[i-1].stayOnTop {
			i--
		}
	}
	list = append(list, nil)
	copy(list[i+1:], list[i:])
	list[i] = c
	return list
}

func removeControl(list []*Control, c *Control) []*Control {
	for i, x := range list {
		if x == c {
			copy(list[i:], list[i+1:])
			list[len(list)-1] = nil
			return list[:len(list)-1]
		}
	}
	return list
}

func indexOf(list []*Control, c *Control) int {
	for i, x := range list {
		if x == c {
			return i
		}
	}
	return -1
}
