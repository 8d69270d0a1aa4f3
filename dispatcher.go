package retained

import "time"

// Key repeat timing defaults.
const (
	DefaultKeyRepeatDelay    = 500 * time.Millisecond // Initial delay before repeat starts
	DefaultKeyRepeatInterval = 50 * time.Millisecond  // Repeat interval once repeating
)

type keyState struct {
	pressed   bool
	countdown time.Duration
}

// Dispatcher turns polled device state into discrete transition events. It
// holds no knowledge of the control tree; the Manager subscribes to its
// events.
//
// Per tick the order is: key events in key-code order, MouseMove, MouseScroll,
// then button events in button order.
type Dispatcher struct {
	KeyDown  Event[*KeyEventArgs]
	KeyPress Event[*KeyEventArgs]
	KeyUp    Event[*KeyEventArgs]

	MouseMove   Event[*MouseEventArgs]
	MouseScroll Event[*MouseEventArgs]
	MouseDown   Event[*MouseEventArgs]
	MousePress  Event[*MouseEventArgs]
	MouseUp     Event[*MouseEventArgs]

	RepeatDelay    time.Duration
	RepeatInterval time.Duration

	keys    [KeyCount]keyState
	buttons [MouseButtonCount]bool
	pos     Point
	primed  bool // first snapshot seen; suppresses a spurious initial move

	shift, ctrl, alt bool
}

// NewDispatcher creates a dispatcher with the default repeat timing.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		RepeatDelay:    DefaultKeyRepeatDelay,
		RepeatInterval: DefaultKeyRepeatInterval,
	}
}

// Position returns the clamped cursor position from the last tick.
func (d *Dispatcher) Position() Point { return d.pos }

// ButtonDown reports whether b was held on the last tick.
func (d *Dispatcher) ButtonDown(b MouseButton) bool {
	if b < 0 || b >= MouseButtonCount {
		return false
	}
	return d.buttons[b]
}

// Modifiers returns the Shift, Control and Alt state from the last tick.
func (d *Dispatcher) Modifiers() (shift, ctrl, alt bool) {
	return d.shift, d.ctrl, d.alt
}

// Update consumes one snapshot. dt is the time elapsed since the previous
// call and drives key repeat.
func (d *Dispatcher) Update(dt time.Duration, s InputSnapshot) {
	d.updateKeys(dt, &s)
	d.updateMouse(&s)
}

func (d *Dispatcher) keyArgs(k Key) *KeyEventArgs {
	return &KeyEventArgs{Key: k, Shift: d.shift, Control: d.ctrl, Alt: d.alt}
}

func (d *Dispatcher) updateKeys(dt time.Duration, s *InputSnapshot) {
	d.shift = s.Keys[KeyLeftShift] || s.Keys[KeyRightShift]
	d.ctrl = s.Keys[KeyLeftControl] || s.Keys[KeyRightControl]
	d.alt = s.Keys[KeyLeftAlt] || s.Keys[KeyRightAlt]

	for k := KeyNone + 1; k < KeyCount; k++ {
		st := &d.keys[k]
		down := s.Keys[k]

		switch {
		case down && !st.pressed:
			st.pressed = true
			st.countdown = d.RepeatDelay
			d.KeyDown.Emit(d.keyArgs(k))
			if !k.IsModifier() {
				d.KeyPress.Emit(d.keyArgs(k))
			}
		case down && st.pressed:
			if k.IsModifier() {
				continue
			}
			st.countdown -= dt
			if st.countdown <= 0 {
				args := d.keyArgs(k)
				args.Repeat = true
				d.KeyPress.Emit(args)
				st.countdown = d.RepeatInterval
			}
		case !down && st.pressed:
			st.pressed = false
			st.countdown = d.RepeatDelay
			d.KeyUp.Emit(d.keyArgs(k))
		}
	}
}

func (d *Dispatcher) mouseArgs(b MouseButton, pos, diff Point) *MouseEventArgs {
	return &MouseEventArgs{Button: b, Position: pos, Difference: diff, Buttons: d.buttons}
}

func clampToClient(x, y int, client Rect) Point {
	if client.Empty() {
		return Point{X: x, Y: y}
	}
	return Point{
		X: clampInt(x, client.X, client.Right()-1),
		Y: clampInt(y, client.Y, client.Bottom()-1),
	}
}

func (d *Dispatcher) updateMouse(s *InputSnapshot) {
	pos := clampToClient(s.MouseX, s.MouseY, s.Client)
	prev := d.pos
	if !d.primed {
		prev = pos
		d.primed = true
	}
	d.pos = pos
	diff := pos.Sub(prev)

	if diff != (Point{}) {
		d.MouseMove.Emit(d.mouseArgs(MouseButtonNone, pos, diff))
	}
	if s.ScrollX != 0 || s.ScrollY != 0 {
		args := d.mouseArgs(MouseButtonNone, pos, diff)
		args.Scroll = Point{X: s.ScrollX, Y: s.ScrollY}
		d.MouseScroll.Emit(args)
	}

	// Handlers see the whole new button state, so buttons released on the
	// same tick do not count as still held for each other.
	prevButtons := d.buttons
	d.buttons = s.Buttons
	for b := MouseButton(0); b < MouseButtonCount; b++ {
		down := s.Buttons[b]
		was := prevButtons[b]

		switch {
		case down && !was:
			d.MouseDown.Emit(d.mouseArgs(b, pos, diff))
			d.MousePress.Emit(d.mouseArgs(b, pos, diff))
		case down && was:
			d.MousePress.Emit(d.mouseArgs(b, pos, diff))
		case !down && was:
			d.MouseUp.Emit(d.mouseArgs(b, pos, diff))
		}
	}
}
