package retained

import (
	"fmt"
	"testing"
	"time"
)

// recorder logs dispatcher events as short strings.
type recorder struct {
	events []string
}

func (r *recorder) attach(d *Dispatcher) {
	key := func(name string) func(*KeyEventArgs) {
		return func(e *KeyEventArgs) {
			s := name + " " + e.Key.String()
			if e.Repeat {
				s += " repeat"
			}
			r.events = append(r.events, s)
		}
	}
	mouse := func(name string) func(*MouseEventArgs) {
		return func(e *MouseEventArgs) {
			r.events = append(r.events, fmt.Sprintf("%s %s %d,%d", name, e.Button, e.Position.X, e.Position.Y))
		}
	}
	d.KeyDown.Subscribe(key("down"))
	d.KeyPress.Subscribe(key("press"))
	d.KeyUp.Subscribe(key("up"))
	d.MouseMove.Subscribe(mouse("move"))
	d.MouseScroll.Subscribe(mouse("scroll"))
	d.MouseDown.Subscribe(mouse("mdown"))
	d.MousePress.Subscribe(mouse("mpress"))
	d.MouseUp.Subscribe(mouse("mup"))
}

func (r *recorder) take() []string {
	out := r.events
	r.events = nil
	return out
}

func expectEvents(t *testing.T, got []string, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("Expected events %q, got %q", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Expected events %q, got %q", want, got)
		}
	}
}

func newRecordedDispatcher() (*Dispatcher, *recorder) {
	d := NewDispatcher()
	r := &recorder{}
	r.attach(d)
	return d, r
}

func TestDispatcherKeyRepeat(t *testing.T) {
	d, r := newRecordedDispatcher()
	var s InputSnapshot

	s.SetKey(KeyA, true)
	d.Update(0, s)
	expectEvents(t, r.take(), "down A", "press A")

	d.Update(400*time.Millisecond, s)
	expectEvents(t, r.take())

	// The delay has now fully elapsed.
	d.Update(100*time.Millisecond, s)
	expectEvents(t, r.take(), "press A repeat")

	d.Update(30*time.Millisecond, s)
	expectEvents(t, r.take())
	d.Update(20*time.Millisecond, s)
	expectEvents(t, r.take(), "press A repeat")

	s.SetKey(KeyA, false)
	d.Update(10*time.Millisecond, s)
	expectEvents(t, r.take(), "up A")

	// A fresh press starts the full delay again.
	s.SetKey(KeyA, true)
	d.Update(0, s)
	d.Update(450*time.Millisecond, s)
	expectEvents(t, r.take(), "down A", "press A")
}

func TestDispatcherModifiersDoNotRepeat(t *testing.T) {
	d, r := newRecordedDispatcher()
	var s InputSnapshot

	s.SetKey(KeyLeftShift, true)
	d.Update(0, s)
	expectEvents(t, r.take(), "down LShift")

	d.Update(2*time.Second, s)
	expectEvents(t, r.take())

	shift, ctrl, alt := d.Modifiers()
	if !shift || ctrl || alt {
		t.Errorf("Expected only shift held, got shift=%v ctrl=%v alt=%v", shift, ctrl, alt)
	}

	var got *KeyEventArgs
	d.KeyPress.Subscribe(func(e *KeyEventArgs) { got = e })
	s.SetKey(KeyTab, true)
	d.Update(0, s)
	if got == nil || !got.Shift || got.Key != KeyTab {
		t.Errorf("Expected Shift+Tab press, got %+v", got)
	}
}

func TestDispatcherKeyOrder(t *testing.T) {
	d, r := newRecordedDispatcher()
	var s InputSnapshot
	s.SetKey(KeyZ, true)
	s.SetKey(KeyTab, true)
	s.SetKey(KeyA, true)
	d.Update(0, s)
	expectEvents(t, r.take(),
		"down Tab", "press Tab",
		"down A", "press A",
		"down Z", "press Z")
}

func TestDispatcherFirstSnapshotHasNoMove(t *testing.T) {
	d, r := newRecordedDispatcher()
	s := InputSnapshot{MouseX: 100, MouseY: 100, Client: Rect{W: 800, H: 600}}

	d.Update(0, s)
	expectEvents(t, r.take())
	if p := d.Position(); p != (Point{X: 100, Y: 100}) {
		t.Errorf("Expected position 100,100, got %v", p)
	}

	s.MouseX = 110
	d.Update(0, s)
	expectEvents(t, r.take(), "move None 110,100")

	d.Update(0, s)
	expectEvents(t, r.take())
}

func TestDispatcherClampsToClient(t *testing.T) {
	d, _ := newRecordedDispatcher()
	var moved *MouseEventArgs
	d.MouseMove.Subscribe(func(e *MouseEventArgs) { moved = e })

	s := InputSnapshot{Client: Rect{X: 10, Y: 10, W: 100, H: 50}}
	s.MouseX, s.MouseY = 50, 30
	d.Update(0, s)

	s.MouseX, s.MouseY = 500, -20
	d.Update(0, s)
	if p := d.Position(); p != (Point{X: 109, Y: 10}) {
		t.Errorf("Expected clamped position 109,10, got %v", p)
	}
	if moved == nil || moved.Difference != (Point{X: 59, Y: -20}) {
		t.Errorf("Expected difference 59,-20, got %+v", moved)
	}

	s.MouseX, s.MouseY = 200, 200
	d.Update(0, s)
	if p := d.Position(); p != (Point{X: 109, Y: 59}) {
		t.Errorf("Expected last pixel 109,59, got %v", p)
	}

	// An empty client rectangle disables clamping.
	s.Client = Rect{}
	d.Update(0, s)
	if p := d.Position(); p != (Point{X: 500, Y: -20}) {
		t.Errorf("Expected unclamped position 500,-20, got %v", p)
	}
}

func TestDispatcherMouseOrder(t *testing.T) {
	d, r := newRecordedDispatcher()
	s := InputSnapshot{MouseX: 5, MouseY: 5}
	d.Update(0, s)
	r.take()

	s.MouseX = 6
	s.ScrollY = -1
	s.SetButton(MouseButtonRight, true)
	s.SetButton(MouseButtonLeft, true)
	d.Update(0, s)
	expectEvents(t, r.take(),
		"move None 6,5",
		"scroll None 6,5",
		"mdown Left 6,5", "mpress Left 6,5",
		"mdown Right 6,5", "mpress Right 6,5")

	s.ScrollY = 0
	s.SetButton(MouseButtonRight, false)
	d.Update(0, s)
	expectEvents(t, r.take(), "mpress Left 6,5", "mup Right 6,5")

	if !d.ButtonDown(MouseButtonLeft) || d.ButtonDown(MouseButtonRight) {
		t.Error("Expected only the left button down")
	}
	if d.ButtonDown(MouseButtonNone) {
		t.Error("Expected MouseButtonNone to never be down")
	}
}

func TestDispatcherButtonsReleasedTogether(t *testing.T) {
	d, _ := newRecordedDispatcher()
	var ups []MouseEventArgs
	d.MouseUp.Subscribe(func(e *MouseEventArgs) { ups = append(ups, *e) })

	var s InputSnapshot
	s.Buttons[MouseButtonLeft] = true
	s.Buttons[MouseButtonRight] = true
	d.Update(0, s)

	s.Buttons = [MouseButtonCount]bool{}
	d.Update(0, s)
	if len(ups) != 2 {
		t.Fatalf("Expected 2 releases, got %d", len(ups))
	}
	for _, e := range ups {
		if e.Buttons != ([MouseButtonCount]bool{}) {
			t.Errorf("Expected no buttons held on release of %v, got %v", e.Button, e.Buttons)
		}
	}
	if d.ButtonDown(MouseButtonLeft) || d.ButtonDown(MouseButtonRight) {
		t.Error("Expected both buttons up")
	}
}
