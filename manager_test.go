package retained

import (
	"errors"
	"testing"
	"time"
)

type clickCounter struct {
	clicks, doubles int
	buttons         []MouseButton
}

func countClicks(c *Control) *clickCounter {
	cc := &clickCounter{}
	c.Click.Subscribe(func(e *MouseEventArgs) {
		cc.clicks++
		cc.buttons = append(cc.buttons, e.Button)
	})
	c.DoubleClick.Subscribe(func(*MouseEventArgs) { cc.doubles++ })
	return cc
}

func TestNewManagerValidation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DoubleClickTime = 0
	var ive *InvalidValueError
	if _, err := NewManager(WithConfig(cfg)); !errors.As(err, &ive) {
		t.Errorf("Expected InvalidValueError, got %v", err)
	}
	if _, err := NewManager(WithSkin(nil)); !errors.Is(err, ErrSkinMissing) {
		t.Errorf("Expected ErrSkinMissing, got %v", err)
	}
}

func TestUpdatePollError(t *testing.T) {
	ui := newTestUI(t)
	lost := errors.New("device lost")
	ui.in.err = lost
	if err := ui.Update(tick); !errors.Is(err, lost) {
		t.Errorf("Expected wrapped poll error, got %v", err)
	}
}

func TestUpdateWithoutInput(t *testing.T) {
	m, err := NewManager(WithLogger(discardLogger))
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Update(time.Second); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if m.Clock() != time.Second {
		t.Errorf("Expected clock 1s, got %v", m.Clock())
	}
}

func TestControlAtZOrder(t *testing.T) {
	ui := newTestUI(t)
	a := ui.root(t, KindControl, Rect{W: 100, H: 100})
	b := ui.root(t, KindControl, Rect{X: 50, Y: 50, W: 100, H: 100})

	if got := ui.ControlAt(Point{X: 60, Y: 60}); got != b {
		t.Errorf("Expected later root b on top, got %v", got)
	}
	ui.BringToFront(a)
	if got := ui.ControlAt(Point{X: 60, Y: 60}); got != a {
		t.Errorf("Expected a after BringToFront, got %v", got)
	}
	if got := ui.ControlAt(Point{X: 120, Y: 120}); got != b {
		t.Errorf("Expected b outside a, got %v", got)
	}

	child := ui.control(t, KindControl, Rect{W: 30, H: 30})
	mustChild(t, a, child)
	if got := ui.ControlAt(Point{X: 10, Y: 10}); got != child {
		t.Errorf("Expected child above its parent, got %v", got)
	}
	child.SetPassive(true)
	if got := ui.ControlAt(Point{X: 10, Y: 10}); got != a {
		t.Errorf("Expected passive child to be skipped, got %v", got)
	}
	child.SetPassive(false)
	child.SetEnabled(false)
	if got := ui.ControlAt(Point{X: 10, Y: 10}); got != a {
		t.Errorf("Expected disabled child to be skipped, got %v", got)
	}

	b.SetVisible(false)
	if got := ui.ControlAt(Point{X: 120, Y: 120}); got != nil {
		t.Errorf("Expected hidden b to be skipped, got %v", got)
	}
}

func TestClickAndDoubleClick(t *testing.T) {
	ui := newTestUI(t)
	c := ui.root(t, KindControl, Rect{X: 10, Y: 10, W: 100, H: 50})
	cc := countClicks(c)

	ui.click(t, MouseButtonLeft, 20, 20)
	if cc.clicks != 1 || cc.doubles != 0 {
		t.Fatalf("Expected 1 click, got %d clicks %d doubles", cc.clicks, cc.doubles)
	}

	ui.click(t, MouseButtonLeft, 20, 20)
	if cc.clicks != 1 || cc.doubles != 1 {
		t.Fatalf("Expected a double click, got %d clicks %d doubles", cc.clicks, cc.doubles)
	}

	// A double click resets the timer, so the third click is a plain click.
	ui.click(t, MouseButtonLeft, 20, 20)
	if cc.clicks != 2 || cc.doubles != 1 {
		t.Fatalf("Expected a fresh click, got %d clicks %d doubles", cc.clicks, cc.doubles)
	}

	ui.step(t, 600*time.Millisecond)
	ui.click(t, MouseButtonLeft, 20, 20)
	if cc.clicks != 3 || cc.doubles != 1 {
		t.Fatalf("Expected spaced clicks to stay single, got %d clicks %d doubles", cc.clicks, cc.doubles)
	}

	// A different button never completes a double click.
	ui.click(t, MouseButtonRight, 20, 20)
	if cc.clicks != 4 || cc.doubles != 1 {
		t.Fatalf("Expected right click to be a plain click, got %d clicks %d doubles", cc.clicks, cc.doubles)
	}
	if cc.buttons[3] != MouseButtonRight {
		t.Errorf("Expected Right, got %v", cc.buttons[3])
	}
}

func TestDoubleClickWindowFromConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DoubleClickTime = 20 * time.Millisecond
	ui := newTestUI(t, WithConfig(cfg))
	c := ui.root(t, KindControl, Rect{W: 100, H: 50})
	cc := countClicks(c)

	ui.click(t, MouseButtonLeft, 5, 5)
	ui.click(t, MouseButtonLeft, 5, 5)
	if cc.clicks != 2 || cc.doubles != 0 {
		t.Errorf("Expected two single clicks with a 20ms window, got %d clicks %d doubles", cc.clicks, cc.doubles)
	}
}

func TestReleaseOutsideDoesNotClick(t *testing.T) {
	ui := newTestUI(t)
	c := ui.root(t, KindControl, Rect{W: 100, H: 100})
	cc := countClicks(c)

	var moves, ups, outs int
	c.MouseMove.Subscribe(func(*MouseEventArgs) { moves++ })
	c.MouseUp.Subscribe(func(*MouseEventArgs) { ups++ })
	c.MouseOut.Subscribe(func(*MouseEventArgs) { outs++ })

	ui.in.move(50, 50)
	ui.step(t, tick)
	ui.in.button(MouseButtonLeft, true)
	ui.step(t, tick)

	ui.in.move(500, 500)
	ui.step(t, tick)
	if moves != 2 {
		t.Errorf("Expected owner to receive moves outside its bounds, got %d", moves)
	}
	if ui.HoveredControl() != c {
		t.Error("Expected hover frozen while the button is owned")
	}

	ui.in.button(MouseButtonLeft, false)
	ui.step(t, tick)
	if cc.clicks != 0 {
		t.Errorf("Expected no click, got %d", cc.clicks)
	}
	if ups != 1 {
		t.Errorf("Expected MouseUp delivered to owner, got %d", ups)
	}
	if ui.ButtonOwner(MouseButtonLeft) != nil {
		t.Error("Expected owner released")
	}
	if ui.HoveredControl() != nil || outs != 1 {
		t.Errorf("Expected hover recomputed on release, hovered=%v outs=%d", ui.HoveredControl(), outs)
	}
}

func TestReleaseUnderCoveringControlDoesNotClick(t *testing.T) {
	ui := newTestUI(t)
	c := ui.root(t, KindControl, Rect{W: 100, H: 100})
	cc := countClicks(c)

	ui.in.move(50, 50)
	ui.step(t, tick)
	ui.in.button(MouseButtonLeft, true)
	ui.step(t, tick)

	ui.root(t, KindControl, Rect{X: 40, Y: 40, W: 20, H: 20})
	ui.in.button(MouseButtonLeft, false)
	ui.step(t, tick)
	if cc.clicks != 0 {
		t.Errorf("Expected covered release not to click, got %d", cc.clicks)
	}
}

func TestChordDoesNotClick(t *testing.T) {
	ui := newTestUI(t)
	c := ui.root(t, KindControl, Rect{W: 100, H: 100})
	cc := countClicks(c)

	ui.in.move(50, 50)
	ui.step(t, tick)
	ui.in.button(MouseButtonLeft, true)
	ui.step(t, tick)
	ui.in.button(MouseButtonRight, true)
	ui.step(t, tick)
	if ui.ButtonOwner(MouseButtonRight) != c {
		t.Error("Expected c to own the right button too")
	}
	ui.in.button(MouseButtonLeft, false)
	ui.step(t, tick)
	ui.in.button(MouseButtonRight, false)
	ui.step(t, tick)
	if cc.clicks != 0 {
		t.Errorf("Expected chord not to click, got %d", cc.clicks)
	}
}

func TestChordReleasedTogetherClicksOnce(t *testing.T) {
	ui := newTestUI(t)
	c := ui.root(t, KindControl, Rect{W: 100, H: 100})
	cc := countClicks(c)

	ui.in.move(50, 50)
	ui.step(t, tick)
	ui.in.button(MouseButtonLeft, true)
	ui.step(t, tick)
	ui.in.button(MouseButtonRight, true)
	ui.step(t, tick)
	ui.in.button(MouseButtonLeft, false)
	ui.in.button(MouseButtonRight, false)
	ui.step(t, tick)
	if cc.clicks != 1 {
		t.Fatalf("Expected 1 click, got %d", cc.clicks)
	}
	if cc.buttons[0] != MouseButtonLeft {
		t.Errorf("Expected the first pressed button to click, got %v", cc.buttons[0])
	}
	if ui.ButtonOwner(MouseButtonLeft) != nil || ui.ButtonOwner(MouseButtonRight) != nil {
		t.Error("Expected both buttons released")
	}
}

func TestMousePressRepeatsWhileHeld(t *testing.T) {
	ui := newTestUI(t)
	c := ui.root(t, KindControl, Rect{W: 100, H: 100})
	var downs, presses int
	c.MouseDown.Subscribe(func(*MouseEventArgs) { downs++ })
	c.MousePress.Subscribe(func(*MouseEventArgs) { presses++ })

	ui.in.move(10, 10)
	ui.step(t, tick)
	ui.in.button(MouseButtonLeft, true)
	for range 3 {
		ui.step(t, tick)
	}
	if downs != 1 || presses != 3 {
		t.Errorf("Expected 1 down and 3 presses, got %d and %d", downs, presses)
	}
	if !c.Pressed() {
		t.Error("Expected Pressed while held")
	}
}

func TestIsDragging(t *testing.T) {
	ui := newTestUI(t)
	c := ui.root(t, KindControl, Rect{W: 100, H: 100})

	ui.in.move(20, 20)
	ui.step(t, tick)
	ui.in.button(MouseButtonLeft, true)
	ui.step(t, tick)
	if ui.IsDragging(c) {
		t.Error("Expected no drag before moving")
	}

	ui.in.move(24, 20)
	ui.step(t, tick)
	if ui.IsDragging(c) {
		t.Error("Expected a move of exactly the threshold not to drag")
	}

	ui.in.move(25, 20)
	ui.step(t, tick)
	if !ui.IsDragging(c) {
		t.Error("Expected drag past the threshold")
	}

	ui.in.button(MouseButtonLeft, false)
	ui.step(t, tick)
	if ui.IsDragging(c) {
		t.Error("Expected drag to end on release")
	}
}

func TestHoverEvents(t *testing.T) {
	ui := newTestUI(t)
	a := ui.root(t, KindControl, Rect{W: 100, H: 100})
	b := ui.root(t, KindControl, Rect{X: 200, W: 100, H: 100})

	var log []string
	for name, c := range map[string]*Control{"a": a, "b": b} {
		c.MouseOver.Subscribe(func(*MouseEventArgs) { log = append(log, "over "+name) })
		c.MouseOut.Subscribe(func(*MouseEventArgs) { log = append(log, "out "+name) })
	}

	ui.in.move(50, 50)
	ui.step(t, tick)
	ui.in.move(60, 50)
	ui.step(t, tick)
	ui.in.move(250, 50)
	ui.step(t, tick)
	expectEvents(t, log, "over a", "out a", "over b")
	if !b.Hovered() || a.Hovered() {
		t.Error("Expected only b hovered")
	}
}

func TestScrollGoesToHovered(t *testing.T) {
	ui := newTestUI(t)
	c := ui.root(t, KindControl, Rect{W: 100, H: 100})
	var got Point
	c.MouseScroll.Subscribe(func(e *MouseEventArgs) { got = e.Scroll })

	ui.in.move(10, 10)
	ui.step(t, tick)
	ui.in.snap.ScrollY = -3
	ui.step(t, tick)
	if got != (Point{Y: -3}) {
		t.Errorf("Expected scroll 0,-3, got %v", got)
	}
}

func TestModalScopesInput(t *testing.T) {
	ui := newTestUI(t)
	main := ui.window(t, Rect{W: 300, H: 200})
	other := ui.button(t, main.Control, Rect{X: 8, Y: 8, W: 72, H: 20})
	cc := countClicks(other.Control)

	dlg, err := NewWindow(ui.Manager)
	if err != nil {
		t.Fatal(err)
	}
	dlg.SetBounds(Rect{X: 400, Y: 300, W: 200, H: 100})
	if err := dlg.ShowModal(); err != nil {
		t.Fatalf("ShowModal: %v", err)
	}
	if ui.ModalWindow() != dlg.Control || !dlg.IsModal() {
		t.Fatal("Expected dlg to be modal")
	}
	if ui.FocusedControl() != dlg.Control {
		t.Errorf("Expected modal focused, got %v", ui.FocusedControl())
	}

	if got := ui.ControlAt(Point{X: 20, Y: 40}); got != nil {
		t.Errorf("Expected controls outside the modal to be unreachable, got %v", got)
	}
	ui.SetFocus(other.Control)
	if ui.FocusedControl() != dlg.Control {
		t.Error("Expected focus outside the modal to be refused")
	}

	// Neither a click outside nor auto-unfocus changes anything.
	ui.click(t, MouseButtonLeft, 20, 40)
	if cc.clicks != 0 {
		t.Error("Expected no click outside the modal")
	}
	if ui.FocusedControl() != dlg.Control {
		t.Error("Expected modal to keep focus")
	}

	if !dlg.Close() {
		t.Fatal("Expected Close to succeed")
	}
	if ui.ModalWindow() != nil {
		t.Error("Expected modal stack empty")
	}
	ui.click(t, MouseButtonLeft, 20, 40)
	if cc.clicks != 1 {
		t.Errorf("Expected click after the modal closed, got %d", cc.clicks)
	}
}

func TestModalStack(t *testing.T) {
	ui := newTestUI(t)
	first, err := NewWindow(ui.Manager)
	if err != nil {
		t.Fatal(err)
	}
	second, err := NewWindow(ui.Manager)
	if err != nil {
		t.Fatal(err)
	}
	if err := first.ShowModal(); err != nil {
		t.Fatal(err)
	}
	if err := second.ShowModal(); err != nil {
		t.Fatal(err)
	}
	if ui.ModalWindow() != second.Control || len(ui.Modals()) != 2 {
		t.Fatalf("Expected second on top of 2 modals, got %v", ui.Modals())
	}

	second.Close()
	if ui.ModalWindow() != first.Control {
		t.Errorf("Expected first modal active again, got %v", ui.ModalWindow())
	}
	if ui.FocusedControl() != first.Control {
		t.Errorf("Expected focus back on first modal, got %v", ui.FocusedControl())
	}

	child := MustNewControl(ui.Manager, KindControl)
	mustChild(t, first.Control, child)
	var ive *InvalidValueError
	if err := ui.ShowModal(child); !errors.As(err, &ive) {
		t.Errorf("Expected non-root modal to fail, got %v", err)
	}

	first.Dispose()
	if ui.ModalWindow() != nil {
		t.Error("Expected disposing the modal to pop it")
	}
}

func TestAutoUnfocus(t *testing.T) {
	ui := newTestUI(t)
	c := ui.root(t, KindControl, Rect{W: 100, H: 100})
	c.Focus()

	ui.click(t, MouseButtonLeft, 500, 500)
	if ui.FocusedControl() != nil {
		t.Errorf("Expected press on empty space to clear focus, got %v", ui.FocusedControl())
	}

	cfg := DefaultConfig()
	cfg.AutoUnfocus = false
	ui = newTestUI(t, WithConfig(cfg))
	c = ui.root(t, KindControl, Rect{W: 100, H: 100})
	c.Focus()
	ui.click(t, MouseButtonLeft, 500, 500)
	if ui.FocusedControl() != c {
		t.Error("Expected focus kept with AutoUnfocus off")
	}
}

func TestSetSkin(t *testing.T) {
	ui := newTestUI(t)
	w := ui.window(t, Rect{W: 200, H: 100})
	b := ui.button(t, w.Control, Rect{W: 50, H: 20})

	var changing, changed, controlChanged int
	ui.SkinChanging.Subscribe(func(*EventArgs) { changing++ })
	ui.SkinChanged.Subscribe(func(*EventArgs) { changed++ })
	b.SkinChanged.Subscribe(func(*EventArgs) { controlChanged++ })

	broken := GTASkin()
	delete(broken.Controls, KindButton)
	if err := ui.SetSkin(broken); !errors.Is(err, ErrSkinMissing) {
		t.Fatalf("Expected ErrSkinMissing, got %v", err)
	}
	if ui.Skin() == Skin(broken) || changing != 0 {
		t.Error("Expected failed SetSkin to leave the skin unchanged")
	}

	gta := GTASkin()
	gta.Controls[KindWindow].MinimumSize = Size{Width: 250, Height: 48}
	if err := ui.SetSkin(gta); err != nil {
		t.Fatalf("SetSkin: %v", err)
	}
	if changing != 1 || changed != 1 || controlChanged != 1 {
		t.Errorf("Expected one of each notification, got %d %d %d", changing, changed, controlChanged)
	}
	if b.Skin() != gta.Controls[KindButton] {
		t.Error("Expected button re-resolved against the new skin")
	}
	if w.Width() != 250 {
		t.Errorf("Expected window re-clamped to the new minimum 250, got %d", w.Width())
	}
	if !w.Invalidated() {
		t.Error("Expected skin change to invalidate")
	}

	if err := ui.SetSkin(nil); err == nil {
		t.Error("Expected nil skin to fail")
	}
}

func TestScreenSizeChange(t *testing.T) {
	ui := newTestUI(t)
	c := ui.root(t, KindControl, Rect{W: 700, H: 500})
	var notified int
	ui.DeviceSettingsChanged.Subscribe(func(*EventArgs) { notified++ })

	ui.in.snap.Screen = Size{Width: 640, Height: 480}
	ui.in.snap.Client = Rect{W: 640, H: 480}
	ui.step(t, tick)
	if notified != 1 {
		t.Errorf("Expected one DeviceSettingsChanged, got %d", notified)
	}
	if c.Width() != 640 || c.Height() != 480 {
		t.Errorf("Expected control clamped to 640x480, got %dx%d", c.Width(), c.Height())
	}
	ui.step(t, tick)
	if notified != 1 {
		t.Error("Expected no notification without a change")
	}
}

func TestSetSkin_MissingLayer(t *testing.T) {
	ui := newTestUI(t)
	w := ui.window(t, Rect{W: 200, H: 100})
	ui.button(t, w.Control, Rect{W: 50, H: 20})
	before := ui.Skin()

	noCaption := GTASkin()
	delete(noCaption.Controls[KindWindow].Layers, LayerCaption)
	if err := ui.SetSkin(noCaption); !errors.Is(err, ErrLayerMissing) {
		t.Errorf("Expected ErrLayerMissing for a window without caption, got %v", err)
	}

	noFace := GTASkin()
	delete(noFace.Controls[KindButton].Layers, LayerControl)
	if err := ui.SetSkin(noFace); !errors.Is(err, ErrLayerMissing) {
		t.Errorf("Expected ErrLayerMissing for a button without face, got %v", err)
	}
	if ui.Skin() != before {
		t.Error("Expected failed SetSkin to leave the skin unchanged")
	}
}

func TestCursorPastEdgeHitsEdgeControl(t *testing.T) {
	ui := newTestUI(t)
	c := ui.root(t, KindControl, Rect{X: 780, Y: 580, W: 20, H: 20})
	cc := countClicks(c)

	ui.click(t, MouseButtonLeft, 900, 700)
	if ui.Dispatcher().Position() != (Point{X: 799, Y: 599}) {
		t.Errorf("Expected cursor clamped to 799,599, got %v", ui.Dispatcher().Position())
	}
	if cc.clicks != 1 {
		t.Errorf("Expected the edge control clicked once, got %d", cc.clicks)
	}
}
