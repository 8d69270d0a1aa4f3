package retained

import (
	"testing"
	"time"
)

func tipTarget(t *testing.T, ui *testUI) *Control {
	t.Helper()
	c := ui.root(t, KindControl, Rect{X: 100, Y: 100, W: 100, H: 50})
	c.SetToolTipText("hello")
	return c
}

func TestToolTip_ShowsAfterDelay(t *testing.T) {
	ui := newTestUI(t)
	tipTarget(t, ui)

	ui.in.move(120, 120)
	ui.step(t, tick)
	ui.step(t, 400*time.Millisecond)
	if ui.ToolTipVisible() {
		t.Fatal("Expected no tooltip before the delay")
	}
	ui.step(t, 100*time.Millisecond)
	if !ui.ToolTipVisible() {
		t.Fatal("Expected tooltip after the delay")
	}

	tip := ui.ToolTip()
	if tip.Text() != "hello" || tip.Name() != "tooltip" || tip.Kind() != KindToolTip {
		t.Errorf("Expected tooltip control with text hello, got %v %q", tip, tip.Text())
	}
	if want := (Rect{X: 120, Y: 140, W: 48, H: 16}); tip.Bounds() != want {
		t.Errorf("Expected %v, got %v", want, tip.Bounds())
	}
	if !tip.Visible() || !tip.Passive() || !tip.StayOnTop() {
		t.Error("Expected a visible passive stay-on-top tooltip")
	}
	if roots := ui.Roots(); roots[len(roots)-1] != tip {
		t.Error("Expected tooltip above other roots")
	}
	if ui.ControlAt(Point{X: 130, Y: 145}) == tip {
		t.Error("Expected tooltip to be transparent to hit-testing")
	}
}

func TestToolTip_MovementRestartsDelay(t *testing.T) {
	ui := newTestUI(t)
	tipTarget(t, ui)

	ui.in.move(120, 120)
	ui.step(t, 400*time.Millisecond)
	ui.in.move(125, 120)
	ui.step(t, 200*time.Millisecond)
	if ui.ToolTipVisible() {
		t.Error("Expected moving the mouse to restart the delay")
	}
	ui.step(t, 300*time.Millisecond)
	if !ui.ToolTipVisible() {
		t.Error("Expected tooltip once the mouse rested")
	}
}

func TestToolTip_DismissedUntilHoverChanges(t *testing.T) {
	ui := newTestUI(t)
	tipTarget(t, ui)

	ui.in.move(120, 120)
	ui.step(t, 500*time.Millisecond)
	if !ui.ToolTipVisible() {
		t.Fatal("Expected tooltip")
	}
	ui.step(t, 10*time.Second)
	if ui.ToolTipVisible() {
		t.Fatal("Expected tooltip dismissed")
	}
	ui.step(t, time.Minute)
	if ui.ToolTipVisible() {
		t.Error("Expected tooltip to stay dismissed while hovering")
	}

	ui.in.move(10, 10)
	ui.step(t, tick)
	ui.in.move(120, 120)
	ui.step(t, 600*time.Millisecond)
	if !ui.ToolTipVisible() {
		t.Error("Expected tooltip again after leaving and returning")
	}
}

func TestToolTip_HiddenByPress(t *testing.T) {
	ui := newTestUI(t)
	tipTarget(t, ui)

	ui.in.move(120, 120)
	ui.step(t, 600*time.Millisecond)
	ui.in.button(MouseButtonLeft, true)
	ui.step(t, tick)
	if ui.ToolTipVisible() || ui.ToolTip().Visible() {
		t.Error("Expected press to hide the tooltip")
	}
	ui.step(t, time.Second)
	if ui.ToolTipVisible() {
		t.Error("Expected no tooltip while a button is held")
	}
}

func TestToolTip_Disabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ToolTipsEnabled = false
	ui := newTestUI(t, WithConfig(cfg))
	tipTarget(t, ui)

	ui.in.move(120, 120)
	ui.step(t, time.Second)
	if ui.ToolTipVisible() || ui.ToolTip() != nil {
		t.Error("Expected tooltips disabled")
	}
}

func TestToolTip_EmptyText(t *testing.T) {
	ui := newTestUI(t)
	c := tipTarget(t, ui)
	c.SetToolTipText("")

	ui.in.move(120, 120)
	ui.step(t, time.Second)
	if ui.ToolTipVisible() {
		t.Error("Expected no tooltip for empty text")
	}
}

func TestToolTip_KeptOnScreen(t *testing.T) {
	ui := newTestUI(t)
	c := ui.root(t, KindControl, Rect{X: 700, Y: 560, W: 100, H: 40})
	c.SetToolTipText("a long tooltip text")

	ui.in.move(790, 590)
	ui.step(t, time.Second)
	tip := ui.ToolTip()
	if tip == nil {
		t.Fatal("Expected tooltip")
	}
	if r := tip.Bounds(); r.Right() > 800 || r.Bottom() > 600 {
		t.Errorf("Expected tooltip inside the screen, got %v", r)
	}
	if tip.Top() != 590-16-4 {
		t.Errorf("Expected tooltip above the cursor, got top %d", tip.Top())
	}
}
