/*
Package retained provides a retained-mode control framework for in-game
editor windows and tools.

# Overview

Controls form a tree owned by a Manager. Each control keeps its own
geometry, visual state and event subscriptions between frames; the host
only pumps input and draws. Root-level and detached controls cache their
painting in an offscreen surface that is repainted only after Invalidate.

# Quick Start

	// Setup
	renderer, _ := opengl.NewRenderer(1280, 720)
	input := opengl.NewInput(window)
	ui, err := retained.NewManager(
	    retained.WithRenderer(renderer),
	    retained.WithInput(input),
	)

	win, _ := retained.NewWindow(ui)
	win.SetText("Tools")
	win.SetBounds(retained.Rect{X: 40, Y: 40, W: 320, H: 200})

	ok, _ := retained.NewButton(ui)
	ok.SetText("OK")
	ok.SetAnchor(retained.AnchorRight | retained.AnchorBottom)
	win.Add(ok.Control)
	ok.Click.Subscribe(func(e *retained.MouseEventArgs) { win.Close() })
	win.Show()

	// Game loop
	for !window.ShouldClose() {
	    if err := ui.Update(dt); err != nil {
	        log.Fatal(err)
	    }
	    if err := ui.Draw(); err != nil {
	        log.Fatal(err)
	    }
	    window.SwapBuffers()
	}

# Event Order

Per Update the Dispatcher emits key events in key-code order, then
MouseMove, MouseScroll and the button transitions. The Manager routes mouse
events to the top-most control under the cursor that is visible, enabled,
not passive and inside the active modal window. The control that receives
MouseDown owns the button until MouseUp. Click fires on release over the
same control when no other button is held; a second click with the same
button within DoubleClickTime fires DoubleClick instead.

# Keyboard Shortcuts Reference

Focus navigation runs when the focused control leaves a KeyPress unhandled
and neither Ctrl nor Alt is held.

	Tab              Focus the next focusable control in z-order
	Shift+Tab        Focus the previous focusable control
	Arrow keys       Focus the nearest sibling in that direction
	Enter, Space     Click the focused Button

# Anchors

A control keeps a constant distance to each anchored parent edge. With
only Right anchored it moves; with Left and Right it stretches; with neither
it stays centered by moving half the parent's size change. Top and Bottom
work the same way.

# Configuration

Timing and sizing values live in Config and may be loaded from TOML:

	double_click_ms = 400
	key_repeat_delay_ms = 500
	key_repeat_interval_ms = 50
	tooltip_delay_ms = 500
	tooltip_dismiss_ms = 10000
	texture_resize_increment = 32
	drag_threshold = 4
	outline_moving = true

See the skin and layout packages for the skin and layout file formats.
*/
package retained
