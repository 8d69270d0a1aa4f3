package retained

import "strconv"

// MouseButton represents a mouse button.
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
	MouseButtonX1
	MouseButtonX2
	MouseButtonCount

	// MouseButtonNone is used in events that are not tied to a button.
	MouseButtonNone MouseButton = -1
)

// String returns a human-readable name for the button.
func (b MouseButton) String() string {
	switch b {
	case MouseButtonLeft:
		return "Left"
	case MouseButtonRight:
		return "Right"
	case MouseButtonMiddle:
		return "Middle"
	case MouseButtonX1:
		return "X1"
	case MouseButtonX2:
		return "X2"
	default:
		return "None"
	}
}

// Key represents a keyboard key.
type Key int

const (
	KeyNone Key = iota
	KeyTab
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
	KeyInsert
	KeyDelete
	KeyBackspace
	KeySpace
	KeyEnter
	KeyEscape
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyLeftShift
	KeyRightShift
	KeyLeftControl
	KeyRightControl
	KeyLeftAlt
	KeyRightAlt
	KeyCount
)

// IsModifier reports whether k is a Shift, Control or Alt key. Modifiers
// never auto-repeat.
func (k Key) IsModifier() bool {
	return k >= KeyLeftShift && k <= KeyRightAlt
}

// String returns KeyName(k).
func (k Key) String() string { return KeyName(k) }

var keyNames = func() map[Key]string {
	names := map[Key]string{
		KeyNone:         "--",
		KeyTab:          "Tab",
		KeyLeft:         "Left",
		KeyRight:        "Right",
		KeyUp:           "Up",
		KeyDown:         "Down",
		KeyPageUp:       "PgUp",
		KeyPageDown:     "PgDn",
		KeyHome:         "Home",
		KeyEnd:          "End",
		KeyInsert:       "Ins",
		KeyDelete:       "Del",
		KeyBackspace:    "Backspace",
		KeySpace:        "Space",
		KeyEnter:        "Enter",
		KeyEscape:       "Esc",
		KeyLeftShift:    "LShift",
		KeyRightShift:   "RShift",
		KeyLeftControl:  "LCtrl",
		KeyRightControl: "RCtrl",
		KeyLeftAlt:      "LAlt",
		KeyRightAlt:     "RAlt",
	}
	for k := KeyA; k <= KeyZ; k++ {
		names[k] = string(rune('A' + int(k-KeyA)))
	}
	for k := Key0; k <= Key9; k++ {
		names[k] = string(rune('0' + int(k-Key0)))
	}
	for k := KeyF1; k <= KeyF12; k++ {
		names[k] = "F" + strconv.Itoa(int(k-KeyF1)+1)
	}
	return names
}()

// KeyName returns a human-readable name for a key.
func KeyName(k Key) string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "?"
}

// KeyByName is the inverse of KeyName. It is used by layout and skin files.
func KeyByName(name string) (Key, bool) {
	for k, n := range keyNames {
		if n == name {
			return k, true
		}
	}
	return KeyNone, false
}

// InputSnapshot is the raw device state for one tick, as produced by the
// host's keyboard and mouse polling.
type InputSnapshot struct {
	Keys [KeyCount]bool // true while the key is held

	MouseX, MouseY int // Cursor position in window coordinates
	Buttons        [MouseButtonCount]bool
	ScrollX        int
	ScrollY        int

	Client Rect // Window client area the cursor is clamped to
	Screen Size // Display size; bounds control maximum sizes and surfaces
}

// SetKey marks a key as held or released.
func (s *InputSnapshot) SetKey(k Key, down bool) {
	if k <= KeyNone || k >= KeyCount {
		return
	}
	s.Keys[k] = down
}

// SetButton marks a mouse button as held or released.
func (s *InputSnapshot) SetButton(b MouseButton, down bool) {
	if b < 0 || b >= MouseButtonCount {
		return
	}
	s.Buttons[b] = down
}

// InputSource is implemented by the host's device layer.
type InputSource interface {
	// Poll returns the device state for the current tick.
	Poll() (InputSnapshot, error)
}
