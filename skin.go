package retained

import (
	"errors"
	"fmt"
)

// ControlState selects which color set of a skin layer applies.
type ControlState int

const (
	StateEnabled ControlState = iota
	StateHovered
	StatePressed
	StateFocused
	StateDisabled
)

// String returns the lower-case state name used by skin files.
func (s ControlState) String() string {
	switch s {
	case StateEnabled:
		return "enabled"
	case StateHovered:
		return "hovered"
	case StatePressed:
		return "pressed"
	case StateFocused:
		return "focused"
	case StateDisabled:
		return "disabled"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// StateColors holds one color per ControlState. A zero entry falls back to
// Enabled.
type StateColors struct {
	Enabled  uint32
	Hovered  uint32
	Pressed  uint32
	Focused  uint32
	Disabled uint32
}

// For returns the color for state.
func (sc StateColors) For(state ControlState) uint32 {
	var c uint32
	switch state {
	case StateHovered:
		c = sc.Hovered
	case StatePressed:
		c = sc.Pressed
	case StateFocused:
		c = sc.Focused
	case StateDisabled:
		c = sc.Disabled
	}
	if c == 0 {
		return sc.Enabled
	}
	return c
}

// SkinLayer is one named visual layer of a control kind.
type SkinLayer struct {
	Name       string
	Color      StateColors // fill
	Text       StateColors
	Border     StateColors
	BorderSize int
	Texture    uint32 // optional; drawn tinted by Color when non-zero
	Height     int    // optional fixed height, used by caption-like layers
}

// SkinControl describes the layout and visuals of one control kind.
type SkinControl struct {
	Kind string

	DefaultSize Size
	MinimumSize Size
	MaximumSize Size // zero means unbounded (screen limited)

	// OriginMargins extend the painted rectangle beyond the logical one,
	// for shadows and similar decoration.
	OriginMargins Margins
	// ClientMargins inset the area children are placed in.
	ClientMargins Margins

	ResizerSize int

	Layers map[string]*SkinLayer
}

// Layer returns the named layer. A missing layer is a configuration error.
func (sc *SkinControl) Layer(name string) (*SkinLayer, error) {
	if l, ok := sc.Layers[name]; ok {
		return l, nil
	}
	return nil, &ConfigError{Source: "skin", Item: sc.Kind + "." + name, Err: ErrLayerMissing}
}

// layerUser is implemented by behaviors that paint fixed skin layers.
type layerUser interface {
	skinLayers() []string
}

// requiredLayers returns the layers c paints. Custom painters declare none.
func (c *Control) requiredLayers() []string {
	switch b := c.behavior.(type) {
	case layerUser:
		return b.skinLayers()
	case Painter:
		return nil
	}
	return []string{LayerControl}
}

// checkLayers reports every name missing from sc.
func checkLayers(sc *SkinControl, names []string) error {
	var errs []error
	for _, name := range names {
		if _, err := sc.Layer(name); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Skin resolves control kinds to their skin description.
type Skin interface {
	// Control returns the description of kind or an error wrapping
	// ErrSkinMissing.
	Control(kind string) (*SkinControl, error)
}

// SkinSet is an in-memory Skin.
type SkinSet struct {
	Name     string
	Controls map[string]*SkinControl
}

// Control implements Skin.
func (s *SkinSet) Control(kind string) (*SkinControl, error) {
	if sc, ok := s.Controls[kind]; ok {
		return sc, nil
	}
	return nil, &ConfigError{Source: "skin " + s.Name, Item: kind, Err: ErrSkinMissing}
}

// Built-in control kinds.
const (
	KindControl = "Control"
	KindWindow  = "Window"
	KindButton  = "Button"
	KindToolTip = "ToolTip"
)

// Layer names used by the built-in kinds.
const (
	LayerControl = "Control"
	LayerCaption = "Caption"
)

type palette struct {
	text, textDisabled             uint32
	panel, panelBorder, header     uint32
	button, hovered, active, muted uint32
	focus, tooltip                 uint32
}

func skinFromPalette(name string, p palette) *SkinSet {
	base := &SkinLayer{
		Name:   LayerControl,
		Color:  StateColors{Enabled: p.panel},
		Text:   StateColors{Enabled: p.text, Disabled: p.textDisabled},
		Border: StateColors{Enabled: p.panelBorder, Focused: p.focus},
	}
	return &SkinSet{
		Name: name,
		Controls: map[string]*SkinControl{
			KindControl: {
				Kind:        KindControl,
				DefaultSize: Size{Width: 64, Height: 64},
				Layers:      map[string]*SkinLayer{LayerControl: base},
			},
			KindWindow: {
				Kind:          KindWindow,
				DefaultSize:   Size{Width: 320, Height: 240},
				MinimumSize:   Size{Width: 64, Height: 48},
				ClientMargins: Margins{Left: 4, Top: 20, Right: 4, Bottom: 4},
				ResizerSize:   4,
				Layers: map[string]*SkinLayer{
					LayerControl: {
						Name:       LayerControl,
						Color:      StateColors{Enabled: p.panel},
						Text:       StateColors{Enabled: p.text, Disabled: p.textDisabled},
						Border:     StateColors{Enabled: p.panelBorder, Focused: p.focus},
						BorderSize: 1,
					},
					LayerCaption: {
						Name:   LayerCaption,
						Color:  StateColors{Enabled: p.header, Focused: p.active},
						Text:   StateColors{Enabled: p.text, Disabled: p.textDisabled},
						Height: 16,
					},
				},
			},
			KindButton: {
				Kind:        KindButton,
				DefaultSize: Size{Width: 72, Height: 20},
				MinimumSize: Size{Width: 8, Height: 8},
				Layers: map[string]*SkinLayer{
					LayerControl: {
						Name: LayerControl,
						Color: StateColors{
							Enabled:  p.button,
							Hovered:  p.hovered,
							Pressed:  p.active,
							Disabled: p.muted,
						},
						Text:       StateColors{Enabled: p.text, Disabled: p.textDisabled},
						Border:     StateColors{Enabled: p.panelBorder, Focused: p.focus},
						BorderSize: 1,
					},
				},
			},
			KindToolTip: {
				Kind:        KindToolTip,
				DefaultSize: Size{Width: 64, Height: 16},
				Layers: map[string]*SkinLayer{
					LayerControl: {
						Name:       LayerControl,
						Color:      StateColors{Enabled: p.tooltip},
						Text:       StateColors{Enabled: p.text},
						Border:     StateColors{Enabled: p.panelBorder},
						BorderSize: 1,
					},
				},
			},
		},
	}
}

// DefaultSkin returns the neutral dark skin.
func DefaultSkin() *SkinSet {
	return skinFromPalette("default", palette{
		text:         ColorWhite,
		textDisabled: ColorGray,
		panel:        RGBA(20, 20, 20, 200),
		panelBorder:  RGBA(80, 80, 80, 255),
		header:       RGBA(40, 40, 45, 255),
		button:       RGBA(50, 50, 50, 255),
		hovered:      RGBA(70, 70, 70, 255),
		active:       RGBA(90, 90, 90, 255),
		muted:        RGBA(30, 30, 30, 255),
		focus:        ColorCyan,
		tooltip:      RGBA(25, 25, 25, 250),
	})
}

// GTASkin returns a skin with the cyan and yellow accents of the game menus.
func GTASkin() *SkinSet {
	return skinFromPalette("gta", palette{
		text:         ColorWhite,
		textDisabled: RGBA(128, 128, 128, 255),
		panel:        RGBA(0, 0, 0, 220),
		panelBorder:  RGBA(100, 100, 100, 255),
		header:       RGBA(0, 60, 90, 255),
		button:       RGBA(40, 40, 40, 255),
		hovered:      RGBA(60, 80, 100, 255),
		active:       RGBA(0, 150, 200, 255),
		muted:        RGBA(30, 30, 30, 150),
		focus:        RGBA(0, 200, 255, 255),
		tooltip:      RGBA(10, 10, 10, 250),
	})
}
