package layout

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/go-theft-auto/retained"
	"github.com/go-theft-auto/retained/skin"
)

type setter func(c *retained.Control, v any) error

type prop struct {
	name string
	set  setter
}

// props is applied in this order so that size limits are in place before
// the size and the size before the anchor snapshot.
var props = []prop{
	{"minimum_size", sizeProp((*retained.Control).SetMinimumSize)},
	{"maximum_size", sizeProp((*retained.Control).SetMaximumSize)},
	{"left", intProp((*retained.Control).SetLeft)},
	{"top", intProp((*retained.Control).SetTop)},
	{"width", intProp((*retained.Control).SetWidth)},
	{"height", intProp((*retained.Control).SetHeight)},
	{"anchor", anchorProp},
	{"text", stringProp((*retained.Control).SetText)},
	{"tooltip", stringProp((*retained.Control).SetToolTipText)},
	{"visible", boolProp((*retained.Control).SetVisible)},
	{"enabled", boolProp((*retained.Control).SetEnabled)},
	{"can_focus", boolProp((*retained.Control).SetCanFocus)},
	{"passive", boolProp((*retained.Control).SetPassive)},
	{"detached", boolProp((*retained.Control).SetDetached)},
	{"suspended", boolProp((*retained.Control).SetSuspended)},
	{"stay_on_top", boolProp((*retained.Control).SetStayOnTop)},
	{"stay_on_back", boolProp((*retained.Control).SetStayOnBack)},
	{"movable", boolProp((*retained.Control).SetMovable)},
	{"resizable", boolProp((*retained.Control).SetResizable)},
	{"resizer_size", intProp((*retained.Control).SetResizerSize)},
	{"color", colorProp((*retained.Control).SetColor)},
	{"back_color", colorProp((*retained.Control).SetBackColor)},
	{"text_color", colorProp((*retained.Control).SetTextColor)},
	{"alpha", alphaProp},
}

// PropertyNames returns the property keys a layout may set.
func PropertyNames() []string {
	names := make([]string, len(props))
	for i, p := range props {
		names[i] = p.name
	}
	slices.Sort(names)
	return names
}

func applyProps(c *retained.Control, values map[string]any) error {
	for key := range values {
		if !slices.ContainsFunc(props, func(p prop) bool { return p.name == key }) {
			err := errors.New("unknown property")
			if s := suggest(key, PropertyNames()); s != "" {
				err = fmt.Errorf("unknown property (did you mean %q?)", s)
			}
			return &retained.InvalidValueError{Control: c.String(), Property: key, Value: values[key], Err: err}
		}
	}
	for _, p := range props {
		v, ok := values[p.name]
		if !ok {
			continue
		}
		if err := p.set(c, v); err != nil {
			return &retained.InvalidValueError{Control: c.String(), Property: p.name, Value: v, Err: err}
		}
	}
	return nil
}

// toInt accepts the integer and whole float values the TOML decoder produces.
func toInt(v any) (int, error) {
	switch n := v.(type) {
	case int64:
		if n < math.MinInt32 || n > math.MaxInt32 {
			return 0, errors.New("out of range")
		}
		return int(n), nil
	case float64:
		if n != math.Trunc(n) || n < math.MinInt32 || n > math.MaxInt32 {
			return 0, errors.New("not a whole number")
		}
		return int(n), nil
	}
	return 0, fmt.Errorf("expected integer, got %T", v)
}

func intProp(set func(*retained.Control, int)) setter {
	return func(c *retained.Control, v any) error {
		n, err := toInt(v)
		if err != nil {
			return err
		}
		set(c, n)
		return nil
	}
}

func boolProp(set func(*retained.Control, bool)) setter {
	return func(c *retained.Control, v any) error {
		b, ok := v.(bool)
		if !ok {
			return fmt.Errorf("expected boolean, got %T", v)
		}
		set(c, b)
		return nil
	}
}

func stringProp(set func(*retained.Control, string)) setter {
	return func(c *retained.Control, v any) error {
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", v)
		}
		set(c, s)
		return nil
	}
}

func colorProp(set func(*retained.Control, uint32)) setter {
	return func(c *retained.Control, v any) error {
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("expected color string, got %T", v)
		}
		col, err := skin.ParseColor(s, nil)
		if err != nil {
			return err
		}
		set(c, col)
		return nil
	}
}

func sizeProp(set func(*retained.Control, int, int)) setter {
	return func(c *retained.Control, v any) error {
		arr, ok := v.([]any)
		if !ok || len(arr) != 2 {
			return errors.New("expected [width, height]")
		}
		w, err := toInt(arr[0])
		if err != nil {
			return err
		}
		h, err := toInt(arr[1])
		if err != nil {
			return err
		}
		if w < 0 || h < 0 {
			return errors.New("negative size")
		}
		set(c, w, h)
		return nil
	}
}

func alphaProp(c *retained.Control, v any) error {
	n, err := toInt(v)
	if err != nil {
		return err
	}
	if n < 0 || n > 255 {
		return errors.New("alpha must be 0-255")
	}
	c.SetAlpha(uint8(n))
	return nil
}

var anchorNames = map[string]retained.Anchors{
	"none":   retained.AnchorNone,
	"left":   retained.AnchorLeft,
	"top":    retained.AnchorTop,
	"right":  retained.AnchorRight,
	"bottom": retained.AnchorBottom,
	"all":    retained.AnchorAll,
}

// anchorProp takes a list of edge names, or a single name.
func anchorProp(c *retained.Control, v any) error {
	var names []any
	switch x := v.(type) {
	case string:
		names = []any{x}
	case []any:
		names = x
	default:
		return fmt.Errorf("expected anchor list, got %T", v)
	}
	var a retained.Anchors
	for _, n := range names {
		s, ok := n.(string)
		if !ok {
			return fmt.Errorf("expected anchor name, got %T", n)
		}
		flag, ok := anchorNames[strings.ToLower(s)]
		if !ok {
			return fmt.Errorf("unknown anchor %q", s)
		}
		a |= flag
	}
	c.SetAnchor(a)
	return nil
}
