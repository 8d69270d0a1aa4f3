// Package skin loads retained skins from TOML files.
//
// A skin file names a palette of colors and describes each control kind:
//
//	name = "editor"
//
//	[colors]
//	panel = "#141414c8"
//	accent = "#00c8ff"
//
//	[[control]]
//	kind = "Window"
//	default_size = [320, 240]
//	minimum_size = [64, 48]
//	client_margins = [4, 20, 4, 4]
//	resizer_size = 4
//
//	  [[control.layer]]
//	  name = "Control"
//	  border_size = 1
//	  color = { enabled = "panel" }
//	  border = { enabled = "#505050", focused = "accent" }
//
// Colors are "#rrggbb", "#rrggbbaa" or a palette name. Margins are
// [left, top, right, bottom].
package skin

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/go-theft-auto/retained"
)

type fileSkin struct {
	Name     string            `toml:"name"`
	Colors   map[string]string `toml:"colors"`
	Controls []fileControl     `toml:"control"`
}

type fileControl struct {
	Kind          string      `toml:"kind"`
	Base          string      `toml:"base"`
	DefaultSize   []int       `toml:"default_size"`
	MinimumSize   []int       `toml:"minimum_size"`
	MaximumSize   []int       `toml:"maximum_size"`
	OriginMargins []int       `toml:"origin_margins"`
	ClientMargins []int       `toml:"client_margins"`
	ResizerSize   *int        `toml:"resizer_size"`
	Layers        []fileLayer `toml:"layer"`
}

type fileLayer struct {
	Name       string     `toml:"name"`
	Color      fileStates `toml:"color"`
	Text       fileStates `toml:"text"`
	Border     fileStates `toml:"border"`
	BorderSize int        `toml:"border_size"`
	Height     int        `toml:"height"`
}

type fileStates struct {
	Enabled  string `toml:"enabled"`
	Hovered  string `toml:"hovered"`
	Pressed  string `toml:"pressed"`
	Focused  string `toml:"focused"`
	Disabled string `toml:"disabled"`
}

// Option configures Parse and Load.
type Option func(*options)

type options struct {
	base   *retained.SkinSet
	source string
}

// WithBase starts from a copy of base. Kinds the file does not describe are
// inherited unchanged; a file entry replaces the whole kind.
func WithBase(base *retained.SkinSet) Option {
	return func(o *options) { o.base = base }
}

// Parse decodes a skin from TOML.
func Parse(data []byte, opts ...Option) (*retained.SkinSet, error) {
	o := options{source: "skin"}
	for _, opt := range opts {
		opt(&o)
	}

	var f fileSkin
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return nil, decodeError(o.source, err)
	}

	set := &retained.SkinSet{Name: f.Name, Controls: make(map[string]*retained.SkinControl)}
	if o.base != nil {
		if set.Name == "" {
			set.Name = o.base.Name
		}
		for kind, sc := range o.base.Controls {
			set.Controls[kind] = cloneControl(sc)
		}
	}

	seen := make(map[string]bool)
	for i, fc := range f.Controls {
		if fc.Kind == "" {
			return nil, &retained.ConfigError{Source: o.source, Item: fmt.Sprintf("control[%d]", i), Err: errors.New("missing kind")}
		}
		if seen[fc.Kind] {
			return nil, &retained.ConfigError{Source: o.source, Item: fc.Kind, Err: errors.New("duplicate kind")}
		}
		seen[fc.Kind] = true

		sc, err := buildControl(fc, f.Colors, set)
		if err != nil {
			return nil, err
		}
		set.Controls[fc.Kind] = sc
	}
	return set, nil
}

// Load reads and parses a skin file.
func Load(path string, opts ...Option) (*retained.SkinSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &retained.ConfigError{Source: path, Err: err}
	}
	opts = append(opts, func(o *options) { o.source = path })
	return Parse(data, opts...)
}

func decodeError(source string, err error) error {
	var derr *toml.DecodeError
	if errors.As(err, &derr) {
		row, col := derr.Position()
		return &retained.ConfigError{Source: source, Item: fmt.Sprintf("line %d column %d", row, col), Err: err}
	}
	var serr *toml.StrictMissingError
	if errors.As(err, &serr) && len(serr.Errors) > 0 {
		row, col := serr.Errors[0].Position()
		return &retained.ConfigError{Source: source, Item: fmt.Sprintf("unknown key at line %d column %d", row, col), Err: err}
	}
	return &retained.ConfigError{Source: source, Err: err}
}

func buildControl(fc fileControl, palette map[string]string, set *retained.SkinSet) (*retained.SkinControl, error) {
	sc := &retained.SkinControl{Kind: fc.Kind, Layers: make(map[string]*retained.SkinLayer)}
	if fc.Base != "" {
		base, ok := set.Controls[fc.Base]
		if !ok {
			return nil, &retained.ConfigError{Source: "skin", Item: fc.Kind + ".base", Err: fmt.Errorf("%w: %s", retained.ErrSkinMissing, fc.Base)}
		}
		sc = cloneControl(base)
		sc.Kind = fc.Kind
	}

	var err error
	sizes := []struct {
		prop string
		v    []int
		dst  *retained.Size
	}{
		{"default_size", fc.DefaultSize, &sc.DefaultSize},
		{"minimum_size", fc.MinimumSize, &sc.MinimumSize},
		{"maximum_size", fc.MaximumSize, &sc.MaximumSize},
	}
	for _, s := range sizes {
		if s.v == nil {
			continue
		}
		if *s.dst, err = parseSize(fc.Kind, s.prop, s.v); err != nil {
			return nil, err
		}
	}
	if fc.OriginMargins != nil {
		if sc.OriginMargins, err = parseMargins(fc.Kind, "origin_margins", fc.OriginMargins); err != nil {
			return nil, err
		}
	}
	if fc.ClientMargins != nil {
		if sc.ClientMargins, err = parseMargins(fc.Kind, "client_margins", fc.ClientMargins); err != nil {
			return nil, err
		}
	}
	if fc.ResizerSize != nil {
		if *fc.ResizerSize < 0 {
			return nil, &retained.InvalidValueError{Control: fc.Kind, Property: "resizer_size", Value: *fc.ResizerSize}
		}
		sc.ResizerSize = *fc.ResizerSize
	}

	for _, fl := range fc.Layers {
		if fl.Name == "" {
			return nil, &retained.ConfigError{Source: "skin", Item: fc.Kind + ".layer", Err: errors.New("missing name")}
		}
		l := &retained.SkinLayer{Name: fl.Name, BorderSize: fl.BorderSize, Height: fl.Height}
		prefix := fl.Name + "."
		if l.Color, err = parseStates(fc.Kind, prefix+"color", fl.Color, palette); err != nil {
			return nil, err
		}
		if l.Text, err = parseStates(fc.Kind, prefix+"text", fl.Text, palette); err != nil {
			return nil, err
		}
		if l.Border, err = parseStates(fc.Kind, prefix+"border", fl.Border, palette); err != nil {
			return nil, err
		}
		sc.Layers[fl.Name] = l
	}
	if len(sc.Layers) == 0 {
		return nil, &retained.ConfigError{Source: "skin", Item: fc.Kind, Err: retained.ErrLayerMissing}
	}
	return sc, nil
}

func parseSize(kind, prop string, v []int) (retained.Size, error) {
	if len(v) != 2 || v[0] < 0 || v[1] < 0 {
		return retained.Size{}, &retained.InvalidValueError{Control: kind, Property: prop, Value: v, Err: errors.New("want [width, height]")}
	}
	return retained.Size{Width: v[0], Height: v[1]}, nil
}

func parseMargins(kind, prop string, v []int) (retained.Margins, error) {
	if len(v) != 4 {
		return retained.Margins{}, &retained.InvalidValueError{Control: kind, Property: prop, Value: v, Err: errors.New("want [left, top, right, bottom]")}
	}
	return retained.Margins{Left: v[0], Top: v[1], Right: v[2], Bottom: v[3]}, nil
}

func parseStates(kind, prop string, fs fileStates, palette map[string]string) (retained.StateColors, error) {
	var sc retained.StateColors
	fields := []struct {
		name string
		src  string
		dst  *uint32
	}{
		{"enabled", fs.Enabled, &sc.Enabled},
		{"hovered", fs.Hovered, &sc.Hovered},
		{"pressed", fs.Pressed, &sc.Pressed},
		{"focused", fs.Focused, &sc.Focused},
		{"disabled", fs.Disabled, &sc.Disabled},
	}
	for _, f := range fields {
		if f.src == "" {
			continue
		}
		c, err := ParseColor(f.src, palette)
		if err != nil {
			return sc, &retained.InvalidValueError{Control: kind, Property: prop + "." + f.name, Value: f.src, Err: err}
		}
		*f.dst = c
	}
	return sc, nil
}

var namedColors = map[string]uint32{
	"white":       retained.ColorWhite,
	"black":       retained.ColorBlack,
	"red":         retained.ColorRed,
	"green":       retained.ColorGreen,
	"blue":        retained.ColorBlue,
	"yellow":      retained.ColorYellow,
	"cyan":        retained.ColorCyan,
	"gray":        retained.ColorGray,
	"transparent": retained.ColorTransparent,
}

// ParseColor converts "#rrggbb", "#rrggbbaa", a palette entry or a built-in
// color name to a packed color. Palette entries may refer to each other.
func ParseColor(s string, palette map[string]string) (uint32, error) {
	for range 8 {
		if !strings.HasPrefix(s, "#") {
			if v, ok := palette[s]; ok {
				s = v
				continue
			}
			if c, ok := namedColors[strings.ToLower(s)]; ok {
				return c, nil
			}
			return 0, fmt.Errorf("unknown color %q", s)
		}
		hex := s[1:]
		if len(hex) != 6 && len(hex) != 8 {
			return 0, fmt.Errorf("color %q: want #rrggbb or #rrggbbaa", s)
		}
		if len(hex) == 6 {
			hex += "ff"
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return 0, fmt.Errorf("color %q: %w", s, err)
		}
		return retained.RGBA(uint8(v>>24), uint8(v>>16), uint8(v>>8), uint8(v)), nil
	}
	return 0, fmt.Errorf("color %q: palette references nest too deep", s)
}

func cloneControl(sc *retained.SkinControl) *retained.SkinControl {
	out := *sc
	out.Layers = make(map[string]*retained.SkinLayer, len(sc.Layers))
	for name, l := range sc.Layers {
		lc := *l
		out.Layers[name] = &lc
	}
	return &out
}
