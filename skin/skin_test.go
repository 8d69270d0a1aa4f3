package skin_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-theft-auto/retained"
	"github.com/go-theft-auto/retained/skin"
)

const editorSkin = `
name = "editor"

[colors]
panel = "#141414c8"
accent = "#00c8ff"
focus = "accent"

[[control]]
kind = "Window"
default_size = [320, 240]
minimum_size = [64, 48]
client_margins = [4, 20, 4, 4]
resizer_size = 6

  [[control.layer]]
  name = "Control"
  border_size = 1
  color = { enabled = "panel" }
  border = { enabled = "#505050", focused = "focus" }

  [[control.layer]]
  name = "Caption"
  height = 16
  color = { enabled = "#202020", focused = "accent" }
  text = { enabled = "white" }

[[control]]
kind = "Button"
base = "Window"
default_size = [80, 24]
`

func TestParseSkin(t *testing.T) {
	set, err := skin.Parse([]byte(editorSkin))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if set.Name != "editor" {
		t.Errorf("Expected name editor, got %q", set.Name)
	}

	win, err := set.Control(retained.KindWindow)
	if err != nil {
		t.Fatalf("Window missing: %v", err)
	}
	if win.DefaultSize != (retained.Size{Width: 320, Height: 240}) {
		t.Errorf("Expected default size 320x240, got %v", win.DefaultSize)
	}
	if win.ClientMargins.Top != 20 {
		t.Errorf("Expected client top margin 20, got %d", win.ClientMargins.Top)
	}
	if win.ResizerSize != 6 {
		t.Errorf("Expected resizer size 6, got %d", win.ResizerSize)
	}

	l, err := win.Layer(retained.LayerControl)
	if err != nil {
		t.Fatalf("Control layer missing: %v", err)
	}
	if want := retained.RGBA(0x14, 0x14, 0x14, 0xc8); l.Color.Enabled != want {
		t.Errorf("Expected panel color %08x, got %08x", want, l.Color.Enabled)
	}
	if want := retained.RGBA(0x00, 0xc8, 0xff, 0xff); l.Border.Focused != want {
		t.Errorf("Expected focused border %08x via palette chain, got %08x", want, l.Border.Focused)
	}
	if l.Border.For(retained.StateHovered) != l.Border.Enabled {
		t.Error("Expected unset hovered color to fall back to enabled")
	}

	btn, err := set.Control(retained.KindButton)
	if err != nil {
		t.Fatalf("Button missing: %v", err)
	}
	if btn.DefaultSize.Width != 80 {
		t.Errorf("Expected button width 80, got %d", btn.DefaultSize.Width)
	}
	if _, err := btn.Layer(retained.LayerCaption); err != nil {
		t.Errorf("Expected button to inherit caption layer from base, got %v", err)
	}
	if btn.ResizerSize != 6 {
		t.Errorf("Expected inherited resizer size 6, got %d", btn.ResizerSize)
	}
}

func TestParseWithBase(t *testing.T) {
	base := retained.DefaultSkin()
	set, err := skin.Parse([]byte(`
[[control]]
kind = "Button"
default_size = [100, 30]
  [[control.layer]]
  name = "Control"
  color = { enabled = "red" }
`), skin.WithBase(base))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if set.Name != base.Name {
		t.Errorf("Expected inherited name %q, got %q", base.Name, set.Name)
	}
	if _, err := set.Control(retained.KindWindow); err != nil {
		t.Errorf("Expected Window inherited from base, got %v", err)
	}
	btn, _ := set.Control(retained.KindButton)
	if btn.DefaultSize.Width != 100 {
		t.Errorf("Expected overridden width 100, got %d", btn.DefaultSize.Width)
	}

	// The base must not be mutated.
	orig, _ := base.Control(retained.KindButton)
	if orig.DefaultSize.Width == 100 {
		t.Error("Expected base skin to be left unchanged")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantCfg bool
		wantVal bool
	}{
		{"syntax", "name = ", true, false},
		{"unknown key", "bogus = 1", true, false},
		{"missing kind", "[[control]]\n[[control.layer]]\nname = \"Control\"", true, false},
		{"duplicate kind", "[[control]]\nkind=\"A\"\n[[control.layer]]\nname=\"Control\"\n[[control]]\nkind=\"A\"\n[[control.layer]]\nname=\"Control\"", true, false},
		{"no layers", "[[control]]\nkind = \"A\"", true, false},
		{"bad color", "[[control]]\nkind=\"A\"\n[[control.layer]]\nname=\"Control\"\ncolor={enabled=\"#12\"}", false, true},
		{"unknown color", "[[control]]\nkind=\"A\"\n[[control.layer]]\nname=\"Control\"\ncolor={enabled=\"mauve\"}", false, true},
		{"bad size", "[[control]]\nkind=\"A\"\ndefault_size=[1]\n[[control.layer]]\nname=\"Control\"", false, true},
		{"bad base", "[[control]]\nkind=\"A\"\nbase=\"Nope\"", true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := skin.Parse([]byte(tt.data))
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			var cerr *retained.ConfigError
			if tt.wantCfg && !errors.As(err, &cerr) {
				t.Errorf("Expected ConfigError, got %T: %v", err, err)
			}
			var verr *retained.InvalidValueError
			if tt.wantVal && !errors.As(err, &verr) {
				t.Errorf("Expected InvalidValueError, got %T: %v", err, err)
			}
		})
	}
}

func TestParseColor(t *testing.T) {
	palette := map[string]string{"a": "b", "b": "#ff0000"}
	tests := []struct {
		in   string
		want uint32
	}{
		{"#ffffff", retained.ColorWhite},
		{"#00000000", retained.ColorTransparent},
		{"#ff0000", retained.ColorRed},
		{"a", retained.ColorRed},
		{"Black", retained.ColorBlack},
	}
	for _, tt := range tests {
		got, err := skin.ParseColor(tt.in, palette)
		if err != nil {
			t.Errorf("ParseColor(%q) failed: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q): expected %08x, got %08x", tt.in, tt.want, got)
		}
	}

	loop := map[string]string{"x": "y", "y": "x"}
	if _, err := skin.ParseColor("x", loop); err == nil {
		t.Error("Expected error for cyclic palette")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "editor.toml")
	if err := os.WriteFile(path, []byte(editorSkin), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := skin.Load(path); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	_, err := skin.Load(filepath.Join(t.TempDir(), "missing.toml"))
	var cerr *retained.ConfigError
	if !errors.As(err, &cerr) {
		t.Errorf("Expected ConfigError for missing file, got %v", err)
	}
}

func TestLoadedSkinAppliesToControls(t *testing.T) {
	set, err := skin.Parse([]byte(editorSkin), skin.WithBase(retained.DefaultSkin()))
	if err != nil {
		t.Fatal(err)
	}
	m, err := retained.NewManager(retained.WithSkin(set))
	if err != nil {
		t.Fatal(err)
	}
	w, err := retained.NewWindow(m)
	if err != nil {
		t.Fatal(err)
	}
	if w.Width() != 320 || w.Height() != 240 {
		t.Errorf("Expected skin default size 320x240, got %dx%d", w.Width(), w.Height())
	}
}
