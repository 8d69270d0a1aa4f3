// Package layout builds control trees from TOML layout files.
//
// A layout lists root controls, each with a class, an optional name,
// properties and nested children:
//
//	[[control]]
//	class = "Window"
//	name = "tools"
//	props = { left = 40, top = 40, width = 320, height = 200, text = "Tools" }
//
//	  [[control.children]]
//	  class = "Button"
//	  name = "ok"
//	  props = { left = 236, top = 150, text = "OK", anchor = ["right", "bottom"] }
//
// Classes come from a registry; Control, Window and Button are registered
// by default and hosts may add their own with Register.
package layout

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/pelletier/go-toml/v2"

	"github.com/go-theft-auto/retained"
)

// Factory creates a new, unattached control of one class.
type Factory func(m *retained.Manager) (*retained.Control, error)

// registry stores registered class factories.
var registry = map[string]Factory{
	"Control": func(m *retained.Manager) (*retained.Control, error) {
		return retained.NewControl(m, retained.KindControl)
	},
	"Window": func(m *retained.Manager) (*retained.Control, error) {
		w, err := retained.NewWindow(m)
		if err != nil {
			return nil, err
		}
		return w.Control, nil
	},
	"Button": func(m *retained.Manager) (*retained.Control, error) {
		b, err := retained.NewButton(m)
		if err != nil {
			return nil, err
		}
		return b.Control, nil
	},
}

// Register adds or replaces the factory for class. The registry is not
// safe for concurrent use; register classes during startup.
//
//	layout.Register("ColorWheel", func(m *retained.Manager) (*retained.Control, error) {
//	    return NewColorWheel(m)
//	})
func Register(class string, f Factory) {
	registry[class] = f
}

// Unregister removes a class from the registry.
func Unregister(class string) {
	delete(registry, class)
}

// Classes returns the registered class names in sorted order.
func Classes() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

type fileLayout struct {
	Controls []fileNode `toml:"control"`
}

type fileNode struct {
	Class    string         `toml:"class"`
	Name     string         `toml:"name"`
	Props    map[string]any `toml:"props"`
	Children []fileNode     `toml:"children"`
}

// Layout is the result of building a layout file.
type Layout struct {
	// Roots holds the top-level controls in file order. They are already
	// attached to the manager.
	Roots []*retained.Control

	named map[string]*retained.Control
}

// Control returns the control built for name, or nil.
func (l *Layout) Control(name string) *retained.Control { return l.named[name] }

// Names returns every control name in the layout, sorted.
func (l *Layout) Names() []string {
	names := make([]string, 0, len(l.named))
	for name := range l.named {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Dispose disposes every root control of the layout.
func (l *Layout) Dispose() {
	for _, c := range l.Roots {
		c.Dispose()
	}
}

// Parse builds the controls described by data and attaches the top-level
// ones to m. On error nothing stays attached.
func Parse(m *retained.Manager, data []byte) (*Layout, error) {
	return parse(m, data, "layout")
}

// Load reads path and builds its controls like Parse.
func Load(m *retained.Manager, path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &retained.ConfigError{Source: path, Err: err}
	}
	return parse(m, data, path)
}

func parse(m *retained.Manager, data []byte, source string) (*Layout, error) {
	var f fileLayout
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, &retained.ConfigError{Source: source, Item: fmt.Sprintf("line %d column %d", row, col), Err: err}
		}
		var serr *toml.StrictMissingError
		if errors.As(err, &serr) && len(serr.Errors) > 0 {
			row, col := serr.Errors[0].Position()
			return nil, &retained.ConfigError{Source: source, Item: fmt.Sprintf("unknown key at line %d column %d", row, col), Err: err}
		}
		return nil, &retained.ConfigError{Source: source, Err: err}
	}

	b := &builder{m: m, source: source, layout: &Layout{named: make(map[string]*retained.Control)}}
	for i := range f.Controls {
		c, err := b.build(&f.Controls[i], fmt.Sprintf("control[%d]", i))
		if err != nil {
			b.layout.Dispose()
			return nil, err
		}
		b.layout.Roots = append(b.layout.Roots, c)
		if err := m.Add(c); err != nil {
			b.layout.Dispose()
			return nil, &retained.ConfigError{Source: source, Item: c.String(), Err: err}
		}
	}
	m.Logger().Debug("layout loaded", "source", source, "roots", len(b.layout.Roots), "controls", len(b.layout.named))
	return b.layout, nil
}

type builder struct {
	m      *retained.Manager
	source string
	layout *Layout
}

// build creates the control for n and its children. The returned control
// is not attached to a parent; on error it is nil and everything created
// for n was disposed.
func (b *builder) build(n *fileNode, path string) (*retained.Control, error) {
	f, ok := registry[n.Class]
	if !ok {
		err := fmt.Errorf("unknown class %q", n.Class)
		if s := suggest(n.Class, Classes()); s != "" {
			err = fmt.Errorf("%w (did you mean %q?)", err, s)
		}
		return nil, &retained.ConfigError{Source: b.source, Item: path, Err: err}
	}
	c, err := f(b.m)
	if err != nil {
		return nil, &retained.ConfigError{Source: b.source, Item: path, Err: err}
	}

	if n.Name != "" {
		if _, dup := b.layout.named[n.Name]; dup {
			c.Dispose()
			return nil, &retained.ConfigError{Source: b.source, Item: path, Err: fmt.Errorf("duplicate name %q", n.Name)}
		}
		c.SetName(n.Name)
		b.layout.named[n.Name] = c
		path = n.Name
	}

	if err := applyProps(c, n.Props); err != nil {
		c.Dispose()
		return nil, err
	}

	for i := range n.Children {
		child, err := b.build(&n.Children[i], fmt.Sprintf("%s.children[%d]", path, i))
		if err == nil {
			err = c.Add(child)
		}
		if err != nil {
			c.Dispose()
			return nil, err
		}
	}
	return c, nil
}

// suggest returns the candidate closest to s, or "" when none is close.
func suggest(s string, candidates []string) string {
	best, bestDist := "", 3
	for _, cand := range candidates {
		if d := fuzzy.LevenshteinDistance(strings.ToLower(s), strings.ToLower(cand)); d < bestDist {
			best, bestDist = cand, d
		}
	}
	return best
}
