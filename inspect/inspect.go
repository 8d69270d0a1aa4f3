// Package inspect renders the control hierarchy of a retained.Manager for
// debugging and finds controls by approximate name.
package inspect

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/go-theft-auto/retained"
)

var (
	enumeratorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginRight(1)
	rootStyle       = lipgloss.NewStyle().Bold(true)
	hiddenStyle     = lipgloss.NewStyle().Faint(true)
	focusedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("45"))
	modalStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// Option configures Tree.
type Option func(*options)

type options struct {
	hidden bool
}

// WithHidden includes invisible controls and their subtrees.
func WithHidden(v bool) Option {
	return func(o *options) { o.hidden = v }
}

// Tree renders every root control of m and its descendants, back to front.
func Tree(m *retained.Manager, opts ...Option) string {
	o := options{hidden: true}
	for _, opt := range opts {
		opt(&o)
	}

	t := tree.Root(fmt.Sprintf("manager (%d controls)", len(m.Controls()))).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(enumeratorStyle).
		RootStyle(rootStyle)
	for _, c := range m.Roots() {
		if n := subtree(m, c, &o); n != nil {
			t.Child(n)
		}
	}
	return t.String()
}

// Subtree renders c and its descendants.
func Subtree(c *retained.Control, opts ...Option) string {
	o := options{hidden: true}
	for _, opt := range opts {
		opt(&o)
	}
	n := subtree(c.Manager(), c, &o)
	if n == nil {
		return ""
	}
	return n.String()
}

func subtree(m *retained.Manager, c *retained.Control, o *options) *tree.Tree {
	if !c.Visible() && !o.hidden {
		return nil
	}
	t := tree.Root(label(m, c)).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(enumeratorStyle)
	for _, ch := range c.Children() {
		if n := subtree(m, ch, o); n != nil {
			t.Child(n)
		}
	}
	return t
}

func label(m *retained.Manager, c *retained.Control) string {
	s := Describe(c)
	switch {
	case m.ModalWindow() == c:
		return modalStyle.Render(s)
	case c.Focused():
		return focusedStyle.Render(s)
	case !c.Visible():
		return hiddenStyle.Render(s)
	}
	return s
}

// Describe returns a one-line summary of c: identity, bounds and the flags
// that differ from a fresh control.
func Describe(c *retained.Control) string {
	b := c.Bounds()
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s [%d,%d %dx%d]", c.String(), b.X, b.Y, b.W, b.H)
	if t := c.Text(); t != "" {
		fmt.Fprintf(&sb, " %q", t)
	}

	var flags []string
	add := func(on bool, name string) {
		if on {
			flags = append(flags, name)
		}
	}
	add(!c.Visible(), "hidden")
	add(!c.Enabled(), "disabled")
	add(c.Focused(), "focused")
	add(c.Hovered(), "hovered")
	add(c.Pressed(), "pressed")
	add(c.Passive(), "passive")
	add(c.Detached(), "detached")
	add(c.StayOnTop(), "top")
	add(c.StayOnBack(), "back")
	add(c.Invalidated(), "dirty")
	add(c.IsMoving(), "moving")
	add(c.IsResizing(), "resizing")
	if a := c.Anchor(); a != retained.AnchorLeft|retained.AnchorTop {
		flags = append(flags, "anchor="+anchorString(a))
	}
	if len(flags) > 0 {
		sb.WriteString(" (" + strings.Join(flags, " ") + ")")
	}
	return sb.String()
}

func anchorString(a retained.Anchors) string {
	if a == retained.AnchorNone {
		return "none"
	}
	var parts []string
	for _, e := range []struct {
		flag retained.Anchors
		name string
	}{
		{retained.AnchorLeft, "L"},
		{retained.AnchorTop, "T"},
		{retained.AnchorRight, "R"},
		{retained.AnchorBottom, "B"},
	} {
		if a.Has(e.flag) {
			parts = append(parts, e.name)
		}
	}
	return strings.Join(parts, "")
}

// Find returns the named controls of m whose name fuzzily matches query,
// best match first. An empty query matches nothing.
func Find(m *retained.Manager, query string) []*retained.Control {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	var named []*retained.Control
	for _, c := range m.Controls() {
		if c.Name() != "" {
			named = append(named, c)
		}
	}
	names := make([]string, len(named))
	for i, c := range named {
		names[i] = c.Name()
	}

	ranks := fuzzy.RankFindNormalizedFold(query, names)
	slices.SortStableFunc(ranks, func(a, b fuzzy.Rank) int {
		if a.Distance != b.Distance {
			return a.Distance - b.Distance
		}
		return strings.Compare(a.Target, b.Target)
	})
	out := make([]*retained.Control, len(ranks))
	for i, r := range ranks {
		out[i] = named[r.OriginalIndex]
	}
	return out
}
