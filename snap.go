package retained

// SnapConfig controls snapping of root-level controls while they are moved
// with the mouse. Margins are distances in pixels.
type SnapConfig struct {
	Enabled     bool
	EdgeMargin  int // screen edges and center
	PanelMargin int // edges of other root controls
}

// DefaultSnapConfig returns the margins used by the menu screens.
func DefaultSnapConfig() SnapConfig {
	return SnapConfig{Enabled: true, EdgeMargin: 10, PanelMargin: 8}
}

// SnapGuide is a line marking an active snap, in screen coordinates.
type SnapGuide struct {
	From, To Point
}

var snapGuideColor = RGBA(0, 180, 255, 150)

// snapper adjusts move positions after the control's own MoveValidator.
type snapper struct {
	m      *Manager
	cfg    SnapConfig
	guides []SnapGuide
}

// WithSnapping enables snapping of moved root controls.
func WithSnapping(cfg SnapConfig) ManagerOption {
	return func(m *Manager) { m.SetSnapping(cfg) }
}

// SetSnapping replaces the snap configuration. A disabled config turns
// snapping off.
func (m *Manager) SetSnapping(cfg SnapConfig) {
	if !cfg.Enabled {
		m.snap = nil
		return
	}
	m.snap = &snapper{m: m, cfg: cfg}
}

// Snapping returns the active snap configuration.
func (m *Manager) Snapping() SnapConfig {
	if m.snap == nil {
		return SnapConfig{}
	}
	return m.snap.cfg
}

// SnapGuides returns the guides of the move in progress.
func (m *Manager) SnapGuides() []SnapGuide {
	if m.snap == nil {
		return nil
	}
	return m.snap.guides
}

// snapAxis tracks one coordinate; the first matching target wins.
type snapAxis struct {
	pos, size int
	done      bool
	at        int
}

// try snaps the edge at pos+offset to target if it is closer than margin.
func (a *snapAxis) try(offset, target, margin int) bool {
	if a.done || absInt(a.pos+offset-target) >= margin {
		return false
	}
	a.pos = target - offset
	a.at = target
	a.done = true
	return true
}

func (s *snapper) apply(c *Control, left, top *int) {
	s.guides = s.guides[:0]
	x := snapAxis{pos: *left, size: c.width}
	y := snapAxis{pos: *top, size: c.height}
	sw, sh := s.m.screen.Width, s.m.screen.Height

	if mg := s.cfg.EdgeMargin; mg > 0 && sw > 0 && sh > 0 {
		if x.try(0, 0, mg) || x.try(x.size, sw, mg) || x.try(x.size/2, sw/2, mg) {
			s.vertical(x.at, 0, sh)
		}
		if y.try(0, 0, mg) || y.try(y.size, sh, mg) || y.try(y.size/2, sh/2, mg) {
			s.horizontal(y.at, 0, sw)
		}
	}

	if mg := s.cfg.PanelMargin; mg > 0 {
		for _, o := range s.m.roots {
			if o == c || !o.visible || o.passive {
				continue
			}
			r := o.Bounds()
			if x.try(x.size, r.X, mg) || x.try(0, r.X, mg) || x.try(0, r.Right(), mg) || x.try(x.size, r.Right(), mg) {
				s.vertical(x.at, min(y.pos, r.Y), max(y.pos+y.size, r.Bottom()))
			}
			if y.try(y.size, r.Y, mg) || y.try(0, r.Y, mg) || y.try(0, r.Bottom(), mg) || y.try(y.size, r.Bottom(), mg) {
				s.horizontal(y.at, min(x.pos, r.X), max(x.pos+x.size, r.Right()))
			}
		}
	}
	*left, *top = x.pos, y.pos
}

func (s *snapper) vertical(x, y0, y1 int) {
	s.guides = append(s.guides, SnapGuide{From: Point{X: x, Y: y0}, To: Point{X: x, Y: y1}})
}

func (s *snapper) horizontal(y, x0, x1 int) {
	s.guides = append(s.guides, SnapGuide{From: Point{X: x0, Y: y}, To: Point{X: x1, Y: y}})
}

func (s *snapper) draw(dl *DrawList) {
	for _, g := range s.guides {
		dl.AddLine(float32(g.From.X), float32(g.From.Y), float32(g.To.X), float32(g.To.Y), snapGuideColor, 1)
	}
}
