package retained

// Point is a position in pixels.
type Point struct {
	X, Y int
}

// Add returns the sum of two points.
func (p Point) Add(other Point) Point {
	return Point{X: p.X + other.X, Y: p.Y + other.Y}
}

// Sub returns the difference of two points.
func (p Point) Sub(other Point) Point {
	return Point{X: p.X - other.X, Y: p.Y - other.Y}
}

// Size is a width/height pair in pixels.
type Size struct {
	Width, Height int
}

// Rect is an axis-aligned rectangle in pixels.
type Rect struct {
	X, Y int // Top-left position
	W, H int // Width and height
}

// Right returns the exclusive right edge.
func (r Rect) Right() int { return r.X + r.W }

// Bottom returns the exclusive bottom edge.
func (r Rect) Bottom() int { return r.Y + r.H }

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Contains returns true if the point is inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Intersects returns true if two rectangles overlap.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.W && r.X+r.W > other.X &&
		r.Y < other.Y+other.H && r.Y+r.H > other.Y
}

// Intersect returns the overlapping part of two rectangles.
// The result is empty (zero size) when they do not overlap.
func (r Rect) Intersect(other Rect) Rect {
	x1 := max(r.X, other.X)
	y1 := max(r.Y, other.Y)
	x2 := min(r.Right(), other.Right())
	y2 := min(r.Bottom(), other.Bottom())
	if x2 <= x1 || y2 <= y1 {
		return Rect{X: x1, Y: y1}
	}
	return Rect{X: x1, Y: y1, W: x2 - x1, H: y2 - y1}
}

// Offset returns the rectangle translated by (dx, dy).
func (r Rect) Offset(dx, dy int) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// Margins describes per-edge insets in pixels.
type Margins struct {
	Left, Top, Right, Bottom int
}

// Horizontal returns Left+Right.
func (m Margins) Horizontal() int { return m.Left + m.Right }

// Vertical returns Top+Bottom.
func (m Margins) Vertical() int { return m.Top + m.Bottom }

// Anchors selects which parent edges a control keeps a constant distance to
// when the parent is resized.
type Anchors uint8

const (
	AnchorNone   Anchors = 0
	AnchorLeft   Anchors = 1 << 0
	AnchorTop    Anchors = 1 << 1
	AnchorRight  Anchors = 1 << 2
	AnchorBottom Anchors = 1 << 3

	AnchorAll = AnchorLeft | AnchorTop | AnchorRight | AnchorBottom
)

// Has reports whether every bit of flag is set in a.
func (a Anchors) Has(flag Anchors) bool { return a&flag == flag }

// Color constants (RGBA packed as 0xAABBGGRR for OpenGL compatibility)
const (
	ColorWhite       uint32 = 0xFFFFFFFF
	ColorBlack       uint32 = 0xFF000000
	ColorRed         uint32 = 0xFF0000FF
	ColorGreen       uint32 = 0xFF00FF00
	ColorBlue        uint32 = 0xFFFF0000
	ColorYellow      uint32 = 0xFF00FFFF
	ColorCyan        uint32 = 0xFFFFFF00
	ColorGray        uint32 = 0xFF808080
	ColorDarkGray    uint32 = 0xFF404040
	ColorLightGray   uint32 = 0xFFC0C0C0
	ColorTransparent uint32 = 0x00000000
)

// RGBA creates a packed color from individual components (0-255).
func RGBA(r, g, b, a uint8) uint32 {
	return uint32(a)<<24 | uint32(b)<<16 | uint32(g)<<8 | uint32(r)
}

// UnpackRGBA extracts RGBA components from a packed color.
func UnpackRGBA(c uint32) (r, g, b, a uint8) {
	return uint8(c), uint8(c >> 8), uint8(c >> 16), uint8(c >> 24)
}

// WithAlpha scales the alpha channel of c by alpha/255.
func WithAlpha(c uint32, alpha uint8) uint32 {
	r, g, b, a := UnpackRGBA(c)
	return RGBA(r, g, b, uint8(uint32(a)*uint32(alpha)/255))
}

// clampInt clamps v to [lo, hi]. When lo > hi, lo wins.
func clampInt(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// roundUp rounds v up to the next multiple of step.
func roundUp(v, step int) int {
	if step <= 1 {
		return v
	}
	return (v + step - 1) / step * step
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
