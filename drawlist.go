package retained

import (
	"math"
	"sync"
)

// Vertex is the layout uploaded to the GPU for every primitive.
type Vertex struct {
	Pos      [2]float32
	TexCoord [2]float32
	Color    uint32
}

// DrawCmd is one batch of indexed triangles sharing a texture and clip
// rectangle. ClipRect is {x1, y1, x2, y2} in target coordinates.
type DrawCmd struct {
	ElemCount    uint32
	ClipRect     [4]float32
	TextureID    uint32
	VertexOffset uint32
	IndexOffset  uint32
}

var drawListPool = sync.Pool{
	New: func() any {
		return &DrawList{
			VtxBuffer: make([]Vertex, 0, 512),
			IdxBuffer: make([]uint16, 0, 1024),
			CmdBuffer: make([]DrawCmd, 0, 8),
			clipStack: make([][4]float32, 0, 8),
		}
	},
}

// AcquireDrawList gets a cleared DrawList from the pool.
// Call ReleaseDrawList when done to return it.
func AcquireDrawList() *DrawList {
	dl := drawListPool.Get().(*DrawList)
	dl.Clear()
	return dl
}

// ReleaseDrawList returns a DrawList to the pool for reuse.
func ReleaseDrawList(dl *DrawList) {
	if dl != nil {
		drawListPool.Put(dl)
	}
}

// DrawList accumulates primitives for one render target. Control painters
// write into the list of the surface that owns them; the composite pass
// writes into the list of the main target.
type DrawList struct {
	CmdBuffer []DrawCmd
	VtxBuffer []Vertex
	IdxBuffer []uint16

	// FontTexture is bound while AddText emits glyph quads.
	FontTexture uint32

	clipStack    [][4]float32
	currentClip  [4]float32
	textureID    uint32
	cmdOffset    uint32
	idxCmdOffset uint32
}

// Clear resets the list and keeps its capacity.
func (dl *DrawList) Clear() {
	dl.CmdBuffer = dl.CmdBuffer[:0]
	dl.VtxBuffer = dl.VtxBuffer[:0]
	dl.IdxBuffer = dl.IdxBuffer[:0]
	dl.clipStack = dl.clipStack[:0]
	dl.currentClip = [4]float32{-1e9, -1e9, 1e9, 1e9}
	dl.textureID = 0
	dl.cmdOffset = 0
	dl.idxCmdOffset = 0
}

// Empty reports whether nothing was drawn.
func (dl *DrawList) Empty() bool { return len(dl.IdxBuffer) == 0 }

// PushClip restricts subsequent primitives to r.
func (dl *DrawList) PushClip(r Rect) {
	dl.clipStack = append(dl.clipStack, dl.currentClip)
	dl.currentClip = [4]float32{float32(r.X), float32(r.Y), float32(r.Right()), float32(r.Bottom())}
	dl.splitDraw()
}

// PopClip restores the clip rectangle active before the matching PushClip.
func (dl *DrawList) PopClip() {
	n := len(dl.clipStack)
	if n == 0 {
		return
	}
	dl.currentClip = dl.clipStack[n-1]
	dl.clipStack = dl.clipStack[:n-1]
	dl.splitDraw()
}

// ClipRect returns the active clip rectangle.
func (dl *DrawList) ClipRect() [4]float32 { return dl.currentClip }

// SetTexture selects the texture for subsequent primitives. Zero means
// untextured.
func (dl *DrawList) SetTexture(textureID uint32) {
	if dl.textureID == textureID && len(dl.CmdBuffer) > 0 {
		return
	}
	dl.textureID = textureID
	dl.splitDraw()
}

func (dl *DrawList) splitDraw() {
	if n := len(dl.CmdBuffer); n > 0 {
		last := &dl.CmdBuffer[n-1]
		last.ElemCount = uint32(len(dl.IdxBuffer)) - dl.idxCmdOffset
		// Reuse an empty trailing command instead of stacking empties.
		if last.ElemCount == 0 {
			last.ClipRect = dl.currentClip
			last.TextureID = dl.textureID
			return
		}
	}
	dl.CmdBuffer = append(dl.CmdBuffer, DrawCmd{
		ClipRect:     dl.currentClip,
		TextureID:    dl.textureID,
		VertexOffset: uint32(len(dl.VtxBuffer)),
		IndexOffset:  uint32(len(dl.IdxBuffer)),
	})
	dl.cmdOffset = uint32(len(dl.VtxBuffer))
	dl.idxCmdOffset = uint32(len(dl.IdxBuffer))
}

func (dl *DrawList) addVertices(verts ...Vertex) uint16 {
	if len(dl.CmdBuffer) == 0 {
		dl.splitDraw()
	}
	start := uint16(len(dl.VtxBuffer) - int(dl.cmdOffset))
	dl.VtxBuffer = append(dl.VtxBuffer, verts...)
	return start
}

func (dl *DrawList) addQuad(x0, y0, x1, y1, u0, v0, u1, v1 float32, color uint32) {
	idx := dl.addVertices(
		Vertex{Pos: [2]float32{x0, y0}, TexCoord: [2]float32{u0, v0}, Color: color},
		Vertex{Pos: [2]float32{x1, y0}, TexCoord: [2]float32{u1, v0}, Color: color},
		Vertex{Pos: [2]float32{x1, y1}, TexCoord: [2]float32{u1, v1}, Color: color},
		Vertex{Pos: [2]float32{x0, y1}, TexCoord: [2]float32{u0, v1}, Color: color},
	)
	dl.IdxBuffer = append(dl.IdxBuffer, idx, idx+1, idx+2, idx, idx+2, idx+3)
}

// AddRect draws a filled rectangle. Fully transparent colors are skipped.
func (dl *DrawList) AddRect(r Rect, color uint32) {
	if color&0xFF000000 == 0 || r.Empty() {
		return
	}
	dl.SetTexture(0)
	dl.addQuad(float32(r.X), float32(r.Y), float32(r.Right()), float32(r.Bottom()), 0, 0, 0, 0, color)
}

// AddRectOutline draws the border of r with the given thickness.
func (dl *DrawList) AddRectOutline(r Rect, color uint32, thickness int) {
	if color&0xFF000000 == 0 || r.Empty() || thickness <= 0 {
		return
	}
	t := min(thickness, r.W/2+1, r.H/2+1)
	dl.AddRect(Rect{X: r.X, Y: r.Y, W: r.W, H: t}, color)
	dl.AddRect(Rect{X: r.X, Y: r.Bottom() - t, W: r.W, H: t}, color)
	dl.AddRect(Rect{X: r.X, Y: r.Y + t, W: t, H: r.H - 2*t}, color)
	dl.AddRect(Rect{X: r.Right() - t, Y: r.Y + t, W: t, H: r.H - 2*t}, color)
}

// AddLine draws a line as a quad of the given thickness.
func (dl *DrawList) AddLine(x1, y1, x2, y2 float32, color uint32, thickness float32) {
	if color&0xFF000000 == 0 {
		return
	}
	dx, dy := x2-x1, y2-y1
	inv := float32(1)
	if l := float32(math.Sqrt(float64(dx*dx + dy*dy))); l > 0 {
		inv = 1 / l
	}
	nx := -dy * inv * thickness * 0.5
	ny := dx * inv * thickness * 0.5

	dl.SetTexture(0)
	idx := dl.addVertices(
		Vertex{Pos: [2]float32{x1 + nx, y1 + ny}, Color: color},
		Vertex{Pos: [2]float32{x2 + nx, y2 + ny}, Color: color},
		Vertex{Pos: [2]float32{x2 - nx, y2 - ny}, Color: color},
		Vertex{Pos: [2]float32{x1 - nx, y1 - ny}, Color: color},
	)
	dl.IdxBuffer = append(dl.IdxBuffer, idx, idx+1, idx+2, idx, idx+2, idx+3)
}

// AddTriangle draws a filled triangle.
func (dl *DrawList) AddTriangle(x1, y1, x2, y2, x3, y3 float32, color uint32) {
	if color&0xFF000000 == 0 {
		return
	}
	dl.SetTexture(0)
	idx := dl.addVertices(
		Vertex{Pos: [2]float32{x1, y1}, Color: color},
		Vertex{Pos: [2]float32{x2, y2}, Color: color},
		Vertex{Pos: [2]float32{x3, y3}, Color: color},
	)
	dl.IdxBuffer = append(dl.IdxBuffer, idx, idx+1, idx+2)
}

// Glyph cell size of the built-in bitmap font.
const (
	GlyphWidth  = 8
	GlyphHeight = 8
)

// TextWidth returns the width of s in the built-in font.
func TextWidth(s string) int {
	n := 0
	for range s {
		n++
	}
	return n * GlyphWidth
}

// AddText draws s with the built-in 16x6 ASCII atlas bound as FontTexture.
func (dl *DrawList) AddText(x, y int, s string, color uint32) {
	if color&0xFF000000 == 0 || s == "" {
		return
	}
	dl.SetTexture(dl.FontTexture)
	px := float32(x)
	py := float32(y)
	for _, r := range s {
		ch := glyphFallback(r)
		if ch < 32 || ch > 127 {
			ch = '?'
		}
		i := int(ch - 32)
		col := float32(i % 16)
		row := float32(i / 16)
		dl.addQuad(px, py, px+GlyphWidth, py+GlyphHeight,
			col*8/128, row*8/48, (col+1)*8/128, (row+1)*8/48, color)
		px += GlyphWidth
	}
	dl.SetTexture(0)
}

func glyphFallback(r rune) rune {
	if r >= 32 && r <= 127 {
		return r
	}
	switch r {
	case '►', '▶', '→':
		return '>'
	case '◄', '◀', '←':
		return '<'
	case '▼', '↓':
		return 'v'
	case '▲', '↑':
		return '^'
	case '●', '•':
		return '*'
	case '✓', '✔':
		return '+'
	case '✗', '✘', '×':
		return 'x'
	case '—', '–':
		return '-'
	}
	return r
}

// AddImage draws the sub-rectangle src of a texture of size texW x texH into
// dst, modulated by tint. Surfaces are composited with it.
func (dl *DrawList) AddImage(textureID uint32, dst, src Rect, texW, texH int, tint uint32) {
	if tint&0xFF000000 == 0 || dst.Empty() || texW <= 0 || texH <= 0 {
		return
	}
	u0 := float32(src.X) / float32(texW)
	v0 := float32(src.Y) / float32(texH)
	u1 := float32(src.Right()) / float32(texW)
	v1 := float32(src.Bottom()) / float32(texH)

	dl.SetTexture(textureID)
	dl.addQuad(float32(dst.X), float32(dst.Y), float32(dst.Right()), float32(dst.Bottom()), u0, v0, u1, v1, tint)
	dl.SetTexture(0)
}

// Finalize closes the last command and drops empty ones. Call it once all
// primitives are added.
func (dl *DrawList) Finalize() {
	if n := len(dl.CmdBuffer); n > 0 && dl.CmdBuffer[n-1].IndexOffset == dl.idxCmdOffset {
		dl.CmdBuffer[n-1].ElemCount = uint32(len(dl.IdxBuffer)) - dl.idxCmdOffset
	}
	kept := dl.CmdBuffer[:0]
	for _, cmd := range dl.CmdBuffer {
		if cmd.ElemCount > 0 {
			kept = append(kept, cmd)
		}
	}
	dl.CmdBuffer = kept
}
