package retained

import (
	"io"
	"log/slog"
	"testing"
	"time"
)

const tick = 16 * time.Millisecond

// mockSurface is a render target that only records its size.
type mockSurface struct {
	id   uint32
	w, h int
}

func (s *mockSurface) TextureID() uint32 { return s.id }
func (s *mockSurface) Width() int        { return s.w }
func (s *mockSurface) Height() int       { return s.h }

// mockRenderer counts every call the draw passes make.
type mockRenderer struct {
	nextID    uint32
	live      map[uint32]*mockSurface
	created   int
	deleted   int
	painted   []uint32 // surface IDs passed to RenderToSurface
	vertices  []int    // vertex count of each RenderToSurface list
	renders   int
	composite []DrawCmd // commands of the last Render
	tints     []uint32  // vertex colors of the composited quads
}

func newMockRenderer() *mockRenderer {
	return &mockRenderer{nextID: 100, live: make(map[uint32]*mockSurface)}
}

func (r *mockRenderer) CreateSurface(w, h int) (Surface, error) {
	r.nextID++
	s := &mockSurface{id: r.nextID, w: w, h: h}
	r.live[s.id] = s
	r.created++
	return s, nil
}

func (r *mockRenderer) DeleteSurface(s Surface) {
	delete(r.live, s.TextureID())
	r.deleted++
}

func (r *mockRenderer) RenderToSurface(s Surface, _ uint32, dl *DrawList) error {
	r.painted = append(r.painted, s.TextureID())
	r.vertices = append(r.vertices, len(dl.VtxBuffer))
	return nil
}

func (r *mockRenderer) Render(dl *DrawList) error {
	dl.Finalize()
	r.renders++
	r.composite = append(r.composite[:0], dl.CmdBuffer...)
	r.tints = r.tints[:0]
	for _, cmd := range dl.CmdBuffer {
		if _, ok := r.live[cmd.TextureID]; ok {
			r.tints = append(r.tints, dl.VtxBuffer[cmd.VertexOffset].Color)
		}
	}
	return nil
}

func (r *mockRenderer) FontTextureID() uint32 { return 1 }

func (r *mockRenderer) reset() {
	r.painted = r.painted[:0]
	r.vertices = r.vertices[:0]
	r.renders = 0
}

// scriptedInput returns snap on every Poll. Tests edit snap between ticks.
type scriptedInput struct {
	snap InputSnapshot
	err  error
}

func newScriptedInput() *scriptedInput {
	return &scriptedInput{snap: InputSnapshot{
		Client: Rect{W: 800, H: 600},
		Screen: Size{Width: 800, Height: 600},
	}}
}

func (in *scriptedInput) Poll() (InputSnapshot, error) { return in.snap, in.err }

func (in *scriptedInput) move(x, y int) {
	in.snap.MouseX, in.snap.MouseY = x, y
}

func (in *scriptedInput) button(b MouseButton, down bool) { in.snap.SetButton(b, down) }

func (in *scriptedInput) key(k Key, down bool) { in.snap.SetKey(k, down) }

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type testUI struct {
	*Manager
	in  *scriptedInput
	ren *mockRenderer
}

func newTestUI(t *testing.T, opts ...ManagerOption) *testUI {
	t.Helper()
	in := newScriptedInput()
	ren := newMockRenderer()
	all := append([]ManagerOption{
		WithInput(in),
		WithRenderer(ren),
		WithScreenSize(800, 600),
		WithLogger(discardLogger),
	}, opts...)
	m, err := NewManager(all...)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	// Prime the dispatcher so the first scripted move is reported.
	if err := m.Update(0); err != nil {
		t.Fatalf("Update: %v", err)
	}
	return &testUI{Manager: m, in: in, ren: ren}
}

// step runs one Update of dt and fails the test on error.
func (ui *testUI) step(t *testing.T, dt time.Duration) {
	t.Helper()
	if err := ui.Update(dt); err != nil {
		t.Fatalf("Update: %v", err)
	}
}

// click presses and releases b at (x, y) over three ticks.
func (ui *testUI) click(t *testing.T, b MouseButton, x, y int) {
	t.Helper()
	ui.in.move(x, y)
	ui.step(t, tick)
	ui.in.button(b, true)
	ui.step(t, tick)
	ui.in.button(b, false)
	ui.step(t, tick)
}

// tap presses and releases k over two ticks.
func (ui *testUI) tap(t *testing.T, k Key) {
	t.Helper()
	ui.in.key(k, true)
	ui.step(t, tick)
	ui.in.key(k, false)
	ui.step(t, tick)
}

func (ui *testUI) control(t *testing.T, kind string, r Rect) *Control {
	t.Helper()
	c, err := NewControl(ui.Manager, kind)
	if err != nil {
		t.Fatalf("NewControl(%q): %v", kind, err)
	}
	c.SetBounds(r)
	return c
}

func (ui *testUI) root(t *testing.T, kind string, r Rect) *Control {
	t.Helper()
	c := ui.control(t, kind, r)
	if err := ui.Add(c); err != nil {
		t.Fatalf("Add: %v", err)
	}
	return c
}

func (ui *testUI) window(t *testing.T, r Rect) *Window {
	t.Helper()
	w, err := NewWindow(ui.Manager)
	if err != nil {
		t.Fatalf("NewWindow: %v", err)
	}
	w.SetBounds(r)
	if err := w.Show(); err != nil {
		t.Fatalf("Show: %v", err)
	}
	return w
}

func (ui *testUI) button(t *testing.T, parent *Control, r Rect) *Button {
	t.Helper()
	b, err := NewButton(ui.Manager)
	if err != nil {
		t.Fatalf("NewButton: %v", err)
	}
	b.SetBounds(r)
	if err := parent.Add(b.Control); err != nil {
		t.Fatalf("Add: %v", err)
	}
	return b
}

func mustChild(t *testing.T, parent, child *Control) {
	t.Helper()
	if err := parent.Add(child); err != nil {
		t.Fatalf("Add: %v", err)
	}
}
