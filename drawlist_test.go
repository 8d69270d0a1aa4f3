package retained

import "testing"

func TestDrawListPool(t *testing.T) {
	dl1 := AcquireDrawList()
	if dl1 == nil {
		t.Fatal("expected non-nil DrawList")
	}
	dl1.AddRect(Rect{W: 100, H: 100}, ColorWhite)
	dl1.PushClip(Rect{W: 10, H: 10})
	ReleaseDrawList(dl1)

	dl2 := AcquireDrawList()
	if dl2 == nil {
		t.Fatal("expected non-nil DrawList after release")
	}
	if len(dl2.VtxBuffer) != 0 || len(dl2.CmdBuffer) != 0 || !dl2.Empty() {
		t.Error("reused DrawList should be cleared")
	}
	if dl2.ClipRect()[2] < 1e8 {
		t.Errorf("Expected unbounded clip after reuse, got %v", dl2.ClipRect())
	}
	ReleaseDrawList(dl2)
	ReleaseDrawList(nil)
}

func TestDrawList_SkipsInvisible(t *testing.T) {
	dl := AcquireDrawList()
	defer ReleaseDrawList(dl)

	dl.AddRect(Rect{W: 10, H: 10}, RGBA(255, 0, 0, 0))
	dl.AddRect(Rect{W: 0, H: 10}, ColorWhite)
	dl.AddRectOutline(Rect{W: 10, H: 10}, ColorWhite, 0)
	dl.AddImage(7, Rect{W: 10, H: 10}, Rect{W: 10, H: 10}, 10, 10, WithAlpha(ColorWhite, 0))
	dl.AddText(0, 0, "", ColorWhite)
	if !dl.Empty() {
		t.Errorf("Expected nothing drawn, got %d vertices", len(dl.VtxBuffer))
	}
}

func TestDrawList_Outline(t *testing.T) {
	dl := AcquireDrawList()
	defer ReleaseDrawList(dl)

	dl.AddRectOutline(Rect{W: 10, H: 10}, ColorWhite, 2)
	if len(dl.VtxBuffer) != 16 || len(dl.IdxBuffer) != 24 {
		t.Errorf("Expected four quads, got %d vertices %d indices", len(dl.VtxBuffer), len(dl.IdxBuffer))
	}
}

func TestDrawList_ClipSplitsCommands(t *testing.T) {
	dl := AcquireDrawList()
	defer ReleaseDrawList(dl)

	dl.AddRect(Rect{W: 10, H: 10}, ColorWhite)
	dl.PushClip(Rect{X: 2, Y: 3, W: 4, H: 5})
	dl.AddRect(Rect{W: 10, H: 10}, ColorWhite)
	dl.PopClip()
	dl.AddRect(Rect{W: 10, H: 10}, ColorWhite)
	dl.Finalize()

	if len(dl.CmdBuffer) != 3 {
		t.Fatalf("Expected 3 commands, got %d", len(dl.CmdBuffer))
	}
	if got := dl.CmdBuffer[1].ClipRect; got != [4]float32{2, 3, 6, 8} {
		t.Errorf("Expected clip {2 3 6 8}, got %v", got)
	}
	var elems uint32
	for _, cmd := range dl.CmdBuffer {
		elems += cmd.ElemCount
	}
	if int(elems) != len(dl.IdxBuffer) {
		t.Errorf("Expected commands to cover %d indices, got %d", len(dl.IdxBuffer), elems)
	}

	dl.Finalize()
	if len(dl.CmdBuffer) != 3 {
		t.Errorf("Expected Finalize to be idempotent, got %d commands", len(dl.CmdBuffer))
	}

	// Unbalanced pops are ignored.
	dl.PopClip()
	dl.PopClip()
}

func TestDrawList_EmptyCommandsDropped(t *testing.T) {
	dl := AcquireDrawList()
	defer ReleaseDrawList(dl)

	dl.PushClip(Rect{W: 5, H: 5})
	dl.PushClip(Rect{W: 4, H: 4})
	dl.PopClip()
	dl.AddRect(Rect{W: 10, H: 10}, ColorWhite)
	dl.PopClip()
	dl.Finalize()
	if len(dl.CmdBuffer) != 1 {
		t.Errorf("Expected 1 command, got %d", len(dl.CmdBuffer))
	}
}

func TestDrawList_TextureBatches(t *testing.T) {
	dl := AcquireDrawList()
	defer ReleaseDrawList(dl)
	dl.FontTexture = 1

	dl.AddRect(Rect{W: 10, H: 10}, ColorWhite)
	dl.AddText(0, 0, "ab", ColorWhite)
	dl.AddImage(9, Rect{W: 10, H: 10}, Rect{W: 5, H: 5}, 10, 10, ColorWhite)
	dl.Finalize()

	var textures []uint32
	for _, cmd := range dl.CmdBuffer {
		textures = append(textures, cmd.TextureID)
	}
	if len(textures) != 3 || textures[0] != 0 || textures[1] != 1 || textures[2] != 9 {
		t.Fatalf("Expected textures [0 1 9], got %v", textures)
	}
	img := dl.VtxBuffer[dl.CmdBuffer[2].VertexOffset:]
	if img[2].TexCoord != [2]float32{0.5, 0.5} {
		t.Errorf("Expected image uv to end at 0.5, got %v", img[2].TexCoord)
	}
}

func TestTextWidth(t *testing.T) {
	tests := map[string]int{"": 0, "abc": 24, "→ok": 24}
	for s, want := range tests {
		if got := TextWidth(s); got != want {
			t.Errorf("TextWidth(%q): Expected %d, got %d", s, want, got)
		}
	}
}

func TestGlyphFallback(t *testing.T) {
	tests := map[rune]rune{'a': 'a', '►': '>', '←': '<', '▼': 'v', '✓': '+', '—': '-', 'é': 'é'}
	for in, want := range tests {
		if got := glyphFallback(in); got != want {
			t.Errorf("glyphFallback(%q): Expected %q, got %q", in, want, got)
		}
	}

	dl := AcquireDrawList()
	defer ReleaseDrawList(dl)
	dl.AddText(0, 0, "é", ColorWhite)
	// Unknown runes render as '?', the 31st glyph of the atlas.
	if u := dl.VtxBuffer[0].TexCoord[0]; u != float32(15)*8/128 {
		t.Errorf("Expected '?' glyph, got u=%v", u)
	}
}
