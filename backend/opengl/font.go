package opengl

import "github.com/go-gl/gl/v4.1-core/gl"

// Atlas layout shared with retained.DrawList.AddText: printable ASCII from
// 32 upward in a 16x6 grid of 8x8 cells.
const (
	atlasCols   = 16
	atlasRows   = 6
	atlasWidth  = atlasCols * 8
	atlasHeight = atlasRows * 8
)

// glyphs holds one 8x8 bitmap per character, top row in the high byte and
// the leftmost pixel in the high bit of each row.
var glyphs = [atlasCols * atlasRows]uint64{
	0x0000000000000000, 0x1818181818001800, 0x6666000000000000, 0x247E24247E240000, //  !"#
	0x183E603C067C1800, 0x6264081026460000, 0x386C3876DCCC7600, 0x1818300000000000, // $%&'
	0x0C18303030180C00, 0x30180C0C0C183000, 0x00663CFF3C660000, 0x0018187E18180000, // ()*+
	0x0000000000181830, 0x0000007E00000000, 0x0000000000181800, 0x02060C1830604000, // ,-./
	0x3C666E7666663C00, 0x1838181818187E00, 0x3C66061C30607E00, 0x3C66061C06663C00, // 0123
	0x0C1C3C6C7E0C0C00, 0x7E607C0606663C00, 0x1C30607C66663C00, 0x7E060C1830303000, // 4567
	0x3C66663C66663C00, 0x3C66663E060C3800, 0x0000181800181800, 0x0000181800181830, // 89:;
	0x060C1830180C0600, 0x00007E007E000000, 0x6030180C18306000, 0x3C66061C18001800, // <=>?
	0x3C666E6A6E603C00, 0x183C66667E666600, 0x7C66667C66667C00, 0x3C66606060663C00, // @ABC
	0x786C6666666C7800, 0x7E60607C60607E00, 0x7E60607C60606000, 0x3C66606E66663E00, // DEFG
	0x6666667E66666600, 0x7E18181818187E00, 0x3E0C0C0C0C6C3800, 0x666C7870786C6600, // HIJK
	0x6060606060607E00, 0x63777F6B63636300, 0x66767E7E6E666600, 0x3C66666666663C00, // LMNO
	0x7C66667C60606000, 0x3C6666666A6C3600, 0x7C66667C6C666600, 0x3C66603C06663C00, // PQRS
	0x7E18181818181800, 0x6666666666663C00, 0x66666666663C1800, 0x6363636B7F776300, // TUVW
	0x66663C183C666600, 0x6666663C18181800, 0x7E060C1830607E00, 0x1C18181818181C00, // XYZ[
	0x406030180C060200, 0x3818181818183800, 0x183C660000000000, 0x0000000000007E00, // \]^_
	0x30180C0000000000, 0x00003C063E663E00, 0x60607C6666667C00, 0x00003C6660663C00, // `abc
	0x06063E6666663E00, 0x00003C667E603C00, 0x1C30307C30303000, 0x00003E66663E063C, // defg
	0x60607C6666666600, 0x1800381818183C00, 0x0C001C0C0C0C6C38, 0x6060666C786C6600, // hijk
	0x3818181818183C00, 0x0000767F6B6B6300, 0x00007C6666666600, 0x00003C6666663C00, // lmno
	0x00007C66667C6060, 0x00003E66663E0606, 0x00006C7660606000, 0x00003E603C067C00, // pqrs
	0x30307C3030301C00, 0x0000666666663E00, 0x00006666663C1800, 0x0000636B6B7F3600, // tuvw
	0x0000663C183C6600, 0x00006666663E063C, 0x00007E0C18307E00, 0x0E18187018180E00, // xyz{
	0x1818181818181800, 0x7018180E18187000, 0x000076DC00000000, 0x0000000000000000, // |}~?
}

// fontPixels expands glyphs into a single-channel coverage image.
func fontPixels() []byte {
	data := make([]byte, atlasWidth*atlasHeight)
	for i, g := range glyphs {
		cx, cy := i%atlasCols*8, i/atlasCols*8
		for y := range 8 {
			row := byte(g >> (56 - 8*y))
			for x := range 8 {
				if row&(0x80>>x) != 0 {
					data[(cy+y)*atlasWidth+cx+x] = 255
				}
			}
		}
	}
	return data
}

func createFontTexture() uint32 {
	data := fontPixels()
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RED, atlasWidth, atlasHeight, 0, gl.RED, gl.UNSIGNED_BYTE, gl.Ptr(data))
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex
}
