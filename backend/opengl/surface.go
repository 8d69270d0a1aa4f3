package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/go-theft-auto/retained"
)

// Surface is a framebuffer with an RGBA color texture.
type Surface struct {
	fbo    uint32
	tex    uint32
	width  int
	height int
}

// TextureID returns the color attachment.
func (s *Surface) TextureID() uint32 { return s.tex }

// Width returns the texture width in pixels.
func (s *Surface) Width() int { return s.width }

// Height returns the texture height in pixels.
func (s *Surface) Height() int { return s.height }

// CreateSurface allocates a framebuffer-backed surface.
func (r *Renderer) CreateSurface(width, height int) (retained.Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("opengl: create surface: invalid size %dx%d", width, height)
	}
	s := &Surface{width: width, height: height}

	gl.GenTextures(1, &s.tex)
	gl.BindTexture(gl.TEXTURE_2D, s.tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	var prev int32
	gl.GetIntegerv(gl.FRAMEBUFFER_BINDING, &prev)
	gl.GenFramebuffers(1, &s.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, s.fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, s.tex, 0)
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, uint32(prev))
	if status != gl.FRAMEBUFFER_COMPLETE {
		r.deleteSurface(s)
		return nil, fmt.Errorf("opengl: create surface %dx%d: framebuffer incomplete (0x%x)", width, height, status)
	}

	r.rgbaTextures[s.tex] = true
	return s, nil
}

// DeleteSurface releases a surface returned by CreateSurface.
func (r *Renderer) DeleteSurface(rs retained.Surface) {
	if s, ok := rs.(*Surface); ok {
		r.deleteSurface(s)
	}
}

func (r *Renderer) deleteSurface(s *Surface) {
	delete(r.rgbaTextures, s.tex)
	if s.fbo != 0 {
		gl.DeleteFramebuffers(1, &s.fbo)
		s.fbo = 0
	}
	if s.tex != 0 {
		gl.DeleteTextures(1, &s.tex)
		s.tex = 0
	}
}

// RenderToSurface clears the surface to clear and draws dl into it.
func (r *Renderer) RenderToSurface(rs retained.Surface, clear uint32, dl *retained.DrawList) error {
	s, ok := rs.(*Surface)
	if !ok || s.fbo == 0 {
		return fmt.Errorf("opengl: render to surface: not a live surface of this renderer")
	}

	var prev int32
	var viewport [4]int32
	gl.GetIntegerv(gl.FRAMEBUFFER_BINDING, &prev)
	gl.GetIntegerv(gl.VIEWPORT, &viewport[0])
	defer func() {
		gl.BindFramebuffer(gl.FRAMEBUFFER, uint32(prev))
		gl.Viewport(viewport[0], viewport[1], viewport[2], viewport[3])
	}()

	gl.BindFramebuffer(gl.FRAMEBUFFER, s.fbo)
	gl.Viewport(0, 0, int32(s.width), int32(s.height))
	cr, cg, cb, ca := retained.UnpackRGBA(clear)
	gl.Disable(gl.SCISSOR_TEST)
	gl.ClearColor(float32(cr)/255, float32(cg)/255, float32(cb)/255, float32(ca)/255)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	if dl == nil || dl.Empty() {
		return nil
	}
	return r.draw(dl, s.width, s.height, false)
}
