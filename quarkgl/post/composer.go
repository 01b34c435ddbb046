// Package post chains full-frame passes after the base scene render.
package post

import (
	"image"

	"kate/quarkgl"
)

// Pass transforms the frame held in buf. The first pass usually draws the scene.
type Pass interface {
	Render(r *quarkgl.Renderer, s *quarkgl.Scene, buf *image.RGBA)
}

// Composer owns the frame buffer shared by its passes.
type Composer struct {
	passes []Pass
	buf    *image.RGBA
}

// NewComposer returns a composer with a w×h buffer.
func NewComposer(w, h int, passes ...Pass) *Composer {
	c := &Composer{passes: passes}
	c.SetSize(w, h)
	return c
}

// SetSize reallocates the buffer when the size changes.
func (c *Composer) SetSize(w, h int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if c.buf != nil && c.buf.Bounds().Dx() == w && c.buf.Bounds().Dy() == h {
		return
	}
	c.buf = image.NewRGBA(image.Rect(0, 0, w, h))
}

// Size returns the buffer size.
func (c *Composer) Size() (w, h int) {
	b := c.buf.Bounds()
	return b.Dx(), b.Dy()
}

// Frame returns the buffer holding the last composed frame.
func (c *Composer) Frame() *image.RGBA { return c.buf }

// Render runs every pass in order and returns the composed frame.
func (c *Composer) Render(r *quarkgl.Renderer, s *quarkgl.Scene) *image.RGBA {
	for _, p := range c.passes {
		p.Render(r, s, c.buf)
	}
	return c.buf
}

// RenderPass draws the scene into the frame.
type RenderPass struct{}

func (RenderPass) Render(r *quarkgl.Renderer, s *quarkgl.Scene, buf *image.RGBA) {
	r.Render(&quarkgl.RGBATarget{Img: buf}, s)
}
