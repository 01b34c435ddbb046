package post

import (
	"image"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"kate/quarkgl"
)

// HueSaturationPass rotates hue and adjusts saturation of every pixel.
//
// Hue is measured in turns (1 = full circle). Saturation is in -1..1: negative
// values move colors toward their channel average, positive values away from it,
// 0 leaves them as they are.
type HueSaturationPass struct {
	Hue        float64
	Saturation float64

	lut          map[uint32]uint32
	lutHue       float64
	lutSaturated float64
}

// NewHueSaturationPass returns a pass with the given settings.
func NewHueSaturationPass(hue, saturation float64) *HueSaturationPass {
	return &HueSaturationPass{Hue: hue, Saturation: saturation}
}

// lutLimit bounds the color cache. Normal shading produces a few thousand
// distinct colors per frame, so the cache mostly stays warm.
const lutLimit = 1 << 16

func (p *HueSaturationPass) Render(_ *quarkgl.Renderer, _ *quarkgl.Scene, buf *image.RGBA) {
	if buf == nil {
		return
	}
	turn := p.Hue - math.Floor(p.Hue)
	if turn == 0 && p.Saturation == 0 {
		return
	}
	if p.lut == nil || len(p.lut) > lutLimit || p.lutHue != p.Hue || p.lutSaturated != p.Saturation {
		p.lut = make(map[uint32]uint32, 4096)
		p.lutHue, p.lutSaturated = p.Hue, p.Saturation
	}

	pix := buf.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		key := uint32(pix[i])<<16 | uint32(pix[i+1])<<8 | uint32(pix[i+2])
		out, ok := p.lut[key]
		if !ok {
			out = p.apply(pix[i], pix[i+1], pix[i+2], turn)
			p.lut[key] = out
		}
		pix[i] = uint8(out >> 16)
		pix[i+1] = uint8(out >> 8)
		pix[i+2] = uint8(out)
	}
}

func (p *HueSaturationPass) apply(r, g, b uint8, turn float64) uint32 {
	c := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	if turn != 0 {
		h, s, v := c.Hsv()
		h = math.Mod(h+turn*360, 360)
		c = colorful.Hsv(h, s, v)
	}
	if p.Saturation != 0 {
		avg := (c.R + c.G + c.B) / 3
		var k float64
		if p.Saturation > 0 {
			k = 1 - 1/(1.001-p.Saturation)
		} else {
			k = -p.Saturation
		}
		c.R += (avg - c.R) * k
		c.G += (avg - c.G) * k
		c.B += (avg - c.B) * k
	}
	rr, gg, bb := c.Clamped().RGB255()
	return uint32(rr)<<16 | uint32(gg)<<8 | uint32(bb)
}
