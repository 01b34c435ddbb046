package hal

import "image/color"

// SetPixel writes one pixel into fb. Out of range coordinates are ignored.
func SetPixel(fb Framebuffer, x, y int, c color.RGBA) {
	if fb == nil || fb.Format() != PixelFormatRGBA8888 {
		return
	}
	buf := fb.Buffer()
	stride := fb.StrideBytes()
	if x < 0 || y < 0 || x*4 >= stride {
		return
	}
	off := y*stride + x*4
	if off+3 >= len(buf) {
		return
	}
	buf[off] = c.R
	buf[off+1] = c.G
	buf[off+2] = c.B
	buf[off+3] = 0xFF
}

// halfBlock returns the colors of the upper and lower half of the terminal cell
// at column x, row y when a w×h image packed as RGBA bytes is stretched over
// cols×rows cells. Each cell covers two pixel rows of the stretched image.
func halfBlock(pix []byte, stride, w, h, cols, rows, x, y int) (top, bottom color.RGBA) {
	at := func(half int) color.RGBA {
		if w <= 0 || h <= 0 || cols <= 0 || rows <= 0 {
			return color.RGBA{A: 0xFF}
		}
		px, py := x*w/cols, half*h/(2*rows)
		if px >= w || py >= h {
			return color.RGBA{A: 0xFF}
		}
		o := py*stride + px*4
		return color.RGBA{R: pix[o], G: pix[o+1], B: pix[o+2], A: 0xFF}
	}
	return at(2 * y), at(2*y + 1)
}
