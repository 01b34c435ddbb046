package hal

import (
	"image"
	"sync"
)

type hostFramebuffer struct {
	mu     sync.Mutex
	width  int
	height int
	stride int
	buf    []byte
}

func newHostFramebuffer(width, height int) *hostFramebuffer {
	f := &hostFramebuffer{}
	f.resize(width, height)
	return f
}

func (f *hostFramebuffer) Width() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.width
}

func (f *hostFramebuffer) Height() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.height
}

func (f *hostFramebuffer) Format() PixelFormat { return PixelFormatRGBA8888 }

func (f *hostFramebuffer) StrideBytes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stride
}

func (f *hostFramebuffer) Buffer() []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.buf
}

func (f *hostFramebuffer) Present() error { return nil }

func (f *hostFramebuffer) ClearRGB(r, g, b uint8) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := 0; i+3 < len(f.buf); i += 4 {
		f.buf[i] = r
		f.buf[i+1] = g
		f.buf[i+2] = b
		f.buf[i+3] = 0xFF
	}
}

// Resize reallocates the buffer when the size changes. Contents are cleared.
func (f *hostFramebuffer) Resize(w, h int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resize(w, h)
}

func (f *hostFramebuffer) resize(w, h int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if w == f.width && h == f.height {
		return
	}
	f.width, f.height = w, h
	f.stride = w * 4
	f.buf = make([]byte, f.stride*h)
}

// Blit copies src into the framebuffer at the origin, clipped to both sizes.
func (f *hostFramebuffer) Blit(src *image.RGBA) {
	if src == nil {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	b := src.Bounds()
	w := min(b.Dx(), f.width)
	h := min(b.Dy(), f.height)
	for y := 0; y < h; y++ {
		so := src.PixOffset(b.Min.X, b.Min.Y+y)
		copy(f.buf[y*f.stride:y*f.stride+w*4], src.Pix[so:so+w*4])
	}
}

// snapshot copies the framebuffer into dst, reallocating it when the size
// changed, and returns it.
func (f *hostFramebuffer) snapshot(dst *image.RGBA) *image.RGBA {
	f.mu.Lock()
	defer f.mu.Unlock()
	if dst == nil || dst.Bounds().Dx() != f.width || dst.Bounds().Dy() != f.height {
		dst = image.NewRGBA(image.Rect(0, 0, f.width, f.height))
	}
	copy(dst.Pix, f.buf)
	return dst
}
