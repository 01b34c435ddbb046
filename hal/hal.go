package hal

import (
	"errors"
	"image"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

var (
	ErrNotImplemented = errors.New("not implemented")

	// ErrStopped is returned by a step function to end the host loop cleanly.
	ErrStopped = errors.New("hal: stopped")
)

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGBA8888 is 32bpp, bytes in R, G, B, A order.
	PixelFormatRGBA8888 PixelFormat = iota + 1
)

// Framebuffer is a resizable pixel buffer plus a "present" hook.
//
// Buffer exposes the backing bytes; writers that touch it directly must not
// race with Resize.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Resize(w, h int)
	Blit(src *image.RGBA)
	Present() error
}

// SurfaceSize is the visible size of the host surface in logical pixels.
type SurfaceSize struct {
	Width      int
	Height     int
	PixelRatio float64
}

// KeyCode is a minimal key identifier.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEscape
)

// KeyEvent is a keyboard event. Rune is set for text keys and Code for the rest.
type KeyEvent struct {
	Code  KeyCode
	Press bool
	Rune  rune
}

// Keyboard provides key events (best-effort on each platform).
type Keyboard interface {
	Events() <-chan KeyEvent
}

// Display provides access to the framebuffer and to surface size changes.
//
// Sizes delivers the current size once the host knows it and again after every
// change. Only the latest pending size is kept.
type Display interface {
	Framebuffer() Framebuffer
	Sizes() <-chan SurfaceSize
}

// Input provides access to input devices (if available).
type Input interface {
	Keyboard() Keyboard
}

// HAL provides the only contact point between the scene and the outside world.
type HAL interface {
	Logger() Logger
	Display() Display
	Input() Input
}
