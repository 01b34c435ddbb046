package hal

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"strings"
	"testing"
)

func TestFramebufferResizeAndBlit(t *testing.T) {
	fb := newHostFramebuffer(4, 2)
	if fb.Width() != 4 || fb.Height() != 2 || fb.StrideBytes() != 16 {
		t.Fatalf("size = %dx%d stride %d", fb.Width(), fb.Height(), fb.StrideBytes())
	}

	fb.Resize(0, -3)
	if fb.Width() != 1 || fb.Height() != 1 {
		t.Fatalf("size after clamp = %dx%d, want 1x1", fb.Width(), fb.Height())
	}

	fb.Resize(3, 3)
	src := image.NewRGBA(image.Rect(0, 0, 5, 2))
	src.SetRGBA(2, 1, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	fb.Blit(src)

	snap := fb.snapshot(nil)
	if got := snap.RGBAAt(2, 1); got != (color.RGBA{R: 10, G: 20, B: 30, A: 255}) {
		t.Fatalf("pixel (2,1) = %v", got)
	}
	if snap.Bounds().Dx() != 3 || snap.Bounds().Dy() != 3 {
		t.Fatalf("snapshot bounds = %v", snap.Bounds())
	}
}

func TestFramebufferResizeKeepsBufferWhenUnchanged(t *testing.T) {
	fb := newHostFramebuffer(8, 8)
	before := &fb.Buffer()[0]
	fb.Resize(8, 8)
	if &fb.Buffer()[0] != before {
		t.Fatal("buffer reallocated for identical size")
	}
}

func TestSetPixelAndClear(t *testing.T) {
	fb := newHostFramebuffer(2, 2)
	fb.ClearRGB(1, 2, 3)
	SetPixel(fb, 1, 1, color.RGBA{R: 9})
	SetPixel(fb, 5, 0, color.RGBA{R: 9})
	SetPixel(fb, 0, 5, color.RGBA{R: 9})

	buf := fb.Buffer()
	if buf[0] != 1 || buf[1] != 2 || buf[2] != 3 || buf[3] != 0xFF {
		t.Fatalf("cleared pixel = %v", buf[:4])
	}
	if buf[12] != 9 {
		t.Fatalf("pixel (1,1) red = %d", buf[12])
	}
}

func TestSizeQueueKeepsLatest(t *testing.T) {
	q := newSizeQueue()
	q.emit(SurfaceSize{Width: 10, Height: 10, PixelRatio: 1})
	q.emit(SurfaceSize{Width: 20, Height: 10, PixelRatio: 1})
	q.emit(SurfaceSize{Width: 20, Height: 10, PixelRatio: 1})

	got := <-q.ch
	if got.Width != 20 {
		t.Fatalf("got %+v, want the latest size", got)
	}
	select {
	case s := <-q.ch:
		t.Fatalf("unexpected extra size %+v", s)
	default:
	}

	// Same size again is suppressed.
	q.emit(SurfaceSize{Width: 20, Height: 10, PixelRatio: 1})
	select {
	case s := <-q.ch:
		t.Fatalf("duplicate size %+v published", s)
	default:
	}
}

func TestHalfBlock(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 4))
	img.SetRGBA(1, 0, color.RGBA{R: 200, A: 255})
	img.SetRGBA(1, 1, color.RGBA{G: 100, A: 255})
	img.SetRGBA(1, 2, color.RGBA{B: 50, A: 255})

	top, bottom := halfBlock(img.Pix, img.Stride, 2, 4, 2, 2, 1, 0)
	if top.R != 200 || bottom.G != 100 {
		t.Fatalf("cell (1,0) = %v/%v", top, bottom)
	}
	top, bottom = halfBlock(img.Pix, img.Stride, 2, 4, 2, 2, 1, 1)
	if top.B != 50 || bottom != (color.RGBA{A: 0xFF}) {
		t.Fatalf("cell (1,1) = %v/%v", top, bottom)
	}
	if s := cellSize(80, 24); s.Width != 80 || s.Height != 48 {
		t.Fatalf("cellSize = %+v", s)
	}
}

func TestHalfBlockStretchesFrame(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	blue := color.RGBA{B: 255, A: 255}
	img := image.NewRGBA(image.Rect(0, 0, 1, 2))
	img.SetRGBA(0, 0, red)
	img.SetRGBA(0, 1, blue)

	// A 1×2 frame over 4×2 cells: every column repeats it, the top row is red.
	for x := 0; x < 4; x++ {
		top, bottom := halfBlock(img.Pix, img.Stride, 1, 2, 4, 2, x, 0)
		if top != red || bottom != red {
			t.Fatalf("cell (%d,0) = %v/%v, want red", x, top, bottom)
		}
		top, bottom = halfBlock(img.Pix, img.Stride, 1, 2, 4, 2, x, 1)
		if top != blue || bottom != blue {
			t.Fatalf("cell (%d,1) = %v/%v, want blue", x, top, bottom)
		}
	}

	// A frame larger than the terminal is shrunk, not cropped.
	big := image.NewRGBA(image.Rect(0, 0, 8, 8))
	big.SetRGBA(6, 4, red)
	if top, _ := halfBlock(big.Pix, big.Stride, 8, 8, 4, 2, 3, 1); top != red {
		t.Fatalf("shrunk cell (3,1) top = %v, want red", top)
	}
}

func TestRunStep(t *testing.T) {
	calls := 0
	ok := func() error { calls++; return nil }
	if done, err := runStep(context.Background(), ok); done || err != nil || calls != 1 {
		t.Fatalf("plain step: done=%v err=%v calls=%d", done, err, calls)
	}
	if done, err := runStep(context.Background(), func() error { return ErrStopped }); !done || err != nil {
		t.Fatalf("stopped step: done=%v err=%v", done, err)
	}
	boom := errors.New("boom")
	if done, err := runStep(context.Background(), func() error { return boom }); !done || !errors.Is(err, boom) {
		t.Fatalf("failing step: done=%v err=%v", done, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if done, err := runStep(ctx, ok); !done || !errors.Is(err, context.Canceled) || calls != 1 {
		t.Fatalf("cancelled: done=%v err=%v calls=%d", done, err, calls)
	}
}

func TestRunHeadlessStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	steps := 0
	newApp := func(HAL) func() error {
		return func() error {
			steps++
			if steps == 3 {
				cancel()
			}
			return nil
		}
	}
	err := RunHeadless(ctx, newApp, HeadlessConfig{Hz: 1000})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if steps != 3 {
		t.Fatalf("steps = %d, want 3", steps)
	}
}

func TestLoggerHold(t *testing.T) {
	var out bytes.Buffer
	l := &hostLogger{w: &out}
	release := l.hold()
	l.WriteLineString("one")
	l.WriteLineBytes([]byte("two"))
	if out.Len() != 0 {
		t.Fatalf("output leaked while held: %q", out.String())
	}
	release()
	if got := out.String(); !strings.Contains(got, "one\ntwo\n") {
		t.Fatalf("released output = %q", got)
	}
	l.WriteLineString("three")
	if !strings.HasSuffix(out.String(), "three\n") {
		t.Fatalf("output after release = %q", out.String())
	}
}
