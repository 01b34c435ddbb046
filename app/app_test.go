package app

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"kate/hal"
	"kate/stage"
)

type testLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *testLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, s)
}

func (l *testLogger) WriteLineBytes(b []byte) { l.WriteLineString(string(b)) }

func (l *testLogger) joined() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return strings.Join(l.lines, "\n")
}

type testDisplay struct {
	fb    hal.Framebuffer
	sizes chan hal.SurfaceSize
	panic bool
}

func (d *testDisplay) Framebuffer() hal.Framebuffer { return d.fb }

func (d *testDisplay) Sizes() <-chan hal.SurfaceSize {
	if d.panic {
		panic("surface exploded")
	}
	return d.sizes
}

type testKeyboard struct{ ch chan hal.KeyEvent }

func (k testKeyboard) Events() <-chan hal.KeyEvent { return k.ch }

type testInput struct{ kbd testKeyboard }

func (in testInput) Keyboard() hal.Keyboard { return in.kbd }

type testHAL struct {
	log  *testLogger
	disp *testDisplay
	in   testInput
}

func (h *testHAL) Logger() hal.Logger   { return h.log }
func (h *testHAL) Display() hal.Display { return h.disp }
func (h *testHAL) Input() hal.Input     { return h.in }

func newTestHAL(w, h int) *testHAL {
	return &testHAL{
		log: &testLogger{},
		disp: &testDisplay{
			fb:    hal.New(w, h).Display().Framebuffer(),
			sizes: make(chan hal.SurfaceSize, 1),
		},
		in: testInput{kbd: testKeyboard{ch: make(chan hal.KeyEvent, 8)}},
	}
}

func testConfig() Config {
	p := stage.DefaultParams()
	p.Ornaments, p.Dust, p.CurveSegments = 9, 9, 2
	return Config{Params: p, Seed: 1, FPS: 60, Workers: 2, Scale: 1}
}

func TestStepResizesAndQuits(t *testing.T) {
	h := newTestHAL(8, 8)
	step := New(context.Background(), h, testConfig())

	h.disp.sizes <- hal.SurfaceSize{Width: 40, Height: 30, PixelRatio: 1}
	if err := step(); err != nil {
		t.Fatalf("step: %v", err)
	}
	fb := h.disp.fb
	if fb.Width() != 40 || fb.Height() != 30 {
		t.Fatalf("framebuffer = %dx%d, want 40x30", fb.Width(), fb.Height())
	}

	h.in.kbd.ch <- hal.KeyEvent{Press: true, Rune: 'q'}
	if err := step(); !errors.Is(err, hal.ErrStopped) {
		t.Fatalf("err = %v, want hal.ErrStopped", err)
	}
}

func TestStepRecoversPanic(t *testing.T) {
	h := newTestHAL(120, 80)
	step := New(context.Background(), h, testConfig())
	h.disp.panic = true

	err := step()
	if err == nil || !strings.Contains(err.Error(), "surface exploded") {
		t.Fatalf("err = %v", err)
	}
	if !strings.Contains(h.log.joined(), "app: panic: surface exploded") {
		t.Fatalf("panic not logged: %q", h.log.joined())
	}

	buf := h.disp.fb.Buffer()
	dark, white := 0, 0
	for i := 0; i+3 < len(buf); i += 4 {
		switch {
		case buf[i] == 0 && buf[i+1] == 0 && buf[i+2] == 0:
			dark++
		case buf[i] == 255 && buf[i+1] == 255 && buf[i+2] == 255:
			white++
		}
	}
	if white < len(buf)/8 {
		t.Fatalf("crash screen not cleared to white: %d white pixels", white)
	}
	if dark == 0 {
		t.Fatal("crash text not drawn")
	}
}

func TestInvalidParamsFailEveryStep(t *testing.T) {
	h := newTestHAL(8, 8)
	cfg := testConfig()
	cfg.Params.HalfWidth = 1 // exclusion box no longer fits
	step := New(context.Background(), h, cfg)
	for i := 0; i < 2; i++ {
		if err := step(); err == nil {
			t.Fatal("expected error")
		}
	}
	if !strings.Contains(h.log.joined(), "app:") {
		t.Fatalf("error not logged: %q", h.log.joined())
	}
}

func TestActionFor(t *testing.T) {
	cases := []struct {
		ev   hal.KeyEvent
		want stage.Action
	}{
		{hal.KeyEvent{Press: true, Code: hal.KeyLeft}, stage.ActionOrbitLeft},
		{hal.KeyEvent{Press: true, Code: hal.KeyRight}, stage.ActionOrbitRight},
		{hal.KeyEvent{Press: true, Code: hal.KeyUp}, stage.ActionOrbitUp},
		{hal.KeyEvent{Press: true, Code: hal.KeyDown}, stage.ActionOrbitDown},
		{hal.KeyEvent{Press: true, Code: hal.KeyEscape}, stage.ActionQuit},
		{hal.KeyEvent{Press: false, Code: hal.KeyEscape}, stage.ActionNone},
		{hal.KeyEvent{Press: true, Rune: '+'}, stage.ActionZoomIn},
		{hal.KeyEvent{Press: true, Rune: '-'}, stage.ActionZoomOut},
		{hal.KeyEvent{Press: true, Rune: 'w'}, stage.ActionToggleWireframe},
		{hal.KeyEvent{Press: true, Rune: 'h'}, stage.ActionToggleHUD},
		{hal.KeyEvent{Press: true, Rune: 's'}, stage.ActionCycleShading},
		{hal.KeyEvent{Press: true, Rune: 'x'}, stage.ActionNone},
	}
	for _, tc := range cases {
		if got := actionFor(tc.ev); got != tc.want {
			t.Fatalf("actionFor(%+v) = %v, want %v", tc.ev, got, tc.want)
		}
	}
}

func TestTakeRunes(t *testing.T) {
	p, r := takeRunes("héllo", 2)
	if p != "hé" || r != "llo" {
		t.Fatalf("takeRunes = %q, %q", p, r)
	}
	if p, r := takeRunes("ab", 5); p != "ab" || r != "" {
		t.Fatalf("takeRunes = %q, %q", p, r)
	}
}
