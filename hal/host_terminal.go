package hal

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
)

// TerminalConfig controls the terminal runner.
type TerminalConfig struct {
	Hz int
}

// RunTerminal draws the framebuffer into the terminal using half-block cells,
// two pixels per cell. Terminal resizes are published on Display().Sizes().
// Log lines are held while the screen is active and written to stderr on exit.
func RunTerminal(ctx context.Context, newApp func(HAL) func() error, cfg TerminalConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 30
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid terminal hz: %d", cfg.Hz)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()
	screen.Clear()

	kbd := &termKeyboard{ch: make(chan KeyEvent, 64)}
	cols, rows := screen.Size()
	h := newHost(cols, rows*2, os.Stderr, kbd)
	release := h.logger.hold()
	defer release()

	h.sizes.emit(cellSize(cols, rows))
	step := newApp(h)

	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	defer close(quit)
	go screen.ChannelEvents(events, quit)

	t := time.NewTicker(d)
	defer t.Stop()

	var frame []byte
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				w, hh := ev.Size()
				h.sizes.emit(cellSize(w, hh))
				screen.Sync()
			case *tcell.EventKey:
				kbd.translate(ev)
			}
		case <-t.C:
			if done, err := runStep(ctx, step); done {
				return err
			}
			frame = drawCells(screen, h.fb, frame)
		}
	}
}

// cellSize maps a terminal of w×h cells onto a surface of w×2h pixels.
func cellSize(w, h int) SurfaceSize {
	return SurfaceSize{Width: w, Height: h * 2, PixelRatio: 1}
}

func drawCells(screen tcell.Screen, fb *hostFramebuffer, buf []byte) []byte {
	fb.mu.Lock()
	w, h, stride := fb.width, fb.height, fb.stride
	buf = append(buf[:0], fb.buf...)
	fb.mu.Unlock()

	cols, rows := screen.Size()
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			top, bottom := halfBlock(buf, stride, w, h, cols, rows, x, y)
			st := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bottom.R), int32(bottom.G), int32(bottom.B)))
			screen.SetContent(x, y, '▀', nil, st)
		}
	}
	screen.Show()
	return buf
}

type termKeyboard struct {
	ch chan KeyEvent
}

func (k *termKeyboard) Events() <-chan KeyEvent { return k.ch }

// translate forwards a terminal key as a press. Terminals report no releases.
func (k *termKeyboard) translate(ev *tcell.EventKey) {
	out := KeyEvent{Press: true}
	switch ev.Key() {
	case tcell.KeyUp:
		out.Code = KeyUp
	case tcell.KeyDown:
		out.Code = KeyDown
	case tcell.KeyLeft:
		out.Code = KeyLeft
	case tcell.KeyRight:
		out.Code = KeyRight
	case tcell.KeyEnter:
		out.Code = KeyEnter
	case tcell.KeyEscape, tcell.KeyCtrlC:
		out.Code = KeyEscape
	case tcell.KeyRune:
		out.Rune = ev.Rune()
	default:
		return
	}
	select {
	case k.ch <- out:
	default:
	}
}
