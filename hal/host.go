package hal

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
)

type hostHAL struct {
	logger *hostLogger
	fb     *hostFramebuffer
	sizes  *sizeQueue
	kbd    Keyboard
}

// New returns a host HAL implementation with a w×h framebuffer that logs to
// stdout.
func New(w, h int) HAL {
	return newHost(w, h, os.Stdout, newHostKeyboard())
}

func newHost(w, h int, logTo io.Writer, kbd Keyboard) *hostHAL {
	return &hostHAL{
		logger: &hostLogger{w: logTo},
		fb:     newHostFramebuffer(w, h),
		sizes:  newSizeQueue(),
		kbd:    kbd,
	}
}

func (h *hostHAL) Logger() Logger   { return h.logger }
func (h *hostHAL) Display() Display { return hostDisplay{fb: h.fb, sizes: h.sizes} }
func (h *hostHAL) Input() Input     { return hostInput{kbd: h.kbd} }

type hostDisplay struct {
	fb    *hostFramebuffer
	sizes *sizeQueue
}

func (d hostDisplay) Framebuffer() Framebuffer   { return d.fb }
func (d hostDisplay) Sizes() <-chan SurfaceSize { return d.sizes.ch }

type hostInput struct {
	kbd Keyboard
}

func (in hostInput) Keyboard() Keyboard { return in.kbd }

// sizeQueue holds at most one pending size; a newer size replaces an unread one.
type sizeQueue struct {
	mu   sync.Mutex
	last SurfaceSize
	ch   chan SurfaceSize
}

func newSizeQueue() *sizeQueue {
	return &sizeQueue{ch: make(chan SurfaceSize, 1)}
}

// emit publishes s unless it equals the last published size.
func (q *sizeQueue) emit(s SurfaceSize) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if s == q.last {
		return
	}
	q.last = s
	for {
		select {
		case q.ch <- s:
			return
		default:
		}
		select {
		case <-q.ch:
		default:
		}
	}
}

type hostLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}

// hold redirects output into memory until the returned release func is called,
// which writes everything held to the original writer.
func (l *hostLogger) hold() (release func()) {
	l.mu.Lock()
	orig := l.w
	var buf bytes.Buffer
	l.w = &buf
	l.mu.Unlock()
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		l.w = orig
		orig.Write(buf.Bytes())
	}
}

// runStep advances the app by one frame. done reports that the runner should
// return err: ctx was cancelled, the step failed, or the step asked to stop
// with ErrStopped (err is then nil).
func runStep(ctx context.Context, step func() error) (done bool, err error) {
	if err := ctx.Err(); err != nil {
		return true, err
	}
	if step == nil {
		return false, nil
	}
	if err := step(); err != nil {
		if errors.Is(err, ErrStopped) {
			return true, nil
		}
		return true, err
	}
	return false, nil
}
