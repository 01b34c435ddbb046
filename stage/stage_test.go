package stage

import (
	"image"
	"math/rand/v2"
	"strings"
	"sync"
	"testing"

	"kate/glyph"
	"kate/scatter"
)

func testFont(t *testing.T) *glyph.Font {
	t.Helper()
	f, err := glyph.Default()
	if err != nil {
		t.Fatalf("glyph.Default: %v", err)
	}
	return f
}

func testSampler(t *testing.T, p Params) *scatter.Sampler {
	t.Helper()
	s, err := p.NewSampler(rand.NewPCG(11, 22))
	if err != nil {
		t.Fatalf("NewSampler: %v", err)
	}
	return s
}

// smallParams keeps the stock geometry rules but fewer, coarser objects.
func smallParams() Params {
	p := DefaultParams()
	p.Ornaments = 30
	p.Dust = 20
	p.CurveSegments = 4
	return p
}

type fakeLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *fakeLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, s)
}

func (l *fakeLogger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.lines...)
}

func (l *fakeLogger) count(substr string) int {
	n := 0
	for _, s := range l.Lines() {
		if strings.Contains(s, substr) {
			n++
		}
	}
	return n
}

type fakeOutput struct {
	resizes   int
	w, h      int
	presented int
	last      image.Rectangle
}

func (o *fakeOutput) Resize(w, h int) {
	o.resizes++
	o.w, o.h = w, h
}

func (o *fakeOutput) Present(frame *image.RGBA) error {
	o.presented++
	o.last = frame.Bounds()
	return nil
}

func loadedFont(t *testing.T) <-chan glyph.LoadResult {
	ch := make(chan glyph.LoadResult, 1)
	ch <- glyph.LoadResult{Font: testFont(t)}
	close(ch)
	return ch
}
