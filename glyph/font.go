// Package glyph turns glyph outlines from a TrueType/OpenType font into
// triangulated, extruded text geometry.
package glyph

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

var (
	ErrMissingGlyph = errors.New("glyph: rune not in font")
	ErrNoOutline    = errors.New("glyph: text has no outline")
)

// Font is a parsed outline font. It is safe for concurrent use.
type Font struct {
	name string
	sf   *sfnt.Font

	mu  sync.Mutex
	buf sfnt.Buffer
}

// Parse parses TrueType or OpenType data.
func Parse(data []byte) (*Font, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("glyph: failed to parse font: %w", err)
	}
	name, err := f.Name(nil, sfnt.NameIDFull)
	if err != nil {
		name = ""
	}
	return &Font{name: name, sf: f}, nil
}

// Default returns the embedded Go Bold font.
func Default() (*Font, error) {
	return Parse(gobold.TTF)
}

// Load reads a font file. An empty path selects the embedded default font.
func Load(path string) (*Font, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("glyph: read font: %w", err)
	}
	return Parse(data)
}

// Name returns the full font name, if the font has one.
func (f *Font) Name() string { return f.name }

// UnitsPerEm returns the design grid size.
func (f *Font) UnitsPerEm() int { return int(f.sf.UnitsPerEm()) }

// LoadResult is the outcome of an asynchronous load.
type LoadResult struct {
	Font *Font
	Err  error
}

// LoadAsync loads the font on a separate goroutine. The returned channel delivers
// exactly one result and is then closed. If ctx ends first the result carries
// ctx.Err().
func LoadAsync(ctx context.Context, path string) <-chan LoadResult {
	ch := make(chan LoadResult, 1)
	go func() {
		defer close(ch)
		f, err := Load(path)
		if ctxErr := ctx.Err(); ctxErr != nil {
			ch <- LoadResult{Err: ctxErr}
			return
		}
		ch <- LoadResult{Font: f, Err: err}
	}()
	return ch
}

// contour is one closed outline in font units, y up.
type contour []Pt

// glyphContours returns the flattened contours of r placed at pen x (font units),
// plus the advance.
func (f *Font) glyphContours(prev sfnt.GlyphIndex, r rune, penX float64, curveSegments int) ([]contour, sfnt.GlyphIndex, float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	idx, err := f.sf.GlyphIndex(&f.buf, r)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("glyph: index %q: %w", r, err)
	}
	if idx == 0 {
		return nil, 0, 0, fmt.Errorf("%w: %q", ErrMissingGlyph, r)
	}

	ppem := fixed.Int26_6(f.sf.UnitsPerEm()) << 6
	if prev != 0 {
		if k, err := f.sf.Kern(&f.buf, prev, idx, ppem, font.HintingNone); err == nil {
			penX += float64(k) / 64
		}
	}

	adv, err := f.sf.GlyphAdvance(&f.buf, idx, ppem, font.HintingNone)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("glyph: advance %q: %w", r, err)
	}

	segs, err := f.sf.LoadGlyph(&f.buf, idx, ppem, nil)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("glyph: outline %q: %w", r, err)
	}
	return flatten(segs, penX, curveSegments), idx, penX + float64(adv)/64, nil
}

func pt26(p fixed.Point26_6, penX float64) Pt {
	// sfnt coordinates grow downwards.
	return Pt{X: float64(p.X)/64 + penX, Y: -float64(p.Y) / 64}
}

// flatten converts segments into closed polylines. Each curve is split into
// curveSegments straight pieces.
func flatten(segs sfnt.Segments, penX float64, curveSegments int) []contour {
	if curveSegments < 1 {
		curveSegments = 1
	}
	var out []contour
	var cur contour
	var last Pt

	closeCur := func() {
		cur = dedupe(cur)
		if len(cur) >= 3 {
			out = append(out, cur)
		}
		cur = nil
	}

	for _, s := range segs {
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			closeCur()
			last = pt26(s.Args[0], penX)
			cur = append(cur, last)
		case sfnt.SegmentOpLineTo:
			last = pt26(s.Args[0], penX)
			cur = append(cur, last)
		case sfnt.SegmentOpQuadTo:
			c := pt26(s.Args[0], penX)
			end := pt26(s.Args[1], penX)
			for i := 1; i <= curveSegments; i++ {
				t := float64(i) / float64(curveSegments)
				mt := 1 - t
				cur = append(cur, Pt{
					X: mt*mt*last.X + 2*mt*t*c.X + t*t*end.X,
					Y: mt*mt*last.Y + 2*mt*t*c.Y + t*t*end.Y,
				})
			}
			last = end
		case sfnt.SegmentOpCubeTo:
			c1 := pt26(s.Args[0], penX)
			c2 := pt26(s.Args[1], penX)
			end := pt26(s.Args[2], penX)
			for i := 1; i <= curveSegments; i++ {
				t := float64(i) / float64(curveSegments)
				mt := 1 - t
				a, b, c, d := mt*mt*mt, 3*mt*mt*t, 3*mt*t*t, t*t*t
				cur = append(cur, Pt{
					X: a*last.X + b*c1.X + c*c2.X + d*end.X,
					Y: a*last.Y + b*c1.Y + c*c2.Y + d*end.Y,
				})
			}
			last = end
		}
	}
	closeCur()
	return out
}

// dedupe drops repeated points, including a closing point equal to the first.
func dedupe(c contour) contour {
	if len(c) == 0 {
		return c
	}
	out := c[:1]
	for _, p := range c[1:] {
		if !p.eq(out[len(out)-1]) {
			out = append(out, p)
		}
	}
	for len(out) > 1 && out[len(out)-1].eq(out[0]) {
		out = out[:len(out)-1]
	}
	return out
}
