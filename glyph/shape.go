package glyph

import (
	"math"

	"golang.org/x/image/font/sfnt"
)

// Shape is one filled region: a counter-clockwise outline with clockwise holes.
type Shape struct {
	Outer []Pt
	Holes [][]Pt
}

// Shapes lays out text on a single line starting at x=0 and returns its filled
// regions. size is the em size in output units; each curve is split into
// curveSegments pieces.
func (f *Font) Shapes(text string, size float64, curveSegments int) ([]Shape, error) {
	scale := size / float64(f.UnitsPerEm())
	var shapes []Shape
	var prev sfnt.GlyphIndex
	penX := 0.0
	for _, r := range text {
		cs, idx, next, err := f.glyphContours(prev, r, penX, curveSegments)
		if err != nil {
			return nil, err
		}
		for _, s := range classify(cs) {
			shapes = append(shapes, s.scaled(scale))
		}
		prev, penX = idx, next
	}
	if len(shapes) == 0 {
		return nil, ErrNoOutline
	}
	return shapes, nil
}

func (s Shape) scaled(k float64) Shape {
	sc := func(poly []Pt) []Pt {
		out := make([]Pt, len(poly))
		for i, p := range poly {
			out[i] = Pt{X: p.X * k, Y: p.Y * k}
		}
		return out
	}
	out := Shape{Outer: sc(s.Outer)}
	for _, h := range s.Holes {
		out.Holes = append(out.Holes, sc(h))
	}
	return out
}

// classify groups contours into shapes by nesting depth: contours inside an even
// number of others are outlines, the rest are holes of their nearest enclosing
// outline. Winding direction in the font is not trusted.
func classify(cs []contour) []Shape {
	n := len(cs)
	depth := make([]int, n)
	parent := make([]int, n)
	areas := make([]float64, n)
	for i := range cs {
		areas[i] = math.Abs(Area(cs[i]))
		parent[i] = -1
	}
	for i := range cs {
		probe := cs[i][0]
		for j := range cs {
			if i == j || areas[j] <= areas[i] {
				continue
			}
			if pointInPolygon(probe, cs[j]) {
				depth[i]++
				if parent[i] < 0 || areas[j] < areas[parent[i]] {
					parent[i] = j
				}
			}
		}
	}

	shapeOf := make(map[int]int, n)
	var shapes []Shape
	for i := range cs {
		if depth[i]%2 != 0 {
			continue
		}
		poly := []Pt(cs[i])
		if Area(poly) < 0 {
			poly = reversed(poly)
		}
		shapeOf[i] = len(shapes)
		shapes = append(shapes, Shape{Outer: poly})
	}
	for i := range cs {
		if depth[i]%2 == 0 {
			continue
		}
		si, ok := shapeOf[parent[i]]
		if !ok {
			continue
		}
		poly := []Pt(cs[i])
		if Area(poly) > 0 {
			poly = reversed(poly)
		}
		shapes[si].Holes = append(shapes[si].Holes, poly)
	}
	return shapes
}

func pointInPolygon(p Pt, poly []Pt) bool {
	in := false
	for i, j := 0, len(poly)-1; i < len(poly); j, i = i, i+1 {
		a, b := poly[i], poly[j]
		if (a.Y > p.Y) != (b.Y > p.Y) && p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			in = !in
		}
	}
	return in
}
