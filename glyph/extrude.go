package glyph

import (
	"math"

	"kate/quarkgl"
)

// ExtrudeOptions controls how shapes are turned into a solid.
//
// With a bevel the caps keep the original outline at z = -BevelThickness and
// z = Depth + BevelThickness; the side walls bulge out by BevelSize along a
// quarter circle.
type ExtrudeOptions struct {
	Depth          float64
	Steps          int
	BevelEnabled   bool
	BevelThickness float64
	BevelSize      float64
	BevelOffset    float64
	BevelSegments  int
}

// TextOptions describes a line of extruded text.
type TextOptions struct {
	Size          float64
	CurveSegments int
	ExtrudeOptions
}

// TextGeometry builds an extruded mesh of text laid out from the origin.
func (f *Font) TextGeometry(text string, opts TextOptions) (*quarkgl.Geometry, error) {
	shapes, err := f.Shapes(text, opts.Size, opts.CurveSegments)
	if err != nil {
		return nil, err
	}
	return Extrude(shapes, opts.ExtrudeOptions), nil
}

type layer struct {
	z, offset float64
}

func (o ExtrudeOptions) layers() []layer {
	steps := o.Steps
	if steps < 1 {
		steps = 1
	}
	segs := o.BevelSegments
	if !o.BevelEnabled {
		segs = 0
	} else if segs < 1 {
		segs = 1
	}

	var ls []layer
	body := o.BevelOffset
	if segs > 0 {
		body += o.BevelSize
	}
	for b := 0; b < segs; b++ {
		t := float64(b) / float64(segs)
		ls = append(ls, layer{
			z:      -o.BevelThickness * math.Cos(t*math.Pi/2),
			offset: o.BevelSize*math.Sin(t*math.Pi/2) + o.BevelOffset,
		})
	}
	for s := 0; s <= steps; s++ {
		ls = append(ls, layer{z: o.Depth * float64(s) / float64(steps), offset: body})
	}
	for b := segs - 1; b >= 0; b-- {
		t := float64(b) / float64(segs)
		ls = append(ls, layer{
			z:      o.Depth + o.BevelThickness*math.Cos(t*math.Pi/2),
			offset: o.BevelSize*math.Sin(t*math.Pi/2) + o.BevelOffset,
		})
	}
	return ls
}

// Extrude builds a closed solid from shapes.
func Extrude(shapes []Shape, o ExtrudeOptions) *quarkgl.Geometry {
	g := &quarkgl.Geometry{}
	ls := o.layers()
	for _, s := range shapes {
		extrudeShape(g, s, ls)
	}
	return g
}

func extrudeShape(g *quarkgl.Geometry, s Shape, ls []layer) {
	contours := append([][]Pt{s.Outer}, s.Holes...)
	var flat []Pt
	var dirs []Pt
	for _, c := range contours {
		flat = append(flat, c...)
		dirs = append(dirs, bevelDirs(c)...)
	}
	n := len(flat)
	if n < 3 {
		return
	}

	base := uint32(len(g.Vertices))
	for _, l := range ls {
		for i, p := range flat {
			g.Vertices = append(g.Vertices, quarkgl.Vertex{Pos: quarkgl.V3(
				quarkgl.Scalar(p.X+dirs[i].X*l.offset),
				quarkgl.Scalar(p.Y+dirs[i].Y*l.offset),
				quarkgl.Scalar(l.z),
			)})
		}
	}
	at := func(layer, i int) uint32 { return base + uint32(layer*n+i) }

	// Caps: the first layer faces -z, so its triangles are reversed.
	last := len(ls) - 1
	for _, t := range Triangulate(s.Outer, s.Holes) {
		g.Indices = append(g.Indices, at(0, t[0]), at(0, t[2]), at(0, t[1]))
		g.Indices = append(g.Indices, at(last, t[0]), at(last, t[1]), at(last, t[2]))
	}

	// Walls: the solid lies left of every contour, so (edge × +z) points out.
	start := 0
	for _, c := range contours {
		m := len(c)
		for l := 0; l < last; l++ {
			for i := 0; i < m; i++ {
				j := (i + 1) % m
				a := at(l, start+i)
				b := at(l, start+j)
				cc := at(l+1, start+j)
				d := at(l+1, start+i)
				g.Indices = append(g.Indices, a, b, d, b, cc, d)
			}
		}
		start += m
	}
}

// bevelDirs returns, per vertex, the offset that moves both adjacent edges
// outward by one unit. The solid is on the left of the contour.
func bevelDirs(c []Pt) []Pt {
	m := len(c)
	out := make([]Pt, m)
	for i := range c {
		prev := c[(i+m-1)%m]
		cur := c[i]
		next := c[(i+1)%m]
		n1 := edgeNormal(prev, cur)
		n2 := edgeNormal(cur, next)
		dot := n1.X*n2.X + n1.Y*n2.Y
		if 1+dot < 1e-6 {
			out[i] = n1
			continue
		}
		k := 1 / (1 + dot)
		v := Pt{X: (n1.X + n2.X) * k, Y: (n1.Y + n2.Y) * k}
		// Very sharp corners would shoot far out; cap the miter.
		const maxMiter = 3
		if l := math.Hypot(v.X, v.Y); l > maxMiter {
			v.X, v.Y = v.X/l*maxMiter, v.Y/l*maxMiter
		}
		out[i] = v
	}
	return out
}

func edgeNormal(a, b Pt) Pt {
	dx, dy := b.X-a.X, b.Y-a.Y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return Pt{}
	}
	return Pt{X: dy / l, Y: -dx / l}
}
