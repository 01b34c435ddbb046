package quarkgl

import "math"

// NewBoxGeometry returns an axis-aligned box centered on the origin.
func NewBoxGeometry(w, h, d Scalar) *Geometry {
	hx, hy, hz := w/2, h/2, d/2
	corners := [8]Vec3{
		{-hx, -hy, -hz}, {hx, -hy, -hz}, {hx, hy, -hz}, {-hx, hy, -hz},
		{-hx, -hy, hz}, {hx, -hy, hz}, {hx, hy, hz}, {-hx, hy, hz},
	}
	// Each face lists its corners counter-clockwise seen from outside.
	faces := [6]struct {
		idx [4]int
		n   Vec3
	}{
		{[4]int{4, 5, 6, 7}, V3(0, 0, 1)},
		{[4]int{1, 0, 3, 2}, V3(0, 0, -1)},
		{[4]int{5, 1, 2, 6}, V3(1, 0, 0)},
		{[4]int{0, 4, 7, 3}, V3(-1, 0, 0)},
		{[4]int{7, 6, 2, 3}, V3(0, 1, 0)},
		{[4]int{0, 1, 5, 4}, V3(0, -1, 0)},
	}

	g := &Geometry{
		Vertices: make([]Vertex, 0, 24),
		Indices:  make([]uint32, 0, 36),
	}
	for _, f := range faces {
		base := uint32(len(g.Vertices))
		for _, ci := range f.idx {
			g.Vertices = append(g.Vertices, Vertex{Pos: corners[ci], Normal: f.n})
		}
		g.Indices = append(g.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return g
}

// NewTorusGeometry returns a torus around the Z axis with the given ring radius and
// tube radius.
func NewTorusGeometry(radius, tube Scalar, radialSegments, tubularSegments int) *Geometry {
	if radialSegments < 3 {
		radialSegments = 3
	}
	if tubularSegments < 3 {
		tubularSegments = 3
	}

	g := &Geometry{
		Vertices: make([]Vertex, 0, radialSegments*tubularSegments),
		Indices:  make([]uint32, 0, radialSegments*tubularSegments*6),
	}

	twoPi := 2 * math.Pi
	for j := 0; j < radialSegments; j++ {
		v := twoPi * float64(j) / float64(radialSegments)
		cv, sv := math.Cos(v), math.Sin(v)
		for i := 0; i < tubularSegments; i++ {
			u := twoPi * float64(i) / float64(tubularSegments)
			cu, su := math.Cos(u), math.Sin(u)

			r := float64(radius) + float64(tube)*cv
			pos := V3(Scalar(r*cu), Scalar(r*su), Scalar(float64(tube)*sv))
			center := V3(Scalar(float64(radius)*cu), Scalar(float64(radius)*su), 0)
			g.Vertices = append(g.Vertices, Vertex{Pos: pos, Normal: Normalize(pos.Sub(center))})
		}
	}

	idx := func(j, i int) uint32 {
		return uint32((j%radialSegments)*tubularSegments + i%tubularSegments)
	}
	for j := 0; j < radialSegments; j++ {
		for i := 0; i < tubularSegments; i++ {
			a := idx(j, i)
			b := idx(j+1, i)
			c := idx(j+1, i+1)
			d := idx(j, i+1)
			g.Indices = append(g.Indices, a, d, b, b, d, c)
		}
	}
	return g
}

// NewTorusKnotGeometry returns a (p,q) torus knot: the tube winds p times around
// the axis of rotational symmetry and q times around the circle in the torus
// interior.
func NewTorusKnotGeometry(radius, tube Scalar, tubularSegments, radialSegments, p, q int) *Geometry {
	if tubularSegments < 3 {
		tubularSegments = 3
	}
	if radialSegments < 3 {
		radialSegments = 3
	}
	if p == 0 && q == 0 {
		p, q = 2, 3
	}

	curve := func(u float64) Vec3 {
		cu, su := math.Cos(u), math.Sin(u)
		quOverP := float64(q) / float64(p) * u
		cs := math.Cos(quOverP)
		r := float64(radius)
		return V3(
			Scalar(r*(2+cs)*0.5*cu),
			Scalar(r*(2+cs)*su*0.5),
			Scalar(r*math.Sin(quOverP)*0.5),
		)
	}

	g := &Geometry{
		Vertices: make([]Vertex, 0, tubularSegments*radialSegments),
		Indices:  make([]uint32, 0, tubularSegments*radialSegments*6),
	}

	twoPi := 2 * math.Pi
	for i := 0; i < tubularSegments; i++ {
		u := float64(i) / float64(tubularSegments) * float64(p) * twoPi
		p1 := curve(u)
		p2 := curve(u + 0.01)

		// Frenet-like frame from the curve and its look-ahead point.
		t := p2.Sub(p1)
		n := p2.Add(p1)
		b := Normalize(Cross(t, n))
		n = Normalize(Cross(b, t))

		for j := 0; j < radialSegments; j++ {
			v := float64(j) / float64(radialSegments) * twoPi
			cx := Scalar(-float64(tube) * math.Cos(v))
			cy := Scalar(float64(tube) * math.Sin(v))
			pos := p1.Add(n.Mul(cx)).Add(b.Mul(cy))
			g.Vertices = append(g.Vertices, Vertex{Pos: pos, Normal: Normalize(pos.Sub(p1))})
		}
	}

	idx := func(i, j int) uint32 {
		return uint32((i%tubularSegments)*radialSegments + j%radialSegments)
	}
	for i := 0; i < tubularSegments; i++ {
		for j := 0; j < radialSegments; j++ {
			a := idx(i, j)
			b := idx(i+1, j)
			c := idx(i+1, j+1)
			d := idx(i, j+1)
			g.Indices = append(g.Indices, a, b, d, b, c, d)
		}
	}
	return g
}
