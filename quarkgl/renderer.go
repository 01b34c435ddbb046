package quarkgl

import "sync"

// Renderer is a fixed-pipeline software renderer.
//
// Create it once and reuse it to avoid allocations.
type Renderer struct {
	Mode       RenderMode
	Depth      bool
	ClearColor Color

	workers  int
	depthBuf []float32
	tris     []screenTri

	// Stats of the last Render call.
	Stats RenderStats
}

// RenderStats counts the work done by the last frame.
type RenderStats struct {
	Meshes    int
	Triangles int // submitted
	Drawn     int // survived clipping
}

type screenTri struct {
	x0, y0, x1, y1, x2, y2 int
	z0, z1, z2             float32
	c0, c1, c2             Color
	flat                   bool
}

// NewRenderer creates a renderer for a given maximum target size.
//
// If enableDepth is true, a depth buffer of size w*h is allocated.
func NewRenderer(w, h int, enableDepth bool) *Renderer {
	r := &Renderer{
		Mode:       RenderSolid,
		Depth:      enableDepth,
		ClearColor: RGB(0, 0, 0),
		workers:    1,
	}
	if enableDepth && w > 0 && h > 0 {
		r.depthBuf = make([]float32, w*h)
	}
	return r
}

func (r *Renderer) SetRenderMode(m RenderMode) { r.Mode = m }

// SetWorkers sets how many goroutines rasterize a frame. Values below 1 mean 1.
func (r *Renderer) SetWorkers(n int) {
	if n < 1 {
		n = 1
	}
	r.workers = n
}

// Workers returns the rasterization worker count.
func (r *Renderer) Workers() int { return r.workers }

func (r *Renderer) EnableDepth(on bool, w, h int) {
	r.Depth = on
	if !on {
		r.depthBuf = nil
		return
	}
	if w <= 0 || h <= 0 {
		r.depthBuf = nil
		return
	}
	if cap(r.depthBuf) < w*h {
		r.depthBuf = make([]float32, w*h)
	} else {
		r.depthBuf = r.depthBuf[:w*h]
	}
}

// Render renders a scene into the target.
func (r *Renderer) Render(t Target, s *Scene) {
	if r == nil || t == nil || s == nil {
		return
	}
	w, h := t.Size()
	if w <= 0 || h <= 0 {
		return
	}
	t.Clear(r.ClearColor)

	if r.Depth {
		r.EnableDepth(true, w, h)
	}

	aspect := Scalar(1)
	if h != 0 {
		aspect = Scalar(float32(w) / float32(h))
	}
	view := s.Camera.View()
	proj := s.Camera.ProjectionMatrix(aspect)

	r.Stats = RenderStats{}
	r.tris = r.tris[:0]
	s.eachMesh(func(m *Mesh) {
		if !m.Enabled || m.Geometry == nil {
			return
		}
		r.Stats.Meshes++
		r.setupMesh(w, h, proj, view, m, s.Light)
	})
	r.Stats.Drawn = len(r.tris)

	workers := r.workers
	if workers > h {
		workers = h
	}
	if workers <= 1 {
		r.rasterBand(t, w, 0, h)
		return
	}

	var wg sync.WaitGroup
	band := (h + workers - 1) / workers
	for y0 := 0; y0 < h; y0 += band {
		y1 := y0 + band
		if y1 > h {
			y1 = h
		}
		wg.Add(1)
		go func(y0, y1 int) {
			defer wg.Done()
			r.rasterBand(t, w, y0, y1)
		}(y0, y1)
	}
	wg.Wait()
}

func (r *Renderer) setupMesh(w, h int, proj, view Mat4, m *Mesh, light Light) {
	g := m.Geometry
	if len(g.Vertices) == 0 || len(g.Indices) < 3 {
		return
	}
	mat := m.Material
	if mat == nil {
		mat = &Material{BaseColor: RGB(0xCC, 0xCC, 0xCC), Opacity: 0xFF}
	}

	model := m.Transform()
	modelView := Mat4Mul(view, model)
	mvp := Mat4Mul(proj, modelView)

	for i := 0; i+2 < len(g.Indices); i += 3 {
		r.Stats.Triangles++
		i0 := int(g.Indices[i+0])
		i1 := int(g.Indices[i+1])
		i2 := int(g.Indices[i+2])
		if i0 >= len(g.Vertices) || i1 >= len(g.Vertices) || i2 >= len(g.Vertices) {
			continue
		}

		v0 := g.Vertices[i0]
		v1 := g.Vertices[i1]
		v2 := g.Vertices[i2]

		p0 := Mat4MulV4(mvp, Vec4{X: v0.Pos.X, Y: v0.Pos.Y, Z: v0.Pos.Z, W: 1})
		p1 := Mat4MulV4(mvp, Vec4{X: v1.Pos.X, Y: v1.Pos.Y, Z: v1.Pos.Z, W: 1})
		p2 := Mat4MulV4(mvp, Vec4{X: v2.Pos.X, Y: v2.Pos.Y, Z: v2.Pos.Z, W: 1})

		// Trivial clip: drop triangles touching or behind the eye plane.
		if p0.W <= 0 || p1.W <= 0 || p2.W <= 0 {
			continue
		}

		ndc0, ok0 := clipToNDC(p0)
		ndc1, ok1 := clipToNDC(p1)
		ndc2, ok2 := clipToNDC(p2)
		if !ok0 || !ok1 || !ok2 {
			continue
		}
		// No near-plane clipping: drop triangles that cross it.
		if ndc0.Z < -1 || ndc1.Z < -1 || ndc2.Z < -1 {
			continue
		}
		if outsideFrustum(ndc0, ndc1, ndc2) {
			continue
		}

		// Screen coords.
		x0, y0 := ndcToScreen(ndc0, w, h)
		x1, y1 := ndcToScreen(ndc1, w, h)
		x2, y2 := ndcToScreen(ndc2, w, h)

		st := screenTri{
			x0: x0, y0: y0, z0: ndc0.Z,
			x1: x1, y1: y1, z1: ndc1.Z,
			x2: x2, y2: y2, z2: ndc2.Z,
			flat: true,
		}

		switch {
		case mat.Shading == ShadingNormal:
			face := triangleNormal(v0.Pos, v1.Pos, v2.Pos)
			st.c0 = viewNormalColor(modelView, v0.Normal, face)
			if v0.Normal != (Vec3{}) || v1.Normal != (Vec3{}) || v2.Normal != (Vec3{}) {
				st.c1 = viewNormalColor(modelView, v1.Normal, face)
				st.c2 = viewNormalColor(modelView, v2.Normal, face)
				st.flat = false
			}
		case mat.Shading == ShadingLambert && light.Mode == LightAmbientDirectional:
			n := Normalize(Mat4MulDir(model, triangleNormal(v0.Pos, v1.Pos, v2.Pos)))
			st.c0 = mat.BaseColor.MulScalar(lightIntensity(light, n))
		default:
			st.c0 = mat.BaseColor
		}
		r.tris = append(r.tris, st)
	}
}

func (r *Renderer) rasterBand(t Target, w, y0, y1 int) {
	if r.Depth {
		for i := y0 * w; i < y1*w && i < len(r.depthBuf); i++ {
			r.depthBuf[i] = 1e9
		}
	}
	for i := range r.tris {
		st := &r.tris[i]
		switch {
		case r.Mode == RenderWireframe:
			r.drawLine(t, y0, y1, st.x0, st.y0, st.x1, st.y1, st.c0)
			r.drawLine(t, y0, y1, st.x1, st.y1, st.x2, st.y2, st.c0)
			r.drawLine(t, y0, y1, st.x2, st.y2, st.x0, st.y0, st.c0)
		case st.flat:
			r.fillTriangleFlat(t, w, y0, y1, st)
		default:
			r.fillTriangle(t, w, y0, y1, st)
		}
	}
}

type ndcPoint struct {
	X, Y, Z float32
}

func clipToNDC(p Vec4) (ndcPoint, bool) {
	w := float32(p.W)
	if w == 0 {
		return ndcPoint{}, false
	}
	invW := 1.0 / w
	return ndcPoint{
		X: float32(p.X) * invW,
		Y: float32(p.Y) * invW,
		Z: float32(p.Z) * invW,
	}, true
}

func outsideFrustum(a, b, c ndcPoint) bool {
	switch {
	case a.X < -1 && b.X < -1 && c.X < -1:
		return true
	case a.X > 1 && b.X > 1 && c.X > 1:
		return true
	case a.Y < -1 && b.Y < -1 && c.Y < -1:
		return true
	case a.Y > 1 && b.Y > 1 && c.Y > 1:
		return true
	case a.Z < -1 && b.Z < -1 && c.Z < -1:
		return true
	case a.Z > 1 && b.Z > 1 && c.Z > 1:
		return true
	}
	return false
}

func ndcToScreen(p ndcPoint, w, h int) (x, y int) {
	sx := (p.X*0.5 + 0.5) * float32(w-1)
	sy := (1 - (p.Y*0.5 + 0.5)) * float32(h-1)
	return int(sx + 0.5), int(sy + 0.5)
}

// viewNormalColor colors a vertex by its normal in view space. Vertices without
// a normal use the face normal.
func viewNormalColor(modelView Mat4, n, face Vec3) Color {
	if n == (Vec3{}) {
		n = face
	}
	return NormalColor(Normalize(Mat4MulDir(modelView, n)))
}

func triangleNormal(a, b, c Vec3) Vec3 {
	return Normalize(Cross(b.Sub(a), c.Sub(a)))
}

func lightIntensity(l Light, n Vec3) Scalar {
	amb := Clamp01(l.Ambient)
	dir := Clamp01(l.DirAmount)
	ld := Normalize(l.Dir)
	if ld == (Vec3{}) {
		return amb
	}
	d := Dot(n, ld.Mul(-1))
	if d < 0 {
		d = 0
	}
	return Clamp01(amb + d*dir)
}

func (r *Renderer) depthTest(w int, x, y int, z float32) bool {
	if !r.Depth || r.depthBuf == nil {
		return true
	}
	if x < 0 || y < 0 || x >= w {
		return false
	}
	idx := y*w + x
	if idx < 0 || idx >= len(r.depthBuf) {
		return false
	}
	// NDC z is typically in [-1,1]. Map to [0,1].
	d := (z*0.5 + 0.5)
	if d < 0 || d > 1 {
		return false
	}
	if d >= r.depthBuf[idx] {
		return false
	}
	r.depthBuf[idx] = d
	return true
}

func (r *Renderer) drawLine(t Target, bandY0, bandY1 int, x0, y0, x1, y1 int, c Color) {
	if (y0 < bandY0 && y1 < bandY0) || (y0 >= bandY1 && y1 >= bandY1) {
		return
	}
	dx := absInt(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -absInt(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		if y0 >= bandY0 && y0 < bandY1 {
			t.SetPixel(x0, y0, c)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// triBounds clips the triangle bounding box to the target and the band.
func triBounds(st *screenTri, w, bandY0, bandY1 int) (minX, maxX, minY, maxY int, ok bool) {
	minX, maxX = min3(st.x0, st.x1, st.x2), max3(st.x0, st.x1, st.x2)
	minY, maxY = min3(st.y0, st.y1, st.y2), max3(st.y0, st.y1, st.y2)
	if minX < 0 {
		minX = 0
	}
	if minY < bandY0 {
		minY = bandY0
	}
	if maxX >= w {
		maxX = w - 1
	}
	if maxY >= bandY1 {
		maxY = bandY1 - 1
	}
	return minX, maxX, minY, maxY, minX <= maxX && minY <= maxY
}

func (r *Renderer) fillTriangleFlat(t Target, w, bandY0, bandY1 int, st *screenTri) {
	minX, maxX, minY, maxY, ok := triBounds(st, w, bandY0, bandY1)
	if !ok {
		return
	}
	x0, y0, x1, y1, x2, y2 := st.x0, st.y0, st.x1, st.y1, st.x2, st.y2
	z0, z1, z2 := st.z0, st.z1, st.z2
	c := st.c0

	area := edgeFn(x0, y0, x1, y1, x2, y2)
	if area == 0 {
		return
	}
	if area < 0 {
		// Accept both windings.
		x1, y1, x2, y2 = x2, y2, x1, y1
		z1, z2 = z2, z1
		area = -area
	}
	invArea := 1.0 / float32(area)

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			w0 := edgeFn(x1, y1, x2, y2, x, y)
			w1 := edgeFn(x2, y2, x0, y0, x, y)
			w2 := edgeFn(x0, y0, x1, y1, x, y)
			if (w0 | w1 | w2) < 0 {
				continue
			}
			a0 := float32(w0) * invArea
			a1 := float32(w1) * invArea
			a2 := float32(w2) * invArea
			z := a0*z0 + a1*z1 + a2*z2
			if !r.depthTest(w, x, y, z) {
				continue
			}
			t.SetPixel(x, y, c)
		}
	}
}

func (r *Renderer) fillTriangle(t Target, w, bandY0, bandY1 int, st *screenTri) {
	minX, maxX, minY, maxY, ok := triBounds(st, w, bandY0, bandY1)
	if !ok {
		return
	}
	x0, y0, x1, y1, x2, y2 := st.x0, st.y0, st.x1, st.y1, st.x2, st.y2
	z0, z1, z2 := st.z0, st.z1, st.z2
	c0, c1, c2 := st.c0, st.c1, st.c2

	area := edgeFn(x0, y0, x1, y1, x2, y2)
	if area == 0 {
		return
	}
	if area < 0 {
		x1, y1, x2, y2 = x2, y2, x1, y1
		z1, z2 = z2, z1
		c1, c2 = c2, c1
		area = -area
	}
	invArea := 1.0 / float32(area)

	r0, g0, b0 := float32(c0.R), float32(c0.G), float32(c0.B)
	r1, g1, b1 := float32(c1.R), float32(c1.G), float32(c1.B)
	r2, g2, b2 := float32(c2.R), float32(c2.G), float32(c2.B)

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			w0 := edgeFn(x1, y1, x2, y2, x, y)
			w1 := edgeFn(x2, y2, x0, y0, x, y)
			w2 := edgeFn(x0, y0, x1, y1, x, y)
			if (w0 | w1 | w2) < 0 {
				continue
			}
			a0 := float32(w0) * invArea
			a1 := float32(w1) * invArea
			a2 := float32(w2) * invArea
			z := a0*z0 + a1*z1 + a2*z2
			if !r.depthTest(w, x, y, z) {
				continue
			}
			rr := uint8(clampF32(a0*r0+a1*r1+a2*r2+0.5, 0, 255))
			gg := uint8(clampF32(a0*g0+a1*g1+a2*g2+0.5, 0, 255))
			bb := uint8(clampF32(a0*b0+a1*b1+a2*b2+0.5, 0, 255))
			t.SetPixel(x, y, Color{R: rr, G: gg, B: bb, A: 0xFF})
		}
	}
}

func edgeFn(x0, y0, x1, y1, x, y int) int {
	return (x-x0)*(y1-y0) - (y-y0)*(x1-x0)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func min3(a, b, c int) int {
	if a > b {
		a = b
	}
	if a > c {
		a = c
	}
	return a
}

func max3(a, b, c int) int {
	if a < b {
		a = b
	}
	if a < c {
		a = c
	}
	return a
}

func clampF32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
