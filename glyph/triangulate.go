package glyph

import (
	"math"
	"sort"
)

// Pt is a 2D point, y up.
type Pt struct {
	X, Y float64
}

func (p Pt) eq(o Pt) bool { return p.X == o.X && p.Y == o.Y }

// Area returns the signed area of a closed polygon; positive means
// counter-clockwise.
func Area(poly []Pt) float64 {
	var a float64
	for i := range poly {
		j := (i + 1) % len(poly)
		a += poly[i].X*poly[j].Y - poly[j].X*poly[i].Y
	}
	return a / 2
}

func reversed(poly []Pt) []Pt {
	out := make([]Pt, len(poly))
	for i, p := range poly {
		out[len(poly)-1-i] = p
	}
	return out
}

func cross(o, a, b Pt) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}

// Triangulate splits a counter-clockwise outer polygon with clockwise holes into
// counter-clockwise triangles. Indices refer to the outer points followed by the
// points of each hole, in order.
func Triangulate(outer []Pt, holes [][]Pt) [][3]int {
	var pts []Pt
	pts = append(pts, outer...)
	ring := make([]int, len(outer))
	for i := range ring {
		ring[i] = i
	}

	type hole struct {
		idx  []int
		maxX float64
	}
	hs := make([]hole, 0, len(holes))
	for _, h := range holes {
		hh := hole{maxX: math.Inf(-1)}
		for _, p := range h {
			hh.idx = append(hh.idx, len(pts))
			pts = append(pts, p)
			if p.X > hh.maxX {
				hh.maxX = p.X
			}
		}
		if len(h) >= 3 {
			hs = append(hs, hh)
		}
	}

	// Bridge holes right to left so each bridge only has to avoid holes that are
	// still separate.
	sort.SliceStable(hs, func(i, j int) bool { return hs[i].maxX > hs[j].maxX })
	for k, h := range hs {
		var rest [][]int
		for _, o := range hs[k+1:] {
			rest = append(rest, o.idx)
		}
		ring = bridge(pts, ring, h.idx, rest)
	}

	return earClip(pts, ring)
}

// bridge splices hole into ring through the nearest ring vertex visible from the
// hole's rightmost point.
func bridge(pts []Pt, ring, hole []int, others [][]int) []int {
	m := 0
	for i, v := range hole {
		if pts[v].X > pts[hole[m]].X {
			m = i
		}
	}
	mp := pts[hole[m]]

	order := make([]int, len(ring))
	for i := range order {
		order[i] = i
	}
	dist := func(i int) float64 {
		p := pts[ring[i]]
		return (p.X-mp.X)*(p.X-mp.X) + (p.Y-mp.Y)*(p.Y-mp.Y)
	}
	sort.Slice(order, func(a, b int) bool { return dist(order[a]) < dist(order[b]) })

	best := -1
	for _, i := range order {
		if visible(pts, mp, pts[ring[i]], ring, hole, others) {
			best = i
			break
		}
	}
	if best < 0 {
		best = order[0]
	}

	out := make([]int, 0, len(ring)+len(hole)+2)
	out = append(out, ring[:best+1]...)
	for i := 0; i <= len(hole); i++ {
		out = append(out, hole[(m+i)%len(hole)])
	}
	out = append(out, ring[best])
	out = append(out, ring[best+1:]...)
	return out
}

func visible(pts []Pt, a, b Pt, ring, hole []int, others [][]int) bool {
	blocked := func(poly []int) bool {
		for i := range poly {
			p := pts[poly[i]]
			q := pts[poly[(i+1)%len(poly)]]
			if p.eq(a) || q.eq(a) || p.eq(b) || q.eq(b) {
				continue
			}
			if segmentsCross(a, b, p, q) {
				return true
			}
		}
		return false
	}
	if blocked(ring) || blocked(hole) {
		return false
	}
	for _, o := range others {
		if blocked(o) {
			return false
		}
	}
	return true
}

// segmentsCross reports whether segments ab and cd intersect, touching included.
func segmentsCross(a, b, c, d Pt) bool {
	d1 := cross(c, d, a)
	d2 := cross(c, d, b)
	d3 := cross(a, b, c)
	d4 := cross(a, b, d)
	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) && ((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}
	onSeg := func(p, q, r Pt) bool {
		return math.Min(p.X, q.X) <= r.X && r.X <= math.Max(p.X, q.X) &&
			math.Min(p.Y, q.Y) <= r.Y && r.Y <= math.Max(p.Y, q.Y)
	}
	switch {
	case d1 == 0 && onSeg(c, d, a):
		return true
	case d2 == 0 && onSeg(c, d, b):
		return true
	case d3 == 0 && onSeg(a, b, c):
		return true
	case d4 == 0 && onSeg(a, b, d):
		return true
	}
	return false
}

// earClip triangulates a counter-clockwise ring of point indices.
func earClip(pts []Pt, ring []int) [][3]int {
	n := len(ring)
	if n < 3 {
		return nil
	}
	prev := make([]int, n)
	next := make([]int, n)
	for i := range ring {
		prev[i] = (i + n - 1) % n
		next[i] = (i + 1) % n
	}

	tris := make([][3]int, 0, n-2)
	remaining := n
	cur := 0
	fails := 0
	remove := func(i int) {
		next[prev[i]] = next[i]
		prev[next[i]] = prev[i]
		remaining--
	}

	for remaining > 3 {
		p, c, nx := prev[cur], cur, next[cur]
		a, b, d := pts[ring[p]], pts[ring[c]], pts[ring[nx]]
		area := cross(a, b, d)

		switch {
		case math.Abs(area) < 1e-12:
			// Collinear or spike: drop the middle vertex, no triangle.
			remove(c)
			cur = nx
			fails = 0
			continue
		case area > 0 && !anyInside(pts, ring, next, nx, p, a, b, d):
			tris = append(tris, [3]int{ring[p], ring[c], ring[nx]})
			remove(c)
			cur = nx
			fails = 0
			continue
		}

		cur = nx
		fails++
		if fails > remaining {
			// No ear left: self-touching input. Clip anyway to terminate.
			if area > 0 {
				tris = append(tris, [3]int{ring[p], ring[c], ring[nx]})
			}
			remove(c)
			fails = 0
		}
	}
	if remaining == 3 {
		p, c, nx := prev[cur], cur, next[cur]
		if cross(pts[ring[p]], pts[ring[c]], pts[ring[nx]]) > 1e-12 {
			tris = append(tris, [3]int{ring[p], ring[c], ring[nx]})
		}
	}
	return tris
}

// anyInside reports whether a ring vertex other than the ear corners lies in
// triangle abd. It walks from the vertex after the ear up to the one before it.
func anyInside(pts []Pt, ring, next []int, from, to int, a, b, d Pt) bool {
	for i := next[from]; i != to; i = next[i] {
		q := pts[ring[i]]
		if q.eq(a) || q.eq(b) || q.eq(d) {
			continue
		}
		if cross(a, b, q) >= 0 && cross(b, d, q) >= 0 && cross(d, a, q) >= 0 {
			return true
		}
	}
	return false
}
