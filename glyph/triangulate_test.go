package glyph

import (
	"math"
	"testing"
)

func triArea(pts []Pt, tris [][3]int) float64 {
	var a float64
	for _, t := range tris {
		a += Area([]Pt{pts[t[0]], pts[t[1]], pts[t[2]]})
	}
	return a
}

func TestTriangulateConvex(t *testing.T) {
	sq := []Pt{{0, 0}, {2, 0}, {2, 2}, {0, 2}}
	tris := Triangulate(sq, nil)
	if len(tris) != 2 {
		t.Fatalf("triangles = %d, want 2", len(tris))
	}
	if a := triArea(sq, tris); math.Abs(a-4) > 1e-9 {
		t.Fatalf("area = %v, want 4", a)
	}
}

func TestTriangulateConcave(t *testing.T) {
	// An L shape.
	l := []Pt{{0, 0}, {3, 0}, {3, 1}, {1, 1}, {1, 3}, {0, 3}}
	tris := Triangulate(l, nil)
	if len(tris) != 4 {
		t.Fatalf("triangles = %d, want 4", len(tris))
	}
	if a := triArea(l, tris); math.Abs(a-5) > 1e-9 {
		t.Fatalf("area = %v, want 5", a)
	}
	for _, tr := range tris {
		if Area([]Pt{l[tr[0]], l[tr[1]], l[tr[2]]}) <= 0 {
			t.Fatalf("triangle %v is not counter-clockwise", tr)
		}
	}
}

func TestTriangulateWithHoles(t *testing.T) {
	outer := []Pt{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	holes := [][]Pt{
		reversed([]Pt{{2, 2}, {4, 2}, {4, 4}, {2, 4}}),
		reversed([]Pt{{6, 6}, {8, 6}, {8, 8}, {6, 8}}),
	}
	tris := Triangulate(outer, holes)

	var pts []Pt
	pts = append(pts, outer...)
	for _, h := range holes {
		pts = append(pts, h...)
	}
	if a := triArea(pts, tris); math.Abs(a-92) > 1e-9 {
		t.Fatalf("covered area = %v, want 92", a)
	}
	// Hole centers must stay uncovered.
	for _, c := range []Pt{{3, 3}, {7, 7}} {
		for _, tr := range tris {
			if pointInPolygon(c, []Pt{pts[tr[0]], pts[tr[1]], pts[tr[2]]}) {
				t.Fatalf("hole center %v covered by %v", c, tr)
			}
		}
	}
}

func TestSegmentsCross(t *testing.T) {
	if !segmentsCross(Pt{0, 0}, Pt{2, 2}, Pt{0, 2}, Pt{2, 0}) {
		t.Fatal("diagonals should cross")
	}
	if segmentsCross(Pt{0, 0}, Pt{1, 0}, Pt{0, 1}, Pt{1, 1}) {
		t.Fatal("parallel segments should not cross")
	}
}
