package stage

import (
	"errors"
	"math"
	"testing"

	"kate/quarkgl"
	"kate/scatter"
)

func TestPopulateStockScene(t *testing.T) {
	p := DefaultParams()
	scene := quarkgl.CreateScene(p.meshCount())
	pop, err := Populate(scene, testFont(t), testSampler(t, p), p)
	if err != nil {
		t.Fatalf("Populate: %v", err)
	}

	if len(pop.Ornaments) != 500 || len(pop.Dust) != 4000 {
		t.Fatalf("ornaments=%d dust=%d, want 500/4000", len(pop.Ornaments), len(pop.Dust))
	}
	if scene.Len() != 4501 {
		t.Fatalf("scene holds %d meshes, want 4501", scene.Len())
	}

	cube := scatter.Cube(6)
	excluded := scatter.Centered(1.5, 0.5, 0.25)
	for i, m := range pop.Ornaments {
		if m.Geometry != pop.Shapes[i%3] {
			t.Fatalf("ornament %d has the wrong shape, want %v", i, ShapeFor(i))
		}
		if m.Scale < 0 || m.Scale > 0.5 {
			t.Fatalf("ornament %d scale %v", i, m.Scale)
		}
		x, y, z := float64(m.Position.X), float64(m.Position.Y), float64(m.Position.Z)
		if !cube.Contains(x, y, z) || excluded.Interior(x, y, z) {
			t.Fatalf("ornament %d at %v", i, m.Position)
		}
		for _, a := range []quarkgl.Scalar{m.Rotation.X, m.Rotation.Y, m.Rotation.Z} {
			if a < -math.Pi || a > math.Pi {
				t.Fatalf("ornament %d rotation %v", i, m.Rotation)
			}
		}
		if m.Material != pop.Material {
			t.Fatalf("ornament %d does not share the material", i)
		}
	}
	for i, m := range pop.Dust {
		if m.Geometry != pop.Shapes[ShapeCube] {
			t.Fatalf("dust %d is not a cube", i)
		}
		if m.Scale < 0 || m.Scale > 0.019 {
			t.Fatalf("dust %d scale %v", i, m.Scale)
		}
		if !cube.Contains(float64(m.Position.X), float64(m.Position.Y), float64(m.Position.Z)) {
			t.Fatalf("dust %d at %v", i, m.Position)
		}
	}
	if pop.Material.Shading != quarkgl.ShadingNormal {
		t.Fatalf("shading = %v, want normal", pop.Material.Shading)
	}
}

func TestPopulateCentersText(t *testing.T) {
	p := smallParams()
	scene := quarkgl.CreateScene(p.meshCount())
	pop, err := Populate(scene, testFont(t), testSampler(t, p), p)
	if err != nil {
		t.Fatalf("Populate: %v", err)
	}
	b := pop.Text.Geometry.BoundingBox()
	c := b.Center()
	for axis, v := range []quarkgl.Scalar{c.X, c.Y, c.Z} {
		if math.Abs(float64(v)) > 0.05 {
			t.Fatalf("text center axis %d = %v, bounds %v..%v", axis, v, b.Min, b.Max)
		}
	}
	// Depth plus both bevels.
	if d := b.Size().Z; math.Abs(float64(d)-0.26) > 1e-4 {
		t.Fatalf("text depth = %v, want 0.26", d)
	}
}

func TestPopulateSceneFull(t *testing.T) {
	p := smallParams()
	scene := quarkgl.CreateScene(10)
	_, err := Populate(scene, testFont(t), testSampler(t, p), p)
	if !errors.Is(err, ErrSceneFull) {
		t.Fatalf("err = %v, want ErrSceneFull", err)
	}
	if scene.Len() != 0 {
		t.Fatalf("scene has %d meshes after failure", scene.Len())
	}
}

func TestPopulateFailureLeavesSceneEmpty(t *testing.T) {
	p := smallParams()
	p.Text = "\U0001F600"
	scene := quarkgl.CreateScene(p.meshCount())
	if _, err := Populate(scene, testFont(t), testSampler(t, p), p); err == nil {
		t.Fatal("expected error for a rune the font lacks")
	}
	if scene.Len() != 0 {
		t.Fatalf("scene has %d meshes after failure", scene.Len())
	}
}

func TestShapeCycle(t *testing.T) {
	want := []Shape{ShapeTorus, ShapeKnot, ShapeCube, ShapeTorus, ShapeKnot}
	for i, s := range want {
		if got := ShapeFor(i); got != s {
			t.Fatalf("ShapeFor(%d) = %v, want %v", i, got, s)
		}
	}
}

func TestCellSetOnce(t *testing.T) {
	var c Cell
	if c.Get() != nil {
		t.Fatal("new cell not empty")
	}
	a, b := &Population{}, &Population{}
	if !c.Set(a) {
		t.Fatal("first Set failed")
	}
	if c.Set(b) {
		t.Fatal("second Set succeeded")
	}
	if c.Get() != a {
		t.Fatal("cell lost the first value")
	}
}

func TestDefaultParamsValid(t *testing.T) {
	p := DefaultParams()
	if err := p.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if ex := p.Exclusion(); ex != scatter.Centered(1.5, 0.5, 0.25) {
		t.Fatalf("Exclusion = %v", ex)
	}
	p.Far = p.Near
	if p.Validate() == nil {
		t.Fatal("expected clip plane error")
	}
}
