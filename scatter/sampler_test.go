package scatter

import (
	"errors"
	"math/rand/v2"
	"testing"
)

func newTestSampler(t *testing.T) *Sampler {
	t.Helper()
	s, err := NewSampler(rand.NewPCG(1, 2), 6, Exclusion(0.25, 6, 2, 1))
	if err != nil {
		t.Fatalf("NewSampler: %v", err)
	}
	return s
}

func TestExclusionHalfWidths(t *testing.T) {
	b := Exclusion(0.25, 6, 2, 1)
	want := Centered(1.5, 0.5, 0.25)
	if b != want {
		t.Fatalf("Exclusion = %v, want %v", b, want)
	}
}

func TestPointAvoidsExcludedBox(t *testing.T) {
	s := newTestSampler(t)
	ex := Centered(1.5, 0.5, 0.25)
	cube := Cube(6)
	for i := 0; i < 100000; i++ {
		p := s.Point()
		if ex.Interior(p.X, p.Y, p.Z) {
			t.Fatalf("sample %d %+v inside excluded box", i, p)
		}
		if !cube.Contains(p.X, p.Y, p.Z) {
			t.Fatalf("sample %d %+v outside cube", i, p)
		}
	}
}

func TestUniformCoversExcludedBox(t *testing.T) {
	s := newTestSampler(t)
	ex := s.Excluded()
	inside := 0
	for i := 0; i < 100000; i++ {
		p := s.Uniform()
		if !s.Cube().Contains(p.X, p.Y, p.Z) {
			t.Fatalf("sample %+v outside cube", p)
		}
		if ex.Interior(p.X, p.Y, p.Z) {
			inside++
		}
	}
	// Excluded fraction is 0.375/1728; expect around 22 hits.
	if inside == 0 {
		t.Fatal("uniform sampling never entered the excluded box")
	}
}

func TestRange(t *testing.T) {
	s := newTestSampler(t)
	for i := 0; i < 10000; i++ {
		v := s.Range(0, 0.019)
		if v < 0 || v > 0.019 {
			t.Fatalf("Range = %v", v)
		}
	}
}

func TestDeterministicWithSeed(t *testing.T) {
	a, _ := NewSampler(rand.NewPCG(7, 7), 6, Exclusion(0.25, 6, 2, 1))
	b, _ := NewSampler(rand.NewPCG(7, 7), 6, Exclusion(0.25, 6, 2, 1))
	for i := 0; i < 100; i++ {
		if a.Point() != b.Point() {
			t.Fatalf("samplers diverged at %d", i)
		}
	}
}

func TestNewSamplerRejects(t *testing.T) {
	cases := []struct {
		name     string
		half     float64
		excluded Bounds
		want     error
	}{
		{"zero cube", 0, Centered(1, 1, 1), ErrInvalidBounds},
		{"negative cube", -2, Centered(1, 1, 1), ErrInvalidBounds},
		{"inverted box", 6, Bounds{MinX: 1, MaxX: -1}, ErrInvalidBounds},
		{"box pokes out", 6, Centered(7, 1, 1), ErrExclusionOutside},
		{"box off center", 6, Bounds{MinX: 5, MaxX: 7, MinY: 0, MaxY: 1, MinZ: 0, MaxZ: 1}, ErrExclusionOutside},
		{"box too large", 6, Centered(5.9, 5.9, 5.9), ErrExclusionTooLarge},
	}
	for _, tc := range cases {
		_, err := NewSampler(rand.NewPCG(1, 1), tc.half, tc.excluded)
		if !errors.Is(err, tc.want) {
			t.Fatalf("%s: err = %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestNewSamplerRejectsFullCubeAtExtremeScales(t *testing.T) {
	for _, r := range []float64{1e200, 1e-120, 5e-324} {
		_, err := NewSampler(rand.NewPCG(1, 2), r, Cube(r))
		if !errors.Is(err, ErrExclusionTooLarge) {
			t.Fatalf("r=%g: err = %v, want %v", r, err, ErrExclusionTooLarge)
		}
	}
}

func TestNewSamplerScaleInvariant(t *testing.T) {
	for _, r := range []float64{1e200, 1e-120} {
		s, err := NewSampler(rand.NewPCG(1, 2), r, Exclusion(r/24, 6, 2, 1))
		if err != nil {
			t.Fatalf("r=%g: %v", r, err)
		}
		for i := 0; i < 100; i++ {
			if p := s.Point(); s.Excluded().Interior(p.X, p.Y, p.Z) {
				t.Fatalf("r=%g: point %+v inside excluded box", r, p)
			}
		}
	}
}

func TestNewSamplerAcceptsHalfCube(t *testing.T) {
	// Exactly half the volume: a slab covering x in [-1, 0].
	b := Bounds{MinX: -1, MaxX: 0, MinY: -1, MaxY: 1, MinZ: -1, MaxZ: 1}
	s, err := NewSampler(rand.NewPCG(3, 4), 1, b)
	if err != nil {
		t.Fatalf("NewSampler: %v", err)
	}
	for i := 0; i < 1000; i++ {
		if p := s.Point(); b.Interior(p.X, p.Y, p.Z) {
			t.Fatalf("point %+v inside slab", p)
		}
	}
}

func TestInteriorExcludesFaces(t *testing.T) {
	b := Centered(1, 1, 1)
	if b.Interior(1, 0, 0) {
		t.Fatal("face point counted as interior")
	}
	if !b.Contains(1, 0, 0) {
		t.Fatal("face point not contained")
	}
	if !b.Interior(0, 0, 0) {
		t.Fatal("origin not interior")
	}
}
