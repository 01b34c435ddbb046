package scatter

import (
	"fmt"
	"math/rand/v2"
)

// MaxExcludedFraction bounds the excluded volume relative to the placement cube.
// At this ratio a point is accepted with probability at least one half, so the
// expected number of draws per point stays below two.
const MaxExcludedFraction = 0.5

// Point is a sampled position.
type Point struct {
	X, Y, Z float64
}

// Sampler draws points from the cube [-R, R]³. It is not safe for concurrent use.
type Sampler struct {
	rng      *rand.Rand
	half     float64
	cube     Bounds
	excluded Bounds
}

// NewSampler validates the placement cube and excluded box and returns a sampler
// backed by src.
func NewSampler(src rand.Source, halfWidth float64, excluded Bounds) (*Sampler, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrInvalidBounds)
	}
	if !(halfWidth > 0) || halfWidth > maxExtent {
		return nil, fmt.Errorf("%w: half-width %v", ErrInvalidBounds, halfWidth)
	}
	if err := excluded.Validate(); err != nil {
		return nil, err
	}
	cube := Cube(halfWidth)
	if !cube.Within(excluded) {
		return nil, fmt.Errorf("%w: %v in %v", ErrExclusionOutside, excluded, cube)
	}
	if f := excludedFraction(excluded, halfWidth); !(f <= MaxExcludedFraction) {
		return nil, fmt.Errorf("%w: %.3f of the cube (max %.2f)", ErrExclusionTooLarge, f, MaxExcludedFraction)
	}
	return &Sampler{rng: rand.New(src), half: halfWidth, cube: cube, excluded: excluded}, nil
}

// excludedFraction is the share of the cube covered by b, computed per axis so
// that neither volume has to be representable.
func excludedFraction(b Bounds, half float64) float64 {
	side := 2 * half
	return (b.MaxX - b.MinX) / side * ((b.MaxY - b.MinY) / side) * ((b.MaxZ - b.MinZ) / side)
}

// HalfWidth returns R.
func (s *Sampler) HalfWidth() float64 { return s.half }

// Cube returns the placement volume.
func (s *Sampler) Cube() Bounds { return s.cube }

// Excluded returns the excluded box.
func (s *Sampler) Excluded() Bounds { return s.excluded }

// Point draws a point from the cube, redrawing all three coordinates while the
// point lies inside the excluded box.
func (s *Sampler) Point() Point {
	for {
		p := s.Uniform()
		if !s.excluded.Interior(p.X, p.Y, p.Z) {
			return p
		}
	}
}

// Uniform draws a point from the whole cube.
func (s *Sampler) Uniform() Point {
	return Point{
		X: s.Range(-s.half, s.half),
		Y: s.Range(-s.half, s.half),
		Z: s.Range(-s.half, s.half),
	}
}

// Range returns a uniform value in [lo, hi).
func (s *Sampler) Range(lo, hi float64) float64 {
	return lo + (hi-lo)*s.rng.Float64()
}
