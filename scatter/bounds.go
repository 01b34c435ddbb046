// Package scatter places points uniformly in a cube while keeping them out of
// a reserved box around the origin.
package scatter

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidBounds     = errors.New("scatter: invalid bounds")
	ErrExclusionOutside  = errors.New("scatter: excluded box not inside placement cube")
	ErrExclusionTooLarge = errors.New("scatter: excluded box too large")
)

// Bounds is an axis-aligned box.
type Bounds struct {
	MinX, MinY, MinZ float64
	MaxX, MaxY, MaxZ float64
}

// Cube returns the box [-r, r]³.
func Cube(r float64) Bounds {
	return Bounds{MinX: -r, MinY: -r, MinZ: -r, MaxX: r, MaxY: r, MaxZ: r}
}

// Centered returns a box around the origin with the given half-widths.
func Centered(hx, hy, hz float64) Bounds {
	return Bounds{MinX: -hx, MinY: -hy, MinZ: -hz, MaxX: hx, MaxY: hy, MaxZ: hz}
}

// Exclusion returns the box reserved for the text: half-widths unit*sx, unit*sy
// and unit*sz.
func Exclusion(unit, sx, sy, sz float64) Bounds {
	return Centered(unit*sx, unit*sy, unit*sz)
}

// Validate reports whether every extent is finite and Min <= Max on each axis.
func (b Bounds) Validate() error {
	for _, ax := range [3][2]float64{{b.MinX, b.MaxX}, {b.MinY, b.MaxY}, {b.MinZ, b.MaxZ}} {
		lo, hi := ax[0], ax[1]
		if lo != lo || hi != hi || lo > hi || hi-lo > maxExtent {
			return fmt.Errorf("%w: [%v, %v]", ErrInvalidBounds, lo, hi)
		}
	}
	return nil
}

const maxExtent = 1e300

// Contains reports whether p lies in the box, faces included.
func (b Bounds) Contains(x, y, z float64) bool {
	return x >= b.MinX && x <= b.MaxX &&
		y >= b.MinY && y <= b.MaxY &&
		z >= b.MinZ && z <= b.MaxZ
}

// Interior reports whether p lies strictly inside the box. Points on a face
// are outside.
func (b Bounds) Interior(x, y, z float64) bool {
	return x > b.MinX && x < b.MaxX &&
		y > b.MinY && y < b.MaxY &&
		z > b.MinZ && z < b.MaxZ
}

// Within reports whether o lies entirely inside b.
func (b Bounds) Within(o Bounds) bool {
	return o.MinX >= b.MinX && o.MaxX <= b.MaxX &&
		o.MinY >= b.MinY && o.MaxY <= b.MaxY &&
		o.MinZ >= b.MinZ && o.MaxZ <= b.MaxZ
}

// Volume returns the box volume.
func (b Bounds) Volume() float64 {
	return (b.MaxX - b.MinX) * (b.MaxY - b.MinY) * (b.MaxZ - b.MinZ)
}

func (b Bounds) String() string {
	return fmt.Sprintf("[%g,%g]x[%g,%g]x[%g,%g]", b.MinX, b.MaxX, b.MinY, b.MaxY, b.MinZ, b.MaxZ)
}
