package stage

import (
	"sync/atomic"

	"kate/quarkgl"
)

// Shape identifies an ornament geometry.
type Shape uint8

const (
	ShapeTorus Shape = iota
	ShapeKnot
	ShapeCube

	shapeCount
)

func (s Shape) String() string {
	switch s {
	case ShapeTorus:
		return "torus"
	case ShapeKnot:
		return "knot"
	case ShapeCube:
		return "cube"
	}
	return "unknown"
}

// ShapeFor returns the shape of the i-th ornament.
func ShapeFor(i int) Shape { return Shape(i % int(shapeCount)) }

// Population is everything Populate added to the scene.
type Population struct {
	Text      *quarkgl.Mesh
	Ornaments []*quarkgl.Mesh
	Dust      []*quarkgl.Mesh

	// Shapes holds the shared ornament geometries, indexed by Shape.
	Shapes [shapeCount]*quarkgl.Geometry
	// Material is shared by every mesh.
	Material *quarkgl.Material
}

// Cell holds a population that is set at most once.
type Cell struct {
	p atomic.Pointer[Population]
}

// Set stores p if the cell is still empty and reports whether it did.
func (c *Cell) Set(p *Population) bool {
	if p == nil {
		return false
	}
	return c.p.CompareAndSwap(nil, p)
}

// Get returns the population or nil.
func (c *Cell) Get() *Population { return c.p.Load() }
