package stage

import (
	"errors"
	"fmt"
	"math"

	"kate/glyph"
	"kate/quarkgl"
	"kate/scatter"
)

var ErrSceneFull = errors.New("stage: scene has no room for the population")

// Populate builds the text, the dust and the ornaments and adds them to scene.
// Meshes are only added once everything was built, so on error the scene is
// unchanged.
func Populate(scene *quarkgl.Scene, font *glyph.Font, s *scatter.Sampler, p Params) (*Population, error) {
	if scene == nil || font == nil || s == nil {
		return nil, errors.New("stage: populate needs a scene, a font and a sampler")
	}
	if free := scene.Free(); free < p.meshCount() {
		return nil, fmt.Errorf("%w: need %d slots, %d free", ErrSceneFull, p.meshCount(), free)
	}

	textGeo, err := font.TextGeometry(p.Text, p.textOptions())
	if err != nil {
		return nil, fmt.Errorf("stage: text geometry: %w", err)
	}
	b := textGeo.BoundingBox()
	eps := p.CenterEpsilon
	textGeo.Translate(quarkgl.V3(
		-(b.Max.X-quarkgl.Scalar(eps[0]))*0.5,
		-(b.Max.Y-quarkgl.Scalar(eps[1]))*0.5,
		-(b.Max.Z-quarkgl.Scalar(eps[2]))*0.5,
	))

	mat := &quarkgl.Material{Shading: quarkgl.ShadingNormal}
	pop := &Population{
		Text:     quarkgl.NewMesh(textGeo, mat),
		Material: mat,
	}
	pop.Shapes[ShapeTorus] = quarkgl.NewTorusGeometry(0.3, 0.2, 12, 48)
	pop.Shapes[ShapeKnot] = quarkgl.NewTorusKnotGeometry(0.2, 0.05, 64, 8, 2, 3)
	pop.Shapes[ShapeCube] = quarkgl.NewBoxGeometry(0.5, 0.5, 0.5)

	place := func(g *quarkgl.Geometry, pt scatter.Point, maxScale float64) *quarkgl.Mesh {
		m := quarkgl.NewMesh(g, mat)
		m.Position = quarkgl.V3(quarkgl.Scalar(pt.X), quarkgl.Scalar(pt.Y), quarkgl.Scalar(pt.Z))
		m.Rotation = quarkgl.V3(
			quarkgl.Scalar(s.Range(-math.Pi, math.Pi)),
			quarkgl.Scalar(s.Range(-math.Pi, math.Pi)),
			quarkgl.Scalar(s.Range(-math.Pi, math.Pi)),
		)
		m.Scale = quarkgl.Scalar(s.Range(0, maxScale))
		return m
	}

	pop.Dust = make([]*quarkgl.Mesh, 0, p.Dust)
	for i := 0; i < p.Dust; i++ {
		pop.Dust = append(pop.Dust, place(pop.Shapes[ShapeCube], s.Uniform(), p.DustScale))
	}
	pop.Ornaments = make([]*quarkgl.Mesh, 0, p.Ornaments)
	for i := 0; i < p.Ornaments; i++ {
		pop.Ornaments = append(pop.Ornaments, place(pop.Shapes[ShapeFor(i)], s.Point(), p.OrnamentScale))
	}

	scene.AddMesh(pop.Text)
	for _, m := range pop.Dust {
		scene.AddMesh(m)
	}
	for _, m := range pop.Ornaments {
		scene.AddMesh(m)
	}
	return pop, nil
}
