package stage

import (
	"math"

	"kate/quarkgl"
	"kate/quarkgl/post"
)

// Size is the visible size of the output surface in logical pixels.
type Size struct {
	Width      int
	Height     int
	PixelRatio float64
}

// Resizer is an output surface whose pixel size follows the viewport.
type Resizer interface {
	Resize(w, h int)
}

// Viewport keeps the camera projection and the render buffers in step with the
// surface size.
type Viewport struct {
	camera   *quarkgl.Camera
	surface  Resizer
	composer *post.Composer

	maxRatio float64
	scale    float64

	applied bool
	w, h    int
}

// NewViewport returns a viewport that caps the device pixel ratio at maxRatio and
// renders at scale times the surface's device resolution. surface may be nil.
func NewViewport(cam *quarkgl.Camera, surface Resizer, composer *post.Composer, maxRatio, scale float64) *Viewport {
	if maxRatio <= 0 {
		maxRatio = 2
	}
	if scale <= 0 {
		scale = 1
	}
	return &Viewport{camera: cam, surface: surface, composer: composer, maxRatio: maxRatio, scale: scale}
}

// Apply updates the camera aspect and projection for s and resizes the surface
// and the composer. It returns the render size. Repeating a size changes nothing.
func (v *Viewport) Apply(s Size) (w, h int) {
	lw, lh := max(s.Width, 1), max(s.Height, 1)
	ratio := s.PixelRatio
	if !(ratio > 0) {
		ratio = 1
	}
	ratio = math.Min(ratio, v.maxRatio)

	v.camera.Aspect = quarkgl.Scalar(float64(lw) / float64(lh))
	v.camera.UpdateProjectionMatrix()

	w = max(int(math.Round(float64(lw)*ratio*v.scale)), 1)
	h = max(int(math.Round(float64(lh)*ratio*v.scale)), 1)
	if v.applied && w == v.w && h == v.h {
		return w, h
	}
	v.applied, v.w, v.h = true, w, h
	if v.surface != nil {
		v.surface.Resize(w, h)
	}
	if v.composer != nil {
		v.composer.SetSize(w, h)
	}
	return w, h
}

// RenderSize returns the last applied render size.
func (v *Viewport) RenderSize() (w, h int) { return v.w, v.h }
