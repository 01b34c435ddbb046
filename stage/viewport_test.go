package stage

import (
	"testing"

	"kate/quarkgl"
	"kate/quarkgl/post"
)

func newTestViewport(scale float64) (*Viewport, *quarkgl.Scene, *fakeOutput, *post.Composer) {
	scene := quarkgl.CreateScene(1)
	out := &fakeOutput{}
	comp := post.NewComposer(1, 1, post.RenderPass{})
	return NewViewport(&scene.Camera, out, comp, 2, scale), scene, out, comp
}

func TestViewportIdempotent(t *testing.T) {
	v, scene, out, comp := newTestViewport(1)
	s := Size{Width: 800, Height: 600, PixelRatio: 1}

	w1, h1 := v.Apply(s)
	aspect1 := scene.Camera.Aspect
	proj1 := scene.Camera.ProjectionMatrix(0)

	w2, h2 := v.Apply(s)
	if w1 != w2 || h1 != h2 {
		t.Fatalf("size changed: %dx%d then %dx%d", w1, h1, w2, h2)
	}
	if scene.Camera.Aspect != aspect1 || scene.Camera.ProjectionMatrix(0) != proj1 {
		t.Fatal("camera changed on repeated apply")
	}
	if out.resizes != 1 {
		t.Fatalf("surface resized %d times, want 1", out.resizes)
	}
	if cw, ch := comp.Size(); cw != 800 || ch != 600 {
		t.Fatalf("composer = %dx%d", cw, ch)
	}
	if aspect1 != quarkgl.Scalar(800.0/600.0) {
		t.Fatalf("aspect = %v", aspect1)
	}
}

func TestViewportCapsPixelRatio(t *testing.T) {
	v, _, out, _ := newTestViewport(1)
	w, h := v.Apply(Size{Width: 100, Height: 50, PixelRatio: 3})
	if w != 200 || h != 100 {
		t.Fatalf("render size = %dx%d, want 200x100", w, h)
	}
	if out.w != 200 || out.h != 100 {
		t.Fatalf("surface = %dx%d", out.w, out.h)
	}

	w, h = v.Apply(Size{Width: 100, Height: 50, PixelRatio: 1.5})
	if w != 150 || h != 75 {
		t.Fatalf("render size = %dx%d, want 150x75", w, h)
	}
}

func TestViewportScaleAndDegenerateSizes(t *testing.T) {
	v, scene, _, _ := newTestViewport(0.5)
	if w, h := v.Apply(Size{Width: 640, Height: 480}); w != 320 || h != 240 {
		t.Fatalf("render size = %dx%d, want 320x240", w, h)
	}
	if w, h := v.Apply(Size{Width: 0, Height: -1, PixelRatio: 1}); w != 1 || h != 1 {
		t.Fatalf("render size = %dx%d, want 1x1", w, h)
	}
	if scene.Camera.Aspect != 1 {
		t.Fatalf("aspect = %v, want 1", scene.Camera.Aspect)
	}
}

func TestViewportOrientationChange(t *testing.T) {
	v, scene, out, _ := newTestViewport(1)
	v.Apply(Size{Width: 400, Height: 300, PixelRatio: 1})
	v.Apply(Size{Width: 300, Height: 400, PixelRatio: 1})
	if scene.Camera.Aspect != quarkgl.Scalar(0.75) {
		t.Fatalf("aspect = %v, want 0.75", scene.Camera.Aspect)
	}
	if out.resizes != 2 || out.w != 300 || out.h != 400 {
		t.Fatalf("surface = %dx%d after %d resizes", out.w, out.h, out.resizes)
	}
}
