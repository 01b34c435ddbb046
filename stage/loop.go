package stage

import (
	"errors"
	"fmt"
	"image"
	"sync/atomic"

	"kate/glyph"
	"kate/quarkgl"
	"kate/quarkgl/post"
	"kate/scatter"
)

var ErrStopped = errors.New("stage: loop stopped")

// Logger is the line sink the loop reports to.
type Logger interface {
	WriteLineString(s string)
}

// Output receives sizes from the viewport and every finished frame.
type Output interface {
	Resizer
	Present(frame *image.RGBA) error
}

// Action is a user command handled between frames.
type Action uint8

const (
	ActionNone Action = iota
	ActionOrbitLeft
	ActionOrbitRight
	ActionOrbitUp
	ActionOrbitDown
	ActionZoomIn
	ActionZoomOut
	ActionToggleWireframe
	ActionToggleHUD
	ActionCycleShading
	ActionQuit
)

const (
	orbitStep = 0.02
	zoomStep  = 0.05
)

// LoopConfig wires a Loop. Font may be nil, in which case the scene stays empty.
type LoopConfig struct {
	Params  Params
	Sampler *scatter.Sampler
	Font    <-chan glyph.LoadResult
	Output  Output
	Logger  Logger

	// FPS is the host frame rate; it times auto-rotation.
	FPS     int
	Workers int
	// Scale multiplies the render resolution.
	Scale float64
	HUD   bool
}

// Loop advances and draws the scene once per host frame. All methods except
// Stop must be called from the host frame goroutine.
type Loop struct {
	params  Params
	sampler *scatter.Sampler
	font    <-chan glyph.LoadResult
	out     Output
	log     Logger

	scene    *quarkgl.Scene
	renderer *quarkgl.Renderer
	composer *post.Composer
	hueSat   *post.HueSaturationPass
	viewport *Viewport
	controls *quarkgl.OrbitController

	cell    Cell
	pending []Size
	hud     bool
	frames  uint64
	stopped atomic.Bool
}

// NewLoop builds the empty scene, camera, composer and viewport.
func NewLoop(cfg LoopConfig) *Loop {
	p := cfg.Params
	l := &Loop{
		params:  p,
		sampler: cfg.Sampler,
		font:    cfg.Font,
		out:     cfg.Output,
		log:     cfg.Logger,
		hud:     cfg.HUD,
	}

	l.scene = quarkgl.CreateScene(p.meshCount())
	cam := &l.scene.Camera
	cam.FOVYRad = quarkgl.Deg2Rad(quarkgl.Scalar(p.FOV))
	cam.Near = quarkgl.Scalar(p.Near)
	cam.Far = quarkgl.Scalar(p.Far)
	cam.Position = quarkgl.V3(quarkgl.Scalar(p.CameraPosition[0]), quarkgl.Scalar(p.CameraPosition[1]), quarkgl.Scalar(p.CameraPosition[2]))
	cam.Target = quarkgl.V3(0, 0, 0)

	l.controls = quarkgl.NewOrbitController(cam.Position, cam.Target, cfg.FPS)
	l.controls.AutoRotate = true
	l.controls.AutoRotateSpeed = quarkgl.Scalar(p.AutoRotateSpeed)
	l.controls.MinRadius = quarkgl.Scalar(p.Near * 2)
	l.controls.MaxRadius = quarkgl.Scalar(p.Far / 2)

	l.renderer = quarkgl.NewRenderer(0, 0, true)
	l.renderer.SetWorkers(cfg.Workers)
	l.hueSat = post.NewHueSaturationPass(p.Hue, p.Saturation)
	l.composer = post.NewComposer(1, 1, post.RenderPass{}, l.hueSat)

	var rs Resizer
	if cfg.Output != nil {
		rs = cfg.Output
	}
	l.viewport = NewViewport(cam, rs, l.composer, p.MaxPixelRatio, cfg.Scale)
	return l
}

// Resize queues a surface size; the next Tick applies it.
func (l *Loop) Resize(s Size) { l.pending = append(l.pending, s) }

// Handle applies a user action.
func (l *Loop) Handle(a Action) {
	switch a {
	case ActionOrbitLeft:
		l.controls.Rotate(-orbitStep, 0)
	case ActionOrbitRight:
		l.controls.Rotate(orbitStep, 0)
	case ActionOrbitUp:
		l.controls.Rotate(0, -orbitStep)
	case ActionOrbitDown:
		l.controls.Rotate(0, orbitStep)
	case ActionZoomIn:
		l.controls.Zoom(-zoomStep)
	case ActionZoomOut:
		l.controls.Zoom(zoomStep)
	case ActionToggleWireframe:
		if l.renderer.Mode == quarkgl.RenderWireframe {
			l.renderer.SetRenderMode(quarkgl.RenderSolid)
		} else {
			l.renderer.SetRenderMode(quarkgl.RenderWireframe)
		}
	case ActionToggleHUD:
		l.hud = !l.hud
	case ActionCycleShading:
		if pop := l.cell.Get(); pop != nil {
			pop.Material.Shading = nextShading(pop.Material.Shading)
		}
	case ActionQuit:
		l.Stop()
	}
}

// nextShading steps normal -> lit -> flat -> normal.
func nextShading(s quarkgl.Shading) quarkgl.Shading {
	switch s {
	case quarkgl.ShadingNormal:
		return quarkgl.ShadingLambert
	case quarkgl.ShadingLambert:
		return quarkgl.ShadingFlat
	default:
		return quarkgl.ShadingNormal
	}
}

// Stop makes every later Tick return ErrStopped. It is safe to call from any
// goroutine.
func (l *Loop) Stop() { l.stopped.Store(true) }

// Tick runs one frame: apply pending sizes, populate once the font is ready,
// spin the ornaments, orbit the camera, then render and present.
func (l *Loop) Tick() error {
	if l.stopped.Load() {
		return ErrStopped
	}

	for _, s := range l.pending {
		l.viewport.Apply(s)
	}
	l.pending = l.pending[:0]

	l.pollFont()

	if pop := l.cell.Get(); pop != nil {
		d := quarkgl.Scalar(l.params.Spin)
		step := quarkgl.V3(d, d, d)
		for _, m := range pop.Ornaments {
			m.Rotation = m.Rotation.Add(step)
		}
	}

	l.controls.Target = quarkgl.V3(0, 0, 0)
	l.controls.Update(&l.scene.Camera)

	frame := l.composer.Render(l.renderer, l.scene)
	if l.hud {
		l.drawHUD(frame)
	}
	l.frames++

	if l.out == nil {
		return nil
	}
	if err := l.out.Present(frame); err != nil {
		return fmt.Errorf("stage: present: %w", err)
	}
	return nil
}

func (l *Loop) pollFont() {
	if l.font == nil {
		return
	}
	var res glyph.LoadResult
	select {
	case r, ok := <-l.font:
		l.font = nil
		if !ok {
			return
		}
		res = r
	default:
		return
	}

	if res.Err != nil {
		l.logf("stage: font load failed: %v", res.Err)
		return
	}
	pop, err := Populate(l.scene, res.Font, l.sampler, l.params)
	if err != nil {
		l.logf("stage: populate failed: %v", err)
		return
	}
	l.cell.Set(pop)
	l.logf("stage: populated %d ornaments, %d dust", len(pop.Ornaments), len(pop.Dust))
}

func (l *Loop) logf(format string, args ...any) {
	if l.log == nil {
		return
	}
	l.log.WriteLineString(fmt.Sprintf(format, args...))
}

// Population returns the scene population, or nil before the font has loaded.
func (l *Loop) Population() *Population { return l.cell.Get() }

// Scene returns the rendered scene.
func (l *Loop) Scene() *quarkgl.Scene { return l.scene }

// Controls returns the camera orbit controller.
func (l *Loop) Controls() *quarkgl.OrbitController { return l.controls }

// Viewport returns the viewport manager.
func (l *Loop) Viewport() *Viewport { return l.viewport }

// Renderer returns the scene renderer.
func (l *Loop) Renderer() *quarkgl.Renderer { return l.renderer }

// Frames returns the number of completed ticks.
func (l *Loop) Frames() uint64 { return l.frames }
