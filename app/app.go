package app

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math/rand/v2"

	"kate/glyph"
	"kate/hal"
	"kate/stage"
)

// Config selects the scene parameters and runtime knobs.
type Config struct {
	Params stage.Params
	// Font is a TrueType/OpenType path; empty selects the embedded font.
	Font    string
	Seed    uint64
	FPS     int
	Workers int
	Scale   float64
	HUD     bool
}

type system struct {
	h    hal.HAL
	loop *stage.Loop
	keys <-chan hal.KeyEvent
}

// New wires the scene to h and returns the per-frame step function. The font
// starts loading immediately; the scene fills in once it is ready.
func New(ctx context.Context, h hal.HAL, cfg Config) func() error {
	s, err := newSystem(ctx, h, cfg)
	if err != nil {
		logLine(h, fmt.Sprintf("app: %v", err))
		return func() error { return err }
	}
	return s.step
}

func newSystem(ctx context.Context, h hal.HAL, cfg Config) (*system, error) {
	if err := cfg.Params.Validate(); err != nil {
		return nil, err
	}
	sampler, err := cfg.Params.NewSampler(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
	if err != nil {
		return nil, err
	}

	var out stage.Output
	if d := h.Display(); d != nil && d.Framebuffer() != nil {
		out = fbOutput{fb: d.Framebuffer()}
	}
	var log stage.Logger
	if l := h.Logger(); l != nil {
		log = l
	}

	s := &system{h: h}
	s.loop = stage.NewLoop(stage.LoopConfig{
		Params:  cfg.Params,
		Sampler: sampler,
		Font:    glyph.LoadAsync(ctx, cfg.Font),
		Output:  out,
		Logger:  log,
		FPS:     cfg.FPS,
		Workers: cfg.Workers,
		Scale:   cfg.Scale,
		HUD:     cfg.HUD,
	})
	if in := h.Input(); in != nil && in.Keyboard() != nil {
		s.keys = in.Keyboard().Events()
	}
	return s, nil
}

func (s *system) step() (err error) {
	defer s.recoverPanic(&err)

	s.drainSizes()
	s.drainKeys()
	if err := s.loop.Tick(); err != nil {
		if errors.Is(err, stage.ErrStopped) {
			return hal.ErrStopped
		}
		return err
	}
	return nil
}

func (s *system) drainSizes() {
	d := s.h.Display()
	if d == nil {
		return
	}
	for {
		select {
		case sz := <-d.Sizes():
			s.loop.Resize(stage.Size{Width: sz.Width, Height: sz.Height, PixelRatio: sz.PixelRatio})
		default:
			return
		}
	}
}

func (s *system) drainKeys() {
	if s.keys == nil {
		return
	}
	for {
		select {
		case ev := <-s.keys:
			if a := actionFor(ev); a != stage.ActionNone {
				s.loop.Handle(a)
			}
		default:
			return
		}
	}
}

// actionFor maps a key press to a scene action. Releases do nothing.
func actionFor(ev hal.KeyEvent) stage.Action {
	if !ev.Press {
		return stage.ActionNone
	}
	switch ev.Code {
	case hal.KeyLeft:
		return stage.ActionOrbitLeft
	case hal.KeyRight:
		return stage.ActionOrbitRight
	case hal.KeyUp:
		return stage.ActionOrbitUp
	case hal.KeyDown:
		return stage.ActionOrbitDown
	case hal.KeyEscape:
		return stage.ActionQuit
	}
	switch ev.Rune {
	case 'q', 'Q':
		return stage.ActionQuit
	case '+', '=':
		return stage.ActionZoomIn
	case '-', '_':
		return stage.ActionZoomOut
	case 'w', 'W':
		return stage.ActionToggleWireframe
	case 'h', 'H':
		return stage.ActionToggleHUD
	case 's', 'S':
		return stage.ActionCycleShading
	}
	return stage.ActionNone
}

// fbOutput presents frames on a HAL framebuffer.
type fbOutput struct {
	fb hal.Framebuffer
}

func (o fbOutput) Resize(w, h int) { o.fb.Resize(w, h) }

func (o fbOutput) Present(frame *image.RGBA) error {
	o.fb.Blit(frame)
	return o.fb.Present()
}

func logLine(h hal.HAL, s string) {
	if l := h.Logger(); l != nil {
		l.WriteLineString(s)
	}
}
