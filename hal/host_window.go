//go:build cgo

package hal

import (
	"context"
	"errors"
	"image"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
)

// WindowConfig controls the desktop window runner.
type WindowConfig struct {
	Title  string
	Width  int
	Height int
	TPS    int
}

// RunWindow starts a desktop window that displays the framebuffer and forwards keyboard input.
// Window size changes are published on Display().Sizes(). It blocks until the
// window closes, ctx is cancelled or step returns an error; ErrStopped ends it
// cleanly.
func RunWindow(ctx context.Context, newApp func(HAL) func() error, cfg WindowConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = 800, 600
	}
	if cfg.TPS <= 0 {
		cfg.TPS = 60
	}
	kbd := newHostKeyboard()
	h := newHost(cfg.Width, cfg.Height, os.Stdout, kbd)
	step := newApp(h)

	g := &hostGame{ctx: ctx, h: h, kbd: kbd, step: step}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.TPS)
	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

type hostGame struct {
	ctx   context.Context
	h     *hostHAL
	kbd   *hostKeyboard
	img   *image.RGBA
	fbImg *ebiten.Image
	step  func() error
}

func (g *hostGame) Update() error {
	g.kbd.poll()
	done, err := runStep(g.ctx, g.step)
	if err != nil {
		return err
	}
	if done {
		return ebiten.Termination
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	g.img = g.h.fb.snapshot(g.img)
	w, h := g.img.Bounds().Dx(), g.img.Bounds().Dy()
	if g.fbImg == nil || g.fbImg.Bounds().Dx() != w || g.fbImg.Bounds().Dy() != h {
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(w, h)
	}
	g.fbImg.WritePixels(g.img.Pix)

	// Stretch the software frame over the whole screen.
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(sw)/float64(w), float64(sh)/float64(h))
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(g.fbImg, op)
}

// Layout reports every change of the outside size as a SurfaceSize. The screen
// keeps the window's logical size; Draw scales the framebuffer onto it.
func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	ratio := 1.0
	if m := ebiten.Monitor(); m != nil {
		ratio = m.DeviceScaleFactor()
	}
	g.h.sizes.emit(SurfaceSize{Width: outsideWidth, Height: outsideHeight, PixelRatio: ratio})
	return outsideWidth, outsideHeight
}
