package stage

import (
	"fmt"
	"image"
	"image/color"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

var hudFont = &proggy.TinySZ8pt7b

const hudLine = 10

// rgbaDisplayer draws tinyfont glyphs into an RGBA image.
type rgbaDisplayer struct {
	img *image.RGBA
}

func (d rgbaDisplayer) Size() (x, y int16) {
	b := d.img.Bounds()
	return int16(b.Dx()), int16(b.Dy())
}

func (d rgbaDisplayer) SetPixel(x, y int16, c color.RGBA) {
	if !(image.Point{X: int(x), Y: int(y)}).In(d.img.Bounds()) {
		return
	}
	d.img.SetRGBA(int(x), int(y), c)
}

func (d rgbaDisplayer) Display() error { return nil }

func (l *Loop) hudLines() []string {
	st := l.renderer.Stats
	state := "loading font"
	if pop := l.cell.Get(); pop != nil {
		state = fmt.Sprintf("%d ornaments %d dust", len(pop.Ornaments), len(pop.Dust))
	} else if l.font == nil {
		state = "no font"
	}
	return []string{
		fmt.Sprintf("%s  %s", l.params.Text, state),
		fmt.Sprintf("tris %d/%d  frame %d", st.Drawn, st.Triangles, l.frames),
		"arrows orbit  +/- zoom  w wire  s shade  q quit",
	}
}

func (l *Loop) drawHUD(frame *image.RGBA) {
	d := rgbaDisplayer{img: frame}
	fg := color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	for i, s := range l.hudLines() {
		tinyfont.WriteLine(d, hudFont, 2, int16(hudLine*(i+1)), s, fg)
	}
}
