package quarkgl

// Color is an RGBA color in 8-bit channels.
type Color struct {
	R, G, B, A uint8
}

func RGB(r, g, b uint8) Color     { return Color{R: r, G: g, B: b, A: 0xFF} }
func RGBA(r, g, b, a uint8) Color { return Color{R: r, G: g, B: b, A: a} }

// MulScalar scales the color channels by s, clamped to 0..1.
func (c Color) MulScalar(s Scalar) Color {
	t := uint32(Clamp01(s) * 255)
	mul := func(ch uint8) uint8 {
		return uint8((uint32(ch) * t) / 255)
	}
	return Color{R: mul(c.R), G: mul(c.G), B: mul(c.B), A: c.A}
}

// NormalColor maps a unit normal to a color: each axis in -1..1 becomes 0..255.
func NormalColor(n Vec3) Color {
	ch := func(v Scalar) uint8 {
		return uint8(Clamp01(v*0.5+0.5)*255 + 0.5)
	}
	return Color{R: ch(n.X), G: ch(n.Y), B: ch(n.Z), A: 0xFF}
}
