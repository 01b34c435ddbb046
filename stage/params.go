// Package stage assembles the decorative scene: extruded text surrounded by
// dust and ornaments, a viewport that follows the host surface, and the
// per-frame loop that spins the ornaments and orbits the camera.
package stage

import (
	"fmt"
	"math/rand/v2"

	"kate/glyph"
	"kate/scatter"
)

// Params holds every tunable of the scene. DefaultParams returns the stock
// scene; a config file may override any field.
type Params struct {
	Text          string  `yaml:"text"`
	TextSize      float64 `yaml:"text_size"`
	TextDepth     float64 `yaml:"text_depth"`
	CurveSegments int     `yaml:"curve_segments"`

	BevelThickness float64 `yaml:"bevel_thickness"`
	BevelSize      float64 `yaml:"bevel_size"`
	BevelOffset    float64 `yaml:"bevel_offset"`
	BevelSegments  int     `yaml:"bevel_segments"`

	// CenterEpsilon is subtracted from the text's maximum corner before
	// centering, absorbing the bevel's overhang.
	CenterEpsilon [3]float64 `yaml:"center_epsilon"`

	HalfWidth      float64    `yaml:"half_width"`
	ExclusionUnit  float64    `yaml:"exclusion_unit"`
	ExclusionScale [3]float64 `yaml:"exclusion_scale"`

	Ornaments     int     `yaml:"ornaments"`
	OrnamentScale float64 `yaml:"ornament_scale"`
	Dust          int     `yaml:"dust"`
	DustScale     float64 `yaml:"dust_scale"`

	// Spin is added to each Euler angle of every ornament per frame, in radians.
	Spin float64 `yaml:"spin"`

	Hue        float64 `yaml:"hue"`
	Saturation float64 `yaml:"saturation"`

	FOV             float64    `yaml:"fov"`
	Near            float64    `yaml:"near"`
	Far             float64    `yaml:"far"`
	CameraPosition  [3]float64 `yaml:"camera_position"`
	AutoRotateSpeed float64    `yaml:"auto_rotate_speed"`
	MaxPixelRatio   float64    `yaml:"max_pixel_ratio"`
}

// DefaultParams returns the stock scene.
func DefaultParams() Params {
	return Params{
		Text:          "kate",
		TextSize:      0.5,
		TextDepth:     0.2,
		CurveSegments: 64,

		BevelThickness: 0.03,
		BevelSize:      0.02,
		BevelOffset:    0,
		BevelSegments:  5,

		CenterEpsilon: [3]float64{0.02, 0.02, 0.03},

		HalfWidth:      6,
		ExclusionUnit:  0.25,
		ExclusionScale: [3]float64{6, 2, 1},

		Ornaments:     500,
		OrnamentScale: 0.5,
		Dust:          4000,
		DustScale:     0.019,

		Spin: 0.005,

		Hue:        0.55,
		Saturation: 0,

		FOV:             75,
		Near:            0.1,
		Far:             100,
		CameraPosition:  [3]float64{1, 1, 2},
		AutoRotateSpeed: 2,
		MaxPixelRatio:   2,
	}
}

// Validate checks the parameters that would otherwise fail late.
func (p Params) Validate() error {
	switch {
	case p.Text == "":
		return fmt.Errorf("stage: empty text")
	case p.Ornaments < 0 || p.Dust < 0:
		return fmt.Errorf("stage: negative object count")
	case p.OrnamentScale < 0 || p.DustScale < 0:
		return fmt.Errorf("stage: negative scale")
	case p.Near <= 0 || p.Far <= p.Near:
		return fmt.Errorf("stage: invalid clip planes %v..%v", p.Near, p.Far)
	case p.FOV <= 0 || p.FOV >= 180:
		return fmt.Errorf("stage: invalid fov %v", p.FOV)
	}
	return nil
}

// Exclusion returns the box kept free for the text.
func (p Params) Exclusion() scatter.Bounds {
	s := p.ExclusionScale
	return scatter.Exclusion(p.ExclusionUnit, s[0], s[1], s[2])
}

// NewSampler returns a point sampler for the placement cube and exclusion box.
func (p Params) NewSampler(src rand.Source) (*scatter.Sampler, error) {
	return scatter.NewSampler(src, p.HalfWidth, p.Exclusion())
}

func (p Params) textOptions() glyph.TextOptions {
	return glyph.TextOptions{
		Size:          p.TextSize,
		CurveSegments: p.CurveSegments,
		ExtrudeOptions: glyph.ExtrudeOptions{
			Depth:          p.TextDepth,
			BevelEnabled:   true,
			BevelThickness: p.BevelThickness,
			BevelSize:      p.BevelSize,
			BevelOffset:    p.BevelOffset,
			BevelSegments:  p.BevelSegments,
		},
	}
}

// meshCount is the number of scene slots a population needs.
func (p Params) meshCount() int { return 1 + p.Dust + p.Ornaments }
