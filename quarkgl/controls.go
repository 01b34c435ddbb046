package quarkgl

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// OrbitController provides basic orbit/zoom interactions for a camera.
//
// Rotate and Zoom add angular/radial velocity. Each Update applies the velocity
// and, with damping enabled, lets a critically damped spring pull it back to
// zero, so motion eases out instead of stopping dead. AutoRotate spins the
// camera around the target at AutoRotateSpeed (2 means one turn per 30 seconds
// at the configured frame rate).
type OrbitController struct {
	Target Vec3
	Yaw    Scalar
	Pitch  Scalar
	Radius Scalar

	MinRadius Scalar
	MaxRadius Scalar

	EnableDamping   bool
	AutoRotate      bool
	AutoRotateSpeed Scalar

	fps    int
	spring harmonica.Spring

	yawVel, pitchVel, zoomVel    float64
	yawAccel, pitchAccel, zAccel float64
}

const maxPitch = math.Pi/2 - 0.01

// NewOrbitController returns a controller that looks at target from position,
// stepping fps times per second.
func NewOrbitController(position, target Vec3, fps int) *OrbitController {
	if fps <= 0 {
		fps = 60
	}
	off := position.Sub(target)
	r := Len(off)
	c := &OrbitController{
		Target: target,
		Radius: r,
		fps:    fps,
		// Frequency 6, damping ratio 1: critically damped, no overshoot.
		spring:          harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0),
		EnableDamping:   true,
		AutoRotateSpeed: 2,
	}
	if r > 0 {
		c.Yaw = Scalar(math.Atan2(float64(off.X), float64(off.Z)))
		c.Pitch = Scalar(math.Asin(float64(-off.Y / r)))
	}
	return c
}

// Apply positions the camera on the orbit without advancing any state.
func (c *OrbitController) Apply(cam *Camera) {
	if cam == nil {
		return
	}
	r := c.Radius
	if r == 0 {
		r = Scalar(3)
	}
	if c.MinRadius != 0 && r < c.MinRadius {
		r = c.MinRadius
	}
	if c.MaxRadius != 0 && r > c.MaxRadius {
		r = c.MaxRadius
	}

	m := Mat4Mul(Mat4RotateY(c.Yaw), Mat4RotateX(c.Pitch))
	p := Mat4MulV4(m, Vec4{X: 0, Y: 0, Z: r, W: 1})

	cam.Position = c.Target.Add(V3(p.X, p.Y, p.Z))
	cam.Target = c.Target
	if cam.Up == (Vec3{}) {
		cam.Up = V3(0, 1, 0)
	}
}

// Update advances the orbit by one frame and applies it to cam.
func (c *OrbitController) Update(cam *Camera) {
	if c.AutoRotate {
		c.Yaw += Scalar(2 * math.Pi / 60 * float64(c.AutoRotateSpeed) / float64(c.frameRate()))
	}

	c.Yaw += Scalar(c.yawVel)
	c.Pitch += Scalar(c.pitchVel)
	c.Radius += Scalar(c.zoomVel)
	c.clamp()

	if c.EnableDamping {
		c.yawVel, c.yawAccel = c.spring.Update(c.yawVel, c.yawAccel, 0)
		c.pitchVel, c.pitchAccel = c.spring.Update(c.pitchVel, c.pitchAccel, 0)
		c.zoomVel, c.zAccel = c.spring.Update(c.zoomVel, c.zAccel, 0)
	} else {
		c.yawVel, c.pitchVel, c.zoomVel = 0, 0, 0
	}

	c.Apply(cam)
}

func (c *OrbitController) Rotate(deltaYaw, deltaPitch Scalar) {
	c.yawVel += float64(deltaYaw)
	c.pitchVel += float64(deltaPitch)
}

func (c *OrbitController) Zoom(delta Scalar) {
	c.zoomVel += float64(delta)
}

func (c *OrbitController) clamp() {
	if c.Pitch > maxPitch {
		c.Pitch = maxPitch
	}
	if c.Pitch < -maxPitch {
		c.Pitch = -maxPitch
	}
	if c.MinRadius != 0 && c.Radius < c.MinRadius {
		c.Radius = c.MinRadius
	}
	if c.MaxRadius != 0 && c.Radius > c.MaxRadius {
		c.Radius = c.MaxRadius
	}
}

func (c *OrbitController) frameRate() int {
	if c.fps <= 0 {
		return 60
	}
	return c.fps
}
