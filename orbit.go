package cloudmorph

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// OrbitControl is the camera-orbit collaborator the rig steers. Rotate is
// always honored (the rig is a control source of its own); SetEnabled
// gates the widget's native input so two sources never fight over the
// scene.
type OrbitControl interface {
	SetEnabled(enabled bool)
	Enabled() bool
	Rotate(dAzimuth, dPolar float32)
	Angles() (azimuth, polar float32)
	SetAngles(azimuth, polar float32)
}

// OrbitCamera is a spherical-orbit camera around a fixed target point.
type OrbitCamera struct {
	Target  mgl32.Vec3
	Radius  float32
	azimuth float32
	polar   float32
	enabled bool
}

const polarEpsilon = 0.05

func NewOrbitCamera(radius float32) *OrbitCamera {
	return &OrbitCamera{
		Radius:  radius,
		polar:   math32.Pi / 2,
		enabled: true,
	}
}

func (c *OrbitCamera) SetEnabled(enabled bool) { c.enabled = enabled }
func (c *OrbitCamera) Enabled() bool           { return c.enabled }

func (c *OrbitCamera) Rotate(dAzimuth, dPolar float32) {
	c.SetAngles(c.azimuth+dAzimuth, c.polar+dPolar)
}

func (c *OrbitCamera) Angles() (azimuth, polar float32) {
	return c.azimuth, c.polar
}

func (c *OrbitCamera) SetAngles(azimuth, polar float32) {
	// Keep the polar angle off the poles so the view basis stays sane.
	if polar < polarEpsilon {
		polar = polarEpsilon
	}
	if polar > math32.Pi-polarEpsilon {
		polar = math32.Pi - polarEpsilon
	}
	c.azimuth = azimuth
	c.polar = polar
}

func (c *OrbitCamera) Position() mgl32.Vec3 {
	sinP := math32.Sin(c.polar)
	return mgl32.Vec3{
		c.Target.X() + c.Radius*sinP*math32.Sin(c.azimuth),
		c.Target.Y() + c.Radius*math32.Cos(c.polar),
		c.Target.Z() + c.Radius*sinP*math32.Cos(c.azimuth),
	}
}

func (c *OrbitCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position(), c.Target, mgl32.Vec3{0, 1, 0})
}
