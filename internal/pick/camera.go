// Package pick holds the interactive view layer of the simulation:
// an orbit camera, screen-to-world rays with box hit testing, and the
// constraint-drag bridge that turns pointer input into a physics
// coupling.
package pick

import (
	"math"

	"github.com/san-kum/towerlab/internal/phys"
)

// Camera is a damped orbit camera around a target point. Input
// adjusts goal angles; Update eases the actual angles toward them
// every tick.
type Camera struct {
	Target phys.Vec3
	FOV    float64
	// Damping is the per-second approach rate toward orbit goals.
	Damping float64

	azimuth, elevation, distance             float64
	goalAzimuth, goalElevation, goalDistance float64
}

func NewCamera(target phys.Vec3, distance float64) *Camera {
	c := &Camera{
		Target:  target,
		FOV:     math.Pi / 4,
		Damping: 8,
	}
	c.azimuth, c.goalAzimuth = 0.5, 0.5
	c.elevation, c.goalElevation = 0.25, 0.25
	c.distance, c.goalDistance = distance, distance
	return c
}

// Orbit adjusts the goal azimuth and elevation.
func (c *Camera) Orbit(dAzimuth, dElevation float64) {
	c.goalAzimuth += dAzimuth
	c.goalElevation = phys.Clamp(c.goalElevation+dElevation, -1.45, 1.45)
}

// Dolly scales the goal distance.
func (c *Camera) Dolly(factor float64) {
	c.goalDistance = phys.Clamp(c.goalDistance*factor, 1, 200)
}

// Update eases the camera toward its orbit goals.
func (c *Camera) Update(dt float64) {
	k := 1 - math.Exp(-c.Damping*dt)
	c.azimuth += (c.goalAzimuth - c.azimuth) * k
	c.elevation += (c.goalElevation - c.elevation) * k
	c.distance += (c.goalDistance - c.distance) * k
}

// Position returns the camera's world position on its orbit sphere.
func (c *Camera) Position() phys.Vec3 {
	ce := math.Cos(c.elevation)
	return c.Target.Add(phys.Vec3{
		X: c.distance * ce * math.Sin(c.azimuth),
		Y: c.distance * math.Sin(c.elevation),
		Z: c.distance * ce * math.Cos(c.azimuth),
	})
}

// Forward returns the unit view direction.
func (c *Camera) Forward() phys.Vec3 {
	return c.Target.Sub(c.Position()).Normalize()
}

func (c *Camera) basis() (right, up, forward phys.Vec3) {
	forward = c.Forward()
	right = forward.Cross(phys.Vec3{Y: 1}).Normalize()
	if right.LengthSq() == 0 {
		right = phys.Vec3{X: 1}
	}
	up = right.Cross(forward)
	return right, up, forward
}

// ScreenRay builds a world ray through the pixel (px, py) of a w-by-h
// viewport, with the usual top-left origin.
func (c *Camera) ScreenRay(px, py, w, h float64) Ray {
	right, up, forward := c.basis()
	tanF := math.Tan(c.FOV / 2)
	aspect := w / h

	nx := (2*px/w - 1) * tanF * aspect
	ny := (1 - 2*py/h) * tanF

	dir := forward.Add(right.Scale(nx)).Add(up.Scale(ny)).Normalize()
	return Ray{Origin: c.Position(), Dir: dir}
}

// Project maps a world point to viewport pixels. ok is false behind
// the camera. depth is the forward distance, for painter sorting.
func (c *Camera) Project(p phys.Vec3, w, h float64) (px, py, depth float64, ok bool) {
	right, up, forward := c.basis()
	d := p.Sub(c.Position())
	z := d.Dot(forward)
	if z <= 1e-6 {
		return 0, 0, 0, false
	}
	tanF := math.Tan(c.FOV / 2)
	aspect := w / h

	x := d.Dot(right) / (z * tanF * aspect)
	y := d.Dot(up) / (z * tanF)
	return (x + 1) / 2 * w, (1 - y) / 2 * h, z, true
}
