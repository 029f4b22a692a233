package config

import (
	"errors"
	"fmt"
)

var errRange = errors.New("min greater than max")

// Validate checks the values no later stage can recover from. Names that
// refer to parts, actions or normal modes are checked where they are
// resolved.
func (c *Config) Validate() error {
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		return fmt.Errorf("graphics: invalid size %dx%d", c.Graphics.Width, c.Graphics.Height)
	}
	if c.Graphics.FPSLimit < 0 {
		return fmt.Errorf("graphics: negative fps_limit %d", c.Graphics.FPSLimit)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("camera: invalid clip planes near=%g far=%g", c.Camera.Near, c.Camera.Far)
	}
	if c.Camera.FovY <= 0 || c.Camera.FovY >= 180 {
		return fmt.Errorf("camera: fov_y %g out of (0, 180)", c.Camera.FovY)
	}
	if c.Camera.Aspect <= 0 || c.Camera.OrthoExtent <= 0 {
		return fmt.Errorf("camera: aspect and ortho_extent must be positive")
	}
	if c.Input.Rate < 0 {
		return fmt.Errorf("input: negative rate %g", c.Input.Rate)
	}
	if c.Input.TiltDivisor == 0 {
		return fmt.Errorf("input: tilt_divisor must be non-zero")
	}
	ranges := []struct {
		name string
		r    [2]float32
	}{
		{"camera_x", c.Input.CameraX},
		{"camera_y", c.Input.CameraY},
		{"camera_z", c.Input.CameraZ},
		{"look", c.Input.Look},
		{"light_x", c.Input.LightX},
		{"tilt", c.Input.Tilt},
	}
	for _, r := range ranges {
		if r.r[0] > r.r[1] {
			return fmt.Errorf("input: %s: %w", r.name, errRange)
		}
	}
	return nil
}
