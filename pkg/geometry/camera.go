package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-raycaster/pkg/core"
)

// CameraConfig describes a camera by resolution, field of view and placement
type CameraConfig struct {
	Width       int       // Horizontal size in pixels
	Height      int       // Vertical size in pixels
	FieldOfView float64   // Horizontal or vertical field of view in degrees, whichever side is longer
	From        core.Vec3 // Eye position
	To          core.Vec3 // Point the camera looks at
	Up          core.Vec3 // Approximate up direction
}

// DefaultCameraConfig returns the camera used by the showcase scene
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Width:       700,
		Height:      500,
		FieldOfView: 60,
		From:        core.NewVec3(0, 1.5, -5),
		To:          core.NewVec3(0, 1, 0),
		Up:          core.NewVec3(0, 1, 0),
	}
}

// MergeCameraConfig returns base with every non-zero field of override applied
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	if override.Width != 0 {
		result.Width = override.Width
	}
	if override.Height != 0 {
		result.Height = override.Height
	}
	if override.FieldOfView != 0 {
		result.FieldOfView = override.FieldOfView
	}
	if override.From != (core.Vec3{}) {
		result.From = override.From
	}
	if override.To != (core.Vec3{}) {
		result.To = override.To
	}
	if override.Up != (core.Vec3{}) {
		result.Up = override.Up
	}
	return result
}

// Camera maps pixels onto a canvas one unit in front of the eye
type Camera struct {
	hsize       int
	vsize       int
	fieldOfView float64
	transform   core.Matrix
	inverse     core.Matrix
	halfWidth   float64
	halfHeight  float64
	pixelSize   float64
}

// NewCamera creates a camera of hsize x vsize pixels with fieldOfView in radians.
// transform is the view transform, usually from core.ViewTransform.
func NewCamera(hsize, vsize int, fieldOfView float64, transform core.Matrix) (*Camera, error) {
	if hsize <= 0 || vsize <= 0 {
		return nil, fmt.Errorf("camera size must be positive, got %dx%d", hsize, vsize)
	}
	if fieldOfView <= 0 || fieldOfView >= math.Pi {
		return nil, fmt.Errorf("camera field of view must be between 0 and pi radians, got %g", fieldOfView)
	}

	inverse, err := transform.Inverse()
	if err != nil {
		return nil, fmt.Errorf("camera view transform: %w", err)
	}

	c := &Camera{
		hsize:       hsize,
		vsize:       vsize,
		fieldOfView: fieldOfView,
		transform:   transform,
		inverse:     inverse,
	}

	halfView := math.Tan(fieldOfView / 2)
	aspect := float64(hsize) / float64(vsize)
	if aspect >= 1 {
		c.halfWidth = halfView
		c.halfHeight = halfView / aspect
	} else {
		c.halfWidth = halfView * aspect
		c.halfHeight = halfView
	}
	c.pixelSize = c.halfWidth * 2 / float64(hsize)

	return c, nil
}

// NewCameraFromConfig builds the view transform from config and creates the camera
func NewCameraFromConfig(config CameraConfig) (*Camera, error) {
	view := core.ViewTransform(config.From, config.To, config.Up)
	return NewCamera(config.Width, config.Height, core.Radians(config.FieldOfView), view)
}

func (c *Camera) HSize() int             { return c.hsize }
func (c *Camera) VSize() int             { return c.vsize }
func (c *Camera) FieldOfView() float64   { return c.fieldOfView }
func (c *Camera) PixelSize() float64     { return c.pixelSize }
func (c *Camera) Transform() core.Matrix { return c.transform }

// RayForPixel returns the world-space ray through the center of pixel (px, py)
func (c *Camera) RayForPixel(px, py int) core.Ray {
	xOffset := (float64(px) + 0.5) * c.pixelSize
	yOffset := (float64(py) + 0.5) * c.pixelSize

	// The camera looks down -z, so +x is to the left
	worldX := c.halfWidth - xOffset
	worldY := c.halfHeight - yOffset

	pixel := c.inverse.MultiplyPoint(core.NewVec3(worldX, worldY, -1))
	origin := c.inverse.MultiplyPoint(core.Vec3{})
	direction := pixel.Subtract(origin).Normalize()

	return core.NewRay(origin, direction)
}
