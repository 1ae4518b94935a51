package canvas

import (
	"image"
	"image/color"
	"math"

	"github.com/df07/go-raycaster/pkg/core"
)

// Canvas is a grid of linear RGB colors addressed as pixels[y][x]
type Canvas struct {
	width  int
	height int
	pixels [][]core.Vec3
}

// New creates a black canvas of width x height pixels
func New(width, height int) *Canvas {
	pixels := make([][]core.Vec3, height)
	for y := range pixels {
		pixels[y] = make([]core.Vec3, width)
	}
	return &Canvas{
		width:  width,
		height: height,
		pixels: pixels,
	}
}

func (c *Canvas) Width() int  { return c.width }
func (c *Canvas) Height() int { return c.height }

// WritePixel sets the color at (x, y). Writes outside the canvas are ignored.
func (c *Canvas) WritePixel(x, y int, rgb core.Vec3) {
	if !c.contains(x, y) {
		return
	}
	c.pixels[y][x] = rgb
}

// PixelAt returns the color at (x, y), or black outside the canvas
func (c *Canvas) PixelAt(x, y int) core.Vec3 {
	if !c.contains(x, y) {
		return core.Vec3{}
	}
	return c.pixels[y][x]
}

func (c *Canvas) contains(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.width && y < c.height
}

// ColorToByte maps a channel value to 0..255, clamping out-of-range values first
func ColorToByte(value float64) uint8 {
	clamped := math.Max(0, math.Min(1, value))
	return uint8(math.Ceil(clamped * 255))
}

// ToRGBA converts a color to an opaque 8-bit pixel
func ToRGBA(colorVec core.Vec3) color.RGBA {
	return color.RGBA{
		R: ColorToByte(colorVec.X),
		G: ColorToByte(colorVec.Y),
		B: ColorToByte(colorVec.Z),
		A: 255,
	}
}

// ToRGBA converts the whole canvas to an image
func (c *Canvas) ToRGBA() *image.RGBA {
	return c.SubImage(image.Rect(0, 0, c.width, c.height))
}

// SubImage copies the pixels inside bounds into a new image whose origin is (0, 0).
// bounds is clipped to the canvas.
func (c *Canvas) SubImage(bounds image.Rectangle) *image.RGBA {
	bounds = bounds.Intersect(image.Rect(0, 0, c.width, c.height))
	img := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			img.SetRGBA(x-bounds.Min.X, y-bounds.Min.Y, ToRGBA(c.pixels[y][x]))
		}
	}
	return img
}
