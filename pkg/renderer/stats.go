package renderer

import (
	"time"

	"github.com/df07/go-raycaster/pkg/canvas"
)

// RenderStats contains statistics about a finished render
type RenderStats struct {
	TotalPixels      int           // Total number of pixels rendered
	TotalTiles       int           // Number of tiles the image was split into
	Workers          int           // Number of parallel workers used
	Duration         time.Duration // Wall-clock render time
	AverageLuminance float64       // Mean Rec. 709 luminance of the clamped image
}

// add merges the counters of a single tile into the totals
func (s *RenderStats) add(tile RenderStats) {
	s.TotalPixels += tile.TotalPixels
}

// PixelsPerSecond returns the render throughput, or 0 before the render has been timed
func (s RenderStats) PixelsPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.TotalPixels) / s.Duration.Seconds()
}

// CalculateAverageLuminance returns the mean luminance of the canvas with
// each channel clamped to [0, 1]
func CalculateAverageLuminance(c *canvas.Canvas) float64 {
	pixels := c.Width() * c.Height()
	if pixels == 0 {
		return 0
	}

	total := 0.0
	for y := 0; y < c.Height(); y++ {
		for x := 0; x < c.Width(); x++ {
			p := c.PixelAt(x, y).Clamp(0, 1)
			total += 0.2126*p.X + 0.7152*p.Y + 0.0722*p.Z
		}
	}
	return total / float64(pixels)
}
