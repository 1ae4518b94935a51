package renderer

import (
	"math"
	"testing"
	"time"

	"github.com/df07/go-raycaster/pkg/canvas"
	"github.com/df07/go-raycaster/pkg/core"
)

func TestCalculateAverageLuminance(t *testing.T) {
	// Red 0.2126, green 0.7152, blue 0.0722 and black average to 0.25
	c := canvas.New(2, 2)
	c.WritePixel(0, 0, core.NewVec3(1, 0, 0))
	c.WritePixel(1, 0, core.NewVec3(0, 1, 0))
	c.WritePixel(0, 1, core.NewVec3(0, 0, 1))

	if got := CalculateAverageLuminance(c); math.Abs(got-0.25) > 1e-4 {
		t.Errorf("Expected average luminance 0.25, got %f", got)
	}
}

func TestCalculateAverageLuminance_Clamped(t *testing.T) {
	c := canvas.New(1, 1)
	c.WritePixel(0, 0, core.NewVec3(3, 2, 5))

	if got := CalculateAverageLuminance(c); math.Abs(got-1) > 1e-4 {
		t.Errorf("Expected overexposed white to count as 1, got %f", got)
	}
	if got := CalculateAverageLuminance(canvas.New(0, 0)); got != 0 {
		t.Errorf("Expected 0 for an empty canvas, got %f", got)
	}
}

func TestPixelsPerSecond(t *testing.T) {
	stats := RenderStats{TotalPixels: 1000, Duration: 2 * time.Second}
	if got := stats.PixelsPerSecond(); got != 500 {
		t.Errorf("Expected 500 pixels/s, got %f", got)
	}
	if got := (RenderStats{TotalPixels: 10}).PixelsPerSecond(); got != 0 {
		t.Errorf("Expected 0 for an untimed render, got %f", got)
	}
}
