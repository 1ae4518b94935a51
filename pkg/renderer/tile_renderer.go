package renderer

import (
	"context"
	"fmt"
	"image"

	"github.com/df07/go-raycaster/pkg/canvas"
	"github.com/df07/go-raycaster/pkg/geometry"
)

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID     int             // Unique tile identifier, row-major
	Bounds image.Rectangle // Pixel bounds (x0,y0,x1,y1)
}

// NewTileGrid creates a grid of tiles covering the entire image.
// Tiles on the right and bottom edges are cropped to the image.
func NewTileGrid(width, height, tileSize int) []*Tile {
	var tiles []*Tile
	tileID := 0

	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width)
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, &Tile{ID: tileID, Bounds: image.Rect(x0, y0, x1, y1)})
			tileID++
		}
	}

	return tiles
}

// renderBounds resolves the color of every pixel in bounds, row-major, and writes
// it into c. Concurrent calls are safe as long as their bounds do not overlap.
func renderBounds(ctx context.Context, camera *geometry.Camera, world World, c *canvas.Canvas, bounds image.Rectangle) (RenderStats, error) {
	stats := RenderStats{TotalTiles: 1}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			color, err := world.ColorAt(camera.RayForPixel(x, y))
			if err != nil {
				return stats, fmt.Errorf("pixel (%d, %d): %w", x, y, err)
			}
			c.WritePixel(x, y, color)
			stats.TotalPixels++
		}
	}

	return stats, nil
}
