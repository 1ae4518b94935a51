package renderer

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/df07/go-raycaster/pkg/canvas"
	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/geometry"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// World resolves the color seen along a ray. It must be safe for concurrent use.
type World interface {
	ColorAt(ray core.Ray) (core.Vec3, error)
}

// Render fills a canvas the size of the camera, one pixel at a time in row-major order
func Render(camera *geometry.Camera, world World) (*canvas.Canvas, error) {
	c := canvas.New(camera.HSize(), camera.VSize())
	bounds := image.Rect(0, 0, camera.HSize(), camera.VSize())
	if _, err := renderBounds(context.Background(), camera, world, c, bounds); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return c, nil
}

// RenderConfig contains configuration for parallel rendering
type RenderConfig struct {
	TileSize   int // Size of each square tile in pixels
	NumWorkers int // Number of parallel workers (0 = use CPU count)
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		TileSize:   32,
		NumWorkers: 0,
	}
}

// TileCompletionResult contains information about a completed tile for callbacks
type TileCompletionResult struct {
	TileX     int // Tile coordinates (not pixel coordinates)
	TileY     int
	Bounds    image.Rectangle // Pixel bounds of the tile
	TileImage *image.RGBA     // Image data for just this tile

	// Progress information
	TileNumber int // Completion order (1-based)
	TotalTiles int // Total number of tiles in the image
}

// Raytracer renders a camera view of a world in parallel tiles
type Raytracer struct {
	camera     *geometry.Camera
	world      World
	config     RenderConfig
	workerPool *WorkerPool
	logger     core.Logger
}

// NewRaytracer creates a parallel renderer. A nil logger discards output.
func NewRaytracer(camera *geometry.Camera, world World, config RenderConfig, logger core.Logger) *Raytracer {
	if config.TileSize <= 0 {
		config.TileSize = DefaultRenderConfig().TileSize
	}
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Raytracer{
		camera:     camera,
		world:      world,
		config:     config,
		workerPool: NewWorkerPool(config.NumWorkers),
		logger:     logger,
	}
}

// Render splits the image into tiles and renders them on the worker pool.
// Each worker writes a disjoint region of the canvas, so the canvas needs no locking.
// tileCallback, if non-nil, is called once per finished tile from a single goroutine.
func (rt *Raytracer) Render(ctx context.Context, tileCallback func(TileCompletionResult)) (*canvas.Canvas, RenderStats, error) {
	startTime := time.Now()
	width, height := rt.camera.HSize(), rt.camera.VSize()
	c := canvas.New(width, height)
	tiles := NewTileGrid(width, height, rt.config.TileSize)

	rt.logger.Printf("Rendering %dx%d in %d tiles (using %d workers)...\n",
		width, height, len(tiles), rt.workerPool.NumWorkers())

	stats := RenderStats{
		TotalTiles: len(tiles),
		Workers:    rt.workerPool.NumWorkers(),
	}

	renderTile := func(ctx context.Context, tile *Tile) (RenderStats, error) {
		return renderBounds(ctx, rt.camera, rt.world, c, tile.Bounds)
	}

	completed := 0
	onComplete := func(result TileResult) {
		completed++
		stats.add(result.Stats)

		if tileCallback == nil {
			return
		}
		tile := tiles[result.TaskID]
		tileCallback(TileCompletionResult{
			TileX:      tile.Bounds.Min.X / rt.config.TileSize,
			TileY:      tile.Bounds.Min.Y / rt.config.TileSize,
			Bounds:     tile.Bounds,
			TileImage:  c.SubImage(tile.Bounds),
			TileNumber: completed,
			TotalTiles: len(tiles),
		})
	}

	if err := rt.workerPool.Run(ctx, tiles, renderTile, onComplete); err != nil {
		rt.logger.Printf("Render failed after %d of %d tiles: %v\n", completed, len(tiles), err)
		return nil, RenderStats{}, fmt.Errorf("render: %w", err)
	}

	stats.Duration = time.Since(startTime)
	stats.AverageLuminance = CalculateAverageLuminance(c)
	rt.logger.Printf("Render completed in %v (%.0f pixels/s)\n", stats.Duration, stats.PixelsPerSecond())

	return c, stats, nil
}
