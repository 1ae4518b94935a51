package renderer

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// TileTask represents a tile rendering task for the worker pool
type TileTask struct {
	Tile   *Tile
	TaskID int // Index into the submitted tile slice
}

// TileResult contains the result from rendering a tile
type TileResult struct {
	TaskID int
	Stats  RenderStats
}

// TileFunc renders one tile. It is called concurrently for different tiles.
type TileFunc func(ctx context.Context, tile *Tile) (RenderStats, error)

// WorkerPool runs tile tasks on a fixed number of goroutines
type WorkerPool struct {
	numWorkers int
}

// NewWorkerPool creates a worker pool. numWorkers <= 0 uses one worker per CPU.
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{numWorkers: numWorkers}
}

// NumWorkers returns the number of workers in the pool
func (wp *WorkerPool) NumWorkers() int {
	return wp.numWorkers
}

// Run renders every tile with renderTile and returns the first error, if any.
// onComplete is invoked for each finished tile from the calling goroutine only,
// so it needs no locking. The first failing tile cancels the remaining ones.
func (wp *WorkerPool) Run(ctx context.Context, tiles []*Tile, renderTile TileFunc, onComplete func(TileResult)) error {
	g, ctx := errgroup.WithContext(ctx)
	tasks := make(chan TileTask)
	results := make(chan TileResult, len(tiles))

	g.Go(func() error {
		defer close(tasks)
		for i, tile := range tiles {
			select {
			case tasks <- TileTask{Tile: tile, TaskID: i}:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for i := 0; i < wp.numWorkers; i++ {
		g.Go(func() error {
			for task := range tasks {
				if err := ctx.Err(); err != nil {
					return err
				}
				stats, err := renderTile(ctx, task.Tile)
				if err != nil {
					return fmt.Errorf("tile %d: %w", task.Tile.ID, err)
				}
				results <- TileResult{TaskID: task.TaskID, Stats: stats}
			}
			return nil
		})
	}

	done := make(chan error, 1)
	go func() {
		done <- g.Wait()
		close(results)
	}()

	for result := range results {
		if onComplete != nil {
			onComplete(result)
		}
	}
	return <-done
}
