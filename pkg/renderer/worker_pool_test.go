package renderer

import (
	"context"
	"errors"
	"runtime"
	"sync/atomic"
	"testing"
)

func TestNewWorkerPool_DefaultsToCPUCount(t *testing.T) {
	if got := NewWorkerPool(0).NumWorkers(); got != runtime.NumCPU() {
		t.Errorf("Expected %d workers, got %d", runtime.NumCPU(), got)
	}
	if got := NewWorkerPool(3).NumWorkers(); got != 3 {
		t.Errorf("Expected 3 workers, got %d", got)
	}
}

func TestWorkerPool_RunsEveryTile(t *testing.T) {
	tiles := NewTileGrid(20, 20, 3)
	var rendered atomic.Int64

	renderTile := func(ctx context.Context, tile *Tile) (RenderStats, error) {
		rendered.Add(1)
		return RenderStats{TotalPixels: tile.Bounds.Dx() * tile.Bounds.Dy()}, nil
	}

	seen := make(map[int]bool)
	pixels := 0
	err := NewWorkerPool(4).Run(context.Background(), tiles, renderTile, func(result TileResult) {
		seen[result.TaskID] = true
		pixels += result.Stats.TotalPixels
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if int(rendered.Load()) != len(tiles) || len(seen) != len(tiles) {
		t.Errorf("Expected %d tiles, rendered %d, reported %d", len(tiles), rendered.Load(), len(seen))
	}
	if pixels != 400 {
		t.Errorf("Expected 400 pixels, got %d", pixels)
	}
}

func TestWorkerPool_FirstErrorWins(t *testing.T) {
	tiles := NewTileGrid(16, 16, 4)
	failure := errors.New("tile failed")

	renderTile := func(ctx context.Context, tile *Tile) (RenderStats, error) {
		if tile.ID == 5 {
			return RenderStats{}, failure
		}
		return RenderStats{}, nil
	}

	err := NewWorkerPool(2).Run(context.Background(), tiles, renderTile, nil)
	if !errors.Is(err, failure) {
		t.Errorf("Expected tile failure, got %v", err)
	}
}
