package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/df07/go-raycaster/pkg/canvas"
	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/geometry"
	"github.com/df07/go-raycaster/pkg/renderer"
	"github.com/df07/go-raycaster/pkg/scene"
	"github.com/df07/go-raycaster/pkg/watcher"
)

var (
	renderScene      string
	renderWidth      int
	renderHeight     int
	renderWorkers    int
	renderTileSize   int
	renderFormat     string
	renderOutput     string
	renderSequential bool
	renderWatch      bool
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a scene to an image file",
	Long: `Render a built-in scene, a "yaml:<name>" scene from the scenes directory,
or a YAML scene file. Output is saved to output/<scene>/render_<timestamp>.<ext>
unless --output is given.`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	defaults := renderer.DefaultRenderConfig()
	renderCmd.Flags().StringVarP(&renderScene, "scene", "s", "default", "Scene name, yaml:<name> or path to a .yaml file")
	renderCmd.Flags().IntVar(&renderWidth, "width", 0, "Image width in pixels (0 = scene default)")
	renderCmd.Flags().IntVar(&renderHeight, "height", 0, "Image height in pixels (0 = scene default)")
	renderCmd.Flags().IntVarP(&renderWorkers, "workers", "w", defaults.NumWorkers, "Number of parallel workers (0 = CPU count)")
	renderCmd.Flags().IntVar(&renderTileSize, "tile-size", defaults.TileSize, "Tile size in pixels for parallel rendering")
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", string(canvas.FormatPNG), "Output format: png, ppm, ppm6 or bmp")
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "Output file (format taken from its extension unless --format is set)")
	renderCmd.Flags().BoolVar(&renderSequential, "sequential", false, "Render on a single goroutine in row-major order")
	renderCmd.Flags().BoolVar(&renderWatch, "watch", false, "Re-render whenever the YAML scene file changes")
}

// renderOptions holds the parsed render flags
type renderOptions struct {
	sceneType  string
	overrides  geometry.CameraConfig
	config     renderer.RenderConfig
	format     canvas.Format
	output     string
	sequential bool
}

func runRender(cmd *cobra.Command, args []string) error {
	if renderWidth < 0 || renderHeight < 0 {
		return fmt.Errorf("width and height must not be negative")
	}
	if renderTileSize <= 0 {
		return fmt.Errorf("tile size must be positive, got %d", renderTileSize)
	}

	format, err := resolveFormat(renderFormat, cmd.Flags().Changed("format"), renderOutput)
	if err != nil {
		return err
	}

	opts := renderOptions{
		sceneType:  renderScene,
		overrides:  geometry.CameraConfig{Width: renderWidth, Height: renderHeight},
		config:     renderer.RenderConfig{TileSize: renderTileSize, NumWorkers: renderWorkers},
		format:     format,
		output:     renderOutput,
		sequential: renderSequential,
	}

	logger := renderer.NewDefaultLogger()
	if _, err := renderToFile(cmd.Context(), opts, logger); err != nil {
		return err
	}

	if renderWatch {
		return watchAndRender(cmd.Context(), opts, logger)
	}
	return nil
}

// resolveFormat prefers an explicit --format, then the output file extension
func resolveFormat(name string, explicit bool, output string) (canvas.Format, error) {
	if output != "" && !explicit {
		return canvas.FormatFromPath(output)
	}
	return canvas.FormatFromName(name)
}

// renderToFile renders the scene once and saves it, returning the file written
func renderToFile(ctx context.Context, opts renderOptions, logger core.Logger) (string, error) {
	selectedScene, err := createScene(opts.sceneType, opts.overrides)
	if err != nil {
		return "", err
	}
	logger.Printf("Rendering scene %q at %dx%d...\n", selectedScene.Name, selectedScene.Camera.HSize(), selectedScene.Camera.VSize())

	startTime := time.Now()
	var img *canvas.Canvas
	if opts.sequential {
		img, err = renderer.Render(selectedScene.Camera, selectedScene.World)
		if err == nil {
			logger.Printf("Render completed in %v\n", time.Since(startTime))
		}
	} else {
		rt := renderer.NewRaytracer(selectedScene.Camera, selectedScene.World, opts.config, logger)
		img, _, err = rt.Render(ctx, nil)
	}
	if err != nil {
		return "", err
	}

	filename := opts.output
	if filename == "" {
		outputDir := createOutputDir(opts.sceneType)
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return "", fmt.Errorf("error creating output directory: %w", err)
		}
		timestamp := time.Now().Format("20060102_150405")
		filename = filepath.Join(outputDir, fmt.Sprintf("render_%s%s", timestamp, opts.format.Extension()))
	}

	if err := canvas.SaveFileAs(filename, img, opts.format); err != nil {
		return "", err
	}
	logger.Printf("Render saved as %s\n", filename)
	return filename, nil
}

// watchAndRender re-renders each time the scene file changes, until interrupted
func watchAndRender(ctx context.Context, opts renderOptions, logger core.Logger) error {
	path, err := scene.ResolveSceneFile(opts.sceneType)
	if err != nil {
		return fmt.Errorf("--watch needs a YAML scene: %w", err)
	}

	sw, err := watcher.New(200*time.Millisecond, logger)
	if err != nil {
		return err
	}
	defer sw.Close()

	changes := make(chan struct{}, 1)
	err = sw.Watch(path, func(string) {
		select {
		case changes <- struct{}{}:
		default:
		}
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	logger.Printf("Watching %s for changes (Ctrl+C to stop)...\n", path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-changes:
			// A broken edit is reported and the watch continues
			if _, err := renderToFile(ctx, opts, logger); err != nil {
				logger.Printf("Render failed: %v\n", err)
			}
		}
	}
}
