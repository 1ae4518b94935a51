package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"log"
	"net/http"
	"time"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/renderer"
)

// TileUpdate represents a single finished tile sent via SSE
type TileUpdate struct {
	TileX      int    `json:"tileX"`      // Tile column
	TileY      int    `json:"tileY"`      // Tile row
	PixelX     int    `json:"pixelX"`     // Left edge of the tile in pixels
	PixelY     int    `json:"pixelY"`     // Top edge of the tile in pixels
	Width      int    `json:"width"`      // Tile width in pixels
	Height     int    `json:"height"`     // Tile height in pixels
	ImageData  string `json:"imageData"`  // Base64 encoded PNG of just this tile
	TileNumber int    `json:"tileNumber"` // Completion order (1-based)
	TotalTiles int    `json:"totalTiles"` // Total number of tiles in the image
}

// RenderComplete is the final event of a successful render
type RenderComplete struct {
	Scene            string  `json:"scene"`
	Width            int     `json:"width"`
	Height           int     `json:"height"`
	ShapeCount       int     `json:"shapeCount"`
	TotalPixels      int     `json:"totalPixels"`
	TotalTiles       int     `json:"totalTiles"`
	Workers          int     `json:"workers"`
	ElapsedMs        int64   `json:"elapsedMs"`
	AverageLuminance float64 `json:"averageLuminance"`
}

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "console", "tile", "error", "complete"
	Data string `json:"data"` // JSON-encoded data
}

// handleRender renders a scene tile by tile, streaming each finished tile via SSE
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	s.setSSEHeaders(w)

	ctx := r.Context()

	// Only the writer goroutine touches w. It must finish before the handler returns.
	sseEventChan := make(chan SSEEvent, 100)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writeSSEEvents(ctx, w, sseEventChan)
	}()
	defer func() {
		close(sseEventChan)
		<-writerDone
	}()

	req, err := s.parseRenderRequest(r)
	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	consoleChan, webLogger := s.setupConsoleLogging()
	consoleDone := make(chan struct{})
	go func() {
		defer close(consoleDone)
		s.streamConsoleMessages(ctx, consoleChan, sseEventChan)
	}()

	complete, err := s.render(ctx, req, webLogger, sseEventChan)

	// The renderer has returned, so nothing logs to consoleChan any more
	close(consoleChan)
	<-consoleDone

	if err != nil {
		s.handleError(ctx, sseEventChan, err.Error())
		return
	}
	s.sendEvent(ctx, sseEventChan, "complete", complete)
}

// render builds the scene and runs the parallel renderer, forwarding tiles as they finish
func (s *Server) render(ctx context.Context, req *RenderRequest, logger core.Logger, sseEventChan chan<- SSEEvent) (RenderComplete, error) {
	sceneObj, err := s.createScene(&req.SceneRequest)
	if err != nil {
		return RenderComplete{}, err
	}

	logger.Printf("Rendering scene %q\n", sceneObj.Name)
	rt := renderer.NewRaytracer(sceneObj.Camera, sceneObj.World, req.renderConfig(), logger)

	startTime := time.Now()
	_, stats, err := rt.Render(ctx, func(result renderer.TileCompletionResult) {
		s.handleTileUpdate(ctx, sseEventChan, result)
	})
	if err != nil {
		return RenderComplete{}, err
	}

	return RenderComplete{
		Scene:            req.Scene,
		Width:            sceneObj.Camera.HSize(),
		Height:           sceneObj.Camera.VSize(),
		ShapeCount:       len(sceneObj.World.Shapes),
		TotalPixels:      stats.TotalPixels,
		TotalTiles:       stats.TotalTiles,
		Workers:          stats.Workers,
		ElapsedMs:        time.Since(startTime).Milliseconds(),
		AverageLuminance: stats.AverageLuminance,
	}, nil
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// setupConsoleLogging creates console channel and web logger for a render
func (s *Server) setupConsoleLogging() (chan ConsoleMessage, core.Logger) {
	consoleChan := make(chan ConsoleMessage, 50)
	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	return consoleChan, NewWebLogger(renderID, consoleChan)
}

// writeSSEEvents writes every SSE event from a single goroutine until the channel closes.
// After a failed write the remaining events are drained so senders never block.
func (s *Server) writeSSEEvents(ctx context.Context, w http.ResponseWriter, sseEventChan <-chan SSEEvent) {
	disconnected := false
	for {
		select {
		case event, ok := <-sseEventChan:
			if !ok {
				return
			}
			if disconnected {
				continue
			}
			if err := writeSSEEvent(w, event); err != nil {
				disconnected = true
			}
		case <-ctx.Done():
			return
		}
	}
}

// writeSSEEvent writes one event and flushes it to the client
func writeSSEEvent(w http.ResponseWriter, event SSEEvent) error {
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
		return err
	}
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
	return nil
}

// streamConsoleMessages forwards console messages until consoleChan closes.
// Messages are dropped rather than stalling when the event channel is full.
func (s *Server) streamConsoleMessages(ctx context.Context, consoleChan <-chan ConsoleMessage, sseEventChan chan<- SSEEvent) {
	for consoleMsg := range consoleChan {
		data, err := json.Marshal(consoleMsg)
		if err != nil {
			log.Printf("Error marshaling console message: %v", err)
			continue
		}

		select {
		case sseEventChan <- SSEEvent{Type: "console", Data: string(data)}:
		case <-ctx.Done():
			return
		default:
		}
	}
}

// handleTileUpdate encodes a finished tile and queues it for the client
func (s *Server) handleTileUpdate(ctx context.Context, sseEventChan chan<- SSEEvent, result renderer.TileCompletionResult) {
	imageData, err := imageToBase64PNG(result.TileImage)
	if err != nil {
		log.Printf("Error encoding tile %d: %v", result.TileNumber, err)
		return
	}

	s.sendEvent(ctx, sseEventChan, "tile", TileUpdate{
		TileX:      result.TileX,
		TileY:      result.TileY,
		PixelX:     result.Bounds.Min.X,
		PixelY:     result.Bounds.Min.Y,
		Width:      result.Bounds.Dx(),
		Height:     result.Bounds.Dy(),
		ImageData:  imageData,
		TileNumber: result.TileNumber,
		TotalTiles: result.TotalTiles,
	})
}

// handleError sends an error event to the client
func (s *Server) handleError(ctx context.Context, sseEventChan chan<- SSEEvent, message string) {
	log.Printf("Render request failed: %s", message)
	s.sendEvent(ctx, sseEventChan, "error", map[string]string{"error": message})
}

// sendEvent marshals data and queues it, giving up if the client has gone
func (s *Server) sendEvent(ctx context.Context, sseEventChan chan<- SSEEvent, eventType string, data interface{}) {
	encoded, err := json.Marshal(data)
	if err != nil {
		log.Printf("Error marshaling %s event: %v", eventType, err)
		return
	}

	select {
	case sseEventChan <- SSEEvent{Type: eventType, Data: string(encoded)}:
	case <-ctx.Done():
	}
}

// imageToBase64PNG converts an image to a base64 encoded PNG
func imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
