package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/go-raycaster/pkg/geometry"
	"github.com/df07/go-raycaster/pkg/renderer"
	"github.com/df07/go-raycaster/pkg/scene"
)

// Request limits shared by the render and inspect endpoints
const (
	MinImageSize    = 16
	MaxImageSize    = 2000
	DefaultTileSize = 32
	MaxTileSize     = 256
	MaxWorkers      = 256
)

// Server handles web requests for the ray-casting viewer
type Server struct {
	port      int
	staticDir string
	mux       *http.ServeMux
}

// NewServer creates a web server that serves staticDir at / next to the API
func NewServer(port int, staticDir string) *Server {
	s := &Server{
		port:      port,
		staticDir: staticDir,
		mux:       http.NewServeMux(),
	}

	s.mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	s.mux.HandleFunc("/api/health", s.handleHealth)
	s.mux.HandleFunc("/api/scenes", s.handleScenes)
	s.mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	s.mux.HandleFunc("/api/render", s.handleRender)
	s.mux.HandleFunc("/api/inspect", s.handleInspect)
	return s
}

// Handler returns the server's request router
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start starts the web server and blocks until it fails
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.mux)
}

// SceneRequest holds the scene parameters shared by render and inspect requests.
// Zero values leave the scene's own camera settings in place.
type SceneRequest struct {
	Scene       string  `json:"scene"`       // Scene id, as listed by /api/scenes
	Width       int     `json:"width"`       // Image width override
	Height      int     `json:"height"`      // Image height override
	FieldOfView float64 `json:"fieldOfView"` // Field of view override in degrees
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	SceneRequest
	TileSize int `json:"tileSize"` // Tile edge length in pixels
	Workers  int `json:"workers"`  // Number of parallel workers (0 = CPU count)
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in and YAML scenes, grouped
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	response, err := scene.ListScenes()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// handleSceneConfig returns a scene's camera defaults and the request limits
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	sceneName := r.URL.Query().Get("scene")
	if sceneName == "" {
		sceneName = "default"
	}

	sceneObj, err := scene.Create(sceneName)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	config := sceneObj.CameraConfig
	response := map[string]interface{}{
		"scene":      sceneName,
		"name":       sceneObj.Name,
		"shapeCount": len(sceneObj.World.Shapes),
		"defaults": map[string]interface{}{
			"width":       config.Width,
			"height":      config.Height,
			"fieldOfView": config.FieldOfView,
			"tileSize":    DefaultTileSize,
		},
		"limits": map[string]interface{}{
			"width":       map[string]int{"min": MinImageSize, "max": MaxImageSize},
			"height":      map[string]int{"min": MinImageSize, "max": MaxImageSize},
			"fieldOfView": map[string]float64{"min": 1, "max": 179},
			"tileSize":    map[string]int{"min": 1, "max": MaxTileSize},
			"workers":     map[string]int{"min": 0, "max": MaxWorkers},
		},
	}
	writeJSON(w, http.StatusOK, response)
}

// parseCommonSceneParams parses the scene parameters shared by render and inspect
func (s *Server) parseCommonSceneParams(r *http.Request, req *SceneRequest) error {
	query := r.URL.Query()

	req.Scene = query.Get("scene")
	if req.Scene == "" {
		req.Scene = "default"
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 0, MinImageSize, MaxImageSize); err != nil {
		return err
	}
	if req.Height, err = parseIntParam(query, "height", 0, MinImageSize, MaxImageSize); err != nil {
		return err
	}
	if req.FieldOfView, err = parseFloatParam(query, "fov", 0, 1, 179); err != nil {
		return err
	}
	return nil
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	req := &RenderRequest{}
	if err := s.parseCommonSceneParams(r, &req.SceneRequest); err != nil {
		return nil, err
	}

	var err error
	if req.TileSize, err = parseIntParam(r.URL.Query(), "tileSize", DefaultTileSize, 1, MaxTileSize); err != nil {
		return nil, err
	}
	if req.Workers, err = parseIntParam(r.URL.Query(), "workers", 0, 0, MaxWorkers); err != nil {
		return nil, err
	}
	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %g and %g, got: %g", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// createScene builds the requested scene with the request's camera overrides
func (s *Server) createScene(req *SceneRequest) (*scene.Scene, error) {
	return scene.Create(req.Scene, geometry.CameraConfig{
		Width:       req.Width,
		Height:      req.Height,
		FieldOfView: req.FieldOfView,
	})
}

// renderConfig converts the request's parallelism settings
func (req *RenderRequest) renderConfig() renderer.RenderConfig {
	return renderer.RenderConfig{
		TileSize:   req.TileSize,
		NumWorkers: req.Workers,
	}
}

// writeJSON writes value as a JSON response with status
func writeJSON(w http.ResponseWriter, status int, value interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(value); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}
