package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/df07/go-raycaster/web/server"
)

var (
	port      int
	staticDir string
)

var rootCmd = &cobra.Command{
	Use:   "raycast-web",
	Short: "Web viewer that streams ray-cast renders tile by tile",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if port <= 0 || port > 65535 {
			return fmt.Errorf("invalid port %d", port)
		}

		log.Printf("Ray Caster Web Server")
		log.Printf("Visit http://localhost:%d to start rendering", port)
		return server.NewServer(port, staticDir).Start()
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.Flags().IntVar(&port, "port", 8080, "Port to serve on")
	rootCmd.Flags().StringVar(&staticDir, "static", "static", "Directory of static viewer files served at /")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
