package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/df07/go-raycaster/pkg/scene"
)

var scenesCmd = &cobra.Command{
	Use:   "scenes",
	Short: "List built-in and YAML scenes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		response, err := scene.ListScenes()
		if err != nil {
			return err
		}
		printScenes(cmd.OutOrStdout(), response)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scenesCmd)
}

// printScenes writes one block per group with the id to pass to --scene
func printScenes(w io.Writer, response scene.ScenesResponse) {
	for i, group := range response.Groups {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s:\n", group.Name)
		for _, info := range group.Scenes {
			if info.Description != "" {
				fmt.Fprintf(w, "  %-24s %s - %s\n", info.ID, info.DisplayName, info.Description)
			} else {
				fmt.Fprintf(w, "  %-24s %s\n", info.ID, info.DisplayName)
			}
		}
	}
}
