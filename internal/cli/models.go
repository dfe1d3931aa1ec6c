package cli

import (
	"fmt"

	"github.com/rcliao/exifnaming/internal/camera"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "models",
		Short: "List supported camera models and their tag groups",
		Run:   runModels,
	}

	cmd.Flags().Bool("names-only", false, "Only output model identifiers")

	RootCmd.AddCommand(cmd)
}

type modelInfo struct {
	Name   string         `json:"name"`
	Groups []camera.Group `json:"groups"`
}

func runModels(cmd *cobra.Command, args []string) {
	namesOnly, _ := cmd.Flags().GetBool("names-only")

	var out []modelInfo
	seen := map[string]bool{}
	for _, id := range camera.Names() {
		if namesOnly {
			fmt.Println(id)
			continue
		}
		m, err := camera.Lookup(id)
		if err != nil {
			exitErr("lookup", err)
		}
		if seen[m.Name()] {
			continue
		}
		seen[m.Name()] = true
		out = append(out, modelInfo{Name: m.Name(), Groups: m.Groups()})
	}
	if !namesOnly {
		printJSON(out)
	}
}
