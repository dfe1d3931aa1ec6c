package cli

import (
	"context"

	"github.com/rcliao/exifnaming/internal/organizer"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "detect",
		Short: "Find blurry or similar pictures",
	}

	blurry := &cobra.Command{
		Use:   "blurry",
		Short: "Move blurry pictures into a blurry subfolder",
		Run: func(cmd *cobra.Command, args []string) {
			runMove(cmd, "detect blurry", (*organizer.Organizer).DetectBlurry)
		},
	}

	similar := &cobra.Command{
		Use:   "similar",
		Short: "Group similar pictures into numbered subfolders",
		Run: func(cmd *cobra.Command, args []string) {
			runMove(cmd, "detect similar", (*organizer.Organizer).DetectSimilar)
		},
	}

	cmd.AddCommand(blurry, similar)
	RootCmd.AddCommand(cmd)
}

// runMove runs one of the folder-sorting operations and prints its result.
func runMove(cmd *cobra.Command, name string, op func(*organizer.Organizer, context.Context) (*organizer.MoveResult, error)) {
	o, done := newOrganizer()
	defer done()

	res, err := op(o, cmd.Context())
	if err != nil {
		exitErr(name, err)
	}
	printJSON(res)
}
