package cli

import (
	"github.com/rcliao/exifnaming/internal/organizer"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "hdr",
		Short: "Rename merged HDR pictures",
		Long:  "Rename HDR merge output in the configured folder to <base>_<n>_<mode><rest><ext>.",
		Run:   runHDR,
	}

	tempBack := &cobra.Command{
		Use:   "temp-back",
		Short: "Strip the temp suffix left by an interrupted rename",
		Run: func(cmd *cobra.Command, args []string) {
			runMove(cmd, "rename temp back", (*organizer.Organizer).RenameTempBack)
		},
	}

	cmd.AddCommand(tempBack)
	RootCmd.AddCommand(cmd)
}

func runHDR(cmd *cobra.Command, args []string) {
	o, done := newOrganizer()
	defer done()

	res, err := o.RenameHDR(cmd.Context())
	if err != nil {
		exitErr("rename hdr", err)
	}
	printJSON(res)
}
