package cli

import (
	"github.com/rcliao/exifnaming/internal/organizer"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Sort pictures into folders by shot group",
	}

	series := &cobra.Command{
		Use:   "series",
		Short: "Move brackets into B1..B7, series into S/SM/TL and the rest into single",
		Run: func(cmd *cobra.Command, args []string) {
			runMove(cmd, "filter series", (*organizer.Organizer).FilterSeries)
		},
	}

	primary := &cobra.Command{
		Use:   "primary",
		Short: "Move first bracket shots and singles into primary, series into S/SM/TL/B",
		Run: func(cmd *cobra.Command, args []string) {
			runMove(cmd, "filter primary", (*organizer.Organizer).FilterPrimary)
		},
	}

	toMain := &cobra.Command{
		Use:   "to-main [folder...]",
		Short: "Move pictures out of sorting folders back into their parent",
		Run:   runToMain,
	}
	toMain.Flags().Bool("all", false, "Empty every subfolder")
	toMain.Flags().Bool("series", false, "Reverse filter series")
	toMain.Flags().Bool("primary", false, "Reverse filter primary")
	toMain.Flags().Bool("blurry", false, "Reverse detect blurry")
	toMain.Flags().Bool("similar", false, "Reverse detect similar")

	cmd.AddCommand(series, primary, toMain)
	RootCmd.AddCommand(cmd)
}

func runToMain(cmd *cobra.Command, args []string) {
	var opts organizer.FoldersOptions
	opts.All, _ = cmd.Flags().GetBool("all")
	opts.Series, _ = cmd.Flags().GetBool("series")
	opts.Primary, _ = cmd.Flags().GetBool("primary")
	opts.Blurry, _ = cmd.Flags().GetBool("blurry")
	opts.Similar, _ = cmd.Flags().GetBool("similar")
	opts.Dirs = args

	o, done := newOrganizer()
	defer done()

	res, err := o.FoldersToMain(cmd.Context(), opts)
	if err != nil {
		exitErr("folders to main", err)
	}
	printJSON(res)
}
