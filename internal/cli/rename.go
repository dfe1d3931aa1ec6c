package cli

import (
	"github.com/rcliao/exifnaming/internal/organizer"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "rename",
		Short: "Rename pictures by date, shot group and capture mode",
		Long: "Rename every matching picture to <prefix><YYMMDD>_<counter><group><modes><styles>.<ext>. " +
			"The tag table is saved as a snapshot so the run can be undone with \"undo\".",
		Run: runRename,
	}

	cmd.Flags().StringP("prefix", "p", "", "Name prefix (default: prefix from config)")
	cmd.Flags().BoolP("dry-run", "n", false, "Print the planned renames without renaming")

	RootCmd.AddCommand(cmd)
}

func runRename(cmd *cobra.Command, args []string) {
	prefix, _ := cmd.Flags().GetString("prefix")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	var opts []organizer.Option
	if cmd.Flags().Changed("prefix") {
		opts = append(opts, organizer.WithPrefix(prefix))
	}
	o, done := newOrganizer(opts...)
	defer done()

	res, err := o.Rename(cmd.Context(), organizer.RenameOptions{DryRun: dryRun})
	if err != nil {
		exitErr("rename", err)
	}
	printJSON(res)
}
