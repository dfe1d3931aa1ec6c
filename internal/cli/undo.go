package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "undo [snapshot]",
		Short: "Undo a rename",
		Long: "Rename files back to the names recorded in a snapshot. Without an argument the latest " +
			"snapshot for the file extension is used; otherwise the snapshot id or stamp.",
		Args: cobra.MaximumNArgs(1),
		Run:  runUndo,
	}

	RootCmd.AddCommand(cmd)
}

func runUndo(cmd *cobra.Command, args []string) {
	var ref string
	if len(args) == 1 {
		ref = args[0]
	}

	o, done := newOrganizer()
	defer done()

	res, err := o.Undo(cmd.Context(), ref)
	if err != nil {
		exitErr("undo", err)
	}
	printJSON(res)
}
