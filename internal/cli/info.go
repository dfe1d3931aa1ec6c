package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Write the tag table as CSV into .EXIFnaming/info",
		Run:   runInfo,
	}

	cmd.Flags().StringSliceP("group", "g", nil, "Only write the tags of these camera groups (see \"models\")")

	RootCmd.AddCommand(cmd)
}

func runInfo(cmd *cobra.Command, args []string) {
	groups, _ := cmd.Flags().GetStringSlice("group")

	o, done := newOrganizer()
	defer done()

	res, err := o.ExportInfo(cmd.Context(), groups)
	if err != nil {
		exitErr("info", err)
	}
	printJSON(res)
}
