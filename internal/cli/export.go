package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export snapshots as JSON",
		Long:  "Export the snapshots of the library, including their tag tables, as JSON. Use --all-roots for every library.",
		Run:   runExport,
	}

	cmd.Flags().Bool("all-roots", false, "Export snapshots of every library in the database")

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	allRoots, _ := cmd.Flags().GetBool("all-roots")
	root := getRoot()
	if allRoots {
		root = ""
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	exports, err := s.ExportAll(cmd.Context(), root)
	if err != nil {
		exitErr("export", err)
	}

	printJSON(exports)
}
