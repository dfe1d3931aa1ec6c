package cli

import (
	"fmt"

	"github.com/rcliao/exifnaming/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "snapshots",
		Aliases: []string{"list"},
		Short:   "List saved snapshots",
		Run:     runList,
	}

	cmd.Flags().String("kind", "", "Filter by kind: rename, undo or read")
	cmd.Flags().IntP("limit", "l", 20, "Max results")
	cmd.Flags().Bool("all-roots", false, "List snapshots of every library in the database")
	cmd.Flags().Bool("stamps-only", false, "Only output snapshot stamps")

	RootCmd.AddCommand(cmd)
}

func runList(cmd *cobra.Command, args []string) {
	kind, _ := cmd.Flags().GetString("kind")
	limit, _ := cmd.Flags().GetInt("limit")
	allRoots, _ := cmd.Flags().GetBool("all-roots")
	stampsOnly, _ := cmd.Flags().GetBool("stamps-only")

	root := getRoot()
	if allRoots {
		root = ""
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	snaps, err := s.List(cmd.Context(), store.ListParams{
		Root:  root,
		Kind:  kind,
		Limit: limit,
	})
	if err != nil {
		exitErr("list", err)
	}

	if stampsOnly {
		for _, snap := range snaps {
			fmt.Println(snap.Stamp)
		}
		return
	}

	printJSON(snaps)
}
