package cli

import (
	"path/filepath"

	"github.com/rcliao/exifnaming/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show snapshot database statistics",
		Long:  "Show snapshot counts per library root. With --here only the root given by --dir is listed.",
		Run:   runStats,
	}
	cmd.Flags().Bool("here", false, "Only show the current library root")

	RootCmd.AddCommand(cmd)
}

func runStats(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	stats, err := s.Stats(cmd.Context(), getDBPath())
	if err != nil {
		exitErr("stats", err)
	}
	if here, _ := cmd.Flags().GetBool("here"); here {
		stats.Roots = rootsUnder(stats.Roots, getRoot())
	}

	printJSON(stats)
}

func rootsUnder(roots []store.RootStats, root string) []store.RootStats {
	root = filepath.Clean(root)
	var out []store.RootStats
	for _, rs := range roots {
		if filepath.Clean(rs.Root) == root {
			out = append(out, rs)
		}
	}
	return out
}
