package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rcliao/exifnaming/internal/model"
	"github.com/rcliao/exifnaming/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import snapshots from JSON",
		Long: "Import snapshots from JSON (stdin or file). Expects the format produced by export. " +
			"Snapshots keep their id and stamp; ids already in the database are skipped.",
		Args: cobra.MaximumNArgs(1),
		Run:  runImport,
	}
	cmd.Flags().Bool("rebase", false, "Move imported snapshots onto the library root given by --dir")

	RootCmd.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, args []string) {
	var in io.Reader = os.Stdin
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			exitErr("open input", err)
		}
		defer f.Close()
		in = f
	}

	exports, err := readExports(in)
	if err != nil {
		exitErr("parse json", err)
	}
	if rebase, _ := cmd.Flags().GetBool("rebase"); rebase {
		rebaseExports(exports, getRoot())
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	imported, err := s.Import(cmd.Context(), exports)
	if err != nil {
		exitErr("import", err)
	}

	fmt.Printf(`{"ok":true,"imported":%d,"skipped":%d}`+"\n", imported, len(exports)-imported)
}

func readExports(r io.Reader) ([]store.Export, error) {
	var exports []store.Export
	if err := json.NewDecoder(r).Decode(&exports); err != nil {
		return nil, err
	}
	return exports, nil
}

// rebaseExports moves snapshots taken under another root onto root. The
// Directory column is rewritten so undo finds the files at their new place.
func rebaseExports(exports []store.Export, root string) {
	for i := range exports {
		old := filepath.Clean(exports[i].Root)
		exports[i].Root = root
		dirs := exports[i].Table.Values[string(model.KeyDirectory)]
		for j, d := range dirs {
			rel, err := filepath.Rel(old, filepath.Clean(d))
			if err != nil || strings.HasPrefix(rel, "..") {
				continue
			}
			dirs[j] = filepath.Join(root, rel)
		}
	}
}
