package cli

import (
	"github.com/rcliao/exifnaming/internal/model"
	"github.com/rcliao/exifnaming/internal/organizer"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "read",
		Short: "Read the tags of all pictures and report what was found",
		Run:   runRead,
	}

	cmd.Flags().Bool("save", false, "Save the tag table as a snapshot")

	RootCmd.AddCommand(cmd)
}

func runRead(cmd *cobra.Command, args []string) {
	save, _ := cmd.Flags().GetBool("save")

	o, done := newOrganizer()
	defer done()

	res, err := o.Read(cmd.Context())
	if err != nil {
		exitErr("read", err)
	}

	out := struct {
		Model    string          `json:"model"`
		Columns  []string        `json:"columns"`
		Snapshot *model.Snapshot `json:"snapshot,omitempty"`
		*organizer.ReadResult
	}{Model: res.Model.Name(), Columns: res.Table.Columns(), ReadResult: res}

	if save {
		out.Snapshot, err = o.Snapshot(cmd.Context(), model.SnapshotRead, res.Table)
		if err != nil {
			exitErr("save snapshot", err)
		}
	}
	printJSON(out)
}
