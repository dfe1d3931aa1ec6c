package cli

import (
	"fmt"
	"strings"

	"github.com/rcliao/exifnaming/internal/exiftool"
	"github.com/rcliao/exifnaming/internal/organizer"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "write",
		Short: "Write tags into all pictures",
		Long: "Write tags into every matching picture with exiftool, e.g.\n" +
			"  exifnaming write -t Keywords=Paris -t Keywords=Louvre -t Artist=me",
		Run: runWrite,
	}

	cmd.Flags().StringArrayP("tag", "t", nil, "Tag assignment Key=Value (repeatable)")
	cmd.MarkFlagRequired("tag")

	RootCmd.AddCommand(cmd)
}

func runWrite(cmd *cobra.Command, args []string) {
	assignments, _ := cmd.Flags().GetStringArray("tag")
	tags, err := parseTags(assignments)
	if err != nil {
		exitErr("parse tags", err)
	}

	cfg := loadConfig()
	w, err := exiftool.NewWriter(cfg.Exiftool)
	if err != nil {
		exitErr("start exiftool", err)
	}
	defer w.Close()

	o, done := newOrganizer(organizer.WithWriter(w))
	defer done()

	res, err := o.WriteTags(cmd.Context(), tags)
	if err != nil {
		exitErr("write tags", err)
	}
	printJSON(res)
}

// parseTags groups Key=Value assignments by key, keeping first-seen order.
func parseTags(assignments []string) ([]exiftool.Tag, error) {
	var tags []exiftool.Tag
	index := map[string]int{}
	for _, a := range assignments {
		key, value, ok := strings.Cut(a, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("%q is not Key=Value", a)
		}
		i, seen := index[key]
		if !seen {
			i = len(tags)
			index[key] = i
			tags = append(tags, exiftool.Tag{Key: key})
		}
		tags[i].Values = append(tags[i].Values, strings.TrimSpace(value))
	}
	return tags, nil
}
