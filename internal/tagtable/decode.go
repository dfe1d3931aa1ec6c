// Package tagtable turns exiftool text output into a sorted columnar tag table.
package tagtable

import (
	"path/filepath"
	"strings"

	"github.com/rcliao/exifnaming/internal/logging"
	"github.com/rcliao/exifnaming/internal/model"
)

// BlockDelimiter starts each file's block when exiftool prints several files.
const BlockDelimiter = "========"

// Normalizer corrects known-ambiguous raw values while decoding.
type Normalizer interface {
	Normalize(tag, raw string) string
}

// Decode splits exiftool output into one record per file. Blocks that
// yield no tags are reported and dropped.
func Decode(out string, n Normalizer, rep logging.Reporter) []*model.Record {
	var records []*model.Record
	for _, block := range splitBlocks(out) {
		if strings.TrimSpace(block) == "" {
			continue
		}
		rec := DecodeBlock(block, n)
		if rec.Len() == 0 {
			rep.Error("no tags extracted", "block", firstLine(block))
			continue
		}
		records = append(records, rec)
	}
	return records
}

// DecodeBlock parses the "Key: Value" lines of one file. The first
// occurrence of a key wins.
func DecodeBlock(block string, n Normalizer) *model.Record {
	rec := model.NewRecord()
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimRight(line, "\r")
		kv := strings.SplitN(line, ": ", 2)
		if len(kv) != 2 {
			continue
		}
		key := strings.TrimSpace(kv[0])
		val := strings.TrimSpace(kv[1])
		if key == "" || rec.Has(key) {
			continue
		}
		if n != nil {
			val = n.Normalize(key, val)
		}
		if key == string(model.KeyDirectory) {
			val = filepath.FromSlash(val)
		}
		rec.Set(key, val)
	}
	return rec
}

func splitBlocks(out string) []string {
	var blocks []string
	var cur strings.Builder
	for _, line := range strings.SplitAfter(out, "\n") {
		if strings.HasPrefix(line, BlockDelimiter) {
			blocks = append(blocks, cur.String())
			cur.Reset()
			continue
		}
		cur.WriteString(line)
	}
	return append(blocks, cur.String())
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// NormalizeTable applies n to every cell of t. It is the table-level
// counterpart of passing n to Decode, for batches whose camera model is
// only known after the table is built.
func NormalizeTable(t *model.Table, n Normalizer) {
	for _, key := range t.Columns() {
		for i := 0; i < t.Len(); i++ {
			t.Set(key, i, n.Normalize(key, t.Value(key, i)))
		}
	}
}
