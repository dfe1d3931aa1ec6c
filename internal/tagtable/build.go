package tagtable

import (
	"errors"
	"fmt"
	"sort"

	"github.com/rcliao/exifnaming/internal/model"
)

var (
	// ErrMissingEssentialTag aborts a batch whose first record lacks an essential tag.
	ErrMissingEssentialTag = errors.New("missing essential tag")
	// ErrNoRecords is returned when there is nothing to build from.
	ErrNoRecords = errors.New("no tag records")
)

// MissingEssentialTagError names the essential key and the first record lacking it.
type MissingEssentialTagError struct {
	Key    string
	Record int
}

func (e *MissingEssentialTagError) Error() string {
	return fmt.Sprintf("%s: %q not in record %d", ErrMissingEssentialTag, e.Key, e.Record)
}

func (e *MissingEssentialTagError) Is(target error) bool {
	return target == ErrMissingEssentialTag
}

// GapReport counts, per key, the records that lacked it.
type GapReport map[string]int

// Keys returns the reported keys sorted by name.
func (g GapReport) Keys() []string {
	keys := make([]string, 0, len(g))
	for k := range g {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Essential returns the reported keys that are essential tags.
func (g GapReport) Essential() []string {
	var out []string
	for _, k := range g.Keys() {
		if model.IsEssential(k) {
			out = append(out, k)
		}
	}
	return out
}

// BuildOptions configures Build.
type BuildOptions struct {
	// StrictEssential makes a gap in an essential column fatal. By default
	// such gaps are reported like any other and the affected rows are
	// skipped downstream.
	StrictEssential bool
}

// Build merges records into a table with one row per record. Columns
// follow first-seen order; absent values are "".
func Build(records []*model.Record, opts BuildOptions) (*model.Table, GapReport, error) {
	if len(records) == 0 || records[0] == nil || records[0].Len() == 0 {
		return nil, nil, ErrNoRecords
	}
	first := records[0]
	for _, key := range model.EssentialKeys {
		if !first.Has(string(key)) {
			return nil, nil, &MissingEssentialTagError{Key: string(key), Record: 0}
		}
	}

	order := first.Keys()
	cols := make(map[string][]string, len(order))
	for _, key := range order {
		v, _ := first.Get(key)
		cols[key] = []string{v}
	}

	gaps := GapReport{}
	for i := 1; i < len(records); i++ {
		rec := records[i]
		if rec == nil {
			rec = model.NewRecord()
		}
		for _, key := range rec.Keys() {
			if _, ok := cols[key]; !ok {
				cols[key] = make([]string, i, len(records))
				order = append(order, key)
				gaps[key] += i
			}
			v, _ := rec.Get(key)
			cols[key] = append(cols[key], v)
		}
		for _, key := range order {
			if !rec.Has(key) {
				cols[key] = append(cols[key], "")
				gaps[key]++
			}
		}
	}

	if opts.StrictEssential {
		if missing := gaps.Essential(); len(missing) > 0 {
			return nil, gaps, &MissingEssentialTagError{Key: missing[0], Record: firstLacking(records, missing[0])}
		}
	}

	t := model.NewTable()
	for _, key := range order {
		if err := t.AddColumn(key, cols[key]); err != nil {
			return nil, gaps, fmt.Errorf("build column: %w", err)
		}
	}
	return t, gaps, nil
}

func firstLacking(records []*model.Record, key string) int {
	for i, r := range records {
		if r == nil || !r.Has(key) {
			return i
		}
	}
	return -1
}
