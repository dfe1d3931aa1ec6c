package model

import "fmt"

// Table is the columnar view of a batch: one column per tag, one row per file.
// All columns have the same length.
type Table struct {
	order   []string
	columns map[string][]string
	rows    int
}

// NewTable returns an empty table with no rows.
func NewTable() *Table {
	return &Table{columns: make(map[string][]string)}
}

// TableData is the serialized form of a Table.
type TableData struct {
	Columns []string            `json:"columns"`
	Values  map[string][]string `json:"values"`
}

// TableFromData rebuilds a table, checking that every column has the same length.
func TableFromData(d TableData) (*Table, error) {
	t := NewTable()
	for i, key := range d.Columns {
		col, ok := d.Values[key]
		if !ok {
			return nil, fmt.Errorf("column %q has no values", key)
		}
		if i == 0 {
			t.rows = len(col)
		} else if len(col) != t.rows {
			return nil, fmt.Errorf("column %q has %d rows, want %d", key, len(col), t.rows)
		}
		if err := t.AddColumn(key, col); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Data returns a serializable copy of the table.
func (t *Table) Data() TableData {
	d := TableData{Columns: t.Columns(), Values: make(map[string][]string, len(t.order))}
	for _, key := range t.order {
		d.Values[key] = t.Column(key)
	}
	return d
}

// Len returns the number of rows.
func (t *Table) Len() int { return t.rows }

// Columns returns the column names in first-seen order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Has reports whether the table has a column named key.
func (t *Table) Has(key string) bool {
	_, ok := t.columns[key]
	return ok
}

// Column returns a copy of the column, or nil if absent.
func (t *Table) Column(key string) []string {
	col, ok := t.columns[key]
	if !ok {
		return nil
	}
	out := make([]string, len(col))
	copy(out, col)
	return out
}

// Value returns the cell at row i of column key, "" when absent.
func (t *Table) Value(key string, i int) string {
	col, ok := t.columns[key]
	if !ok || i < 0 || i >= len(col) {
		return ""
	}
	return col[i]
}

// AddColumn adds a column. On an empty table it also fixes the row count.
func (t *Table) AddColumn(key string, values []string) error {
	if t.Has(key) {
		return fmt.Errorf("column %q already exists", key)
	}
	if len(t.order) == 0 && t.rows == 0 {
		t.rows = len(values)
	}
	if len(values) != t.rows {
		return fmt.Errorf("column %q has %d rows, want %d", key, len(values), t.rows)
	}
	col := make([]string, len(values))
	copy(col, values)
	t.order = append(t.order, key)
	t.columns[key] = col
	return nil
}

// SetColumn replaces or adds a column of the right length.
func (t *Table) SetColumn(key string, values []string) error {
	if !t.Has(key) {
		return t.AddColumn(key, values)
	}
	if len(values) != t.rows {
		return fmt.Errorf("column %q has %d rows, want %d", key, len(values), t.rows)
	}
	col := make([]string, len(values))
	copy(col, values)
	t.columns[key] = col
	return nil
}

// Set writes one cell of an existing column.
func (t *Table) Set(key string, i int, value string) {
	if col, ok := t.columns[key]; ok && i >= 0 && i < len(col) {
		col[i] = value
	}
}

// SwapColumns exchanges the contents of two columns.
func (t *Table) SwapColumns(a, b string) error {
	ca, okA := t.columns[a]
	cb, okB := t.columns[b]
	if !okA || !okB {
		return fmt.Errorf("swap %q/%q: missing column", a, b)
	}
	t.columns[a], t.columns[b] = cb, ca
	return nil
}

// AppendRow appends a row. Values for keys without a column are ignored;
// columns without a value get "".
func (t *Table) AppendRow(values map[string]string) {
	for _, key := range t.order {
		t.columns[key] = append(t.columns[key], values[key])
	}
	t.rows++
}

// Permute reorders every column so that new row i is old row perm[i].
func (t *Table) Permute(perm []int) error {
	if len(perm) != t.rows {
		return fmt.Errorf("permutation has %d entries, want %d", len(perm), t.rows)
	}
	seen := make([]bool, t.rows)
	for _, p := range perm {
		if p < 0 || p >= t.rows || seen[p] {
			return fmt.Errorf("invalid permutation index %d", p)
		}
		seen[p] = true
	}
	for key, col := range t.columns {
		next := make([]string, len(col))
		for i, p := range perm {
			next[i] = col[p]
		}
		t.columns[key] = next
	}
	return nil
}

// Row returns a read-only view of row i.
func (t *Table) Row(i int) Row {
	return Row{table: t, index: i}
}

// Subset returns a new table holding only the listed columns that exist.
func (t *Table) Subset(keys []string) *Table {
	out := NewTable()
	out.rows = t.rows
	for _, key := range keys {
		if col, ok := t.columns[key]; ok {
			out.AddColumn(key, col)
		}
	}
	return out
}

// Row is one file's values within a Table. Back-filled placeholders
// read as absent.
type Row struct {
	table *Table
	index int
}

// Index returns the row number within the table.
func (r Row) Index() int { return r.index }

// Get returns the value for key; ok is false for missing columns and
// empty placeholders.
func (r Row) Get(key string) (string, bool) {
	v := r.table.Value(key, r.index)
	return v, v != ""
}

// Value returns the value for key or "".
func (r Row) Value(key string) string {
	return r.table.Value(key, r.index)
}

// Has reports whether the row carries a non-empty value for key.
func (r Row) Has(key string) bool {
	_, ok := r.Get(key)
	return ok
}

// Equals reports whether the row's value for key is exactly want.
func (r Row) Equals(key, want string) bool {
	v, ok := r.Get(key)
	return ok && v == want
}
