package expiscor

// Table is an ordered set of value rows over a fixed column template. Each
// row converts to a bag shaped like the template, which is how tabular
// results flow into the document feed path.
type Table struct {
	Name string

	columns *Bag
	rows    [][]string
}

// NewTable creates an empty table over the given column template. The
// template's field values are ignored; only its layout and features matter.
func NewTable(name string, columns *Bag) *Table {
	return &Table{Name: name, columns: columns}
}

// Columns returns the column template.
func (t *Table) Columns() *Bag {
	return t.columns
}

// AddRow appends a row. The value count must match the column count; an
// empty string leaves that column unassigned in the row's bag.
func (t *Table) AddRow(values ...string) error {
	if len(values) != t.columns.Len() {
		return Errorf("table %q: row has %d values, want %d", t.Name, len(values), t.columns.Len())
	}
	row := append([]string(nil), values...)
	t.rows = append(t.rows, row)
	return nil
}

func (t *Table) RowCount() int {
	return len(t.rows)
}

// RowBag materializes row i as a bag shaped like the column template.
func (t *Table) RowBag(i int) *Bag {
	bag := t.columns.Copy()
	bag.ClearValues()
	if i < 0 || i >= len(t.rows) {
		return bag
	}
	for j, f := range bag.Fields() {
		if v := t.rows[i][j]; v != "" {
			f.SetValue(v)
		}
	}
	return bag
}
