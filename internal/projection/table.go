package projection

import (
	"strconv"

	"github.com/iwvelando/iefp-dossier/pkg/mathutil"
)

// Table is a labelled row collection with one value column per header.
type Table struct {
	Name        string   `json:"name"`
	LabelColumn string   `json:"labelColumn"`
	Columns     []string `json:"columns"`
	Rows        []Row    `json:"rows"`
}

// Row is one line of a Table. A nil value marks a cell the source data does
// not populate.
type Row struct {
	Label  string     `json:"label"`
	Values []*float64 `json:"values"`
}

func newTable(name, labelColumn string, columns []string) *Table {
	return &Table{
		Name:        name,
		LabelColumn: labelColumn,
		Columns:     columns,
		Rows:        []Row{},
	}
}

func (t *Table) addRow(label string, values []float64) {
	row := Row{Label: label, Values: make([]*float64, len(values))}
	for i := range values {
		v := values[i]
		row.Values[i] = &v
	}
	t.Rows = append(t.Rows, row)
}

func (t *Table) addSparseRow(label string, values []*float64) {
	t.Rows = append(t.Rows, Row{Label: label, Values: values})
}

// Empty reports whether the table has no rows.
func (t *Table) Empty() bool {
	return t == nil || len(t.Rows) == 0
}

// Row returns the first row with the given label.
func (t *Table) Row(label string) (Row, bool) {
	if t == nil {
		return Row{}, false
	}
	for _, row := range t.Rows {
		if row.Label == label {
			return row, true
		}
	}
	return Row{}, false
}

// ColumnTotals sums every column across rows, treating absent cells as 0.
func (t *Table) ColumnTotals() []float64 {
	totals := make([]float64, len(t.Columns))
	for col := range t.Columns {
		values := make([]float64, 0, len(t.Rows))
		for _, row := range t.Rows {
			values = append(values, row.Value(col))
		}
		totals[col] = mathutil.Sum(values)
	}
	return totals
}

// Value returns the cell at column i, or 0 when it is absent.
func (r Row) Value(i int) float64 {
	if i < 0 || i >= len(r.Values) || r.Values[i] == nil {
		return 0
	}
	return *r.Values[i]
}

// Has reports whether the cell at column i is populated.
func (r Row) Has(i int) bool {
	return i >= 0 && i < len(r.Values) && r.Values[i] != nil
}

func yearColumns(years []int) []string {
	columns := make([]string, len(years))
	for i, year := range years {
		columns[i] = strconv.Itoa(year)
	}
	return columns
}
