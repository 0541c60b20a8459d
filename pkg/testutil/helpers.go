// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/iefp-dossier/internal/projection"
)

// FindTable finds a table by name in the tables slice.
// Returns nil if no table matches.
func FindTable(tables []*projection.Table, name string) *projection.Table {
	for _, table := range tables {
		if table != nil && table.Name == name {
			return table
		}
	}
	return nil
}

// RowValues returns the values of the first row with the given label, with
// absent cells as 0. It returns nil when the table or row does not exist.
func RowValues(table *projection.Table, label string) []float64 {
	row, ok := table.Row(label)
	if !ok {
		return nil
	}
	values := make([]float64, len(row.Values))
	for i := range row.Values {
		values[i] = row.Value(i)
	}
	return values
}
